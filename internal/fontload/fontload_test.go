package fontload

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/otcodec/ot"
	"github.com/npillmayer/otcodec/otwrite"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/require"
)

func testFont(t *testing.T) []byte {
	builder := otwrite.NewFontBuilder()
	builder.Add(ot.T("head"), &otwrite.Head{Head: ot.Head{Version: ot.Version1_0MM, UnitsPerEm: 1000}})
	builder.Add(ot.T("maxp"), &otwrite.Maxp{NumGlyphs: 1})
	b, err := builder.Build(context.Background())
	require.NoError(t, err)
	return b
}

func TestLoadFont(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	path := filepath.Join(t.TempDir(), "test.otf")
	require.NoError(t, os.WriteFile(path, testFont(t), 0o644))
	f, err := LoadOpenTypeFont(path)
	require.NoError(t, err)
	require.Equal(t, path, f.Filepath)
	require.NotNil(t, f.OT)
	require.Nil(t, f.SFNT, "sfnt requires cmap and more")
	require.Empty(t, f.CrossCheck())
	head, err := f.OT.Head()
	require.NoError(t, err)
	require.Equal(t, uint16(1000), head.UnitsPerEm)
}

func TestLoadFontErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	_, err := LoadOpenTypeFont(filepath.Join(t.TempDir(), "missing.otf"))
	require.ErrorIs(t, err, os.ErrNotExist)
	//
	path := filepath.Join(t.TempDir(), "broken.otf")
	require.NoError(t, os.WriteFile(path, []byte("not a font"), 0o644))
	_, err = LoadOpenTypeFont(path)
	require.Error(t, err)
	require.Error(t, err)
	require.Contains(t, err.Error(), "broken.otf")
}
