package otcodec

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

func buildFont(t *testing.T, names ...otwrite.NameRecord) []byte {
	builder := otwrite.NewFontBuilder()
	builder.Add(ot.T("head"), &otwrite.Head{Head: ot.Head{Version: ot.Version1_0MM, UnitsPerEm: 1000}})
	builder.Add(ot.T("maxp"), &otwrite.Maxp{NumGlyphs: 1})
	builder.Add(ot.T("name"), &otwrite.Name{Records: names})
	b, err := builder.Build(context.Background())
	require.NoError(t, err)
	return b
}

func name(id ot.NameID, value string) otwrite.NameRecord {
	return otwrite.NameRecord{PlatformID: ot.PlatformWindows, EncodingID: 1, LanguageID: 0x409,
		NameID: id, Value: value}
}

func TestFamilyName(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	otf, err := FromBinary(buildFont(t, name(1, "Legacy"), name(2, "Bold Italic"), name(16, "Family")))
	require.NoError(t, err)
	family, subfamily := FamilyName(otf)
	require.Equal(t, "Family", family)
	require.Equal(t, "Bold Italic", subfamily)
	//
	otf, err = FromBinary(buildFont(t, name(1, "Legacy"), name(2, "Regular"), name(17, "Condensed")))
	require.NoError(t, err)
	family, subfamily = FamilyName(otf)
	require.Equal(t, "Legacy", family)
	require.Equal(t, "Condensed", subfamily)
}

func TestLoadFile(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	path := filepath.Join(t.TempDir(), "family.ttf")
	require.NoError(t, os.WriteFile(path, buildFont(t, name(1, "On Disk")), 0o644))
	otf, err := LoadFile(path)
	require.NoError(t, err)
	family, _ := FamilyName(otf)
	require.Equal(t, "On Disk", family)
	//
	_, err = LoadFile(filepath.Join(t.TempDir(), "nothing.ttf"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
