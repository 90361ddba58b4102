package otwrite

import (
	"context"
	"encoding/binary"
	"testing"

	"github.com/npillmayer/otcodec/ot"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/require"
)

func testTables() map[ot.Tag]FontWrite {
	return map[ot.Tag]FontWrite{
		ot.T("head"): &Head{Head: ot.Head{Version: ot.Version1_0MM, UnitsPerEm: 1000}},
		ot.T("maxp"): &Maxp{NumGlyphs: 3},
		ot.T("name"): &Name{Records: []NameRecord{
			{PlatformID: ot.PlatformWindows, EncodingID: 1, LanguageID: 0x409, NameID: 1, Value: "Test"},
		}},
		ot.T("post"): &Post{
			Header:     ot.PostHeader{Version: ot.Version2_0},
			GlyphNames: []string{".notdef", "A", "a.swash"},
		},
	}
}

func TestDumpAll(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.otwrite")
	defer teardown()
	//
	tables := testTables()
	out, err := DumpAll(context.Background(), tables, 2)
	require.NoError(t, err)
	require.Len(t, out, len(tables))
	require.Len(t, out[ot.T("head")], ot.HeadSize)
	require.Len(t, out[ot.T("maxp")], 6)
	//
	tables[ot.T("maxp")] = &Head{Head: ot.Head{UnitsPerEm: 1}}
	_, err = DumpAll(context.Background(), tables, 0)
	require.ErrorIs(t, err, ErrValidation)
	require.Error(t, err)
	require.Contains(t, err.Error(), "table maxp")
	//
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = DumpAll(ctx, testTables(), 1)
	require.ErrorIs(t, err, context.Canceled)
}

func TestFontBuilder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.otwrite")
	defer teardown()
	//
	builder := NewFontBuilder(WithConcurrency(2))
	for tag, table := range testTables() {
		builder.Add(tag, table)
	}
	builder.AddRaw(ot.T("zzzz"), []byte{1, 2, 3})
	font, err := builder.Build(context.Background())
	require.NoError(t, err)
	//
	// 5 tables: entrySelector 2, searchRange 64, rangeShift 16
	require.Equal(t, ot.TrueTypeSfnt, binary.BigEndian.Uint32(font))
	require.Equal(t, []uint16{5, 64, 2, 16}, []uint16{
		binary.BigEndian.Uint16(font[4:]), binary.BigEndian.Uint16(font[6:]),
		binary.BigEndian.Uint16(font[8:]), binary.BigEndian.Uint16(font[10:]),
	})
	require.Zero(t, len(font)%4)
	require.Equal(t, uint32(0xB1B0AFBA), ot.TableChecksum(font))
	//
	otf, err := ot.ParseFont(font)
	require.NoError(t, err)
	require.Empty(t, otf.Errors())
	require.Empty(t, otf.Warnings())
	require.Equal(t, []ot.Tag{ot.T("head"), ot.T("maxp"), ot.T("name"), ot.T("post"), ot.T("zzzz")},
		otf.TableTags())
	for _, rec := range otf.TableRecords() {
		require.Zero(t, rec.Offset%4, "table %s", rec.Tag)
	}
	head, err := otf.Head()
	require.NoError(t, err)
	require.Equal(t, uint16(1000), head.UnitsPerEm)
	require.NotZero(t, head.ChecksumAdjustment)
	raw, ok := otf.TableData(ot.T("zzzz"))
	require.True(t, ok)
	require.Equal(t, []byte{1, 2, 3}, raw.Bytes())
	post, err := otf.Post()
	require.NoError(t, err)
	name, ok := post.GlyphName(2)
	require.True(t, ok)
	require.Equal(t, "a.swash", name)
}

func TestFontBuilderHeader(t *testing.T) {
	for _, tc := range []struct {
		n    int
		want [3]uint16 // searchRange, entrySelector, rangeShift
	}{
		{0, [3]uint16{0, 0, 0}},
		{1, [3]uint16{16, 0, 0}},
		{3, [3]uint16{32, 1, 16}},
		{8, [3]uint16{128, 3, 0}},
		{9, [3]uint16{128, 3, 16}},
	} {
		h := NewFontBuilder(WithSfntVersion(ot.CFFSfnt)).header(tc.n)
		require.Len(t, h, 12)
		require.Equal(t, ot.CFFSfnt, binary.BigEndian.Uint32(h))
		got := [3]uint16{
			binary.BigEndian.Uint16(h[6:]),
			binary.BigEndian.Uint16(h[8:]),
			binary.BigEndian.Uint16(h[10:]),
		}
		require.Equal(t, tc.want, got, "n=%d", tc.n)
	}
}
