package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/npillmayer/otcodec/ot"
	"github.com/npillmayer/otcodec/otwrite"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/require"
)

func buildTestFont(t *testing.T) []byte {
	builder := otwrite.NewFontBuilder()
	builder.Add(ot.T("head"), &otwrite.Head{Head: ot.Head{Version: ot.Version1_0MM, UnitsPerEm: 1000}})
	builder.Add(ot.T("hhea"), &otwrite.Hhea{Hhea: ot.Hhea{Version: ot.Version1_0MM, Ascender: 800,
		Descender: -200, NumberOfHMetrics: 2}})
	builder.Add(ot.T("maxp"), &otwrite.Maxp{NumGlyphs: 2})
	builder.Add(ot.T("post"), &otwrite.Post{
		Header:     ot.PostHeader{Version: ot.Version2_0, ItalicAngle: -12 << 16},
		GlyphNames: []string{".notdef", "uni2603"},
	})
	builder.Add(ot.T("name"), &otwrite.Name{Records: []otwrite.NameRecord{
		{PlatformID: ot.PlatformWindows, EncodingID: 1, LanguageID: 0x409, NameID: 1, Value: "Snow"},
		{PlatformID: ot.PlatformMac, NameID: 1, Value: "Snow"},
		{PlatformID: ot.PlatformWindows, EncodingID: 1, LanguageID: 0x409, NameID: 256, Value: "Weight"},
	}})
	builder.Add(ot.T("CPAL"), &otwrite.Cpal{
		NumPaletteEntries:  1,
		ColorRecordIndices: []uint16{0},
		ColorRecords:       otwrite.ColorRecords{{Blue: 0xff, Alpha: 0xff}},
	})
	builder.Add(ot.T("fvar"), &otwrite.Fvar{Arrays: &otwrite.AxisInstanceArrays{
		Axes: []ot.VariationAxisRecord{
			{AxisTag: ot.T("wght"), MinValue: 100 << 16, DefaultValue: 400 << 16, MaxValue: 900 << 16,
				AxisNameID: 256},
		},
	}})
	builder.AddRaw(ot.T("glyf"), []byte{0, 0, 0, 0, 1})
	b, err := builder.Build(context.Background())
	require.NoError(t, err)
	return b
}

func TestRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	font := buildTestFont(t)
	otf, err := ot.ParseFont(font)
	require.NoError(t, err)
	results, builder, err := roundTrip(context.Background(), otf, 2)
	require.NoError(t, err)
	require.Len(t, results, 8)
	for _, res := range results {
		require.NoError(t, res.Err, res.Tag.String())
		if res.Tag == ot.T("glyf") {
			require.False(t, res.Supported)
			continue
		}
		require.True(t, res.Supported, res.Tag.String())
		require.True(t, res.Identical, res.String())
	}
	rebuilt, err := builder.Build(context.Background())
	require.NoError(t, err)
	require.Equal(t, font, rebuilt)
}

func TestFirstDiff(t *testing.T) {
	require.Equal(t, -1, firstDiff([]byte{1, 2}, []byte{1, 2}))
	require.Equal(t, 1, firstDiff([]byte{1, 2}, []byte{1, 3}))
	require.Equal(t, 2, firstDiff([]byte{1, 2}, []byte{1, 2, 0}))
	require.Equal(t, 0, firstDiff(nil, []byte{1}))
}

func TestDeltasOutput(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.otvar")
	defer teardown()
	//
	values, err := parseNumbers([]string{"0,0,0,0", "2 3", "-300"}, -32768, 32767)
	require.NoError(t, err)
	require.Equal(t, []int64{0, 0, 0, 0, 2, 3, -300}, values)
	_, err = parseNumbers([]string{"70000"}, 0, 65535)
	require.Error(t, err)
	//
	var out bytes.Buffer
	require.NoError(t, printDeltas(&out, []int16{0, 0, 0, 0, 2, 3, -300}))
	require.Contains(t, out.String(), "7 deltas packed into 7 bytes: 8301020340fed4")
	//
	out.Reset()
	require.NoError(t, decodePacked(&out, "83 01 02 03 40 fe d4", false, -1))
	require.Equal(t, "7 bytes: [0 0 0 0 2 3 -300]\n", out.String())
	//
	out.Reset()
	require.NoError(t, decodePacked(&out, "00", true, 3))
	require.Equal(t, "1 bytes, all=true: [0 1 2]\n", out.String())
	//
	out.Reset()
	require.Error(t, printPoints(&out, []uint16{5, 2}))
	require.Empty(t, out.String())
	//
	many := make([]uint16, 0x8000)
	for i := range many {
		many[i] = uint16(i)
	}
	err = printPoints(&out, many)
	require.Error(t, err)
	require.Contains(t, err.Error(), "length cannot be stored in 15 bits")
	require.Empty(t, out.String())
}
