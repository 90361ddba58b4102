package ot

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/require"
)

func postHeader(version Version16Dot16) be {
	return be{}.u32(uint32(version), uint32(FixedFromFloat(-12.5))).i16(-100, 50).u32(1, 0, 0, 0, 0)
}

func TestStandardMacGlyphNames(t *testing.T) {
	require.Len(t, StandardMacGlyphNames, 258)
	require.Equal(t, ".notdef", StandardMacGlyphNames[0])
	require.Equal(t, "A", StandardMacGlyphNames[36])
	require.Equal(t, "dcroat", StandardMacGlyphNames[257])
}

func TestPostVersions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	p, err := ReadPost(postHeader(Version1_0).data())
	require.NoError(t, err)
	require.IsType(t, PostV1{}, p)
	require.Equal(t, -12.5, p.Header().ItalicAngle.Float())
	require.Equal(t, FWord(-100), p.Header().UnderlinePosition)
	require.True(t, p.NumGlyphs().IsNone())
	name, ok := p.GlyphName(3)
	require.True(t, ok)
	require.Equal(t, "space", name)
	//
	p, err = ReadPost(postHeader(Version3_0).data())
	require.NoError(t, err)
	_, ok = p.GlyphName(3)
	require.False(t, ok, "version 3.0 has no glyph names")
	//
	v2 := postHeader(Version2_0).u16(4).u16(0, 36, 258, 259)
	v2 = v2.u8(5).u8([]byte("alpha")...).u8(4).u8([]byte("beta")...)
	p, err = ReadPost(v2.data())
	require.NoError(t, err)
	require.Equal(t, uint16(4), p.NumGlyphs().Or(0))
	for gid, want := range []string{".notdef", "A", "alpha", "beta"} {
		name, ok := p.GlyphName(GlyphIndex(gid))
		require.True(t, ok)
		require.Equal(t, want, name)
	}
	_, ok = p.GlyphName(4)
	require.False(t, ok)
	//
	v25 := postHeader(Version2_5).u16(2).u8(3, 0xff) // gid 0 → 3, gid 1 → 0
	p, err = ReadPost(v25.data())
	require.NoError(t, err)
	name, _ = p.GlyphName(0)
	require.Equal(t, "space", name)
	name, _ = p.GlyphName(1)
	require.Equal(t, ".notdef", name)
}

func TestPostV2TruncatedStrings(t *testing.T) {
	v2 := postHeader(Version2_0).u16(1).u16(258).u8(10).u8([]byte("abc")...)
	p, err := ReadPost(v2.data())
	require.NoError(t, err)
	_, ok := p.GlyphName(0)
	require.False(t, ok, "truncated string data must not produce a name")
	// glyph name index beyond the data
	_, err = ReadPost(postHeader(Version2_0).u16(3).u16(1).data())
	require.ErrorIs(t, err, ErrOutOfBounds)
}
