package ot

import (
	"image/color"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/require"
)

// cpalTable builds a CPAL table with 2 palettes of 2 entries each.
func cpalTable(version uint16, v1offsets ...uint32) be {
	headerSize := 12 + 2*2
	if version >= 1 {
		headerSize += 12
	}
	tbl := be{}.u16(version, 2, 2, 3).u32(uint32(headerSize)).u16(0, 1)
	if version >= 1 {
		tbl = tbl.u32(v1offsets...)
	}
	// BGRA: red, green, blue
	return tbl.u8(0, 0, 0xff, 0xff).u8(0, 0xff, 0, 0xff).u8(0xff, 0, 0, 0x80)
}

func TestCpalVersion0(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	cpal, err := ReadCpal(cpalTable(0).data())
	require.NoError(t, err)
	require.True(t, cpal.PaletteTypesArrayOffset.IsNone())
	types, err := cpal.PaletteTypes()
	require.NoError(t, err)
	require.True(t, types.IsNone(), "version 0 has no palette types")
	//
	p0, err := cpal.Palette(0)
	require.NoError(t, err)
	require.Equal(t, color.NRGBA{R: 0xff, A: 0xff}, p0[0].NRGBA())
	require.Equal(t, color.NRGBA{G: 0xff, A: 0xff}, p0[1].NRGBA())
	p1, err := cpal.Palette(1) // palettes may share color records
	require.NoError(t, err)
	require.Equal(t, p0[1], p1[0])
	require.Equal(t, color.NRGBA{B: 0xff, A: 0x80}, p1[1].NRGBA())
	_, err = cpal.Palette(2)
	require.ErrorIs(t, err, ErrOutOfBounds)
}

func TestCpalVersion1(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	// header 28 bytes + 12 bytes colors = 40: types at 40, labels null, entry labels at 48
	tbl := cpalTable(1, 40, 0, 48)
	tbl = tbl.u32(PaletteUsableWithDarkBackground, 0).u16(256, uint16(NoNameID))
	cpal, err := ReadCpal(tbl.data())
	require.NoError(t, err)
	types, err := cpal.PaletteTypes()
	require.NoError(t, err)
	flags, ok := types.Unwrap()
	require.True(t, ok)
	require.Equal(t, []uint32{PaletteUsableWithDarkBackground, 0}, flags.Values())
	labels, err := cpal.PaletteLabels()
	require.NoError(t, err)
	require.True(t, labels.IsNone(), "null offset in version 1 is absent")
	entryLabels, err := cpal.PaletteEntryLabels()
	require.NoError(t, err)
	require.Equal(t, []uint16{256, uint16(NoNameID)}, entryLabels.MustUnwrap().Values())
}

func TestCpalBrokenIndices(t *testing.T) {
	tbl := be{}.u16(0, 2, 1, 1).u32(14).u16(1).u8(1, 2, 3, 4)
	cpal, err := ReadCpal(tbl.data())
	require.NoError(t, err)
	_, err = cpal.Palette(0)
	require.ErrorIs(t, err, ErrInvalidOffset)
}
