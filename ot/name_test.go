package ot

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/require"
)

func utf16be(s string) be {
	b := be{}
	for _, r := range s {
		b = b.u16(uint16(r))
	}
	return b
}

func TestNameVersion0(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	family := utf16be("Grüße")
	mac := []byte{'C', 'a', 'f', 0x8e} // "Café" in MacRoman
	storage := append(append(be{}, family...), mac...)
	storageOffset := uint16(6 + 3*12)
	tbl := be{}.u16(0, 3, storageOffset)
	tbl = tbl.u16(PlatformWindows, 1, 0x409, 1, uint16(len(family)), 0)
	tbl = tbl.u16(PlatformMac, 0, 0, 2, uint16(len(mac)), uint16(len(family)))
	tbl = tbl.u16(PlatformWindows, 99, 0x409, 4, 2, 0) // unknown encoding
	tbl = append(tbl, storage...)
	//
	name, err := ReadName(tbl.data())
	require.NoError(t, err)
	require.Equal(t, uint16(0), name.Version)
	require.Equal(t, 3, name.Records.Len())
	require.True(t, name.LangTagRecords.IsNone())
	var got []string
	for rec, entry := range name.Entries() {
		got = append(got, entry.String())
		if rec.NameID == 4 {
			require.Equal(t, EncodingUnknown, entry.Encoding)
		}
	}
	require.Equal(t, []string{"Grüße", "Café", ""}, got)
	_, ok := name.LangTag(0)
	require.False(t, ok)
}

func TestNameVersion1LangTags(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	lang := utf16be("de-CH")
	str := utf16be("Regular")
	storageOffset := uint16(6 + 12 + 2 + 4)
	tbl := be{}.u16(1, 1, storageOffset)
	tbl = tbl.u16(PlatformWindows, 1, 0x8000, 2, uint16(len(str)), 0)
	tbl = tbl.u16(1).u16(uint16(len(lang)), uint16(len(str)))
	tbl = append(append(tbl, str...), lang...)
	//
	name, err := ReadName(tbl.data())
	require.NoError(t, err)
	require.True(t, name.LangTagRecords.IsSome())
	rec, _ := name.Records.At(0)
	tag, ok := name.LangTag(int(rec.LanguageID - 0x8000))
	require.True(t, ok)
	require.Equal(t, "de-CH", tag)
	entry, err := name.Resolve(rec)
	require.NoError(t, err)
	require.Equal(t, "Regular", entry.String())
}

func TestNameBrokenStorage(t *testing.T) {
	// record pointing beyond the storage area
	tbl := be{}.u16(0, 1, 18).u16(PlatformWindows, 1, 0x409, 1, 10, 0).u16(0x41)
	name, err := ReadName(tbl.data())
	require.NoError(t, err)
	rec, _ := name.Records.At(0)
	_, err = name.Resolve(rec)
	require.ErrorIs(t, err, ErrOutOfBounds)
	n := 0
	for range name.Entries() {
		n++
	}
	require.Equal(t, 0, n, "broken records are skipped")
	// null storage offset
	tbl = be{}.u16(0, 1, 0).u16(PlatformWindows, 1, 0x409, 1, 2, 0).u16(0x41)
	name, err = ReadName(tbl.data())
	require.NoError(t, err)
	rec, _ = name.Records.At(0)
	_, err = name.Resolve(rec)
	require.ErrorIs(t, err, ErrNullOffset)
	// unknown version
	_, err = ReadName(be{}.u16(2, 0, 6).data())
	require.ErrorIs(t, err, ErrInvalidFormat)
}
