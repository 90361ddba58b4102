package ot

import "image/color"

// --- CPAL ------------------------------------------------------------------

// ColorRecord is a color in BGRA byte order, as stored in 'CPAL'.
type ColorRecord struct {
	Blue, Green, Red, Alpha uint8
}

// NRGBA converts a color record to a Go color (CPAL colors are not premultiplied).
func (c ColorRecord) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.Red, G: c.Green, B: c.Blue, A: c.Alpha}
}

// ColorRecordLayout is the layout of a 4-byte ColorRecord.
var ColorRecordLayout = RecordLayout[ColorRecord]{
	Size: 4,
	Read: func(b []byte) ColorRecord {
		return ColorRecord{Blue: b[0], Green: b[1], Red: b[2], Alpha: b[3]}
	},
}

// Palette type flags of 'CPAL' version 1.
const (
	PaletteUsableWithLightBackground uint32 = 0x0001
	PaletteUsableWithDarkBackground  uint32 = 0x0002
)

// NoNameID marks a missing palette label.
const NoNameID NameID = 0xFFFF

// Cpal is the color palette table.
//
// Version 1 appends three offsets to the header; readers for version 0 tables
// report them as absent.
type Cpal struct {
	data                    FontData
	Version                 uint16
	NumPaletteEntries       uint16
	NumPalettes             uint16
	NumColorRecords         uint16
	ColorRecordsArrayOffset Offset32
	ColorRecordIndices      ScalarArray[uint16]
	// version 1 offsets, nullable
	PaletteTypesArrayOffset       Option[Offset32]
	PaletteLabelsArrayOffset      Option[Offset32]
	PaletteEntryLabelsArrayOffset Option[Offset32]
}

// ReadCpal reads a 'CPAL' table.
func ReadCpal(data FontData) (Cpal, error) {
	t := Cpal{data: data}
	c := data.Cursor()
	var err error
	if t.Version, err = Read[uint16](c); err != nil {
		return t, annotate(err, "CPAL", "version")
	}
	if err = data.Check(0, 12); err != nil {
		return t, annotate(err, "CPAL", "header")
	}
	t.NumPaletteEntries, _ = Read[uint16](c)
	t.NumPalettes, _ = Read[uint16](c)
	t.NumColorRecords, _ = Read[uint16](c)
	t.ColorRecordsArrayOffset, _ = Read[Offset32](c)
	if t.ColorRecordIndices, err = ReadScalarArray[uint16](c, int(t.NumPalettes)); err != nil {
		return t, annotate(err, "CPAL", "colorRecordIndices")
	}
	if CompatibleVersion(t.Version, 1) {
		for _, field := range []struct {
			off  *Option[Offset32]
			name string
		}{
			{&t.PaletteTypesArrayOffset, "paletteTypesArrayOffset"},
			{&t.PaletteLabelsArrayOffset, "paletteLabelsArrayOffset"},
			{&t.PaletteEntryLabelsArrayOffset, "paletteEntryLabelsArrayOffset"},
		} {
			off, err := Read[Offset32](c)
			if err != nil {
				return t, annotate(err, "CPAL", field.name)
			}
			*field.off = Some(off)
		}
	}
	return t, nil
}

// Cpal reads the font's 'CPAL' table.
func (f *FontRef) Cpal() (Cpal, error) {
	return readTable(f, "CPAL", ReadCpal)
}

func colorRecords(d FontData, count uint16) (Array[ColorRecord], error) {
	return NewArray(d, 0, int(count), ColorRecordLayout)
}

func u16Array(d FontData, count uint16) (ScalarArray[uint16], error) {
	return NewScalarArray[uint16](d, 0, int(count))
}

func u32Array(d FontData, count uint16) (ScalarArray[uint32], error) {
	return NewScalarArray[uint32](d, 0, int(count))
}

// ColorRecords resolves the color records array, sized by numColorRecords.
func (t Cpal) ColorRecords() (Option[Array[ColorRecord]], error) {
	return ResolveNullableWithArgs(t.ColorRecordsArrayOffset, t.data, "colorRecordsArrayOffset",
		t.NumColorRecords, colorRecords)
}

// optionalArray resolves a version-1 offset: absent for version 0, absent for a
// null offset, otherwise an array of count elements.
func optionalArray[T any](off Option[Offset32], host FontData, name string, count uint16,
	read ReaderWithArgs[T, uint16]) (Option[T], error) {
	//
	o, ok := off.Unwrap()
	if !ok {
		return None[T](), nil
	}
	return ResolveNullableWithArgs(o, host, name, count, read)
}

// PaletteTypes resolves the palette type flags (version 1), one per palette.
func (t Cpal) PaletteTypes() (Option[ScalarArray[uint32]], error) {
	return optionalArray(t.PaletteTypesArrayOffset, t.data, "paletteTypesArrayOffset",
		t.NumPalettes, u32Array)
}

// PaletteLabels resolves the palette name IDs (version 1), one per palette.
func (t Cpal) PaletteLabels() (Option[ScalarArray[uint16]], error) {
	return optionalArray(t.PaletteLabelsArrayOffset, t.data, "paletteLabelsArrayOffset",
		t.NumPalettes, u16Array)
}

// PaletteEntryLabels resolves the palette entry name IDs (version 1), one per entry.
func (t Cpal) PaletteEntryLabels() (Option[ScalarArray[uint16]], error) {
	return optionalArray(t.PaletteEntryLabelsArrayOffset, t.data, "paletteEntryLabelsArrayOffset",
		t.NumPaletteEntries, u16Array)
}

// Palette returns the colors of palette i.
func (t Cpal) Palette(i int) ([]ColorRecord, error) {
	first, ok := t.ColorRecordIndices.At(i)
	if !ok {
		return nil, &ReadError{Kind: OutOfBounds, Table: "CPAL", Field: "colorRecordIndices",
			Pos: t.data.base + 12, Raw: uint32(i)}
	}
	recs, err := t.ColorRecords()
	if err != nil {
		return nil, err
	}
	all, ok := recs.Unwrap()
	if !ok {
		return nil, errOffset(NullOffset, "CPAL", "colorRecordsArrayOffset", t.data.base+8, 0)
	}
	palette := make([]ColorRecord, 0, t.NumPaletteEntries)
	for j := 0; j < int(t.NumPaletteEntries); j++ {
		rec, ok := all.At(int(first) + j)
		if !ok {
			return nil, &ReadError{Kind: InvalidOffset, Table: "CPAL", Field: "colorRecordIndices",
				Pos: t.data.base + 12 + 2*i, Raw: uint32(first)}
		}
		palette = append(palette, rec)
	}
	return palette, nil
}
