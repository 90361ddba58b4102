package otwrite

import (
	"github.com/npillmayer/otcodec/ot"
)

// ColorRecords is the color record array of 'CPAL'.
type ColorRecords []ot.ColorRecord

func (ColorRecords) TableType() string { return "ColorRecords" }

func (recs ColorRecords) Write(w *TableWriter) {
	for _, c := range recs {
		w.WriteBytes([]byte{c.Blue, c.Green, c.Red, c.Alpha})
	}
}

// Cpal is an owned 'CPAL' table. Palettes are slices of the color records,
// starting at ColorRecordIndices[i]; palettes may share records.
//
// The arrays of version 1 are written as null offsets if absent.
type Cpal struct {
	Version            uint16
	NumPaletteEntries  uint16
	ColorRecordIndices []uint16
	ColorRecords       ColorRecords
	PaletteTypes       ot.Option[Scalars[uint32]]
	PaletteLabels      ot.Option[Scalars[ot.NameID]]
	PaletteEntryLabels ot.Option[Scalars[ot.NameID]]
}

// CpalFromRead converts a 'CPAL' table read from a font.
func CpalFromRead(t ot.Cpal) (*Cpal, error) {
	cpal := &Cpal{
		Version:            t.Version,
		NumPaletteEntries:  t.NumPaletteEntries,
		ColorRecordIndices: t.ColorRecordIndices.Values(),
	}
	recs, err := t.ColorRecords()
	if err != nil {
		return nil, err
	}
	if arr, ok := recs.Unwrap(); ok {
		for _, c := range arr.All() {
			cpal.ColorRecords = append(cpal.ColorRecords, c)
		}
	}
	types, err := t.PaletteTypes()
	if err != nil {
		return nil, err
	}
	cpal.PaletteTypes = ot.Map(types, func(a ot.ScalarArray[uint32]) Scalars[uint32] {
		return a.Values()
	})
	labels, err := t.PaletteLabels()
	if err != nil {
		return nil, err
	}
	cpal.PaletteLabels = ot.Map(labels, nameIDs)
	entryLabels, err := t.PaletteEntryLabels()
	if err != nil {
		return nil, err
	}
	cpal.PaletteEntryLabels = ot.Map(entryLabels, nameIDs)
	return cpal, nil
}

func nameIDs(a ot.ScalarArray[uint16]) Scalars[ot.NameID] {
	ids := make(Scalars[ot.NameID], 0, a.Len())
	for _, v := range a.All() {
		ids = append(ids, ot.NameID(v))
	}
	return ids
}

func (*Cpal) TableType() string { return "CPAL" }

func (t *Cpal) Write(w *TableWriter) {
	w.WriteU16(t.Version)
	w.WriteU16(t.NumPaletteEntries)
	w.WriteU16(uint16(len(t.ColorRecordIndices)))
	w.WriteU16(uint16(len(t.ColorRecords)))
	w.WriteOffset(t.ColorRecords, 4)
	Scalars[uint16](t.ColorRecordIndices).Write(w)
	if t.Version == 0 {
		return
	}
	Nullable32(t.PaletteTypes).Write(w)
	Nullable32(t.PaletteLabels).Write(w)
	Nullable32(t.PaletteEntryLabels).Write(w)
}

func (t *Cpal) Validate(ctx *ValidationCtx) {
	ctx.InTable("CPAL", func(ctx *ValidationCtx) {
		numPalettes := len(t.ColorRecordIndices)
		ctx.CheckArrayLen("colorRecordIndices", numPalettes, 0xffff)
		ctx.CheckArrayLen("colorRecords", len(t.ColorRecords), 0xffff)
		ctx.InField("colorRecordIndices", func(ctx *ValidationCtx) {
			for i, first := range t.ColorRecordIndices {
				if int(first)+int(t.NumPaletteEntries) > len(t.ColorRecords) {
					ctx.InArray(i, func(ctx *ValidationCtx) {
						ctx.Reportf("palette at %d with %d entries exceeds %d color records",
							first, t.NumPaletteEntries, len(t.ColorRecords))
					})
				}
			}
		})
		if t.Version > 1 {
			ctx.InField("version", func(ctx *ValidationCtx) {
				ctx.Reportf("cannot write version %d", t.Version)
			})
		}
		checkLen := func(field string, n int, ok bool, want int) {
			if !ok {
				return
			}
			ctx.InField(field, func(ctx *ValidationCtx) {
				if t.Version == 0 {
					ctx.Report("requires version 1")
				} else if n != want {
					ctx.Reportf("has %d elements, expected %d", n, want)
				}
			})
		}
		types, ok := t.PaletteTypes.Unwrap()
		checkLen("paletteTypes", len(types), ok, numPalettes)
		labels, ok := t.PaletteLabels.Unwrap()
		checkLen("paletteLabels", len(labels), ok, numPalettes)
		entryLabels, ok := t.PaletteEntryLabels.Unwrap()
		checkLen("paletteEntryLabels", len(entryLabels), ok, int(t.NumPaletteEntries))
	})
}
