package otwrite

import (
	"slices"

	"github.com/npillmayer/otcodec/ot"
)

// --- Coverage --------------------------------------------------------------

// Coverage is an owned Coverage table, format 1 or 2.
type Coverage interface {
	FontWrite
	Format() uint16
}

// CoverageFormat1 lists covered glyphs individually.
type CoverageFormat1 struct {
	Glyphs []ot.GlyphIndex
}

// CoverageFormat2 lists ranges of covered glyphs. Range values are coverage
// indices of the range start glyphs.
type CoverageFormat2 struct {
	Ranges []ot.RangeRecord
}

func (*CoverageFormat1) Format() uint16    { return 1 }
func (*CoverageFormat2) Format() uint16    { return 2 }
func (*CoverageFormat1) TableType() string { return "Coverage" }
func (*CoverageFormat2) TableType() string { return "Coverage" }

func (cov *CoverageFormat1) Write(w *TableWriter) {
	w.WriteU16(1)
	w.WriteU16(uint16(len(cov.Glyphs)))
	Scalars[ot.GlyphIndex](cov.Glyphs).Write(w)
}

func (cov *CoverageFormat2) Write(w *TableWriter) {
	w.WriteU16(2)
	writeRanges(w, cov.Ranges)
}

func writeRanges(w *TableWriter, ranges []ot.RangeRecord) {
	w.WriteU16(uint16(len(ranges)))
	for _, r := range ranges {
		Put(w, r.Start)
		Put(w, r.End)
		w.WriteU16(r.Value)
	}
}

func (cov *CoverageFormat1) Validate(ctx *ValidationCtx) {
	ctx.InTable("Coverage", func(ctx *ValidationCtx) {
		ctx.CheckArrayLen("glyphArray", len(cov.Glyphs), 0xffff)
		for i := 1; i < len(cov.Glyphs); i++ {
			if cov.Glyphs[i] <= cov.Glyphs[i-1] {
				ctx.InField("glyphArray", func(ctx *ValidationCtx) {
					ctx.InArray(i, func(ctx *ValidationCtx) {
						ctx.Reportf("glyph %d not in ascending order", cov.Glyphs[i])
					})
				})
				return
			}
		}
	})
}

func (cov *CoverageFormat2) Validate(ctx *ValidationCtx) {
	ctx.InTable("Coverage", func(ctx *ValidationCtx) {
		ctx.CheckArrayLen("rangeRecords", len(cov.Ranges), 0xffff)
		inx := 0
		ctx.InField("rangeRecords", func(ctx *ValidationCtx) {
			for i, r := range cov.Ranges {
				ctx.InArray(i, func(ctx *ValidationCtx) {
					switch {
					case r.End < r.Start:
						ctx.Reportf("range end %d before start %d", r.End, r.Start)
					case i > 0 && r.Start <= cov.Ranges[i-1].End:
						ctx.Report("ranges overlap or are not sorted")
					case int(r.Value) != inx:
						ctx.Reportf("start coverage index %d, expected %d", r.Value, inx)
					}
				})
				inx += int(r.End) - int(r.Start) + 1
			}
		})
	})
}

// glyphRanges groups sorted glyphs into ranges of consecutive glyph IDs,
// calling value for the start of each range.
func glyphRanges(glyphs []ot.GlyphIndex, value func(i int) uint16) []ot.RangeRecord {
	var ranges []ot.RangeRecord
	for i, g := range glyphs {
		if n := len(ranges); n > 0 && ranges[n-1].End+1 == g && value(i) == ranges[n-1].Value {
			ranges[n-1].End = g
			continue
		}
		ranges = append(ranges, ot.RangeRecord{Start: g, End: g, Value: value(i)})
	}
	return ranges
}

// BuildCoverage creates a Coverage table for a set of glyphs, choosing the
// format with the smaller encoding.
func BuildCoverage(glyphs []ot.GlyphIndex) Coverage {
	glyphs = slices.Clone(glyphs)
	slices.Sort(glyphs)
	glyphs = slices.Compact(glyphs)
	var ranges []ot.RangeRecord
	for i, g := range glyphs {
		if n := len(ranges); n > 0 && ranges[n-1].End+1 == g {
			ranges[n-1].End = g
			continue
		}
		ranges = append(ranges, ot.RangeRecord{Start: g, End: g, Value: uint16(i)})
	}
	if 6*len(ranges) < 2*len(glyphs) {
		return &CoverageFormat2{Ranges: ranges}
	}
	return &CoverageFormat1{Glyphs: glyphs}
}

// CoverageFromRead converts a Coverage table read from a font.
func CoverageFromRead(cov ot.Coverage) Coverage {
	switch c := cov.(type) {
	case ot.CoverageFormat1:
		return &CoverageFormat1{Glyphs: c.GlyphArray.Values()}
	case ot.CoverageFormat2:
		ranges := make([]ot.RangeRecord, 0, c.RangeRecords.Len())
		for _, r := range c.RangeRecords.All() {
			ranges = append(ranges, r)
		}
		return &CoverageFormat2{Ranges: ranges}
	}
	return nil
}

// --- ClassDef --------------------------------------------------------------

// ClassDef is an owned ClassDef table, format 1 or 2.
type ClassDef interface {
	FontWrite
	Format() uint16
}

// ClassDefFormat1 assigns classes to a consecutive run of glyphs.
type ClassDefFormat1 struct {
	StartGlyphID ot.GlyphIndex
	Classes      []uint16
}

// ClassDefFormat2 assigns classes to ranges of glyphs.
type ClassDefFormat2 struct {
	Ranges []ot.RangeRecord
}

func (*ClassDefFormat1) Format() uint16    { return 1 }
func (*ClassDefFormat2) Format() uint16    { return 2 }
func (*ClassDefFormat1) TableType() string { return "ClassDef" }
func (*ClassDefFormat2) TableType() string { return "ClassDef" }

func (cd *ClassDefFormat1) Write(w *TableWriter) {
	w.WriteU16(1)
	Put(w, cd.StartGlyphID)
	w.WriteU16(uint16(len(cd.Classes)))
	Scalars[uint16](cd.Classes).Write(w)
}

func (cd *ClassDefFormat2) Write(w *TableWriter) {
	w.WriteU16(2)
	writeRanges(w, cd.Ranges)
}

func (cd *ClassDefFormat1) Validate(ctx *ValidationCtx) {
	ctx.InTable("ClassDef", func(ctx *ValidationCtx) {
		ctx.CheckArrayLen("classValueArray", len(cd.Classes), 0xffff)
		if int(cd.StartGlyphID)+len(cd.Classes) > 0x10000 {
			ctx.InField("classValueArray", func(ctx *ValidationCtx) {
				ctx.Report("glyph IDs exceed 65535")
			})
		}
	})
}

func (cd *ClassDefFormat2) Validate(ctx *ValidationCtx) {
	ctx.InTable("ClassDef", func(ctx *ValidationCtx) {
		ctx.CheckArrayLen("classRangeRecords", len(cd.Ranges), 0xffff)
		ctx.InField("classRangeRecords", func(ctx *ValidationCtx) {
			for i, r := range cd.Ranges {
				if r.End < r.Start {
					ctx.InArray(i, func(ctx *ValidationCtx) {
						ctx.Reportf("range end %d before start %d", r.End, r.Start)
					})
				}
			}
		})
	})
}

// BuildClassDef creates a ClassDef table from a glyph to class mapping. Glyphs
// of class 0 are omitted. The format with the smaller encoding is chosen.
func BuildClassDef(classes map[ot.GlyphIndex]uint16) ClassDef {
	glyphs := make([]ot.GlyphIndex, 0, len(classes))
	for g, cls := range classes {
		if cls != 0 {
			glyphs = append(glyphs, g)
		}
	}
	slices.Sort(glyphs)
	if len(glyphs) == 0 {
		return &ClassDefFormat2{}
	}
	ranges := glyphRanges(glyphs, func(i int) uint16 { return classes[glyphs[i]] })
	first, last := glyphs[0], glyphs[len(glyphs)-1]
	span := int(last) - int(first) + 1
	if 6*len(ranges) < 2*span {
		return &ClassDefFormat2{Ranges: ranges}
	}
	values := make([]uint16, span)
	for _, g := range glyphs {
		values[g-first] = classes[g]
	}
	return &ClassDefFormat1{StartGlyphID: first, Classes: values}
}

// ClassDefFromRead converts a ClassDef table read from a font.
func ClassDefFromRead(cd ot.ClassDef) ClassDef {
	switch c := cd.(type) {
	case ot.ClassDefFormat1:
		return &ClassDefFormat1{StartGlyphID: c.StartGlyphID, Classes: c.ClassValueArray.Values()}
	case ot.ClassDefFormat2:
		ranges := make([]ot.RangeRecord, 0, c.ClassRangeRecords.Len())
		for _, r := range c.ClassRangeRecords.All() {
			ranges = append(ranges, r)
		}
		return &ClassDefFormat2{Ranges: ranges}
	}
	return nil
}
