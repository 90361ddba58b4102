package ot

import (
	"iter"
	"sort"
)

// --- Coverage --------------------------------------------------------------

// Coverage tables specify the glyphs affected by a substitution or positioning
// operation, and assign each covered glyph a coverage index.
//
// Format 1 lists covered glyphs individually; format 2 lists ranges of glyphs.
type Coverage interface {
	Format() uint16
	// CoverageIndex returns the coverage index of g, if g is covered.
	CoverageIndex(g GlyphIndex) (int, bool)
	// Glyphs iterates over covered glyphs in coverage index order.
	Glyphs() iter.Seq[GlyphIndex]
	isCoverage()
}

// RangeRecord is a range of glyphs in Coverage format 2 and ClassDef format 2.
// For Coverage, Value is the coverage index of Start; for ClassDef, it is the class.
type RangeRecord struct {
	Start, End GlyphIndex
	Value      uint16
}

// RangeRecordLayout is the layout of a 6-byte RangeRecord.
var RangeRecordLayout = RecordLayout[RangeRecord]{
	Size: 6,
	Read: func(b []byte) RangeRecord {
		return RangeRecord{Start: GlyphIndex(u16(b)), End: GlyphIndex(u16(b[2:])), Value: u16(b[4:])}
	},
}

// CoverageFormat1 lists covered glyphs, sorted by glyph index.
type CoverageFormat1 struct {
	GlyphArray ScalarArray[GlyphIndex]
}

// CoverageFormat2 lists ranges of covered glyphs, sorted by start glyph.
type CoverageFormat2 struct {
	RangeRecords Array[RangeRecord]
}

func (CoverageFormat1) isCoverage()    {}
func (CoverageFormat2) isCoverage()    {}
func (CoverageFormat1) Format() uint16 { return 1 }
func (CoverageFormat2) Format() uint16 { return 2 }

func (cov CoverageFormat1) CoverageIndex(g GlyphIndex) (int, bool) {
	n := cov.GlyphArray.Len()
	i := sort.Search(n, func(i int) bool { return cov.GlyphArray.Get(i) >= g })
	if i < n && cov.GlyphArray.Get(i) == g {
		return i, true
	}
	return 0, false
}

func (cov CoverageFormat1) Glyphs() iter.Seq[GlyphIndex] {
	return func(yield func(GlyphIndex) bool) {
		for _, g := range cov.GlyphArray.All() {
			if !yield(g) {
				return
			}
		}
	}
}

func (cov CoverageFormat2) CoverageIndex(g GlyphIndex) (int, bool) {
	rec, ok := findRange(cov.RangeRecords, g)
	if !ok {
		return 0, false
	}
	return int(rec.Value) + int(g-rec.Start), true
}

func (cov CoverageFormat2) Glyphs() iter.Seq[GlyphIndex] {
	return rangeGlyphs(cov.RangeRecords)
}

func findRange(ranges Array[RangeRecord], g GlyphIndex) (RangeRecord, bool) {
	n := ranges.Len()
	i := sort.Search(n, func(i int) bool {
		r, _ := ranges.At(i)
		return r.End >= g
	})
	if i < n {
		if r, _ := ranges.At(i); r.Start <= g {
			return r, true
		}
	}
	return RangeRecord{}, false
}

func rangeGlyphs(ranges Array[RangeRecord]) iter.Seq[GlyphIndex] {
	return func(yield func(GlyphIndex) bool) {
		for _, r := range ranges.All() {
			for g := int(r.Start); g <= int(r.End); g++ {
				if !yield(GlyphIndex(g)) {
					return
				}
			}
		}
	}
}

var coverageVariants = map[uint16]Reader[Coverage]{
	1: func(data FontData) (Coverage, error) {
		count, err := ReadAt[uint16](data, 2)
		if err != nil {
			return nil, annotate(err, "Coverage", "glyphCount")
		}
		glyphs, err := NewScalarArray[GlyphIndex](data, 4, int(count))
		if err != nil {
			return nil, annotate(err, "Coverage", "glyphArray")
		}
		return CoverageFormat1{GlyphArray: glyphs}, nil
	},
	2: func(data FontData) (Coverage, error) {
		count, err := ReadAt[uint16](data, 2)
		if err != nil {
			return nil, annotate(err, "Coverage", "rangeCount")
		}
		ranges, err := NewArray(data, 4, int(count), RangeRecordLayout)
		if err != nil {
			return nil, annotate(err, "Coverage", "rangeRecords")
		}
		return CoverageFormat2{RangeRecords: ranges}, nil
	},
}

// ReadCoverage reads a Coverage table, dispatching on its format.
func ReadCoverage(data FontData) (Coverage, error) {
	return ReadFormat(data, "Coverage", coverageVariants)
}

// --- ClassDef --------------------------------------------------------------

// ClassDef groups glyphs into classes, denoted as integer values.
// Glyphs not assigned to a class fall into class 0.
type ClassDef interface {
	Format() uint16
	Class(g GlyphIndex) uint16
	// Classes iterates over all glyphs with a non-zero class.
	Classes() iter.Seq2[GlyphIndex, uint16]
	isClassDef()
}

// ClassDefFormat1 assigns classes to a consecutive run of glyphs.
type ClassDefFormat1 struct {
	StartGlyphID    GlyphIndex
	ClassValueArray ScalarArray[uint16]
}

// ClassDefFormat2 assigns classes to ranges of glyphs.
type ClassDefFormat2 struct {
	ClassRangeRecords Array[RangeRecord]
}

func (ClassDefFormat1) isClassDef()    {}
func (ClassDefFormat2) isClassDef()    {}
func (ClassDefFormat1) Format() uint16 { return 1 }
func (ClassDefFormat2) Format() uint16 { return 2 }

func (cd ClassDefFormat1) Class(g GlyphIndex) uint16 {
	if g < cd.StartGlyphID {
		return 0
	}
	return cd.ClassValueArray.Get(int(g - cd.StartGlyphID))
}

func (cd ClassDefFormat1) Classes() iter.Seq2[GlyphIndex, uint16] {
	return func(yield func(GlyphIndex, uint16) bool) {
		for i, cls := range cd.ClassValueArray.All() {
			if cls != 0 && !yield(cd.StartGlyphID+GlyphIndex(i), cls) {
				return
			}
		}
	}
}

// Class scans the ranges linearly: class ranges are not reliably sorted in
// the wild.
func (cd ClassDefFormat2) Class(g GlyphIndex) uint16 {
	for _, r := range cd.ClassRangeRecords.All() {
		if r.Start <= g && g <= r.End {
			return r.Value
		}
	}
	return 0
}

func (cd ClassDefFormat2) Classes() iter.Seq2[GlyphIndex, uint16] {
	return func(yield func(GlyphIndex, uint16) bool) {
		for _, r := range cd.ClassRangeRecords.All() {
			if r.Value == 0 {
				continue
			}
			for g := int(r.Start); g <= int(r.End); g++ {
				if !yield(GlyphIndex(g), r.Value) {
					return
				}
			}
		}
	}
}

var classDefVariants = map[uint16]Reader[ClassDef]{
	1: func(data FontData) (ClassDef, error) {
		c := data.Cursor()
		Advance[uint16](c)
		start, err := Read[GlyphIndex](c)
		if err != nil {
			return nil, annotate(err, "ClassDef", "startGlyphID")
		}
		count, err := Read[uint16](c)
		if err != nil {
			return nil, annotate(err, "ClassDef", "glyphCount")
		}
		values, err := ReadScalarArray[uint16](c, int(count))
		if err != nil {
			return nil, annotate(err, "ClassDef", "classValueArray")
		}
		return ClassDefFormat1{StartGlyphID: start, ClassValueArray: values}, nil
	},
	2: func(data FontData) (ClassDef, error) {
		count, err := ReadAt[uint16](data, 2)
		if err != nil {
			return nil, annotate(err, "ClassDef", "classRangeCount")
		}
		ranges, err := NewArray(data, 4, int(count), RangeRecordLayout)
		if err != nil {
			return nil, annotate(err, "ClassDef", "classRangeRecords")
		}
		return ClassDefFormat2{ClassRangeRecords: ranges}, nil
	},
}

// ReadClassDef reads a ClassDef table, dispatching on its format.
func ReadClassDef(data FontData) (ClassDef, error) {
	return ReadFormat(data, "ClassDef", classDefVariants)
}
