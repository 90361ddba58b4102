package ot

import (
	"iter"
	"sort"
)

// sfnt version tags
const (
	TrueTypeSfnt uint32 = 0x00010000
	CFFSfnt      uint32 = 0x4f54544f // 'OTTO'
	AppleSfnt    uint32 = 0x74727565 // 'true'
	TTCTag       uint32 = 0x74746366 // 'ttcf'
)

// TableRecord is an entry of a font's table directory.
type TableRecord struct {
	Tag      Tag
	Checksum uint32
	Offset   uint32
	Length   uint32
}

const tableRecordSize = 16

var tableRecordLayout = RecordLayout[TableRecord]{
	Size: tableRecordSize,
	Read: func(b []byte) TableRecord {
		return TableRecord{
			Tag:      Tag(u32(b)),
			Checksum: u32(b[4:]),
			Offset:   u32(b[8:]),
			Length:   u32(b[12:]),
		}
	},
}

// FontRef is a reference to a single font within a font file: its table
// directory and the file's bytes. Tables are located on demand.
//
// If the font file is an OpenType Font Collection file, the table directory
// of each font is located through the collection header (see CollectionRef).
// Table offsets are always relative to the start of the file.
type FontRef struct {
	data        FontData // the whole file
	SfntVersion uint32
	NumTables   uint16
	records     Array[TableRecord]
}

// NewFontRef reads the table directory of a single font file.
// Font collections are rejected with an error of kind InvalidCollection; use
// NewFileRef for files which may be collections.
func NewFontRef(b []byte) (*FontRef, error) {
	data := NewFontData(b)
	if tag, err := ReadAt[uint32](data, 0); err == nil && tag == TTCTag {
		return nil, &ReadError{Kind: InvalidCollection, Table: "sfnt", Field: "sfntVersion", Raw: tag}
	}
	return fontRefAt(data, 0)
}

// fontRefAt reads a table directory starting at position dir of the file.
func fontRefAt(file FontData, dir int) (*FontRef, error) {
	// https://www.microsoft.com/typography/otspec/otff.htm: Offset Table is 12 bytes.
	c := &Cursor{data: file, pos: dir}
	version, err := Read[uint32](c)
	if err != nil {
		return nil, annotate(err, "sfnt", "sfntVersion")
	}
	if version != TrueTypeSfnt && version != CFFSfnt && version != AppleSfnt {
		return nil, errFormat("sfnt", file.base+dir, version)
	}
	numTables, err := Read[uint16](c)
	if err != nil {
		return nil, annotate(err, "sfnt", "numTables")
	}
	c.AdvanceBy(6) // searchRange, entrySelector, rangeShift
	// "The Offset Table is followed immediately by the Table Record entries …
	// sorted in ascending order by tag", 16 bytes each.
	records, err := ReadArray(c, int(numTables), tableRecordLayout)
	if err != nil {
		return nil, annotate(err, "sfnt", "tableRecords")
	}
	tracer().Debugf("font directory at %d: version %x, %d tables", dir, version, numTables)
	return &FontRef{
		data:        file,
		SfntVersion: version,
		NumTables:   numTables,
		records:     records,
	}, nil
}

// Data returns the bytes of the whole font file.
func (f *FontRef) Data() FontData {
	return f.data
}

// TableRecords iterates over the table directory in directory order.
func (f *FontRef) TableRecords() iter.Seq2[int, TableRecord] {
	return f.records.All()
}

// TableTags returns a list of tags, one for each table contained in the font.
func (f *FontRef) TableTags() []Tag {
	tags := make([]Tag, 0, f.records.Len())
	for _, rec := range f.records.All() {
		tags = append(tags, rec.Tag)
	}
	return tags
}

// TableRecord looks up the directory entry for a tag. Table records are sorted
// by tag, so this is a binary search.
func (f *FontRef) TableRecord(tag Tag) (TableRecord, bool) {
	n := f.records.Len()
	i := sort.Search(n, func(i int) bool {
		rec, _ := f.records.At(i)
		return rec.Tag >= tag
	})
	if i < n {
		if rec, _ := f.records.At(i); rec.Tag == tag {
			return rec, true
		}
	}
	return TableRecord{}, false
}

// TableData returns the bytes of the table for a given tag. If the table is not
// present or its extent lies outside the file, ok is false.
func (f *FontRef) TableData(tag Tag) (FontData, bool) {
	rec, ok := f.TableRecord(tag)
	if !ok {
		return FontData{}, false
	}
	end, err := checkedAddUint32(rec.Offset, rec.Length)
	if err != nil {
		return FontData{}, false
	}
	return f.data.Slice(int(rec.Offset), int(end))
}

// Table returns the bytes of a table or an error of kind MissingTable.
func (f *FontRef) Table(tag Tag) (FontData, error) {
	if d, ok := f.TableData(tag); ok {
		return d, nil
	}
	return FontData{}, &ReadError{Kind: MissingTable, Table: tag.String()}
}

// readTable locates a table and applies a reader to it.
func readTable[R any](f *FontRef, tag string, read Reader[R]) (R, error) {
	var t R
	data, err := f.Table(T(tag))
	if err != nil {
		return t, err
	}
	t, err = read(data)
	return t, annotate(err, tag, "")
}

// --- Font collections ------------------------------------------------------

// CollectionRef is a reference to an OpenType Font Collection (TTC) file.
type CollectionRef struct {
	data    FontData
	Version MajorMinor
	offsets ScalarArray[uint32]
}

// NewCollectionRef reads a TTC header.
func NewCollectionRef(b []byte) (*CollectionRef, error) {
	data := NewFontData(b)
	c := data.Cursor()
	tag, err := Read[uint32](c)
	if err != nil {
		return nil, annotate(err, "ttcf", "ttcTag")
	}
	if tag != TTCTag {
		return nil, &ReadError{Kind: InvalidCollection, Table: "ttcf", Field: "ttcTag", Raw: tag}
	}
	version, err := ReadMajorMinor(c)
	if err != nil {
		return nil, annotate(err, "ttcf", "version")
	}
	if version.Major != 1 && version.Major != 2 {
		return nil, &ReadError{Kind: InvalidCollection, Table: "ttcf", Field: "version",
			Pos: 4, Raw: uint32(version.Major)}
	}
	numFonts, err := Read[uint32](c)
	if err != nil {
		return nil, annotate(err, "ttcf", "numFonts")
	}
	offsets, err := ReadScalarArray[uint32](c, int(numFonts))
	if err != nil {
		return nil, annotate(err, "ttcf", "tableDirectoryOffsets")
	}
	// version 2 appends DSIG fields, which we do not need
	return &CollectionRef{data: data, Version: version, offsets: offsets}, nil
}

// Len returns the number of fonts in the collection.
func (coll *CollectionRef) Len() int {
	return coll.offsets.Len()
}

// Get returns the font at index i.
func (coll *CollectionRef) Get(i int) (*FontRef, error) {
	off, ok := coll.offsets.At(i)
	if !ok {
		return nil, &ReadError{Kind: InvalidCollection, Table: "ttcf", Field: "index", Raw: uint32(i)}
	}
	return fontRefAt(coll.data, int(off))
}

// Fonts iterates over the fonts of the collection.
func (coll *CollectionRef) Fonts() iter.Seq2[*FontRef, error] {
	return func(yield func(*FontRef, error) bool) {
		for i := 0; i < coll.Len(); i++ {
			if !yield(coll.Get(i)) {
				return
			}
		}
	}
}

// FileRef references either a single font or a font collection.
type FileRef struct {
	Font       *FontRef       // set for single font files
	Collection *CollectionRef // set for TTC files
}

// NewFileRef inspects the first four bytes of a font file to decide whether it
// holds a single font or a collection.
func NewFileRef(b []byte) (FileRef, error) {
	tag, err := ReadAt[uint32](NewFontData(b), 0)
	if err != nil {
		return FileRef{}, annotate(err, "sfnt", "sfntVersion")
	}
	if tag == TTCTag {
		coll, err := NewCollectionRef(b)
		return FileRef{Collection: coll}, err
	}
	font, err := NewFontRef(b)
	return FileRef{Font: font}, err
}

// Fonts iterates over all fonts of the file.
func (ref FileRef) Fonts() iter.Seq2[*FontRef, error] {
	if ref.Collection != nil {
		return ref.Collection.Fonts()
	}
	return func(yield func(*FontRef, error) bool) {
		if ref.Font != nil {
			yield(ref.Font, nil)
		}
	}
}
