package ot

import "math/bits"

// Common records of the glyph positioning table: value records, device tables,
// anchors and single adjustment subtables.

// --- Device tables ---------------------------------------------------------

// Delta formats of Device and VariationIndex tables.
const (
	Local2BitDeltas      uint16 = 0x0001
	Local4BitDeltas      uint16 = 0x0002
	Local8BitDeltas      uint16 = 0x0003
	VariationIndexFormat uint16 = 0x8000
)

// Device is either a DeviceTable with hinting deltas for a range of ppem sizes,
// or a VariationIndex referencing variation data. Unlike most tables, the
// discriminant is the third field.
type Device interface {
	DeltaFormat() uint16
	isDevice()
}

// DeviceTable holds packed deltas for ppem sizes StartSize … EndSize.
type DeviceTable struct {
	StartSize, EndSize uint16
	Format             uint16
	DeltaValue         ScalarArray[uint16]
}

// VariationIndex references a delta-set in an item variation store.
type VariationIndex struct {
	DeltaSetOuterIndex uint16
	DeltaSetInnerIndex uint16
}

func (DeviceTable) isDevice()              {}
func (VariationIndex) isDevice()           {}
func (d DeviceTable) DeltaFormat() uint16  { return d.Format }
func (VariationIndex) DeltaFormat() uint16 { return VariationIndexFormat }

// DeltaBits returns the number of bits per delta for a local delta format.
func DeltaBits(format uint16) int {
	return 1 << format // 2, 4 or 8
}

// DeviceWordCount returns the number of uint16 words needed to store the deltas
// for sizes start … end in the given format.
func DeviceWordCount(start, end, format uint16) int {
	if end < start || format < Local2BitDeltas || format > Local8BitDeltas {
		return 0
	}
	n := int(Subtract(end, start)) + 1
	perWord := 16 / DeltaBits(format)
	return (n + perWord - 1) / perWord
}

// Deltas unpacks the signed deltas, one per ppem size.
func (d DeviceTable) Deltas() []int8 {
	if d.EndSize < d.StartSize {
		return nil
	}
	n := int(d.EndSize-d.StartSize) + 1
	deltas := make([]int8, n)
	for i := range deltas {
		deltas[i] = d.deltaAt(i)
	}
	return deltas
}

// Delta returns the delta for a ppem size, or 0 if the size is out of range.
func (d DeviceTable) Delta(ppem uint16) int8 {
	if ppem < d.StartSize || ppem > d.EndSize {
		return 0
	}
	return d.deltaAt(int(ppem - d.StartSize))
}

// deltaAt extracts the i-th packed delta, most significant bits first.
func (d DeviceTable) deltaAt(i int) int8 {
	nbits := DeltaBits(d.Format)
	perWord := 16 / nbits
	word := d.DeltaValue.Get(i / perWord)
	shift := 16 - nbits*(i%perWord+1)
	v := int(word>>shift) & (1<<nbits - 1)
	if v >= 1<<(nbits-1) { // sign extension
		v -= 1 << nbits
	}
	return int8(v)
}

// ReadDevice reads a Device or VariationIndex table.
func ReadDevice(data FontData) (Device, error) {
	if err := data.Check(0, 6); err != nil {
		return nil, annotate(err, "Device", "")
	}
	c := data.Cursor()
	first, _ := Read[uint16](c)
	second, _ := Read[uint16](c)
	format, _ := Read[uint16](c)
	switch format {
	case VariationIndexFormat:
		return VariationIndex{DeltaSetOuterIndex: first, DeltaSetInnerIndex: second}, nil
	case Local2BitDeltas, Local4BitDeltas, Local8BitDeltas:
		dev := DeviceTable{StartSize: first, EndSize: second, Format: format}
		var err error
		dev.DeltaValue, err = ReadScalarArray[uint16](c, DeviceWordCount(first, second, format))
		return dev, annotate(err, "Device", "deltaValue")
	}
	return nil, &ReadError{Kind: InvalidFormat, Table: "Device", Field: "deltaFormat",
		Pos: data.base + 4, Raw: uint32(format)}
}

// --- Value records ---------------------------------------------------------

// ValueFormat flags which fields are present in a ValueRecord.
type ValueFormat uint16

// ValueFormat flags.
const (
	XPlacement ValueFormat = 1 << iota
	YPlacement
	XAdvance
	YAdvance
	XPlaDevice
	YPlaDevice
	XAdvDevice
	YAdvDevice
)

// RecordSize is the size in bytes of a ValueRecord in this format.
func (vf ValueFormat) RecordSize() int {
	return 2 * bits.OnesCount16(uint16(vf&0xff))
}

// ValueRecord holds positioning adjustments. Only fields flagged in the
// ValueFormat are stored; the others are absent. Device offsets are relative to
// the subtable containing the record.
type ValueRecord struct {
	Format     ValueFormat
	XPlacement Option[int16]
	YPlacement Option[int16]
	XAdvance   Option[int16]
	YAdvance   Option[int16]
	XPlaDevice Option[Offset16]
	YPlaDevice Option[Offset16]
	XAdvDevice Option[Offset16]
	YAdvDevice Option[Offset16]
}

// ValueRecordLayout returns the record layout for a value format.
func ValueRecordLayout(vf ValueFormat) RecordLayout[ValueRecord] {
	return RecordLayout[ValueRecord]{
		Size: vf.RecordSize(),
		Read: func(b []byte) ValueRecord {
			return readValueRecord(b, vf)
		},
	}
}

func readValueRecord(b []byte, vf ValueFormat) ValueRecord {
	rec := ValueRecord{Format: vf}
	next := func() uint16 {
		v := u16(b)
		b = b[2:]
		return v
	}
	i16 := func(flag ValueFormat, field *Option[int16]) {
		if vf&flag != 0 {
			*field = Some(int16(next()))
		}
	}
	off := func(flag ValueFormat, field *Option[Offset16]) {
		if vf&flag != 0 {
			*field = Some(Offset16(next()))
		}
	}
	i16(XPlacement, &rec.XPlacement)
	i16(YPlacement, &rec.YPlacement)
	i16(XAdvance, &rec.XAdvance)
	i16(YAdvance, &rec.YAdvance)
	off(XPlaDevice, &rec.XPlaDevice)
	off(YPlaDevice, &rec.YPlaDevice)
	off(XAdvDevice, &rec.XAdvDevice)
	off(YAdvDevice, &rec.YAdvDevice)
	return rec
}

// ResolveDevice resolves one of the record's device offsets against the subtable
// the record is part of. Absent fields and null offsets yield an empty Option.
func (rec ValueRecord) ResolveDevice(field Option[Offset16], host FontData) (Option[Device], error) {
	off, ok := field.Unwrap()
	if !ok {
		return None[Device](), nil
	}
	return ResolveNullable(off, host, "device", ReadDevice)
}

// --- Anchor ----------------------------------------------------------------

// Anchor is an attachment point. Format 1 has design units only, format 2 adds a
// contour point index, format 3 adds device tables.
type Anchor interface {
	Format() uint16
	X() int16
	Y() int16
	// AnchorPoint is present for format 2 only.
	AnchorPoint() Option[uint16]
	// XDevice and YDevice are absent for formats 1 and 2, and for null offsets.
	XDevice() (Option[Device], error)
	YDevice() (Option[Device], error)
	isAnchor()
}

// AnchorFormat1 is a design units only anchor.
type AnchorFormat1 struct {
	XCoordinate, YCoordinate int16
}

// AnchorFormat2 adds a contour point.
type AnchorFormat2 struct {
	XCoordinate, YCoordinate int16
	Point                    uint16
}

// AnchorFormat3 adds device tables.
type AnchorFormat3 struct {
	data                         FontData
	XCoordinate, YCoordinate     int16
	XDeviceOffset, YDeviceOffset Offset16
}

func (AnchorFormat1) isAnchor() {}
func (AnchorFormat2) isAnchor() {}
func (AnchorFormat3) isAnchor() {}

func (AnchorFormat1) Format() uint16 { return 1 }
func (AnchorFormat2) Format() uint16 { return 2 }
func (AnchorFormat3) Format() uint16 { return 3 }

func (a AnchorFormat1) X() int16 { return a.XCoordinate }
func (a AnchorFormat1) Y() int16 { return a.YCoordinate }
func (a AnchorFormat2) X() int16 { return a.XCoordinate }
func (a AnchorFormat2) Y() int16 { return a.YCoordinate }
func (a AnchorFormat3) X() int16 { return a.XCoordinate }
func (a AnchorFormat3) Y() int16 { return a.YCoordinate }

func (AnchorFormat1) AnchorPoint() Option[uint16]   { return None[uint16]() }
func (a AnchorFormat2) AnchorPoint() Option[uint16] { return Some(a.Point) }
func (AnchorFormat3) AnchorPoint() Option[uint16]   { return None[uint16]() }

func (AnchorFormat1) XDevice() (Option[Device], error) { return None[Device](), nil }
func (AnchorFormat1) YDevice() (Option[Device], error) { return None[Device](), nil }
func (AnchorFormat2) XDevice() (Option[Device], error) { return None[Device](), nil }
func (AnchorFormat2) YDevice() (Option[Device], error) { return None[Device](), nil }

func (a AnchorFormat3) XDevice() (Option[Device], error) {
	return ResolveNullable(a.XDeviceOffset, a.data, "xDeviceOffset", ReadDevice)
}

func (a AnchorFormat3) YDevice() (Option[Device], error) {
	return ResolveNullable(a.YDeviceOffset, a.data, "yDeviceOffset", ReadDevice)
}

var anchorVariants = map[uint16]Reader[Anchor]{
	1: func(data FontData) (Anchor, error) {
		if err := data.Check(0, 6); err != nil {
			return nil, err
		}
		return AnchorFormat1{
			XCoordinate: int16(data.U16(2)),
			YCoordinate: int16(data.U16(4)),
		}, nil
	},
	2: func(data FontData) (Anchor, error) {
		if err := data.Check(0, 8); err != nil {
			return nil, err
		}
		return AnchorFormat2{
			XCoordinate: int16(data.U16(2)),
			YCoordinate: int16(data.U16(4)),
			Point:       data.U16(6),
		}, nil
	},
	3: func(data FontData) (Anchor, error) {
		if err := data.Check(0, 10); err != nil {
			return nil, err
		}
		return AnchorFormat3{
			data:          data,
			XCoordinate:   int16(data.U16(2)),
			YCoordinate:   int16(data.U16(4)),
			XDeviceOffset: Offset16(data.U16(6)),
			YDeviceOffset: Offset16(data.U16(8)),
		}, nil
	},
}

// ReadAnchor reads an Anchor table, dispatching on its format.
func ReadAnchor(data FontData) (Anchor, error) {
	return ReadFormat(data, "Anchor", anchorVariants)
}

// --- Single adjustment positioning -----------------------------------------

// SinglePos is a GPOS lookup type 1 subtable. Format 1 applies one value record
// to all covered glyphs, format 2 one value record per covered glyph.
type SinglePos interface {
	Format() uint16
	ValueFormat() ValueFormat
	Coverage() (Coverage, error)
	// Value returns the adjustment for a glyph, if it is covered.
	Value(g GlyphIndex) (ValueRecord, bool, error)
	Data() FontData
	isSinglePos()
}

// SinglePosFormat1 applies a single value record.
type SinglePosFormat1 struct {
	data           FontData
	CoverageOffset Offset16
	valueFormat    ValueFormat
	ValueRecord    ValueRecord
}

// SinglePosFormat2 holds one value record per coverage index.
type SinglePosFormat2 struct {
	data           FontData
	CoverageOffset Offset16
	valueFormat    ValueFormat
	ValueRecords   Array[ValueRecord]
}

func (SinglePosFormat1) isSinglePos() {}
func (SinglePosFormat2) isSinglePos() {}

func (SinglePosFormat1) Format() uint16 { return 1 }
func (SinglePosFormat2) Format() uint16 { return 2 }

func (p SinglePosFormat1) ValueFormat() ValueFormat { return p.valueFormat }
func (p SinglePosFormat2) ValueFormat() ValueFormat { return p.valueFormat }
func (p SinglePosFormat1) Data() FontData           { return p.data }
func (p SinglePosFormat2) Data() FontData           { return p.data }

func (p SinglePosFormat1) Coverage() (Coverage, error) {
	return Resolve(p.CoverageOffset, p.data, "coverageOffset", ReadCoverage)
}

func (p SinglePosFormat2) Coverage() (Coverage, error) {
	return Resolve(p.CoverageOffset, p.data, "coverageOffset", ReadCoverage)
}

func (p SinglePosFormat1) Value(g GlyphIndex) (ValueRecord, bool, error) {
	cov, err := p.Coverage()
	if err != nil {
		return ValueRecord{}, false, err
	}
	if _, ok := cov.CoverageIndex(g); !ok {
		return ValueRecord{}, false, nil
	}
	return p.ValueRecord, true, nil
}

func (p SinglePosFormat2) Value(g GlyphIndex) (ValueRecord, bool, error) {
	cov, err := p.Coverage()
	if err != nil {
		return ValueRecord{}, false, err
	}
	inx, ok := cov.CoverageIndex(g)
	if !ok {
		return ValueRecord{}, false, nil
	}
	rec, ok := p.ValueRecords.At(inx)
	if !ok {
		return ValueRecord{}, false, &ReadError{Kind: InvalidOffset, Table: "SinglePos",
			Field: "valueRecords", Pos: p.data.base + 8, Raw: uint32(inx)}
	}
	return rec, true, nil
}

var singlePosVariants = map[uint16]Reader[SinglePos]{
	1: func(data FontData) (SinglePos, error) {
		c := data.Cursor()
		Advance[uint16](c)
		p := SinglePosFormat1{data: data}
		var err error
		if p.CoverageOffset, err = Read[Offset16](c); err != nil {
			return nil, annotate(err, "SinglePos", "coverageOffset")
		}
		if p.valueFormat, err = Read[ValueFormat](c); err != nil {
			return nil, annotate(err, "SinglePos", "valueFormat")
		}
		recs, err := ReadArray(c, 1, ValueRecordLayout(p.valueFormat))
		if err != nil {
			return nil, annotate(err, "SinglePos", "valueRecord")
		}
		p.ValueRecord, _ = recs.At(0)
		return p, nil
	},
	2: func(data FontData) (SinglePos, error) {
		c := data.Cursor()
		Advance[uint16](c)
		p := SinglePosFormat2{data: data}
		var err error
		if p.CoverageOffset, err = Read[Offset16](c); err != nil {
			return nil, annotate(err, "SinglePos", "coverageOffset")
		}
		if p.valueFormat, err = Read[ValueFormat](c); err != nil {
			return nil, annotate(err, "SinglePos", "valueFormat")
		}
		count, err := Read[uint16](c)
		if err != nil {
			return nil, annotate(err, "SinglePos", "valueCount")
		}
		if p.ValueRecords, err = ReadArray(c, int(count), ValueRecordLayout(p.valueFormat)); err != nil {
			return nil, annotate(err, "SinglePos", "valueRecords")
		}
		return p, nil
	},
}

// ReadSinglePos reads a single adjustment positioning subtable.
func ReadSinglePos(data FontData) (SinglePos, error) {
	return ReadFormat(data, "SinglePos", singlePosVariants)
}
