package ot

// --- fvar ------------------------------------------------------------------

// VariationAxisRecord describes one design-variation axis.
type VariationAxisRecord struct {
	AxisTag      Tag
	MinValue     Fixed
	DefaultValue Fixed
	MaxValue     Fixed
	Flags        uint16
	AxisNameID   NameID
}

// AxisRecordSize is the size of a VariationAxisRecord in 'fvar' version 1.0.
const AxisRecordSize = 20

// HiddenAxis is the flag for axes not to be exposed in user interfaces.
const HiddenAxis uint16 = 0x0001

// InstanceRecord describes a named instance: a location in design space with a name.
type InstanceRecord struct {
	SubfamilyNameID NameID
	Flags           uint16
	Coordinates     ScalarArray[Fixed]
	// PostScriptNameID is present if the instance size allows for it.
	PostScriptNameID Option[NameID]
}

// Fvar is the font variations table.
type Fvar struct {
	data            FontData
	Version         MajorMinor
	AxesArrayOffset Offset16
	AxisCount       uint16
	AxisSize        uint16
	InstanceCount   uint16
	InstanceSize    uint16
}

// AxisInstanceArrays holds the axis and instance arrays of 'fvar', which are
// stored back to back at the target of the axes array offset.
type AxisInstanceArrays struct {
	Axes      Array[VariationAxisRecord]
	Instances Array[InstanceRecord]
}

// ReadFvar reads an 'fvar' table header.
func ReadFvar(data FontData) (Fvar, error) {
	t := Fvar{data: data}
	c := data.Cursor()
	var err error
	if t.Version, err = ReadMajorMinor(c); err != nil {
		return t, annotate(err, "fvar", "version")
	}
	if t.Version.Major != 1 {
		return t, &ReadError{Kind: InvalidFormat, Table: "fvar", Field: "version",
			Pos: data.base, Raw: uint32(t.Version.Major)}
	}
	if err = data.Check(0, 16); err != nil {
		return t, annotate(err, "fvar", "header")
	}
	t.AxesArrayOffset, _ = Read[Offset16](c)
	Advance[uint16](c) // reserved, = 2
	t.AxisCount, _ = Read[uint16](c)
	t.AxisSize, _ = Read[uint16](c)
	t.InstanceCount, _ = Read[uint16](c)
	t.InstanceSize, _ = Read[uint16](c)
	return t, nil
}

// Fvar reads the font's 'fvar' table.
func (f *FontRef) Fvar() (Fvar, error) {
	return readTable(f, "fvar", ReadFvar)
}

type fvarArgs struct {
	axisCount, axisSize, instanceCount, instanceSize uint16
}

// AxisInstanceArrays resolves the axes and instances.
func (t Fvar) AxisInstanceArrays() (AxisInstanceArrays, error) {
	args := fvarArgs{t.AxisCount, t.AxisSize, t.InstanceCount, t.InstanceSize}
	return ResolveWithArgs(t.AxesArrayOffset, t.data, "axesArrayOffset", args, readAxisInstanceArrays)
}

// Axes resolves the axis records.
func (t Fvar) Axes() (Array[VariationAxisRecord], error) {
	arrays, err := t.AxisInstanceArrays()
	return arrays.Axes, err
}

// Instances resolves the named instance records.
func (t Fvar) Instances() (Array[InstanceRecord], error) {
	arrays, err := t.AxisInstanceArrays()
	return arrays.Instances, err
}

func readAxisInstanceArrays(data FontData, args fvarArgs) (AxisInstanceArrays, error) {
	arrays := AxisInstanceArrays{}
	if args.axisSize < AxisRecordSize {
		return arrays, &ReadError{Kind: InvalidOffset, Table: "fvar", Field: "axisSize",
			Pos: data.base, Raw: uint32(args.axisSize)}
	}
	minInstance := 4 + 4*int(args.axisCount)
	if int(args.instanceSize) < minInstance {
		return arrays, &ReadError{Kind: InvalidOffset, Table: "fvar", Field: "instanceSize",
			Pos: data.base, Raw: uint32(args.instanceSize)}
	}
	c := data.Cursor()
	var err error
	arrays.Axes, err = ReadArray(c, int(args.axisCount), RecordLayout[VariationAxisRecord]{
		Size: int(args.axisSize),
		Read: readAxisRecord,
	})
	if err != nil {
		return arrays, annotate(err, "fvar", "axes")
	}
	axisCount := int(args.axisCount)
	hasPSName := int(args.instanceSize) >= minInstance+2
	arrays.Instances, err = ReadArray(c, int(args.instanceCount), RecordLayout[InstanceRecord]{
		Size: int(args.instanceSize),
		Read: func(b []byte) InstanceRecord {
			return readInstanceRecord(b, axisCount, hasPSName)
		},
	})
	return arrays, annotate(err, "fvar", "instances")
}

func readAxisRecord(b []byte) VariationAxisRecord {
	return VariationAxisRecord{
		AxisTag:      Tag(u32(b)),
		MinValue:     Fixed(u32(b[4:])),
		DefaultValue: Fixed(u32(b[8:])),
		MaxValue:     Fixed(u32(b[12:])),
		Flags:        u16(b[16:]),
		AxisNameID:   NameID(u16(b[18:])),
	}
}

func readInstanceRecord(b []byte, axisCount int, hasPSName bool) InstanceRecord {
	d := NewFontData(b)
	coords, _ := NewScalarArray[Fixed](d, 4, axisCount)
	rec := InstanceRecord{
		SubfamilyNameID: NameID(u16(b)),
		Flags:           u16(b[2:]),
		Coordinates:     coords,
	}
	if hasPSName {
		rec.PostScriptNameID = Some(NameID(u16(b[4+4*axisCount:])))
	}
	return rec
}
