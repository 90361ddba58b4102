package ot

// --- head ------------------------------------------------------------------

// HeadMagic is the magic number stored in every 'head' table.
const HeadMagic uint32 = 0x5F0F3CF5

// Head is the font header table. It has a fixed layout of 54 bytes.
type Head struct {
	Version            MajorMinor
	FontRevision       Fixed
	ChecksumAdjustment uint32
	Flags              uint16
	UnitsPerEm         uint16
	Created, Modified  LongDateTime
	XMin, YMin         int16
	XMax, YMax         int16
	MacStyle           uint16
	LowestRecPPEM      uint16
	FontDirectionHint  int16
	IndexToLocFormat   int16
	GlyphDataFormat    int16
}

// HeadSize is the size of a 'head' table in bytes.
const HeadSize = 54

// ReadHead reads a 'head' table.
func ReadHead(data FontData) (Head, error) {
	h := Head{}
	c := data.Cursor()
	var err error
	if h.Version, err = ReadMajorMinor(c); err != nil {
		return h, annotate(err, "head", "version")
	}
	if err = data.Check(0, HeadSize); err != nil {
		return h, annotate(err, "head", "")
	}
	// from here on, reads cannot fail
	h.FontRevision, _ = Read[Fixed](c)
	h.ChecksumAdjustment, _ = Read[uint32](c)
	magic, _ := Read[uint32](c)
	if magic != HeadMagic {
		return h, &ReadError{Kind: InvalidFormat, Table: "head", Field: "magicNumber",
			Pos: data.base + 12, Raw: magic}
	}
	h.Flags, _ = Read[uint16](c)
	h.UnitsPerEm, _ = Read[uint16](c)
	h.Created, _ = Read[LongDateTime](c)
	h.Modified, _ = Read[LongDateTime](c)
	h.XMin, _ = Read[int16](c)
	h.YMin, _ = Read[int16](c)
	h.XMax, _ = Read[int16](c)
	h.YMax, _ = Read[int16](c)
	h.MacStyle, _ = Read[uint16](c)
	h.LowestRecPPEM, _ = Read[uint16](c)
	h.FontDirectionHint, _ = Read[int16](c)
	h.IndexToLocFormat, _ = Read[int16](c)
	h.GlyphDataFormat, _ = Read[int16](c)
	return h, nil
}

// Head reads the font's 'head' table.
func (f *FontRef) Head() (Head, error) {
	return readTable(f, "head", ReadHead)
}

// --- hhea ------------------------------------------------------------------

// Hhea is the horizontal header table.
type Hhea struct {
	Version             MajorMinor
	Ascender            FWord
	Descender           FWord
	LineGap             FWord
	AdvanceWidthMax     UFWord
	MinLeftSideBearing  FWord
	MinRightSideBearing FWord
	XMaxExtent          FWord
	CaretSlopeRise      int16
	CaretSlopeRun       int16
	CaretOffset         int16
	MetricDataFormat    int16
	NumberOfHMetrics    uint16
}

// HheaSize is the size of a 'hhea' table in bytes.
const HheaSize = 36

// ReadHhea reads a 'hhea' table.
func ReadHhea(data FontData) (Hhea, error) {
	h := Hhea{}
	if err := data.Check(0, HheaSize); err != nil {
		return h, annotate(err, "hhea", "")
	}
	c := data.Cursor()
	h.Version, _ = ReadMajorMinor(c)
	h.Ascender, _ = Read[FWord](c)
	h.Descender, _ = Read[FWord](c)
	h.LineGap, _ = Read[FWord](c)
	h.AdvanceWidthMax, _ = Read[UFWord](c)
	h.MinLeftSideBearing, _ = Read[FWord](c)
	h.MinRightSideBearing, _ = Read[FWord](c)
	h.XMaxExtent, _ = Read[FWord](c)
	h.CaretSlopeRise, _ = Read[int16](c)
	h.CaretSlopeRun, _ = Read[int16](c)
	h.CaretOffset, _ = Read[int16](c)
	c.AdvanceBy(8) // reserved
	h.MetricDataFormat, _ = Read[int16](c)
	h.NumberOfHMetrics, _ = Read[uint16](c)
	return h, nil
}

// Hhea reads the font's 'hhea' table.
func (f *FontRef) Hhea() (Hhea, error) {
	return readTable(f, "hhea", ReadHhea)
}

// --- maxp ------------------------------------------------------------------

// Maxp is the maximum profile table. It comes in two versions: 0.5 for fonts
// with CFF outlines, holding only the number of glyphs, and 1.0 for fonts with
// TrueType outlines, adding limits for the TrueType interpreter.
type Maxp interface {
	Version() Version16Dot16
	NumGlyphs() uint16
	// TrueTypeLimits is absent for version 0.5.
	TrueTypeLimits() Option[MaxpLimits]
	isMaxp()
}

// MaxpLimits are the fields of 'maxp' version 1.0.
type MaxpLimits struct {
	MaxPoints             uint16
	MaxContours           uint16
	MaxCompositePoints    uint16
	MaxCompositeContours  uint16
	MaxZones              uint16
	MaxTwilightPoints     uint16
	MaxStorage            uint16
	MaxFunctionDefs       uint16
	MaxInstructionDefs    uint16
	MaxStackElements      uint16
	MaxSizeOfInstructions uint16
	MaxComponentElements  uint16
	MaxComponentDepth     uint16
}

// MaxpV05 is 'maxp' version 0.5.
type MaxpV05 struct {
	numGlyphs uint16
}

// MaxpV10 is 'maxp' version 1.0.
type MaxpV10 struct {
	numGlyphs uint16
	Limits    MaxpLimits
}

func (MaxpV05) isMaxp()                              {}
func (MaxpV05) Version() Version16Dot16              { return Version0_5 }
func (m MaxpV05) NumGlyphs() uint16                  { return m.numGlyphs }
func (MaxpV05) TrueTypeLimits() Option[MaxpLimits]   { return None[MaxpLimits]() }
func (MaxpV10) isMaxp()                              {}
func (MaxpV10) Version() Version16Dot16              { return Version1_0 }
func (m MaxpV10) NumGlyphs() uint16                  { return m.numGlyphs }
func (m MaxpV10) TrueTypeLimits() Option[MaxpLimits] { return Some(m.Limits) }

var maxpVariants = map[Version16Dot16]Reader[Maxp]{
	Version0_5: func(data FontData) (Maxp, error) {
		n, err := ReadAt[uint16](data, 4)
		return MaxpV05{numGlyphs: n}, annotate(err, "maxp", "numGlyphs")
	},
	Version1_0: func(data FontData) (Maxp, error) {
		m := MaxpV10{}
		if err := data.Check(0, 32); err != nil {
			return m, err
		}
		c := data.Cursor()
		Advance[uint32](c)
		m.numGlyphs, _ = Read[uint16](c)
		l := &m.Limits
		for _, field := range []*uint16{&l.MaxPoints, &l.MaxContours, &l.MaxCompositePoints,
			&l.MaxCompositeContours, &l.MaxZones, &l.MaxTwilightPoints, &l.MaxStorage,
			&l.MaxFunctionDefs, &l.MaxInstructionDefs, &l.MaxStackElements,
			&l.MaxSizeOfInstructions, &l.MaxComponentElements, &l.MaxComponentDepth} {
			*field, _ = Read[uint16](c)
		}
		return m, nil
	},
}

// ReadMaxp reads a 'maxp' table, dispatching on its version.
func ReadMaxp(data FontData) (Maxp, error) {
	return ReadFormat(data, "maxp", maxpVariants)
}

// Maxp reads the font's 'maxp' table.
func (f *FontRef) Maxp() (Maxp, error) {
	return readTable(f, "maxp", ReadMaxp)
}
