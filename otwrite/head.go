package otwrite

import (
	"github.com/npillmayer/otcodec/ot"
)

// Head is an owned 'head' table.
type Head struct {
	ot.Head
}

// HeadFromRead converts a 'head' table read from a font.
func HeadFromRead(h ot.Head) *Head {
	return &Head{Head: h}
}

func (*Head) TableType() string { return "head" }

func (h *Head) Write(w *TableWriter) {
	w.WriteU16(h.Version.Major)
	w.WriteU16(h.Version.Minor)
	w.WriteFixed(h.FontRevision)
	w.WriteU32(h.ChecksumAdjustment)
	w.WriteU32(ot.HeadMagic)
	w.WriteU16(h.Flags)
	w.WriteU16(h.UnitsPerEm)
	Put(w, h.Created)
	Put(w, h.Modified)
	for _, v := range []int16{h.XMin, h.YMin, h.XMax, h.YMax} {
		w.WriteI16(v)
	}
	w.WriteU16(h.MacStyle)
	w.WriteU16(h.LowestRecPPEM)
	w.WriteI16(h.FontDirectionHint)
	w.WriteI16(h.IndexToLocFormat)
	w.WriteI16(h.GlyphDataFormat)
}

func (h *Head) Validate(ctx *ValidationCtx) {
	ctx.InTable("head", func(ctx *ValidationCtx) {
		if h.UnitsPerEm < 16 || h.UnitsPerEm > 16384 {
			ctx.InField("unitsPerEm", func(ctx *ValidationCtx) {
				ctx.Reportf("unitsPerEm %d outside of 16…16384", h.UnitsPerEm)
			})
		}
		if h.XMin > h.XMax || h.YMin > h.YMax {
			ctx.InField("bbox", func(ctx *ValidationCtx) {
				ctx.Report("min exceeds max")
			})
		}
	})
}

// Maxp is an owned 'maxp' table. Limits are written for version 1.0 only.
type Maxp struct {
	NumGlyphs uint16
	Limits    ot.Option[ot.MaxpLimits]
}

// MaxpFromRead converts a 'maxp' table read from a font.
func MaxpFromRead(m ot.Maxp) *Maxp {
	return &Maxp{NumGlyphs: m.NumGlyphs(), Limits: m.TrueTypeLimits()}
}

func (*Maxp) TableType() string { return "maxp" }

func (m *Maxp) Write(w *TableWriter) {
	limits, ok := m.Limits.Unwrap()
	if !ok {
		Put(w, ot.Version0_5)
		w.WriteU16(m.NumGlyphs)
		return
	}
	Put(w, ot.Version1_0)
	w.WriteU16(m.NumGlyphs)
	for _, v := range []uint16{limits.MaxPoints, limits.MaxContours, limits.MaxCompositePoints,
		limits.MaxCompositeContours, limits.MaxZones, limits.MaxTwilightPoints, limits.MaxStorage,
		limits.MaxFunctionDefs, limits.MaxInstructionDefs, limits.MaxStackElements,
		limits.MaxSizeOfInstructions, limits.MaxComponentElements, limits.MaxComponentDepth} {
		w.WriteU16(v)
	}
}

// Hhea is an owned 'hhea' table.
type Hhea struct {
	ot.Hhea
}

// HheaFromRead converts a 'hhea' table read from a font.
func HheaFromRead(h ot.Hhea) *Hhea {
	return &Hhea{Hhea: h}
}

func (*Hhea) TableType() string { return "hhea" }

func (h *Hhea) Write(w *TableWriter) {
	w.WriteU16(h.Version.Major)
	w.WriteU16(h.Version.Minor)
	Put(w, h.Ascender)
	Put(w, h.Descender)
	Put(w, h.LineGap)
	Put(w, h.AdvanceWidthMax)
	Put(w, h.MinLeftSideBearing)
	Put(w, h.MinRightSideBearing)
	Put(w, h.XMaxExtent)
	for _, v := range []int16{h.CaretSlopeRise, h.CaretSlopeRun, h.CaretOffset, 0, 0, 0, 0, h.MetricDataFormat} {
		w.WriteI16(v)
	}
	w.WriteU16(h.NumberOfHMetrics)
}
