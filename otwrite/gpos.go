package otwrite

import (
	"github.com/npillmayer/otcodec/ot"
)

// --- Device tables ---------------------------------------------------------

// Device is an owned Device or VariationIndex table.
type Device interface {
	FontWrite
	DeltaFormat() uint16
}

// DeviceTable holds one hinting delta per ppem size StartSize … EndSize. The
// packing format is derived from the range of the deltas.
type DeviceTable struct {
	StartSize uint16
	Deltas    []int8
}

// VariationIndex references a delta-set in an item variation store.
type VariationIndex struct {
	DeltaSetOuterIndex uint16
	DeltaSetInnerIndex uint16
}

func (*DeviceTable) TableType() string    { return "Device" }
func (*VariationIndex) TableType() string { return "VariationIndex" }

// EndSize is the last ppem size with a delta.
func (d *DeviceTable) EndSize() uint16 {
	return d.StartSize + uint16(len(d.Deltas)) - 1
}

// DeltaFormat returns the smallest local format able to hold all deltas.
func (d *DeviceTable) DeltaFormat() uint16 {
	format := ot.Local2BitDeltas
	for _, v := range d.Deltas {
		switch {
		case v < -8 || v > 7:
			return ot.Local8BitDeltas
		case v < -2 || v > 1:
			format = ot.Local4BitDeltas
		}
	}
	return format
}

func (*VariationIndex) DeltaFormat() uint16 { return ot.VariationIndexFormat }

func (d *DeviceTable) Write(w *TableWriter) {
	format := d.DeltaFormat()
	w.WriteU16(d.StartSize)
	w.WriteU16(d.EndSize())
	w.WriteU16(format)
	nbits := ot.DeltaBits(format)
	perWord := 16 / nbits
	mask := uint16(1)<<nbits - 1
	var word uint16
	for i, v := range d.Deltas {
		shift := 16 - nbits*(i%perWord+1)
		word |= (uint16(v) & mask) << shift
		if i%perWord == perWord-1 || i == len(d.Deltas)-1 {
			w.WriteU16(word)
			word = 0
		}
	}
}

func (v *VariationIndex) Write(w *TableWriter) {
	w.WriteU16(v.DeltaSetOuterIndex)
	w.WriteU16(v.DeltaSetInnerIndex)
	w.WriteU16(ot.VariationIndexFormat)
}

func (d *DeviceTable) Validate(ctx *ValidationCtx) {
	ctx.InTable("Device", func(ctx *ValidationCtx) {
		if len(d.Deltas) == 0 {
			ctx.InField("deltaValue", func(ctx *ValidationCtx) {
				ctx.Report("no deltas")
			})
		} else if int(d.StartSize)+len(d.Deltas)-1 > 0xffff {
			ctx.InField("endSize", func(ctx *ValidationCtx) {
				ctx.Report("end size exceeds 65535")
			})
		}
	})
}

// DeviceFromRead converts a Device or VariationIndex table read from a font.
func DeviceFromRead(dev ot.Device) Device {
	switch d := dev.(type) {
	case ot.DeviceTable:
		return &DeviceTable{StartSize: d.StartSize, Deltas: d.Deltas()}
	case ot.VariationIndex:
		return &VariationIndex{DeltaSetOuterIndex: d.DeltaSetOuterIndex, DeltaSetInnerIndex: d.DeltaSetInnerIndex}
	}
	return nil
}

// --- Value records ---------------------------------------------------------

// ValueRecord is an owned value record. The value format is derived from the
// fields present. Device tables are written as offsets from the subtable
// containing the record.
type ValueRecord struct {
	XPlacement ot.Option[int16]
	YPlacement ot.Option[int16]
	XAdvance   ot.Option[int16]
	YAdvance   ot.Option[int16]
	XPlaDevice ot.Option[Device]
	YPlaDevice ot.Option[Device]
	XAdvDevice ot.Option[Device]
	YAdvDevice ot.Option[Device]
}

// Format computes the value format flags of the fields present.
func (rec ValueRecord) Format() ot.ValueFormat {
	var vf ot.ValueFormat
	flag := func(present bool, f ot.ValueFormat) {
		if present {
			vf |= f
		}
	}
	flag(rec.XPlacement.IsSome(), ot.XPlacement)
	flag(rec.YPlacement.IsSome(), ot.YPlacement)
	flag(rec.XAdvance.IsSome(), ot.XAdvance)
	flag(rec.YAdvance.IsSome(), ot.YAdvance)
	flag(rec.XPlaDevice.IsSome(), ot.XPlaDevice)
	flag(rec.YPlaDevice.IsSome(), ot.YPlaDevice)
	flag(rec.XAdvDevice.IsSome(), ot.XAdvDevice)
	flag(rec.YAdvDevice.IsSome(), ot.YAdvDevice)
	return vf
}

// WriteWithFormat writes the fields flagged in vf. Flagged fields which are
// absent are written as zero, respectively as null offsets.
func (rec ValueRecord) WriteWithFormat(w *TableWriter, vf ot.ValueFormat) {
	value := func(f ot.ValueFormat, v ot.Option[int16]) {
		if vf&f != 0 {
			w.WriteI16(v.Or(0))
		}
	}
	device := func(f ot.ValueFormat, d ot.Option[Device]) {
		if vf&f != 0 {
			Nullable16(d).Write(w)
		}
	}
	value(ot.XPlacement, rec.XPlacement)
	value(ot.YPlacement, rec.YPlacement)
	value(ot.XAdvance, rec.XAdvance)
	value(ot.YAdvance, rec.YAdvance)
	device(ot.XPlaDevice, rec.XPlaDevice)
	device(ot.YPlaDevice, rec.YPlaDevice)
	device(ot.XAdvDevice, rec.XAdvDevice)
	device(ot.YAdvDevice, rec.YAdvDevice)
}

func (rec ValueRecord) Write(w *TableWriter) {
	rec.WriteWithFormat(w, rec.Format())
}

func (rec ValueRecord) Validate(ctx *ValidationCtx) {
	for _, d := range []ot.Option[Device]{rec.XPlaDevice, rec.YPlaDevice, rec.XAdvDevice, rec.YAdvDevice} {
		Nullable16(d).Validate(ctx)
	}
}

// ValueRecordFromRead converts a value record read from a font. host is the
// subtable containing the record, which device offsets are relative to.
func ValueRecordFromRead(rec ot.ValueRecord, host ot.FontData) (ValueRecord, error) {
	owned := ValueRecord{
		XPlacement: rec.XPlacement,
		YPlacement: rec.YPlacement,
		XAdvance:   rec.XAdvance,
		YAdvance:   rec.YAdvance,
	}
	for _, field := range []struct {
		off *ot.Option[ot.Offset16]
		dev *ot.Option[Device]
	}{
		{&rec.XPlaDevice, &owned.XPlaDevice},
		{&rec.YPlaDevice, &owned.YPlaDevice},
		{&rec.XAdvDevice, &owned.XAdvDevice},
		{&rec.YAdvDevice, &owned.YAdvDevice},
	} {
		dev, err := rec.ResolveDevice(*field.off, host)
		if err != nil {
			return owned, err
		}
		*field.dev = ot.Map(dev, DeviceFromRead)
	}
	return owned, nil
}

// --- Anchor ----------------------------------------------------------------

// Anchor is an owned Anchor table.
type Anchor interface {
	FontWrite
	Format() uint16
}

// AnchorFormat1 is a design units only anchor.
type AnchorFormat1 struct {
	X, Y int16
}

// AnchorFormat2 adds a contour point.
type AnchorFormat2 struct {
	X, Y  int16
	Point uint16
}

// AnchorFormat3 adds device tables.
type AnchorFormat3 struct {
	X, Y    int16
	XDevice ot.Option[Device]
	YDevice ot.Option[Device]
}

func (*AnchorFormat1) Format() uint16    { return 1 }
func (*AnchorFormat2) Format() uint16    { return 2 }
func (*AnchorFormat3) Format() uint16    { return 3 }
func (*AnchorFormat1) TableType() string { return "Anchor" }
func (*AnchorFormat2) TableType() string { return "Anchor" }
func (*AnchorFormat3) TableType() string { return "Anchor" }

func (a *AnchorFormat1) Write(w *TableWriter) {
	w.WriteU16(1)
	w.WriteI16(a.X)
	w.WriteI16(a.Y)
}

func (a *AnchorFormat2) Write(w *TableWriter) {
	w.WriteU16(2)
	w.WriteI16(a.X)
	w.WriteI16(a.Y)
	w.WriteU16(a.Point)
}

func (a *AnchorFormat3) Write(w *TableWriter) {
	w.WriteU16(3)
	w.WriteI16(a.X)
	w.WriteI16(a.Y)
	Nullable16(a.XDevice).Write(w)
	Nullable16(a.YDevice).Write(w)
}

func (a *AnchorFormat3) Validate(ctx *ValidationCtx) {
	ctx.InTable("Anchor", func(ctx *ValidationCtx) {
		ctx.InField("xDevice", Nullable16(a.XDevice).Validate)
		ctx.InField("yDevice", Nullable16(a.YDevice).Validate)
	})
}

// AnchorFromRead converts an Anchor table read from a font.
func AnchorFromRead(anchor ot.Anchor) (Anchor, error) {
	switch a := anchor.(type) {
	case ot.AnchorFormat1:
		return &AnchorFormat1{X: a.XCoordinate, Y: a.YCoordinate}, nil
	case ot.AnchorFormat2:
		return &AnchorFormat2{X: a.XCoordinate, Y: a.YCoordinate, Point: a.Point}, nil
	}
	x, err := anchor.XDevice()
	if err != nil {
		return nil, err
	}
	y, err := anchor.YDevice()
	if err != nil {
		return nil, err
	}
	return &AnchorFormat3{
		X:       anchor.X(),
		Y:       anchor.Y(),
		XDevice: ot.Map(x, DeviceFromRead),
		YDevice: ot.Map(y, DeviceFromRead),
	}, nil
}

// --- Single adjustment positioning -----------------------------------------

// SinglePosFormat1 applies one value record to all covered glyphs.
type SinglePosFormat1 struct {
	Coverage Coverage
	Value    ValueRecord
}

// SinglePosFormat2 holds one value record per covered glyph. All records are
// written with the union of their value formats.
type SinglePosFormat2 struct {
	Coverage Coverage
	Values   []ValueRecord
}

func (*SinglePosFormat1) TableType() string { return "SinglePos" }
func (*SinglePosFormat2) TableType() string { return "SinglePos" }

func (p *SinglePosFormat1) Write(w *TableWriter) {
	w.WriteU16(1)
	w.WriteOffset(p.Coverage, 2)
	vf := p.Value.Format()
	Put(w, vf)
	p.Value.WriteWithFormat(w, vf)
}

// ValueFormat is the union of the formats of all value records.
func (p *SinglePosFormat2) ValueFormat() ot.ValueFormat {
	var vf ot.ValueFormat
	for _, rec := range p.Values {
		vf |= rec.Format()
	}
	return vf
}

func (p *SinglePosFormat2) Write(w *TableWriter) {
	w.WriteU16(2)
	w.WriteOffset(p.Coverage, 2)
	vf := p.ValueFormat()
	Put(w, vf)
	w.WriteU16(uint16(len(p.Values)))
	for _, rec := range p.Values {
		rec.WriteWithFormat(w, vf)
	}
}

func (p *SinglePosFormat1) Validate(ctx *ValidationCtx) {
	ctx.InTable("SinglePos", func(ctx *ValidationCtx) {
		validateCoverage(ctx, p.Coverage)
		ctx.InField("valueRecord", p.Value.Validate)
	})
}

func (p *SinglePosFormat2) Validate(ctx *ValidationCtx) {
	ctx.InTable("SinglePos", func(ctx *ValidationCtx) {
		validateCoverage(ctx, p.Coverage)
		ctx.CheckArrayLen("valueRecords", len(p.Values), 0xffff)
		ValidateArray(ctx, "valueRecords", p.Values)
	})
}

func validateCoverage(ctx *ValidationCtx, cov Coverage) {
	ctx.InField("coverage", func(ctx *ValidationCtx) {
		if cov == nil {
			ctx.Report("coverage is required")
			return
		}
		ValidateChild(ctx, cov)
	})
}

// SinglePosFromRead converts a single adjustment subtable read from a font.
func SinglePosFromRead(sp ot.SinglePos) (FontWrite, error) {
	cov, err := sp.Coverage()
	if err != nil {
		return nil, err
	}
	switch p := sp.(type) {
	case ot.SinglePosFormat1:
		rec, err := ValueRecordFromRead(p.ValueRecord, p.Data())
		if err != nil {
			return nil, err
		}
		return &SinglePosFormat1{Coverage: CoverageFromRead(cov), Value: rec}, nil
	case ot.SinglePosFormat2:
		owned := &SinglePosFormat2{Coverage: CoverageFromRead(cov)}
		for _, r := range p.ValueRecords.All() {
			rec, err := ValueRecordFromRead(r, p.Data())
			if err != nil {
				return nil, err
			}
			owned.Values = append(owned.Values, rec)
		}
		return owned, nil
	}
	return nil, nil
}
