package otwrite

import (
	"github.com/npillmayer/otcodec/ot"
)

// InstanceRecord is an owned named instance of 'fvar'.
type InstanceRecord struct {
	SubfamilyNameID  ot.NameID
	Flags            uint16
	Coordinates      []ot.Fixed
	PostScriptNameID ot.Option[ot.NameID]
}

// AxisInstanceArrays holds the axes and instances of 'fvar'. Both arrays are
// stored back to back behind a single offset.
type AxisInstanceArrays struct {
	Axes      []ot.VariationAxisRecord
	Instances []InstanceRecord
}

func (*AxisInstanceArrays) TableType() string { return "AxisInstanceArrays" }

// hasPostScriptNames is true if instance records carry a PostScript name ID.
func (a *AxisInstanceArrays) hasPostScriptNames() bool {
	for _, inst := range a.Instances {
		if inst.PostScriptNameID.IsSome() {
			return true
		}
	}
	return false
}

func (a *AxisInstanceArrays) instanceSize() int {
	size := 4 + 4*len(a.Axes)
	if a.hasPostScriptNames() {
		size += 2
	}
	return size
}

func (a *AxisInstanceArrays) Write(w *TableWriter) {
	for _, axis := range a.Axes {
		w.WriteTag(axis.AxisTag)
		w.WriteFixed(axis.MinValue)
		w.WriteFixed(axis.DefaultValue)
		w.WriteFixed(axis.MaxValue)
		w.WriteU16(axis.Flags)
		Put(w, axis.AxisNameID)
	}
	withPSNames := a.hasPostScriptNames()
	for _, inst := range a.Instances {
		Put(w, inst.SubfamilyNameID)
		w.WriteU16(inst.Flags)
		for i := range a.Axes {
			var coord ot.Fixed
			if i < len(inst.Coordinates) {
				coord = inst.Coordinates[i]
			}
			w.WriteFixed(coord)
		}
		if withPSNames {
			Put(w, inst.PostScriptNameID.Or(ot.NoNameID))
		}
	}
}

func (a *AxisInstanceArrays) Validate(ctx *ValidationCtx) {
	ctx.InField("axes", func(ctx *ValidationCtx) {
		for i, axis := range a.Axes {
			if axis.MinValue > axis.DefaultValue || axis.DefaultValue > axis.MaxValue {
				ctx.InArray(i, func(ctx *ValidationCtx) {
					ctx.Reportf("axis %s: default %s not within %s…%s", axis.AxisTag,
						axis.DefaultValue, axis.MinValue, axis.MaxValue)
				})
			}
		}
	})
	ctx.InField("instances", func(ctx *ValidationCtx) {
		withPSNames := a.hasPostScriptNames()
		for i, inst := range a.Instances {
			ctx.InArray(i, func(ctx *ValidationCtx) {
				if len(inst.Coordinates) != len(a.Axes) {
					ctx.Reportf("has %d coordinates for %d axes", len(inst.Coordinates), len(a.Axes))
				}
				if withPSNames && inst.PostScriptNameID.IsNone() {
					ctx.Report("PostScript name ID missing, other instances have one")
				}
			})
		}
	})
}

// Fvar is an owned 'fvar' table. Record sizes are computed when writing.
type Fvar struct {
	Arrays *AxisInstanceArrays
}

// FvarFromRead converts an 'fvar' table read from a font.
func FvarFromRead(t ot.Fvar) (*Fvar, error) {
	arrays, err := t.AxisInstanceArrays()
	if err != nil {
		return nil, err
	}
	owned := &AxisInstanceArrays{}
	for _, axis := range arrays.Axes.All() {
		owned.Axes = append(owned.Axes, axis)
	}
	for _, inst := range arrays.Instances.All() {
		owned.Instances = append(owned.Instances, InstanceRecord{
			SubfamilyNameID:  inst.SubfamilyNameID,
			Flags:            inst.Flags,
			Coordinates:      inst.Coordinates.Values(),
			PostScriptNameID: inst.PostScriptNameID,
		})
	}
	return &Fvar{Arrays: owned}, nil
}

func (*Fvar) TableType() string { return "fvar" }

func (t *Fvar) Write(w *TableWriter) {
	arrays := t.Arrays
	if arrays == nil {
		arrays = &AxisInstanceArrays{}
	}
	w.WriteU16(1)
	w.WriteU16(0)
	w.WriteOffset(arrays, 2)
	w.WriteU16(2) // reserved
	w.WriteU16(uint16(len(arrays.Axes)))
	w.WriteU16(ot.AxisRecordSize)
	w.WriteU16(uint16(len(arrays.Instances)))
	w.WriteU16(uint16(arrays.instanceSize()))
}

func (t *Fvar) Validate(ctx *ValidationCtx) {
	ctx.InTable("fvar", func(ctx *ValidationCtx) {
		if t.Arrays == nil {
			return
		}
		ctx.CheckArrayLen("axes", len(t.Arrays.Axes), 0xffff)
		ctx.CheckArrayLen("instances", len(t.Arrays.Instances), 0xffff)
		t.Arrays.Validate(ctx)
	})
}
