package otquery

import (
	"errors"

	"github.com/npillmayer/otcodec/ot"
	"golang.org/x/image/font/sfnt"
)

func axisInstanceArrays(otf *ot.Font) (ot.AxisInstanceArrays, bool, error) {
	fvar, err := otf.Fvar()
	if errors.Is(err, ot.ErrMissingTable) {
		return ot.AxisInstanceArrays{}, false, nil
	} else if err != nil {
		return ot.AxisInstanceArrays{}, false, err
	}
	arrays, err := fvar.AxisInstanceArrays()
	return arrays, err == nil, err
}

// Axes returns the design-variation axes of a font, in 'fvar' order.
// Static fonts have no axes.
func Axes(otf *ot.Font) ([]Axis, error) {
	arrays, ok, err := axisInstanceArrays(otf)
	if !ok {
		return nil, err
	}
	axes := make([]Axis, 0, arrays.Axes.Len())
	for _, rec := range arrays.Axes.All() {
		name, _ := FontName(otf, sfnt.NameID(rec.AxisNameID))
		axes = append(axes, Axis{
			Tag:     rec.AxisTag,
			Name:    name,
			Min:     rec.MinValue.Float(),
			Default: rec.DefaultValue.Float(),
			Max:     rec.MaxValue.Float(),
			Hidden:  rec.Flags&ot.HiddenAxis != 0,
		})
	}
	return axes, nil
}

// NamedInstances returns the named instances of a variable font.
func NamedInstances(otf *ot.Font) ([]NamedInstance, error) {
	arrays, ok, err := axisInstanceArrays(otf)
	if !ok {
		return nil, err
	}
	instances := make([]NamedInstance, 0, arrays.Instances.Len())
	for _, rec := range arrays.Instances.All() {
		inst := NamedInstance{Coordinates: make(map[ot.Tag]float64, arrays.Axes.Len())}
		inst.Subfamily, _ = FontName(otf, sfnt.NameID(rec.SubfamilyNameID))
		if id, ok := rec.PostScriptNameID.Unwrap(); ok && id != ot.NoNameID {
			inst.PostScriptName, _ = FontName(otf, sfnt.NameID(id))
		}
		for i, coord := range rec.Coordinates.All() {
			if axis, ok := arrays.Axes.At(i); ok {
				inst.Coordinates[axis.AxisTag] = coord.Float()
			}
		}
		instances = append(instances, inst)
	}
	return instances, nil
}
