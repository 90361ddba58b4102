package otquery

import (
	"image/color"

	"github.com/npillmayer/otcodec/ot"
	"golang.org/x/image/font/sfnt"
)

// FontMetricsInfo contains selected metric information for a font.
type FontMetricsInfo struct {
	UnitsPerEm      sfnt.Units  // ad-hoc units per em
	Ascent, Descent sfnt.Units  // ascender and descender
	MaxAdvance      sfnt.Units  // maximum advance width value from 'hhea'
	LineGap         sfnt.Units  // typographic line gap
	NumGlyphs       int         // from 'maxp'
	BBox            BoundingBox // union of all glyph bounding boxes, from 'head'
}

// BoundingBox describes a bounding box in font units.
type BoundingBox struct {
	MinX, MinY sfnt.Units
	MaxX, MaxY sfnt.Units
}

// IsEmpty reports whether this box has zero area.
func (bbox BoundingBox) IsEmpty() bool {
	return bbox.MaxX-bbox.MinX == 0 || bbox.MaxY-bbox.MinY == 0
}

// Dx returns the horizontal extent of this box.
func (bbox BoundingBox) Dx() sfnt.Units {
	return bbox.MaxX - bbox.MinX
}

// Dy returns the vertical extent of this box.
func (bbox BoundingBox) Dy() sfnt.Units {
	return bbox.MaxY - bbox.MinY
}

// Palette is a color palette from table 'CPAL'.
type Palette struct {
	Colors []color.NRGBA
	Type   uint32 // usage flags, 0 for version 0 tables
	Label  string // empty if the palette has no label
}

// Axis is a design-variation axis from table 'fvar'.
type Axis struct {
	Tag               ot.Tag
	Name              string
	Min, Default, Max float64
	Hidden            bool
}

// NamedInstance is a named location in design space.
type NamedInstance struct {
	Subfamily      string
	PostScriptName string // empty if the instance has none
	Coordinates    map[ot.Tag]float64
}
