package otquery

import (
	"errors"
	"fmt"

	"github.com/npillmayer/otcodec/ot"
	"golang.org/x/image/font/sfnt"
)

// --- Font Information ------------------------------------------------------

// FontMetrics retrieves selected metrics of a font. 'head' and 'maxp' are
// required; 'hhea' is optional and leaves the vertical metrics zero if missing.
func FontMetrics(otf *ot.Font) (FontMetricsInfo, error) {
	metrics := FontMetricsInfo{}
	head, err := otf.Head()
	if err != nil {
		return metrics, err
	}
	metrics.UnitsPerEm = sfnt.Units(head.UnitsPerEm)
	metrics.BBox = BoundingBox{
		MinX: sfnt.Units(head.XMin), MinY: sfnt.Units(head.YMin),
		MaxX: sfnt.Units(head.XMax), MaxY: sfnt.Units(head.YMax),
	}
	maxp, err := otf.Maxp()
	if err != nil {
		return metrics, err
	}
	metrics.NumGlyphs = int(maxp.NumGlyphs())
	hhea, err := otf.Hhea()
	switch {
	case errors.Is(err, ot.ErrMissingTable):
		tracer().Debugf("font has no hhea table")
	case err != nil:
		return metrics, err
	default:
		metrics.Ascent = sfnt.Units(hhea.Ascender)
		metrics.Descent = sfnt.Units(hhea.Descender)
		metrics.LineGap = sfnt.Units(hhea.LineGap)
		metrics.MaxAdvance = sfnt.Units(hhea.AdvanceWidthMax)
	}
	return metrics, nil
}

// FontType returns "TrueType" or "CFF", depending on the sfnt version of the
// font's table directory.
func FontType(otf *ot.Font) string {
	switch otf.SfntVersion {
	case ot.TrueTypeSfnt, ot.AppleSfnt:
		return "TrueType"
	case ot.CFFSfnt:
		return "CFF"
	}
	return fmt.Sprintf("unknown (%#08x)", otf.SfntVersion)
}

// --- Glyph Routines --------------------------------------------------------

// GlyphName returns the PostScript name of a glyph, as stored in 'post'.
// Fonts with a version 3.0 'post' table have no glyph names.
func GlyphName(otf *ot.Font, gid ot.GlyphIndex) (string, bool) {
	post, err := otf.Post()
	if err != nil {
		tracer().Debugf("no glyph names: %v", err)
		return "", false
	}
	return post.GlyphName(gid)
}
