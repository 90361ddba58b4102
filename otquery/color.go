package otquery

import (
	"errors"
	"image/color"

	"github.com/npillmayer/otcodec/ot"
	"golang.org/x/image/font/sfnt"
)

// Palettes returns the color palettes of a font. A font without a 'CPAL'
// table has no palettes.
func Palettes(otf *ot.Font) ([]Palette, error) {
	cpal, err := otf.Cpal()
	if errors.Is(err, ot.ErrMissingTable) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	types, err := cpal.PaletteTypes()
	if err != nil {
		return nil, err
	}
	labels, err := cpal.PaletteLabels()
	if err != nil {
		return nil, err
	}
	palettes := make([]Palette, 0, cpal.NumPalettes)
	for i := range int(cpal.NumPalettes) {
		recs, err := cpal.Palette(i)
		if err != nil {
			return palettes, err
		}
		p := Palette{Colors: make([]color.NRGBA, len(recs))}
		for j, rec := range recs {
			p.Colors[j] = rec.NRGBA()
		}
		if t, ok := types.Unwrap(); ok {
			p.Type, _ = t.At(i)
		}
		if l, ok := labels.Unwrap(); ok {
			if id, ok := l.At(i); ok && ot.NameID(id) != ot.NoNameID {
				p.Label, _ = FontName(otf, sfnt.NameID(id))
			}
		}
		palettes = append(palettes, p)
	}
	tracer().Debugf("font has %d palettes", len(palettes))
	return palettes, nil
}
