// Package fontload loads font files and cross-checks them against the
// sfnt parser of golang.org/x/image.
package fontload

import (
	"fmt"
	"os"

	"github.com/npillmayer/otcodec/ot"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/image/font/sfnt"
)

func tracer() tracing.Trace {
	return tracing.Select("font.opentype")
}

// ScalableFont is a parsed scalable font with original bytes, the codec's
// view and the SFNT view.
type ScalableFont struct {
	Fontname string
	Filepath string
	Binary   []byte
	OT       *ot.Font
	SFNT     *sfnt.Font // nil if x/image/sfnt rejects the font
}

// LoadOpenTypeFont loads an OpenType font (TTF or OTF) from a file.
func LoadOpenTypeFont(fontfile string, opts ...ot.ParseOption) (*ScalableFont, error) {
	bytez, err := os.ReadFile(fontfile)
	if err != nil {
		return nil, err
	}
	f, err := ParseOpenTypeFont(bytez, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fontfile, err)
	}
	f.Filepath = fontfile
	return f, nil
}

// ParseOpenTypeFont loads an OpenType font (TTF or OTF) from memory.
// A font the SFNT parser cannot handle is not an error, as it is stricter
// about required tables; SFNT is left nil in that case.
func ParseOpenTypeFont(fbytes []byte, opts ...ot.ParseOption) (f *ScalableFont, err error) {
	f = &ScalableFont{Binary: fbytes}
	if f.OT, err = ot.ParseFont(fbytes, opts...); err != nil {
		return nil, err
	}
	if f.SFNT, err = sfnt.Parse(fbytes); err != nil {
		tracer().Infof("font not accepted by x/image/sfnt: %v", err)
		f.SFNT = nil
		return f, nil
	}
	if f.Fontname, err = f.SFNT.Name(nil, sfnt.NameIDFull); err == nil {
		tracer().Debugf("loaded and parsed SFNT %s", f.Fontname)
	}
	return f, nil
}

// CrossCheck compares basic font data as seen by package ot with the view of
// x/image/sfnt and returns a description of every mismatch. Fonts without an
// SFNT view are not checked.
func (f *ScalableFont) CrossCheck() []string {
	if f.SFNT == nil {
		return nil
	}
	var diffs []string
	head, err := f.OT.Head()
	if err != nil {
		return append(diffs, fmt.Sprintf("head: %v", err))
	}
	if upem := f.SFNT.UnitsPerEm(); int(upem) != int(head.UnitsPerEm) {
		diffs = append(diffs, fmt.Sprintf("unitsPerEm: %d != %d", head.UnitsPerEm, upem))
	}
	maxp, err := f.OT.Maxp()
	if err != nil {
		return append(diffs, fmt.Sprintf("maxp: %v", err))
	}
	if n := f.SFNT.NumGlyphs(); n != int(maxp.NumGlyphs()) {
		diffs = append(diffs, fmt.Sprintf("numGlyphs: %d != %d", maxp.NumGlyphs(), n))
	}
	var buf sfnt.Buffer
	for _, id := range []sfnt.NameID{sfnt.NameIDFamily, sfnt.NameIDFull, sfnt.NameIDPostScript} {
		want, err := f.SFNT.Name(&buf, id)
		if err != nil {
			continue
		}
		if !hasName(f.OT, ot.NameID(id), want) {
			diffs = append(diffs, fmt.Sprintf("name %d: %q not found", id, want))
		}
	}
	for _, d := range diffs {
		tracer().Infof("cross-check: %s", d)
	}
	return diffs
}

func hasName(otf *ot.Font, id ot.NameID, value string) bool {
	name, err := otf.Name()
	if err != nil {
		return false
	}
	for rec, entry := range name.Entries() {
		if rec.NameID == id && entry.String() == value {
			return true
		}
	}
	return false
}
