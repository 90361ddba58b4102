package otcodec

import (
	"github.com/npillmayer/otcodec/internal/fontload"
	"github.com/npillmayer/otcodec/ot"
	"github.com/npillmayer/otcodec/otquery"
	"golang.org/x/image/font/sfnt"
)

// FromBinary parses raw OpenType bytes and returns a decoded font.
//
// The input is expected to contain a complete single-font SFNT stream.
// It must not change after parsing for the font to be usable.
func FromBinary(data []byte, opts ...ot.ParseOption) (*ot.Font, error) {
	return ot.ParseFont(data, opts...)
}

// LoadFile reads and parses a font file. Differences to the view of
// golang.org/x/image/font/sfnt are traced, but do not fail loading.
func LoadFile(path string, opts ...ot.ParseOption) (*ot.Font, error) {
	f, err := fontload.LoadOpenTypeFont(path, opts...)
	if err != nil {
		return nil, err
	}
	if diffs := f.CrossCheck(); len(diffs) > 0 {
		tracer().Infof("%s: %d differences to x/image/sfnt", path, len(diffs))
	}
	for _, e := range f.OT.Errors() {
		tracer().Errorf("%s: %v", path, e)
	}
	return f.OT, nil
}

// FamilyName extracts family and subfamily names from a font's `name` table.
// Typographic names take precedence over the legacy ones.
//
// Returned values are empty if no matching records exist or if records cannot be
// decoded.
func FamilyName(f *ot.Font) (family, subfamily string) {
	family = otquery.FamilyName(f)
	var ok bool
	if subfamily, ok = otquery.FontName(f, sfnt.NameIDTypographicSubfamily); !ok {
		subfamily, _ = otquery.FontName(f, sfnt.NameIDSubfamily)
	}
	return
}
