package otquery

import (
	"cmp"
	"iter"
	"slices"

	"github.com/npillmayer/otcodec/ot"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/text/language"
)

// NamesRange yields decoded `(nameID, value)` pairs from a font's OpenType
// `name` table, in table order.
//
// Records with an encoding which cannot be decoded are skipped, as are
// records pointing outside the string storage. A font without a `name` table
// yields nothing.
func NamesRange(otf *ot.Font) iter.Seq2[sfnt.NameID, string] {
	return func(yield func(sfnt.NameID, string) bool) {
		for entry := range nameEntries(otf) {
			if !yield(sfnt.NameID(entry.rec.NameID), entry.value) {
				return
			}
		}
	}
}

// nameEntry is a decoded name record together with its language.
type nameEntry struct {
	rec   ot.NameRecord
	lang  language.Tag
	value string
}

func nameEntries(otf *ot.Font) iter.Seq[nameEntry] {
	return func(yield func(nameEntry) bool) {
		if otf == nil {
			return
		}
		name, err := otf.Name()
		if err != nil {
			tracer().Debugf("no names: %v", err)
			return
		}
		for rec, entry := range name.Entries() {
			if entry.Encoding == ot.EncodingUnknown {
				continue
			}
			e := nameEntry{rec: rec, lang: recordLanguage(name, rec), value: entry.String()}
			if !yield(e) {
				return
			}
		}
	}
}

// platformRank orders platforms for name lookup: Windows first, as it is the
// platform every font is required to provide names for.
func platformRank(platformID uint16) int {
	switch platformID {
	case ot.PlatformWindows:
		return 0
	case ot.PlatformUnicode:
		return 1
	case ot.PlatformMac:
		return 2
	}
	return 3
}

// FontName returns the name string for a name ID. The entry best matching
// the given languages is selected, with American English as the last choice.
// Among entries of equal language, Windows entries are preferred over
// Unicode and Macintosh ones. If no entry matches any of these languages,
// the first entry in platform order is returned.
func FontName(otf *ot.Font, id sfnt.NameID, langs ...language.Tag) (string, bool) {
	var candidates []nameEntry
	for entry := range nameEntries(otf) {
		if sfnt.NameID(entry.rec.NameID) == id {
			candidates = append(candidates, entry)
		}
	}
	if len(candidates) == 0 {
		return "", false
	}
	slices.SortStableFunc(candidates, func(a, b nameEntry) int {
		return cmp.Or(
			cmp.Compare(platformRank(a.rec.PlatformID), platformRank(b.rec.PlatformID)),
			cmp.Compare(a.rec.LanguageID, b.rec.LanguageID),
		)
	})
	langs = append(slices.Clip(langs), language.AmericanEnglish)
	tags := make([]language.Tag, len(candidates))
	for i, c := range candidates {
		tags[i] = c.lang
	}
	_, inx, conf := language.NewMatcher(tags).Match(langs...)
	if conf == language.No {
		inx = 0
	}
	tracer().Debugf("name %d: selected %s entry (%v)", id, candidates[inx].lang, conf)
	return candidates[inx].value, true
}

// FamilyName returns the typographic family name of a font, falling back to
// the legacy family name.
func FamilyName(otf *ot.Font) string {
	if name, ok := FontName(otf, sfnt.NameIDTypographicFamily); ok {
		return name
	}
	name, _ := FontName(otf, sfnt.NameIDFamily)
	return name
}

// Languages returns the distinct languages a font carries names for, in
// table order.
func Languages(otf *ot.Font) []language.Tag {
	var langs []language.Tag
	for entry := range nameEntries(otf) {
		if entry.lang != language.Und && !slices.Contains(langs, entry.lang) {
			langs = append(langs, entry.lang)
		}
	}
	return langs
}
