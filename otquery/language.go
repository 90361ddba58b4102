package otquery

import (
	"github.com/npillmayer/otcodec/ot"
	"golang.org/x/text/language"
)

// windowsLanguages maps Windows language IDs (LCIDs) to language tags.
// Only the most common LCIDs are listed; others map to language.Und.
var windowsLanguages = map[uint16]language.Tag{
	0x0404: language.MustParse("zh-TW"),
	0x0407: language.MustParse("de-DE"),
	0x0409: language.AmericanEnglish,
	0x040A: language.MustParse("es-ES"),
	0x040C: language.MustParse("fr-FR"),
	0x0410: language.MustParse("it-IT"),
	0x0411: language.MustParse("ja-JP"),
	0x0412: language.MustParse("ko-KR"),
	0x0413: language.MustParse("nl-NL"),
	0x0415: language.MustParse("pl-PL"),
	0x0416: language.MustParse("pt-BR"),
	0x0419: language.MustParse("ru-RU"),
	0x041D: language.MustParse("sv-SE"),
	0x0804: language.MustParse("zh-CN"),
	0x0807: language.MustParse("de-CH"),
	0x0809: language.BritishEnglish,
	0x080C: language.MustParse("fr-BE"),
	0x0C07: language.MustParse("de-AT"),
	0x0C0A: language.MustParse("es-ES"),
	0x0C0C: language.MustParse("fr-CA"),
}

// macLanguages maps Macintosh language IDs to language tags.
var macLanguages = map[uint16]language.Tag{
	0:  language.English,
	1:  language.French,
	2:  language.German,
	3:  language.Italian,
	4:  language.Dutch,
	5:  language.Swedish,
	6:  language.Spanish,
	11: language.Japanese,
	19: language.TraditionalChinese,
	23: language.Korean,
	32: language.Russian,
	33: language.SimplifiedChinese,
}

// recordLanguage determines the language of a name record. Language IDs from
// 0x8000 on refer to the language tags of a version 1 table. Unicode platform
// entries carry no language.
func recordLanguage(name ot.Name, rec ot.NameRecord) language.Tag {
	if rec.LanguageID >= 0x8000 {
		s, ok := name.LangTag(int(rec.LanguageID - 0x8000))
		if !ok {
			return language.Und
		}
		tag, err := language.Parse(s)
		if err != nil {
			tracer().Infof("name: cannot parse language tag %q: %v", s, err)
			return language.Und
		}
		return tag
	}
	var tag language.Tag
	var ok bool
	switch rec.PlatformID {
	case ot.PlatformWindows:
		tag, ok = windowsLanguages[rec.LanguageID]
	case ot.PlatformMac:
		tag, ok = macLanguages[rec.LanguageID]
	}
	if !ok {
		return language.Und
	}
	return tag
}
