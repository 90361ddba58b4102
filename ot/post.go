package ot

import "iter"

// --- post ------------------------------------------------------------------

// PostHeader holds the fields common to all versions of the 'post' table.
type PostHeader struct {
	Version            Version16Dot16
	ItalicAngle        Fixed
	UnderlinePosition  FWord
	UnderlineThickness FWord
	IsFixedPitch       uint32
	MinMemType42       uint32
	MaxMemType42       uint32
	MinMemType1        uint32
	MaxMemType1        uint32
}

// PostHeaderSize is the size of the 'post' header in bytes.
const PostHeaderSize = 32

// Post is the PostScript table. Versions 1.0 and 3.0 consist of the header only;
// version 2.0 adds glyph names, version 2.5 (deprecated) adds a re-ordering of the
// standard Macintosh glyph names.
type Post interface {
	Header() PostHeader
	// NumGlyphs is present for versions 2.0 and 2.5 only.
	NumGlyphs() Option[uint16]
	// GlyphName returns the name of a glyph, if the table version provides names.
	GlyphName(gid GlyphIndex) (string, bool)
	isPost()
}

// PostV1 is 'post' version 1.0: glyphs are in standard Macintosh order.
type PostV1 struct{ header PostHeader }

// PostV3 is 'post' version 3.0: no glyph names.
type PostV3 struct{ header PostHeader }

// PostV2 is 'post' version 2.0.
type PostV2 struct {
	header         PostHeader
	GlyphNameIndex ScalarArray[uint16]
	StringData     FontData
}

// PostV25 is 'post' version 2.5.
type PostV25 struct {
	header PostHeader
	Offset ScalarArray[int8]
}

func (PostV1) isPost()  {}
func (PostV2) isPost()  {}
func (PostV25) isPost() {}
func (PostV3) isPost()  {}

func (p PostV1) Header() PostHeader  { return p.header }
func (p PostV2) Header() PostHeader  { return p.header }
func (p PostV25) Header() PostHeader { return p.header }
func (p PostV3) Header() PostHeader  { return p.header }

func (PostV1) NumGlyphs() Option[uint16]    { return None[uint16]() }
func (p PostV2) NumGlyphs() Option[uint16]  { return Some(uint16(p.GlyphNameIndex.Len())) }
func (p PostV25) NumGlyphs() Option[uint16] { return Some(uint16(p.Offset.Len())) }
func (PostV3) NumGlyphs() Option[uint16]    { return None[uint16]() }

// GlyphName for version 1.0 fonts uses the standard Macintosh order.
func (PostV1) GlyphName(gid GlyphIndex) (string, bool) {
	if int(gid) < len(StandardMacGlyphNames) {
		return StandardMacGlyphNames[gid], true
	}
	return "", false
}

// GlyphName returns false for version 3.0 fonts.
func (PostV3) GlyphName(GlyphIndex) (string, bool) {
	return "", false
}

// GlyphName resolves a name through the glyph name index: indices below 258
// denote standard Macintosh names, others the (index-258)-th string of the
// string data.
func (p PostV2) GlyphName(gid GlyphIndex) (string, bool) {
	inx, ok := p.GlyphNameIndex.At(int(gid))
	if !ok {
		return "", false
	}
	if int(inx) < len(StandardMacGlyphNames) {
		return StandardMacGlyphNames[inx], true
	}
	n := int(inx) - len(StandardMacGlyphNames)
	for i, s := range p.Strings() {
		if i == n {
			return s, true
		}
	}
	return "", false
}

// Strings iterates over the Pascal strings of the string data. Iteration stops
// at the first truncated string.
func (p PostV2) Strings() iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		b := p.StringData.Bytes()
		for i := 0; len(b) > 0; i++ {
			l := int(b[0])
			if 1+l > len(b) {
				tracer().Errorf("post: truncated glyph name string #%d", i)
				return
			}
			if !yield(i, string(b[1:1+l])) {
				return
			}
			b = b[1+l:]
		}
	}
}

// GlyphName applies the offset to the standard Macintosh order.
func (p PostV25) GlyphName(gid GlyphIndex) (string, bool) {
	off, ok := p.Offset.At(int(gid))
	if !ok {
		return "", false
	}
	inx := int(gid) + int(off)
	if inx < 0 || inx >= len(StandardMacGlyphNames) {
		return "", false
	}
	return StandardMacGlyphNames[inx], true
}

func readPostHeader(data FontData) (PostHeader, *Cursor, error) {
	h := PostHeader{}
	if err := data.Check(0, PostHeaderSize); err != nil {
		return h, nil, err
	}
	c := data.Cursor()
	h.Version, _ = Read[Version16Dot16](c)
	h.ItalicAngle, _ = Read[Fixed](c)
	h.UnderlinePosition, _ = Read[FWord](c)
	h.UnderlineThickness, _ = Read[FWord](c)
	h.IsFixedPitch, _ = Read[uint32](c)
	h.MinMemType42, _ = Read[uint32](c)
	h.MaxMemType42, _ = Read[uint32](c)
	h.MinMemType1, _ = Read[uint32](c)
	h.MaxMemType1, _ = Read[uint32](c)
	return h, c, nil
}

var postVariants = map[Version16Dot16]Reader[Post]{
	Version1_0: func(data FontData) (Post, error) {
		h, _, err := readPostHeader(data)
		return PostV1{header: h}, err
	},
	Version3_0: func(data FontData) (Post, error) {
		h, _, err := readPostHeader(data)
		return PostV3{header: h}, err
	},
	Version2_0: func(data FontData) (Post, error) {
		h, c, err := readPostHeader(data)
		if err != nil {
			return nil, err
		}
		p := PostV2{header: h}
		numGlyphs, err := Read[uint16](c)
		if err != nil {
			return nil, annotate(err, "post", "numGlyphs")
		}
		if p.GlyphNameIndex, err = ReadScalarArray[uint16](c, int(numGlyphs)); err != nil {
			return nil, annotate(err, "post", "glyphNameIndex")
		}
		p.StringData, _ = c.Remaining()
		return p, nil
	},
	Version2_5: func(data FontData) (Post, error) {
		h, c, err := readPostHeader(data)
		if err != nil {
			return nil, err
		}
		p := PostV25{header: h}
		numGlyphs, err := Read[uint16](c)
		if err != nil {
			return nil, annotate(err, "post", "numGlyphs")
		}
		if p.Offset, err = ReadScalarArray[int8](c, int(numGlyphs)); err != nil {
			return nil, annotate(err, "post", "offset")
		}
		return p, nil
	},
}

// ReadPost reads a 'post' table, dispatching on its version.
func ReadPost(data FontData) (Post, error) {
	return ReadFormat(data, "post", postVariants)
}

// Post reads the font's 'post' table.
func (f *FontRef) Post() (Post, error) {
	return readTable(f, "post", ReadPost)
}

// StandardMacGlyphNames are the 258 glyph names of the standard Macintosh
// character set, in the order used by 'post' versions 1.0, 2.0 and 2.5.
var StandardMacGlyphNames = [...]string{
	".notdef", ".null", "nonmarkingreturn", "space", "exclam", "quotedbl", "numbersign",
	"dollar", "percent", "ampersand", "quotesingle", "parenleft", "parenright", "asterisk",
	"plus", "comma", "hyphen", "period", "slash", "zero", "one", "two", "three", "four",
	"five", "six", "seven", "eight", "nine", "colon", "semicolon", "less", "equal",
	"greater", "question", "at", "A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K", "L",
	"M", "N", "O", "P", "Q", "R", "S", "T", "U", "V", "W", "X", "Y", "Z", "bracketleft",
	"backslash", "bracketright", "asciicircum", "underscore", "grave", "a", "b", "c", "d",
	"e", "f", "g", "h", "i", "j", "k", "l", "m", "n", "o", "p", "q", "r", "s", "t", "u",
	"v", "w", "x", "y", "z", "braceleft", "bar", "braceright", "asciitilde", "Adieresis",
	"Aring", "Ccedilla", "Eacute", "Ntilde", "Odieresis", "Udieresis", "aacute", "agrave",
	"acircumflex", "adieresis", "atilde", "aring", "ccedilla", "eacute", "egrave",
	"ecircumflex", "edieresis", "iacute", "igrave", "icircumflex", "idieresis", "ntilde",
	"oacute", "ograve", "ocircumflex", "odieresis", "otilde", "uacute", "ugrave",
	"ucircumflex", "udieresis", "dagger", "degree", "cent", "sterling", "section", "bullet",
	"paragraph", "germandbls", "registered", "copyright", "trademark", "acute", "dieresis",
	"notequal", "AE", "Oslash", "infinity", "plusminus", "lessequal", "greaterequal", "yen",
	"mu", "partialdiff", "summation", "product", "pi", "integral", "ordfeminine",
	"ordmasculine", "Omega", "ae", "oslash", "questiondown", "exclamdown", "logicalnot",
	"radical", "florin", "approxequal", "Delta", "guillemotleft", "guillemotright",
	"ellipsis", "nonbreakingspace", "Agrave", "Atilde", "Otilde", "OE", "oe", "endash",
	"emdash", "quotedblleft", "quotedblright", "quoteleft", "quoteright", "divide",
	"lozenge", "ydieresis", "Ydieresis", "fraction", "currency", "guilsinglleft",
	"guilsinglright", "fi", "fl", "daggerdbl", "periodcentered", "quotesinglbase",
	"quotedblbase", "perthousand", "Acircumflex", "Ecircumflex", "Aacute", "Edieresis",
	"Egrave", "Iacute", "Icircumflex", "Idieresis", "Igrave", "Oacute", "Ocircumflex",
	"apple", "Ograve", "Uacute", "Ucircumflex", "Ugrave", "dotlessi", "circumflex", "tilde",
	"macron", "breve", "dotaccent", "ring", "cedilla", "hungarumlaut", "ogonek", "caron",
	"Lslash", "lslash", "Scaron", "scaron", "Zcaron", "zcaron", "brokenbar", "Eth", "eth",
	"Yacute", "yacute", "Thorn", "thorn", "minus", "multiply", "onesuperior", "twosuperior",
	"threesuperior", "onehalf", "onequarter", "threequarters", "franc", "Gbreve", "gbreve",
	"Idotaccent", "Scedilla", "scedilla", "Cacute", "cacute", "Ccaron", "ccaron", "dcroat",
}
