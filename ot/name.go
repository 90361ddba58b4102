package ot

import (
	"bufio"
	"bytes"
	"iter"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// --- name ------------------------------------------------------------------

// Platform IDs used in 'name' and 'cmap'.
const (
	PlatformUnicode   uint16 = 0
	PlatformMac       uint16 = 1
	PlatformWindows   uint16 = 3
	PlatformWinCustom uint16 = 4
)

// NameRecord is an entry of the 'name' table's record array.
type NameRecord struct {
	PlatformID   uint16
	EncodingID   uint16
	LanguageID   uint16
	NameID       NameID
	Length       uint16
	StringOffset Offset16 // from start of storage area
}

// LangTagRecord is part of 'name' version 1.
type LangTagRecord struct {
	Length        uint16
	LangTagOffset Offset16 // from start of storage area
}

// NameRecordLayout is the layout of a 12-byte NameRecord.
var NameRecordLayout = RecordLayout[NameRecord]{
	Size: 12,
	Read: func(b []byte) NameRecord {
		return NameRecord{
			PlatformID:   u16(b),
			EncodingID:   u16(b[2:]),
			LanguageID:   u16(b[4:]),
			NameID:       NameID(u16(b[6:])),
			Length:       u16(b[8:]),
			StringOffset: Offset16(u16(b[10:])),
		}
	},
}

// LangTagRecordLayout is the layout of a 4-byte LangTagRecord.
var LangTagRecordLayout = RecordLayout[LangTagRecord]{
	Size: 4,
	Read: func(b []byte) LangTagRecord {
		return LangTagRecord{Length: u16(b), LangTagOffset: Offset16(u16(b[2:]))}
	},
}

// Name is the naming table, version 0 or 1.
type Name struct {
	data          FontData
	Version       uint16
	StorageOffset Offset16
	Records       Array[NameRecord]
	// LangTagRecords is present for version 1 and up.
	LangTagRecords Option[Array[LangTagRecord]]
}

func readName(data FontData) (Name, error) {
	n := Name{data: data}
	c := data.Cursor()
	n.Version, _ = Read[uint16](c)
	count, err := Read[uint16](c)
	if err != nil {
		return n, annotate(err, "name", "count")
	}
	if n.StorageOffset, err = Read[Offset16](c); err != nil {
		return n, annotate(err, "name", "storageOffset")
	}
	if n.Records, err = ReadArray(c, int(count), NameRecordLayout); err != nil {
		return n, annotate(err, "name", "nameRecord")
	}
	if CompatibleVersion(n.Version, 1) {
		langTagCount, err := Read[uint16](c)
		if err != nil {
			return n, annotate(err, "name", "langTagCount")
		}
		recs, err := ReadArray(c, int(langTagCount), LangTagRecordLayout)
		if err != nil {
			return n, annotate(err, "name", "langTagRecord")
		}
		n.LangTagRecords = Some(recs)
	}
	return n, nil
}

var nameVariants = map[uint16]Reader[Name]{
	0: readName,
	1: readName,
}

// ReadName reads a 'name' table.
func ReadName(data FontData) (Name, error) {
	return ReadFormat(data, "name", nameVariants)
}

// Name reads the font's 'name' table.
func (f *FontRef) Name() (Name, error) {
	return readTable(f, "name", ReadName)
}

// storage returns the bytes for a string at offset off in the storage area.
func (n Name) storage(off Offset16, length uint16, field string) (FontData, error) {
	if n.StorageOffset.IsNull() {
		return FontData{}, errOffset(NullOffset, "name", "storageOffset", n.data.base+4, 0)
	}
	start := int(n.StorageOffset) + int(off)
	if err := n.data.Check(start, int(length)); err != nil {
		return FontData{}, annotate(err, "name", field)
	}
	d, _ := n.data.Slice(start, start+int(length))
	return d, nil
}

// Resolve returns the string entry for a name record.
func (n Name) Resolve(rec NameRecord) (NameEntry, error) {
	d, err := n.storage(rec.StringOffset, rec.Length, "string")
	if err != nil {
		return NameEntry{}, err
	}
	return NameEntry{Data: d, Encoding: EncodingFor(rec.PlatformID, rec.EncodingID)}, nil
}

// Entries iterates over all name records which resolve to strings.
// Broken records are skipped.
func (n Name) Entries() iter.Seq2[NameRecord, NameEntry] {
	return func(yield func(NameRecord, NameEntry) bool) {
		for _, rec := range n.Records.All() {
			entry, err := n.Resolve(rec)
			if err != nil {
				tracer().Errorf("name record %d: %v", rec.NameID, err)
				continue
			}
			if !yield(rec, entry) {
				return
			}
		}
	}
}

// LangTag returns the i-th language tag of a version 1 table. Language IDs
// 0x8000 and up refer to language tags: langTag = LangTag(languageID - 0x8000).
func (n Name) LangTag(i int) (string, bool) {
	recs, ok := n.LangTagRecords.Unwrap()
	if !ok {
		return "", false
	}
	rec, ok := recs.At(i)
	if !ok {
		return "", false
	}
	d, err := n.storage(rec.LangTagOffset, rec.Length, "langTag")
	if err != nil {
		return "", false
	}
	return NameEntry{Data: d, Encoding: EncodingUTF16BE}.String(), true
}

// --- String decoding -------------------------------------------------------

// Encoding is the text encoding of a name entry, determined from platform and
// encoding IDs.
type Encoding int

const (
	EncodingUnknown Encoding = iota
	EncodingUTF16BE
	EncodingMacRoman
)

func (e Encoding) String() string {
	switch e {
	case EncodingUTF16BE:
		return "UTF-16BE"
	case EncodingMacRoman:
		return "MacRoman"
	}
	return "unknown"
}

// EncodingFor returns the encoding for a (platform, encoding) pair.
func EncodingFor(platformID, encodingID uint16) Encoding {
	switch {
	case platformID == PlatformUnicode:
		return EncodingUTF16BE
	case platformID == PlatformMac && encodingID == 0:
		return EncodingMacRoman
	case platformID == PlatformWindows && (encodingID == 0 || encodingID == 1 || encodingID == 10):
		return EncodingUTF16BE
	}
	return EncodingUnknown
}

// Encoder returns the x/text encoding for e, or nil for unknown encodings.
func (e Encoding) Encoder() encoding.Encoding {
	switch e {
	case EncodingUTF16BE:
		return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)
	case EncodingMacRoman:
		return charmap.Macintosh
	}
	return nil
}

// NameEntry is the raw string data of a name record plus its encoding.
type NameEntry struct {
	Data     FontData
	Encoding Encoding
}

// Chars decodes the entry lazily. Entries with unknown encoding yield no characters.
func (e NameEntry) Chars() iter.Seq[rune] {
	return func(yield func(rune) bool) {
		enc := e.Encoding.Encoder()
		if enc == nil {
			return
		}
		r := bufio.NewReader(transform.NewReader(bytes.NewReader(e.Data.Bytes()), enc.NewDecoder()))
		for {
			ch, _, err := r.ReadRune()
			if err != nil || !yield(ch) {
				return
			}
		}
	}
}

func (e NameEntry) String() string {
	var sb strings.Builder
	for ch := range e.Chars() {
		sb.WriteRune(ch)
	}
	return sb.String()
}
