package otwrite

import (
	"bytes"
	"cmp"
	"slices"

	"github.com/npillmayer/otcodec/ot"
)

// NameRecord is an owned name entry. The string is encoded according to
// platform and encoding ID. Entries with an encoding which cannot be handled
// keep their bytes in Raw.
type NameRecord struct {
	PlatformID uint16
	EncodingID uint16
	LanguageID uint16
	NameID     ot.NameID
	Value      string
	Raw        []byte
}

func compareNameRecords(a, b NameRecord) int {
	return cmp.Or(
		cmp.Compare(a.PlatformID, b.PlatformID),
		cmp.Compare(a.EncodingID, b.EncodingID),
		cmp.Compare(a.LanguageID, b.LanguageID),
		cmp.Compare(a.NameID, b.NameID),
	)
}

// encode returns the string bytes of a record.
func (rec NameRecord) encode() ([]byte, error) {
	enc := ot.EncodingFor(rec.PlatformID, rec.EncodingID).Encoder()
	if enc == nil {
		return rec.Raw, nil
	}
	return enc.NewEncoder().Bytes([]byte(rec.Value))
}

// Name is an owned 'name' table. It is written as version 1 if language
// tags are present, as version 0 otherwise.
type Name struct {
	Records  []NameRecord
	LangTags []string
}

// NameFromRead converts a 'name' table read from a font. Records which cannot
// be resolved are reported as an error.
func NameFromRead(n ot.Name) (*Name, error) {
	name := &Name{}
	for _, rec := range n.Records.All() {
		entry, err := n.Resolve(rec)
		if err != nil {
			return nil, err
		}
		r := NameRecord{
			PlatformID: rec.PlatformID,
			EncodingID: rec.EncodingID,
			LanguageID: rec.LanguageID,
			NameID:     rec.NameID,
		}
		if entry.Encoding == ot.EncodingUnknown {
			r.Raw = slices.Clone(entry.Data.Bytes())
		} else {
			r.Value = entry.String()
		}
		name.Records = append(name.Records, r)
	}
	if recs, ok := n.LangTagRecords.Unwrap(); ok {
		for i := range recs.Len() {
			tag, ok := n.LangTag(i)
			if !ok {
				return nil, &ot.ReadError{Kind: ot.OutOfBounds, Table: "name", Field: "langTagRecord",
					Raw: uint32(i)}
			}
			name.LangTags = append(name.LangTags, tag)
		}
	}
	return name, nil
}

func (*Name) TableType() string { return "name" }

// storage builds the string storage area. Identical strings are stored once.
// It returns the sorted records, the offset of each record's string, the
// offsets of the language tags and the storage bytes.
func (n *Name) storage() ([]NameRecord, []int, []int, []byte) {
	records := slices.Clone(n.Records)
	slices.SortStableFunc(records, compareNameRecords)
	var storage []byte
	put := func(b []byte) int {
		if i := bytes.Index(storage, b); i >= 0 && len(b) > 0 {
			return i
		}
		storage = append(storage, b...)
		return len(storage) - len(b)
	}
	recOffsets := make([]int, len(records))
	for i, rec := range records {
		b, _ := rec.encode()
		recOffsets[i] = put(b)
	}
	utf16 := ot.EncodingUTF16BE.Encoder().NewEncoder()
	tagOffsets := make([]int, len(n.LangTags))
	for i, tag := range n.LangTags {
		b, _ := utf16.Bytes([]byte(tag))
		tagOffsets[i] = put(b)
	}
	return records, recOffsets, tagOffsets, storage
}

func (n *Name) Write(w *TableWriter) {
	records, recOffsets, tagOffsets, storage := n.storage()
	version := uint16(0)
	headerSize := 6 + 12*len(records)
	if len(n.LangTags) > 0 {
		version = 1
		headerSize += 2 + 4*len(n.LangTags)
	}
	w.WriteU16(version)
	w.WriteU16(uint16(len(records)))
	w.WriteU16(uint16(headerSize))
	for i, rec := range records {
		b, _ := rec.encode()
		w.WriteU16(rec.PlatformID)
		w.WriteU16(rec.EncodingID)
		w.WriteU16(rec.LanguageID)
		Put(w, rec.NameID)
		w.WriteU16(uint16(len(b)))
		w.WriteU16(uint16(recOffsets[i]))
	}
	if version == 1 {
		utf16 := ot.EncodingUTF16BE.Encoder().NewEncoder()
		w.WriteU16(uint16(len(n.LangTags)))
		for i, tag := range n.LangTags {
			b, _ := utf16.Bytes([]byte(tag))
			w.WriteU16(uint16(len(b)))
			w.WriteU16(uint16(tagOffsets[i]))
		}
	}
	w.WriteBytes(storage)
}

func (n *Name) Validate(ctx *ValidationCtx) {
	ctx.InTable("name", func(ctx *ValidationCtx) {
		ctx.CheckArrayLen("nameRecord", len(n.Records), 0xffff)
		ctx.CheckArrayLen("langTagRecord", len(n.LangTags), 0x7fff)
		ctx.InField("nameRecord", func(ctx *ValidationCtx) {
			for i, rec := range n.Records {
				ctx.InArray(i, func(ctx *ValidationCtx) {
					b, err := rec.encode()
					if err != nil {
						ctx.Reportf("cannot encode %q as %s: %v", rec.Value,
							ot.EncodingFor(rec.PlatformID, rec.EncodingID), err)
					} else if len(b) > 0xffff {
						ctx.Report("string too long")
					}
					if rec.LanguageID >= 0x8000 && int(rec.LanguageID-0x8000) >= len(n.LangTags) {
						ctx.Reportf("language ID %#x refers to a missing language tag", rec.LanguageID)
					}
				})
			}
		})
		if _, _, _, storage := n.storage(); len(storage) > 0xffff {
			ctx.InField("storage", func(ctx *ValidationCtx) {
				ctx.Reportf("string storage of %d bytes exceeds 16-bit offsets", len(storage))
			})
		}
	})
}
