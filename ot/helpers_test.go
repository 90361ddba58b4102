package ot

import (
	"encoding/hex"
	"sort"
	"strings"
)

func putU16(b []byte, at int, v uint16) {
	b[at] = byte(v >> 8)
	b[at+1] = byte(v)
}

func putU32(b []byte, at int, v uint32) {
	b[at] = byte(v >> 24)
	b[at+1] = byte(v >> 16)
	b[at+2] = byte(v >> 8)
	b[at+3] = byte(v)
}

// be collects big-endian test data.
type be []byte

func (b be) u8(v ...uint8) be {
	return append(b, v...)
}

func (b be) u16(v ...uint16) be {
	for _, x := range v {
		b = append(b, byte(x>>8), byte(x))
	}
	return b
}

func (b be) i16(v ...int16) be {
	for _, x := range v {
		b = b.u16(uint16(x))
	}
	return b
}

func (b be) u32(v ...uint32) be {
	for _, x := range v {
		b = append(b, byte(x>>24), byte(x>>16), byte(x>>8), byte(x))
	}
	return b
}

func (b be) tag(t string) be {
	return b.u32(uint32(T(t)))
}

// hexdata decodes space separated hex bytes, as found in the OpenType
// documentation examples.
func hexdata(s string) be {
	b, err := hex.DecodeString(strings.ReplaceAll(s, " ", ""))
	if err != nil {
		panic(err)
	}
	return b
}

func (b be) data() FontData {
	return NewFontData(b)
}

// buildFont assembles a minimal sfnt file from raw tables, with a correct
// directory and 4-byte aligned tables.
func buildFont(tables map[string][]byte) []byte {
	tags := make([]string, 0, len(tables))
	for tag := range tables {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool { return T(tags[i]) < T(tags[j]) })
	font := be{}.u32(TrueTypeSfnt).u16(uint16(len(tags)), 0, 0, 0)
	offset := 12 + 16*len(tags)
	var body []byte
	for _, tag := range tags {
		t := tables[tag]
		font = font.tag(tag).u32(TableChecksum(t), uint32(offset), uint32(len(t)))
		body = append(body, t...)
		for len(body)%4 != 0 {
			body = append(body, 0)
		}
		offset = 12 + 16*len(tags) + len(body)
	}
	return append(font, body...)
}

// headTable returns a valid 'head' table with the given unitsPerEm.
func headTable(upem uint16) []byte {
	b := be{}.u16(1, 0).u32(0x00010000, 0, HeadMagic).u16(0x000b, upem)
	b = b.u32(0, 0, 0, 0) // created, modified
	b = b.i16(-50, -200, 1000, 800).u16(0, 8).i16(2, 0, 0)
	return b
}

// maxp05Table returns a 'maxp' version 0.5 table.
func maxp05Table(numGlyphs uint16) []byte {
	return be{}.u32(uint32(Version0_5)).u16(numGlyphs)
}
