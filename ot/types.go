package ot

import (
	"fmt"
	"time"
)

// GlyphIndex is a glyph index in a font.
type GlyphIndex uint16

// NameID identifies an entry in the 'name' table.
type NameID uint16

// --- Tag -------------------------------------------------------------------

// Tag is defined by the OpenType specification as:
// Array of four uint8s (length = 32 bits) used to identify a table, design-variation axis,
// script, language system, feature, or baseline
type Tag uint32

// MakeTag creates a Tag from 4 bytes, e.g.,
// If b is shorter or longer, it will be silently extended or cut as appropriate
//
//	MakeTag([]byte("cmap"))
func MakeTag(b []byte) Tag {
	if b == nil {
		b = []byte{0, 0, 0, 0}
	} else if len(b) > 4 {
		b = b[:4]
	} else if len(b) < 4 {
		b = append([]byte{0, 0, 0, 0}[:4-len(b)], b...)
	}
	return Tag(u32(b))
}

// T returns a Tag from a (4-letter) string.
// If t is shorter or longer, it will be silently extended or cut as appropriate
func T(t string) Tag {
	t = (t + "    ")[:4]
	return Tag(u32([]byte(t)))
}

func (t Tag) String() string {
	bytes := []byte{
		byte(t >> 24 & 0xff),
		byte(t >> 16 & 0xff),
		byte(t >> 8 & 0xff),
		byte(t & 0xff),
	}
	return string(bytes)
}

// --- Numeric types ---------------------------------------------------------

// Uint24 is a 24-bit unsigned integer, stored in 3 bytes.
type Uint24 uint32

// FWord is a signed quantity in font design units.
type FWord int16

// UFWord is an unsigned quantity in font design units.
type UFWord uint16

// Fixed is a 32-bit signed fixed-point number (16.16).
type Fixed int32

// Float returns f as a floating point number.
func (f Fixed) Float() float64 {
	return float64(f) / 65536
}

// FixedFromFloat converts a float to 16.16 fixed point, rounding to nearest.
func FixedFromFloat(v float64) Fixed {
	if v < 0 {
		return Fixed(v*65536 - 0.5)
	}
	return Fixed(v*65536 + 0.5)
}

func (f Fixed) String() string {
	return fmt.Sprintf("%.4g", f.Float())
}

// F2Dot14 is a 16-bit signed fixed-point number with 14 fractional bits.
type F2Dot14 int16

// Float returns f as a floating point number.
func (f F2Dot14) Float() float64 {
	return float64(f) / 16384
}

// LongDateTime is a date as seconds since 12:00 midnight, January 1, 1904, UTC.
type LongDateTime int64

var epoch1904 = time.Date(1904, time.January, 1, 0, 0, 0, 0, time.UTC)

// Time converts d to a time.Time.
func (d LongDateTime) Time() time.Time {
	return epoch1904.Add(time.Duration(d) * time.Second)
}

// --- Versions --------------------------------------------------------------

// Version16Dot16 is a packed version number as used in 'maxp' and 'post':
// major version in the upper 16 bits, minor version in the upper nibble of the
// lower 16 bits (0x00005000 is version 0.5).
type Version16Dot16 uint32

// Version16Dot16 constants for the versions occurring in fonts.
const (
	Version0_5 Version16Dot16 = 0x00005000
	Version1_0 Version16Dot16 = 0x00010000
	Version2_0 Version16Dot16 = 0x00020000
	Version2_5 Version16Dot16 = 0x00025000
	Version3_0 Version16Dot16 = 0x00030000
)

// Major returns the major version.
func (v Version16Dot16) Major() uint16 {
	return uint16(v >> 16)
}

// Minor returns the minor version digit.
func (v Version16Dot16) Minor() uint16 {
	return uint16(v>>12) & 0xf
}

func (v Version16Dot16) String() string {
	return fmt.Sprintf("%d.%d", v.Major(), v.Minor())
}

// MajorMinor is a version number stored as two uint16 values.
type MajorMinor struct {
	Major, Minor uint16
}

// Version1_0MM is the most common MajorMinor version.
var Version1_0MM = MajorMinor{1, 0}

// Compatible reports whether a table of version v may be read by a reader
// expecting version major.minor. Newer minor versions only append fields,
// so any minor version greater or equal is compatible.
func (v MajorMinor) Compatible(major, minor uint16) bool {
	return v.Major == major && v.Minor >= minor
}

func (v MajorMinor) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// ReadMajorMinor consumes a MajorMinor version.
func ReadMajorMinor(c *Cursor) (MajorMinor, error) {
	major, err := ReadAt[uint16](c.data, c.pos)
	if err != nil {
		return MajorMinor{}, err
	}
	minor, err := ReadAt[uint16](c.data, c.pos+2)
	if err != nil {
		return MajorMinor{}, err
	}
	c.pos += 4
	return MajorMinor{major, minor}, nil
}

// CompatibleVersion reports whether a 16-bit version number is at least min.
// Tables with a single uint16 version field (e.g. 'CPAL', 'name') append fields
// with every version.
func CompatibleVersion(v, min uint16) bool {
	return v >= min
}
