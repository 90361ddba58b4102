package ot

import (
	"unsafe"
)

// Reading bytes from a font's binary representation

// Scalar is the set of fixed-width integer types stored big-endian in font files.
// Named types derived from them (Offset16, FWord, GlyphIndex, …) qualify as well.
type Scalar interface {
	~uint8 | ~int8 | ~uint16 | ~int16 | ~uint32 | ~int32 | ~uint64 | ~int64
}

// sizeOf returns the number of bytes occupied by a scalar type.
func sizeOf[T Scalar]() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}

func u16(b []byte) uint16 {
	_ = b[1] // Bounds check hint to compiler
	return uint16(b[0])<<8 | uint16(b[1])<<0
}

func u24(b []byte) uint32 {
	_ = b[2]
	return uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2])
}

func u32(b []byte) uint32 {
	_ = b[3] // Bounds check hint to compiler
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])<<0
}

func u64(b []byte) uint64 {
	_ = b[7]
	return uint64(u32(b[:4]))<<32 | uint64(u32(b[4:8]))
}

// decode interprets the first sizeof(T) bytes of b as a big-endian T.
// b must be large enough; callers check bounds first.
func decode[T Scalar](b []byte) T {
	switch len(b) {
	case 1:
		return T(b[0])
	case 2:
		return T(u16(b))
	case 4:
		return T(u32(b))
	}
	return T(u64(b))
}

// --- Font data -------------------------------------------------------------

// FontData is an immutable view onto a font's binary data.
//
// FontData does not own its bytes; all views derived from it share the same
// backing array. Besides the bytes, FontData remembers its absolute position
// within the font file, which is used for diagnostics only.
type FontData struct {
	bytes []byte
	base  int
}

// NewFontData wraps a byte slice. The slice must not change as long as any view
// onto it is in use.
func NewFontData(b []byte) FontData {
	return FontData{bytes: b}
}

// Len returns the size of the data in bytes.
func (d FontData) Len() int {
	return len(d.bytes)
}

// IsEmpty is true for a zero-length view.
func (d FontData) IsEmpty() bool {
	return len(d.bytes) == 0
}

// Bytes returns the underlying bytes. Clients must not modify them.
func (d FontData) Bytes() []byte {
	return d.bytes
}

// Base returns the absolute position of the view's first byte within the font file.
func (d FontData) Base() int {
	return d.base
}

// Slice returns the sub-view [start, end). The second return value is false
// if the range does not lie within d.
func (d FontData) Slice(start, end int) (FontData, bool) {
	if start < 0 || end < start || end > len(d.bytes) {
		return FontData{}, false
	}
	return FontData{bytes: d.bytes[start:end:end], base: d.base + start}, true
}

// SplitOff returns the view starting at pos up to the end of d.
func (d FontData) SplitOff(pos int) (FontData, bool) {
	return d.Slice(pos, len(d.bytes))
}

// Check returns an out-of-bounds error if n bytes at pos are not available.
func (d FontData) Check(pos, n int) error {
	if pos < 0 || n < 0 || pos > len(d.bytes) || n > len(d.bytes)-pos {
		return errOutOfBounds(d.base+pos, n)
	}
	return nil
}

// view returns n bytes at the given offset.
func (d FontData) view(pos, n int) ([]byte, error) {
	if err := d.Check(pos, n); err != nil {
		return nil, err
	}
	return d.bytes[pos : pos+n], nil
}

// Cursor returns a new cursor positioned at the start of d.
func (d FontData) Cursor() *Cursor {
	return &Cursor{data: d}
}

// ReadAt reads a big-endian scalar at position pos, relative to the start of d.
func ReadAt[T Scalar](d FontData, pos int) (T, error) {
	b, err := d.view(pos, sizeOf[T]())
	if err != nil {
		return 0, err
	}
	return decode[T](b), nil
}

// ReadU24At reads a 24-bit unsigned integer at position pos.
func (d FontData) ReadU24At(pos int) (Uint24, error) {
	b, err := d.view(pos, 3)
	if err != nil {
		return 0, err
	}
	return Uint24(u24(b)), nil
}

// U16 is a convenience accessor returning 0 for out-of-bounds positions.
// Use it only where bounds have been checked before, e.g. on array elements.
func (d FontData) U16(pos int) uint16 {
	b, err := d.view(pos, 2)
	if err != nil {
		return 0
	}
	return u16(b)
}

// U32 is the 32-bit variant of U16.
func (d FontData) U32(pos int) uint32 {
	b, err := d.view(pos, 4)
	if err != nil {
		return 0
	}
	return u32(b)
}
