package ot

// --- Offsets ---------------------------------------------------------------

// Offsets in OpenType are byte distances measured from the start of a host
// table (or record), not from the start of the font file. A value of 0 is
// reserved to mean "no table".

// Offset16 is a 16-bit offset to a table.
type Offset16 uint16

// Offset24 is a 24-bit offset to a table.
type Offset24 uint32

// Offset32 is a 32-bit offset to a table.
type Offset32 uint32

// Offset is implemented by all offset types.
type Offset interface {
	Offset16 | Offset24 | Offset32
}

// NonNull returns the raw value if it is non-zero.
func NonNull[O Offset](off O) Option[int] {
	return When(off != 0, int(off))
}

// Absolute returns base + off if off is non-zero.
func Absolute[O Offset](off O, base int) Option[int] {
	return Map(NonNull(off), func(raw int) int { return base + raw })
}

// IsNull is true for the zero offset.
func (off Offset16) IsNull() bool { return off == 0 }

// IsNull is true for the zero offset.
func (off Offset24) IsNull() bool { return off == 0 }

// IsNull is true for the zero offset.
func (off Offset32) IsNull() bool { return off == 0 }

// Reader reads a T from the start of its data. The data passed starts at the
// target of an offset and extends to the end of the host.
type Reader[T any] func(FontData) (T, error)

// ReaderWithArgs is a Reader which needs additional information to know the
// size or shape of its target, e.g. an element count stored in the host table.
type ReaderWithArgs[T, A any] func(FontData, A) (T, error)

// target returns the data at off, relative to host.
func target[O Offset](off O, host FontData, name string) (FontData, error) {
	if off == 0 {
		return FontData{}, errOffset(NullOffset, "", name, host.base, 0)
	}
	d, ok := host.SplitOff(int(off))
	if !ok {
		return FontData{}, errOffset(OutOfBounds, "", name, host.base+int(off), uint32(off))
	}
	return d, nil
}

// Resolve follows a mandatory offset and reads its target. A zero offset
// results in an error of kind NullOffset.
func Resolve[T any, O Offset](off O, host FontData, name string, read Reader[T]) (T, error) {
	var t T
	d, err := target(off, host, name)
	if err != nil {
		return t, err
	}
	t, err = read(d)
	if err != nil {
		tracer().Debugf("cannot resolve offset %s=%d: %v", name, off, err)
		return t, annotate(err, "", name)
	}
	return t, nil
}

// ResolveNullable follows an offset which may legitimately be zero.
// A zero offset yields an empty Option and no error; a non-zero offset which cannot
// be resolved yields an error. This lets clients distinguish "absent" from
// "present but broken".
func ResolveNullable[T any, O Offset](off O, host FontData, name string, read Reader[T]) (Option[T], error) {
	if off == 0 {
		return None[T](), nil
	}
	t, err := Resolve(off, host, name, read)
	if err != nil {
		return None[T](), err
	}
	return Some(t), nil
}

// ResolveWithArgs follows a mandatory offset to a target whose size is not
// self-describing, passing args to the target's reader.
func ResolveWithArgs[T, A any, O Offset](off O, host FontData, name string, args A,
	read ReaderWithArgs[T, A]) (T, error) {
	//
	return Resolve(off, host, name, func(d FontData) (T, error) {
		return read(d, args)
	})
}

// ResolveNullableWithArgs is the nullable variant of ResolveWithArgs.
func ResolveNullableWithArgs[T, A any, O Offset](off O, host FontData, name string, args A,
	read ReaderWithArgs[T, A]) (Option[T], error) {
	//
	return ResolveNullable(off, host, name, func(d FontData) (T, error) {
		return read(d, args)
	})
}

// ReadOffset24 consumes a 24-bit offset.
func ReadOffset24(c *Cursor) (Offset24, error) {
	v, err := c.ReadU24()
	return Offset24(v), err
}
