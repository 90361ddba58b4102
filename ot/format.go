package ot

// --- Format dispatch -------------------------------------------------------

// Many OpenType tables occur in different formats or versions. The format is
// always stored in the first field, which has a fixed width (uint16 for most
// tables, uint32 for 'maxp' and 'post').
//
// A family of table formats is modelled as an interface implemented by one
// struct per known format. Accessors common to all formats are part of the
// interface; accessors for fields only some formats have return an Option.

// PeekFormat reads the discriminant at the start of data, without consuming anything.
func PeekFormat[D Scalar](data FontData) (D, error) {
	return ReadAt[D](data, 0)
}

// ReadFormat selects a reader by the discriminant stored at the start of data
// and invokes it on data. If no variant matches, an error of kind InvalidFormat
// carrying the raw discriminant is returned.
func ReadFormat[D Scalar, T any](data FontData, table string, variants map[D]Reader[T]) (T, error) {
	var t T
	format, err := PeekFormat[D](data)
	if err != nil {
		return t, annotate(err, table, "format")
	}
	read, ok := variants[format]
	if !ok {
		tracer().Debugf("%s: unknown format %d", table, format)
		return t, errFormat(table, data.base, uint32(format))
	}
	if t, err = read(data); err != nil {
		return t, annotate(err, table, "")
	}
	return t, nil
}
