package ot

// Cursor reads fields sequentially from a FontData.
//
// Every read is bounds-checked. A read which would run past the end of the data
// fails with an out-of-bounds error and leaves the cursor's position unchanged.
// Skipping fields with Advance and AdvanceBy is unchecked; a cursor skipped past
// the end of its data reports the inconsistency on the next read or on Position.
type Cursor struct {
	data FontData
	pos  int
}

// Read consumes sizeof(T) bytes and interprets them as a big-endian T.
func Read[T Scalar](c *Cursor) (T, error) {
	v, err := ReadAt[T](c.data, c.pos)
	if err != nil {
		return 0, err
	}
	c.pos += sizeOf[T]()
	return v, nil
}

// Advance skips a field of type T without interpreting it.
func Advance[T Scalar](c *Cursor) {
	c.pos += sizeOf[T]()
}

// AdvanceBy skips n bytes.
func (c *Cursor) AdvanceBy(n int) {
	c.pos += n
}

// Position returns the current offset, relative to the start of the cursor's data.
// It fails if the cursor has been advanced beyond the end of the data.
func (c *Cursor) Position() (int, error) {
	if c.pos > c.data.Len() || c.pos < 0 {
		return c.pos, errOutOfBounds(c.data.base+c.pos, 0)
	}
	return c.pos, nil
}

// ReadU24 consumes a 24-bit unsigned integer.
func (c *Cursor) ReadU24() (Uint24, error) {
	v, err := c.data.ReadU24At(c.pos)
	if err != nil {
		return 0, err
	}
	c.pos += 3
	return v, nil
}

// ReadTag consumes a 4-byte tag.
func (c *Cursor) ReadTag() (Tag, error) {
	v, err := Read[uint32](c)
	return Tag(v), err
}

// ReadBytes consumes n bytes and returns them as a view.
func (c *Cursor) ReadBytes(n int) (FontData, error) {
	if err := c.data.Check(c.pos, n); err != nil {
		return FontData{}, err
	}
	d, _ := c.data.Slice(c.pos, c.pos+n)
	c.pos += n
	return d, nil
}

// Remaining returns the not yet consumed part of the data.
func (c *Cursor) Remaining() (FontData, bool) {
	return c.data.SplitOff(c.pos)
}

// Finish returns the data consumed so far, i.e. the bytes of a record the cursor
// has walked over.
func (c *Cursor) Finish() (FontData, error) {
	pos, err := c.Position()
	if err != nil {
		return FontData{}, err
	}
	d, _ := c.data.Slice(0, pos)
	return d, nil
}

// ReadScalarArray consumes count elements of type T and returns them as a view.
func ReadScalarArray[T Scalar](c *Cursor, count int) (ScalarArray[T], error) {
	a, err := NewScalarArray[T](c.data, c.pos, count)
	if err != nil {
		return a, err
	}
	c.pos += a.Len() * sizeOf[T]()
	return a, nil
}

// ReadArray consumes count records with the given layout and returns them as a view.
func ReadArray[T any](c *Cursor, count int, layout RecordLayout[T]) (Array[T], error) {
	a, err := NewArray(c.data, c.pos, count, layout)
	if err != nil {
		return a, err
	}
	c.pos += a.Len() * layout.Size
	return a, nil
}
