package ot

import (
	"fmt"
	"iter"
)

// --- Count transforms ------------------------------------------------------

// Unsigned is the set of unsigned integer types used for count fields.
type Unsigned interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Subtract computes v-n, saturating at 0. Counts stored in fonts are untrusted:
// "count minus one" of a stored 0 is 0.
func Subtract[T Unsigned](v, n T) T {
	if n > v {
		return 0
	}
	return v - n
}

// Add computes v+n, saturating at the maximum of T.
func Add[T Unsigned](v, n T) T {
	if s := v + n; s >= v {
		return s
	}
	return ^T(0)
}

// Half computes v/2, e.g. for fields storing a byte length of an array of 16-bit values.
func Half[T Unsigned](v T) T {
	return v / 2
}

// --- Record arrays ---------------------------------------------------------

// RecordLayout describes a fixed-size record: its size in bytes and how to
// decode it. Read is handed exactly Size bytes.
//
// The size may be a runtime value, as for records whose layout depends on a
// format field in the host table (e.g. ValueRecord).
type RecordLayout[T any] struct {
	Size int
	Read func(b []byte) T
}

// Array is a zero-copy view over count records of a fixed size.
// The count is usually taken from another field of the host table.
type Array[T any] struct {
	data   FontData
	count  int
	layout RecordLayout[T]
}

// NewArray creates a view over count records starting at pos in d.
// It fails if count × layout.Size bytes are not available.
func NewArray[T any](d FontData, pos, count int, layout RecordLayout[T]) (Array[T], error) {
	if count < 0 || layout.Size < 0 {
		return Array[T]{}, fmt.Errorf("%w: array of %d records of size %d",
			ErrOutOfBounds, count, layout.Size)
	}
	n, err := checkedMulInt(count, layout.Size)
	if err != nil {
		return Array[T]{}, errOutOfBounds(d.base+pos, count)
	}
	if err := d.Check(pos, n); err != nil {
		return Array[T]{}, err
	}
	data, _ := d.Slice(pos, pos+n)
	return Array[T]{data: data, count: count, layout: layout}, nil
}

// Len returns the number of records.
func (a Array[T]) Len() int {
	return a.count
}

// At returns the i-th record; ok is false if i is out of range.
func (a Array[T]) At(i int) (rec T, ok bool) {
	if i < 0 || i >= a.count {
		return rec, false
	}
	sz := a.layout.Size
	return a.layout.Read(a.data.bytes[i*sz : (i+1)*sz]), true
}

// All iterates over index and record.
func (a Array[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		sz := a.layout.Size
		for i := 0; i < a.count; i++ {
			if !yield(i, a.layout.Read(a.data.bytes[i*sz:(i+1)*sz])) {
				return
			}
		}
	}
}

// Data returns the bytes covered by the array.
func (a Array[T]) Data() FontData {
	return a.data
}

// --- Scalar arrays ---------------------------------------------------------

// ScalarArray is a zero-copy view over count big-endian scalars.
type ScalarArray[T Scalar] struct {
	data  FontData
	count int
}

// NewScalarArray creates a view over count scalars starting at pos in d.
func NewScalarArray[T Scalar](d FontData, pos, count int) (ScalarArray[T], error) {
	if count < 0 {
		return ScalarArray[T]{}, errOutOfBounds(d.base+pos, count)
	}
	n, err := checkedMulInt(count, sizeOf[T]())
	if err != nil {
		return ScalarArray[T]{}, errOutOfBounds(d.base+pos, count)
	}
	if err := d.Check(pos, n); err != nil {
		return ScalarArray[T]{}, err
	}
	data, _ := d.Slice(pos, pos+n)
	return ScalarArray[T]{data: data, count: count}, nil
}

// Len returns the number of elements.
func (a ScalarArray[T]) Len() int {
	return a.count
}

// Get returns the i-th element, or 0 if i is out of range.
func (a ScalarArray[T]) Get(i int) T {
	v, _ := a.At(i)
	return v
}

// At returns the i-th element; ok is false if i is out of range.
func (a ScalarArray[T]) At(i int) (T, bool) {
	if i < 0 || i >= a.count {
		return 0, false
	}
	sz := sizeOf[T]()
	return decode[T](a.data.bytes[i*sz : (i+1)*sz]), true
}

// All iterates over index and element.
func (a ScalarArray[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		sz := sizeOf[T]()
		for i := 0; i < a.count; i++ {
			if !yield(i, decode[T](a.data.bytes[i*sz:(i+1)*sz])) {
				return
			}
		}
	}
}

// Values copies the elements into a slice.
func (a ScalarArray[T]) Values() []T {
	r := make([]T, a.count)
	for i, v := range a.All() {
		r[i] = v
	}
	return r
}

// Data returns the bytes covered by the array.
func (a ScalarArray[T]) Data() FontData {
	return a.data
}
