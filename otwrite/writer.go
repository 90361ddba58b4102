package otwrite

import (
	"encoding/binary"
	"fmt"
	"unsafe"

	"github.com/npillmayer/otcodec/ot"
)

// FontWrite is implemented by everything which can be written into a font
// table: tables, records and scalars wrapped in records.
type FontWrite interface {
	Write(w *TableWriter)
}

// tableTyper may be implemented by a FontWrite to name itself in diagnostics.
type tableTyper interface {
	TableType() string
}

func tableType(obj FontWrite) string {
	if t, ok := obj.(tableTyper); ok {
		return t.TableType()
	}
	return fmt.Sprintf("%T", obj)
}

// offsetRecord is a placeholder within a host object, to be patched with the
// distance to the target object.
type offsetRecord struct {
	pos   int // position of the offset field within the host
	width int // 2, 3 or 4 bytes
	obj   objectID
}

// tableData is the serialized form of a single object.
type tableData struct {
	name    string
	bytes   []byte
	offsets []offsetRecord
}

// TableWriter collects the bytes of one object at a time. Sub-objects referenced
// by offsets are written into their own tableData and added to the object store.
//
// A TableWriter is not safe for concurrent use.
type TableWriter struct {
	store *objectStore
	stack []*tableData
	err   error
}

func newTableWriter() *TableWriter {
	return &TableWriter{store: newObjectStore()}
}

func (w *TableWriter) current() *tableData {
	return w.stack[len(w.stack)-1]
}

// addTable serializes obj as a separate object and returns its ID.
func (w *TableWriter) addTable(obj FontWrite) objectID {
	w.stack = append(w.stack, &tableData{name: tableType(obj)})
	obj.Write(w)
	td := w.current()
	w.stack = w.stack[:len(w.stack)-1]
	return w.store.add(td)
}

// fail records the first error; Dump reports it.
func (w *TableWriter) fail(err error) {
	if w.err == nil {
		w.err = err
	}
}

// Put appends a scalar in big-endian byte order.
func Put[T ot.Scalar](w *TableWriter, v T) {
	td := w.current()
	switch unsafe.Sizeof(v) {
	case 1:
		td.bytes = append(td.bytes, byte(v))
	case 2:
		td.bytes = binary.BigEndian.AppendUint16(td.bytes, uint16(v))
	case 4:
		td.bytes = binary.BigEndian.AppendUint32(td.bytes, uint32(v))
	default:
		td.bytes = binary.BigEndian.AppendUint64(td.bytes, uint64(v))
	}
}

func (w *TableWriter) WriteU8(v uint8)       { Put(w, v) }
func (w *TableWriter) WriteI8(v int8)        { Put(w, v) }
func (w *TableWriter) WriteU16(v uint16)     { Put(w, v) }
func (w *TableWriter) WriteI16(v int16)      { Put(w, v) }
func (w *TableWriter) WriteU32(v uint32)     { Put(w, v) }
func (w *TableWriter) WriteI32(v int32)      { Put(w, v) }
func (w *TableWriter) WriteU64(v uint64)     { Put(w, v) }
func (w *TableWriter) WriteTag(t ot.Tag)     { Put(w, t) }
func (w *TableWriter) WriteFixed(f ot.Fixed) { Put(w, f) }

// WriteU24 appends the lower 24 bits of v.
func (w *TableWriter) WriteU24(v ot.Uint24) {
	td := w.current()
	td.bytes = append(td.bytes, byte(v>>16), byte(v>>8), byte(v))
}

// WriteBytes appends raw bytes.
func (w *TableWriter) WriteBytes(b []byte) {
	td := w.current()
	td.bytes = append(td.bytes, b...)
}

// WriteObject writes obj inline, as part of the current object.
func (w *TableWriter) WriteObject(obj FontWrite) {
	obj.Write(w)
}

// WriteAll writes a sequence of records inline.
func WriteAll[T FontWrite](w *TableWriter, records []T) {
	for _, rec := range records {
		rec.Write(w)
	}
}

// WriteOffset writes obj as a separate object and appends a placeholder of
// width bytes (2, 3 or 4), to be replaced by the offset to obj.
func (w *TableWriter) WriteOffset(obj FontWrite, width int) {
	if width < 2 || width > 4 {
		w.fail(fmt.Errorf("otwrite: %s: invalid offset width %d", w.current().name, width))
		width = 2
	}
	id := w.addTable(obj)
	td := w.current()
	td.offsets = append(td.offsets, offsetRecord{pos: len(td.bytes), width: width, obj: id})
	td.bytes = append(td.bytes, make([]byte, width)...)
}

// WriteNullableOffset writes a null offset for a nil obj, otherwise it
// behaves like WriteOffset.
func (w *TableWriter) WriteNullableOffset(obj FontWrite, width int) {
	if obj == nil {
		w.WriteNullOffset(width)
		return
	}
	w.WriteOffset(obj, width)
}

// WriteNullOffset writes width zero bytes.
func (w *TableWriter) WriteNullOffset(width int) {
	td := w.current()
	td.bytes = append(td.bytes, make([]byte, width)...)
}

// PadToEven pads the current object to an even length.
func (w *TableWriter) PadToEven() {
	w.padTo(2)
}

// PadTo4 pads the current object to a multiple of four bytes.
func (w *TableWriter) PadTo4() {
	w.padTo(4)
}

func (w *TableWriter) padTo(n int) {
	td := w.current()
	for len(td.bytes)%n != 0 {
		td.bytes = append(td.bytes, 0)
	}
}

// Len returns the number of bytes written for the current object.
func (w *TableWriter) Len() int {
	return len(w.current().bytes)
}

// --- Offset markers --------------------------------------------------------

// OffsetMarker is a field of an owned table holding a sub-table, which is
// written as an offset of the given width.
type OffsetMarker[T FontWrite] struct {
	Obj   T
	Width int
}

// Offset16 creates a 16-bit offset marker for obj.
func Offset16[T FontWrite](obj T) OffsetMarker[T] {
	return OffsetMarker[T]{Obj: obj, Width: 2}
}

// Offset24 creates a 24-bit offset marker for obj.
func Offset24[T FontWrite](obj T) OffsetMarker[T] {
	return OffsetMarker[T]{Obj: obj, Width: 3}
}

// Offset32 creates a 32-bit offset marker for obj.
func Offset32[T FontWrite](obj T) OffsetMarker[T] {
	return OffsetMarker[T]{Obj: obj, Width: 4}
}

func (m OffsetMarker[T]) Write(w *TableWriter) {
	w.WriteOffset(m.Obj, m.Width)
}

// Validate validates the sub-table.
func (m OffsetMarker[T]) Validate(ctx *ValidationCtx) {
	ValidateChild(ctx, m.Obj)
}

// NullableOffsetMarker is an offset field which may be null.
type NullableOffsetMarker[T FontWrite] struct {
	Obj   ot.Option[T]
	Width int
}

// Nullable16 creates a nullable 16-bit offset marker.
func Nullable16[T FontWrite](obj ot.Option[T]) NullableOffsetMarker[T] {
	return NullableOffsetMarker[T]{Obj: obj, Width: 2}
}

// Nullable32 creates a nullable 32-bit offset marker.
func Nullable32[T FontWrite](obj ot.Option[T]) NullableOffsetMarker[T] {
	return NullableOffsetMarker[T]{Obj: obj, Width: 4}
}

func (m NullableOffsetMarker[T]) Write(w *TableWriter) {
	if obj, ok := m.Obj.Unwrap(); ok {
		w.WriteOffset(obj, m.Width)
		return
	}
	w.WriteNullOffset(m.Width)
}

// Validate validates the sub-table, if present.
func (m NullableOffsetMarker[T]) Validate(ctx *ValidationCtx) {
	if obj, ok := m.Obj.Unwrap(); ok {
		ValidateChild(ctx, obj)
	}
}

// IsNull is true if the offset will be written as null.
func (m NullableOffsetMarker[T]) IsNull() bool {
	return m.Obj.IsNone()
}

// Scalars is an array of scalars, written back to back.
type Scalars[T ot.Scalar] []T

func (a Scalars[T]) Write(w *TableWriter) {
	for _, v := range a {
		Put(w, v)
	}
}
