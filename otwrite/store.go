package otwrite

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"slices"

	"github.com/cespare/xxhash/v2"
)

type objectID int

// objectStore holds the serialized objects of one Dump call. Objects with the
// same content are stored only once.
type objectStore struct {
	objects []*tableData
	byHash  map[uint64][]objectID
}

func newObjectStore() *objectStore {
	return &objectStore{byHash: make(map[uint64][]objectID)}
}

// hash computes the xxHash64 of an object's bytes and offset records.
func (td *tableData) hash() uint64 {
	d := xxhash.New()
	d.Write(td.bytes)
	var buf [12]byte
	for _, rec := range td.offsets {
		binary.BigEndian.PutUint32(buf[0:], uint32(rec.pos))
		binary.BigEndian.PutUint32(buf[4:], uint32(rec.width))
		binary.BigEndian.PutUint32(buf[8:], uint32(rec.obj))
		d.Write(buf[:])
	}
	return d.Sum64()
}

// equal compares content; the hash alone is not trusted.
func (td *tableData) equal(other *tableData) bool {
	return bytes.Equal(td.bytes, other.bytes) && slices.Equal(td.offsets, other.offsets)
}

func (s *objectStore) add(td *tableData) objectID {
	h := td.hash()
	for _, id := range s.byHash[h] {
		if s.objects[id].equal(td) {
			tracer().Debugf("object %s is a duplicate of #%d", td.name, id)
			return id
		}
	}
	id := objectID(len(s.objects))
	s.objects = append(s.objects, td)
	s.byHash[h] = append(s.byHash[h], id)
	return id
}

// order returns the objects reachable from root in topological order: every
// object comes after all of its parents. Among objects whose parents are all
// placed, the first one referenced is placed first (Kahn's algorithm with a
// FIFO queue), which results in a breadth-first layout.
func (s *objectStore) order(root objectID) []objectID {
	indegree := make([]int, len(s.objects))
	for _, td := range s.objects {
		for _, rec := range td.offsets {
			indegree[rec.obj]++
		}
	}
	queue := []objectID{root}
	order := make([]objectID, 0, len(s.objects))
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		order = append(order, id)
		for _, rec := range s.objects[id].offsets {
			indegree[rec.obj]--
			if indegree[rec.obj] == 0 {
				queue = append(queue, rec.obj)
			}
		}
	}
	return order
}

// pack lays out all objects reachable from root and patches the offsets.
func (s *objectStore) pack(root objectID) ([]byte, error) {
	order := s.order(root)
	pos := make([]int, len(s.objects))
	total := 0
	for _, id := range order {
		pos[id] = total
		total += len(s.objects[id].bytes)
	}
	out := make([]byte, 0, total)
	for _, id := range order {
		td := s.objects[id]
		start := len(out)
		out = append(out, td.bytes...)
		for _, rec := range td.offsets {
			value := pos[rec.obj] - pos[id]
			if value >= 1<<(8*rec.width) {
				return nil, &OffsetOverflowError{
					Host:   td.name,
					Target: s.objects[rec.obj].name,
					Width:  rec.width,
					Value:  value,
				}
			}
			putOffset(out[start+rec.pos:], rec.width, uint32(value))
		}
	}
	tracer().Debugf("packed %d objects into %d bytes", len(order), total)
	return out, nil
}

func putOffset(b []byte, width int, v uint32) {
	switch width {
	case 2:
		binary.BigEndian.PutUint16(b, uint16(v))
	case 3:
		b[0], b[1], b[2] = byte(v>>16), byte(v>>8), byte(v)
	default:
		binary.BigEndian.PutUint32(b, v)
	}
}

// ErrOffsetOverflow is matched by every OffsetOverflowError.
var ErrOffsetOverflow = errors.New("offset overflow")

// OffsetOverflowError reports an offset which does not fit into its field.
type OffsetOverflowError struct {
	Host   string // object containing the offset field
	Target string // object the offset points to
	Width  int    // field width in bytes
	Value  int    // required offset
}

func (e *OffsetOverflowError) Error() string {
	return fmt.Sprintf("offset overflow: %s → %s needs offset %d, exceeding %d-bit field",
		e.Host, e.Target, e.Value, 8*e.Width)
}

func (e *OffsetOverflowError) Is(target error) bool {
	return target == ErrOffsetOverflow
}

// Dump serializes a graph of objects, starting with root. The graph itself is
// not modified.
func Dump(root FontWrite) ([]byte, error) {
	w := newTableWriter()
	rootID := w.addTable(root)
	if w.err != nil {
		return nil, w.err
	}
	return w.store.pack(rootID)
}
