package otwrite

import (
	"encoding/hex"
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/otcodec/ot"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/require"
)

// node is a test object: a value followed by 16-bit offsets to its children.
type node struct {
	name     string
	value    uint16
	children []*node
}

func (n *node) TableType() string { return n.name }

func (n *node) Write(w *TableWriter) {
	w.WriteU16(n.value)
	for _, c := range n.children {
		w.WriteOffset(c, 2)
	}
}

// blob is a test object with opaque content.
type blob []byte

func (b blob) Write(w *TableWriter) { w.WriteBytes(b) }

// offsets writes each child with the given offset width.
type offsets struct {
	width    int
	children []FontWrite
}

func (o offsets) Write(w *TableWriter) {
	for _, c := range o.children {
		w.WriteOffset(c, o.width)
	}
}

func leaf(name string, v uint16) *node {
	return &node{name: name, value: v}
}

func hexbytes(t *testing.T, s string) []byte {
	b, err := hex.DecodeString(strings.Join(strings.Fields(s), ""))
	require.NoError(t, err)
	return b
}

func TestScalarWriters(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.otwrite")
	defer teardown()
	//
	b, err := Dump(Scalars[int16]{-1, 2})
	require.NoError(t, err)
	require.Equal(t, hexbytes(t, "ffff 0002"), b)
	//
	b, err = Dump(writeFunc(func(w *TableWriter) {
		w.WriteU8(7)
		w.WriteU24(0x010203)
		w.WriteTag(ot.T("wght"))
		w.WriteFixed(0x00018000)
		w.WriteI8(-2)
		w.PadToEven()
		require.Equal(t, 14, w.Len())
		w.PadTo4()
		w.WriteU64(1)
	}))
	require.NoError(t, err)
	require.Equal(t, hexbytes(t, "07 010203 77676874 00018000 fe 00 0000 0000000000000001"), b)
}

// writeFunc adapts a function to FontWrite.
type writeFunc func(w *TableWriter)

func (f writeFunc) Write(w *TableWriter) { f(w) }

func TestChildAfterParent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.otwrite")
	defer teardown()
	//
	root := &node{name: "root", value: 1, children: []*node{
		{name: "A", value: 2, children: []*node{leaf("C", 7)}},
		leaf("B", 3),
	}}
	b, err := Dump(root)
	require.NoError(t, err)
	// breadth-first: root, A, B, C
	require.Equal(t, hexbytes(t, "0001 0006 000a  0002 0006  0003  0007"), b)
}

func TestIdenticalObjectsAreStoredOnce(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.otwrite")
	defer teardown()
	//
	root := &node{name: "root", value: 1, children: []*node{leaf("a", 2), leaf("b", 2)}}
	b, err := Dump(root)
	require.NoError(t, err)
	require.Equal(t, hexbytes(t, "0001 0006 0006 0002"), b)
}

func TestSharedObjectAfterAllParents(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.otwrite")
	defer teardown()
	//
	shared := leaf("S", 9)
	root := &node{name: "root", value: 1, children: []*node{
		{name: "A", value: 2, children: []*node{shared}},
		{name: "B", value: 3, children: []*node{shared}},
	}}
	b, err := Dump(root)
	require.NoError(t, err)
	// root at 0, A at 6, B at 10, S at 14
	require.Equal(t, hexbytes(t, "0001 0006 000a  0002 0008  0003 0004  0009"), b)
	//
	// the graph is not modified; dumping again gives the same result
	again, err := Dump(root)
	require.NoError(t, err)
	require.Equal(t, b, again)
}

func TestOffsetWidths(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.otwrite")
	defer teardown()
	//
	for _, tc := range []struct {
		width int
		want  string
	}{
		{2, "0002 ab"},
		{3, "000003 ab"},
		{4, "00000004 ab"},
	} {
		b, err := Dump(offsets{width: tc.width, children: []FontWrite{blob{0xab}}})
		require.NoError(t, err)
		require.Equal(t, hexbytes(t, tc.want), b, "width %d", tc.width)
	}
	_, err := Dump(offsets{width: 5, children: []FontWrite{blob{0xab}}})
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid offset width 5")
}

func TestNullOffsets(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.otwrite")
	defer teardown()
	//
	b, err := Dump(writeFunc(func(w *TableWriter) {
		w.WriteNullableOffset(nil, 2)
		Nullable32(ot.None[blob]()).Write(w)
		Nullable16(ot.Some(blob{0xcd})).Write(w)
	}))
	require.NoError(t, err)
	require.Equal(t, hexbytes(t, "0000 00000000 0008 cd"), b)
	require.True(t, Nullable16(ot.None[blob]()).IsNull())
}

func TestOffsetOverflow(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.otwrite")
	defer teardown()
	//
	big := make(blob, 70000)
	root := &node{name: "root", value: 1}
	tbl := writeFunc(func(w *TableWriter) {
		root.Write(w)
		w.WriteOffset(big, 2)
		w.WriteOffset(leaf("small", 2), 2)
	})
	_, err := Dump(tbl)
	require.ErrorIs(t, err, ErrOffsetOverflow)
	var overflow *OffsetOverflowError
	require.True(t, errors.As(err, &overflow))
	require.Equal(t, "small", overflow.Target)
	require.Equal(t, 2, overflow.Width)
	require.Equal(t, 70000+6, overflow.Value)
	//
	// 32-bit offsets can hold the distance
	b, err := Dump(offsets{width: 4, children: []FontWrite{big, leaf("small", 2)}})
	require.NoError(t, err)
	require.Len(t, b, 8+70000+2)
}

func TestWriteAll(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.otwrite")
	defer teardown()
	//
	b, err := Dump(writeFunc(func(w *TableWriter) {
		WriteAll(w, []blob{{1}, {2, 3}})
		w.WriteObject(Scalars[uint16]{4})
	}))
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3, 0, 4}, b)
}
