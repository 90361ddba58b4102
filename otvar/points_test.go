package otvar

import (
	"slices"
	"testing"

	"github.com/npillmayer/otcodec/ot"
	"github.com/npillmayer/otcodec/otwrite"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/require"
)

func TestPointRunsWords(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.otvar")
	defer teardown()
	//
	p := NewPackedPointNumbers([]uint16{1002, 2002, 8408, 12228})
	runs := slices.Collect(p.Runs())
	require.Equal(t, []PointRun{{LastPoint: 0, AreWords: true, Points: []uint16{1002, 2002, 8408, 12228}}}, runs)
	//
	b, err := p.Encode()
	require.NoError(t, err)
	require.Equal(t, []byte{4, 0x83, 0x03, 0xea, 0x03, 0xe8, 0x19, 0x06, 0x0e, 0xec}, b)
	points, isAll, n, err := DecodePoints(ot.NewFontData(b), 0)
	require.NoError(t, err)
	require.False(t, isAll)
	require.Equal(t, p.Points, points)
	require.Equal(t, len(b), n)
}

func TestPointRunsMixed(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.otvar")
	defer teardown()
	//
	p := NewPackedPointNumbers([]uint16{5, 25, 225, 1002, 2002, 2008, 2228})
	runs := slices.Collect(p.Runs())
	require.Equal(t, []PointRun{
		{LastPoint: 0, AreWords: false, Points: []uint16{5, 25, 225}},
		{LastPoint: 225, AreWords: true, Points: []uint16{1002, 2002}},
		{LastPoint: 2002, AreWords: false, Points: []uint16{2008, 2228}},
	}, runs)
	//
	b, err := p.Encode()
	require.NoError(t, err)
	points, _, n, err := DecodePoints(ot.NewFontData(b), 0)
	require.NoError(t, err)
	require.Equal(t, p.Points, points)
	require.Equal(t, len(b), n)
}

func TestLongPointRuns(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.otvar")
	defer teardown()
	//
	numbers := make([]uint16, 0, 260)
	for i := uint16(1); i <= 260; i++ {
		numbers = append(numbers, i)
	}
	p := NewPackedPointNumbers(numbers)
	runs := slices.Collect(p.Runs())
	require.Len(t, runs, 3)
	require.False(t, runs[0].AreWords)
	require.Len(t, runs[0].Points, 128)
	require.Equal(t, uint16(128), runs[1].LastPoint)
	require.Len(t, runs[1].Points, 128)
	require.Equal(t, uint16(256), runs[2].LastPoint)
	require.Equal(t, []uint16{257, 258, 259, 260}, runs[2].Points)
	//
	// more than 127 points need a two-byte count
	b, err := p.Encode()
	require.NoError(t, err)
	require.Equal(t, []byte{0x81, 0x04}, b[:2])
	points, _, n, err := DecodePoints(ot.NewFontData(b), 0)
	require.NoError(t, err)
	require.Equal(t, numbers, points)
	require.Equal(t, len(b), n)
}

func TestAllPoints(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.otvar")
	defer teardown()
	//
	p := AllPoints()
	require.True(t, p.IsAll())
	b, err := p.Encode()
	require.NoError(t, err)
	require.Equal(t, []byte{0}, b)
	points, isAll, n, err := DecodePoints(ot.NewFontData(b), 4)
	require.NoError(t, err)
	require.True(t, isAll)
	require.Equal(t, []uint16{0, 1, 2, 3}, points)
	require.Equal(t, 1, n)
}

func TestPointValidation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.otvar")
	defer teardown()
	//
	require.NoError(t, otwrite.ValidateTable(NewPackedPointNumbers([]uint16{1, 2, 3})))
	//
	err := otwrite.ValidateTable(NewPackedPointNumbers(make([]uint16, 0x8000)))
	var report *otwrite.ValidationReport
	require.ErrorAs(t, err, &report)
	require.Equal(t, "PackedPointNumbers: length cannot be stored in 15 bits", report.Errors[0].String())
	//
	_, err = otwrite.DumpTable(NewPackedPointNumbers([]uint16{3, 2}))
	require.ErrorIs(t, err, otwrite.ErrValidation)
	require.Error(t, err)
	require.Contains(t, err.Error(), "PackedPointNumbers[1]: point 2 not in ascending order")
}

func TestDecodeBrokenPoints(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.otvar")
	defer teardown()
	//
	b, err := NewPackedPointNumbers([]uint16{5, 25, 225, 1002, 2002, 2008, 2228}).Encode()
	require.NoError(t, err)
	_, _, _, err = DecodePoints(ot.NewFontData(b[:len(b)-1]), 0)
	require.ErrorIs(t, err, ot.ErrOutOfBounds)
	_, _, _, err = DecodePoints(ot.NewFontData(nil), 0)
	require.ErrorIs(t, err, ot.ErrOutOfBounds)
	// count 2, but a run of 3
	_, _, _, err = DecodePoints(ot.NewFontData([]byte{2, 2, 1, 1, 1}), 0)
	require.ErrorIs(t, err, ot.ErrInvalidFormat)
}

func TestEncodeRejectsOversizedCount(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.otvar")
	defer teardown()
	//
	numbers := make([]uint16, 40000)
	for i := range numbers {
		numbers[i] = uint16(i)
	}
	b, err := NewPackedPointNumbers(numbers).Encode()
	require.ErrorIs(t, err, otwrite.ErrValidation)
	require.Contains(t, err.Error(), "length cannot be stored in 15 bits")
	require.Nil(t, b)
	//
	b, err = NewPackedPointNumbers(numbers[:0x7fff]).Encode()
	require.NoError(t, err)
	require.Equal(t, []byte{0xff, 0xff}, b[:2])
	points, _, _, err := DecodePoints(ot.NewFontData(b), 0)
	require.NoError(t, err)
	require.Equal(t, numbers[:0x7fff], points)
}
