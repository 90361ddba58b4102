package otvar

import (
	"slices"
	"testing"

	"github.com/npillmayer/otcodec/ot"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/require"
)

var packedDeltaBytes = []byte{0x03, 0x0A, 0x97, 0x00, 0xC6, 0x87, 0x41, 0x10, 0x22, 0xFB, 0x34}

var referenceDeltas = []int16{10, -105, 0, -58, 0, 0, 0, 0, 0, 0, 0, 0, 4130, -1228}

func TestPackedDeltaRuns(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.otvar")
	defer teardown()
	//
	runs := slices.Collect(NewPackedDeltas(referenceDeltas).Runs())
	require.Equal(t, []DeltaRun{
		{Kind: RunOneByte, Values: []int16{10, -105, 0, -58}, Count: 4},
		{Kind: RunZeros, Count: 8},
		{Kind: RunTwoBytes, Values: []int16{4130, -1228}, Count: 2},
	}, runs)
	require.Equal(t, uint8(0x87), runs[1].Flag())
	require.Equal(t, uint8(0x41), runs[2].Flag())
}

func TestPackedDeltasEncode(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.otvar")
	defer teardown()
	//
	p := NewPackedDeltas(referenceDeltas)
	b, err := p.Encode()
	require.NoError(t, err)
	require.Equal(t, packedDeltaBytes, b)
	require.Equal(t, len(b), p.ComputeSize())
	//
	deltas, n, err := DecodeDeltas(ot.NewFontData(b), len(referenceDeltas))
	require.NoError(t, err)
	require.Equal(t, referenceDeltas, deltas)
	require.Equal(t, len(b), n)
	//
	deltas, _, err = DecodeDeltas(ot.NewFontData(b), -1)
	require.NoError(t, err)
	require.Equal(t, referenceDeltas, deltas)
}

func TestEmptyDeltas(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.otvar")
	defer teardown()
	//
	b, err := NewPackedDeltas(nil).Encode()
	require.NoError(t, err)
	require.Empty(t, b)
	require.Zero(t, NewPackedDeltas(nil).ComputeSize())
	deltas, n, err := DecodeDeltas(ot.NewFontData(nil), 0)
	require.NoError(t, err)
	require.Empty(t, deltas)
	require.Zero(t, n)
}

func TestDeltaRunLimits(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.otvar")
	defer teardown()
	//
	for _, tc := range []struct {
		name  string
		value int16
		kinds []DeltaRunKind
		size  int
	}{
		{"zeros", 0, []DeltaRunKind{RunZeros, RunZeros}, 2},
		{"bytes", 1, []DeltaRunKind{RunOneByte, RunOneByte}, 2 + 100},
		{"words", 1000, []DeltaRunKind{RunTwoBytes, RunTwoBytes}, 2 + 200},
	} {
		t.Run(tc.name, func(t *testing.T) {
			deltas := make([]int16, 100)
			for i := range deltas {
				deltas[i] = tc.value
			}
			p := NewPackedDeltas(deltas)
			var kinds []DeltaRunKind
			var counts []int
			for run := range p.Runs() {
				kinds = append(kinds, run.Kind)
				counts = append(counts, run.Count)
			}
			require.Equal(t, tc.kinds, kinds)
			require.Equal(t, []int{64, 36}, counts)
			b, err := p.Encode()
			require.NoError(t, err)
			require.Len(t, b, tc.size)
			decoded, _, err := DecodeDeltas(ot.NewFontData(b), len(deltas))
			require.NoError(t, err)
			require.Equal(t, deltas, decoded)
		})
	}
}

func TestDeltaRunBoundaries(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.otvar")
	defer teardown()
	//
	// a single zero ends a word run, but not a byte run
	runs := slices.Collect(NewPackedDeltas([]int16{300, 0, 300, 5, 0, 5, 127, 128}).Runs())
	require.Len(t, runs, 5)
	require.Equal(t, DeltaRun{Kind: RunTwoBytes, Values: []int16{300}, Count: 1}, runs[0])
	require.Equal(t, DeltaRun{Kind: RunZeros, Count: 1}, runs[1])
	require.Equal(t, DeltaRun{Kind: RunTwoBytes, Values: []int16{300}, Count: 1}, runs[2])
	require.Equal(t, DeltaRun{Kind: RunOneByte, Values: []int16{5, 0, 5, 127}, Count: 4}, runs[3])
	require.Equal(t, DeltaRun{Kind: RunTwoBytes, Values: []int16{128}, Count: 1}, runs[4])
}

func TestDecodeBrokenDeltas(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.otvar")
	defer teardown()
	//
	_, _, err := DecodeDeltas(ot.NewFontData(packedDeltaBytes[:9]), len(referenceDeltas))
	require.ErrorIs(t, err, ot.ErrOutOfBounds)
	require.Error(t, err)
	require.Contains(t, err.Error(), "PackedDeltas.deltas")
	//
	_, _, err = DecodeDeltas(ot.NewFontData(packedDeltaBytes), 3)
	require.ErrorIs(t, err, ot.ErrInvalidFormat)
	//
	var got []int16
	var lastErr error
	for v, err := range IterDeltas(ot.NewFontData(packedDeltaBytes[:9]), len(referenceDeltas)) {
		if err != nil {
			lastErr = err
			break
		}
		got = append(got, v)
	}
	require.Equal(t, referenceDeltas[:13], got)
	require.ErrorIs(t, lastErr, ot.ErrOutOfBounds)
}
