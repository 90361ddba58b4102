package otvar

import (
	"iter"

	"github.com/npillmayer/otcodec/ot"
	"github.com/npillmayer/otcodec/otwrite"
)

// Control byte flags of packed deltas.
const (
	DeltasAreZero  uint8 = 0x80
	DeltasAreWords uint8 = 0x40
	DeltaRunCount  uint8 = 0x3f // mask for the number of deltas - 1
)

// MaxDeltasPerRun is the number of deltas a single run can hold.
const MaxDeltasPerRun = 64

// DeltaRunKind is the encoding of a run of deltas.
type DeltaRunKind int

const (
	RunZeros    DeltaRunKind = iota // no data, all deltas zero
	RunOneByte                      // deltas as int8
	RunTwoBytes                     // deltas as int16
)

func (k DeltaRunKind) String() string {
	switch k {
	case RunZeros:
		return "Zeros"
	case RunOneByte:
		return "OneByte"
	case RunTwoBytes:
		return "TwoBytes"
	}
	return "unknown"
}

// DeltaRun is a run of packed deltas. Values is empty for zero runs.
type DeltaRun struct {
	Kind   DeltaRunKind
	Values []int16
	Count  int
}

// Flag computes the control byte of the run.
func (r DeltaRun) Flag() uint8 {
	flag := uint8(r.Count-1) & DeltaRunCount
	switch r.Kind {
	case RunZeros:
		flag |= DeltasAreZero
	case RunTwoBytes:
		flag |= DeltasAreWords
	}
	return flag
}

// Size is the number of bytes of the encoded run.
func (r DeltaRun) Size() int {
	switch r.Kind {
	case RunOneByte:
		return 1 + r.Count
	case RunTwoBytes:
		return 1 + 2*r.Count
	}
	return 1
}

func (r DeltaRun) Write(w *otwrite.TableWriter) {
	w.WriteU8(r.Flag())
	for _, v := range r.Values {
		if r.Kind == RunOneByte {
			w.WriteI8(int8(v))
		} else {
			w.WriteI16(v)
		}
	}
}

// PackedDeltas is a sequence of deltas to be written in packed form.
type PackedDeltas struct {
	Deltas []int16
}

// NewPackedDeltas wraps a sequence of deltas.
func NewPackedDeltas(deltas []int16) PackedDeltas {
	return PackedDeltas{Deltas: deltas}
}

func inInt8Range(v int16) bool {
	return v >= -128 && v <= 127
}

// nextRunLen returns the length of the non-zero run at the start of deltas.
// A run ends before two consecutive zeros, before a value of a different
// width, and after MaxDeltasPerRun values. Single zeros fit into byte runs.
func nextRunLen(deltas []int16) (int, bool) {
	oneByte := inInt8Range(deltas[0])
	n := 1
	for n < len(deltas) && n < MaxDeltasPerRun {
		v := deltas[n]
		twoZeros := v == 0 && n+1 < len(deltas) && deltas[n+1] == 0
		if twoZeros || inInt8Range(v) != oneByte {
			break
		}
		n++
	}
	return n, oneByte
}

// Runs splits the deltas into runs, greedily from left to right.
func (p PackedDeltas) Runs() iter.Seq[DeltaRun] {
	return func(yield func(DeltaRun) bool) {
		deltas := p.Deltas
		for len(deltas) > 0 {
			var run DeltaRun
			if deltas[0] == 0 {
				n := 1
				for n < len(deltas) && n < MaxDeltasPerRun && deltas[n] == 0 {
					n++
				}
				run = DeltaRun{Kind: RunZeros, Count: n}
			} else {
				n, oneByte := nextRunLen(deltas)
				run = DeltaRun{Kind: RunTwoBytes, Values: deltas[:n], Count: n}
				if oneByte {
					run.Kind = RunOneByte
				}
			}
			deltas = deltas[run.Count:]
			if !yield(run) {
				return
			}
		}
	}
}

func (p PackedDeltas) Write(w *otwrite.TableWriter) {
	for run := range p.Runs() {
		run.Write(w)
	}
}

func (PackedDeltas) TableType() string { return "PackedDeltas" }

// ComputeSize returns the number of bytes of the packed deltas.
func (p PackedDeltas) ComputeSize() int {
	size := 0
	for run := range p.Runs() {
		size += run.Size()
	}
	return size
}

// Encode returns the packed deltas as bytes.
func (p PackedDeltas) Encode() ([]byte, error) {
	return otwrite.DumpTable(p)
}

// --- Decoding --------------------------------------------------------------

// decodeDeltas decodes runs from data, handing each delta to yield. It decodes
// count deltas, or runs up to the end of data for count < 0, and returns the
// number of bytes consumed.
func decodeDeltas(data ot.FontData, count int, yield func(int16) bool) (int, error) {
	pos, n := 0, 0
	for (count < 0 && pos < data.Len()) || (count >= 0 && n < count) {
		flag, err := ot.ReadAt[uint8](data, pos)
		if err != nil {
			return pos, annotate(err, "PackedDeltas", "control")
		}
		runLen := int(flag&DeltaRunCount) + 1
		if count >= 0 && n+runLen > count {
			tracer().Errorf("packed deltas: run of %d exceeds count %d", runLen, count)
			return pos, &ot.ReadError{Kind: ot.InvalidFormat, Table: "PackedDeltas", Field: "control",
				Pos: data.Base() + pos, Raw: uint32(flag)}
		}
		pos++
		for range runLen {
			var v int16
			switch {
			case flag&DeltasAreZero != 0:
			case flag&DeltasAreWords != 0:
				if v, err = ot.ReadAt[int16](data, pos); err == nil {
					pos += 2
				}
			default:
				var b int8
				if b, err = ot.ReadAt[int8](data, pos); err == nil {
					v = int16(b)
					pos++
				}
			}
			if err != nil {
				return pos, annotate(err, "PackedDeltas", "deltas")
			}
			if !yield(v) {
				return pos, nil
			}
			n++
		}
	}
	return pos, nil
}

// IterDeltas decodes packed deltas lazily: count deltas, or all runs up to the
// end of data for count < 0. A malformed run ends the sequence with an error.
func IterDeltas(data ot.FontData, count int) iter.Seq2[int16, error] {
	return func(yield func(int16, error) bool) {
		_, err := decodeDeltas(data, count, func(v int16) bool {
			return yield(v, nil)
		})
		if err != nil {
			yield(0, err)
		}
	}
}

// DecodeDeltas decodes count packed deltas, or all runs up to the end of data
// for count < 0. It returns the deltas and the number of bytes consumed.
func DecodeDeltas(data ot.FontData, count int) ([]int16, int, error) {
	deltas := make([]int16, 0, max(count, 0))
	n, err := decodeDeltas(data, count, func(v int16) bool {
		deltas = append(deltas, v)
		return true
	})
	if err != nil {
		return nil, 0, err
	}
	return deltas, n, nil
}
