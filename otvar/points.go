package otvar

import (
	"iter"

	"github.com/npillmayer/otcodec/ot"
	"github.com/npillmayer/otcodec/otwrite"
)

// Control byte flags of packed point numbers.
const (
	PointsAreWords uint8 = 0x80
	PointRunCount  uint8 = 0x7f // mask for the number of points - 1
)

// MaxPointsPerRun is the number of points a single run can hold.
const MaxPointsPerRun = 128

// maxPointCount is the largest point count the 15-bit count prefix can hold.
const maxPointCount = 0x7fff

// PointRun is a run of point numbers, stored as differences to the previous
// point. LastPoint is the point preceding the run, 0 for the first run.
type PointRun struct {
	LastPoint uint16
	AreWords  bool
	Points    []uint16
}

// Flag computes the control byte of the run.
func (r PointRun) Flag() uint8 {
	flag := uint8(len(r.Points)-1) & PointRunCount
	if r.AreWords {
		flag |= PointsAreWords
	}
	return flag
}

func (r PointRun) Write(w *otwrite.TableWriter) {
	w.WriteU8(r.Flag())
	last := r.LastPoint
	for _, p := range r.Points {
		delta := p - last
		last = p
		if r.AreWords {
			w.WriteU16(delta)
		} else {
			w.WriteU8(uint8(delta))
		}
	}
}

// PackedPointNumbers is a sorted sequence of point numbers. An empty sequence
// stands for all points of a glyph.
type PackedPointNumbers struct {
	Points []uint16
}

// NewPackedPointNumbers wraps an explicit sequence of point numbers.
func NewPackedPointNumbers(points []uint16) PackedPointNumbers {
	return PackedPointNumbers{Points: points}
}

// AllPoints refers to all points of a glyph.
func AllPoints() PackedPointNumbers {
	return PackedPointNumbers{}
}

// IsAll is true if the numbers refer to all points.
func (p PackedPointNumbers) IsAll() bool {
	return len(p.Points) == 0
}

// Runs splits the points into runs, greedily from left to right. A run uses
// words if its first point is more than 255 after the previous point, and
// continues while the differences keep this width.
func (p PackedPointNumbers) Runs() iter.Seq[PointRun] {
	return func(yield func(PointRun) bool) {
		points, prev := p.Points, uint16(0)
		for len(points) > 0 {
			areWords := points[0]-prev > 255
			n, last := 0, prev
			for n < len(points) && n < MaxPointsPerRun {
				if (points[n]-last > 255) != areWords {
					break
				}
				last = points[n]
				n++
			}
			run := PointRun{LastPoint: prev, AreWords: areWords, Points: points[:n]}
			prev, points = last, points[n:]
			if !yield(run) {
				return
			}
		}
	}
}

func (p PackedPointNumbers) Write(w *otwrite.TableWriter) {
	switch n := len(p.Points); {
	case n <= 127:
		w.WriteU8(uint8(n))
	default:
		w.WriteU16(uint16(n) | 0x8000)
	}
	for run := range p.Runs() {
		run.Write(w)
	}
}

func (PackedPointNumbers) TableType() string { return "PackedPointNumbers" }

func (p PackedPointNumbers) Validate(ctx *otwrite.ValidationCtx) {
	ctx.InTable("PackedPointNumbers", func(ctx *otwrite.ValidationCtx) {
		if len(p.Points) > maxPointCount {
			ctx.Report("length cannot be stored in 15 bits")
		}
		for i := 1; i < len(p.Points); i++ {
			if p.Points[i] <= p.Points[i-1] {
				ctx.InArray(i, func(ctx *otwrite.ValidationCtx) {
					ctx.Reportf("point %d not in ascending order", p.Points[i])
				})
				return
			}
		}
	})
}

// Encode validates the point numbers and returns them packed as bytes.
func (p PackedPointNumbers) Encode() ([]byte, error) {
	return otwrite.DumpTable(p)
}

// DecodePoints decodes packed point numbers. If the data refers to all points,
// isAll is set and points lists 0 … pointCount-1. n is the number of bytes
// consumed.
func DecodePoints(data ot.FontData, pointCount int) (points []uint16, isAll bool, n int, err error) {
	first, err := ot.ReadAt[uint8](data, 0)
	if err != nil {
		return nil, false, 0, annotate(err, "PackedPointNumbers", "count")
	}
	pos, count := 1, int(first)
	if first == 0 {
		points = make([]uint16, max(pointCount, 0))
		for i := range points {
			points[i] = uint16(i)
		}
		return points, true, pos, nil
	}
	if first&0x80 != 0 {
		second, err := ot.ReadAt[uint8](data, 1)
		if err != nil {
			return nil, false, 0, annotate(err, "PackedPointNumbers", "count")
		}
		pos, count = 2, int(first&0x7f)<<8|int(second)
	}
	points = make([]uint16, 0, count)
	var last uint16
	for len(points) < count {
		flag, err := ot.ReadAt[uint8](data, pos)
		if err != nil {
			return nil, false, 0, annotate(err, "PackedPointNumbers", "control")
		}
		runLen := int(flag&PointRunCount) + 1
		if len(points)+runLen > count {
			tracer().Errorf("packed points: run of %d exceeds count %d", runLen, count)
			return nil, false, 0, &ot.ReadError{Kind: ot.InvalidFormat, Table: "PackedPointNumbers",
				Field: "control", Pos: data.Base() + pos, Raw: uint32(flag)}
		}
		pos++
		for range runLen {
			var delta uint16
			if flag&PointsAreWords != 0 {
				delta, err = ot.ReadAt[uint16](data, pos)
				pos += 2
			} else {
				var b uint8
				b, err = ot.ReadAt[uint8](data, pos)
				delta = uint16(b)
				pos++
			}
			if err != nil {
				return nil, false, 0, annotate(err, "PackedPointNumbers", "points")
			}
			last += delta
			points = append(points, last)
		}
	}
	return points, false, pos, nil
}
