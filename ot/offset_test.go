package ot

import (
	"errors"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestOffsetAbsolute(t *testing.T) {
	for _, base := range []int{0, 12, 1000} {
		for raw := 1; raw < 0x10000; raw += 997 {
			pos, ok := Absolute(Offset16(raw), base).Unwrap()
			if !ok || pos != base+raw {
				t.Fatalf("Absolute(%d, %d) = %d, %v", raw, base, pos, ok)
			}
		}
		if Absolute(Offset32(0), base).IsSome() {
			t.Errorf("null offset must be absent")
		}
	}
	if NonNull(Offset24(0x123456)).Or(0) != 0x123456 {
		t.Errorf("24-bit offset lost bits")
	}
}

func readU16Target(d FontData) (uint16, error) {
	return ReadAt[uint16](d, 0)
}

func TestResolveNullable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	// host: [offset to value][offset null][offset beyond][value 0xBEEF]
	host := be{}.u16(6, 0, 100).u16(0xbeef).data()
	tests := []struct {
		name   string
		off    Offset16
		absent bool
		want   uint16
		err    error
	}{
		{"present", Offset16(host.U16(0)), false, 0xbeef, nil},
		{"null", Offset16(host.U16(2)), true, 0, nil},
		{"beyond host", Offset16(host.U16(4)), false, 0, ErrOutOfBounds},
		{"target truncated", Offset16(7), false, 0, ErrOutOfBounds},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := ResolveNullable(tt.off, host, "test", readU16Target)
			if tt.err != nil {
				if !errors.Is(err, tt.err) {
					t.Fatalf("expected %v, got %v", tt.err, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error %v", err)
			}
			if v.IsNone() != tt.absent {
				t.Fatalf("absent = %v, expected %v", v.IsNone(), tt.absent)
			}
			if x := v.Or(0); x != tt.want {
				t.Errorf("resolved to %x, expected %x", x, tt.want)
			}
		})
	}
}

func TestResolveMandatoryNull(t *testing.T) {
	host := be{}.u16(0, 0).data()
	_, err := Resolve(Offset16(0), host, "coverageOffset", readU16Target)
	if !errors.Is(err, ErrNullOffset) {
		t.Fatalf("expected null offset error, got %v", err)
	}
	var re *ReadError
	if !errors.As(err, &re) || re.Field != "coverageOffset" {
		t.Errorf("expected field name in error, got %v", err)
	}
}

func TestResolveWithArgs(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	// host: [count=3][offset=4][1][2][3]
	host := be{}.u16(3, 4).u16(1, 2, 3).data()
	read := func(d FontData, count uint16) (ScalarArray[uint16], error) {
		return NewScalarArray[uint16](d, 0, int(count))
	}
	arr, err := ResolveWithArgs(Offset16(host.U16(2)), host, "values", host.U16(0), read)
	if err != nil {
		t.Fatal(err)
	}
	if got := arr.Values(); len(got) != 3 || got[0] != 1 || got[2] != 3 {
		t.Errorf("unexpected values %v", got)
	}
	if _, err = ResolveWithArgs(Offset16(4), host, "values", uint16(4), read); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("count beyond data must fail, got %v", err)
	}
	opt, err := ResolveNullableWithArgs(Offset32(0), host, "values", uint16(4), read)
	if err != nil || opt.IsSome() {
		t.Errorf("null offset must be absent without error")
	}
}
