package ot

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOption(t *testing.T) {
	var zero Option[uint16]
	require.Equal(t, None[uint16](), zero)
	require.True(t, zero.IsNone())
	require.Equal(t, uint16(7), zero.Or(7))
	require.Equal(t, "None", zero.String())
	require.Panics(t, func() { zero.MustUnwrap() })
	//
	some := When(true, uint16(3))
	require.True(t, some.IsSome())
	require.Equal(t, uint16(3), some.MustUnwrap())
	require.Equal(t, "Some(3)", some.String())
	require.Equal(t, Some(6), Map(some, func(v uint16) int { return 2 * int(v) }))
	require.Equal(t, None[int](), Map(When(false, uint16(3)), func(v uint16) int { return int(v) }))
	//
	require.Equal(t, None[int](), NonNull(Offset16(0)))
	require.Equal(t, Some(110), Absolute(Offset32(10), 100))
}
