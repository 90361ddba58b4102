package ot

import "fmt"

// Option holds a value which may be absent from a font: fields added by later
// table versions, nullable offsets and optional record members.
//
// The zero Option is None.
type Option[T any] struct {
	value T
	ok    bool
}

// Some wraps a present value.
func Some[T any](v T) Option[T] {
	return Option[T]{value: v, ok: true}
}

// None returns an absent value.
func None[T any]() Option[T] {
	return Option[T]{}
}

// When returns Some(v) if present is true, None otherwise.
func When[T any](present bool, v T) Option[T] {
	if !present {
		return None[T]()
	}
	return Some(v)
}

func (o Option[T]) IsSome() bool { return o.ok }
func (o Option[T]) IsNone() bool { return !o.ok }

// Unwrap returns the value and whether it is present.
func (o Option[T]) Unwrap() (T, bool) {
	return o.value, o.ok
}

// MustUnwrap returns the value. It panics for None; use it only where a
// table version guarantees presence.
func (o Option[T]) MustUnwrap() T {
	if !o.ok {
		panic("ot: unwrap of absent value")
	}
	return o.value
}

// Or returns the value, or def if absent.
func (o Option[T]) Or(def T) T {
	if o.ok {
		return o.value
	}
	return def
}

func (o Option[T]) String() string {
	if !o.ok {
		return "None"
	}
	return fmt.Sprintf("Some(%v)", o.value)
}

// Map applies f to a present value.
func Map[T, U any](o Option[T], f func(T) U) Option[U] {
	if !o.ok {
		return None[U]()
	}
	return Some(f(o.value))
}
