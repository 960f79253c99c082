package entropy

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// Number is any integer or floating point type a Range can hold.
type Number interface {
	constraints.Integer | constraints.Float
}

// Range is a closed interval [Min, Max] that can be sampled uniformly.
// Integer ranges include Max; float ranges draw from [Min, Max).
type Range[T Number] struct {
	Min T `json:"min"`
	Max T `json:"max"`
}

// R is a shorthand constructor for Range.
func R[T Number](min, max T) Range[T] {
	return Range[T]{Min: min, Max: max}
}

// Sample draws a uniform value from the range. A degenerate range
// (Max <= Min) always yields Min.
func (r Range[T]) Sample(s *Source) T {
	if r.Max <= r.Min {
		return r.Min
	}
	switch any(r.Min).(type) {
	case float32, float64:
		return r.Min + T(s.Float64()*float64(r.Max-r.Min))
	}
	return r.Min + T(s.Int64N(int64(r.Max-r.Min)+1))
}

// Valid reports whether Min <= Max.
func (r Range[T]) Valid() bool {
	return r.Min <= r.Max
}

// Validate returns an error naming the range if it is malformed.
func (r Range[T]) Validate(name string) error {
	if !r.Valid() {
		return fmt.Errorf("%s: min %v exceeds max %v", name, r.Min, r.Max)
	}
	return nil
}

// Contains reports whether v lies within the closed interval.
func (r Range[T]) Contains(v T) bool {
	return v >= r.Min && v <= r.Max
}

// Span returns Max - Min.
func (r Range[T]) Span() T {
	return r.Max - r.Min
}

// Halved keeps Min and halves the span.
func (r Range[T]) Halved() Range[T] {
	return Range[T]{Min: r.Min, Max: r.Min + r.Span()/2}
}

// Scale multiplies both bounds by f.
func Scale[T Number](r Range[T], f float64) Range[float64] {
	return Range[float64]{Min: float64(r.Min) * f, Max: float64(r.Max) * f}
}
