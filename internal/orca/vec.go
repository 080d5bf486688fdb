package orca

import (
	"fmt"
	"math"
)

// Vec2 is an immutable 2D vector value. All methods return new values.
type Vec2 struct{ X, Y float64 }

func (a Vec2) Add(b Vec2) Vec2      { return Vec2{a.X + b.X, a.Y + b.Y} }
func (a Vec2) Sub(b Vec2) Vec2      { return Vec2{a.X - b.X, a.Y - b.Y} }
func (a Vec2) Neg() Vec2            { return Vec2{-a.X, -a.Y} }
func (a Vec2) Scale(s float64) Vec2 { return Vec2{a.X * s, a.Y * s} }
func (a Vec2) Dot(b Vec2) float64   { return a.X*b.X + a.Y*b.Y }
func (a Vec2) Len() float64         { return math.Hypot(a.X, a.Y) }
func (a Vec2) LenSq() float64       { return a.X*a.X + a.Y*a.Y }

// Cross is the 2D scalar cross product (the determinant of the 2x2
// matrix with rows a and b).
func (a Vec2) Cross(b Vec2) float64 { return a.X*b.Y - a.Y*b.X }

// Perp rotates a by 90 degrees clockwise.
func (a Vec2) Perp() Vec2 { return Vec2{a.Y, -a.X} }

// Normalized returns a scaled to unit length. A zero-length input is a
// DegenerateVectorError; callers decide whether that is fatal.
func (a Vec2) Normalized() (Vec2, error) {
	l2 := a.LenSq()
	if l2 == 0 {
		return Vec2{}, &DegenerateVectorError{V: a}
	}
	return a.Scale(1 / math.Sqrt(l2)), nil
}

// DegenerateVectorError reports an attempt to normalize a zero-length
// vector.
type DegenerateVectorError struct {
	V Vec2
}

func (e *DegenerateVectorError) Error() string {
	return fmt.Sprintf("degenerate vector (%g, %g): zero length", e.V.X, e.V.Y)
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
