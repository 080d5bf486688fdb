package orca

import "fmt"

// Line is a half-plane in point-normal form: the feasible region is
// {q : (q - Anchor) . Normal() >= 0}, boundary included. The stored
// direction is unit length for the lifetime of the value.
type Line struct {
	Anchor Vec2
	dir    Vec2
}

// NewLine builds a half-plane from an anchor point and any nonzero
// direction vector, which is normalized on construction.
func NewLine(anchor, direction Vec2) (Line, error) {
	d, err := direction.Normalized()
	if err != nil {
		return Line{}, fmt.Errorf("line direction: %w", err)
	}
	return Line{Anchor: anchor, dir: d}, nil
}

// Normal is the inward unit normal of the half-plane.
func (l Line) Normal() Vec2 { return l.dir }

// Tangent is the unit direction along the boundary line, the normal
// rotated 90 degrees clockwise.
func (l Line) Tangent() Vec2 { return l.dir.Perp() }

// SignedDist is the distance from p to the boundary, positive on the
// feasible side. The anchor itself is at exactly zero.
func (l Line) SignedDist(p Vec2) float64 { return p.Sub(l.Anchor).Dot(l.dir) }

// Contains reports whether p is feasible for this half-plane.
func (l Line) Contains(p Vec2) bool { return l.SignedDist(p) >= 0 }
