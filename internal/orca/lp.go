package orca

import (
	"errors"
	"math"
)

// ErrInfeasible is returned when the intersection of the constraint
// half-planes is empty.
var ErrInfeasible = errors.New("halfplane intersection is empty")

// parallelEps bounds the cross product of two unit tangents below which
// their boundaries are treated as parallel. Both operands are unit
// length, so the cross product is the sine of the angle between the
// boundary lines.
const parallelEps = 1e-12

// Optimize returns the point closest to target inside the intersection
// of the given half-planes, using the incremental half-plane
// intersection algorithm. Correctness does not depend on the order of
// lines; the expected running time is linear when they arrive in random
// order and quadratic in the worst case, so callers chasing the
// expected bound should shuffle.
func Optimize(lines []Line, target Vec2) (Vec2, error) {
	point := target
	for i, line := range lines {
		if line.Contains(point) {
			continue
		}
		// The current optimum violates this half-plane, so the new
		// optimum lies on its boundary. Only the lines processed so far
		// constrain the feasible interval on that boundary.
		left, right, err := lineHalfplaneIntersect(line, lines[:i])
		if err != nil {
			return Vec2{}, err
		}
		point = pointLineProject(line, target, left, right)
	}
	return point, nil
}

// lineHalfplaneIntersect computes the interval on line's boundary that
// is feasible for every half-plane in prior, as signed offsets along
// line's tangent relative to its anchor.
func lineHalfplaneIntersect(line Line, prior []Line) (left, right float64, err error) {
	left = math.Inf(-1)
	right = math.Inf(1)
	for _, prev := range prior {
		num := prev.Normal().Dot(line.Anchor.Sub(prev.Anchor))
		den := line.Normal().Cross(prev.Normal())
		if math.Abs(den) < parallelEps {
			// Parallel boundaries: either prev contains line's anchor
			// and adds nothing, or the overlap along line is empty.
			if num < 0 {
				return 0, 0, ErrInfeasible
			}
			continue
		}
		offset := num / den
		if den > 0 {
			right = math.Min(right, offset)
		} else {
			left = math.Max(left, offset)
		}
		if left > right {
			return 0, 0, ErrInfeasible
		}
	}
	return left, right, nil
}

// pointLineProject projects point onto line's boundary, clamped to the
// [left, right] tangent interval.
func pointLineProject(line Line, point Vec2, left, right float64) Vec2 {
	tangent := line.Tangent()
	proj := point.Sub(line.Anchor).Dot(tangent)
	return line.Anchor.Add(tangent.Scale(Clamp(proj, left, right)))
}
