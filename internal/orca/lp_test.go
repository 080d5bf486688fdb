package orca

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustLine(t *testing.T, anchor, dir Vec2) Line {
	t.Helper()
	l, err := NewLine(anchor, dir)
	require.NoError(t, err)
	return l
}

func TestOptimizeNoConstraints(t *testing.T) {
	p, err := Optimize(nil, Vec2{3, 4})
	require.NoError(t, err)
	assert.Equal(t, Vec2{3, 4}, p)
}

// If the target already satisfies every half-plane the solver must
// return it unchanged.
func TestOptimizeNoOp(t *testing.T) {
	lines := []Line{
		mustLine(t, Vec2{-1, 0}, Vec2{1, 0}),
		mustLine(t, Vec2{0, -1}, Vec2{0, 1}),
	}
	p, err := Optimize(lines, Vec2{2, 3})
	require.NoError(t, err)
	assert.Equal(t, Vec2{2, 3}, p)
}

// The reference instance: x >= 0 intersected with y >= x + 2, target
// (1, 0). The closest feasible point is the corner (0, 2).
func TestOptimizeCorner(t *testing.T) {
	lines := []Line{
		mustLine(t, Vec2{-2, 0}, Vec2{-1, 1}),
		mustLine(t, Vec2{0, -1}, Vec2{1, 0}),
	}
	p, err := Optimize(lines, Vec2{1, 0})
	require.NoError(t, err)

	assert.InDelta(t, 0, p.X, 1e-9)
	assert.InDelta(t, 2, p.Y, 1e-9)
	for _, l := range lines {
		assert.GreaterOrEqual(t, l.SignedDist(p), -1e-9)
	}
}

func TestOptimizeProjectsOntoSingleBoundary(t *testing.T) {
	// y >= 1, target below the boundary: the optimum is the foot of the
	// perpendicular.
	lines := []Line{mustLine(t, Vec2{5, 1}, Vec2{0, 1})}
	p, err := Optimize(lines, Vec2{-3, -2})
	require.NoError(t, err)

	assert.InDelta(t, -3, p.X, 1e-12)
	assert.InDelta(t, 1, p.Y, 1e-12)
}

// Permuting the constraints may change the path the solver takes but
// never the returned point.
func TestOptimizeOrderIndependent(t *testing.T) {
	a := mustLine(t, Vec2{-2, 0}, Vec2{-1, 1})
	b := mustLine(t, Vec2{0, -1}, Vec2{1, 0})
	c := mustLine(t, Vec2{0, -5}, Vec2{0, 1}) // redundant: y >= -5
	target := Vec2{1, 0}

	perms := [][]Line{
		{a, b, c}, {a, c, b},
		{b, a, c}, {b, c, a},
		{c, a, b}, {c, b, a},
	}
	ref, err := Optimize(perms[0], target)
	require.NoError(t, err)
	for i, perm := range perms[1:] {
		p, err := Optimize(perm, target)
		require.NoError(t, err, "permutation %d", i+1)
		assert.InDelta(t, ref.X, p.X, 1e-9, "permutation %d", i+1)
		assert.InDelta(t, ref.Y, p.Y, 1e-9, "permutation %d", i+1)
	}
}

// Verify optimality against dense sampling of the feasible region: no
// sampled feasible point may be closer to the target than the solver's
// answer.
func TestOptimizeClosestFeasible(t *testing.T) {
	lines := []Line{
		mustLine(t, Vec2{-2, 0}, Vec2{-1, 1}),
		mustLine(t, Vec2{0, -1}, Vec2{1, 0}),
		mustLine(t, Vec2{0, 4}, Vec2{1, -1}),
	}
	target := Vec2{1, 0}

	p, err := Optimize(lines, target)
	require.NoError(t, err)

	feasible := func(q Vec2) bool {
		for _, l := range lines {
			if l.SignedDist(q) < 0 {
				return false
			}
		}
		return true
	}
	for _, l := range lines {
		require.GreaterOrEqual(t, l.SignedDist(p), -1e-9, "solver answer must be feasible")
	}

	best := p.Sub(target).LenSq()
	const step = 0.01
	for x := -6.0; x <= 6.0; x += step {
		for y := -6.0; y <= 6.0; y += step {
			q := Vec2{x, y}
			if feasible(q) && q.Sub(target).LenSq() < best-1e-6 {
				t.Fatalf("sampled point (%v) is closer than solver answer (%v)", q, p)
			}
		}
	}
}

// Two parallel half-planes facing away from each other with a gap have
// an empty intersection.
func TestOptimizeInfeasibleParallelGap(t *testing.T) {
	lines := []Line{
		mustLine(t, Vec2{0, 0}, Vec2{1, 0}),   // x >= 0
		mustLine(t, Vec2{-1, 0}, Vec2{-1, 0}), // x <= -1
	}
	_, err := Optimize(lines, Vec2{5, 5})
	assert.ErrorIs(t, err, ErrInfeasible)
}

func TestOptimizeInfeasibleCrossingTriple(t *testing.T) {
	// Three mutually non-parallel half-planes whose pairwise
	// intersections all exist but whose common intersection is empty:
	// y >= 1, x >= 1, x + y <= -1.
	lines := []Line{
		mustLine(t, Vec2{0, 1}, Vec2{0, 1}),
		mustLine(t, Vec2{1, 0}, Vec2{1, 0}),
		mustLine(t, Vec2{-0.5, -0.5}, Vec2{-1, -1}),
	}
	_, err := Optimize(lines, Vec2{5, 5})
	assert.ErrorIs(t, err, ErrInfeasible)
}

func TestOptimizeParallelSameFacingIsRedundant(t *testing.T) {
	// x >= 0 and x >= -1 overlap; the looser one adds nothing.
	lines := []Line{
		mustLine(t, Vec2{0, 0}, Vec2{1, 0}),
		mustLine(t, Vec2{-1, 0}, Vec2{1, 0}),
	}
	p, err := Optimize(lines, Vec2{-3, 2})
	require.NoError(t, err)
	assert.InDelta(t, 0, p.X, 1e-12)
	assert.InDelta(t, 2, p.Y, 1e-12)
}

// Boundaries that are parallel only up to floating error must take the
// parallel path, not produce a wild far-away intersection point.
func TestIntersectNearParallelTreatedAsParallel(t *testing.T) {
	line := mustLine(t, Vec2{0, 0}, Vec2{1, 0})
	tilt := Vec2{1, 1e-14}
	prior := []Line{mustLine(t, Vec2{-1, 0}, tilt)}

	left, right, err := lineHalfplaneIntersect(line, prior)
	require.NoError(t, err)
	assert.True(t, math.IsInf(left, -1))
	assert.True(t, math.IsInf(right, 1))
}

func TestIntersectBoundsInterval(t *testing.T) {
	// Boundary of x >= 0 is the y axis; y >= 1 and y <= 3 clip it to
	// the segment between offsets along the tangent (0, -1).
	line := mustLine(t, Vec2{0, 0}, Vec2{1, 0})
	prior := []Line{
		mustLine(t, Vec2{0, 1}, Vec2{0, 1}),
		mustLine(t, Vec2{0, 3}, Vec2{0, -1}),
	}

	left, right, err := lineHalfplaneIntersect(line, prior)
	require.NoError(t, err)

	tangent := line.Tangent()
	lo := line.Anchor.Add(tangent.Scale(left))
	hi := line.Anchor.Add(tangent.Scale(right))
	ys := []float64{lo.Y, hi.Y}
	assert.InDelta(t, 3, math.Max(ys[0], ys[1]), 1e-12)
	assert.InDelta(t, 1, math.Min(ys[0], ys[1]), 1e-12)
}
