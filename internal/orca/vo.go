package orca

import (
	"fmt"
	"math"
)

// Avoidance returns the smallest change u to the relative velocity of a
// with respect to b that moves it onto the boundary of their velocity
// obstacle, together with the outward unit normal n of the obstacle at
// that point.
//
// The velocity obstacle for two disks is a cone with apex at the
// origin, truncated by the disk of velocities that collide exactly at
// the horizon tau. The case analysis picks the nearest boundary
// feature: the truncating cap, one of the two cone legs, or, when the
// disks already overlap, the cap of the one-tick escape disk.
func Avoidance(a, b Agent, tau, dt float64) (u, n Vec2, err error) {
	x := b.Pos.Sub(a.Pos)
	v := a.Vel.Sub(b.Vel)
	r := a.Radius + b.Radius
	d2 := x.LenSq()

	if d2 < r*r {
		// Already overlapping. Escape within the next tick rather than
		// the lookahead horizon.
		return capProject(v, x, r, dt)
	}

	// Center of the truncating disk, pulled toward the apex by cos^2 of
	// the cone's aperture half-angle (similar triangles, with
	// sin^2(theta) = r^2/|x|^2). It splits the cap region from the legs.
	c := x.Scale((1 - r*r/d2) / tau)
	if v.Sub(c).Dot(c) < 0 {
		return capProject(v, x, r, tau)
	}

	// v is nearer one of the legs. Rotate x onto that leg, project v
	// onto it, and take the difference.
	leg := math.Sqrt(d2 - r*r)
	sine := math.Copysign(r, v.Cross(x))
	rx := Vec2{
		X: (leg*x.X + sine*x.Y) / d2,
		Y: (-sine*x.X + leg*x.Y) / d2,
	}
	n = rx.Perp()
	if sine < 0 {
		// Flip so the half-plane points out of the cone.
		n = n.Neg()
	}
	u = rx.Scale(v.Dot(rx)).Sub(v)
	return u, n, nil
}

// capProject projects the relative velocity v onto the boundary of the
// disk of velocities colliding within the given horizon.
func capProject(v, x Vec2, r, horizon float64) (Vec2, Vec2, error) {
	w := v.Sub(x.Scale(1 / horizon))
	n, err := w.Normalized()
	if err != nil {
		// v sits exactly on the disk center; there is no unique escape
		// direction. Let the caller pick a policy.
		return Vec2{}, Vec2{}, fmt.Errorf("avoidance: %w", err)
	}
	u := n.Scale(r / horizon).Sub(w)
	return u, n, nil
}
