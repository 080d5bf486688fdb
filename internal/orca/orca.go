// Package orca computes collision-avoiding velocities for disk-shaped
// agents using Optimal Reciprocal Collision Avoidance: every nearby
// agent contributes one linear half-plane constraint on the next
// velocity, and the chosen velocity is the closest point to the
// preferred velocity inside the intersection of all of them.
//
// The package is purely computational: functions read immutable agent
// snapshots and return values, so per-agent solves for one tick may run
// concurrently. Advancing time, selecting neighbors, and reacting to
// infeasible or degenerate configurations belong to the caller.
package orca

import "fmt"

// Agent is an immutable snapshot of one disk-shaped agent, valid for a
// single solve.
type Agent struct {
	Pos      Vec2
	Vel      Vec2
	PrefVel  Vec2
	Radius   float64
	MaxSpeed float64
}

// Steer computes the ORCA velocity for a against the given neighbors
// over lookahead horizon tau and tick length dt. Each neighbor yields a
// half-plane anchored at a's velocity plus half the minimal avoidance
// change, so both sides of a pair bear half the burden. The constraint
// slice is returned for diagnostics; on ErrInfeasible it holds the full
// conflicting set.
//
// The result must be applied as an instantaneous velocity change at a
// tick boundary. Blending it in gradually undercompensates and can
// still collide.
func Steer(a Agent, neighbors []Agent, tau, dt float64) (Vec2, []Line, error) {
	lines := make([]Line, 0, len(neighbors))
	for _, nb := range neighbors {
		u, n, err := Avoidance(a, nb, tau, dt)
		if err != nil {
			return Vec2{}, nil, err
		}
		line, err := NewLine(a.Vel.Add(u.Scale(0.5)), n)
		if err != nil {
			return Vec2{}, nil, fmt.Errorf("constraint: %w", err)
		}
		lines = append(lines, line)
	}
	vel, err := Optimize(lines, a.PrefVel)
	if err != nil {
		return Vec2{}, lines, err
	}
	return vel, lines, nil
}
