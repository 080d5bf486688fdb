package game

import (
	"errors"
	"math/rand"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"OrcaArena/internal/orca"
)

// updateNavigators computes each agent's preferred velocity: straight
// at the goal, slowed on the final tick so it never overshoots.
func updateNavigators(r *Room, dt float64) {
	world := r.World
	world.ForEach([]ComponentKey{CompTransform, CompNavigator, CompAvoidance}, func(id EntityID) {
		tr := world.Transform(id)
		nav := world.Navigator(id)
		av := world.Avoidance(id)

		dir := nav.Goal.Sub(tr.Pos)
		dist := dir.Len()
		if dist <= ArriveEps {
			nav.Arrived = true
			av.PrefVel = orca.Vec2{}
			return
		}
		nav.Arrived = false
		speed := nav.MaxSpeed
		if dist < speed*dt {
			speed = dist / dt
		}
		av.PrefVel = dir.Scale(speed / dist)
	})
}

// agentSolve holds the outcome of one agent's ORCA solve before it is
// applied back to the world.
type agentSolve struct {
	vel         orca.Vec2
	constraints []orca.Line
	infeasible  bool
}

// updateAvoidance runs one ORCA solve per agent over an immutable
// snapshot of the whole room, in parallel, then applies every new
// velocity at once. Solving against the snapshot keeps the solves
// independent of apply order.
func updateAvoidance(r *Room, dt float64) {
	world := r.World

	ids := make([]EntityID, 0, world.Count(CompTransform))
	world.ForEach([]ComponentKey{CompTransform, CompBody, CompNavigator, CompAvoidance}, func(id EntityID) {
		ids = append(ids, id)
	})
	snaps := make(map[EntityID]orca.Agent, len(ids))
	for _, id := range ids {
		tr := world.Transform(id)
		body := world.Body(id)
		nav := world.Navigator(id)
		av := world.Avoidance(id)
		snaps[id] = orca.Agent{
			Pos:      tr.Pos,
			Vel:      tr.Vel,
			PrefVel:  av.PrefVel,
			Radius:   body.Radius,
			MaxSpeed: nav.MaxSpeed,
		}
	}

	r.grid.rebuild(world)
	candidates := make([][]EntityID, len(ids))
	for i, id := range ids {
		nbs := r.grid.Within(world, snaps[id].Pos, r.Params.NeighborRadius, id)
		// Random constraint order is the solver's expected-linear-time
		// contract; correctness does not depend on it.
		rand.Shuffle(len(nbs), func(a, b int) { nbs[a], nbs[b] = nbs[b], nbs[a] })
		candidates[i] = nbs
	}

	results := make([]agentSolve, len(ids))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			me := snaps[id]
			neighbors := make([]orca.Agent, 0, len(candidates[i]))
			for _, nb := range candidates[i] {
				neighbors = append(neighbors, snaps[nb])
			}
			vel, lines, err := orca.Steer(me, neighbors, r.Params.Tau, dt)
			switch {
			case errors.Is(err, orca.ErrInfeasible):
				// No escaping velocity exists this tick; hold course
				// and let the neighbors' own solves open a gap.
				results[i] = agentSolve{vel: me.Vel, constraints: lines, infeasible: true}
				r.log.Warn("avoidance infeasible",
					zap.String("room", r.ID),
					zap.Int64("agent", int64(id)),
					zap.Int("constraints", len(lines)))
			case err != nil:
				// Degenerate geometry (zero-length escape direction);
				// measure-zero, hold course for one tick.
				results[i] = agentSolve{vel: me.Vel}
				r.log.Warn("avoidance degenerate",
					zap.String("room", r.ID),
					zap.Int64("agent", int64(id)),
					zap.Error(err))
			default:
				results[i] = agentSolve{vel: clampSpeed(vel, me.MaxSpeed), constraints: lines}
			}
			return nil
		})
	}
	_ = g.Wait()

	for i, id := range ids {
		tr := world.Transform(id)
		av := world.Avoidance(id)
		tr.Vel = results[i].vel
		av.Constraints = results[i].constraints
		av.Infeasible = results[i].infeasible
	}
}

// integrate applies the solved velocities as a first-order step on the
// tick edge and records trails.
func integrate(r *Room, dt float64) {
	world := r.World
	world.ForEach([]ComponentKey{CompTransform}, func(id EntityID) {
		tr := world.Transform(id)
		tr.Pos = tr.Pos.Add(tr.Vel.Scale(dt))

		tr.Pos.X = orca.Clamp(tr.Pos.X, 0, r.Params.WorldW)
		tr.Pos.Y = orca.Clamp(tr.Pos.Y, 0, r.Params.WorldH)

		if tc := world.TrailOf(id); tc != nil && tc.Trail != nil {
			tc.Trail.push(TrailPoint{T: r.Now, Pos: tr.Pos})
		}
	})
}

func clampSpeed(v orca.Vec2, maxSpeed float64) orca.Vec2 {
	if maxSpeed <= 0 {
		return v
	}
	if l := v.Len(); l > maxSpeed {
		return v.Scale(maxSpeed / l)
	}
	return v
}
