package server

import (
	"OrcaArena/internal/game"
)

type agentDTO struct {
	ID         int64        `json:"id"`
	X          float64      `json:"x"`
	Y          float64      `json:"y"`
	VX         float64      `json:"vx"`
	VY         float64      `json:"vy"`
	R          float64      `json:"r"`
	GoalX      float64      `json:"goal_x"`
	GoalY      float64      `json:"goal_y"`
	Arrived    bool         `json:"arrived"`
	Infeasible bool         `json:"infeasible,omitempty"`
	Trail      [][2]float64 `json:"trail,omitempty"`
	Lines      []lineDTO    `json:"lines,omitempty"`
}

// lineDTO is one ORCA half-plane from the agent's last solve, for the
// debug overlay: anchor point plus inward unit normal.
type lineDTO struct {
	AX float64 `json:"ax"`
	AY float64 `json:"ay"`
	NX float64 `json:"nx"`
	NY float64 `json:"ny"`
}

type stateUpdateDTO struct {
	Type   string     `json:"type"`
	Room   string     `json:"room"`
	Now    float64    `json:"now"`
	WorldW float64    `json:"world_w"`
	WorldH float64    `json:"world_h"`
	Tau    float64    `json:"tau"`
	Agents []agentDTO `json:"agents"`
}

// buildStateUpdate snapshots a room into a wire frame. Caller holds the
// room lock.
func buildStateUpdate(r *game.Room, includeLines bool) stateUpdateDTO {
	update := stateUpdateDTO{
		Type:   "state",
		Room:   r.ID,
		Now:    r.Now,
		WorldW: r.Params.WorldW,
		WorldH: r.Params.WorldH,
		Tau:    r.Params.Tau,
	}
	r.World.ForEach([]game.ComponentKey{game.CompTransform, game.CompBody, game.CompNavigator}, func(id game.EntityID) {
		tr := r.World.Transform(id)
		body := r.World.Body(id)
		nav := r.World.Navigator(id)

		dto := agentDTO{
			ID:      int64(id),
			X:       tr.Pos.X,
			Y:       tr.Pos.Y,
			VX:      tr.Vel.X,
			VY:      tr.Vel.Y,
			R:       body.Radius,
			GoalX:   nav.Goal.X,
			GoalY:   nav.Goal.Y,
			Arrived: nav.Arrived,
		}
		if av := r.World.Avoidance(id); av != nil {
			dto.Infeasible = av.Infeasible
			if includeLines {
				for _, l := range av.Constraints {
					dto.Lines = append(dto.Lines, lineDTO{
						AX: l.Anchor.X,
						AY: l.Anchor.Y,
						NX: l.Normal().X,
						NY: l.Normal().Y,
					})
				}
			}
		}
		if tc := r.World.TrailOf(id); tc != nil && tc.Trail != nil {
			for _, p := range tc.Trail.Points() {
				dto.Trail = append(dto.Trail, [2]float64{p.Pos.X, p.Pos.Y})
			}
		}
		update.Agents = append(update.Agents, dto)
	})
	return update
}
