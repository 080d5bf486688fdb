package game

import (
	"math"

	"OrcaArena/internal/orca"
)

type cellKey struct{ cx, cy int }

// spatialGrid is a uniform hash grid over agent positions, rebuilt each
// tick before neighbor queries. It only narrows candidates; Within does
// the exact radius check.
type spatialGrid struct {
	cellSize float64
	cells    map[cellKey][]EntityID
}

func newSpatialGrid(cellSize float64) *spatialGrid {
	if cellSize <= 0 {
		cellSize = DefaultNeighborRadius
	}
	return &spatialGrid{cellSize: cellSize, cells: make(map[cellKey][]EntityID)}
}

func (g *spatialGrid) keyFor(p orca.Vec2) cellKey {
	return cellKey{
		cx: int(math.Floor(p.X / g.cellSize)),
		cy: int(math.Floor(p.Y / g.cellSize)),
	}
}

func (g *spatialGrid) rebuild(w *World) {
	for k := range g.cells {
		delete(g.cells, k)
	}
	w.ForEach([]ComponentKey{CompTransform, CompBody}, func(id EntityID) {
		k := g.keyFor(w.Transform(id).Pos)
		g.cells[k] = append(g.cells[k], id)
	})
}

// Within returns every entity whose center lies inside radius of
// center, excluding the queried entity itself.
func (g *spatialGrid) Within(w *World, center orca.Vec2, radius float64, exclude EntityID) []EntityID {
	reach := int(math.Ceil(radius / g.cellSize))
	base := g.keyFor(center)
	var out []EntityID
	for dx := -reach; dx <= reach; dx++ {
		for dy := -reach; dy <= reach; dy++ {
			ids := g.cells[cellKey{base.cx + dx, base.cy + dy}]
			for _, id := range ids {
				if id == exclude {
					continue
				}
				tr := w.Transform(id)
				if tr == nil {
					continue
				}
				if tr.Pos.Sub(center).LenSq() <= radius*radius {
					out = append(out, id)
				}
			}
		}
	}
	return out
}
