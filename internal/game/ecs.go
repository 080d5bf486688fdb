package game

import "OrcaArena/internal/orca"

type EntityID int64

type ComponentKey string

type World struct {
	nextEntity EntityID
	components map[ComponentKey]map[EntityID]any
}

type Transform struct {
	Pos orca.Vec2
	Vel orca.Vec2
}

type Body struct {
	Radius float64
}

type Navigator struct {
	Goal     orca.Vec2
	MaxSpeed float64
	Arrived  bool
}

// AvoidanceComponent retains the outcome of the last ORCA solve for an
// agent. The constraint list is diagnostic only; nothing in the
// simulation reads it back.
type AvoidanceComponent struct {
	PrefVel     orca.Vec2
	Constraints []orca.Line
	Infeasible  bool
}

type TrailComponent struct {
	Trail *Trail
}

const (
	CompTransform ComponentKey = "transform"
	CompBody      ComponentKey = "body"
	CompNavigator ComponentKey = "navigator"
	CompAvoidance ComponentKey = "avoidance"
	CompTrail     ComponentKey = "trail"
)

func (w *World) Transform(id EntityID) *Transform {
	if v, ok := w.GetComponent(id, CompTransform); ok {
		if t, ok := v.(*Transform); ok {
			return t
		}
	}
	return nil
}

func (w *World) Body(id EntityID) *Body {
	if v, ok := w.GetComponent(id, CompBody); ok {
		if b, ok := v.(*Body); ok {
			return b
		}
	}
	return nil
}

func (w *World) Navigator(id EntityID) *Navigator {
	if v, ok := w.GetComponent(id, CompNavigator); ok {
		if n, ok := v.(*Navigator); ok {
			return n
		}
	}
	return nil
}

func (w *World) Avoidance(id EntityID) *AvoidanceComponent {
	if v, ok := w.GetComponent(id, CompAvoidance); ok {
		if a, ok := v.(*AvoidanceComponent); ok {
			return a
		}
	}
	return nil
}

func (w *World) TrailOf(id EntityID) *TrailComponent {
	if v, ok := w.GetComponent(id, CompTrail); ok {
		if tc, ok := v.(*TrailComponent); ok {
			return tc
		}
	}
	return nil
}

func newWorld() *World {
	return &World{
		nextEntity: 0,
		components: make(map[ComponentKey]map[EntityID]any),
	}
}

func (w *World) NewEntity() EntityID {
	w.nextEntity++
	return w.nextEntity
}

func (w *World) SetComponent(id EntityID, key ComponentKey, value any) {
	store, ok := w.components[key]
	if !ok {
		store = make(map[EntityID]any)
		w.components[key] = store
	}
	store[id] = value
}

func (w *World) GetComponent(id EntityID, key ComponentKey) (any, bool) {
	if store, ok := w.components[key]; ok {
		val, ok := store[id]
		return val, ok
	}
	return nil, false
}

func (w *World) RemoveEntity(id EntityID) {
	for _, store := range w.components {
		delete(store, id)
	}
}

func (w *World) ForEach(required []ComponentKey, fn func(EntityID)) {
	if len(required) == 0 {
		return
	}
	first := w.components[required[0]]
	if first == nil {
		return
	}
	for id := range first {
		match := true
		for _, key := range required[1:] {
			if store := w.components[key]; store == nil {
				match = false
				break
			} else if _, ok := store[id]; !ok {
				match = false
				break
			}
		}
		if match {
			fn(id)
		}
	}
}

func (w *World) Count(key ComponentKey) int {
	return len(w.components[key])
}

func (w *World) Exists(id EntityID) bool {
	for _, store := range w.components {
		if _, ok := store[id]; ok {
			return true
		}
	}
	return false
}
