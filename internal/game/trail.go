package game

import (
	"sync"

	"OrcaArena/internal/orca"
)

type TrailPoint struct {
	T   float64
	Pos orca.Vec2
}

// Trail is a fixed-capacity ring of recent positions, kept per agent
// for the visualizer.
type Trail struct {
	buf   []TrailPoint
	head  int
	size  int
	limit int
	mu    sync.RWMutex
}

func newTrail(seconds, hz float64) *Trail {
	n := int(seconds*hz) + 4
	return &Trail{buf: make([]TrailPoint, n), limit: n}
}

func (tr *Trail) push(p TrailPoint) {
	tr.mu.Lock()
	tr.buf[tr.head] = p
	tr.head = (tr.head + 1) % tr.limit
	if tr.size < tr.limit {
		tr.size++
	}
	tr.mu.Unlock()
}

// Points returns the retained positions, oldest first.
func (tr *Trail) Points() []TrailPoint {
	tr.mu.RLock()
	defer tr.mu.RUnlock()
	out := make([]TrailPoint, 0, tr.size)
	for i := 0; i < tr.size; i++ {
		idx := (tr.head - tr.size + i + tr.limit) % tr.limit
		out = append(out, tr.buf[idx])
	}
	return out
}
