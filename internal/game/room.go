package game

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"OrcaArena/internal/orca"
)

// Room is one independent simulation: a world of disk agents advancing
// at a fixed tick rate. All access to World goes through Mu.
type Room struct {
	ID       string
	Now      float64
	World    *World
	Params   SimParams
	Mu       sync.Mutex
	Scenario Scenario

	grid     *spatialGrid
	log      *zap.Logger
	sessions int
	stop     chan struct{}
	stopOnce sync.Once
}

// NewRoom builds a room seeded with the scenario's agents. It does not
// start ticking; call Run in a goroutine or drive Tick directly.
func NewRoom(id string, sc Scenario, logger *zap.Logger) *Room {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Room{
		ID:       id,
		World:    newWorld(),
		Params:   SanitizeParams(sc.Params),
		Scenario: sc,
		log:      logger,
		stop:     make(chan struct{}),
	}
	r.grid = newSpatialGrid(r.Params.NeighborRadius)
	for _, spec := range sc.Agents {
		r.SpawnAgent(spec)
	}
	return r
}

// Tick advances the simulation by one step: preferred velocities, the
// parallel ORCA solves, then integration at the tick edge.
func (r *Room) Tick() {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	dt := r.Params.Dt()
	r.Now += dt

	updateNavigators(r, dt)
	updateAvoidance(r, dt)
	integrate(r, dt)
}

// Run ticks the room at its configured rate until Stop.
func (r *Room) Run() {
	ticker := time.NewTicker(time.Duration(float64(time.Second) / r.Params.Hz))
	defer ticker.Stop()
	for {
		select {
		case <-r.stop:
			return
		case <-ticker.C:
			r.Tick()
		}
	}
}

func (r *Room) Stop() {
	r.stopOnce.Do(func() { close(r.stop) })
}

// SpawnAgent adds one agent to the room and returns its entity id.
// Returns 0 when the room is at capacity.
func (r *Room) SpawnAgent(spec AgentSpec) EntityID {
	spec = sanitizeAgent(spec)
	if r.World.Count(CompBody) >= RoomMaxAgents {
		return 0
	}
	id := r.World.NewEntity()
	pos := orca.Vec2{X: orca.Clamp(spec.X, 0, r.Params.WorldW), Y: orca.Clamp(spec.Y, 0, r.Params.WorldH)}
	r.World.SetComponent(id, CompTransform, &Transform{Pos: pos})
	r.World.SetComponent(id, CompBody, &Body{Radius: spec.Radius})
	r.World.SetComponent(id, CompNavigator, &Navigator{
		Goal:     orca.Vec2{X: spec.GoalX, Y: spec.GoalY},
		MaxSpeed: spec.MaxSpeed,
	})
	r.World.SetComponent(id, CompAvoidance, &AvoidanceComponent{})
	trail := newTrail(TrailKeepS, r.Params.Hz)
	trail.push(TrailPoint{T: r.Now, Pos: pos})
	r.World.SetComponent(id, CompTrail, &TrailComponent{Trail: trail})
	return id
}

// Reset discards all agents and respawns the room's scenario.
func (r *Room) Reset() {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	r.World = newWorld()
	r.Now = 0
	for _, spec := range r.Scenario.Agents {
		r.SpawnAgent(spec)
	}
}

func (r *Room) AddSession() {
	r.Mu.Lock()
	r.sessions++
	r.Mu.Unlock()
}

func (r *Room) RemoveSession() {
	r.Mu.Lock()
	r.sessions--
	r.Mu.Unlock()
}

func (r *Room) SessionCount() int {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	return r.sessions
}

// Hub owns all live rooms and seeds new ones from a shared scenario.
type Hub struct {
	Rooms    map[string]*Room
	Mu       sync.Mutex
	Scenario Scenario

	log *zap.Logger
}

func NewHub(sc Scenario, logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		Rooms:    map[string]*Room{},
		Scenario: sc,
		log:      logger,
	}
}

// GetRoom returns the room with the given id, creating and starting it
// on first use.
func (h *Hub) GetRoom(id string) *Room {
	h.Mu.Lock()
	defer h.Mu.Unlock()
	r, ok := h.Rooms[id]
	if !ok {
		r = NewRoom(id, h.Scenario, h.log)
		h.Rooms[id] = r
		go r.Run()
		h.log.Info("room created",
			zap.String("room", id),
			zap.Int("agents", len(h.Scenario.Agents)),
			zap.Float64("tau", r.Params.Tau),
			zap.Float64("hz", r.Params.Hz))
	}
	return r
}

// CleanupEmptyRooms stops and drops rooms nobody is watching.
func (h *Hub) CleanupEmptyRooms() {
	h.Mu.Lock()
	defer h.Mu.Unlock()
	for id, r := range h.Rooms {
		if r.SessionCount() <= 0 {
			r.Stop()
			delete(h.Rooms, id)
			h.log.Info("room removed", zap.String("room", id))
		}
	}
}
