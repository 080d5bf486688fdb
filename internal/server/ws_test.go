package server

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"OrcaArena/internal/game"
)

func dialTestServer(t *testing.T, rawQuery string) (*game.Hub, *websocket.Conn) {
	t.Helper()
	hub := game.NewHub(game.CircleScenario(4), zap.NewNop())
	srv := httptest.NewServer(newMux(hub, zap.NewNop()))
	t.Cleanup(srv.Close)
	t.Cleanup(hub.CleanupEmptyRooms)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws" + rawQuery
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return hub, conn
}

func readState(t *testing.T, conn *websocket.Conn) stateUpdateDTO {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var update stateUpdateDTO
	require.NoError(t, conn.ReadJSON(&update))
	return update
}

func TestWSStateUpdates(t *testing.T) {
	hub, conn := dialTestServer(t, "?room=viz")

	update := readState(t, conn)
	assert.Equal(t, "state", update.Type)
	assert.Equal(t, "viz", update.Room)
	assert.Len(t, update.Agents, 4)
	assert.Equal(t, hub.Scenario.Params.WorldW, update.WorldW)

	for _, a := range update.Agents {
		assert.Greater(t, a.R, 0.0)
		assert.NotEmpty(t, a.Trail, "agents carry trails from the first frame")
	}
}

func TestWSSpawnAddsAgent(t *testing.T) {
	_, conn := dialTestServer(t, "?room=spawn")

	first := readState(t, conn)
	require.Len(t, first.Agents, 4)

	msg := map[string]any{
		"type": "spawn",
		"payload": map[string]any{
			"x": 100.0, "y": 100.0,
			"goal_x": 900.0, "goal_y": 600.0,
		},
	}
	require.NoError(t, conn.WriteJSON(msg))

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		update := readState(t, conn)
		if len(update.Agents) == 5 {
			return
		}
	}
	t.Fatal("spawned agent never appeared in state updates")
}

func TestWSResetRestoresScenario(t *testing.T) {
	_, conn := dialTestServer(t, "?room=reset")

	readState(t, conn)
	require.NoError(t, conn.WriteJSON(map[string]any{"type": "spawn", "payload": map[string]any{"x": 1.0, "y": 1.0}}))
	require.NoError(t, conn.WriteJSON(map[string]any{"type": "reset", "payload": map[string]any{}}))

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		update := readState(t, conn)
		if len(update.Agents) == 4 && update.Now < 1.0 {
			return
		}
	}
	t.Fatal("reset never took effect")
}

func TestWSLinesToggle(t *testing.T) {
	_, conn := dialTestServer(t, "?room=nolines&lines=0")

	// Run a few frames; with the debug overlay off no constraint lines
	// may ever be serialized.
	for i := 0; i < 3; i++ {
		update := readState(t, conn)
		for _, a := range update.Agents {
			assert.Empty(t, a.Lines)
		}
	}
}

func TestBuildStateUpdateIncludesConstraints(t *testing.T) {
	// Two converging agents produce at least one constraint each once
	// a tick has run.
	sc := game.Scenario{
		Params: game.DefaultParams(),
		Agents: []game.AgentSpec{
			{X: 550, Y: 400, GoalX: 700, GoalY: 400, Radius: 10, MaxSpeed: 60},
			{X: 650, Y: 400, GoalX: 500, GoalY: 400, Radius: 10, MaxSpeed: 60},
		},
	}
	room := game.NewRoom("direct", sc, nil)
	for i := 0; i < 5; i++ {
		room.Tick()
	}

	room.Mu.Lock()
	update := buildStateUpdate(room, true)
	room.Mu.Unlock()

	require.Len(t, update.Agents, 2)
	for _, a := range update.Agents {
		assert.NotEmpty(t, a.Lines, "agent %d should carry ORCA lines", a.ID)
		for _, l := range a.Lines {
			assert.InDelta(t, 1.0, l.NX*l.NX+l.NY*l.NY, 1e-9, "normals are unit length")
		}
	}
}

func TestStateUpdateJSONShape(t *testing.T) {
	room := game.NewRoom("shape", game.CircleScenario(1), nil)
	room.Tick()

	room.Mu.Lock()
	update := buildStateUpdate(room, true)
	room.Mu.Unlock()

	data, err := json.Marshal(update)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"type":"state"`)
	assert.Contains(t, string(data), `"world_w"`)
}
