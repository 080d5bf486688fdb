package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"OrcaArena/internal/game"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type spawnPayload struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	GoalX    float64 `json:"goal_x"`
	GoalY    float64 `json:"goal_y"`
	Radius   float64 `json:"radius"`
	MaxSpeed float64 `json:"max_speed"`
}

type goalPayload struct {
	ID    int64   `json:"id"`
	GoalX float64 `json:"goal_x"`
	GoalY float64 `json:"goal_y"`
}

type liveConn struct {
	conn     *websocket.Conn
	sendTick *time.Ticker
}

func serveWS(h *game.Hub, logger *zap.Logger, w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	roomID := query.Get("room")
	if roomID == "" {
		roomID = "default"
	}
	showLines := query.Get("lines") != "0"

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn("ws upgrade failed", zap.Error(err))
		return
	}
	lc := &liveConn{
		conn:     conn,
		sendTick: time.NewTicker(time.Duration(1000.0/game.UpdateRateHz) * time.Millisecond),
	}

	room := h.GetRoom(roomID)
	room.AddSession()
	sessionID := uuid.NewString()
	log := logger.With(zap.String("room", roomID), zap.String("session", sessionID))
	log.Info("viewer connected")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		defer cancel()
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			var inbound inboundMessage
			if err := json.Unmarshal(data, &inbound); err != nil {
				log.Warn("bad inbound message", zap.Error(err))
				continue
			}
			switch inbound.Type {
			case "spawn":
				var p spawnPayload
				if err := json.Unmarshal(inbound.Payload, &p); err != nil {
					log.Warn("bad spawn payload", zap.Error(err))
					continue
				}
				room.Mu.Lock()
				id := room.SpawnAgent(game.AgentSpec{
					X: p.X, Y: p.Y,
					GoalX: p.GoalX, GoalY: p.GoalY,
					Radius: p.Radius, MaxSpeed: p.MaxSpeed,
				})
				room.Mu.Unlock()
				if id == 0 {
					log.Warn("spawn rejected: room full")
				}
			case "set_goal":
				var p goalPayload
				if err := json.Unmarshal(inbound.Payload, &p); err != nil {
					log.Warn("bad set_goal payload", zap.Error(err))
					continue
				}
				room.Mu.Lock()
				if nav := room.World.Navigator(game.EntityID(p.ID)); nav != nil {
					nav.Goal.X = p.GoalX
					nav.Goal.Y = p.GoalY
					nav.Arrived = false
				}
				room.Mu.Unlock()
			case "reset":
				room.Reset()
			default:
				log.Warn("unknown message type", zap.String("type", inbound.Type))
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			lc.sendTick.Stop()
			conn.Close()
			room.RemoveSession()
			log.Info("viewer disconnected")
			return
		case <-lc.sendTick.C:
			room.Mu.Lock()
			update := buildStateUpdate(room, showLines)
			room.Mu.Unlock()
			if err := conn.WriteJSON(update); err != nil {
				cancel()
			}
		}
	}
}
