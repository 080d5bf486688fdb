package server

import (
	"time"

	"go.uber.org/zap"

	"OrcaArena/internal/game"
)

type AppConfig struct {
	ScenarioPath string
	Agents       int
	Overrides    game.ParamOverrides
}

func DefaultAppConfig() AppConfig {
	return AppConfig{Agents: 12}
}

// StartApp loads the scenario, builds the hub, and serves the
// visualization until the process exits.
func StartApp(addr string, cfg AppConfig, logger *zap.Logger) {
	scenario, err := game.LoadScenario(cfg.ScenarioPath, cfg.Agents)
	if err != nil {
		logger.Fatal("scenario load failed", zap.Error(err))
	}
	scenario.Params = cfg.Overrides.Apply(scenario.Params)

	hub := game.NewHub(scenario, logger)

	// Periodic cleanup of rooms nobody is watching.
	go func() {
		ticker := time.NewTicker(60 * time.Second)
		defer ticker.Stop()
		for range ticker.C {
			hub.CleanupEmptyRooms()
		}
	}()

	logger.Info("starting web server",
		zap.String("addr", addr),
		zap.String("scenario", scenario.Name),
		zap.Int("agents", len(scenario.Agents)),
		zap.Float64("tau", scenario.Params.Tau),
		zap.Float64("hz", scenario.Params.Hz))
	startServer(hub, logger, addr)
}
