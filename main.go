package main

import (
	"flag"
	"math"

	"go.uber.org/zap"

	"OrcaArena/internal/game"
	"OrcaArena/internal/server"
)

func main() {
	addr := flag.String("addr", ":8080", "address to listen on (e.g., 127.0.0.1:8080)")
	scenarioPath := flag.String("scenario", "", "path to scenario YAML (empty: built-in circle)")
	agents := flag.Int("agents", 12, "agent count for the built-in circle scenario")
	headless := flag.Int("headless", 0, "run this many ticks without serving, then exit")
	tau := flag.Float64("tau", math.NaN(), "override avoidance horizon in seconds")
	hz := flag.Float64("hz", math.NaN(), "override simulation tick rate")
	neighborRadius := flag.Float64("neighbor-radius", math.NaN(), "override neighbor search radius")
	flag.Parse()

	logger := zap.Must(zap.NewProduction())
	defer func() { _ = logger.Sync() }()

	var overrides game.ParamOverrides
	if !math.IsNaN(*tau) {
		val := *tau
		overrides.Tau = &val
	}
	if !math.IsNaN(*hz) {
		val := *hz
		overrides.Hz = &val
	}
	if !math.IsNaN(*neighborRadius) {
		val := *neighborRadius
		overrides.NeighborRadius = &val
	}

	cfg := server.DefaultAppConfig()
	cfg.ScenarioPath = *scenarioPath
	cfg.Agents = *agents
	cfg.Overrides = overrides

	if *headless > 0 {
		runHeadless(*headless, cfg, logger)
		return
	}
	server.StartApp(*addr, cfg, logger)
}

// runHeadless drives one room to completion without the web server,
// useful for benchmarking and scenario tuning.
func runHeadless(ticks int, cfg server.AppConfig, logger *zap.Logger) {
	scenario, err := game.LoadScenario(cfg.ScenarioPath, cfg.Agents)
	if err != nil {
		logger.Fatal("scenario load failed", zap.Error(err))
	}
	scenario.Params = cfg.Overrides.Apply(scenario.Params)

	room := game.NewRoom("headless", scenario, logger)
	for i := 0; i < ticks; i++ {
		room.Tick()
	}
	logger.Info("headless run complete",
		zap.Int("ticks", ticks),
		zap.Float64("sim_seconds", room.Now),
		zap.Int("agents", room.World.Count(game.CompBody)))
}
