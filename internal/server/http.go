package server

import (
	"net/http"

	"go.uber.org/zap"

	_ "embed"

	"OrcaArena/internal/game"
)

//go:embed web/index.html
var htmlIndex []byte

//go:embed web/client.js
var jsClient []byte

func newMux(h *game.Hub, logger *zap.Logger) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(htmlIndex)
	})
	mux.HandleFunc("/client.js", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
		_, _ = w.Write(jsClient)
	})
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		serveWS(h, logger, w, r)
	})
	return mux
}

func startServer(h *game.Hub, logger *zap.Logger, addr string) {
	if err := http.ListenAndServe(addr, newMux(h, logger)); err != nil {
		logger.Fatal("http server stopped", zap.Error(err))
	}
}
