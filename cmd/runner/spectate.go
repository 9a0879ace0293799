package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/coin-runner/internal/spectate"
)

// startSpectators serves the spectator websocket on addr. The returned stop
// function disconnects viewers and shuts the listener down.
func startSpectators(ctx context.Context, addr string, logger *log.Logger) (*spectate.Hub, func(), error) {
	if ctx == nil {
		ctx = context.Background()
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot listen for spectators on %s: %w", addr, err)
	}

	hub := spectate.NewHub(logger)
	mux := http.NewServeMux()
	mux.Handle("/ws", hub)
	mux.HandleFunc("/schema.json", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/schema+json")
		writeJSON(w, spectate.FrameSchema())
	})

	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("spectator server stopped", "error", err)
		}
	}()
	logger.Info("spectators can connect", "url", fmt.Sprintf("ws://%s/ws", ln.Addr()))

	stop := func() {
		hub.Close()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("spectator server shutdown", "error", err)
		}
	}
	return hub, stop, nil
}
