package api

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"
)

// Server wraps the HTTP server for the browser editor.
type Server struct {
	httpServer *http.Server
	watcher    *PaletteWatcher
	wsHub      *WebSocketHub
}

// NewServer creates a server over a wired application context: REST
// routes, the WebSocket push channel, and the palettes-directory watcher.
func NewServer(app *AppContext, port int) *Server {
	handler := NewHandler(app)
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)

	wsHub := NewWebSocketHub()
	mux.HandleFunc("GET /api/v1/ws", wsHub.ServeWS)
	app.Store.Subscribe(wsHub)

	watcher, err := NewPaletteWatcher(app.Paths.PalettesDir(), app.Palettes)
	if err != nil {
		log.Printf("Warning: failed to create palette watcher: %v", err)
		watcher = nil
	}

	wrapped := Logging(Cors(mux))

	return &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%d", port),
			Handler:      wrapped,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
		watcher: watcher,
		wsHub:   wsHub,
	}
}

// Start begins listening for HTTP requests. Blocks until shutdown.
func (s *Server) Start() error {
	if s.watcher != nil {
		if err := s.watcher.Start(); err != nil {
			log.Printf("Warning: failed to start palette watcher: %v", err)
		}
	}

	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.watcher != nil {
		s.watcher.Stop()
	}

	return s.httpServer.Shutdown(ctx)
}

// Addr returns the address the server is listening on.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}
