// Package server runs the http server which lets players open websockets
// to play the game.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/minseo-kang/wordgrid/server/log"
)

type (
	// Server runs the site.
	Server struct {
		log        log.Logger
		httpServer *http.Server
		Config
	}

	// Config contains fields which describe the server.
	Config struct {
		// HTTPPort is the TCP port for http requests.
		HTTPPort int
		// StopDur is how long the server waits for connections to drain
		// when stopping.
		StopDur time.Duration
	}
)

// NewServer creates a Server from the Config.  The websocket handler is
// mounted at /ws.
func (cfg Config) NewServer(l log.Logger, ws http.Handler) (*Server, error) {
	if err := cfg.validate(l, ws); err != nil {
		return nil, fmt.Errorf("creating server: validation: %w", err)
	}
	mux := http.NewServeMux()
	mux.Handle("/ws", ws)
	mux.HandleFunc("/healthz", handleHealth)
	s := Server{
		log: l,
		httpServer: &http.Server{
			Addr:    fmt.Sprintf(":%d", cfg.HTTPPort),
			Handler: mux,
		},
		Config: cfg,
	}
	return &s, nil
}

// validate ensures the configuration has no errors.
func (cfg Config) validate(l log.Logger, ws http.Handler) error {
	switch {
	case l == nil:
		return fmt.Errorf("log required")
	case ws == nil:
		return fmt.Errorf("websocket handler required")
	case cfg.HTTPPort <= 0:
		return fmt.Errorf("invalid http port: %v", cfg.HTTPPort)
	case cfg.StopDur <= 0:
		return fmt.Errorf("stop duration required")
	}
	return nil
}

// Run starts the server.  Serving errors are reported on the returned
// channel.
func (s *Server) Run(ctx context.Context) <-chan error {
	errC := make(chan error, 1)
	s.log.Printf("starting server at http://127.0.0.1%v", s.httpServer.Addr)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != http.ErrServerClosed {
			errC <- fmt.Errorf("server stopped unexpectedly: %w", err)
		}
	}()
	return errC
}

// Stop shuts the server down, waiting up to StopDur for connections to
// drain.
func (s *Server) Stop(ctx context.Context) error {
	ctx, cancelFunc := context.WithTimeout(ctx, s.StopDur)
	defer cancelFunc()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("stopping server: %w", err)
	}
	s.log.Printf("server stopped successfully")
	return nil
}

// handleHealth reports liveness.
func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
