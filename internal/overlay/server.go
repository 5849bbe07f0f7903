package overlay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"seratail/internal/logging"
	"seratail/internal/sessionlog"
	"seratail/internal/watch"
)

const maxCount = 100

// NowPlaying is the /now-playing response body.
type NowPlaying struct {
	Session   string             `json:"session"`
	UpdatedAt *string            `json:"updated_at,omitempty"`
	Tracks    []sessionlog.Track `json:"tracks"`
	Current   *sessionlog.Track  `json:"current"`
}

// Server is a watch.Sink exposing the latest snapshot over HTTP.
type Server struct {
	bind   string
	count  int
	logger *slog.Logger
	router chi.Router

	mu   sync.RWMutex
	snap watch.Snapshot

	listener net.Listener
	server   *http.Server
}

// New builds a server bound to bind that returns the last count tracks by
// default.
func New(bind string, count int, logger *slog.Logger) (*Server, error) {
	bind = strings.TrimSpace(bind)
	if bind == "" {
		return nil, errors.New("overlay bind address is required")
	}
	if count <= 0 {
		count = 1
	}

	s := &Server{
		bind:   bind,
		count:  count,
		logger: logging.NewComponentLogger(logger, "overlay"),
		router: chi.NewRouter(),
	}

	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Recoverer)
	s.router.Get("/now-playing", s.handleNowPlaying)
	s.router.Get("/healthz", s.handleHealthz)

	s.server = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s, nil
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler { return s.router }

// Name implements watch.Sink.
func (s *Server) Name() string { return "overlay" }

// Publish implements watch.Sink. The snapshot's track slice is retained and
// never modified.
func (s *Server) Publish(_ context.Context, snap watch.Snapshot) error {
	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()
	return nil
}

// Start listens on the bind address and serves until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.bind)
	if err != nil {
		return fmt.Errorf("overlay listen: %w", err)
	}
	s.listener = listener

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.ErrorWithContext(s.logger, "overlay server error", "overlay_serve_failed", logging.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	s.logger.Info("overlay listening", logging.String("address", listener.Addr().String()))
	return nil
}

// Addr returns the listening address once started.
func (s *Server) Addr() string {
	if s.listener == nil {
		return s.bind
	}
	return s.listener.Addr().String()
}

// Stop shuts the server down, waiting briefly for in-flight requests.
func (s *Server) Stop() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = s.server.Shutdown(shutdownCtx)
}

func (s *Server) handleNowPlaying(w http.ResponseWriter, r *http.Request) {
	count := s.count
	if raw := r.URL.Query().Get("count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > maxCount {
			s.writeError(w, http.StatusBadRequest, fmt.Sprintf("count must be between 1 and %d", maxCount))
			return
		}
		count = n
	}

	s.mu.RLock()
	snap := s.snap
	s.mu.RUnlock()

	window, current := watch.Window(snap.Tracks, count)
	resp := NowPlaying{
		Session: snap.Session,
		Tracks:  append([]sessionlog.Track{}, window...),
	}
	if !snap.UpdatedAt.IsZero() {
		ts := snap.UpdatedAt.UTC().Format(time.RFC3339)
		resp.UpdatedAt = &ts
	}
	if current >= 0 {
		track := window[current]
		resp.Current = &track
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	type response struct {
		OK bool `json:"ok"`
	}
	s.writeJSON(w, http.StatusOK, response{OK: true})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", logging.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}
