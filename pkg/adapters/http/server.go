package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/marquee"
	"github.com/aretw0/marquee/internal/logging"
	"github.com/aretw0/marquee/pkg/domain"
	"github.com/aretw0/marquee/pkg/observability"
	"github.com/aretw0/marquee/pkg/runner"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

//go:generate go tool oapi-codegen -package http -generate types,chi-server,spec -o api.gen.go ../../../api/openapi.yaml

// Player is the playback surface exposed over HTTP. *runner.Runner implements it.
type Player interface {
	State(ctx context.Context) (domain.Snapshot, error)
	Play(ctx context.Context) (domain.Snapshot, error)
	Pause(ctx context.Context) (domain.Snapshot, error)
	Resume(ctx context.Context) (domain.Snapshot, error)
	Stop(ctx context.Context) (domain.Snapshot, error)
	Seek(ctx context.Context, ms float64) (domain.Snapshot, error)
	Load(ctx context.Context, eventID string) (domain.Snapshot, error)
	Graph(ctx context.Context) (*domain.SceneGraph, error)
	Subscribe() (<-chan domain.LifecycleEvent, func())
}

var _ Player = (*runner.Runner)(nil)

// Server implements the generated ServerInterface for a single player.
type Server struct {
	Player   Player
	metrics  *observability.Metrics
	logger   *slog.Logger
	upgrader websocket.Upgrader
}

// Ensure Server implements ServerInterface
var _ ServerInterface = (*Server)(nil)

// Option configures the server.
type Option func(*Server)

// WithMetrics exposes m on GET /metrics.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Server) { s.metrics = m }
}

// WithLogger sets the server logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// NewHandler creates a new HTTP handler for the player. Requests are
// validated against the embedded OpenAPI document before they reach it.
func NewHandler(p Player, opts ...Option) http.Handler {
	s := &Server{
		Player: p,
		logger: logging.NewNop(),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	validate, err := requestValidator(s.badRequest)
	if err != nil {
		s.logger.Error("request validation disabled", "error", err)
	} else {
		r.Use(validate)
	}

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		spec, err := rawSpec()
		if err != nil {
			s.fail(w, err)
			return
		}
		w.Header().Set("Content-Type", "text/yaml")
		_, _ = w.Write(spec)
	})
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(swaggerHTML))
	})
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}

	h := HandlerWithOptions(s, ChiServerOptions{BaseRouter: r, ErrorHandlerFunc: s.badRequest})
	return enableCORS(h)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>Marquee API Documentation</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// GetInfo handles GET /info.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, InfoResponse{
		Name:    "marquee",
		Version: strings.TrimSpace(marquee.Version),
	})
}

// GetState handles GET /state.
func (s *Server) GetState(w http.ResponseWriter, r *http.Request) {
	snap, err := s.Player.State(r.Context())
	s.respond(w, snap, err)
}

// GetGraph handles GET /graph.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	g, err := s.Player.Graph(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, g)
}

// Play handles POST /play.
func (s *Server) Play(w http.ResponseWriter, r *http.Request) {
	snap, err := s.Player.Play(r.Context())
	s.respond(w, snap, err)
}

// Pause handles POST /pause.
func (s *Server) Pause(w http.ResponseWriter, r *http.Request) {
	snap, err := s.Player.Pause(r.Context())
	s.respond(w, snap, err)
}

// Resume handles POST /resume.
func (s *Server) Resume(w http.ResponseWriter, r *http.Request) {
	snap, err := s.Player.Resume(r.Context())
	s.respond(w, snap, err)
}

// Stop handles POST /stop.
func (s *Server) Stop(w http.ResponseWriter, r *http.Request) {
	snap, err := s.Player.Stop(r.Context())
	s.respond(w, snap, err)
}

// Seek handles POST /seek with a body of {"ms": 2500}.
func (s *Server) Seek(w http.ResponseWriter, r *http.Request) {
	var body SeekJSONRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.badRequest(w, r, err)
		return
	}
	snap, err := s.Player.Seek(r.Context(), body.Ms)
	s.respond(w, snap, err)
}

// Load handles POST /load with a body of {"event_id": "intro"}.
func (s *Server) Load(w http.ResponseWriter, r *http.Request) {
	var body LoadJSONRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.badRequest(w, r, err)
		return
	}
	snap, err := s.Player.Load(r.Context(), body.EventId)
	s.respond(w, snap, err)
}

// SubscribeEvents upgrades GET /events to a websocket. The first message is
// the current state; lifecycle events follow as they are drained, filtered
// to params.Type when given.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request, params SubscribeEventsParams) {
	var only map[domain.EventType]bool
	if params.Type != nil {
		only = make(map[domain.EventType]bool, len(*params.Type))
		for _, t := range *params.Type {
			only[t] = true
		}
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	events, unsubscribe := s.Player.Subscribe()
	defer unsubscribe()

	// Reads only detect the client going away.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	if snap, err := s.Player.State(r.Context()); err == nil {
		if err := s.send(conn, Message{Type: MessageTypeState, State: &snap}); err != nil {
			return
		}
	}

	for {
		select {
		case <-closed:
			return
		case <-r.Context().Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			if only != nil && !only[ev.Type] {
				continue
			}
			if err := s.send(conn, Message{Type: MessageTypeEvent, Event: &ev}); err != nil {
				s.logger.Debug("websocket write failed", "error", err)
				return
			}
		}
	}
}

func (s *Server) send(conn *websocket.Conn, msg Message) error {
	_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	return conn.WriteJSON(msg)
}

func (s *Server) respond(w http.ResponseWriter, snap domain.Snapshot, err error) {
	var rangeErr *domain.ClockSeekOutOfRangeError
	switch {
	case err == nil:
		s.writeJSON(w, http.StatusOK, StateResponse{State: snap})
	case errors.As(err, &rangeErr):
		warning := err.Error()
		s.writeJSON(w, http.StatusOK, StateResponse{State: snap, Warning: &warning})
	default:
		s.fail(w, err)
	}
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, runner.ErrNotRunning):
		status = http.StatusServiceUnavailable
	case errors.Is(err, domain.ErrEventNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrNotLoaded):
		status = http.StatusConflict
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
	}
	s.writeJSON(w, status, ErrorResponse{Error: err.Error()})
}

func (s *Server) badRequest(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Debug("bad request", "method", r.Method, "path", r.URL.Path, "error", err)
	s.writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "error", err)
	}
}
