package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/marquee"
	"github.com/aretw0/marquee/internal/logging"
	"github.com/aretw0/marquee/pkg/domain"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"golang.org/x/sync/errgroup"
)

// GraphURI is the resource holding the scene graph being played.
const GraphURI = "marquee://graph"

// Player is the playback surface the MCP tools drive. *runner.Runner implements it.
type Player interface {
	State(ctx context.Context) (domain.Snapshot, error)
	Play(ctx context.Context) (domain.Snapshot, error)
	Pause(ctx context.Context) (domain.Snapshot, error)
	Resume(ctx context.Context) (domain.Snapshot, error)
	Stop(ctx context.Context) (domain.Snapshot, error)
	Seek(ctx context.Context, ms float64) (domain.Snapshot, error)
	Load(ctx context.Context, eventID string) (domain.Snapshot, error)
	Graph(ctx context.Context) (*domain.SceneGraph, error)
}

// PlaybackResponse is returned by every playback tool.
type PlaybackResponse struct {
	State   domain.Snapshot `json:"state" jsonschema_description:"Playback snapshot after the call"`
	Warning string          `json:"warning,omitempty" jsonschema_description:"Contained error, such as a clamped seek"`
}

// SeekArgs are the arguments of the seek tool.
type SeekArgs struct {
	Ms float64 `json:"ms"`
}

// LoadArgs are the arguments of the load_event tool.
type LoadArgs struct {
	EventID string `json:"event_id"`
}

// Server exposes a Player as an MCP server.
type Server struct {
	player    Player
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures the server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// NewServer creates a new MCP Server instance.
func NewServer(player Player, opts ...Option) *Server {
	s := &Server{
		player:    player,
		logger:    logging.NewNop(),
		mcpServer: server.NewMCPServer("marquee-mcp", strings.TrimSpace(marquee.Version)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves the SSE transport on port until ctx is cancelled.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	sse := server.NewSSEServer(s.mcpServer, server.WithBaseURL(fmt.Sprintf("http://localhost:%d", port)))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sse.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sse.MessageHandler()))
	httpServer := &http.Server{Addr: addr, Handler: mux}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("MCP server listening (SSE)", "address", addr)
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	})
	return g.Wait()
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	control := func(name, description string, fn func(context.Context) (domain.Snapshot, error)) {
		s.mcpServer.AddTool(mcp.NewTool(name,
			mcp.WithDescription(description),
			mcp.WithOutputSchema[PlaybackResponse](),
		), mcp.NewStructuredToolHandler(func(ctx context.Context, _ mcp.CallToolRequest, _ map[string]any) (PlaybackResponse, error) {
			return respond(fn(ctx))
		}))
	}
	control("playback_state", "Report the playback status, clock and active scenes.", s.player.State)
	control("play", "Start playback. A complete or stopped timeline restarts from zero.", s.player.Play)
	control("pause", "Freeze the timeline clock.", s.player.Pause)
	control("resume", "Continue a paused timeline.", s.player.Resume)
	control("stop", "Tear down every scene and rewind to zero.", s.player.Stop)

	s.mcpServer.AddTool(mcp.NewTool("seek",
		mcp.WithDescription("Move the timeline to an absolute position. Out-of-range targets are clamped and reported."),
		mcp.WithNumber("ms", mcp.Required(), mcp.Description("Target position in milliseconds")),
		mcp.WithOutputSchema[PlaybackResponse](),
	), mcp.NewStructuredToolHandler(s.handleSeek))

	s.mcpServer.AddTool(mcp.NewTool("load_event",
		mcp.WithDescription("Switch playback to another event of the scene graph."),
		mcp.WithString("event_id", mcp.Required(), mcp.Description("Event to load")),
		mcp.WithOutputSchema[PlaybackResponse](),
	), mcp.NewStructuredToolHandler(s.handleLoad))

	s.mcpServer.AddTool(mcp.NewTool("get_graph",
		mcp.WithDescription("Get the scene graph definition for introspection."),
	), func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		text, err := s.graphJSON(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(text), nil
	})
}

func (s *Server) handleSeek(ctx context.Context, _ mcp.CallToolRequest, args SeekArgs) (PlaybackResponse, error) {
	return respond(s.player.Seek(ctx, args.Ms))
}

func (s *Server) handleLoad(ctx context.Context, _ mcp.CallToolRequest, args LoadArgs) (PlaybackResponse, error) {
	if args.EventID == "" {
		return PlaybackResponse{}, errors.New("event_id is required")
	}
	return respond(s.player.Load(ctx, args.EventID))
}

func respond(snap domain.Snapshot, err error) (PlaybackResponse, error) {
	var rangeErr *domain.ClockSeekOutOfRangeError
	switch {
	case err == nil:
		return PlaybackResponse{State: snap}, nil
	case errors.As(err, &rangeErr):
		return PlaybackResponse{State: snap, Warning: err.Error()}, nil
	default:
		return PlaybackResponse{}, err
	}
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(GraphURI, "Scene Graph",
		mcp.WithMIMEType("application/json"),
	), s.readGraph)
}

func (s *Server) readGraph(ctx context.Context, _ mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	text, err := s.graphJSON(ctx)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      GraphURI,
			MIMEType: "application/json",
			Text:     text,
		},
	}, nil
}

func (s *Server) graphJSON(ctx context.Context) (string, error) {
	g, err := s.player.Graph(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to read graph: %w", err)
	}
	b, err := json.Marshal(g)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
