package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/aretw0/marquee/pkg/domain"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePlayer struct {
	snap  domain.Snapshot
	graph *domain.SceneGraph
}

func (p *fakePlayer) State(context.Context) (domain.Snapshot, error) { return p.snap, nil }

func (p *fakePlayer) Play(context.Context) (domain.Snapshot, error) {
	p.snap.Status = domain.StatusPlaying
	return p.snap, nil
}

func (p *fakePlayer) Pause(context.Context) (domain.Snapshot, error) {
	p.snap.Status = domain.StatusPaused
	return p.snap, nil
}

func (p *fakePlayer) Resume(ctx context.Context) (domain.Snapshot, error) { return p.Play(ctx) }

func (p *fakePlayer) Stop(context.Context) (domain.Snapshot, error) {
	p.snap.Status = domain.StatusStopped
	p.snap.ClockMs = 0
	return p.snap, nil
}

func (p *fakePlayer) Seek(_ context.Context, ms float64) (domain.Snapshot, error) {
	if ms < 0 {
		p.snap.ClockMs = 0
		return p.snap, &domain.ClockSeekOutOfRangeError{RequestedMs: ms, ClampedMs: 0, DurationMs: p.snap.DurationMs}
	}
	p.snap.ClockMs = ms
	return p.snap, nil
}

func (p *fakePlayer) Load(_ context.Context, id string) (domain.Snapshot, error) {
	if id != "show" {
		return domain.Snapshot{}, domain.ErrEventNotFound
	}
	p.snap.EventID = id
	return p.snap, nil
}

func (p *fakePlayer) Graph(context.Context) (*domain.SceneGraph, error) { return p.graph, nil }

func newFake() *fakePlayer {
	return &fakePlayer{
		snap: domain.Snapshot{EventID: "show", Status: domain.StatusPlaying, DurationMs: 7000},
		graph: &domain.SceneGraph{
			Scenes: map[string]*domain.Scene{"a": {ID: "a", DurationMs: 7000}},
			Events: []*domain.Event{{ID: "show", Scenes: []string{"a"}}},
		},
	}
}

func call(t *testing.T, s *Server, msg string) string {
	t.Helper()
	resp := s.mcpServer.HandleMessage(context.Background(), json.RawMessage(msg))
	b, err := json.Marshal(resp)
	require.NoError(t, err)
	return string(b)
}

func TestServer_ListsTools(t *testing.T) {
	s := NewServer(newFake())

	out := call(t, s, `{"jsonrpc":"2.0","id":1,"method":"tools/list"}`)
	for _, name := range []string{"playback_state", "play", "pause", "resume", "stop", "seek", "load_event", "get_graph"} {
		assert.Contains(t, out, `"name":"`+name+`"`)
	}
}

func TestServer_SeekTool(t *testing.T) {
	p := newFake()
	s := NewServer(p)

	resp, err := s.handleSeek(context.Background(), mcp.CallToolRequest{}, SeekArgs{Ms: 2500})
	require.NoError(t, err)
	assert.Equal(t, 2500.0, resp.State.ClockMs)
	assert.Empty(t, resp.Warning)

	resp, err = s.handleSeek(context.Background(), mcp.CallToolRequest{}, SeekArgs{Ms: -5})
	require.NoError(t, err, "a clamped seek is reported, not failed")
	assert.Equal(t, 0.0, resp.State.ClockMs)
	assert.Contains(t, resp.Warning, "clamped")

	out := call(t, s, `{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"seek","arguments":{"ms":1200}}}`)
	assert.Contains(t, out, "1200")
	assert.Equal(t, 1200.0, p.snap.ClockMs)
}

func TestServer_LoadTool(t *testing.T) {
	s := NewServer(newFake())

	_, err := s.handleLoad(context.Background(), mcp.CallToolRequest{}, LoadArgs{})
	assert.Error(t, err)

	_, err = s.handleLoad(context.Background(), mcp.CallToolRequest{}, LoadArgs{EventID: "missing"})
	assert.ErrorIs(t, err, domain.ErrEventNotFound)

	resp, err := s.handleLoad(context.Background(), mcp.CallToolRequest{}, LoadArgs{EventID: "show"})
	require.NoError(t, err)
	assert.Equal(t, "show", resp.State.EventID)
}

func TestRespond(t *testing.T) {
	boom := errors.New("boom")
	_, err := respond(domain.Snapshot{}, boom)
	assert.ErrorIs(t, err, boom)

	resp, err := respond(domain.Snapshot{Status: domain.StatusPaused}, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPaused, resp.State.Status)
}

func TestServer_GraphResource(t *testing.T) {
	s := NewServer(newFake())

	contents, err := s.readGraph(context.Background(), mcp.ReadResourceRequest{})
	require.NoError(t, err)
	require.Len(t, contents, 1)
	text, ok := contents[0].(mcp.TextResourceContents)
	require.True(t, ok)
	assert.Equal(t, GraphURI, text.URI)

	var g domain.SceneGraph
	require.NoError(t, json.Unmarshal([]byte(text.Text), &g))
	assert.Contains(t, g.Scenes, "a")
}
