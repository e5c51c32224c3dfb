package cli

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/marquee/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const shortShow = `
title: Short
scenes:
  a:
    duration_ms: 30
  b:
    duration_ms: 30
events:
  - id: show
    scenes: [a, b]
    transitions:
      - kind: crossfade
        duration_ms: 10
`

func writeShow(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "show.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func eventTypes(t *testing.T, ndjson string) []domain.EventType {
	t.Helper()
	var types []domain.EventType
	sc := bufio.NewScanner(strings.NewReader(ndjson))
	for sc.Scan() {
		var ev domain.LifecycleEvent
		require.NoError(t, json.Unmarshal(sc.Bytes(), &ev))
		types = append(types, ev.Type)
	}
	return types
}

func TestValidate(t *testing.T) {
	g, err := Validate(writeShow(t, shortShow))
	require.NoError(t, err)
	assert.Equal(t, "Short", g.Title)
	assert.Len(t, g.Scenes, 2)

	_, err = Validate(writeShow(t, strings.Replace(shortShow, "duration_ms: 30", "duration_ms: 0", 1)))
	assert.Error(t, err)

	_, err = Validate(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestInspect(t *testing.T) {
	path := writeShow(t, shortShow)

	var buf bytes.Buffer
	require.NoError(t, Inspect(path, FormatMarkdown, &buf))
	assert.Contains(t, buf.String(), "| show | 2 | 00:00.060 | no |")

	buf.Reset()
	require.NoError(t, Inspect(path, FormatMermaid, &buf))
	assert.Contains(t, buf.String(), "gantt\n")
	assert.Contains(t, buf.String(), "a :show_s0, 0, 30\n")

	buf.Reset()
	require.NoError(t, Inspect(path, FormatPretty, &buf))
	assert.Contains(t, buf.String(), "Short")

	assert.Error(t, Inspect(path, "svg", &buf))
}

func TestPlay_JSON(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var out bytes.Buffer
	err := Play(ctx, Options{Path: writeShow(t, shortShow), JSON: true, FPS: 200}, &out)
	require.NoError(t, err)

	types := eventTypes(t, out.String())
	require.NotEmpty(t, types)
	assert.Equal(t, domain.EventSceneStart, types[0])
	assert.Equal(t, domain.EventTimelineComplete, types[len(types)-1])
}

func TestPlay_Text(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var out bytes.Buffer
	require.NoError(t, Play(ctx, Options{Path: writeShow(t, shortShow), FPS: 200}, &out))

	text := out.String()
	assert.Contains(t, text, "scene-start")
	assert.Contains(t, text, "crossfade a -> b")
	assert.Contains(t, text, "timeline-complete")
	assert.NotContains(t, text, "\x1b[", "no styling outside a terminal")
}

func TestPlay_BadLogLevel(t *testing.T) {
	err := Play(context.Background(), Options{Path: writeShow(t, shortShow), LogLevel: "loud"}, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestPlay_PersistsSession(t *testing.T) {
	mr := miniredis.RunT(t)
	url := "redis://" + mr.Addr()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	opts := Options{Path: writeShow(t, shortShow), JSON: true, FPS: 200, RedisURL: url, SessionID: "s1"}
	require.NoError(t, Play(ctx, opts, &bytes.Buffer{}))

	var buf bytes.Buffer
	require.NoError(t, ListSessions(ctx, opts, &buf))
	assert.Contains(t, buf.String(), "s1\tshow\tcomplete\t")

	require.NoError(t, DeleteSession(ctx, opts, "s1"))
	buf.Reset()
	require.NoError(t, ListSessions(ctx, opts, &buf))
	assert.Contains(t, buf.String(), "No active sessions.")
}

func TestPlay_PersistsSessionToDisk(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	opts := Options{Path: writeShow(t, shortShow), JSON: true, FPS: 200, SessionDir: dir, SessionID: "s1"}
	require.NoError(t, Play(ctx, opts, &bytes.Buffer{}))
	assert.FileExists(t, filepath.Join(dir, "s1.json"))

	var buf bytes.Buffer
	require.NoError(t, ListSessions(ctx, Options{SessionDir: dir}, &buf))
	assert.Contains(t, buf.String(), "s1\tshow\tcomplete\t")

	require.NoError(t, DeleteSession(ctx, Options{SessionDir: dir}, "s1"))
	assert.NoFileExists(t, filepath.Join(dir, "s1.json"))
}

func TestPlay_PersistsSessionToSQLite(t *testing.T) {
	db := filepath.Join(t.TempDir(), "sessions.db")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	opts := Options{Path: writeShow(t, shortShow), JSON: true, FPS: 200, SessionDB: db, SessionID: "s1"}
	require.NoError(t, Play(ctx, opts, &bytes.Buffer{}))

	var buf bytes.Buffer
	require.NoError(t, ListSessions(ctx, Options{SessionDB: db}, &buf))
	assert.Contains(t, buf.String(), "s1\tshow\tcomplete\t")
}

func TestPlay_EncryptedSession(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	keys := strings.Repeat("0f", 32)

	opts := Options{Path: writeShow(t, shortShow), JSON: true, FPS: 200, SessionDir: dir, SessionID: "s1", SessionKeys: keys}
	require.NoError(t, Play(ctx, opts, &bytes.Buffer{}))

	raw, err := os.ReadFile(filepath.Join(dir, "s1.json"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"sealed"`)
	assert.NotContains(t, string(raw), `"event_id": "show"`)

	var buf bytes.Buffer
	require.NoError(t, ListSessions(ctx, Options{SessionDir: dir, SessionKeys: keys}, &buf))
	assert.Contains(t, buf.String(), "s1\tshow\tcomplete\t")

	opts.SessionKeys = "not-hex"
	assert.ErrorContains(t, Play(ctx, opts, &bytes.Buffer{}), SessionKeysEnv)
}

func TestPlay_NoSessionWritesNothing(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, Play(ctx, Options{Path: writeShow(t, shortShow), JSON: true, FPS: 200, SessionDir: dir}, &bytes.Buffer{}))
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSessions_Errors(t *testing.T) {
	ctx := context.Background()
	assert.Error(t, DeleteSession(ctx, Options{RedisURL: "not a url"}, "s1"))
	assert.Error(t, ListSessions(ctx, Options{RedisURL: "not a url"}, &bytes.Buffer{}))
}

func TestWatchSessionID(t *testing.T) {
	dir := t.TempDir()
	id := watchSessionID(dir)
	assert.True(t, strings.HasPrefix(id, "watch-"))
	assert.Len(t, id, len("watch-")+8)
	assert.Equal(t, id, watchSessionID(dir))
	assert.NotEqual(t, id, watchSessionID(filepath.Join(dir, "other")))
}

func TestServeMCP_UnknownTransport(t *testing.T) {
	err := ServeMCP(context.Background(), Options{Path: writeShow(t, shortShow)}, "carrier-pigeon", 0)
	assert.ErrorContains(t, err, "unknown transport")
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, isTerminal(&bytes.Buffer{}))
}
