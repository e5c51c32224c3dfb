package loam

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/aretw0/loam"
	"github.com/aretw0/marquee/pkg/domain"
	"gopkg.in/yaml.v3"
)

// BodyLayerID is the id of the text layer made from a scene document's body.
const BodyLayerID = "body"

// Loader adapts a Loam repository to the GraphLoader interface. Every scene
// and event is its own document, which keeps large shows diffable.
type Loader struct {
	Repo *loam.TypedRepository[DocumentMetadata]
}

// New creates a new Loam adapter.
func New(repo *loam.TypedRepository[DocumentMetadata]) *Loader {
	return &Loader{
		Repo: repo,
	}
}

// Open initializes a read-only Loam repository at dir.
func Open(dir string) (*Loader, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}
	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}
	return New(loam.NewTypedRepository[DocumentMetadata](repo)), nil
}

// Load reads every document of the repository and assembles the scene graph.
// Events are ordered by id.
func (l *Loader) Load(ctx context.Context) (*domain.SceneGraph, error) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	g := &domain.SceneGraph{Scenes: make(map[string]*domain.Scene)}
	seen := make(map[string]string)
	for _, doc := range docs {
		kind := documentKind(doc.ID, doc.Data.Kind)
		if kind == "" {
			continue
		}
		id := doc.Data.ID
		if id == "" {
			id = path.Base(trimExtension(doc.ID))
		}
		id = trimExtension(id)

		key := kind + ":" + id
		if existing, ok := seen[key]; ok {
			return nil, fmt.Errorf("collision detected: %s '%s' is defined in both '%s' and '%s'", kind, id, existing, doc.ID)
		}
		seen[key] = doc.ID

		switch kind {
		case KindScene:
			scene, err := decodeScene(id, doc.Data, doc.Content)
			if err != nil {
				return nil, fmt.Errorf("scene %s (%s): %w", id, doc.ID, err)
			}
			g.Scenes[id] = scene
		case KindEvent:
			ev, err := decodeEvent(id, doc.Data)
			if err != nil {
				return nil, fmt.Errorf("event %s (%s): %w", id, doc.ID, err)
			}
			g.Events = append(g.Events, ev)
		}
	}

	sort.Slice(g.Events, func(i, j int) bool { return g.Events[i].ID < g.Events[j].ID })
	return g, nil
}

func documentKind(docID, declared string) string {
	switch strings.ToLower(declared) {
	case KindScene, KindEvent:
		return strings.ToLower(declared)
	case "":
	default:
		return ""
	}
	dir := filepath.ToSlash(docID)
	switch {
	case strings.HasPrefix(dir, "scenes/"):
		return KindScene
	case strings.HasPrefix(dir, "events/"):
		return KindEvent
	}
	return ""
}

func decodeScene(id string, meta DocumentMetadata, body string) (*domain.Scene, error) {
	duration, err := toFloat(meta.DurationMs)
	if err != nil {
		return nil, fmt.Errorf("duration_ms: %w", err)
	}
	scene := &domain.Scene{ID: id, Title: meta.Title, DurationMs: duration}
	if err := recode(meta.Layers, &scene.Layers); err != nil {
		return nil, fmt.Errorf("layers: %w", err)
	}
	if err := recode(meta.Audio, &scene.Audio); err != nil {
		return nil, fmt.Errorf("audio: %w", err)
	}
	if err := recode(meta.Camera, &scene.Camera); err != nil {
		return nil, fmt.Errorf("camera: %w", err)
	}

	if text := strings.TrimSpace(body); text != "" {
		scene.Layers = append(scene.Layers, domain.Layer{
			ID:   BodyLayerID,
			Kind: "text",
			Data: map[string]any{"text": text},
		})
	}
	return scene, nil
}

func decodeEvent(id string, meta DocumentMetadata) (*domain.Event, error) {
	ev := &domain.Event{ID: id, Title: meta.Title, Scenes: meta.Scenes, Loop: meta.Loop}
	if err := recode(meta.Transitions, &ev.Transitions); err != nil {
		return nil, fmt.Errorf("transitions: %w", err)
	}
	if meta.LoopTransition != nil {
		var lt domain.TransitionDescriptor
		if err := recode(meta.LoopTransition, &lt); err != nil {
			return nil, fmt.Errorf("loop_transition: %w", err)
		}
		ev.LoopTransition = &lt
	}
	return ev, nil
}

// recode decodes loosely typed front matter into a domain type by way of
// YAML, so custom unmarshalers such as domain.Value apply.
func recode(src any, dst any) error {
	if src == nil {
		return nil
	}
	raw, err := yaml.Marshal(normalize(src))
	if err != nil {
		return err
	}
	return yaml.Unmarshal(raw, dst)
}

// normalize turns strict-mode json.Number values back into plain numbers.
func normalize(v any) any {
	switch val := v.(type) {
	case json.Number:
		if f, err := val.Float64(); err == nil {
			return f
		}
		return val.String()
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, sub := range val {
			out[k] = normalize(sub)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, sub := range val {
			out[fmt.Sprintf("%v", k)] = normalize(sub)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, sub := range val {
			out[i] = normalize(sub)
		}
		return out
	}
	return v
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case nil:
		return 0, nil
	case json.Number:
		return n.Float64()
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case string:
		return strconv.ParseFloat(strings.TrimSpace(n), 64)
	}
	return 0, fmt.Errorf("expected a number, got %T", v)
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}

// Watch implements ports.Watchable.
func (l *Loader) Watch(ctx context.Context) (<-chan string, error) {
	events, err := l.Repo.Watch(ctx, "**/*.{md,json,yaml,yml}")
	if err != nil {
		return nil, fmt.Errorf("failed to start loam watcher: %w", err)
	}

	ch := make(chan string, 1)

	go func() {
		defer close(ch)
		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-events:
				if !ok {
					return
				}
				select {
				case ch <- evt.ID:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return ch, nil
}
