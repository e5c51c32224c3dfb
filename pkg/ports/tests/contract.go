package tests

import (
	"context"
	"testing"

	"github.com/aretw0/marquee/pkg/ports"
)

// GraphLoaderContractTest is a reusable test suite that verifies if an adapter complies with ports.GraphLoader.
// wantScenes and wantEvents are the ids the loader is expected to produce.
func GraphLoaderContractTest(t *testing.T, loader ports.GraphLoader, wantScenes, wantEvents []string) {
	t.Helper()

	graph, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error loading graph: %v", err)
	}

	t.Run("Scenes", func(t *testing.T) {
		if len(graph.Scenes) != len(wantScenes) {
			t.Errorf("expected %d scenes, got %d", len(wantScenes), len(graph.Scenes))
		}
		for _, id := range wantScenes {
			s, err := graph.Scene(id)
			if err != nil {
				t.Errorf("scene %s missing: %v", id, err)
				continue
			}
			if s.ID != id {
				t.Errorf("scene keyed %s reports id %q", id, s.ID)
			}
		}
	})

	t.Run("Events", func(t *testing.T) {
		if len(graph.Events) != len(wantEvents) {
			t.Errorf("expected %d events, got %d", len(wantEvents), len(graph.Events))
		}
		for _, id := range wantEvents {
			ev, err := graph.Event(id)
			if err != nil {
				t.Errorf("event %s missing: %v", id, err)
				continue
			}
			for _, sceneID := range ev.Scenes {
				if _, err := graph.Scene(sceneID); err != nil {
					t.Errorf("event %s references unknown scene %s", id, sceneID)
				}
			}
		}
	})
}
