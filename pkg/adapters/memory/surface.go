package memory

import (
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/marquee/pkg/domain"
)

// Surface implements ports.Surface as an in-memory scene tree.
// It records every operation, which makes it the reference surface for tests
// and for headless playback.
type Surface struct {
	mu         sync.Mutex
	seq        int
	containers map[string]*containerState
	ops        []string
}

type containerState struct {
	c      domain.Container
	style  domain.Style
	layers []string
}

// NewSurface creates an empty surface.
func NewSurface() *Surface {
	return &Surface{containers: make(map[string]*containerState)}
}

func (s *Surface) CreateContainer(sceneID string, instanceID uint64, role domain.ContainerRole) (domain.Container, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	c := domain.Container{
		ID:         fmt.Sprintf("%s-%d-%s-%d", sceneID, instanceID, role, s.seq),
		SceneID:    sceneID,
		InstanceID: instanceID,
		Role:       role,
	}
	s.containers[c.ID] = &containerState{c: c, style: domain.IdentityStyle()}
	s.record("create %s", c.ID)
	return c, nil
}

func (s *Surface) ApplyStyle(c domain.Container, style domain.Style) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.containers[c.ID]
	if !ok {
		return fmt.Errorf("apply style: unknown container %s", c.ID)
	}
	st.style = style
	return nil
}

func (s *Surface) MountLayer(c domain.Container, layer domain.Layer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.containers[c.ID]
	if !ok {
		return fmt.Errorf("mount %s: unknown container %s", layer.ID, c.ID)
	}
	st.layers = append(st.layers, layer.ID)
	s.record("mount %s %s", c.ID, layer.ID)
	return nil
}

func (s *Surface) UnmountLayer(c domain.Container, layerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.containers[c.ID]
	if !ok {
		return fmt.Errorf("unmount %s: unknown container %s", layerID, c.ID)
	}
	for i, id := range st.layers {
		if id == layerID {
			st.layers = append(st.layers[:i], st.layers[i+1:]...)
			break
		}
	}
	s.record("unmount %s %s", c.ID, layerID)
	return nil
}

func (s *Surface) MoveLayers(from, to domain.Container) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	src, ok := s.containers[from.ID]
	if !ok {
		return fmt.Errorf("move: unknown container %s", from.ID)
	}
	dst, ok := s.containers[to.ID]
	if !ok {
		return fmt.Errorf("move: unknown container %s", to.ID)
	}
	dst.layers = append(dst.layers, src.layers...)
	src.layers = nil
	s.record("move %s %s", from.ID, to.ID)
	return nil
}

func (s *Surface) DestroyContainer(c domain.Container) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.containers[c.ID]; !ok {
		return nil
	}
	delete(s.containers, c.ID)
	s.record("destroy %s", c.ID)
	return nil
}

// Containers returns the live containers ordered by id.
func (s *Surface) Containers() []domain.Container {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Container, 0, len(s.containers))
	for _, st := range s.containers {
		out = append(out, st.c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Style returns the current style of a live container.
func (s *Surface) Style(id string) (domain.Style, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.containers[id]
	if !ok {
		return domain.Style{}, false
	}
	return st.style, true
}

// Layers returns the layer ids mounted in a live container.
func (s *Surface) Layers(id string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.containers[id]
	if !ok {
		return nil
	}
	return append([]string(nil), st.layers...)
}

// Ops returns the recorded operation log.
func (s *Surface) Ops() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.ops...)
}

func (s *Surface) record(format string, args ...any) {
	s.ops = append(s.ops, fmt.Sprintf(format, args...))
}
