package lifecycle

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/aretw0/marquee/pkg/domain"
)

// headless surface used when the host does not provide one
type nopSurface struct{ seq atomic.Uint64 }

func (s *nopSurface) CreateContainer(sceneID string, instanceID uint64, role domain.ContainerRole) (domain.Container, error) {
	return domain.Container{
		ID:         fmt.Sprintf("c%d", s.seq.Add(1)),
		SceneID:    sceneID,
		InstanceID: instanceID,
		Role:       role,
	}, nil
}
func (s *nopSurface) ApplyStyle(domain.Container, domain.Style) error     { return nil }
func (s *nopSurface) MountLayer(domain.Container, domain.Layer) error     { return nil }
func (s *nopSurface) UnmountLayer(domain.Container, string) error         { return nil }
func (s *nopSurface) MoveLayers(domain.Container, domain.Container) error { return nil }
func (s *nopSurface) DestroyContainer(domain.Container) error             { return nil }

type nopAudio struct{}

func (nopAudio) Start(string, string, float64, bool, float64, float64) error { return nil }
func (nopAudio) Stop(string, float64) error                                  { return nil }
func (nopAudio) SetVolume(string, float64) error                             { return nil }
func (nopAudio) Pause(string) error                                          { return nil }
func (nopAudio) Resume(string) error                                         { return nil }
func (nopAudio) Position(string) (float64, bool)                             { return 0, false }

// every asset is considered ready
type nopAssets struct{}

func (nopAssets) Prefetch(context.Context, []string) {}
func (nopAssets) Ready(string) (bool, error)          { return true, nil }
