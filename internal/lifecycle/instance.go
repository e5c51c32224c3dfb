package lifecycle

import (
	"fmt"

	"github.com/aretw0/marquee/internal/camera"
	"github.com/aretw0/marquee/pkg/domain"
)

// Instance is one mounting of a scene. The same scene may be instantiated
// several times in a session; each instance owns its containers, layers,
// audio handles and camera.
type Instance struct {
	ID    uint64
	Scene *domain.Scene
	// Slot is the timeline position this instance fills.
	Slot int64
	// StartMs is the clock time of scene-local zero.
	StartMs float64
	Phase   domain.Phase
	Camera  *camera.Camera

	primary      *domain.Container
	transitional *domain.Container
	activatedMs  float64

	layers []*layerState
	tracks []*trackState
}

// LocalMs converts a clock time into this instance's scene-local time.
func (i *Instance) LocalMs(nowMs float64) float64 {
	return nowMs - i.StartMs
}

// Container returns the container layers currently live in: the
// transitional one while a transition runs, the primary one otherwise.
func (i *Instance) Container() (domain.Container, bool) {
	if i.transitional != nil {
		return *i.transitional, true
	}
	if i.primary != nil {
		return *i.primary, true
	}
	return domain.Container{}, false
}

// Summary returns the compact view used in snapshots.
func (i *Instance) Summary() domain.SceneSummary {
	return domain.SceneSummary{SceneID: i.Scene.ID, InstanceID: i.ID, Phase: i.Phase}
}

// MountedLayers counts layers attached to the instance's container.
func (i *Instance) MountedLayers() int {
	n := 0
	for _, l := range i.layers {
		if l.mounted {
			n++
		}
	}
	return n
}

type layerState struct {
	def       domain.Layer
	mounted   bool
	announced bool
	wait      retry
	props     domain.LayerProps
	failed    bool // animation error already reported
}

type trackState struct {
	def     domain.AudioTrack
	handle  string
	started bool
	// startLocalMs is the scene-local time the track started at and
	// offsetMs the source position it started from.
	startLocalMs float64
	offsetMs     float64
	drifting     bool
	wait         retry
}

func trackHandle(inst *Instance, trackID string) string {
	return fmt.Sprintf("%s/%s#%d", inst.Scene.ID, trackID, inst.ID)
}

// Backoff bounds for asset readiness polling.
const (
	minBackoffMs = 16.0
	maxBackoffMs = 250.0
)

// retry schedules readiness polls: the first retry on the next tick, then
// doubling from minBackoffMs up to maxBackoffMs.
type retry struct {
	attempts  int
	nextMs    float64
	abandoned bool
}

func (r *retry) due(nowMs float64) bool {
	return !r.abandoned && nowMs >= r.nextMs
}

func (r *retry) failed(nowMs float64) {
	r.attempts++
	if r.attempts == 1 {
		r.nextMs = nowMs
		return
	}
	backoff := minBackoffMs
	for i := 2; i < r.attempts && backoff < maxBackoffMs; i++ {
		backoff *= 2
	}
	if backoff > maxBackoffMs {
		backoff = maxBackoffMs
	}
	r.nextMs = nowMs + backoff
}
