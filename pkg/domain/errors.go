package domain

import (
	"errors"
	"fmt"
)

// ErrEventNotFound is returned when an event id is not part of the scene graph.
var ErrEventNotFound = errors.New("event not found")

// ErrSceneNotFound is returned when a scene id is not part of the scene graph.
var ErrSceneNotFound = errors.New("scene not found")

// ErrNotLoaded is returned when playback is controlled before an event is loaded.
var ErrNotLoaded = errors.New("no event loaded")

// ErrSnapshotNotFound is returned when a session has no stored snapshot.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// ConfigurationError reports an invalid scene definition found when
// instantiating it. The scene is skipped; playback continues.
type ConfigurationError struct {
	SceneID string
	Field   string
	Err     error
}

func (e *ConfigurationError) Error() string {
	switch {
	case e.SceneID != "" && e.Field != "":
		return fmt.Sprintf("scene %q: %s: %v", e.SceneID, e.Field, e.Err)
	case e.Field != "":
		return fmt.Sprintf("%s: %v", e.Field, e.Err)
	case e.SceneID != "":
		return fmt.Sprintf("scene %q: %v", e.SceneID, e.Err)
	}
	return fmt.Sprintf("configuration: %v", e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// AssetNotReadyError reports a layer or audio asset that never became ready
// within the configured timeout. The scene proceeds without it.
type AssetNotReadyError struct {
	SceneID  string
	LayerID  string
	Source   string
	WaitedMs float64
}

func (e *AssetNotReadyError) Error() string {
	return fmt.Sprintf("scene %q layer %q: asset %q not ready after %.0fms", e.SceneID, e.LayerID, e.Source, e.WaitedMs)
}

// TransitionConflictError reports a transition requested for an instance
// that is already transitioning. The later request is dropped.
type TransitionConflictError struct {
	SceneID    string
	InstanceID uint64
	Requested  TransitionKind
	Running    TransitionKind
}

func (e *TransitionConflictError) Error() string {
	return fmt.Sprintf("scene %q instance %d: %s requested while %s is running", e.SceneID, e.InstanceID, e.Requested, e.Running)
}

// ClockSeekOutOfRangeError reports a seek target outside the timeline.
// The clock is clamped to ClampedMs.
type ClockSeekOutOfRangeError struct {
	RequestedMs float64
	ClampedMs   float64
	DurationMs  float64
}

func (e *ClockSeekOutOfRangeError) Error() string {
	return fmt.Sprintf("seek to %.0fms outside timeline [0, %.0fms]: clamped to %.0fms", e.RequestedMs, e.DurationMs, e.ClampedMs)
}
