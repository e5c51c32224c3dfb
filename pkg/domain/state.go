package domain

import "time"

// PlaybackStatus is the scheduler's play state.
type PlaybackStatus string

const (
	StatusIdle     PlaybackStatus = "idle"     // loaded, not started
	StatusPlaying  PlaybackStatus = "playing"  // clock advancing
	StatusPaused   PlaybackStatus = "paused"   // clock frozen, state kept
	StatusStopped  PlaybackStatus = "stopped"  // torn down, clock reset
	StatusComplete PlaybackStatus = "complete" // sink state reached
)

// SceneSummary is a compact view of a mounted instance.
type SceneSummary struct {
	SceneID    string `json:"scene_id"`
	InstanceID uint64 `json:"instance_id"`
	Phase      Phase  `json:"phase"`
}

// Snapshot captures where a playback is. It is what stores persist
// and what control surfaces report.
type Snapshot struct {
	SessionID  string           `json:"session_id,omitempty"`
	EventID    string           `json:"event_id"`
	Status     PlaybackStatus   `json:"status"`
	ClockMs    float64          `json:"clock_ms"`
	DurationMs float64          `json:"duration_ms"`
	Loop       bool             `json:"loop,omitempty"`
	Scenes     []SceneSummary   `json:"scenes,omitempty"`
	Transition *TransitionFrame `json:"transition,omitempty"`
	UpdatedAt  time.Time        `json:"updated_at,omitzero"`

	// Sealed holds an encrypted snapshot. Only stores wrapped by the
	// session encryption middleware see it set.
	Sealed string `json:"sealed,omitempty"`
}
