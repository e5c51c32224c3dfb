package domain

import "context"

// EventType is the category of a lifecycle event.
type EventType string

const (
	EventSceneStart       EventType = "scene-start"
	EventSceneEnd         EventType = "scene-end"
	EventTransitionStart  EventType = "transition-start"
	EventTransitionEnd    EventType = "transition-end"
	EventTimelineComplete EventType = "timeline-complete"

	// Contained failures. They never interrupt playback.
	EventSceneError         EventType = "scene-error"
	EventAssetMissing       EventType = "asset-missing"
	EventTransitionConflict EventType = "transition-conflict"
	EventAudioDrift         EventType = "audio-drift"
)

// Reasons attached to scene-end and transition-end.
const (
	ReasonCompleted  = "completed"
	ReasonTransition = "transition"
	ReasonSeek       = "seek"
	ReasonStop       = "stop"
	ReasonReload     = "reload"
)

// LifecycleEvent is queued by the scheduler and drained by the host once per tick.
type LifecycleEvent struct {
	Seq        uint64         `json:"seq"`
	Type       EventType      `json:"type"`
	ClockMs    float64        `json:"clock_ms"`
	SceneID    string         `json:"scene_id,omitempty"`
	InstanceID uint64         `json:"instance_id,omitempty"`
	From       string         `json:"from,omitempty"`
	To         string         `json:"to,omitempty"`
	Transition TransitionKind `json:"transition,omitempty"`
	Reason     string         `json:"reason,omitempty"`
	Error      string         `json:"error,omitempty"`
}

// IsError reports whether the event describes a contained failure.
func (e LifecycleEvent) IsError() bool {
	switch e.Type {
	case EventSceneError, EventAssetMissing, EventTransitionConflict, EventAudioDrift:
		return true
	}
	return false
}

// LifecycleHooks are called by the host while draining the event queue.
type LifecycleHooks struct {
	OnSceneStart       func(context.Context, LifecycleEvent)
	OnSceneEnd         func(context.Context, LifecycleEvent)
	OnTransitionStart  func(context.Context, LifecycleEvent)
	OnTransitionEnd    func(context.Context, LifecycleEvent)
	OnTimelineComplete func(context.Context, LifecycleEvent)
	OnError            func(context.Context, LifecycleEvent)
}

// Dispatch routes ev to the matching hook, if set.
func (h LifecycleHooks) Dispatch(ctx context.Context, ev LifecycleEvent) {
	var fn func(context.Context, LifecycleEvent)
	switch ev.Type {
	case EventSceneStart:
		fn = h.OnSceneStart
	case EventSceneEnd:
		fn = h.OnSceneEnd
	case EventTransitionStart:
		fn = h.OnTransitionStart
	case EventTransitionEnd:
		fn = h.OnTransitionEnd
	case EventTimelineComplete:
		fn = h.OnTimelineComplete
	default:
		if ev.IsError() {
			fn = h.OnError
		}
	}
	if fn != nil {
		fn(ctx, ev)
	}
}
