package memory

import (
	"fmt"
	"sort"
	"sync"
)

// Track is the recorded state of one audio handle.
type Track struct {
	ID        string
	Source    string
	Volume    float64
	Loop      bool
	FadeInMs  float64
	FadeOutMs float64
	Playing   bool
	Paused    bool
	// StartOffsetMs is where in the source the track was started.
	StartOffsetMs float64

	startedAt float64
	pausedAt  float64
	offsetMs  float64
}

// Audio implements ports.AudioSink without producing sound. Positions are
// derived from a clock function, so a track reports exactly where the
// timeline expects it unless Nudge shifts it.
type Audio struct {
	mu     sync.Mutex
	clock  func() float64
	tracks map[string]*Track
}

// NewAudio creates a sink. With a nil clock Position always reports unknown.
func NewAudio(clock func() float64) *Audio {
	return &Audio{clock: clock, tracks: make(map[string]*Track)}
}

func (a *Audio) now() float64 {
	if a.clock == nil {
		return 0
	}
	return a.clock()
}

func (a *Audio) Start(trackID, source string, volume float64, loop bool, fadeInMs, offsetMs float64) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if t, ok := a.tracks[trackID]; ok && t.Playing {
		return fmt.Errorf("track %s already playing", trackID)
	}
	a.tracks[trackID] = &Track{
		ID: trackID, Source: source, Volume: volume, Loop: loop, FadeInMs: fadeInMs,
		Playing: true, StartOffsetMs: offsetMs, startedAt: a.now(), offsetMs: offsetMs,
	}
	return nil
}

func (a *Audio) Pause(trackID string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	t, ok := a.tracks[trackID]
	if !ok || !t.Playing {
		return fmt.Errorf("track %s not playing", trackID)
	}
	if !t.Paused {
		t.Paused = true
		t.pausedAt = a.now()
	}
	return nil
}

func (a *Audio) Resume(trackID string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	t, ok := a.tracks[trackID]
	if !ok || !t.Playing {
		return fmt.Errorf("track %s not playing", trackID)
	}
	if t.Paused {
		t.Paused = false
		t.startedAt += a.now() - t.pausedAt
	}
	return nil
}

func (a *Audio) Stop(trackID string, fadeOutMs float64) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	t, ok := a.tracks[trackID]
	if !ok {
		return fmt.Errorf("unknown track %s", trackID)
	}
	t.Playing, t.Paused = false, false
	t.FadeOutMs = fadeOutMs
	return nil
}

func (a *Audio) SetVolume(trackID string, volume float64) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	t, ok := a.tracks[trackID]
	if !ok {
		return fmt.Errorf("unknown track %s", trackID)
	}
	t.Volume = volume
	return nil
}

func (a *Audio) Position(trackID string) (float64, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	t, ok := a.tracks[trackID]
	if !ok || !t.Playing || a.clock == nil {
		return 0, false
	}
	now := a.now()
	if t.Paused {
		now = t.pausedAt
	}
	return now - t.startedAt + t.offsetMs, true
}

// Nudge shifts a track's reported position, simulating drift.
func (a *Audio) Nudge(trackID string, ms float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if t, ok := a.tracks[trackID]; ok {
		t.offsetMs += ms
	}
}

// Tracks returns a copy of every track ever started, ordered by id.
func (a *Audio) Tracks() []Track {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]Track, 0, len(a.tracks))
	for _, t := range a.tracks {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
