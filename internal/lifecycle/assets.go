package lifecycle

import (
	"fmt"
	"math"

	"github.com/aretw0/marquee/pkg/domain"
)

// Poll retries layers and tracks still waiting for their assets, abandons
// the ones past the asset timeout and checks audio drift. The timeline
// never waits on an asset.
func (m *Manager) Poll(nowMs float64) {
	for _, inst := range m.Instances() {
		waited := nowMs - inst.activatedMs
		for _, l := range inst.layers {
			if l.mounted || l.wait.abandoned {
				continue
			}
			if waited >= m.assetTimeoutMs {
				m.abandon(inst, &l.wait, l.def.ID, l.def.Source, nowMs, nil)
				continue
			}
			if l.wait.due(nowMs) {
				m.tryMount(inst, l, nowMs)
			}
		}
		for _, t := range inst.tracks {
			if t.started || t.wait.abandoned {
				continue
			}
			if waited >= m.assetTimeoutMs {
				m.abandon(inst, &t.wait, t.def.ID, t.def.Source, nowMs, nil)
				continue
			}
			if t.wait.due(nowMs) {
				m.tryStart(inst, t, nowMs)
			}
		}
	}
	m.syncAudio(nowMs)
}

func (m *Manager) mountReady(inst *Instance, nowMs float64) {
	for _, l := range inst.layers {
		m.tryMount(inst, l, nowMs)
	}
	for _, t := range inst.tracks {
		m.tryStart(inst, t, nowMs)
	}
}

func (m *Manager) tryMount(inst *Instance, l *layerState, nowMs float64) {
	if !m.ready(inst, &l.wait, l.def.ID, l.def.Source, nowMs) {
		return
	}
	c, ok := inst.Container()
	if !ok {
		return
	}
	if err := m.surface.MountLayer(c, l.def); err != nil {
		m.logger.Warn("mount layer", "scene", inst.Scene.ID, "layer", l.def.ID, "err", err)
		l.wait.failed(nowMs)
		return
	}
	l.mounted = true
}

func (m *Manager) tryStart(inst *Instance, t *trackState, nowMs float64) {
	if !m.ready(inst, &t.wait, t.def.ID, t.def.Source, nowMs) {
		return
	}
	// a track joining mid-scene starts where the scene clock already is
	local := inst.LocalMs(nowMs)
	offset := math.Max(0, local)
	fadeIn := math.Max(0, t.def.FadeInMs-offset)
	if err := m.audio.Start(t.handle, t.def.Source, t.def.Level(), t.def.Loop, fadeIn, offset); err != nil {
		m.logger.Warn("start audio", "scene", inst.Scene.ID, "track", t.def.ID, "err", err)
		t.wait.failed(nowMs)
		return
	}
	t.started = true
	t.startLocalMs, t.offsetMs = local, offset
	if m.suspended {
		m.pauseTrack(inst, t)
	}
}

// Suspend holds every started track where it is. Tracks started while
// suspended are paused straight away.
func (m *Manager) Suspend() {
	if m.suspended {
		return
	}
	m.suspended = true
	for _, inst := range m.Instances() {
		for _, t := range inst.tracks {
			if t.started {
				m.pauseTrack(inst, t)
			}
		}
	}
}

// Unsuspend lets held tracks play on from where they were paused.
func (m *Manager) Unsuspend() {
	if !m.suspended {
		return
	}
	m.suspended = false
	for _, inst := range m.Instances() {
		for _, t := range inst.tracks {
			if !t.started {
				continue
			}
			if err := m.audio.Resume(t.handle); err != nil {
				m.logger.Warn("resume audio", "scene", inst.Scene.ID, "track", t.def.ID, "err", err)
			}
			t.drifting = false
		}
	}
}

// Suspended reports whether audio is being held.
func (m *Manager) Suspended() bool { return m.suspended }

func (m *Manager) pauseTrack(inst *Instance, t *trackState) {
	if err := m.audio.Pause(t.handle); err != nil {
		m.logger.Warn("pause audio", "scene", inst.Scene.ID, "track", t.def.ID, "err", err)
	}
}

// duck scales the started tracks of inst to gain times their level.
func (m *Manager) duck(inst *Instance, gain float64) {
	if inst == nil {
		return
	}
	gain = math.Max(0, math.Min(1, gain))
	for _, t := range inst.tracks {
		if !t.started {
			continue
		}
		if err := m.audio.SetVolume(t.handle, t.def.Level()*gain); err != nil {
			m.logger.Warn("set volume", "scene", inst.Scene.ID, "track", t.def.ID, "err", err)
		}
	}
}

func (m *Manager) ready(inst *Instance, w *retry, id, source string, nowMs float64) bool {
	if source == "" {
		return true
	}
	ok, err := m.assets.Ready(source)
	if err != nil {
		m.abandon(inst, w, id, source, nowMs, err)
		return false
	}
	if !ok {
		w.failed(nowMs)
	}
	return ok
}

func (m *Manager) abandon(inst *Instance, w *retry, id, source string, nowMs float64, cause error) {
	w.abandoned = true
	err := &domain.AssetNotReadyError{SceneID: inst.Scene.ID, LayerID: id, Source: source, WaitedMs: nowMs - inst.activatedMs}
	attrs := []any{"scene", inst.Scene.ID, "instance", inst.ID, "layer", id, "err", err}
	if cause != nil {
		attrs = append(attrs, "cause", cause)
	}
	m.logger.Warn("asset missing", attrs...)
	m.emit(domain.LifecycleEvent{Type: domain.EventAssetMissing, ClockMs: nowMs, SceneID: inst.Scene.ID, InstanceID: inst.ID, Error: err.Error()})
}

// syncAudio compares every started, non-looping track against the position
// the scene clock says it should be at.
func (m *Manager) syncAudio(nowMs float64) {
	for _, inst := range m.Instances() {
		local := inst.LocalMs(nowMs)
		for _, t := range inst.tracks {
			if !t.started || t.def.Loop {
				continue
			}
			pos, ok := m.audio.Position(t.handle)
			if !ok {
				continue
			}
			drift := pos - (t.offsetMs + local - t.startLocalMs)
			if math.Abs(drift) <= m.driftToleranceMs {
				t.drifting = false
				continue
			}
			if t.drifting {
				continue
			}
			t.drifting = true
			msg := fmt.Sprintf("track %s drifted %.0fms", t.def.ID, drift)
			m.logger.Warn("audio drift", "scene", inst.Scene.ID, "track", t.def.ID, "drift_ms", drift)
			m.emit(domain.LifecycleEvent{Type: domain.EventAudioDrift, ClockMs: nowMs, SceneID: inst.Scene.ID, InstanceID: inst.ID, Error: msg})
		}
	}
}
