package lifecycle

import (
	"github.com/aretw0/marquee/pkg/domain"
	"github.com/aretw0/marquee/pkg/interpolate"
)

// Render computes the scene frames of every live instance at nowMs,
// outgoing first. It also hands back the unmount frames collected since the
// previous call. Render marks newly mounted layers as announced, so it is
// called once per tick.
func (m *Manager) Render(nowMs float64) ([]domain.SceneFrame, []domain.LayerFrame) {
	var scenes []domain.SceneFrame
	if m.outgoing != nil {
		scenes = append(scenes, m.sceneFrame(m.outgoing, nowMs, m.styles.Out, 0))
	}
	if m.current != nil {
		style := domain.IdentityStyle()
		if m.running != nil {
			style = m.styles.In
		}
		scenes = append(scenes, m.sceneFrame(m.current, nowMs, style, 1))
	}

	unmounted := m.unmounted
	m.unmounted = nil
	return scenes, unmounted
}

// TransitionFrame describes the running transition, or nil.
func (m *Manager) TransitionFrame() *domain.TransitionFrame {
	if m.running == nil {
		return nil
	}
	tf := &domain.TransitionFrame{
		Kind:     m.running.Kind(),
		Progress: m.running.Progress(),
		Eased:    m.running.Eased(),
	}
	if m.outgoing != nil {
		tf.From = m.outgoing.Scene.ID
	}
	if m.current != nil {
		tf.To = m.current.Scene.ID
	}
	return tf
}

func (m *Manager) sceneFrame(inst *Instance, nowMs float64, style domain.Style, z int) domain.SceneFrame {
	c, _ := inst.Container()
	local := inst.LocalMs(nowMs)
	sf := domain.SceneFrame{
		SceneID:    inst.Scene.ID,
		InstanceID: inst.ID,
		Phase:      inst.Phase,
		LocalMs:    local,
		Container:  c,
		Style:      style,
		Z:          z,
		Camera:     inst.Camera.Transform(),
	}
	for _, l := range inst.layers {
		if !l.mounted {
			continue
		}
		m.computeProps(inst, l, local)
		signal := domain.SignalUpdated
		if !l.announced {
			signal = domain.SignalMounted
			l.announced = true
		}
		sf.Layers = append(sf.Layers, m.layerFrame(inst, l, c, signal, style, local))
	}
	return sf
}

func (m *Manager) layerFrame(inst *Instance, l *layerState, c domain.Container, signal domain.LayerSignal, style domain.Style, local float64) domain.LayerFrame {
	return domain.LayerFrame{
		SceneID:    inst.Scene.ID,
		InstanceID: inst.ID,
		LayerID:    l.def.ID,
		Kind:       l.def.Kind,
		Source:     l.def.Source,
		Data:       l.def.Data,
		Container:  c,
		Signal:     signal,
		Props:      l.props,
		Style:      style,
		Camera:     inst.Camera.Transform(),
		LocalMs:    local,
	}
}

func (m *Manager) computeProps(inst *Instance, l *layerState, local float64) {
	props := l.def.BaseProps()
	for _, a := range l.def.Animations {
		v, ok, err := interpolate.ValueAt(a, local)
		if err != nil {
			if !l.failed {
				l.failed = true
				m.logger.Warn("layer animation", "scene", inst.Scene.ID, "layer", l.def.ID, "property", a.Property, "err", err)
			}
			continue
		}
		if !ok {
			continue
		}
		switch a.Property {
		case domain.PropX:
			props.X = v.Float()
		case domain.PropY:
			props.Y = v.Float()
		case domain.PropScale:
			props.Scale = v.Float()
		case domain.PropRotation:
			props.Rotation = v.Float()
		case domain.PropOpacity:
			props.Opacity = v.Float()
		case domain.PropColor:
			props.Color = v
		}
	}
	l.props = props
}
