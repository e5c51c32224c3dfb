package memory

import (
	"sync"

	"github.com/aretw0/marquee/pkg/domain"
)

// Renderer implements ports.LayerRenderer by recording every frame.
type Renderer struct {
	mu     sync.Mutex
	frames []domain.LayerFrame
}

// NewRenderer creates an empty recorder.
func NewRenderer() *Renderer {
	return &Renderer{}
}

func (r *Renderer) RenderLayer(frame domain.LayerFrame) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames = append(r.frames, frame)
	return nil
}

// Frames returns the recorded frames.
func (r *Renderer) Frames() []domain.LayerFrame {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.LayerFrame(nil), r.frames...)
}

// Signals returns the signal sequence recorded for one layer of one instance.
func (r *Renderer) Signals(instanceID uint64, layerID string) []domain.LayerSignal {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.LayerSignal
	for _, f := range r.frames {
		if f.InstanceID == instanceID && f.LayerID == layerID {
			out = append(out, f.Signal)
		}
	}
	return out
}

// Reset drops every recorded frame.
func (r *Renderer) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames = nil
}
