package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aretw0/marquee/pkg/domain"
	"github.com/muesli/termenv"
)

// TextHandler prints one coloured line per lifecycle event.
type TextHandler struct {
	Writer io.Writer
	output *termenv.Output
}

// TextHandlerOption defines configuration for TextHandler.
type TextHandlerOption func(*TextHandler)

// WithColorProfile forces a colour profile instead of detecting it from
// the writer. termenv.Ascii disables styling.
func WithColorProfile(p termenv.Profile) TextHandlerOption {
	return func(h *TextHandler) {
		h.output = termenv.NewOutput(h.Writer, termenv.WithProfile(p))
	}
}

// NewTextHandler creates a handler writing to w, stdout when nil.
func NewTextHandler(w io.Writer, opts ...TextHandlerOption) *TextHandler {
	if w == nil {
		w = os.Stdout
	}
	h := &TextHandler{Writer: w, output: termenv.NewOutput(w)}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *TextHandler) HandleEvent(ctx context.Context, ev domain.LifecycleEvent) error {
	label := h.output.String(fmt.Sprintf("%-19s", ev.Type))
	switch {
	case ev.IsError():
		label = label.Foreground(h.output.Color("1"))
	case ev.Type == domain.EventTransitionStart || ev.Type == domain.EventTransitionEnd:
		label = label.Foreground(h.output.Color("6"))
	case ev.Type == domain.EventSceneStart:
		label = label.Foreground(h.output.Color("2"))
	case ev.Type == domain.EventTimelineComplete:
		label = label.Bold()
	}

	clock := h.output.String(FormatClock(ev.ClockMs)).Faint()
	_, err := fmt.Fprintf(h.Writer, "%s  %s %s\n", clock, label, describe(ev))
	return err
}

// FormatClock renders milliseconds as mm:ss.mmm.
func FormatClock(ms float64) string {
	total := int64(ms)
	if total < 0 {
		total = 0
	}
	return fmt.Sprintf("%02d:%02d.%03d", total/60000, total/1000%60, total%1000)
}

func describe(ev domain.LifecycleEvent) string {
	var parts []string
	switch ev.Type {
	case domain.EventTransitionStart, domain.EventTransitionEnd:
		parts = append(parts, fmt.Sprintf("%s %s -> %s", ev.Transition, ev.From, ev.To))
	case domain.EventTimelineComplete:
	default:
		if ev.SceneID != "" {
			parts = append(parts, fmt.Sprintf("%s#%d", ev.SceneID, ev.InstanceID))
		}
	}
	if ev.Reason != "" {
		parts = append(parts, "("+ev.Reason+")")
	}
	if ev.Error != "" {
		parts = append(parts, ev.Error)
	}
	return strings.Join(parts, " ")
}
