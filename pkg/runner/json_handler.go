package runner

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"github.com/aretw0/marquee/pkg/domain"
)

// JSONHandler writes every lifecycle event as one JSON line (NDJSON).
type JSONHandler struct {
	Writer  io.Writer
	Encoder *json.Encoder
}

// NewJSONHandler creates a handler for JSON output.
func NewJSONHandler(w io.Writer) *JSONHandler {
	if w == nil {
		w = os.Stdout
	}
	return &JSONHandler{
		Writer:  w,
		Encoder: json.NewEncoder(w),
	}
}

func (h *JSONHandler) HandleEvent(ctx context.Context, ev domain.LifecycleEvent) error {
	return h.Encoder.Encode(ev)
}
