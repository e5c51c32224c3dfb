package runner

import (
	"context"

	"github.com/aretw0/marquee/pkg/domain"
)

// EventHandler receives every lifecycle event drained by the runner, in
// emission order, on the runner's goroutine.
type EventHandler interface {
	HandleEvent(ctx context.Context, ev domain.LifecycleEvent) error
}

// EventHandlerFunc adapts a function to EventHandler.
type EventHandlerFunc func(ctx context.Context, ev domain.LifecycleEvent) error

func (f EventHandlerFunc) HandleEvent(ctx context.Context, ev domain.LifecycleEvent) error {
	return f(ctx, ev)
}
