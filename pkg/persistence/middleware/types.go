package middleware

import "github.com/aretw0/marquee/pkg/ports"

// Middleware allows wrapping a PlaybackStore to add behavior.
type Middleware func(ports.PlaybackStore) ports.PlaybackStore

// Chain applies middlewares so that the first one is the outermost.
func Chain(store ports.PlaybackStore, mws ...Middleware) ports.PlaybackStore {
	for i := len(mws) - 1; i >= 0; i-- {
		store = mws[i](store)
	}
	return store
}
