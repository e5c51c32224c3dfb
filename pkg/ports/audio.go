package ports

import "context"

// AudioSink plays the audio tracks of mounted scenes.
// Track IDs are unique per scene instance.
type AudioSink interface {
	// Start plays source from offsetMs into it.
	Start(trackID, source string, volume float64, loop bool, fadeInMs, offsetMs float64) error
	Stop(trackID string, fadeOutMs float64) error
	SetVolume(trackID string, volume float64) error

	// Pause holds a started track at its current position until Resume.
	Pause(trackID string) error
	Resume(trackID string) error

	// Position reports how far into its source a track is, in milliseconds.
	// ok is false when the track is unknown or not started yet.
	Position(trackID string) (ms float64, ok bool)
}

// AssetLoader makes layer and audio sources available to renderers.
type AssetLoader interface {
	// Prefetch starts loading sources in the background. It must not block
	// beyond scheduling the work.
	Prefetch(ctx context.Context, sources []string)

	// Ready is polled once per tick per pending asset. A non-nil error means
	// the asset failed for good and will never become ready.
	Ready(source string) (bool, error)
}
