/*
Package ports defines the driven ports (interfaces) of the Marquee engine.

The scheduler core only talks to the outside world through these interfaces.
Tick-path ports (Surface, AudioSink, AssetLoader, LayerRenderer) are called
synchronously from the tick and must return without blocking; anything slow
belongs behind them in a goroutine the adapter owns.

# Key Interfaces

  - Surface: Creates, styles and destroys the containers scene instances render into.
  - AudioSink: Starts, pauses, stops and reports the position of audio tracks.
  - AssetLoader: Prefetches assets and answers readiness polls.
  - LayerRenderer: Receives per-layer frames with mount signals.
  - GraphLoader: Loads a scene graph (YAML file, Loam directory, memory).
  - PlaybackStore: Persists playback snapshots so sessions can resume.
  - DistributedLocker: Leases a playback session to one player across replicas.
*/
package ports
