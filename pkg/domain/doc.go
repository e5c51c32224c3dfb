/*
Package domain contains the core types of the Marquee timeline engine.

It defines the scene graph a host plays back, the per-tick Frame handed to
layer renderers, the lifecycle events drained from the scheduler queue and
the typed errors the engine contains instead of propagating. The package
holds no I/O and no scheduling logic.

# Key Entities

  - SceneGraph: Scenes keyed by id plus the Events that sequence them.
  - Scene: Layers, audio tracks and camera animations with a fixed duration.
  - Animation: A timed property change, either from/to or keyframed.
  - TransitionDescriptor: How two consecutive scenes are blended.
  - Frame: What renderers receive on every tick.
  - LifecycleEvent: scene-start, scene-end, transition-start, transition-end, timeline-complete.
*/
package domain
