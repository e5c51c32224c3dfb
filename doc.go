/*
Package marquee is a headless timeline and transition engine for cinematic
presentations.

A scene graph describes Scenes (layers, audio tracks and camera moves with a
fixed duration) and Events (ordered lists of scenes joined by transitions).
The engine plays one event at a time. It owns no clock and draws nothing:
the host calls Tick with its own time, receives a Frame describing every
mounted scene, layer and transition style, and hands the layer frames to
its renderers. Lifecycle events are queued and drained once per tick.

# Usage

	eng, err := marquee.Open("show.yaml",
		marquee.WithRenderer("image", imageRenderer),
		marquee.WithLifecycleHooks(domain.LifecycleHooks{
			OnSceneStart: func(ctx context.Context, ev domain.LifecycleEvent) {
				log.Println("scene", ev.SceneID)
			},
		}),
	)
	if err != nil {
		log.Fatal(err)
	}
	if err := eng.Load(""); err != nil {
		log.Fatal(err)
	}
	_ = eng.Play()

	for host := range frames { // e.g. a requestAnimationFrame bridge
		frame := eng.Tick(host)
		eng.Drain(ctx)
		if frame.Status == domain.StatusComplete {
			break
		}
	}

For a ready-made real-time loop with pause, seek and persistence, see
package runner.
*/
package marquee
