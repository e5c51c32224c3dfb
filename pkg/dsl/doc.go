/*
Package dsl provides a Go DSL for programmatically constructing Marquee scene graphs.

It lets developers define shows with a fluent builder instead of YAML files.
This is particularly useful for generated shows, unit testing and IDE
autocompletion.

Example usage:

	b := dsl.New().Title("Launch")

	b.Scene("intro", 3000).
		Layer("logo", "image").Source("logo.png").
		Animate("opacity", 0, 800, 0, 1).Ease("ease-out")

	b.Scene("main", 5000).
		Layer("headline", "text").Text("Hello").At(50, 40)

	b.Event("launch").
		Play("intro").
		Crossfade(800).
		Play("main")

	loader, err := b.Build()
	// ... pass loader to marquee.New(marquee.WithLoader(loader))
*/
package dsl
