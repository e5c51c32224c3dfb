package marquee

import _ "embed"

// Version is the release of the engine.
//
//go:embed VERSION
var Version string
