package loam

// DocumentMetadata is the front matter of a project document. A document
// is a scene or an event; which one is decided by Kind or, when Kind is
// empty, by the directory the file lives in (scenes/ or events/).
//
// Nested definitions stay untyped here and are decoded into domain types
// by the loader, so numeric and colour values go through the same parsing
// as YAML scene graph files.
type DocumentMetadata struct {
	ID    string `json:"id" mapstructure:"id"`
	Kind  string `json:"kind" mapstructure:"kind"`
	Title string `json:"title" mapstructure:"title"`

	// Scene fields
	DurationMs any   `json:"duration_ms" mapstructure:"duration_ms"`
	Layers     []any `json:"layers" mapstructure:"layers"`
	Audio      []any `json:"audio" mapstructure:"audio"`
	Camera     []any `json:"camera" mapstructure:"camera"`

	// Event fields
	Scenes         []string `json:"scenes" mapstructure:"scenes"`
	Transitions    []any    `json:"transitions" mapstructure:"transitions"`
	Loop           bool     `json:"loop" mapstructure:"loop"`
	LoopTransition any      `json:"loop_transition" mapstructure:"loop_transition"`
}

// Document kinds.
const (
	KindScene = "scene"
	KindEvent = "event"
)
