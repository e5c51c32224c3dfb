package domain

// CameraTransform is the merged camera state of one scene instance.
type CameraTransform struct {
	PanX     float64 `json:"pan_x"`
	PanY     float64 `json:"pan_y"`
	Zoom     float64 `json:"zoom"`
	Rotation float64 `json:"rotation"`
}

// IdentityCamera is the transform of a camera nothing has moved yet.
func IdentityCamera() CameraTransform {
	return CameraTransform{Zoom: 1}
}

// Inset clips a container from each edge, in percent of its size.
type Inset struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// Style is the visual override a transition applies to a whole container.
// Translations are in percent of the container size, blur in pixels.
type Style struct {
	Opacity    float64 `json:"opacity"`
	TranslateX float64 `json:"translate_x"`
	TranslateY float64 `json:"translate_y"`
	Scale      float64 `json:"scale"`
	Blur       float64 `json:"blur"`
	Contrast   float64 `json:"contrast"`
	Clip       Inset   `json:"clip"`
}

// IdentityStyle leaves a container untouched.
func IdentityStyle() Style {
	return Style{Opacity: 1, Scale: 1, Contrast: 1}
}

// Phase is the lifecycle state of a scene instance.
type Phase string

const (
	PhasePending          Phase = "pending"
	PhaseActive           Phase = "active"
	PhaseTransitioningIn  Phase = "transitioning-in"
	PhaseTransitioningOut Phase = "transitioning-out"
	PhaseDestroyed        Phase = "destroyed"
)

// Mounted reports whether instances in this phase own a container.
func (p Phase) Mounted() bool {
	return p == PhaseActive || p == PhaseTransitioningIn || p == PhaseTransitioningOut
}

// ContainerRole tells renderers what a container is used for.
type ContainerRole string

const (
	RolePrimary  ContainerRole = "primary"
	RoleOutgoing ContainerRole = "outgoing"
	RoleIncoming ContainerRole = "incoming"
)

// Container is a render target owned by exactly one scene instance.
type Container struct {
	ID         string        `json:"id"`
	SceneID    string        `json:"scene_id"`
	InstanceID uint64        `json:"instance_id"`
	Role       ContainerRole `json:"role"`
}

// LayerSignal tells a renderer where a layer is in its mount cycle.
type LayerSignal string

const (
	SignalMounted LayerSignal = "mounted"
	SignalUpdated LayerSignal = "updated"
	SignalUnmount LayerSignal = "unmount"
)

// LayerProps are the computed properties of a layer for one tick.
type LayerProps struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Scale    float64 `json:"scale"`
	Rotation float64 `json:"rotation"`
	Opacity  float64 `json:"opacity"`
	Color    Value   `json:"color,omitempty"`
}

// LayerFrame is what a layer renderer receives for one layer on one tick.
type LayerFrame struct {
	SceneID    string          `json:"scene_id"`
	InstanceID uint64          `json:"instance_id"`
	LayerID    string          `json:"layer_id"`
	Kind       string          `json:"kind"`
	Source     string          `json:"source,omitempty"`
	Data       map[string]any  `json:"data,omitempty"`
	Container  Container       `json:"container"`
	Signal     LayerSignal     `json:"signal"`
	Props      LayerProps      `json:"props"`
	Style      Style           `json:"style"`
	Camera     CameraTransform `json:"camera"`
	LocalMs    float64         `json:"local_ms"`
}

// SceneFrame is the computed state of one mounted scene instance.
type SceneFrame struct {
	SceneID    string          `json:"scene_id"`
	InstanceID uint64          `json:"instance_id"`
	Phase      Phase           `json:"phase"`
	LocalMs    float64         `json:"local_ms"`
	Container  Container       `json:"container"`
	Style      Style           `json:"style"`
	Z          int             `json:"z"`
	Camera     CameraTransform `json:"camera"`
	Layers     []LayerFrame    `json:"layers,omitempty"`
}

// TransitionFrame describes the running transition, if any.
type TransitionFrame struct {
	Kind     TransitionKind `json:"kind"`
	From     string         `json:"from"`
	To       string         `json:"to"`
	Progress float64        `json:"progress"`
	Eased    float64        `json:"eased"`
}

// Frame is the full output of one scheduler tick.
type Frame struct {
	ClockMs    float64          `json:"clock_ms"`
	Status     PlaybackStatus   `json:"status"`
	EventID    string           `json:"event_id"`
	Camera     CameraTransform  `json:"camera"`
	Scenes     []SceneFrame     `json:"scenes,omitempty"`
	Transition *TransitionFrame `json:"transition,omitempty"`

	// Unmounted carries the final unmount signal of layers torn down during this tick.
	Unmounted []LayerFrame `json:"unmounted,omitempty"`
}

// Layers flattens the layer frames of every mounted scene, outgoing scenes first.
func (f Frame) Layers() []LayerFrame {
	var out []LayerFrame
	for _, s := range f.Scenes {
		out = append(out, s.Layers...)
	}
	return out
}
