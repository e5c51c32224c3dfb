package ports

import "github.com/aretw0/marquee/pkg/domain"

// Surface owns the containers scene instances render into.
// A container belongs to exactly one scene instance.
type Surface interface {
	// CreateContainer allocates an empty container.
	CreateContainer(sceneID string, instanceID uint64, role domain.ContainerRole) (domain.Container, error)

	// ApplyStyle sets the transition override of a container.
	ApplyStyle(c domain.Container, style domain.Style) error

	// MountLayer attaches a layer to a container.
	MountLayer(c domain.Container, layer domain.Layer) error

	// UnmountLayer detaches a layer from a container.
	UnmountLayer(c domain.Container, layerID string) error

	// MoveLayers re-parents every mounted layer of from into to.
	MoveLayers(from, to domain.Container) error

	// DestroyContainer releases a container. Destroying an unknown container is not an error.
	DestroyContainer(c domain.Container) error
}

// LayerRenderer draws one kind of layer. It receives a frame per layer per
// tick, with the mount signal telling it when to set up and tear down.
type LayerRenderer interface {
	RenderLayer(frame domain.LayerFrame) error
}

// LayerRendererFunc adapts a function to LayerRenderer.
type LayerRendererFunc func(frame domain.LayerFrame) error

// RenderLayer calls f.
func (f LayerRendererFunc) RenderLayer(frame domain.LayerFrame) error { return f(frame) }
