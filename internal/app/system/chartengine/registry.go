// Package chartengine is the server-side chart engine used by the stat card.
//
// The engine keeps a registry of renderable component types (controllers,
// elements, scales and plugins). A chart type can only be drawn once its
// controller is in the registry. Different builds of the engine expose
// different registration entry points, so callers probe for the
// ControllerAdder and ItemRegisterer capabilities instead of assuming both.
package chartengine

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// Kind classifies a registerable component.
type Kind string

const (
	KindController Kind = "controller"
	KindElement    Kind = "element"
	KindScale      Kind = "scale"
	KindPlugin     Kind = "plugin"
)

// Component identifies one registerable component type.
type Component struct {
	Kind Kind
	ID   string
}

func (c Component) String() string {
	return string(c.Kind) + ":" + c.ID
}

// DoughnutController draws ring charts. It must be registered before a
// doughnut chart can be rendered.
var DoughnutController = Component{Kind: KindController, ID: "doughnut"}

// Registerables returns the engine's full default bundle. The slice is
// freshly allocated on every call.
func Registerables() []Component {
	return []Component{
		DoughnutController,
		{Kind: KindController, ID: "pie"},
		{Kind: KindController, ID: "bar"},
		{Kind: KindController, ID: "line"},
		{Kind: KindElement, ID: "arc"},
		{Kind: KindElement, ID: "bar"},
		{Kind: KindElement, ID: "line"},
		{Kind: KindElement, ID: "point"},
		{Kind: KindScale, ID: "category"},
		{Kind: KindScale, ID: "linear"},
		{Kind: KindPlugin, ID: "legend"},
		{Kind: KindPlugin, ID: "title"},
		{Kind: KindPlugin, ID: "tooltip"},
	}
}

var (
	// ErrNotController is returned by AddControllers for non-controller items.
	ErrNotController = errors.New("chartengine: component is not a controller")
	// ErrInvalidComponent is returned for components without a kind or ID.
	ErrInvalidComponent = errors.New("chartengine: invalid component")
)

// Lookup reports whether a component type is known to the engine.
type Lookup interface {
	Has(kind Kind, id string) bool
}

// ControllerAdder is the bulk entry point for registering controllers.
type ControllerAdder interface {
	AddControllers(items ...Component) error
}

// ItemRegisterer is the generic per-item entry point.
type ItemRegisterer interface {
	Register(items ...Component) error
}

// Registry is the engine's table of renderable component types.
// It only ever grows; adding a known component is a no-op.
type Registry struct {
	mu    sync.RWMutex
	items map[Component]struct{}
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{items: make(map[Component]struct{})}
}

// Has reports whether the component is registered.
func (r *Registry) Has(kind Kind, id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.items[Component{Kind: kind, ID: id}]
	return ok
}

// Len returns the number of registered components.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}

// Components returns the registered components sorted by kind and ID.
func (r *Registry) Components() []Component {
	r.mu.RLock()
	out := make([]Component, 0, len(r.items))
	for c := range r.items {
		out = append(out, c)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Kind != out[j].Kind {
			return out[i].Kind < out[j].Kind
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// AddControllers registers controllers in bulk. Nothing is added if any
// item is not a controller.
func (r *Registry) AddControllers(items ...Component) error {
	for _, c := range items {
		if c.ID == "" {
			return fmt.Errorf("%w: %q", ErrInvalidComponent, c.String())
		}
		if c.Kind != KindController {
			return fmt.Errorf("%w: %s", ErrNotController, c)
		}
	}
	r.add(items)
	return nil
}

// Register registers components of any kind.
func (r *Registry) Register(items ...Component) error {
	for _, c := range items {
		if c.ID == "" || c.Kind == "" {
			return fmt.Errorf("%w: %q", ErrInvalidComponent, c.String())
		}
	}
	r.add(items)
	return nil
}

func (r *Registry) add(items []Component) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range items {
		r.items[c] = struct{}{}
	}
}

// registerOnly is an engine build without the bulk controller entry point.
type registerOnly struct {
	r *Registry
}

func (v registerOnly) Has(kind Kind, id string) bool     { return v.r.Has(kind, id) }
func (v registerOnly) Register(items ...Component) error { return v.r.Register(items...) }

// RegisterOnly exposes r through the per-item Register entry point only.
func RegisterOnly(r *Registry) Lookup {
	return registerOnly{r: r}
}

// sealed is an engine build with no registration entry point at all.
type sealed struct {
	r *Registry
}

func (v sealed) Has(kind Kind, id string) bool { return v.r.Has(kind, id) }

// Sealed exposes r for lookups only.
func Sealed(r *Registry) Lookup {
	return sealed{r: r}
}
