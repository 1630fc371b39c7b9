package service

import (
	"sync"

	"github.com/pkg/errors"

	"market_movers/internal/models"
)

var ErrUnknownWidgetType = errors.New("unknown widget type")

// Renderer produces a widget's current view data from its
// configuration; the renderable capability a type contributes.
type Renderer func(cfg models.WidgetConfig) (interface{}, error)

// Entry binds a widget type to its renderer and default configuration
// fragment.
type Entry struct {
	Type          models.WidgetType
	Render        Renderer
	DefaultConfig models.ConfigFragment
}

// Registry maps widget type identifiers to entries. Constructed
// explicitly and injected; there is no package-level instance.
// Append-only at runtime: re-registering a type overwrites the entry
// in place, nothing is ever unregistered.
type Registry struct {
	mu      sync.RWMutex
	entries map[models.WidgetType]Entry
	order   []models.WidgetType
}

func New() *Registry {
	return &Registry{entries: make(map[models.WidgetType]Entry)}
}

// Register adds or overwrites the entry for t. An overwrite keeps the
// type's original position in enumeration order.
func (r *Registry) Register(t models.WidgetType, e Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[t]; !exists {
		r.order = append(r.order, t)
	}
	r.entries[t] = e
}

// Resolve returns the entry for t or ErrUnknownWidgetType. Callers
// rendering the grid must catch the miss and show an inline error cell
// instead of failing the dashboard.
func (r *Registry) Resolve(t models.WidgetType) (Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[t]
	if !ok {
		return Entry{}, errors.Wrapf(ErrUnknownWidgetType, "%q", t)
	}
	return e, nil
}

// Types enumerates registered type identifiers in registration order.
func (r *Registry) Types() []models.WidgetType {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.WidgetType, len(r.order))
	copy(out, r.order)
	return out
}

// Entries enumerates all entries in registration order; the add-widget
// picker renders from this.
func (r *Registry) Entries() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Entry, 0, len(r.order))
	for _, t := range r.order {
		out = append(out, r.entries[t])
	}
	return out
}
