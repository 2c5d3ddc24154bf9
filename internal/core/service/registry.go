package service

import (
	"fmt"
	"sync"

	"imgeng/internal/core/domain"

	"github.com/rs/zerolog/log"
)

// Registry holds the mounted components of a page and fans window level events out to them.
type Registry struct {
	mutex      sync.RWMutex
	components map[string]*Component
	order      []string
}

func (r *Registry) Register(component *Component) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if r.components == nil {
		r.components = make(map[string]*Component)
	}

	log.Debug().Str("component", component.ID()).Msg("adding component to registry")
	if _, ok := r.components[component.ID()]; !ok {
		r.order = append(r.order, component.ID())
	}
	r.components[component.ID()] = component
}

func (r *Registry) Get(id string) (*Component, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	component, ok := r.components[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrComponentNotFound, id)
	}

	return component, nil
}

// List returns the components in registration order.
func (r *Registry) List() []*Component {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	list := make([]*Component, 0, len(r.order))
	for _, id := range r.order {
		list = append(list, r.components[id])
	}

	return list
}

// Remove closes and forgets a component.
func (r *Registry) Remove(id string) error {
	r.mutex.Lock()
	component, ok := r.components[id]
	if ok {
		delete(r.components, id)
		for i, v := range r.order {
			if v == id {
				r.order = append(r.order[:i], r.order[i+1:]...)
				break
			}
		}
	}
	r.mutex.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrComponentNotFound, id)
	}

	component.Close()
	return nil
}

// Resize notifies every component that the window was resized.
func (r *Registry) Resize() {
	for _, c := range r.List() {
		c.Resize()
	}
}

// Scroll notifies every component that the window was scrolled.
func (r *Registry) Scroll() {
	for _, c := range r.List() {
		c.Scroll()
	}
}

// Close closes every component and empties the registry.
func (r *Registry) Close() {
	components := r.List()

	r.mutex.Lock()
	r.components = nil
	r.order = nil
	r.mutex.Unlock()

	for _, c := range components {
		c.Close()
	}
}
