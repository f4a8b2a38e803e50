package core

import "sync/atomic"

// EntityID is a unique identifier for stage entities. Zero means "no entity".
type EntityID uint64

var entityCounter uint64

// NewEntityID generates a unique entity ID
func NewEntityID() EntityID {
	return EntityID(atomic.AddUint64(&entityCounter, 1))
}

// Component is a marker interface for all components
type Component interface {
	Type() ComponentType
}

// ComponentType identifies the type of component
type ComponentType uint32

const (
	CompTransform ComponentType = iota
	CompBody
	CompRole
	CompMax
)

// World holds all entities and their components
type World struct {
	entities map[EntityID]map[ComponentType]Component
}

// NewWorld creates an empty world
func NewWorld() *World {
	return &World{
		entities: make(map[EntityID]map[ComponentType]Component),
	}
}

// Spawn creates a new entity and returns its ID
func (w *World) Spawn() EntityID {
	id := NewEntityID()
	w.entities[id] = make(map[ComponentType]Component)
	return id
}

// Attach adds a component to an entity
func (w *World) Attach(id EntityID, c Component) {
	if comps, ok := w.entities[id]; ok {
		comps[c.Type()] = c
	}
}

// Detach removes a component from an entity
func (w *World) Detach(id EntityID, ct ComponentType) {
	if comps, ok := w.entities[id]; ok {
		delete(comps, ct)
	}
}

// Get returns a component for an entity, or nil
func (w *World) Get(id EntityID, ct ComponentType) Component {
	if comps, ok := w.entities[id]; ok {
		return comps[ct]
	}
	return nil
}

// Has checks if an entity has a component
func (w *World) Has(id EntityID, ct ComponentType) bool {
	if comps, ok := w.entities[id]; ok {
		_, exists := comps[ct]
		return exists
	}
	return false
}

// Alive reports whether the entity exists
func (w *World) Alive(id EntityID) bool {
	_, ok := w.entities[id]
	return ok
}

// Destroy removes an entity immediately. Destroying a missing entity is a no-op.
func (w *World) Destroy(id EntityID) bool {
	if _, ok := w.entities[id]; !ok {
		return false
	}
	delete(w.entities, id)
	return true
}

// Query returns all entity IDs that have ALL specified component types
func (w *World) Query(types ...ComponentType) []EntityID {
	var result []EntityID
	for id, comps := range w.entities {
		match := true
		for _, t := range types {
			if _, ok := comps[t]; !ok {
				match = false
				break
			}
		}
		if match {
			result = append(result, id)
		}
	}
	return result
}

// EntityCount returns the number of alive entities
func (w *World) EntityCount() int {
	return len(w.entities)
}
