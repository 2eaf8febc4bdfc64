package projection

import "time"

// Metadata carries the persistence timestamps recorded alongside an aggregate.
type Metadata struct {
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Projection pairs an aggregate with the metadata its repository tracked for it.
type Projection[T any] struct {
	Entity   T
	Metadata Metadata
}

// New wraps an aggregate with its persistence metadata.
func New[T any](entity T, createdAt, updatedAt time.Time) *Projection[T] {
	return &Projection[T]{
		Entity:   entity,
		Metadata: Metadata{CreatedAt: createdAt, UpdatedAt: updatedAt},
	}
}
