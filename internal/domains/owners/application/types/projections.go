package types

import (
	"time"

	"github.com/Apurer/go-petclinic-server/internal/domains/owners/domain"
	"github.com/Apurer/go-petclinic-server/internal/shared/projection"
)

// OwnerProjection transports an owner aggregate together with its persistence metadata.
type OwnerProjection = projection.Projection[*domain.Owner]

// NewOwnerProjection wraps an aggregate with persistence metadata.
func NewOwnerProjection(owner *domain.Owner, createdAt, updatedAt time.Time) *OwnerProjection {
	if owner == nil {
		return nil
	}
	return projection.New(owner, createdAt, updatedAt)
}

// CloneProjectionList duplicates a slice of projections.
func CloneProjectionList(sources []*OwnerProjection) []*OwnerProjection {
	if len(sources) == 0 {
		return nil
	}
	result := make([]*OwnerProjection, 0, len(sources))
	for _, src := range sources {
		if src == nil {
			continue
		}
		clone := *src
		result = append(result, &clone)
	}
	return result
}
