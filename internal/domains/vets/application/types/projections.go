package types

import (
	"github.com/Apurer/go-petclinic-server/internal/domains/vets/domain"
	"github.com/Apurer/go-petclinic-server/internal/shared/projection"
)

// VetProjection pairs a vet with its persistence metadata.
type VetProjection = projection.Projection[*domain.Vet]

// VetSearchResult is one page of the vet directory.
type VetSearchResult struct {
	Vets          []*VetProjection
	Page          int
	TotalPages    int
	TotalElements int
}
