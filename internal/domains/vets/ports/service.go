package ports

import (
	"context"

	vettypes "github.com/Apurer/go-petclinic-server/internal/domains/vets/application/types"
)

// Service exposes the vets use cases consumed by transport adapters.
type Service interface {
	// ListVets returns one page of the vet directory.
	ListVets(ctx context.Context, page int) (*vettypes.VetSearchResult, error)
	// ListAllVets returns the whole directory.
	ListAllVets(ctx context.Context) ([]*vettypes.VetProjection, error)
}
