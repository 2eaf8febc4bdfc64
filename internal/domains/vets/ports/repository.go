package ports

import (
	"context"

	"github.com/Apurer/go-petclinic-server/internal/domains/vets/domain"
	"github.com/Apurer/go-petclinic-server/internal/shared/projection"
)

// VetPage is one page of the vet directory plus the total row count.
type VetPage struct {
	Vets          []*projection.Projection[*domain.Vet]
	TotalElements int
}

// Repository abstracts persistence of the vet directory.
type Repository interface {
	// List returns one page of vets ordered by last name.
	List(ctx context.Context, page, size int) (VetPage, error)
	// ListAll returns the whole directory ordered by last name.
	ListAll(ctx context.Context) ([]*projection.Projection[*domain.Vet], error)
}
