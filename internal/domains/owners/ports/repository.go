package ports

import (
	"context"
	"errors"

	"github.com/Apurer/go-petclinic-server/internal/domains/owners/domain"
	"github.com/Apurer/go-petclinic-server/internal/shared/projection"
)

var ErrNotFound = errors.New("owner not found")

// OwnerPage is one page of owners matched by a last-name search.
type OwnerPage struct {
	Owners        []*projection.Projection[*domain.Owner]
	TotalElements int
}

// Repository is the driven port for owner persistence. Pets and their visits
// are stored through the owning aggregate, never on their own.
type Repository interface {
	Save(ctx context.Context, owner *domain.Owner) (*projection.Projection[*domain.Owner], error)
	FindByID(ctx context.Context, id int64) (*projection.Projection[*domain.Owner], error)
	FindByLastName(ctx context.Context, lastNamePrefix string, page, size int) (OwnerPage, error)
	FindPetTypes(ctx context.Context) ([]domain.PetType, error)
}
