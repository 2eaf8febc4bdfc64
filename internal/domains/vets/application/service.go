package application

import (
	"context"

	vettypes "github.com/Apurer/go-petclinic-server/internal/domains/vets/application/types"
	"github.com/Apurer/go-petclinic-server/internal/domains/vets/ports"
)

// vetsPageSize is the directory page length of the clinic UI.
const vetsPageSize = 5

// Service orchestrates the vets bounded context use cases.
type Service struct {
	repo ports.Repository
}

// NewService wires the vets service with its repository.
func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

// ListVets returns one page of the vet directory.
func (s *Service) ListVets(ctx context.Context, page int) (*vettypes.VetSearchResult, error) {
	if page < 1 {
		page = 1
	}
	result, err := s.repo.List(ctx, page, vetsPageSize)
	if err != nil {
		return nil, err
	}
	totalPages := (result.TotalElements + vetsPageSize - 1) / vetsPageSize
	return &vettypes.VetSearchResult{
		Vets:          result.Vets,
		Page:          page,
		TotalPages:    totalPages,
		TotalElements: result.TotalElements,
	}, nil
}

// ListAllVets returns the whole directory.
func (s *Service) ListAllVets(ctx context.Context) ([]*vettypes.VetProjection, error) {
	return s.repo.ListAll(ctx)
}

var _ ports.Service = (*Service)(nil)
