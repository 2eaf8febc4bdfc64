package mapper

import (
	vettypes "github.com/Apurer/go-petclinic-server/internal/domains/vets/application/types"
	"github.com/Apurer/go-petclinic-server/internal/domains/vets/domain"
)

// Vet is the HTTP representation of a veterinarian.
type Vet struct {
	ID              int64    `json:"id,omitempty"`
	FirstName       string   `json:"firstName"`
	LastName        string   `json:"lastName"`
	Specialties     []string `json:"specialties"`
	NrOfSpecialties int      `json:"nrOfSpecialties"`
}

// VetPage is one page of the vet directory.
type VetPage struct {
	Vets          []Vet `json:"vets"`
	Page          int   `json:"page"`
	TotalPages    int   `json:"totalPages"`
	TotalElements int   `json:"totalElements"`
}

// VetList wraps the whole directory for the JSON endpoint.
type VetList struct {
	Vets []Vet `json:"vetList"`
}

// FromDomainVet maps a vet into its transport representation.
func FromDomainVet(vet *domain.Vet) Vet {
	return Vet{
		ID:              vet.ID,
		FirstName:       vet.FirstName,
		LastName:        vet.LastName,
		Specialties:     append([]string{}, vet.Specialties...),
		NrOfSpecialties: vet.NrOfSpecialties(),
	}
}

// FromProjectionList maps vet projections into transport vets.
func FromProjectionList(list []*vettypes.VetProjection) []Vet {
	result := make([]Vet, 0, len(list))
	for _, projection := range list {
		result = append(result, FromDomainVet(projection.Entity))
	}
	return result
}

// FromSearchResult maps a directory page into its transport representation.
func FromSearchResult(result *vettypes.VetSearchResult) VetPage {
	return VetPage{
		Vets:          FromProjectionList(result.Vets),
		Page:          result.Page,
		TotalPages:    result.TotalPages,
		TotalElements: result.TotalElements,
	}
}
