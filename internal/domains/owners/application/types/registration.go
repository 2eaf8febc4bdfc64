package types

import (
	"github.com/Apurer/go-petclinic-server/internal/domains/owners/domain"
	"github.com/Apurer/go-petclinic-server/internal/shared/forms"
)

// PetRegistration describes an accepted pet registration as pushed to the
// national pet registry. BirthDate is empty when none was recorded.
type PetRegistration struct {
	OwnerID   int64
	PetID     int64
	OwnerName string
	PetName   string
	PetType   string
	BirthDate string
}

// NewPetRegistration extracts the registry payload for a pet saved under an owner.
func NewPetRegistration(owner *domain.Owner, pet *domain.Pet) PetRegistration {
	registration := PetRegistration{
		OwnerID:   owner.ID,
		PetID:     pet.ID,
		OwnerName: owner.FirstName + " " + owner.LastName,
		PetName:   pet.Name,
	}
	if pet.Type != nil {
		registration.PetType = pet.Type.Name
	}
	if pet.BirthDate != nil {
		registration.BirthDate = forms.FormatDate(*pet.BirthDate)
	}
	return registration
}
