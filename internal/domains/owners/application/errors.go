package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/go-petclinic-server/internal/domains/owners/domain"
)

// ErrInvalidInput signals the request violated a domain invariant.
var ErrInvalidInput = errors.New("invalid owner input")

// ErrPetNotFound signals the requested pet does not belong to the owner.
var ErrPetNotFound = errors.New("pet not found")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrBlankFirstName) ||
		errors.Is(err, domain.ErrBlankLastName) ||
		errors.Is(err, domain.ErrBlankAddress) ||
		errors.Is(err, domain.ErrBlankCity) ||
		errors.Is(err, domain.ErrInvalidTelephone) ||
		errors.Is(err, domain.ErrBlankPetName) ||
		errors.Is(err, domain.ErrMissingType) ||
		errors.Is(err, domain.ErrBlankVisitDescription) ||
		errors.Is(err, domain.ErrNilPet) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
