package types

import (
	"github.com/Apurer/go-petclinic-server/internal/domains/owners/domain"
	"github.com/Apurer/go-petclinic-server/internal/shared/forms"
)

// Names under which form objects collect field errors.
const (
	FormObjectOwner = "owner"
	FormObjectPet   = "pet"
	FormObjectVisit = "visit"
)

// Codes recorded on rejected form fields.
const (
	CodeRequired              = "required"
	CodeDuplicate             = "duplicate"
	CodeNotFound              = "notFound"
	CodeInvalid               = "invalid"
	CodeTypeMismatch          = "typeMismatch"
	CodeTypeMismatchBirthDate = "typeMismatch.birthDate"
)

// OwnerRef identifies an owner for lookups and form initialization.
type OwnerRef struct {
	OwnerID int64
}

// PetRef identifies a pet within its owner.
type PetRef struct {
	OwnerID int64
	PetID   int64
}

// PetFormSubmission carries the raw field values posted to the pet form.
// PetID is zero for the creation flow.
type PetFormSubmission struct {
	OwnerID   int64
	PetID     int64
	Name      string
	Type      string
	BirthDate string
}

// PetFormState echoes field values back to the form. Values stay raw strings
// so rejected input is preserved on re-render.
type PetFormState struct {
	ID        int64
	Name      string
	Type      string
	BirthDate string
	New       bool
}

// PetFormView is everything needed to render the pet form.
type PetFormView struct {
	Owner  *OwnerProjection
	Pet    PetFormState
	Types  []domain.PetType
	Errors *forms.Result
}

// PetFormDecision reports how a pet form submission concluded. Exactly one of
// Saved or Rejected applies.
type PetFormDecision struct {
	Saved    bool
	OwnerID  int64
	PetID    int64
	Rejected *PetFormView
}

// OwnerFormSubmission carries the raw field values posted to the owner form.
// OwnerID is zero for the creation flow.
type OwnerFormSubmission struct {
	OwnerID   int64
	FirstName string
	LastName  string
	Address   string
	City      string
	Telephone string
}

// OwnerFormState echoes owner field values back to the form.
type OwnerFormState struct {
	ID        int64
	FirstName string
	LastName  string
	Address   string
	City      string
	Telephone string
	New       bool
}

// OwnerFormView is everything needed to render the owner form.
type OwnerFormView struct {
	Owner  OwnerFormState
	Errors *forms.Result
}

// OwnerFormDecision reports how an owner form submission concluded.
type OwnerFormDecision struct {
	Saved    bool
	OwnerID  int64
	Rejected *OwnerFormView
}

// VisitFormSubmission carries the raw field values posted to the visit form.
type VisitFormSubmission struct {
	OwnerID     int64
	PetID       int64
	Date        string
	Description string
}

// VisitFormState echoes visit field values back to the form.
type VisitFormState struct {
	Date        string
	Description string
}

// VisitFormView renders the visit form together with the pet it belongs to
// and the visits already on record.
type VisitFormView struct {
	Owner  *OwnerProjection
	Pet    *domain.Pet
	Visit  VisitFormState
	Errors *forms.Result
}

// VisitFormDecision reports how a visit form submission concluded.
type VisitFormDecision struct {
	Saved    bool
	OwnerID  int64
	Rejected *VisitFormView
}

// FindOwnersQuery filters the owner directory by last-name prefix. Page is
// one-based; an empty LastName matches every owner.
type FindOwnersQuery struct {
	LastName string
	Page     int
}

// OwnerSearchResult is one page of the owner directory.
type OwnerSearchResult struct {
	Owners        []*OwnerProjection
	Page          int
	TotalPages    int
	TotalElements int
}
