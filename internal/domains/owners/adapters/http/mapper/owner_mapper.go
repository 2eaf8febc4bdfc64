package mapper

import (
	"time"

	oapitypes "github.com/oapi-codegen/runtime/types"

	ownertypes "github.com/Apurer/go-petclinic-server/internal/domains/owners/application/types"
	"github.com/Apurer/go-petclinic-server/internal/domains/owners/domain"
	"github.com/Apurer/go-petclinic-server/internal/shared/forms"
)

// PetType is the HTTP representation of a pet type catalog entry.
type PetType struct {
	ID   int64  `json:"id,omitempty"`
	Name string `json:"name"`
}

// Visit is the HTTP representation of a recorded visit.
type Visit struct {
	ID          int64          `json:"id,omitempty"`
	Date        oapitypes.Date `json:"date"`
	Description string         `json:"description"`
}

// Pet is the HTTP representation of a registered pet.
type Pet struct {
	ID        int64           `json:"id,omitempty"`
	Name      string          `json:"name"`
	BirthDate *oapitypes.Date `json:"birthDate,omitempty"`
	Type      *PetType        `json:"type,omitempty"`
	Visits    []Visit         `json:"visits,omitempty"`
}

// Owner is the HTTP representation of an owner with their pets.
type Owner struct {
	ID        int64     `json:"id,omitempty"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Address   string    `json:"address"`
	City      string    `json:"city"`
	Telephone string    `json:"telephone"`
	Pets      []Pet     `json:"pets,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}

// OwnerPage is one page of the owner directory.
type OwnerPage struct {
	Owners        []Owner `json:"owners"`
	Page          int     `json:"page"`
	TotalPages    int     `json:"totalPages"`
	TotalElements int     `json:"totalElements"`
}

// FieldError is one rejected form field.
type FieldError struct {
	Field string `json:"field"`
	Code  string `json:"code"`
}

// PetFormFields echoes the pet form field values exactly as submitted.
type PetFormFields struct {
	ID        int64  `json:"id,omitempty"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	BirthDate string `json:"birthDate"`
	New       bool   `json:"new"`
}

// PetForm is the render model of the pet creation and update form.
type PetForm struct {
	View   string                  `json:"view"`
	Owner  Owner                   `json:"owner"`
	Pet    PetFormFields           `json:"pet"`
	Types  []PetType               `json:"types"`
	Errors map[string][]FieldError `json:"errors,omitempty"`
}

// OwnerFormFields echoes the owner form field values exactly as submitted.
type OwnerFormFields struct {
	ID        int64  `json:"id,omitempty"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Address   string `json:"address"`
	City      string `json:"city"`
	Telephone string `json:"telephone"`
	New       bool   `json:"new"`
}

// OwnerForm is the render model of the owner creation and update form.
type OwnerForm struct {
	View   string                  `json:"view"`
	Owner  OwnerFormFields         `json:"owner"`
	Errors map[string][]FieldError `json:"errors,omitempty"`
}

// VisitFormFields echoes the visit form field values exactly as submitted.
type VisitFormFields struct {
	Date        string `json:"date"`
	Description string `json:"description"`
}

// VisitForm is the render model of the visit form, including the visit history
// already on record for the pet.
type VisitForm struct {
	View   string                  `json:"view"`
	Owner  Owner                   `json:"owner"`
	Pet    Pet                     `json:"pet"`
	Visit  VisitFormFields         `json:"visit"`
	Errors map[string][]FieldError `json:"errors,omitempty"`
}

// FromDomainOwner maps an owner aggregate into its transport representation.
func FromDomainOwner(owner *domain.Owner) Owner {
	pets := make([]Pet, 0, len(owner.Pets))
	for _, pet := range owner.Pets {
		pets = append(pets, FromDomainPet(pet))
	}
	return Owner{
		ID:        owner.ID,
		FirstName: owner.FirstName,
		LastName:  owner.LastName,
		Address:   owner.Address,
		City:      owner.City,
		Telephone: owner.Telephone,
		Pets:      pets,
	}
}

// FromOwnerProjection maps a projection into a transport owner enriched with metadata.
func FromOwnerProjection(projection *ownertypes.OwnerProjection) Owner {
	owner := FromDomainOwner(projection.Entity)
	owner.CreatedAt = projection.Metadata.CreatedAt
	owner.UpdatedAt = projection.Metadata.UpdatedAt
	return owner
}

// FromOwnerProjectionList maps a slice of projections into transport owners.
func FromOwnerProjectionList(list []*ownertypes.OwnerProjection) []Owner {
	result := make([]Owner, 0, len(list))
	for _, projection := range list {
		result = append(result, FromOwnerProjection(projection))
	}
	return result
}

// FromSearchResult maps an owner directory page into its transport representation.
func FromSearchResult(result *ownertypes.OwnerSearchResult) OwnerPage {
	return OwnerPage{
		Owners:        FromOwnerProjectionList(result.Owners),
		Page:          result.Page,
		TotalPages:    result.TotalPages,
		TotalElements: result.TotalElements,
	}
}

// FromDomainPet maps a pet aggregate into its transport representation.
func FromDomainPet(pet *domain.Pet) Pet {
	var petType *PetType
	if pet.Type != nil {
		petType = &PetType{ID: pet.Type.ID, Name: pet.Type.Name}
	}
	visits := make([]Visit, 0, len(pet.Visits))
	for _, visit := range pet.Visits {
		visits = append(visits, Visit{
			ID:          visit.ID,
			Date:        oapitypes.Date{Time: visit.Date},
			Description: visit.Description,
		})
	}
	return Pet{
		ID:        pet.ID,
		Name:      pet.Name,
		BirthDate: dateFromDomain(pet.BirthDate),
		Type:      petType,
		Visits:    visits,
	}
}

// FromPetTypes maps the type catalog into its transport representation.
func FromPetTypes(list []domain.PetType) []PetType {
	result := make([]PetType, 0, len(list))
	for _, petType := range list {
		result = append(result, PetType{ID: petType.ID, Name: petType.Name})
	}
	return result
}

// FromFormErrors flattens a validation result into per-object field errors.
// Objects without errors carry no key at all.
func FromFormErrors(result *forms.Result) map[string][]FieldError {
	if result == nil {
		return nil
	}
	grouped := result.ByObject()
	if len(grouped) == 0 {
		return nil
	}
	out := make(map[string][]FieldError, len(grouped))
	for object, fields := range grouped {
		mapped := make([]FieldError, 0, len(fields))
		for _, fieldErr := range fields {
			mapped = append(mapped, FieldError{Field: fieldErr.Field, Code: fieldErr.Code})
		}
		out[object] = mapped
	}
	return out
}

// FromPetFormView assembles the pet form render model.
func FromPetFormView(view string, form *ownertypes.PetFormView) PetForm {
	return PetForm{
		View:   view,
		Owner:  FromOwnerProjection(form.Owner),
		Pet:    fromPetFormState(form.Pet),
		Types:  FromPetTypes(form.Types),
		Errors: FromFormErrors(form.Errors),
	}
}

// FromOwnerFormView assembles the owner form render model.
func FromOwnerFormView(view string, form *ownertypes.OwnerFormView) OwnerForm {
	return OwnerForm{
		View: view,
		Owner: OwnerFormFields{
			ID:        form.Owner.ID,
			FirstName: form.Owner.FirstName,
			LastName:  form.Owner.LastName,
			Address:   form.Owner.Address,
			City:      form.Owner.City,
			Telephone: form.Owner.Telephone,
			New:       form.Owner.New,
		},
		Errors: FromFormErrors(form.Errors),
	}
}

// FromVisitFormView assembles the visit form render model.
func FromVisitFormView(view string, form *ownertypes.VisitFormView) VisitForm {
	return VisitForm{
		View:   view,
		Owner:  FromOwnerProjection(form.Owner),
		Pet:    FromDomainPet(form.Pet),
		Visit:  VisitFormFields{Date: form.Visit.Date, Description: form.Visit.Description},
		Errors: FromFormErrors(form.Errors),
	}
}

func fromPetFormState(state ownertypes.PetFormState) PetFormFields {
	return PetFormFields{
		ID:        state.ID,
		Name:      state.Name,
		Type:      state.Type,
		BirthDate: state.BirthDate,
		New:       state.New,
	}
}

func dateFromDomain(value *time.Time) *oapitypes.Date {
	if value == nil {
		return nil
	}
	return &oapitypes.Date{Time: *value}
}
