package domain

import (
	"errors"
	"regexp"
	"strings"
)

var telephonePattern = regexp.MustCompile(`^[0-9]{10}$`)

// ValidTelephone reports whether the value is an acceptable telephone number.
func ValidTelephone(telephone string) bool {
	return telephonePattern.MatchString(telephone)
}

var (
	ErrBlankFirstName   = errors.New("owner first name is required")
	ErrBlankLastName    = errors.New("owner last name is required")
	ErrBlankAddress     = errors.New("owner address is required")
	ErrBlankCity        = errors.New("owner city is required")
	ErrInvalidTelephone = errors.New("owner telephone must be a ten digit number")
	ErrNilPet           = errors.New("pet must not be nil")
)

// Owner is the aggregate root of the owners bounded context. Pets and the
// visits recorded for them are only reachable through their owner.
type Owner struct {
	ID        int64
	FirstName string
	LastName  string
	Address   string
	City      string
	Telephone string
	Pets      []*Pet
}

// NewOwner validates the invariants and builds a new Owner aggregate.
func NewOwner(id int64, firstName, lastName, address, city, telephone string) (*Owner, error) {
	o := &Owner{ID: id}
	if err := o.Rename(firstName, lastName); err != nil {
		return nil, err
	}
	if err := o.UpdateAddress(address, city); err != nil {
		return nil, err
	}
	if err := o.UpdateTelephone(telephone); err != nil {
		return nil, err
	}
	return o, nil
}

// IsNew reports whether the owner has not been persisted yet.
func (o *Owner) IsNew() bool {
	return o.ID == 0
}

// Rename mutates both name components ensuring neither is blank.
func (o *Owner) Rename(firstName, lastName string) error {
	if strings.TrimSpace(firstName) == "" {
		return ErrBlankFirstName
	}
	if strings.TrimSpace(lastName) == "" {
		return ErrBlankLastName
	}
	o.FirstName = firstName
	o.LastName = lastName
	return nil
}

// UpdateAddress stores the postal address, requiring street and city.
func (o *Owner) UpdateAddress(address, city string) error {
	if strings.TrimSpace(address) == "" {
		return ErrBlankAddress
	}
	if strings.TrimSpace(city) == "" {
		return ErrBlankCity
	}
	o.Address = address
	o.City = city
	return nil
}

// UpdateTelephone accepts a ten digit phone number.
func (o *Owner) UpdateTelephone(telephone string) error {
	if !ValidTelephone(telephone) {
		return ErrInvalidTelephone
	}
	o.Telephone = telephone
	return nil
}

// AddPet attaches a pet to the owner.
func (o *Owner) AddPet(pet *Pet) error {
	if pet == nil {
		return ErrNilPet
	}
	o.Pets = append(o.Pets, pet)
	return nil
}

// Pet returns the owned pet with the given id, or nil when absent.
func (o *Owner) Pet(id int64) *Pet {
	for _, p := range o.Pets {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// PetNamed returns the owned pet whose name matches ignoring case and
// surrounding whitespace. Pets that were never saved are skipped when
// ignoreNew is set, so a candidate pet does not collide with itself.
func (o *Owner) PetNamed(name string, ignoreNew bool) *Pet {
	wanted := strings.ToLower(strings.TrimSpace(name))
	if wanted == "" {
		return nil
	}
	for _, p := range o.Pets {
		if ignoreNew && p.IsNew() {
			continue
		}
		if strings.ToLower(strings.TrimSpace(p.Name)) == wanted {
			return p
		}
	}
	return nil
}
