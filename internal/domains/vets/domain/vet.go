package domain

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrBlankFirstName = errors.New("vet first name must not be blank")
	ErrBlankLastName  = errors.New("vet last name must not be blank")
)

// Vet is a veterinarian together with the specialties they practice.
type Vet struct {
	ID          int64
	FirstName   string
	LastName    string
	Specialties []string
}

// NewVet constructs a vet, enforcing name invariants.
func NewVet(id int64, firstName, lastName string, specialties ...string) (*Vet, error) {
	vet := &Vet{ID: id}
	if err := vet.Rename(firstName, lastName); err != nil {
		return nil, err
	}
	vet.SetSpecialties(specialties)
	return vet, nil
}

// Rename updates the vet's name.
func (v *Vet) Rename(firstName, lastName string) error {
	if strings.TrimSpace(firstName) == "" {
		return ErrBlankFirstName
	}
	if strings.TrimSpace(lastName) == "" {
		return ErrBlankLastName
	}
	v.FirstName = firstName
	v.LastName = lastName
	return nil
}

// SetSpecialties replaces the specialty list. Blanks are dropped, duplicates
// collapse, and the result is sorted by name.
func (v *Vet) SetSpecialties(specialties []string) {
	seen := make(map[string]struct{}, len(specialties))
	cleaned := make([]string, 0, len(specialties))
	for _, specialty := range specialties {
		name := strings.TrimSpace(specialty)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		cleaned = append(cleaned, name)
	}
	sort.Strings(cleaned)
	v.Specialties = cleaned
}

// NrOfSpecialties reports how many specialties the vet practices.
func (v *Vet) NrOfSpecialties() int {
	return len(v.Specialties)
}
