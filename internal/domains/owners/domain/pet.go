package domain

import (
	"errors"
	"sort"
	"strings"
	"time"
)

var (
	ErrBlankPetName = errors.New("pet name is required")
	ErrMissingType  = errors.New("pet type is required")
)

// PetType classifies a pet. The set of types is managed by the clinic and
// loaded from the store, not hardcoded by callers.
type PetType struct {
	ID   int64
	Name string
}

// Pet belongs to an owner and records an optional birth date plus the visits
// booked for it.
type Pet struct {
	ID        int64
	Name      string
	BirthDate *time.Time
	Type      *PetType
	Visits    []Visit
}

// NewPet validates the invariants and builds a new Pet aggregate member.
func NewPet(id int64, name string, petType PetType) (*Pet, error) {
	p := &Pet{ID: id}
	if err := p.Rename(name); err != nil {
		return nil, err
	}
	if err := p.AssignType(petType); err != nil {
		return nil, err
	}
	return p, nil
}

// IsNew reports whether the pet has not been persisted yet.
func (p *Pet) IsNew() bool {
	return p.ID == 0
}

// Rename mutates the pet name ensuring the invariant.
func (p *Pet) Rename(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrBlankPetName
	}
	p.Name = name
	return nil
}

// AssignType sets the clinic-managed classification.
func (p *Pet) AssignType(petType PetType) error {
	if strings.TrimSpace(petType.Name) == "" {
		return ErrMissingType
	}
	assigned := petType
	p.Type = &assigned
	return nil
}

// UpdateBirthDate records the birth date, kept date-only in UTC.
func (p *Pet) UpdateBirthDate(birthDate time.Time) {
	normalized := time.Date(birthDate.Year(), birthDate.Month(), birthDate.Day(), 0, 0, 0, 0, time.UTC)
	p.BirthDate = &normalized
}

// ClearBirthDate removes the recorded birth date. Birth dates are optional.
func (p *Pet) ClearBirthDate() {
	p.BirthDate = nil
}

// AddVisit books a visit for the pet, keeping visits ordered newest first.
func (p *Pet) AddVisit(visit Visit) error {
	if strings.TrimSpace(visit.Description) == "" {
		return ErrBlankVisitDescription
	}
	p.Visits = append(p.Visits, visit)
	sort.SliceStable(p.Visits, func(i, j int) bool {
		return p.Visits[i].Date.After(p.Visits[j].Date)
	})
	return nil
}
