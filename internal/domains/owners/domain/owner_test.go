package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewOwner_Invariants(t *testing.T) {
	owner, err := NewOwner(1, "George", "Franklin", "110 W. Liberty St.", "Madison", "6085551023")
	require.NoError(t, err)
	require.Equal(t, "Franklin", owner.LastName)

	_, err = NewOwner(0, " ", "Franklin", "110 W. Liberty St.", "Madison", "6085551023")
	require.ErrorIs(t, err, ErrBlankFirstName)

	_, err = NewOwner(0, "George", "Franklin", "110 W. Liberty St.", "Madison", "555-1023")
	require.ErrorIs(t, err, ErrInvalidTelephone)
}

func TestOwner_PetNamedIgnoresCaseAndWhitespace(t *testing.T) {
	owner, err := NewOwner(1, "George", "Franklin", "110 W. Liberty St.", "Madison", "6085551023")
	require.NoError(t, err)

	saved, err := NewPet(1, "petty", PetType{ID: 2, Name: "dog"})
	require.NoError(t, err)
	require.NoError(t, owner.AddPet(saved))

	require.NotNil(t, owner.PetNamed("petty", false))
	require.NotNil(t, owner.PetNamed("PETTY", false))
	require.NotNil(t, owner.PetNamed("  petty  ", false))
	require.Nil(t, owner.PetNamed("doggy", false))
	require.Nil(t, owner.PetNamed("", false))
}

func TestOwner_PetNamedSkipsUnsavedWhenAsked(t *testing.T) {
	owner, err := NewOwner(1, "George", "Franklin", "110 W. Liberty St.", "Madison", "6085551023")
	require.NoError(t, err)

	unsaved, err := NewPet(0, "Betty", PetType{ID: 3, Name: "hamster"})
	require.NoError(t, err)
	require.NoError(t, owner.AddPet(unsaved))

	require.Nil(t, owner.PetNamed("Betty", true))
	require.NotNil(t, owner.PetNamed("Betty", false))
}

func TestPet_BirthDateNormalizedToUTCDate(t *testing.T) {
	pet, err := NewPet(1, "Basil", PetType{ID: 6, Name: "hamster"})
	require.NoError(t, err)
	require.Nil(t, pet.BirthDate)

	loc := time.FixedZone("CET", 3600)
	pet.UpdateBirthDate(time.Date(2012, time.August, 6, 23, 30, 0, 0, loc))
	require.Equal(t, time.Date(2012, time.August, 6, 0, 0, 0, 0, time.UTC), *pet.BirthDate)

	pet.ClearBirthDate()
	require.Nil(t, pet.BirthDate)
}

func TestPet_Invariants(t *testing.T) {
	_, err := NewPet(0, "\t \n", PetType{ID: 1, Name: "cat"})
	require.ErrorIs(t, err, ErrBlankPetName)

	_, err = NewPet(0, "Leo", PetType{})
	require.ErrorIs(t, err, ErrMissingType)

	pet, err := NewPet(7, "Samantha", PetType{ID: 1, Name: "cat"})
	require.NoError(t, err)

	_, err = NewVisit(time.Now(), "   ")
	require.ErrorIs(t, err, ErrBlankVisitDescription)

	visit, err := NewVisit(time.Date(2013, time.January, 1, 15, 4, 5, 0, time.UTC), "rabies shot")
	require.NoError(t, err)
	require.NoError(t, pet.AddVisit(visit))
	require.Len(t, pet.Visits, 1)
	require.Equal(t, time.Date(2013, time.January, 1, 0, 0, 0, 0, time.UTC), pet.Visits[0].Date)
}
