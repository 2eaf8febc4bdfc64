package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	ownermemory "github.com/Apurer/go-petclinic-server/internal/domains/owners/adapters/memory"
	ownertypes "github.com/Apurer/go-petclinic-server/internal/domains/owners/application/types"
	"github.com/Apurer/go-petclinic-server/internal/domains/owners/domain"
	"github.com/Apurer/go-petclinic-server/internal/domains/owners/ports"
	"github.com/Apurer/go-petclinic-server/internal/shared/forms"
)

// newClinicFixture seeds owner 1 with pets "petty" (id 1) and "doggy" (id 2)
// and a type catalog holding hamster (id 3).
func newClinicFixture(t *testing.T) (*ownermemory.Repository, *Service) {
	t.Helper()
	repo := ownermemory.NewRepository().WithPetTypes(domain.PetType{ID: 3, Name: "hamster"})

	owner, err := domain.NewOwner(1, "George", "Franklin", "110 W. Liberty St.", "Madison", "6085551023")
	require.NoError(t, err)
	require.NoError(t, owner.AddPet(&domain.Pet{ID: 1, Name: "petty"}))
	require.NoError(t, owner.AddPet(&domain.Pet{ID: 2, Name: "doggy"}))
	_, err = repo.Save(context.Background(), owner)
	require.NoError(t, err)

	return repo, NewService(repo)
}

func TestInitPetForm(t *testing.T) {
	_, svc := newClinicFixture(t)

	view, err := svc.InitPetForm(context.Background(), ownertypes.OwnerRef{OwnerID: 1})
	require.NoError(t, err)
	require.True(t, view.Pet.New)
	require.Empty(t, view.Pet.Name)
	require.Equal(t, []domain.PetType{{ID: 3, Name: "hamster"}}, view.Types)
	require.Equal(t, int64(1), view.Owner.Entity.ID)
	require.Nil(t, view.Errors)
}

func TestInitPetForm_UnknownOwner(t *testing.T) {
	_, svc := newClinicFixture(t)

	_, err := svc.InitPetForm(context.Background(), ownertypes.OwnerRef{OwnerID: 99})
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestInitPetUpdateForm(t *testing.T) {
	_, svc := newClinicFixture(t)

	view, err := svc.InitPetUpdateForm(context.Background(), ownertypes.PetRef{OwnerID: 1, PetID: 1})
	require.NoError(t, err)
	require.False(t, view.Pet.New)
	require.Equal(t, int64(1), view.Pet.ID)
	require.Equal(t, "petty", view.Pet.Name)

	_, err = svc.InitPetUpdateForm(context.Background(), ownertypes.PetRef{OwnerID: 1, PetID: 99})
	require.ErrorIs(t, err, ErrPetNotFound)
}

func TestSubmitPetForm_CreationSuccess(t *testing.T) {
	repo, svc := newClinicFixture(t)

	decision, err := svc.SubmitPetForm(context.Background(), ownertypes.PetFormSubmission{
		OwnerID:   1,
		Name:      "Betty",
		Type:      "hamster",
		BirthDate: "2015-02-12",
	})
	require.NoError(t, err)
	require.True(t, decision.Saved)
	require.Equal(t, int64(1), decision.OwnerID)
	require.NotZero(t, decision.PetID)
	require.Nil(t, decision.Rejected)

	stored, err := repo.FindByID(context.Background(), 1)
	require.NoError(t, err)
	saved := stored.Entity.PetNamed("Betty", false)
	require.NotNil(t, saved)
	require.Equal(t, decision.PetID, saved.ID)
	require.Equal(t, "hamster", saved.Type.Name)
	require.Equal(t, time.Date(2015, time.February, 12, 0, 0, 0, 0, time.UTC), *saved.BirthDate)
}

func TestSubmitPetForm_CreationWithoutBirthDate(t *testing.T) {
	repo, svc := newClinicFixture(t)

	decision, err := svc.SubmitPetForm(context.Background(), ownertypes.PetFormSubmission{
		OwnerID: 1,
		Name:    "Betty",
		Type:    "hamster",
	})
	require.NoError(t, err)
	require.True(t, decision.Saved)

	stored, err := repo.FindByID(context.Background(), 1)
	require.NoError(t, err)
	require.Nil(t, stored.Entity.PetNamed("Betty", false).BirthDate)
}

func TestSubmitPetForm_BlankNameRejected(t *testing.T) {
	repo, svc := newClinicFixture(t)

	decision, err := svc.SubmitPetForm(context.Background(), ownertypes.PetFormSubmission{
		OwnerID:   1,
		Name:      "\t \n",
		BirthDate: "2015-02-12",
	})
	require.NoError(t, err)
	require.False(t, decision.Saved)
	require.NotNil(t, decision.Rejected)

	errs := decision.Rejected.Errors
	require.True(t, errs.HasObjectErrors(ownertypes.FormObjectPet))
	require.False(t, errs.HasObjectErrors(ownertypes.FormObjectOwner))
	require.Contains(t, errs.FieldErrors(ownertypes.FormObjectPet), forms.FieldError{Field: "name", Code: "required"})

	// submitted value is echoed back untouched
	require.Equal(t, "\t \n", decision.Rejected.Pet.Name)
	require.True(t, decision.Rejected.Pet.New)

	stored, err := repo.FindByID(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, stored.Entity.Pets, 2)
}

func TestSubmitPetForm_DuplicateNameRejected(t *testing.T) {
	_, svc := newClinicFixture(t)

	decision, err := svc.SubmitPetForm(context.Background(), ownertypes.PetFormSubmission{
		OwnerID:   1,
		Name:      "petty",
		BirthDate: "2015-02-12",
	})
	require.NoError(t, err)
	require.NotNil(t, decision.Rejected)
	require.Contains(t, decision.Rejected.Errors.FieldErrors(ownertypes.FormObjectPet), forms.FieldError{Field: "name", Code: "duplicate"})
	require.False(t, decision.Rejected.Errors.HasObjectErrors(ownertypes.FormObjectOwner))
}

func TestSubmitPetForm_DuplicateNameIgnoresCase(t *testing.T) {
	_, svc := newClinicFixture(t)

	decision, err := svc.SubmitPetForm(context.Background(), ownertypes.PetFormSubmission{
		OwnerID:   1,
		Name:      "  PETTY  ",
		Type:      "hamster",
		BirthDate: "2015-02-12",
	})
	require.NoError(t, err)
	require.NotNil(t, decision.Rejected)
	require.Contains(t, decision.Rejected.Errors.FieldErrors(ownertypes.FormObjectPet), forms.FieldError{Field: "name", Code: "duplicate"})
}

func TestSubmitPetForm_MissingTypeRejected(t *testing.T) {
	_, svc := newClinicFixture(t)

	decision, err := svc.SubmitPetForm(context.Background(), ownertypes.PetFormSubmission{
		OwnerID:   1,
		Name:      "Betty",
		BirthDate: "2015-02-12",
	})
	require.NoError(t, err)
	require.NotNil(t, decision.Rejected)

	errs := decision.Rejected.Errors
	require.Contains(t, errs.FieldErrors(ownertypes.FormObjectPet), forms.FieldError{Field: "type", Code: "required"})
	require.False(t, errs.HasFieldError(ownertypes.FormObjectPet, "name"))
}

func TestSubmitPetForm_UnknownTypeRejected(t *testing.T) {
	_, svc := newClinicFixture(t)

	decision, err := svc.SubmitPetForm(context.Background(), ownertypes.PetFormSubmission{
		OwnerID: 1,
		Name:    "Betty",
		Type:    "unicorn",
	})
	require.NoError(t, err)
	require.NotNil(t, decision.Rejected)
	require.Contains(t, decision.Rejected.Errors.FieldErrors(ownertypes.FormObjectPet), forms.FieldError{Field: "type", Code: "typeMismatch"})
}

func TestSubmitPetForm_FutureBirthDateRejected(t *testing.T) {
	_, svc := newClinicFixture(t)
	svc.WithClock(func() time.Time {
		return time.Date(2015, time.March, 1, 10, 30, 0, 0, time.UTC)
	})

	decision, err := svc.SubmitPetForm(context.Background(), ownertypes.PetFormSubmission{
		OwnerID:   1,
		Name:      "Betty",
		Type:      "hamster",
		BirthDate: "2015-04-01",
	})
	require.NoError(t, err)
	require.NotNil(t, decision.Rejected)
	require.Contains(t, decision.Rejected.Errors.FieldErrors(ownertypes.FormObjectPet), forms.FieldError{Field: "birthDate", Code: "typeMismatch.birthDate"})
}

func TestSubmitPetForm_BirthDateTodayAccepted(t *testing.T) {
	_, svc := newClinicFixture(t)
	svc.WithClock(func() time.Time {
		return time.Date(2015, time.March, 1, 23, 59, 0, 0, time.UTC)
	})

	decision, err := svc.SubmitPetForm(context.Background(), ownertypes.PetFormSubmission{
		OwnerID:   1,
		Name:      "Betty",
		Type:      "hamster",
		BirthDate: "2015-03-01",
	})
	require.NoError(t, err)
	require.True(t, decision.Saved)
}

func TestSubmitPetForm_UpdateSuccess(t *testing.T) {
	repo, svc := newClinicFixture(t)

	decision, err := svc.SubmitPetForm(context.Background(), ownertypes.PetFormSubmission{
		OwnerID:   1,
		PetID:     1,
		Name:      "Betty",
		Type:      "hamster",
		BirthDate: "2015-02-12",
	})
	require.NoError(t, err)
	require.True(t, decision.Saved)
	require.Equal(t, int64(1), decision.PetID)

	stored, err := repo.FindByID(context.Background(), 1)
	require.NoError(t, err)
	pet := stored.Entity.Pet(1)
	require.Equal(t, "Betty", pet.Name)
	require.Equal(t, int64(3), pet.Type.ID)
	require.Len(t, stored.Entity.Pets, 2)
}

func TestSubmitPetForm_UpdateMalformedBirthDateRejected(t *testing.T) {
	_, svc := newClinicFixture(t)

	decision, err := svc.SubmitPetForm(context.Background(), ownertypes.PetFormSubmission{
		OwnerID:   1,
		PetID:     1,
		Name:      " ",
		BirthDate: "2015/02/12",
	})
	require.NoError(t, err)
	require.NotNil(t, decision.Rejected)

	errs := decision.Rejected.Errors
	require.Contains(t, errs.FieldErrors(ownertypes.FormObjectPet), forms.FieldError{Field: "birthDate", Code: "typeMismatch"})
	require.Contains(t, errs.FieldErrors(ownertypes.FormObjectPet), forms.FieldError{Field: "name", Code: "required"})
	require.False(t, errs.HasObjectErrors(ownertypes.FormObjectOwner))
	require.Equal(t, "2015/02/12", decision.Rejected.Pet.BirthDate)
}

func TestSubmitPetForm_UpdateDuplicateAgainstSibling(t *testing.T) {
	_, svc := newClinicFixture(t)

	decision, err := svc.SubmitPetForm(context.Background(), ownertypes.PetFormSubmission{
		OwnerID: 1,
		PetID:   1,
		Name:    "doggy",
	})
	require.NoError(t, err)
	require.NotNil(t, decision.Rejected)
	require.Contains(t, decision.Rejected.Errors.FieldErrors(ownertypes.FormObjectPet), forms.FieldError{Field: "name", Code: "duplicate"})
}

func TestSubmitPetForm_UpdateKeepsOwnName(t *testing.T) {
	repo, svc := newClinicFixture(t)

	// give pet 1 a type first so the omitted type field stays legal
	first, err := svc.SubmitPetForm(context.Background(), ownertypes.PetFormSubmission{
		OwnerID: 1,
		PetID:   1,
		Name:    "petty",
		Type:    "hamster",
	})
	require.NoError(t, err)
	require.True(t, first.Saved)

	decision, err := svc.SubmitPetForm(context.Background(), ownertypes.PetFormSubmission{
		OwnerID: 1,
		PetID:   1,
		Name:    "PETTY",
	})
	require.NoError(t, err)
	require.True(t, decision.Saved)

	stored, err := repo.FindByID(context.Background(), 1)
	require.NoError(t, err)
	pet := stored.Entity.Pet(1)
	require.Equal(t, "PETTY", pet.Name)
	require.Equal(t, "hamster", pet.Type.Name)
}

func TestSubmitPetForm_UpdateClearsBirthDate(t *testing.T) {
	repo, svc := newClinicFixture(t)

	first, err := svc.SubmitPetForm(context.Background(), ownertypes.PetFormSubmission{
		OwnerID:   1,
		PetID:     1,
		Name:      "petty",
		Type:      "hamster",
		BirthDate: "2012-08-06",
	})
	require.NoError(t, err)
	require.True(t, first.Saved)

	decision, err := svc.SubmitPetForm(context.Background(), ownertypes.PetFormSubmission{
		OwnerID: 1,
		PetID:   1,
		Name:    "petty",
	})
	require.NoError(t, err)
	require.True(t, decision.Saved)

	stored, err := repo.FindByID(context.Background(), 1)
	require.NoError(t, err)
	require.Nil(t, stored.Entity.Pet(1).BirthDate)
}

func TestSubmitPetForm_UnknownOwner(t *testing.T) {
	_, svc := newClinicFixture(t)

	_, err := svc.SubmitPetForm(context.Background(), ownertypes.PetFormSubmission{
		OwnerID: 99,
		Name:    "Betty",
		Type:    "hamster",
	})
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestSubmitPetForm_UnknownPet(t *testing.T) {
	_, svc := newClinicFixture(t)

	_, err := svc.SubmitPetForm(context.Background(), ownertypes.PetFormSubmission{
		OwnerID: 1,
		PetID:   99,
		Name:    "Betty",
	})
	require.ErrorIs(t, err, ErrPetNotFound)
}
