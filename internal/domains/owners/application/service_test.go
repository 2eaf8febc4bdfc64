package application

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	ownermemory "github.com/Apurer/go-petclinic-server/internal/domains/owners/adapters/memory"
	ownertypes "github.com/Apurer/go-petclinic-server/internal/domains/owners/application/types"
	"github.com/Apurer/go-petclinic-server/internal/domains/owners/domain"
	"github.com/Apurer/go-petclinic-server/internal/domains/owners/ports"
	"github.com/Apurer/go-petclinic-server/internal/shared/forms"
)

func TestGetOwner(t *testing.T) {
	_, svc := newClinicFixture(t)

	owner, err := svc.GetOwner(context.Background(), ownertypes.OwnerRef{OwnerID: 1})
	require.NoError(t, err)
	require.Equal(t, "Franklin", owner.Entity.LastName)
	require.Len(t, owner.Entity.Pets, 2)
}

func TestGetOwner_NotFound(t *testing.T) {
	_, svc := newClinicFixture(t)

	_, err := svc.GetOwner(context.Background(), ownertypes.OwnerRef{OwnerID: 42})
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestSubmitOwnerForm_CreationSuccess(t *testing.T) {
	repo, svc := newClinicFixture(t)

	decision, err := svc.SubmitOwnerForm(context.Background(), ownertypes.OwnerFormSubmission{
		FirstName: "Joe",
		LastName:  "Bloggs",
		Address:   "123 Caramel Street",
		City:      "London",
		Telephone: "0131676163",
	})
	require.NoError(t, err)
	require.True(t, decision.Saved)
	require.NotZero(t, decision.OwnerID)

	stored, err := repo.FindByID(context.Background(), decision.OwnerID)
	require.NoError(t, err)
	require.Equal(t, "Bloggs", stored.Entity.LastName)
}

func TestSubmitOwnerForm_MissingFieldsRejected(t *testing.T) {
	_, svc := newClinicFixture(t)

	decision, err := svc.SubmitOwnerForm(context.Background(), ownertypes.OwnerFormSubmission{
		FirstName: "Joe",
		LastName:  "Bloggs",
		City:      "London",
	})
	require.NoError(t, err)
	require.False(t, decision.Saved)
	require.NotNil(t, decision.Rejected)

	errs := decision.Rejected.Errors.FieldErrors(ownertypes.FormObjectOwner)
	require.Contains(t, errs, forms.FieldError{Field: "address", Code: "required"})
	require.Contains(t, errs, forms.FieldError{Field: "telephone", Code: "required"})
	require.NotContains(t, errs, forms.FieldError{Field: "firstName", Code: "required"})
}

func TestSubmitOwnerForm_InvalidTelephoneRejected(t *testing.T) {
	_, svc := newClinicFixture(t)

	decision, err := svc.SubmitOwnerForm(context.Background(), ownertypes.OwnerFormSubmission{
		FirstName: "Joe",
		LastName:  "Bloggs",
		Address:   "123 Caramel Street",
		City:      "London",
		Telephone: "123123",
	})
	require.NoError(t, err)
	require.NotNil(t, decision.Rejected)
	require.Contains(t, decision.Rejected.Errors.FieldErrors(ownertypes.FormObjectOwner), forms.FieldError{Field: "telephone", Code: "invalid"})
	// the submitted value comes back so the form can re-render it
	require.Equal(t, "123123", decision.Rejected.Owner.Telephone)
}

func TestSubmitOwnerForm_UpdateSuccess(t *testing.T) {
	repo, svc := newClinicFixture(t)

	decision, err := svc.SubmitOwnerForm(context.Background(), ownertypes.OwnerFormSubmission{
		OwnerID:   1,
		FirstName: "Joe",
		LastName:  "Bloggs",
		Address:   "123 Caramel Street",
		City:      "London",
		Telephone: "0161676163",
	})
	require.NoError(t, err)
	require.True(t, decision.Saved)
	require.Equal(t, int64(1), decision.OwnerID)

	stored, err := repo.FindByID(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, "Bloggs", stored.Entity.LastName)
	require.Equal(t, "0161676163", stored.Entity.Telephone)
	// pets survive an owner detail update
	require.Len(t, stored.Entity.Pets, 2)
}

func TestSubmitOwnerForm_UpdateUnknownOwner(t *testing.T) {
	_, svc := newClinicFixture(t)

	_, err := svc.SubmitOwnerForm(context.Background(), ownertypes.OwnerFormSubmission{
		OwnerID:   42,
		FirstName: "Joe",
		LastName:  "Bloggs",
		Address:   "123 Caramel Street",
		City:      "London",
		Telephone: "0161676163",
	})
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestInitOwnerUpdateForm(t *testing.T) {
	_, svc := newClinicFixture(t)

	view, err := svc.InitOwnerUpdateForm(context.Background(), ownertypes.OwnerRef{OwnerID: 1})
	require.NoError(t, err)
	require.Equal(t, "George", view.Owner.FirstName)
	require.Equal(t, "6085551023", view.Owner.Telephone)
	require.Nil(t, view.Errors)
}

func TestFindOwners_ByLastNamePrefix(t *testing.T) {
	repo, svc := newClinicFixture(t)
	seedOwnerNamed(t, repo, "Jean", "Coleman")
	seedOwnerNamed(t, repo, "Eduardo", "Rodriquez")

	result, err := svc.FindOwners(context.Background(), ownertypes.FindOwnersQuery{LastName: "col", Page: 1})
	require.NoError(t, err)
	require.Len(t, result.Owners, 1)
	require.Equal(t, "Coleman", result.Owners[0].Entity.LastName)
	require.Equal(t, 1, result.TotalPages)
	require.Equal(t, 1, result.TotalElements)
}

func TestFindOwners_EmptyPrefixMatchesAll(t *testing.T) {
	repo, svc := newClinicFixture(t)
	seedOwnerNamed(t, repo, "Jean", "Coleman")

	result, err := svc.FindOwners(context.Background(), ownertypes.FindOwnersQuery{})
	require.NoError(t, err)
	require.Len(t, result.Owners, 2)
	require.Equal(t, 2, result.TotalElements)
}

func TestFindOwners_Pagination(t *testing.T) {
	repo, svc := newClinicFixture(t)
	for i := 0; i < 7; i++ {
		seedOwnerNamed(t, repo, "Jean", fmt.Sprintf("Coleman%02d", i))
	}

	first, err := svc.FindOwners(context.Background(), ownertypes.FindOwnersQuery{LastName: "Coleman", Page: 1})
	require.NoError(t, err)
	require.Len(t, first.Owners, 5)
	require.Equal(t, 2, first.TotalPages)
	require.Equal(t, 7, first.TotalElements)

	second, err := svc.FindOwners(context.Background(), ownertypes.FindOwnersQuery{LastName: "Coleman", Page: 2})
	require.NoError(t, err)
	require.Len(t, second.Owners, 2)
	require.Equal(t, "Coleman05", second.Owners[0].Entity.LastName)
}

func TestFindOwners_NoMatches(t *testing.T) {
	_, svc := newClinicFixture(t)

	result, err := svc.FindOwners(context.Background(), ownertypes.FindOwnersQuery{LastName: "Unknown"})
	require.NoError(t, err)
	require.Empty(t, result.Owners)
	require.Zero(t, result.TotalElements)
}

func seedOwnerNamed(t *testing.T, repo *ownermemory.Repository, first, last string) {
	t.Helper()
	owner, err := domain.NewOwner(0, first, last, "2693 Commerce St.", "McFarland", "6085558763")
	require.NoError(t, err)
	_, err = repo.Save(context.Background(), owner)
	require.NoError(t, err)
}
