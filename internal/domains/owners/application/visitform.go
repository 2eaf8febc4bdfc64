package application

import (
	"context"
	"fmt"

	types "github.com/Apurer/go-petclinic-server/internal/domains/owners/application/types"
	"github.com/Apurer/go-petclinic-server/internal/domains/owners/domain"
	"github.com/Apurer/go-petclinic-server/internal/shared/forms"
)

// InitVisitForm loads the pet and its visit history for a blank visit form.
// The date field defaults to today.
func (s *Service) InitVisitForm(ctx context.Context, ref types.PetRef) (*types.VisitFormView, error) {
	owner, err := s.repo.FindByID(ctx, ref.OwnerID)
	if err != nil {
		return nil, mapError(err)
	}
	pet := owner.Entity.Pet(ref.PetID)
	if pet == nil {
		return nil, fmt.Errorf("%w: %d", ErrPetNotFound, ref.PetID)
	}
	return &types.VisitFormView{
		Owner: owner,
		Pet:   pet,
		Visit: types.VisitFormState{Date: forms.FormatDate(s.today())},
	}, nil
}

// SubmitVisitForm validates and records a visit against an owned pet.
func (s *Service) SubmitVisitForm(ctx context.Context, submission types.VisitFormSubmission) (*types.VisitFormDecision, error) {
	owner, err := s.repo.FindByID(ctx, submission.OwnerID)
	if err != nil {
		return nil, mapError(err)
	}
	pet := owner.Entity.Pet(submission.PetID)
	if pet == nil {
		return nil, fmt.Errorf("%w: %d", ErrPetNotFound, submission.PetID)
	}

	result := forms.NewResult()
	visitDate := s.today()
	if forms.HasText(submission.Date) {
		parsed, err := forms.ParseDate(submission.Date)
		if err != nil {
			result.Reject(types.FormObjectVisit, "date", types.CodeTypeMismatch)
		} else {
			visitDate = parsed
		}
	}
	if !forms.HasText(submission.Description) {
		result.Reject(types.FormObjectVisit, "description", types.CodeRequired)
	}

	if result.HasErrors() {
		return &types.VisitFormDecision{
			OwnerID: owner.Entity.ID,
			Rejected: &types.VisitFormView{
				Owner:  owner,
				Pet:    pet,
				Visit:  types.VisitFormState{Date: submission.Date, Description: submission.Description},
				Errors: result,
			},
		}, nil
	}

	visit, err := domain.NewVisit(visitDate, submission.Description)
	if err != nil {
		return nil, mapError(err)
	}
	if err := pet.AddVisit(visit); err != nil {
		return nil, mapError(err)
	}
	if _, err := s.repo.Save(ctx, owner.Entity); err != nil {
		return nil, mapError(err)
	}
	return &types.VisitFormDecision{Saved: true, OwnerID: owner.Entity.ID}, nil
}
