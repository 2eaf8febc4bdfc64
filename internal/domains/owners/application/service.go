package application

import (
	"context"
	"time"

	types "github.com/Apurer/go-petclinic-server/internal/domains/owners/application/types"
	"github.com/Apurer/go-petclinic-server/internal/domains/owners/domain"
	"github.com/Apurer/go-petclinic-server/internal/domains/owners/ports"
	"github.com/Apurer/go-petclinic-server/internal/shared/forms"
)

// ownersPageSize is the directory page length of the clinic UI.
const ownersPageSize = 5

// Service orchestrates the owners bounded context use cases.
type Service struct {
	repo ports.Repository
	now  func() time.Time
}

// NewService wires the owners service with its dependencies.
func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// WithClock overrides the time source used for date validation and defaults.
func (s *Service) WithClock(clock func() time.Time) *Service {
	if clock != nil {
		s.now = clock
	}
	return s
}

// GetOwner loads a single owner aggregate with its pets and visits.
func (s *Service) GetOwner(ctx context.Context, ref types.OwnerRef) (*types.OwnerProjection, error) {
	owner, err := s.repo.FindByID(ctx, ref.OwnerID)
	if err != nil {
		return nil, mapError(err)
	}
	return owner, nil
}

// FindOwners pages through owners whose last name starts with the queried prefix.
func (s *Service) FindOwners(ctx context.Context, query types.FindOwnersQuery) (*types.OwnerSearchResult, error) {
	page := query.Page
	if page < 1 {
		page = 1
	}
	result, err := s.repo.FindByLastName(ctx, query.LastName, page, ownersPageSize)
	if err != nil {
		return nil, mapError(err)
	}
	totalPages := (result.TotalElements + ownersPageSize - 1) / ownersPageSize
	return &types.OwnerSearchResult{
		Owners:        result.Owners,
		Page:          page,
		TotalPages:    totalPages,
		TotalElements: result.TotalElements,
	}, nil
}

// InitOwnerUpdateForm loads an existing owner into the owner form.
func (s *Service) InitOwnerUpdateForm(ctx context.Context, ref types.OwnerRef) (*types.OwnerFormView, error) {
	owner, err := s.repo.FindByID(ctx, ref.OwnerID)
	if err != nil {
		return nil, mapError(err)
	}
	entity := owner.Entity
	return &types.OwnerFormView{Owner: types.OwnerFormState{
		ID:        entity.ID,
		FirstName: entity.FirstName,
		LastName:  entity.LastName,
		Address:   entity.Address,
		City:      entity.City,
		Telephone: entity.Telephone,
	}}, nil
}

// SubmitOwnerForm runs the owner form pipeline for both creation and update.
// Field rejections come back inside the decision so the caller re-renders the
// form; errors are reserved for boundary failures such as unknown owners.
func (s *Service) SubmitOwnerForm(ctx context.Context, submission types.OwnerFormSubmission) (*types.OwnerFormDecision, error) {
	isNew := submission.OwnerID == 0
	var current *types.OwnerProjection
	if !isNew {
		loaded, err := s.repo.FindByID(ctx, submission.OwnerID)
		if err != nil {
			return nil, mapError(err)
		}
		current = loaded
	}

	result := forms.NewResult()
	validateOwnerFields(result, submission)
	if result.HasErrors() {
		return &types.OwnerFormDecision{
			OwnerID:  submission.OwnerID,
			Rejected: &types.OwnerFormView{Owner: submittedOwnerState(submission, isNew), Errors: result},
		}, nil
	}

	var target *domain.Owner
	if isNew {
		owner, err := domain.NewOwner(0, submission.FirstName, submission.LastName, submission.Address, submission.City, submission.Telephone)
		if err != nil {
			return nil, mapError(err)
		}
		target = owner
	} else {
		target = current.Entity
		if err := target.Rename(submission.FirstName, submission.LastName); err != nil {
			return nil, mapError(err)
		}
		if err := target.UpdateAddress(submission.Address, submission.City); err != nil {
			return nil, mapError(err)
		}
		if err := target.UpdateTelephone(submission.Telephone); err != nil {
			return nil, mapError(err)
		}
	}

	saved, err := s.repo.Save(ctx, target)
	if err != nil {
		return nil, mapError(err)
	}
	return &types.OwnerFormDecision{Saved: true, OwnerID: saved.Entity.ID}, nil
}

func validateOwnerFields(result *forms.Result, submission types.OwnerFormSubmission) {
	if !forms.HasText(submission.FirstName) {
		result.Reject(types.FormObjectOwner, "firstName", types.CodeRequired)
	}
	if !forms.HasText(submission.LastName) {
		result.Reject(types.FormObjectOwner, "lastName", types.CodeRequired)
	}
	if !forms.HasText(submission.Address) {
		result.Reject(types.FormObjectOwner, "address", types.CodeRequired)
	}
	if !forms.HasText(submission.City) {
		result.Reject(types.FormObjectOwner, "city", types.CodeRequired)
	}
	if !forms.HasText(submission.Telephone) {
		result.Reject(types.FormObjectOwner, "telephone", types.CodeRequired)
	} else if !domain.ValidTelephone(submission.Telephone) {
		result.Reject(types.FormObjectOwner, "telephone", types.CodeInvalid)
	}
}

func submittedOwnerState(submission types.OwnerFormSubmission, isNew bool) types.OwnerFormState {
	return types.OwnerFormState{
		ID:        submission.OwnerID,
		FirstName: submission.FirstName,
		LastName:  submission.LastName,
		Address:   submission.Address,
		City:      submission.City,
		Telephone: submission.Telephone,
		New:       isNew,
	}
}

// today truncates the clock to a date in UTC for form date comparisons.
func (s *Service) today() time.Time {
	now := s.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

var _ ports.Service = (*Service)(nil)
