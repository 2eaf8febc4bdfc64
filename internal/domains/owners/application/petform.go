package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	types "github.com/Apurer/go-petclinic-server/internal/domains/owners/application/types"
	"github.com/Apurer/go-petclinic-server/internal/domains/owners/domain"
	"github.com/Apurer/go-petclinic-server/internal/shared/forms"
)

// InitPetForm loads the owner and the available types for a blank pet form.
func (s *Service) InitPetForm(ctx context.Context, ref types.OwnerRef) (*types.PetFormView, error) {
	owner, err := s.repo.FindByID(ctx, ref.OwnerID)
	if err != nil {
		return nil, mapError(err)
	}
	petTypes, err := s.repo.FindPetTypes(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	return &types.PetFormView{Owner: owner, Pet: types.PetFormState{New: true}, Types: petTypes}, nil
}

// InitPetUpdateForm loads an existing pet into the pet form.
func (s *Service) InitPetUpdateForm(ctx context.Context, ref types.PetRef) (*types.PetFormView, error) {
	owner, err := s.repo.FindByID(ctx, ref.OwnerID)
	if err != nil {
		return nil, mapError(err)
	}
	pet := owner.Entity.Pet(ref.PetID)
	if pet == nil {
		return nil, fmt.Errorf("%w: %d", ErrPetNotFound, ref.PetID)
	}
	petTypes, err := s.repo.FindPetTypes(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	state := types.PetFormState{ID: pet.ID, Name: pet.Name}
	if pet.Type != nil {
		state.Type = pet.Type.Name
	}
	if pet.BirthDate != nil {
		state.BirthDate = forms.FormatDate(*pet.BirthDate)
	}
	return &types.PetFormView{Owner: owner, Pet: state, Types: petTypes}, nil
}

// SubmitPetForm runs the pet form pipeline: bind the submitted values,
// validate structure then business rules, and persist only a clean form.
// Field rejections come back inside the decision so the caller re-renders the
// form; errors are reserved for boundary failures such as unknown owners.
func (s *Service) SubmitPetForm(ctx context.Context, submission types.PetFormSubmission) (*types.PetFormDecision, error) {
	owner, err := s.repo.FindByID(ctx, submission.OwnerID)
	if err != nil {
		return nil, mapError(err)
	}
	petTypes, err := s.repo.FindPetTypes(ctx)
	if err != nil {
		return nil, mapError(err)
	}

	isNew := submission.PetID == 0
	var existing *domain.Pet
	if !isNew {
		existing = owner.Entity.Pet(submission.PetID)
		if existing == nil {
			return nil, fmt.Errorf("%w: %d", ErrPetNotFound, submission.PetID)
		}
	}

	result := forms.NewResult()
	boundType, typeBound := bindPetType(result, petTypes, submission.Type)
	birthDate, dateBound := bindBirthDate(result, submission.BirthDate)
	validatePetStructure(result, submission, existing)
	s.validatePetBusiness(result, owner.Entity, submission, birthDate, dateBound)

	if result.HasErrors() {
		return &types.PetFormDecision{
			OwnerID: owner.Entity.ID,
			PetID:   submission.PetID,
			Rejected: &types.PetFormView{
				Owner:  owner,
				Pet:    submittedPetState(submission, isNew),
				Types:  petTypes,
				Errors: result,
			},
		}, nil
	}

	if isNew {
		pet, err := domain.NewPet(0, submission.Name, boundType)
		if err != nil {
			return nil, mapError(err)
		}
		if dateBound {
			pet.UpdateBirthDate(birthDate)
		}
		if err := owner.Entity.AddPet(pet); err != nil {
			return nil, mapError(err)
		}
	} else {
		if err := existing.Rename(submission.Name); err != nil {
			return nil, mapError(err)
		}
		if typeBound {
			if err := existing.AssignType(boundType); err != nil {
				return nil, mapError(err)
			}
		}
		if dateBound {
			existing.UpdateBirthDate(birthDate)
		} else {
			existing.ClearBirthDate()
		}
	}

	saved, err := s.repo.Save(ctx, owner.Entity)
	if err != nil {
		return nil, mapError(err)
	}
	decision := &types.PetFormDecision{Saved: true, OwnerID: saved.Entity.ID, PetID: submission.PetID}
	if isNew {
		if created := saved.Entity.PetNamed(submission.Name, false); created != nil {
			decision.PetID = created.ID
		}
	}
	return decision, nil
}

// bindPetType resolves the submitted type name against the clinic's types,
// ignoring case. An unknown non-empty name gets the binder's typeMismatch code.
func bindPetType(result *forms.Result, petTypes []domain.PetType, raw string) (domain.PetType, bool) {
	if !forms.HasText(raw) {
		return domain.PetType{}, false
	}
	wanted := strings.ToLower(strings.TrimSpace(raw))
	for _, t := range petTypes {
		if strings.ToLower(t.Name) == wanted {
			return t, true
		}
	}
	result.Reject(types.FormObjectPet, "type", types.CodeTypeMismatch)
	return domain.PetType{}, false
}

// bindBirthDate parses the optional birth date field. A malformed value gets
// the binder's typeMismatch code and is treated as absent afterwards.
func bindBirthDate(result *forms.Result, raw string) (time.Time, bool) {
	if !forms.HasText(raw) {
		return time.Time{}, false
	}
	parsed, err := forms.ParseDate(raw)
	if err != nil {
		result.Reject(types.FormObjectPet, "birthDate", types.CodeTypeMismatch)
		return time.Time{}, false
	}
	return parsed, true
}

// validatePetStructure enforces the presence rules. The type is mandatory for
// a new pet; an existing pet only needs one submitted when it would otherwise
// end up typeless.
func validatePetStructure(result *forms.Result, submission types.PetFormSubmission, existing *domain.Pet) {
	if !forms.HasText(submission.Name) {
		result.Reject(types.FormObjectPet, "name", types.CodeRequired)
	}
	if !forms.HasText(submission.Type) && (existing == nil || existing.Type == nil) {
		result.Reject(types.FormObjectPet, "type", types.CodeRequired)
	}
}

// validatePetBusiness gates each rule on its own fields so a rejected field
// does not hide findings on the others.
func (s *Service) validatePetBusiness(result *forms.Result, owner *domain.Owner, submission types.PetFormSubmission, birthDate time.Time, dateBound bool) {
	if forms.HasText(submission.Name) {
		if submission.PetID == 0 {
			if owner.PetNamed(submission.Name, true) != nil {
				result.Reject(types.FormObjectPet, "name", types.CodeDuplicate)
			}
		} else if match := owner.PetNamed(submission.Name, false); match != nil && match.ID != submission.PetID {
			result.Reject(types.FormObjectPet, "name", types.CodeDuplicate)
		}
	}
	if dateBound && birthDate.After(s.today()) {
		result.Reject(types.FormObjectPet, "birthDate", types.CodeTypeMismatchBirthDate)
	}
}

func submittedPetState(submission types.PetFormSubmission, isNew bool) types.PetFormState {
	return types.PetFormState{
		ID:        submission.PetID,
		Name:      submission.Name,
		Type:      submission.Type,
		BirthDate: submission.BirthDate,
		New:       isNew,
	}
}
