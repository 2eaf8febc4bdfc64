package owners

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"

	ownertypes "github.com/Apurer/go-petclinic-server/internal/domains/owners/application/types"
	ownerports "github.com/Apurer/go-petclinic-server/internal/domains/owners/ports"
)

const (
	// RegisterPetActivityName runs the pet form pipeline against the owners service.
	RegisterPetActivityName = "owners.activities.RegisterPet"
	// NotifyPetRegistryActivityName reports a saved pet to the national registry.
	NotifyPetRegistryActivityName = "owners.activities.NotifyPetRegistry"
)

// Activities groups activities that operate on the owners bounded context.
type Activities struct {
	service  ownerports.Service
	repo     ownerports.Repository
	registry ownerports.RegistryNotifier
}

// NewActivities wires the owners collaborators into the Temporal activities bundle.
func NewActivities(service ownerports.Service, repo ownerports.Repository, registry ownerports.RegistryNotifier) *Activities {
	return &Activities{
		service:  service,
		repo:     repo,
		registry: registry,
	}
}

// RegisterPet runs the pet form pipeline and returns its decision. Rejected
// submissions come back inside the decision, not as activity failures, so the
// workflow does not retry validation outcomes.
func (a *Activities) RegisterPet(ctx context.Context, input ownertypes.PetFormSubmission) (*ownertypes.PetFormDecision, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("pet registration activity not initialized", "ownerId", input.OwnerID)
		return nil, errors.New("pet registration activity not initialized")
	}
	logger.Info("RegisterPet activity started", "ownerId", input.OwnerID, "petId", input.PetID)
	decision, err := a.service.SubmitPetForm(ctx, input)
	if err != nil {
		logger.Error("RegisterPet activity failed", "ownerId", input.OwnerID, "error", err)
		return nil, err
	}
	if decision != nil && decision.Saved {
		logger.Info("RegisterPet activity completed", "ownerId", decision.OwnerID, "petId", decision.PetID)
	} else {
		logger.Info("RegisterPet activity rejected submission", "ownerId", input.OwnerID)
	}
	return decision, nil
}

// NotifyPetRegistry loads the saved pet and reports it to the registry.
func (a *Activities) NotifyPetRegistry(ctx context.Context, input ownertypes.PetRef) error {
	logger := activity.GetLogger(ctx)
	if a == nil {
		logger.Error("pet registry activity not initialized", "petId", input.PetID)
		return errors.New("pet registry activity not initialized")
	}
	if a.registry == nil {
		logger.Info("pet registry not configured; skipping", "petId", input.PetID)
		return nil
	}
	if a.repo == nil {
		logger.Error("owner repository not configured for registry notification", "petId", input.PetID)
		return errors.New("owner repository not configured for registry notification")
	}

	var hb notifyHeartbeat
	if activity.HasHeartbeatDetails(ctx) {
		_ = activity.GetHeartbeatDetails(ctx, &hb)
	}
	if hb.Completed {
		logger.Info("NotifyPetRegistry already completed in prior attempt; skipping", "petId", input.PetID)
		return nil
	}

	logger.Info("NotifyPetRegistry activity started", "ownerId", input.OwnerID, "petId", input.PetID)
	owner, err := a.repo.FindByID(ctx, input.OwnerID)
	if err != nil {
		logger.Error("NotifyPetRegistry failed to load owner", "ownerId", input.OwnerID, "error", err)
		return err
	}
	pet := owner.Entity.Pet(input.PetID)
	if pet == nil {
		logger.Error("NotifyPetRegistry missing pet", "ownerId", input.OwnerID, "petId", input.PetID)
		return errors.New("pet missing for registry notification")
	}
	registration := ownertypes.NewPetRegistration(owner.Entity, pet)
	if err := a.registry.NotifyPetRegistered(ctx, registration); err != nil {
		logger.Error("NotifyPetRegistry failed", "petId", input.PetID, "error", err)
		return err
	}
	activity.RecordHeartbeat(ctx, notifyHeartbeat{Completed: true})
	logger.Info("NotifyPetRegistry activity completed", "petId", input.PetID)
	return nil
}

type notifyHeartbeat struct {
	Completed bool
}
