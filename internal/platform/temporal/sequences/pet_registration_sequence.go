package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	ownertypes "github.com/Apurer/go-petclinic-server/internal/domains/owners/application/types"
	owneractivities "github.com/Apurer/go-petclinic-server/internal/platform/temporal/activities/owners"
)

// RunPetRegistrationSequence executes the ordered set of activities that add a
// pet to an owner and report it to the registry.
func RunPetRegistrationSequence(ctx workflow.Context, input ownertypes.PetFormSubmission) (*ownertypes.PetFormDecision, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("pet registration sequence started", "ownerId", input.OwnerID, "petId", input.PetID)
	submitOptions := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    10 * time.Second,
			MaximumAttempts:    5,
		},
	}
	notifyOptions := workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    5 * time.Second,
			MaximumAttempts:    3,
		},
	}

	var decision ownertypes.PetFormDecision
	err := workflow.ExecuteActivity(workflow.WithActivityOptions(ctx, submitOptions), owneractivities.RegisterPetActivityName, input).Get(ctx, &decision)
	if err != nil {
		logger.Error("pet registration sequence failed", "ownerId", input.OwnerID, "error", err)
		return nil, err
	}
	if !decision.Saved {
		logger.Info("pet registration sequence rejected submission", "ownerId", input.OwnerID)
		return &decision, nil
	}
	logger.Info("pet registration sequence persisted", "ownerId", decision.OwnerID, "petId", decision.PetID)

	// Report to the registry with a separate retry policy.
	notifyInput := ownertypes.PetRef{OwnerID: decision.OwnerID, PetID: decision.PetID}
	if err := workflow.ExecuteActivity(workflow.WithActivityOptions(ctx, notifyOptions), owneractivities.NotifyPetRegistryActivityName, notifyInput).Get(ctx, nil); err != nil {
		logger.Error("pet registration sequence notification failed", "petId", decision.PetID, "error", err)
		return &decision, err
	}
	logger.Info("pet registration sequence notified registry", "petId", decision.PetID)
	return &decision, nil
}
