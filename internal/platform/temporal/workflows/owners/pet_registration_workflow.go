package owners

import (
	"go.temporal.io/sdk/workflow"

	ownertypes "github.com/Apurer/go-petclinic-server/internal/domains/owners/application/types"
	"github.com/Apurer/go-petclinic-server/internal/platform/temporal/sequences"
)

const (
	// PetRegistrationWorkflowName is the public identifier for registering the workflow.
	PetRegistrationWorkflowName = "owners.workflows.PetRegistration"
	// PetRegistrationTaskQueue is the queue consumed by the worker processing owner workflows.
	PetRegistrationTaskQueue = "PET_REGISTRATION"
)

// PetRegistrationWorkflowInput captures the payload required to register a pet.
type PetRegistrationWorkflowInput struct {
	Command ownertypes.PetFormSubmission
	TraceID string
}

// PetRegistrationWorkflow orchestrates adding a pet to an owner and reporting
// the registration downstream.
func PetRegistrationWorkflow(ctx workflow.Context, input PetRegistrationWorkflowInput) (*ownertypes.PetFormDecision, error) {
	logger := workflow.GetLogger(ctx)
	ownerID := input.Command.OwnerID
	logger.Info("PetRegistrationWorkflow started", withTraceID(input.TraceID, "ownerId", ownerID)...)
	decision, err := sequences.RunPetRegistrationSequence(ctx, input.Command)
	if err != nil {
		logger.Error("PetRegistrationWorkflow failed", withTraceID(input.TraceID, "ownerId", ownerID, "error", err)...)
		return nil, err
	}
	if decision != nil && decision.Saved {
		logger.Info("PetRegistrationWorkflow completed", withTraceID(input.TraceID, "petId", decision.PetID)...)
	} else {
		logger.Info("PetRegistrationWorkflow completed", withTraceID(input.TraceID)...)
	}
	return decision, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
