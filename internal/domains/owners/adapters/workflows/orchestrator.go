package workflows

import (
	"context"
	"errors"
	"fmt"
	"time"

	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"

	ownertypes "github.com/Apurer/go-petclinic-server/internal/domains/owners/application/types"
	"github.com/Apurer/go-petclinic-server/internal/domains/owners/ports"
	ownerworkflows "github.com/Apurer/go-petclinic-server/internal/platform/temporal/workflows/owners"
)

var (
	_ ports.WorkflowOrchestrator = (*TemporalPetWorkflows)(nil)
	_ ports.WorkflowOrchestrator = (*InlinePetWorkflows)(nil)
)

// TemporalPetWorkflows starts pet registration workflows on a Temporal cluster.
type TemporalPetWorkflows struct {
	client    client.Client
	taskQueue string
}

// NewTemporalPetWorkflows wires a Temporal client into the orchestrator.
func NewTemporalPetWorkflows(c client.Client) *TemporalPetWorkflows {
	return &TemporalPetWorkflows{client: c, taskQueue: ownerworkflows.PetRegistrationTaskQueue}
}

// RegisterPet starts the Temporal workflow that runs the pet form pipeline.
func (o *TemporalPetWorkflows) RegisterPet(ctx context.Context, submission ownertypes.PetFormSubmission) (*ownertypes.PetFormDecision, error) {
	if o == nil || o.client == nil {
		return nil, errors.New("temporal pet workflows not configured")
	}
	traceComponent := workflowTraceComponent(ctx)
	workflowID := buildPetRegistrationWorkflowID(submission, traceComponent)
	options := client.StartWorkflowOptions{
		ID:        workflowID,
		TaskQueue: o.taskQueue,
	}
	run, err := o.client.ExecuteWorkflow(
		ctx,
		options,
		ownerworkflows.PetRegistrationWorkflow,
		ownerworkflows.PetRegistrationWorkflowInput{Command: submission, TraceID: traceComponent},
	)
	if err != nil {
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if errors.As(err, &alreadyStarted) {
			// Same workflow ID means the same submission attempt; attach to it.
			existingRun := o.client.GetWorkflow(ctx, workflowID, alreadyStarted.RunId)
			var decision ownertypes.PetFormDecision
			if err := existingRun.Get(ctx, &decision); err != nil {
				return nil, err
			}
			return &decision, nil
		}
		return nil, err
	}
	var decision ownertypes.PetFormDecision
	if err := run.Get(ctx, &decision); err != nil {
		return nil, err
	}
	return &decision, nil
}

// InlinePetWorkflows executes the service directly without Temporal, useful for tests or dev fallbacks.
type InlinePetWorkflows struct {
	service ports.Service
}

// NewInlinePetWorkflows wraps the owners service for synchronous execution.
func NewInlinePetWorkflows(service ports.Service) *InlinePetWorkflows {
	return &InlinePetWorkflows{service: service}
}

// RegisterPet delegates to the application service without durable orchestration.
func (o *InlinePetWorkflows) RegisterPet(ctx context.Context, submission ownertypes.PetFormSubmission) (*ownertypes.PetFormDecision, error) {
	if o == nil || o.service == nil {
		return nil, errors.New("inline pet workflows not configured")
	}
	return o.service.SubmitPetForm(ctx, submission)
}

func buildPetRegistrationWorkflowID(submission ownertypes.PetFormSubmission, traceComponent string) string {
	if submission.PetID != 0 {
		return fmt.Sprintf("pet-registration-%d-%d-%s", submission.OwnerID, submission.PetID, traceComponent)
	}
	return fmt.Sprintf("pet-registration-%d-new-%s", submission.OwnerID, traceComponent)
}

func workflowTraceComponent(ctx context.Context) string {
	traceComponent := workflowTraceID(ctx)
	if traceComponent != "" {
		return traceComponent
	}
	return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
}

func workflowTraceID(ctx context.Context) string {
	span := oteltrace.SpanFromContext(ctx)
	if span == nil {
		return ""
	}
	spanCtx := span.SpanContext()
	if !spanCtx.IsValid() {
		return ""
	}
	traceID := spanCtx.TraceID()
	if !traceID.IsValid() {
		return ""
	}
	return traceID.String()
}
