package ports

import (
	"context"

	ownertypes "github.com/Apurer/go-petclinic-server/internal/domains/owners/application/types"
)

// WorkflowOrchestrator exposes the durable workflow operations required by
// the owners bounded context.
type WorkflowOrchestrator interface {
	RegisterPet(ctx context.Context, submission ownertypes.PetFormSubmission) (*ownertypes.PetFormDecision, error)
}
