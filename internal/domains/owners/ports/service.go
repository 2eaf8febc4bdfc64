package ports

import (
	"context"

	ownertypes "github.com/Apurer/go-petclinic-server/internal/domains/owners/application/types"
)

// Service defines the owners use cases exposed to adapters (inbound/driving port).
type Service interface {
	InitPetForm(ctx context.Context, ref ownertypes.OwnerRef) (*ownertypes.PetFormView, error)
	InitPetUpdateForm(ctx context.Context, ref ownertypes.PetRef) (*ownertypes.PetFormView, error)
	SubmitPetForm(ctx context.Context, submission ownertypes.PetFormSubmission) (*ownertypes.PetFormDecision, error)
	InitOwnerUpdateForm(ctx context.Context, ref ownertypes.OwnerRef) (*ownertypes.OwnerFormView, error)
	SubmitOwnerForm(ctx context.Context, submission ownertypes.OwnerFormSubmission) (*ownertypes.OwnerFormDecision, error)
	InitVisitForm(ctx context.Context, ref ownertypes.PetRef) (*ownertypes.VisitFormView, error)
	SubmitVisitForm(ctx context.Context, submission ownertypes.VisitFormSubmission) (*ownertypes.VisitFormDecision, error)
	GetOwner(ctx context.Context, ref ownertypes.OwnerRef) (*ownertypes.OwnerProjection, error)
	FindOwners(ctx context.Context, query ownertypes.FindOwnersQuery) (*ownertypes.OwnerSearchResult, error)
}
