package ports

import (
	"context"

	ownertypes "github.com/Apurer/go-petclinic-server/internal/domains/owners/application/types"
)

// RegistryNotifier pushes accepted pet registrations to the national pet
// registry. Implementations must be safe to retry.
type RegistryNotifier interface {
	NotifyPetRegistered(ctx context.Context, registration ownertypes.PetRegistration) error
}
