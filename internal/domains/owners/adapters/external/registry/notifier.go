package registry

import (
	"context"
	"errors"

	registryclient "github.com/Apurer/go-petclinic-server/internal/clients/http/registry"
	ownertypes "github.com/Apurer/go-petclinic-server/internal/domains/owners/application/types"
	"github.com/Apurer/go-petclinic-server/internal/domains/owners/ports"
)

// Notifier implements the outbound registry port.
type Notifier struct {
	client *registryclient.Client
}

// NewNotifier wires a registry HTTP client into a notification adapter.
func NewNotifier(client *registryclient.Client) *Notifier {
	return &Notifier{client: client}
}

// NotifyPetRegistered pushes the registration to the registry API.
func (n *Notifier) NotifyPetRegistered(ctx context.Context, registration ownertypes.PetRegistration) error {
	if n == nil || n.client == nil {
		return errors.New("registry notifier not configured")
	}
	return n.client.RegisterPet(ctx, ToPayload(registration))
}

// ToPayload converts the registration into the registry wire shape.
func ToPayload(registration ownertypes.PetRegistration) registryclient.RegistrationPayload {
	return registryclient.RegistrationPayload{
		OwnerID:   registration.OwnerID,
		PetID:     registration.PetID,
		OwnerName: registration.OwnerName,
		PetName:   registration.PetName,
		PetType:   registration.PetType,
		BirthDate: registration.BirthDate,
	}
}

var _ ports.RegistryNotifier = (*Notifier)(nil)
