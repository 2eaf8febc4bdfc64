package application

import (
	"github.com/Apurer/go-petclinic-server/internal/domains/owners/ports"
)

// Port aliases the inbound owners port so transport adapters can depend on
// the application package alone.
type Port = ports.Service
