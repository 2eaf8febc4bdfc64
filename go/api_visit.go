package petclinicserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	ownerhttpmapper "github.com/Apurer/go-petclinic-server/internal/domains/owners/adapters/http/mapper"
	ownersapp "github.com/Apurer/go-petclinic-server/internal/domains/owners/application"
	ownertypes "github.com/Apurer/go-petclinic-server/internal/domains/owners/application/types"
)

// VisitAPI wires HTTP transport with the visit booking use cases.
type VisitAPI struct {
	service ownersapp.Port
}

// NewVisitAPI creates a VisitAPI backed by the provided service.
func NewVisitAPI(service ownersapp.Port) VisitAPI {
	return VisitAPI{service: service}
}

// Get /owners/:ownerId/pets/:petId/visits/new
// Renders the visit form with the pet's visit history
func (api *VisitAPI) InitVisitForm(c *gin.Context) {
	ref, ok := parsePetRef(c)
	if !ok {
		return
	}
	view, err := api.service.InitVisitForm(c.Request.Context(), ref)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ownerhttpmapper.FromVisitFormView(viewVisitForm, view))
}

// Post /owners/:ownerId/pets/:petId/visits/new
// Validates and records a visit for the pet
func (api *VisitAPI) ProcessVisitForm(c *gin.Context) {
	ref, ok := parsePetRef(c)
	if !ok {
		return
	}
	submission := ownertypes.VisitFormSubmission{
		OwnerID:     ref.OwnerID,
		PetID:       ref.PetID,
		Date:        c.PostForm("date"),
		Description: c.PostForm("description"),
	}
	decision, err := api.service.SubmitVisitForm(c.Request.Context(), submission)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if decision.Saved {
		redirectToOwner(c, decision.OwnerID)
		return
	}
	c.JSON(http.StatusOK, ownerhttpmapper.FromVisitFormView(viewVisitForm, decision.Rejected))
}
