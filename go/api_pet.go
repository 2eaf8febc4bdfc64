package petclinicserver

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	ownerhttpmapper "github.com/Apurer/go-petclinic-server/internal/domains/owners/adapters/http/mapper"
	ownersapp "github.com/Apurer/go-petclinic-server/internal/domains/owners/application"
	ownertypes "github.com/Apurer/go-petclinic-server/internal/domains/owners/application/types"
	ownerports "github.com/Apurer/go-petclinic-server/internal/domains/owners/ports"
)

// PetAPI wires HTTP transport with the owners bounded context service and the
// durable registration workflows.
type PetAPI struct {
	service   ownersapp.Port
	workflows ownerports.WorkflowOrchestrator
}

// NewPetAPI creates a PetAPI backed by the provided service.
func NewPetAPI(service ownersapp.Port, workflows ownerports.WorkflowOrchestrator) PetAPI {
	return PetAPI{service: service, workflows: workflows}
}

// Get /owners/:ownerId/pets/new
// Renders a blank pet creation form for the owner
func (api *PetAPI) InitCreationForm(c *gin.Context) {
	ownerID, ok := parseIDParam(c, "ownerId")
	if !ok {
		return
	}
	view, err := api.service.InitPetForm(c.Request.Context(), ownertypes.OwnerRef{OwnerID: ownerID})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ownerhttpmapper.FromPetFormView(viewPetForm, view))
}

// Post /owners/:ownerId/pets/new
// Validates and registers a new pet for the owner
func (api *PetAPI) ProcessCreationForm(c *gin.Context) {
	ownerID, ok := parseIDParam(c, "ownerId")
	if !ok {
		return
	}
	decision, err := api.registerPet(c.Request.Context(), petFormSubmission(c, ownerID, 0))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	api.concludePetForm(c, decision)
}

// Get /owners/:ownerId/pets/:petId/edit
// Renders the pet update form prefilled with stored values
func (api *PetAPI) InitUpdateForm(c *gin.Context) {
	ref, ok := parsePetRef(c)
	if !ok {
		return
	}
	view, err := api.service.InitPetUpdateForm(c.Request.Context(), ref)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ownerhttpmapper.FromPetFormView(viewPetForm, view))
}

// Post /owners/:ownerId/pets/:petId/edit
// Validates and persists changes to an existing pet
func (api *PetAPI) ProcessUpdateForm(c *gin.Context) {
	ref, ok := parsePetRef(c)
	if !ok {
		return
	}
	decision, err := api.service.SubmitPetForm(c.Request.Context(), petFormSubmission(c, ref.OwnerID, ref.PetID))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	api.concludePetForm(c, decision)
}

// registerPet routes new registrations through the durable workflow when one
// is configured, falling back to the in-process service otherwise.
func (api *PetAPI) registerPet(ctx context.Context, submission ownertypes.PetFormSubmission) (*ownertypes.PetFormDecision, error) {
	if api.workflows != nil {
		return api.workflows.RegisterPet(ctx, submission)
	}
	return api.service.SubmitPetForm(ctx, submission)
}

func (api *PetAPI) concludePetForm(c *gin.Context, decision *ownertypes.PetFormDecision) {
	if decision.Saved {
		redirectToOwner(c, decision.OwnerID)
		return
	}
	c.JSON(http.StatusOK, ownerhttpmapper.FromPetFormView(viewPetForm, decision.Rejected))
}

func petFormSubmission(c *gin.Context, ownerID, petID int64) ownertypes.PetFormSubmission {
	return ownertypes.PetFormSubmission{
		OwnerID:   ownerID,
		PetID:     petID,
		Name:      c.PostForm("name"),
		Type:      c.PostForm("type"),
		BirthDate: c.PostForm("birthDate"),
	}
}

func parsePetRef(c *gin.Context) (ownertypes.PetRef, bool) {
	ownerID, ok := parseIDParam(c, "ownerId")
	if !ok {
		return ownertypes.PetRef{}, false
	}
	petID, ok := parseIDParam(c, "petId")
	if !ok {
		return ownertypes.PetRef{}, false
	}
	return ownertypes.PetRef{OwnerID: ownerID, PetID: petID}, true
}
