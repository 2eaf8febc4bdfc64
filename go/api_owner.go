package petclinicserver

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	ownerhttpmapper "github.com/Apurer/go-petclinic-server/internal/domains/owners/adapters/http/mapper"
	ownersapp "github.com/Apurer/go-petclinic-server/internal/domains/owners/application"
	ownertypes "github.com/Apurer/go-petclinic-server/internal/domains/owners/application/types"
)

// OwnerAPI wires HTTP transport with the owners bounded context service.
type OwnerAPI struct {
	service ownersapp.Port
}

// NewOwnerAPI creates an OwnerAPI backed by the provided service.
func NewOwnerAPI(service ownersapp.Port) OwnerAPI {
	return OwnerAPI{service: service}
}

// findOwnersForm is the render model for the owner search form.
type findOwnersForm struct {
	View   string                                  `json:"view"`
	Owner  findOwnersFields                        `json:"owner"`
	Errors map[string][]ownerhttpmapper.FieldError `json:"errors,omitempty"`
}

type findOwnersFields struct {
	LastName string `json:"lastName"`
}

// ownersList is the render model for a page of matching owners.
type ownersList struct {
	View string `json:"view"`
	ownerhttpmapper.OwnerPage
}

// ownerDetails is the render model for a single owner with pets and visits.
type ownerDetails struct {
	View  string                `json:"view"`
	Owner ownerhttpmapper.Owner `json:"owner"`
}

// Get /owners/find
// Renders the owner search form
func (api *OwnerAPI) InitFindForm(c *gin.Context) {
	c.JSON(http.StatusOK, findOwnersForm{View: viewFindOwners})
}

// Get /owners
// Finds owners by last-name prefix
func (api *OwnerAPI) ProcessFindForm(c *gin.Context) {
	query := ownertypes.FindOwnersQuery{
		LastName: c.Query("lastName"),
		Page:     parsePageQuery(c),
	}
	result, err := api.service.FindOwners(c.Request.Context(), query)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	switch {
	case result.TotalElements == 0:
		c.JSON(http.StatusOK, findOwnersForm{
			View:  viewFindOwners,
			Owner: findOwnersFields{LastName: query.LastName},
			Errors: map[string][]ownerhttpmapper.FieldError{
				ownertypes.FormObjectOwner: {{Field: "lastName", Code: ownertypes.CodeNotFound}},
			},
		})
	case result.TotalElements == 1 && len(result.Owners) == 1:
		redirectToOwner(c, result.Owners[0].Entity.ID)
	default:
		c.JSON(http.StatusOK, ownersList{
			View:      viewOwnersList,
			OwnerPage: ownerhttpmapper.FromSearchResult(result),
		})
	}
}

// Get /owners/:ownerId
// Shows an owner with their pets and visits
func (api *OwnerAPI) ShowOwner(c *gin.Context) {
	ownerID, ok := parseIDParam(c, "ownerId")
	if !ok {
		return
	}
	owner, err := api.service.GetOwner(c.Request.Context(), ownertypes.OwnerRef{OwnerID: ownerID})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ownerDetails{
		View:  viewOwnerDetails,
		Owner: ownerhttpmapper.FromOwnerProjection(owner),
	})
}

// Get /owners/new
// Renders a blank owner creation form
func (api *OwnerAPI) InitCreationForm(c *gin.Context) {
	view := ownertypes.OwnerFormView{Owner: ownertypes.OwnerFormState{New: true}}
	c.JSON(http.StatusOK, ownerhttpmapper.FromOwnerFormView(viewOwnerForm, &view))
}

// Post /owners/new
// Validates and persists a new owner
func (api *OwnerAPI) ProcessCreationForm(c *gin.Context) {
	api.processOwnerForm(c, ownerFormSubmission(c, 0))
}

// Get /owners/:ownerId/edit
// Renders the owner update form prefilled with stored values
func (api *OwnerAPI) InitUpdateForm(c *gin.Context) {
	ownerID, ok := parseIDParam(c, "ownerId")
	if !ok {
		return
	}
	view, err := api.service.InitOwnerUpdateForm(c.Request.Context(), ownertypes.OwnerRef{OwnerID: ownerID})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ownerhttpmapper.FromOwnerFormView(viewOwnerForm, view))
}

// Post /owners/:ownerId/edit
// Validates and persists changes to an existing owner
func (api *OwnerAPI) ProcessUpdateForm(c *gin.Context) {
	ownerID, ok := parseIDParam(c, "ownerId")
	if !ok {
		return
	}
	api.processOwnerForm(c, ownerFormSubmission(c, ownerID))
}

func (api *OwnerAPI) processOwnerForm(c *gin.Context, submission ownertypes.OwnerFormSubmission) {
	decision, err := api.service.SubmitOwnerForm(c.Request.Context(), submission)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if decision.Saved {
		redirectToOwner(c, decision.OwnerID)
		return
	}
	c.JSON(http.StatusOK, ownerhttpmapper.FromOwnerFormView(viewOwnerForm, decision.Rejected))
}

func ownerFormSubmission(c *gin.Context, ownerID int64) ownertypes.OwnerFormSubmission {
	return ownertypes.OwnerFormSubmission{
		OwnerID:   ownerID,
		FirstName: c.PostForm("firstName"),
		LastName:  c.PostForm("lastName"),
		Address:   c.PostForm("address"),
		City:      c.PostForm("city"),
		Telephone: c.PostForm("telephone"),
	}
}

func redirectToOwner(c *gin.Context, ownerID int64) {
	c.Redirect(http.StatusFound, fmt.Sprintf("/owners/%d", ownerID))
}

func parseIDParam(c *gin.Context, name string) (int64, bool) {
	value := c.Param(name)
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, fmt.Errorf("invalid %s: %q", name, value))
		return 0, false
	}
	return id, true
}

// parsePageQuery reads the one-based page query parameter, defaulting to the
// first page when absent or malformed.
func parsePageQuery(c *gin.Context) int {
	value := c.DefaultQuery("page", "1")
	page, err := strconv.Atoi(value)
	if err != nil || page < 1 {
		return 1
	}
	return page
}
