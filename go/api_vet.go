package petclinicserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	vethttpmapper "github.com/Apurer/go-petclinic-server/internal/domains/vets/adapters/http/mapper"
	vetports "github.com/Apurer/go-petclinic-server/internal/domains/vets/ports"
)

// VetAPI wires HTTP transport with the vets bounded context service.
type VetAPI struct {
	service vetports.Service
}

// NewVetAPI creates a VetAPI backed by the provided service.
func NewVetAPI(service vetports.Service) VetAPI {
	return VetAPI{service: service}
}

// vetList is the render model for a page of the vet directory.
type vetList struct {
	View string `json:"view"`
	vethttpmapper.VetPage
}

// Get /vets.html
// Shows one page of the vet directory
func (api *VetAPI) ShowVetList(c *gin.Context) {
	result, err := api.service.ListVets(c.Request.Context(), parsePageQuery(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, vetList{
		View:    viewVetList,
		VetPage: vethttpmapper.FromSearchResult(result),
	})
}

// Get /vets
// Returns the complete vet roster as a plain resource
func (api *VetAPI) ShowResourcesVetList(c *gin.Context) {
	vets, err := api.service.ListAllVets(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, vethttpmapper.VetList{Vets: vethttpmapper.FromProjectionList(vets)})
}
