package petclinicserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// WelcomeAPI serves the clinic landing page.
type WelcomeAPI struct{}

// NewWelcomeAPI creates a WelcomeAPI.
func NewWelcomeAPI() WelcomeAPI {
	return WelcomeAPI{}
}

// welcomePage is the render model for the landing page.
type welcomePage struct {
	View    string `json:"view"`
	Message string `json:"message"`
}

// Get /
// Shows the landing page
func (api *WelcomeAPI) Welcome(c *gin.Context) {
	c.JSON(http.StatusOK, welcomePage{View: viewWelcome, Message: "Welcome"})
}
