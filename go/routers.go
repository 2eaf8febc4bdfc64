package petclinicserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI.
	Pattern string
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
}

// Routes is the list of the generated Route.
type Routes []Route

// ApiHandleFunctions holds the API handlers for every route group.
type ApiHandleFunctions struct {
	WelcomeAPI WelcomeAPI
	OwnerAPI   OwnerAPI
	PetAPI     PetAPI
	VisitAPI   VisitAPI
	VetAPI     VetAPI
}

// NewRouter returns a new router with default middleware.
func NewRouter(handleFunctions ApiHandleFunctions) *gin.Engine {
	return NewRouterWithGinEngine(gin.Default(), handleFunctions)
}

// NewRouterWithGinEngine adds the clinic routes to an existing gin engine.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		switch route.Method {
		case http.MethodGet:
			router.GET(route.Pattern, route.HandlerFunc)
		case http.MethodPost:
			router.POST(route.Pattern, route.HandlerFunc)
		case http.MethodPut:
			router.PUT(route.Pattern, route.HandlerFunc)
		case http.MethodDelete:
			router.DELETE(route.Pattern, route.HandlerFunc)
		}
	}
	return router
}

// DefaultHandleFunc is used for routes without a matching handler.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	return []Route{
		{
			"Welcome",
			http.MethodGet,
			"/",
			handleFunctions.WelcomeAPI.Welcome,
		},
		{
			"InitFindForm",
			http.MethodGet,
			"/owners/find",
			handleFunctions.OwnerAPI.InitFindForm,
		},
		{
			"ProcessFindForm",
			http.MethodGet,
			"/owners",
			handleFunctions.OwnerAPI.ProcessFindForm,
		},
		{
			"InitOwnerCreationForm",
			http.MethodGet,
			"/owners/new",
			handleFunctions.OwnerAPI.InitCreationForm,
		},
		{
			"ProcessOwnerCreationForm",
			http.MethodPost,
			"/owners/new",
			handleFunctions.OwnerAPI.ProcessCreationForm,
		},
		{
			"ShowOwner",
			http.MethodGet,
			"/owners/:ownerId",
			handleFunctions.OwnerAPI.ShowOwner,
		},
		{
			"InitOwnerUpdateForm",
			http.MethodGet,
			"/owners/:ownerId/edit",
			handleFunctions.OwnerAPI.InitUpdateForm,
		},
		{
			"ProcessOwnerUpdateForm",
			http.MethodPost,
			"/owners/:ownerId/edit",
			handleFunctions.OwnerAPI.ProcessUpdateForm,
		},
		{
			"InitPetCreationForm",
			http.MethodGet,
			"/owners/:ownerId/pets/new",
			handleFunctions.PetAPI.InitCreationForm,
		},
		{
			"ProcessPetCreationForm",
			http.MethodPost,
			"/owners/:ownerId/pets/new",
			handleFunctions.PetAPI.ProcessCreationForm,
		},
		{
			"InitPetUpdateForm",
			http.MethodGet,
			"/owners/:ownerId/pets/:petId/edit",
			handleFunctions.PetAPI.InitUpdateForm,
		},
		{
			"ProcessPetUpdateForm",
			http.MethodPost,
			"/owners/:ownerId/pets/:petId/edit",
			handleFunctions.PetAPI.ProcessUpdateForm,
		},
		{
			"InitVisitForm",
			http.MethodGet,
			"/owners/:ownerId/pets/:petId/visits/new",
			handleFunctions.VisitAPI.InitVisitForm,
		},
		{
			"ProcessVisitForm",
			http.MethodPost,
			"/owners/:ownerId/pets/:petId/visits/new",
			handleFunctions.VisitAPI.ProcessVisitForm,
		},
		{
			"ShowVetList",
			http.MethodGet,
			"/vets.html",
			handleFunctions.VetAPI.ShowVetList,
		},
		{
			"ShowResourcesVetList",
			http.MethodGet,
			"/vets",
			handleFunctions.VetAPI.ShowResourcesVetList,
		},
	}
}
