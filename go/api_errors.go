package petclinicserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	ownersapp "github.com/Apurer/go-petclinic-server/internal/domains/owners/application"
	ownerports "github.com/Apurer/go-petclinic-server/internal/domains/owners/ports"
	apierrors "github.com/Apurer/go-petclinic-server/internal/shared/errors"
)

// problemResponder translates clinic errors into RFC 7807 responses.
var problemResponder = apierrors.NewChainedResponder("", clinicErrorMapper)

func clinicErrorMapper(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, ownerports.ErrNotFound), errors.Is(err, ownersapp.ErrPetNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()), true
	case errors.Is(err, ownersapp.ErrInvalidInput):
		return apierrors.ErrBadRequest.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

// respondProblem maps a ProblemDetail through the shared responder.
func respondProblem(c *gin.Context, problem apierrors.ProblemDetail) {
	problemResponder.Respond(c, problem)
}

// respondError preserves short handler call sites while returning RFC 7807 responses.
func respondError(c *gin.Context, status int, err error) {
	if err == nil {
		return
	}
	var problem apierrors.ProblemDetail
	switch status {
	case http.StatusBadRequest:
		problem = apierrors.ErrBadRequest.WithDetail(err.Error())
	case http.StatusNotFound:
		problem = apierrors.ErrNotFound.WithDetail(err.Error())
	default:
		problem = apierrors.ErrInternal.WithDetail(err.Error())
	}
	respondProblem(c, problem)
}

// respondServiceError maps application errors onto problem responses.
func respondServiceError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	problemResponder.RespondError(c, err)
}
