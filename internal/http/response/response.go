package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hritamkar/library-management/internal/pkg/apperr"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

// RespondAppError maps a service-layer error onto an HTTP status. Anything
// that is not an apperr is treated as an internal failure and its detail is
// kept out of the response body.
func RespondAppError(c *gin.Context, err error) {
	if ae, ok := apperr.As(err); ok {
		switch ae.Kind {
		case apperr.KindValidation:
			RespondError(c, http.StatusBadRequest, "validation_failed", ae)
		case apperr.KindNotFound:
			RespondError(c, http.StatusNotFound, "not_found", ae)
		case apperr.KindAccessDenied:
			RespondError(c, http.StatusForbidden, "access_denied", ae)
		default:
			RespondError(c, http.StatusInternalServerError, "internal_error", nil)
		}
		return
	}
	RespondError(c, http.StatusInternalServerError, "internal_error", nil)
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}
