package httperr

import (
	"net/http"

	"parkflow/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
		Kind    string `json:"kind,omitempty"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	if cat := errs.CategoryOf(err); cat != errs.CategoryInternal {
		resp.Error.Kind = string(cat)
	}
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

// Abort maps the error category to a status. Internal errors never leak
// their message.
func Abort(c *gin.Context, err error) {
	status := StatusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "Internal server error"
	}
	AbortWithError(c, status, err, msg, nil)
}

func StatusFor(err error) int {
	switch errs.CategoryOf(err) {
	case errs.CategoryValidation:
		return http.StatusBadRequest
	case errs.CategoryNotFound:
		return http.StatusNotFound
	case errs.CategoryConflict:
		return http.StatusConflict
	case errs.CategoryExternalTransient:
		return http.StatusBadGateway
	case errs.CategoryExternalUntrusted:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
