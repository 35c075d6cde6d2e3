package middleware

import (
	"log/slog"
	"net/http"

	"parkflow/internal/handler/httperr"
	"parkflow/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

const stackLines = 12

// ErrorHandler logs server-side failures recorded through httperr with a
// short stack and writes the envelope for handlers that aborted without a
// body.
func ErrorHandler(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		resp, cause := lastPublic(c)
		if cause != nil && resp.Status >= http.StatusInternalServerError {
			logger.Error("request failed",
				"request_id", GetRequestID(c),
				"route", c.FullPath(),
				"status", resp.Status,
				"error", cause.Error(),
				"stack", errs.ExtractStackLines(cause, stackLines))
		}

		if c.Writer.Written() {
			return
		}
		if cause != nil {
			c.JSON(resp.Status, resp)
			return
		}
		if last := c.Errors.Last(); last != nil {
			// recorded with c.Error but never classified
			httperr.Abort(c, last.Err)
			return
		}
		if status := c.Writer.Status(); status != http.StatusOK {
			c.Status(status)
			c.Writer.WriteHeaderNow()
			return
		}
	}
}

// lastPublic returns the most recent envelope recorded by httperr and its cause.
func lastPublic(c *gin.Context) (httperr.Response, error) {
	for i := len(c.Errors) - 1; i >= 0; i-- {
		ge := c.Errors[i]
		if !ge.IsType(gin.ErrorTypePublic) {
			continue
		}
		if resp, ok := ge.Meta.(httperr.Response); ok {
			return resp, ge.Err
		}
	}
	return httperr.Response{}, nil
}

func CustomRecovery(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Error("recovered from panic",
					"panic", rec,
					"request_id", GetRequestID(c),
					"method", c.Request.Method,
					"path", c.Request.URL.Path)

				resp := httperr.Response{Status: http.StatusInternalServerError}
				resp.Error.Message = "Internal server error"

				c.AbortWithStatusJSON(http.StatusInternalServerError, resp)
			}
		}()
		c.Next()
	}
}
