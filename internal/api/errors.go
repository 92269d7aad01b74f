package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/klass-lk/markpost/internal/service"
)

type ErrorResponse struct {
	ErrorCode string `json:"error_code"`
	Message   string `json:"message"`
}

// ErrMalformedRequest reports a body that could not be parsed at all, as
// opposed to one that parsed but failed a semantic check in the service.
var ErrMalformedRequest = &service.Error{Code: "BAD_REQUEST", Message: "malformed request body"}

var statusByCode = map[string]int{
	"BAD_REQUEST":        http.StatusBadRequest,
	"MISSING_FIELDS":     http.StatusBadRequest,
	"NO_FIELDS_PROVIDED": http.StatusBadRequest,
	"INVALID_ID":         http.StatusBadRequest,
	"NOT_FOUND":          http.StatusNotFound,
	"FORBIDDEN":          http.StatusForbidden,
}

// SendError converts a service error into a JSON error response. Anything
// outside the service taxonomy is a store failure: it is logged here and
// collapsed to a generic 500 body so no internal detail leaks.
func SendError(c *gin.Context, logger zerolog.Logger, err error) {
	var svcErr *service.Error
	if errors.As(err, &svcErr) {
		status, ok := statusByCode[svcErr.Code]
		if !ok {
			status = http.StatusInternalServerError
		}
		c.JSON(status, ErrorResponse{
			ErrorCode: svcErr.Code,
			Message:   svcErr.Message,
		})
		return
	}

	logger.Error().Err(err).Str("path", c.FullPath()).Msg("store operation failed")
	c.JSON(http.StatusInternalServerError, ErrorResponse{
		ErrorCode: "INTERNAL_ERROR",
		Message:   "an unknown error occurred",
	})
}
