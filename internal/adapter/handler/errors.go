package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/srgjo27/ferry_booking/internal/core/domain"
	"github.com/srgjo27/ferry_booking/internal/platform/logger"
)

func statusFor(err error) int {
	switch {
	case domain.IsInvalidInput(err):
		return http.StatusBadRequest
	case domain.IsNotFound(err):
		return http.StatusNotFound
	case domain.IsValidation(err):
		return http.StatusUnprocessableEntity
	case domain.IsUpstream(err):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders err as {"error", "field"}. Unclassified errors are
// logged and hidden from the client.
func writeError(c *gin.Context, log logger.Logger, err error) {
	status := statusFor(err)

	if status == http.StatusInternalServerError {
		log.Error("Request failed", "path", c.FullPath(), "error", err)
		c.AbortWithStatusJSON(status, gin.H{"error": "internal server error"})
		return
	}

	body := gin.H{"error": err.Error()}

	var invalid domain.InvalidInputError
	var validation domain.ValidationError
	switch {
	case errors.As(err, &invalid) && invalid.Field != "":
		body["field"] = invalid.Field
	case errors.As(err, &validation) && validation.Field != "":
		body["field"] = validation.Field
	}

	if status == http.StatusBadGateway {
		log.Warn("Sailing source unavailable", "path", c.FullPath(), "error", err)
	}

	c.AbortWithStatusJSON(status, body)
}

func badBody(err error) error {
	return domain.InvalidInputError{Field: "body", Msg: err.Error()}
}
