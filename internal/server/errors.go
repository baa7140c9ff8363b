package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/meterworks/metrobill/internal/period"
	ratingdomain "github.com/meterworks/metrobill/internal/rating/domain"
)

var ErrInvalidRequest = errors.New("invalid request")

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func AbortWithError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	code := "internal"

	switch {
	case errors.Is(err, ErrInvalidRequest), errors.Is(err, period.ErrInvalidPeriod):
		status = http.StatusBadRequest
		code = "invalid_request"
	case errors.Is(err, ratingdomain.ErrTenantNotFound):
		status = http.StatusNotFound
		code = "not_found"
	}

	c.AbortWithStatusJSON(status, gin.H{"error": apiError{Code: code, Message: err.Error()}})
}
