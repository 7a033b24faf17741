package handlers

import (
	"errors"
	"net/http"

	"pharmacy_backend/internal/services"
	"pharmacy_backend/internal/store"
	"pharmacy_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// respondServiceError maps service-layer errors onto the standard APIError
// response shape.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Record not found", err.Error()))
	case errors.Is(err, services.ErrValidation):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Input validation failed", err.Error()))
	case errors.Is(err, store.ErrMalformedSnapshot):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeMalformedSnapshot, "Snapshot is malformed", err.Error()))
	default:
		utils.LogError(err, "Unhandled service error")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Internal server error", ""))
	}
}
