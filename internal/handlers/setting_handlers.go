package handlers

import (
	"net/http"

	"pharmacy_backend/internal/services"
	"pharmacy_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// SettingHandler exposes the operator-tunable settings.
type SettingHandler struct {
	inventoryService services.InventoryService
}

// NewSettingHandler creates a new SettingHandler.
func NewSettingHandler(inventoryService services.InventoryService) *SettingHandler {
	return &SettingHandler{inventoryService: inventoryService}
}

func (h *SettingHandler) GetSettings(c *gin.Context) {
	c.JSON(http.StatusOK, h.inventoryService.GetSettings())
}

type updateSettingsRequest struct {
	LowStockThreshold int `json:"lowStockThreshold" binding:"required"`
}

func (h *SettingHandler) UpdateSettings(c *gin.Context) {
	var req updateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}
	settings, err := h.inventoryService.UpdateSettings(req.LowStockThreshold)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}
