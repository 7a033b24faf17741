package handlers

import (
	"net/http"

	"pharmacy_backend/internal/services"
	"pharmacy_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// SaleHandler exposes sale recording and the sales log.
type SaleHandler struct {
	saleService services.SaleService
}

// NewSaleHandler creates a new SaleHandler.
func NewSaleHandler(saleService services.SaleService) *SaleHandler {
	return &SaleHandler{saleService: saleService}
}

// RecordSales validates and records a multi-line sale attempt. A rejected
// attempt returns 422 with the per-line reasons; the store is untouched.
func (h *SaleHandler) RecordSales(c *gin.Context) {
	var req services.RecordSalesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}
	outcome, err := h.saleService.RecordSales(req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if !outcome.Accepted {
		c.JSON(http.StatusUnprocessableEntity, outcome)
		return
	}
	c.JSON(http.StatusCreated, outcome)
}

func (h *SaleHandler) GetSales(c *gin.Context) {
	c.JSON(http.StatusOK, h.saleService.GetSales())
}
