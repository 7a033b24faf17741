package handlers

import (
	"net/http"

	"pharmacy_backend/internal/services"
	"pharmacy_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// SupplierHandler exposes supplier CRUD.
type SupplierHandler struct {
	supplierService services.SupplierService
}

// NewSupplierHandler creates a new SupplierHandler.
func NewSupplierHandler(supplierService services.SupplierService) *SupplierHandler {
	return &SupplierHandler{supplierService: supplierService}
}

func (h *SupplierHandler) CreateSupplier(c *gin.Context) {
	var req services.SupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}
	sup, err := h.supplierService.CreateSupplier(req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sup)
}

func (h *SupplierHandler) GetSuppliers(c *gin.Context) {
	c.JSON(http.StatusOK, h.supplierService.GetSuppliers())
}

func (h *SupplierHandler) GetSupplierByID(c *gin.Context) {
	sup, err := h.supplierService.GetSupplierByID(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, sup)
}

func (h *SupplierHandler) UpdateSupplier(c *gin.Context) {
	var req services.SupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}
	sup, err := h.supplierService.UpdateSupplier(c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, sup)
}

func (h *SupplierHandler) DeleteSupplier(c *gin.Context) {
	if err := h.supplierService.DeleteSupplier(c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
