package handlers

import (
	"net/http"

	"pharmacy_backend/internal/services"
	"pharmacy_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// MedicineHandler exposes medicine CRUD plus the stock operations and
// inventory views.
type MedicineHandler struct {
	inventoryService services.InventoryService
}

// NewMedicineHandler creates a new MedicineHandler.
func NewMedicineHandler(inventoryService services.InventoryService) *MedicineHandler {
	return &MedicineHandler{inventoryService: inventoryService}
}

func (h *MedicineHandler) CreateMedicine(c *gin.Context) {
	var req services.MedicineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}
	med, err := h.inventoryService.CreateMedicine(req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, med)
}

func (h *MedicineHandler) GetMedicines(c *gin.Context) {
	c.JSON(http.StatusOK, h.inventoryService.GetMedicines())
}

func (h *MedicineHandler) GetMedicineByID(c *gin.Context) {
	med, err := h.inventoryService.GetMedicineByID(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, med)
}

func (h *MedicineHandler) UpdateMedicine(c *gin.Context) {
	var req services.MedicineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}
	med, err := h.inventoryService.UpdateMedicine(c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, med)
}

func (h *MedicineHandler) DeleteMedicine(c *gin.Context) {
	if err := h.inventoryService.DeleteMedicine(c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *MedicineHandler) RestockMedicine(c *gin.Context) {
	var req services.RestockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}
	purchase, err := h.inventoryService.Restock(c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, purchase)
}

func (h *MedicineHandler) DisposeMedicine(c *gin.Context) {
	var req services.DisposeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}
	disposal, err := h.inventoryService.Dispose(c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, disposal)
}

func (h *MedicineHandler) GetLowStock(c *gin.Context) {
	c.JSON(http.StatusOK, h.inventoryService.LowStock())
}

func (h *MedicineHandler) GetExpiring(c *gin.Context) {
	c.JSON(http.StatusOK, h.inventoryService.Expiring())
}

func (h *MedicineHandler) GetInventorySummary(c *gin.Context) {
	c.JSON(http.StatusOK, h.inventoryService.Summary())
}
