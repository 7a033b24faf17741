package handlers

import (
	"net/http"

	"pharmacy_backend/internal/services"
	"pharmacy_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// CustomerHandler exposes customer CRM operations.
type CustomerHandler struct {
	customerService services.CustomerService
}

// NewCustomerHandler creates a new CustomerHandler.
func NewCustomerHandler(customerService services.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	var req services.CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}
	cust, err := h.customerService.CreateCustomer(req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cust)
}

func (h *CustomerHandler) GetCustomers(c *gin.Context) {
	c.JSON(http.StatusOK, h.customerService.GetCustomers())
}

func (h *CustomerHandler) GetCustomerByID(c *gin.Context) {
	cust, err := h.customerService.GetCustomerByID(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, cust)
}

func (h *CustomerHandler) UpdateCustomer(c *gin.Context) {
	var req services.CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}
	cust, err := h.customerService.UpdateCustomer(c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, cust)
}

func (h *CustomerHandler) DeleteCustomer(c *gin.Context) {
	if err := h.customerService.DeleteCustomer(c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CustomerHandler) GetDueReminders(c *gin.Context) {
	c.JSON(http.StatusOK, h.customerService.DueReminders())
}

// GetReminderMessage returns the composed refill reminder text. Delivery
// over WhatsApp/SMS/email is the frontend's job.
func (h *CustomerHandler) GetReminderMessage(c *gin.Context) {
	msg, err := h.customerService.ComposeReminder(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": msg})
}
