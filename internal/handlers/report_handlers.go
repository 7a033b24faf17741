package handlers

import (
	"net/http"

	"pharmacy_backend/internal/services"
	"pharmacy_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ReportHandler exposes the audit bundle, register, pending prescriptions
// and GST invoices.
type ReportHandler struct {
	reportService services.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// GetAuditBundle returns the full audit export data for an optional
// month-granularity range (?from=YYYY-MM&to=YYYY-MM).
func (h *ReportHandler) GetAuditBundle(c *gin.Context) {
	bundle, err := h.reportService.BuildAudit(c.Query("from"), c.Query("to"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, bundle)
}

func (h *ReportHandler) GetScheduleXRegister(c *gin.Context) {
	register, err := h.reportService.ScheduleXRegister(c.Query("from"), c.Query("to"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, register)
}

func (h *ReportHandler) GetPendingRx(c *gin.Context) {
	pending, err := h.reportService.PendingRx(c.Query("from"), c.Query("to"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, pending)
}

func (h *ReportHandler) CreateGSTInvoice(c *gin.Context) {
	var req services.GSTInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}
	inv, err := h.reportService.CreateGSTInvoice(req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, inv)
}

func (h *ReportHandler) GetGSTInvoices(c *gin.Context) {
	c.JSON(http.StatusOK, h.reportService.GetGSTInvoices())
}
