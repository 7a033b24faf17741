package router

import (
	"pharmacy_backend/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupMedicineRoutes sets up the medicine routes.
func SetupMedicineRoutes(apiGroup *gin.RouterGroup, medicineHandler *handlers.MedicineHandler) {
	medicineRoutes := apiGroup.Group("/medicines")
	{
		medicineRoutes.POST("", medicineHandler.CreateMedicine)
		medicineRoutes.GET("", medicineHandler.GetMedicines)
		medicineRoutes.GET("/:id", medicineHandler.GetMedicineByID)
		medicineRoutes.PUT("/:id", medicineHandler.UpdateMedicine)
		medicineRoutes.DELETE("/:id", medicineHandler.DeleteMedicine)
		medicineRoutes.POST("/:id/restock", medicineHandler.RestockMedicine)
		medicineRoutes.POST("/:id/dispose", medicineHandler.DisposeMedicine)
	}
}

// SetupInventoryRoutes sets up the inventory view routes.
func SetupInventoryRoutes(apiGroup *gin.RouterGroup, medicineHandler *handlers.MedicineHandler) {
	inventoryRoutes := apiGroup.Group("/inventory")
	{
		inventoryRoutes.GET("/low-stock", medicineHandler.GetLowStock)
		inventoryRoutes.GET("/expiring", medicineHandler.GetExpiring)
		inventoryRoutes.GET("/summary", medicineHandler.GetInventorySummary)
	}
}

// SetupSupplierRoutes sets up the supplier routes.
func SetupSupplierRoutes(apiGroup *gin.RouterGroup, supplierHandler *handlers.SupplierHandler) {
	supplierRoutes := apiGroup.Group("/suppliers")
	{
		supplierRoutes.POST("", supplierHandler.CreateSupplier)
		supplierRoutes.GET("", supplierHandler.GetSuppliers)
		supplierRoutes.GET("/:id", supplierHandler.GetSupplierByID)
		supplierRoutes.PUT("/:id", supplierHandler.UpdateSupplier)
		supplierRoutes.DELETE("/:id", supplierHandler.DeleteSupplier)
	}
}

// SetupCustomerRoutes sets up the customer CRM routes.
func SetupCustomerRoutes(apiGroup *gin.RouterGroup, customerHandler *handlers.CustomerHandler) {
	customerRoutes := apiGroup.Group("/customers")
	{
		customerRoutes.POST("", customerHandler.CreateCustomer)
		customerRoutes.GET("", customerHandler.GetCustomers)
		customerRoutes.GET("/due", customerHandler.GetDueReminders)
		customerRoutes.GET("/:id", customerHandler.GetCustomerByID)
		customerRoutes.PUT("/:id", customerHandler.UpdateCustomer)
		customerRoutes.DELETE("/:id", customerHandler.DeleteCustomer)
		customerRoutes.GET("/:id/reminder", customerHandler.GetReminderMessage)
	}
}

// SetupSaleRoutes sets up the sale routes.
func SetupSaleRoutes(apiGroup *gin.RouterGroup, saleHandler *handlers.SaleHandler) {
	saleRoutes := apiGroup.Group("/sales")
	{
		saleRoutes.POST("", saleHandler.RecordSales)
		saleRoutes.GET("", saleHandler.GetSales)
	}
}

// SetupReportRoutes sets up the reporting and GST routes.
func SetupReportRoutes(apiGroup *gin.RouterGroup, reportHandler *handlers.ReportHandler) {
	reportRoutes := apiGroup.Group("/reports")
	{
		reportRoutes.GET("/audit", reportHandler.GetAuditBundle)
		reportRoutes.GET("/register", reportHandler.GetScheduleXRegister)
		reportRoutes.GET("/pending-rx", reportHandler.GetPendingRx)
	}
	gstRoutes := apiGroup.Group("/gst-invoices")
	{
		gstRoutes.POST("", reportHandler.CreateGSTInvoice)
		gstRoutes.GET("", reportHandler.GetGSTInvoices)
	}
}

// SetupBackupRoutes sets up the snapshot export/import routes.
func SetupBackupRoutes(apiGroup *gin.RouterGroup, backupHandler *handlers.BackupHandler) {
	backupRoutes := apiGroup.Group("/backup")
	{
		backupRoutes.GET("/export", backupHandler.ExportSnapshot)
		backupRoutes.POST("/import", backupHandler.ImportSnapshot)
	}
}

// SetupSettingsRoutes sets up the settings routes.
func SetupSettingsRoutes(apiGroup *gin.RouterGroup, settingHandler *handlers.SettingHandler) {
	settingsRoutes := apiGroup.Group("/settings")
	{
		settingsRoutes.GET("", settingHandler.GetSettings)
		settingsRoutes.PUT("", settingHandler.UpdateSettings)
	}
}
