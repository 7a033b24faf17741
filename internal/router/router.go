package router

import (
	"pharmacy_backend/internal/handlers"
	"pharmacy_backend/internal/services"
	"pharmacy_backend/internal/store"

	"github.com/gin-gonic/gin"
)

// Setup initializes the routing for the application.
func Setup(engine *gin.Engine, st *store.Store) {
	// Initialize Services
	inventoryService := services.NewInventoryService(st)
	supplierService := services.NewSupplierService(st)
	customerService := services.NewCustomerService(st)
	saleService := services.NewSaleService(st)
	registerService := services.NewRegisterService(st)
	reportService := services.NewReportService(st, registerService)

	// Initialize Handlers
	medicineHandler := handlers.NewMedicineHandler(inventoryService)
	supplierHandler := handlers.NewSupplierHandler(supplierService)
	customerHandler := handlers.NewCustomerHandler(customerService)
	saleHandler := handlers.NewSaleHandler(saleService)
	reportHandler := handlers.NewReportHandler(reportService)
	backupHandler := handlers.NewBackupHandler(st)
	settingHandler := handlers.NewSettingHandler(inventoryService)

	apiV1 := engine.Group("/api/v1")
	{
		SetupMedicineRoutes(apiV1, medicineHandler)
		SetupInventoryRoutes(apiV1, medicineHandler)
		SetupSupplierRoutes(apiV1, supplierHandler)
		SetupCustomerRoutes(apiV1, customerHandler)
		SetupSaleRoutes(apiV1, saleHandler)
		SetupReportRoutes(apiV1, reportHandler)
		SetupBackupRoutes(apiV1, backupHandler)
		SetupSettingsRoutes(apiV1, settingHandler)
	}
}
