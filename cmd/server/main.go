package main

import (
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"pharmacy_backend/internal/router"
	"pharmacy_backend/internal/scheduler"
	"pharmacy_backend/internal/seed"
	"pharmacy_backend/internal/services"
	"pharmacy_backend/internal/storage"
	"pharmacy_backend/internal/store"
	"pharmacy_backend/pkg/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real deployments configure through the environment.
	_ = godotenv.Load()

	// Initialize Logger
	utils.InitLogger()

	// Snapshot sink selection
	sink, err := openSink()
	if err != nil {
		utils.LogError(err, "Failed to open snapshot sink")
		log.Fatalf("Failed to open snapshot sink: %v", err)
	}

	st, err := store.Open(sink)
	if err != nil {
		utils.LogError(err, "Failed to load snapshot")
		log.Fatalf("Failed to load snapshot: %v", err)
	}
	utils.LogInfo("Store opened", map[string]interface{}{"empty": st.Empty()})

	if st.Empty() && utils.Getenv("SEED_ON_EMPTY", "false") == "true" {
		if err := seed.Run(st, time.Now()); err != nil {
			utils.LogError(err, "Failed to seed sample data")
			log.Fatalf("Failed to seed sample data: %v", err)
		}
		utils.LogInfo("Sample data seeded", nil)
	}

	engine := gin.Default()

	// Add GinLogger middleware for request logging
	engine.Use(utils.GinLogger())

	// CORS configuration
	corsAllowedOriginsEnv := os.Getenv("CORS_ALLOWED_ORIGINS")
	var allowedOrigins []string
	if corsAllowedOriginsEnv != "" {
		allowedOrigins = strings.Split(corsAllowedOriginsEnv, ",")
	} else {
		allowedOrigins = []string{"http://localhost:3000", "http://localhost:3001"} // Default origins
	}

	config := cors.DefaultConfig()
	config.AllowOrigins = allowedOrigins
	config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type"}
	config.AllowCredentials = true
	engine.Use(cors.New(config))

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Setup all application routes
	router.Setup(engine, st)

	// Daily refill reminder scan
	refillScanner := scheduler.NewRefillScanner(
		services.NewCustomerService(st),
		utils.GetenvInt("REFILL_SCAN_HOUR", 8),
	)
	if err := refillScanner.Start(); err != nil {
		utils.LogError(err, "Failed to start refill scanner")
		log.Fatalf("Failed to start refill scanner: %v", err)
	}
	defer refillScanner.Stop()

	// Server port configuration
	port := utils.Getenv("PORT", "8080")
	utils.LogInfo("Server starting", map[string]interface{}{"port": port, "configured_from_env": true})
	utils.LogInfo("Frontend should be configured to make API calls", map[string]interface{}{"url": "http://localhost:" + port + "/api/v1"})

	if err := engine.Run(":" + port); err != nil {
		utils.LogError(err, "Failed to start server")
		log.Fatalf("Failed to start server: %v", err)
	}
}

// openSink picks the persistence backend from the environment. The file
// sink is the default; sqlite keeps the snapshot in a single-row table.
func openSink() (storage.Sink, error) {
	backend := utils.Getenv("SNAPSHOT_BACKEND", "file")
	switch backend {
	case "sqlite":
		dsn := utils.Getenv("SNAPSHOT_PATH", "data/pharmacy.db")
		return storage.NewSQLiteSink(dsn)
	default:
		path := utils.Getenv("SNAPSHOT_PATH", "data/pharmacy_data.json")
		return storage.NewFileSink(path)
	}
}
