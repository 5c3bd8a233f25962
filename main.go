package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/aom0101z1/gestion-ventas-sub001/config"
	"github.com/aom0101z1/gestion-ventas-sub001/routes"
	"github.com/aom0101z1/gestion-ventas-sub001/schedule"
	"github.com/aom0101z1/gestion-ventas-sub001/storage"
	"github.com/aom0101z1/gestion-ventas-sub001/utils"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// Initialize database
	db, err := utils.InitDB(cfg)
	if err != nil {
		log.Fatalf("Error initializing database: %v", err)
	}

	// Initialize logger
	logger := utils.InitLogger()

	// Wire the schedule engine to its stores and hydrate the ledger
	ledger := storage.NewProgressStore(db)
	if err := ledger.Load(); err != nil {
		log.Fatalf("Error loading progress records: %v", err)
	}
	engine := schedule.NewEngine(
		storage.NewGroupStore(db),
		ledger,
		storage.NewAuditStore(db, logger),
		logger,
	)

	// Create Fiber app
	app := fiber.New()

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(utils.LoggingMiddleware(logger))

	// Setup routes
	routes.SetupRoutes(app, db, engine, cfg)

	// Start server
	log.Fatal(app.Listen(":" + cfg.ServerPort))
}
