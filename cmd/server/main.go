package main

import (
	"context"
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/ninjashari/grocery-manager/internal/config"
	"github.com/ninjashari/grocery-manager/internal/database"
	"github.com/ninjashari/grocery-manager/internal/handlers"
	"github.com/ninjashari/grocery-manager/internal/middleware"
	"github.com/ninjashari/grocery-manager/internal/parser"
	"github.com/ninjashari/grocery-manager/internal/services"
)

func main() {
	// Load .env file if present (development convenience)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	var storage *services.StorageService
	if cfg.S3Enabled {
		storage, err = services.NewStorageService(
			cfg.S3Endpoint, cfg.S3AccessKey, cfg.S3SecretKey,
			cfg.S3Bucket, cfg.S3Region, cfg.S3UseSSL,
		)
		if err != nil {
			log.Fatalf("Failed to create storage service: %v", err)
		}
		if err := storage.EnsureBucket(context.Background()); err != nil {
			log.Fatalf("Failed to ensure S3 bucket: %v", err)
		}
		log.Printf("S3 storage enabled (bucket %s)", cfg.S3Bucket)
	} else {
		log.Println("S3 storage disabled, receipt images will not be retained")
	}

	ocr, err := services.NewOCRService(cfg.OCRLanguage)
	if err != nil {
		log.Fatalf("Failed to initialize OCR: %v", err)
	}
	defer ocr.Close()

	tun := parser.DefaultTunables()
	tun.FallbackMinItems = cfg.ParserFallbackMinItems
	tun.MaxUnitPrice = cfg.ParserMaxUnitPrice
	tun.MaxItemPrice = cfg.ParserMaxItemPrice
	tun.MaxItemQuantity = cfg.ParserMaxItemQuantity

	var parserLogger *log.Logger
	if cfg.ParserDebug {
		parserLogger = log.New(os.Stderr, "parser: ", log.LstdFlags)
	}
	registry := parser.NewRegistry(tun, parserLogger)

	receiptSvc := services.NewReceiptService(ocr, registry)

	app := fiber.New(fiber.Config{
		AppName:      "grocery-manager",
		BodyLimit:    15 * 1024 * 1024,
		ErrorHandler: handlers.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowedOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))

	h := handlers.New(db, cfg)
	rh := handlers.NewReceiptHandler(h, db, receiptSvc, storage)

	app.Get("/health", rh.Health)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", h.Register)
	auth.Post("/login", h.Login)
	auth.Get("/me", middleware.AuthRequired(cfg), h.GetCurrentUser)

	api.Get("/receipts/supported-stores", rh.SupportedStores)

	receipts := api.Group("/receipts", middleware.AuthRequired(cfg))
	receipts.Post("/process", rh.ProcessReceipt)
	receipts.Post("/test-ocr", rh.TestOCR)
	receipts.Get("/export", rh.ExportReceipts)
	receipts.Get("/", rh.ListReceipts)
	receipts.Get("/:id", rh.GetReceipt)
	receipts.Get("/:id/image", rh.GetReceiptImage)
	receipts.Delete("/:id", rh.DeleteReceipt)

	log.Printf("Starting server on port %s (%s)", cfg.Port, cfg.Environment)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
