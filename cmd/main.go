package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/random"

	"vendora/internal/caching"
	"vendora/internal/handlers"
	"vendora/internal/jobs"
	"vendora/internal/jobs/background"
	"vendora/internal/middleware"
	"vendora/internal/repositories"
	"vendora/internal/services"
	"vendora/pkg/database"
)

const version = "1.0.0"

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := database.NewPool(context.Background(), databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// JWT configuration
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = random.String(32) // Generate random secret for development
		log.Println("WARNING: JWT_SECRET not set, using a generated secret; tokens will not survive restarts")
	}

	// Redis configuration
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisDB := 0
	if redisDBStr := os.Getenv("REDIS_DB"); redisDBStr != "" {
		if db, err := strconv.Atoi(redisDBStr); err == nil {
			redisDB = db
		}
	}

	// MinIO configuration
	minioEndpoint := os.Getenv("MINIO_ENDPOINT")
	if minioEndpoint == "" {
		minioEndpoint = "localhost:9000"
	}
	minioAccessKey := os.Getenv("MINIO_ACCESS_KEY")
	if minioAccessKey == "" {
		minioAccessKey = "minioadmin"
	}
	minioSecretKey := os.Getenv("MINIO_SECRET_KEY")
	if minioSecretKey == "" {
		minioSecretKey = "minioadmin"
	}
	minioUseSSL := os.Getenv("MINIO_USE_SSL") == "true"

	storageSvc, err := services.NewMinioStorage(minioEndpoint, minioAccessKey, minioSecretKey, minioUseSSL)
	if err != nil {
		log.Fatalf("Failed to initialize object storage: %v", err)
	}

	// Repositories
	customerRepo := repositories.NewCustomerRepo(pool)
	productRepo := repositories.NewProductRepo(pool)
	saleRepo := repositories.NewSaleRepo(pool)
	userRepo := repositories.NewUserRepo(pool)

	// Cache
	cacheSvc := caching.NewRedisCacheService(redisAddr, redisPassword, redisDB)

	// Services
	authSvc := services.NewAuthService(userRepo, cacheSvc, jwtSecret, 3600, 30*24*3600)
	customerSvc := services.NewCustomerService(customerRepo, pool)
	productSvc := services.NewProductService(productRepo, cacheSvc)
	saleSvc := services.NewSaleService(pool, saleRepo, customerRepo, productRepo, cacheSvc)
	receiptSvc := services.NewReceiptService(storageSvc)

	// Handlers
	authHandlers := handlers.NewAuthHandlers(authSvc, userRepo)
	customerHandlers := handlers.NewCustomerHandlers(customerSvc)
	productHandlers := handlers.NewProductHandlers(productSvc)
	saleHandlers := handlers.NewSaleHandlers(saleSvc, receiptSvc)
	healthHandlers := handlers.NewHealthHandlers(pool, cacheSvc)

	// Background jobs
	alertSvc := jobs.NewStockAlertService(productRepo)
	scheduler, err := background.NewJobScheduler(alertSvc, saleSvc, cacheSvc)
	if err != nil {
		log.Fatalf("Failed to create job scheduler: %v", err)
	}
	scheduler.Start()
	defer func() {
		if err := scheduler.Stop(); err != nil {
			log.Printf("Failed to stop job scheduler: %v", err)
		}
	}()

	// Echo instance and global middleware
	e := echo.New()
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Pre(echoMiddleware.RemoveTrailingSlash())

	// Health endpoints (no auth required)
	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/health/ready", healthHandlers.ReadinessCheck)
	e.GET("/health/live", healthHandlers.LivenessCheck)
	e.GET("/health/detailed", healthHandlers.DetailedHealthCheck)

	v1 := e.Group("/v1")

	// Authentication routes (no JWT required)
	auth := v1.Group("/auth")
	auth.POST("/signup", authHandlers.Signup)
	auth.POST("/login", authHandlers.Login)
	auth.POST("/refresh", authHandlers.RefreshToken)

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.JWT(authSvc))

	protected.GET("/me", authHandlers.Me)

	// Customer routes
	protected.GET("/customers", customerHandlers.GetCustomers)
	protected.POST("/customers", customerHandlers.CreateCustomer)
	protected.GET("/customers/:id", customerHandlers.GetCustomer)
	protected.PUT("/customers/:id", customerHandlers.UpdateCustomer)
	protected.DELETE("/customers/:id", customerHandlers.DeleteCustomer)

	// Product routes
	protected.GET("/products", productHandlers.GetProducts)
	protected.POST("/products", productHandlers.CreateProduct)
	protected.GET("/products/low-stock", productHandlers.GetLowStockProducts)
	protected.GET("/products/:id", productHandlers.GetProduct)
	protected.PUT("/products/:id", productHandlers.UpdateProduct)
	protected.DELETE("/products/:id", productHandlers.DeleteProduct)

	// Sale routes
	protected.GET("/sales", saleHandlers.GetSales)
	protected.POST("/sales", saleHandlers.CreateSale)
	protected.GET("/sales/stats", saleHandlers.GetSaleStats)
	protected.GET("/sales/:id", saleHandlers.GetSale)
	protected.PATCH("/sales/:id", saleHandlers.UpdateSale)
	protected.POST("/sales/:id/cancel", saleHandlers.CancelSale)
	protected.POST("/sales/:id/receipt", saleHandlers.GenerateReceipt)
	protected.DELETE("/sales/:id", saleHandlers.DeleteSale)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Vendora server v%s starting on port %s", version, port)
	e.Logger.Fatal(e.Start(fmt.Sprintf(":%s", port)))
}
