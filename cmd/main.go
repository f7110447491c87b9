package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/random"
	"go.uber.org/zap"

	"clearspendly/internal/caching"
	"clearspendly/internal/handlers"
	"clearspendly/internal/jobs/background"
	"clearspendly/internal/middleware"
	"clearspendly/internal/repositories"
	"clearspendly/internal/services"
	"clearspendly/pkg/database"
	"clearspendly/pkg/logger"
)

const version = "1.0.0"

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	if err := logger.InitLogger(&logger.LogConfig{
		Level:       envOr("LOG_LEVEL", "info"),
		Environment: envOr("APP_ENV", "development"),
		ServiceName: "clearspendly",
	}); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	zlog := logger.GetLogger()
	defer zlog.Sync()

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		zlog.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := database.NewPool(context.Background(), databaseURL, zlog)
	if err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = random.String(32)
		zlog.Warn("JWT_SECRET not set, using generated secret (tokens will not survive restarts)")
	}

	redisAddr := envOr("REDIS_ADDR", "localhost:6379")
	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisDB := 0
	if redisDBStr := os.Getenv("REDIS_DB"); redisDBStr != "" {
		if db, err := strconv.Atoi(redisDBStr); err == nil {
			redisDB = db
		}
	}

	minioEndpoint := envOr("MINIO_ENDPOINT", "localhost:9000")
	minioAccessKey := envOr("MINIO_ACCESS_KEY", "minioadmin")
	minioSecretKey := envOr("MINIO_SECRET_KEY", "minioadmin")
	useSSL := os.Getenv("MINIO_USE_SSL") == "true"
	receiptBucket := envOr("RECEIPT_BUCKET", "clearspendly-receipts")

	storage, err := services.NewMinioStorage(minioEndpoint, minioAccessKey, minioSecretKey, useSSL)
	if err != nil {
		zlog.Fatal("failed to initialize object storage", zap.Error(err))
	}
	if err := storage.EnsureBucketExists(context.Background(), receiptBucket); err != nil {
		zlog.Warn("could not ensure receipt bucket exists", zap.Error(err))
	}

	// Repositories
	tenantRepo := repositories.NewTenantRepo(pool)
	userRepo := repositories.NewUserRepo(pool)
	tagRepo := repositories.NewTagRepo(pool)
	emailTemplateRepo := repositories.NewEmailTemplateRepo(pool)
	invoiceTemplateRepo := repositories.NewInvoiceTemplateRepo(pool)
	preferencesRepo := repositories.NewUserPreferencesRepo(pool)
	mileageRateRepo := repositories.NewMileageRateRepo(pool)
	usageRepo := repositories.NewTenantUsageRepo(pool)
	vendorCategoryRepo := repositories.NewVendorCategoryRepo(pool)
	setupLogRepo := repositories.NewSetupLogRepo(pool)
	receiptRepo := repositories.NewReceiptRepo(pool)
	expenseRepo := repositories.NewExpenseRepo(pool)
	invoiceRepo := repositories.NewInvoiceRepo(pool)
	paymentRepo := repositories.NewPaymentRepo(pool)

	// Cache
	cacheSvc := caching.NewRedisCacheService(redisAddr, redisPassword, redisDB, zlog)

	// Services
	setupSvc := services.NewTenantSetupService(services.SetupRepos{
		Tenants:          tenantRepo,
		Users:            userRepo,
		Tags:             tagRepo,
		EmailTemplates:   emailTemplateRepo,
		InvoiceTemplates: invoiceTemplateRepo,
		Preferences:      preferencesRepo,
		MileageRates:     mileageRateRepo,
		Usage:            usageRepo,
		VendorCategories: vendorCategoryRepo,
		SetupLogs:        setupLogRepo,
	}, cacheSvc, zlog, services.SetupConfig{})

	usageSvc := services.NewUsageService(usageRepo, cacheSvc)
	expenseSvc := services.NewExpenseService(expenseRepo, tagRepo, cacheSvc)
	receiptSvc := services.NewReceiptService(receiptRepo, storage, usageSvc, receiptBucket)
	invoiceSvc := services.NewInvoiceService(invoiceRepo, invoiceTemplateRepo, usageSvc)
	paymentSvc := services.NewPaymentService(paymentRepo, invoiceRepo)

	// Handlers
	setupHandlers := handlers.NewSetupHandlers(setupSvc)
	expenseHandlers := handlers.NewExpenseHandlers(expenseSvc)
	receiptHandlers := handlers.NewReceiptHandlers(receiptSvc)
	invoiceHandlers := handlers.NewInvoiceHandlers(invoiceSvc)
	paymentHandlers := handlers.NewPaymentHandlers(paymentSvc)
	tagHandlers := handlers.NewTagHandlers(tagRepo, cacheSvc)
	usageHandlers := handlers.NewUsageHandlers(usageSvc)

	// Background jobs
	scheduler, err := background.NewJobScheduler(usageSvc, invoiceSvc, setupSvc, tenantRepo, userRepo, zlog)
	if err != nil {
		zlog.Fatal("failed to create job scheduler", zap.Error(err))
	}
	scheduler.Start()
	defer scheduler.Stop()

	healthHandlers := handlers.NewHealthHandlers(pool, cacheSvc, storage, scheduler, receiptBucket)

	// HTTP server
	e := echo.New()
	e.HideBanner = true

	e.Use(logger.Middleware())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())

	// Health endpoints (no auth required)
	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/health/ready", healthHandlers.ReadinessCheck)
	e.GET("/health/live", healthHandlers.LivenessCheck)
	e.GET("/metrics", healthHandlers.GetMetrics)

	v1 := e.Group("/v1")

	protected := v1.Group("")
	protected.Use(echojwt.WithConfig(echojwt.Config{SigningKey: []byte(jwtSecret)}))
	protected.Use(middleware.TenantContext(userRepo))

	// Tenant provisioning routes
	protected.POST("/tenants/:id/setup", setupHandlers.SetupTenant)
	protected.POST("/tenants/:id/repair", setupHandlers.RepairTenant)
	protected.GET("/tenants/:id/setup-status", setupHandlers.GetSetupStatus)

	// Tag taxonomy routes
	protected.GET("/tags", tagHandlers.ListTags)
	protected.GET("/tags/categories", tagHandlers.ListTagCategories)

	// Expense routes
	protected.GET("/expenses", expenseHandlers.ListExpenses)
	protected.POST("/expenses", expenseHandlers.CreateExpense)
	protected.GET("/expenses/:id", expenseHandlers.GetExpenseByID)
	protected.PUT("/expenses/:id/tags", expenseHandlers.UpdateExpenseTags)
	protected.DELETE("/expenses/:id", expenseHandlers.DeleteExpense)

	// Receipt routes
	protected.GET("/receipts", receiptHandlers.ListReceipts)
	protected.POST("/receipts", receiptHandlers.UploadReceipt)
	protected.GET("/receipts/:id/url", receiptHandlers.GetReceiptURL)
	protected.DELETE("/receipts/:id", receiptHandlers.DeleteReceipt)

	// Invoice routes
	protected.GET("/invoices", invoiceHandlers.ListInvoices)
	protected.POST("/invoices", invoiceHandlers.CreateInvoice)
	protected.GET("/invoices/:id", invoiceHandlers.GetInvoiceByID)
	protected.POST("/invoices/:id/send", invoiceHandlers.SendInvoice)

	// Payment routes
	protected.POST("/payments", paymentHandlers.RecordPayment)
	protected.GET("/payments/:id", paymentHandlers.GetPaymentByID)

	// Usage routes
	protected.GET("/usage", usageHandlers.GetUsage)

	port := envOr("PORT", "8080")
	zlog.Info("clearspendly server starting", zap.String("version", version), zap.String("port", port))

	go func() {
		if err := e.Start(fmt.Sprintf(":%s", port)); err != nil {
			zlog.Info("server stopped", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		zlog.Error("server shutdown failed", zap.Error(err))
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
