package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"clearspendly/internal/caching"
	"clearspendly/internal/models"
	"clearspendly/internal/repositories"
	"clearspendly/internal/services"
	"clearspendly/pkg/database"
	"clearspendly/pkg/logger"
)

// backfill walks every tenant and brings its provisioned defaults up to
// date: tenants that were never set up get a full provisioning run, and
// tenants that drifted get only their missing components re-created.
func main() {
	dryRun := flag.Bool("dry-run", false, "report what would be done without writing")
	batchSize := flag.Int("batch-size", 200, "tenants fetched per page")
	flag.Parse()

	_ = godotenv.Load()

	if err := logger.InitLogger(&logger.LogConfig{
		Level:       envOr("LOG_LEVEL", "info"),
		Environment: envOr("APP_ENV", "development"),
		ServiceName: "clearspendly-backfill",
	}); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	zlog := logger.GetLogger()
	defer zlog.Sync()

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		zlog.Fatal("DATABASE_URL environment variable is required")
	}

	ctx := context.Background()
	pool, err := database.NewPool(ctx, databaseURL, zlog)
	if err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	tenantRepo := repositories.NewTenantRepo(pool)
	userRepo := repositories.NewUserRepo(pool)

	// When the API's redis is reachable, repairs invalidate its cached
	// reads; without it the entries age out on their own TTL.
	var cacheSvc caching.CacheService
	if redisAddr := os.Getenv("REDIS_ADDR"); redisAddr != "" {
		cacheSvc = caching.NewRedisCacheService(redisAddr, os.Getenv("REDIS_PASSWORD"), 0, zlog)
	}

	setupSvc := services.NewTenantSetupService(services.SetupRepos{
		Tenants:          tenantRepo,
		Users:            userRepo,
		Tags:             repositories.NewTagRepo(pool),
		EmailTemplates:   repositories.NewEmailTemplateRepo(pool),
		InvoiceTemplates: repositories.NewInvoiceTemplateRepo(pool),
		Preferences:      repositories.NewUserPreferencesRepo(pool),
		MileageRates:     repositories.NewMileageRateRepo(pool),
		Usage:            repositories.NewTenantUsageRepo(pool),
		VendorCategories: repositories.NewVendorCategoryRepo(pool),
		SetupLogs:        repositories.NewSetupLogRepo(pool),
	}, cacheSvc, zlog, services.SetupConfig{})

	var provisioned, repaired, skipped, failed int

	offset := 0
	for {
		tenants, err := tenantRepo.List(ctx, *batchSize, offset)
		if err != nil {
			zlog.Fatal("failed to list tenants", zap.Error(err))
		}
		if len(tenants) == 0 {
			break
		}
		offset += len(tenants)

		for _, tenant := range tenants {
			done, err := setupSvc.CheckSetupStatus(ctx, tenant.ID)
			if err != nil {
				zlog.Error("status check failed",
					zap.String("tenant_id", tenant.ID.String()), zap.Error(err))
				failed++
				continue
			}

			owner, err := userRepo.FirstByTenant(ctx, tenant.ID)
			if err != nil {
				zlog.Warn("tenant has no users, skipping",
					zap.String("tenant_id", tenant.ID.String()))
				skipped++
				continue
			}

			if *dryRun {
				zlog.Info("dry run",
					zap.String("tenant_id", tenant.ID.String()),
					zap.Bool("setup_completed", done))
				continue
			}

			if !done {
				result := setupSvc.SetupTenant(ctx, setupContextFor(tenant, owner))
				if result.Success {
					provisioned++
				} else {
					zlog.Error("provisioning failed",
						zap.String("tenant_id", tenant.ID.String()),
						zap.Strings("errors", result.Errors))
					failed++
				}
				continue
			}

			result := setupSvc.AddMissingComponents(ctx, tenant.ID, owner.ID)
			if !result.Success {
				zlog.Error("repair failed",
					zap.String("tenant_id", tenant.ID.String()),
					zap.Strings("errors", result.Errors))
				failed++
			} else if len(result.Components) > 0 {
				repaired++
			} else {
				skipped++
			}
		}
	}

	zlog.Info("backfill complete",
		zap.Int("provisioned", provisioned),
		zap.Int("repaired", repaired),
		zap.Int("skipped", skipped),
		zap.Int("failed", failed))

	if failed > 0 {
		os.Exit(1)
	}
}

func setupContextFor(tenant *models.Tenant, owner *models.User) services.SetupContext {
	companyName := tenant.Name
	if companyName == "" {
		companyName = "My Company"
	}
	plan := services.PlanFree
	if raw, ok := tenant.Settings["subscription_plan"].(string); ok && raw != "" {
		plan = raw
	}
	return services.SetupContext{
		TenantID:         tenant.ID,
		UserID:           owner.ID,
		UserEmail:        owner.Email,
		CompanyName:      companyName,
		SubscriptionPlan: plan,
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
