package background

import (
	"context"
	"sync"
	"time"

	"clearspendly/internal/repositories"
	"clearspendly/internal/services"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// JobScheduler manages recurring background jobs for a distributed environment.
type JobScheduler struct {
	scheduler  gocron.Scheduler
	usageSvc   services.UsageService
	invoiceSvc services.InvoiceService
	setupSvc   services.TenantSetupService
	tenantRepo repositories.TenantRepository
	userRepo   repositories.UserRepository
	logger     *zap.Logger
	jobs       map[string]gocron.Job
	mu         sync.RWMutex
}

// NewJobScheduler creates a scheduler with all recurring jobs registered.
func NewJobScheduler(usageSvc services.UsageService, invoiceSvc services.InvoiceService,
	setupSvc services.TenantSetupService, tenantRepo repositories.TenantRepository,
	userRepo repositories.UserRepository, logger *zap.Logger) (*JobScheduler, error) {

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	js := &JobScheduler{
		scheduler:  scheduler,
		usageSvc:   usageSvc,
		invoiceSvc: invoiceSvc,
		setupSvc:   setupSvc,
		tenantRepo: tenantRepo,
		userRepo:   userRepo,
		logger:     logger,
		jobs:       make(map[string]gocron.Job),
	}

	js.registerJobs()

	return js, nil
}

// Start starts the job scheduler.
func (js *JobScheduler) Start() {
	js.logger.Info("starting background job scheduler")
	js.scheduler.Start()
}

// Stop stops the job scheduler.
func (js *JobScheduler) Stop() error {
	js.logger.Info("stopping background job scheduler")
	return js.scheduler.Shutdown()
}

// registerJobs registers all recurring jobs.
func (js *JobScheduler) registerJobs() {
	register := func(name string, interval time.Duration, taskFn interface{}, params ...interface{}) {
		if err := js.AddJob(name, interval, taskFn, params...); err != nil {
			js.logger.Error("failed to register job", zap.String("job", name), zap.Error(err))
		}
	}

	// Billing period rollover - hourly so a tenant's window never lags far
	// behind its expiry.
	register("usage-period-rollover", 1*time.Hour, js.rollUsagePeriods, context.Background())

	// Overdue invoices - hourly.
	register("overdue-invoices", 1*time.Hour, js.markOverdueInvoices, context.Background())

	// Setup drift repair - daily sweep that re-creates any default
	// components a tenant has lost since provisioning.
	register("setup-drift-repair", 24*time.Hour, js.repairSetupDrift, context.Background())

	js.logger.Info("registered background jobs", zap.Int("count", len(js.jobs)))
}

// rollUsagePeriods resets usage counters for tenants whose billing window
// has closed.
func (js *JobScheduler) rollUsagePeriods(ctx context.Context) error {
	rolled, err := js.usageSvc.RollExpiredPeriods(ctx, time.Now())
	if err != nil {
		js.logger.Error("usage period rollover failed", zap.Error(err))
		return err
	}
	if rolled > 0 {
		js.logger.Info("rolled expired usage periods", zap.Int("tenants", rolled))
	}
	return nil
}

// markOverdueInvoices flags sent invoices that are past their due date.
func (js *JobScheduler) markOverdueInvoices(ctx context.Context) error {
	marked, err := js.invoiceSvc.MarkOverdueInvoices(ctx, time.Now())
	if err != nil {
		js.logger.Error("overdue invoice sweep failed", zap.Error(err))
		return err
	}
	if marked > 0 {
		js.logger.Info("marked invoices overdue", zap.Int64("invoices", marked))
	}
	return nil
}

// repairSetupDrift walks all tenants and re-adds any missing default
// components. Tenants are processed with bounded concurrency.
func (js *JobScheduler) repairSetupDrift(ctx context.Context) error {
	tenants, err := js.tenantRepo.List(ctx, 1000, 0)
	if err != nil {
		js.logger.Error("failed to list tenants for drift repair", zap.Error(err))
		return err
	}

	semaphore := make(chan struct{}, 5)
	var wg sync.WaitGroup

	for _, tenant := range tenants {
		wg.Add(1)
		go func(tenantID uuid.UUID) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			done, err := js.setupSvc.CheckSetupStatus(ctx, tenantID)
			if err != nil {
				js.logger.Warn("drift repair: status check failed",
					zap.String("tenant_id", tenantID.String()), zap.Error(err))
				return
			}
			if !done {
				// Never provisioned; the backfill command owns that path.
				return
			}

			owner, err := js.userRepo.FirstByTenant(ctx, tenantID)
			if err != nil {
				js.logger.Warn("drift repair: no owner found",
					zap.String("tenant_id", tenantID.String()), zap.Error(err))
				return
			}

			result := js.setupSvc.AddMissingComponents(ctx, tenantID, owner.ID)
			if !result.Success {
				js.logger.Warn("drift repair failed",
					zap.String("tenant_id", tenantID.String()),
					zap.Strings("errors", result.Errors))
			} else if len(result.Components) > 0 {
				js.logger.Info("drift repair added components",
					zap.String("tenant_id", tenantID.String()),
					zap.Int("components", len(result.Components)))
			}
		}(tenant.ID)
	}

	wg.Wait()
	js.logger.Info("completed setup drift sweep", zap.Int("tenants", len(tenants)))
	return nil
}

// AddJob schedules a named recurring job. Jobs run in singleton mode so a
// slow run is rescheduled rather than overlapped.
func (js *JobScheduler) AddJob(name string, interval time.Duration, taskFn interface{}, params ...interface{}) error {
	js.mu.Lock()
	defer js.mu.Unlock()

	job, err := js.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(taskFn, params...),
		gocron.WithName(name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return err
	}

	js.jobs[name] = job
	return nil
}

// GetJobStatus returns information about scheduled jobs.
func (js *JobScheduler) GetJobStatus() map[string]interface{} {
	js.mu.RLock()
	defer js.mu.RUnlock()

	jobs := make([]string, 0, len(js.jobs))
	for name := range js.jobs {
		jobs = append(jobs, name)
	}

	return map[string]interface{}{
		"total_jobs": len(js.jobs),
		"jobs":       jobs,
	}
}
