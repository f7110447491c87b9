package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"clearspendly/internal/caching"
	"clearspendly/internal/models"
	"clearspendly/internal/repositories"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultStepTimeout = 30 * time.Second
	defaultMaxAttempts = 3
	defaultBackoffBase = time.Second
)

// SetupContext carries the immutable inputs of one provisioning run.
type SetupContext struct {
	TenantID         uuid.UUID `json:"tenant_id"`
	UserID           uuid.UUID `json:"user_id"`
	UserEmail        string    `json:"user_email"`
	CompanyName      string    `json:"company_name"`
	SubscriptionPlan string    `json:"subscription_plan"`
}

// SetupConfig tunes the orchestrator. Zero values take the defaults
// (30s step timeout, 3 attempts, 1s backoff base giving 2s and 4s delays).
type SetupConfig struct {
	StepTimeout time.Duration
	MaxAttempts int
	BackoffBase time.Duration
}

// StepOutcome is the per-step entry of a successful run's results.
type StepOutcome struct {
	Name       string `json:"name"`
	DurationMs int64  `json:"duration_ms"`
	Retries    int    `json:"retries"`
}

// ComponentRepair reports one component's outcome from a drift-repair pass.
type ComponentRepair struct {
	Component string `json:"component"`
	Step      string `json:"step"`
	Added     bool   `json:"added"`
	Error     string `json:"error,omitempty"`
}

// SetupResult is the single structured value every setup entry point returns;
// errors never escape the orchestrator as raw Go errors.
type SetupResult struct {
	Success           bool              `json:"success"`
	Message           string            `json:"message"`
	SessionID         uuid.UUID         `json:"session_id,omitempty"`
	TotalSteps        int               `json:"total_steps,omitempty"`
	StepsCompleted    int               `json:"steps_completed"`
	DurationMs        int64             `json:"duration_ms,omitempty"`
	Steps             []StepOutcome     `json:"steps,omitempty"`
	Components        []ComponentRepair `json:"components,omitempty"`
	Errors            []string          `json:"errors,omitempty"`
	RollbackPerformed bool              `json:"rollback_performed,omitempty"`
}

// SetupRepos bundles the table-scoped data access the steps need.
type SetupRepos struct {
	Tenants          repositories.TenantRepository
	Users            repositories.UserRepository
	Tags             repositories.TagRepository
	EmailTemplates   repositories.EmailTemplateRepository
	InvoiceTemplates repositories.InvoiceTemplateRepository
	Preferences      repositories.UserPreferencesRepository
	MileageRates     repositories.MileageRateRepository
	Usage            repositories.TenantUsageRepository
	VendorCategories repositories.VendorCategoryRepository
	SetupLogs        repositories.SetupLogRepository
}

type TenantSetupService interface {
	SetupTenant(ctx context.Context, sc SetupContext) *SetupResult
	AddMissingComponents(ctx context.Context, tenantID, userID uuid.UUID) *SetupResult
	CheckSetupStatus(ctx context.Context, tenantID uuid.UUID) (bool, error)
}

// tenantSetupService holds no per-run state; the completed-step accumulator
// lives on the stack of each SetupTenant call, so concurrent setups for
// different tenants never share mutable fields.
type tenantSetupService struct {
	repos  SetupRepos
	cache  caching.CacheService
	steps  []setupStep
	logger *zap.Logger
	cfg    SetupConfig
}

func NewTenantSetupService(repos SetupRepos, cache caching.CacheService, logger *zap.Logger, cfg SetupConfig) TenantSetupService {
	if cfg.StepTimeout <= 0 {
		cfg.StepTimeout = defaultStepTimeout
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = defaultMaxAttempts
	}
	if cfg.BackoffBase <= 0 {
		cfg.BackoffBase = defaultBackoffBase
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &tenantSetupService{
		repos:  repos,
		cache:  cache,
		steps:  setupSteps(),
		logger: logger,
		cfg:    cfg,
	}
}

type completedStep struct {
	step  setupStep
	state any
}

func (s *tenantSetupService) SetupTenant(ctx context.Context, sc SetupContext) (result *SetupResult) {
	sessionID := uuid.New()
	start := time.Now()
	log := s.logger.With(zap.String("session_id", sessionID.String()), zap.String("tenant_id", sc.TenantID.String()))

	if err := s.validateContext(ctx, sc); err != nil {
		log.Warn("setup context validation failed", zap.Error(err))
		return &SetupResult{
			Success:   false,
			Message:   "setup validation failed",
			SessionID: sessionID,
			Errors:    []string{err.Error()},
		}
	}

	// logData accumulates across status transitions so each audit update
	// appends to, rather than replaces, the prior fields.
	logData := models.JSONB{
		"status":            models.SetupStatusStarted,
		"session_id":        sessionID.String(),
		"user_email":        sc.UserEmail,
		"company_name":      sc.CompanyName,
		"subscription_plan": sc.SubscriptionPlan,
		"started_at":        start.UTC().Format(time.RFC3339),
	}
	s.recordStart(ctx, log, sessionID, sc, logData)

	var completed []completedStep

	defer func() {
		if r := recover(); r != nil {
			log.Error("setup aborted by panic", zap.Any("panic", r))
			rollbackErr := s.rollbackCompleted(ctx, log, sc, completed)
			s.invalidateTenantCache(ctx, log, sc.TenantID)
			s.recordRollback(ctx, log, sessionID, logData, len(completed), rollbackErr)
			result = &SetupResult{
				Success:           false,
				Message:           "tenant setup aborted",
				SessionID:         sessionID,
				TotalSteps:        len(s.steps),
				StepsCompleted:    len(completed),
				Errors:            []string{fmt.Sprint(r)},
				RollbackPerformed: true,
			}
		}
	}()

	var outcomes []StepOutcome
	for _, step := range s.steps {
		stepStart := time.Now()
		state, retries, err := s.runStepWithRetry(ctx, log, sc, step)
		if err != nil {
			log.Error("setup step failed, rolling back", zap.String("step", step.name), zap.Int("attempts", s.cfg.MaxAttempts), zap.Error(err))
			rollbackErr := s.rollbackCompleted(ctx, log, sc, completed)
			s.invalidateTenantCache(ctx, log, sc.TenantID)
			s.recordRollback(ctx, log, sessionID, logData, len(completed), rollbackErr)
			return &SetupResult{
				Success:           false,
				Message:           fmt.Sprintf("setup failed at step %q", step.name),
				SessionID:         sessionID,
				TotalSteps:        len(s.steps),
				StepsCompleted:    len(completed),
				Steps:             outcomes,
				Errors:            []string{err.Error()},
				RollbackPerformed: true,
			}
		}
		completed = append(completed, completedStep{step: step, state: state})
		outcomes = append(outcomes, StepOutcome{
			Name:       step.name,
			DurationMs: time.Since(stepStart).Milliseconds(),
			Retries:    retries,
		})
		log.Info("setup step completed", zap.String("step", step.name), zap.Int("retries", retries))
	}

	total := len(s.steps)
	logData["status"] = models.SetupStatusCompleted
	logData["completed_at"] = time.Now().UTC().Format(time.RFC3339)
	logData["summary"] = map[string]interface{}{
		"total_steps":     total,
		"completed_steps": len(completed),
		"success_rate":    float64(len(completed)) / float64(total) * 100,
	}
	s.recordUpdate(ctx, log, sessionID, len(completed), logData)

	log.Info("tenant setup completed", zap.Int("steps", total), zap.Duration("elapsed", time.Since(start)))
	return &SetupResult{
		Success:        true,
		Message:        "tenant setup completed",
		SessionID:      sessionID,
		TotalSteps:     total,
		StepsCompleted: len(completed),
		DurationMs:     time.Since(start).Milliseconds(),
		Steps:          outcomes,
	}
}

// validateContext fails fast on bad input: no steps run, no audit row is
// written, and nothing needs rolling back.
func (s *tenantSetupService) validateContext(ctx context.Context, sc SetupContext) error {
	if sc.TenantID == uuid.Nil {
		return errors.New("tenant id is required")
	}
	if sc.UserID == uuid.Nil {
		return errors.New("user id is required")
	}
	if strings.TrimSpace(sc.UserEmail) == "" {
		return errors.New("user email is required")
	}
	if strings.TrimSpace(sc.CompanyName) == "" {
		return errors.New("company name is required")
	}
	if _, err := s.repos.Tenants.GetByID(ctx, sc.TenantID); err != nil {
		return fmt.Errorf("tenant %s not readable: %w", sc.TenantID, err)
	}
	if _, err := s.repos.Users.GetByID(ctx, sc.TenantID, sc.UserID); err != nil {
		return fmt.Errorf("user %s not readable: %w", sc.UserID, err)
	}
	return nil
}

// runStepWithRetry executes a step up to MaxAttempts times, sleeping
// BackoffBase*2^attempt before each retry (2s then 4s at the defaults).
// Returned retries is the number of retries the successful (or final)
// attempt needed.
func (s *tenantSetupService) runStepWithRetry(ctx context.Context, log *zap.Logger, sc SetupContext, step setupStep) (any, int, error) {
	var lastErr error
	for attempt := 0; attempt < s.cfg.MaxAttempts; attempt++ {
		if attempt > 0 {
			delay := s.cfg.BackoffBase * (1 << attempt)
			log.Warn("retrying setup step", zap.String("step", step.name), zap.Int("attempt", attempt+1), zap.Duration("backoff", delay), zap.Error(lastErr))
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, attempt, ctx.Err()
			}
		}
		state, err := s.runStepOnce(ctx, sc, step)
		if err == nil {
			return state, attempt, nil
		}
		lastErr = err
	}
	return nil, s.cfg.MaxAttempts - 1, lastErr
}

// runStepOnce applies the per-step timeout. The execute call runs in its own
// goroutine so a data-access call that ignores context cancellation still
// cannot block the pipeline past the deadline.
func (s *tenantSetupService) runStepOnce(ctx context.Context, sc SetupContext, step setupStep) (any, error) {
	stepCtx, cancel := context.WithTimeout(ctx, s.cfg.StepTimeout)
	defer cancel()

	type outcome struct {
		state    any
		err      error
		panicked any
	}
	done := make(chan outcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- outcome{panicked: r}
			}
		}()
		state, err := step.execute(stepCtx, s.repos, sc)
		done <- outcome{state: state, err: err}
	}()

	select {
	case out := <-done:
		if out.panicked != nil {
			// Re-raise on the orchestrator goroutine so SetupTenant's
			// recover handles it; a panicking step is aborted, not retried.
			panic(out.panicked)
		}
		return out.state, out.err
	case <-stepCtx.Done():
		if errors.Is(stepCtx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("step %q timed out after %s", step.name, s.cfg.StepTimeout)
		}
		return nil, stepCtx.Err()
	}
}

// rollbackCompleted undoes every completed step in reverse order. Individual
// failures are logged and skipped so later (earlier-executed) steps still get
// their rollback; the first failure is returned so the audit record can be
// marked rollback_failed.
func (s *tenantSetupService) rollbackCompleted(ctx context.Context, log *zap.Logger, sc SetupContext, completed []completedStep) error {
	var firstErr error
	for i := len(completed) - 1; i >= 0; i-- {
		cs := completed[i]
		if cs.step.rollback == nil {
			continue
		}
		if err := cs.step.rollback(ctx, s.repos, sc, cs.state); err != nil {
			log.Error("rollback failed for step", zap.String("step", cs.step.name), zap.Error(err))
			if firstErr == nil {
				firstErr = fmt.Errorf("rollback of %q failed: %w", cs.step.name, err)
			}
			continue
		}
		log.Info("rolled back step", zap.String("step", cs.step.name))
	}
	return firstErr
}

// Rollback deletes rows that readers may still hold cached, so the whole
// tenant namespace is dropped. Invalidation is best effort, like the rollback
// itself.
func (s *tenantSetupService) invalidateTenantCache(ctx context.Context, log *zap.Logger, tenantID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateTenantCache(ctx, tenantID); err != nil {
		log.Warn("tenant cache invalidation failed", zap.Error(err))
	}
}

// invalidateComponentCache drops the cached read models a re-seeded component
// invalidates: repair creates rows with fresh ids, and a cached copy from
// before the repair would keep serving ids that no longer exist.
func (s *tenantSetupService) invalidateComponentCache(ctx context.Context, log *zap.Logger, tenantID uuid.UUID, step string) {
	if s.cache == nil {
		return
	}
	var err error
	switch step {
	case StepTagSystem:
		err = s.cache.DeleteTagCategories(ctx, tenantID)
	case StepUsageTracking:
		err = s.cache.DeleteTenantUsage(ctx, tenantID)
	}
	if err != nil {
		log.Warn("component cache invalidation failed", zap.String("step", step), zap.Error(err))
	}
}

// Audit writes are best effort: a logging-infrastructure problem must never
// block or fail provisioning, so errors are observed locally and discarded.
func (s *tenantSetupService) recordStart(ctx context.Context, log *zap.Logger, sessionID uuid.UUID, sc SetupContext, logData models.JSONB) {
	entry := &models.SetupLog{
		ID:        uuid.New(),
		SessionID: sessionID,
		TenantID:  sc.TenantID,
		UserID:    sc.UserID,
		SetupData: logData,
	}
	if err := s.repos.SetupLogs.Create(ctx, entry); err != nil {
		log.Warn("setup audit write failed", zap.Error(err))
	}
}

func (s *tenantSetupService) recordUpdate(ctx context.Context, log *zap.Logger, sessionID uuid.UUID, stepsCompleted int, logData models.JSONB) {
	if err := s.repos.SetupLogs.UpdateBySession(ctx, sessionID, stepsCompleted, logData); err != nil {
		log.Warn("setup audit update failed", zap.Error(err))
	}
}

func (s *tenantSetupService) recordRollback(ctx context.Context, log *zap.Logger, sessionID uuid.UUID, logData models.JSONB, stepsCompleted int, rollbackErr error) {
	if rollbackErr != nil {
		logData["status"] = models.SetupStatusRollbackFailed
		logData["rollback_error"] = rollbackErr.Error()
	} else {
		logData["status"] = models.SetupStatusRolledBack
	}
	logData["rolled_back_at"] = time.Now().UTC().Format(time.RFC3339)
	s.recordUpdate(ctx, log, sessionID, stepsCompleted, logData)
}

// AddMissingComponents is the idempotent repair pass: it probes each
// component table and re-runs only the missing steps. No retry and no
// rollback; per-component failures are reported rather than aborting the
// whole repair.
func (s *tenantSetupService) AddMissingComponents(ctx context.Context, tenantID, userID uuid.UUID) *SetupResult {
	log := s.logger.With(zap.String("tenant_id", tenantID.String()))

	sc := SetupContext{
		TenantID:         tenantID,
		UserID:           userID,
		CompanyName:      "My Company",
		SubscriptionPlan: PlanFree,
	}
	if tenant, err := s.repos.Tenants.GetByID(ctx, tenantID); err == nil && tenant.Name != "" {
		sc.CompanyName = tenant.Name
	}

	missing, err := s.identifyMissingComponents(ctx, tenantID)
	if err != nil {
		return &SetupResult{
			Success: false,
			Message: "failed to inspect tenant components",
			Errors:  []string{err.Error()},
		}
	}

	var repairs []ComponentRepair
	added := 0
	for _, component := range missing {
		step, ok := s.stepByName(component.step)
		if !ok {
			continue
		}
		repair := ComponentRepair{Component: component.name, Step: component.step}
		if _, err := step.execute(ctx, s.repos, sc); err != nil {
			log.Error("component repair failed", zap.String("component", component.name), zap.Error(err))
			repair.Error = err.Error()
		} else {
			log.Info("missing component added", zap.String("component", component.name))
			repair.Added = true
			added++
			s.invalidateComponentCache(ctx, log, tenantID, component.step)
		}
		repairs = append(repairs, repair)
	}

	return &SetupResult{
		Success:        true,
		Message:        fmt.Sprintf("%d missing components added", added),
		StepsCompleted: added,
		Components:     repairs,
	}
}

func (s *tenantSetupService) identifyMissingComponents(ctx context.Context, tenantID uuid.UUID) ([]setupComponent, error) {
	var missing []setupComponent
	for _, component := range setupComponents() {
		present, err := component.exists(ctx, s.repos, tenantID)
		if err != nil {
			return nil, fmt.Errorf("probing %s: %w", component.name, err)
		}
		if !present {
			missing = append(missing, component)
		}
	}
	return missing, nil
}

func (s *tenantSetupService) stepByName(name string) (setupStep, bool) {
	for _, step := range s.steps {
		if step.name == name {
			return step, true
		}
	}
	return setupStep{}, false
}

// CheckSetupStatus reports whether a setup session was ever recorded for the
// tenant; callers use it to choose between SetupTenant and
// AddMissingComponents.
func (s *tenantSetupService) CheckSetupStatus(ctx context.Context, tenantID uuid.UUID) (bool, error) {
	return s.repos.SetupLogs.ExistsForTenant(ctx, tenantID)
}
