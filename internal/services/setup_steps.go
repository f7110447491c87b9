package services

import (
	"context"
	"time"

	"clearspendly/internal/models"

	"github.com/google/uuid"
)

// Step names, in execution order. Rollback always runs in the exact reverse
// of this order.
const (
	StepTagSystem        = "Setup Tag System"
	StepEmailTemplates   = "Setup Email Templates"
	StepInvoiceTemplate  = "Setup Invoice Template"
	StepUserPreferences  = "Setup User Preferences"
	StepMileageRates     = "Setup IRS Mileage Rates"
	StepUsageTracking    = "Setup Usage Tracking"
	StepVendorCategories = "Setup Vendor Categories"
	StepTenantBranding   = "Setup Tenant Branding"
)

// setupStep is a plain record of a named unit of provisioning work. Steps do
// not read each other's results; execute returns whatever state its rollback
// needs (only branding uses this, to restore the prior settings snapshot).
type setupStep struct {
	name     string
	execute  func(ctx context.Context, repos SetupRepos, sc SetupContext) (any, error)
	rollback func(ctx context.Context, repos SetupRepos, sc SetupContext, state any) error
}

func setupSteps() []setupStep {
	return []setupStep{
		{name: StepTagSystem, execute: executeTagSystem, rollback: rollbackTagSystem},
		{name: StepEmailTemplates, execute: executeEmailTemplates, rollback: rollbackEmailTemplates},
		{name: StepInvoiceTemplate, execute: executeInvoiceTemplate, rollback: rollbackInvoiceTemplate},
		{name: StepUserPreferences, execute: executeUserPreferences, rollback: rollbackUserPreferences},
		{name: StepMileageRates, execute: executeMileageRates, rollback: rollbackMileageRates},
		{name: StepUsageTracking, execute: executeUsageTracking, rollback: rollbackUsageTracking},
		{name: StepVendorCategories, execute: executeVendorCategories, rollback: rollbackVendorCategories},
		{name: StepTenantBranding, execute: executeTenantBranding, rollback: rollbackTenantBranding},
	}
}

func executeTagSystem(ctx context.Context, repos SetupRepos, sc SetupContext) (any, error) {
	for _, def := range defaultTagCategories {
		category := &models.TagCategory{
			ID:          uuid.New(),
			TenantID:    sc.TenantID,
			Name:        def.Name,
			Description: def.Description,
			Color:       def.Color,
			Required:    def.Required,
			Multiple:    def.Multiple,
			SortOrder:   def.SortOrder,
		}
		if err := repos.Tags.CreateCategory(ctx, category); err != nil {
			return nil, err
		}
		for i, name := range def.Tags {
			tag := &models.Tag{
				ID:         uuid.New(),
				TenantID:   sc.TenantID,
				CategoryID: category.ID,
				Name:       name,
				SortOrder:  i + 1,
			}
			if err := repos.Tags.CreateTag(ctx, tag); err != nil {
				return nil, err
			}
		}
	}
	return nil, nil
}

func rollbackTagSystem(ctx context.Context, repos SetupRepos, sc SetupContext, _ any) error {
	if err := repos.Tags.DeleteTagsByTenant(ctx, sc.TenantID); err != nil {
		return err
	}
	return repos.Tags.DeleteCategoriesByTenant(ctx, sc.TenantID)
}

func executeEmailTemplates(ctx context.Context, repos SetupRepos, sc SetupContext) (any, error) {
	for _, def := range defaultEmailTemplates {
		template := &models.EmailTemplate{
			ID:             uuid.New(),
			TenantID:       sc.TenantID,
			TemplateType:   def.Type,
			Subject:        def.Subject,
			Greeting:       def.Greeting,
			Footer:         def.Footer,
			PrimaryColor:   def.PrimaryColor,
			SecondaryColor: def.SecondaryColor,
			TextColor:      def.TextColor,
			CompanyName:    sc.CompanyName,
		}
		if err := repos.EmailTemplates.Create(ctx, template); err != nil {
			return nil, err
		}
	}
	return nil, nil
}

func rollbackEmailTemplates(ctx context.Context, repos SetupRepos, sc SetupContext, _ any) error {
	return repos.EmailTemplates.DeleteByTenant(ctx, sc.TenantID)
}

func executeInvoiceTemplate(ctx context.Context, repos SetupRepos, sc SetupContext) (any, error) {
	template := &models.InvoiceTemplate{
		ID:           uuid.New(),
		TenantID:     sc.TenantID,
		Name:         "Default Template",
		TemplateData: defaultInvoiceTemplateData(),
		IsDefault:    true,
	}
	if err := repos.InvoiceTemplates.Create(ctx, template); err != nil {
		return nil, err
	}
	return nil, nil
}

func rollbackInvoiceTemplate(ctx context.Context, repos SetupRepos, sc SetupContext, _ any) error {
	return repos.InvoiceTemplates.DeleteByTenant(ctx, sc.TenantID)
}

func executeUserPreferences(ctx context.Context, repos SetupRepos, sc SetupContext) (any, error) {
	prefs := &models.UserPreferences{
		ID:          uuid.New(),
		TenantID:    sc.TenantID,
		UserID:      sc.UserID,
		Preferences: defaultUserPreferences(),
	}
	if err := repos.Preferences.Create(ctx, prefs); err != nil {
		return nil, err
	}
	return nil, nil
}

func rollbackUserPreferences(ctx context.Context, repos SetupRepos, sc SetupContext, _ any) error {
	return repos.Preferences.DeleteByTenantAndUser(ctx, sc.TenantID, sc.UserID)
}

func executeMileageRates(ctx context.Context, repos SetupRepos, sc SetupContext) (any, error) {
	for _, def := range defaultMileageRates {
		rate := &models.IRSMileageRate{
			ID:            uuid.New(),
			TenantID:      sc.TenantID,
			UserID:        sc.UserID,
			Year:          def.Year,
			Rate:          def.Rate,
			EffectiveDate: def.EffectiveDate,
			Notes:         def.Notes,
		}
		if err := repos.MileageRates.Create(ctx, rate); err != nil {
			return nil, err
		}
	}
	return nil, nil
}

func rollbackMileageRates(ctx context.Context, repos SetupRepos, sc SetupContext, _ any) error {
	return repos.MileageRates.DeleteByTenant(ctx, sc.TenantID)
}

func executeUsageTracking(ctx context.Context, repos SetupRepos, sc SetupContext) (any, error) {
	now := time.Now().UTC()
	usage := &models.TenantUsage{
		ID:               uuid.New(),
		TenantID:         sc.TenantID,
		SubscriptionPlan: sc.SubscriptionPlan,
		PeriodStart:      now,
		PeriodEnd:        now.AddDate(0, 0, 30),
		Limits:           limitsForPlan(sc.SubscriptionPlan),
		Usage:            zeroUsageCounters(),
	}
	if err := repos.Usage.Create(ctx, usage); err != nil {
		return nil, err
	}
	return nil, nil
}

func rollbackUsageTracking(ctx context.Context, repos SetupRepos, sc SetupContext, _ any) error {
	return repos.Usage.DeleteByTenant(ctx, sc.TenantID)
}

func executeVendorCategories(ctx context.Context, repos SetupRepos, sc SetupContext) (any, error) {
	for _, name := range defaultVendorCategories {
		category := &models.VendorCategory{
			ID:        uuid.New(),
			TenantID:  sc.TenantID,
			CreatedBy: sc.UserID,
			Name:      name,
		}
		if err := repos.VendorCategories.Create(ctx, category); err != nil {
			return nil, err
		}
	}
	return nil, nil
}

func rollbackVendorCategories(ctx context.Context, repos SetupRepos, sc SetupContext, _ any) error {
	return repos.VendorCategories.DeleteByTenant(ctx, sc.TenantID)
}

// executeTenantBranding updates the tenant row in place. The prior settings
// value is returned as step state so rollback restores exactly what was there
// before, including pre-existing settings from before setup ran.
func executeTenantBranding(ctx context.Context, repos SetupRepos, sc SetupContext) (any, error) {
	tenant, err := repos.Tenants.GetByID(ctx, sc.TenantID)
	if err != nil {
		return nil, err
	}
	prior := tenant.Settings
	if err := repos.Tenants.UpdateSettings(ctx, sc.TenantID, brandingSettings(sc.CompanyName, sc.SubscriptionPlan)); err != nil {
		return nil, err
	}
	return prior, nil
}

func rollbackTenantBranding(ctx context.Context, repos SetupRepos, sc SetupContext, state any) error {
	prior, _ := state.(models.JSONB)
	if prior == nil {
		prior = models.JSONB{}
	}
	return repos.Tenants.UpdateSettings(ctx, sc.TenantID, prior)
}

// setupComponent maps a probe of one seeded table to the step that repairs
// it. Used by the drift detector.
type setupComponent struct {
	name   string
	step   string
	exists func(ctx context.Context, repos SetupRepos, tenantID uuid.UUID) (bool, error)
}

func setupComponents() []setupComponent {
	return []setupComponent{
		{name: "tag_system", step: StepTagSystem, exists: func(ctx context.Context, repos SetupRepos, tenantID uuid.UUID) (bool, error) {
			return repos.Tags.CategoriesExist(ctx, tenantID)
		}},
		{name: "email_templates", step: StepEmailTemplates, exists: func(ctx context.Context, repos SetupRepos, tenantID uuid.UUID) (bool, error) {
			return repos.EmailTemplates.ExistsForTenant(ctx, tenantID)
		}},
		{name: "invoice_template", step: StepInvoiceTemplate, exists: func(ctx context.Context, repos SetupRepos, tenantID uuid.UUID) (bool, error) {
			return repos.InvoiceTemplates.ExistsForTenant(ctx, tenantID)
		}},
		{name: "user_preferences", step: StepUserPreferences, exists: func(ctx context.Context, repos SetupRepos, tenantID uuid.UUID) (bool, error) {
			return repos.Preferences.ExistsForTenant(ctx, tenantID)
		}},
		{name: "mileage_rates", step: StepMileageRates, exists: func(ctx context.Context, repos SetupRepos, tenantID uuid.UUID) (bool, error) {
			return repos.MileageRates.ExistsForTenant(ctx, tenantID)
		}},
		{name: "usage_tracking", step: StepUsageTracking, exists: func(ctx context.Context, repos SetupRepos, tenantID uuid.UUID) (bool, error) {
			return repos.Usage.ExistsForTenant(ctx, tenantID)
		}},
		{name: "vendor_categories", step: StepVendorCategories, exists: func(ctx context.Context, repos SetupRepos, tenantID uuid.UUID) (bool, error) {
			return repos.VendorCategories.ExistsForTenant(ctx, tenantID)
		}},
		{name: "tenant_branding", step: StepTenantBranding, exists: func(ctx context.Context, repos SetupRepos, tenantID uuid.UUID) (bool, error) {
			tenant, err := repos.Tenants.GetByID(ctx, tenantID)
			if err != nil {
				return false, err
			}
			return len(tenant.Settings) > 0, nil
		}},
	}
}
