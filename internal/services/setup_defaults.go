package services

import (
	"time"

	"clearspendly/internal/models"
)

// Subscription plans recognized by setup. Unknown plan strings fall back to
// the free tier limits.
const (
	PlanFree         = "free"
	PlanStarter      = "starter"
	PlanProfessional = "professional"
	PlanEnterprise   = "enterprise"
)

type tagCategoryDef struct {
	Name        string
	Description string
	Color       string
	Required    bool
	Multiple    bool
	SortOrder   int
	Tags        []string
}

var defaultTagCategories = []tagCategoryDef{
	{
		Name:        "Expense Type",
		Description: "What kind of business expense this is",
		Color:       "#2563eb",
		Required:    true,
		Multiple:    false,
		SortOrder:   1,
		Tags:        []string{"Travel", "Meals", "Office Supplies", "Software", "Utilities", "Marketing", "Professional Services"},
	},
	{
		Name:        "Payment Method",
		Description: "How the expense was paid",
		Color:       "#16a34a",
		Required:    true,
		Multiple:    false,
		SortOrder:   2,
		Tags:        []string{"Credit Card", "Debit Card", "Cash", "Check", "Bank Transfer"},
	},
	{
		Name:        "Tax Status",
		Description: "Deductibility for tax filing",
		Color:       "#ca8a04",
		Required:    false,
		Multiple:    false,
		SortOrder:   3,
		Tags:        []string{"Deductible", "Non-Deductible", "Needs Review"},
	},
	{
		Name:        "Client / Project",
		Description: "Client or project the expense belongs to",
		Color:       "#9333ea",
		Required:    false,
		Multiple:    true,
		SortOrder:   4,
		Tags:        []string{"Unassigned"},
	},
	{
		Name:        "Billing",
		Description: "Whether the expense is billable to a client",
		Color:       "#dc2626",
		Required:    false,
		Multiple:    false,
		SortOrder:   5,
		Tags:        []string{"Billable", "Non-Billable"},
	},
}

type emailTemplateDef struct {
	Type           string
	Subject        string
	Greeting       string
	Footer         string
	PrimaryColor   string
	SecondaryColor string
	TextColor      string
}

var defaultEmailTemplates = []emailTemplateDef{
	{
		Type:           models.EmailTemplateInvoice,
		Subject:        "New invoice from {{company_name}}",
		Greeting:       "Hi {{client_name}},",
		Footer:         "Thank you for your business.",
		PrimaryColor:   "#2563eb",
		SecondaryColor: "#eff6ff",
		TextColor:      "#1f2937",
	},
	{
		Type:           models.EmailTemplatePaymentReminder,
		Subject:        "Payment reminder: invoice {{invoice_number}}",
		Greeting:       "Hi {{client_name}},",
		Footer:         "Please disregard this reminder if payment has already been sent.",
		PrimaryColor:   "#ca8a04",
		SecondaryColor: "#fefce8",
		TextColor:      "#1f2937",
	},
	{
		Type:           models.EmailTemplatePaymentReceived,
		Subject:        "Payment received for invoice {{invoice_number}}",
		Greeting:       "Hi {{client_name}},",
		Footer:         "We appreciate your prompt payment.",
		PrimaryColor:   "#16a34a",
		SecondaryColor: "#f0fdf4",
		TextColor:      "#1f2937",
	},
}

func defaultInvoiceTemplateData() models.JSONB {
	return models.JSONB{
		"layout": "standard",
		"colors": map[string]interface{}{
			"primary":   "#2563eb",
			"secondary": "#64748b",
			"accent":    "#0f766e",
		},
		"typography": map[string]interface{}{
			"font_family":  "Inter",
			"heading_size": 20,
			"body_size":    12,
		},
		"sections": map[string]interface{}{
			"show_logo":          true,
			"show_notes":         true,
			"show_payment_terms": true,
			"show_tax_summary":   true,
		},
	}
}

func defaultUserPreferences() models.JSONB {
	return models.JSONB{
		"currency":      "USD",
		"timezone":      "UTC",
		"date_format":   "MM/DD/YYYY",
		"number_format": "1,234.56",
		"notifications": map[string]interface{}{
			"invoice_sent":     true,
			"payment_received": true,
			"weekly_summary":   false,
		},
		"business": map[string]interface{}{
			"fiscal_year_start":     "01-01",
			"default_payment_terms": 30,
			"mileage_unit":          "mi",
		},
	}
}

type mileageRateDef struct {
	Year          int
	Rate          float64
	EffectiveDate time.Time
	Notes         string
}

var defaultMileageRates = []mileageRateDef{
	{Year: 2023, Rate: 0.655, EffectiveDate: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), Notes: "IRS standard mileage rate for 2023"},
	{Year: 2024, Rate: 0.67, EffectiveDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Notes: "IRS standard mileage rate for 2024"},
	{Year: 2025, Rate: 0.70, EffectiveDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), Notes: "IRS standard mileage rate for 2025"},
}

// Per-plan quota limits. -1 means unlimited.
var planLimits = map[string]models.JSONB{
	PlanFree: {
		"receipts_per_month": 50,
		"invoices_per_month": 5,
		"storage_mb":         100,
		"users":              1,
	},
	PlanStarter: {
		"receipts_per_month": 300,
		"invoices_per_month": 50,
		"storage_mb":         1024,
		"users":              3,
	},
	PlanProfessional: {
		"receipts_per_month": 1500,
		"invoices_per_month": 250,
		"storage_mb":         10240,
		"users":              10,
	},
	PlanEnterprise: {
		"receipts_per_month": -1,
		"invoices_per_month": -1,
		"storage_mb":         -1,
		"users":              -1,
	},
}

func limitsForPlan(plan string) models.JSONB {
	if limits, ok := planLimits[plan]; ok {
		return limits
	}
	return planLimits[PlanFree]
}

func zeroUsageCounters() models.JSONB {
	return models.JSONB{
		"receipts_this_month": 0,
		"invoices_this_month": 0,
		"storage_mb_used":     0,
		"active_users":        0,
	}
}

var defaultVendorCategories = []string{
	"Office Supplies",
	"Travel & Transportation",
	"Meals & Entertainment",
	"Software & Subscriptions",
	"Utilities",
	"Professional Services",
	"Marketing & Advertising",
	"Equipment & Hardware",
	"Insurance",
	"Rent & Facilities",
}

func brandingSettings(companyName, plan string) models.JSONB {
	premium := plan == PlanProfessional || plan == PlanEnterprise
	return models.JSONB{
		"branding": map[string]interface{}{
			"company_name":  companyName,
			"primary_color": "#2563eb",
			"accent_color":  "#0f766e",
			"logo_url":      "",
		},
		"features": map[string]interface{}{
			"advanced_analytics": plan == PlanStarter || premium,
			"custom_branding":    premium,
			"api_access":         premium,
		},
		"defaults": map[string]interface{}{
			"currency": "USD",
			"locale":   "en-US",
			"timezone": "UTC",
		},
	}
}
