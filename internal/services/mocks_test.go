package services

import (
	"context"
	"io"
	"time"

	"clearspendly/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockTenantRepository struct {
	mock.Mock
}

func (m *MockTenantRepository) Create(ctx context.Context, tenant *models.Tenant) error {
	args := m.Called(ctx, tenant)
	return args.Error(0)
}

func (m *MockTenantRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tenant), args.Error(1)
}

func (m *MockTenantRepository) UpdateSettings(ctx context.Context, id uuid.UUID, settings models.JSONB) error {
	args := m.Called(ctx, id, settings)
	return args.Error(0)
}

func (m *MockTenantRepository) List(ctx context.Context, limit, offset int) ([]*models.Tenant, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Tenant), args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetTenantIDByUserID(ctx context.Context, userID uuid.UUID) (uuid.UUID, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockUserRepository) FirstByTenant(ctx context.Context, tenantID uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type MockTagRepository struct {
	mock.Mock
}

func (m *MockTagRepository) CreateCategory(ctx context.Context, category *models.TagCategory) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockTagRepository) CreateTag(ctx context.Context, tag *models.Tag) error {
	args := m.Called(ctx, tag)
	return args.Error(0)
}

func (m *MockTagRepository) ListCategories(ctx context.Context, tenantID uuid.UUID) ([]*models.TagCategory, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.TagCategory), args.Error(1)
}

func (m *MockTagRepository) ListTags(ctx context.Context, tenantID uuid.UUID) ([]*models.Tag, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Tag), args.Error(1)
}

func (m *MockTagRepository) DeleteTagsByTenant(ctx context.Context, tenantID uuid.UUID) error {
	args := m.Called(ctx, tenantID)
	return args.Error(0)
}

func (m *MockTagRepository) DeleteCategoriesByTenant(ctx context.Context, tenantID uuid.UUID) error {
	args := m.Called(ctx, tenantID)
	return args.Error(0)
}

func (m *MockTagRepository) CategoriesExist(ctx context.Context, tenantID uuid.UUID) (bool, error) {
	args := m.Called(ctx, tenantID)
	return args.Bool(0), args.Error(1)
}

type MockEmailTemplateRepository struct {
	mock.Mock
}

func (m *MockEmailTemplateRepository) Create(ctx context.Context, template *models.EmailTemplate) error {
	args := m.Called(ctx, template)
	return args.Error(0)
}

func (m *MockEmailTemplateRepository) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*models.EmailTemplate, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.EmailTemplate), args.Error(1)
}

func (m *MockEmailTemplateRepository) DeleteByTenant(ctx context.Context, tenantID uuid.UUID) error {
	args := m.Called(ctx, tenantID)
	return args.Error(0)
}

func (m *MockEmailTemplateRepository) ExistsForTenant(ctx context.Context, tenantID uuid.UUID) (bool, error) {
	args := m.Called(ctx, tenantID)
	return args.Bool(0), args.Error(1)
}

type MockInvoiceTemplateRepository struct {
	mock.Mock
}

func (m *MockInvoiceTemplateRepository) Create(ctx context.Context, template *models.InvoiceTemplate) error {
	args := m.Called(ctx, template)
	return args.Error(0)
}

func (m *MockInvoiceTemplateRepository) GetDefault(ctx context.Context, tenantID uuid.UUID) (*models.InvoiceTemplate, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.InvoiceTemplate), args.Error(1)
}

func (m *MockInvoiceTemplateRepository) DeleteByTenant(ctx context.Context, tenantID uuid.UUID) error {
	args := m.Called(ctx, tenantID)
	return args.Error(0)
}

func (m *MockInvoiceTemplateRepository) ExistsForTenant(ctx context.Context, tenantID uuid.UUID) (bool, error) {
	args := m.Called(ctx, tenantID)
	return args.Bool(0), args.Error(1)
}

type MockUserPreferencesRepository struct {
	mock.Mock
}

func (m *MockUserPreferencesRepository) Create(ctx context.Context, prefs *models.UserPreferences) error {
	args := m.Called(ctx, prefs)
	return args.Error(0)
}

func (m *MockUserPreferencesRepository) GetByTenantAndUser(ctx context.Context, tenantID, userID uuid.UUID) (*models.UserPreferences, error) {
	args := m.Called(ctx, tenantID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserPreferences), args.Error(1)
}

func (m *MockUserPreferencesRepository) DeleteByTenantAndUser(ctx context.Context, tenantID, userID uuid.UUID) error {
	args := m.Called(ctx, tenantID, userID)
	return args.Error(0)
}

func (m *MockUserPreferencesRepository) ExistsForTenant(ctx context.Context, tenantID uuid.UUID) (bool, error) {
	args := m.Called(ctx, tenantID)
	return args.Bool(0), args.Error(1)
}

type MockMileageRateRepository struct {
	mock.Mock
}

func (m *MockMileageRateRepository) Create(ctx context.Context, rate *models.IRSMileageRate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

func (m *MockMileageRateRepository) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*models.IRSMileageRate, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.IRSMileageRate), args.Error(1)
}

func (m *MockMileageRateRepository) DeleteByTenant(ctx context.Context, tenantID uuid.UUID) error {
	args := m.Called(ctx, tenantID)
	return args.Error(0)
}

func (m *MockMileageRateRepository) ExistsForTenant(ctx context.Context, tenantID uuid.UUID) (bool, error) {
	args := m.Called(ctx, tenantID)
	return args.Bool(0), args.Error(1)
}

type MockTenantUsageRepository struct {
	mock.Mock
}

func (m *MockTenantUsageRepository) Create(ctx context.Context, usage *models.TenantUsage) error {
	args := m.Called(ctx, usage)
	return args.Error(0)
}

func (m *MockTenantUsageRepository) GetByTenant(ctx context.Context, tenantID uuid.UUID) (*models.TenantUsage, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TenantUsage), args.Error(1)
}

func (m *MockTenantUsageRepository) UpdateUsage(ctx context.Context, tenantID uuid.UUID, usage models.JSONB) error {
	args := m.Called(ctx, tenantID, usage)
	return args.Error(0)
}

func (m *MockTenantUsageRepository) ResetPeriod(ctx context.Context, tenantID uuid.UUID, periodStart, periodEnd time.Time, usage models.JSONB) error {
	args := m.Called(ctx, tenantID, periodStart, periodEnd, usage)
	return args.Error(0)
}

func (m *MockTenantUsageRepository) ListExpired(ctx context.Context, asOf time.Time) ([]*models.TenantUsage, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.TenantUsage), args.Error(1)
}

func (m *MockTenantUsageRepository) DeleteByTenant(ctx context.Context, tenantID uuid.UUID) error {
	args := m.Called(ctx, tenantID)
	return args.Error(0)
}

func (m *MockTenantUsageRepository) ExistsForTenant(ctx context.Context, tenantID uuid.UUID) (bool, error) {
	args := m.Called(ctx, tenantID)
	return args.Bool(0), args.Error(1)
}

type MockVendorCategoryRepository struct {
	mock.Mock
}

func (m *MockVendorCategoryRepository) Create(ctx context.Context, category *models.VendorCategory) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockVendorCategoryRepository) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*models.VendorCategory, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.VendorCategory), args.Error(1)
}

func (m *MockVendorCategoryRepository) DeleteByTenant(ctx context.Context, tenantID uuid.UUID) error {
	args := m.Called(ctx, tenantID)
	return args.Error(0)
}

func (m *MockVendorCategoryRepository) ExistsForTenant(ctx context.Context, tenantID uuid.UUID) (bool, error) {
	args := m.Called(ctx, tenantID)
	return args.Bool(0), args.Error(1)
}

type MockSetupLogRepository struct {
	mock.Mock
}

func (m *MockSetupLogRepository) Create(ctx context.Context, log *models.SetupLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *MockSetupLogRepository) UpdateBySession(ctx context.Context, sessionID uuid.UUID, stepsCompleted int, setupData models.JSONB) error {
	args := m.Called(ctx, sessionID, stepsCompleted, setupData)
	return args.Error(0)
}

func (m *MockSetupLogRepository) GetBySession(ctx context.Context, sessionID uuid.UUID) (*models.SetupLog, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SetupLog), args.Error(1)
}

func (m *MockSetupLogRepository) ExistsForTenant(ctx context.Context, tenantID uuid.UUID) (bool, error) {
	args := m.Called(ctx, tenantID)
	return args.Bool(0), args.Error(1)
}

type MockExpenseRepository struct {
	mock.Mock
}

func (m *MockExpenseRepository) Create(ctx context.Context, expense *models.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *MockExpenseRepository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Expense, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Expense), args.Error(1)
}

func (m *MockExpenseRepository) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Expense, error) {
	args := m.Called(ctx, tenantID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Expense), args.Error(1)
}

func (m *MockExpenseRepository) ReplaceTags(ctx context.Context, tenantID, expenseID uuid.UUID, tagIDs []uuid.UUID) error {
	args := m.Called(ctx, tenantID, expenseID, tagIDs)
	return args.Error(0)
}

func (m *MockExpenseRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) Create(ctx context.Context, invoice *models.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Invoice, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Invoice, error) {
	args := m.Called(ctx, tenantID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) ListUnpaid(ctx context.Context, tenantID uuid.UUID) ([]*models.Invoice, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) UpdateStatus(ctx context.Context, tenantID, id uuid.UUID, status string) error {
	args := m.Called(ctx, tenantID, id, status)
	return args.Error(0)
}

func (m *MockInvoiceRepository) ApplyPayment(ctx context.Context, tenantID, id uuid.UUID, amountPaid float64, status string) error {
	args := m.Called(ctx, tenantID, id, amountPaid, status)
	return args.Error(0)
}

func (m *MockInvoiceRepository) CountForYear(ctx context.Context, tenantID uuid.UUID, year int) (int, error) {
	args := m.Called(ctx, tenantID, year)
	return args.Int(0), args.Error(1)
}

func (m *MockInvoiceRepository) MarkOverdue(ctx context.Context, asOf time.Time) (int64, error) {
	args := m.Called(ctx, asOf)
	return args.Get(0).(int64), args.Error(1)
}

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) CreateAllocation(ctx context.Context, allocation *models.PaymentAllocation) error {
	args := m.Called(ctx, allocation)
	return args.Error(0)
}

func (m *MockPaymentRepository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Payment, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Payment), args.Error(1)
}

func (m *MockPaymentRepository) ListAllocations(ctx context.Context, tenantID, paymentID uuid.UUID) ([]*models.PaymentAllocation, error) {
	args := m.Called(ctx, tenantID, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.PaymentAllocation), args.Error(1)
}

type MockReceiptRepository struct {
	mock.Mock
}

func (m *MockReceiptRepository) Create(ctx context.Context, receipt *models.Receipt) error {
	args := m.Called(ctx, receipt)
	return args.Error(0)
}

func (m *MockReceiptRepository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Receipt, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Receipt), args.Error(1)
}

func (m *MockReceiptRepository) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Receipt, error) {
	args := m.Called(ctx, tenantID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Receipt), args.Error(1)
}

func (m *MockReceiptRepository) UpdateOCR(ctx context.Context, tenantID, id uuid.UUID, status string, extracted models.JSONB) error {
	args := m.Called(ctx, tenantID, id, status, extracted)
	return args.Error(0)
}

func (m *MockReceiptRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

type MockCacheService struct {
	mock.Mock
}

func (m *MockCacheService) GetTagCategories(ctx context.Context, tenantID uuid.UUID) ([]*models.TagCategory, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.TagCategory), args.Error(1)
}

func (m *MockCacheService) SetTagCategories(ctx context.Context, tenantID uuid.UUID, categories []*models.TagCategory, ttl time.Duration) error {
	args := m.Called(ctx, tenantID, categories, ttl)
	return args.Error(0)
}

func (m *MockCacheService) DeleteTagCategories(ctx context.Context, tenantID uuid.UUID) error {
	args := m.Called(ctx, tenantID)
	return args.Error(0)
}

func (m *MockCacheService) GetTenantUsage(ctx context.Context, tenantID uuid.UUID) (*models.TenantUsage, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TenantUsage), args.Error(1)
}

func (m *MockCacheService) SetTenantUsage(ctx context.Context, tenantID uuid.UUID, usage *models.TenantUsage, ttl time.Duration) error {
	args := m.Called(ctx, tenantID, usage, ttl)
	return args.Error(0)
}

func (m *MockCacheService) DeleteTenantUsage(ctx context.Context, tenantID uuid.UUID) error {
	args := m.Called(ctx, tenantID)
	return args.Error(0)
}

func (m *MockCacheService) InvalidateTenantCache(ctx context.Context, tenantID uuid.UUID) error {
	args := m.Called(ctx, tenantID)
	return args.Error(0)
}

func (m *MockCacheService) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockObjectStorage struct {
	mock.Mock
}

func (m *MockObjectStorage) UploadObject(ctx context.Context, bucketName, objectName, contentType string, reader io.Reader, objectSize int64) error {
	args := m.Called(ctx, bucketName, objectName, contentType, reader, objectSize)
	return args.Error(0)
}

func (m *MockObjectStorage) GetPresignedURL(ctx context.Context, bucketName, objectName string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, bucketName, objectName, expiry)
	return args.String(0), args.Error(1)
}

func (m *MockObjectStorage) DeleteObject(ctx context.Context, bucketName, objectName string) error {
	args := m.Called(ctx, bucketName, objectName)
	return args.Error(0)
}

func (m *MockObjectStorage) EnsureBucketExists(ctx context.Context, bucketName string) error {
	args := m.Called(ctx, bucketName)
	return args.Error(0)
}

func (m *MockObjectStorage) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	args := m.Called(ctx, bucketName)
	return args.Bool(0), args.Error(1)
}
