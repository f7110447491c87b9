package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"clearspendly/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type UsageServiceTestSuite struct {
	suite.Suite
	usageRepo *MockTenantUsageRepository
	cacheSvc  *MockCacheService
	service   UsageService

	tenantID uuid.UUID
}

func (suite *UsageServiceTestSuite) SetupTest() {
	suite.usageRepo = &MockTenantUsageRepository{}
	suite.cacheSvc = &MockCacheService{}
	suite.service = NewUsageService(suite.usageRepo, suite.cacheSvc)
	suite.tenantID = uuid.New()
}

func (suite *UsageServiceTestSuite) TearDownTest() {
	suite.usageRepo.AssertExpectations(suite.T())
}

func TestUsageServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UsageServiceTestSuite))
}

func (suite *UsageServiceTestSuite) starterUsage(receipts int) *models.TenantUsage {
	return &models.TenantUsage{
		ID:               uuid.New(),
		TenantID:         suite.tenantID,
		SubscriptionPlan: PlanStarter,
		Limits:           limitsForPlan(PlanStarter),
		Usage: models.JSONB{
			"receipts_this_month": receipts,
			"invoices_this_month": 0,
			"storage_mb_used":     0,
			"active_users":        1,
		},
	}
}

func (suite *UsageServiceTestSuite) TestCheckAndIncrement_RejectsNonPositiveDelta() {
	err := suite.service.CheckAndIncrement(context.Background(), suite.tenantID, "receipts_this_month", 0)
	assert.Error(suite.T(), err)
}

func (suite *UsageServiceTestSuite) TestCheckAndIncrement_UnderLimit() {
	suite.usageRepo.On("GetByTenant", mock.Anything, suite.tenantID).Return(suite.starterUsage(10), nil)
	suite.cacheSvc.On("DeleteTenantUsage", mock.Anything, suite.tenantID).Return(nil)
	suite.usageRepo.On("UpdateUsage", mock.Anything, suite.tenantID, mock.AnythingOfType("models.JSONB")).
		Run(func(args mock.Arguments) {
			updated := args.Get(2).(models.JSONB)
			assert.EqualValues(suite.T(), 11, updated["receipts_this_month"])
		}).Return(nil)

	err := suite.service.CheckAndIncrement(context.Background(), suite.tenantID, "receipts_this_month", 1)

	assert.NoError(suite.T(), err)
}

func (suite *UsageServiceTestSuite) TestCheckAndIncrement_AtLimit() {
	// Starter caps receipts_per_month; the counter key differs from the
	// limit key, which is exactly what limitKeyFor bridges.
	usage := suite.starterUsage(10)
	usage.Limits = models.JSONB{"receipts_per_month": 10}
	suite.usageRepo.On("GetByTenant", mock.Anything, suite.tenantID).Return(usage, nil)

	err := suite.service.CheckAndIncrement(context.Background(), suite.tenantID, "receipts_this_month", 1)

	assert.ErrorIs(suite.T(), err, ErrLimitExceeded)
	suite.usageRepo.AssertNotCalled(suite.T(), "UpdateUsage", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *UsageServiceTestSuite) TestCheckAndIncrement_UnlimitedPlan() {
	usage := suite.starterUsage(999999)
	usage.SubscriptionPlan = PlanEnterprise
	usage.Limits = limitsForPlan(PlanEnterprise)
	suite.usageRepo.On("GetByTenant", mock.Anything, suite.tenantID).Return(usage, nil)
	suite.usageRepo.On("UpdateUsage", mock.Anything, suite.tenantID, mock.AnythingOfType("models.JSONB")).Return(nil)
	suite.cacheSvc.On("DeleteTenantUsage", mock.Anything, suite.tenantID).Return(nil)

	err := suite.service.CheckAndIncrement(context.Background(), suite.tenantID, "receipts_this_month", 1)

	assert.NoError(suite.T(), err)
}

func (suite *UsageServiceTestSuite) TestCheckAndIncrement_CountersSurviveJSONRoundTrip() {
	// JSONB counters come back from postgres as float64.
	usage := suite.starterUsage(0)
	usage.Usage["receipts_this_month"] = float64(9)
	usage.Limits = models.JSONB{"receipts_per_month": float64(10)}
	suite.usageRepo.On("GetByTenant", mock.Anything, suite.tenantID).Return(usage, nil)
	suite.usageRepo.On("UpdateUsage", mock.Anything, suite.tenantID, mock.AnythingOfType("models.JSONB")).Return(nil)
	suite.cacheSvc.On("DeleteTenantUsage", mock.Anything, suite.tenantID).Return(nil)

	err := suite.service.CheckAndIncrement(context.Background(), suite.tenantID, "receipts_this_month", 1)

	assert.NoError(suite.T(), err)
}

func (suite *UsageServiceTestSuite) TestGetUsage_CacheHitSkipsRepository() {
	cached := suite.starterUsage(3)
	suite.cacheSvc.On("GetTenantUsage", mock.Anything, suite.tenantID).Return(cached, nil)

	usage, err := suite.service.GetUsage(context.Background(), suite.tenantID)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), cached, usage)
	suite.usageRepo.AssertNotCalled(suite.T(), "GetByTenant", mock.Anything, mock.Anything)
}

func (suite *UsageServiceTestSuite) TestGetUsage_CacheMissFillsCache() {
	fresh := suite.starterUsage(3)
	suite.cacheSvc.On("GetTenantUsage", mock.Anything, suite.tenantID).Return(nil, errors.New("redis: nil"))
	suite.usageRepo.On("GetByTenant", mock.Anything, suite.tenantID).Return(fresh, nil)
	suite.cacheSvc.On("SetTenantUsage", mock.Anything, suite.tenantID, fresh, usageCacheTTL).Return(nil)

	usage, err := suite.service.GetUsage(context.Background(), suite.tenantID)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), fresh, usage)
	suite.cacheSvc.AssertExpectations(suite.T())
}

func (suite *UsageServiceTestSuite) TestRollExpiredPeriods() {
	asOf := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	first := suite.starterUsage(5)
	second := suite.starterUsage(7)
	second.TenantID = uuid.New()
	suite.usageRepo.On("ListExpired", mock.Anything, asOf).Return([]*models.TenantUsage{first, second}, nil)
	suite.usageRepo.On("ResetPeriod", mock.Anything, first.TenantID, asOf, asOf.AddDate(0, 0, 30), mock.AnythingOfType("models.JSONB")).Return(nil)
	suite.usageRepo.On("ResetPeriod", mock.Anything, second.TenantID, asOf, asOf.AddDate(0, 0, 30), mock.AnythingOfType("models.JSONB")).Return(nil)
	suite.cacheSvc.On("DeleteTenantUsage", mock.Anything, first.TenantID).Return(nil)
	suite.cacheSvc.On("DeleteTenantUsage", mock.Anything, second.TenantID).Return(nil)

	rolled, err := suite.service.RollExpiredPeriods(context.Background(), asOf)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 2, rolled)
}

func (suite *UsageServiceTestSuite) TestRollExpiredPeriods_StopsOnResetFailure() {
	asOf := time.Now().UTC()
	first := suite.starterUsage(5)
	suite.usageRepo.On("ListExpired", mock.Anything, asOf).Return([]*models.TenantUsage{first}, nil)
	suite.usageRepo.On("ResetPeriod", mock.Anything, first.TenantID, asOf, asOf.AddDate(0, 0, 30), mock.AnythingOfType("models.JSONB")).Return(errors.New("deadlock detected"))

	rolled, err := suite.service.RollExpiredPeriods(context.Background(), asOf)

	assert.Error(suite.T(), err)
	assert.Equal(suite.T(), 0, rolled)
}
