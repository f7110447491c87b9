package services

import (
	"context"
	"testing"

	"clearspendly/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type PaymentServiceTestSuite struct {
	suite.Suite
	paymentRepo *MockPaymentRepository
	invoiceRepo *MockInvoiceRepository
	service     PaymentService

	tenantID uuid.UUID
}

func (suite *PaymentServiceTestSuite) SetupTest() {
	suite.paymentRepo = &MockPaymentRepository{}
	suite.invoiceRepo = &MockInvoiceRepository{}
	suite.service = NewPaymentService(suite.paymentRepo, suite.invoiceRepo)
	suite.tenantID = uuid.New()
}

func (suite *PaymentServiceTestSuite) TearDownTest() {
	suite.paymentRepo.AssertExpectations(suite.T())
	suite.invoiceRepo.AssertExpectations(suite.T())
}

func TestPaymentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PaymentServiceTestSuite))
}

func (suite *PaymentServiceTestSuite) openInvoice(total, paid float64) *models.Invoice {
	return &models.Invoice{
		ID:          uuid.New(),
		TenantID:    suite.tenantID,
		TotalAmount: total,
		AmountPaid:  paid,
		Status:      models.InvoiceStatusSent,
	}
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_RejectsNonPositiveAmount() {
	payment, allocations, err := suite.service.RecordPayment(context.Background(), &RecordPaymentRequest{
		TenantID: suite.tenantID,
		Amount:   -5,
	})

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), payment)
	assert.Nil(suite.T(), allocations)
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_AllocatesOldestDueFirst() {
	oldest := suite.openInvoice(100, 0)
	newer := suite.openInvoice(200, 0)
	// ListUnpaid returns oldest due date first; the allocation order must
	// follow it.
	suite.invoiceRepo.On("ListUnpaid", mock.Anything, suite.tenantID).Return([]*models.Invoice{oldest, newer}, nil)
	suite.paymentRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Payment")).Return(nil)
	suite.paymentRepo.On("CreateAllocation", mock.Anything, mock.AnythingOfType("*models.PaymentAllocation")).Return(nil)
	suite.invoiceRepo.On("ApplyPayment", mock.Anything, suite.tenantID, oldest.ID, 100.0, models.InvoiceStatusPaid).Return(nil)
	suite.invoiceRepo.On("ApplyPayment", mock.Anything, suite.tenantID, newer.ID, 50.0, models.InvoiceStatusSent).Return(nil)

	payment, allocations, err := suite.service.RecordPayment(context.Background(), &RecordPaymentRequest{
		TenantID: suite.tenantID,
		Amount:   150,
	})

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), allocations, 2)
	assert.Equal(suite.T(), oldest.ID, allocations[0].InvoiceID)
	assert.Equal(suite.T(), 100.0, allocations[0].Amount)
	assert.Equal(suite.T(), newer.ID, allocations[1].InvoiceID)
	assert.Equal(suite.T(), 50.0, allocations[1].Amount)
	assert.Equal(suite.T(), 0.0, payment.UnappliedAmount)
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_OverpaymentStaysUnapplied() {
	invoice := suite.openInvoice(80, 0)
	suite.invoiceRepo.On("ListUnpaid", mock.Anything, suite.tenantID).Return([]*models.Invoice{invoice}, nil)
	suite.paymentRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Payment")).Return(nil)
	suite.paymentRepo.On("CreateAllocation", mock.Anything, mock.AnythingOfType("*models.PaymentAllocation")).Return(nil)
	suite.invoiceRepo.On("ApplyPayment", mock.Anything, suite.tenantID, invoice.ID, 80.0, models.InvoiceStatusPaid).Return(nil)

	payment, allocations, err := suite.service.RecordPayment(context.Background(), &RecordPaymentRequest{
		TenantID: suite.tenantID,
		Amount:   100,
	})

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), allocations, 1)
	assert.Equal(suite.T(), 20.0, payment.UnappliedAmount)
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_PartialPaymentKeepsInvoiceOpen() {
	invoice := suite.openInvoice(500, 100)
	suite.invoiceRepo.On("ListUnpaid", mock.Anything, suite.tenantID).Return([]*models.Invoice{invoice}, nil)
	suite.paymentRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Payment")).Return(nil)
	suite.paymentRepo.On("CreateAllocation", mock.Anything, mock.AnythingOfType("*models.PaymentAllocation")).Return(nil)
	suite.invoiceRepo.On("ApplyPayment", mock.Anything, suite.tenantID, invoice.ID, 250.0, models.InvoiceStatusSent).Return(nil)

	payment, allocations, err := suite.service.RecordPayment(context.Background(), &RecordPaymentRequest{
		TenantID: suite.tenantID,
		Amount:   150,
	})

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), allocations, 1)
	assert.Equal(suite.T(), 150.0, allocations[0].Amount)
	assert.Equal(suite.T(), 0.0, payment.UnappliedAmount)
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_SkipsInvoicesWithNothingDue() {
	settled := suite.openInvoice(100, 100)
	open := suite.openInvoice(60, 0)
	suite.invoiceRepo.On("ListUnpaid", mock.Anything, suite.tenantID).Return([]*models.Invoice{settled, open}, nil)
	suite.paymentRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Payment")).Return(nil)
	suite.paymentRepo.On("CreateAllocation", mock.Anything, mock.AnythingOfType("*models.PaymentAllocation")).Return(nil)
	suite.invoiceRepo.On("ApplyPayment", mock.Anything, suite.tenantID, open.ID, 60.0, models.InvoiceStatusPaid).Return(nil)

	_, allocations, err := suite.service.RecordPayment(context.Background(), &RecordPaymentRequest{
		TenantID: suite.tenantID,
		Amount:   60,
	})

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), allocations, 1)
	assert.Equal(suite.T(), open.ID, allocations[0].InvoiceID)
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_NoOpenInvoicesLeavesFullCredit() {
	suite.invoiceRepo.On("ListUnpaid", mock.Anything, suite.tenantID).Return([]*models.Invoice{}, nil)
	suite.paymentRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Payment")).Return(nil)

	payment, allocations, err := suite.service.RecordPayment(context.Background(), &RecordPaymentRequest{
		TenantID: suite.tenantID,
		Amount:   75,
	})

	assert.NoError(suite.T(), err)
	assert.Empty(suite.T(), allocations)
	assert.Equal(suite.T(), 75.0, payment.UnappliedAmount)
}
