package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clearspendly/internal/caching"
	"clearspendly/internal/models"
	"clearspendly/internal/repositories"

	"github.com/google/uuid"
)

const tagCategoryCacheTTL = 10 * time.Minute

type ExpenseService interface {
	Create(ctx context.Context, req *CreateExpenseRequest) (*models.Expense, error)
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Expense, error)
	List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Expense, error)
	UpdateTags(ctx context.Context, tenantID, expenseID uuid.UUID, tagIDs []uuid.UUID) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

type CreateExpenseRequest struct {
	TenantID    uuid.UUID   `json:"-"`
	UserID      uuid.UUID   `json:"-"`
	ReceiptID   *uuid.UUID  `json:"receipt_id"`
	VendorName  string      `json:"vendor_name" validate:"required"`
	Description string      `json:"description"`
	Amount      float64     `json:"amount" validate:"required"`
	Currency    string      `json:"currency"`
	ExpenseDate time.Time   `json:"expense_date"`
	TagIDs      []uuid.UUID `json:"tag_ids"`
}

type expenseService struct {
	expenseRepo repositories.ExpenseRepository
	tagRepo     repositories.TagRepository
	cacheSvc    caching.CacheService
}

func NewExpenseService(expenseRepo repositories.ExpenseRepository, tagRepo repositories.TagRepository, cacheSvc caching.CacheService) ExpenseService {
	return &expenseService{expenseRepo: expenseRepo, tagRepo: tagRepo, cacheSvc: cacheSvc}
}

func (s *expenseService) Create(ctx context.Context, req *CreateExpenseRequest) (*models.Expense, error) {
	if req.VendorName == "" {
		return nil, errors.New("vendor name is required")
	}
	if req.Amount <= 0 {
		return nil, errors.New("amount must be positive")
	}
	if req.Currency == "" {
		req.Currency = "USD"
	}
	if req.ExpenseDate.IsZero() {
		req.ExpenseDate = time.Now().UTC()
	}

	if err := s.validateTags(ctx, req.TenantID, req.TagIDs); err != nil {
		return nil, err
	}

	expense := &models.Expense{
		ID:          uuid.New(),
		TenantID:    req.TenantID,
		UserID:      req.UserID,
		ReceiptID:   req.ReceiptID,
		VendorName:  req.VendorName,
		Description: req.Description,
		Amount:      req.Amount,
		Currency:    req.Currency,
		ExpenseDate: req.ExpenseDate,
		TagIDs:      req.TagIDs,
	}
	if err := s.expenseRepo.Create(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

func (s *expenseService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Expense, error) {
	return s.expenseRepo.GetByID(ctx, tenantID, id)
}

func (s *expenseService) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Expense, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.expenseRepo.List(ctx, tenantID, limit, offset)
}

func (s *expenseService) UpdateTags(ctx context.Context, tenantID, expenseID uuid.UUID, tagIDs []uuid.UUID) error {
	if err := s.validateTags(ctx, tenantID, tagIDs); err != nil {
		return err
	}
	return s.expenseRepo.ReplaceTags(ctx, tenantID, expenseID, tagIDs)
}

func (s *expenseService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return s.expenseRepo.Delete(ctx, tenantID, id)
}

// validateTags enforces the seeded taxonomy rules: every tag must belong to
// the tenant, a required category must contribute at least one tag, and a
// single-select category at most one.
func (s *expenseService) validateTags(ctx context.Context, tenantID uuid.UUID, tagIDs []uuid.UUID) error {
	categories, err := s.loadCategories(ctx, tenantID)
	if err != nil {
		return err
	}
	tags, err := s.tagRepo.ListTags(ctx, tenantID)
	if err != nil {
		return err
	}

	categoryByTag := make(map[uuid.UUID]uuid.UUID, len(tags))
	for _, tag := range tags {
		categoryByTag[tag.ID] = tag.CategoryID
	}

	perCategory := make(map[uuid.UUID]int)
	for _, tagID := range tagIDs {
		categoryID, ok := categoryByTag[tagID]
		if !ok {
			return fmt.Errorf("tag %s does not exist for this tenant", tagID)
		}
		perCategory[categoryID]++
	}

	for _, category := range categories {
		count := perCategory[category.ID]
		if category.Required && count == 0 {
			return fmt.Errorf("category %q requires at least one tag", category.Name)
		}
		if !category.Multiple && count > 1 {
			return fmt.Errorf("category %q allows only one tag", category.Name)
		}
	}
	return nil
}

func (s *expenseService) loadCategories(ctx context.Context, tenantID uuid.UUID) ([]*models.TagCategory, error) {
	if s.cacheSvc != nil {
		if cached, err := s.cacheSvc.GetTagCategories(ctx, tenantID); err == nil && len(cached) > 0 {
			return cached, nil
		}
	}
	categories, err := s.tagRepo.ListCategories(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if s.cacheSvc != nil {
		_ = s.cacheSvc.SetTagCategories(ctx, tenantID, categories, tagCategoryCacheTTL)
	}
	return categories, nil
}
