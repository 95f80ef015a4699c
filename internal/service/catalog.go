package service

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid/v5"

	"github.com/campusxchange/server/internal/errs"
	"github.com/campusxchange/server/internal/model"
	"github.com/campusxchange/server/internal/repository"
)

// CatalogService exposes listing browse, lookup, and creation.
type CatalogService interface {
	// List returns listings matching the filter, newest first.
	List(ctx context.Context, f model.ItemFilter) ([]model.Item, error)
	// Get returns a single listing.
	Get(ctx context.Context, id uuid.UUID) (*model.Item, error)
	// Create publishes a new listing on behalf of sellerID.
	Create(ctx context.Context, sellerID string, it model.Item) (*model.Item, error)
}

type CatalogServiceImpl struct {
	repo repository.ItemRepository
}

// NewCatalogService constructs CatalogService.
func NewCatalogService(repo repository.ItemRepository) *CatalogServiceImpl {
	return &CatalogServiceImpl{repo: repo}
}

// List validates the filter and delegates to the repository.
func (s *CatalogServiceImpl) List(ctx context.Context, f model.ItemFilter) ([]model.Item, error) {
	if f.Type != "" && !f.Type.Valid() {
		return nil, fmt.Errorf("%w: unknown listing type %q", errs.ErrValidation, f.Type)
	}
	if f.MinPrice != nil && f.MaxPrice != nil && *f.MinPrice > *f.MaxPrice {
		return nil, fmt.Errorf("%w: min price above max price", errs.ErrValidation)
	}
	return s.repo.List(ctx, f)
}

// Get fetches a single listing by id.
func (s *CatalogServiceImpl) Get(ctx context.Context, id uuid.UUID) (*model.Item, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("%w: empty item id", errs.ErrValidation)
	}
	return s.repo.Get(ctx, id)
}

// Create validates and stores a new listing. Borrow and recycle
// listings carry no price.
func (s *CatalogServiceImpl) Create(ctx context.Context, sellerID string, it model.Item) (*model.Item, error) {
	if sellerID == "" {
		return nil, fmt.Errorf("%w: empty seller id", errs.ErrValidation)
	}
	if it.Title == "" {
		return nil, fmt.Errorf("%w: title is required", errs.ErrValidation)
	}
	if !it.Type.Valid() {
		return nil, fmt.Errorf("%w: unknown listing type %q", errs.ErrValidation, it.Type)
	}
	if it.Category == "" {
		return nil, fmt.Errorf("%w: category is required", errs.ErrValidation)
	}
	if it.Type != model.TypeSell {
		it.Price = nil
	} else if it.Price == nil || *it.Price < 0 {
		return nil, fmt.Errorf("%w: sale listings need a non-negative price", errs.ErrValidation)
	}

	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	it.ID = id
	it.SellerID = sellerID
	if err := s.repo.Create(ctx, &it); err != nil {
		return nil, err
	}
	return &it, nil
}
