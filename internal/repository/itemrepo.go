package repository

import (
	"context"

	"github.com/campusxchange/server/internal/model"
	"github.com/gofrs/uuid/v5"
)

// ItemRepository provides access to catalog listings.
type ItemRepository interface {
	// Create inserts a new listing.
	Create(ctx context.Context, it *model.Item) error

	// Get returns a single listing by ID.
	Get(ctx context.Context, id uuid.UUID) (*model.Item, error)

	// List returns listings matching the filter, newest first.
	List(ctx context.Context, f model.ItemFilter) ([]model.Item, error)
}
