package repository

import (
	"context"

	"github.com/campusxchange/server/internal/model"
	"github.com/gofrs/uuid/v5"
)

// CollectionRepository maintains per-user deduplicated item sets
// (cart, wishlist). Membership is keyed by (user, kind, item).
type CollectionRepository interface {
	// List returns the collection's items in insertion order.
	List(ctx context.Context, userID string, kind model.CollectionKind) ([]model.Item, error)

	// Add inserts membership if absent; duplicate adds are no-ops.
	Add(ctx context.Context, userID string, kind model.CollectionKind, itemID uuid.UUID) error

	// Remove deletes membership if present; absent ids are no-ops.
	Remove(ctx context.Context, userID string, kind model.CollectionKind, itemID uuid.UUID) error

	// Contains reports membership.
	Contains(ctx context.Context, userID string, kind model.CollectionKind, itemID uuid.UUID) (bool, error)

	// Clear empties the collection.
	Clear(ctx context.Context, userID string, kind model.CollectionKind) error
}
