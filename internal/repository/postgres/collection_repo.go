package postgres

import (
	"context"

	"github.com/campusxchange/server/internal/errs"
	"github.com/campusxchange/server/internal/model"
	"github.com/gofrs/uuid/v5"
)

// CollectionRepo implements CollectionRepository using PostgreSQL.
// Membership rows reference catalog items; listing joins back to the
// catalog so callers always see current item data.
type CollectionRepo struct{ db *DB }

// NewCollectionRepo constructs a collection repository.
func NewCollectionRepo(db *DB) *CollectionRepo { return &CollectionRepo{db: db} }

// List returns the collection's items in insertion order.
func (r *CollectionRepo) List(ctx context.Context, userID string, kind model.CollectionKind) ([]model.Item, error) {
	const q = `
SELECT i.id, i.title, i.price, i.type, i.category, i.image, i.seller_id, i.seller_name, i.seller_year, i.seller_department, i.is_urgent, i.negotiable, i.created_at
FROM collection_entries ce
JOIN items i ON i.id = ce.item_id
WHERE ce.user_id=$1 AND ce.kind=$2
ORDER BY ce.added_at ASC`
	rows, err := r.db.Pool.Query(ctx, q, userID, string(kind))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *it)
	}
	return out, rows.Err()
}

// Add inserts membership; duplicate adds are no-ops (ON CONFLICT DO NOTHING).
func (r *CollectionRepo) Add(ctx context.Context, userID string, kind model.CollectionKind, itemID uuid.UUID) error {
	const q = `
INSERT INTO collection_entries (user_id, kind, item_id)
VALUES ($1,$2,$3)
ON CONFLICT (user_id, kind, item_id) DO NOTHING`
	_, err := r.db.Pool.Exec(ctx, q, userID, string(kind), itemID)
	if isForeignKeyViolation(err) {
		return errs.ErrNotFound // item no longer in catalog
	}
	return err
}

// Remove deletes membership; absent ids are no-ops.
func (r *CollectionRepo) Remove(ctx context.Context, userID string, kind model.CollectionKind, itemID uuid.UUID) error {
	const q = `DELETE FROM collection_entries WHERE user_id=$1 AND kind=$2 AND item_id=$3`
	_, err := r.db.Pool.Exec(ctx, q, userID, string(kind), itemID)
	return err
}

// Contains reports membership.
func (r *CollectionRepo) Contains(ctx context.Context, userID string, kind model.CollectionKind, itemID uuid.UUID) (bool, error) {
	const q = `SELECT EXISTS(SELECT 1 FROM collection_entries WHERE user_id=$1 AND kind=$2 AND item_id=$3)`
	var ok bool
	if err := r.db.Pool.QueryRow(ctx, q, userID, string(kind), itemID).Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}

// Clear empties the collection.
func (r *CollectionRepo) Clear(ctx context.Context, userID string, kind model.CollectionKind) error {
	const q = `DELETE FROM collection_entries WHERE user_id=$1 AND kind=$2`
	_, err := r.db.Pool.Exec(ctx, q, userID, string(kind))
	return err
}
