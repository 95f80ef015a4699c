package postgres

import (
	"context"
	"errors"

	"github.com/campusxchange/server/internal/errs"
	"github.com/campusxchange/server/internal/model"
	"github.com/jackc/pgx/v5"
)

// RequestRepo implements RequestRepository using PostgreSQL.
//
// Role-scoped queries select seller_email only for the accepted-buyer
// projection; status changes go through a status-guarded UPDATE so a
// stale caller can never move a terminal record.
type RequestRepo struct{ db *DB }

// NewRequestRepo constructs a request ledger repository.
func NewRequestRepo(db *DB) *RequestRepo { return &RequestRepo{db: db} }

// Append inserts a new pending record.
func (r *RequestRepo) Append(ctx context.Context, cr *model.ContactRequest) error {
	const q = `
INSERT INTO contact_requests
  (id, item_id, item_title, item_price, item_image, seller_id, seller_name, seller_email, buyer_id, buyer_name, buyer_email, buyer_phone, message, status, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)`
	_, err := r.db.Pool.Exec(ctx, q,
		cr.ID, cr.ItemID, cr.ItemTitle, cr.ItemPrice, cr.ItemImage,
		cr.SellerID, cr.SellerName, cr.SellerEmail,
		cr.BuyerID, cr.BuyerName, cr.BuyerEmail, cr.BuyerPhone,
		cr.Message, string(cr.Status), cr.CreatedAt,
	)
	if isUniqueViolation(err) {
		return errs.ErrAlreadyExists
	}
	return err
}

// Get returns the full record, seller email included.
func (r *RequestRepo) Get(ctx context.Context, id string) (*model.ContactRequest, error) {
	const q = `
SELECT id, item_id, item_title, item_price, item_image, seller_id, seller_name, seller_email, buyer_id, buyer_name, buyer_email, buyer_phone, message, status, created_at
FROM contact_requests WHERE id=$1`
	cr, err := scanRequest(r.db.Pool.QueryRow(ctx, q, id), true)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return cr, nil
}

// PendingForBuyer returns the buyer's pending requests, seller email withheld.
func (r *RequestRepo) PendingForBuyer(ctx context.Context, buyerID string) ([]model.ContactRequest, error) {
	const q = `
SELECT id, item_id, item_title, item_price, item_image, seller_id, seller_name, buyer_id, buyer_name, buyer_email, buyer_phone, message, status, created_at
FROM contact_requests
WHERE buyer_id=$1 AND status='pending'
ORDER BY created_at DESC`
	return r.queryMany(ctx, q, buyerID, false)
}

// AcceptedForBuyer returns the buyer's accepted requests with seller email.
func (r *RequestRepo) AcceptedForBuyer(ctx context.Context, buyerID string) ([]model.ContactRequest, error) {
	const q = `
SELECT id, item_id, item_title, item_price, item_image, seller_id, seller_name, seller_email, buyer_id, buyer_name, buyer_email, buyer_phone, message, status, created_at
FROM contact_requests
WHERE buyer_id=$1 AND status='accepted'
ORDER BY created_at DESC`
	return r.queryMany(ctx, q, buyerID, true)
}

// PendingForSeller returns requests awaiting this seller's decision.
func (r *RequestRepo) PendingForSeller(ctx context.Context, sellerID string) ([]model.ContactRequest, error) {
	const q = `
SELECT id, item_id, item_title, item_price, item_image, seller_id, seller_name, buyer_id, buyer_name, buyer_email, buyer_phone, message, status, created_at
FROM contact_requests
WHERE seller_id=$1 AND status='pending'
ORDER BY created_at DESC`
	return r.queryMany(ctx, q, sellerID, false)
}

// Transition applies a status-guarded compare-and-swap. A row moves only
// if its current status equals from; otherwise (false, nil).
func (r *RequestRepo) Transition(ctx context.Context, id string, from, to model.RequestStatus) (bool, error) {
	const q = `UPDATE contact_requests SET status=$3 WHERE id=$1 AND status=$2`
	tag, err := r.db.Pool.Exec(ctx, q, id, string(from), string(to))
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *RequestRepo) queryMany(ctx context.Context, q, actorID string, withSellerEmail bool) ([]model.ContactRequest, error) {
	rows, err := r.db.Pool.Query(ctx, q, actorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.ContactRequest
	for rows.Next() {
		cr, err := scanRequest(rows, withSellerEmail)
		if err != nil {
			return nil, err
		}
		out = append(out, *cr)
	}
	return out, rows.Err()
}

func scanRequest(row pgx.Row, withSellerEmail bool) (*model.ContactRequest, error) {
	var cr model.ContactRequest
	var status string

	dest := []any{&cr.ID, &cr.ItemID, &cr.ItemTitle, &cr.ItemPrice, &cr.ItemImage, &cr.SellerID, &cr.SellerName}
	if withSellerEmail {
		dest = append(dest, &cr.SellerEmail)
	}
	dest = append(dest,
		&cr.BuyerID, &cr.BuyerName, &cr.BuyerEmail, &cr.BuyerPhone,
		&cr.Message, &status, &cr.CreatedAt,
	)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	cr.Status = model.RequestStatus(status)
	return &cr, nil
}
