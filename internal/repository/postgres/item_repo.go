package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/campusxchange/server/internal/errs"
	"github.com/campusxchange/server/internal/model"
	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"
)

// ItemRepo implements ItemRepository using PostgreSQL.
type ItemRepo struct{ db *DB }

// NewItemRepo constructs a catalog repository.
func NewItemRepo(db *DB) *ItemRepo { return &ItemRepo{db: db} }

const itemColumns = `id, title, price, type, category, image, seller_id, seller_name, seller_year, seller_department, is_urgent, negotiable, created_at`

// Create inserts a new listing.
func (r *ItemRepo) Create(ctx context.Context, it *model.Item) error {
	const q = `
INSERT INTO items (id, title, price, type, category, image, seller_id, seller_name, seller_year, seller_department, is_urgent, negotiable)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`
	_, err := r.db.Pool.Exec(ctx, q,
		it.ID, it.Title, it.Price, string(it.Type), it.Category, it.Image,
		it.SellerID, it.Seller.Name, it.Seller.Year, it.Seller.Department,
		it.IsUrgent, it.Negotiable,
	)
	if isUniqueViolation(err) {
		return errs.ErrAlreadyExists
	}
	return err
}

// Get returns a single listing by ID.
func (r *ItemRepo) Get(ctx context.Context, id uuid.UUID) (*model.Item, error) {
	q := `SELECT ` + itemColumns + ` FROM items WHERE id=$1`
	row := r.db.Pool.QueryRow(ctx, q, id)
	it, err := scanItem(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return it, nil
}

// List returns listings matching the filter, newest first.
func (r *ItemRepo) List(ctx context.Context, f model.ItemFilter) ([]model.Item, error) {
	q := `SELECT ` + itemColumns + ` FROM items`

	var conds []string
	var args []any
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if f.Category != "" {
		add("category=$%d", f.Category)
	}
	if f.Type != "" {
		add("type=$%d", string(f.Type))
	}
	if f.MinPrice != nil {
		add("price>=$%d", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		add("price<=$%d", *f.MaxPrice)
	}
	if f.Query != "" {
		add("title ILIKE $%d", "%"+f.Query+"%")
	}
	if f.UrgentOnly {
		conds = append(conds, "is_urgent")
	}
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY created_at DESC"

	rows, err := r.db.Pool.Query(ctx, q, args...)
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

func scanItem(row pgx.Row) (*model.Item, error) {
	var it model.Item
	var typ string
	err := row.Scan(
		&it.ID, &it.Title, &it.Price, &typ, &it.Category, &it.Image,
		&it.SellerID, &it.Seller.Name, &it.Seller.Year, &it.Seller.Department,
		&it.IsUrgent, &it.Negotiable, &it.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	it.Type = model.ItemType(typ)
	return &it, nil
}
