package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/campusxchange/server/internal/errs"
	"github.com/campusxchange/server/internal/model"
	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"
)

func TestCollectionRepo_Add(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewCollectionRepo(db)
	ctx := context.Background()
	itemID := uuid.Must(uuid.NewV4())

	insertRe := regexp.QuoteMeta(`INSERT INTO collection_entries (user_id, kind, item_id)
VALUES ($1,$2,$3)
ON CONFLICT (user_id, kind, item_id) DO NOTHING`)

	mock.ExpectExec(insertRe).
		WithArgs("user-1", "cart", itemID).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	require.NoError(t, r.Add(ctx, "user-1", model.KindCart, itemID))

	// Duplicate membership: conflict swallowed, zero rows.
	mock.ExpectExec(insertRe).
		WithArgs("user-1", "cart", itemID).
		WillReturnResult(pgxmock.NewResult("INSERT", 0))
	require.NoError(t, r.Add(ctx, "user-1", model.KindCart, itemID))

	// Item vanished from the catalog.
	mock.ExpectExec(insertRe).
		WithArgs("user-1", "cart", itemID).
		WillReturnError(&pgconn.PgError{Code: "23503"})
	require.ErrorIs(t, r.Add(ctx, "user-1", model.KindCart, itemID), errs.ErrNotFound)
}

func TestCollectionRepo_List(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewCollectionRepo(db)
	ctx := context.Background()
	itemID := uuid.Must(uuid.NewV4())
	price := 6225.0

	listRe := regexp.QuoteMeta(`SELECT i.id, i.title, i.price, i.type, i.category, i.image, i.seller_id, i.seller_name, i.seller_year, i.seller_department, i.is_urgent, i.negotiable, i.created_at
FROM collection_entries ce
JOIN items i ON i.id = ce.item_id
WHERE ce.user_id=$1 AND ce.kind=$2
ORDER BY ce.added_at ASC`)

	mock.ExpectQuery(listRe).
		WithArgs("user-1", "wishlist").
		WillReturnRows(pgxmock.NewRows(itemCols).AddRow(
			itemID, "Mini Fridge - Perfect for Dorm", &price, "sell", "furniture", "",
			"seller-1", "Alex", "Sophomore", "Business", true, true, time.Now(),
		))
	out, err := r.List(ctx, "user-1", model.KindWishlist)
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, itemID, out[0].ID)
	require.True(t, out[0].IsUrgent)
}

func TestCollectionRepo_Contains(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewCollectionRepo(db)
	ctx := context.Background()
	itemID := uuid.Must(uuid.NewV4())

	existsRe := regexp.QuoteMeta(`SELECT EXISTS(SELECT 1 FROM collection_entries WHERE user_id=$1 AND kind=$2 AND item_id=$3)`)

	mock.ExpectQuery(existsRe).
		WithArgs("user-1", "cart", itemID).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	ok, err := r.Contains(ctx, "user-1", model.KindCart, itemID)
	require.NoError(t, err)
	require.True(t, ok)

	mock.ExpectQuery(existsRe).
		WithArgs("user-1", "cart", itemID).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
	ok, err = r.Contains(ctx, "user-1", model.KindCart, itemID)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestCollectionRepo_RemoveAndClear(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewCollectionRepo(db)
	ctx := context.Background()
	itemID := uuid.Must(uuid.NewV4())

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM collection_entries WHERE user_id=$1 AND kind=$2 AND item_id=$3`)).
		WithArgs("user-1", "cart", itemID).
		WillReturnResult(pgxmock.NewResult("DELETE", 0)) // absent id still a no-op
	require.NoError(t, r.Remove(ctx, "user-1", model.KindCart, itemID))

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM collection_entries WHERE user_id=$1 AND kind=$2`)).
		WithArgs("user-1", "cart").
		WillReturnResult(pgxmock.NewResult("DELETE", 3))
	require.NoError(t, r.Clear(ctx, "user-1", model.KindCart))
}
