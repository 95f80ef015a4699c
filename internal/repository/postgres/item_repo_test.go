package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/campusxchange/server/internal/errs"
	"github.com/campusxchange/server/internal/model"
	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"
)

func newDB(t *testing.T) (*DB, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	return &DB{Pool: mock}, mock
}

var itemCols = []string{
	"id", "title", "price", "type", "category", "image",
	"seller_id", "seller_name", "seller_year", "seller_department",
	"is_urgent", "negotiable", "created_at",
}

func itemRow(id uuid.UUID, title string, price *float64) *pgxmock.Rows {
	return pgxmock.NewRows(itemCols).AddRow(
		id, title, price, "sell", "books", "",
		"seller-1", "Alex", "Junior", "Engineering",
		false, true, time.Now(),
	)
}

func TestItemRepo_Create_OK_and_UniqueViolation(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewItemRepo(db)
	ctx := context.Background()

	price := 3735.0
	it := &model.Item{
		ID:         uuid.Must(uuid.NewV4()),
		Title:      "Calculus Textbook - 9th Edition",
		Price:      &price,
		Type:       model.TypeSell,
		Category:   "books",
		SellerID:   "seller-1",
		Seller:     model.SellerInfo{Name: "Alex", Year: "Junior", Department: "Engineering"},
		Negotiable: true,
	}

	insertRe := regexp.QuoteMeta(`INSERT INTO items (id, title, price, type, category, image, seller_id, seller_name, seller_year, seller_department, is_urgent, negotiable)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`)

	mock.ExpectExec(insertRe).
		WithArgs(it.ID, it.Title, it.Price, "sell", "books", "",
			"seller-1", "Alex", "Junior", "Engineering", false, true).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	require.NoError(t, r.Create(ctx, it))

	mock.ExpectExec(insertRe).
		WithArgs(it.ID, it.Title, it.Price, "sell", "books", "",
			"seller-1", "Alex", "Junior", "Engineering", false, true).
		WillReturnError(&pgconn.PgError{Code: "23505"})
	require.ErrorIs(t, r.Create(ctx, it), errs.ErrAlreadyExists)
}

func TestItemRepo_Get(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewItemRepo(db)
	ctx := context.Background()
	id := uuid.Must(uuid.NewV4())
	price := 3735.0

	selectRe := regexp.QuoteMeta(`SELECT ` + itemColumns + ` FROM items WHERE id=$1`)

	mock.ExpectQuery(selectRe).
		WithArgs(id).
		WillReturnRows(itemRow(id, "Calculus Textbook - 9th Edition", &price))
	it, err := r.Get(ctx, id)
	require.NoError(t, err)
	require.Equal(t, id, it.ID)
	require.Equal(t, model.TypeSell, it.Type)
	require.Equal(t, "Alex", it.Seller.Name)

	mock.ExpectQuery(selectRe).
		WithArgs(id).
		WillReturnError(pgx.ErrNoRows)
	_, err = r.Get(ctx, id)
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestItemRepo_List_BuildsFilter(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewItemRepo(db)
	ctx := context.Background()
	id := uuid.Must(uuid.NewV4())
	min, max := 100.0, 5000.0

	listRe := regexp.QuoteMeta(`SELECT `+itemColumns+` FROM items WHERE category=$1 AND type=$2 AND price>=$3 AND price<=$4 AND title ILIKE $5 AND is_urgent ORDER BY created_at DESC`)

	mock.ExpectQuery(listRe).
		WithArgs("books", "sell", min, max, "%calculus%").
		WillReturnRows(itemRow(id, "Calculus Textbook - 9th Edition", &min))

	out, err := r.List(ctx, model.ItemFilter{
		Category:   "books",
		Type:       model.TypeSell,
		MinPrice:   &min,
		MaxPrice:   &max,
		UrgentOnly: true,
		Query:      "calculus",
	})
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, id, out[0].ID)
}

func TestItemRepo_List_NoFilter(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewItemRepo(db)
	ctx := context.Background()

	listRe := regexp.QuoteMeta(`SELECT ` + itemColumns + ` FROM items ORDER BY created_at DESC`)

	mock.ExpectQuery(listRe).
		WillReturnRows(pgxmock.NewRows(itemCols))
	out, err := r.List(ctx, model.ItemFilter{})
	require.NoError(t, err)
	require.Empty(t, out)
}
