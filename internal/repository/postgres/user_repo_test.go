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

func TestUserRepo_Create_OK_and_UniqueViolation(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewUserRepo(db)
	ctx := context.Background()
	u := &model.User{
		ID:      uuid.Must(uuid.NewV4()),
		Email:   "211030012345@mail.jiit.ac.in",
		PwdHash: []byte("h"),
		Salt:    []byte("s"),
	}

	insertRe := regexp.QuoteMeta(`INSERT INTO users (id, email, pwd_hash, salt)
VALUES ($1, $2, $3, $4)`)

	mock.ExpectExec(insertRe).
		WithArgs(u.ID, u.Email, u.PwdHash, u.Salt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	require.NoError(t, r.Create(ctx, u))

	mock.ExpectExec(insertRe).
		WithArgs(u.ID, u.Email, u.PwdHash, u.Salt).
		WillReturnError(&pgconn.PgError{Code: "23505"})
	require.ErrorIs(t, r.Create(ctx, u), errs.ErrAlreadyExists)
}

func TestUserRepo_GetByEmail(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewUserRepo(db)
	ctx := context.Background()
	id := uuid.Must(uuid.NewV4())
	email := "211030012345@mail.jiit.ac.in"

	selectRe := regexp.QuoteMeta(`SELECT id, email, pwd_hash, salt, created_at
FROM users WHERE email=$1`)

	mock.ExpectQuery(selectRe).
		WithArgs(email).
		WillReturnRows(pgxmock.NewRows([]string{"id", "email", "pwd_hash", "salt", "created_at"}).
			AddRow(id, email, []byte("h"), []byte("s"), time.Now()))
	u, err := r.GetByEmail(ctx, email)
	require.NoError(t, err)
	require.Equal(t, id, u.ID)
	require.Equal(t, email, u.Email)

	mock.ExpectQuery(selectRe).
		WithArgs(email).
		WillReturnError(pgx.ErrNoRows)
	_, err = r.GetByEmail(ctx, email)
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestProfileRepo_CreateAndGet(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewProfileRepo(db)
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV4())

	insertRe := regexp.QuoteMeta(`INSERT INTO profiles (user_id, college, name, year, department, phone)
VALUES ($1, $2, $3, $4, $5, $6)`)

	mock.ExpectExec(insertRe).
		WithArgs(userID, "JIIT", "", "", "", "").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	require.NoError(t, r.Create(ctx, &model.Profile{UserID: userID, College: "JIIT"}))

	selectRe := regexp.QuoteMeta(`SELECT user_id, college, name, year, department, phone, created_at
FROM profiles WHERE user_id=$1`)

	mock.ExpectQuery(selectRe).
		WithArgs(userID).
		WillReturnRows(pgxmock.NewRows([]string{"user_id", "college", "name", "year", "department", "phone", "created_at"}).
			AddRow(userID, "JIIT", "Sam", "Junior", "Engineering", "9876543210", time.Now()))
	p, err := r.GetByUserID(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, "JIIT", p.College)
	require.Equal(t, "Sam", p.Name)

	mock.ExpectQuery(selectRe).
		WithArgs(userID).
		WillReturnError(pgx.ErrNoRows)
	_, err = r.GetByUserID(ctx, userID)
	require.ErrorIs(t, err, errs.ErrNotFound)
}
