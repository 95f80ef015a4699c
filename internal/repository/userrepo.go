// Package repository defines storage interfaces implemented by concrete backends.
package repository

import (
	"context"

	"github.com/campusxchange/server/internal/model"
	"github.com/gofrs/uuid/v5"
)

// UserRepository provides account storage for the identity module.
type UserRepository interface {
	// Create inserts a new user.
	Create(ctx context.Context, u *model.User) error
	// GetByID loads a user by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	// GetByEmail loads a user by campus email.
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

// ProfileRepository stores the companion profile created at sign-up.
type ProfileRepository interface {
	// Create inserts the profile row keyed by the new user's id.
	Create(ctx context.Context, p *model.Profile) error
	// GetByUserID loads a profile by user id.
	GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Profile, error)
}
