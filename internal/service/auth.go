// Package service contains application services for identity, catalog,
// collections, and the contact-request ledger.
package service

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/time/rate"

	pkgcrypto "github.com/campusxchange/server/internal/crypto"
	"github.com/campusxchange/server/internal/errs"
	"github.com/campusxchange/server/internal/limiter"
	"github.com/campusxchange/server/internal/model"
	"github.com/campusxchange/server/internal/repository"
)

// AuthService defines sign-up and sign-in for campus accounts.
type AuthService interface {
	// Register creates a new account plus its companion profile.
	// The email must match the campus pattern before anything is written.
	Register(ctx context.Context, email, password string) (userID string, err error)
	// LoginWithIP applies rate limiting and authenticates the user.
	LoginWithIP(ctx context.Context, email, password, ip string) (model.Tokens, model.User, error)
}

type AuthServiceImpl struct {
	users     repository.UserRepository
	profiles  repository.ProfileRepository
	emailRe   *regexp.Regexp
	domain    string
	college   string
	signKey   []byte
	accessTTL time.Duration
	lim       limiter.Limiter
	regLim    *rate.Limiter
}

// NewAuthService constructs AuthService. Only student addresses of the
// given campus domain (12 digits + domain) may register; college is the
// institution tag written to new profiles.
func NewAuthService(
	users repository.UserRepository,
	profiles repository.ProfileRepository,
	campusDomain, college string,
	signKey []byte,
	accessTTL time.Duration,
	lim limiter.Limiter,
) *AuthServiceImpl {
	return &AuthServiceImpl{
		users:     users,
		profiles:  profiles,
		emailRe:   regexp.MustCompile(`^\d{12}@` + regexp.QuoteMeta(campusDomain) + `$`),
		domain:    campusDomain,
		college:   college,
		signKey:   signKey,
		accessTTL: accessTTL,
		lim:       lim,
		regLim:    rate.NewLimiter(rate.Every(time.Minute/5), 5), // 5 sign-ups per minute
	}
}

// Register validates the campus email, hashes the password, and creates
// the user together with its profile row.
func (s *AuthServiceImpl) Register(ctx context.Context, email, password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("%w: password is required", errs.ErrValidation)
	}
	if !s.emailRe.MatchString(email) {
		return "", fmt.Errorf("%w: email must be 12 digits followed by @%s", errs.ErrValidation, s.domain)
	}
	if !s.regLim.Allow() {
		return "", errs.ErrRateLimited
	}

	uid, err := uuid.NewV4()
	if err != nil {
		return "", err
	}
	salt, err := pkgcrypto.NewSalt()
	if err != nil {
		return "", err
	}

	u := &model.User{
		ID:      uid,
		Email:   email,
		PwdHash: pkgcrypto.HashPassword([]byte(password), salt),
		Salt:    salt,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return "", err
	}

	// Companion profile keyed by the new user's id.
	if err := s.profiles.Create(ctx, &model.Profile{UserID: uid, College: s.college}); err != nil {
		return "", fmt.Errorf("create profile: %w", err)
	}
	return uid.String(), nil
}

// LoginWithIP authenticates with rate limiting by (email, ip).
func (s *AuthServiceImpl) LoginWithIP(ctx context.Context, email, password, ip string) (model.Tokens, model.User, error) {
	ipHash := limiter.HashIP(ip)

	allowed, _, err := s.lim.Allow(ctx, email, ipHash)
	if err != nil {
		return model.Tokens{}, model.User{}, err
	}
	if !allowed {
		return model.Tokens{}, model.User{}, errs.ErrRateLimited
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil || !pkgcrypto.VerifyPassword([]byte(password), u.Salt, u.PwdHash) {
		if blocked, _, ferr := s.lim.Failure(ctx, email, ipHash); ferr == nil && blocked {
			return model.Tokens{}, model.User{}, errs.ErrRateLimited
		}
		// hide whether the account exists
		return model.Tokens{}, model.User{}, errs.ErrUnauthorized
	}

	// Success: reset counters (best-effort).
	_ = s.lim.Success(ctx, email, ipHash)

	access, exp, err := s.issueAccessToken(u.ID)
	if err != nil {
		return model.Tokens{}, model.User{}, err
	}
	return model.Tokens{AccessToken: access, ExpiresAt: exp}, *u, nil
}

// issueAccessToken creates a signed HS256 JWT for the given subject.
func (s *AuthServiceImpl) issueAccessToken(userID uuid.UUID) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(s.accessTTL)
	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(s.signKey)
	return signed, exp, err
}

// SellerEmail resolves a seller's account email for the ledger's
// acceptance projection. Unknown or non-account sellers yield "".
func (s *AuthServiceImpl) SellerEmail(ctx context.Context, sellerID string) string {
	id, err := uuid.FromString(sellerID)
	if err != nil {
		return ""
	}
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return ""
	}
	return u.Email
}
