package services

import (
	"context"
	"time"

	"github.com/vidverse/vidverse_backend/internal/core/domain"
)

// TokenPair is an access/refresh token pair. It is never persisted as-is;
// only a hash of the refresh token lands on the user record.
type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

// TokenSvcFacade issues, validates, and rotates JWT token pairs. Access and
// refresh tokens are signed with distinct secrets.
type TokenSvcFacade interface {
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)
	GenerateRefreshToken(ctx context.Context, user *domain.User) (string, time.Time, error)

	// IssueTokenPair generates both tokens and persists the refresh token
	// hash on the user record, replacing any previous session.
	IssueTokenPair(ctx context.Context, user *domain.User) (*TokenPair, error)

	// ValidateRefreshToken parses and verifies the presented refresh token,
	// resolves its subject, and checks it against the stored hash. A token
	// that verified cryptographically but no longer matches the stored hash
	// fails with apperrors.ErrRefreshTokenExpired (already rotated or
	// logged out).
	ValidateRefreshToken(ctx context.Context, refreshToken string) (*domain.User, error)

	// RotateRefreshToken validates the presented token and atomically swaps
	// in a fresh pair. The presented token is valid for exactly one
	// rotation; replaying it afterwards fails.
	RotateRefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error)
}
