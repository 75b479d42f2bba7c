package repositories

import (
	"context"
	"time"

	"github.com/vidverse/vidverse_backend/internal/core/domain"
)

// UserRepository persists user records. Implementations translate driver
// not-found and unique-violation errors into apperrors sentinels.
type UserRepository interface {
	// SaveUser inserts a new user. Returns apperrors.ErrDuplicate when the
	// username or email is already taken.
	SaveUser(ctx context.Context, user domain.User) error

	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	// FindUserByUsername matches case-insensitively against the stored
	// lowercase username.
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
	FindUserByProviderDetails(ctx context.Context, authProvider string, providerUserID string) (*domain.User, error)

	// UpdateUserDetails replaces full name and email.
	UpdateUserDetails(ctx context.Context, userID string, fullName string, email string) error
	UpdateAvatarURL(ctx context.Context, userID string, avatarURL string) error
	UpdateCoverURL(ctx context.Context, userID string, coverURL string) error
	UpdatePasswordHash(ctx context.Context, userID string, passwordHash string) error

	// UpdateRefreshToken stores the hash of the most recently issued refresh
	// token along with its expiry. Only these fields change.
	UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, expiryTime time.Time) error

	// RotateRefreshToken swaps the stored hash only if it still equals
	// oldHash (compare-and-swap), so two concurrent rotations with the same
	// stale token cannot both succeed. Returns apperrors.ErrRefreshTokenExpired
	// when the stored hash no longer matches.
	RotateRefreshToken(ctx context.Context, userID string, oldHash string, newHash string, expiryTime time.Time) error

	ClearRefreshToken(ctx context.Context, userID string) error
}
