package services

import (
	"context"
	"time"

	"github.com/vidverse/vidverse_backend/internal/core/domain"
	"github.com/vidverse/vidverse_backend/internal/dto"
)

// UserReaderSvc defines read operations for user data.
type UserReaderSvc interface {
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
}

// UserWriterSvc defines write operations for user data.
type UserWriterSvc interface {
	// RegisterUser creates a local account. avatarURL must be non-empty;
	// coverURL may be empty. Fails with apperrors.ErrDuplicate on a
	// username or email collision and apperrors.ErrValidation on blank
	// required fields.
	RegisterUser(ctx context.Context, req dto.RegisterUserRequest, avatarURL string, coverURL string) (*domain.User, error)

	// CreateOAuthUser finds or creates an account for a verified external
	// identity, matching by provider details first and then by email.
	CreateOAuthUser(ctx context.Context, fullName string, email string, authProvider string, providerUserID string) (*domain.User, error)

	UpdateAccountDetails(ctx context.Context, userID string, req dto.UpdateAccountRequest) (*domain.User, error)
	UpdateAvatar(ctx context.Context, userID string, avatarURL string) (*domain.User, error)
	UpdateCover(ctx context.Context, userID string, coverURL string) (*domain.User, error)

	// ChangePassword verifies the old password before storing a hash of the
	// new one. A wrong old password fails with apperrors.ErrUnauthorized and
	// leaves the stored hash untouched.
	ChangePassword(ctx context.Context, userID string, oldPassword string, newPassword string) error

	UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, expiryTime time.Time) error
	RotateRefreshToken(ctx context.Context, userID string, oldHash string, newHash string, expiryTime time.Time) error
	ClearRefreshToken(ctx context.Context, userID string) error
}

// UserAuthSvc defines credential verification.
type UserAuthSvc interface {
	// AuthenticateUser fails with apperrors.ErrNotFound when no user has the
	// email and apperrors.ErrUnauthorized when the password does not verify.
	AuthenticateUser(ctx context.Context, email string, password string) (*domain.User, error)
}

// UserSvcFacade combines all user-related service interfaces.
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	UserAuthSvc
}
