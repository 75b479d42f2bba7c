package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vidverse/vidverse_backend/internal/apperrors"
	"github.com/vidverse/vidverse_backend/internal/core/domain"
	portsrepo "github.com/vidverse/vidverse_backend/internal/core/ports/repositories"
	portssvc "github.com/vidverse/vidverse_backend/internal/core/ports/services"
	"github.com/vidverse/vidverse_backend/internal/dto"
	"github.com/vidverse/vidverse_backend/internal/utils"
)

// userService is the credential store: it owns password hashing and every
// mutation of the user record.
type userService struct {
	BaseService
	userRepo portsrepo.UserRepository
}

// NewUserService creates a new user service.
func NewUserService(userRepo portsrepo.UserRepository) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

func (s *userService) RegisterUser(ctx context.Context, req dto.RegisterUserRequest, avatarURL string, coverURL string) (*domain.User, error) {
	fullName := strings.TrimSpace(req.FullName)
	username := strings.ToLower(strings.TrimSpace(req.Username))
	email := strings.TrimSpace(req.Email)

	if fullName == "" || username == "" || email == "" || strings.TrimSpace(req.Password) == "" {
		return nil, fmt.Errorf("all fields are required: %w", apperrors.ErrValidation)
	}
	if avatarURL == "" {
		return nil, fmt.Errorf("avatar is required: %w", apperrors.ErrValidation)
	}

	// Pre-check for a friendlier conflict message; the unique indexes still
	// back this up under concurrency.
	if _, err := s.userRepo.FindUserByUsername(ctx, username); err == nil {
		return nil, fmt.Errorf("username %q already taken: %w", username, apperrors.ErrDuplicate)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check username availability: %w", err)
	}
	if _, err := s.userRepo.FindUserByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("email already registered: %w", apperrors.ErrDuplicate)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check email availability: %w", err)
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := domain.User{
		UserID:       uuid.NewString(),
		Username:     username,
		Email:        email,
		FullName:     fullName,
		PasswordHash: passwordHash,
		AvatarURL:    avatarURL,
		CoverURL:     coverURL,
		AuthProvider: domain.ProviderLocal,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.LogInfo(ctx, "User registered", slog.String("user_id", user.UserID), slog.String("username", username))
	return &user, nil
}

func (s *userService) CreateOAuthUser(ctx context.Context, fullName string, email string, authProvider string, providerUserID string) (*domain.User, error) {
	if email == "" || providerUserID == "" {
		return nil, fmt.Errorf("provider identity incomplete: %w", apperrors.ErrValidation)
	}

	existing, err := s.userRepo.FindUserByProviderDetails(ctx, authProvider, providerUserID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up provider identity: %w", err)
	}

	// A local account with the same verified email gets linked rather than
	// duplicated.
	if byEmail, err := s.userRepo.FindUserByEmail(ctx, email); err == nil {
		return byEmail, nil
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up user by email: %w", err)
	}

	// No usable password for provider-backed accounts; store a hash of a
	// random secret so password login can never succeed accidentally.
	randomSecret, err := utils.GenerateSecureRandomString(32)
	if err != nil {
		return nil, fmt.Errorf("failed to generate placeholder secret: %w", err)
	}
	passwordHash, err := utils.HashPassword(randomSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to hash placeholder secret: %w", err)
	}

	now := time.Now()
	user := domain.User{
		UserID:         uuid.NewString(),
		Username:       s.generateUsernameFromEmail(ctx, email),
		Email:          email,
		FullName:       fullName,
		PasswordHash:   passwordHash,
		AvatarURL:      "",
		AuthProvider:   authProvider,
		ProviderUserID: providerUserID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create oauth user: %w", err)
	}

	s.LogInfo(ctx, "OAuth user created", slog.String("user_id", user.UserID), slog.String("provider", authProvider))
	return &user, nil
}

// generateUsernameFromEmail derives a unique lowercase username from the
// email local part, suffixing a short random string on collision.
func (s *userService) generateUsernameFromEmail(ctx context.Context, email string) string {
	base := strings.ToLower(strings.SplitN(email, "@", 2)[0])
	base = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-' {
			return r
		}
		return -1
	}, base)
	if base == "" {
		base = "user"
	}
	if _, err := s.userRepo.FindUserByUsername(ctx, base); errors.Is(err, apperrors.ErrNotFound) {
		return base
	}
	suffix, err := utils.GenerateSecureRandomString(4)
	if err != nil {
		suffix = uuid.NewString()[:8]
	}
	return base + "-" + suffix
}

func (s *userService) AuthenticateUser(ctx context.Context, email string, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("user does not exist: %w", apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to look up user for login: %w", err)
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, fmt.Errorf("invalid user credentials: %w", apperrors.ErrUnauthorized)
	}

	return user, nil
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}
	return user, nil
}

func (s *userService) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	if strings.TrimSpace(username) == "" {
		return nil, fmt.Errorf("username is required: %w", apperrors.ErrValidation)
	}
	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}
	return user, nil
}

func (s *userService) UpdateAccountDetails(ctx context.Context, userID string, req dto.UpdateAccountRequest) (*domain.User, error) {
	fullName := strings.TrimSpace(req.FullName)
	email := strings.TrimSpace(req.Email)
	if fullName == "" || email == "" {
		return nil, fmt.Errorf("fullname and email are required: %w", apperrors.ErrValidation)
	}

	if err := s.userRepo.UpdateUserDetails(ctx, userID, fullName, email); err != nil {
		return nil, fmt.Errorf("failed to update account details: %w", err)
	}
	return s.userRepo.FindUserByID(ctx, userID)
}

func (s *userService) UpdateAvatar(ctx context.Context, userID string, avatarURL string) (*domain.User, error) {
	if avatarURL == "" {
		return nil, fmt.Errorf("avatar URL is required: %w", apperrors.ErrValidation)
	}
	// The previous avatar object is not deleted from storage; cleanup is a
	// deferred gap.
	if err := s.userRepo.UpdateAvatarURL(ctx, userID, avatarURL); err != nil {
		return nil, fmt.Errorf("failed to update avatar: %w", err)
	}
	return s.userRepo.FindUserByID(ctx, userID)
}

func (s *userService) UpdateCover(ctx context.Context, userID string, coverURL string) (*domain.User, error) {
	if coverURL == "" {
		return nil, fmt.Errorf("cover URL is required: %w", apperrors.ErrValidation)
	}
	if err := s.userRepo.UpdateCoverURL(ctx, userID, coverURL); err != nil {
		return nil, fmt.Errorf("failed to update cover image: %w", err)
	}
	return s.userRepo.FindUserByID(ctx, userID)
}

func (s *userService) ChangePassword(ctx context.Context, userID string, oldPassword string, newPassword string) error {
	if strings.TrimSpace(newPassword) == "" {
		return fmt.Errorf("new password is required: %w", apperrors.ErrValidation)
	}

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load user for password change: %w", err)
	}

	if !utils.CheckPasswordHash(oldPassword, user.PasswordHash) {
		return fmt.Errorf("invalid old password: %w", apperrors.ErrUnauthorized)
	}

	newHash, err := utils.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}
	if err := s.userRepo.UpdatePasswordHash(ctx, userID, newHash); err != nil {
		return fmt.Errorf("failed to store new password: %w", err)
	}

	s.LogInfo(ctx, "Password changed", slog.String("user_id", userID))
	return nil
}

func (s *userService) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, expiryTime time.Time) error {
	return s.userRepo.UpdateRefreshToken(ctx, userID, refreshTokenHash, expiryTime)
}

func (s *userService) RotateRefreshToken(ctx context.Context, userID string, oldHash string, newHash string, expiryTime time.Time) error {
	return s.userRepo.RotateRefreshToken(ctx, userID, oldHash, newHash, expiryTime)
}

func (s *userService) ClearRefreshToken(ctx context.Context, userID string) error {
	return s.userRepo.ClearRefreshToken(ctx, userID)
}
