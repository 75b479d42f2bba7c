package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/vidverse/vidverse_backend/internal/apperrors"
	"github.com/vidverse/vidverse_backend/internal/core/domain"
	portssvc "github.com/vidverse/vidverse_backend/internal/core/ports/services"
	"github.com/vidverse/vidverse_backend/internal/platform/config"
	"github.com/vidverse/vidverse_backend/internal/utils"
)

// tokenService issues and rotates JWT access/refresh pairs. The refresh
// token is itself a JWT signed with a secret distinct from the access
// token's; only its SHA256 hash is persisted on the user record, which makes
// each refresh token valid for exactly one rotation.
type tokenService struct {
	BaseService
	cfg         *config.Config
	userService portssvc.UserSvcFacade
}

// NewTokenService creates a new token service.
func NewTokenService(cfg *config.Config, userService portssvc.UserSvcFacade) portssvc.TokenSvcFacade {
	return &tokenService{cfg: cfg, userService: userService}
}

var _ portssvc.TokenSvcFacade = (*tokenService)(nil)

func (s *tokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	expiryTime := time.Now().Add(s.cfg.AccessTokenExpiry)
	accessToken, err := utils.GenerateJWT(user.UserID, s.cfg.AccessTokenSecret, s.cfg.AccessTokenExpiry, s.cfg.JWTIssuer)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate access token: %w", err)
	}
	return accessToken, expiryTime, nil
}

func (s *tokenService) GenerateRefreshToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	expiryTime := time.Now().Add(s.cfg.RefreshTokenExpiry)
	refreshToken, err := utils.GenerateJWT(user.UserID, s.cfg.RefreshTokenSecret, s.cfg.RefreshTokenExpiry, s.cfg.JWTIssuer)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return refreshToken, expiryTime, nil
}

func (s *tokenService) IssueTokenPair(ctx context.Context, user *domain.User) (*portssvc.TokenPair, error) {
	accessToken, accessExpiry, err := s.GenerateAccessToken(ctx, user)
	if err != nil {
		return nil, err
	}
	refreshToken, refreshExpiry, err := s.GenerateRefreshToken(ctx, user)
	if err != nil {
		return nil, err
	}

	// Persist the new session, replacing whatever token was active before.
	if err := s.userService.UpdateRefreshToken(ctx, user.UserID, utils.HashRefreshToken(refreshToken), refreshExpiry); err != nil {
		return nil, fmt.Errorf("failed to persist refresh token: %w", err)
	}

	return &portssvc.TokenPair{
		AccessToken:        accessToken,
		AccessTokenExpiry:  accessExpiry,
		RefreshToken:       refreshToken,
		RefreshTokenExpiry: refreshExpiry,
	}, nil
}

func (s *tokenService) ValidateRefreshToken(ctx context.Context, refreshToken string) (*domain.User, error) {
	claims, err := utils.ParseAndValidateJWT(refreshToken, s.cfg.RefreshTokenSecret)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token: %w", apperrors.ErrUnauthorized)
	}
	userID := claims.Subject
	if userID == "" {
		return nil, fmt.Errorf("refresh token has no subject: %w", apperrors.ErrUnauthorized)
	}

	user, err := s.userService.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("refresh token subject no longer exists: %w", apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to resolve refresh token subject: %w", err)
	}

	if user.RefreshTokenHash == "" || user.RefreshTokenExpiryTime == nil {
		return nil, fmt.Errorf("no active session: %w", apperrors.ErrUnauthorized)
	}
	if time.Now().After(*user.RefreshTokenExpiryTime) {
		return nil, apperrors.ErrRefreshTokenExpired
	}
	if !utils.CompareRefreshTokenHash(refreshToken, user.RefreshTokenHash) {
		// Signature checked out but this is not the stored token: it was
		// already rotated or invalidated by logout.
		return nil, apperrors.ErrRefreshTokenExpired
	}

	return user, nil
}

func (s *tokenService) RotateRefreshToken(ctx context.Context, refreshToken string) (*portssvc.TokenPair, error) {
	user, err := s.ValidateRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	accessToken, accessExpiry, err := s.GenerateAccessToken(ctx, user)
	if err != nil {
		return nil, err
	}
	newRefreshToken, refreshExpiry, err := s.GenerateRefreshToken(ctx, user)
	if err != nil {
		return nil, err
	}

	// Compare-and-swap against the presented token's hash: of two concurrent
	// rotations with the same token, exactly one wins.
	oldHash := utils.HashRefreshToken(refreshToken)
	newHash := utils.HashRefreshToken(newRefreshToken)
	if err := s.userService.RotateRefreshToken(ctx, user.UserID, oldHash, newHash, refreshExpiry); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Refresh token rotated", slog.String("user_id", user.UserID))
	return &portssvc.TokenPair{
		AccessToken:        accessToken,
		AccessTokenExpiry:  accessExpiry,
		RefreshToken:       newRefreshToken,
		RefreshTokenExpiry: refreshExpiry,
	}, nil
}
