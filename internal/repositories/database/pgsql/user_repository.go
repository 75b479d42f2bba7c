package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vidverse/vidverse_backend/internal/apperrors"
	"github.com/vidverse/vidverse_backend/internal/core/domain"
	portsrepo "github.com/vidverse/vidverse_backend/internal/core/ports/repositories"
	"github.com/vidverse/vidverse_backend/internal/models"
	"github.com/vidverse/vidverse_backend/internal/utils/mapping"
)

const userColumns = `user_id, username, email, full_name, password_hash, avatar_url, cover_url,
	refresh_token_hash, refresh_token_expiry_time, auth_provider, provider_user_id, created_at, updated_at`

type PgxUserRepository struct {
	BaseRepository
}

func newPgxUserRepository(db *pgxpool.Pool) portsrepo.UserRepository {
	return &PgxUserRepository{BaseRepository{Pool: db}}
}

// Ensure PgxUserRepository implements portsrepo.UserRepository
var _ portsrepo.UserRepository = (*PgxUserRepository)(nil)

func scanUser(row pgx.Row) (*models.User, error) {
	var m models.User
	err := row.Scan(
		&m.UserID,
		&m.Username,
		&m.Email,
		&m.FullName,
		&m.PasswordHash,
		&m.AvatarURL,
		&m.CoverURL,
		&m.RefreshTokenHash,
		&m.RefreshTokenExpiryTime,
		&m.AuthProvider,
		&m.ProviderUserID,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)
	query := `
        INSERT INTO users (user_id, username, email, full_name, password_hash, avatar_url, cover_url,
            refresh_token_hash, refresh_token_expiry_time, auth_provider, provider_user_id, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
    `
	_, err := r.Pool.Exec(ctx, query,
		m.UserID,
		m.Username,
		m.Email,
		m.FullName,
		m.PasswordHash,
		m.AvatarURL,
		m.CoverURL,
		m.RefreshTokenHash,
		m.RefreshTokenExpiryTime,
		m.AuthProvider,
		m.ProviderUserID,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("username or email already taken: %w", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

func (r *PgxUserRepository) findOne(ctx context.Context, query string, args ...any) (*domain.User, error) {
	m, err := scanUser(r.Pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	d := mapping.ToDomainUser(*m)
	return &d, nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1;`
	return r.findOne(ctx, query, userID)
}

func (r *PgxUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	// Usernames are stored lowercase; lower() on the input makes the lookup
	// case-insensitive.
	query := `SELECT ` + userColumns + ` FROM users WHERE username = lower($1);`
	return r.findOne(ctx, query, username)
}

func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1;`
	return r.findOne(ctx, query, email)
}

func (r *PgxUserRepository) FindUserByProviderDetails(ctx context.Context, authProvider string, providerUserID string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE auth_provider = $1 AND provider_user_id = $2;`
	return r.findOne(ctx, query, authProvider, providerUserID)
}

func (r *PgxUserRepository) UpdateUserDetails(ctx context.Context, userID string, fullName string, email string) error {
	query := `
        UPDATE users
        SET full_name = $1, email = $2, updated_at = now()
        WHERE user_id = $3;
    `
	cmdTag, err := r.Pool.Exec(ctx, query, fullName, email, userID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("email already taken: %w", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to update user details: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxUserRepository) UpdateAvatarURL(ctx context.Context, userID string, avatarURL string) error {
	return r.updateSingleColumn(ctx, userID, "avatar_url", avatarURL)
}

func (r *PgxUserRepository) UpdateCoverURL(ctx context.Context, userID string, coverURL string) error {
	return r.updateSingleColumn(ctx, userID, "cover_url", coverURL)
}

func (r *PgxUserRepository) UpdatePasswordHash(ctx context.Context, userID string, passwordHash string) error {
	return r.updateSingleColumn(ctx, userID, "password_hash", passwordHash)
}

func (r *PgxUserRepository) updateSingleColumn(ctx context.Context, userID string, column string, value string) error {
	// column is always a compile-time constant from the callers above, never
	// user input.
	query := fmt.Sprintf(`UPDATE users SET %s = $1, updated_at = now() WHERE user_id = $2;`, column)
	cmdTag, err := r.Pool.Exec(ctx, query, value, userID)
	if err != nil {
		return fmt.Errorf("failed to update user %s: %w", column, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxUserRepository) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, expiryTime time.Time) error {
	query := `
        UPDATE users
        SET refresh_token_hash = $1, refresh_token_expiry_time = $2, updated_at = now()
        WHERE user_id = $3;
    `
	cmdTag, err := r.Pool.Exec(ctx, query, refreshTokenHash, expiryTime, userID)
	if err != nil {
		return fmt.Errorf("failed to update refresh token: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxUserRepository) RotateRefreshToken(ctx context.Context, userID string, oldHash string, newHash string, expiryTime time.Time) error {
	// Guarded update: the swap only happens if the stored hash still equals
	// the presented one, so a replayed stale token loses the race.
	query := `
        UPDATE users
        SET refresh_token_hash = $1, refresh_token_expiry_time = $2, updated_at = now()
        WHERE user_id = $3 AND refresh_token_hash = $4;
    `
	cmdTag, err := r.Pool.Exec(ctx, query, newHash, expiryTime, userID, oldHash)
	if err != nil {
		return fmt.Errorf("failed to rotate refresh token: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrRefreshTokenExpired
	}
	return nil
}

func (r *PgxUserRepository) ClearRefreshToken(ctx context.Context, userID string) error {
	query := `
        UPDATE users
        SET refresh_token_hash = NULL, refresh_token_expiry_time = NULL, updated_at = now()
        WHERE user_id = $1;
    `
	cmdTag, err := r.Pool.Exec(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("failed to clear refresh token: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
