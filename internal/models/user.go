package models

import (
	"database/sql"
	"time"
)

// User is the database representation of a user row.
type User struct {
	UserID       string         `db:"user_id"`
	Username     string         `db:"username"`
	Email        string         `db:"email"`
	FullName     string         `db:"full_name"`
	PasswordHash string         `db:"password_hash"`
	AvatarURL    string         `db:"avatar_url"`
	CoverURL     sql.NullString `db:"cover_url"`

	// Refresh token state: hash of the most recent refresh token plus its
	// expiry. Both NULL when no session is active.
	RefreshTokenHash       sql.NullString `db:"refresh_token_hash"`
	RefreshTokenExpiryTime sql.NullTime   `db:"refresh_token_expiry_time"`

	AuthProvider   string         `db:"auth_provider"`
	ProviderUserID sql.NullString `db:"provider_user_id"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
