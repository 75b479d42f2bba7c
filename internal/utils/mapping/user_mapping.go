package mapping

import (
	"database/sql"

	"github.com/vidverse/vidverse_backend/internal/core/domain"
	"github.com/vidverse/vidverse_backend/internal/models"
)

// ToModelUser converts a domain user to its database representation.
func ToModelUser(d domain.User) models.User {
	m := models.User{
		UserID:       d.UserID,
		Username:     d.Username,
		Email:        d.Email,
		FullName:     d.FullName,
		PasswordHash: d.PasswordHash,
		AvatarURL:    d.AvatarURL,
		AuthProvider: d.AuthProvider,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
	if d.CoverURL != "" {
		m.CoverURL = sql.NullString{String: d.CoverURL, Valid: true}
	}
	if d.RefreshTokenHash != "" {
		m.RefreshTokenHash = sql.NullString{String: d.RefreshTokenHash, Valid: true}
	}
	if d.RefreshTokenExpiryTime != nil {
		m.RefreshTokenExpiryTime = sql.NullTime{Time: *d.RefreshTokenExpiryTime, Valid: true}
	}
	if d.ProviderUserID != "" {
		m.ProviderUserID = sql.NullString{String: d.ProviderUserID, Valid: true}
	}
	return m
}

// ToDomainUser converts a database user row to its domain representation.
func ToDomainUser(m models.User) domain.User {
	d := domain.User{
		UserID:       m.UserID,
		Username:     m.Username,
		Email:        m.Email,
		FullName:     m.FullName,
		PasswordHash: m.PasswordHash,
		AvatarURL:    m.AvatarURL,
		AuthProvider: m.AuthProvider,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
	if m.CoverURL.Valid {
		d.CoverURL = m.CoverURL.String
	}
	if m.RefreshTokenHash.Valid {
		d.RefreshTokenHash = m.RefreshTokenHash.String
	}
	if m.RefreshTokenExpiryTime.Valid {
		t := m.RefreshTokenExpiryTime.Time
		d.RefreshTokenExpiryTime = &t
	}
	if m.ProviderUserID.Valid {
		d.ProviderUserID = m.ProviderUserID.String
	}
	return d
}
