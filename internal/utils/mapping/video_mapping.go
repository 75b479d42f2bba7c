package mapping

import (
	"database/sql"

	"github.com/vidverse/vidverse_backend/internal/core/domain"
	"github.com/vidverse/vidverse_backend/internal/models"
)

// ToModelVideo converts a domain video to its database representation.
func ToModelVideo(d domain.Video) models.Video {
	m := models.Video{
		VideoID:         d.VideoID,
		OwnerID:         d.OwnerID,
		Title:           d.Title,
		VideoURL:        d.VideoURL,
		ThumbnailURL:    d.ThumbnailURL,
		DurationSeconds: d.DurationSeconds,
		Views:           d.Views,
		IsPublished:     d.IsPublished,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
	if d.Description != "" {
		m.Description = sql.NullString{String: d.Description, Valid: true}
	}
	return m
}

// ToDomainVideo converts a database video row to its domain representation.
func ToDomainVideo(m models.Video) domain.Video {
	d := domain.Video{
		VideoID:         m.VideoID,
		OwnerID:         m.OwnerID,
		Title:           m.Title,
		VideoURL:        m.VideoURL,
		ThumbnailURL:    m.ThumbnailURL,
		DurationSeconds: m.DurationSeconds,
		Views:           m.Views,
		IsPublished:     m.IsPublished,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
	if m.Description.Valid {
		d.Description = m.Description.String
	}
	return d
}
