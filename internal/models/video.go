package models

import (
	"database/sql"
	"time"
)

// Video is the database representation of a video row.
type Video struct {
	VideoID         string         `db:"video_id"`
	OwnerID         string         `db:"owner_id"`
	Title           string         `db:"title"`
	Description     sql.NullString `db:"description"`
	VideoURL        string         `db:"video_url"`
	ThumbnailURL    string         `db:"thumbnail_url"`
	DurationSeconds float64        `db:"duration_seconds"`
	Views           int64          `db:"views"`
	IsPublished     bool           `db:"is_published"`
	CreatedAt       time.Time      `db:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at"`
}

// WatchHistoryRow is one row of a user's watch-history sequence. Position is
// monotonically increasing per user; ordering is ORDER BY position.
type WatchHistoryRow struct {
	UserID    string    `db:"user_id"`
	VideoID   string    `db:"video_id"`
	Position  int64     `db:"position"`
	WatchedAt time.Time `db:"watched_at"`
}
