package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vidverse/vidverse_backend/internal/apperrors"
	"github.com/vidverse/vidverse_backend/internal/core/domain"
	portsrepo "github.com/vidverse/vidverse_backend/internal/core/ports/repositories"
	"github.com/vidverse/vidverse_backend/internal/models"
	"github.com/vidverse/vidverse_backend/internal/utils/mapping"
)

type PgxVideoRepository struct {
	BaseRepository
}

func newPgxVideoRepository(db *pgxpool.Pool) portsrepo.VideoRepository {
	return &PgxVideoRepository{BaseRepository{Pool: db}}
}

var _ portsrepo.VideoRepository = (*PgxVideoRepository)(nil)

func (r *PgxVideoRepository) SaveVideo(ctx context.Context, video domain.Video) error {
	m := mapping.ToModelVideo(video)
	query := `
        INSERT INTO videos (video_id, owner_id, title, description, video_url, thumbnail_url,
            duration_seconds, views, is_published, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
    `
	_, err := r.Pool.Exec(ctx, query,
		m.VideoID,
		m.OwnerID,
		m.Title,
		m.Description,
		m.VideoURL,
		m.ThumbnailURL,
		m.DurationSeconds,
		m.Views,
		m.IsPublished,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save video: %w", err)
	}
	return nil
}

func (r *PgxVideoRepository) FindVideoByID(ctx context.Context, videoID string) (*domain.Video, error) {
	query := `
        SELECT video_id, owner_id, title, description, video_url, thumbnail_url,
            duration_seconds, views, is_published, created_at, updated_at
        FROM videos
        WHERE video_id = $1;
    `
	var m models.Video
	err := r.Pool.QueryRow(ctx, query, videoID).Scan(
		&m.VideoID,
		&m.OwnerID,
		&m.Title,
		&m.Description,
		&m.VideoURL,
		&m.ThumbnailURL,
		&m.DurationSeconds,
		&m.Views,
		&m.IsPublished,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find video by ID %s: %w", videoID, err)
	}
	d := mapping.ToDomainVideo(m)
	return &d, nil
}

// ListWatchHistory joins the history sequence against videos and their
// owners. ORDER BY position carries the stored sequence through the join;
// joins alone do not guarantee order.
func (r *PgxVideoRepository) ListWatchHistory(ctx context.Context, userID string, afterPosition int64, limit int) ([]domain.WatchHistoryEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
        SELECT
            v.video_id, v.owner_id, v.title, v.description, v.video_url, v.thumbnail_url,
            v.duration_seconds, v.views, v.is_published, v.created_at, v.updated_at,
            o.user_id, o.username, o.full_name, o.avatar_url,
            wh.position, wh.watched_at
        FROM watch_history wh
        JOIN videos v ON v.video_id = wh.video_id
        JOIN users o ON o.user_id = v.owner_id
        WHERE wh.user_id = $1 AND wh.position > $2
        ORDER BY wh.position
        LIMIT $3;
    `
	rows, err := r.Pool.Query(ctx, query, userID, afterPosition, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query watch history: %w", err)
	}
	defer rows.Close()

	entries := []domain.WatchHistoryEntry{}
	for rows.Next() {
		var m models.Video
		var entry domain.WatchHistoryEntry
		err := rows.Scan(
			&m.VideoID,
			&m.OwnerID,
			&m.Title,
			&m.Description,
			&m.VideoURL,
			&m.ThumbnailURL,
			&m.DurationSeconds,
			&m.Views,
			&m.IsPublished,
			&m.CreatedAt,
			&m.UpdatedAt,
			&entry.Owner.UserID,
			&entry.Owner.Username,
			&entry.Owner.FullName,
			&entry.Owner.AvatarURL,
			&entry.Position,
			&entry.WatchedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan watch history row: %w", err)
		}
		entry.Video = mapping.ToDomainVideo(m)
		entries = append(entries, entry)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating watch history rows: %w", rows.Err())
	}

	return entries, nil
}

// AppendWatchHistory moves videoID to the end of the user's sequence. The
// delete and re-insert happen in one transaction so a concurrent reader
// never sees the video duplicated or missing.
func (r *PgxVideoRepository) AppendWatchHistory(ctx context.Context, userID string, videoID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM watch_history WHERE user_id = $1 AND video_id = $2;`, userID, videoID); err != nil {
		return fmt.Errorf("failed to deduplicate watch history: %w", err)
	}

	query := `
        INSERT INTO watch_history (user_id, video_id, position, watched_at)
        SELECT $1, $2, COALESCE(max(position), 0) + 1, now()
        FROM watch_history
        WHERE user_id = $1;
    `
	if _, err := tx.Exec(ctx, query, userID, videoID); err != nil {
		return fmt.Errorf("failed to append watch history: %w", err)
	}

	return r.Commit(ctx, tx)
}
