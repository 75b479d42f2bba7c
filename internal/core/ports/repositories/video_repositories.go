package repositories

import (
	"context"

	"github.com/vidverse/vidverse_backend/internal/core/domain"
)

// VideoRepository persists videos and the per-user watch-history sequence.
type VideoRepository interface {
	SaveVideo(ctx context.Context, video domain.Video) error
	FindVideoByID(ctx context.Context, videoID string) (*domain.Video, error)

	// ListWatchHistory returns the viewer's history strictly ordered by the
	// stored sequence position, each entry carrying the owning user's public
	// fields as a single embedded object. afterPosition is an exclusive
	// cursor; pass -1 for the first page.
	ListWatchHistory(ctx context.Context, userID string, afterPosition int64, limit int) ([]domain.WatchHistoryEntry, error)

	// AppendWatchHistory puts videoID at the end of the user's sequence,
	// removing any earlier occurrence first so a re-watch moves the video
	// rather than duplicating it.
	AppendWatchHistory(ctx context.Context, userID string, videoID string) error
}
