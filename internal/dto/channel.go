package dto

import "github.com/vidverse/vidverse_backend/internal/core/domain"

// WatchHistoryParams are the query parameters for the watch-history listing.
type WatchHistoryParams struct {
	Limit  int    `form:"limit,default=20"`
	Cursor string `form:"cursor"`
}

// WatchHistoryResponse wraps the ordered history page plus the cursor for
// the next page (empty when exhausted).
type WatchHistoryResponse struct {
	Videos     []domain.WatchHistoryEntry `json:"videos"`
	NextCursor string                     `json:"nextCursor,omitempty"`
}

// ToggleSubscriptionResponse reports the resulting edge state.
type ToggleSubscriptionResponse struct {
	Subscribed bool `json:"subscribed"`
}
