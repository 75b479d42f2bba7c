package services

import (
	"context"

	"github.com/vidverse/vidverse_backend/internal/core/domain"
	"github.com/vidverse/vidverse_backend/internal/dto"
)

// ChannelSvcFacade computes the derived channel-profile and watch-history
// views.
type ChannelSvcFacade interface {
	// GetChannelProfile fails with apperrors.ErrValidation on a blank
	// username and apperrors.ErrNotFound when no user matches
	// (case-insensitive).
	GetChannelProfile(ctx context.Context, viewerID string, username string) (*domain.ChannelProfile, error)

	// GetWatchHistory returns the viewer's history in stored order, each
	// video annotated with a single owner object, plus a cursor for the
	// next page.
	GetWatchHistory(ctx context.Context, viewerID string, params dto.WatchHistoryParams) (*dto.WatchHistoryResponse, error)

	// AddToWatchHistory records that the viewer watched videoID, moving it
	// to the end of the sequence.
	AddToWatchHistory(ctx context.Context, viewerID string, videoID string) error
}

// SubscriptionSvcFacade manages subscription edges.
type SubscriptionSvcFacade interface {
	// ToggleSubscription creates the edge subscriber -> channel when absent
	// and removes it when present, returning the resulting state.
	// Self-subscription fails with apperrors.ErrValidation.
	ToggleSubscription(ctx context.Context, subscriberID string, channelUsername string) (bool, error)
}
