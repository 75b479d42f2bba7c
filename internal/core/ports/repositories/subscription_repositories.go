package repositories

import (
	"context"

	"github.com/vidverse/vidverse_backend/internal/core/domain"
)

// SubscriptionRepository persists subscription edges and answers the
// channel-profile aggregation.
type SubscriptionRepository interface {
	SaveSubscription(ctx context.Context, sub domain.Subscription) error
	// DeleteSubscription removes the edge subscriber -> channel. Returns
	// apperrors.ErrNotFound when no such edge exists.
	DeleteSubscription(ctx context.Context, subscriberID string, channelID string) error
	SubscriptionExists(ctx context.Context, subscriberID string, channelID string) (bool, error)

	// GetChannelProfile resolves the channel user by lowercase username and
	// computes subscriber counts plus whether viewerID follows the channel,
	// in a single aggregate query. Returns apperrors.ErrNotFound for an
	// unknown username.
	GetChannelProfile(ctx context.Context, viewerID string, username string) (*domain.ChannelProfile, error)
}
