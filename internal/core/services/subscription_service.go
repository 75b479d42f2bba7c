package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vidverse/vidverse_backend/internal/apperrors"
	"github.com/vidverse/vidverse_backend/internal/core/domain"
	portsrepo "github.com/vidverse/vidverse_backend/internal/core/ports/repositories"
	portssvc "github.com/vidverse/vidverse_backend/internal/core/ports/services"
)

// subscriptionService manages subscription edges between users.
type subscriptionService struct {
	BaseService
	subscriptionRepo portsrepo.SubscriptionRepository
	userRepo         portsrepo.UserRepository
}

// NewSubscriptionService creates a new subscription service.
func NewSubscriptionService(subscriptionRepo portsrepo.SubscriptionRepository, userRepo portsrepo.UserRepository) portssvc.SubscriptionSvcFacade {
	return &subscriptionService{subscriptionRepo: subscriptionRepo, userRepo: userRepo}
}

var _ portssvc.SubscriptionSvcFacade = (*subscriptionService)(nil)

func (s *subscriptionService) ToggleSubscription(ctx context.Context, subscriberID string, channelUsername string) (bool, error) {
	channelUsername = strings.TrimSpace(channelUsername)
	if channelUsername == "" {
		return false, fmt.Errorf("channel username is required: %w", apperrors.ErrValidation)
	}

	channel, err := s.userRepo.FindUserByUsername(ctx, channelUsername)
	if err != nil {
		return false, fmt.Errorf("failed to resolve channel: %w", err)
	}
	if channel.UserID == subscriberID {
		return false, fmt.Errorf("cannot subscribe to your own channel: %w", apperrors.ErrValidation)
	}

	exists, err := s.subscriptionRepo.SubscriptionExists(ctx, subscriberID, channel.UserID)
	if err != nil {
		return false, err
	}

	if exists {
		if err := s.subscriptionRepo.DeleteSubscription(ctx, subscriberID, channel.UserID); err != nil {
			return false, fmt.Errorf("failed to unsubscribe: %w", err)
		}
		s.LogInfo(ctx, "Unsubscribed", slog.String("channel_id", channel.UserID))
		return false, nil
	}

	sub := domain.Subscription{
		SubscriptionID: uuid.NewString(),
		SubscriberID:   subscriberID,
		ChannelID:      channel.UserID,
		CreatedAt:      time.Now(),
	}
	if err := s.subscriptionRepo.SaveSubscription(ctx, sub); err != nil {
		return false, fmt.Errorf("failed to subscribe: %w", err)
	}
	s.LogInfo(ctx, "Subscribed", slog.String("channel_id", channel.UserID))
	return true, nil
}
