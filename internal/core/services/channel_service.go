package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/vidverse/vidverse_backend/internal/apperrors"
	"github.com/vidverse/vidverse_backend/internal/core/domain"
	portsrepo "github.com/vidverse/vidverse_backend/internal/core/ports/repositories"
	portssvc "github.com/vidverse/vidverse_backend/internal/core/ports/services"
	"github.com/vidverse/vidverse_backend/internal/dto"
	"github.com/vidverse/vidverse_backend/internal/utils/pagination"
)

const maxHistoryPageSize = 100

// channelService computes the derived channel-profile and watch-history
// views.
type channelService struct {
	BaseService
	subscriptionRepo portsrepo.SubscriptionRepository
	videoRepo        portsrepo.VideoRepository
}

// NewChannelService creates a new channel service.
func NewChannelService(subscriptionRepo portsrepo.SubscriptionRepository, videoRepo portsrepo.VideoRepository) portssvc.ChannelSvcFacade {
	return &channelService{subscriptionRepo: subscriptionRepo, videoRepo: videoRepo}
}

var _ portssvc.ChannelSvcFacade = (*channelService)(nil)

func (s *channelService) GetChannelProfile(ctx context.Context, viewerID string, username string) (*domain.ChannelProfile, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("username is required: %w", apperrors.ErrValidation)
	}

	profile, err := s.subscriptionRepo.GetChannelProfile(ctx, viewerID, username)
	if err != nil {
		return nil, fmt.Errorf("failed to get channel profile: %w", err)
	}
	return profile, nil
}

func (s *channelService) GetWatchHistory(ctx context.Context, viewerID string, params dto.WatchHistoryParams) (*dto.WatchHistoryResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > maxHistoryPageSize {
		limit = maxHistoryPageSize
	}

	afterPosition := int64(-1)
	if params.Cursor != "" {
		pos, err := pagination.DecodePositionToken(params.Cursor)
		if err != nil {
			return nil, fmt.Errorf("invalid cursor: %w", apperrors.ErrValidation)
		}
		afterPosition = pos
	}

	// Fetch one extra row to know whether a next page exists.
	entries, err := s.videoRepo.ListWatchHistory(ctx, viewerID, afterPosition, limit+1)
	if err != nil {
		return nil, fmt.Errorf("failed to list watch history: %w", err)
	}

	resp := &dto.WatchHistoryResponse{}
	if len(entries) > limit {
		entries = entries[:limit]
		resp.NextCursor = pagination.EncodePositionToken(entries[len(entries)-1].Position)
	}
	resp.Videos = entries
	return resp, nil
}

func (s *channelService) AddToWatchHistory(ctx context.Context, viewerID string, videoID string) error {
	if strings.TrimSpace(videoID) == "" {
		return fmt.Errorf("video ID is required: %w", apperrors.ErrValidation)
	}
	if _, err := s.videoRepo.FindVideoByID(ctx, videoID); err != nil {
		return fmt.Errorf("failed to resolve video: %w", err)
	}
	if err := s.videoRepo.AppendWatchHistory(ctx, viewerID, videoID); err != nil {
		return fmt.Errorf("failed to append watch history: %w", err)
	}
	return nil
}
