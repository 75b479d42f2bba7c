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
)

type PgxSubscriptionRepository struct {
	BaseRepository
}

func newPgxSubscriptionRepository(db *pgxpool.Pool) portsrepo.SubscriptionRepository {
	return &PgxSubscriptionRepository{BaseRepository{Pool: db}}
}

var _ portsrepo.SubscriptionRepository = (*PgxSubscriptionRepository)(nil)

func (r *PgxSubscriptionRepository) SaveSubscription(ctx context.Context, sub domain.Subscription) error {
	query := `
        INSERT INTO subscriptions (subscription_id, subscriber_id, channel_id, created_at)
        VALUES ($1, $2, $3, $4);
    `
	_, err := r.Pool.Exec(ctx, query, sub.SubscriptionID, sub.SubscriberID, sub.ChannelID, sub.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("already subscribed: %w", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save subscription: %w", err)
	}
	return nil
}

func (r *PgxSubscriptionRepository) DeleteSubscription(ctx context.Context, subscriberID string, channelID string) error {
	query := `DELETE FROM subscriptions WHERE subscriber_id = $1 AND channel_id = $2;`
	cmdTag, err := r.Pool.Exec(ctx, query, subscriberID, channelID)
	if err != nil {
		return fmt.Errorf("failed to delete subscription: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxSubscriptionRepository) SubscriptionExists(ctx context.Context, subscriberID string, channelID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM subscriptions WHERE subscriber_id = $1 AND channel_id = $2);`
	var exists bool
	if err := r.Pool.QueryRow(ctx, query, subscriberID, channelID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check subscription existence: %w", err)
	}
	return exists, nil
}

// GetChannelProfile is the aggregation behind GET /c/:username. The counts
// and the viewer's membership test run as correlated subqueries against the
// subscriptions table in one round trip.
func (r *PgxSubscriptionRepository) GetChannelProfile(ctx context.Context, viewerID string, username string) (*domain.ChannelProfile, error) {
	query := `
        SELECT
            u.user_id,
            u.username,
            u.full_name,
            u.email,
            u.avatar_url,
            COALESCE(u.cover_url, ''),
            (SELECT count(*) FROM subscriptions s WHERE s.channel_id = u.user_id)    AS subscribers_count,
            (SELECT count(*) FROM subscriptions s WHERE s.subscriber_id = u.user_id) AS channels_subscribed_to_count,
            EXISTS (
                SELECT 1 FROM subscriptions s
                WHERE s.subscriber_id = $2 AND s.channel_id = u.user_id
            ) AS is_subscribed
        FROM users u
        WHERE u.username = lower($1);
    `
	var p domain.ChannelProfile
	err := r.Pool.QueryRow(ctx, query, username, viewerID).Scan(
		&p.UserID,
		&p.Username,
		&p.FullName,
		&p.Email,
		&p.AvatarURL,
		&p.CoverURL,
		&p.SubscribersCount,
		&p.ChannelsSubscribedToCount,
		&p.IsSubscribed,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to aggregate channel profile for %s: %w", username, err)
	}
	return &p, nil
}
