package domain

import "time"

// Subscription is a directed edge: SubscriberID follows ChannelID.
// Both ends reference users; the pair is unique.
type Subscription struct {
	SubscriptionID string    `json:"subscriptionID"`
	SubscriberID   string    `json:"subscriberID"`
	ChannelID      string    `json:"channelID"`
	CreatedAt      time.Time `json:"createdAt"`
}
