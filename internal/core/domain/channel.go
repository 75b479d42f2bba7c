package domain

// ChannelProfile is the aggregated public view of a user as a channel:
// the user's public fields plus subscription counts computed against the
// subscriptions table, and whether the viewer follows this channel.
type ChannelProfile struct {
	UserID                    string `json:"userID"`
	Username                  string `json:"username"`
	FullName                  string `json:"fullName"`
	Email                     string `json:"email"`
	AvatarURL                 string `json:"avatarURL"`
	CoverURL                  string `json:"coverURL,omitempty"`
	SubscribersCount          int64  `json:"subscribersCount"`
	ChannelsSubscribedToCount int64  `json:"channelsSubscribedToCount"`
	IsSubscribed              bool   `json:"isSubscribed"`
}
