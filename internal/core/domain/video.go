package domain

import "time"

// Video is a published piece of content owned by a user.
type Video struct {
	VideoID         string    `json:"videoID"`
	OwnerID         string    `json:"ownerID"`
	Title           string    `json:"title"`
	Description     string    `json:"description,omitempty"`
	VideoURL        string    `json:"videoURL"`
	ThumbnailURL    string    `json:"thumbnailURL"`
	DurationSeconds float64   `json:"durationSeconds"`
	Views           int64     `json:"views"`
	IsPublished     bool      `json:"isPublished"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// VideoOwner is the denormalized public slice of the owning user that gets
// embedded into watch-history entries. Exactly one owner per video.
type VideoOwner struct {
	UserID    string `json:"userID"`
	Username  string `json:"username"`
	FullName  string `json:"fullName"`
	AvatarURL string `json:"avatarURL"`
}

// WatchHistoryEntry is a video annotated with its owner and the position it
// occupies in the viewer's history sequence.
type WatchHistoryEntry struct {
	Video
	Owner     VideoOwner `json:"owner"`
	Position  int64      `json:"-"`
	WatchedAt time.Time  `json:"watchedAt"`
}
