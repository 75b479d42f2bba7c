package domain

import "time"

// User represents a registered account in the domain. A user doubles as a
// channel when viewed as the target of subscriptions.
type User struct {
	UserID       string `json:"userID"`
	Username     string `json:"username"` // unique, stored lowercase
	Email        string `json:"email"`    // unique
	FullName     string `json:"fullName"`
	PasswordHash string `json:"-"`
	AvatarURL    string `json:"avatarURL"`
	CoverURL     string `json:"coverURL,omitempty"`

	// Single-active-session refresh token state. Only the SHA256 hash of the
	// most recently issued refresh token is kept; it is nil between logout
	// and the next login.
	RefreshTokenHash       string     `json:"-"`
	RefreshTokenExpiryTime *time.Time `json:"-"`

	AuthProvider   string `json:"-"` // "local" or an OAuth provider name
	ProviderUserID string `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AuthProvider values.
const (
	ProviderLocal  = "local"
	ProviderGoogle = "google"
)

func (u *User) GetUserID() string   { return u.UserID }
func (u *User) GetUsername() string { return u.Username }
func (u *User) GetFullName() string { return u.FullName }
