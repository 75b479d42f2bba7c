package dto

// RegisterUserRequest carries the text fields of the multipart registration
// form. The avatar (required) and cover (optional) files arrive alongside it
// and are handled separately by the handler.
type RegisterUserRequest struct {
	FullName string `form:"fullname" binding:"required"`
	Username string `form:"username" binding:"required,username"`
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required,min=8"`
}

// LoginRequest carries login credentials. Lookup is by email only.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse returns the sanitized user plus both tokens. The same tokens
// are also set as httpOnly cookies so header- and cookie-based clients both
// work.
type LoginResponse struct {
	User         UserResponse `json:"user"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
}

// RefreshTokenRequest is the body-delivered fallback for clients that do not
// send the refresh token cookie. "refreshToken" is the single canonical field
// name on both cookie and body.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// RefreshTokenResponse returns the rotated token pair.
type RefreshTokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// ChangePasswordRequest carries the old and new password for a password
// change by an authenticated user.
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

// ExchangeCodeRequest is the body for the Google sign-in code exchange.
type ExchangeCodeRequest struct {
	Code string `json:"code" binding:"required"`
}
