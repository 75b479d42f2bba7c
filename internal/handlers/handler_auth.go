package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/vidverse/vidverse_backend/internal/apperrors"
	"github.com/vidverse/vidverse_backend/internal/core/domain"
	portssvc "github.com/vidverse/vidverse_backend/internal/core/ports/services"
	"github.com/vidverse/vidverse_backend/internal/dto"
	"github.com/vidverse/vidverse_backend/internal/middleware"
	"github.com/vidverse/vidverse_backend/internal/platform/config"
)

// AuthHandler handles registration, session, and token lifecycle requests.
type AuthHandler struct {
	userService  portssvc.UserSvcFacade
	tokenService portssvc.TokenSvcFacade
	mediaService portssvc.MediaStorageSvc
	googleOAuth  portssvc.GoogleOAuthSvcFacade
	cfg          *config.Config
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(services *portssvc.ServiceContainer, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		userService:  services.User,
		tokenService: services.Token,
		mediaService: services.Media,
		googleOAuth:  services.GoogleOAuth,
		cfg:          cfg,
	}
}

// registerAuthRoutes sets up the public authentication routes on the users
// group and the session routes that require an access token.
func registerAuthRoutes(users *gin.RouterGroup, cfg *config.Config, services *portssvc.ServiceContainer) {
	h := NewAuthHandler(services, cfg)

	// 5 requests per minute per IP on credential endpoints
	rate, _ := limiter.NewRateFromFormatted("5-M")
	ipLimiter := limiter.New(memory.NewStore(), rate)
	limitMiddleware := middleware.RateLimit(ipLimiter)

	users.POST("/register", limitMiddleware, h.Register)
	users.POST("/login", limitMiddleware, h.Login)
	users.POST("/refresh-token", h.RefreshToken)
	users.POST("/google/exchange-code", h.ExchangeCodeGoogle)

	authMW := middleware.AuthMiddleware(cfg.AccessTokenSecret, cfg.AccessTokenCookieName)
	users.POST("/logout", authMW, h.Logout)
	users.POST("/change-password", authMW, h.ChangePassword)
}

// setAuthCookies mirrors the token pair into httpOnly secure cookies so
// cookie-based clients work without reading the JSON body.
func (h *AuthHandler) setAuthCookies(c *gin.Context, pair *portssvc.TokenPair) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(h.cfg.AccessTokenCookieName, pair.AccessToken, int(h.cfg.AccessTokenExpiry.Seconds()), h.cfg.CookiePath, "", true, true)
	c.SetCookie(h.cfg.RefreshTokenCookieName, pair.RefreshToken, int(h.cfg.RefreshTokenExpiry.Seconds()), h.cfg.CookiePath, "", true, true)
}

func (h *AuthHandler) clearAuthCookies(c *gin.Context) {
	c.SetCookie(h.cfg.AccessTokenCookieName, "", -1, h.cfg.CookiePath, "", true, true)
	c.SetCookie(h.cfg.RefreshTokenCookieName, "", -1, h.cfg.CookiePath, "", true, true)
}

// Register godoc
// @Summary Register a new user
// @Description Creates an account from a multipart form: text fields plus a required avatar image and optional cover image.
// @Tags auth
// @Accept mpfd
// @Produce json
// @Param fullname formData string true "Full name"
// @Param username formData string true "Username"
// @Param email formData string true "Email"
// @Param password formData string true "Password"
// @Param avatar formData file true "Avatar image"
// @Param cover formData file false "Cover image"
// @Success 201 {object} dto.APIResponse
// @Failure 400 {object} dto.APIResponse
// @Failure 409 {object} dto.APIResponse
// @Router /users/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	var req dto.RegisterUserRequest
	if err := c.ShouldBind(&req); err != nil {
		respondError(c, apperrors.NewBadRequestError("Invalid registration form: "+err.Error()), h.cfg.IsProduction)
		return
	}

	avatarFile, err := c.FormFile("avatar")
	if err != nil {
		respondError(c, apperrors.NewBadRequestError("Avatar is required"), h.cfg.IsProduction)
		return
	}

	avatarPath, avatarCleanup, err := saveTempUpload(c, avatarFile, h.cfg.TmpUploadDir)
	if err != nil {
		respondError(c, apperrors.NewInternalServerError("Failed to process avatar upload"), h.cfg.IsProduction)
		return
	}
	defer avatarCleanup()

	avatarURL, err := h.mediaService.Upload(ctx, avatarPath, "avatars")
	if err != nil {
		logger.Error("Avatar upload failed", slog.String("error", err.Error()))
		respondError(c, apperrors.NewInternalServerError("Failed to upload avatar"), h.cfg.IsProduction)
		return
	}

	// Cover is optional: a missing file or a failed upload does not block
	// registration.
	coverURL := ""
	if coverFile, err := c.FormFile("cover"); err == nil {
		coverPath, coverCleanup, err := saveTempUpload(c, coverFile, h.cfg.TmpUploadDir)
		if err == nil {
			defer coverCleanup()
			if url, err := h.mediaService.Upload(ctx, coverPath, "covers"); err == nil {
				coverURL = url
			} else {
				logger.Warn("Cover upload failed, continuing without cover", slog.String("error", err.Error()))
			}
		}
	}

	user, err := h.userService.RegisterUser(ctx, req, avatarURL, coverURL)
	if err != nil {
		respondError(c, err, h.cfg.IsProduction)
		return
	}

	respondSuccess(c, http.StatusCreated, dto.ToUserResponse(user), "User registered successfully")
}

// Login godoc
// @Summary User login
// @Description Verifies credentials and returns the sanitized user plus an access/refresh token pair, also set as httpOnly cookies.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.APIResponse
// @Failure 400 {object} dto.APIResponse
// @Failure 401 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Router /users/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.NewBadRequestError("Email and password are required"), h.cfg.IsProduction)
		return
	}

	user, err := h.userService.AuthenticateUser(ctx, req.Email, req.Password)
	if err != nil {
		respondError(c, err, h.cfg.IsProduction)
		return
	}

	pair, err := h.tokenService.IssueTokenPair(ctx, user)
	if err != nil {
		respondError(c, apperrors.NewInternalServerError("Failed to generate tokens"), h.cfg.IsProduction)
		return
	}

	h.setAuthCookies(c, pair)
	respondSuccess(c, http.StatusOK, dto.LoginResponse{
		User:         dto.ToUserResponse(user),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, "User logged in successfully")
}

// Logout godoc
// @Summary User logout
// @Description Clears the stored refresh token and both auth cookies.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.APIResponse
// @Failure 401 {object} dto.APIResponse
// @Security BearerAuth
// @Router /users/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	ctx := c.Request.Context()

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondError(c, apperrors.NewUnauthorizedError("Unauthorized request"), h.cfg.IsProduction)
		return
	}

	if err := h.userService.ClearRefreshToken(ctx, userID); err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		respondError(c, err, h.cfg.IsProduction)
		return
	}

	h.clearAuthCookies(c)
	respondSuccess(c, http.StatusOK, gin.H{}, "User logged out successfully")
}

// refreshTokenFromRequest reads the presented refresh token: cookie first,
// JSON body as fallback. The incoming request is never mutated.
func (h *AuthHandler) refreshTokenFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie(h.cfg.RefreshTokenCookieName); err == nil && cookie != "" {
		return cookie
	}
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err == nil {
		return req.RefreshToken
	}
	return ""
}

// RefreshToken godoc
// @Summary Rotate the refresh token
// @Description Exchanges a valid refresh token (cookie or body) for a new access/refresh pair. Each refresh token is valid for exactly one rotation.
// @Tags auth
// @Accept json
// @Produce json
// @Param refresh body dto.RefreshTokenRequest false "Refresh token (when not sent as cookie)"
// @Success 200 {object} dto.APIResponse
// @Failure 401 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Router /users/refresh-token [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	ctx := c.Request.Context()

	presented := h.refreshTokenFromRequest(c)
	if presented == "" {
		respondError(c, apperrors.NewUnauthorizedError("Refresh token is required"), h.cfg.IsProduction)
		return
	}

	pair, err := h.tokenService.RotateRefreshToken(ctx, presented)
	if err != nil {
		respondError(c, err, h.cfg.IsProduction)
		return
	}

	h.setAuthCookies(c, pair)
	respondSuccess(c, http.StatusOK, dto.RefreshTokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, "Access token refreshed")
}

// ChangePassword godoc
// @Summary Change the current user's password
// @Tags auth
// @Accept json
// @Produce json
// @Param passwords body dto.ChangePasswordRequest true "Old and new password"
// @Success 200 {object} dto.APIResponse
// @Failure 400 {object} dto.APIResponse
// @Failure 401 {object} dto.APIResponse
// @Security BearerAuth
// @Router /users/change-password [post]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	ctx := c.Request.Context()

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondError(c, apperrors.NewUnauthorizedError("Unauthorized request"), h.cfg.IsProduction)
		return
	}

	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.NewBadRequestError("Old and new password are required"), h.cfg.IsProduction)
		return
	}

	if err := h.userService.ChangePassword(ctx, userID, req.OldPassword, req.NewPassword); err != nil {
		respondError(c, err, h.cfg.IsProduction)
		return
	}

	respondSuccess(c, http.StatusOK, gin.H{}, "Password changed successfully")
}

// ExchangeCodeGoogle godoc
// @Summary Sign in with Google
// @Description Exchanges a Google authorization code for an application session: validates the ID token, finds or creates the user, and issues the normal token pair.
// @Tags auth
// @Accept json
// @Produce json
// @Param code body dto.ExchangeCodeRequest true "Authorization code"
// @Success 200 {object} dto.APIResponse
// @Failure 400 {object} dto.APIResponse
// @Failure 401 {object} dto.APIResponse
// @Router /users/google/exchange-code [post]
func (h *AuthHandler) ExchangeCodeGoogle(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	var req dto.ExchangeCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.NewBadRequestError("Authorization code is required"), h.cfg.IsProduction)
		return
	}

	oauth2Token, err := h.googleOAuth.ExchangeCodeForToken(ctx, req.Code)
	if err != nil {
		logger.Error("Failed to exchange authorization code with Google", slog.String("error", err.Error()))
		respondError(c, apperrors.NewBadRequestError("Invalid or expired authorization code"), h.cfg.IsProduction)
		return
	}

	idTokenString, ok := oauth2Token.Extra("id_token").(string)
	if !ok || idTokenString == "" {
		respondError(c, apperrors.NewInternalServerError("Failed to retrieve ID token from Google"), h.cfg.IsProduction)
		return
	}

	payload, err := h.googleOAuth.ValidateGoogleIDToken(ctx, idTokenString)
	if err != nil {
		logger.Warn("Google ID token validation failed", slog.String("error", err.Error()))
		respondError(c, apperrors.NewUnauthorizedError("Invalid Google ID token"), h.cfg.IsProduction)
		return
	}

	email, _ := payload.Claims["email"].(string)
	name, _ := payload.Claims["name"].(string)
	if email == "" || payload.Subject == "" {
		respondError(c, apperrors.NewInternalServerError("Essential user information missing from Google token"), h.cfg.IsProduction)
		return
	}

	user, err := h.userService.CreateOAuthUser(ctx, name, email, domain.ProviderGoogle, payload.Subject)
	if err != nil {
		respondError(c, err, h.cfg.IsProduction)
		return
	}

	pair, err := h.tokenService.IssueTokenPair(ctx, user)
	if err != nil {
		respondError(c, apperrors.NewInternalServerError("Failed to generate tokens"), h.cfg.IsProduction)
		return
	}

	h.setAuthCookies(c, pair)
	respondSuccess(c, http.StatusOK, dto.LoginResponse{
		User:         dto.ToUserResponse(user),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, "User logged in with Google")
}
