package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vidverse/vidverse_backend/internal/apperrors"
	portssvc "github.com/vidverse/vidverse_backend/internal/core/ports/services"
	"github.com/vidverse/vidverse_backend/internal/dto"
	"github.com/vidverse/vidverse_backend/internal/middleware"
	"github.com/vidverse/vidverse_backend/internal/platform/config"
)

// ChannelHandler serves channel profiles and the viewer's watch history.
type ChannelHandler struct {
	channelService portssvc.ChannelSvcFacade
	cfg            *config.Config
}

// NewChannelHandler creates a new ChannelHandler.
func NewChannelHandler(services *portssvc.ServiceContainer, cfg *config.Config) *ChannelHandler {
	return &ChannelHandler{
		channelService: services.Channel,
		cfg:            cfg,
	}
}

func registerChannelRoutes(users *gin.RouterGroup, cfg *config.Config, services *portssvc.ServiceContainer) {
	h := NewChannelHandler(services, cfg)
	authMW := middleware.AuthMiddleware(cfg.AccessTokenSecret, cfg.AccessTokenCookieName)

	users.GET("/c/:username", authMW, h.GetChannelProfile)
	users.GET("/history", authMW, h.GetWatchHistory)
	users.POST("/history/:videoID", authMW, h.AddToWatchHistory)
}

// GetChannelProfile godoc
// @Summary Get a channel profile
// @Description Returns the channel owner's public fields plus subscriber counts and whether the viewer is subscribed.
// @Tags channels
// @Produce json
// @Param username path string true "Channel username"
// @Success 200 {object} dto.APIResponse
// @Failure 400 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Security BearerAuth
// @Router /users/c/{username} [get]
func (h *ChannelHandler) GetChannelProfile(c *gin.Context) {
	ctx := c.Request.Context()

	viewerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondError(c, apperrors.NewUnauthorizedError("Unauthorized request"), h.cfg.IsProduction)
		return
	}

	profile, err := h.channelService.GetChannelProfile(ctx, viewerID, c.Param("username"))
	if err != nil {
		respondError(c, err, h.cfg.IsProduction)
		return
	}

	respondSuccess(c, http.StatusOK, profile, "Channel profile fetched successfully")
}

// GetWatchHistory godoc
// @Summary Get the viewer's watch history
// @Description Returns watched videos in stored order, each with its owner's public fields, paginated by an opaque cursor.
// @Tags channels
// @Produce json
// @Param limit query int false "Page size (max 100)"
// @Param cursor query string false "Opaque cursor from a previous page"
// @Success 200 {object} dto.APIResponse
// @Failure 400 {object} dto.APIResponse
// @Security BearerAuth
// @Router /users/history [get]
func (h *ChannelHandler) GetWatchHistory(c *gin.Context) {
	ctx := c.Request.Context()

	viewerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondError(c, apperrors.NewUnauthorizedError("Unauthorized request"), h.cfg.IsProduction)
		return
	}

	var params dto.WatchHistoryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondError(c, apperrors.NewBadRequestError("Invalid pagination parameters"), h.cfg.IsProduction)
		return
	}

	history, err := h.channelService.GetWatchHistory(ctx, viewerID, params)
	if err != nil {
		respondError(c, err, h.cfg.IsProduction)
		return
	}

	respondSuccess(c, http.StatusOK, history, "Watch history fetched successfully")
}

// AddToWatchHistory godoc
// @Summary Record a watched video
// @Description Appends the video to the viewer's history. Re-watching moves the video to the end of the sequence.
// @Tags channels
// @Produce json
// @Param videoID path string true "Video ID"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Security BearerAuth
// @Router /users/history/{videoID} [post]
func (h *ChannelHandler) AddToWatchHistory(c *gin.Context) {
	ctx := c.Request.Context()

	viewerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondError(c, apperrors.NewUnauthorizedError("Unauthorized request"), h.cfg.IsProduction)
		return
	}

	if err := h.channelService.AddToWatchHistory(ctx, viewerID, c.Param("videoID")); err != nil {
		respondError(c, err, h.cfg.IsProduction)
		return
	}

	respondSuccess(c, http.StatusOK, gin.H{}, "Video added to watch history")
}
