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

// SubscriptionHandler toggles subscription edges between viewers and channels.
type SubscriptionHandler struct {
	subscriptionService portssvc.SubscriptionSvcFacade
	cfg                 *config.Config
}

// NewSubscriptionHandler creates a new SubscriptionHandler.
func NewSubscriptionHandler(services *portssvc.ServiceContainer, cfg *config.Config) *SubscriptionHandler {
	return &SubscriptionHandler{
		subscriptionService: services.Subscription,
		cfg:                 cfg,
	}
}

func registerSubscriptionRoutes(api *gin.RouterGroup, cfg *config.Config, services *portssvc.ServiceContainer) {
	h := NewSubscriptionHandler(services, cfg)
	authMW := middleware.AuthMiddleware(cfg.AccessTokenSecret, cfg.AccessTokenCookieName)

	api.POST("/subscriptions/:username", authMW, h.ToggleSubscription)
}

// ToggleSubscription godoc
// @Summary Toggle a subscription
// @Description Subscribes the viewer to the named channel, or unsubscribes when already subscribed. Self-subscription is rejected.
// @Tags subscriptions
// @Produce json
// @Param username path string true "Channel username"
// @Success 200 {object} dto.APIResponse
// @Failure 400 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Security BearerAuth
// @Router /subscriptions/{username} [post]
func (h *SubscriptionHandler) ToggleSubscription(c *gin.Context) {
	ctx := c.Request.Context()

	subscriberID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondError(c, apperrors.NewUnauthorizedError("Unauthorized request"), h.cfg.IsProduction)
		return
	}

	subscribed, err := h.subscriptionService.ToggleSubscription(ctx, subscriberID, c.Param("username"))
	if err != nil {
		respondError(c, err, h.cfg.IsProduction)
		return
	}

	message := "Unsubscribed successfully"
	if subscribed {
		message = "Subscribed successfully"
	}
	respondSuccess(c, http.StatusOK, dto.ToggleSubscriptionResponse{Subscribed: subscribed}, message)
}
