package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vidverse/vidverse_backend/internal/apperrors"
	portssvc "github.com/vidverse/vidverse_backend/internal/core/ports/services"
	"github.com/vidverse/vidverse_backend/internal/dto"
	"github.com/vidverse/vidverse_backend/internal/middleware"
	"github.com/vidverse/vidverse_backend/internal/platform/config"
)

// UserHandler handles account-management requests for the authenticated user.
type UserHandler struct {
	userService  portssvc.UserSvcFacade
	mediaService portssvc.MediaStorageSvc
	cfg          *config.Config
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(services *portssvc.ServiceContainer, cfg *config.Config) *UserHandler {
	return &UserHandler{
		userService:  services.User,
		mediaService: services.Media,
		cfg:          cfg,
	}
}

func registerUserRoutes(users *gin.RouterGroup, cfg *config.Config, services *portssvc.ServiceContainer) {
	h := NewUserHandler(services, cfg)
	authMW := middleware.AuthMiddleware(cfg.AccessTokenSecret, cfg.AccessTokenCookieName)

	users.GET("/current-user", authMW, h.GetCurrentUser)
	users.PATCH("/update-account", authMW, h.UpdateAccount)
	users.PATCH("/avatar", authMW, h.UpdateAvatar)
	users.PATCH("/cover-image", authMW, h.UpdateCover)
}

// GetCurrentUser godoc
// @Summary Get the authenticated user
// @Tags users
// @Produce json
// @Success 200 {object} dto.APIResponse
// @Failure 401 {object} dto.APIResponse
// @Security BearerAuth
// @Router /users/current-user [get]
func (h *UserHandler) GetCurrentUser(c *gin.Context) {
	ctx := c.Request.Context()

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondError(c, apperrors.NewUnauthorizedError("Unauthorized request"), h.cfg.IsProduction)
		return
	}

	user, err := h.userService.GetUserByID(ctx, userID)
	if err != nil {
		respondError(c, err, h.cfg.IsProduction)
		return
	}

	respondSuccess(c, http.StatusOK, dto.ToUserResponse(user), "Current user fetched successfully")
}

// UpdateAccount godoc
// @Summary Update account details
// @Description Updates the full name and/or email of the authenticated user.
// @Tags users
// @Accept json
// @Produce json
// @Param details body dto.UpdateAccountRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse
// @Failure 400 {object} dto.APIResponse
// @Failure 409 {object} dto.APIResponse
// @Security BearerAuth
// @Router /users/update-account [patch]
func (h *UserHandler) UpdateAccount(c *gin.Context) {
	ctx := c.Request.Context()

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondError(c, apperrors.NewUnauthorizedError("Unauthorized request"), h.cfg.IsProduction)
		return
	}

	var req dto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.NewBadRequestError("Invalid account details: "+err.Error()), h.cfg.IsProduction)
		return
	}

	user, err := h.userService.UpdateAccountDetails(ctx, userID, req)
	if err != nil {
		respondError(c, err, h.cfg.IsProduction)
		return
	}

	respondSuccess(c, http.StatusOK, dto.ToUserResponse(user), "Account details updated successfully")
}

// updateImage spools the named multipart file, uploads it to media storage,
// and persists the resulting URL via apply.
func (h *UserHandler) updateImage(c *gin.Context, fieldName string, keyPrefix string, apply func(userID string, url string) error, okMessage string) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondError(c, apperrors.NewUnauthorizedError("Unauthorized request"), h.cfg.IsProduction)
		return
	}

	file, err := c.FormFile(fieldName)
	if err != nil {
		respondError(c, apperrors.NewBadRequestError(fieldName+" file is required"), h.cfg.IsProduction)
		return
	}

	path, cleanup, err := saveTempUpload(c, file, h.cfg.TmpUploadDir)
	if err != nil {
		respondError(c, apperrors.NewInternalServerError("Failed to process upload"), h.cfg.IsProduction)
		return
	}
	defer cleanup()

	url, err := h.mediaService.Upload(ctx, path, keyPrefix)
	if err != nil {
		logger.Error("Media upload failed", slog.String("field", fieldName), slog.String("error", err.Error()))
		respondError(c, apperrors.NewInternalServerError("Failed to upload "+fieldName), h.cfg.IsProduction)
		return
	}

	if err := apply(userID, url); err != nil {
		respondError(c, err, h.cfg.IsProduction)
		return
	}

	user, err := h.userService.GetUserByID(ctx, userID)
	if err != nil {
		respondError(c, err, h.cfg.IsProduction)
		return
	}

	respondSuccess(c, http.StatusOK, dto.ToUserResponse(user), okMessage)
}

// UpdateAvatar godoc
// @Summary Replace the user's avatar image
// @Tags users
// @Accept mpfd
// @Produce json
// @Param avatar formData file true "Avatar image"
// @Success 200 {object} dto.APIResponse
// @Failure 400 {object} dto.APIResponse
// @Security BearerAuth
// @Router /users/avatar [patch]
func (h *UserHandler) UpdateAvatar(c *gin.Context) {
	ctx := c.Request.Context()
	h.updateImage(c, "avatar", "avatars", func(userID, url string) error {
		_, err := h.userService.UpdateAvatar(ctx, userID, url)
		return err
	}, "Avatar updated successfully")
}

// UpdateCover godoc
// @Summary Replace the user's cover image
// @Tags users
// @Accept mpfd
// @Produce json
// @Param cover formData file true "Cover image"
// @Success 200 {object} dto.APIResponse
// @Failure 400 {object} dto.APIResponse
// @Security BearerAuth
// @Router /users/cover-image [patch]
func (h *UserHandler) UpdateCover(c *gin.Context) {
	ctx := c.Request.Context()
	h.updateImage(c, "cover", "covers", func(userID, url string) error {
		_, err := h.userService.UpdateCover(ctx, userID, url)
		return err
	}, "Cover image updated successfully")
}
