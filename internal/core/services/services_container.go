package services

import (
	portsrepo "github.com/vidverse/vidverse_backend/internal/core/ports/repositories"
	portssvc "github.com/vidverse/vidverse_backend/internal/core/ports/services"
	"github.com/vidverse/vidverse_backend/internal/platform/config"
)

// NewServiceContainer wires all services with their repository dependencies.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.User = NewUserService(repos.UserRepo)
	container.Token = NewTokenService(cfg, container.User)
	container.Channel = NewChannelService(repos.SubscriptionRepo, repos.VideoRepo)
	container.Subscription = NewSubscriptionService(repos.SubscriptionRepo, repos.UserRepo)
	container.Media = NewMediaService(cfg)
	container.GoogleOAuth = NewGoogleOAuthService(cfg)

	return container
}
