package services

// ServiceContainer bundles all service facades for injection into handlers.
type ServiceContainer struct {
	User         UserSvcFacade
	Token        TokenSvcFacade
	Channel      ChannelSvcFacade
	Subscription SubscriptionSvcFacade
	Media        MediaStorageSvc
	GoogleOAuth  GoogleOAuthSvcFacade
}
