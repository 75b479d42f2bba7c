package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/vidverse/vidverse_backend/internal/apperrors"
	"github.com/vidverse/vidverse_backend/internal/core/domain"
	portssvc "github.com/vidverse/vidverse_backend/internal/core/ports/services"
	"github.com/vidverse/vidverse_backend/internal/core/services"
)

type SubscriptionServiceTestSuite struct {
	suite.Suite
	mockSubRepo  *MockSubscriptionRepository
	mockUserRepo *MockUserRepository
	service      portssvc.SubscriptionSvcFacade
}

func (suite *SubscriptionServiceTestSuite) SetupTest() {
	suite.mockSubRepo = new(MockSubscriptionRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewSubscriptionService(suite.mockSubRepo, suite.mockUserRepo)
}

func (suite *SubscriptionServiceTestSuite) TestToggleSubscription_Subscribe() {
	ctx := context.Background()
	subscriberID := uuid.NewString()
	channel := &domain.User{UserID: uuid.NewString(), Username: "somechannel"}

	suite.mockUserRepo.On("FindUserByUsername", ctx, "somechannel").Return(channel, nil).Once()
	suite.mockSubRepo.On("SubscriptionExists", ctx, subscriberID, channel.UserID).Return(false, nil).Once()
	suite.mockSubRepo.On("SaveSubscription", ctx, mock.MatchedBy(func(sub domain.Subscription) bool {
		return sub.SubscriberID == subscriberID && sub.ChannelID == channel.UserID && sub.SubscriptionID != ""
	})).Return(nil).Once()

	subscribed, err := suite.service.ToggleSubscription(ctx, subscriberID, "somechannel")

	suite.Require().NoError(err)
	suite.True(subscribed)
	suite.mockSubRepo.AssertExpectations(suite.T())
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *SubscriptionServiceTestSuite) TestToggleSubscription_Unsubscribe() {
	ctx := context.Background()
	subscriberID := uuid.NewString()
	channel := &domain.User{UserID: uuid.NewString(), Username: "somechannel"}

	suite.mockUserRepo.On("FindUserByUsername", ctx, "somechannel").Return(channel, nil).Once()
	suite.mockSubRepo.On("SubscriptionExists", ctx, subscriberID, channel.UserID).Return(true, nil).Once()
	suite.mockSubRepo.On("DeleteSubscription", ctx, subscriberID, channel.UserID).Return(nil).Once()

	subscribed, err := suite.service.ToggleSubscription(ctx, subscriberID, "somechannel")

	suite.Require().NoError(err)
	suite.False(subscribed)
	suite.mockSubRepo.AssertExpectations(suite.T())
}

func (suite *SubscriptionServiceTestSuite) TestToggleSubscription_SelfSubscribe() {
	ctx := context.Background()
	self := &domain.User{UserID: uuid.NewString(), Username: "myself"}

	suite.mockUserRepo.On("FindUserByUsername", ctx, "myself").Return(self, nil).Once()

	subscribed, err := suite.service.ToggleSubscription(ctx, self.UserID, "myself")

	suite.Require().Error(err)
	suite.False(subscribed)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockSubRepo.AssertNotCalled(suite.T(), "SubscriptionExists", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SubscriptionServiceTestSuite) TestToggleSubscription_ChannelNotFound() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByUsername", ctx, "ghost").Return(nil, apperrors.ErrNotFound).Once()

	subscribed, err := suite.service.ToggleSubscription(ctx, uuid.NewString(), "ghost")

	suite.Require().Error(err)
	suite.False(subscribed)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *SubscriptionServiceTestSuite) TestToggleSubscription_BlankUsername() {
	ctx := context.Background()

	subscribed, err := suite.service.ToggleSubscription(ctx, uuid.NewString(), "  ")

	suite.Require().Error(err)
	suite.False(subscribed)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "FindUserByUsername", mock.Anything, mock.Anything)
}

func (suite *SubscriptionServiceTestSuite) TestToggleSubscription_ExistsCheckError() {
	ctx := context.Background()
	subscriberID := uuid.NewString()
	channel := &domain.User{UserID: uuid.NewString(), Username: "somechannel"}
	expectedErr := assert.AnError

	suite.mockUserRepo.On("FindUserByUsername", ctx, "somechannel").Return(channel, nil).Once()
	suite.mockSubRepo.On("SubscriptionExists", ctx, subscriberID, channel.UserID).Return(false, expectedErr).Once()

	subscribed, err := suite.service.ToggleSubscription(ctx, subscriberID, "somechannel")

	suite.Require().Error(err)
	suite.False(subscribed)
	suite.ErrorIs(err, expectedErr)
	suite.mockSubRepo.AssertExpectations(suite.T())
}

func TestSubscriptionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SubscriptionServiceTestSuite))
}
