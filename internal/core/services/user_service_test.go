package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/vidverse/vidverse_backend/internal/apperrors"
	"github.com/vidverse/vidverse_backend/internal/core/domain"
	portssvc "github.com/vidverse/vidverse_backend/internal/core/ports/services"
	"github.com/vidverse/vidverse_backend/internal/core/services"
	"github.com/vidverse/vidverse_backend/internal/dto"
	"github.com/vidverse/vidverse_backend/internal/utils"
)

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByProviderDetails(ctx context.Context, authProvider string, providerUserID string) (*domain.User, error) {
	args := m.Called(ctx, authProvider, providerUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) UpdateUserDetails(ctx context.Context, userID string, fullName string, email string) error {
	args := m.Called(ctx, userID, fullName, email)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateAvatarURL(ctx context.Context, userID string, avatarURL string) error {
	args := m.Called(ctx, userID, avatarURL)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateCoverURL(ctx context.Context, userID string, coverURL string) error {
	args := m.Called(ctx, userID, coverURL)
	return args.Error(0)
}

func (m *MockUserRepository) UpdatePasswordHash(ctx context.Context, userID string, passwordHash string) error {
	args := m.Called(ctx, userID, passwordHash)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, expiryTime time.Time) error {
	args := m.Called(ctx, userID, refreshTokenHash, expiryTime)
	return args.Error(0)
}

func (m *MockUserRepository) RotateRefreshToken(ctx context.Context, userID string, oldHash string, newHash string, expiryTime time.Time) error {
	args := m.Called(ctx, userID, oldHash, newHash, expiryTime)
	return args.Error(0)
}

func (m *MockUserRepository) ClearRefreshToken(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// --- Test Suite ---
type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	service      portssvc.UserSvcFacade
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewUserService(suite.mockUserRepo)
}

// --- RegisterUser Tests ---

func (suite *UserServiceTestSuite) TestRegisterUser_Success() {
	ctx := context.Background()
	req := dto.RegisterUserRequest{
		FullName: "Test User",
		Username: "TestUser",
		Email:    "test@example.com",
		Password: "password123",
	}
	avatarURL := "https://cdn.example.com/avatars/a.png"

	suite.mockUserRepo.On("FindUserByUsername", ctx, "testuser").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("FindUserByEmail", ctx, req.Email).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("SaveUser", ctx, mock.MatchedBy(func(user domain.User) bool {
		return user.Username == "testuser" &&
			user.Email == req.Email &&
			user.AvatarURL == avatarURL &&
			user.AuthProvider == domain.ProviderLocal &&
			user.PasswordHash != "" &&
			user.PasswordHash != req.Password
	})).Return(nil).Once()

	user, err := suite.service.RegisterUser(ctx, req, avatarURL, "")

	suite.Require().NoError(err)
	suite.Require().NotNil(user)
	suite.Equal("testuser", user.Username) // stored lowercase
	suite.NotEmpty(user.UserID)
	suite.True(utils.CheckPasswordHash(req.Password, user.PasswordHash))
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestRegisterUser_DuplicateUsername() {
	ctx := context.Background()
	req := dto.RegisterUserRequest{
		FullName: "Test User",
		Username: "taken",
		Email:    "test@example.com",
		Password: "password123",
	}
	existing := &domain.User{UserID: uuid.NewString(), Username: "taken"}

	suite.mockUserRepo.On("FindUserByUsername", ctx, "taken").Return(existing, nil).Once()

	user, err := suite.service.RegisterUser(ctx, req, "https://cdn.example.com/a.png", "")

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestRegisterUser_DuplicateEmail() {
	ctx := context.Background()
	req := dto.RegisterUserRequest{
		FullName: "Test User",
		Username: "newuser",
		Email:    "taken@example.com",
		Password: "password123",
	}
	existing := &domain.User{UserID: uuid.NewString(), Email: req.Email}

	suite.mockUserRepo.On("FindUserByUsername", ctx, "newuser").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("FindUserByEmail", ctx, req.Email).Return(existing, nil).Once()

	user, err := suite.service.RegisterUser(ctx, req, "https://cdn.example.com/a.png", "")

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestRegisterUser_MissingAvatar() {
	ctx := context.Background()
	req := dto.RegisterUserRequest{
		FullName: "Test User",
		Username: "testuser",
		Email:    "test@example.com",
		Password: "password123",
	}

	user, err := suite.service.RegisterUser(ctx, req, "", "")

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *UserServiceTestSuite) TestRegisterUser_BlankFields() {
	ctx := context.Background()
	req := dto.RegisterUserRequest{
		FullName: "   ",
		Username: "testuser",
		Email:    "test@example.com",
		Password: "password123",
	}

	user, err := suite.service.RegisterUser(ctx, req, "https://cdn.example.com/a.png", "")

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- AuthenticateUser Tests ---

func (suite *UserServiceTestSuite) TestAuthenticateUser_Success() {
	ctx := context.Background()
	password := "password123"
	hash, err := utils.HashPassword(password)
	suite.Require().NoError(err)
	user := &domain.User{UserID: uuid.NewString(), Email: "test@example.com", PasswordHash: hash}

	suite.mockUserRepo.On("FindUserByEmail", ctx, user.Email).Return(user, nil).Once()

	got, err := suite.service.AuthenticateUser(ctx, user.Email, password)

	suite.Require().NoError(err)
	suite.Equal(user.UserID, got.UserID)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_UnknownEmail() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByEmail", ctx, "nobody@example.com").Return(nil, apperrors.ErrNotFound).Once()

	got, err := suite.service.AuthenticateUser(ctx, "nobody@example.com", "whatever")

	suite.Require().Error(err)
	suite.Nil(got)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_WrongPassword() {
	ctx := context.Background()
	hash, err := utils.HashPassword("correct-password")
	suite.Require().NoError(err)
	user := &domain.User{UserID: uuid.NewString(), Email: "test@example.com", PasswordHash: hash}

	suite.mockUserRepo.On("FindUserByEmail", ctx, user.Email).Return(user, nil).Once()

	got, err := suite.service.AuthenticateUser(ctx, user.Email, "wrong-password")

	suite.Require().Error(err)
	suite.Nil(got)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

// --- ChangePassword Tests ---

func (suite *UserServiceTestSuite) TestChangePassword_Success() {
	ctx := context.Background()
	oldPassword := "old-password"
	hash, err := utils.HashPassword(oldPassword)
	suite.Require().NoError(err)
	user := &domain.User{UserID: uuid.NewString(), PasswordHash: hash}

	suite.mockUserRepo.On("FindUserByID", ctx, user.UserID).Return(user, nil).Once()
	suite.mockUserRepo.On("UpdatePasswordHash", ctx, user.UserID, mock.MatchedBy(func(newHash string) bool {
		return utils.CheckPasswordHash("new-password", newHash)
	})).Return(nil).Once()

	err = suite.service.ChangePassword(ctx, user.UserID, oldPassword, "new-password")

	suite.Require().NoError(err)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestChangePassword_WrongOldPassword() {
	ctx := context.Background()
	hash, err := utils.HashPassword("actual-old-password")
	suite.Require().NoError(err)
	user := &domain.User{UserID: uuid.NewString(), PasswordHash: hash}

	suite.mockUserRepo.On("FindUserByID", ctx, user.UserID).Return(user, nil).Once()

	err = suite.service.ChangePassword(ctx, user.UserID, "wrong-old-password", "new-password")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "UpdatePasswordHash", mock.Anything, mock.Anything, mock.Anything)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

// --- CreateOAuthUser Tests ---

func (suite *UserServiceTestSuite) TestCreateOAuthUser_ExistingProviderIdentity() {
	ctx := context.Background()
	existing := &domain.User{UserID: uuid.NewString(), AuthProvider: domain.ProviderGoogle, ProviderUserID: "google-sub-1"}

	suite.mockUserRepo.On("FindUserByProviderDetails", ctx, domain.ProviderGoogle, "google-sub-1").Return(existing, nil).Once()

	user, err := suite.service.CreateOAuthUser(ctx, "Test User", "test@example.com", domain.ProviderGoogle, "google-sub-1")

	suite.Require().NoError(err)
	suite.Equal(existing.UserID, user.UserID)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestCreateOAuthUser_LinksExistingEmail() {
	ctx := context.Background()
	existing := &domain.User{UserID: uuid.NewString(), Email: "test@example.com", AuthProvider: domain.ProviderLocal}

	suite.mockUserRepo.On("FindUserByProviderDetails", ctx, domain.ProviderGoogle, "google-sub-2").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("FindUserByEmail", ctx, "test@example.com").Return(existing, nil).Once()

	user, err := suite.service.CreateOAuthUser(ctx, "Test User", "test@example.com", domain.ProviderGoogle, "google-sub-2")

	suite.Require().NoError(err)
	suite.Equal(existing.UserID, user.UserID)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestCreateOAuthUser_CreatesNewUser() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByProviderDetails", ctx, domain.ProviderGoogle, "google-sub-3").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("FindUserByEmail", ctx, "new.person@example.com").Return(nil, apperrors.ErrNotFound).Once()
	// Username derivation checks availability of the email local part
	suite.mockUserRepo.On("FindUserByUsername", ctx, "newperson").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("SaveUser", ctx, mock.MatchedBy(func(user domain.User) bool {
		return user.Email == "new.person@example.com" &&
			user.AuthProvider == domain.ProviderGoogle &&
			user.ProviderUserID == "google-sub-3" &&
			user.Username == "newperson" &&
			user.PasswordHash != ""
	})).Return(nil).Once()

	user, err := suite.service.CreateOAuthUser(ctx, "New Person", "new.person@example.com", domain.ProviderGoogle, "google-sub-3")

	suite.Require().NoError(err)
	suite.Require().NotNil(user)
	suite.NotEmpty(user.UserID)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestCreateOAuthUser_IncompleteIdentity() {
	ctx := context.Background()

	user, err := suite.service.CreateOAuthUser(ctx, "No Subject", "test@example.com", domain.ProviderGoogle, "")

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- UpdateAccountDetails Tests ---

func (suite *UserServiceTestSuite) TestUpdateAccountDetails_Success() {
	ctx := context.Background()
	userID := uuid.NewString()
	req := dto.UpdateAccountRequest{FullName: "Renamed User", Email: "renamed@example.com"}
	updated := &domain.User{UserID: userID, FullName: req.FullName, Email: req.Email}

	suite.mockUserRepo.On("UpdateUserDetails", ctx, userID, req.FullName, req.Email).Return(nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(updated, nil).Once()

	user, err := suite.service.UpdateAccountDetails(ctx, userID, req)

	suite.Require().NoError(err)
	suite.Equal(req.FullName, user.FullName)
	suite.Equal(req.Email, user.Email)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestUpdateAccountDetails_BlankFields() {
	ctx := context.Background()

	user, err := suite.service.UpdateAccountDetails(ctx, uuid.NewString(), dto.UpdateAccountRequest{FullName: " ", Email: ""})

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "UpdateUserDetails", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestUpdateAccountDetails_DuplicateEmail() {
	ctx := context.Background()
	userID := uuid.NewString()
	req := dto.UpdateAccountRequest{FullName: "Renamed User", Email: "taken@example.com"}

	suite.mockUserRepo.On("UpdateUserDetails", ctx, userID, req.FullName, req.Email).Return(apperrors.ErrDuplicate).Once()

	user, err := suite.service.UpdateAccountDetails(ctx, userID, req)

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

// --- UpdateAvatar / UpdateCover Tests ---

func (suite *UserServiceTestSuite) TestUpdateAvatar_Success() {
	ctx := context.Background()
	userID := uuid.NewString()
	avatarURL := "https://cdn.example.com/avatars/new.png"
	updated := &domain.User{UserID: userID, AvatarURL: avatarURL}

	suite.mockUserRepo.On("UpdateAvatarURL", ctx, userID, avatarURL).Return(nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(updated, nil).Once()

	user, err := suite.service.UpdateAvatar(ctx, userID, avatarURL)

	suite.Require().NoError(err)
	suite.Equal(avatarURL, user.AvatarURL)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestUpdateAvatar_EmptyURL() {
	ctx := context.Background()

	user, err := suite.service.UpdateAvatar(ctx, uuid.NewString(), "")

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *UserServiceTestSuite) TestUpdateCover_RepoError() {
	ctx := context.Background()
	userID := uuid.NewString()
	expectedErr := assert.AnError

	suite.mockUserRepo.On("UpdateCoverURL", ctx, userID, "https://cdn.example.com/c.png").Return(expectedErr).Once()

	user, err := suite.service.UpdateCover(ctx, userID, "https://cdn.example.com/c.png")

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, expectedErr)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
