package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"mscp/internal/config"
	"mscp/internal/domain"
	"mscp/internal/service"
	"mscp/mocks"
)

func setupAuth() (*mocks.MockUserRepo, *mocks.MockStakeholderRepo, service.AuthService) {
	userRepo := new(mocks.MockUserRepo)
	stakeholderRepo := new(mocks.MockStakeholderRepo)
	cfg := config.JWTConfig{
		Secret:             "test-secret",
		AccessTokenExpiry:  15 * time.Minute,
		RefreshTokenExpiry: 24 * time.Hour,
		Issuer:             "mscp",
	}
	svc := service.NewAuthService(userRepo, stakeholderRepo, cfg)
	return userRepo, stakeholderRepo, svc
}

func activeUser(t *testing.T, password string) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return &domain.User{
		ID:           uuid.New(),
		Username:     "amina",
		Email:        "amina@coordination.gov",
		PasswordHash: string(hash),
		FullName:     "Amina K",
		Role:         domain.RoleAdmin,
		Status:       domain.UserStatusActive,
	}
}

func TestLogin_Success(t *testing.T) {
	userRepo, _, svc := setupAuth()
	user := activeUser(t, "correct-horse")

	userRepo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)

	pair, err := svc.Login(context.Background(), service.LoginInput{
		Email:    user.Email,
		Password: "correct-horse",
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.True(t, pair.ExpiresAt.After(time.Now()))

	claims, err := svc.ValidateToken(pair.AccessToken)
	assert.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
	userRepo.AssertExpectations(t)
}

func TestLogin_WrongPassword(t *testing.T) {
	userRepo, _, svc := setupAuth()
	user := activeUser(t, "correct-horse")

	userRepo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)

	_, err := svc.Login(context.Background(), service.LoginInput{
		Email:    user.Email,
		Password: "wrong-password",
	})

	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	userRepo, _, svc := setupAuth()

	userRepo.On("GetByEmail", mock.Anything, "nobody@coordination.gov").Return(nil, domain.ErrNotFound)

	_, err := svc.Login(context.Background(), service.LoginInput{
		Email:    "nobody@coordination.gov",
		Password: "whatever123",
	})

	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogin_InactiveUser(t *testing.T) {
	userRepo, _, svc := setupAuth()
	user := activeUser(t, "correct-horse")
	user.Status = domain.UserStatusInactive

	userRepo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)

	_, err := svc.Login(context.Background(), service.LoginInput{
		Email:    user.Email,
		Password: "correct-horse",
	})

	assert.ErrorIs(t, err, domain.ErrUserInactive)
}

func TestLogin_SuspendedStakeholderBlocksLogin(t *testing.T) {
	userRepo, stakeholderRepo, svc := setupAuth()
	stakeholderID := uuid.New()
	user := activeUser(t, "correct-horse")
	user.Role = domain.RoleStakeholderAdmin
	user.StakeholderID = &stakeholderID

	userRepo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)
	stakeholderRepo.On("GetByID", mock.Anything, stakeholderID).Return(&domain.Stakeholder{
		ID:     stakeholderID,
		Name:   "Health Partners",
		Status: domain.StakeholderSuspended,
	}, nil)

	_, err := svc.Login(context.Background(), service.LoginInput{
		Email:    user.Email,
		Password: "correct-horse",
	})

	assert.ErrorIs(t, err, domain.ErrStakeholderInactive)
}

func TestRefreshToken_RoundTrip(t *testing.T) {
	userRepo, _, svc := setupAuth()
	user := activeUser(t, "correct-horse")

	userRepo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)
	userRepo.On("GetByID", mock.Anything, user.ID).Return(user, nil)

	pair, err := svc.Login(context.Background(), service.LoginInput{
		Email:    user.Email,
		Password: "correct-horse",
	})
	assert.NoError(t, err)

	refreshed, err := svc.RefreshToken(context.Background(), pair.RefreshToken)
	assert.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
}

func TestValidateToken_RejectsRefreshTokenAsAccess(t *testing.T) {
	userRepo, _, svc := setupAuth()
	user := activeUser(t, "correct-horse")

	userRepo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)

	pair, err := svc.Login(context.Background(), service.LoginInput{
		Email:    user.Email,
		Password: "correct-horse",
	})
	assert.NoError(t, err)

	_, err = svc.ValidateToken(pair.RefreshToken)
	assert.Error(t, err)
}

func TestValidateToken_GarbageToken(t *testing.T) {
	_, _, svc := setupAuth()

	_, err := svc.ValidateToken("not-a-jwt")
	assert.Error(t, err)
}
