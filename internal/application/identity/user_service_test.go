package identity

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/invoicelink/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUserService_GetSettings(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := NewUserService(userRepo)

	user := testUser(t)
	userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)

	resp, err := svc.GetSettings(context.Background(), user.ID)

	require.NoError(t, err)
	assert.Equal(t, user.ID, resp.ID)
	assert.Equal(t, "alex@agency.test", resp.Email)
	assert.Equal(t, "USD", resp.DefaultCurrency)
}

func TestUserService_GetSettings_NotFound(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := NewUserService(userRepo)

	userID := uuid.New()
	userRepo.On("FindByID", mock.Anything, userID).Return(nil, shared.ErrNotFound)

	_, err := svc.GetSettings(context.Background(), userID)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "USER_NOT_FOUND", domainErr.Code)
}

func TestUserService_UpdateSettings(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := NewUserService(userRepo)

	user := testUser(t)
	userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	userRepo.On("Save", mock.Anything, user).Return(nil)

	resp, err := svc.UpdateSettings(context.Background(), user.ID, UpdateSettingsRequest{
		Name:            "Alex Chen",
		AgencyName:      "Northwind Design",
		DefaultCurrency: "EUR",
	})

	require.NoError(t, err)
	assert.Equal(t, "Northwind Design", resp.AgencyName)
	assert.Equal(t, "EUR", resp.DefaultCurrency)
	userRepo.AssertExpectations(t)
}

func TestUserService_UpdateSettings_UnsupportedCurrency(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := NewUserService(userRepo)

	user := testUser(t)
	userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)

	_, err := svc.UpdateSettings(context.Background(), user.ID, UpdateSettingsRequest{
		Name:            "Alex Chen",
		DefaultCurrency: "XXX",
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_CURRENCY", domainErr.Code)
	userRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}
