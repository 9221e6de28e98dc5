package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/invoicelink/backend/internal/domain/identity"
	"github.com/invoicelink/backend/internal/domain/shared"
	"github.com/invoicelink/backend/internal/domain/shared/valueobject"
)

// UserService handles account settings operations
type UserService struct {
	userRepo identity.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo identity.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// GetSettings returns the account profile
func (s *UserService) GetSettings(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, shared.NewDomainError("USER_NOT_FOUND", "User not found")
	}
	response := ToUserResponse(user)
	return &response, nil
}

// UpdateSettings updates name, agency name and default currency
func (s *UserService) UpdateSettings(ctx context.Context, userID uuid.UUID, req UpdateSettingsRequest) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, shared.NewDomainError("USER_NOT_FOUND", "User not found")
	}

	if err := user.UpdateProfile(req.Name, req.AgencyName, valueobject.Currency(req.DefaultCurrency)); err != nil {
		return nil, err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	response := ToUserResponse(user)
	return &response, nil
}
