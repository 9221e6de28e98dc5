package identity

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/invoicelink/backend/internal/domain/shared"
	"github.com/invoicelink/backend/internal/domain/shared/valueobject"
	"golang.org/x/crypto/bcrypt"
)

// Password cost for bcrypt
const bcryptCost = 12

const (
	maxNameLength       = 200
	maxAgencyNameLength = 100
	minPasswordLength   = 8
	maxPasswordLength   = 72 // bcrypt input limit
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// User represents an agency account.
// It is the aggregate root for authentication and account settings.
type User struct {
	shared.BaseAggregateRoot
	Email           string
	Name            string
	AgencyName      string
	DefaultCurrency valueobject.Currency
	PasswordHash    string
	LastLoginAt     *time.Time
}

// NewUser creates a new user account with the default currency
func NewUser(email, password, name string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	if len(name) > maxNameLength {
		return nil, shared.NewDomainError("INVALID_NAME", fmt.Sprintf("Name cannot exceed %d characters", maxNameLength))
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	user := &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Email:             email,
		Name:              name,
		DefaultCurrency:   valueobject.DefaultCurrency,
		PasswordHash:      passwordHash,
	}

	user.AddDomainEvent(NewUserRegisteredEvent(user))

	return user, nil
}

// VerifyPassword verifies if the provided password matches
func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// ChangePassword changes the password after verifying the old one
func (u *User) ChangePassword(oldPassword, newPassword string) error {
	if !u.VerifyPassword(oldPassword) {
		return shared.NewDomainError("INVALID_PASSWORD", "Current password is incorrect")
	}
	return u.SetPassword(newPassword)
}

// SetPassword sets a new password without verification
func (u *User) SetPassword(newPassword string) error {
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	passwordHash, err := hashPassword(newPassword)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	u.PasswordHash = passwordHash
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

// UpdateProfile updates name, agency name and default currency.
// The default currency is pre-filled into new invoices; changing it
// never touches existing invoices.
func (u *User) UpdateProfile(name, agencyName string, defaultCurrency valueobject.Currency) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	if len(name) > maxNameLength {
		return shared.NewDomainError("INVALID_NAME", fmt.Sprintf("Name cannot exceed %d characters", maxNameLength))
	}
	agencyName = strings.TrimSpace(agencyName)
	if len(agencyName) > maxAgencyNameLength {
		return shared.NewDomainError("INVALID_AGENCY_NAME", fmt.Sprintf("Agency name cannot exceed %d characters", maxAgencyNameLength))
	}
	if !defaultCurrency.IsSupported() {
		return shared.NewDomainError("INVALID_CURRENCY", fmt.Sprintf("Unsupported currency: %s", defaultCurrency))
	}

	u.Name = name
	u.AgencyName = agencyName
	u.DefaultCurrency = defaultCurrency
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

// RecordLogin records a successful login
func (u *User) RecordLogin() {
	now := time.Now()
	u.LastLoginAt = &now
	u.UpdatedAt = now
}

// DisplayName returns the agency name if set, otherwise the user name.
// Used as the sender identity on public invoice views.
func (u *User) DisplayName() string {
	if u.AgencyName != "" {
		return u.AgencyName
	}
	return u.Name
}

func validateEmail(email string) error {
	if email == "" {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	if len(email) > 255 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 255 characters")
	}
	if !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return shared.NewDomainError("INVALID_PASSWORD", fmt.Sprintf("Password must be at least %d characters", minPasswordLength))
	}
	if len(password) > maxPasswordLength {
		return shared.NewDomainError("INVALID_PASSWORD", fmt.Sprintf("Password cannot exceed %d characters", maxPasswordLength))
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
