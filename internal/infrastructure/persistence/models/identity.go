package models

import (
	"time"

	"github.com/invoicelink/backend/internal/domain/identity"
	"github.com/invoicelink/backend/internal/domain/shared/valueobject"
)

// UserModel is the persistence model for the User aggregate root
type UserModel struct {
	AggregateModel
	Email           string `gorm:"type:varchar(320);not null;uniqueIndex"`
	Name            string `gorm:"type:varchar(200);not null"`
	AgencyName      string `gorm:"type:varchar(100)"`
	DefaultCurrency string `gorm:"type:varchar(3);not null;default:'USD'"`
	PasswordHash    string `gorm:"type:varchar(100);not null"`
	LastLoginAt     *time.Time
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User
func (m *UserModel) ToDomain() *identity.User {
	user := &identity.User{
		Email:           m.Email,
		Name:            m.Name,
		AgencyName:      m.AgencyName,
		DefaultCurrency: valueobject.Currency(m.DefaultCurrency),
		PasswordHash:    m.PasswordHash,
		LastLoginAt:     m.LastLoginAt,
	}
	m.PopulateAggregateRoot(&user.BaseAggregateRoot)
	return user
}

// FromDomain populates the persistence model from a domain User
func (m *UserModel) FromDomain(u *identity.User) {
	m.FromDomainAggregateRoot(u.BaseAggregateRoot)
	m.Email = u.Email
	m.Name = u.Name
	m.AgencyName = u.AgencyName
	m.DefaultCurrency = string(u.DefaultCurrency)
	m.PasswordHash = u.PasswordHash
	m.LastLoginAt = u.LastLoginAt
}

// UserModelFromDomain creates a new persistence model from a domain User
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{}
	m.FromDomain(u)
	return m
}
