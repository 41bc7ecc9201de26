// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/moneyflow/internal/domain/entity"
)

// UserModel represents the user table in the database.
type UserModel struct {
	ID                   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username             string    `gorm:"type:varchar(50);uniqueIndex;not null"`
	Email                string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash         string    `gorm:"type:varchar(255);not null"`
	StripeCustomerID     string    `gorm:"type:varchar(255);index"`
	StripeSubscriptionID string    `gorm:"type:varchar(255)"`
	StripePriceID        string    `gorm:"type:varchar(255)"`
	CreatedAt            time.Time `gorm:"not null"`
	UpdatedAt            time.Time `gorm:"not null"`
}

// TableName returns the table name for the UserModel.
func (UserModel) TableName() string {
	return "users"
}

// ToEntity converts a UserModel to a domain User entity.
func (m *UserModel) ToEntity() *entity.User {
	return &entity.User{
		ID:                   m.ID,
		Username:             m.Username,
		Email:                m.Email,
		PasswordHash:         m.PasswordHash,
		StripeCustomerID:     m.StripeCustomerID,
		StripeSubscriptionID: m.StripeSubscriptionID,
		StripePriceID:        m.StripePriceID,
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
	}
}

// UserFromEntity creates a UserModel from a domain User entity.
func UserFromEntity(user *entity.User) *UserModel {
	return &UserModel{
		ID:                   user.ID,
		Username:             user.Username,
		Email:                user.Email,
		PasswordHash:         user.PasswordHash,
		StripeCustomerID:     user.StripeCustomerID,
		StripeSubscriptionID: user.StripeSubscriptionID,
		StripePriceID:        user.StripePriceID,
		CreatedAt:            user.CreatedAt,
		UpdatedAt:            user.UpdatedAt,
	}
}
