package models

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// FamilyMember represents a member of the family sharing the budget.
//
// The earliest created active member is the primary profile, the one
// belonging to the authenticated user themselves.
type FamilyMember struct {
	DefaultModel
	UserID        uuid.UUID       `json:"userId" gorm:"index"`
	Name          string          `json:"name" example:"Maria"`
	Role          string          `json:"role" example:"Mãe"`
	AvatarURL     string          `json:"avatarUrl" example:"https://storage.googleapis.com/mycash-avatars/maria.png"`
	MonthlyIncome decimal.Decimal `json:"monthlyIncome" gorm:"type:DECIMAL(20,8)" example:"5200"`
	Color         string          `json:"color" example:"#10B981"`
	Archived      bool            `json:"archived" example:"false"`
}

// Validate checks the member before anything is persisted.
func (m FamilyMember) Validate() ValidationError {
	v := ValidationError{}

	if len(strings.TrimSpace(m.Name)) < 2 {
		v["name"] = "the name must be at least 2 characters long"
	}

	if m.MonthlyIncome.IsNegative() {
		v["monthlyIncome"] = "the monthly income cannot be negative"
	}

	if len(v) == 0 {
		return nil
	}
	return v
}

// BeforeSave trims whitespace from all strings.
func (m *FamilyMember) BeforeSave(_ *gorm.DB) error {
	m.Name = strings.TrimSpace(m.Name)
	m.Role = strings.TrimSpace(m.Role)

	return nil
}

// PrimaryMember returns the primary profile for a user: the active member
// that was created first.
func PrimaryMember(db *gorm.DB, userID uuid.UUID) (FamilyMember, error) {
	var member FamilyMember

	err := db.
		Where(&FamilyMember{UserID: userID}).
		Where("archived = ?", false).
		Order("created_at ASC").
		First(&member).Error

	return member, err
}
