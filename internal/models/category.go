package models

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category represents a transaction category.
//
// A category belongs to exactly one transaction type: an expense can never
// reference an income category and vice versa.
type Category struct {
	DefaultModel
	UserID   uuid.UUID       `json:"userId" gorm:"uniqueIndex:category_name_user_id"`
	Name     string          `json:"name" example:"Alimentação" gorm:"uniqueIndex:category_name_user_id"`
	Icon     string          `json:"icon" example:"🍽️"`
	Type     TransactionType `json:"type" example:"EXPENSE"`
	Color    string          `json:"color" example:"#F59E0B"`
	Archived bool            `json:"archived" example:"false"`
}

// FallbackCategoryName is used when a transaction references no category
// or a category that no longer exists.
const FallbackCategoryName = "Outros"

var ErrCategoryNameNotUnique = errors.New("the category name must be unique per user")

// Validate checks the category before anything is persisted.
func (c Category) Validate() ValidationError {
	v := ValidationError{}

	if len(strings.TrimSpace(c.Name)) < 2 {
		v["name"] = "the name must be at least 2 characters long"
	}

	if c.Type != TransactionTypeIncome && c.Type != TransactionTypeExpense {
		v["type"] = "the category type must be INCOME or EXPENSE"
	}

	if len(v) == 0 {
		return nil
	}
	return v
}

// BeforeSave trims whitespace from all strings.
func (c *Category) BeforeSave(_ *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)
	c.Icon = strings.TrimSpace(c.Icon)
	c.Color = strings.TrimSpace(c.Color)

	return nil
}

// Names returns a lookup table from category ID to display name.
func Names(categories []Category) map[uuid.UUID]string {
	names := make(map[uuid.UUID]string, len(categories))
	for _, category := range categories {
		names[category.ID] = category.Name
	}

	return names
}
