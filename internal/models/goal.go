package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Goal represents a savings goal.
//
// CurrentAmount is edited manually and may exceed the target. Goals are
// not linked to transactions.
type Goal struct {
	DefaultModel
	UserID        uuid.UUID       `json:"userId" gorm:"index"`
	Name          string          `json:"name" example:"Viagem ao Japão"`
	TargetAmount  decimal.Decimal `json:"targetAmount" gorm:"type:DECIMAL(20,8)" example:"15000"`
	CurrentAmount decimal.Decimal `json:"currentAmount" gorm:"type:DECIMAL(20,8)" example:"4200"`
	Deadline      *time.Time      `json:"deadline"`
	Color         string          `json:"color" example:"#8B5CF6"`
	Icon          string          `json:"icon" example:"✈️"`
}

var ErrGoalTargetNotPositive = errors.New("the goal target must be larger than zero")

// Validate checks the goal before anything is persisted.
func (g Goal) Validate() ValidationError {
	v := ValidationError{}

	if strings.TrimSpace(g.Name) == "" {
		v["name"] = "the name is required"
	}

	if !g.TargetAmount.IsPositive() {
		v["targetAmount"] = ErrGoalTargetNotPositive.Error()
	}

	if g.CurrentAmount.IsNegative() {
		v["currentAmount"] = "the current amount cannot be negative"
	}

	if len(v) == 0 {
		return nil
	}
	return v
}

// BeforeSave trims whitespace from all strings.
func (g *Goal) BeforeSave(_ *gorm.DB) error {
	g.Name = strings.TrimSpace(g.Name)

	return nil
}

func (g *Goal) AfterSave(_ *gorm.DB) error {
	if !g.TargetAmount.IsPositive() {
		return ErrGoalTargetNotPositive
	}

	return nil
}
