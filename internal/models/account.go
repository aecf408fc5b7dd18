package models

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AccountType discriminates the account variants.
//
// swagger:enum AccountType
type AccountType string

const (
	AccountTypeChecking   AccountType = "CHECKING"
	AccountTypeSavings    AccountType = "SAVINGS"
	AccountTypeCreditCard AccountType = "CREDIT_CARD"
)

// Account represents a bank account or a credit card, discriminated by Type.
//
// Balance is meaningful for CHECKING and SAVINGS accounts only; CreditLimit,
// CurrentBill, ClosingDay and DueDay are meaningful for CREDIT_CARD accounts
// only. BeforeSave zeroes the fields that do not belong to the variant so the
// stored record never carries values from the other one.
//
// Balance and CurrentBill are stored fields mutated by explicit updates.
// They are never recomputed from the transaction ledger.
type Account struct {
	DefaultModel
	UserID      uuid.UUID       `json:"userId" gorm:"uniqueIndex:account_name_user_id"`
	Type        AccountType     `json:"type" example:"CHECKING"`
	Name        string          `json:"name" example:"Conta principal" gorm:"uniqueIndex:account_name_user_id"`
	Institution string          `json:"institution" example:"Nubank"`
	LastDigits  string          `json:"lastDigits" example:"4412"`
	HolderID    uuid.UUID       `json:"holderId"`
	Holder      FamilyMember    `json:"-"`
	Balance     decimal.Decimal `json:"balance" gorm:"type:DECIMAL(20,8)" example:"1520.99"`
	CreditLimit decimal.Decimal `json:"creditLimit" gorm:"type:DECIMAL(20,8)" example:"8000"`
	CurrentBill decimal.Decimal `json:"currentBill" gorm:"type:DECIMAL(20,8)" example:"431.55"`
	ClosingDay  int             `json:"closingDay" example:"28"`
	DueDay      int             `json:"dueDay" example:"5"`
	Theme       string          `json:"theme" example:"black"`
	Archived    bool            `json:"archived" example:"false"`
}

var ErrAccountNameNotUnique = errors.New("the account name must be unique per user")

// IsCreditCard reports whether the account is the credit card variant.
func (a Account) IsCreditCard() bool {
	return a.Type == AccountTypeCreditCard
}

// Validate checks the account before anything is persisted. The checks are
// variant-aware: day-of-month and limit constraints only apply to credit cards.
func (a Account) Validate() ValidationError {
	v := ValidationError{}

	if strings.TrimSpace(a.Name) == "" {
		v["name"] = "the name is required"
	}

	if a.HolderID == uuid.Nil {
		v["holderId"] = "the account holder is required"
	}

	switch a.Type {
	case AccountTypeChecking, AccountTypeSavings:
		// no variant-specific constraints, Balance may be negative
	case AccountTypeCreditCard:
		if !a.CreditLimit.IsPositive() {
			v["creditLimit"] = "the credit limit must be larger than zero"
		}
		if a.ClosingDay < 1 || a.ClosingDay > 31 {
			v["closingDay"] = "the closing day must be between 1 and 31"
		}
		if a.DueDay < 1 || a.DueDay > 31 {
			v["dueDay"] = "the due day must be between 1 and 31"
		}
	default:
		v["type"] = "the account type must be CHECKING, SAVINGS or CREDIT_CARD"
	}

	if len(a.LastDigits) > 4 {
		v["lastDigits"] = "the last digits can be 4 characters at most"
	}

	if len(v) == 0 {
		return nil
	}
	return v
}

// BeforeSave normalizes strings and clears the fields that do not
// belong to the account variant.
func (a *Account) BeforeSave(_ *gorm.DB) error {
	a.Name = strings.TrimSpace(a.Name)
	a.Institution = strings.TrimSpace(a.Institution)
	a.LastDigits = strings.TrimSpace(a.LastDigits)

	if a.IsCreditCard() {
		a.Balance = decimal.Zero
	} else {
		a.CreditLimit = decimal.Zero
		a.CurrentBill = decimal.Zero
		a.ClosingDay = 0
		a.DueDay = 0
	}

	return nil
}

func (a *Account) BeforeCreate(tx *gorm.DB) error {
	_ = a.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*Account)
	return a.checkIntegrity(tx, *toSave)
}

// BeforeUpdate verifies the state of the account before
// committing an update to the database.
func (a *Account) BeforeUpdate(tx *gorm.DB) error {
	toSave, ok := tx.Statement.Dest.(Account)
	if !ok {
		return nil
	}

	if tx.Statement.Changed("HolderID") {
		return a.checkIntegrity(tx, toSave)
	}

	return nil
}

// checkIntegrity verifies references to other resources.
func (a *Account) checkIntegrity(tx *gorm.DB, toSave Account) error {
	return tx.First(&FamilyMember{}, toSave.HolderID).Error
}

// Transactions returns all transactions for this account, newest first.
func (a Account) Transactions(db *gorm.DB) []Transaction {
	var transactions []Transaction

	db.Where(&Transaction{AccountID: a.ID}).Order("date desc").Find(&transactions)
	return transactions
}
