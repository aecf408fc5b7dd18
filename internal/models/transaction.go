package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransactionType determines whether a transaction is money coming in or going out.
//
// swagger:enum TransactionType
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "INCOME"
	TransactionTypeExpense TransactionType = "EXPENSE"
)

// TransactionStatus is the payment state of a transaction.
//
// The only transition is PENDING to COMPLETED, performed by the
// mark-as-paid operation. Edits never revert a completed transaction.
//
// swagger:enum TransactionStatus
type TransactionStatus string

const (
	TransactionStatusCompleted TransactionStatus = "COMPLETED"
	TransactionStatusPending   TransactionStatus = "PENDING"
)

// Transaction represents a single income or expense record.
//
// A transaction can be part of an installment series, in which case all
// records after the first reference the first via ParentTransactionID,
// or it can be recurring, in which case its next occurrence is generated
// lazily when it is marked as paid. It is never both.
type Transaction struct {
	DefaultModel
	UserID              uuid.UUID       `json:"userId" gorm:"index"`
	Type                TransactionType `json:"type" example:"EXPENSE"`
	Amount              decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)" example:"271.32"`
	Description         string          `json:"description" example:"Groceries"`
	Date                time.Time       `json:"date" example:"2024-06-02T00:00:00Z"`
	Status              TransactionStatus
	CategoryID          uuid.UUID  `json:"categoryId"`
	Category            Category   `json:"-"`
	AccountID           uuid.UUID  `json:"accountId"`
	Account             Account    `json:"-"`
	MemberID            *uuid.UUID `json:"memberId"` // nil means the transaction is family-wide
	InstallmentNumber   uint       `json:"installmentNumber" example:"2"`
	TotalInstallments   uint       `json:"totalInstallments" example:"12"`
	ParentTransactionID *uuid.UUID `json:"parentTransactionId"` // first installment of the series, set on all but the first
	IsRecurring         bool       `json:"isRecurring" example:"false"`

	// RecurringTransactionID links a generated occurrence back to the
	// transaction the recurrence started with. It is set by mark-as-paid,
	// never by the user.
	RecurringTransactionID *uuid.UUID `json:"recurringTransactionId"`
}

var (
	ErrTransactionInstallmentsAndRecurring = errors.New("a transaction cannot be both an installment series and recurring")
	ErrTransactionInstallmentsNotExpense   = errors.New("only expenses can be split into installments")
)

// Validate checks the request shape before anything is persisted.
func (t Transaction) Validate() ValidationError {
	v := ValidationError{}

	if len(strings.TrimSpace(t.Description)) < 3 {
		v["description"] = "the description must be at least 3 characters long"
	}

	if !t.Amount.IsPositive() {
		v["amount"] = "the amount must be larger than zero"
	}

	if t.Date.IsZero() {
		v["date"] = "the date is required"
	}

	if t.Type != TransactionTypeIncome && t.Type != TransactionTypeExpense {
		v["type"] = "the transaction type must be INCOME or EXPENSE"
	}

	if t.CategoryID == uuid.Nil {
		v["categoryId"] = "the category is required"
	}

	if t.AccountID == uuid.Nil {
		v["accountId"] = "the account is required"
	}

	if t.TotalInstallments < 1 {
		v["totalInstallments"] = "the number of installments must be at least 1"
	}

	if t.TotalInstallments > 1 && t.IsRecurring {
		v["isRecurring"] = ErrTransactionInstallmentsAndRecurring.Error()
	}

	if t.TotalInstallments > 1 && t.Type == TransactionTypeIncome {
		v["totalInstallments"] = ErrTransactionInstallmentsNotExpense.Error()
	}

	if len(v) == 0 {
		return nil
	}
	return v
}

// BeforeSave sets defaults and normalizes the transaction.
func (t *Transaction) BeforeSave(_ *gorm.DB) error {
	t.Description = strings.TrimSpace(t.Description)

	if t.TotalInstallments == 0 {
		t.TotalInstallments = 1
	}

	if t.InstallmentNumber == 0 {
		t.InstallmentNumber = 1
	}

	if t.Status == "" {
		t.Status = TransactionStatusCompleted
	}

	if t.Date.IsZero() {
		t.Date = time.Now().In(time.UTC)
	} else {
		t.Date = t.Date.In(time.UTC)
	}

	if t.TotalInstallments > 1 && t.IsRecurring {
		return ErrTransactionInstallmentsAndRecurring
	}

	if t.TotalInstallments > 1 && t.Type == TransactionTypeIncome {
		return ErrTransactionInstallmentsNotExpense
	}

	return nil
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	_ = t.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*Transaction)
	return t.checkIntegrity(tx, *toSave)
}

// BeforeUpdate verifies the state of the transaction before
// committing an update to the database.
func (t *Transaction) BeforeUpdate(tx *gorm.DB) error {
	toSave, ok := tx.Statement.Dest.(Transaction)
	if !ok {
		return nil
	}

	if tx.Statement.Changed("CategoryID") || tx.Statement.Changed("AccountID") {
		return t.checkIntegrity(tx, toSave)
	}

	return nil
}

// AfterFind updates the date to use UTC as timezone, see DefaultModel.AfterFind.
func (t *Transaction) AfterFind(tx *gorm.DB) error {
	_ = t.DefaultModel.AfterFind(tx)

	t.Date = t.Date.In(time.UTC)
	return nil
}

// checkIntegrity verifies references to other resources.
func (t *Transaction) checkIntegrity(tx *gorm.DB, toSave Transaction) error {
	if toSave.CategoryID != uuid.Nil {
		err := tx.First(&Category{}, toSave.CategoryID).Error
		if err != nil {
			return err
		}
	}

	if toSave.AccountID != uuid.Nil {
		err := tx.First(&Account{}, toSave.AccountID).Error
		if err != nil {
			return err
		}
	}

	if toSave.MemberID != nil {
		err := tx.First(&FamilyMember{}, *toSave.MemberID).Error
		if err != nil {
			return err
		}
	}

	return nil
}
