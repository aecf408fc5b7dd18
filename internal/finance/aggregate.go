package finance

import (
	"strings"

	"github.com/google/uuid"
	"github.com/mycash-plus/backend/internal/models"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

// Totals holds the income and expense sums for a transaction list. Both are
// non-negative magnitudes; no sign conversion is applied.
type Totals struct {
	Income   decimal.Decimal `json:"income" example:"8450.20"`
	Expenses decimal.Decimal `json:"expenses" example:"3120.77"`
}

// Sum computes the income and expense totals over a transaction list.
// The caller decides the scope by filtering beforehand.
func Sum(transactions []models.Transaction) Totals {
	totals := Totals{
		Income:   decimal.Zero,
		Expenses: decimal.Zero,
	}

	for _, t := range transactions {
		switch t.Type {
		case models.TransactionTypeIncome:
			totals.Income = totals.Income.Add(t.Amount)
		case models.TransactionTypeExpense:
			totals.Expenses = totals.Expenses.Add(t.Amount)
		}
	}

	return totals
}

// Balance computes the point-in-time net balance over all accounts: the sum
// of bank account balances minus the sum of open credit card bills. When a
// member is passed, only accounts they hold are considered.
//
// This is a snapshot of the stored account fields. It is independent of any
// date filter and is not derived from the transaction history.
func Balance(accounts []models.Account, memberID *uuid.UUID) decimal.Decimal {
	balance := decimal.Zero

	for _, account := range accounts {
		if memberID != nil && account.HolderID != *memberID {
			continue
		}

		if account.IsCreditCard() {
			balance = balance.Sub(account.CurrentBill)
		} else {
			balance = balance.Add(account.Balance)
		}
	}

	return balance
}

// SavingsRate returns the saved share of income as a percentage. It is
// negative when expenses exceed income; callers that want to display a
// floored value clamp it themselves.
func SavingsRate(income, expenses decimal.Decimal) float64 {
	if income.IsZero() {
		return 0
	}

	return income.Sub(expenses).Div(income).InexactFloat64() * 100
}

// CategoryExpense is one entry of the per-category expense breakdown.
type CategoryExpense struct {
	Category   string          `json:"category" example:"Alimentação"`
	Amount     decimal.Decimal `json:"amount" example:"840.12"`
	Percentage float64         `json:"percentage" example:"26.9"`
}

// ExpensesByCategory groups the expense transactions of a list by category
// display name and returns the sums with their share of the total, sorted
// by amount descending. Transactions without a resolvable category fall
// back to the generic "Outros" group.
func ExpensesByCategory(transactions []models.Transaction, categories []models.Category) []CategoryExpense {
	names := models.Names(categories)

	sums := make(map[string]decimal.Decimal)
	for _, t := range transactions {
		if t.Type != models.TransactionTypeExpense {
			continue
		}

		name, ok := names[t.CategoryID]
		if !ok {
			name = models.FallbackCategoryName
		}

		sums[name] = sums[name].Add(t.Amount)
	}

	total := decimal.Zero
	for _, amount := range sums {
		total = total.Add(amount)
	}

	breakdown := make([]CategoryExpense, 0, len(sums))
	for name, amount := range sums {
		percentage := float64(0)
		if total.IsPositive() {
			percentage = amount.Div(total).InexactFloat64() * 100
		}

		breakdown = append(breakdown, CategoryExpense{
			Category:   name,
			Amount:     amount,
			Percentage: percentage,
		})
	}

	slices.SortStableFunc(breakdown, func(a, b CategoryExpense) int {
		if cmp := b.Amount.Cmp(a.Amount); cmp != 0 {
			return cmp
		}

		// Stable order for equal amounts
		return strings.Compare(a.Category, b.Category)
	})

	return breakdown
}
