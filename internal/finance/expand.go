package finance

import (
	"github.com/mycash-plus/backend/internal/models"
	"github.com/mycash-plus/backend/internal/types"
)

// Installments derives the future records of an installment series from its
// first, already persisted record.
//
// The first record keeps the requested date and status; records 2..N are
// shifted forward one calendar month each (day of month clamped on
// rollover), start out PENDING and reference the first record as their
// parent. Installment series are expanded eagerly at creation time, unlike
// recurrences which generate one occurrence at a time.
func Installments(first models.Transaction) []models.Transaction {
	if first.TotalInstallments <= 1 {
		return nil
	}

	parentID := first.ID
	remainder := make([]models.Transaction, 0, first.TotalInstallments-1)

	for i := uint(2); i <= first.TotalInstallments; i++ {
		next := first
		next.DefaultModel = models.DefaultModel{}
		next.InstallmentNumber = i
		next.Date = types.AddMonths(first.Date, int(i-1))
		next.Status = models.TransactionStatusPending
		next.ParentTransactionID = &parentID
		next.IsRecurring = false

		remainder = append(remainder, next)
	}

	return remainder
}

// NextOccurrence derives the single follow-up record that marking a
// transaction as paid generates, if any.
//
// For a recurring transaction the next occurrence is dated one month later,
// starts PENDING and stays recurring, so the cycle repeats indefinitely.
// For an installment it is the next position in the series, or nothing when
// the series is complete. The two cases are mutually exclusive by the
// create-time invariant.
func NextOccurrence(t models.Transaction) (models.Transaction, bool) {
	if t.IsRecurring {
		next := t
		next.DefaultModel = models.DefaultModel{}
		next.Date = types.AddMonths(t.Date, 1)
		next.Status = models.TransactionStatusPending

		// Every occurrence links back to the transaction the recurrence
		// started with, no matter how often the cycle has repeated
		if next.RecurringTransactionID == nil {
			templateID := t.ID
			next.RecurringTransactionID = &templateID
		}

		return next, true
	}

	if t.TotalInstallments > 1 && t.InstallmentNumber < t.TotalInstallments {
		next := t
		next.DefaultModel = models.DefaultModel{}
		next.InstallmentNumber = t.InstallmentNumber + 1
		next.Date = types.AddMonths(t.Date, 1)
		next.Status = models.TransactionStatusPending

		if next.ParentTransactionID == nil {
			parentID := t.ID
			next.ParentTransactionID = &parentID
		}

		return next, true
	}

	return models.Transaction{}, false
}
