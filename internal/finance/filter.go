// Package finance implements the derived financial view: pure filtering,
// aggregation and expansion logic over records that have already been
// fetched. Nothing in this package performs I/O or mutates its inputs.
package finance

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mycash-plus/backend/internal/models"
	"github.com/mycash-plus/backend/internal/types"
	"github.com/ryanuber/go-glob"
	"golang.org/x/exp/slices"
)

// FilterSet is the ephemeral combination of constraints applied to the
// transaction list. Zero values mean "not set".
type FilterSet struct {
	MemberID   *uuid.UUID
	From       time.Time
	Until      time.Time
	Type       models.TransactionType
	CategoryID *uuid.UUID
	AccountID  *uuid.UUID
	Status     models.TransactionStatus
	Search     string
}

// CurrentMonth returns the default date range for a filter set: the
// calendar month the reference time falls in.
func CurrentMonth(now time.Time) (from, until time.Time) {
	return types.MonthStart(now), types.MonthEnd(now)
}

// Filter returns the transactions matching every active constraint of the
// filter set, sorted by date descending. The result is always a subset of
// the input; the input is never modified.
//
// When a member is selected, only transactions assigned to exactly that
// member match. Family-wide transactions (no member) are excluded.
func Filter(transactions []models.Transaction, f FilterSet, categories []models.Category) []models.Transaction {
	names := models.Names(categories)

	result := make([]models.Transaction, 0, len(transactions))
	for _, t := range transactions {
		if f.matches(t, names) {
			result = append(result, t)
		}
	}

	slices.SortStableFunc(result, func(a, b models.Transaction) int {
		return b.Date.Compare(a.Date)
	})

	return result
}

// matches checks all active predicates. Every one of them has to pass.
func (f FilterSet) matches(t models.Transaction, categoryNames map[uuid.UUID]string) bool {
	if f.MemberID != nil && (t.MemberID == nil || *t.MemberID != *f.MemberID) {
		return false
	}

	if !f.From.IsZero() && t.Date.Before(f.From) {
		return false
	}

	if !f.Until.IsZero() && t.Date.After(f.Until) {
		return false
	}

	if f.Type != "" && t.Type != f.Type {
		return false
	}

	if f.CategoryID != nil && t.CategoryID != *f.CategoryID {
		return false
	}

	if f.AccountID != nil && t.AccountID != *f.AccountID {
		return false
	}

	if f.Status != "" && t.Status != f.Status {
		return false
	}

	if f.Search != "" {
		pattern := "*" + strings.ToLower(f.Search) + "*"

		name, ok := categoryNames[t.CategoryID]
		if !ok {
			name = models.FallbackCategoryName
		}

		if !glob.Glob(pattern, strings.ToLower(t.Description)) &&
			!glob.Glob(pattern, strings.ToLower(name)) {
			return false
		}
	}

	return true
}

// withoutDates returns a copy of the filter set with the date range cleared.
// The monthly series applies every filter except the date range.
func (f FilterSet) withoutDates() FilterSet {
	f.From = time.Time{}
	f.Until = time.Time{}
	return f
}
