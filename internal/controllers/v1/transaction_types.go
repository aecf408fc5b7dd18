package v1

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mycash-plus/backend/internal/finance"
	"github.com/mycash-plus/backend/internal/httputil"
	"github.com/mycash-plus/backend/internal/models"
	"github.com/shopspring/decimal"
)

type TransactionEditable struct {
	Type models.TransactionType `json:"type" example:"EXPENSE"` // INCOME or EXPENSE

	// The maximum value is "999999999999.99999999", swagger unfortunately rounds this.
	Amount decimal.Decimal `json:"amount" example:"14.03" minimum:"0.00000001" maximum:"999999999999.99999999" multipleOf:"0.00000001"` // The amount for the transaction

	Description       string                   `json:"description" example:"Supermercado"`                      // What the money was spent on or received for
	Date              time.Time                `json:"date" example:"2024-06-02T00:00:00Z"`                     // Date of the transaction. Time is currently only used for sorting
	Status            models.TransactionStatus `json:"status" example:"COMPLETED" default:"COMPLETED"`          // Payment state
	CategoryID        uuid.UUID                `json:"categoryId" example:"55eecbd8-7c46-4b06-ada9-f287802fb05e"` // ID of the category
	AccountID         uuid.UUID                `json:"accountId" example:"fd81dc45-a3a2-468e-a6fa-b2618f30aa45"`  // ID of the account the money moved on
	MemberID          *uuid.UUID               `json:"memberId"`                                                // ID of the family member, null for family-wide transactions
	TotalInstallments uint                     `json:"totalInstallments" example:"12" default:"1"`              // Number of installments, 1 for regular transactions
	IsRecurring       bool                     `json:"isRecurring" example:"false" default:"false"`             // Whether the transaction repeats monthly
}

// model returns the database resource for the API representation of the editable fields
func (editable TransactionEditable) model(userID uuid.UUID) models.Transaction {
	return models.Transaction{
		UserID:            userID,
		Type:              editable.Type,
		Amount:            editable.Amount,
		Description:       editable.Description,
		Date:              editable.Date,
		Status:            editable.Status,
		CategoryID:        editable.CategoryID,
		AccountID:         editable.AccountID,
		MemberID:          editable.MemberID,
		TotalInstallments: editable.TotalInstallments,
		IsRecurring:       editable.IsRecurring,
	}
}

type TransactionLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/transactions/d430d7c3-d14c-4712-9336-ee56965a6673"` // The transaction itself
}

// Transaction is the representation of a Transaction in API v1.
type Transaction struct {
	models.DefaultModel
	TransactionEditable
	InstallmentNumber      uint             `json:"installmentNumber" example:"2"` // Position in the installment series, 1 for regular transactions
	ParentTransactionID    *uuid.UUID       `json:"parentTransactionId"`           // First record of the installment series, set on all records after the first
	RecurringTransactionID *uuid.UUID       `json:"recurringTransactionId"`        // Transaction the recurrence started with, set on generated occurrences
	Links                  TransactionLinks `json:"links"`
}

// newTransaction returns the API v1 representation of the resource
func newTransaction(c *gin.Context, model models.Transaction) Transaction {
	url := c.GetString(string(models.ContextURL))

	return Transaction{
		DefaultModel: model.DefaultModel,
		TransactionEditable: TransactionEditable{
			Type:              model.Type,
			Amount:            model.Amount,
			Description:       model.Description,
			Date:              model.Date,
			Status:            model.Status,
			CategoryID:        model.CategoryID,
			AccountID:         model.AccountID,
			MemberID:          model.MemberID,
			TotalInstallments: model.TotalInstallments,
			IsRecurring:       model.IsRecurring,
		},
		InstallmentNumber:      model.InstallmentNumber,
		ParentTransactionID:    model.ParentTransactionID,
		RecurringTransactionID: model.RecurringTransactionID,
		Links: TransactionLinks{
			Self: fmt.Sprintf("%s/v1/transactions/%s", url, model.ID),
		},
	}
}

type TransactionListResponse struct {
	Data       []Transaction `json:"data"`                                                          // List of transactions
	Error      *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination   `json:"pagination"`                                                    // Pagination information
}

type TransactionCreateResponse struct {
	Error       *string                `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	FieldErrors models.ValidationError `json:"fieldErrors,omitempty"`                                         // Per-field validation messages, if the request was invalid
	Data        []TransactionResponse  `json:"data"`                                                          // List of created Transactions
}

func (t *TransactionCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	t.Data = append(t.Data, TransactionResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	if s := status(err); s > currentStatus {
		currentStatus = s
	}

	return currentStatus
}

type TransactionResponse struct {
	Error       *string                `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred for this transaction
	FieldErrors models.ValidationError `json:"fieldErrors,omitempty"`                                         // Per-field validation messages, if the request was invalid
	Data        *Transaction           `json:"data"`                                                          // The Transaction data, if the request was successful
}

// MarkPaidResponse is returned by the mark-as-paid endpoint. Next contains
// the generated follow-up record for recurring transactions and unfinished
// installment series.
type MarkPaidResponse struct {
	Error *string      `json:"error" example:"the transaction is already marked as paid"` // The error, if any occurred
	Data  *Transaction `json:"data"`                                                      // The updated transaction
	Next  *Transaction `json:"next"`                                                      // The generated next occurrence, if any
}

type TransactionQueryFilter struct {
	MemberID   string    `form:"member"`    // Filter by family member ID. Only transactions assigned to exactly this member match.
	FromDate   time.Time `form:"fromDate"`  // Transactions at and after this date
	UntilDate  time.Time `form:"untilDate"` // Transactions before and at this date
	Type       string    `form:"type"`      // INCOME or EXPENSE
	CategoryID string    `form:"category"`  // Filter by category ID
	AccountID  string    `form:"account"`   // Filter by account ID
	Status     string    `form:"status"`    // COMPLETED or PENDING
	Search     string    `form:"search"`    // Case-insensitive search in description and category name
	Page       int       `form:"page"`      // The page to return, starting at 1. Defaults to 1.
	PageSize   int       `form:"pageSize"`  // Number of transactions per page. Defaults to 10.
}

// filterSet converts the query parameters into the filter the view engine
// works with. The date range defaults to the current calendar month when
// neither boundary is set.
func (f TransactionQueryFilter) filterSet(now time.Time) (finance.FilterSet, error) {
	set := finance.FilterSet{
		From:   f.FromDate,
		Until:  f.UntilDate,
		Type:   models.TransactionType(f.Type),
		Status: models.TransactionStatus(f.Status),
		Search: f.Search,
	}

	if f.FromDate.IsZero() && f.UntilDate.IsZero() {
		set.From, set.Until = finance.CurrentMonth(now)
	}

	memberID, err := httputil.UUIDFromString(f.MemberID)
	if err != nil {
		return finance.FilterSet{}, err
	}
	if memberID != uuid.Nil {
		set.MemberID = &memberID
	}

	categoryID, err := httputil.UUIDFromString(f.CategoryID)
	if err != nil {
		return finance.FilterSet{}, err
	}
	if categoryID != uuid.Nil {
		set.CategoryID = &categoryID
	}

	accountID, err := httputil.UUIDFromString(f.AccountID)
	if err != nil {
		return finance.FilterSet{}, err
	}
	if accountID != uuid.Nil {
		set.AccountID = &accountID
	}

	return set, nil
}

// pagination returns the requested page and page size with defaults applied.
func (f TransactionQueryFilter) pagination() (page, pageSize int) {
	page = f.Page
	if page < 1 {
		page = 1
	}

	pageSize = f.PageSize
	if pageSize < 1 {
		pageSize = 10
	}

	return page, pageSize
}
