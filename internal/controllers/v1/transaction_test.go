package v1_test

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	v1 "github.com/mycash-plus/backend/internal/controllers/v1"
	"github.com/mycash-plus/backend/internal/models"
	"github.com/mycash-plus/backend/test"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestOptionsTransactions() {
	r := test.Request(suite.T(), http.MethodOptions, "http://example.com/v1/transactions", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	suite.Assert().Equal("GET, POST", r.Header().Get("allow"))
}

func (suite *TestSuiteStandard) TestOptionsTransactionDetail() {
	created := suite.createTestTransaction(v1.TransactionEditable{})

	r := test.Request(suite.T(), http.MethodOptions, created.Data[0].Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	suite.Assert().Equal("GET, PATCH, DELETE", r.Header().Get("allow"))

	r = test.Request(suite.T(), http.MethodOptions, fmt.Sprintf("http://example.com/v1/transactions/%s", uuid.New()), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestGetTransactionsDefaultsToCurrentMonth() {
	category := suite.createTestCategory(v1.CategoryEditable{})
	account := suite.createTestAccount(v1.AccountEditable{})

	now := time.Now().In(time.UTC)
	current := suite.createTestTransaction(v1.TransactionEditable{
		Description: "Current month",
		Date:        now,
		CategoryID:  category.ID,
		AccountID:   account.ID,
	})
	_ = suite.createTestTransaction(v1.TransactionEditable{
		Description: "Two months ago",
		Date:        now.AddDate(0, -2, 0),
		CategoryID:  category.ID,
		AccountID:   account.ID,
	})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/transactions", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.TransactionListResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Require().Len(response.Data, 1)
	suite.Assert().Equal(current.Data[0].Data.ID, response.Data[0].ID)
}

func (suite *TestSuiteStandard) TestGetTransactionsSeedsDefaults() {
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/transactions", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var categories []models.Category
	models.DB.Find(&categories)
	suite.Assert().Len(categories, 8, "the default categories must exist after the first fetch")

	var members []models.FamilyMember
	models.DB.Find(&members)
	suite.Assert().Len(members, 1, "the primary member must exist after the first fetch")
}

func (suite *TestSuiteStandard) TestGetTransactionsSortedByDateDescending() {
	category := suite.createTestCategory(v1.CategoryEditable{})
	account := suite.createTestAccount(v1.AccountEditable{})

	now := time.Now().In(time.UTC)
	older := suite.createTestTransaction(v1.TransactionEditable{
		Description: "Older",
		Date:        now.Add(-48 * time.Hour),
		CategoryID:  category.ID,
		AccountID:   account.ID,
	})
	newer := suite.createTestTransaction(v1.TransactionEditable{
		Description: "Newer",
		Date:        now,
		CategoryID:  category.ID,
		AccountID:   account.ID,
	})

	r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/transactions?fromDate=%s&untilDate=%s",
		now.AddDate(0, -1, 0).Format(time.RFC3339), now.AddDate(0, 0, 1).Format(time.RFC3339)), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.TransactionListResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Require().Len(response.Data, 2)
	suite.Assert().Equal(newer.Data[0].Data.ID, response.Data[0].ID)
	suite.Assert().Equal(older.Data[0].Data.ID, response.Data[1].ID)
}

func (suite *TestSuiteStandard) TestGetTransactionsFilterMember() {
	category := suite.createTestCategory(v1.CategoryEditable{})
	account := suite.createTestAccount(v1.AccountEditable{})
	member := suite.createTestMember(v1.MemberEditable{Name: "Maria"})

	assigned := suite.createTestTransaction(v1.TransactionEditable{
		Description: "Assigned to Maria",
		Date:        time.Now().In(time.UTC),
		CategoryID:  category.ID,
		AccountID:   account.ID,
		MemberID:    &member.ID,
	})
	_ = suite.createTestTransaction(v1.TransactionEditable{
		Description: "Family-wide",
		Date:        time.Now().In(time.UTC),
		CategoryID:  category.ID,
		AccountID:   account.ID,
	})

	r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/transactions?member=%s", member.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.TransactionListResponse
	test.DecodeResponse(suite.T(), &r, &response)

	// Family-wide transactions do not match a member filter
	suite.Require().Len(response.Data, 1)
	suite.Assert().Equal(assigned.Data[0].Data.ID, response.Data[0].ID)
}

func (suite *TestSuiteStandard) TestGetTransactionsSearch() {
	category := suite.createTestCategory(v1.CategoryEditable{Name: "Alimentação"})
	account := suite.createTestAccount(v1.AccountEditable{})

	match := suite.createTestTransaction(v1.TransactionEditable{
		Description: "Supermercado do bairro",
		Date:        time.Now().In(time.UTC),
		CategoryID:  category.ID,
		AccountID:   account.ID,
	})
	_ = suite.createTestTransaction(v1.TransactionEditable{
		Description: "Gasolina",
		Date:        time.Now().In(time.UTC),
		CategoryID:  category.ID,
		AccountID:   account.ID,
	})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/transactions?search=SUPERMERCADO", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.TransactionListResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Require().Len(response.Data, 1)
	suite.Assert().Equal(match.Data[0].Data.ID, response.Data[0].ID)
}

func (suite *TestSuiteStandard) TestGetTransactionsPagination() {
	category := suite.createTestCategory(v1.CategoryEditable{})
	account := suite.createTestAccount(v1.AccountEditable{})

	for i := 0; i < 3; i++ {
		_ = suite.createTestTransaction(v1.TransactionEditable{
			Description: fmt.Sprintf("Transaction %d", i),
			Date:        time.Now().In(time.UTC),
			CategoryID:  category.ID,
			AccountID:   account.ID,
		})
	}

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/transactions?pageSize=2", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.TransactionListResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Assert().Len(response.Data, 2)
	suite.Require().NotNil(response.Pagination)
	suite.Assert().Equal(1, response.Pagination.Page)
	suite.Assert().Equal(2, response.Pagination.PageSize)
	suite.Assert().Equal(2, response.Pagination.TotalPages)
	suite.Assert().Equal(3, response.Pagination.Count)
	suite.Assert().Equal([]string{"1", "2"}, response.Pagination.Pages)

	r = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/transactions?pageSize=2&page=2", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Len(response.Data, 1)
	suite.Assert().Equal(2, response.Pagination.Page)
}

func (suite *TestSuiteStandard) TestGetTransactionsInvalidMember() {
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/transactions?member=not-a-uuid", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestGetTransaction() {
	created := suite.createTestTransaction(v1.TransactionEditable{})

	r := test.Request(suite.T(), http.MethodGet, created.Data[0].Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.TransactionResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal(created.Data[0].Data.ID, response.Data.ID)
}

func (suite *TestSuiteStandard) TestGetTransactionNotFound() {
	r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/transactions/%s", uuid.New()), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestGetTransactionInvalidUUID() {
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/transactions/definitely-not-a-uuid", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestCreateTransaction() {
	created := suite.createTestTransaction(v1.TransactionEditable{Description: "Mercado"})

	suite.Require().Len(created.Data, 1)
	suite.Assert().Equal("Mercado", created.Data[0].Data.Description)
	suite.Assert().Equal(models.TransactionStatusCompleted, created.Data[0].Data.Status)
	suite.Assert().Equal(uint(1), created.Data[0].Data.InstallmentNumber)
	suite.Assert().Nil(created.Data[0].Data.ParentTransactionID)
}

func (suite *TestSuiteStandard) TestCreateTransactionFieldErrors() {
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/transactions", v1.TransactionEditable{
		Description: "ab",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response v1.TransactionCreateResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Assert().Contains(response.FieldErrors, "description")
	suite.Assert().Contains(response.FieldErrors, "amount")
	suite.Assert().Contains(response.FieldErrors, "type")
	suite.Assert().Contains(response.FieldErrors, "categoryId")
	suite.Assert().Contains(response.FieldErrors, "accountId")

	// Nothing may be persisted for an invalid request
	var count int64
	models.DB.Model(&models.Transaction{}).Count(&count)
	suite.Assert().Equal(int64(0), count)
}

func (suite *TestSuiteStandard) TestCreateTransactionEmptyBody() {
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/transactions", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestCreateTransactionInstallments() {
	created := suite.createTestTransaction(v1.TransactionEditable{
		Description:       "Notebook",
		Amount:            decimal.NewFromInt(300),
		Date:              time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC),
		TotalInstallments: 3,
	})

	suite.Require().Len(created.Data, 3)

	first := created.Data[0].Data
	suite.Assert().Equal(uint(1), first.InstallmentNumber)
	suite.Assert().Nil(first.ParentTransactionID)

	second := created.Data[1].Data
	suite.Assert().Equal(uint(2), second.InstallmentNumber)
	suite.Require().NotNil(second.ParentTransactionID)
	suite.Assert().Equal(first.ID, *second.ParentTransactionID)
	suite.Assert().Equal(models.TransactionStatusPending, second.Status)

	// Shifting the series forward clamps to the last day of shorter months
	suite.Assert().True(second.Date.Equal(time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)))

	third := created.Data[2].Data
	suite.Assert().Equal(uint(3), third.InstallmentNumber)
	suite.Assert().True(third.Date.Equal(time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)))

	// Every record of the series carries the full amount
	suite.Assert().True(third.Amount.Equal(decimal.NewFromInt(300)))
}

func (suite *TestSuiteStandard) TestCreateTransactionInstallmentsAndRecurring() {
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/transactions", v1.TransactionEditable{
		Type:              models.TransactionTypeExpense,
		Amount:            decimal.NewFromInt(100),
		Description:       "Invalid combination",
		Date:              time.Now().In(time.UTC),
		CategoryID:        suite.createTestCategory(v1.CategoryEditable{}).ID,
		AccountID:         suite.createTestAccount(v1.AccountEditable{}).ID,
		TotalInstallments: 3,
		IsRecurring:       true,
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response v1.TransactionCreateResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Contains(response.FieldErrors, "isRecurring")
}

func (suite *TestSuiteStandard) TestCreateTransactionInstallmentsIncome() {
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/transactions", v1.TransactionEditable{
		Type:              models.TransactionTypeIncome,
		Amount:            decimal.NewFromInt(3000),
		Description:       "Salário em parcelas",
		Date:              time.Now().In(time.UTC),
		CategoryID:        suite.createTestCategory(v1.CategoryEditable{Type: models.TransactionTypeIncome}).ID,
		AccountID:         suite.createTestAccount(v1.AccountEditable{}).ID,
		TotalInstallments: 3,
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response v1.TransactionCreateResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Contains(response.FieldErrors, "totalInstallments")
}

func (suite *TestSuiteStandard) TestCreateTransactionZeroInstallments() {
	// An explicit zero is invalid, only an absent field defaults to 1
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/transactions", map[string]any{
		"description":       "Explicit zero",
		"totalInstallments": 0,
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response v1.TransactionCreateResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Contains(response.FieldErrors, "totalInstallments")
}

func (suite *TestSuiteStandard) TestUpdateTransaction() {
	created := suite.createTestTransaction(v1.TransactionEditable{
		Description: "Before update",
		Amount:      decimal.NewFromInt(50),
	})

	r := test.Request(suite.T(), http.MethodPatch, created.Data[0].Data.Links.Self, map[string]any{
		"description": "After update",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.TransactionResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Assert().Equal("After update", response.Data.Description)
	suite.Assert().True(response.Data.Amount.Equal(decimal.NewFromInt(50)), "the amount must not change when it is not part of the request")
}

func (suite *TestSuiteStandard) TestUpdateTransactionInvalidBody() {
	created := suite.createTestTransaction(v1.TransactionEditable{})

	r := test.Request(suite.T(), http.MethodPatch, created.Data[0].Data.Links.Self, `{ invalid json `)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestUpdateTransactionNotFound() {
	r := test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("http://example.com/v1/transactions/%s", uuid.New()), map[string]any{
		"description": "Nonexistent",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestDeleteTransaction() {
	created := suite.createTestTransaction(v1.TransactionEditable{})

	r := test.Request(suite.T(), http.MethodDelete, created.Data[0].Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, created.Data[0].Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestDeleteTransactionKeepsSeries() {
	created := suite.createTestTransaction(v1.TransactionEditable{
		Description:       "Sofá",
		TotalInstallments: 2,
	})
	suite.Require().Len(created.Data, 2)

	r := test.Request(suite.T(), http.MethodDelete, created.Data[0].Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	// The other record of the series stays
	r = test.Request(suite.T(), http.MethodGet, created.Data[1].Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
}

func (suite *TestSuiteStandard) TestDeleteTransactionNotFound() {
	r := test.Request(suite.T(), http.MethodDelete, fmt.Sprintf("http://example.com/v1/transactions/%s", uuid.New()), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestMarkTransactionPaid() {
	created := suite.createTestTransaction(v1.TransactionEditable{
		Description: "Conta de luz",
		Status:      models.TransactionStatusPending,
	})

	r := test.Request(suite.T(), http.MethodPost, created.Data[0].Data.Links.Self+"/paid", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.MarkPaidResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Assert().Equal(models.TransactionStatusCompleted, response.Data.Status)
	suite.Assert().Nil(response.Next, "a regular transaction has no follow-up record")
}

func (suite *TestSuiteStandard) TestMarkTransactionPaidAlreadyCompleted() {
	created := suite.createTestTransaction(v1.TransactionEditable{
		Description: "Já pago",
		Status:      models.TransactionStatusCompleted,
	})

	r := test.Request(suite.T(), http.MethodPost, created.Data[0].Data.Links.Self+"/paid", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response v1.MarkPaidResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal("the transaction is already marked as paid", *response.Error)
}

func (suite *TestSuiteStandard) TestMarkTransactionPaidRecurring() {
	created := suite.createTestTransaction(v1.TransactionEditable{
		Description: "Aluguel",
		Date:        time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC),
		Status:      models.TransactionStatusPending,
		IsRecurring: true,
	})

	r := test.Request(suite.T(), http.MethodPost, created.Data[0].Data.Links.Self+"/paid", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.MarkPaidResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Assert().Equal(models.TransactionStatusCompleted, response.Data.Status)
	suite.Require().NotNil(response.Next)
	suite.Assert().Equal(models.TransactionStatusPending, response.Next.Status)
	suite.Assert().True(response.Next.IsRecurring)
	suite.Assert().True(response.Next.Date.Equal(time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)))

	suite.Require().NotNil(response.Next.RecurringTransactionID)
	suite.Assert().Equal(created.Data[0].Data.ID, *response.Next.RecurringTransactionID)
}

func (suite *TestSuiteStandard) TestMarkTransactionPaidNextFailure() {
	category := suite.createTestCategory(v1.CategoryEditable{})
	created := suite.createTestTransaction(v1.TransactionEditable{
		Description: "Assinatura",
		Status:      models.TransactionStatusPending,
		IsRecurring: true,
		CategoryID:  category.ID,
	})

	// With the category gone, creating the next occurrence fails its
	// reference check. The status flip must stand regardless.
	r := test.Request(suite.T(), http.MethodDelete, fmt.Sprintf("http://example.com/v1/categories/%s", category.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodPost, created.Data[0].Data.Links.Self+"/paid", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	var response v1.MarkPaidResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Require().NotNil(response.Error)
	suite.Require().NotNil(response.Data)
	suite.Assert().Equal(models.TransactionStatusCompleted, response.Data.Status)
	suite.Assert().Nil(response.Next)

	r = test.Request(suite.T(), http.MethodGet, created.Data[0].Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var after v1.TransactionResponse
	test.DecodeResponse(suite.T(), &r, &after)
	suite.Assert().Equal(models.TransactionStatusCompleted, after.Data.Status)
}

func (suite *TestSuiteStandard) TestMarkTransactionPaidLastInstallment() {
	created := suite.createTestTransaction(v1.TransactionEditable{
		Description:       "Geladeira",
		Status:            models.TransactionStatusPending,
		TotalInstallments: 2,
	})
	suite.Require().Len(created.Data, 2)

	r := test.Request(suite.T(), http.MethodPost, created.Data[1].Data.Links.Self+"/paid", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.MarkPaidResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Assert().Equal(models.TransactionStatusCompleted, response.Data.Status)
	suite.Assert().Nil(response.Next, "the series is complete")
}
