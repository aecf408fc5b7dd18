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

func (suite *TestSuiteStandard) TestOptionsAccounts() {
	r := test.Request(suite.T(), http.MethodOptions, "http://example.com/v1/accounts", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	suite.Assert().Equal("GET, POST", r.Header().Get("allow"))
}

func (suite *TestSuiteStandard) TestGetAccounts() {
	_ = suite.createTestAccount(v1.AccountEditable{Name: "Conta corrente"})
	_ = suite.createTestAccount(v1.AccountEditable{Name: "Poupança", Type: models.AccountTypeSavings})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/accounts", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.AccountListResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Len(response.Data, 2)
}

func (suite *TestSuiteStandard) TestGetAccountsSeedsDefaults() {
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/accounts", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var categories []models.Category
	models.DB.Find(&categories)
	suite.Assert().Len(categories, 8, "the default categories must exist after the first fetch")
}

func (suite *TestSuiteStandard) TestGetAccountTransactions() {
	account := suite.createTestAccount(v1.AccountEditable{Name: "Conta corrente"})
	other := suite.createTestAccount(v1.AccountEditable{Name: "Poupança", Type: models.AccountTypeSavings})
	category := suite.createTestCategory(v1.CategoryEditable{})

	now := time.Now().In(time.UTC)
	older := suite.createTestTransaction(v1.TransactionEditable{
		Description: "Padaria",
		Date:        now.Add(-48 * time.Hour),
		AccountID:   account.ID,
		CategoryID:  category.ID,
	})
	newer := suite.createTestTransaction(v1.TransactionEditable{
		Description: "Mercado",
		Date:        now,
		AccountID:   account.ID,
		CategoryID:  category.ID,
	})
	_ = suite.createTestTransaction(v1.TransactionEditable{
		Description: "Outra conta",
		Date:        now,
		AccountID:   other.ID,
		CategoryID:  category.ID,
	})

	r := test.Request(suite.T(), http.MethodGet, account.Links.Self+"/transactions", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.TransactionListResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Require().Len(response.Data, 2)
	suite.Assert().Equal(newer.Data[0].Data.ID, response.Data[0].ID)
	suite.Assert().Equal(older.Data[0].Data.ID, response.Data[1].ID)
}

func (suite *TestSuiteStandard) TestGetAccountTransactionsNotFound() {
	r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/accounts/%s/transactions", uuid.New()), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestCreateAccount() {
	created := suite.createTestAccount(v1.AccountEditable{
		Name:        "Conta principal",
		Institution: "Nubank",
		Balance:     decimal.NewFromFloat(1520.99),
	})

	suite.Assert().Equal("Conta principal", created.Name)
	suite.Assert().Equal("Nubank", created.Institution)
	suite.Assert().True(created.Balance.Equal(decimal.NewFromFloat(1520.99)))
	suite.Assert().Equal("http://example.com/v1/accounts/"+created.ID.String(), created.Links.Self)
}

func (suite *TestSuiteStandard) TestCreateAccountCreditCardFieldErrors() {
	member := suite.createTestMember(v1.MemberEditable{Name: "Maria"})

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/accounts", v1.AccountEditable{
		Name:     "Cartão",
		Type:     models.AccountTypeCreditCard,
		HolderID: member.ID,
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response v1.AccountResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Contains(response.FieldErrors, "creditLimit")
	suite.Assert().Contains(response.FieldErrors, "closingDay")
	suite.Assert().Contains(response.FieldErrors, "dueDay")
}

func (suite *TestSuiteStandard) TestCreateAccountDuplicateName() {
	account := suite.createTestAccount(v1.AccountEditable{Name: "Conta principal"})

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/accounts", v1.AccountEditable{
		Name:     "Conta principal",
		Type:     models.AccountTypeChecking,
		HolderID: account.HolderID,
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestUpdateAccount() {
	created := suite.createTestAccount(v1.AccountEditable{Name: "Conta corrente"})

	r := test.Request(suite.T(), http.MethodPatch, created.Links.Self, map[string]any{
		"name":     "Conta conjunta",
		"archived": true,
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.AccountResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal("Conta conjunta", response.Data.Name)
	suite.Assert().True(response.Data.Archived)
}

func (suite *TestSuiteStandard) TestDeleteAccount() {
	created := suite.createTestAccount(v1.AccountEditable{})

	r := test.Request(suite.T(), http.MethodDelete, created.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, created.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestGetAccountNotFound() {
	r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/accounts/%s", uuid.New()), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}
