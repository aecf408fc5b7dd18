package v1_test

import (
	"fmt"
	"net/http"
	"time"

	v1 "github.com/mycash-plus/backend/internal/controllers/v1"
	"github.com/mycash-plus/backend/internal/models"
	"github.com/mycash-plus/backend/test"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestOptionsDashboard() {
	r := test.Request(suite.T(), http.MethodOptions, "http://example.com/v1/dashboard", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	suite.Assert().Equal("GET", r.Header().Get("allow"))
}

func (suite *TestSuiteStandard) TestGetDashboard() {
	member := suite.createTestMember(v1.MemberEditable{Name: "Maria"})
	checking := suite.createTestAccount(v1.AccountEditable{
		Name:     "Conta corrente",
		Type:     models.AccountTypeChecking,
		HolderID: member.ID,
		Balance:  decimal.NewFromInt(1000),
	})
	_ = suite.createTestAccount(v1.AccountEditable{
		Name:        "Cartão",
		Type:        models.AccountTypeCreditCard,
		HolderID:    member.ID,
		CreditLimit: decimal.NewFromInt(8000),
		CurrentBill: decimal.NewFromInt(200),
		ClosingDay:  28,
		DueDay:      5,
	})

	salary := suite.createTestCategory(v1.CategoryEditable{Name: "Salário", Type: models.TransactionTypeIncome})
	housing := suite.createTestCategory(v1.CategoryEditable{Name: "Moradia", Type: models.TransactionTypeExpense})

	now := time.Now().In(time.UTC)
	_ = suite.createTestTransaction(v1.TransactionEditable{
		Type:        models.TransactionTypeIncome,
		Amount:      decimal.NewFromInt(1000),
		Description: "Salário mensal",
		Date:        now,
		CategoryID:  salary.ID,
		AccountID:   checking.ID,
	})
	_ = suite.createTestTransaction(v1.TransactionEditable{
		Type:        models.TransactionTypeExpense,
		Amount:      decimal.NewFromInt(400),
		Description: "Aluguel",
		Date:        now,
		CategoryID:  housing.ID,
		AccountID:   checking.ID,
	})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/dashboard", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.DashboardResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Require().NotNil(response.Data)

	suite.Assert().True(response.Data.Income.Equal(decimal.NewFromInt(1000)))
	suite.Assert().True(response.Data.Expenses.Equal(decimal.NewFromInt(400)))
	suite.Assert().True(response.Data.Balance.Equal(decimal.NewFromInt(800)), "bank balances minus open credit card bills")
	suite.Assert().InDelta(60.0, response.Data.SavingsRate, 0.0001)

	suite.Require().Len(response.Data.Categories, 1)
	suite.Assert().Equal("Moradia", response.Data.Categories[0].Category)
	suite.Assert().InDelta(100.0, response.Data.Categories[0].Percentage, 0.0001)

	// Trailing six months ending at the current one, zero-filled
	suite.Require().Len(response.Data.Series, 6)
	last := response.Data.Series[5]
	suite.Assert().True(last.Income.Equal(decimal.NewFromInt(1000)))
	suite.Assert().True(last.Expense.Equal(decimal.NewFromInt(400)))
	suite.Assert().True(response.Data.Series[0].Income.IsZero())
}

func (suite *TestSuiteStandard) TestGetDashboardMemberScope() {
	maria := suite.createTestMember(v1.MemberEditable{Name: "Maria"})
	joao := suite.createTestMember(v1.MemberEditable{Name: "João"})

	mariaAccount := suite.createTestAccount(v1.AccountEditable{
		Name:     "Conta da Maria",
		HolderID: maria.ID,
		Balance:  decimal.NewFromInt(500),
	})
	_ = suite.createTestAccount(v1.AccountEditable{
		Name:     "Conta do João",
		HolderID: joao.ID,
		Balance:  decimal.NewFromInt(300),
	})

	category := suite.createTestCategory(v1.CategoryEditable{Name: "Transporte"})

	now := time.Now().In(time.UTC)
	_ = suite.createTestTransaction(v1.TransactionEditable{
		Amount:      decimal.NewFromInt(100),
		Description: "Gasolina da Maria",
		Date:        now,
		CategoryID:  category.ID,
		AccountID:   mariaAccount.ID,
		MemberID:    &maria.ID,
	})
	_ = suite.createTestTransaction(v1.TransactionEditable{
		Amount:      decimal.NewFromInt(50),
		Description: "Compra da família",
		Date:        now,
		CategoryID:  category.ID,
		AccountID:   mariaAccount.ID,
	})

	r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/dashboard?member=%s", maria.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.DashboardResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Require().NotNil(response.Data)

	// Family-wide transactions and other members' accounts are out of scope
	suite.Assert().True(response.Data.Expenses.Equal(decimal.NewFromInt(100)))
	suite.Assert().True(response.Data.Balance.Equal(decimal.NewFromInt(500)))
}

func (suite *TestSuiteStandard) TestGetDashboardCustomWindow() {
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/dashboard?months=12", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.DashboardResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Require().NotNil(response.Data)
	suite.Assert().Len(response.Data.Series, 12)
}

func (suite *TestSuiteStandard) TestGetDashboardInvalidMember() {
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/dashboard?member=not-a-uuid", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}
