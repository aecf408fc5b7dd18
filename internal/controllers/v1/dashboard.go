package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mycash-plus/backend/internal/finance"
	"github.com/mycash-plus/backend/internal/httputil"
	"github.com/mycash-plus/backend/internal/models"
	"github.com/shopspring/decimal"
)

// RegisterDashboardRoutes registers the routes for the dashboard with
// the RouterGroup that is passed.
func RegisterDashboardRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsDashboard)
	r.GET("", GetDashboard)
}

// Dashboard is the aggregated financial view for the filtered period.
type Dashboard struct {
	Income      decimal.Decimal           `json:"income" example:"8450.20"`   // Sum of income transactions in the period
	Expenses    decimal.Decimal           `json:"expenses" example:"3120.77"` // Sum of expense transactions in the period
	Balance     decimal.Decimal           `json:"balance" example:"4200.55"`  // Net balance over all accounts, bank balances minus open credit card bills
	SavingsRate float64                   `json:"savingsRate" example:"63.1"` // Saved share of income in percent. Negative when expenses exceed income.
	Categories  []finance.CategoryExpense `json:"categories"`                 // Expense breakdown by category, sorted by amount descending
	Series      []finance.MonthlyFlow     `json:"series"`                     // Monthly income and expense sums for the trailing window
}

type DashboardResponse struct {
	Error *string    `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  *Dashboard `json:"data"`                                                          // The dashboard data
}

type DashboardQueryFilter struct {
	MemberID  string    `form:"member"`    // Scope the view to a family member
	FromDate  time.Time `form:"fromDate"`  // Transactions at and after this date
	UntilDate time.Time `form:"untilDate"` // Transactions before and at this date
	Months    int       `form:"months"`    // Number of trailing months in the series. Defaults to 6.
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Dashboard
// @Success		204
// @Router			/v1/dashboard [options]
func OptionsDashboard(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Get dashboard
// @Description	Returns the aggregated financial view for the filtered period: income and expense totals, net balance, savings rate, expense breakdown by category and the monthly series. The date range defaults to the current month.
// @Tags			Dashboard
// @Produce		json
// @Success		200	{object}	DashboardResponse
// @Failure		400	{object}	DashboardResponse
// @Failure		500	{object}	DashboardResponse
// @Router			/v1/dashboard [get]
// @Param			member		query	string	false	"Scope the view to a family member"
// @Param			fromDate	query	string	false	"Transactions at and after this date"
// @Param			untilDate	query	string	false	"Transactions before and at this date"
// @Param			months		query	int		false	"Number of trailing months in the series. Defaults to 6."
func GetDashboard(c *gin.Context) {
	var filter DashboardQueryFilter
	if err := c.Bind(&filter); err != nil {
		s := errInvalidQueryParameters.Error()
		c.JSON(http.StatusBadRequest, DashboardResponse{
			Error: &s,
		})
		return
	}

	now := time.Now().In(time.UTC)

	set := finance.FilterSet{
		From:  filter.FromDate,
		Until: filter.UntilDate,
	}
	if filter.FromDate.IsZero() && filter.UntilDate.IsZero() {
		set.From, set.Until = finance.CurrentMonth(now)
	}

	memberID, err := httputil.UUIDFromString(filter.MemberID)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DashboardResponse{
			Error: &e,
		})
		return
	}

	var member *uuid.UUID
	if memberID != uuid.Nil {
		member = &memberID
		set.MemberID = &memberID
	}

	err = models.EnsureDefaults(models.DB, userID(c), userName(c))
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DashboardResponse{
			Error: &e,
		})
		return
	}

	transactions, err := userTransactions(userID(c))
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DashboardResponse{
			Error: &e,
		})
		return
	}

	categories, err := userCategories(userID(c))
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DashboardResponse{
			Error: &e,
		})
		return
	}

	accounts, err := userAccounts(userID(c))
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DashboardResponse{
			Error: &e,
		})
		return
	}

	matching := finance.Filter(transactions, set, categories)
	totals := finance.Sum(matching)

	c.JSON(http.StatusOK, DashboardResponse{
		Data: &Dashboard{
			Income:      totals.Income,
			Expenses:    totals.Expenses,
			Balance:     finance.Balance(accounts, member),
			SavingsRate: finance.SavingsRate(totals.Income, totals.Expenses),
			Categories:  finance.ExpensesByCategory(matching, categories),
			Series:      finance.MonthlySeries(transactions, set, categories, filter.Months, now),
		},
	})
}
