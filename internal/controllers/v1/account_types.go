package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mycash-plus/backend/internal/models"
	"github.com/shopspring/decimal"
)

type AccountEditable struct {
	Type        models.AccountType `json:"type" example:"CHECKING"`                                 // CHECKING, SAVINGS or CREDIT_CARD
	Name        string             `json:"name" example:"Conta principal"`                          // Name of the account
	Institution string             `json:"institution" example:"Nubank"`                            // Bank or card issuer
	LastDigits  string             `json:"lastDigits" example:"4412"`                               // Last digits of the card or account number
	HolderID    uuid.UUID          `json:"holderId" example:"6b40ef48-7f0a-4128-b669-fa14b14e5f16"` // Family member holding the account
	Balance     decimal.Decimal    `json:"balance" example:"1520.99"`                               // Current balance, bank accounts only. May be negative.
	CreditLimit decimal.Decimal    `json:"creditLimit" example:"8000"`                              // Credit limit, credit cards only
	CurrentBill decimal.Decimal    `json:"currentBill" example:"431.55"`                            // Open bill, credit cards only
	ClosingDay  int                `json:"closingDay" example:"28"`                                 // Day of month the bill closes, credit cards only
	DueDay      int                `json:"dueDay" example:"5"`                                      // Day of month the bill is due, credit cards only
	Theme       string             `json:"theme" example:"black"`                                   // Visual theme for the account card
	Archived    bool               `json:"archived" example:"false" default:"false"`                // Whether the account is hidden from active use
}

// model returns the database resource for the API representation of the editable fields
func (editable AccountEditable) model(userID uuid.UUID) models.Account {
	return models.Account{
		UserID:      userID,
		Type:        editable.Type,
		Name:        editable.Name,
		Institution: editable.Institution,
		LastDigits:  editable.LastDigits,
		HolderID:    editable.HolderID,
		Balance:     editable.Balance,
		CreditLimit: editable.CreditLimit,
		CurrentBill: editable.CurrentBill,
		ClosingDay:  editable.ClosingDay,
		DueDay:      editable.DueDay,
		Theme:       editable.Theme,
		Archived:    editable.Archived,
	}
}

type AccountLinks struct {
	Self         string `json:"self" example:"https://example.com/api/v1/accounts/af892e10-7e0a-4fb8-b1bc-4b6d88401ed2"`                     // The account itself
	Transactions string `json:"transactions" example:"https://example.com/api/v1/transactions?account=af892e10-7e0a-4fb8-b1bc-4b6d88401ed2"` // Transactions for this account
}

// Account is the representation of an Account in API v1.
type Account struct {
	models.DefaultModel
	AccountEditable
	Links AccountLinks `json:"links"`
}

// newAccount returns the API v1 representation of the resource
func newAccount(c *gin.Context, model models.Account) Account {
	url := c.GetString(string(models.ContextURL))

	return Account{
		DefaultModel: model.DefaultModel,
		AccountEditable: AccountEditable{
			Type:        model.Type,
			Name:        model.Name,
			Institution: model.Institution,
			LastDigits:  model.LastDigits,
			HolderID:    model.HolderID,
			Balance:     model.Balance,
			CreditLimit: model.CreditLimit,
			CurrentBill: model.CurrentBill,
			ClosingDay:  model.ClosingDay,
			DueDay:      model.DueDay,
			Theme:       model.Theme,
			Archived:    model.Archived,
		},
		Links: AccountLinks{
			Self:         fmt.Sprintf("%s/v1/accounts/%s", url, model.ID),
			Transactions: fmt.Sprintf("%s/v1/transactions?account=%s", url, model.ID),
		},
	}
}

type AccountListResponse struct {
	Data  []Account `json:"data"`                                                          // List of accounts
	Error *string   `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type AccountResponse struct {
	Error       *string                `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred for this account
	FieldErrors models.ValidationError `json:"fieldErrors,omitempty"`                                         // Per-field validation messages, if the request was invalid
	Data        *Account               `json:"data"`                                                          // The Account data, if the request was successful
}
