package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mycash-plus/backend/internal/models"
)

type CategoryEditable struct {
	Name     string                 `json:"name" example:"Alimentação"`               // Name of the category
	Icon     string                 `json:"icon" example:"🍽️"`                        // Emoji shown next to the name
	Type     models.TransactionType `json:"type" example:"EXPENSE"`                   // The transaction type this category applies to
	Color    string                 `json:"color" example:"#F59E0B"`                  // Display color
	Archived bool                   `json:"archived" example:"false" default:"false"` // Whether the category is hidden from active use
}

// model returns the database resource for the API representation of the editable fields
func (editable CategoryEditable) model(userID uuid.UUID) models.Category {
	return models.Category{
		UserID:   userID,
		Name:     editable.Name,
		Icon:     editable.Icon,
		Type:     editable.Type,
		Color:    editable.Color,
		Archived: editable.Archived,
	}
}

type CategoryLinks struct {
	Self         string `json:"self" example:"https://example.com/api/v1/categories/3b1ea324-d438-4419-882a-2fc91f71defe"`                     // The category itself
	Transactions string `json:"transactions" example:"https://example.com/api/v1/transactions?category=3b1ea324-d438-4419-882a-2fc91f71defe"` // Transactions for this category
}

// Category is the representation of a Category in API v1.
type Category struct {
	models.DefaultModel
	CategoryEditable
	Links CategoryLinks `json:"links"`
}

// newCategory returns the API v1 representation of the resource
func newCategory(c *gin.Context, model models.Category) Category {
	url := c.GetString(string(models.ContextURL))

	return Category{
		DefaultModel: model.DefaultModel,
		CategoryEditable: CategoryEditable{
			Name:     model.Name,
			Icon:     model.Icon,
			Type:     model.Type,
			Color:    model.Color,
			Archived: model.Archived,
		},
		Links: CategoryLinks{
			Self:         fmt.Sprintf("%s/v1/categories/%s", url, model.ID),
			Transactions: fmt.Sprintf("%s/v1/transactions?category=%s", url, model.ID),
		},
	}
}

type CategoryListResponse struct {
	Data  []Category `json:"data"`                                                          // List of categories
	Error *string    `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type CategoryResponse struct {
	Error       *string                `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred for this category
	FieldErrors models.ValidationError `json:"fieldErrors,omitempty"`                                         // Per-field validation messages, if the request was invalid
	Data        *Category              `json:"data"`                                                          // The Category data, if the request was successful
}
