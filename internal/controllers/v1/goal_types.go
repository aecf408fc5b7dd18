package v1

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mycash-plus/backend/internal/models"
	"github.com/shopspring/decimal"
)

type GoalEditable struct {
	Name          string          `json:"name" example:"Viagem ao Japão"`        // Name of the goal
	TargetAmount  decimal.Decimal `json:"targetAmount" example:"15000"`          // Amount to save up to
	CurrentAmount decimal.Decimal `json:"currentAmount" example:"4200"`          // Amount saved so far, edited manually. May exceed the target.
	Deadline      *time.Time      `json:"deadline" example:"2027-01-01T00:00:00Z"` // Optional date the goal should be reached by
	Color         string          `json:"color" example:"#8B5CF6"`               // Display color
	Icon          string          `json:"icon" example:"✈️"`                     // Emoji shown next to the name
}

// model returns the database resource for the API representation of the editable fields
func (editable GoalEditable) model(userID uuid.UUID) models.Goal {
	return models.Goal{
		UserID:        userID,
		Name:          editable.Name,
		TargetAmount:  editable.TargetAmount,
		CurrentAmount: editable.CurrentAmount,
		Deadline:      editable.Deadline,
		Color:         editable.Color,
		Icon:          editable.Icon,
	}
}

type GoalLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/goals/f81566cb-ce37-4454-af4d-0a98bbca9caf"` // The goal itself
}

// Goal is the representation of a Goal in API v1.
type Goal struct {
	models.DefaultModel
	GoalEditable
	Links GoalLinks `json:"links"`
}

// newGoal returns the API v1 representation of the resource
func newGoal(c *gin.Context, model models.Goal) Goal {
	url := c.GetString(string(models.ContextURL))

	return Goal{
		DefaultModel: model.DefaultModel,
		GoalEditable: GoalEditable{
			Name:          model.Name,
			TargetAmount:  model.TargetAmount,
			CurrentAmount: model.CurrentAmount,
			Deadline:      model.Deadline,
			Color:         model.Color,
			Icon:          model.Icon,
		},
		Links: GoalLinks{
			Self: fmt.Sprintf("%s/v1/goals/%s", url, model.ID),
		},
	}
}

type GoalListResponse struct {
	Data  []Goal  `json:"data"`                                                          // List of goals
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type GoalResponse struct {
	Error       *string                `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred for this goal
	FieldErrors models.ValidationError `json:"fieldErrors,omitempty"`                                         // Per-field validation messages, if the request was invalid
	Data        *Goal                  `json:"data"`                                                          // The Goal data, if the request was successful
}
