package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mycash-plus/backend/internal/models"
	"github.com/shopspring/decimal"
)

type MemberEditable struct {
	Name          string          `json:"name" example:"Maria"`                     // Name of the family member
	Role          string          `json:"role" example:"Mãe"`                       // Role within the family
	AvatarURL     string          `json:"avatarUrl" example:"https://storage.googleapis.com/mycash-avatars/maria.png"` // URL of the avatar image
	MonthlyIncome decimal.Decimal `json:"monthlyIncome" example:"5200"`             // Expected monthly income
	Color         string          `json:"color" example:"#10B981"`                  // Display color
	Archived      bool            `json:"archived" example:"false" default:"false"` // Whether the member is hidden from active use
}

// model returns the database resource for the API representation of the editable fields
func (editable MemberEditable) model(userID uuid.UUID) models.FamilyMember {
	return models.FamilyMember{
		UserID:        userID,
		Name:          editable.Name,
		Role:          editable.Role,
		AvatarURL:     editable.AvatarURL,
		MonthlyIncome: editable.MonthlyIncome,
		Color:         editable.Color,
		Archived:      editable.Archived,
	}
}

type MemberLinks struct {
	Self         string `json:"self" example:"https://example.com/api/v1/members/a5d92f31-272d-4277-a75e-5d273d8de44e"`                     // The member itself
	Avatar       string `json:"avatar" example:"https://example.com/api/v1/members/a5d92f31-272d-4277-a75e-5d273d8de44e/avatar"`           // Upload endpoint for the avatar
	Transactions string `json:"transactions" example:"https://example.com/api/v1/transactions?member=a5d92f31-272d-4277-a75e-5d273d8de44e"` // Transactions assigned to this member
}

// Member is the representation of a FamilyMember in API v1.
type Member struct {
	models.DefaultModel
	MemberEditable
	Links MemberLinks `json:"links"`
}

// newMember returns the API v1 representation of the resource
func newMember(c *gin.Context, model models.FamilyMember) Member {
	url := c.GetString(string(models.ContextURL))

	return Member{
		DefaultModel: model.DefaultModel,
		MemberEditable: MemberEditable{
			Name:          model.Name,
			Role:          model.Role,
			AvatarURL:     model.AvatarURL,
			MonthlyIncome: model.MonthlyIncome,
			Color:         model.Color,
			Archived:      model.Archived,
		},
		Links: MemberLinks{
			Self:         fmt.Sprintf("%s/v1/members/%s", url, model.ID),
			Avatar:       fmt.Sprintf("%s/v1/members/%s/avatar", url, model.ID),
			Transactions: fmt.Sprintf("%s/v1/transactions?member=%s", url, model.ID),
		},
	}
}

type MemberListResponse struct {
	Data  []Member `json:"data"`                                                          // List of family members, ordered by creation. The first active one is the primary profile.
	Error *string  `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type MemberResponse struct {
	Error       *string                `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred for this member
	FieldErrors models.ValidationError `json:"fieldErrors,omitempty"`                                         // Per-field validation messages, if the request was invalid
	Data        *Member                `json:"data"`                                                          // The Member data, if the request was successful
}

// MemberCreateResponse contains both the created member and the confirmed
// member list, so clients that staged the new member optimistically can
// swap in the authoritative state with one response.
type MemberCreateResponse struct {
	Error       *string                `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	FieldErrors models.ValidationError `json:"fieldErrors,omitempty"`                                         // Per-field validation messages, if the request was invalid
	Data        *Member                `json:"data"`                                                          // The created member
	Members     []Member               `json:"members"`                                                       // The full member list after the creation
}
