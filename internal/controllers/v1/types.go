package v1

import (
	"github.com/gin-gonic/gin"
	google_uuid "github.com/google/uuid"
	"github.com/mycash-plus/backend/internal/finance"
	"github.com/mycash-plus/backend/internal/models"
	"github.com/mycash-plus/backend/internal/uuid"
)

type URIID struct {
	ID uuid.UUID `uri:"id" binding:"required"` // The ID of the resource
}

// Pagination contains the display information for a paginated list.
type Pagination struct {
	Page       int      `json:"page" example:"2"`                      // The current page, starting at 1
	PageSize   int      `json:"pageSize" example:"10"`                 // Number of items per page
	TotalPages int      `json:"totalPages" example:"12"`               // Total number of pages
	Count      int      `json:"count" example:"117"`                   // Total number of items over all pages
	Pages      []string `json:"pages" example:"1,...,5,6,7,...,12"`    // Compacted page numbers for display
}

// newPagination computes the pagination data for a list of count items.
func newPagination(count, page, pageSize int) *Pagination {
	totalPages := finance.TotalPages(count, pageSize)

	return &Pagination{
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		Count:      count,
		Pages:      finance.PageNumbers(totalPages, page),
	}
}

// userID returns the authenticated user. The identity middleware guarantees
// it is set on every route registered under the API group.
func userID(c *gin.Context) google_uuid.UUID {
	return c.MustGet(string(models.ContextUserID)).(google_uuid.UUID)
}

// userName returns the display name of the authenticated user, used for
// first-use seeding. It may be empty.
func userName(c *gin.Context) string {
	return c.GetString(string(models.ContextUserName))
}
