package v1

import (
	"errors"
	"net/http"

	"github.com/mycash-plus/backend/internal/httputil"
	"github.com/mycash-plus/backend/internal/models"
)

type httpError struct {
	Error string `json:"error" example:"An ID specified in the query string was not a valid UUID"`
}

// status returns the appropriate HTTP status for an error.
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	return http.StatusBadRequest
}

var (
	errNoFilePost             = errors.New("you must send a file to this endpoint")
	errTransactionCompleted   = errors.New("the transaction is already marked as paid")
	errPartialBatch           = errors.New("some installment records could not be created, the created records are kept")
	errInvalidQueryParameters = httputil.ErrInvalidQuery
)
