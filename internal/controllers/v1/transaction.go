package v1

import (
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/mycash-plus/backend/internal/finance"
	"github.com/mycash-plus/backend/internal/httputil"
	"github.com/mycash-plus/backend/internal/models"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
)

// RegisterTransactionRoutes registers the routes for transactions with
// the RouterGroup that is passed.
func RegisterTransactionRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsTransactions)
		r.GET("", GetTransactions)
		r.POST("", CreateTransaction)
	}

	// Transaction with ID
	{
		r.OPTIONS("/:id", OptionsTransactionDetail)
		r.GET("/:id", GetTransaction)
		r.PATCH("/:id", UpdateTransaction)
		r.DELETE("/:id", DeleteTransaction)
		r.POST("/:id/paid", MarkTransactionPaid)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Transactions
// @Success		204
// @Router			/v1/transactions [options]
func OptionsTransactions(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Transactions
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/transactions/{id} [options]
func OptionsTransactionDetail(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httpError{
			Error: httputil.ErrInvalidUUID.Error(),
		})
		return
	}

	_, err := firstOwned[models.Transaction](uri.ID.UUID, userID(c))
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Get transactions
// @Description	Returns the transactions matching the filter, sorted by date descending and paginated. The date range defaults to the current month.
// @Tags			Transactions
// @Produce		json
// @Success		200	{object}	TransactionListResponse
// @Failure		400	{object}	TransactionListResponse
// @Failure		500	{object}	TransactionListResponse
// @Router			/v1/transactions [get]
// @Param			member		query	string	false	"Filter by family member ID. Only transactions assigned to exactly this member match."
// @Param			fromDate	query	string	false	"Transactions at and after this date"
// @Param			untilDate	query	string	false	"Transactions before and at this date"
// @Param			type		query	string	false	"INCOME or EXPENSE"
// @Param			category	query	string	false	"Filter by category ID"
// @Param			account		query	string	false	"Filter by account ID"
// @Param			status		query	string	false	"COMPLETED or PENDING"
// @Param			search		query	string	false	"Case-insensitive search in description and category name"
// @Param			page		query	int		false	"The page to return, starting at 1. Defaults to 1."
// @Param			pageSize	query	int		false	"Number of transactions per page. Defaults to 10."
func GetTransactions(c *gin.Context) {
	var filter TransactionQueryFilter
	if err := c.Bind(&filter); err != nil {
		s := errInvalidQueryParameters.Error()
		c.JSON(http.StatusBadRequest, TransactionListResponse{
			Error: &s,
		})
		return
	}

	set, err := filter.filterSet(time.Now().In(time.UTC))
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionListResponse{
			Error: &e,
		})
		return
	}

	err = models.EnsureDefaults(models.DB, userID(c), userName(c))
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionListResponse{
			Error: &e,
		})
		return
	}

	transactions, err := userTransactions(userID(c))
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionListResponse{
			Error: &e,
		})
		return
	}

	categories, err := userCategories(userID(c))
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionListResponse{
			Error: &e,
		})
		return
	}

	matching := finance.Filter(transactions, set, categories)

	page, pageSize := filter.pagination()

	data := make([]Transaction, 0, pageSize)
	for _, transaction := range finance.Page(matching, page, pageSize) {
		data = append(data, newTransaction(c, transaction))
	}

	c.JSON(http.StatusOK, TransactionListResponse{
		Data:       data,
		Pagination: newPagination(len(matching), page, pageSize),
	})
}

// @Summary		Get transaction
// @Description	Returns a specific transaction
// @Tags			Transactions
// @Produce		json
// @Success		200	{object}	TransactionResponse
// @Failure		400	{object}	TransactionResponse
// @Failure		404	{object}	TransactionResponse
// @Failure		500	{object}	TransactionResponse
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/transactions/{id} [get]
func GetTransaction(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		e := httputil.ErrInvalidUUID.Error()
		c.JSON(http.StatusBadRequest, TransactionResponse{
			Error: &e,
		})
		return
	}

	transaction, err := firstOwned[models.Transaction](uri.ID.UUID, userID(c))
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &e,
		})
		return
	}

	data := newTransaction(c, transaction)
	c.JSON(http.StatusOK, TransactionResponse{Data: &data})
}

// @Summary		Create transaction
// @Description	Creates a new transaction. For installment purchases all records of the series are created at once; records that could not be created are reported individually, already created records are kept.
// @Tags			Transactions
// @Produce		json
// @Success		201			{object}	TransactionCreateResponse
// @Failure		400			{object}	TransactionCreateResponse
// @Failure		404			{object}	TransactionCreateResponse
// @Failure		500			{object}	TransactionCreateResponse
// @Param			transaction	body		TransactionEditable	true	"Transaction"
// @Router			/v1/transactions [post]
func CreateTransaction(c *gin.Context) {
	// Read the set fields before binding consumes the body
	bodyFields, err := httputil.GetBodyFields(c, TransactionEditable{})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionCreateResponse{
			Error: &e,
		})
		return
	}

	var editable TransactionEditable

	err = httputil.BindData(c, &editable)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionCreateResponse{
			Error: &e,
		})
		return
	}

	// An absent totalInstallments means a regular transaction. An explicit
	// zero stays zero and is rejected by validation.
	if editable.TotalInstallments == 0 && !slices.Contains(bodyFields, any("TotalInstallments")) {
		editable.TotalInstallments = 1
	}

	transaction := editable.model(userID(c))

	// Reject the request as a whole before anything is persisted
	if v := transaction.Validate(); v != nil {
		c.JSON(http.StatusBadRequest, TransactionCreateResponse{
			FieldErrors: v,
		})
		return
	}

	err = models.DB.Create(&transaction).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	httpStatus := http.StatusCreated
	r := TransactionCreateResponse{}

	data := newTransaction(c, transaction)
	r.Data = append(r.Data, TransactionResponse{Data: &data})

	// The remaining records of an installment series are created best
	// effort. A failed record does not roll back the ones already created.
	for _, installment := range finance.Installments(transaction) {
		err := models.DB.Create(&installment).Error
		if err != nil {
			httpStatus = r.appendError(err, httpStatus)
			continue
		}

		data := newTransaction(c, installment)
		r.Data = append(r.Data, TransactionResponse{Data: &data})
	}

	if httpStatus != http.StatusCreated {
		e := errPartialBatch.Error()
		r.Error = &e
	}

	c.JSON(httpStatus, r)
}

// @Summary		Update transaction
// @Description	Updates an existing transaction. Only values to be updated need to be specified.
// @Tags			Transactions
// @Accept			json
// @Produce		json
// @Success		200			{object}	TransactionResponse
// @Failure		400			{object}	TransactionResponse
// @Failure		404			{object}	TransactionResponse
// @Failure		500			{object}	TransactionResponse
// @Param			id			path		string				true	"ID formatted as string"
// @Param			transaction	body		TransactionEditable	true	"Transaction"
// @Router			/v1/transactions/{id} [patch]
func UpdateTransaction(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		e := httputil.ErrInvalidUUID.Error()
		c.JSON(http.StatusBadRequest, TransactionResponse{
			Error: &e,
		})
		return
	}

	transaction, err := firstOwned[models.Transaction](uri.ID.UUID, userID(c))
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &e,
		})
		return
	}

	// Get the fields that are set to be updated
	updateFields, err := httputil.GetBodyFields(c, TransactionEditable{})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &e,
		})
		return
	}

	var update TransactionEditable
	err = httputil.BindData(c, &update)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &e,
		})
		return
	}

	// If the amount set via the API request is not existent or
	// is 0, we use the old amount
	if update.Amount.IsZero() {
		update.Amount = transaction.Amount
	}

	err = models.DB.Model(&transaction).Select("", updateFields...).Updates(update.model(userID(c))).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &e,
		})
		return
	}

	data := newTransaction(c, transaction)
	c.JSON(http.StatusOK, TransactionResponse{Data: &data})
}

// @Summary		Delete transaction
// @Description	Deletes a transaction. Deleting one record of an installment series does not delete the other records.
// @Tags			Transactions
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/transactions/{id} [delete]
func DeleteTransaction(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httpError{
			Error: httputil.ErrInvalidUUID.Error(),
		})
		return
	}

	transaction, err := firstOwned[models.Transaction](uri.ID.UUID, userID(c))
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&transaction).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// @Summary		Mark transaction as paid
// @Description	Transitions a pending transaction to COMPLETED. For recurring transactions and unfinished installment series the next occurrence is generated and returned.
// @Tags			Transactions
// @Produce		json
// @Success		200	{object}	MarkPaidResponse
// @Failure		400	{object}	MarkPaidResponse
// @Failure		404	{object}	MarkPaidResponse
// @Failure		500	{object}	MarkPaidResponse
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/transactions/{id}/paid [post]
func MarkTransactionPaid(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		e := httputil.ErrInvalidUUID.Error()
		c.JSON(http.StatusBadRequest, MarkPaidResponse{
			Error: &e,
		})
		return
	}

	transaction, err := firstOwned[models.Transaction](uri.ID.UUID, userID(c))
	if err != nil {
		e := err.Error()
		c.JSON(status(err), MarkPaidResponse{
			Error: &e,
		})
		return
	}

	if transaction.Status == models.TransactionStatusCompleted {
		e := errTransactionCompleted.Error()
		c.JSON(http.StatusBadRequest, MarkPaidResponse{
			Error: &e,
		})
		return
	}

	err = models.DB.Model(&transaction).Select("Status").Updates(models.Transaction{Status: models.TransactionStatusCompleted}).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), MarkPaidResponse{
			Error: &e,
		})
		return
	}

	transaction.Status = models.TransactionStatusCompleted
	data := newTransaction(c, transaction)
	r := MarkPaidResponse{Data: &data}

	// Generate the follow-up record. The status update above stands even
	// if this fails.
	if next, ok := finance.NextOccurrence(transaction); ok {
		err = models.DB.Create(&next).Error
		if err != nil {
			log.Error().Str("request-id", requestid.Get(c)).Str("transaction", transaction.ID.String()).Msgf("next occurrence not created: %v", err)

			e := err.Error()
			r.Error = &e
			c.JSON(status(err), r)
			return
		}

		nextData := newTransaction(c, next)
		r.Next = &nextData
	}

	c.JSON(http.StatusOK, r)
}
