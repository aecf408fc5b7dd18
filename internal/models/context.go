package models

// DBContextKey is the type for keys used in request contexts.
type DBContextKey string

const (
	// ContextURL is the base URL the API is reachable at.
	ContextURL DBContextKey = "baseURL"

	// ContextUserID is the authenticated user, set by the identity middleware.
	ContextUserID DBContextKey = "userID"

	// ContextUserName is the display name of the authenticated user.
	ContextUserName DBContextKey = "userName"
)
