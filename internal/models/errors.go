package models

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")
)

// ValidationError collects per-field messages for malformed input.
// It is always produced before any write, so an invalid request never
// partially persists.
type ValidationError map[string]string

func (v ValidationError) Error() string {
	fields := make([]string, 0, len(v))
	for field := range v {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	messages := make([]string, 0, len(v))
	for _, field := range fields {
		messages = append(messages, field+": "+v[field])
	}

	return strings.Join(messages, ", ")
}
