package gql

import (
	"fmt"
	"net/http"
)

// Location points into the query document.
type Location struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// ErrorEntry is one member of a GraphQL errors array.
type ErrorEntry struct {
	Message    string         `json:"message"`
	Path       []any          `json:"path,omitempty"`
	Locations  []Location     `json:"locations,omitempty"`
	Extensions map[string]any `json:"extensions,omitempty"`
}

// Error is returned when the server answers with a non-empty errors array.
// Its message is the first entry's message.
type Error struct {
	Entries []ErrorEntry
}

func (e *Error) Error() string {
	if len(e.Entries) == 0 {
		return "graphql error"
	}
	return e.Entries[0].Message
}

// HTTPError is returned for a non-2xx response without GraphQL errors.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("graphql endpoint returned %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}
