// Package model defines the user and post records fetched from the GraphQL API.
package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ID is a record identifier. GraphQL servers serialize ids either as strings
// (the ID scalar) or as numbers (Int), so decoding accepts both forms.
type ID string

// UnmarshalJSON implements json.Unmarshaler.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("invalid id %s: %w", data, err)
		}
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid id %s: %w", data, err)
	}
	*id = ID(n.String())
	return nil
}

// MarshalJSON encodes canonical integers as JSON numbers and everything else
// as strings, so a round trip through the fixture server keeps the server's
// original shape. "007" and "+5" stay strings.
func (id ID) MarshalJSON() ([]byte, error) {
	if n, err := strconv.ParseInt(string(id), 10, 64); err == nil && strconv.FormatInt(n, 10) == string(id) {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// String returns the id as text.
func (id ID) String() string {
	return string(id)
}

// IDPtr returns a pointer to id. Handy for building posts with an owner.
func IDPtr(id ID) *ID {
	return &id
}

// User is a row of the grid. Every field is display-only.
type User struct {
	ID    ID      `json:"id" yaml:"id"`
	Name  *string `json:"name" yaml:"name"`
	Age   *int    `json:"age" yaml:"age"`
	Email *string `json:"email" yaml:"email"`
	Phone *string `json:"phone" yaml:"phone"`
}

// Post belongs to at most one user. A nil UserID means the post has no owner.
type Post struct {
	ID        ID      `json:"id" yaml:"id"`
	UserID    *ID     `json:"userId" yaml:"userId"`
	Title     *string `json:"title" yaml:"title"`
	Content   *string `json:"content" yaml:"content"`
	CreatedAt *string `json:"createdAt" yaml:"createdAt"`
	UpdatedAt *string `json:"updatedAt" yaml:"updatedAt"`
}

// Str returns a pointer to s.
func Str(s string) *string {
	return &s
}

// Int returns a pointer to n.
func Int(n int) *int {
	return &n
}

// Deref returns *s, or "" for nil.
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
