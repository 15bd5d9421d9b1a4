// Package fixture serves users and posts from a YAML file over a minimal
// GraphQL endpoint. It backs `usergrid serve-fixtures` and the client tests.
package fixture

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"usergrid/internal/model"
)

// Data is the content of a fixture file.
type Data struct {
	Users []model.User `yaml:"users"`
	Posts []model.Post `yaml:"posts"`

	// Errors forces an operation to fail with the given message, keyed by
	// operation name (GetUsers, GetPosts).
	Errors map[string]string `yaml:"errors,omitempty"`
}

// Store holds the current fixture data. It is safe for concurrent use.
type Store struct {
	mu   sync.RWMutex
	data Data
}

// NewStore returns a store serving data.
func NewStore(data Data) *Store {
	return &Store{data: data}
}

// LoadFile reads a fixture file.
func LoadFile(path string) (Data, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Data{}, fmt.Errorf("failed to read fixtures: %w", err)
	}
	var d Data
	if err := yaml.Unmarshal(raw, &d); err != nil {
		return Data{}, fmt.Errorf("failed to parse fixtures: %w", err)
	}
	return d, nil
}

// Replace swaps in new data.
func (s *Store) Replace(d Data) {
	s.mu.Lock()
	s.data = d
	s.mu.Unlock()
}

// Users returns users whose name contains filter, ignoring case. An empty
// filter returns every user.
func (s *Store) Users(contains string) []model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	needle := strings.ToLower(contains)
	out := make([]model.User, 0, len(s.data.Users))
	for _, u := range s.data.Users {
		if needle != "" {
			if u.Name == nil || !strings.Contains(strings.ToLower(*u.Name), needle) {
				continue
			}
		}
		out = append(out, u)
	}
	return out
}

// Posts returns every post.
func (s *Store) Posts() []model.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Post, len(s.data.Posts))
	copy(out, s.data.Posts)
	return out
}

// ForcedError returns the configured failure for an operation.
func (s *Store) ForcedError(operation string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	msg, ok := s.data.Errors[operation]
	return msg, ok && msg != ""
}
