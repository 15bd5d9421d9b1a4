// Package query holds the users and posts operations and their variables.
package query

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"usergrid/internal/gql"
	"usergrid/internal/model"
)

// Operation names.
const (
	OpGetUsers = "GetUsers"
	OpGetPosts = "GetPosts"
)

// GetUsersDocument fetches users matching an optional filter.
const GetUsersDocument = `query GetUsers($filters: UserFilters!) {
  users(filters: $filters) {
    id
    name
    age
    email
    phone
  }
}`

// GetPostsDocument fetches posts matching an optional filter.
const GetPostsDocument = `query GetPosts($filters: PostFilters!) {
  posts(filters: $filters) {
    id
    userId
    title
    content
    createdAt
    updatedAt
  }
}`

// StringFilter is a string predicate.
type StringFilter struct {
	Contains string `json:"contains,omitempty"`
}

// UserFilters is the GetUsers filter input. An empty value matches all users.
type UserFilters struct {
	Name *StringFilter `json:"name,omitempty"`
}

// PostFilters is the GetPosts filter input. It is always sent empty.
type PostFilters struct{}

// NewUserFilters turns a search term into a filter. The term is trimmed; an
// empty term means no filter.
func NewUserFilters(search string) UserFilters {
	s := strings.TrimSpace(search)
	if s == "" {
		return UserFilters{}
	}
	return UserFilters{Name: &StringFilter{Contains: s}}
}

// UsersRequest builds the GetUsers operation for a search term.
func UsersRequest(search string) gql.Request {
	return gql.Request{
		Query:         GetUsersDocument,
		OperationName: OpGetUsers,
		Variables:     map[string]any{"filters": NewUserFilters(search)},
	}
}

// PostsRequest builds the GetPosts operation.
func PostsRequest() gql.Request {
	return gql.Request{
		Query:         GetPostsDocument,
		OperationName: OpGetPosts,
		Variables:     map[string]any{"filters": PostFilters{}},
	}
}

// Doer executes GraphQL requests. *gql.Client satisfies it.
type Doer interface {
	Do(ctx context.Context, req gql.Request, out any, policy gql.FetchPolicy) error
}

// Users fetches users whose name contains search.
func Users(ctx context.Context, c Doer, search string, policy gql.FetchPolicy) ([]model.User, error) {
	var out struct {
		Users []model.User `json:"users"`
	}
	if err := c.Do(ctx, UsersRequest(search), &out, policy); err != nil {
		return nil, err
	}
	if out.Users == nil {
		out.Users = []model.User{}
	}
	return out.Users, nil
}

// Posts fetches every post.
func Posts(ctx context.Context, c Doer, policy gql.FetchPolicy) ([]model.Post, error) {
	var out struct {
		Posts []model.Post `json:"posts"`
	}
	if err := c.Do(ctx, PostsRequest(), &out, policy); err != nil {
		return nil, err
	}
	if out.Posts == nil {
		out.Posts = []model.Post{}
	}
	return out.Posts, nil
}

// Result is the outcome of fetching both queries.
type Result struct {
	Users []model.User
	Posts []model.Post
}

// Both fetches users and posts concurrently. A failure cancels the other
// request. The users error wins when both fail, matching the order errors are
// shown in the grid; a users request that was only cancelled by a posts
// failure yields the posts error.
func Both(ctx context.Context, c Doer, search string, policy gql.FetchPolicy) (Result, error) {
	var (
		res                Result
		usersErr, postsErr error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		res.Users, usersErr = Users(gctx, c, search, policy)
		if usersErr != nil {
			usersErr = fmt.Errorf("fetch users: %w", usersErr)
		}
		return usersErr
	})
	g.Go(func() error {
		res.Posts, postsErr = Posts(gctx, c, policy)
		if postsErr != nil {
			postsErr = fmt.Errorf("fetch posts: %w", postsErr)
		}
		return postsErr
	})
	err := g.Wait()

	siblingCancelled := errors.Is(usersErr, context.Canceled) && ctx.Err() == nil
	if usersErr != nil && !siblingCancelled {
		return Result{}, usersErr
	}
	if err != nil {
		return Result{}, err
	}
	return res, nil
}
