// Package posts attaches posts to the users that own them.
package posts

import "usergrid/internal/model"

// Index maps a user id to that user's posts in source order.
type Index map[model.ID][]model.Post

// GroupByUser buckets posts by owning user in a single pass. Posts without an
// owner are dropped. The index is rebuilt from scratch on every call.
func GroupByUser(posts []model.Post) Index {
	idx := make(Index)
	for _, p := range posts {
		if p.UserID == nil {
			continue
		}
		idx[*p.UserID] = append(idx[*p.UserID], p)
	}
	return idx
}

// For returns the bucket for id, or an empty slice when the user has no posts.
func (idx Index) For(id model.ID) []model.Post {
	if bucket, ok := idx[id]; ok {
		return bucket
	}
	return []model.Post{}
}

// TotalFor returns the number of posts owned by users. Buckets of users not
// in the list are not counted.
func (idx Index) TotalFor(users []model.User) int {
	n := 0
	for _, u := range users {
		n += len(idx[u.ID])
	}
	return n
}
