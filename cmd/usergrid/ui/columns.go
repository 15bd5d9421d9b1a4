package ui

import (
	"usergrid/internal/format"
	"usergrid/internal/model"
)

// Column is a scalar user column rendered through the value formatter.
type Column struct {
	Title string
	Value func(u model.User) any
}

// PostsTitle is the header of the trailing synthetic posts column.
const PostsTitle = "Posts"

// UserColumns returns the fixed scalar columns in display order.
func UserColumns() []Column {
	return []Column{
		{Title: "ID", Value: func(u model.User) any { return u.ID.String() }},
		{Title: "Name", Value: func(u model.User) any { return u.Name }},
		{Title: "Age", Value: func(u model.User) any { return u.Age }},
		{Title: "Email", Value: func(u model.User) any { return u.Email }},
		{Title: "Phone", Value: func(u model.User) any { return u.Phone }},
	}
}

// Headers returns the column titles followed by the posts column title.
func Headers(cols []Column) []string {
	out := make([]string, 0, len(cols)+1)
	for _, c := range cols {
		out = append(out, c.Title)
	}
	return append(out, PostsTitle)
}

// Footer builds the summary row: the user count under the first column and
// the total post count under the posts column.
func Footer(f *format.Formatter, width, users, total int) []string {
	noun := "users"
	if users == 1 {
		noun = "user"
	}
	footer := make([]string, width)
	footer[0] = f.Format(users).Text + " " + noun
	footer[width-1] = f.Format(total).Text
	return footer
}

// Cells formats one user row, ending with the post count.
func Cells(f *format.Formatter, cols []Column, u model.User, count int) []string {
	row := make([]string, 0, len(cols)+1)
	for _, c := range cols {
		row = append(row, f.Format(c.Value(u)).Text)
	}
	return append(row, f.Format(count).Text)
}
