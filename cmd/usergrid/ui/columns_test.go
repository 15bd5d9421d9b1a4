package ui

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"usergrid/internal/format"
	"usergrid/internal/model"
)

func TestRowBuilders(t *testing.T) {
	f := format.NewFormatter()
	cols := UserColumns()

	if diff := cmp.Diff([]string{"ID", "Name", "Age", "Email", "Phone", "Posts"}, Headers(cols)); diff != "" {
		t.Errorf("Headers mismatch (-want +got):\n%s", diff)
	}

	u := model.User{ID: "7", Name: model.Str("Zoe"), Age: model.Int(1234)}
	if diff := cmp.Diff([]string{"7", "Zoe", "1,234", format.Placeholder, format.Placeholder, "0"}, Cells(f, cols, u, 0)); diff != "" {
		t.Errorf("Cells mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff([]string{"1 user", "", "5"}, Footer(f, 3, 1, 5)); diff != "" {
		t.Errorf("Footer mismatch (-want +got):\n%s", diff)
	}
	if got := Footer(f, 2, 1200, 0)[0]; got != "1,200 users" {
		t.Errorf("Footer count = %q", got)
	}
}
