package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"

	"usergrid/internal/format"
	"usergrid/internal/model"
)

func TestPostsPanelRender(t *testing.T) {
	f := format.NewFormatter(format.WithLocale(language.German), format.WithLocation(time.UTC))
	p := NewPostsPanel(f, NewStyles(LightTheme()), 30, false)

	view := p.Render([]model.Post{
		{ID: "10", Title: model.Str("Hi"), Content: model.Str("Body"), CreatedAt: model.Str("2024-05-01T12:00:00Z")},
		{ID: "11", Title: model.Str("Draft"), CreatedAt: model.Str("yesterday")},
	}, 0)

	assert.Contains(t, view, "Posts (2)")
	assert.Contains(t, view, "1.5.2024, 12:00:00")
	assert.Contains(t, view, "yesterday")
	assert.Contains(t, view, "Draft")
	assert.Equal(t, 30+4, lipgloss.Width(view))
}

func TestPostsPanelDateOnlyTimestamp(t *testing.T) {
	f := format.NewFormatter(format.WithLocale(language.AmericanEnglish), format.WithLocation(time.UTC))
	p := NewPostsPanel(f, NewStyles(LightTheme()), 30, false)

	view := p.Render([]model.Post{
		{ID: "1", Title: model.Str("Dated"), CreatedAt: model.Str("2024-05-01")},
		{ID: "2", Title: model.Str("Odd"), CreatedAt: model.Str("2024-13-40")},
	}, 0)

	assert.Contains(t, view, "5/1/2024, 12:00:00 AM")
	assert.Contains(t, view, "2024-13-40")
}

func TestPostsPanelMaxHeight(t *testing.T) {
	p := NewPostsPanel(format.NewFormatter(), NewStyles(LightTheme()), 30, false)

	var list []model.Post
	for i := 0; i < 20; i++ {
		list = append(list, model.Post{Title: model.Str("T"), Content: model.Str(strings.Repeat("word ", 20))})
	}
	assert.LessOrEqual(t, lipgloss.Height(p.Render(list, 10)), 10)
}

func TestPostsPanelMarkdown(t *testing.T) {
	p := NewPostsPanel(format.NewFormatter(), NewStyles(DarkTheme()), 30, true)
	view := p.Render([]model.Post{{Title: model.Str("Notes"), Content: model.Str("**bold** text")}}, 0)

	assert.Contains(t, view, "bold")
	assert.NotContains(t, view, "**")
}
