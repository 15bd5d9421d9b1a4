package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"usergrid/internal/format"
	"usergrid/internal/model"
)

// PostsPanel renders a user's posts as the popover dialog body.
type PostsPanel struct {
	formatter *format.Formatter
	styles    Styles
	width     int
	markdown  *glamour.TermRenderer
}

// NewPostsPanel builds a panel renderer. With markdown set, post content is
// rendered through glamour; a renderer that fails to build falls back to
// plain wrapped text.
func NewPostsPanel(f *format.Formatter, styles Styles, width int, markdown bool) *PostsPanel {
	p := &PostsPanel{formatter: f, styles: styles, width: width}
	if markdown {
		style := "light"
		if styles.Theme.IsDark {
			style = "dark"
		}
		r, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(width),
		)
		if err == nil {
			p.markdown = r
		}
	}
	return p
}

// Render draws the panel for posts. maxHeight <= 0 means unbounded.
func (p *PostsPanel) Render(posts []model.Post, maxHeight int) string {
	var sb strings.Builder
	sb.WriteString(p.styles.Title.Render(fmt.Sprintf("Posts (%d)", len(posts))))

	text := lipgloss.NewStyle().Width(p.width)
	for _, post := range posts {
		sb.WriteString("\n\n")
		sb.WriteString(p.styles.Bold.Render(text.Render(model.Deref(post.Title))))
		if ts := p.timestamp(post.CreatedAt); ts != "" {
			sb.WriteString("\n")
			sb.WriteString(p.styles.Muted.Render(ts))
		}
		if content := model.Deref(post.Content); content != "" {
			sb.WriteString("\n")
			sb.WriteString(p.content(content, text))
		}
	}

	box := p.styles.Popover.Width(p.width + 2)
	if maxHeight > 0 {
		box = box.MaxHeight(maxHeight)
	}
	return box.Render(sb.String())
}

// timestamp localizes an ISO creation time. A bare date is taken as UTC
// midnight; other strings are shown as sent.
func (p *PostsPanel) timestamp(s *string) string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return ""
	}
	raw := strings.TrimSpace(*s)
	if t, ok := p.formatter.Timestamp(raw); ok {
		return p.formatter.Time(t)
	}
	if t, err := time.Parse(time.DateOnly, raw); err == nil {
		return p.formatter.Time(t)
	}
	return raw
}

func (p *PostsPanel) content(s string, text lipgloss.Style) string {
	if p.markdown != nil {
		if out, err := p.markdown.Render(s); err == nil {
			return strings.Trim(out, "\n")
		}
	}
	return p.styles.Body.Render(text.Render(s))
}
