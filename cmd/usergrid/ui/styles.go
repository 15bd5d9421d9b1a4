// Package ui implements the interactive users grid: search box, fetch states,
// the grid layout and the per-row posts popovers.
package ui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	// Light Mode Colors (Default)
	LightForeground = lipgloss.Color("#101F38")
	LightPrimary    = lipgloss.Color("#101F38")
	LightAccent     = lipgloss.Color("#2563eb")
	LightSecondary  = lipgloss.Color("#f3f4f6")
	LightMuted      = lipgloss.Color("#6b7280")
	LightBorder     = lipgloss.Color("#d1d5db")

	// Dark Mode Colors
	DarkForeground = lipgloss.Color("#f2f2f2")
	DarkPrimary    = lipgloss.Color("#93c5fd")
	DarkAccent     = lipgloss.Color("#60a5fa")
	DarkSecondary  = lipgloss.Color("#1e2a3d")
	DarkMuted      = lipgloss.Color("#9ca3af")
	DarkBorder     = lipgloss.Color("#2a3850")

	// Semantic Colors (same in both modes)
	Destructive = lipgloss.Color("#e53935")
	Warning     = lipgloss.Color("#FFC107")
)

// Theme holds the current color scheme
type Theme struct {
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Secondary  lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	IsDark     bool
}

// LightTheme returns the light mode theme
func LightTheme() Theme {
	return Theme{
		Foreground: LightForeground,
		Primary:    LightPrimary,
		Accent:     LightAccent,
		Secondary:  LightSecondary,
		Muted:      LightMuted,
		Border:     LightBorder,
	}
}

// DarkTheme returns the dark mode theme
func DarkTheme() Theme {
	return Theme{
		Foreground: DarkForeground,
		Primary:    DarkPrimary,
		Accent:     DarkAccent,
		Secondary:  DarkSecondary,
		Muted:      DarkMuted,
		Border:     DarkBorder,
		IsDark:     true,
	}
}

// ThemeFor resolves a configured theme name. "auto" and unknown names detect
// from the terminal.
func ThemeFor(name string) Theme {
	switch strings.ToLower(name) {
	case "dark":
		return DarkTheme()
	case "light":
		return LightTheme()
	default:
		return DetectTheme()
	}
}

// DetectTheme auto-detects based on terminal or returns light mode
func DetectTheme() Theme {
	// COLORFGBG is "foreground;background"; ANSI 0-6 and 8 are dark backgrounds.
	if colorTerm := os.Getenv("COLORFGBG"); colorTerm != "" {
		parts := strings.Split(colorTerm, ";")
		if len(parts) == 2 {
			if bgIdx, err := strconv.Atoi(parts[1]); err == nil {
				if (bgIdx >= 0 && bgIdx <= 6) || bgIdx == 8 {
					return DarkTheme()
				}
			}
		}
	}

	if os.Getenv("USERGRID_DARK_MODE") == "1" {
		return DarkTheme()
	}

	return LightTheme()
}

// Styles holds all the styled components
type Styles struct {
	Theme Theme

	// Layout
	Header lipgloss.Style
	Status lipgloss.Style

	// Text
	Title lipgloss.Style
	Body  lipgloss.Style
	Muted lipgloss.Style
	Bold  lipgloss.Style
	Error lipgloss.Style

	// Grid
	GridHeader lipgloss.Style
	GridFooter lipgloss.Style
	Cursor     lipgloss.Style
	Separator  lipgloss.Style
	PostsCell  lipgloss.Style
	PostsOpen  lipgloss.Style

	// Components
	Search        lipgloss.Style
	SearchFocused lipgloss.Style
	Popover       lipgloss.Style
	Spinner       lipgloss.Style
}

// NewStyles creates a new Styles instance with the given theme
func NewStyles(theme Theme) Styles {
	search := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)

	return Styles{
		Theme: theme,

		Header: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),

		Status: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Title: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),

		Body: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Bold: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(Destructive).
			Bold(true),

		GridHeader: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Bold(true),

		GridFooter: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Bold(true),

		Cursor: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Background(theme.Secondary),

		Separator: lipgloss.NewStyle().
			Foreground(theme.Border),

		PostsCell: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Underline(true),

		PostsOpen: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true).
			Reverse(true),

		Search: search,

		SearchFocused: search.BorderForeground(theme.Accent),

		Popover: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		Spinner: lipgloss.NewStyle().
			Foreground(theme.Accent),
	}
}

// DefaultStyles returns styles with the detected theme
func DefaultStyles() Styles {
	return NewStyles(DetectTheme())
}

// PlainStyles renders without colors or attributes, for piped output.
func PlainStyles() Styles {
	plain := lipgloss.NewStyle()
	return Styles{
		Header:        plain,
		Status:        plain,
		Title:         plain,
		Body:          plain,
		Muted:         plain,
		Bold:          plain,
		Error:         plain,
		GridHeader:    plain,
		GridFooter:    plain,
		Cursor:        plain,
		Separator:     plain,
		PostsCell:     plain,
		PostsOpen:     plain,
		Search:        plain,
		SearchFocused: plain,
		Popover:       plain.Border(lipgloss.NormalBorder()).Padding(0, 1),
		Spinner:       plain,
	}
}
