package config

import "time"

// UIConfig holds grid and popover configuration.
type UIConfig struct {
	// Locale is a BCP 47 tag used for numbers and dates ("en-US", "de").
	Locale string `yaml:"locale"`

	// Timezone is an IANA zone for timestamps; empty means the local zone.
	Timezone string `yaml:"timezone,omitempty"`

	// MaxCellLength is the rune limit before a cell is truncated with an ellipsis.
	MaxCellLength int `yaml:"max_cell_length"`

	// HoverCloseDelay is how long a hover-opened popover lingers after the
	// pointer leaves.
	HoverCloseDelay string `yaml:"hover_close_delay"`

	// SearchDebounce delays refetching while the user types.
	SearchDebounce string `yaml:"search_debounce"`

	// RenderMarkdown renders post content with glamour in the popover.
	RenderMarkdown bool `yaml:"render_markdown"`

	// Theme is "dark", "light" or "auto".
	Theme string `yaml:"theme"`
}

// DefaultUIConfig returns sensible UI defaults.
func DefaultUIConfig() *UIConfig {
	return &UIConfig{
		Locale:          "en-US",
		MaxCellLength:   80,
		HoverCloseDelay: "200ms",
		SearchDebounce:  "250ms",
		Theme:           "auto",
	}
}

// GetHoverCloseDelay returns the hover close delay as a duration.
func (u *UIConfig) GetHoverCloseDelay() time.Duration {
	return parseDuration(u.HoverCloseDelay, 200*time.Millisecond)
}

// GetSearchDebounce returns the search debounce as a duration.
func (u *UIConfig) GetSearchDebounce() time.Duration {
	return parseDuration(u.SearchDebounce, 250*time.Millisecond)
}

// GetLocation resolves Timezone, falling back to time.Local.
func (u *UIConfig) GetLocation() *time.Location {
	if u.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(u.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}
