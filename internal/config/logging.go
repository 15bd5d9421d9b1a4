package config

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level      string          `yaml:"level"`      // debug, info, warn, error
	File       string          `yaml:"file"`       // empty = <config dir>/logs/usergrid.log
	DebugMode  bool            `yaml:"debug_mode"` // false = no log file at all
	Categories map[string]bool `yaml:"categories"` // per-category toggles
}

// DefaultLoggingConfig returns logging disabled at info level.
func DefaultLoggingConfig() LoggingConfig {
	return LoggingConfig{Level: "info"}
}

// IsCategoryEnabled returns whether logging is enabled for a category.
// Returns false if debug_mode is false.
// Returns true if debug_mode is true and category is enabled (or not specified).
func (c *LoggingConfig) IsCategoryEnabled(category string) bool {
	if !c.DebugMode {
		return false
	}
	if c.Categories == nil {
		return true
	}
	enabled, exists := c.Categories[category]
	if !exists {
		return true
	}
	return enabled
}
