package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"usergrid/internal/config"
)

func TestDebugModeDisabled(t *testing.T) {
	t.Cleanup(Sync)
	dir := t.TempDir()

	require.NoError(t, Initialize(config.LoggingConfig{Level: "debug"}, dir))
	Get(CategoryAPI).Info("should not be written")

	assert.False(t, IsDebugMode())
	assert.Empty(t, Path())
	_, err := os.Stat(filepath.Join(dir, "logs"))
	assert.True(t, os.IsNotExist(err), "logs directory must not be created in production mode")
}

func TestAllCategoriesLog(t *testing.T) {
	t.Cleanup(Sync)
	dir := t.TempDir()

	require.NoError(t, Initialize(config.LoggingConfig{Level: "debug", DebugMode: true}, dir))

	cats := []Category{CategoryBoot, CategoryAPI, CategoryCache, CategoryUI, CategoryFixture, CategoryRefresh}
	for _, c := range cats {
		Get(c).Info("hello from " + string(c))
	}
	path := Path()
	Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	for _, c := range cats {
		assert.Contains(t, string(data), `"logger":"`+string(c)+`"`)
	}
}

func TestCategoryToggle(t *testing.T) {
	t.Cleanup(Sync)
	dir := t.TempDir()

	lc := config.LoggingConfig{
		Level:      "info",
		DebugMode:  true,
		Categories: map[string]bool{"api": true, "ui": false},
	}
	require.NoError(t, Initialize(lc, dir))

	Get(CategoryAPI).Info("api line")
	Get(CategoryUI).Info("ui line")
	Get(CategoryCache).Debug("below level")
	path := Path()
	Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "api line")
	assert.NotContains(t, text, "ui line")
	assert.NotContains(t, text, "below level")
}

func TestExplicitFile(t *testing.T) {
	t.Cleanup(Sync)
	path := filepath.Join(t.TempDir(), "custom", "grid.log")

	require.NoError(t, Initialize(config.LoggingConfig{DebugMode: true, File: path}, ""))
	assert.Equal(t, path, Path())
	Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "logging initialized"))
}

func TestInitializeRequiresDir(t *testing.T) {
	t.Cleanup(Sync)
	assert.Error(t, Initialize(config.LoggingConfig{DebugMode: true}, ""))
}
