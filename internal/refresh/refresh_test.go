package refresh

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEmpty(t *testing.T) {
	s, err := Parse("  ")
	require.NoError(t, err)
	assert.Nil(t, s)
	assert.Nil(t, s.Next())
	assert.Equal(t, "", s.String())
	assert.False(t, s.Current(TickMsg{}))
}

func TestParseInvalid(t *testing.T) {
	_, err := Parse("every now and then")
	assert.Error(t, err)
}

func TestDelayEvery(t *testing.T) {
	s, err := Parse("@every 30s")
	require.NoError(t, err)

	from := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, 30*time.Second, s.Delay(from))
	assert.Equal(t, "@every 30s", s.String())
}

func TestDelayStandardExpression(t *testing.T) {
	s, err := Parse("*/5 * * * *")
	require.NoError(t, err)

	from := time.Date(2024, 5, 1, 12, 1, 0, 0, time.UTC)
	assert.Equal(t, 4*time.Minute, s.Delay(from))
}

func TestNextSupersedesEarlierTicks(t *testing.T) {
	s, err := Parse("@every 1m")
	require.NoError(t, err)

	require.NotNil(t, s.Next())
	first := TickMsg{Generation: s.gen}
	require.NotNil(t, s.Next())

	assert.False(t, s.Current(first))
	assert.True(t, s.Current(TickMsg{Generation: s.gen}))
}
