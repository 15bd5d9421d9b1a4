package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	_, ok := m.Get(ctx, "k")
	assert.False(t, ok)

	m.Set(ctx, "k", []byte("v"), time.Minute)
	got, ok := m.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, []byte("v"), got)

	got[0] = 'x'
	again, _ := m.Get(ctx, "k")
	assert.Equal(t, []byte("v"), again, "callers get copies")

	m.Delete(ctx, "k")
	_, ok = m.Get(ctx, "k")
	assert.False(t, ok)
}

func TestMemory_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	m := NewMemory()
	m.now = func() time.Time { return now }

	m.Set(ctx, "short", []byte("1"), time.Second)
	m.Set(ctx, "forever", []byte("2"), 0)

	now = now.Add(2 * time.Second)

	_, ok := m.Get(ctx, "short")
	assert.False(t, ok)
	_, ok = m.Get(ctx, "forever")
	assert.True(t, ok)
	assert.Equal(t, 1, m.Len())
}

func TestNew(t *testing.T) {
	c, err := New(Options{})
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, c)

	c, err = New(Options{Backend: BackendNone})
	require.NoError(t, err)
	assert.Nil(t, c)

	c, err = New(Options{Backend: BackendRedis, RedisAddr: "127.0.0.1:0"})
	require.NoError(t, err)
	r, ok := c.(*Redis)
	require.True(t, ok)
	assert.Equal(t, "usergrid:", r.prefix)
	require.NoError(t, r.Close())

	_, err = New(Options{Backend: "memcached"})
	assert.Error(t, err)
}

func TestRedis_NilIsSafe(t *testing.T) {
	var r *Redis
	ctx := context.Background()
	_, ok := r.Get(ctx, "k")
	assert.False(t, ok)
	r.Set(ctx, "k", []byte("v"), time.Second)
	r.Delete(ctx, "k")
	assert.NoError(t, r.Close())
}
