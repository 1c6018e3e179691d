package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_TTL(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	m := NewMemory()
	m.now = func() time.Time { return now }

	require.NoError(t, m.Set(ctx, "rdv:list:a", []byte("x"), 5*time.Minute))

	v, ok, err := m.Get(ctx, "rdv:list:a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("x"), v)

	now = now.Add(5 * time.Minute)
	_, ok, _ = m.Get(ctx, "rdv:list:a")
	assert.False(t, ok)

	m.sweep()
	assert.Equal(t, 0, m.Len())
}

func TestMemory_InvalidatePrefix(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	_ = m.Set(ctx, "rdv:list:a", []byte("1"), time.Minute)
	_ = m.Set(ctx, "rdv:list:b", []byte("2"), time.Minute)
	_ = m.Set(ctx, "other", []byte("3"), time.Minute)

	require.NoError(t, m.Invalidate(ctx, "rdv:list:"))

	assert.Equal(t, 1, m.Len())
	_, ok, _ := m.Get(ctx, "other")
	assert.True(t, ok)
}

func TestMemory_StartStop(t *testing.T) {
	m := NewMemory()
	m.Start(time.Millisecond)
	m.Start(time.Millisecond)

	assert.NotPanics(t, func() {
		m.Stop()
		m.Stop()
	})
}
