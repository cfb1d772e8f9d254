package store_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SmartBuket/Smart-Buket-Analyticts/internal/store"
)

func TestParseUUID(t *testing.T) {
	u, err := store.ParseUUID("7f0c2a61-9b4e-4f5a-8a3d-2f9d1c0b7e55")
	require.NoError(t, err)
	assert.True(t, u.Valid)

	_, err = store.ParseUUID("not-a-uuid")
	require.Error(t, err)
}

func TestNullHelpers(t *testing.T) {
	assert.False(t, store.TextOrNull("").Valid)
	assert.True(t, store.TextOrNull("x").Valid)

	assert.False(t, store.Float8Ptr(nil).Valid)
	acc := 12.5
	got := store.Float8Ptr(&acc)
	require.True(t, got.Valid)
	assert.Equal(t, 12.5, got.Float64)

	assert.False(t, store.TimestamptzPtr(nil).Valid)
	now := time.Now().UTC()
	assert.True(t, store.TimestamptzPtr(&now).Valid)
	assert.False(t, store.Timestamptz(time.Time{}).Valid)
}
