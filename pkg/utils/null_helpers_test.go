package utils

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNullStringToPtr(t *testing.T) {
	got := NullStringToPtr(sql.NullString{String: "бетон", Valid: true})
	require.NotNil(t, got)
	assert.Equal(t, "бетон", *got)

	assert.Nil(t, NullStringToPtr(sql.NullString{}))
}

func TestNullTimeToPtr(t *testing.T) {
	now := time.Now()
	got := NullTimeToPtr(sql.NullTime{Time: now, Valid: true})
	require.NotNil(t, got)
	assert.True(t, got.Equal(now))

	assert.Nil(t, NullTimeToPtr(sql.NullTime{}))
}

func TestNullFloatToPtr(t *testing.T) {
	got := NullFloatToPtr(sql.NullFloat64{Float64: 2.5, Valid: true})
	require.NotNil(t, got)
	assert.Equal(t, 2.5, *got)

	assert.Nil(t, NullFloatToPtr(sql.NullFloat64{}))
}

func TestSafeDeref(t *testing.T) {
	assert.Equal(t, "", SafeDeref[string](nil))
	assert.Equal(t, "значение", SafeDeref(ToPtr("значение")))
	assert.Equal(t, 0, SafeDeref[int](nil))
}
