package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveLocation(t *testing.T) {
	t.Run("explicit name", func(t *testing.T) {
		loc, err := ResolveLocation("Asia/Kolkata", 0, 0)
		require.NoError(t, err)
		assert.Equal(t, "Asia/Kolkata", loc.String())
	})

	t.Run("name wins over coordinates", func(t *testing.T) {
		loc, err := ResolveLocation("UTC", 40.7128, -74.0060)
		require.NoError(t, err)
		assert.Equal(t, "UTC", loc.String())
	})

	t.Run("coordinates", func(t *testing.T) {
		loc, err := ResolveLocation("", 28.6139, 77.2090)
		require.NoError(t, err)
		assert.Equal(t, "Asia/Kolkata", loc.String())
	})

	t.Run("nothing configured", func(t *testing.T) {
		_, err := ResolveLocation(" ", 0, 0)
		assert.ErrorIs(t, err, ErrNoTimezone)
	})

	t.Run("unknown zone", func(t *testing.T) {
		_, err := ResolveLocation("Mars/Olympus", 0, 0)
		assert.Error(t, err)
	})
}
