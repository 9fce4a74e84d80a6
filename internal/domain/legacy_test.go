package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateLegacyDestination_JapaneseKeys(t *testing.T) {
	d, err := MigrateLegacyDestination(map[string]any{
		"訪問先":  "〇〇株式会社",
		"住所":   "福岡市博多区",
		"滞在時間": "30分",
		"備考":   "受付で名刺",
		"所要時間": "12分",
	})

	require.NoError(t, err)
	assert.Equal(t, "〇〇株式会社", d.Name)
	assert.Equal(t, "福岡市博多区", d.Address)
	assert.Equal(t, 30, d.StayMinutes)
	assert.Equal(t, "受付で名刺", d.Note)
	assert.False(t, d.Pinned())
}

func TestMigrateLegacyDestination_CanonicalKeysWin(t *testing.T) {
	d, err := MigrateLegacyDestination(map[string]any{
		"name":                    "Office B",
		"訪問先":                     "ignored",
		"stay":                    float64(45),
		"pinned_duration_seconds": float64(600),
	})

	require.NoError(t, err)
	assert.Equal(t, "Office B", d.Name)
	assert.Equal(t, 45, d.StayMinutes)
	require.True(t, d.Pinned())
	assert.Equal(t, 600, *d.PinnedDurationSeconds)
}

func TestMigrateLegacyDestination_Rejects(t *testing.T) {
	_, err := MigrateLegacyDestination(map[string]any{"住所": "somewhere"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = MigrateLegacyDestination(map[string]any{"name": "A", "stay": "half an hour"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = MigrateLegacyDestination(map[string]any{"name": 12})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = MigrateLegacyDestination(map[string]any{"name": "A", "stay": 1.5})
	assert.ErrorIs(t, err, ErrValidation)
}
