package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocation_Fallback(t *testing.T) {
	assert.Equal(t, DefaultTimezone, Location("Mars/Olympus").String())
	assert.Equal(t, "UTC", Location("UTC").String())
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-02-28")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.February, 28, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseDate("28/02/2026")
	assert.Error(t, err)
}

func TestAt(t *testing.T) {
	paris := Location("Europe/Paris")
	day := time.Date(2026, time.July, 14, 0, 0, 0, 0, time.UTC)

	at, err := At(day, "14:05", paris)
	require.NoError(t, err)
	assert.Equal(t, 14, at.Hour())
	assert.Equal(t, 5, at.Minute())
	assert.Equal(t, paris, at.Location())

	_, err = At(day, "25:00", paris)
	assert.Error(t, err)
}

func TestClock_ReadsInLocation(t *testing.T) {
	ny := Location("America/New_York")

	assert.Equal(t, ny, Clock(ny)().Location())
	assert.Equal(t, DefaultTimezone, Clock(nil)().Location().String())
}
