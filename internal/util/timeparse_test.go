package util

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlexibleTime_RFC3339String(t *testing.T) {
	got, err := ParseFlexibleTime(json.RawMessage(`"2024-06-01T10:00:00Z"`))
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC), got)
}

func TestParseFlexibleTime_NanoAndOffset(t *testing.T) {
	got, err := ParseFlexibleTime(json.RawMessage(`"2024-06-01T12:30:00.500+02:00"`))
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 1, 10, 30, 0, 500_000_000, time.UTC), got)
}

func TestParseFlexibleTime_EpochSeconds(t *testing.T) {
	got, err := ParseFlexibleTime(json.RawMessage(`1717236000`))
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC), got)
}

func TestParseFlexibleTime_EpochMillis(t *testing.T) {
	got, err := ParseFlexibleTime(json.RawMessage(`1717236000000`))
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC), got)
}

func TestParseFlexibleTime_EpochString(t *testing.T) {
	got, err := ParseFlexibleTime(json.RawMessage(`"1717236000"`))
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC), got)
}

func TestParseFlexibleTime_Missing(t *testing.T) {
	for _, raw := range []json.RawMessage{nil, json.RawMessage(`null`), json.RawMessage(`""`)} {
		_, err := ParseFlexibleTime(raw)
		assert.ErrorIs(t, err, ErrTimeMissing)
	}
}

func TestParseFlexibleTime_Malformed(t *testing.T) {
	for _, raw := range []json.RawMessage{
		json.RawMessage(`"not a date"`),
		json.RawMessage(`-5`),
		json.RawMessage(`{"nested":true}`),
	} {
		_, err := ParseFlexibleTime(raw)
		assert.ErrorIs(t, err, ErrTimeMalformed)
	}
}

func TestParseTimeString_DateOnly(t *testing.T) {
	got, err := ParseTimeString("2024-06-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), got)
}
