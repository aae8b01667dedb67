package util

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"barbershop/internal/errors"
)

// Parse failure reasons returned by ParseFlexibleTime.
var (
	// ErrTimeMissing means the raw value was absent or empty.
	ErrTimeMissing = errors.New("start time is missing")
	// ErrTimeMalformed means no parser in the fallback chain accepted the value.
	ErrTimeMalformed = errors.New("start time is malformed")
)

// Epoch values at or above this are treated as milliseconds. The cutoff
// (year 2255 in seconds, 1970-04 in milliseconds) is unambiguous for any
// plausible booking date.
const epochMillisCutoff = 1e11

var flexibleLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseFlexibleTime converts a raw JSON value into a UTC instant. It
// accepts an RFC3339(-ish) string or an epoch number in seconds or
// milliseconds, replacing the original chain of ad-hoc fallbacks with a
// single typed parse that names its failure reason.
func ParseFlexibleTime(raw json.RawMessage) (time.Time, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return time.Time{}, ErrTimeMissing
	}

	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		return parseTimeString(asString)
	}

	var asNumber float64
	if err := json.Unmarshal(raw, &asNumber); err == nil {
		return parseEpoch(asNumber)
	}

	return time.Time{}, errors.Wrapf(ErrTimeMalformed, "unsupported JSON value %s", string(raw))
}

// ParseTimeString parses a bare string through the same fallback chain.
func ParseTimeString(value string) (time.Time, error) {
	return parseTimeString(value)
}

func parseTimeString(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, ErrTimeMissing
	}

	for _, layout := range flexibleLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed.UTC(), nil
		}
	}

	// Bare epoch delivered as a string.
	if epoch, err := strconv.ParseFloat(value, 64); err == nil {
		return parseEpoch(epoch)
	}

	return time.Time{}, errors.Wrapf(ErrTimeMalformed, "unparseable time string %q", value)
}

func parseEpoch(value float64) (time.Time, error) {
	if value <= 0 {
		return time.Time{}, errors.Wrapf(ErrTimeMalformed, "non-positive epoch %v", value)
	}

	millis := int64(value)
	if value < epochMillisCutoff {
		millis = int64(value * 1000)
	}

	return time.UnixMilli(millis).UTC(), nil
}
