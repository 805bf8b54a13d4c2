package domain

import (
	"testing"
	"time"

	perr "refstar/internal/platform/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseName(t *testing.T) {
	got, err := ParseName("  Ce\u0301line ", "target")
	require.NoError(t, err)
	assert.Equal(t, "C\u00e9line", got)

	_, err = ParseName(" \t", "star")
	assert.True(t, perr.IsCode(err, perr.ErrorCodeInvalidArgument))
	e, ok := perr.As(err)
	require.True(t, ok)
	assert.Equal(t, "star", e.Field())
}

func TestParseStart(t *testing.T) {
	want := time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)
	for _, s := range []string{"2027-01-01T00:00:00Z", "2027-01-01T00:00:00", "2027-01-01T00:00:00.000", " 2027-01-01 ", "2027-01-01T01:00:00+01:00"} {
		got, err := ParseStart(s)
		require.NoError(t, err, s)
		assert.True(t, got.Equal(want), "%s parsed as %s", s, got)
		assert.Equal(t, time.UTC, got.Location())
	}
	_, err := ParseStart("next tuesday")
	assert.True(t, perr.IsCode(err, perr.ErrorCodeInvalidArgument))
}

func TestParseDuration(t *testing.T) {
	cases := map[string]time.Duration{
		"30d":     30 * 24 * time.Hour,
		"1.5d":    36 * time.Hour,
		"1d12h":   36 * time.Hour,
		"90m":     90 * time.Minute,
		"0s":      0,
		" 2d ":    48 * time.Hour,
		"1d30m5s": 24*time.Hour + 30*time.Minute + 5*time.Second,
	}
	for in, want := range cases {
		got, err := ParseDuration(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	for _, bad := range []string{"", "d", "30 days", "1dx", "-"} {
		_, err := ParseDuration(bad)
		assert.True(t, perr.IsCode(err, perr.ErrorCodeInvalidArgument), bad)
	}
}

func TestWindowInput(t *testing.T) {
	w, err := WindowInput{Start: "2027-01-01T00:00:00", Duration: "30d"}.Window()
	require.NoError(t, err)
	assert.Equal(t, "2027-01-31T00:00:00.000", w.End().Format("2006-01-02T15:04:05.000"))

	_, err = WindowInput{Start: "2027-01-01", Duration: "-1h"}.Window()
	assert.True(t, perr.IsCode(err, perr.ErrorCodeInvalidArgument))
}
