package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStartOfWeek(t *testing.T) {
	monday := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		in   time.Time
	}{
		{"monday maps to itself", time.Date(2026, 3, 2, 15, 30, 0, 0, time.UTC)},
		{"wednesday", time.Date(2026, 3, 4, 8, 0, 0, 0, time.UTC)},
		{"sunday belongs to the preceding monday", time.Date(2026, 3, 8, 23, 59, 59, 0, time.UTC)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, monday, StartOfWeek(tc.in))
		})
	}
}

func TestStartOfDay(t *testing.T) {
	in := time.Date(2026, 3, 4, 17, 45, 12, 999, time.UTC)
	assert.Equal(t, time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC), StartOfDay(in))
}

func TestRelativeTime(t *testing.T) {
	ref := time.Date(2026, 3, 8, 18, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		in   time.Time
		want string
	}{
		{"zero time", time.Time{}, ""},
		{"seconds ago", ref.Add(-30 * time.Second), "just now"},
		{"future clamps to now", ref.Add(time.Hour), "just now"},
		{"one minute", ref.Add(-time.Minute), "1 minute ago"},
		{"minutes", ref.Add(-45 * time.Minute), "45 minutes ago"},
		{"one hour", ref.Add(-90 * time.Minute), "1 hour ago"},
		{"hours", ref.Add(-5 * time.Hour), "5 hours ago"},
		{"one day", ref.Add(-25 * time.Hour), "1 day ago"},
		{"days", ref.AddDate(0, 0, -6), "6 days ago"},
		{"months", ref.AddDate(0, 0, -65), "2 months ago"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, RelativeTime(tc.in, ref))
		})
	}
}
