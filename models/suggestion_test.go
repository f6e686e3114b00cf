package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDurationHours(t *testing.T) {
	start := time.Date(2026, 9, 5, 10, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		end  time.Time
		want float64
	}{
		{"two hours", start.Add(2 * time.Hour), 2.0},
		{"ninety minutes", start.Add(90 * time.Minute), 1.5},
		{"hundred minutes rounds up", start.Add(100 * time.Minute), 1.67},
		{"eighty minutes rounds down", start.Add(80 * time.Minute), 1.33},
		{"zero length", start, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DurationHours(start, tc.end))
		})
	}
}
