package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimeAgo(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{"JustNow", now.Add(-30 * time.Second), "just now"},
		{"Minutes", now.Add(-5 * time.Minute), "5m ago"},
		{"Hours", now.Add(-3 * time.Hour), "3h ago"},
		{"Days", now.Add(-49 * time.Hour), "2d ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TimeAgo(tt.t))
		})
	}
}

func TestClockTime(t *testing.T) {
	ts := time.Date(2025, 6, 1, 14, 5, 0, 0, time.UTC)
	assert.Equal(t, "02:05 PM", ClockTime(ts))

	ts = time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)
	assert.Equal(t, "09:30 AM", ClockTime(ts))
}
