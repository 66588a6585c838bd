package utils_test

import (
	"testing"
	"time"

	"github.com/robalyx/casebot/internal/bot/utils"
	"github.com/stretchr/testify/assert"
)

func TestFormatCooldown(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		duration time.Duration
		want     string
	}{
		{name: "sub second", duration: 200 * time.Millisecond, want: "1 second"},
		{name: "rounds up", duration: 4100 * time.Millisecond, want: "5 seconds"},
		{name: "exact seconds", duration: 30 * time.Second, want: "30 seconds"},
		{name: "one minute", duration: time.Minute, want: "1 minute"},
		{name: "minutes round up", duration: 61 * time.Second, want: "2 minutes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, utils.FormatCooldown(tt.duration))
		})
	}
}
