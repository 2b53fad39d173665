package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name     string
		duration time.Duration
		expected string
	}{
		{"zero", 0, "0 seconds"},
		{"one second", time.Second, "1 second"},
		{"fractional is truncated", 1900 * time.Millisecond, "1 second"},
		{"two seconds", 2 * time.Second, "2 seconds"},
		{"59 seconds", 59 * time.Second, "59 seconds"},
		{"one minute", time.Minute, "1 minute 0 seconds"},
		{"one minute one second", 61 * time.Second, "1 minute 1 second"},
		{"two minutes", 2*time.Minute + 30*time.Second, "2 minutes 30 seconds"},
		{"hour is still minutes", time.Hour + time.Second, "60 minutes 1 second"},
		{"negative clamps", -5 * time.Second, "0 seconds"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatDuration(tt.duration))
		})
	}
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		name     string
		bytes    int64
		expected string
	}{
		{"zero", 0, "0.0 B"},
		{"bytes", 512, "512.0 B"},
		{"just below KB", 1023, "1023.0 B"},
		{"one KB", 1024, "1.0 KB"},
		{"one and a half KB", 1536, "1.5 KB"},
		{"one MB", 1024 * 1024, "1.0 MB"},
		{"API ceiling", 25 * 1024 * 1024, "25.0 MB"},
		{"one GB", 1024 * 1024 * 1024, "1.0 GB"},
		{"one TB", 1024 * 1024 * 1024 * 1024, "1.0 TB"},
		{"beyond TB", 2048 * 1024 * 1024 * 1024 * 1024, "2048.0 TB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatSize(tt.bytes))
		})
	}
}
