package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name     string
		d        time.Duration
		expected string
	}{
		{name: "milliseconds", d: 250 * time.Millisecond, expected: "250ms"},
		{name: "seconds", d: 2500 * time.Millisecond, expected: "2.5s"},
		{name: "minutes", d: 95 * time.Second, expected: "1m35s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatDuration(tt.d))
		})
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		name     string
		n        int64
		expected string
	}{
		{name: "bytes", n: 512, expected: "512 B"},
		{name: "kilobytes", n: 2048, expected: "2.0 KB"},
		{name: "megabytes", n: 5 * 1024 * 1024, expected: "5.0 MB"},
		{name: "gigabytes", n: 5 * 1024 * 1024 * 1024, expected: "5.0 GB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatBytes(tt.n))
		})
	}
}

func TestGetSuggestion(t *testing.T) {
	assert.NotEmpty(t, getSuggestion("Authentication failed for user"))
	assert.NotEmpty(t, getSuggestion("No chunk files found"))
	assert.Empty(t, getSuggestion("something else entirely"))
}
