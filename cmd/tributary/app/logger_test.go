package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetermineLogLevel(t *testing.T) {
	tests := []struct {
		name   string
		config Config
		env    string
		want   string
	}{
		{"default", Config{}, "", "info"},
		{"explicit log level wins", Config{LogLevel: "error", Verbose: true}, "", "error"},
		{"invalid explicit falls back", Config{LogLevel: "loud"}, "", "info"},
		{"verbose", Config{Verbose: true}, "", "debug"},
		{"quiet", Config{Quiet: true}, "", "warn"},
		{"verbose and quiet prefers quiet", Config{Verbose: true, Quiet: true}, "", "warn"},
		{"env variable", Config{}, "trace", "trace"},
		{"verbose beats env", Config{Verbose: true}, "error", "debug"},
		{"invalid env falls back", Config{}, "shrug", "info"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("LOG_LEVEL", tt.env)
			assert.Equal(t, tt.want, determineLogLevel(&tt.config))
		})
	}
}

func TestNewLoggerAddsCallerAtDebug(t *testing.T) {
	logger := NewLogger(&Config{Verbose: true, LogFormat: "json", LogOutput: "discard"})
	assert.Equal(t, "debug", logger.GetLevel().String())
}
