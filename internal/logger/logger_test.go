package logger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twinssn/blogdex/internal/logger"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name  string
		debug bool
	}{
		{name: "production logger", debug: false},
		{name: "debug logger", debug: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			log, err := logger.NewLogger(tc.debug)
			require.NoError(t, err)
			require.NotNil(t, log)

			// Must not panic.
			log.Debug("debug message", logger.String("k", "v"))
			log.Info("info message", logger.Int("count", 1))
			log.Warn("warn message", logger.Bool("flag", true))
		})
	}
}

func TestWith(t *testing.T) {
	log := logger.NewNopLogger()
	child := log.With(logger.String("service", "blogdex"))
	assert.NotNil(t, child)
	child.Info("message with context")
}

func TestNopLoggerSync(t *testing.T) {
	assert.NoError(t, logger.NewNopLogger().Sync())
}
