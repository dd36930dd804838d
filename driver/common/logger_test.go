package common

import (
	"testing"

	"github.com/lni/dragonboat/v4/logger"
)

func TestParseLogLevel(t *testing.T) {
	t.Run("KnownLevels", func(t *testing.T) {
		cases := map[string]logger.LogLevel{
			"debug":   logger.DEBUG,
			"info":    logger.INFO,
			"warn":    logger.WARNING,
			"warning": logger.WARNING,
			"error":   logger.ERROR,
			"ERROR":   logger.ERROR,
		}

		for input, want := range cases {
			level, err := parseLogLevel(input)
			if err != nil {
				t.Errorf("parseLogLevel(%q) returned error: %v", input, err)
				continue
			}
			if level != want {
				t.Errorf("parseLogLevel(%q) = %v, want %v", input, level, want)
			}
		}
	})

	t.Run("UnknownLevelIsAnError", func(t *testing.T) {
		if _, err := parseLogLevel("verbose"); err == nil {
			t.Errorf("expected an error for an unknown level")
		}
	})

	t.Run("InitLoggersRejectsUnknownLevel", func(t *testing.T) {
		if err := InitLoggers("loud"); err == nil {
			t.Errorf("expected an error for an unknown level")
		}
	})
}
