package logging_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/isawnyu/pleiades-wikidata/pkg/logging"
)

func TestDefaultLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := zerolog.New(buf).Level(zerolog.DebugLevel).With().Timestamp().Logger()
	logging.SetDefault(logger)

	logging.Debug().Msg("debug message")
	logging.Info().Msg("info message")
	logging.Warn().Msg("warning message")
	logging.Error().Msg("error message")

	output := buf.String()
	if !strings.Contains(output, "info message") {
		t.Errorf("Expected info message in output, got: %s", output)
	}
}

func TestContextLogger(t *testing.T) {
	testLogger := logging.NewTestLogger(t)

	ctx := logging.WithLogger(context.Background(), testLogger.Logger)
	ctx = logging.WithDataset(ctx, "wd2all.csv")
	ctx = logging.WithGazetteer(ctx, "geonames")

	logging.Ctx(ctx).Info().Msg("test message")

	testLogger.AssertContains(t, "wd2all.csv")
	testLogger.AssertContains(t, "geonames")
	testLogger.AssertContains(t, "test message")
}

func TestFromContextFallsBack(t *testing.T) {
	if logging.FromContext(context.Background()) != logging.Default() {
		t.Error("Expected default logger for plain context")
	}
	if logging.FromContext(nil) != logging.Default() { //nolint:staticcheck // nil fallback is the behavior under test
		t.Error("Expected default logger for nil context")
	}
}

func TestConfiguration(t *testing.T) {
	configs := []struct {
		name   string
		config *logging.Config
		check  func(t *testing.T, output string)
	}{
		{
			name: "debug level",
			config: &logging.Config{
				Level:  "debug",
				Format: "json",
			},
			check: func(t *testing.T, output string) {
				if !strings.Contains(output, `"level":"debug"`) {
					t.Errorf("Expected debug level in output")
				}
			},
		},
		{
			name: "error level only",
			config: &logging.Config{
				Level:  "error",
				Format: "json",
			},
			check: func(t *testing.T, output string) {
				if strings.Contains(output, `"level":"info"`) {
					t.Errorf("Should not contain info level when set to error")
				}
			},
		},
	}

	for _, tc := range configs {
		t.Run(tc.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := logging.NewLoggerFromConfig(tc.config)
			logger = logger.Output(buf)

			logger.Debug().Msg("debug entry")
			logger.Info().Msg("info entry")
			logger.Error().Msg("error entry")

			tc.check(t, buf.String())
		})
	}
}

func TestConsoleFormatIsHumanReadable(t *testing.T) {
	buf := &bytes.Buffer{}
	cfg := &logging.Config{Level: "info", Format: "json"}
	logger := logging.NewLoggerFromConfig(cfg).Output(zerolog.ConsoleWriter{Out: buf, NoColor: true})

	logger.Info().Str("path", "data/wd2all.csv").Msg("loaded export")

	output := buf.String()
	if strings.Contains(output, `"path"`) {
		t.Errorf("Console output should not be JSON, got: %s", output)
	}
	if !strings.Contains(output, "loaded export") {
		t.Errorf("Expected message in console output, got: %s", output)
	}
}
