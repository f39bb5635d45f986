package smoke

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/okian/multimodal/pkg/logger"
	"github.com/rs/zerolog"
)

// File permission constants.
const (
	logFilePermission = 0600
)

// SetupLogging initialises the global logger on stdout and, when logFile is
// set, on that file too. Verbose enables per-check debug lines.
func SetupLogging(logFile string, verbose bool) (func() error, error) {
	var out io.Writer = os.Stdout
	closeFn := func() error { return nil }

	if logFile != "" {
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
		if err != nil {
			return nil, fmt.Errorf("failed to create log file: %w", err)
		}
		out = io.MultiWriter(os.Stdout, file)
		closeFn = file.Close
	}

	if err := logger.Init(logger.WithOutput(out)); err != nil {
		_ = closeFn()
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	if verbose {
		logger.SetLevel(zerolog.DebugLevel)
	}
	if logFile != "" {
		logger.Get().Info(context.Background(), "logging to file", logger.String("logFile", logFile))
	}
	return closeFn, nil
}

// ShowHelp prints usage information for the smoke tool.
func ShowHelp() {
	os.Stdout.WriteString(`Multimodal Smoke Test
=====================

Exercises every endpoint of a running Multimodal Input API and verifies the
responses.

Usage:
  go run ./cmd/smoke [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:8000")
  -rounds int
        Number of times the check suite is run (default 1)
  -workers int
        Number of concurrent workers (default 4)
  -timeout duration
        HTTP request timeout (default 30s)
  -log string
        Also write log output to this file
  -verbose
        Log every passing check
  -help
        Show this help message

Examples:
  # Check a local instance
  go run ./cmd/smoke

  # Hammer a remote instance
  go run ./cmd/smoke -url http://api.internal:8000 -rounds 50 -workers 16
`)
}
