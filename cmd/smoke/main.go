package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/okian/multimodal/internal/smoke"
)

const defaultRunTimeout = 10 * time.Minute

func main() {
	var (
		baseURL = flag.String("url", "http://localhost:8000", "Base URL of the service")
		rounds  = flag.Int("rounds", smoke.DefaultRounds, "Number of times the check suite is run")
		workers = flag.Int("workers", smoke.DefaultWorkers, "Number of concurrent workers")
		timeout = flag.Duration("timeout", smoke.DefaultTimeout, "HTTP request timeout")
		logFile = flag.String("log", "", "Also write log output to this file")
		verbose = flag.Bool("verbose", false, "Log every passing check")
		help    = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		smoke.ShowHelp()
		return
	}

	closeLog, err := smoke.SetupLogging(*logFile, *verbose)
	if err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = closeLog() }()

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	cfg := &smoke.Config{
		BaseURL: *baseURL,
		Rounds:  *rounds,
		Workers: *workers,
		Timeout: *timeout,
		LogFile: *logFile,
		Verbose: *verbose,
	}

	if _, err := smoke.Run(ctx, cfg); err != nil {
		os.Stderr.WriteString("Smoke test failed: " + err.Error() + "\n")
		_ = closeLog()
		cancel()
		os.Exit(1)
	}
}
