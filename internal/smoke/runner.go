package smoke

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/multimodal/pkg/logger"
)

// Run executes the check suite cfg.Rounds times with cfg.Workers workers
// and fails when any check fails.
func Run(ctx context.Context, cfg *Config) (*Stats, error) {
	stats := &Stats{
		StartTime: time.Now(),
	}
	rounds := max(cfg.Rounds, 1)
	workers := max(cfg.Workers, 1)

	log := logger.Named("smoke")
	log.Info(ctx, "starting multimodal smoke test",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("rounds", rounds),
		logger.Int("workers", workers),
		logger.String("timeout", cfg.Timeout.String()),
		logger.Any("verbose", cfg.Verbose))

	client := newHTTPClient(cfg.BaseURL, cfg.Timeout)

	// The service must be reachable before anything else is worth trying.
	if err := checkHealth(ctx, client); err != nil {
		return stats, fmt.Errorf("service health check failed: %w", err)
	}

	var (
		run    int64
		passed int64
		failed int64
	)

	checks := Checks()
	jobs := make(chan Check, workers*WorkerChannelMultiplier)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for check := range jobs {
				start := time.Now()
				err := check.Run(ctx, client)
				atomic.AddInt64(&run, 1)
				if err != nil {
					atomic.AddInt64(&failed, 1)
					log.Error(ctx, "check failed",
						logger.String("check", check.Name),
						logger.Duration("latency", time.Since(start)),
						logger.Error(err))
					continue
				}
				atomic.AddInt64(&passed, 1)
				log.Debug(ctx, "check passed",
					logger.String("check", check.Name),
					logger.Duration("latency", time.Since(start)))
			}
		}()
	}

	go func() {
		defer close(jobs)
		for r := 0; r < rounds; r++ {
			for _, check := range checks {
				select {
				case <-ctx.Done():
					return
				case jobs <- check:
				}
			}
		}
	}()

	wg.Wait()

	stats.ChecksRun = int(atomic.LoadInt64(&run))
	stats.ChecksPassed = int(atomic.LoadInt64(&passed))
	stats.ChecksFailed = int(atomic.LoadInt64(&failed))
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	displayFinalStats(ctx, log, stats)

	if err := ctx.Err(); err != nil {
		return stats, fmt.Errorf("smoke test interrupted: %w", err)
	}
	if stats.ChecksFailed > 0 {
		return stats, fmt.Errorf("%w: %d of %d checks", ErrCheckFailed, stats.ChecksFailed, stats.ChecksRun)
	}
	log.Info(ctx, "smoke test completed successfully")
	return stats, nil
}

// displayFinalStats logs the final run statistics.
func displayFinalStats(ctx context.Context, log logger.Logger, stats *Stats) {
	var successRate, checksPerSecond float64

	if stats.ChecksRun > 0 {
		successRate = float64(stats.ChecksPassed) / float64(stats.ChecksRun) * PercentageMultiplier
	}
	if stats.Duration > 0 {
		checksPerSecond = float64(stats.ChecksRun) / stats.Duration.Seconds()
	}

	log.Info(ctx, "final statistics",
		logger.Int("checksRun", stats.ChecksRun),
		logger.Int("checksPassed", stats.ChecksPassed),
		logger.Int("checksFailed", stats.ChecksFailed),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("successRate", successRate),
		logger.Float64("checksPerSecond", checksPerSecond))
}
