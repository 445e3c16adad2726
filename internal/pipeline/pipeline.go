package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/metar-etl-service/internal/metar"
	"github.com/couchcryptid/metar-etl-service/internal/observability"
)

// Extractor fetches raw observation rows covering a time window.
type Extractor interface {
	Extract(ctx context.Context, from, to time.Time) ([]metar.RawRow, error)
}

// Transformer converts raw rows into typed observations.
type Transformer interface {
	Transform(ctx context.Context, rows []metar.RawRow) ([]metar.Observation, error)
}

// Loader writes observations to the destination.
type Loader interface {
	Load(ctx context.Context, observations []metar.Observation) error
}

// Pipeline orchestrates the periodic fetch-format-publish loop.
type Pipeline struct {
	extractor   Extractor
	transformer Transformer
	loader      Loader
	logger      *slog.Logger
	metrics     *observability.Metrics
	ready       atomic.Bool
	interval    time.Duration
	lookback    time.Duration
}

// New creates a Pipeline with the given stages and observability.
func New(e Extractor, t Transformer, l Loader, logger *slog.Logger, metrics *observability.Metrics, interval, lookback time.Duration) *Pipeline {
	return &Pipeline{
		extractor:   e,
		transformer: t,
		loader:      l,
		logger:      logger,
		metrics:     metrics,
		interval:    interval,
		lookback:    lookback,
	}
}

// CheckReadiness returns nil once the pipeline has completed at least one
// successful poll cycle, or an error describing why the service is not ready.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("pipeline has not completed a poll cycle yet")
	}
	return nil
}

// Run executes the poll loop until the context is cancelled.
func (p *Pipeline) Run(ctx context.Context) error {
	p.logger.Info("pipeline started", "interval", p.interval, "lookback", p.lookback)
	p.metrics.PipelineRunning.Set(1)
	defer p.metrics.PipelineRunning.Set(0)

	// Exponential backoff: start at 200ms, double each retry, cap at 5s.
	// Failed cycles retry on the backoff schedule instead of waiting a full
	// poll interval.
	backoff := 200 * time.Millisecond
	maxBackoff := 5 * time.Second

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("pipeline stopping", "reason", ctx.Err())
			return nil
		default:
		}

		if err := p.runCycle(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			p.logger.Error("poll cycle failed", "error", err)
			if !p.backoffOrStop(ctx, &backoff, maxBackoff) {
				return nil
			}
			continue
		}

		backoff = 200 * time.Millisecond
		if !sleepWithContext(ctx, p.interval) {
			return nil
		}
	}
}

// runCycle executes one fetch-format-publish cycle over the lookback window
// ending now.
func (p *Pipeline) runCycle(ctx context.Context) error {
	start := time.Now()
	to := start.UTC()
	from := to.Add(-p.lookback)

	rows, err := p.extractor.Extract(ctx, from, to)
	if err != nil {
		p.metrics.FetchErrors.Inc()
		return err
	}

	if len(rows) == 0 {
		p.logger.Debug("no observations in window", "from", from, "to", to)
		p.ready.Store(true)
		return nil
	}

	p.metrics.ObservationsFetched.Add(float64(len(rows)))
	p.metrics.BatchSize.Observe(float64(len(rows)))

	observations, err := p.transformer.Transform(ctx, rows)
	if err != nil {
		p.metrics.FormatErrors.Inc()
		return err
	}

	if err := p.loader.Load(ctx, observations); err != nil {
		return err
	}

	p.metrics.ObservationsPublished.Add(float64(len(observations)))
	p.metrics.CycleDuration.Observe(time.Since(start).Seconds())
	p.ready.Store(true)

	p.logger.Info("poll cycle complete",
		"rows", len(rows),
		"observations", len(observations),
		"duration", time.Since(start))
	return nil
}

// backoffOrStop checks for context cancellation, sleeps with the current backoff,
// and advances the backoff. Returns false if the pipeline should stop.
func (p *Pipeline) backoffOrStop(ctx context.Context, backoff *time.Duration, maxBackoff time.Duration) bool {
	if ctx.Err() != nil {
		return false
	}
	if !sleepWithContext(ctx, *backoff) {
		return false
	}
	*backoff = nextBackoff(*backoff, maxBackoff)
	return true
}

func nextBackoff(current, maxBackoff time.Duration) time.Duration {
	next := current * 2
	if next > maxBackoff {
		return maxBackoff
	}
	return next
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
