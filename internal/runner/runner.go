package runner

import (
	"context"
	"log/slog"
	"time"

	"github.com/dmarrero/whalewatch/internal/dedup"
	"github.com/dmarrero/whalewatch/internal/filter"
	"github.com/dmarrero/whalewatch/internal/metrics"
	"github.com/dmarrero/whalewatch/internal/model"
	"github.com/dmarrero/whalewatch/internal/price"
	"github.com/dmarrero/whalewatch/internal/sink"
	"github.com/dmarrero/whalewatch/internal/source"
)

// Config holds poll loop timing.
type Config struct {
	Interval   time.Duration // sleep between cycles
	Pacing     time.Duration // fixed wait between adapter calls within a cycle
	AllowedLag time.Duration // accept events up to this long before start
	Once       bool          // run exactly one cycle then return
}

// Pipeline owns the dedup store and threshold rules for the process
// lifetime and drives every poll cycle.
type Pipeline struct {
	cfg      Config
	adapters []source.Adapter
	rules    *filter.Rules
	cache    *dedup.Cache
	fanout   *sink.Fanout
	prices   *price.Fetcher // nil disables mark-price enrichment
	logger   *slog.Logger

	startedAt time.Time
	now       func() time.Time
}

// New creates the orchestrator. prices may be nil.
func New(
	cfg Config,
	adapters []source.Adapter,
	rules *filter.Rules,
	cache *dedup.Cache,
	fanout *sink.Fanout,
	prices *price.Fetcher,
	logger *slog.Logger,
) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		cfg:      cfg,
		adapters: adapters,
		rules:    rules,
		cache:    cache,
		fanout:   fanout,
		prices:   prices,
		logger:   logger,
		now:      time.Now,
	}
}

// Run blocks until the context is canceled, or after one cycle in once
// mode. It always returns nil on a clean stop.
func (p *Pipeline) Run(ctx context.Context) error {
	p.startedAt = p.now().UTC()

	p.logger.Info("poll loop started",
		"interval", p.cfg.Interval,
		"pacing", p.cfg.Pacing,
		"allowed_lag", p.cfg.AllowedLag,
		"once", p.cfg.Once,
	)

	for {
		p.runCycle(ctx)

		if p.cfg.Once {
			p.logger.Info("single iteration complete")
			return nil
		}

		select {
		case <-ctx.Done():
			p.logger.Info("poll loop stopped")
			return nil
		case <-time.After(p.cfg.Interval):
		}
	}
}

// runCycle fetches every source and pushes each event through the
// pipeline. Failures are contained per source and per event.
func (p *Pipeline) runCycle(ctx context.Context) {
	start := p.now()
	var fetched, emitted int

	for i, adapter := range p.adapters {
		if i > 0 && p.cfg.Pacing > 0 {
			select {
			case <-ctx.Done():
				return
			case <-time.After(p.cfg.Pacing):
			}
		}

		events, err := adapter.Fetch(ctx)
		if err != nil {
			// This source contributes nothing this cycle; the others
			// still run.
			p.logger.Error("source fetch failed", "source", adapter.Name(), "err", err)
			metrics.FetchErrors.WithLabelValues(adapter.Name()).Inc()
			continue
		}

		fetched += len(events)
		for _, ev := range events {
			if p.process(ctx, ev) {
				emitted++
			}
		}
	}

	elapsed := time.Since(start)
	metrics.CycleDuration.Observe(elapsed.Seconds())

	p.logger.Info("poll cycle complete",
		"events", fetched,
		"alerts", emitted,
		"duration", elapsed,
	)
}

// process runs one event through evaluation, dedup, enrichment and
// delivery. Returns true when the event was emitted.
func (p *Pipeline) process(ctx context.Context, ev model.Event) bool {
	src := ev.Source.String()

	// Events from before process start are backfill, modulo a small
	// server-lag window.
	if ev.OccurredAt.Before(p.startedAt.Add(-p.cfg.AllowedLag)) {
		metrics.EventsSkipped.WithLabelValues(src, metrics.ReasonStale).Inc()
		return false
	}

	if !p.rules.Qualifies(ev) {
		metrics.EventsSkipped.WithLabelValues(src, metrics.ReasonBelowThreshold).Inc()
		return false
	}

	if !p.cache.ShouldEmit(ev.Fingerprint(), p.now().UTC()) {
		p.logger.Debug("duplicate alert suppressed", "fingerprint", ev.Fingerprint())
		metrics.EventsSkipped.WithLabelValues(src, metrics.ReasonDuplicate).Inc()
		return false
	}

	if p.prices != nil {
		if mark, ok := p.prices.Mark(ctx, ev.Asset); ok {
			ev.MarkPrice = mark
		}
	}

	// The event counts as emitted from here on: delivery failures are
	// reported by the fan-out but never re-enter dedup.
	res := p.fanout.Deliver(ctx, ev)
	metrics.AlertsEmitted.WithLabelValues(src).Inc()

	p.logger.Info("whale alert emitted",
		"uid", res.UID,
		"source", src,
		"asset", ev.Asset,
		"action", ev.Action,
		"notional_usd", ev.NotionalUSD.String(),
	)

	return true
}
