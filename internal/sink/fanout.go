package sink

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/dmarrero/whalewatch/internal/metrics"
	"github.com/dmarrero/whalewatch/internal/model"
)

// Archiver persists a delivered alert. Optional third sink.
type Archiver interface {
	Insert(ctx context.Context, ev model.Event, uid string) error
}

// DeliveryResult reports what happened to each independent delivery attempt.
type DeliveryResult struct {
	UID string

	NotifyErr  error
	LogErr     error
	ArchiveErr error
}

// AllFailed reports whether no sink accepted the event.
func (r DeliveryResult) AllFailed() bool {
	return r.NotifyErr != nil && r.LogErr != nil
}

// AlertLog is the two-tier durable log: primary transport first, fallback
// on failure. Either tier may be nil.
type AlertLog struct {
	primary  RowAppender
	fallback RowAppender
	logger   *slog.Logger
}

// NewAlertLog creates the durable log. A fully unconfigured log (both nil)
// accepts and drops rows.
func NewAlertLog(primary, fallback RowAppender, logger *slog.Logger) *AlertLog {
	if logger == nil {
		logger = slog.Default()
	}
	return &AlertLog{primary: primary, fallback: fallback, logger: logger}
}

// Append writes one row, falling back when the primary transport fails.
func (l *AlertLog) Append(ctx context.Context, row []string) error {
	if l.primary == nil && l.fallback == nil {
		l.logger.Warn("durable log not configured, row dropped")
		return nil
	}

	var primaryErr error
	if l.primary != nil {
		primaryErr = l.primary.AppendRow(ctx, row)
		if primaryErr == nil {
			return nil
		}
		l.logger.Error("primary log append failed",
			"transport", l.primary.Name(),
			"err", primaryErr,
		)
		metrics.DeliveryFailures.WithLabelValues(l.primary.Name()).Inc()
	}

	if l.fallback == nil {
		return primaryErr
	}

	if err := l.fallback.AppendRow(ctx, row); err != nil {
		metrics.DeliveryFailures.WithLabelValues(l.fallback.Name()).Inc()
		return err
	}

	metrics.LogFallbacks.Inc()
	return nil
}

// Fanout delivers one event to every sink, independently.
type Fanout struct {
	notifier Notifier
	log      *AlertLog
	archive  Archiver // nil when no archive is configured
	logger   *slog.Logger
}

// NewFanout creates the fan-out sink. archive may be nil.
func NewFanout(notifier Notifier, log *AlertLog, archive Archiver, logger *slog.Logger) *Fanout {
	if logger == nil {
		logger = slog.Default()
	}
	return &Fanout{notifier: notifier, log: log, archive: archive, logger: logger}
}

// Deliver attempts every sink for one qualifying event. Failures are
// isolated: each sink is tried regardless of the others, and the caller
// never retries (the event already counts as emitted).
func (f *Fanout) Deliver(ctx context.Context, ev model.Event) DeliveryResult {
	res := DeliveryResult{UID: newUID()}

	if err := f.notifier.Notify(ctx, ev); err != nil {
		f.logger.Error("notification delivery failed", "asset", ev.Asset, "err", err)
		metrics.DeliveryFailures.WithLabelValues("telegram").Inc()
		res.NotifyErr = err
	}

	if err := f.log.Append(ctx, BuildRow(ev, res.UID)); err != nil {
		f.logger.Error("durable log delivery failed", "asset", ev.Asset, "err", err)
		res.LogErr = err
	}

	if f.archive != nil {
		if err := f.archive.Insert(ctx, ev, res.UID); err != nil {
			f.logger.Error("archive insert failed", "asset", ev.Asset, "err", err)
			metrics.DeliveryFailures.WithLabelValues("archive").Inc()
			res.ArchiveErr = err
		}
	}

	return res
}

// newUID returns the short alert identifier written to log rows.
func newUID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}
