package archive

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmarrero/whalewatch/internal/model"
)

const createTable = `
CREATE TABLE IF NOT EXISTS alerts (
	uid          TEXT PRIMARY KEY,
	occurred_at  TIMESTAMPTZ NOT NULL,
	source       TEXT NOT NULL,
	asset        TEXT NOT NULL,
	action       TEXT NOT NULL,
	notional_usd NUMERIC NOT NULL,
	size         NUMERIC NOT NULL,
	price        NUMERIC NOT NULL,
	exchange     TEXT NOT NULL DEFAULT '',
	account      TEXT NOT NULL DEFAULT '',
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// Writer inserts delivered alerts into the alerts table.
type Writer struct {
	db     *pgxpool.Pool
	logger *slog.Logger
}

// NewWriter creates the archive writer and ensures the schema exists.
func NewWriter(ctx context.Context, db *pgxpool.Pool, logger *slog.Logger) (*Writer, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if _, err := db.Exec(ctx, createTable); err != nil {
		return nil, fmt.Errorf("ensure alerts table: %w", err)
	}

	return &Writer{db: db, logger: logger}, nil
}

// Insert archives one delivered alert. Alert volume is bounded by the poll
// cadence, so inserts are synchronous rather than batched.
func (w *Writer) Insert(ctx context.Context, ev model.Event, uid string) error {
	ct, err := w.db.Exec(ctx, `
		INSERT INTO alerts (uid, occurred_at, source, asset, action, notional_usd, size, price, exchange, account)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (uid) DO NOTHING
	`,
		uid,
		ev.OccurredAt,
		ev.Source.String(),
		ev.Asset,
		ev.Action,
		ev.NotionalUSD.String(),
		ev.Size.String(),
		ev.Price.String(),
		ev.Exchange,
		ev.Account,
	)
	if err != nil {
		return fmt.Errorf("insert alert: %w", err)
	}

	if ct.RowsAffected() == 0 {
		w.logger.Debug("alert already archived", "uid", uid)
	}

	return nil
}
