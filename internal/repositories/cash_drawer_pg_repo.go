package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"cashier-api/internal/models"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS cash_drawer_settlements (
	id              UUID        PRIMARY KEY,
	teller_id       TEXT        NULL,
	outcome         TEXT        NOT NULL,
	price_cents     BIGINT      NOT NULL,
	paid_cents      BIGINT      NOT NULL,
	change_cents    BIGINT      NOT NULL,
	shortfall_cents BIGINT      NOT NULL,
	remainder_cents BIGINT      NOT NULL,
	created_at      TIMESTAMPTZ NOT NULL
);
CREATE TABLE IF NOT EXISTS cash_drawer_settlement_lines (
	settlement_id      UUID   NOT NULL REFERENCES cash_drawer_settlements(id),
	denomination_cents BIGINT NOT NULL,
	count              INT    NOT NULL,
	PRIMARY KEY (settlement_id, denomination_cents)
);
CREATE TABLE IF NOT EXISTS cash_drawer_events (
	id         BIGSERIAL   PRIMARY KEY,
	teller_id  TEXT        NULL,
	device_id  TEXT        NULL,
	event      TEXT        NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
)`

// DBPool matches the methods from *pgxpool.Pool that we use, so tests can
// swap in pgxmock.
type DBPool interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// PostgresCashDrawerRepository is the Postgres flavour of
// CashDrawerRepository.
type PostgresCashDrawerRepository struct {
	pool DBPool
	log  *zap.Logger
}

func NewPostgresCashDrawerRepository(pool DBPool, log *zap.Logger) *PostgresCashDrawerRepository {
	return &PostgresCashDrawerRepository{pool: pool, log: log}
}

func (r *PostgresCashDrawerRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, postgresSchema)
	return err
}

func (r *PostgresCashDrawerRepository) RecordSettlement(ctx context.Context, rec models.SettlementRecord) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		INSERT INTO cash_drawer_settlements
		(id, teller_id, outcome, price_cents, paid_cents, change_cents, shortfall_cents, remainder_cents, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		settlementArgs(rec)...,
	)
	if err != nil {
		r.log.Error("insert settlement", zap.String("settlement_id", rec.ID), zap.Error(err))
		return err
	}

	for _, line := range rec.Settlement.Breakdown {
		_, err = tx.Exec(ctx, `
			INSERT INTO cash_drawer_settlement_lines (settlement_id, denomination_cents, count)
			VALUES ($1, $2, $3)`,
			rec.ID, int64(line.Denomination), line.Count,
		)
		if err != nil {
			r.log.Error("insert settlement line", zap.String("settlement_id", rec.ID), zap.Error(err))
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *PostgresCashDrawerRepository) OpenCashDrawer(ctx context.Context, tellerID string, deviceID string) error {
	r.log.Info("OpenCashDrawer", zap.String("teller_id", tellerID), zap.String("device_id", deviceID))

	_, err := r.pool.Exec(ctx, `
		INSERT INTO cash_drawer_events (teller_id, device_id, event, created_at)
		VALUES ($1, $2, 'open', $3)`,
		nullIfEmpty(tellerID), nullIfEmpty(deviceID), time.Now().UTC(),
	)
	return err
}
