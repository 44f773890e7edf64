package repositories

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"

	"cashier-api/internal/models"
)

const mysqlSchema = `
CREATE TABLE IF NOT EXISTS cash_drawer_settlements (
	id              CHAR(36)    NOT NULL PRIMARY KEY,
	teller_id       VARCHAR(64) NULL,
	outcome         VARCHAR(32) NOT NULL,
	price_cents     BIGINT      NOT NULL,
	paid_cents      BIGINT      NOT NULL,
	change_cents    BIGINT      NOT NULL,
	shortfall_cents BIGINT      NOT NULL,
	remainder_cents BIGINT      NOT NULL,
	created_at      DATETIME(6) NOT NULL
);
CREATE TABLE IF NOT EXISTS cash_drawer_settlement_lines (
	settlement_id      CHAR(36) NOT NULL,
	denomination_cents BIGINT   NOT NULL,
	count              INT      NOT NULL,
	PRIMARY KEY (settlement_id, denomination_cents)
);
CREATE TABLE IF NOT EXISTS cash_drawer_events (
	id         BIGINT AUTO_INCREMENT PRIMARY KEY,
	teller_id  VARCHAR(64) NULL,
	device_id  VARCHAR(128) NULL,
	event      VARCHAR(32) NOT NULL,
	created_at DATETIME(6) NOT NULL
)`

// CashDrawerRepository writes the drawer audit trail to MySQL. Rows are
// never read back; the drawer itself lives in memory.
type CashDrawerRepository struct {
	db  *sql.DB
	log *zap.Logger
}

func NewCashDrawerRepository(db *sql.DB, log *zap.Logger) *CashDrawerRepository {
	return &CashDrawerRepository{db: db, log: log}
}

// EnsureSchema creates the audit tables. The DSN must allow
// multiStatements.
func (r *CashDrawerRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, mysqlSchema)
	return err
}

func (r *CashDrawerRepository) RecordSettlement(ctx context.Context, rec models.SettlementRecord) error {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}

	err = debugExec(ctx, tx, r.log, "insert settlement", `
		INSERT INTO cash_drawer_settlements
		(id, teller_id, outcome, price_cents, paid_cents, change_cents, shortfall_cents, remainder_cents, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		settlementArgs(rec)...,
	)
	if err != nil {
		tx.Rollback()
		return err
	}

	for _, line := range rec.Settlement.Breakdown {
		err = debugExec(ctx, tx, r.log, "insert settlement line", `
			INSERT INTO cash_drawer_settlement_lines (settlement_id, denomination_cents, count)
			VALUES (?, ?, ?)`,
			rec.ID, int64(line.Denomination), line.Count,
		)
		if err != nil {
			tx.Rollback()
			return err
		}
	}

	return tx.Commit()
}

func (r *CashDrawerRepository) OpenCashDrawer(ctx context.Context, tellerID string, deviceID string) error {
	r.log.Info("OpenCashDrawer", zap.String("teller_id", tellerID), zap.String("device_id", deviceID))

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO cash_drawer_events (teller_id, device_id, event, created_at)
		VALUES (?, ?, 'open', ?)`,
		nullIfEmpty(tellerID), nullIfEmpty(deviceID), time.Now().UTC(),
	)
	return err
}
