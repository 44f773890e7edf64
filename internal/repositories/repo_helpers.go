package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"

	"cashier-api/internal/models"
)

// --- Helper Functions ---

func nullIfEmpty(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// settlementArgs is the column order shared by the MySQL and Postgres
// settlement inserts.
func settlementArgs(rec models.SettlementRecord) []any {
	s := rec.Settlement
	return []any{
		rec.ID,
		nullIfEmpty(rec.TellerID),
		string(s.Outcome),
		int64(s.Price),
		int64(s.Paid),
		int64(s.Change),
		int64(s.Shortfall),
		int64(s.Remainder),
		rec.CreatedAt,
	}
}

func FormatQueryForLog(query string, args ...any) string {
	out := query
	for _, arg := range args {
		switch v := arg.(type) {
		case string:
			out = fmt.Sprintf("%s [%q]", out, v)
		case sql.NullString:
			if !v.Valid {
				out = fmt.Sprintf("%s [NULL]", out)
			} else {
				out = fmt.Sprintf("%s [%q]", out, v.String)
			}
		default:
			out = fmt.Sprintf("%s [%v]", out, v)
		}
	}
	return out
}

func debugExec(ctx context.Context, tx *sql.Tx, log *zap.Logger, step, query string, args ...any) error {
	log.Debug("SQL START",
		zap.String("step", step),
		zap.String("query", FormatQueryForLog(query, args...)),
	)

	t0 := time.Now()
	_, err := tx.ExecContext(ctx, query, args...)
	elapsed := time.Since(t0)

	if err != nil {
		log.Error("SQL ERROR",
			zap.String("step", step),
			zap.Error(err),
			zap.Duration("elapsed", elapsed),
			zap.Bool("ctx_done", ctx.Err() != nil),
		)
		return err
	}

	log.Debug("SQL OK",
		zap.String("step", step),
		zap.Duration("elapsed", elapsed),
	)

	return nil
}
