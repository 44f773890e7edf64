package repositories

import (
	"context"

	"go.uber.org/zap"

	"cashier-api/internal/models"
)

// AuditLogRepository keeps the audit trail in the log only. Used when no
// database is configured.
type AuditLogRepository struct {
	log *zap.Logger
}

func NewAuditLogRepository(log *zap.Logger) *AuditLogRepository {
	return &AuditLogRepository{log: log}
}

func (r *AuditLogRepository) RecordSettlement(_ context.Context, rec models.SettlementRecord) error {
	r.log.Info("RecordSettlement",
		zap.String("settlement_id", rec.ID),
		zap.String("teller_id", rec.TellerID),
		zap.String("outcome", string(rec.Settlement.Outcome)),
		zap.Stringer("change", rec.Settlement.Change),
		zap.Int("pieces", rec.Settlement.Pieces()),
	)
	return nil
}

func (r *AuditLogRepository) OpenCashDrawer(_ context.Context, tellerID string, deviceID string) error {
	r.log.Info("OpenCashDrawer", zap.String("teller_id", tellerID), zap.String("device_id", deviceID))
	return nil
}
