package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"cashier-api/internal/drawer"
	"cashier-api/internal/models"
	"cashier-api/internal/money"
)

// SettlementRecorder persists the drawer audit trail. Implemented by the
// MySQL, Postgres and log-only repositories.
type SettlementRecorder interface {
	RecordSettlement(ctx context.Context, rec models.SettlementRecord) error
	OpenCashDrawer(ctx context.Context, tellerID string, deviceID string) error
}

type CashDrawerService struct {
	drawer   *drawer.CashDrawer
	recorder SettlementRecorder
	log      *zap.Logger
	now      func() time.Time
}

func NewCashDrawerService(d *drawer.CashDrawer, recorder SettlementRecorder, log *zap.Logger) *CashDrawerService {
	return &CashDrawerService{
		drawer:   d,
		recorder: recorder,
		log:      log,
		now:      time.Now,
	}
}

// Settle pays change for one sale and writes it to the audit trail. A
// failed audit write is logged only: by then the drawer has already
// handed the change out.
func (s *CashDrawerService) Settle(ctx context.Context, tellerID string, price, paid money.Cents) (models.Settlement, error) {
	res, err := s.drawer.Settle(price, paid)
	if err != nil {
		s.log.Warn("settle rejected",
			zap.String("teller_id", tellerID),
			zap.Stringer("price", price),
			zap.Stringer("paid", paid),
			zap.Error(err),
		)
		return models.Settlement{}, err
	}

	rec := models.SettlementRecord{
		ID:         uuid.NewString(),
		TellerID:   tellerID,
		Settlement: res,
		CreatedAt:  s.now().UTC(),
	}

	fields := []zap.Field{
		zap.String("settlement_id", rec.ID),
		zap.String("teller_id", tellerID),
		zap.String("outcome", string(res.Outcome)),
		zap.Stringer("price", price),
		zap.Stringer("paid", paid),
	}
	switch res.Outcome {
	case models.OutcomeSuccess:
		s.log.Info("settled", append(fields, zap.Stringer("change", res.Change), zap.Int("pieces", res.Pieces()))...)
	case models.OutcomeInsufficientPayment:
		s.log.Info("settle refused", append(fields, zap.Stringer("shortfall", res.Shortfall))...)
	case models.OutcomeInsufficientChange:
		s.log.Warn("settle refused", append(fields, zap.Stringer("remainder", res.Remainder))...)
	}

	if err := s.recorder.RecordSettlement(ctx, rec); err != nil {
		s.log.Error("record settlement", zap.String("settlement_id", rec.ID), zap.Error(err))
	}

	return res, nil
}

func (s *CashDrawerService) Inventory(_ context.Context) ([]models.DrawerSlot, money.Cents) {
	return s.drawer.Inventory(), s.drawer.Total()
}

func (s *CashDrawerService) OpenDrawer(ctx context.Context, tellerID string, deviceID string) error {
	return s.recorder.OpenCashDrawer(ctx, tellerID, deviceID)
}
