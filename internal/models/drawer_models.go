package models

import (
	"time"

	"cashier-api/internal/money"
)

// DrawerSlot is one denomination held in the drawer and how many units of
// it are left.
type DrawerSlot struct {
	Denomination money.Cents `json:"denomination"`
	Count        int         `json:"count"`
}

// BreakdownLine is one denomination handed back as change.
type BreakdownLine struct {
	Denomination money.Cents `json:"denomination"`
	Count        int         `json:"count"`
}

type Outcome string

const (
	OutcomeSuccess             Outcome = "success"
	OutcomeInsufficientPayment Outcome = "insufficient_payment"
	OutcomeInsufficientChange  Outcome = "insufficient_change"
)

// Settlement is the result of settling one sale against the drawer.
// Change and Breakdown are set on success, Shortfall on
// insufficient_payment, Remainder on insufficient_change.
type Settlement struct {
	Outcome   Outcome         `json:"outcome"`
	Price     money.Cents     `json:"price"`
	Paid      money.Cents     `json:"paid"`
	Change    money.Cents     `json:"change"`
	Breakdown []BreakdownLine `json:"breakdown"`
	Shortfall money.Cents     `json:"shortfall,omitempty"`
	Remainder money.Cents     `json:"remainder,omitempty"`
}

func (s Settlement) OK() bool {
	return s.Outcome == OutcomeSuccess
}

// Pieces is the number of bills and coins in the breakdown.
func (s Settlement) Pieces() int {
	n := 0
	for _, l := range s.Breakdown {
		n += l.Count
	}
	return n
}

// SettlementRecord is the audit row written for every settle call.
type SettlementRecord struct {
	ID         string
	TellerID   string
	Settlement Settlement
	CreatedAt  time.Time
}
