package drawer

import (
	"errors"
	"fmt"
	"sync"

	"cashier-api/internal/models"
	"cashier-api/internal/money"
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidInventory = errors.New("invalid inventory")
)

// EuroInventory is the stock a drawer opens with.
func EuroInventory() []models.DrawerSlot {
	return []models.DrawerSlot{
		{Denomination: 5000, Count: 10},
		{Denomination: 2000, Count: 10},
		{Denomination: 1000, Count: 10},
		{Denomination: 500, Count: 25},
		{Denomination: 200, Count: 25},
		{Denomination: 100, Count: 25},
		{Denomination: 50, Count: 25},
		{Denomination: 20, Count: 25},
		{Denomination: 10, Count: 25},
		{Denomination: 5, Count: 25},
		{Denomination: 2, Count: 25},
		{Denomination: 1, Count: 25},
	}
}

// CashDrawer owns the bills and coins of one till and pays change out of
// them, largest denomination first.
type CashDrawer struct {
	mu    sync.Mutex
	slots []models.DrawerSlot
}

// New builds a drawer from slots sorted strictly descending by
// denomination. The slice is copied.
func New(slots []models.DrawerSlot) (*CashDrawer, error) {
	for i, s := range slots {
		if s.Denomination <= 0 {
			return nil, fmt.Errorf("%w: denomination %s is not positive", ErrInvalidInventory, s.Denomination)
		}
		if s.Count < 0 {
			return nil, fmt.Errorf("%w: negative count for %s", ErrInvalidInventory, s.Denomination)
		}
		if i > 0 && s.Denomination >= slots[i-1].Denomination {
			return nil, fmt.Errorf("%w: %s after %s breaks descending order", ErrInvalidInventory, s.Denomination, slots[i-1].Denomination)
		}
	}

	return &CashDrawer{slots: append([]models.DrawerSlot(nil), slots...)}, nil
}

// NewEuro returns a drawer stocked with EuroInventory.
func NewEuro() *CashDrawer {
	d, err := New(EuroInventory())
	if err != nil {
		panic(err)
	}
	return d
}

// Settle computes the change owed for a sale and takes it out of the
// drawer. Insufficient payment and insufficient stock are reported in the
// returned Settlement and leave the drawer untouched. An error is returned
// only for negative amounts.
func (d *CashDrawer) Settle(price, paid money.Cents) (models.Settlement, error) {
	if price < 0 || paid < 0 {
		return models.Settlement{}, fmt.Errorf("%w: price %s, paid %s", ErrInvalidAmount, price, paid)
	}

	res := models.Settlement{Price: price, Paid: paid}

	if paid < price {
		res.Outcome = models.OutcomeInsufficientPayment
		res.Shortfall = price - paid
		return res, nil
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	change := paid - price
	plan, remainder := d.plan(change)
	if remainder > 0 {
		res.Outcome = models.OutcomeInsufficientChange
		res.Remainder = remainder
		return res, nil
	}

	// nothing was touched while planning; apply the whole plan at once
	breakdown := make([]models.BreakdownLine, 0, len(plan))
	for _, p := range plan {
		d.slots[p.slot].Count -= p.count
		breakdown = append(breakdown, models.BreakdownLine{
			Denomination: d.slots[p.slot].Denomination,
			Count:        p.count,
		})
	}

	res.Outcome = models.OutcomeSuccess
	res.Change = change
	res.Breakdown = breakdown
	return res, nil
}

type planned struct {
	slot  int
	count int
}

// plan walks the slots greedily without mutating them and returns what
// would be given plus whatever could not be covered.
func (d *CashDrawer) plan(change money.Cents) ([]planned, money.Cents) {
	var out []planned
	c := change
	for i, s := range d.slots {
		if c <= 0 {
			break
		}
		needed := int(c / s.Denomination)
		if needed == 0 {
			continue
		}
		give := min(needed, s.Count)
		if give > 0 {
			out = append(out, planned{slot: i, count: give})
			c -= money.Cents(give) * s.Denomination
		}
	}
	return out, c
}

// Inventory returns a copy of the current stock, largest first.
func (d *CashDrawer) Inventory() []models.DrawerSlot {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]models.DrawerSlot(nil), d.slots...)
}

// Total is the value of everything in the drawer.
func (d *CashDrawer) Total() money.Cents {
	d.mu.Lock()
	defer d.mu.Unlock()
	var t money.Cents
	for _, s := range d.slots {
		t += money.Cents(s.Count) * s.Denomination
	}
	return t
}
