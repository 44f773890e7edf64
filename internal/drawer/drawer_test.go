package drawer

import (
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cashier-api/internal/models"
	"cashier-api/internal/money"
)

func counts(d *CashDrawer) map[money.Cents]int {
	out := map[money.Cents]int{}
	for _, s := range d.Inventory() {
		out[s.Denomination] = s.Count
	}
	return out
}

func breakdownSum(lines []models.BreakdownLine) money.Cents {
	var sum money.Cents
	for _, l := range lines {
		sum += l.Denomination * money.Cents(l.Count)
	}
	return sum
}

func TestNew_RejectsBadInventory(t *testing.T) {
	cases := map[string][]models.DrawerSlot{
		"ascending":    {{Denomination: 1, Count: 1}, {Denomination: 2, Count: 1}},
		"duplicate":    {{Denomination: 2, Count: 1}, {Denomination: 2, Count: 1}},
		"zero value":   {{Denomination: 0, Count: 1}},
		"negative qty": {{Denomination: 5, Count: -1}},
	}
	for name, slots := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := New(slots)
			assert.ErrorIs(t, err, ErrInvalidInventory)
		})
	}
}

func TestNew_CopiesSlots(t *testing.T) {
	slots := []models.DrawerSlot{{Denomination: 100, Count: 3}}
	d, err := New(slots)
	require.NoError(t, err)

	slots[0].Count = 0
	assert.Equal(t, 3, d.Inventory()[0].Count)

	inv := d.Inventory()
	inv[0].Count = 99
	assert.Equal(t, 3, d.Inventory()[0].Count)
}

func TestNewEuro_InitialStock(t *testing.T) {
	d := NewEuro()
	inv := d.Inventory()
	require.Len(t, inv, 12)
	assert.Equal(t, models.DrawerSlot{Denomination: 5000, Count: 10}, inv[0])
	assert.Equal(t, models.DrawerSlot{Denomination: 1, Count: 25}, inv[11])
	assert.Equal(t, money.Cents(102150), d.Total())
}

func TestSettle_ChangeForSale(t *testing.T) {
	d := NewEuro()
	before := counts(d)

	res, err := d.Settle(money.FromFloat(3.87), money.FromFloat(12))
	require.NoError(t, err)

	assert.Equal(t, models.OutcomeSuccess, res.Outcome)
	assert.Equal(t, money.Cents(813), res.Change)
	assert.Equal(t, []models.BreakdownLine{
		{Denomination: 500, Count: 1},
		{Denomination: 200, Count: 1},
		{Denomination: 100, Count: 1},
		{Denomination: 10, Count: 1},
		{Denomination: 2, Count: 1},
		{Denomination: 1, Count: 1},
	}, res.Breakdown)
	assert.Equal(t, res.Change, breakdownSum(res.Breakdown))

	after := counts(d)
	for denom, n := range before {
		want := n
		for _, l := range res.Breakdown {
			if l.Denomination == denom {
				want -= l.Count
			}
		}
		assert.Equal(t, want, after[denom], "denomination %s", denom)
	}
}

func TestSettle_InsufficientPayment(t *testing.T) {
	d := NewEuro()
	before := d.Inventory()

	for i := 0; i < 3; i++ {
		res, err := d.Settle(1000, 500)
		require.NoError(t, err)
		assert.Equal(t, models.OutcomeInsufficientPayment, res.Outcome)
		assert.Equal(t, money.Cents(500), res.Shortfall)
		assert.Empty(t, res.Breakdown)
	}
	assert.Equal(t, before, d.Inventory())
}

func TestSettle_ExactPayment(t *testing.T) {
	d := NewEuro()
	before := d.Inventory()

	res, err := d.Settle(500, 500)
	require.NoError(t, err)
	assert.True(t, res.OK())
	assert.Zero(t, res.Change)
	assert.NotNil(t, res.Breakdown)
	assert.Empty(t, res.Breakdown)
	assert.Equal(t, before, d.Inventory())
}

func TestSettle_NegativeAmounts(t *testing.T) {
	d := NewEuro()
	before := d.Inventory()

	_, err := d.Settle(-1, 100)
	assert.ErrorIs(t, err, ErrInvalidAmount)
	_, err = d.Settle(100, -1)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	assert.Equal(t, before, d.Inventory())
}

func TestSettle_DrainedDenomination(t *testing.T) {
	d := NewEuro()

	for i := 0; i < 25; i++ {
		res, err := d.Settle(99, 100)
		require.NoError(t, err)
		require.True(t, res.OK(), "call %d", i)
	}
	assert.Equal(t, 0, counts(d)[1])

	before := d.Inventory()
	res, err := d.Settle(99, 100)
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeInsufficientChange, res.Outcome)
	assert.Equal(t, money.Cents(1), res.Remainder)
	assert.Equal(t, before, d.Inventory())
}

func TestSettle_FailureDiscardsPartialPlan(t *testing.T) {
	d, err := New([]models.DrawerSlot{
		{Denomination: 500, Count: 1},
		{Denomination: 200, Count: 0},
		{Denomination: 100, Count: 1},
	})
	require.NoError(t, err)
	before := d.Inventory()

	// 8.00 would take the 5 and the 1 before running dry with 2.00 left.
	res, err := d.Settle(0, 800)
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeInsufficientChange, res.Outcome)
	assert.Equal(t, money.Cents(200), res.Remainder)
	assert.Equal(t, before, d.Inventory())

	// the same drawer still pays what it can.
	res, err = d.Settle(0, 600)
	require.NoError(t, err)
	assert.True(t, res.OK())
	assert.Equal(t, 0, counts(d)[500])
	assert.Equal(t, 0, counts(d)[100])
}

func TestSettle_RepeatedUntilExhausted(t *testing.T) {
	d := NewEuro()
	initial := d.Total()

	successes := 0
	var last models.Settlement
	for i := 0; i < 100; i++ {
		before := d.Inventory()
		res, err := d.Settle(0, 5000)
		require.NoError(t, err)
		last = res
		if !res.OK() {
			assert.Equal(t, before, d.Inventory())
			break
		}
		successes++
	}

	require.Equal(t, models.OutcomeInsufficientChange, last.Outcome)
	assert.Greater(t, successes, 10)
	assert.Greater(t, last.Remainder, money.Cents(0))
	assert.Less(t, last.Remainder, money.Cents(5000))
	assert.Equal(t, initial-money.Cents(successes)*5000, d.Total())
}

func TestSettle_Conservation(t *testing.T) {
	d := NewEuro()
	initial := counts(d)
	given := map[money.Cents]int{}

	r := rand.New(rand.NewSource(42))
	for i := 0; i < 500; i++ {
		price := money.Cents(r.Intn(10000))
		paid := price + money.Cents(r.Intn(3000))
		if r.Intn(5) == 0 {
			paid = money.Cents(r.Intn(10000))
		}

		res, err := d.Settle(price, paid)
		require.NoError(t, err)
		if res.OK() {
			assert.Equal(t, paid-price, breakdownSum(res.Breakdown))
			for _, l := range res.Breakdown {
				assert.Positive(t, l.Count)
				given[l.Denomination] += l.Count
			}
		}
	}

	for denom, n := range counts(d) {
		assert.GreaterOrEqual(t, n, 0)
		assert.Equal(t, initial[denom]-given[denom], n, "denomination %s", denom)
	}
}

func TestSettle_BreakdownIsDescending(t *testing.T) {
	d := NewEuro()
	res, err := d.Settle(1, 8889)
	require.NoError(t, err)
	require.True(t, res.OK())
	for i := 1; i < len(res.Breakdown); i++ {
		assert.Less(t, res.Breakdown[i].Denomination, res.Breakdown[i-1].Denomination)
	}
}

// Greedy is optimal for the Euro set; check it against a coin-change table.
func TestSettle_MinimalWithUnlimitedStock(t *testing.T) {
	slots := EuroInventory()
	for i := range slots {
		slots[i].Count = 1 << 30
	}
	d, err := New(slots)
	require.NoError(t, err)

	const limit = 10000
	best := make([]int, limit+1)
	for amount := 1; amount <= limit; amount++ {
		best[amount] = amount
		for _, s := range slots {
			v := int(s.Denomination)
			if v <= amount && best[amount-v]+1 < best[amount] {
				best[amount] = best[amount-v] + 1
			}
		}
	}

	for amount := 0; amount <= limit; amount++ {
		res, err := d.Settle(0, money.Cents(amount))
		require.NoError(t, err)
		require.True(t, res.OK())
		require.Equal(t, best[amount], res.Pieces(), "amount %d", amount)
	}
}

func TestSettle_ConcurrentCallers(t *testing.T) {
	d := NewEuro()
	initial := d.Total()

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		paid money.Cents
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := d.Settle(13, 100)
			if err == nil && res.OK() {
				mu.Lock()
				paid += res.Change
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, initial-paid, d.Total())
}
