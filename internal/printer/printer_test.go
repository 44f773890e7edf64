package printer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cashier-api/internal/drawer"
	"cashier-api/internal/models"
)

func TestSettlement_Success(t *testing.T) {
	var buf bytes.Buffer
	res, err := drawer.NewEuro().Settle(387, 1200)
	require.NoError(t, err)

	require.NoError(t, New(&buf).Settlement(res))
	out := buf.String()

	assert.Contains(t, out, "Price:")
	assert.Contains(t, out, "3.87€")
	assert.Contains(t, out, "12.00€")
	assert.Contains(t, out, "8.13€")
	assert.Contains(t, out, "Change details:")
	assert.Contains(t, out, "• 5 Euro:")
	assert.Contains(t, out, "• 0.1 Euro:")
	assert.Contains(t, out, "• 0.01 Euro:")
	assert.NotContains(t, out, "• 50 Euro:")
}

func TestSettlement_InsufficientPayment(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(&buf).Settlement(models.Settlement{
		Outcome:   models.OutcomeInsufficientPayment,
		Price:     1000,
		Paid:      500,
		Shortfall: 500,
	}))

	assert.Contains(t, buf.String(), "The money paid is not enough.")
	assert.Contains(t, buf.String(), "5.00€")
	assert.Contains(t, buf.String(), "more.")
}

func TestSettlement_InsufficientChange(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(&buf).Settlement(models.Settlement{
		Outcome:   models.OutcomeInsufficientChange,
		Remainder: 1,
	}))

	assert.Contains(t, buf.String(), "No change available.")
	assert.Contains(t, buf.String(), "0.01€")
}

func TestInventory(t *testing.T) {
	var buf bytes.Buffer
	d := drawer.NewEuro()
	require.NoError(t, New(&buf).Inventory(d.Inventory(), d.Total()))

	assert.Contains(t, buf.String(), "• 50 Euro:")
	assert.Contains(t, buf.String(), "• 0.5 Euro:")
	assert.Contains(t, buf.String(), "1021.50€")
}
