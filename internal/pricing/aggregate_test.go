package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAggregate_NoItems(t *testing.T) {
	assert.Equal(t, QuoteTotals{}, Aggregate(nil))
	assert.Equal(t, QuoteTotals{}, Aggregate([]LineItem{}))
}

func TestAggregate_SumsExtendedValues(t *testing.T) {
	items := []LineItem{
		{Quantity: 100, UnitCost: 21.55, UnitPrice: 24.7825},
		{Quantity: 3, UnitCost: 10, UnitPrice: 12.5},
	}

	got := Aggregate(items)

	assert.InDelta(t, 2155+30, got.TotalCost, 1e-7)
	assert.InDelta(t, 2478.25+37.5, got.TotalPrice, 1e-7)
	assert.Equal(t, got.TotalPrice-got.TotalCost, got.Profit)
}

func TestAggregate_TrustsStoredUnitFigures(t *testing.T) {
	// Unit price below cost is stored as-is, not re-derived.
	got := Aggregate([]LineItem{{Quantity: 2, UnitCost: 10, UnitPrice: 8}})
	assert.Equal(t, QuoteTotals{TotalCost: 20, TotalPrice: 16, Profit: -4}, got)
}
