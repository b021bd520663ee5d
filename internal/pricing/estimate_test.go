package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuick_BracketScenario(t *testing.T) {
	qb, err := Quick(bracketPart(), 100, 0.15)
	require.NoError(t, err)

	assert.InDelta(t, 10.5, qb.MaterialUnit, tolerance)
	assert.InDelta(t, 7.2, qb.MachineUnit, tolerance)
	assert.InDelta(t, 3.6, qb.LaborUnit, tolerance)
	assert.InDelta(t, 21.3, qb.UnitCost, tolerance)
	assert.InDelta(t, 24.495, qb.UnitPrice, tolerance)
	assert.InDelta(t, 0.12, qb.TotalTimeHr, tolerance)
}

func TestQuickAndDetailedAgreeWithoutExtraCosts(t *testing.T) {
	part := routedPart()
	part.ProgrammingTimeHr = 0
	part.FirstArticleInspectionHr = 0
	part.OverheadRatePct = 0
	for i := range part.Operations {
		part.Operations[i].ToolCostPerPart = 0
		part.Operations[i].ConsumablesCostPerPart = 0
	}

	for _, qty := range []int{1, 3, 100} {
		qb, err := Quick(part, qty, 0.15)
		require.NoError(t, err)
		db, err := Detailed(part, qty, 0.15)
		require.NoError(t, err)

		assert.Equal(t, db.Cost.UnitCost, qb.UnitCost)
		assert.Equal(t, db.Cost.UnitPrice, qb.UnitPrice)
	}
}

func TestQuickAndDetailedDivergeWithExtraCosts(t *testing.T) {
	qb, err := Quick(routedPart(), 10, 0.15)
	require.NoError(t, err)
	db, err := Detailed(routedPart(), 10, 0.15)
	require.NoError(t, err)

	assert.Less(t, qb.UnitCost, db.Cost.UnitCost)
	assert.Less(t, qb.UnitPrice, db.Cost.UnitPrice)
}

func TestDetailed_SummaryAndPartInfo(t *testing.T) {
	db, err := Detailed(bracketPart(), 100, 0.15)
	require.NoError(t, err)

	s := db.Summary
	assert.Equal(t, 100, s.Quantity)
	assert.InDelta(t, 21.55, s.UnitCost, tolerance)
	assert.InDelta(t, 24.7825, s.UnitPrice, tolerance)
	assert.InDelta(t, 2155, s.ExtendedCost, 1e-7)
	assert.InDelta(t, 2478.25, s.ExtendedPrice, 1e-7)
	assert.InDelta(t, 323.25, s.ProfitAmount, 1e-7)
	assert.Equal(t, 0.15, s.RequestedMarkup)
	// 15% markup is a 13.04% margin on price.
	assert.InDelta(t, 0.15/1.15*100, s.RealizedMarginPct, 1e-9)

	assert.Equal(t, PartInfo{PartNumber: "BRKT-001", Description: "mounting bracket", MaterialName: "6061-T6 Aluminum"}, db.PartInfo)
	require.Len(t, db.Operations, 1)
	assert.Equal(t, "Mill Op 10", db.Operations[0].Name)
}

func TestDetailed_ZeroCostPartHasZeroRealizedMargin(t *testing.T) {
	part := bracketPart()
	part.Material.CostPerLb = 0
	part.Operations[0].Machine.MachineRatePerHr = 0
	part.Operations[0].Machine.LaborRatePerHr = 0
	part.Operations[0].ToolCostPerPart = 0
	part.Operations[0].ConsumablesCostPerPart = 0

	db, err := Detailed(part, 4, 0.5)
	require.NoError(t, err)
	assert.Zero(t, db.Summary.ExtendedPrice)
	assert.Zero(t, db.Summary.RealizedMarginPct)
}

func TestEstimatorsRejectInvalidInput(t *testing.T) {
	_, err := Quick(bracketPart(), 0, 0.15)
	assert.Error(t, err)
	_, err = Detailed(bracketPart(), 1, 1.2)
	assert.Error(t, err)
}
