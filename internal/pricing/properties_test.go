package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grantdozier/dtg-fabrication-automations/internal/model"
)

// routedPart has three operations on two machines and every cost category populated.
func routedPart() model.Part {
	lathe := &model.Machine{ID: 2, Name: "Doosan Puma 2100", MachineRatePerHr: 95, LaborRatePerHr: 38}
	return model.Part{
		PartNumber:               "SHAFT-100",
		Material:                 &model.Material{Name: "1018 Mild Steel", CostPerLb: 1.2},
		StockWeightLb:            2.5,
		ScrapFactor:              0.08,
		ProgrammingTimeHr:        1.5,
		ProgrammingRatePerHr:     75,
		FirstArticleInspectionHr: 0.5,
		OverheadRatePct:          0.5,
		Operations: []model.Operation{
			{Name: "Rough Turn", Type: model.OperationRoughing, Sequence: 10, Machine: lathe, SetupTimeHr: 1.5, CycleTimeHr: 0.25, AllowancePct: 0.12, ToolChangeTimeMin: 2.5, InspectionTimeMin: 1.5, ToolCostPerPart: 0.65, ConsumablesCostPerPart: 0.4},
			{Name: "Finish Turn", Type: model.OperationFinishing, Sequence: 20, Machine: lathe, SetupTimeHr: 0.25, CycleTimeHr: 0.18, AllowancePct: 0.08, ToolChangeTimeMin: 1.5, InspectionTimeMin: 2, ToolCostPerPart: 0.45, ConsumablesCostPerPart: 0.3},
			{Name: "Cross Drill", Type: model.OperationMachining, Sequence: 30, Machine: mill(), SetupTimeHr: 0.5, CycleTimeHr: 0.1, AllowancePct: 0.1, ToolCostPerPart: 0.2, ConsumablesCostPerPart: 0.1},
		},
	}
}

func TestPriceNeverBelowCost(t *testing.T) {
	for _, markup := range []float64{0, 0.01, 0.15, 0.5, 0.99} {
		for _, qty := range []int{1, 7, 250} {
			c, err := CostPart(routedPart(), qty, markup)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, c.Cost.UnitPrice, c.Cost.UnitCost, "markup=%v qty=%d", markup, qty)
		}
	}
}

func TestZeroMarkupPricesAtCost(t *testing.T) {
	c, err := CostPart(routedPart(), 12, 0)
	require.NoError(t, err)
	assert.Equal(t, c.Cost.UnitCost, c.Cost.UnitPrice)
	assert.Zero(t, c.Cost.MarginAmount)
}

func TestQuantityScaling(t *testing.T) {
	prev, err := CostPart(routedPart(), 1, 0.15)
	require.NoError(t, err)

	for qty := 2; qty <= 64; qty++ {
		cur, err := CostPart(routedPart(), qty, 0.15)
		require.NoError(t, err)

		assert.Less(t, cur.Time.SetupTimePerPart, prev.Time.SetupTimePerPart)
		assert.Less(t, cur.Cost.ProgrammingCost, prev.Cost.ProgrammingCost)
		assert.Less(t, cur.Cost.InspectionCost, prev.Cost.InspectionCost)
		assert.Positive(t, cur.Time.SetupTimePerPart)
		assert.Positive(t, cur.Cost.ProgrammingCost)
		assert.Positive(t, cur.Cost.InspectionCost)

		assert.Equal(t, prev.Time.CycleTime, cur.Time.CycleTime)
		assert.Equal(t, prev.Time.AllowanceTime, cur.Time.AllowanceTime)
		assert.Equal(t, prev.Time.ToolChangeTime, cur.Time.ToolChangeTime)
		assert.Equal(t, prev.Time.InspectionTime, cur.Time.InspectionTime)
		assert.Equal(t, prev.Cost.ToolingCost, cur.Cost.ToolingCost)
		assert.Equal(t, prev.Cost.ConsumablesCost, cur.Cost.ConsumablesCost)
		assert.Equal(t, prev.Cost.Material, cur.Cost.Material)

		prev = cur
	}
}

func TestOperationSumsMatchAggregates(t *testing.T) {
	c, err := CostPart(routedPart(), 37, 0.2)
	require.NoError(t, err)

	var total, machine, labor, tooling float64
	for _, op := range c.Operations {
		total += op.Time.Total
		machine += op.Cost.Machine
		labor += op.Cost.Labor
		tooling += op.Cost.Tooling
	}
	assert.InDelta(t, c.Time.TotalTimePerPart, total, tolerance)
	assert.InDelta(t, c.Cost.MachineCost, machine, tolerance)
	assert.InDelta(t, c.Cost.LaborCost, labor, tolerance)
	assert.InDelta(t, c.Cost.ToolingCost, tooling, tolerance)
}

func TestCostPartIsIdempotent(t *testing.T) {
	a, err := CostPart(routedPart(), 9, 0.3)
	require.NoError(t, err)
	b, err := CostPart(routedPart(), 9, 0.3)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
