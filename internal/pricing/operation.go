package pricing

import "github.com/grantdozier/dtg-fabrication-automations/internal/model"

// OperationTime is the per-part time of one operation, in hours.
type OperationTime struct {
	SetupPerPart float64
	Cycle        float64
	Allowance    float64
	ToolChange   float64
	Inspection   float64
	Total        float64
}

// OperationCost is the per-part cost of one operation.
type OperationCost struct {
	Machine     float64
	Labor       float64
	Tooling     float64
	Consumables float64
	Total       float64
}

// OperationBreakdown is the costing of one operation as reported in a detailed estimate.
type OperationBreakdown struct {
	Name     string
	Type     model.OperationType
	Sequence int
	Time     OperationTime
	Cost     OperationCost
}

// CostOperation computes the per-part time and cost of op when quantity parts are run.
// op.Machine must be resolved and quantity must be at least 1.
func CostOperation(op model.Operation, quantity int) (OperationTime, OperationCost) {
	t := OperationTime{
		SetupPerPart: op.SetupTimeHr / float64(quantity),
		Cycle:        op.CycleTimeHr,
		Allowance:    op.CycleTimeHr * op.AllowancePct,
		ToolChange:   op.ToolChangeTimeMin / 60,
		Inspection:   op.InspectionTimeMin / 60,
	}
	t.Total = t.SetupPerPart + t.Cycle + t.Allowance + t.ToolChange + t.Inspection

	c := OperationCost{
		Machine:     t.Total * op.Machine.MachineRatePerHr,
		Labor:       t.Total * op.Machine.LaborRatePerHr,
		Tooling:     op.ToolCostPerPart,
		Consumables: op.ConsumablesCostPerPart,
	}
	c.Total = c.Machine + c.Labor + c.Tooling + c.Consumables
	return t, c
}
