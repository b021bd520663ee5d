// Package pricing estimates the cost and price of machined parts.
//
// Every function in this package is a pure function of its arguments: callers resolve the
// part's material and machines before calling in, and may call from any goroutine.
package pricing

import (
	"sort"

	"github.com/grantdozier/dtg-fabrication-automations/internal/model"
)

// TimeBreakdown sums the per-part time of every operation, in hours.
type TimeBreakdown struct {
	SetupTimePerPart float64
	CycleTime        float64
	AllowanceTime    float64
	ToolChangeTime   float64
	InspectionTime   float64
	TotalTimePerPart float64
}

// MaterialCost is the stock cost of one part.
type MaterialCost struct {
	Base  float64
	Scrap float64
	Total float64
}

// CostBreakdown contains every per-part cost category of the calculation.
type CostBreakdown struct {
	Material        MaterialCost
	MachineCost     float64
	LaborCost       float64
	ToolingCost     float64
	ProgrammingCost float64
	InspectionCost  float64
	ConsumablesCost float64
	OverheadCost    float64
	SubtotalCost    float64
	UnitCost        float64
	MarginAmount    float64
	UnitPrice       float64
}

// Costing is the full result of costing one part at one quantity and markup.
type Costing struct {
	Quantity   int
	Markup     float64
	Time       TimeBreakdown
	Cost       CostBreakdown
	Operations []OperationBreakdown
}

// CostPart costs every operation of part and adds material, amortized programming and
// first-article inspection, and overhead. markup is a cost-plus fraction: price = cost * (1 + markup).
//
// First-article inspection is charged at the part's programming rate. Overhead is
// OverheadRatePct times the machine and labor cost.
func CostPart(part model.Part, quantity int, markup float64) (Costing, error) {
	if err := validate(part, quantity, markup); err != nil {
		return Costing{}, err
	}

	ops := sortedOperations(part.Operations)
	result := Costing{
		Quantity:   quantity,
		Markup:     markup,
		Operations: make([]OperationBreakdown, 0, len(ops)),
	}

	var tb TimeBreakdown
	var cb CostBreakdown
	for _, op := range ops {
		t, c := CostOperation(op, quantity)
		result.Operations = append(result.Operations, OperationBreakdown{
			Name:     op.Name,
			Type:     op.Type,
			Sequence: op.Sequence,
			Time:     t,
			Cost:     c,
		})

		tb.SetupTimePerPart += t.SetupPerPart
		tb.CycleTime += t.Cycle
		tb.AllowanceTime += t.Allowance
		tb.ToolChangeTime += t.ToolChange
		tb.InspectionTime += t.Inspection
		tb.TotalTimePerPart += t.Total

		cb.MachineCost += c.Machine
		cb.LaborCost += c.Labor
		cb.ToolingCost += c.Tooling
		cb.ConsumablesCost += c.Consumables
	}

	q := float64(quantity)
	base := part.StockWeightLb * part.Material.CostPerLb
	scrap := base * part.ScrapFactor
	cb.Material = MaterialCost{Base: base, Scrap: scrap, Total: base + scrap}

	cb.ProgrammingCost = (part.ProgrammingTimeHr * part.ProgrammingRatePerHr) / q
	cb.InspectionCost = (part.FirstArticleInspectionHr * part.ProgrammingRatePerHr) / q
	cb.OverheadCost = part.OverheadRatePct * (cb.MachineCost + cb.LaborCost)

	cb.SubtotalCost = cb.Material.Total + cb.MachineCost + cb.LaborCost + cb.ToolingCost +
		cb.ProgrammingCost + cb.InspectionCost + cb.ConsumablesCost + cb.OverheadCost
	cb.UnitCost = cb.SubtotalCost
	cb.MarginAmount, cb.UnitPrice = applyMarkup(cb.UnitCost, markup)

	result.Time = tb
	result.Cost = cb
	return result, nil
}

func applyMarkup(unitCost, markup float64) (amount, price float64) {
	amount = unitCost * markup
	return amount, unitCost + amount
}

// sortedOperations returns a copy of ops ordered by Sequence. Equal sequences keep their input order.
func sortedOperations(ops []model.Operation) []model.Operation {
	out := make([]model.Operation, len(ops))
	copy(out, ops)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Sequence < out[j].Sequence })
	return out
}

// DuplicateSequences lists, in ascending order, every sequence number used by more than one operation.
func DuplicateSequences(ops []model.Operation) []int {
	seen := make(map[int]int, len(ops))
	for _, op := range ops {
		seen[op.Sequence]++
	}
	var dups []int
	for seq, n := range seen {
		if n > 1 {
			dups = append(dups, seq)
		}
	}
	sort.Ints(dups)
	return dups
}
