package pricing

import "github.com/grantdozier/dtg-fabrication-automations/internal/model"

// QuickBreakdown is the reduced estimate used for fast iterative quoting. Its unit cost only
// covers material, machine and labor.
type QuickBreakdown struct {
	MaterialUnit float64
	MachineUnit  float64
	LaborUnit    float64
	UnitCost     float64
	UnitPrice    float64
	TotalTimeHr  float64
}

// Summary reports batch-level figures. RequestedMarkup is the cost-plus fraction the price was
// built from; RealizedMarginPct is profit as a percentage of the extended price.
type Summary struct {
	Quantity          int
	UnitCost          float64
	UnitPrice         float64
	RequestedMarkup   float64
	RealizedMarginPct float64
	ExtendedCost      float64
	ExtendedPrice     float64
	ProfitAmount      float64
}

// PartInfo is catalog metadata copied into a detailed estimate.
type PartInfo struct {
	PartNumber   string
	Description  string
	MaterialName string
}

// DetailedBreakdown is the fully itemized estimate.
type DetailedBreakdown struct {
	Time       TimeBreakdown
	Cost       CostBreakdown
	Operations []OperationBreakdown
	Summary    Summary
	PartInfo   PartInfo
}

// Quick estimates part from material, machine and labor cost only. It agrees exactly with
// Detailed when tooling, consumables, programming, first-article inspection and overhead are zero.
func Quick(part model.Part, quantity int, markup float64) (QuickBreakdown, error) {
	c, err := CostPart(part, quantity, markup)
	if err != nil {
		return QuickBreakdown{}, err
	}

	qb := QuickBreakdown{
		MaterialUnit: c.Cost.Material.Total,
		MachineUnit:  c.Cost.MachineCost,
		LaborUnit:    c.Cost.LaborCost,
		TotalTimeHr:  c.Time.TotalTimePerPart,
	}
	qb.UnitCost = qb.MaterialUnit + qb.MachineUnit + qb.LaborUnit
	_, qb.UnitPrice = applyMarkup(qb.UnitCost, markup)
	return qb, nil
}

// Detailed estimates part with every cost category, per-operation detail and batch summary.
func Detailed(part model.Part, quantity int, markup float64) (DetailedBreakdown, error) {
	c, err := CostPart(part, quantity, markup)
	if err != nil {
		return DetailedBreakdown{}, err
	}

	info := PartInfo{
		PartNumber:  part.PartNumber,
		Description: part.Description,
	}
	if part.Material != nil {
		info.MaterialName = part.Material.Name
	}

	return DetailedBreakdown{
		Time:       c.Time,
		Cost:       c.Cost,
		Operations: c.Operations,
		Summary:    summarize(quantity, c.Cost.UnitCost, c.Cost.UnitPrice, markup),
		PartInfo:   info,
	}, nil
}

func summarize(quantity int, unitCost, unitPrice, markup float64) Summary {
	q := float64(quantity)
	s := Summary{
		Quantity:        quantity,
		UnitCost:        unitCost,
		UnitPrice:       unitPrice,
		RequestedMarkup: markup,
		ExtendedCost:    unitCost * q,
		ExtendedPrice:   unitPrice * q,
	}
	s.ProfitAmount = s.ExtendedPrice - s.ExtendedCost
	if s.ExtendedPrice > 0 {
		s.RealizedMarginPct = s.ProfitAmount / s.ExtendedPrice * 100
	}
	return s
}
