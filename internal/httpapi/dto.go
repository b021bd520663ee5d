package httpapi

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/grantdozier/dtg-fabrication-automations/internal/model"
	"github.com/grantdozier/dtg-fabrication-automations/internal/pricing"
	"github.com/grantdozier/dtg-fabrication-automations/internal/quoting"
)

func money(v float64) float64 { return decimal.NewFromFloat(v).Round(2).InexactFloat64() }

func hours(v float64) float64 { return decimal.NewFromFloat(v).Round(4).InexactFloat64() }

func pct(v float64) float64 { return decimal.NewFromFloat(v).Round(1).InexactFloat64() }

func timestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// Catalog

type customerDTO struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

func toCustomerDTO(c model.Customer) customerDTO {
	return customerDTO{ID: c.ID, Name: c.Name, Email: c.Email, Phone: c.Phone, CreatedAt: timestamp(c.CreatedAt)}
}

func (d customerDTO) model() model.Customer {
	return model.Customer{Name: d.Name, Email: d.Email, Phone: d.Phone}
}

type materialDTO struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	CostPerLb    float64 `json:"cost_per_lb"`
	DensityLbIn3 float64 `json:"density_lb_in3"`
	Description  string  `json:"description,omitempty"`
}

func toMaterialDTO(m model.Material) materialDTO {
	return materialDTO{ID: m.ID, Name: m.Name, CostPerLb: m.CostPerLb, DensityLbIn3: m.DensityLbIn3, Description: m.Description}
}

func (d materialDTO) model() model.Material {
	return model.Material{Name: d.Name, CostPerLb: d.CostPerLb, DensityLbIn3: d.DensityLbIn3, Description: d.Description}
}

type machineDTO struct {
	ID               int64   `json:"id"`
	Name             string  `json:"name"`
	MachineType      string  `json:"machine_type"`
	MachineRatePerHr float64 `json:"machine_rate_per_hr"`
	LaborRatePerHr   float64 `json:"labor_rate_per_hr"`
	Description      string  `json:"description,omitempty"`
}

func toMachineDTO(m model.Machine) machineDTO {
	return machineDTO{
		ID:               m.ID,
		Name:             m.Name,
		MachineType:      m.MachineType,
		MachineRatePerHr: m.MachineRatePerHr,
		LaborRatePerHr:   m.LaborRatePerHr,
		Description:      m.Description,
	}
}

func (d machineDTO) model() model.Machine {
	return model.Machine{
		Name:             d.Name,
		MachineType:      d.MachineType,
		MachineRatePerHr: d.MachineRatePerHr,
		LaborRatePerHr:   d.LaborRatePerHr,
		Description:      d.Description,
	}
}

type operationDTO struct {
	ID                     int64   `json:"id"`
	MachineID              int64   `json:"machine_id"`
	MachineName            string  `json:"machine_name,omitempty"`
	Name                   string  `json:"name"`
	OperationType          string  `json:"operation_type"`
	Sequence               int     `json:"sequence"`
	SetupTimeHr            float64 `json:"setup_time_hr"`
	CycleTimeHr            float64 `json:"cycle_time_hr"`
	AllowancePct           float64 `json:"allowance_pct"`
	ToolChangeTimeMin      float64 `json:"tool_change_time_min"`
	InspectionTimeMin      float64 `json:"inspection_time_min"`
	ToolCostPerPart        float64 `json:"tool_cost_per_part"`
	ConsumablesCostPerPart float64 `json:"consumables_cost_per_part"`
}

// UnmarshalJSON fills the shop defaults for fields a request leaves out.
func (d *operationDTO) UnmarshalJSON(b []byte) error {
	type plain operationDTO
	v := plain{
		OperationType: string(model.OperationMachining),
		Sequence:      10,
		SetupTimeHr:   0.5,
		CycleTimeHr:   0.25,
		AllowancePct:  0.10,
	}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*d = operationDTO(v)
	return nil
}

func toOperationDTO(op model.Operation) operationDTO {
	d := operationDTO{
		ID:                     op.ID,
		MachineID:              op.MachineID,
		Name:                   op.Name,
		OperationType:          string(op.Type),
		Sequence:               op.Sequence,
		SetupTimeHr:            op.SetupTimeHr,
		CycleTimeHr:            op.CycleTimeHr,
		AllowancePct:           op.AllowancePct,
		ToolChangeTimeMin:      op.ToolChangeTimeMin,
		InspectionTimeMin:      op.InspectionTimeMin,
		ToolCostPerPart:        op.ToolCostPerPart,
		ConsumablesCostPerPart: op.ConsumablesCostPerPart,
	}
	if op.Machine != nil {
		d.MachineName = op.Machine.Name
	}
	return d
}

func (d operationDTO) model() model.Operation {
	return model.Operation{
		MachineID:              d.MachineID,
		Name:                   d.Name,
		Type:                   model.OperationType(d.OperationType),
		Sequence:               d.Sequence,
		SetupTimeHr:            d.SetupTimeHr,
		CycleTimeHr:            d.CycleTimeHr,
		AllowancePct:           d.AllowancePct,
		ToolChangeTimeMin:      d.ToolChangeTimeMin,
		InspectionTimeMin:      d.InspectionTimeMin,
		ToolCostPerPart:        d.ToolCostPerPart,
		ConsumablesCostPerPart: d.ConsumablesCostPerPart,
	}
}

type partDTO struct {
	ID                       int64          `json:"id"`
	PartNumber               string         `json:"part_number"`
	Description              string         `json:"description,omitempty"`
	MaterialID               int64          `json:"material_id"`
	MaterialName             string         `json:"material_name,omitempty"`
	StockWeightLb            float64        `json:"stock_weight_lb"`
	ScrapFactor              float64        `json:"scrap_factor"`
	ProgrammingTimeHr        float64        `json:"programming_time_hr"`
	ProgrammingRatePerHr     float64        `json:"programming_rate_per_hr"`
	FirstArticleInspectionHr float64        `json:"first_article_inspection_hr"`
	OverheadRatePct          float64        `json:"overhead_rate_pct"`
	Operations               []operationDTO `json:"operations"`
	CreatedAt                string         `json:"created_at,omitempty"`
}

// UnmarshalJSON fills the shop defaults for fields a request leaves out.
func (d *partDTO) UnmarshalJSON(b []byte) error {
	type plain partDTO
	v := plain{
		StockWeightLb:        1.0,
		ScrapFactor:          0.05,
		ProgrammingRatePerHr: 75,
		OverheadRatePct:      0.5,
	}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*d = partDTO(v)
	return nil
}

func toPartDTO(p model.Part) partDTO {
	d := partDTO{
		ID:                       p.ID,
		PartNumber:               p.PartNumber,
		Description:              p.Description,
		MaterialID:               p.MaterialID,
		StockWeightLb:            p.StockWeightLb,
		ScrapFactor:              p.ScrapFactor,
		ProgrammingTimeHr:        p.ProgrammingTimeHr,
		ProgrammingRatePerHr:     p.ProgrammingRatePerHr,
		FirstArticleInspectionHr: p.FirstArticleInspectionHr,
		OverheadRatePct:          p.OverheadRatePct,
		Operations:               make([]operationDTO, 0, len(p.Operations)),
		CreatedAt:                timestamp(p.CreatedAt),
	}
	if p.Material != nil {
		d.MaterialName = p.Material.Name
	}
	for _, op := range p.Operations {
		d.Operations = append(d.Operations, toOperationDTO(op))
	}
	return d
}

func (d partDTO) model() model.Part {
	p := model.Part{
		PartNumber:               d.PartNumber,
		Description:              d.Description,
		MaterialID:               d.MaterialID,
		StockWeightLb:            d.StockWeightLb,
		ScrapFactor:              d.ScrapFactor,
		ProgrammingTimeHr:        d.ProgrammingTimeHr,
		ProgrammingRatePerHr:     d.ProgrammingRatePerHr,
		FirstArticleInspectionHr: d.FirstArticleInspectionHr,
		OverheadRatePct:          d.OverheadRatePct,
	}
	for _, op := range d.Operations {
		p.Operations = append(p.Operations, op.model())
	}
	return p
}

// Estimates

type calculateRequest struct {
	PartID    int64    `json:"part_id"`
	Quantity  int      `json:"quantity"`
	MarginPct *float64 `json:"margin_pct"`
}

func (r calculateRequest) request() quoting.Request {
	return quoting.Request{PartID: r.PartID, Quantity: r.Quantity, Markup: r.MarginPct}
}

type quickBreakdownDTO struct {
	MaterialUnit float64 `json:"material_unit"`
	MachineUnit  float64 `json:"machine_unit"`
	LaborUnit    float64 `json:"labor_unit"`
	UnitCost     float64 `json:"unit_cost"`
	UnitPrice    float64 `json:"unit_price"`
	TotalTimeHr  float64 `json:"total_time_hr"`
}

func toQuickDTO(q pricing.QuickBreakdown) quickBreakdownDTO {
	return quickBreakdownDTO{
		MaterialUnit: money(q.MaterialUnit),
		MachineUnit:  money(q.MachineUnit),
		LaborUnit:    money(q.LaborUnit),
		UnitCost:     money(q.UnitCost),
		UnitPrice:    money(q.UnitPrice),
		TotalTimeHr:  hours(q.TotalTimeHr),
	}
}

type timeBreakdownDTO struct {
	SetupTimePerPart float64 `json:"setup_time_per_part"`
	CycleTime        float64 `json:"cycle_time"`
	AllowanceTime    float64 `json:"allowance_time"`
	ToolChangeTime   float64 `json:"tool_change_time"`
	InspectionTime   float64 `json:"inspection_time"`
	TotalTimePerPart float64 `json:"total_time_per_part"`
}

type materialCostDTO struct {
	Base  float64 `json:"base"`
	Scrap float64 `json:"scrap"`
	Total float64 `json:"total"`
}

type costBreakdownDTO struct {
	Material        materialCostDTO `json:"material"`
	MachineCost     float64         `json:"machine_cost"`
	LaborCost       float64         `json:"labor_cost"`
	ToolingCost     float64         `json:"tooling_cost"`
	ProgrammingCost float64         `json:"programming_cost"`
	InspectionCost  float64         `json:"inspection_cost"`
	ConsumablesCost float64         `json:"consumables_cost"`
	OverheadCost    float64         `json:"overhead_cost"`
	SubtotalCost    float64         `json:"subtotal_cost"`
	UnitCost        float64         `json:"unit_cost"`
	MarginAmount    float64         `json:"margin_amount"`
	UnitPrice       float64         `json:"unit_price"`
}

type operationTimeDTO struct {
	SetupPerPart float64 `json:"setup_per_part"`
	Cycle        float64 `json:"cycle"`
	Allowance    float64 `json:"allowance"`
	ToolChange   float64 `json:"tool_change"`
	Inspection   float64 `json:"inspection"`
	Total        float64 `json:"total"`
}

type operationCostDTO struct {
	Machine     float64 `json:"machine"`
	Labor       float64 `json:"labor"`
	Tooling     float64 `json:"tooling"`
	Consumables float64 `json:"consumables"`
	Total       float64 `json:"total"`
}

type operationBreakdownDTO struct {
	OperationName string           `json:"operation_name"`
	OperationType string           `json:"operation_type"`
	Sequence      int              `json:"sequence"`
	Time          operationTimeDTO `json:"time"`
	Cost          operationCostDTO `json:"cost"`
}

// summaryDTO reports margin_pct as the realized margin on price, in percent.
// requested_markup is the cost-plus fraction the price was built from.
type summaryDTO struct {
	Quantity        int     `json:"quantity"`
	UnitCost        float64 `json:"unit_cost"`
	UnitPrice       float64 `json:"unit_price"`
	MarginPct       float64 `json:"margin_pct"`
	RequestedMarkup float64 `json:"requested_markup"`
	ExtendedCost    float64 `json:"extended_cost"`
	ExtendedPrice   float64 `json:"extended_price"`
	ProfitAmount    float64 `json:"profit_amount"`
}

type partInfoDTO struct {
	PartNumber   string `json:"part_number"`
	Description  string `json:"description"`
	MaterialName string `json:"material_name"`
}

type detailedBreakdownDTO struct {
	TimeBreakdown timeBreakdownDTO        `json:"time_breakdown"`
	CostBreakdown costBreakdownDTO        `json:"cost_breakdown"`
	Operations    []operationBreakdownDTO `json:"operations"`
	Summary       summaryDTO              `json:"summary"`
	PartInfo      partInfoDTO             `json:"part_info"`
}

func toDetailedDTO(d pricing.DetailedBreakdown) detailedBreakdownDTO {
	out := detailedBreakdownDTO{
		TimeBreakdown: timeBreakdownDTO{
			SetupTimePerPart: hours(d.Time.SetupTimePerPart),
			CycleTime:        hours(d.Time.CycleTime),
			AllowanceTime:    hours(d.Time.AllowanceTime),
			ToolChangeTime:   hours(d.Time.ToolChangeTime),
			InspectionTime:   hours(d.Time.InspectionTime),
			TotalTimePerPart: hours(d.Time.TotalTimePerPart),
		},
		CostBreakdown: costBreakdownDTO{
			Material: materialCostDTO{
				Base:  money(d.Cost.Material.Base),
				Scrap: money(d.Cost.Material.Scrap),
				Total: money(d.Cost.Material.Total),
			},
			MachineCost:     money(d.Cost.MachineCost),
			LaborCost:       money(d.Cost.LaborCost),
			ToolingCost:     money(d.Cost.ToolingCost),
			ProgrammingCost: money(d.Cost.ProgrammingCost),
			InspectionCost:  money(d.Cost.InspectionCost),
			ConsumablesCost: money(d.Cost.ConsumablesCost),
			OverheadCost:    money(d.Cost.OverheadCost),
			SubtotalCost:    money(d.Cost.SubtotalCost),
			UnitCost:        money(d.Cost.UnitCost),
			MarginAmount:    money(d.Cost.MarginAmount),
			UnitPrice:       money(d.Cost.UnitPrice),
		},
		Operations: make([]operationBreakdownDTO, 0, len(d.Operations)),
		Summary: summaryDTO{
			Quantity:        d.Summary.Quantity,
			UnitCost:        money(d.Summary.UnitCost),
			UnitPrice:       money(d.Summary.UnitPrice),
			MarginPct:       pct(d.Summary.RealizedMarginPct),
			RequestedMarkup: d.Summary.RequestedMarkup,
			ExtendedCost:    money(d.Summary.ExtendedCost),
			ExtendedPrice:   money(d.Summary.ExtendedPrice),
			ProfitAmount:    money(d.Summary.ProfitAmount),
		},
		PartInfo: partInfoDTO{
			PartNumber:   d.PartInfo.PartNumber,
			Description:  d.PartInfo.Description,
			MaterialName: d.PartInfo.MaterialName,
		},
	}
	for _, op := range d.Operations {
		out.Operations = append(out.Operations, operationBreakdownDTO{
			OperationName: op.Name,
			OperationType: string(op.Type),
			Sequence:      op.Sequence,
			Time: operationTimeDTO{
				SetupPerPart: hours(op.Time.SetupPerPart),
				Cycle:        hours(op.Time.Cycle),
				Allowance:    hours(op.Time.Allowance),
				ToolChange:   hours(op.Time.ToolChange),
				Inspection:   hours(op.Time.Inspection),
				Total:        hours(op.Time.Total),
			},
			Cost: operationCostDTO{
				Machine:     money(op.Cost.Machine),
				Labor:       money(op.Cost.Labor),
				Tooling:     money(op.Cost.Tooling),
				Consumables: money(op.Cost.Consumables),
				Total:       money(op.Cost.Total),
			},
		})
	}
	return out
}

// Quotes

type createQuoteRequest struct {
	CustomerID int64              `json:"customer_id"`
	Notes      string             `json:"notes"`
	Fidelity   string             `json:"fidelity"`
	Items      []calculateRequest `json:"items"`
}

func (r createQuoteRequest) newQuote() quoting.NewQuote {
	nq := quoting.NewQuote{
		CustomerID: r.CustomerID,
		Notes:      r.Notes,
		Fidelity:   quoting.Fidelity(r.Fidelity),
		Items:      make([]quoting.Request, 0, len(r.Items)),
	}
	for _, it := range r.Items {
		nq.Items = append(nq.Items, it.request())
	}
	return nq
}

type quoteItemDTO struct {
	ID                   int64   `json:"id"`
	PartID               int64   `json:"part_id"`
	Quantity             int     `json:"quantity"`
	MarginPct            float64 `json:"margin_pct"`
	MaterialCostUnit     float64 `json:"material_cost_unit"`
	MachineCostUnit      float64 `json:"machine_cost_unit"`
	LaborCostUnit        float64 `json:"labor_cost_unit"`
	ToolingCostUnit      float64 `json:"tooling_cost_unit"`
	ProgrammingCostUnit  float64 `json:"programming_cost_unit"`
	InspectionCostUnit   float64 `json:"inspection_cost_unit"`
	ConsumablesCostUnit  float64 `json:"consumables_cost_unit"`
	OverheadCostUnit     float64 `json:"overhead_cost_unit"`
	UnitCost             float64 `json:"unit_cost"`
	UnitPrice            float64 `json:"unit_price"`
	SetupTimePerPart     float64 `json:"setup_time_per_part"`
	CycleTimePerPart     float64 `json:"cycle_time_per_part"`
	AllowanceTimePerPart float64 `json:"allowance_time_per_part"`
	TotalTimePerPart     float64 `json:"total_time_per_part"`
}

type quoteTotalsDTO struct {
	TotalCost  float64 `json:"total_cost"`
	TotalPrice float64 `json:"total_price"`
	Profit     float64 `json:"profit"`
}

type quoteDTO struct {
	ID          int64          `json:"id"`
	CustomerID  int64          `json:"customer_id"`
	QuoteNumber string         `json:"quote_number"`
	Status      string         `json:"status"`
	Notes       string         `json:"notes,omitempty"`
	CreatedAt   string         `json:"created_at,omitempty"`
	Items       []quoteItemDTO `json:"items"`
	Totals      quoteTotalsDTO `json:"totals"`
}

func toQuoteDTO(v quoting.QuoteView) quoteDTO {
	q := v.Quote
	out := quoteDTO{
		ID:          q.ID,
		CustomerID:  q.CustomerID,
		QuoteNumber: q.QuoteNumber,
		Status:      q.Status,
		Notes:       q.Notes,
		CreatedAt:   timestamp(q.CreatedAt),
		Items:       make([]quoteItemDTO, 0, len(q.Items)),
		Totals: quoteTotalsDTO{
			TotalCost:  money(v.Totals.TotalCost),
			TotalPrice: money(v.Totals.TotalPrice),
			Profit:     money(v.Totals.Profit),
		},
	}
	for _, it := range q.Items {
		out.Items = append(out.Items, quoteItemDTO{
			ID:                   it.ID,
			PartID:               it.PartID,
			Quantity:             it.Quantity,
			MarginPct:            it.MarginPct,
			MaterialCostUnit:     money(it.MaterialCostUnit),
			MachineCostUnit:      money(it.MachineCostUnit),
			LaborCostUnit:        money(it.LaborCostUnit),
			ToolingCostUnit:      money(it.ToolingCostUnit),
			ProgrammingCostUnit:  money(it.ProgrammingCostUnit),
			InspectionCostUnit:   money(it.InspectionCostUnit),
			ConsumablesCostUnit:  money(it.ConsumablesCostUnit),
			OverheadCostUnit:     money(it.OverheadCostUnit),
			UnitCost:             money(it.UnitCost),
			UnitPrice:            money(it.UnitPrice),
			SetupTimePerPart:     hours(it.SetupTimePerPart),
			CycleTimePerPart:     hours(it.CycleTimePerPart),
			AllowanceTimePerPart: hours(it.AllowanceTimePerPart),
			TotalTimePerPart:     hours(it.TotalTimePerPart),
		})
	}
	return out
}
