package model

import "time"

const (
	QuoteStatusDraft    = "draft"
	QuoteStatusSent     = "sent"
	QuoteStatusApproved = "approved"
)

// Quote groups priced line items for one customer. Totals are derived from Items, never stored.
type Quote struct {
	ID          int64
	CustomerID  int64
	QuoteNumber string
	Status      string
	Notes       string
	CreatedAt   time.Time
	Items       []QuoteItem
}

// QuoteItem is the frozen pricing of one part at one quantity and markup.
// MarginPct is the requested cost-plus markup.
type QuoteItem struct {
	ID        int64
	QuoteID   int64
	PartID    int64
	Quantity  int
	MarginPct float64
	UnitCost  float64
	UnitPrice float64

	MaterialCostUnit    float64
	MachineCostUnit     float64
	LaborCostUnit       float64
	ToolingCostUnit     float64
	ProgrammingCostUnit float64
	InspectionCostUnit  float64
	ConsumablesCostUnit float64
	OverheadCostUnit    float64

	SetupTimePerPart     float64
	CycleTimePerPart     float64
	AllowanceTimePerPart float64
	TotalTimePerPart     float64
}

// QuoteFilter narrows a quote listing. Zero values match everything.
type QuoteFilter struct {
	// Query matches a substring of the quote number or notes.
	Query      string
	CustomerID int64
}
