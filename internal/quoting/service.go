// Package quoting resolves catalog records, runs the cost engine over them and persists the
// priced result as quotes.
package quoting

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/grantdozier/dtg-fabrication-automations/internal/model"
	"github.com/grantdozier/dtg-fabrication-automations/internal/pricing"
)

type CatalogStore interface {
	GetPart(ctx context.Context, id int64) (model.Part, error)
	GetCustomer(ctx context.Context, id int64) (model.Customer, error)
}

type QuoteStore interface {
	CreateQuote(ctx context.Context, q model.Quote) (model.Quote, error)
	GetQuote(ctx context.Context, id int64) (model.Quote, error)
	ListQuotes(ctx context.Context, f model.QuoteFilter) ([]model.Quote, error)
}

// Fidelity selects the estimator used to price quote items.
type Fidelity string

const (
	FidelityDetailed Fidelity = "detailed"
	FidelityQuick    Fidelity = "quick"
)

// Request asks for the price of one part. A nil Markup means the service default.
type Request struct {
	PartID   int64
	Quantity int
	Markup   *float64
}

// NewQuote is a quote to be priced and stored. An empty Fidelity prices items in detail.
type NewQuote struct {
	CustomerID int64
	Notes      string
	Fidelity   Fidelity
	Items      []Request
}

// QuoteView is a stored quote with totals derived from its frozen items.
type QuoteView struct {
	Quote  model.Quote
	Totals pricing.QuoteTotals
}

type Service struct {
	catalog       CatalogStore
	quotes        QuoteStore
	log           zerolog.Logger
	defaultMarkup float64
}

func New(catalog CatalogStore, quotes QuoteStore, log zerolog.Logger, defaultMarkup float64) *Service {
	return &Service{
		catalog:       catalog,
		quotes:        quotes,
		log:           log.With().Str("component", "quoting").Logger(),
		defaultMarkup: defaultMarkup,
	}
}

// Calculate runs the quick estimator for one part.
func (s *Service) Calculate(ctx context.Context, req Request) (pricing.QuickBreakdown, error) {
	part, err := s.resolvePart(ctx, req.PartID)
	if err != nil {
		return pricing.QuickBreakdown{}, err
	}
	return pricing.Quick(part, req.Quantity, s.markup(req.Markup))
}

// CalculateDetailed runs the detailed estimator for one part.
func (s *Service) CalculateDetailed(ctx context.Context, req Request) (pricing.DetailedBreakdown, error) {
	part, err := s.resolvePart(ctx, req.PartID)
	if err != nil {
		return pricing.DetailedBreakdown{}, err
	}
	return pricing.Detailed(part, req.Quantity, s.markup(req.Markup))
}

// CreateQuote prices every item and stores the quote with its frozen figures.
// Nothing is stored when any item fails to price.
func (s *Service) CreateQuote(ctx context.Context, nq NewQuote) (QuoteView, error) {
	if len(nq.Items) == 0 {
		return QuoteView{}, model.Invalid("items", "at least one item is required")
	}
	switch nq.Fidelity {
	case "", FidelityDetailed, FidelityQuick:
	default:
		return QuoteView{}, model.Invalid("fidelity", fmt.Sprintf("must be %q or %q", FidelityDetailed, FidelityQuick))
	}

	if _, err := s.catalog.GetCustomer(ctx, nq.CustomerID); err != nil {
		return QuoteView{}, err
	}

	q := model.Quote{
		CustomerID: nq.CustomerID,
		Notes:      nq.Notes,
		Status:     model.QuoteStatusDraft,
		Items:      make([]model.QuoteItem, 0, len(nq.Items)),
	}
	for i, req := range nq.Items {
		item, err := s.priceItem(ctx, nq.Fidelity, req)
		if err != nil {
			return QuoteView{}, fmt.Errorf("items[%d]: %w", i, err)
		}
		q.Items = append(q.Items, item)
	}

	stored, err := s.quotes.CreateQuote(ctx, q)
	if err != nil {
		return QuoteView{}, fmt.Errorf("store quote: %w", err)
	}

	view := viewOf(stored)
	s.log.Info().
		Str("quote_number", stored.QuoteNumber).
		Int64("customer_id", stored.CustomerID).
		Int("items", len(stored.Items)).
		Float64("total_price", view.Totals.TotalPrice).
		Msg("quote created")
	return view, nil
}

func (s *Service) GetQuote(ctx context.Context, id int64) (QuoteView, error) {
	q, err := s.quotes.GetQuote(ctx, id)
	if err != nil {
		return QuoteView{}, err
	}
	return viewOf(q), nil
}

func (s *Service) ListQuotes(ctx context.Context, f model.QuoteFilter) ([]QuoteView, error) {
	quotes, err := s.quotes.ListQuotes(ctx, f)
	if err != nil {
		return nil, err
	}
	views := make([]QuoteView, 0, len(quotes))
	for _, q := range quotes {
		views = append(views, viewOf(q))
	}
	return views, nil
}

func (s *Service) priceItem(ctx context.Context, fidelity Fidelity, req Request) (model.QuoteItem, error) {
	part, err := s.resolvePart(ctx, req.PartID)
	if err != nil {
		return model.QuoteItem{}, err
	}
	markup := s.markup(req.Markup)

	item := model.QuoteItem{PartID: part.ID, Quantity: req.Quantity, MarginPct: markup}
	if fidelity == FidelityQuick {
		qb, err := pricing.Quick(part, req.Quantity, markup)
		if err != nil {
			return model.QuoteItem{}, err
		}
		item.UnitCost = qb.UnitCost
		item.UnitPrice = qb.UnitPrice
		item.MaterialCostUnit = qb.MaterialUnit
		item.MachineCostUnit = qb.MachineUnit
		item.LaborCostUnit = qb.LaborUnit
		item.TotalTimePerPart = qb.TotalTimeHr
		return item, nil
	}

	d, err := pricing.Detailed(part, req.Quantity, markup)
	if err != nil {
		return model.QuoteItem{}, err
	}
	item.UnitCost = d.Cost.UnitCost
	item.UnitPrice = d.Cost.UnitPrice
	item.MaterialCostUnit = d.Cost.Material.Total
	item.MachineCostUnit = d.Cost.MachineCost
	item.LaborCostUnit = d.Cost.LaborCost
	item.ToolingCostUnit = d.Cost.ToolingCost
	item.ProgrammingCostUnit = d.Cost.ProgrammingCost
	item.InspectionCostUnit = d.Cost.InspectionCost
	item.ConsumablesCostUnit = d.Cost.ConsumablesCost
	item.OverheadCostUnit = d.Cost.OverheadCost
	item.SetupTimePerPart = d.Time.SetupTimePerPart
	item.CycleTimePerPart = d.Time.CycleTime
	item.AllowanceTimePerPart = d.Time.AllowanceTime
	item.TotalTimePerPart = d.Time.TotalTimePerPart
	return item, nil
}

func (s *Service) resolvePart(ctx context.Context, id int64) (model.Part, error) {
	part, err := s.catalog.GetPart(ctx, id)
	if err != nil {
		return model.Part{}, err
	}
	if dups := pricing.DuplicateSequences(part.Operations); len(dups) > 0 {
		s.log.Warn().
			Str("part_number", part.PartNumber).
			Ints("sequences", dups).
			Msg("operations share a sequence number; keeping stored order")
	}
	return part, nil
}

func (s *Service) markup(m *float64) float64 {
	if m == nil {
		return s.defaultMarkup
	}
	return *m
}

func viewOf(q model.Quote) QuoteView {
	lines := make([]pricing.LineItem, 0, len(q.Items))
	for _, it := range q.Items {
		lines = append(lines, pricing.LineItem{Quantity: it.Quantity, UnitCost: it.UnitCost, UnitPrice: it.UnitPrice})
	}
	return QuoteView{Quote: q, Totals: pricing.Aggregate(lines)}
}

// QuoteDetail is a quote view together with the catalog records its items refer to.
type QuoteDetail struct {
	QuoteView
	Customer model.Customer
	Parts    map[int64]model.Part
}

// GetQuoteDetail loads quote id with its customer and parts. Figures still come from the
// frozen items; parts are only used for labels.
func (s *Service) GetQuoteDetail(ctx context.Context, id int64) (QuoteDetail, error) {
	view, err := s.GetQuote(ctx, id)
	if err != nil {
		return QuoteDetail{}, err
	}

	customer, err := s.catalog.GetCustomer(ctx, view.Quote.CustomerID)
	if err != nil {
		return QuoteDetail{}, fmt.Errorf("load customer of %s: %w", view.Quote.QuoteNumber, err)
	}

	parts := make(map[int64]model.Part, len(view.Quote.Items))
	for _, it := range view.Quote.Items {
		if _, ok := parts[it.PartID]; ok {
			continue
		}
		p, err := s.catalog.GetPart(ctx, it.PartID)
		if err != nil {
			return QuoteDetail{}, fmt.Errorf("load part of %s: %w", view.Quote.QuoteNumber, err)
		}
		parts[it.PartID] = p
	}

	return QuoteDetail{QuoteView: view, Customer: customer, Parts: parts}, nil
}
