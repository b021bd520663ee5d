package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/grantdozier/dtg-fabrication-automations/internal/model"
)

const quoteItemColumns = `
	id, quote_id, part_id, quantity, margin_pct, unit_cost, unit_price,
	material_cost_unit, machine_cost_unit, labor_cost_unit, tooling_cost_unit,
	programming_cost_unit, inspection_cost_unit, consumables_cost_unit, overhead_cost_unit,
	setup_time_per_part, cycle_time_per_part, allowance_time_per_part, total_time_per_part`

// QuoteNumber formats the human-facing number of the quote with the given row id.
func QuoteNumber(id int64) string {
	return fmt.Sprintf("Q-%05d", id)
}

// CreateQuote persists q and its items in one transaction and returns the stored quote.
// The quote number is derived from the new row id; an empty status becomes draft.
func (s *Store) CreateQuote(ctx context.Context, q model.Quote) (model.Quote, error) {
	if q.Status == "" {
		q.Status = model.QuoteStatusDraft
	}

	var id int64
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			INSERT INTO quotes (customer_id, status, notes)
			VALUES (?, ?, ?)
		`, q.CustomerID, q.Status, nullString(q.Notes))
		if err != nil {
			return fmt.Errorf("insert quote: %w", err)
		}
		if id, err = res.LastInsertId(); err != nil {
			return fmt.Errorf("read quote id: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `UPDATE quotes SET quote_number = ? WHERE id = ?`, QuoteNumber(id), id); err != nil {
			return fmt.Errorf("set quote number: %w", err)
		}

		for _, it := range q.Items {
			if err := insertQuoteItem(ctx, tx, id, it); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return model.Quote{}, err
	}

	return s.GetQuote(ctx, id)
}

func insertQuoteItem(ctx context.Context, tx *sql.Tx, quoteID int64, it model.QuoteItem) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO quote_items (
			quote_id, part_id, quantity, margin_pct, unit_cost, unit_price,
			material_cost_unit, machine_cost_unit, labor_cost_unit, tooling_cost_unit,
			programming_cost_unit, inspection_cost_unit, consumables_cost_unit, overhead_cost_unit,
			setup_time_per_part, cycle_time_per_part, allowance_time_per_part, total_time_per_part
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, quoteID, it.PartID, it.Quantity, it.MarginPct, it.UnitCost, it.UnitPrice,
		it.MaterialCostUnit, it.MachineCostUnit, it.LaborCostUnit, it.ToolingCostUnit,
		it.ProgrammingCostUnit, it.InspectionCostUnit, it.ConsumablesCostUnit, it.OverheadCostUnit,
		it.SetupTimePerPart, it.CycleTimePerPart, it.AllowanceTimePerPart, it.TotalTimePerPart)
	if err != nil {
		return fmt.Errorf("insert quote item for part %d: %w", it.PartID, err)
	}
	return nil
}

// GetQuote returns the quote with id and its items in insertion order.
func (s *Store) GetQuote(ctx context.Context, id int64) (model.Quote, error) {
	var q model.Quote
	var createdAt string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, customer_id, COALESCE(quote_number, ''), status, COALESCE(notes, ''), created_at
		FROM quotes
		WHERE id = ?
	`, id).Scan(&q.ID, &q.CustomerID, &q.QuoteNumber, &q.Status, &q.Notes, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Quote{}, model.NotFound("quote", id)
	}
	if err != nil {
		return model.Quote{}, fmt.Errorf("query quote: %w", err)
	}
	q.CreatedAt = parseTimestamp(createdAt)

	items, err := s.queryQuoteItems(ctx, `quote_id = ?`, id)
	if err != nil {
		return model.Quote{}, err
	}
	q.Items = items[id]
	if q.Items == nil {
		q.Items = []model.QuoteItem{}
	}
	return q, nil
}

// ListQuotes returns quotes matching f, newest first, each with its items.
func (s *Store) ListQuotes(ctx context.Context, f model.QuoteFilter) ([]model.Quote, error) {
	query := strings.TrimSpace(f.Query)
	search := "%" + query + "%"
	where := `(? = '' OR COALESCE(quote_number, '') LIKE ? OR COALESCE(notes, '') LIKE ?)
		AND (? = 0 OR customer_id = ?)`
	args := []any{query, search, search, f.CustomerID, f.CustomerID}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, customer_id, COALESCE(quote_number, ''), status, COALESCE(notes, ''), created_at
		FROM quotes
		WHERE `+where+`
		ORDER BY datetime(created_at) DESC, id DESC
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("query quotes: %w", err)
	}
	defer rows.Close()

	quotes := make([]model.Quote, 0)
	for rows.Next() {
		var q model.Quote
		var createdAt string
		if err := rows.Scan(&q.ID, &q.CustomerID, &q.QuoteNumber, &q.Status, &q.Notes, &createdAt); err != nil {
			return nil, fmt.Errorf("scan quote: %w", err)
		}
		q.CreatedAt = parseTimestamp(createdAt)
		quotes = append(quotes, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate quotes: %w", err)
	}
	if len(quotes) == 0 {
		return quotes, nil
	}

	items, err := s.queryQuoteItems(ctx, `quote_id IN (SELECT id FROM quotes WHERE `+where+`)`, args...)
	if err != nil {
		return nil, err
	}
	for i := range quotes {
		quotes[i].Items = items[quotes[i].ID]
		if quotes[i].Items == nil {
			quotes[i].Items = []model.QuoteItem{}
		}
	}
	return quotes, nil
}

// queryQuoteItems returns matching items grouped by quote id.
func (s *Store) queryQuoteItems(ctx context.Context, where string, args ...any) (map[int64][]model.QuoteItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+quoteItemColumns+`
		FROM quote_items
		WHERE `+where+`
		ORDER BY quote_id, id
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("query quote items: %w", err)
	}
	defer rows.Close()

	items := make(map[int64][]model.QuoteItem)
	for rows.Next() {
		var it model.QuoteItem
		if err := rows.Scan(
			&it.ID, &it.QuoteID, &it.PartID, &it.Quantity, &it.MarginPct, &it.UnitCost, &it.UnitPrice,
			&it.MaterialCostUnit, &it.MachineCostUnit, &it.LaborCostUnit, &it.ToolingCostUnit,
			&it.ProgrammingCostUnit, &it.InspectionCostUnit, &it.ConsumablesCostUnit, &it.OverheadCostUnit,
			&it.SetupTimePerPart, &it.CycleTimePerPart, &it.AllowanceTimePerPart, &it.TotalTimePerPart,
		); err != nil {
			return nil, fmt.Errorf("scan quote item: %w", err)
		}
		items[it.QuoteID] = append(items[it.QuoteID], it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate quote items: %w", err)
	}
	return items, nil
}
