package export

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/grantdozier/dtg-fabrication-automations/internal/quoting"
)

const sheetName = "Quote"

var itemHeaders = []string{
	"Part Number", "Description", "Quantity", "Markup %",
	"Unit Cost", "Unit Price", "Extended Cost", "Extended Price",
	"Material/Unit", "Machine/Unit", "Labor/Unit", "Tooling/Unit",
	"Programming/Unit", "Inspection/Unit", "Consumables/Unit", "Overhead/Unit",
	"Hours/Part",
}

// itemHeaderRow is the row holding itemHeaders; quote metadata sits above it.
const itemHeaderRow = 6

// Workbook builds a single-sheet workbook for d. Callers must Close the returned file.
func Workbook(d quoting.QuoteDetail) (*excelize.File, error) {
	q := d.Quote
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	boldStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
	})
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("create header style: %w", err)
	}

	created := ""
	if !q.CreatedAt.IsZero() {
		created = q.CreatedAt.Format(dateLayout)
	}
	meta := [][2]any{
		{"Quote", q.QuoteNumber},
		{"Status", q.Status},
		{"Customer", d.Customer.Name},
		{"Date", created},
		{"Notes", q.Notes},
	}
	cells := make(map[string]any, 2*len(meta)+len(itemHeaders)*(len(q.Items)+2))
	for i, m := range meta {
		cells[fmt.Sprintf("A%d", i+1)] = m[0]
		cells[fmt.Sprintf("B%d", i+1)] = m[1]
	}

	for i, h := range itemHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, itemHeaderRow)
		cells[cell] = h
	}

	row := itemHeaderRow + 1
	for _, it := range q.Items {
		p := d.Parts[it.PartID]
		partNumber := p.PartNumber
		if partNumber == "" {
			partNumber = fmt.Sprintf("#%d", it.PartID)
		}
		qty := decimal.NewFromInt(int64(it.Quantity))
		values := []any{
			partNumber, p.Description, it.Quantity, round(decimal.NewFromFloat(it.MarginPct).Shift(2), 1),
			roundMoney(it.UnitCost), roundMoney(it.UnitPrice),
			round(decimal.NewFromFloat(it.UnitCost).Mul(qty), 2),
			round(decimal.NewFromFloat(it.UnitPrice).Mul(qty), 2),
			roundMoney(it.MaterialCostUnit), roundMoney(it.MachineCostUnit), roundMoney(it.LaborCostUnit),
			roundMoney(it.ToolingCostUnit), roundMoney(it.ProgrammingCostUnit), roundMoney(it.InspectionCostUnit),
			roundMoney(it.ConsumablesCostUnit), roundMoney(it.OverheadCostUnit),
			round(decimal.NewFromFloat(it.TotalTimePerPart), 4),
		}
		for i, v := range values {
			cell, _ := excelize.CoordinatesToCellName(i+1, row)
			cells[cell] = v
		}
		row++
	}

	totalsRow := row + 1
	cells[fmt.Sprintf("A%d", totalsRow)] = "Total Cost"
	cells[fmt.Sprintf("B%d", totalsRow)] = roundMoney(d.Totals.TotalCost)
	cells[fmt.Sprintf("A%d", totalsRow+1)] = "Total Price"
	cells[fmt.Sprintf("B%d", totalsRow+1)] = roundMoney(d.Totals.TotalPrice)
	cells[fmt.Sprintf("A%d", totalsRow+2)] = "Profit"
	cells[fmt.Sprintf("B%d", totalsRow+2)] = roundMoney(d.Totals.Profit)

	for cell, v := range cells {
		if err := f.SetCellValue(sheetName, cell, v); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("set %s: %w", cell, err)
		}
	}

	lastHeader, _ := excelize.CoordinatesToCellName(len(itemHeaders), itemHeaderRow)
	styled := []struct{ from, to string }{
		{"A1", fmt.Sprintf("A%d", len(meta))},
		{fmt.Sprintf("A%d", itemHeaderRow), lastHeader},
		{fmt.Sprintf("A%d", totalsRow), fmt.Sprintf("A%d", totalsRow+2)},
	}
	for _, s := range styled {
		if err := f.SetCellStyle(sheetName, s.from, s.to, boldStyle); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("style %s:%s: %w", s.from, s.to, err)
		}
	}

	if err := f.SetColWidth(sheetName, "A", "B", 22); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("set column width: %w", err)
	}
	return f, nil
}

func roundMoney(v float64) float64 { return round(decimal.NewFromFloat(v), 2) }

func round(d decimal.Decimal, places int32) float64 {
	return d.Round(places).InexactFloat64()
}
