// Package export renders stored quotes for customers: a plain-text summary and an XLSX workbook.
package export

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/grantdozier/dtg-fabrication-automations/internal/quoting"
)

const dateLayout = "2006-01-02"

// Text renders d as a plain-text quote summary.
func Text(d quoting.QuoteDetail) string {
	q := d.Quote

	var b strings.Builder
	fmt.Fprintf(&b, "Quote %s (%s)\n", q.QuoteNumber, q.Status)
	fmt.Fprintf(&b, "Customer: %s\n", d.Customer.Name)
	if !q.CreatedAt.IsZero() {
		fmt.Fprintf(&b, "Date: %s\n", q.CreatedAt.Format(dateLayout))
	}
	if q.Notes != "" {
		fmt.Fprintf(&b, "Notes: %s\n", q.Notes)
	}

	b.WriteString("\nItems:\n")
	if len(q.Items) == 0 {
		b.WriteString("  (none)\n")
	}
	for i, it := range q.Items {
		qty := decimal.NewFromInt(int64(it.Quantity))
		fmt.Fprintf(&b, "  %d. %s\n", i+1, partLabel(d, it.PartID))
		fmt.Fprintf(&b, "     Quantity: %d  Markup: %s%%\n", it.Quantity, percent(it.MarginPct))
		fmt.Fprintf(&b, "     Unit cost: %s  Unit price: %s\n", money(it.UnitCost), money(it.UnitPrice))
		fmt.Fprintf(&b, "     Extended cost: %s  Extended price: %s\n",
			decimal.NewFromFloat(it.UnitCost).Mul(qty).StringFixed(2),
			decimal.NewFromFloat(it.UnitPrice).Mul(qty).StringFixed(2))
		fmt.Fprintf(&b, "     Per part: material %s, machine %s, labor %s",
			money(it.MaterialCostUnit), money(it.MachineCostUnit), money(it.LaborCostUnit))
		if extra := it.ToolingCostUnit + it.ProgrammingCostUnit + it.InspectionCostUnit + it.ConsumablesCostUnit + it.OverheadCostUnit; extra != 0 {
			fmt.Fprintf(&b, ", tooling %s, programming %s, inspection %s, consumables %s, overhead %s",
				money(it.ToolingCostUnit), money(it.ProgrammingCostUnit), money(it.InspectionCostUnit),
				money(it.ConsumablesCostUnit), money(it.OverheadCostUnit))
		}
		b.WriteString("\n")
		fmt.Fprintf(&b, "     Time per part: %sh\n", hours(it.TotalTimePerPart))
	}

	b.WriteString("\nTotals:\n")
	fmt.Fprintf(&b, "  Cost: %s\n", money(d.Totals.TotalCost))
	fmt.Fprintf(&b, "  Price: %s\n", money(d.Totals.TotalPrice))
	fmt.Fprintf(&b, "  Profit: %s\n", money(d.Totals.Profit))
	return b.String()
}

func partLabel(d quoting.QuoteDetail, partID int64) string {
	p, ok := d.Parts[partID]
	if !ok {
		return fmt.Sprintf("part #%d", partID)
	}
	if p.Description == "" {
		return p.PartNumber
	}
	return p.PartNumber + " " + p.Description
}

func money(v float64) string { return decimal.NewFromFloat(v).StringFixed(2) }

func hours(v float64) string { return decimal.NewFromFloat(v).StringFixed(4) }

func percent(fraction float64) string {
	return decimal.NewFromFloat(fraction).Shift(2).StringFixed(1)
}
