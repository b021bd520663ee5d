package pricing

// LineItem is a stored, already priced quote line.
type LineItem struct {
	Quantity  int
	UnitCost  float64
	UnitPrice float64
}

// QuoteTotals contains roll-up values for a multi-item quote.
type QuoteTotals struct {
	TotalCost  float64
	TotalPrice float64
	Profit     float64
}

// Aggregate sums the extended cost and price of items. Unit figures are taken as stored.
func Aggregate(items []LineItem) QuoteTotals {
	var t QuoteTotals
	for _, it := range items {
		q := float64(it.Quantity)
		t.TotalCost += it.UnitCost * q
		t.TotalPrice += it.UnitPrice * q
	}
	t.Profit = t.TotalPrice - t.TotalCost
	return t
}
