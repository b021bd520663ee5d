package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/grantdozier/dtg-fabrication-automations/internal/model"
	"github.com/grantdozier/dtg-fabrication-automations/internal/pricing"
	"github.com/grantdozier/dtg-fabrication-automations/internal/quoting"
)

func sampleDetail() quoting.QuoteDetail {
	return quoting.QuoteDetail{
		QuoteView: quoting.QuoteView{
			Quote: model.Quote{
				ID:          1,
				CustomerID:  3,
				QuoteNumber: "Q-00001",
				Status:      model.QuoteStatusDraft,
				Notes:       "Deliver in 48h",
				CreatedAt:   time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
				Items: []model.QuoteItem{{
					ID:                  1,
					PartID:              7,
					Quantity:            100,
					MarginPct:           0.15,
					UnitCost:            21.55,
					UnitPrice:           24.7825,
					MaterialCostUnit:    10.5,
					MachineCostUnit:     7.2,
					LaborCostUnit:       3.6,
					ToolingCostUnit:     0.2,
					ConsumablesCostUnit: 0.05,
					TotalTimePerPart:    0.12,
				}},
			},
			Totals: pricing.QuoteTotals{TotalCost: 2155, TotalPrice: 2478.25, Profit: 323.25},
		},
		Customer: model.Customer{ID: 3, Name: "Bayou Fabrication LLC"},
		Parts: map[int64]model.Part{
			7: {ID: 7, PartNumber: "BRKT-001", Description: "Aluminum mounting bracket"},
		},
	}
}

func TestTextSummary(t *testing.T) {
	body := Text(sampleDetail())

	for _, expected := range []string{
		"Quote Q-00001 (draft)",
		"Customer: Bayou Fabrication LLC",
		"Date: 2026-03-14",
		"Notes: Deliver in 48h",
		"1. BRKT-001 Aluminum mounting bracket",
		"Quantity: 100  Markup: 15.0%",
		"Unit cost: 21.55  Unit price: 24.78",
		"Extended cost: 2155.00  Extended price: 2478.25",
		"tooling 0.20",
		"Time per part: 0.1200h",
		"Price: 2478.25",
		"Profit: 323.25",
	} {
		assert.Contains(t, body, expected)
	}
}

func TestTextSummary_EmptyQuoteAndUnknownPart(t *testing.T) {
	d := sampleDetail()
	d.Parts = nil
	body := Text(d)
	assert.Contains(t, body, "1. part #7")
	assert.NotContains(t, body, "tooling 0.00")

	d.Quote.Items = nil
	d.Totals = pricing.QuoteTotals{}
	body = Text(d)
	assert.Contains(t, body, "(none)")
	assert.Contains(t, body, "Cost: 0.00")
}

func TestWorkbook(t *testing.T) {
	f, err := Workbook(sampleDetail())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	require.NoError(t, f.Close())

	reopened, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })

	assert.Equal(t, []string{sheetName}, reopened.GetSheetList())

	cases := map[string]string{
		"B1":  "Q-00001",
		"B3":  "Bayou Fabrication LLC",
		"B4":  "2026-03-14",
		"A6":  "Part Number",
		"Q6":  "Hours/Part",
		"A7":  "BRKT-001",
		"C7":  "100",
		"D7":  "15",
		"F7":  "24.78",
		"H7":  "2478.25",
		"Q7":  "0.12",
		"A9":  "Total Cost",
		"B9":  "2155",
		"B10": "2478.25",
		"B11": "323.25",
	}
	for cell, want := range cases {
		got, err := reopened.GetCellValue(sheetName, cell)
		require.NoError(t, err)
		assert.Equal(t, want, got, cell)
	}
}
