package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grantdozier/dtg-fabrication-automations/internal/db"
	"github.com/grantdozier/dtg-fabrication-automations/internal/migrations"
	"github.com/grantdozier/dtg-fabrication-automations/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	database, err := db.Open(context.Background(), filepath.Join(t.TempDir(), "store-test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	require.NoError(t, migrations.Up(database))
	return New(database)
}

type fixture struct {
	customer model.Customer
	material model.Material
	mill     model.Machine
	lathe    model.Machine
}

func seedCatalog(t *testing.T, s *Store) fixture {
	t.Helper()
	ctx := context.Background()

	var f fixture
	var err error
	f.customer, err = s.CreateCustomer(ctx, model.Customer{Name: "Bayou Fabrication LLC", Email: "ops@bayoufab.com"})
	require.NoError(t, err)
	f.material, err = s.CreateMaterial(ctx, model.Material{Name: "6061-T6 Aluminum", CostPerLb: 3.75, DensityLbIn3: 0.0975})
	require.NoError(t, err)
	f.mill, err = s.CreateMachine(ctx, model.Machine{Name: "Haas VF-2", MachineRatePerHr: 85, LaborRatePerHr: 35})
	require.NoError(t, err)
	f.lathe, err = s.CreateMachine(ctx, model.Machine{Name: "Haas ST-10", MachineType: "lathe", MachineRatePerHr: 75, LaborRatePerHr: 32})
	require.NoError(t, err)
	return f
}

func TestCatalogRecordsRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	f := seedCatalog(t, s)

	c, err := s.GetCustomer(ctx, f.customer.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bayou Fabrication LLC", c.Name)
	assert.Equal(t, "ops@bayoufab.com", c.Email)
	assert.Empty(t, c.Phone)
	assert.False(t, c.CreatedAt.IsZero())

	m, err := s.GetMaterial(ctx, f.material.ID)
	require.NoError(t, err)
	assert.Equal(t, f.material, m)

	mc, err := s.GetMachine(ctx, f.mill.ID)
	require.NoError(t, err)
	assert.Equal(t, "mill", mc.MachineType)

	machines, err := s.ListMachines(ctx)
	require.NoError(t, err)
	require.Len(t, machines, 2)
	assert.Equal(t, "Haas ST-10", machines[0].Name)

	materials, err := s.ListMaterials(ctx)
	require.NoError(t, err)
	assert.Len(t, materials, 1)

	customers, err := s.ListCustomers(ctx)
	require.NoError(t, err)
	assert.Len(t, customers, 1)
}

func TestCatalogNotFound(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.GetCustomer(ctx, 42)
	assert.ErrorIs(t, err, model.ErrNotFound)
	_, err = s.GetMaterial(ctx, 42)
	assert.ErrorIs(t, err, model.ErrNotFound)
	_, err = s.GetMachine(ctx, 42)
	assert.ErrorIs(t, err, model.ErrNotFound)
	_, err = s.GetPart(ctx, 42)
	assert.ErrorIs(t, err, model.ErrNotFound)
	_, err = s.GetQuote(ctx, 42)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestCatalogRejectsInvalidRecords(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.CreateCustomer(ctx, model.Customer{Name: "  "})
	assert.ErrorIs(t, err, model.ErrInvalidInput)
	_, err = s.CreateMaterial(ctx, model.Material{Name: "Brass", CostPerLb: -1})
	assert.ErrorIs(t, err, model.ErrInvalidInput)
	_, err = s.CreateMachine(ctx, model.Machine{Name: "Mill", LaborRatePerHr: -3})
	assert.ErrorIs(t, err, model.ErrInvalidInput)
}

func TestCreatePart_ResolvesMaterialAndMachinesInSequenceOrder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	f := seedCatalog(t, s)

	part, err := s.CreatePart(ctx, model.Part{
		PartNumber:           "BRKT-001",
		Description:          "Aluminum mounting bracket",
		MaterialID:           f.material.ID,
		StockWeightLb:        1.2,
		ScrapFactor:          0.05,
		ProgrammingTimeHr:    2.5,
		ProgrammingRatePerHr: 75,
		OverheadRatePct:      0.5,
		Operations: []model.Operation{
			{Name: "Deburr", Type: model.OperationDeburr, Sequence: 30, MachineID: f.mill.ID, CycleTimeHr: 0.08},
			{Name: "Face", Sequence: 10, MachineID: f.mill.ID, SetupTimeHr: 1.5, CycleTimeHr: 0.25, AllowancePct: 0.1},
			{Name: "Turn A", Type: model.OperationFinishing, Sequence: 20, MachineID: f.lathe.ID, CycleTimeHr: 0.15},
			{Name: "Turn B", Type: model.OperationFinishing, Sequence: 20, MachineID: f.lathe.ID, CycleTimeHr: 0.1},
		},
	})
	require.NoError(t, err)

	require.NotNil(t, part.Material)
	assert.Equal(t, "6061-T6 Aluminum", part.Material.Name)
	assert.Equal(t, 3.75, part.Material.CostPerLb)

	var names []string
	for _, op := range part.Operations {
		require.NotNil(t, op.Machine, op.Name)
		names = append(names, op.Name)
	}
	assert.Equal(t, []string{"Face", "Turn A", "Turn B", "Deburr"}, names)
	assert.Equal(t, model.OperationMachining, part.Operations[0].Type)
	assert.Equal(t, "lathe", part.Operations[1].Machine.MachineType)
	assert.Equal(t, 75.0, part.Operations[1].Machine.MachineRatePerHr)

	parts, err := s.ListParts(ctx)
	require.NoError(t, err)
	require.Len(t, parts, 1)
	assert.Len(t, parts[0].Operations, 4)
}

func TestCreatePart_RejectsDuplicatesAndUnknownReferences(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	f := seedCatalog(t, s)

	base := model.Part{PartNumber: "SHAFT-100", MaterialID: f.material.ID, StockWeightLb: 2.5}
	_, err := s.CreatePart(ctx, base)
	require.NoError(t, err)

	_, err = s.CreatePart(ctx, base)
	assert.ErrorIs(t, err, model.ErrInvalidInput)

	unknownMaterial := base
	unknownMaterial.PartNumber = "SHAFT-200"
	unknownMaterial.MaterialID = 999
	_, err = s.CreatePart(ctx, unknownMaterial)
	assert.ErrorIs(t, err, model.ErrInvalidInput)

	unknownMachine := base
	unknownMachine.PartNumber = "SHAFT-300"
	unknownMachine.Operations = []model.Operation{{Name: "Turn", Sequence: 10, MachineID: 999}}
	_, err = s.CreatePart(ctx, unknownMachine)
	var ve *model.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "operations[0].machine_id", ve.Field)

	parts, err := s.ListParts(ctx)
	require.NoError(t, err)
	assert.Len(t, parts, 1, "failed creates must roll back")
}

func TestCreateQuote_FreezesItemValues(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	f := seedCatalog(t, s)
	part, err := s.CreatePart(ctx, model.Part{PartNumber: "P-1", MaterialID: f.material.ID, StockWeightLb: 1})
	require.NoError(t, err)

	item := model.QuoteItem{
		PartID:           part.ID,
		Quantity:         100,
		MarginPct:        0.15,
		UnitCost:         21.55,
		UnitPrice:        24.7825,
		MaterialCostUnit: 10.5,
		MachineCostUnit:  7.2,
		LaborCostUnit:    3.6,
		ToolingCostUnit:  0.2,
		TotalTimePerPart: 0.12,
	}
	q, err := s.CreateQuote(ctx, model.Quote{CustomerID: f.customer.ID, Notes: "ship in 48h", Items: []model.QuoteItem{item}})
	require.NoError(t, err)

	assert.Equal(t, QuoteNumber(q.ID), q.QuoteNumber)
	assert.Equal(t, model.QuoteStatusDraft, q.Status)
	assert.Equal(t, "ship in 48h", q.Notes)
	require.Len(t, q.Items, 1)

	got := q.Items[0]
	assert.NotZero(t, got.ID)
	assert.Equal(t, q.ID, got.QuoteID)
	item.ID, item.QuoteID = got.ID, got.QuoteID
	assert.Equal(t, item, got)
}

func TestListQuotes_FiltersAndOrdersNewestFirst(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	f := seedCatalog(t, s)
	other, err := s.CreateCustomer(ctx, model.Customer{Name: "Delta Manufacturing Co"})
	require.NoError(t, err)

	first, err := s.CreateQuote(ctx, model.Quote{CustomerID: f.customer.ID, Notes: "urgent brackets"})
	require.NoError(t, err)
	second, err := s.CreateQuote(ctx, model.Quote{CustomerID: other.ID, Notes: "annual shafts"})
	require.NoError(t, err)

	all, err := s.ListQuotes(ctx, model.QuoteFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[0].ID)
	assert.Equal(t, first.ID, all[1].ID)
	assert.Empty(t, all[0].Items)

	byNotes, err := s.ListQuotes(ctx, model.QuoteFilter{Query: "bracket"})
	require.NoError(t, err)
	require.Len(t, byNotes, 1)
	assert.Equal(t, first.ID, byNotes[0].ID)

	byNumber, err := s.ListQuotes(ctx, model.QuoteFilter{Query: second.QuoteNumber})
	require.NoError(t, err)
	require.Len(t, byNumber, 1)
	assert.Equal(t, second.ID, byNumber[0].ID)

	byCustomer, err := s.ListQuotes(ctx, model.QuoteFilter{CustomerID: other.ID})
	require.NoError(t, err)
	require.Len(t, byCustomer, 1)
	assert.Equal(t, second.ID, byCustomer[0].ID)
}
