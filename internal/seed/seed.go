// Package seed loads a demo shop catalog: customers, stock materials, machines and routed parts.
package seed

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Stats contains seed operation counters.
type Stats struct {
	Inserts int
	Skipped int
}

type customer struct{ name, email, phone string }

type material struct {
	name                 string
	costPerLb, densityLb float64
	description          string
}

type machine struct {
	name, kind      string
	rate, laborRate float64
	description     string
}

type operation struct {
	name, kind, machine       string
	sequence                  int
	setupHr, cycleHr          float64
	allowance                 float64
	toolChangeMin, inspectMin float64
	toolCost, consumables     float64
}

type part struct {
	number, description, material  string
	stockLb, scrap                 float64
	programmingHr, programmingRate float64
	faiHr, overhead                float64
	operations                     []operation
}

var customers = []customer{
	{"Bayou Fabrication LLC", "ops@bayoufab.com", "225-555-0100"},
	{"Delta Manufacturing Co", "quotes@deltamfg.com", "504-555-0101"},
	{"Gulf Coast Machining", "purchasing@gulfcoast.com", "337-555-0102"},
	{"Pelican Precision Parts", "orders@pelicanparts.com", "985-555-0103"},
	{"Acadia Aerospace", "supply@acadiaaero.com", "337-555-0108"},
}

var materials = []material{
	{"6061-T6 Aluminum", 3.75, 0.0975, "General purpose aluminum alloy, excellent machinability"},
	{"7075-T6 Aluminum", 5.20, 0.101, "High-strength aluminum for aerospace work"},
	{"1018 Mild Steel", 1.20, 0.283, "Low carbon steel, good for general machining and welding"},
	{"4140 Alloy Steel", 2.15, 0.283, "Heat treatable steel, high strength and toughness"},
	{"304 Stainless Steel", 4.50, 0.290, "Corrosion resistant, food grade, harder to machine"},
	{"Brass (C360)", 7.50, 0.307, "Free-machining brass for high-volume production"},
}

var machines = []machine{
	{"Haas VF-2 (3-axis Mill)", "mill", 85, 35, "40x20x25 work envelope, workhorse 3-axis mill"},
	{"Haas VF-4 (3-axis Mill)", "mill", 95, 35, "50x20x25 work envelope"},
	{"DMG Mori NHX5000 (5-axis)", "mill", 145, 45, "5-axis machining center for complex geometries"},
	{"Doosan Puma 2100 Lathe", "lathe", 95, 38, "Turning center with live tooling, 8-inch chuck"},
	{"Mazak Quick Turn 250", "lathe", 105, 38, "High-speed turning center with sub-spindle"},
	{"Haas ST-10 Lathe", "lathe", 75, 32, "Entry-level lathe for simple turned parts"},
}

// Overhead values are fractions of machine and labor cost on top of that cost.
var parts = []part{
	{
		number: "BRKT-001", description: "Aluminum mounting bracket with 4x thru holes", material: "6061-T6 Aluminum",
		stockLb: 1.2, scrap: 0.05, programmingHr: 2.5, programmingRate: 75, faiHr: 0.75, overhead: 0.5,
		operations: []operation{
			{"Mill Op 10 - Face & Rough", "roughing", "Haas VF-2 (3-axis Mill)", 10, 1.5, 0.25, 0.10, 3, 2, 0.85, 0.50},
			{"Mill Op 20 - Finish & Drill", "finishing", "Haas VF-2 (3-axis Mill)", 20, 0.5, 0.15, 0.08, 2, 3, 0.65, 0.35},
			{"Deburr & Inspect", "deburr", "Haas VF-2 (3-axis Mill)", 30, 0.25, 0.08, 0.05, 0, 5, 0.15, 0.25},
		},
	},
	{
		number: "SHAFT-100", description: "Precision turned shaft, +/- 0.001 tolerance", material: "1018 Mild Steel",
		stockLb: 2.5, scrap: 0.08, programmingHr: 1.5, programmingRate: 75, faiHr: 0.5, overhead: 0.5,
		operations: []operation{
			{"Lathe Op 10 - Rough Turn", "roughing", "Doosan Puma 2100 Lathe", 10, 1.5, 0.25, 0.12, 2.5, 1.5, 0.65, 0.40},
			{"Lathe Op 20 - Finish Turn", "finishing", "Doosan Puma 2100 Lathe", 20, 0.25, 0.18, 0.08, 2, 4, 0.55, 0.30},
		},
	},
	{
		number: "HOUSING-250", description: "Complex aluminum housing with internal features", material: "6061-T6 Aluminum",
		stockLb: 8.5, scrap: 0.12, programmingHr: 8, programmingRate: 85, faiHr: 1.5, overhead: 0.6,
		operations: []operation{
			{"5-Axis Op 10 - Rough & Semi-finish", "roughing", "DMG Mori NHX5000 (5-axis)", 10, 4, 1.5, 0.15, 5, 3, 2.50, 1.20},
			{"5-Axis Op 20 - Finish", "finishing", "DMG Mori NHX5000 (5-axis)", 20, 0.5, 0.75, 0.10, 3, 5, 1.80, 0.85},
		},
	},
	{
		number: "FLANGE-304", description: "6-inch 304SS pipe flange with bolt circle", material: "304 Stainless Steel",
		stockLb: 12, scrap: 0.10, programmingHr: 3, programmingRate: 75, faiHr: 1, overhead: 0.5,
		operations: []operation{
			{"Mill Op 10 - Face & Bore", "machining", "Haas VF-4 (3-axis Mill)", 10, 2, 0.85, 0.12, 4, 2.5, 1.25, 0.75},
			{"Mill Op 20 - Drill Bolt Circle", "machining", "Haas VF-4 (3-axis Mill)", 20, 0.75, 0.35, 0.08, 2, 3.5, 0.95, 0.55},
		},
	},
	{
		number: "BUSHING-BR-050", description: "Brass sleeve bushing, 0.500 ID x 0.750 OD", material: "Brass (C360)",
		stockLb: 0.35, scrap: 0.05, programmingHr: 0.5, programmingRate: 75, faiHr: 0.25, overhead: 0.5,
		operations: []operation{
			{"Lathe Op 10 - Turn & Bore", "machining", "Haas ST-10 Lathe", 10, 0.75, 0.08, 0.08, 1.5, 2, 0.25, 0.20},
		},
	},
}

// Run loads the demo catalog in one transaction. Records are matched by name or part number,
// so running it again inserts nothing.
func Run(ctx context.Context, db *sql.DB) (Stats, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return Stats{}, fmt.Errorf("begin seed transaction: %w", err)
	}

	stats := Stats{}
	steps := []func(context.Context, *sql.Tx, *Stats) error{
		ensureCustomers,
		ensureMaterials,
		ensureMachines,
		ensureParts,
	}
	for _, step := range steps {
		if err := step(ctx, tx, &stats); err != nil {
			_ = tx.Rollback()
			return Stats{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return Stats{}, fmt.Errorf("commit seed transaction: %w", err)
	}

	return stats, nil
}

func exists(ctx context.Context, tx *sql.Tx, query string, arg any) (bool, error) {
	var ok bool
	if err := tx.QueryRowContext(ctx, query, arg).Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}

func lookupID(ctx context.Context, tx *sql.Tx, query, name string) (int64, error) {
	var id int64
	err := tx.QueryRowContext(ctx, query, name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("seed references unknown record %q", name)
	}
	return id, err
}

func ensureCustomers(ctx context.Context, tx *sql.Tx, stats *Stats) error {
	for _, c := range customers {
		found, err := exists(ctx, tx, `SELECT EXISTS(SELECT 1 FROM customers WHERE name = ? LIMIT 1)`, c.name)
		if err != nil {
			return fmt.Errorf("check customer %q: %w", c.name, err)
		}
		if found {
			stats.Skipped++
			continue
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO customers (name, email, phone)
			VALUES (?, ?, ?)
		`, c.name, c.email, c.phone); err != nil {
			return fmt.Errorf("insert customer %q: %w", c.name, err)
		}
		stats.Inserts++
	}
	return nil
}

func ensureMaterials(ctx context.Context, tx *sql.Tx, stats *Stats) error {
	for _, m := range materials {
		found, err := exists(ctx, tx, `SELECT EXISTS(SELECT 1 FROM materials WHERE name = ? LIMIT 1)`, m.name)
		if err != nil {
			return fmt.Errorf("check material %q: %w", m.name, err)
		}
		if found {
			stats.Skipped++
			continue
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO materials (name, cost_per_lb, density_lb_in3, description)
			VALUES (?, ?, ?, ?)
		`, m.name, m.costPerLb, m.densityLb, m.description); err != nil {
			return fmt.Errorf("insert material %q: %w", m.name, err)
		}
		stats.Inserts++
	}
	return nil
}

func ensureMachines(ctx context.Context, tx *sql.Tx, stats *Stats) error {
	for _, m := range machines {
		found, err := exists(ctx, tx, `SELECT EXISTS(SELECT 1 FROM machines WHERE name = ? LIMIT 1)`, m.name)
		if err != nil {
			return fmt.Errorf("check machine %q: %w", m.name, err)
		}
		if found {
			stats.Skipped++
			continue
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO machines (name, machine_type, machine_rate_per_hr, labor_rate_per_hr, description)
			VALUES (?, ?, ?, ?, ?)
		`, m.name, m.kind, m.rate, m.laborRate, m.description); err != nil {
			return fmt.Errorf("insert machine %q: %w", m.name, err)
		}
		stats.Inserts++
	}
	return nil
}

func ensureParts(ctx context.Context, tx *sql.Tx, stats *Stats) error {
	for _, p := range parts {
		found, err := exists(ctx, tx, `SELECT EXISTS(SELECT 1 FROM parts WHERE part_number = ? LIMIT 1)`, p.number)
		if err != nil {
			return fmt.Errorf("check part %q: %w", p.number, err)
		}
		if found {
			stats.Skipped++
			continue
		}

		materialID, err := lookupID(ctx, tx, `SELECT id FROM materials WHERE name = ?`, p.material)
		if err != nil {
			return fmt.Errorf("resolve material of %q: %w", p.number, err)
		}

		res, err := tx.ExecContext(ctx, `
			INSERT INTO parts (
				part_number, description, material_id, stock_weight_lb, scrap_factor,
				programming_time_hr, programming_rate_per_hr, first_article_inspection_hr, overhead_rate_pct
			)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, p.number, p.description, materialID, p.stockLb, p.scrap,
			p.programmingHr, p.programmingRate, p.faiHr, p.overhead)
		if err != nil {
			return fmt.Errorf("insert part %q: %w", p.number, err)
		}
		partID, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("read id of part %q: %w", p.number, err)
		}

		for _, op := range p.operations {
			machineID, err := lookupID(ctx, tx, `SELECT id FROM machines WHERE name = ?`, op.machine)
			if err != nil {
				return fmt.Errorf("resolve machine of %q: %w", op.name, err)
			}
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO operations (
					part_id, machine_id, name, operation_type, sequence, setup_time_hr, cycle_time_hr,
					allowance_pct, tool_change_time_min, inspection_time_min, tool_cost_per_part,
					consumables_cost_per_part
				)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			`, partID, machineID, op.name, op.kind, op.sequence, op.setupHr, op.cycleHr,
				op.allowance, op.toolChangeMin, op.inspectMin, op.toolCost, op.consumables); err != nil {
				return fmt.Errorf("insert operation %q of %q: %w", op.name, p.number, err)
			}
		}
		stats.Inserts++
	}
	return nil
}
