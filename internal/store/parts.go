package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/grantdozier/dtg-fabrication-automations/internal/model"
)

const partColumns = `
	p.id, p.part_number, COALESCE(p.description, ''), p.material_id,
	p.stock_weight_lb, p.scrap_factor, p.programming_time_hr, p.programming_rate_per_hr,
	p.first_article_inspection_hr, p.overhead_rate_pct, p.created_at,
	m.id, m.name, m.cost_per_lb, m.density_lb_in3, COALESCE(m.description, '')`

const operationColumns = `
	o.id, o.part_id, o.machine_id, o.name, o.operation_type, o.sequence,
	o.setup_time_hr, o.cycle_time_hr, o.allowance_pct, o.tool_change_time_min,
	o.inspection_time_min, o.tool_cost_per_part, o.consumables_cost_per_part,
	mc.id, mc.name, mc.machine_type, mc.machine_rate_per_hr, mc.labor_rate_per_hr, COALESCE(mc.description, '')`

// CreatePart inserts p and its operations in one transaction. Material and machine
// references must exist and part numbers must be unique.
func (s *Store) CreatePart(ctx context.Context, p model.Part) (model.Part, error) {
	for i := range p.Operations {
		if p.Operations[i].Type == "" {
			p.Operations[i].Type = model.OperationMachining
		}
	}
	if err := p.Validate(); err != nil {
		return model.Part{}, err
	}

	var id int64
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var exists bool
		if err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM parts WHERE part_number = ?)`, p.PartNumber).Scan(&exists); err != nil {
			return fmt.Errorf("check part number: %w", err)
		}
		if exists {
			return model.Invalid("part_number", fmt.Sprintf("%q already exists", p.PartNumber))
		}

		if _, err := getMaterial(ctx, tx, p.MaterialID); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.Invalid("material_id", fmt.Sprintf("%d does not exist", p.MaterialID))
			}
			return err
		}

		res, err := tx.ExecContext(ctx, `
			INSERT INTO parts (
				part_number, description, material_id, stock_weight_lb, scrap_factor,
				programming_time_hr, programming_rate_per_hr, first_article_inspection_hr, overhead_rate_pct
			)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, p.PartNumber, nullString(p.Description), p.MaterialID, p.StockWeightLb, p.ScrapFactor,
			p.ProgrammingTimeHr, p.ProgrammingRatePerHr, p.FirstArticleInspectionHr, p.OverheadRatePct)
		if err != nil {
			return fmt.Errorf("insert part: %w", err)
		}
		if id, err = res.LastInsertId(); err != nil {
			return fmt.Errorf("read part id: %w", err)
		}

		for i, op := range p.Operations {
			if _, err := getMachine(ctx, tx, op.MachineID); err != nil {
				if errors.Is(err, model.ErrNotFound) {
					return model.Invalid(fmt.Sprintf("operations[%d].machine_id", i), fmt.Sprintf("%d does not exist", op.MachineID))
				}
				return err
			}
			if err := insertOperation(ctx, tx, id, op); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return model.Part{}, err
	}

	return s.GetPart(ctx, id)
}

func insertOperation(ctx context.Context, tx *sql.Tx, partID int64, op model.Operation) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO operations (
			part_id, machine_id, name, operation_type, sequence, setup_time_hr, cycle_time_hr,
			allowance_pct, tool_change_time_min, inspection_time_min, tool_cost_per_part, consumables_cost_per_part
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, partID, op.MachineID, op.Name, string(op.Type), op.Sequence, op.SetupTimeHr, op.CycleTimeHr,
		op.AllowancePct, op.ToolChangeTimeMin, op.InspectionTimeMin, op.ToolCostPerPart, op.ConsumablesCostPerPart)
	if err != nil {
		return fmt.Errorf("insert operation %q: %w", op.Name, err)
	}
	return nil
}

// GetPart returns the part with id with its material and every operation's machine resolved.
// Operations are ordered by sequence, then by insertion order. References that no longer
// resolve are left nil for the pricing engine to reject.
func (s *Store) GetPart(ctx context.Context, id int64) (model.Part, error) {
	parts, err := s.queryParts(ctx, `WHERE p.id = ?`, id)
	if err != nil {
		return model.Part{}, err
	}
	if len(parts) == 0 {
		return model.Part{}, model.NotFound("part", id)
	}
	return parts[0], nil
}

// ListParts returns every part, resolved as in GetPart, ordered by part number.
func (s *Store) ListParts(ctx context.Context) ([]model.Part, error) {
	return s.queryParts(ctx, "")
}

func (s *Store) queryParts(ctx context.Context, where string, args ...any) ([]model.Part, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+partColumns+`
		FROM parts p
		LEFT JOIN materials m ON m.id = p.material_id
		`+where+`
		ORDER BY p.part_number, p.id
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("query parts: %w", err)
	}
	defer rows.Close()

	parts := make([]model.Part, 0)
	index := make(map[int64]int)
	for rows.Next() {
		p, err := scanPart(rows)
		if err != nil {
			return nil, err
		}
		index[p.ID] = len(parts)
		parts = append(parts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate parts: %w", err)
	}
	if len(parts) == 0 {
		return parts, nil
	}

	ids := make([]any, 0, len(parts))
	for _, p := range parts {
		ids = append(ids, p.ID)
	}
	ops, err := s.queryOperations(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, op := range ops {
		i := index[op.PartID]
		parts[i].Operations = append(parts[i].Operations, op)
	}
	return parts, nil
}

func (s *Store) queryOperations(ctx context.Context, partIDs []any) ([]model.Operation, error) {
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(partIDs)), ", ")
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+operationColumns+`
		FROM operations o
		LEFT JOIN machines mc ON mc.id = o.machine_id
		WHERE o.part_id IN (`+placeholders+`)
		ORDER BY o.part_id, o.sequence, o.id
	`, partIDs...)
	if err != nil {
		return nil, fmt.Errorf("query operations: %w", err)
	}
	defer rows.Close()

	ops := make([]model.Operation, 0)
	for rows.Next() {
		op, err := scanOperation(rows)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate operations: %w", err)
	}
	return ops, nil
}

func scanPart(rows *sql.Rows) (model.Part, error) {
	var p model.Part
	var createdAt string
	var (
		matID      sql.NullInt64
		matName    sql.NullString
		matCost    sql.NullFloat64
		matDensity sql.NullFloat64
		matDesc    string
	)
	err := rows.Scan(
		&p.ID, &p.PartNumber, &p.Description, &p.MaterialID,
		&p.StockWeightLb, &p.ScrapFactor, &p.ProgrammingTimeHr, &p.ProgrammingRatePerHr,
		&p.FirstArticleInspectionHr, &p.OverheadRatePct, &createdAt,
		&matID, &matName, &matCost, &matDensity, &matDesc,
	)
	if err != nil {
		return model.Part{}, fmt.Errorf("scan part: %w", err)
	}
	p.CreatedAt = parseTimestamp(createdAt)
	if matID.Valid {
		p.Material = &model.Material{
			ID:           matID.Int64,
			Name:         matName.String,
			CostPerLb:    matCost.Float64,
			DensityLbIn3: matDensity.Float64,
			Description:  matDesc,
		}
	}
	return p, nil
}

func scanOperation(rows *sql.Rows) (model.Operation, error) {
	var op model.Operation
	var opType string
	var (
		mcID    sql.NullInt64
		mcName  sql.NullString
		mcType  sql.NullString
		mcRate  sql.NullFloat64
		mcLabor sql.NullFloat64
		mcDesc  string
	)
	err := rows.Scan(
		&op.ID, &op.PartID, &op.MachineID, &op.Name, &opType, &op.Sequence,
		&op.SetupTimeHr, &op.CycleTimeHr, &op.AllowancePct, &op.ToolChangeTimeMin,
		&op.InspectionTimeMin, &op.ToolCostPerPart, &op.ConsumablesCostPerPart,
		&mcID, &mcName, &mcType, &mcRate, &mcLabor, &mcDesc,
	)
	if err != nil {
		return model.Operation{}, fmt.Errorf("scan operation: %w", err)
	}
	op.Type = model.OperationType(opType)
	if mcID.Valid {
		op.Machine = &model.Machine{
			ID:               mcID.Int64,
			Name:             mcName.String,
			MachineType:      mcType.String,
			MachineRatePerHr: mcRate.Float64,
			LaborRatePerHr:   mcLabor.Float64,
			Description:      mcDesc,
		}
	}
	return op, nil
}
