package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/grantdozier/dtg-fabrication-automations/internal/model"
)

const defaultMachineType = "mill"

// CreateMachine inserts m and returns it with its assigned id.
func (s *Store) CreateMachine(ctx context.Context, m model.Machine) (model.Machine, error) {
	if err := m.Validate(); err != nil {
		return model.Machine{}, err
	}
	if m.MachineType == "" {
		m.MachineType = defaultMachineType
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO machines (name, machine_type, machine_rate_per_hr, labor_rate_per_hr, description)
		VALUES (?, ?, ?, ?, ?)
	`, m.Name, m.MachineType, m.MachineRatePerHr, m.LaborRatePerHr, nullString(m.Description))
	if err != nil {
		return model.Machine{}, fmt.Errorf("insert machine: %w", err)
	}
	if m.ID, err = res.LastInsertId(); err != nil {
		return model.Machine{}, fmt.Errorf("read machine id: %w", err)
	}
	return m, nil
}

// GetMachine returns the machine with id, or an error wrapping model.ErrNotFound.
func (s *Store) GetMachine(ctx context.Context, id int64) (model.Machine, error) {
	return getMachine(ctx, s.db, id)
}

func getMachine(ctx context.Context, q querier, id int64) (model.Machine, error) {
	var m model.Machine
	err := q.QueryRowContext(ctx, `
		SELECT id, name, machine_type, machine_rate_per_hr, labor_rate_per_hr, COALESCE(description, '')
		FROM machines
		WHERE id = ?
	`, id).Scan(&m.ID, &m.Name, &m.MachineType, &m.MachineRatePerHr, &m.LaborRatePerHr, &m.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Machine{}, model.NotFound("machine", id)
	}
	if err != nil {
		return model.Machine{}, fmt.Errorf("query machine: %w", err)
	}
	return m, nil
}

// ListMachines returns all machines ordered by name.
func (s *Store) ListMachines(ctx context.Context) ([]model.Machine, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, machine_type, machine_rate_per_hr, labor_rate_per_hr, COALESCE(description, '')
		FROM machines
		ORDER BY name, id
	`)
	if err != nil {
		return nil, fmt.Errorf("query machines: %w", err)
	}
	defer rows.Close()

	machines := make([]model.Machine, 0)
	for rows.Next() {
		var m model.Machine
		if err := rows.Scan(&m.ID, &m.Name, &m.MachineType, &m.MachineRatePerHr, &m.LaborRatePerHr, &m.Description); err != nil {
			return nil, fmt.Errorf("scan machine: %w", err)
		}
		machines = append(machines, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate machines: %w", err)
	}
	return machines, nil
}
