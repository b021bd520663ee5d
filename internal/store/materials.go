package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/grantdozier/dtg-fabrication-automations/internal/model"
)

// CreateMaterial inserts m and returns it with its assigned id.
func (s *Store) CreateMaterial(ctx context.Context, m model.Material) (model.Material, error) {
	if err := m.Validate(); err != nil {
		return model.Material{}, err
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO materials (name, cost_per_lb, density_lb_in3, description)
		VALUES (?, ?, ?, ?)
	`, m.Name, m.CostPerLb, m.DensityLbIn3, nullString(m.Description))
	if err != nil {
		return model.Material{}, fmt.Errorf("insert material: %w", err)
	}
	if m.ID, err = res.LastInsertId(); err != nil {
		return model.Material{}, fmt.Errorf("read material id: %w", err)
	}
	return m, nil
}

// GetMaterial returns the material with id, or an error wrapping model.ErrNotFound.
func (s *Store) GetMaterial(ctx context.Context, id int64) (model.Material, error) {
	return getMaterial(ctx, s.db, id)
}

func getMaterial(ctx context.Context, q querier, id int64) (model.Material, error) {
	var m model.Material
	err := q.QueryRowContext(ctx, `
		SELECT id, name, cost_per_lb, density_lb_in3, COALESCE(description, '')
		FROM materials
		WHERE id = ?
	`, id).Scan(&m.ID, &m.Name, &m.CostPerLb, &m.DensityLbIn3, &m.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Material{}, model.NotFound("material", id)
	}
	if err != nil {
		return model.Material{}, fmt.Errorf("query material: %w", err)
	}
	return m, nil
}

// ListMaterials returns all materials ordered by name.
func (s *Store) ListMaterials(ctx context.Context) ([]model.Material, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, cost_per_lb, density_lb_in3, COALESCE(description, '')
		FROM materials
		ORDER BY name, id
	`)
	if err != nil {
		return nil, fmt.Errorf("query materials: %w", err)
	}
	defer rows.Close()

	materials := make([]model.Material, 0)
	for rows.Next() {
		var m model.Material
		if err := rows.Scan(&m.ID, &m.Name, &m.CostPerLb, &m.DensityLbIn3, &m.Description); err != nil {
			return nil, fmt.Errorf("scan material: %w", err)
		}
		materials = append(materials, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate materials: %w", err)
	}
	return materials, nil
}
