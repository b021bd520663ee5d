package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/grantdozier/dtg-fabrication-automations/internal/model"
)

// CreateCustomer inserts c and returns it with its assigned id.
func (s *Store) CreateCustomer(ctx context.Context, c model.Customer) (model.Customer, error) {
	if err := c.Validate(); err != nil {
		return model.Customer{}, err
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO customers (name, email, phone)
		VALUES (?, ?, ?)
	`, c.Name, nullString(c.Email), nullString(c.Phone))
	if err != nil {
		return model.Customer{}, fmt.Errorf("insert customer: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Customer{}, fmt.Errorf("read customer id: %w", err)
	}
	return s.GetCustomer(ctx, id)
}

// GetCustomer returns the customer with id, or an error wrapping model.ErrNotFound.
func (s *Store) GetCustomer(ctx context.Context, id int64) (model.Customer, error) {
	var c model.Customer
	var createdAt string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, COALESCE(email, ''), COALESCE(phone, ''), created_at
		FROM customers
		WHERE id = ?
	`, id).Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Customer{}, model.NotFound("customer", id)
	}
	if err != nil {
		return model.Customer{}, fmt.Errorf("query customer: %w", err)
	}
	c.CreatedAt = parseTimestamp(createdAt)
	return c, nil
}

// ListCustomers returns all customers ordered by name.
func (s *Store) ListCustomers(ctx context.Context) ([]model.Customer, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, COALESCE(email, ''), COALESCE(phone, ''), created_at
		FROM customers
		ORDER BY name, id
	`)
	if err != nil {
		return nil, fmt.Errorf("query customers: %w", err)
	}
	defer rows.Close()

	customers := make([]model.Customer, 0)
	for rows.Next() {
		var c model.Customer
		var createdAt string
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &createdAt); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		c.CreatedAt = parseTimestamp(createdAt)
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate customers: %w", err)
	}
	return customers, nil
}
