package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/tax-portal/internal/model"
)

// ClientRepo persists the tax clients managed through the dashboard.
type ClientRepo struct{ DB *sql.DB }

func NewClientRepo(db *sql.DB) *ClientRepo { return &ClientRepo{DB: db} }

const clientCols = "id,full_name,email,sin_last4,filing_year,status,created_at,updated_at"

// List returns clients ordered by name, optionally filtered by a
// case-insensitive substring of name or email.
func (r *ClientRepo) List(ctx context.Context, q string) ([]model.Client, error) {
	query := "SELECT " + clientCols + " FROM clients"
	var args []any
	if q = strings.TrimSpace(q); q != "" {
		query += " WHERE LOWER(full_name) LIKE ? OR LOWER(email) LIKE ?"
		like := "%" + strings.ToLower(q) + "%"
		args = append(args, like, like)
	}
	query += " ORDER BY full_name"

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Client
	for rows.Next() {
		var c model.Client
		if err := rows.Scan(&c.ID, &c.FullName, &c.Email, &c.SINLast4, &c.FilingYear, &c.Status, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// GetByID fetches one client.
func (r *ClientRepo) GetByID(ctx context.Context, id uint64) (model.Client, error) {
	var c model.Client
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+clientCols+" FROM clients WHERE id=? LIMIT 1", id).
		Scan(&c.ID, &c.FullName, &c.Email, &c.SINLast4, &c.FilingYear, &c.Status, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

// Create inserts a client and returns its ID.
func (r *ClientRepo) Create(ctx context.Context, fullName, email, sinLast4 string, filingYear int) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO clients (full_name, email, sin_last4, filing_year, status) VALUES (?,?,?,?,?)",
		strings.TrimSpace(fullName), strings.ToLower(strings.TrimSpace(email)), sinLast4, filingYear, model.ClientStatusActive)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// UpdateStatus moves a client through the filing pipeline.
func (r *ClientRepo) UpdateStatus(ctx context.Context, id uint64, status string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE clients SET status=?, updated_at=NOW() WHERE id=?", status, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
