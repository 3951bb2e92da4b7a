package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/iliyamo/tax-portal/internal/model"
	"github.com/iliyamo/tax-portal/internal/utils"
)

// StaffRepo persists staff accounts (the only users who can sign in).
type StaffRepo struct{ DB *sql.DB }

func NewStaffRepo(db *sql.DB) *StaffRepo { return &StaffRepo{DB: db} }

// ErrEmailExists wraps ErrConflict so handlers can match either.
var ErrEmailExists = fmt.Errorf("email already exists: %w", ErrConflict)

// Create inserts a staff account and returns its ID. Permissions are
// stored as a comma-joined column.
func (r *StaffRepo) Create(ctx context.Context, email, name, password, role string, perms []string, cost int) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO staff (email, name, password_hash, role, permissions) VALUES (?,?,?,?,?)",
		email, name, hash, role, strings.Join(perms, ","))
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail fetches an account by normalized email.
func (r *StaffRepo) GetByEmail(ctx context.Context, email string) (model.StaffAccount, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return r.scanOne(ctx,
		"SELECT id,email,name,password_hash,role,permissions,is_active,created_at,updated_at FROM staff WHERE email=? LIMIT 1",
		email)
}

// GetByID fetches an account by id.
func (r *StaffRepo) GetByID(ctx context.Context, id uint64) (model.StaffAccount, error) {
	return r.scanOne(ctx,
		"SELECT id,email,name,password_hash,role,permissions,is_active,created_at,updated_at FROM staff WHERE id=? LIMIT 1",
		id)
}

func (r *StaffRepo) scanOne(ctx context.Context, query string, arg any) (model.StaffAccount, error) {
	var (
		a     model.StaffAccount
		perms string
	)
	err := r.DB.QueryRowContext(ctx, query, arg).Scan(
		&a.ID, &a.Email, &a.Name, &a.PasswordHash, &a.Role, &perms,
		&a.IsActive, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return model.StaffAccount{}, err
	}
	if perms != "" {
		a.Permissions = strings.Split(perms, ",")
	}
	return a, nil
}
