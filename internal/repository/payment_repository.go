package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/iliyamo/tax-portal/internal/model"
)

// PaymentRepo persists preparation-fee payments.
type PaymentRepo struct{ DB *sql.DB }

func NewPaymentRepo(db *sql.DB) *PaymentRepo { return &PaymentRepo{DB: db} }

// ListByClient returns a client's payments, newest first.
func (r *PaymentRepo) ListByClient(ctx context.Context, clientID uint64) ([]model.Payment, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,client_id,amount_cents,method,reference,paid_at,created_at FROM payments WHERE client_id=? ORDER BY paid_at DESC, id DESC",
		clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Payment
	for rows.Next() {
		var (
			p   model.Payment
			ref sql.NullString
		)
		if err := rows.Scan(&p.ID, &p.ClientID, &p.AmountCents, &p.Method, &ref, &p.PaidAt, &p.CreatedAt); err != nil {
			return nil, err
		}
		if ref.Valid {
			p.Reference = &ref.String
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Create records a payment and returns its ID.
func (r *PaymentRepo) Create(ctx context.Context, clientID uint64, amountCents uint32, method string, reference *string, paidAt time.Time) (uint64, error) {
	var ref any
	if reference != nil {
		ref = *reference
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO payments (client_id, amount_cents, method, reference, paid_at) VALUES (?,?,?,?,?)",
		clientID, amountCents, method, ref, paidAt)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// TotalForClient sums a client's payments in cents.
func (r *PaymentRepo) TotalForClient(ctx context.Context, clientID uint64) (uint64, error) {
	var total sql.NullInt64
	err := r.DB.QueryRowContext(ctx,
		"SELECT SUM(amount_cents) FROM payments WHERE client_id=?", clientID).Scan(&total)
	if err != nil {
		return 0, err
	}
	return uint64(total.Int64), nil
}
