package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/tax-portal/internal/model"
)

// DocumentRepo persists uploaded documents and staff-logged
// placeholders. Status transitions happen here; which checklist slots
// a document satisfies is derived by the reconciler and never stored.
type DocumentRepo struct{ DB *sql.DB }

func NewDocumentRepo(db *sql.DB) *DocumentRepo { return &DocumentRepo{DB: db} }

const docCols = "id,client_id,name,status,version,uploaded_at,section_key,notes,created_at,updated_at"

// ListByClient returns all documents belonging to a client, newest
// first.
func (r *DocumentRepo) ListByClient(ctx context.Context, clientID uint64) ([]model.Document, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+docCols+" FROM documents WHERE client_id=? ORDER BY created_at DESC, id DESC", clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Document
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// GetByID fetches one document.
func (r *DocumentRepo) GetByID(ctx context.Context, id uint64) (model.Document, error) {
	row := r.DB.QueryRowContext(ctx, "SELECT "+docCols+" FROM documents WHERE id=? LIMIT 1", id)
	return scanDocument(row)
}

// Create logs a document (upload or placeholder) and returns its ID.
// Version starts at 1.
func (r *DocumentRepo) Create(ctx context.Context, d model.Document) (uint64, error) {
	var uploadedAt any
	if d.UploadedAt != nil {
		uploadedAt = *d.UploadedAt
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO documents (client_id, name, status, version, uploaded_at, section_key, notes) VALUES (?,?,?,1,?,?,?)",
		d.ClientID, strings.TrimSpace(d.Name), d.Status, uploadedAt, d.SectionKey, d.Notes)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// SetStatus persists a status transition computed by the reconciler,
// replacing the notes (empty string clears them).
func (r *DocumentRepo) SetStatus(ctx context.Context, id uint64, status model.DocumentStatus, notes string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE documents SET status=?, notes=?, updated_at=NOW() WHERE id=?", status, notes, id)
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

// BumpVersion records a re-upload: increments version, stamps
// uploaded_at and resets status to pending for review.
func (r *DocumentRepo) BumpVersion(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE documents SET version=version+1, uploaded_at=NOW(), status=?, updated_at=NOW() WHERE id=?",
		model.DocPending, id)
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

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface{ Scan(dest ...any) error }

func scanDocument(s scanner) (model.Document, error) {
	var (
		d          model.Document
		uploadedAt sql.NullTime
		sectionKey sql.NullString
		notes      sql.NullString
	)
	err := s.Scan(&d.ID, &d.ClientID, &d.Name, &d.Status, &d.Version,
		&uploadedAt, &sectionKey, &notes, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return model.Document{}, err
	}
	if uploadedAt.Valid {
		t := uploadedAt.Time
		d.UploadedAt = &t
	}
	d.SectionKey = sectionKey.String
	d.Notes = notes.String
	return d, nil
}
