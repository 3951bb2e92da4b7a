package model

import "time"

// DocumentStatus represents the review state of an uploaded tax document.
type DocumentStatus string

// Possible values for DocumentStatus.
const (
	DocPending           DocumentStatus = "pending"
	DocComplete          DocumentStatus = "complete"
	DocMissing           DocumentStatus = "missing"
	DocApproved          DocumentStatus = "approved"
	DocReuploadRequested DocumentStatus = "reupload_requested"
)

// Document is one uploaded (or staff-logged placeholder) tax document
// belonging to a client. Name is free text as entered by the client or
// staff; SectionKey is an optional categorical tag assigned at upload
// time ("" when untagged). Which checklist slots a document satisfies
// is derived by the reconciler at read time, never stored.
//
// Fields:
//  ID         – primary key identifier.
//  ClientID   – owning client.
//  Name       – free-text filename or label.
//  Status     – review state (see DocumentStatus values).
//  Version    – upload revision, starts at 1, bumped on re-upload.
//  UploadedAt – when the file landed; nil for placeholders not yet
//               uploaded.
//  SectionKey – optional checklist section tag, "" when absent.
//  Notes      – optional staff note, e.g. the reason a re-upload was
//               requested.
type Document struct {
	ID         uint64         `json:"id"`                    // documents.id
	ClientID   uint64         `json:"client_id"`             // documents.client_id
	Name       string         `json:"name"`                  // documents.name
	Status     DocumentStatus `json:"status"`                // documents.status
	Version    int            `json:"version"`               // documents.version
	UploadedAt *time.Time     `json:"uploaded_at,omitempty"` // documents.uploaded_at (nullable)
	SectionKey string         `json:"section_key,omitempty"` // documents.section_key
	Notes      string         `json:"notes,omitempty"`       // documents.notes
	CreatedAt  time.Time      `json:"created_at"`            // documents.created_at
	UpdatedAt  time.Time      `json:"updated_at"`            // documents.updated_at
}
