package model

import "time"

// Client filing statuses as stored in clients.status.
const (
	ClientStatusActive            = "ACTIVE"
	ClientStatusAwaitingDocuments = "AWAITING_DOCUMENTS"
	ClientStatusInReview          = "IN_REVIEW"
	ClientStatusFiled             = "FILED"
	ClientStatusArchived          = "ARCHIVED"
)

// Client is one tax-preparation customer managed by staff.
//
// Fields:
//  ID         – primary key identifier.
//  FullName   – client's legal name.
//  Email      – contact email, stored lower-cased.
//  SINLast4   – last four digits of the SIN; the full number is never
//               stored in this service.
//  FilingYear – tax year currently being prepared.
//  Status     – filing pipeline status (see constants above).
//  CreatedAt  – creation timestamp.
//  UpdatedAt  – last update timestamp.
type Client struct {
	ID         uint64    `json:"id"`          // clients.id
	FullName   string    `json:"full_name"`   // clients.full_name
	Email      string    `json:"email"`       // clients.email
	SINLast4   string    `json:"sin_last4"`   // clients.sin_last4
	FilingYear int       `json:"filing_year"` // clients.filing_year
	Status     string    `json:"status"`      // clients.status
	CreatedAt  time.Time `json:"created_at"`  // clients.created_at
	UpdatedAt  time.Time `json:"updated_at"`  // clients.updated_at
}
