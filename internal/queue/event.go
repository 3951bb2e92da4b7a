// Package queue defines message payloads exchanged over the message broker.
package queue

// Queue names for document notification intents.
const (
	MissingDocumentQueue  = "document.missing_requested"
	ReuploadRequestQueue  = "document.reupload_requested"
	DocumentApprovedQueue = "document.approved"
)

// MissingDocumentRequestedEvent is published when staff requests a
// document the client has never uploaded. There is no document row to
// mutate, so the request exists only as this event; the notification
// service emails the client from it.
type MissingDocumentRequestedEvent struct {
	ClientID         uint64 `json:"client_id"`
	ClientName       string `json:"client_name"`
	ClientEmail      string `json:"client_email"`
	RequiredDocument string `json:"required_document"`
	Reason           string `json:"reason"`
	RequestedBy      string `json:"requested_by"`
	RequestedAt      string `json:"requested_at"`
}

// ReuploadRequestedEvent is published after a document is transitioned
// to reupload_requested, carrying the staff-entered reason.
type ReuploadRequestedEvent struct {
	DocumentID   uint64 `json:"document_id"`
	ClientID     uint64 `json:"client_id"`
	DocumentName string `json:"document_name"`
	Reason       string `json:"reason"`
	RequestedBy  string `json:"requested_by"`
	RequestedAt  string `json:"requested_at"`
}

// DocumentApprovedEvent is published after staff approves a document so
// the client can be notified their upload was accepted.
type DocumentApprovedEvent struct {
	DocumentID   uint64 `json:"document_id"`
	ClientID     uint64 `json:"client_id"`
	DocumentName string `json:"document_name"`
	ApprovedBy   string `json:"approved_by"`
	ApprovedAt   string `json:"approved_at"`
}
