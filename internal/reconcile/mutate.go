package reconcile

import (
	"fmt"
	"strings"
	"time"

	"github.com/iliyamo/tax-portal/internal/model"
)

// The operations below are pure: they validate inputs, compute the
// resulting logical document set, and report failures through the
// package sentinels. Writing the outcome to storage and dispatching
// notifications belong to the caller.

// Approve transitions a document to approved and returns the updated
// set. The document must exist (ErrNotFound) and must not already be
// approved (ErrConflict).
func Approve(docs []model.Document, id uint64) ([]model.Document, error) {
	for i := range docs {
		if docs[i].ID != id {
			continue
		}
		if docs[i].Status == model.DocApproved {
			return docs, fmt.Errorf("document %d already approved: %w", id, ErrConflict)
		}
		out := append([]model.Document(nil), docs...)
		out[i].Status = model.DocApproved
		return out, nil
	}
	return docs, fmt.Errorf("document %d: %w", id, ErrNotFound)
}

// RequestReupload transitions a document to reupload_requested and
// stores the reason in its notes. A blank reason is ErrValidation and
// leaves the set untouched.
func RequestReupload(docs []model.Document, id uint64, reason string) ([]model.Document, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return docs, fmt.Errorf("reupload reason required: %w", ErrValidation)
	}
	for i := range docs {
		if docs[i].ID != id {
			continue
		}
		out := append([]model.Document(nil), docs...)
		out[i].Status = model.DocReuploadRequested
		out[i].Notes = reason
		return out, nil
	}
	return docs, fmt.Errorf("document %d: %w", id, ErrNotFound)
}

// MissingDocumentIntent is the outcome of requesting a document the
// client has never uploaded: there is no record to mutate, so the
// request is an outbound notification intent, not a state change.
type MissingDocumentIntent struct {
	ClientID         uint64
	RequiredDocument string
	Reason           string
	RequestedAt      time.Time
}

// RequestMissing validates the request and returns the notification
// intent for a required document with no uploaded counterpart.
func RequestMissing(clientID uint64, requiredDoc, reason string) (MissingDocumentIntent, error) {
	requiredDoc = strings.TrimSpace(requiredDoc)
	reason = strings.TrimSpace(reason)
	if requiredDoc == "" {
		return MissingDocumentIntent{}, fmt.Errorf("required document name required: %w", ErrValidation)
	}
	if reason == "" {
		return MissingDocumentIntent{}, fmt.Errorf("request reason required: %w", ErrValidation)
	}
	return MissingDocumentIntent{
		ClientID:         clientID,
		RequiredDocument: requiredDoc,
		Reason:           reason,
		RequestedAt:      time.Now().UTC(),
	}, nil
}
