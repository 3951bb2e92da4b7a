// Package reconcile matches a client's uploaded documents against the
// required-document slots of their intake questionnaire and computes
// per-category and aggregate completion statistics. It also hosts the
// pure status-transition operations staff perform on documents;
// persistence of the resulting state is the caller's job.
//
// Sentinel errors let handlers distinguish failure classes. ErrNotFound
// maps to a 404, ErrValidation to a 400 with an inline message, and
// ErrConflict to a 409 (e.g. approving an already-approved document).
package reconcile

import "errors"

// ErrNotFound is returned when an operation references a document id
// that does not exist in the supplied set. The set is left unchanged.
var ErrNotFound = errors.New("document not found")

// ErrValidation is returned when an operation's inputs fail validation,
// such as a blank re-upload reason. It is surfaced to the user for
// correction and never retried automatically.
var ErrValidation = errors.New("validation failed")

// ErrConflict is returned when a transition cannot proceed from the
// document's current status.
var ErrConflict = errors.New("conflict")
