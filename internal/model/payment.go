package model

import "time"

// Payment methods accepted by the office.
const (
	PayMethodCard      = "CARD"
	PayMethodETransfer = "ETRANSFER"
	PayMethodCash      = "CASH"
	PayMethodCheque    = "CHEQUE"
)

// Payment records money received from a client for preparation fees.
// Amounts are stored in cents to avoid floating point drift.
//
// Fields:
//  ID          – primary key identifier.
//  ClientID    – paying client.
//  AmountCents – amount received, in cents.
//  Method      – payment method (see constants above).
//  Reference   – external reference (card auth code, e-transfer id),
//                nullable.
//  PaidAt      – when the payment was received.
//  CreatedAt   – when staff recorded it.
type Payment struct {
	ID          uint64    `json:"id"`           // payments.id
	ClientID    uint64    `json:"client_id"`    // payments.client_id
	AmountCents uint32    `json:"amount_cents"` // payments.amount_cents
	Method      string    `json:"method"`       // payments.method
	Reference   *string   `json:"reference"`    // payments.reference (nullable)
	PaidAt      time.Time `json:"paid_at"`      // payments.paid_at
	CreatedAt   time.Time `json:"created_at"`   // payments.created_at
}
