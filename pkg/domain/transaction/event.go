package transaction

import "github.com/google/uuid"

// EventTypeLedgerChanged is emitted after a committed create, update or delete.
const EventTypeLedgerChanged = "LedgerChanged"

// Ledger change actions.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// LedgerChanged tells subscribers that an owner's transactions changed.
type LedgerChanged struct {
	UserID        uuid.UUID
	TransactionID string
	Action        string
}

// Type implements eventbus.Event.
func (LedgerChanged) Type() string { return EventTypeLedgerChanged }
