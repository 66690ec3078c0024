package types

import (
	"fmt"

	sdkmath "cosmossdk.io/math"
)

// TicketStatus is the explicit state machine of a decryption ticket.
//
// Decryption is asynchronous relative to the coprocessor, so user-facing
// decryption is split into two phases: a request recorded on-ledger and a
// later fulfillment carrying the plaintext, re-verified against the original
// ciphertext commitment. Modeling the phases as explicit states (rather than
// callbacks) keeps replay and ordering auditable.
type TicketStatus uint8

const (
	// TicketStatusRequested indicates the decryption has been submitted.
	TicketStatusRequested TicketStatus = 1

	// TicketStatusFulfilled indicates a verified plaintext is attached.
	TicketStatusFulfilled TicketStatus = 2

	// TicketStatusConsumed indicates the plaintext was read out; terminal.
	TicketStatusConsumed TicketStatus = 3
)

func (s TicketStatus) String() string {
	switch s {
	case TicketStatusRequested:
		return "requested"
	case TicketStatusFulfilled:
		return "fulfilled"
	case TicketStatusConsumed:
		return "consumed"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(s))
	}
}

// DecryptionTicket tracks one two-phase decryption of a single order field.
type DecryptionTicket struct {
	// Id is the unique, monotonically assigned ticket identifier
	Id uint64 `json:"id"`
	// OrderId is the order whose field is being opened
	OrderId uint64 `json:"order_id"`
	// Field is the decryptable field name (see order.go)
	Field string `json:"field"`
	// Handle is the ciphertext captured at request time; fulfillment is
	// verified against this handle, not against current order state
	Handle Ciphertext `json:"handle"`
	// Requester is the address that may fulfill and consume the ticket
	Requester string `json:"requester"`
	// Status is the current phase
	Status TicketStatus `json:"status"`
	// Plaintext is set on fulfillment, zero before
	Plaintext sdkmath.Int `json:"plaintext"`
	// RequestedAt is the block height of the request
	RequestedAt int64 `json:"requested_at"`
	// ExpiresAt is the block height after which an unfulfilled ticket is pruned
	ExpiresAt int64 `json:"expires_at"`
}
