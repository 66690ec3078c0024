package types

import (
	"cosmossdk.io/errors"
)

// Darkpool module sentinel errors.
//
// Only structural and authorization failures are ever surfaced as errors.
// Conditions that depend on an encrypted value (underflow, already inactive,
// below minimum fill, not yet triggered) are resolved with homomorphic
// clamping and selection instead, so transaction success never correlates
// with secret order state.
var (
	ErrMalformedOrder      = errors.Register(ModuleName, 1, "malformed order")
	ErrUnauthorized        = errors.Register(ModuleName, 2, "unauthorized")
	ErrPermissionDenied    = errors.Register(ModuleName, 3, "permission denied")
	ErrOrderNotFound       = errors.Register(ModuleName, 4, "order not found")
	ErrSystemPaused        = errors.Register(ModuleName, 5, "system paused")
	ErrInvalidInput        = errors.Register(ModuleName, 6, "invalid input")
	ErrInvalidState        = errors.Register(ModuleName, 7, "invalid state")
	ErrOrderNotCancellable = errors.Register(ModuleName, 8, "order not cancellable")
	ErrTicketNotFound      = errors.Register(ModuleName, 9, "decryption ticket not found")
	ErrInvalidTicketState  = errors.Register(ModuleName, 10, "invalid decryption ticket state")
	ErrPlaintextMismatch   = errors.Register(ModuleName, 11, "plaintext inconsistent with ciphertext commitment")
	ErrInvalidParams       = errors.Register(ModuleName, 12, "invalid params")
	ErrUnknownField        = errors.Register(ModuleName, 13, "unknown encrypted field")
)
