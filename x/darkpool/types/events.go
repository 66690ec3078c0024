package types

// Event types for the darkpool module.
//
// Every attribute emitted here is plaintext-safe: order identities, owners,
// pools and timestamps only. Fill amounts, prices, directions and expiry
// times never appear in events.
const (
	EventTypeOrderPlaced    = "darkpool_order_placed"
	EventTypeOrderFilled    = "darkpool_order_filled"
	EventTypeOrderCancelled = "darkpool_order_cancelled"
	EventTypeOrderExpired   = "darkpool_order_expired"

	EventTypeDecryptionRequested = "darkpool_decryption_requested"
	EventTypeDecryptionFulfilled = "darkpool_decryption_fulfilled"
	EventTypeDecryptionConsumed  = "darkpool_decryption_consumed"
	EventTypeAccessRevoked       = "darkpool_access_revoked"

	EventTypeModulePaused   = "darkpool_module_paused"
	EventTypeModuleUnpaused = "darkpool_module_unpaused"
	EventTypeSweepCompleted = "darkpool_sweep_completed"

	// Event attribute keys
	AttributeKeyOrderID   = "order_id"
	AttributeKeyOwner     = "owner"
	AttributeKeyPoolID    = "pool_id"
	AttributeKeyTimestamp = "timestamp"
	AttributeKeyTicketID  = "ticket_id"
	AttributeKeyField     = "field"
	AttributeKeyPrincipal = "principal"
	AttributeKeyHeight    = "height"
	AttributeKeySwept     = "swept"
)
