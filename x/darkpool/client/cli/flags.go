package cli

// Flag constants for darkpool CLI commands
const (
	// Ciphertext handle flags for order placement. Handles are hex-encoded
	// references produced by the coprocessor client during input encryption.
	FlagDirection      = "direction"
	FlagTriggerPrice   = "trigger-price"
	FlagOrderSize      = "order-size"
	FlagMinFillSize    = "min-fill-size"
	FlagPartialAllowed = "partial-fill-allowed"
	FlagExpiration     = "expiration"
)
