package types

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Params holds the darkpool module configuration.
//
// The engine takes its policy from here rather than from ambient globals so
// it stays testable in isolation; the emergency admin is the only principal
// besides owners that can cancel orders or revoke ciphertext grants.
type Params struct {
	// EmergencyAdmin may cancel any order and revoke grants during incident
	// response. Empty disables the admin paths entirely.
	EmergencyAdmin string `json:"emergency_admin"`
	// MaxCandidatesPerUpdate caps how many candidate orders one price update
	// will evaluate.
	MaxCandidatesPerUpdate uint32 `json:"max_candidates_per_update"`
	// SweepBatchSize caps how many candidates one EndBlock sweep visits.
	SweepBatchSize uint32 `json:"sweep_batch_size"`
	// TicketTimeoutBlocks is how long a Requested decryption ticket lives
	// before the EndBlocker prunes it.
	TicketTimeoutBlocks int64 `json:"ticket_timeout_blocks"`
}

// DefaultParams returns the default darkpool parameters.
func DefaultParams() Params {
	return Params{
		EmergencyAdmin:         "",
		MaxCandidatesPerUpdate: 64,
		SweepBatchSize:         128,
		TicketTimeoutBlocks:    600, // ~1h at 6s blocks
	}
}

// Validate checks parameter well-formedness.
func (p Params) Validate() error {
	if p.EmergencyAdmin != "" {
		if _, err := sdk.AccAddressFromBech32(p.EmergencyAdmin); err != nil {
			return fmt.Errorf("invalid emergency admin address: %w", err)
		}
	}
	if p.MaxCandidatesPerUpdate == 0 {
		return fmt.Errorf("max candidates per update must be positive")
	}
	if p.SweepBatchSize == 0 {
		return fmt.Errorf("sweep batch size must be positive")
	}
	if p.TicketTimeoutBlocks <= 0 {
		return fmt.Errorf("ticket timeout blocks must be positive")
	}
	return nil
}
