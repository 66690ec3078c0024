package types

import (
	"encoding/hex"
	"fmt"
)

// GrantEntry is one access-control relation in genesis form.
type GrantEntry struct {
	// Fingerprint is the hex-encoded ciphertext fingerprint
	Fingerprint string `json:"fingerprint"`
	// Principal is the granted address (or the engine module address)
	Principal string `json:"principal"`
}

// PoolAggregate carries the per-pool encrypted side aggregates.
type PoolAggregate struct {
	PoolId uint64     `json:"pool_id"`
	Buy    Ciphertext `json:"buy"`
	Sell   Ciphertext `json:"sell"`
}

// GenesisState defines the darkpool module's genesis state.
type GenesisState struct {
	Params       Params             `json:"params"`
	Paused       bool               `json:"paused"`
	NextOrderId  uint64             `json:"next_order_id"`
	NextTicketId uint64             `json:"next_ticket_id"`
	Orders       []Order            `json:"orders"`
	Fills        []FillRecord       `json:"fills"`
	Tickets      []DecryptionTicket `json:"tickets"`
	Grants       []GrantEntry       `json:"grants"`
	Aggregates   []PoolAggregate    `json:"aggregates"`
}

// DefaultGenesis returns the default genesis state for the darkpool module.
func DefaultGenesis() *GenesisState {
	return &GenesisState{
		Params:       DefaultParams(),
		Paused:       false,
		NextOrderId:  1,
		NextTicketId: 1,
		Orders:       []Order{},
		Fills:        []FillRecord{},
		Tickets:      []DecryptionTicket{},
		Grants:       []GrantEntry{},
		Aggregates:   []PoolAggregate{},
	}
}

// Validate ensures the genesis state is well-formed.
func (gs GenesisState) Validate() error {
	if err := gs.Params.Validate(); err != nil {
		return fmt.Errorf("params: %w", err)
	}
	if gs.NextOrderId == 0 {
		return fmt.Errorf("next order id must be positive")
	}
	if gs.NextTicketId == 0 {
		return fmt.Errorf("next ticket id must be positive")
	}

	seen := make(map[uint64]bool, len(gs.Orders))
	for _, order := range gs.Orders {
		if order.Id == 0 {
			return fmt.Errorf("order id must be positive")
		}
		if order.Id >= gs.NextOrderId {
			return fmt.Errorf("order %d: id not below next order id %d", order.Id, gs.NextOrderId)
		}
		if seen[order.Id] {
			return fmt.Errorf("duplicate order id %d", order.Id)
		}
		seen[order.Id] = true
		for _, ct := range order.EncryptedFieldHandles() {
			if ct.IsEmpty() {
				return fmt.Errorf("order %d: missing ciphertext handle", order.Id)
			}
		}
	}

	for _, fill := range gs.Fills {
		if !seen[fill.OrderId] {
			return fmt.Errorf("fill for unknown order %d", fill.OrderId)
		}
	}

	for _, ticket := range gs.Tickets {
		if ticket.Id >= gs.NextTicketId {
			return fmt.Errorf("ticket %d: id not below next ticket id %d", ticket.Id, gs.NextTicketId)
		}
		if ticket.Status == TicketStatusFulfilled || ticket.Status == TicketStatusConsumed {
			if ticket.Plaintext.IsNil() {
				return fmt.Errorf("ticket %d: fulfilled without plaintext", ticket.Id)
			}
		}
	}

	for _, grant := range gs.Grants {
		if _, err := hex.DecodeString(grant.Fingerprint); err != nil {
			return fmt.Errorf("grant fingerprint %q: %w", grant.Fingerprint, err)
		}
		if grant.Principal == "" {
			return fmt.Errorf("grant with empty principal")
		}
	}

	aggSeen := make(map[uint64]bool, len(gs.Aggregates))
	for _, agg := range gs.Aggregates {
		if aggSeen[agg.PoolId] {
			return fmt.Errorf("duplicate aggregate for pool %d", agg.PoolId)
		}
		aggSeen[agg.PoolId] = true
	}

	return nil
}
