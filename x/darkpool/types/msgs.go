package types

import (
	"fmt"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Message type URLs
const (
	TypeMsgPlaceOrder        = "place_order"
	TypeMsgCancelOrder       = "cancel_order"
	TypeMsgRequestDecryption = "request_decryption"
	TypeMsgFulfillDecryption = "fulfill_decryption"
	TypeMsgConsumeDecryption = "consume_decryption"
	TypeMsgSweepExpired      = "sweep_expired"
	TypeMsgRevokeAccess      = "revoke_access"
	TypeMsgPause             = "pause"
	TypeMsgUnpause           = "unpause"
	TypeMsgUpdateParams      = "update_params"
)

var (
	_ sdk.Msg = &MsgPlaceOrder{}
	_ sdk.Msg = &MsgCancelOrder{}
	_ sdk.Msg = &MsgRequestDecryption{}
	_ sdk.Msg = &MsgFulfillDecryption{}
	_ sdk.Msg = &MsgConsumeDecryption{}
	_ sdk.Msg = &MsgSweepExpired{}
	_ sdk.Msg = &MsgRevokeAccess{}
	_ sdk.Msg = &MsgPause{}
	_ sdk.Msg = &MsgUnpause{}
	_ sdk.Msg = &MsgUpdateParams{}
)

// MsgPlaceOrder places a confidential limit order.
type MsgPlaceOrder struct {
	Owner  string               `json:"owner"`
	PoolId uint64               `json:"pool_id"`
	Fields EncryptedOrderFields `json:"fields"`
}

// ValidateBasic performs basic validation of MsgPlaceOrder.
// Field validation is shape-only: ciphertext values are opaque.
func (m *MsgPlaceOrder) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(m.Owner); err != nil {
		return fmt.Errorf("invalid owner address: %w", err)
	}
	if m.PoolId == 0 {
		return fmt.Errorf("pool id must be positive")
	}
	if err := m.Fields.Validate(); err != nil {
		return fmt.Errorf("encrypted fields: %w", err)
	}
	return nil
}

// GetSigners returns the expected signers for MsgPlaceOrder.
func (m *MsgPlaceOrder) GetSigners() []sdk.AccAddress {
	owner, _ := sdk.AccAddressFromBech32(m.Owner)
	return []sdk.AccAddress{owner}
}

// MsgCancelOrder cancels a resting order. Sender must be the order owner or
// the configured emergency admin.
type MsgCancelOrder struct {
	Sender  string `json:"sender"`
	OrderId uint64 `json:"order_id"`
}

// ValidateBasic performs basic validation of MsgCancelOrder.
func (m *MsgCancelOrder) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(m.Sender); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if m.OrderId == 0 {
		return fmt.Errorf("order id must be positive")
	}
	return nil
}

// GetSigners returns the expected signers for MsgCancelOrder.
func (m *MsgCancelOrder) GetSigners() []sdk.AccAddress {
	sender, _ := sdk.AccAddressFromBech32(m.Sender)
	return []sdk.AccAddress{sender}
}

// MsgRequestDecryption opens the first phase of a two-phase decryption of a
// single order field. Owner-only.
type MsgRequestDecryption struct {
	Requester string `json:"requester"`
	OrderId   uint64 `json:"order_id"`
	Field     string `json:"field"`
}

// ValidateBasic performs basic validation of MsgRequestDecryption.
func (m *MsgRequestDecryption) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(m.Requester); err != nil {
		return fmt.Errorf("invalid requester address: %w", err)
	}
	if m.OrderId == 0 {
		return fmt.Errorf("order id must be positive")
	}
	if m.Field == "" {
		return fmt.Errorf("field cannot be empty")
	}
	return nil
}

// GetSigners returns the expected signers for MsgRequestDecryption.
func (m *MsgRequestDecryption) GetSigners() []sdk.AccAddress {
	requester, _ := sdk.AccAddressFromBech32(m.Requester)
	return []sdk.AccAddress{requester}
}

// MsgFulfillDecryption completes a decryption ticket with the plaintext
// produced off-ledger by the coprocessor. The module re-verifies the
// plaintext against the ciphertext commitment before accepting it.
type MsgFulfillDecryption struct {
	Sender    string      `json:"sender"`
	TicketId  uint64      `json:"ticket_id"`
	Plaintext sdkmath.Int `json:"plaintext"`
}

// ValidateBasic performs basic validation of MsgFulfillDecryption.
func (m *MsgFulfillDecryption) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(m.Sender); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if m.TicketId == 0 {
		return fmt.Errorf("ticket id must be positive")
	}
	if m.Plaintext.IsNil() || m.Plaintext.IsNegative() {
		return fmt.Errorf("plaintext must be non-negative")
	}
	return nil
}

// GetSigners returns the expected signers for MsgFulfillDecryption.
func (m *MsgFulfillDecryption) GetSigners() []sdk.AccAddress {
	sender, _ := sdk.AccAddressFromBech32(m.Sender)
	return []sdk.AccAddress{sender}
}

// MsgConsumeDecryption finalizes a fulfilled ticket, reading out its
// verified plaintext and retiring the ticket.
type MsgConsumeDecryption struct {
	Sender   string `json:"sender"`
	TicketId uint64 `json:"ticket_id"`
}

// ValidateBasic performs basic validation of MsgConsumeDecryption.
func (m *MsgConsumeDecryption) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(m.Sender); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if m.TicketId == 0 {
		return fmt.Errorf("ticket id must be positive")
	}
	return nil
}

// GetSigners returns the expected signers for MsgConsumeDecryption.
func (m *MsgConsumeDecryption) GetSigners() []sdk.AccAddress {
	sender, _ := sdk.AccAddressFromBech32(m.Sender)
	return []sdk.AccAddress{sender}
}

// MsgSweepExpired triggers a permissionless expiration sweep over the given
// orders. Sweeping an already-inactive order is a no-op by construction, so
// anyone may call this safely.
type MsgSweepExpired struct {
	Sender   string   `json:"sender"`
	OrderIds []uint64 `json:"order_ids"`
}

// ValidateBasic performs basic validation of MsgSweepExpired.
func (m *MsgSweepExpired) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(m.Sender); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if len(m.OrderIds) == 0 {
		return fmt.Errorf("order ids cannot be empty")
	}
	for _, id := range m.OrderIds {
		if id == 0 {
			return fmt.Errorf("order id must be positive")
		}
	}
	return nil
}

// GetSigners returns the expected signers for MsgSweepExpired.
func (m *MsgSweepExpired) GetSigners() []sdk.AccAddress {
	sender, _ := sdk.AccAddressFromBech32(m.Sender)
	return []sdk.AccAddress{sender}
}

// MsgRevokeAccess revokes a principal's grant on one order field.
// Emergency-admin only; the sole non-monotonic access-control operation.
type MsgRevokeAccess struct {
	Admin     string `json:"admin"`
	OrderId   uint64 `json:"order_id"`
	Field     string `json:"field"`
	Principal string `json:"principal"`
}

// ValidateBasic performs basic validation of MsgRevokeAccess.
func (m *MsgRevokeAccess) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(m.Admin); err != nil {
		return fmt.Errorf("invalid admin address: %w", err)
	}
	if m.OrderId == 0 {
		return fmt.Errorf("order id must be positive")
	}
	if m.Field == "" {
		return fmt.Errorf("field cannot be empty")
	}
	if m.Principal == "" {
		return fmt.Errorf("principal cannot be empty")
	}
	return nil
}

// GetSigners returns the expected signers for MsgRevokeAccess.
func (m *MsgRevokeAccess) GetSigners() []sdk.AccAddress {
	admin, _ := sdk.AccAddressFromBech32(m.Admin)
	return []sdk.AccAddress{admin}
}

// MsgPause halts order placement and execution uniformly.
type MsgPause struct {
	Authority string `json:"authority"`
}

// ValidateBasic performs basic validation of MsgPause.
func (m *MsgPause) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(m.Authority); err != nil {
		return fmt.Errorf("invalid authority address: %w", err)
	}
	return nil
}

// GetSigners returns the expected signers for MsgPause.
func (m *MsgPause) GetSigners() []sdk.AccAddress {
	authority, _ := sdk.AccAddressFromBech32(m.Authority)
	return []sdk.AccAddress{authority}
}

// MsgUnpause resumes order placement and execution.
type MsgUnpause struct {
	Authority string `json:"authority"`
}

// ValidateBasic performs basic validation of MsgUnpause.
func (m *MsgUnpause) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(m.Authority); err != nil {
		return fmt.Errorf("invalid authority address: %w", err)
	}
	return nil
}

// GetSigners returns the expected signers for MsgUnpause.
func (m *MsgUnpause) GetSigners() []sdk.AccAddress {
	authority, _ := sdk.AccAddressFromBech32(m.Authority)
	return []sdk.AccAddress{authority}
}

// MsgUpdateParams replaces the module parameters.
type MsgUpdateParams struct {
	Authority string `json:"authority"`
	Params    Params `json:"params"`
}

// ValidateBasic performs basic validation of MsgUpdateParams.
func (m *MsgUpdateParams) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(m.Authority); err != nil {
		return fmt.Errorf("invalid authority address: %w", err)
	}
	if err := m.Params.Validate(); err != nil {
		return fmt.Errorf("params: %w", err)
	}
	return nil
}

// GetSigners returns the expected signers for MsgUpdateParams.
func (m *MsgUpdateParams) GetSigners() []sdk.AccAddress {
	authority, _ := sdk.AccAddressFromBech32(m.Authority)
	return []sdk.AccAddress{authority}
}
