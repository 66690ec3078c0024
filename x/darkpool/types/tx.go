package types

import (
	"context"

	sdkmath "cosmossdk.io/math"
)

// MsgServer is the server API for the darkpool Msg service.
type MsgServer interface {
	// PlaceOrder places a new confidential limit order.
	PlaceOrder(context.Context, *MsgPlaceOrder) (*MsgPlaceOrderResponse, error)
	// CancelOrder cancels a resting order owned by the sender.
	CancelOrder(context.Context, *MsgCancelOrder) (*MsgCancelOrderResponse, error)
	// RequestDecryption opens a decryption ticket for one order field.
	RequestDecryption(context.Context, *MsgRequestDecryption) (*MsgRequestDecryptionResponse, error)
	// FulfillDecryption records the verified plaintext for a pending ticket.
	FulfillDecryption(context.Context, *MsgFulfillDecryption) (*MsgFulfillDecryptionResponse, error)
	// ConsumeDecryption reads out a fulfilled ticket's plaintext.
	ConsumeDecryption(context.Context, *MsgConsumeDecryption) (*MsgConsumeDecryptionResponse, error)
	// SweepExpired deactivates expired orders without revealing their fields.
	SweepExpired(context.Context, *MsgSweepExpired) (*MsgSweepExpiredResponse, error)
	// RevokeAccess removes a principal's grant on one order field.
	RevokeAccess(context.Context, *MsgRevokeAccess) (*MsgRevokeAccessResponse, error)
	// Pause halts order placement and execution.
	Pause(context.Context, *MsgPause) (*MsgPauseResponse, error)
	// Unpause resumes order placement and execution.
	Unpause(context.Context, *MsgUnpause) (*MsgUnpauseResponse, error)
	// UpdateParams replaces the module parameters.
	UpdateParams(context.Context, *MsgUpdateParams) (*MsgUpdateParamsResponse, error)
}

// MsgPlaceOrderResponse is the response for MsgPlaceOrder.
type MsgPlaceOrderResponse struct {
	OrderId uint64 `json:"order_id"`
}

// MsgCancelOrderResponse is the response for MsgCancelOrder.
type MsgCancelOrderResponse struct{}

// MsgRequestDecryptionResponse is the response for MsgRequestDecryption.
type MsgRequestDecryptionResponse struct {
	TicketId uint64 `json:"ticket_id"`
}

// MsgFulfillDecryptionResponse is the response for MsgFulfillDecryption.
type MsgFulfillDecryptionResponse struct{}

// MsgConsumeDecryptionResponse is the response for MsgConsumeDecryption.
type MsgConsumeDecryptionResponse struct {
	Plaintext sdkmath.Int `json:"plaintext"`
}

// MsgSweepExpiredResponse is the response for MsgSweepExpired.
type MsgSweepExpiredResponse struct {
	Swept uint32 `json:"swept"`
}

// MsgRevokeAccessResponse is the response for MsgRevokeAccess.
type MsgRevokeAccessResponse struct{}

// MsgPauseResponse is the response for MsgPause.
type MsgPauseResponse struct{}

// MsgUnpauseResponse is the response for MsgUnpause.
type MsgUnpauseResponse struct{}

// MsgUpdateParamsResponse is the response for MsgUpdateParams.
type MsgUpdateParamsResponse struct{}

// _Msg_serviceDesc is a placeholder for the generated service descriptor.
var _Msg_serviceDesc = struct{}{}

var _ = _Msg_serviceDesc
