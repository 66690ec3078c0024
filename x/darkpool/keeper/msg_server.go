package keeper

import (
	"context"
	"fmt"

	"github.com/veilchain/veil/x/darkpool/types"
)

type msgServer struct {
	Keeper
}

// NewMsgServerImpl returns an implementation of the darkpool MsgServer interface
func NewMsgServerImpl(keeper Keeper) types.MsgServer {
	return &msgServer{Keeper: keeper}
}

var _ types.MsgServer = msgServer{}

// PlaceOrder handles placement of a new confidential limit order
func (ms msgServer) PlaceOrder(goCtx context.Context, msg *types.MsgPlaceOrder) (*types.MsgPlaceOrderResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("PlaceOrder: validate: %w", err)
	}

	orderID, err := ms.Keeper.PlaceOrder(goCtx, msg.Owner, msg.PoolId, msg.Fields)
	if err != nil {
		return nil, fmt.Errorf("PlaceOrder: %w", err)
	}

	return &types.MsgPlaceOrderResponse{
		OrderId: orderID,
	}, nil
}

// CancelOrder handles owner or emergency-admin cancellation
func (ms msgServer) CancelOrder(goCtx context.Context, msg *types.MsgCancelOrder) (*types.MsgCancelOrderResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("CancelOrder: validate: %w", err)
	}

	if err := ms.Keeper.CancelOrder(goCtx, msg.Sender, msg.OrderId); err != nil {
		return nil, fmt.Errorf("CancelOrder: %w", err)
	}

	return &types.MsgCancelOrderResponse{}, nil
}

// RequestDecryption opens a decryption ticket for one order field
func (ms msgServer) RequestDecryption(goCtx context.Context, msg *types.MsgRequestDecryption) (*types.MsgRequestDecryptionResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("RequestDecryption: validate: %w", err)
	}

	ticketID, err := ms.Keeper.RequestDecryption(goCtx, msg.Requester, msg.OrderId, msg.Field)
	if err != nil {
		return nil, fmt.Errorf("RequestDecryption: %w", err)
	}

	return &types.MsgRequestDecryptionResponse{
		TicketId: ticketID,
	}, nil
}

// FulfillDecryption records the verified plaintext for a pending ticket
func (ms msgServer) FulfillDecryption(goCtx context.Context, msg *types.MsgFulfillDecryption) (*types.MsgFulfillDecryptionResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("FulfillDecryption: validate: %w", err)
	}

	if err := ms.Keeper.FulfillDecryption(goCtx, msg.Sender, msg.TicketId, msg.Plaintext); err != nil {
		return nil, fmt.Errorf("FulfillDecryption: %w", err)
	}

	return &types.MsgFulfillDecryptionResponse{}, nil
}

// ConsumeDecryption reads out a fulfilled ticket's plaintext
func (ms msgServer) ConsumeDecryption(goCtx context.Context, msg *types.MsgConsumeDecryption) (*types.MsgConsumeDecryptionResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("ConsumeDecryption: validate: %w", err)
	}

	plaintext, err := ms.Keeper.ConsumeDecryption(goCtx, msg.Sender, msg.TicketId)
	if err != nil {
		return nil, fmt.Errorf("ConsumeDecryption: %w", err)
	}

	return &types.MsgConsumeDecryptionResponse{
		Plaintext: plaintext,
	}, nil
}

// SweepExpired handles a permissionless expiration sweep
func (ms msgServer) SweepExpired(goCtx context.Context, msg *types.MsgSweepExpired) (*types.MsgSweepExpiredResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("SweepExpired: validate: %w", err)
	}

	swept, err := ms.Keeper.SweepExpired(goCtx, msg.OrderIds)
	if err != nil {
		return nil, fmt.Errorf("SweepExpired: %w", err)
	}

	return &types.MsgSweepExpiredResponse{
		Swept: swept,
	}, nil
}

// RevokeAccess removes a principal's grant on one order field
func (ms msgServer) RevokeAccess(goCtx context.Context, msg *types.MsgRevokeAccess) (*types.MsgRevokeAccessResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("RevokeAccess: validate: %w", err)
	}

	if err := ms.Keeper.RevokeFieldAccess(goCtx, msg.Admin, msg.OrderId, msg.Field, msg.Principal); err != nil {
		return nil, fmt.Errorf("RevokeAccess: %w", err)
	}

	return &types.MsgRevokeAccessResponse{}, nil
}

// Pause halts order placement and execution
func (ms msgServer) Pause(goCtx context.Context, msg *types.MsgPause) (*types.MsgPauseResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("Pause: validate: %w", err)
	}

	if err := ms.requirePauseAuthority(goCtx, msg.Authority); err != nil {
		return nil, fmt.Errorf("Pause: %w", err)
	}

	ms.Keeper.SetPaused(goCtx, true)
	return &types.MsgPauseResponse{}, nil
}

// Unpause resumes order placement and execution
func (ms msgServer) Unpause(goCtx context.Context, msg *types.MsgUnpause) (*types.MsgUnpauseResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("Unpause: validate: %w", err)
	}

	if err := ms.requirePauseAuthority(goCtx, msg.Authority); err != nil {
		return nil, fmt.Errorf("Unpause: %w", err)
	}

	ms.Keeper.SetPaused(goCtx, false)
	return &types.MsgUnpauseResponse{}, nil
}

// UpdateParams replaces the module parameters
func (ms msgServer) UpdateParams(goCtx context.Context, msg *types.MsgUpdateParams) (*types.MsgUpdateParamsResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("UpdateParams: validate: %w", err)
	}

	if msg.Authority != ms.Keeper.GetAuthority() {
		return nil, types.ErrUnauthorized.Wrapf("expected authority %s, got %s", ms.Keeper.GetAuthority(), msg.Authority)
	}

	if err := ms.Keeper.SetParams(goCtx, msg.Params); err != nil {
		return nil, fmt.Errorf("UpdateParams: %w", err)
	}

	return &types.MsgUpdateParamsResponse{}, nil
}

// requirePauseAuthority accepts the module authority or the emergency admin.
func (ms msgServer) requirePauseAuthority(ctx context.Context, sender string) error {
	if sender == ms.Keeper.GetAuthority() || ms.Keeper.isEmergencyAdmin(ctx, sender) {
		return nil
	}
	return types.ErrUnauthorized.Wrapf("sender %s may not change the pause flag", sender)
}
