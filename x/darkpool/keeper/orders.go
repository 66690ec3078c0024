package keeper

import (
	"context"
	"fmt"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/veilchain/veil/x/darkpool/types"
)

// ============================================================================
// Order Lifecycle Operations
// ============================================================================

// PlaceOrder creates a new confidential limit order from caller-supplied
// ciphertexts and installs its access grants.
//
// The module validates shape only (handles present, widths correct): trigger
// price, size, direction, fill policy and expiry are never visible here. The
// remaining size starts as the order size ciphertext; the activity flag and
// VWAP accumulators are trivial encryptions minted by the module so their
// initial values are publicly known to be true/zero, which reveals nothing.
//
// Returns the assigned order ID.
func (k Keeper) PlaceOrder(ctx context.Context, owner string, poolID uint64, fields types.EncryptedOrderFields) (uint64, error) {
	if err := k.RequireNotPaused(ctx); err != nil {
		return 0, err
	}

	if _, err := sdk.AccAddressFromBech32(owner); err != nil {
		return 0, types.ErrInvalidInput.Wrapf("invalid owner address: %v", err)
	}
	if poolID == 0 {
		return 0, types.ErrInvalidInput.Wrap("pool id must be positive")
	}
	if err := fields.Validate(); err != nil {
		return 0, types.ErrMalformedOrder.Wrap(err.Error())
	}

	orderID, err := k.GetNextOrderID(ctx)
	if err != nil {
		return 0, err
	}

	active, err := k.fheKeeper.Encrypt(ctx, sdkmath.OneInt(), types.CtBool)
	if err != nil {
		return 0, fmt.Errorf("encrypt activity flag: %w", err)
	}
	vwapNum, err := k.fheKeeper.Encrypt(ctx, sdkmath.ZeroInt(), types.CtUint128)
	if err != nil {
		return 0, fmt.Errorf("encrypt vwap numerator: %w", err)
	}
	vwapDen, err := k.fheKeeper.Encrypt(ctx, sdkmath.ZeroInt(), types.CtUint128)
	if err != nil {
		return 0, fmt.Errorf("encrypt vwap denominator: %w", err)
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	order := &types.Order{
		Id:              orderID,
		Owner:           owner,
		PoolId:          poolID,
		Status:          types.OrderStatusPending,
		FillCount:       0,
		CreatedAt:       sdkCtx.BlockTime(),
		CreatedAtHeight: sdkCtx.BlockHeight(),

		Direction:          fields.Direction,
		TriggerPrice:       fields.TriggerPrice,
		OrderSize:          fields.OrderSize,
		RemainingSize:      fields.OrderSize,
		MinFillSize:        fields.MinFillSize,
		PartialFillAllowed: fields.PartialFillAllowed,
		ExpirationTime:     fields.ExpirationTime,
		IsActive:           active,

		VwapNumerator:   vwapNum,
		VwapDenominator: vwapDen,
	}

	if err := k.SetOrder(ctx, order); err != nil {
		return 0, err
	}

	k.grantOrderAccess(ctx, order)

	if err := k.addToPoolAggregates(ctx, poolID, order.Direction, order.OrderSize); err != nil {
		return 0, fmt.Errorf("update pool aggregates: %w", err)
	}

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeOrderPlaced,
			sdk.NewAttribute(types.AttributeKeyOrderID, fmt.Sprintf("%d", orderID)),
			sdk.NewAttribute(types.AttributeKeyOwner, owner),
			sdk.NewAttribute(types.AttributeKeyPoolID, fmt.Sprintf("%d", poolID)),
			sdk.NewAttribute(types.AttributeKeyTimestamp, fmt.Sprintf("%d", sdkCtx.BlockTime().Unix())),
		),
	)

	k.afterOrderPlaced(sdkCtx, orderID, owner, poolID)
	metrics().OrdersPlaced.Inc()
	telemetryIncr("order_placed", poolID)
	metrics().ActiveOrders.Inc()

	k.Logger(sdkCtx).Info("order placed", "order_id", orderID, "pool_id", poolID)

	return orderID, nil
}

// CancelOrder deactivates a resting order. The sender must be the owner or
// the configured emergency admin.
//
// Cancellation is a public action: the order's status flips on a signed
// message, so branching on the plaintext status here reveals nothing that
// the message itself does not. The encrypted activity flag is replaced by a
// trivial false so subsequent engine passes compute zero fills for it, and
// the remaining size is removed from the pool aggregates without being
// decrypted.
func (k Keeper) CancelOrder(ctx context.Context, sender string, orderID uint64) error {
	order, err := k.GetOrder(ctx, orderID)
	if err != nil {
		return err
	}

	if sender != order.Owner && !k.isEmergencyAdmin(ctx, sender) {
		return types.ErrUnauthorized.Wrapf("sender %s may not cancel order %d", sender, orderID)
	}

	if order.Status.IsTerminal() {
		return types.ErrOrderNotCancellable.Wrapf("order %d is %s", orderID, order.Status)
	}

	inactive, err := k.fheKeeper.Encrypt(ctx, sdkmath.ZeroInt(), types.CtBool)
	if err != nil {
		return fmt.Errorf("encrypt inactive flag: %w", err)
	}
	order.IsActive = inactive
	order.Status = types.OrderStatusCancelled
	k.GrantAccess(ctx, inactive, EngineAddress)

	if err := k.subFromPoolAggregates(ctx, order.PoolId, order.Direction, order.RemainingSize); err != nil {
		return fmt.Errorf("update pool aggregates: %w", err)
	}

	if err := k.SetOrder(ctx, order); err != nil {
		return err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeOrderCancelled,
			sdk.NewAttribute(types.AttributeKeyOrderID, fmt.Sprintf("%d", orderID)),
			sdk.NewAttribute(types.AttributeKeyOwner, order.Owner),
			sdk.NewAttribute(types.AttributeKeyPoolID, fmt.Sprintf("%d", order.PoolId)),
			sdk.NewAttribute(types.AttributeKeyTimestamp, fmt.Sprintf("%d", sdkCtx.BlockTime().Unix())),
		),
	)

	k.afterOrderCancelled(sdkCtx, orderID, order.PoolId)
	metrics().OrdersCancelled.Inc()
	telemetryIncr("order_cancelled", order.PoolId)
	metrics().ActiveOrders.Dec()

	k.Logger(sdkCtx).Info("order cancelled", "order_id", orderID, "by_admin", sender != order.Owner)

	return nil
}

// isEmergencyAdmin reports whether addr matches the configured emergency
// admin. An empty param disables the admin paths.
func (k Keeper) isEmergencyAdmin(ctx context.Context, addr string) bool {
	params := k.GetParams(ctx)
	return params.EmergencyAdmin != "" && params.EmergencyAdmin == addr
}
