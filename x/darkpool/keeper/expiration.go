package keeper

import (
	"context"
	"encoding/binary"
	"fmt"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/veilchain/veil/x/darkpool/types"
)

// ============================================================================
// Expiration Sweeps
// ============================================================================

// SweepExpired retires the expired orders among the given IDs.
//
// Sweeping is permissionless: for each candidate the sweep computes the
// boolean signal (now > expiry) AND isActive over ciphertexts and decrypts
// that single bit. An order that is not expired, or was already retired,
// yields a zero bit and is left untouched, so callers learn nothing they
// could not infer from watching the order eventually expire anyway. Unknown
// and terminal order IDs are skipped rather than rejected for the same
// reason.
//
// Returns the number of orders retired.
func (k Keeper) SweepExpired(ctx context.Context, orderIDs []uint64) (uint32, error) {
	var swept uint32
	for _, orderID := range orderIDs {
		order, err := k.GetOrder(ctx, orderID)
		if err != nil {
			continue
		}
		if order.Status.IsTerminal() {
			continue
		}

		expired, err := k.sweepOrder(ctx, order)
		if err != nil {
			return swept, fmt.Errorf("sweep order %d: %w", orderID, err)
		}
		if expired {
			swept++
		}
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeSweepCompleted,
			sdk.NewAttribute(types.AttributeKeySwept, fmt.Sprintf("%d", swept)),
			sdk.NewAttribute(types.AttributeKeyHeight, fmt.Sprintf("%d", sdkCtx.BlockHeight())),
		),
	)
	metrics().SweepsCompleted.Inc()

	return swept, nil
}

// sweepActiveBatch visits up to SweepBatchSize active orders across all
// pools and retires the expired ones. EndBlock maintenance path.
func (k Keeper) sweepActiveBatch(ctx context.Context) (uint32, error) {
	params := k.GetParams(ctx)
	store := k.getStore(ctx)

	// Collect candidates first: retiring an order mutates the index being
	// iterated.
	iterator := store.Iterator(ActiveOrderPrefix, prefixEnd(ActiveOrderPrefix))
	var candidates []uint64
	for ; iterator.Valid() && uint32(len(candidates)) < params.SweepBatchSize; iterator.Next() {
		key := iterator.Key()
		candidates = append(candidates, binary.BigEndian.Uint64(key[len(key)-8:]))
	}
	iterator.Close()

	var swept uint32
	for _, orderID := range candidates {
		order, err := k.GetOrder(ctx, orderID)
		if err != nil {
			return swept, err
		}
		expired, err := k.sweepOrder(ctx, order)
		if err != nil {
			return swept, fmt.Errorf("sweep order %d: %w", orderID, err)
		}
		if expired {
			swept++
		}
	}
	return swept, nil
}

// sweepOrder decrypts the single-bit expiry signal of one non-terminal order
// and retires it when the bit is set.
func (k Keeper) sweepOrder(ctx context.Context, order *types.Order) (bool, error) {
	fhe := k.fheKeeper
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	nowCt, err := fhe.Encrypt(ctx, sdkmath.NewInt(sdkCtx.BlockTime().Unix()), types.CtUint64)
	if err != nil {
		return false, err
	}
	// Expired means now >= expiry, matching the engine's gate.
	expiredCt, err := fhe.Ge(ctx, nowCt, order.ExpirationTime)
	if err != nil {
		return false, err
	}
	signalCt, err := fhe.And(ctx, expiredCt, order.IsActive)
	if err != nil {
		return false, err
	}

	k.GrantAccess(ctx, signalCt, EngineAddress)
	signal, err := k.engineDecrypt(ctx, signalCt)
	if err != nil {
		return false, fmt.Errorf("decrypt expiry signal: %w", err)
	}
	if !signal.IsPositive() {
		return false, nil
	}

	inactive, err := fhe.Encrypt(ctx, sdkmath.ZeroInt(), types.CtBool)
	if err != nil {
		return false, err
	}
	order.IsActive = inactive
	k.GrantAccess(ctx, inactive, EngineAddress)
	order.Status = types.OrderStatusExpired

	if err := k.subFromPoolAggregates(ctx, order.PoolId, order.Direction, order.RemainingSize); err != nil {
		return false, fmt.Errorf("update pool aggregates: %w", err)
	}

	if err := k.SetOrder(ctx, order); err != nil {
		return false, err
	}

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeOrderExpired,
			sdk.NewAttribute(types.AttributeKeyOrderID, fmt.Sprintf("%d", order.Id)),
			sdk.NewAttribute(types.AttributeKeyPoolID, fmt.Sprintf("%d", order.PoolId)),
			sdk.NewAttribute(types.AttributeKeyTimestamp, fmt.Sprintf("%d", sdkCtx.BlockTime().Unix())),
		),
	)

	k.afterOrderExpired(sdkCtx, order.Id, order.PoolId)
	metrics().OrdersExpired.Inc()
	telemetryIncr("order_expired", order.PoolId)
	metrics().ActiveOrders.Dec()

	k.Logger(sdkCtx).Info("order expired", "order_id", order.Id)

	return true, nil
}
