package keeper

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/veilchain/veil/x/darkpool/types"
)

// FillKeyPrefix is the prefix for the append-only fill ledger.
// Key format: 0x16 || orderID || sequence
var FillKeyPrefix = []byte{0x16}

// FillKey returns the store key for one fill record
func FillKey(orderID uint64, sequence uint32) []byte {
	orderIDBytes := make([]byte, 8)
	binary.BigEndian.PutUint64(orderIDBytes, orderID)
	seqBytes := make([]byte, 4)
	binary.BigEndian.PutUint32(seqBytes, sequence)
	key := append(FillKeyPrefix, orderIDBytes...)
	return append(key, seqBytes...)
}

// ============================================================================
// Partial Fill Ledger
// ============================================================================

// recordFill applies one positive fill to an order: appends the immutable
// fill record, decrements the remaining size with a zero clamp, accumulates
// the VWAP numerator and denominator, and advances the plaintext status.
//
// fillSize/fillPrice are the encrypted execution values; fillPlain is the
// already-decrypted fill amount the engine obtained through the sanctioned
// decryption, used only for settlement. The sole extra decryption performed
// here is the boolean remaining==0 signal that drives the terminal Filled
// transition.
func (k Keeper) recordFill(ctx context.Context, order *types.Order, fillSize, fillPrice types.Ciphertext, fillPlain sdkmath.Int) error {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	record := types.FillRecord{
		OrderId:   order.Id,
		Sequence:  order.FillCount,
		FillSize:  fillSize,
		FillPrice: fillPrice,
		FilledAt:  sdkCtx.BlockTime(),
		Height:    sdkCtx.BlockHeight(),
	}
	if err := k.setFill(ctx, record); err != nil {
		return err
	}
	order.FillCount++

	var err error
	order.RemainingSize, err = k.clampedSub(ctx, order.RemainingSize, fillSize)
	if err != nil {
		return fmt.Errorf("decrement remaining size: %w", err)
	}

	product, err := k.fheKeeper.Mul(ctx, fillSize, fillPrice)
	if err != nil {
		return fmt.Errorf("vwap product: %w", err)
	}
	order.VwapNumerator, err = k.fheKeeper.Add(ctx, order.VwapNumerator, product)
	if err != nil {
		return fmt.Errorf("vwap numerator: %w", err)
	}
	order.VwapDenominator, err = k.fheKeeper.Add(ctx, order.VwapDenominator, fillSize)
	if err != nil {
		return fmt.Errorf("vwap denominator: %w", err)
	}

	// Derived handles need fresh grants or the owner loses the ability to
	// open its own accumulators.
	k.grantDerived(ctx, order.RemainingSize, order.Owner)
	k.grantDerived(ctx, order.VwapNumerator, order.Owner)
	k.grantDerived(ctx, order.VwapDenominator, order.Owner)

	if err := k.subFromPoolAggregates(ctx, order.PoolId, order.Direction, fillSize); err != nil {
		return fmt.Errorf("update pool aggregates: %w", err)
	}

	// Sanctioned boolean signal: is the order now complete? This is the only
	// information about the remaining size that ever leaves the ciphertext
	// domain, and only as a single bit.
	zero, err := k.fheKeeper.Encrypt(ctx, sdkmath.ZeroInt(), types.CtUint128)
	if err != nil {
		return err
	}
	doneCt, err := k.fheKeeper.Eq(ctx, order.RemainingSize, zero)
	if err != nil {
		return fmt.Errorf("completion signal: %w", err)
	}
	k.GrantAccess(ctx, doneCt, EngineAddress)
	done, err := k.engineDecrypt(ctx, doneCt)
	if err != nil {
		return fmt.Errorf("decrypt completion signal: %w", err)
	}

	if done.IsPositive() {
		inactive, err := k.fheKeeper.Encrypt(ctx, sdkmath.ZeroInt(), types.CtBool)
		if err != nil {
			return err
		}
		order.IsActive = inactive
		k.GrantAccess(ctx, inactive, EngineAddress)
		order.Status = types.OrderStatusFilled
		metrics().OrdersFilled.Inc()
		metrics().ActiveOrders.Dec()
	} else {
		order.Status = types.OrderStatusPartiallyFilled
	}

	if err := k.SetOrder(ctx, order); err != nil {
		return err
	}

	if k.settlementKeeper != nil {
		if err := k.settlementKeeper.Settle(ctx, order.Id, order.Owner, order.PoolId, fillPlain); err != nil {
			return fmt.Errorf("settle fill for order %d: %w", order.Id, err)
		}
	}

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeOrderFilled,
			sdk.NewAttribute(types.AttributeKeyOrderID, fmt.Sprintf("%d", order.Id)),
			sdk.NewAttribute(types.AttributeKeyPoolID, fmt.Sprintf("%d", order.PoolId)),
			sdk.NewAttribute(types.AttributeKeyTimestamp, fmt.Sprintf("%d", sdkCtx.BlockTime().Unix())),
		),
	)

	k.afterOrderFilled(sdkCtx, order.Id, order.PoolId)
	metrics().FillsExecuted.Inc()
	telemetryIncr("fill_executed", order.PoolId)

	k.Logger(sdkCtx).Info("fill recorded", "order_id", order.Id, "sequence", record.Sequence, "complete", done.IsPositive())

	return nil
}

// setFill stores one fill record.
func (k Keeper) setFill(ctx context.Context, record types.FillRecord) error {
	bz, err := json.Marshal(record)
	if err != nil {
		return types.ErrInvalidState.Wrapf("failed to marshal fill record: %v", err)
	}
	k.getStore(ctx).Set(FillKey(record.OrderId, record.Sequence), bz)
	return nil
}

// GetFills returns the fill history of an order in sequence order.
func (k Keeper) GetFills(ctx context.Context, orderID uint64) ([]types.FillRecord, error) {
	store := k.getStore(ctx)

	orderIDBytes := make([]byte, 8)
	binary.BigEndian.PutUint64(orderIDBytes, orderID)
	start := append(FillKeyPrefix, orderIDBytes...)

	iterator := store.Iterator(start, prefixEnd(start))
	defer iterator.Close()

	var fills []types.FillRecord
	for ; iterator.Valid(); iterator.Next() {
		var record types.FillRecord
		if err := json.Unmarshal(iterator.Value(), &record); err != nil {
			return nil, types.ErrInvalidState.Wrapf("failed to unmarshal fill record: %v", err)
		}
		fills = append(fills, record)
	}
	return fills, nil
}

// GetAllFills returns every fill record. Genesis export.
func (k Keeper) GetAllFills(ctx context.Context) ([]types.FillRecord, error) {
	store := k.getStore(ctx)
	iterator := store.Iterator(FillKeyPrefix, prefixEnd(FillKeyPrefix))
	defer iterator.Close()

	var fills []types.FillRecord
	for ; iterator.Valid(); iterator.Next() {
		var record types.FillRecord
		if err := json.Unmarshal(iterator.Value(), &record); err != nil {
			return nil, types.ErrInvalidState.Wrapf("failed to unmarshal fill record: %v", err)
		}
		fills = append(fills, record)
	}
	return fills, nil
}
