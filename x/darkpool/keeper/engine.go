package keeper

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"fmt"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/veilchain/veil/x/darkpool/types"
)

// PriceMarkerKeyPrefix is the prefix for processed price update markers.
// Key format: 0x18 || poolID || height || priceHash
var PriceMarkerKeyPrefix = []byte{0x18}

// PriceMarkerKey returns the idempotence marker key for one price update
func PriceMarkerKey(poolID uint64, height int64, priceHash []byte) []byte {
	poolIDBytes := make([]byte, 8)
	binary.BigEndian.PutUint64(poolIDBytes, poolID)
	heightBytes := make([]byte, 8)
	binary.BigEndian.PutUint64(heightBytes, uint64(height))
	key := append(PriceMarkerKeyPrefix, poolIDBytes...)
	key = append(key, heightBytes...)
	return append(key, priceHash...)
}

// ============================================================================
// Execution Engine
// ============================================================================

// OnPriceUpdate evaluates the active orders of a pool against a new pool
// price and executes every eligible one, without ever branching on encrypted
// order state.
//
// The price and available liquidity are public inputs from the AMM. For each
// candidate the engine computes, entirely over ciphertexts:
//
//	triggered = select(dir==buy, price <= trigger, price >= trigger)
//	cap       = min(remaining, liquidity)
//	policyOk  = select(partialAllowed, cap >= minFill, cap == remaining)
//	live      = isActive AND NOT(now >= expiry)
//	fill      = select(live AND triggered AND policyOk, cap, 0)
//
// and then performs the single sanctioned decryption of fill. Ineligible
// orders decrypt to zero, so the engine's observable behavior is identical
// for "not triggered", "below minimum fill", "all-or-nothing short" and
// "already inactive": nothing happens and no error is returned.
//
// Re-delivery of the same update in the same block is a no-op: a marker
// keyed by (pool, height, price) records that the update was consumed.
func (k Keeper) OnPriceUpdate(ctx context.Context, poolID uint64, price, liquidity sdkmath.Int) error {
	if k.IsPaused(ctx) {
		return nil
	}
	if poolID == 0 {
		return types.ErrInvalidInput.Wrap("pool id must be positive")
	}
	if price.IsNil() || !price.IsPositive() {
		return types.ErrInvalidInput.Wrap("price must be positive")
	}
	if liquidity.IsNil() || liquidity.IsNegative() {
		return types.ErrInvalidInput.Wrap("liquidity must be non-negative")
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	store := k.getStore(ctx)

	priceHash := hashPrice(price)
	marker := PriceMarkerKey(poolID, sdkCtx.BlockHeight(), priceHash)
	if store.Has(marker) {
		return nil
	}
	store.Set(marker, []byte{1})

	metrics().PriceUpdates.Inc()
	telemetryIncr("price_update", poolID)

	if liquidity.IsZero() {
		return nil
	}

	priceCt, err := k.fheKeeper.Encrypt(ctx, price, types.CtUint128)
	if err != nil {
		return fmt.Errorf("encrypt price: %w", err)
	}
	k.GrantAccess(ctx, priceCt, EngineAddress)

	params := k.GetParams(ctx)
	liquidityLeft := liquidity
	evaluated := uint32(0)

	var candidates []types.Order
	if err := k.IterateActiveOrders(ctx, poolID, func(order types.Order) bool {
		candidates = append(candidates, order)
		evaluated++
		return evaluated >= params.MaxCandidatesPerUpdate
	}); err != nil {
		return err
	}

	for i := range candidates {
		if liquidityLeft.IsZero() {
			break
		}
		order := candidates[i]

		fillCt, fillPlain, err := k.evaluateOrder(ctx, &order, priceCt, liquidityLeft)
		if err != nil {
			return fmt.Errorf("evaluate order %d: %w", order.Id, err)
		}
		metrics().CandidatesEvaluated.Inc()

		if !fillPlain.IsPositive() {
			continue
		}

		if err := k.recordFill(ctx, &order, fillCt, priceCt, fillPlain); err != nil {
			return err
		}
		liquidityLeft = liquidityLeft.Sub(fillPlain)
	}

	return nil
}

// evaluateOrder computes the gated fill ciphertext for one candidate against
// the current price and remaining liquidity, and decrypts it. The returned
// plaintext is zero for every ineligible order.
func (k Keeper) evaluateOrder(ctx context.Context, order *types.Order, priceCt types.Ciphertext, liquidity sdkmath.Int) (types.Ciphertext, sdkmath.Int, error) {
	fhe := k.fheKeeper

	buyDir, err := fhe.Encrypt(ctx, sdkmath.NewIntFromUint64(types.DirectionBuy), types.CtUint8)
	if err != nil {
		return types.Ciphertext{}, sdkmath.Int{}, err
	}
	isBuy, err := fhe.Eq(ctx, order.Direction, buyDir)
	if err != nil {
		return types.Ciphertext{}, sdkmath.Int{}, err
	}

	// Buy orders trigger when the market falls to the threshold, sell orders
	// when it rises to it. Both comparisons are always computed.
	buyTriggered, err := fhe.Le(ctx, priceCt, order.TriggerPrice)
	if err != nil {
		return types.Ciphertext{}, sdkmath.Int{}, err
	}
	sellTriggered, err := fhe.Ge(ctx, priceCt, order.TriggerPrice)
	if err != nil {
		return types.Ciphertext{}, sdkmath.Int{}, err
	}
	triggered, err := fhe.Select(ctx, isBuy, buyTriggered, sellTriggered)
	if err != nil {
		return types.Ciphertext{}, sdkmath.Int{}, err
	}

	liquidityCt, err := fhe.Encrypt(ctx, liquidity, types.CtUint128)
	if err != nil {
		return types.Ciphertext{}, sdkmath.Int{}, err
	}
	fillCap, err := fhe.Min(ctx, order.RemainingSize, liquidityCt)
	if err != nil {
		return types.Ciphertext{}, sdkmath.Int{}, err
	}

	// Fill policy: partial fills must clear the minimum; all-or-nothing
	// orders fill only when the cap covers the full remainder.
	partialOk, err := fhe.Ge(ctx, fillCap, order.MinFillSize)
	if err != nil {
		return types.Ciphertext{}, sdkmath.Int{}, err
	}
	fullOk, err := fhe.Eq(ctx, fillCap, order.RemainingSize)
	if err != nil {
		return types.Ciphertext{}, sdkmath.Int{}, err
	}
	policyOk, err := fhe.Select(ctx, order.PartialFillAllowed, partialOk, fullOk)
	if err != nil {
		return types.Ciphertext{}, sdkmath.Int{}, err
	}

	// Liveness folds in the encrypted expiry so a swept-but-not-yet-visited
	// or silently expired order computes to a zero fill, with no branch.
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	nowCt, err := fhe.Encrypt(ctx, sdkmath.NewInt(sdkCtx.BlockTime().Unix()), types.CtUint64)
	if err != nil {
		return types.Ciphertext{}, sdkmath.Int{}, err
	}
	expired, err := fhe.Ge(ctx, nowCt, order.ExpirationTime)
	if err != nil {
		return types.Ciphertext{}, sdkmath.Int{}, err
	}
	notExpired, err := fhe.Not(ctx, expired)
	if err != nil {
		return types.Ciphertext{}, sdkmath.Int{}, err
	}
	live, err := fhe.And(ctx, order.IsActive, notExpired)
	if err != nil {
		return types.Ciphertext{}, sdkmath.Int{}, err
	}

	gate, err := fhe.And(ctx, live, triggered)
	if err != nil {
		return types.Ciphertext{}, sdkmath.Int{}, err
	}
	gate, err = fhe.And(ctx, gate, policyOk)
	if err != nil {
		return types.Ciphertext{}, sdkmath.Int{}, err
	}

	zero, err := fhe.Encrypt(ctx, sdkmath.ZeroInt(), types.CtUint128)
	if err != nil {
		return types.Ciphertext{}, sdkmath.Int{}, err
	}
	fillCt, err := fhe.Select(ctx, gate, fillCap, zero)
	if err != nil {
		return types.Ciphertext{}, sdkmath.Int{}, err
	}

	// The sanctioned decryption: the final, gated fill size and nothing else.
	k.GrantAccess(ctx, fillCt, EngineAddress)
	fillPlain, err := k.engineDecrypt(ctx, fillCt)
	if err != nil {
		return types.Ciphertext{}, sdkmath.Int{}, err
	}

	return fillCt, fillPlain, nil
}

// hashPrice derives the idempotence marker component for a price value.
func hashPrice(price sdkmath.Int) []byte {
	sum := sha256.Sum256([]byte(price.String()))
	return sum[:]
}
