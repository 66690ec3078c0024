package keeper

import (
	"context"
	"encoding/binary"
	"encoding/json"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/veilchain/veil/x/darkpool/types"
)

// ============================================================================
// Store Keys
// ============================================================================

// Store key prefixes for the encrypted order book.
//
// Primary storage holds orders by ID; secondary indexes support owner and
// pool queries and fast iteration over active orders. There is deliberately
// no price or side index: price, size and direction are ciphertexts, so any
// index over them would leak orderings the module promises to hide.
var (
	// OrderKeyPrefix is the prefix for primary order storage (key: orderID).
	OrderKeyPrefix = []byte{0x10}

	// OrderCountKey is the key for the next available order ID (global counter).
	OrderCountKey = []byte{0x11}

	// OrderByOwnerPrefix indexes orders by owner address.
	// Key format: 0x12 || ownerAddr || orderID
	OrderByOwnerPrefix = []byte{0x12}

	// OrderByPoolPrefix indexes orders by pool ID.
	// Key format: 0x13 || poolID || orderID
	OrderByPoolPrefix = []byte{0x13}

	// ActiveOrderPrefix indexes non-terminal orders per pool for engine and
	// sweep iteration. Key format: 0x14 || poolID || orderID
	ActiveOrderPrefix = []byte{0x14}

	// PoolAggregateKeyPrefix is the prefix for per-pool encrypted open
	// interest aggregates (key: poolID).
	PoolAggregateKeyPrefix = []byte{0x15}
)

// OrderKey returns the store key for an order
func OrderKey(orderID uint64) []byte {
	orderIDBytes := make([]byte, 8)
	binary.BigEndian.PutUint64(orderIDBytes, orderID)
	return append(OrderKeyPrefix, orderIDBytes...)
}

// OrderByOwnerKey returns the index key for orders by owner
func OrderByOwnerKey(owner sdk.AccAddress, orderID uint64) []byte {
	orderIDBytes := make([]byte, 8)
	binary.BigEndian.PutUint64(orderIDBytes, orderID)
	key := append(OrderByOwnerPrefix, owner.Bytes()...)
	return append(key, orderIDBytes...)
}

// OrderByPoolKey returns the index key for orders by pool
func OrderByPoolKey(poolID uint64, orderID uint64) []byte {
	poolIDBytes := make([]byte, 8)
	binary.BigEndian.PutUint64(poolIDBytes, poolID)
	orderIDBytes := make([]byte, 8)
	binary.BigEndian.PutUint64(orderIDBytes, orderID)
	key := append(OrderByPoolPrefix, poolIDBytes...)
	return append(key, orderIDBytes...)
}

// ActiveOrderKey returns the index key for active orders on a pool
func ActiveOrderKey(poolID uint64, orderID uint64) []byte {
	poolIDBytes := make([]byte, 8)
	binary.BigEndian.PutUint64(poolIDBytes, poolID)
	orderIDBytes := make([]byte, 8)
	binary.BigEndian.PutUint64(orderIDBytes, orderID)
	key := append(ActiveOrderPrefix, poolIDBytes...)
	return append(key, orderIDBytes...)
}

// PoolAggregateKey returns the store key for a pool's encrypted aggregates
func PoolAggregateKey(poolID uint64) []byte {
	poolIDBytes := make([]byte, 8)
	binary.BigEndian.PutUint64(poolIDBytes, poolID)
	return append(PoolAggregateKeyPrefix, poolIDBytes...)
}

// ============================================================================
// Order Storage
// ============================================================================

// GetNextOrderID returns and increments the next order ID
func (k Keeper) GetNextOrderID(ctx context.Context) (uint64, error) {
	store := k.getStore(ctx)
	bz := store.Get(OrderCountKey)

	var nextID uint64 = 1
	if bz != nil {
		nextID = binary.BigEndian.Uint64(bz)
	}

	nextIDBytes := make([]byte, 8)
	binary.BigEndian.PutUint64(nextIDBytes, nextID+1)
	store.Set(OrderCountKey, nextIDBytes)

	return nextID, nil
}

// setNextOrderID seeds the order counter. Genesis only.
func (k Keeper) setNextOrderID(ctx context.Context, next uint64) {
	store := k.getStore(ctx)
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, next)
	store.Set(OrderCountKey, bz)
}

// getNextOrderIDPeek reads the counter without incrementing it.
func (k Keeper) getNextOrderIDPeek(ctx context.Context) uint64 {
	bz := k.getStore(ctx).Get(OrderCountKey)
	if bz == nil {
		return 1
	}
	return binary.BigEndian.Uint64(bz)
}

// SetOrder stores an order and maintains its indexes.
//
// The active index tracks the plaintext status, which in turn only moves on
// publicly observable transitions. An order with a terminal status never
// reappears in engine or sweep iteration.
func (k Keeper) SetOrder(ctx context.Context, order *types.Order) error {
	store := k.getStore(ctx)

	bz, err := json.Marshal(order)
	if err != nil {
		return types.ErrInvalidState.Wrapf("failed to marshal order: %v", err)
	}

	store.Set(OrderKey(order.Id), bz)

	ownerAddr, err := sdk.AccAddressFromBech32(order.Owner)
	if err != nil {
		return types.ErrInvalidInput.Wrapf("invalid owner address: %v", err)
	}

	store.Set(OrderByOwnerKey(ownerAddr, order.Id), []byte{1})
	store.Set(OrderByPoolKey(order.PoolId, order.Id), []byte{1})

	if order.Status.IsTerminal() {
		store.Delete(ActiveOrderKey(order.PoolId, order.Id))
	} else {
		store.Set(ActiveOrderKey(order.PoolId, order.Id), []byte{1})
	}

	return nil
}

// GetOrder retrieves an order by ID
func (k Keeper) GetOrder(ctx context.Context, orderID uint64) (*types.Order, error) {
	store := k.getStore(ctx)

	bz := store.Get(OrderKey(orderID))
	if bz == nil {
		return nil, types.ErrOrderNotFound.Wrapf("order not found: %d", orderID)
	}

	var order types.Order
	if err := json.Unmarshal(bz, &order); err != nil {
		return nil, types.ErrInvalidState.Wrapf("failed to unmarshal order: %v", err)
	}

	return &order, nil
}

// HasOrder reports whether an order exists.
func (k Keeper) HasOrder(ctx context.Context, orderID uint64) bool {
	return k.getStore(ctx).Has(OrderKey(orderID))
}

// IterateOrders walks every stored order until fn returns true.
func (k Keeper) IterateOrders(ctx context.Context, fn func(order types.Order) (stop bool)) error {
	store := k.getStore(ctx)
	iterator := store.Iterator(OrderKeyPrefix, prefixEnd(OrderKeyPrefix))
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		var order types.Order
		if err := json.Unmarshal(iterator.Value(), &order); err != nil {
			return types.ErrInvalidState.Wrapf("failed to unmarshal order: %v", err)
		}
		if fn(order) {
			break
		}
	}
	return nil
}

// IterateActiveOrders walks the active index of one pool in ascending order
// ID, resolving each entry to its order, until fn returns true.
func (k Keeper) IterateActiveOrders(ctx context.Context, poolID uint64, fn func(order types.Order) (stop bool)) error {
	store := k.getStore(ctx)

	poolIDBytes := make([]byte, 8)
	binary.BigEndian.PutUint64(poolIDBytes, poolID)
	start := append(ActiveOrderPrefix, poolIDBytes...)

	iterator := store.Iterator(start, prefixEnd(start))
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		key := iterator.Key()
		orderID := binary.BigEndian.Uint64(key[len(key)-8:])

		order, err := k.GetOrder(ctx, orderID)
		if err != nil {
			return err
		}
		if fn(*order) {
			break
		}
	}
	return nil
}

// GetOrdersByOwner returns all orders placed by an owner, in ascending ID
// order.
func (k Keeper) GetOrdersByOwner(ctx context.Context, owner sdk.AccAddress) ([]types.Order, error) {
	store := k.getStore(ctx)

	start := append(OrderByOwnerPrefix, owner.Bytes()...)
	iterator := store.Iterator(start, prefixEnd(start))
	defer iterator.Close()

	var orders []types.Order
	for ; iterator.Valid(); iterator.Next() {
		key := iterator.Key()
		orderID := binary.BigEndian.Uint64(key[len(key)-8:])

		order, err := k.GetOrder(ctx, orderID)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
	return orders, nil
}

// GetOrdersByPool returns all orders resting on a pool, in ascending ID
// order.
func (k Keeper) GetOrdersByPool(ctx context.Context, poolID uint64) ([]types.Order, error) {
	store := k.getStore(ctx)

	poolIDBytes := make([]byte, 8)
	binary.BigEndian.PutUint64(poolIDBytes, poolID)
	start := append(OrderByPoolPrefix, poolIDBytes...)

	iterator := store.Iterator(start, prefixEnd(start))
	defer iterator.Close()

	var orders []types.Order
	for ; iterator.Valid(); iterator.Next() {
		key := iterator.Key()
		orderID := binary.BigEndian.Uint64(key[len(key)-8:])

		order, err := k.GetOrder(ctx, orderID)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
	return orders, nil
}

// ============================================================================
// Pool Aggregates
// ============================================================================

// GetPoolAggregate returns the encrypted per-side open interest of a pool.
// A pool with no history yet gets freshly encrypted zeros.
func (k Keeper) GetPoolAggregate(ctx context.Context, poolID uint64) (types.PoolAggregate, error) {
	store := k.getStore(ctx)

	bz := store.Get(PoolAggregateKey(poolID))
	if bz == nil {
		zeroBuy, err := k.fheKeeper.Encrypt(ctx, sdkmath.ZeroInt(), types.CtUint128)
		if err != nil {
			return types.PoolAggregate{}, err
		}
		zeroSell, err := k.fheKeeper.Encrypt(ctx, sdkmath.ZeroInt(), types.CtUint128)
		if err != nil {
			return types.PoolAggregate{}, err
		}
		return types.PoolAggregate{PoolId: poolID, Buy: zeroBuy, Sell: zeroSell}, nil
	}

	var agg types.PoolAggregate
	if err := json.Unmarshal(bz, &agg); err != nil {
		return types.PoolAggregate{}, types.ErrInvalidState.Wrapf("failed to unmarshal pool aggregate: %v", err)
	}
	return agg, nil
}

// SetPoolAggregate stores a pool's encrypted aggregates.
func (k Keeper) SetPoolAggregate(ctx context.Context, agg types.PoolAggregate) error {
	store := k.getStore(ctx)

	bz, err := json.Marshal(agg)
	if err != nil {
		return types.ErrInvalidState.Wrapf("failed to marshal pool aggregate: %v", err)
	}
	store.Set(PoolAggregateKey(agg.PoolId), bz)
	return nil
}

// GetAllPoolAggregates returns every stored pool aggregate. Genesis export.
func (k Keeper) GetAllPoolAggregates(ctx context.Context) ([]types.PoolAggregate, error) {
	store := k.getStore(ctx)
	iterator := store.Iterator(PoolAggregateKeyPrefix, prefixEnd(PoolAggregateKeyPrefix))
	defer iterator.Close()

	var aggs []types.PoolAggregate
	for ; iterator.Valid(); iterator.Next() {
		var agg types.PoolAggregate
		if err := json.Unmarshal(iterator.Value(), &agg); err != nil {
			return nil, types.ErrInvalidState.Wrapf("failed to unmarshal pool aggregate: %v", err)
		}
		aggs = append(aggs, agg)
	}
	return aggs, nil
}

// addToPoolAggregates adds delta to the buy side where the encrypted
// direction is buy and to the sell side elsewhere. Both sides are always
// rewritten so the write pattern is independent of the secret direction.
func (k Keeper) addToPoolAggregates(ctx context.Context, poolID uint64, direction, delta types.Ciphertext) error {
	return k.applyAggregateDelta(ctx, poolID, direction, delta, false)
}

// subFromPoolAggregates subtracts delta with the same direction blinding,
// clamping each side at zero.
func (k Keeper) subFromPoolAggregates(ctx context.Context, poolID uint64, direction, delta types.Ciphertext) error {
	return k.applyAggregateDelta(ctx, poolID, direction, delta, true)
}

func (k Keeper) applyAggregateDelta(ctx context.Context, poolID uint64, direction, delta types.Ciphertext, subtract bool) error {
	agg, err := k.GetPoolAggregate(ctx, poolID)
	if err != nil {
		return err
	}

	buyDir, err := k.fheKeeper.Encrypt(ctx, sdkmath.NewIntFromUint64(types.DirectionBuy), types.CtUint8)
	if err != nil {
		return err
	}
	isBuy, err := k.fheKeeper.Eq(ctx, direction, buyDir)
	if err != nil {
		return err
	}

	zero, err := k.fheKeeper.Encrypt(ctx, sdkmath.ZeroInt(), types.CtUint128)
	if err != nil {
		return err
	}

	buyDelta, err := k.fheKeeper.Select(ctx, isBuy, delta, zero)
	if err != nil {
		return err
	}
	sellDelta, err := k.fheKeeper.Select(ctx, isBuy, zero, delta)
	if err != nil {
		return err
	}

	if subtract {
		agg.Buy, err = k.clampedSub(ctx, agg.Buy, buyDelta)
		if err != nil {
			return err
		}
		agg.Sell, err = k.clampedSub(ctx, agg.Sell, sellDelta)
		if err != nil {
			return err
		}
	} else {
		agg.Buy, err = k.fheKeeper.Add(ctx, agg.Buy, buyDelta)
		if err != nil {
			return err
		}
		agg.Sell, err = k.fheKeeper.Add(ctx, agg.Sell, sellDelta)
		if err != nil {
			return err
		}
	}

	k.GrantAccess(ctx, agg.Buy, EngineAddress)
	k.GrantAccess(ctx, agg.Sell, EngineAddress)

	return k.SetPoolAggregate(ctx, agg)
}

// clampedSub computes max(a-b, 0) without branching on the secret values:
// select(a >= b, a-b, 0).
func (k Keeper) clampedSub(ctx context.Context, a, b types.Ciphertext) (types.Ciphertext, error) {
	ge, err := k.fheKeeper.Ge(ctx, a, b)
	if err != nil {
		return types.Ciphertext{}, err
	}
	diff, err := k.fheKeeper.Sub(ctx, a, b)
	if err != nil {
		return types.Ciphertext{}, err
	}
	zero, err := k.fheKeeper.Encrypt(ctx, sdkmath.ZeroInt(), a.Width)
	if err != nil {
		return types.Ciphertext{}, err
	}
	return k.fheKeeper.Select(ctx, ge, diff, zero)
}

// prefixEnd returns the exclusive upper bound for iterating a key prefix.
func prefixEnd(prefix []byte) []byte {
	end := make([]byte, len(prefix))
	copy(end, prefix)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] != 0xFF {
			end[i]++
			return end[:i+1]
		}
	}
	return nil
}
