package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/log"
	storetypes "cosmossdk.io/store/types"
	"github.com/cosmos/cosmos-sdk/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/veilchain/veil/x/darkpool/types"
)

// Keeper of the darkpool store. Encrypted order state lives in the module
// KVStore; all homomorphic arithmetic is delegated to the FHE keeper.
type Keeper struct {
	storeKey         storetypes.StoreKey
	cdc              codec.BinaryCodec
	fheKeeper        types.FHEKeeper
	settlementKeeper types.SettlementKeeper
	hooks            types.DarkpoolHooks
	authority        string // module authority (usually governance module account)
}

// NewKeeper creates a new darkpool Keeper instance
func NewKeeper(
	cdc codec.BinaryCodec,
	key storetypes.StoreKey,
	fheKeeper types.FHEKeeper,
	settlementKeeper types.SettlementKeeper,
	authority string,
) *Keeper {
	if fheKeeper == nil {
		panic("darkpool keeper requires an FHE keeper")
	}
	return &Keeper{
		storeKey:         key,
		cdc:              cdc,
		fheKeeper:        fheKeeper,
		settlementKeeper: settlementKeeper,
		authority:        authority,
	}
}

// SetHooks sets the darkpool hooks. Panics if called more than once.
func (k *Keeper) SetHooks(h types.DarkpoolHooks) {
	if k.hooks != nil {
		panic("cannot set darkpool hooks twice")
	}
	k.hooks = h
}

// GetAuthority returns the module authority address.
func (k Keeper) GetAuthority() string {
	return k.authority
}

// Logger returns a module-specific logger
func (k Keeper) Logger(ctx sdk.Context) log.Logger {
	return ctx.Logger().With("module", fmt.Sprintf("x/%s", types.ModuleName))
}

// getStore returns the KVStore for the darkpool module
func (k Keeper) getStore(ctx context.Context) storetypes.KVStore {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	return sdkCtx.KVStore(k.storeKey)
}

// Hook dispatch helpers. Hook failures are logged and swallowed so an
// external consumer can never block the order lifecycle.

func (k Keeper) afterOrderPlaced(ctx sdk.Context, orderID uint64, owner string, poolID uint64) {
	if k.hooks == nil {
		return
	}
	if err := k.hooks.AfterOrderPlaced(ctx, orderID, owner, poolID); err != nil {
		k.Logger(ctx).Error("AfterOrderPlaced hook failed", "order_id", orderID, "error", err)
	}
}

func (k Keeper) afterOrderFilled(ctx sdk.Context, orderID uint64, poolID uint64) {
	if k.hooks == nil {
		return
	}
	if err := k.hooks.AfterOrderFilled(ctx, orderID, poolID); err != nil {
		k.Logger(ctx).Error("AfterOrderFilled hook failed", "order_id", orderID, "error", err)
	}
}

func (k Keeper) afterOrderCancelled(ctx sdk.Context, orderID uint64, poolID uint64) {
	if k.hooks == nil {
		return
	}
	if err := k.hooks.AfterOrderCancelled(ctx, orderID, poolID); err != nil {
		k.Logger(ctx).Error("AfterOrderCancelled hook failed", "order_id", orderID, "error", err)
	}
}

func (k Keeper) afterOrderExpired(ctx sdk.Context, orderID uint64, poolID uint64) {
	if k.hooks == nil {
		return
	}
	if err := k.hooks.AfterOrderExpired(ctx, orderID, poolID); err != nil {
		k.Logger(ctx).Error("AfterOrderExpired hook failed", "order_id", orderID, "error", err)
	}
}
