package keeper

import (
	"context"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/veilchain/veil/x/darkpool/types"
)

// ============================================================================
// Emergency Pause
// ============================================================================

// IsPaused reports whether the module is halted.
func (k Keeper) IsPaused(ctx context.Context) bool {
	store := k.getStore(ctx)
	bz := store.Get(types.PausedKey)
	return len(bz) == 1 && bz[0] == 1
}

// SetPaused flips the pause flag. Authority and emergency admin only; the
// caller is checked in the msg server.
//
// Pausing rejects placement and silences the execution engine uniformly for
// every order, so the rejection pattern carries no information about any
// individual order's encrypted state.
func (k Keeper) SetPaused(ctx context.Context, paused bool) {
	store := k.getStore(ctx)
	if paused {
		store.Set(types.PausedKey, []byte{1})
	} else {
		store.Set(types.PausedKey, []byte{0})
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	eventType := types.EventTypeModulePaused
	if !paused {
		eventType = types.EventTypeModuleUnpaused
	}
	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			eventType,
			sdk.NewAttribute(types.AttributeKeyHeight, fmt.Sprintf("%d", sdkCtx.BlockHeight())),
		),
	)

	k.Logger(sdkCtx).Info("pause flag changed", "paused", paused)
}

// RequireNotPaused returns ErrSystemPaused when the module is halted.
func (k Keeper) RequireNotPaused(ctx context.Context) error {
	if k.IsPaused(ctx) {
		return types.ErrSystemPaused
	}
	return nil
}
