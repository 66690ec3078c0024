package keeper

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// EndBlocker runs the darkpool maintenance tasks at the end of every block:
// an expiration sweep batch over active orders and pruning of timed-out
// decryption tickets.
//
// Maintenance failures are logged and skipped rather than halting the chain;
// every task is retried next block from persistent state.
func (k Keeper) EndBlocker(ctx sdk.Context) error {
	if _, err := k.sweepActiveBatch(ctx); err != nil {
		k.Logger(ctx).Error("failed to sweep expired orders", "error", err)
	}

	if _, err := k.pruneExpiredTickets(ctx); err != nil {
		k.Logger(ctx).Error("failed to prune expired decryption tickets", "error", err)
	}

	return nil
}
