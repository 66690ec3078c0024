package types

import (
	"context"
)

// DarkpoolHooks defines callbacks for order lifecycle transitions.
// Enables cross-module notifications without coupling the engine to
// consumers; every argument is plaintext-safe.
type DarkpoolHooks interface {
	// AfterOrderPlaced is called after a new order is stored.
	AfterOrderPlaced(ctx context.Context, orderID uint64, owner string, poolID uint64) error

	// AfterOrderFilled is called after a positive fill is recorded.
	// The fill amount is deliberately not part of the callback.
	AfterOrderFilled(ctx context.Context, orderID uint64, poolID uint64) error

	// AfterOrderCancelled is called after an owner/admin cancellation.
	AfterOrderCancelled(ctx context.Context, orderID uint64, poolID uint64) error

	// AfterOrderExpired is called when the sweep retires an expired order.
	AfterOrderExpired(ctx context.Context, orderID uint64, poolID uint64) error
}

// MultiDarkpoolHooks combines multiple hooks into one that calls all of them.
type MultiDarkpoolHooks []DarkpoolHooks

// NewMultiDarkpoolHooks creates a MultiDarkpoolHooks from a list of hooks.
func NewMultiDarkpoolHooks(hooks ...DarkpoolHooks) MultiDarkpoolHooks {
	return hooks
}

func (h MultiDarkpoolHooks) AfterOrderPlaced(ctx context.Context, orderID uint64, owner string, poolID uint64) error {
	for _, hook := range h {
		if hook == nil {
			continue
		}
		if err := hook.AfterOrderPlaced(ctx, orderID, owner, poolID); err != nil {
			return err
		}
	}
	return nil
}

func (h MultiDarkpoolHooks) AfterOrderFilled(ctx context.Context, orderID uint64, poolID uint64) error {
	for _, hook := range h {
		if hook == nil {
			continue
		}
		if err := hook.AfterOrderFilled(ctx, orderID, poolID); err != nil {
			return err
		}
	}
	return nil
}

func (h MultiDarkpoolHooks) AfterOrderCancelled(ctx context.Context, orderID uint64, poolID uint64) error {
	for _, hook := range h {
		if hook == nil {
			continue
		}
		if err := hook.AfterOrderCancelled(ctx, orderID, poolID); err != nil {
			return err
		}
	}
	return nil
}

func (h MultiDarkpoolHooks) AfterOrderExpired(ctx context.Context, orderID uint64, poolID uint64) error {
	for _, hook := range h {
		if hook == nil {
			continue
		}
		if err := hook.AfterOrderExpired(ctx, orderID, poolID); err != nil {
			return err
		}
	}
	return nil
}
