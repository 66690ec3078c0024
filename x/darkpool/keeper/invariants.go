package keeper

import (
	"encoding/binary"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/veilchain/veil/x/darkpool/types"
)

// RegisterInvariants registers all darkpool invariants
func RegisterInvariants(ir sdk.InvariantRegistry, k Keeper) {
	ir.RegisterRoute(types.ModuleName, "order-ids", OrderIDsInvariant(k))
	ir.RegisterRoute(types.ModuleName, "active-index", ActiveIndexInvariant(k))
	ir.RegisterRoute(types.ModuleName, "fill-sequences", FillSequencesInvariant(k))
	ir.RegisterRoute(types.ModuleName, "ticket-states", TicketStatesInvariant(k))
	ir.RegisterRoute(types.ModuleName, "engine-grants", EngineGrantsInvariant(k))
}

// AllInvariants runs all invariants of the darkpool module
func AllInvariants(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		res, stop := OrderIDsInvariant(k)(ctx)
		if stop {
			return res, stop
		}

		res, stop = ActiveIndexInvariant(k)(ctx)
		if stop {
			return res, stop
		}

		res, stop = FillSequencesInvariant(k)(ctx)
		if stop {
			return res, stop
		}

		res, stop = TicketStatesInvariant(k)(ctx)
		if stop {
			return res, stop
		}

		return EngineGrantsInvariant(k)(ctx)
	}
}

// OrderIDsInvariant checks that order IDs are positive and below the counter
func OrderIDsInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			msg   string
			count int
		)

		next := k.getNextOrderIDPeek(ctx)
		_ = k.IterateOrders(ctx, func(order types.Order) bool {
			if order.Id == 0 || order.Id >= next {
				count++
				msg += fmt.Sprintf("order %d: id outside [1, %d)\n", order.Id, next)
			}
			return false
		})

		broken := count != 0
		return sdk.FormatInvariant(types.ModuleName, "order-ids",
			fmt.Sprintf("%d orders with invalid ids\n%s", count, msg)), broken
	}
}

// ActiveIndexInvariant checks that the active index and the plaintext order
// statuses agree in both directions.
func ActiveIndexInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			msg   string
			count int
		)

		indexed := make(map[uint64]bool)
		store := k.getStore(ctx)
		iterator := store.Iterator(ActiveOrderPrefix, prefixEnd(ActiveOrderPrefix))
		for ; iterator.Valid(); iterator.Next() {
			key := iterator.Key()
			indexed[binary.BigEndian.Uint64(key[len(key)-8:])] = true
		}
		iterator.Close()

		_ = k.IterateOrders(ctx, func(order types.Order) bool {
			if order.Status.IsTerminal() && indexed[order.Id] {
				count++
				msg += fmt.Sprintf("order %d: terminal (%s) but still in active index\n", order.Id, order.Status)
			}
			if !order.Status.IsTerminal() && !indexed[order.Id] {
				count++
				msg += fmt.Sprintf("order %d: %s but missing from active index\n", order.Id, order.Status)
			}
			delete(indexed, order.Id)
			return false
		})

		for orderID := range indexed {
			count++
			msg += fmt.Sprintf("active index entry for unknown order %d\n", orderID)
		}

		broken := count != 0
		return sdk.FormatInvariant(types.ModuleName, "active-index",
			fmt.Sprintf("%d active index mismatches\n%s", count, msg)), broken
	}
}

// FillSequencesInvariant checks that each order's fill count matches its
// ledger and that sequences are contiguous from zero.
func FillSequencesInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			msg   string
			count int
		)

		_ = k.IterateOrders(ctx, func(order types.Order) bool {
			fills, err := k.GetFills(ctx, order.Id)
			if err != nil {
				count++
				msg += fmt.Sprintf("order %d: unreadable fill ledger: %v\n", order.Id, err)
				return false
			}
			if uint32(len(fills)) != order.FillCount {
				count++
				msg += fmt.Sprintf("order %d: fill count %d but %d ledger records\n", order.Id, order.FillCount, len(fills))
				return false
			}
			for i, fill := range fills {
				if fill.Sequence != uint32(i) {
					count++
					msg += fmt.Sprintf("order %d: fill %d has sequence %d\n", order.Id, i, fill.Sequence)
					break
				}
			}
			if order.FillCount > 0 && order.Status == types.OrderStatusPending {
				count++
				msg += fmt.Sprintf("order %d: has fills but status pending\n", order.Id)
			}
			return false
		})

		broken := count != 0
		return sdk.FormatInvariant(types.ModuleName, "fill-sequences",
			fmt.Sprintf("%d fill ledger mismatches\n%s", count, msg)), broken
	}
}

// TicketStatesInvariant checks ticket state machine consistency
func TicketStatesInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			msg   string
			count int
		)

		next := k.getNextTicketIDPeek(ctx)
		tickets, err := k.GetAllTickets(ctx)
		if err != nil {
			return sdk.FormatInvariant(types.ModuleName, "ticket-states",
				fmt.Sprintf("unreadable ticket store: %v", err)), true
		}
		for _, ticket := range tickets {
			if ticket.Id == 0 || ticket.Id >= next {
				count++
				msg += fmt.Sprintf("ticket %d: id outside [1, %d)\n", ticket.Id, next)
			}
			switch ticket.Status {
			case types.TicketStatusRequested:
				// no plaintext yet
			case types.TicketStatusFulfilled, types.TicketStatusConsumed:
				if ticket.Plaintext.IsNil() {
					count++
					msg += fmt.Sprintf("ticket %d: %s without plaintext\n", ticket.Id, ticket.Status)
				}
			default:
				count++
				msg += fmt.Sprintf("ticket %d: unknown status %d\n", ticket.Id, ticket.Status)
			}
		}

		broken := count != 0
		return sdk.FormatInvariant(types.ModuleName, "ticket-states",
			fmt.Sprintf("%d ticket state violations\n%s", count, msg)), broken
	}
}

// EngineGrantsInvariant checks that the engine holds a grant on every
// ciphertext stored on every order; execution would silently stall without
// them.
func EngineGrantsInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			msg   string
			count int
		)

		_ = k.IterateOrders(ctx, func(order types.Order) bool {
			for _, ct := range order.EncryptedFieldHandles() {
				if !k.HasAccess(ctx, ct, EngineAddress) {
					count++
					msg += fmt.Sprintf("order %d: engine missing grant on %s\n", order.Id, ct)
					break
				}
			}
			return false
		})

		aggs, err := k.GetAllPoolAggregates(ctx)
		if err == nil {
			for _, agg := range aggs {
				if !k.HasAccess(ctx, agg.Buy, EngineAddress) || !k.HasAccess(ctx, agg.Sell, EngineAddress) {
					count++
					msg += fmt.Sprintf("pool %d: engine missing grant on aggregate\n", agg.PoolId)
				}
			}
		}

		broken := count != 0
		return sdk.FormatInvariant(types.ModuleName, "engine-grants",
			fmt.Sprintf("%d orders with missing engine grants\n%s", count, msg)), broken
	}
}
