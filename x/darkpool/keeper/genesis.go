package keeper

import (
	"encoding/hex"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/veilchain/veil/x/darkpool/types"
)

// InitGenesis initializes the darkpool module state from a genesis state.
func (k Keeper) InitGenesis(ctx sdk.Context, genState types.GenesisState) {
	if err := k.SetParams(ctx, genState.Params); err != nil {
		panic(fmt.Sprintf("failed to set darkpool params: %s", err))
	}

	// Write the flag directly: genesis restoration is not a pause event.
	if genState.Paused {
		k.getStore(ctx).Set(types.PausedKey, []byte{1})
	} else {
		k.getStore(ctx).Set(types.PausedKey, []byte{0})
	}
	k.setNextOrderID(ctx, genState.NextOrderId)
	k.setNextTicketID(ctx, genState.NextTicketId)

	for i := range genState.Orders {
		if err := k.SetOrder(ctx, &genState.Orders[i]); err != nil {
			panic(fmt.Sprintf("failed to restore order %d: %s", genState.Orders[i].Id, err))
		}
	}

	for _, fill := range genState.Fills {
		if err := k.setFill(ctx, fill); err != nil {
			panic(fmt.Sprintf("failed to restore fill for order %d: %s", fill.OrderId, err))
		}
	}

	for _, ticket := range genState.Tickets {
		if err := k.SetTicket(ctx, ticket); err != nil {
			panic(fmt.Sprintf("failed to restore ticket %d: %s", ticket.Id, err))
		}
		if ticket.Status == types.TicketStatusRequested {
			k.getStore(ctx).Set(TicketExpiryKey(ticket.ExpiresAt, ticket.Id), []byte{1})
		}
	}

	for _, grant := range genState.Grants {
		fingerprint, err := hex.DecodeString(grant.Fingerprint)
		if err != nil {
			panic(fmt.Sprintf("invalid grant fingerprint %q: %s", grant.Fingerprint, err))
		}
		k.setGrantRaw(ctx, fingerprint, grant.Principal)
	}

	for _, agg := range genState.Aggregates {
		if err := k.SetPoolAggregate(ctx, agg); err != nil {
			panic(fmt.Sprintf("failed to restore aggregate for pool %d: %s", agg.PoolId, err))
		}
	}

	k.Logger(ctx).Info("darkpool module genesis initialized",
		"orders", len(genState.Orders),
		"tickets", len(genState.Tickets),
		"grants", len(genState.Grants),
	)
}

// ExportGenesis returns the darkpool module's exported genesis state.
func (k Keeper) ExportGenesis(ctx sdk.Context) *types.GenesisState {
	genState := types.GenesisState{
		Params:       k.GetParams(ctx),
		Paused:       k.IsPaused(ctx),
		NextOrderId:  k.getNextOrderIDPeek(ctx),
		NextTicketId: k.getNextTicketIDPeek(ctx),
		Grants:       k.GetAllGrants(ctx),
	}

	if err := k.IterateOrders(ctx, func(order types.Order) bool {
		genState.Orders = append(genState.Orders, order)
		return false
	}); err != nil {
		panic(fmt.Sprintf("failed to export orders: %s", err))
	}

	fills, err := k.GetAllFills(ctx)
	if err != nil {
		panic(fmt.Sprintf("failed to export fills: %s", err))
	}
	genState.Fills = fills

	tickets, err := k.GetAllTickets(ctx)
	if err != nil {
		panic(fmt.Sprintf("failed to export tickets: %s", err))
	}
	genState.Tickets = tickets

	aggs, err := k.GetAllPoolAggregates(ctx)
	if err != nil {
		panic(fmt.Sprintf("failed to export pool aggregates: %s", err))
	}
	genState.Aggregates = aggs

	return &genState
}
