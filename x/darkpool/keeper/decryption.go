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

// Store key prefixes for the two-phase decryption protocol.
var (
	// TicketKeyPrefix is the prefix for ticket storage (key: ticketID).
	TicketKeyPrefix = []byte{0x19}

	// TicketCountKey is the key for the next available ticket ID.
	TicketCountKey = []byte{0x1A}

	// TicketExpiryPrefix indexes unfulfilled tickets by expiry height for
	// pruning. Key format: 0x1B || expiresAt || ticketID
	TicketExpiryPrefix = []byte{0x1B}
)

// TicketKey returns the store key for a decryption ticket
func TicketKey(ticketID uint64) []byte {
	ticketIDBytes := make([]byte, 8)
	binary.BigEndian.PutUint64(ticketIDBytes, ticketID)
	return append(TicketKeyPrefix, ticketIDBytes...)
}

// TicketExpiryKey returns the expiry index key for a ticket
func TicketExpiryKey(expiresAt int64, ticketID uint64) []byte {
	expiryBytes := make([]byte, 8)
	binary.BigEndian.PutUint64(expiryBytes, uint64(expiresAt))
	ticketIDBytes := make([]byte, 8)
	binary.BigEndian.PutUint64(ticketIDBytes, ticketID)
	key := append(TicketExpiryPrefix, expiryBytes...)
	return append(key, ticketIDBytes...)
}

// ============================================================================
// Two-Phase Decryption
// ============================================================================

// RequestDecryption opens a decryption ticket for one order field.
//
// The requester must hold a grant on the field's current ciphertext; in
// practice that is the order owner, whose grants are installed at placement
// and extended to every derived accumulator handle. The ticket snapshots the
// handle so a later fill cannot retroactively change what the requester is
// opening.
func (k Keeper) RequestDecryption(ctx context.Context, requester string, orderID uint64, field string) (uint64, error) {
	order, err := k.GetOrder(ctx, orderID)
	if err != nil {
		return 0, err
	}

	ct, ok := order.FieldCiphertext(field)
	if !ok {
		return 0, types.ErrUnknownField.Wrapf("field %q", field)
	}

	if !k.HasAccess(ctx, ct, requester) {
		return 0, types.ErrPermissionDenied.Wrapf("%s holds no grant on %s of order %d", requester, field, orderID)
	}

	ticketID, err := k.GetNextTicketID(ctx)
	if err != nil {
		return 0, err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	params := k.GetParams(ctx)
	ticket := types.DecryptionTicket{
		Id:          ticketID,
		OrderId:     orderID,
		Field:       field,
		Handle:      ct,
		Requester:   requester,
		Status:      types.TicketStatusRequested,
		Plaintext:   sdkmath.ZeroInt(),
		RequestedAt: sdkCtx.BlockHeight(),
		ExpiresAt:   sdkCtx.BlockHeight() + params.TicketTimeoutBlocks,
	}
	if err := k.SetTicket(ctx, ticket); err != nil {
		return 0, err
	}
	k.getStore(ctx).Set(TicketExpiryKey(ticket.ExpiresAt, ticketID), []byte{1})

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeDecryptionRequested,
			sdk.NewAttribute(types.AttributeKeyTicketID, fmt.Sprintf("%d", ticketID)),
			sdk.NewAttribute(types.AttributeKeyOrderID, fmt.Sprintf("%d", orderID)),
			sdk.NewAttribute(types.AttributeKeyField, field),
		),
	)
	metrics().TicketsRequested.Inc()

	return ticketID, nil
}

// FulfillDecryption attaches a coprocessor-produced plaintext to a requested
// ticket after re-verifying it against the snapshotted ciphertext
// commitment. A plaintext that fails verification is rejected outright.
func (k Keeper) FulfillDecryption(ctx context.Context, sender string, ticketID uint64, plaintext sdkmath.Int) error {
	ticket, err := k.GetTicket(ctx, ticketID)
	if err != nil {
		return err
	}

	if sender != ticket.Requester {
		return types.ErrUnauthorized.Wrapf("sender %s did not open ticket %d", sender, ticketID)
	}
	if ticket.Status != types.TicketStatusRequested {
		return types.ErrInvalidTicketState.Wrapf("ticket %d is %s", ticketID, ticket.Status)
	}

	ok, err := k.fheKeeper.VerifyPlaintext(ctx, ticket.Handle, plaintext)
	if err != nil {
		return fmt.Errorf("verify plaintext for ticket %d: %w", ticketID, err)
	}
	if !ok {
		return types.ErrPlaintextMismatch.Wrapf("ticket %d", ticketID)
	}

	ticket.Status = types.TicketStatusFulfilled
	ticket.Plaintext = plaintext
	if err := k.SetTicket(ctx, *ticket); err != nil {
		return err
	}
	k.getStore(ctx).Delete(TicketExpiryKey(ticket.ExpiresAt, ticketID))

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeDecryptionFulfilled,
			sdk.NewAttribute(types.AttributeKeyTicketID, fmt.Sprintf("%d", ticketID)),
		),
	)
	metrics().TicketsFulfilled.Inc()

	return nil
}

// ConsumeDecryption finalizes a fulfilled ticket and hands the verified
// plaintext back to the requester. Terminal; a consumed ticket cannot be
// replayed.
func (k Keeper) ConsumeDecryption(ctx context.Context, sender string, ticketID uint64) (sdkmath.Int, error) {
	ticket, err := k.GetTicket(ctx, ticketID)
	if err != nil {
		return sdkmath.Int{}, err
	}

	if sender != ticket.Requester {
		return sdkmath.Int{}, types.ErrUnauthorized.Wrapf("sender %s did not open ticket %d", sender, ticketID)
	}
	if ticket.Status != types.TicketStatusFulfilled {
		return sdkmath.Int{}, types.ErrInvalidTicketState.Wrapf("ticket %d is %s", ticketID, ticket.Status)
	}

	ticket.Status = types.TicketStatusConsumed
	if err := k.SetTicket(ctx, *ticket); err != nil {
		return sdkmath.Int{}, err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeDecryptionConsumed,
			sdk.NewAttribute(types.AttributeKeyTicketID, fmt.Sprintf("%d", ticketID)),
		),
	)
	metrics().TicketsConsumed.Inc()

	return ticket.Plaintext, nil
}

// pruneExpiredTickets deletes tickets whose request phase timed out without
// fulfillment. EndBlock maintenance.
func (k Keeper) pruneExpiredTickets(ctx context.Context) (uint32, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	store := k.getStore(ctx)

	end := TicketExpiryKey(sdkCtx.BlockHeight()+1, 0)
	iterator := store.Iterator(TicketExpiryPrefix, end)

	type victim struct {
		indexKey []byte
		ticketID uint64
	}
	var victims []victim
	for ; iterator.Valid(); iterator.Next() {
		key := iterator.Key()
		indexKey := make([]byte, len(key))
		copy(indexKey, key)
		victims = append(victims, victim{
			indexKey: indexKey,
			ticketID: binary.BigEndian.Uint64(key[len(key)-8:]),
		})
	}
	iterator.Close()

	var pruned uint32
	for _, v := range victims {
		store.Delete(v.indexKey)
		ticket, err := k.GetTicket(ctx, v.ticketID)
		if err != nil {
			continue
		}
		if ticket.Status != types.TicketStatusRequested {
			continue
		}
		store.Delete(TicketKey(v.ticketID))
		pruned++
		metrics().TicketsPruned.Inc()
	}

	if pruned > 0 {
		k.Logger(sdkCtx).Info("pruned expired decryption tickets", "count", pruned)
	}
	return pruned, nil
}

// ============================================================================
// Ticket Storage
// ============================================================================

// GetNextTicketID returns and increments the next ticket ID
func (k Keeper) GetNextTicketID(ctx context.Context) (uint64, error) {
	store := k.getStore(ctx)
	bz := store.Get(TicketCountKey)

	var nextID uint64 = 1
	if bz != nil {
		nextID = binary.BigEndian.Uint64(bz)
	}

	nextIDBytes := make([]byte, 8)
	binary.BigEndian.PutUint64(nextIDBytes, nextID+1)
	store.Set(TicketCountKey, nextIDBytes)

	return nextID, nil
}

// setNextTicketID seeds the ticket counter. Genesis only.
func (k Keeper) setNextTicketID(ctx context.Context, next uint64) {
	store := k.getStore(ctx)
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, next)
	store.Set(TicketCountKey, bz)
}

// getNextTicketIDPeek reads the ticket counter without incrementing it.
func (k Keeper) getNextTicketIDPeek(ctx context.Context) uint64 {
	bz := k.getStore(ctx).Get(TicketCountKey)
	if bz == nil {
		return 1
	}
	return binary.BigEndian.Uint64(bz)
}

// SetTicket stores a decryption ticket.
func (k Keeper) SetTicket(ctx context.Context, ticket types.DecryptionTicket) error {
	bz, err := json.Marshal(ticket)
	if err != nil {
		return types.ErrInvalidState.Wrapf("failed to marshal ticket: %v", err)
	}
	k.getStore(ctx).Set(TicketKey(ticket.Id), bz)
	return nil
}

// GetTicket retrieves a decryption ticket by ID
func (k Keeper) GetTicket(ctx context.Context, ticketID uint64) (*types.DecryptionTicket, error) {
	bz := k.getStore(ctx).Get(TicketKey(ticketID))
	if bz == nil {
		return nil, types.ErrTicketNotFound.Wrapf("ticket not found: %d", ticketID)
	}

	var ticket types.DecryptionTicket
	if err := json.Unmarshal(bz, &ticket); err != nil {
		return nil, types.ErrInvalidState.Wrapf("failed to unmarshal ticket: %v", err)
	}
	return &ticket, nil
}

// GetAllTickets returns every stored ticket. Genesis export.
func (k Keeper) GetAllTickets(ctx context.Context) ([]types.DecryptionTicket, error) {
	store := k.getStore(ctx)
	iterator := store.Iterator(TicketKeyPrefix, prefixEnd(TicketKeyPrefix))
	defer iterator.Close()

	var tickets []types.DecryptionTicket
	for ; iterator.Valid(); iterator.Next() {
		var ticket types.DecryptionTicket
		if err := json.Unmarshal(iterator.Value(), &ticket); err != nil {
			return nil, types.ErrInvalidState.Wrapf("failed to unmarshal ticket: %v", err)
		}
		tickets = append(tickets, ticket)
	}
	return tickets, nil
}
