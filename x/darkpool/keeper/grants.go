package keeper

import (
	"context"
	"encoding/hex"
	"fmt"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"

	"github.com/veilchain/veil/x/darkpool/types"
)

// GrantKeyPrefix is the prefix for the ciphertext access-control table.
// Key format: 0x20 || fingerprint(32) || principal
var GrantKeyPrefix = []byte{0x20}

// EngineAddress is the module account address the execution engine acts
// under. It is the only principal allowed to call the synchronous decrypt
// path, and only for the sanctioned signal ciphertexts.
var EngineAddress = authtypes.NewModuleAddress(types.ModuleName).String()

// GrantKey returns the store key for one (ciphertext, principal) grant
func GrantKey(fingerprint []byte, principal string) []byte {
	key := append(GrantKeyPrefix, fingerprint...)
	return append(key, []byte(principal)...)
}

// ============================================================================
// Access Control
// ============================================================================

// GrantAccess records that principal may operate on the ciphertext. Grants
// are otherwise monotonic: nothing in the order lifecycle removes them, only
// an explicit emergency revocation does.
func (k Keeper) GrantAccess(ctx context.Context, ct types.Ciphertext, principal string) {
	store := k.getStore(ctx)
	store.Set(GrantKey(ct.Fingerprint(), principal), []byte{1})
}

// RevokeAccess removes a principal's grant on the ciphertext.
func (k Keeper) RevokeAccess(ctx context.Context, ct types.Ciphertext, principal string) {
	store := k.getStore(ctx)
	store.Delete(GrantKey(ct.Fingerprint(), principal))
}

// HasAccess reports whether principal holds a grant on the ciphertext.
func (k Keeper) HasAccess(ctx context.Context, ct types.Ciphertext, principal string) bool {
	store := k.getStore(ctx)
	return store.Has(GrantKey(ct.Fingerprint(), principal))
}

// grantOrderAccess installs the standard grants for a freshly stored order:
// the engine on every handle, the owner on every owner-decryptable field.
// The owner never receives a grant on the activity flag.
func (k Keeper) grantOrderAccess(ctx context.Context, order *types.Order) {
	for _, ct := range order.EncryptedFieldHandles() {
		k.GrantAccess(ctx, ct, EngineAddress)
	}
	for _, field := range []string{
		types.FieldDirection, types.FieldTriggerPrice, types.FieldOrderSize,
		types.FieldRemainingSize, types.FieldMinFillSize,
		types.FieldPartialFillAllowed, types.FieldExpirationTime,
		types.FieldVwapNumerator, types.FieldVwapDenominator,
	} {
		if ct, ok := order.FieldCiphertext(field); ok {
			k.GrantAccess(ctx, ct, order.Owner)
		}
	}
}

// grantDerived extends the engine and owner grants of a source ciphertext to
// a homomorphically derived one, so accumulator updates keep the owner able
// to open the new handle.
func (k Keeper) grantDerived(ctx context.Context, derived types.Ciphertext, owner string) {
	k.GrantAccess(ctx, derived, EngineAddress)
	if owner != "" {
		k.GrantAccess(ctx, derived, owner)
	}
}

// engineDecrypt opens a ciphertext through the engine grant. This is the
// single choke point for synchronous decryption: callers outside the
// execution engine and expiration sweep have no path to it.
func (k Keeper) engineDecrypt(ctx context.Context, ct types.Ciphertext) (sdkmath.Int, error) {
	if !k.HasAccess(ctx, ct, EngineAddress) {
		return sdkmath.Int{}, types.ErrPermissionDenied.Wrap("engine holds no grant on ciphertext")
	}
	return k.fheKeeper.Decrypt(ctx, ct)
}

// RevokeFieldAccess removes principal's grant on one named field of an
// order. Emergency-admin only: this is the single non-monotonic operation in
// the access-control table, reserved for incident response.
//
// The engine's own grants cannot be revoked this way; yanking them would
// strand the order in the book with no way to execute or expire it.
func (k Keeper) RevokeFieldAccess(ctx context.Context, admin string, orderID uint64, field string, principal string) error {
	if !k.isEmergencyAdmin(ctx, admin) {
		return types.ErrUnauthorized.Wrapf("%s is not the emergency admin", admin)
	}
	if principal == EngineAddress {
		return types.ErrInvalidInput.Wrap("engine grants cannot be revoked")
	}

	order, err := k.GetOrder(ctx, orderID)
	if err != nil {
		return err
	}
	ct, ok := order.FieldCiphertext(field)
	if !ok {
		return types.ErrUnknownField.Wrapf("field %q", field)
	}

	k.RevokeAccess(ctx, ct, principal)

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeAccessRevoked,
			sdk.NewAttribute(types.AttributeKeyOrderID, fmt.Sprintf("%d", orderID)),
			sdk.NewAttribute(types.AttributeKeyField, field),
			sdk.NewAttribute(types.AttributeKeyPrincipal, principal),
		),
	)

	k.Logger(sdkCtx).Info("grant revoked", "order_id", orderID, "field", field, "principal", principal)

	return nil
}

// GetAllGrants returns the full grant table. Genesis export.
func (k Keeper) GetAllGrants(ctx context.Context) []types.GrantEntry {
	store := k.getStore(ctx)
	iterator := store.Iterator(GrantKeyPrefix, prefixEnd(GrantKeyPrefix))
	defer iterator.Close()

	var grants []types.GrantEntry
	for ; iterator.Valid(); iterator.Next() {
		key := iterator.Key()
		// 0x20 || fingerprint(32) || principal
		if len(key) <= 1+32 {
			continue
		}
		grants = append(grants, types.GrantEntry{
			Fingerprint: hex.EncodeToString(key[1 : 1+32]),
			Principal:   string(key[1+32:]),
		})
	}
	return grants
}

// setGrantRaw restores one grant from its genesis form.
func (k Keeper) setGrantRaw(ctx context.Context, fingerprint []byte, principal string) {
	store := k.getStore(ctx)
	store.Set(GrantKey(fingerprint, principal), []byte{1})
}
