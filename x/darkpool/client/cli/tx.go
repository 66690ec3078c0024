package cli

import (
	"encoding/hex"
	"fmt"
	"strconv"

	sdkmath "cosmossdk.io/math"
	"github.com/spf13/cobra"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"
	"github.com/cosmos/cosmos-sdk/client/tx"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/veilchain/veil/x/darkpool/types"
)

// GetTxCmd returns the transaction commands for the darkpool module
func GetTxCmd() *cobra.Command {
	darkpoolTxCmd := &cobra.Command{
		Use:                        types.ModuleName,
		Short:                      "Darkpool transaction subcommands",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}

	darkpoolTxCmd.AddCommand(
		CmdPlaceOrder(),
		CmdCancelOrder(),
		CmdRequestDecryption(),
		CmdFulfillDecryption(),
		CmdConsumeDecryption(),
		CmdSweepExpired(),
		CmdRevokeAccess(),
	)

	return darkpoolTxCmd
}

// CmdPlaceOrder returns a CLI command handler for placing a confidential order
func CmdPlaceOrder() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "place-order [pool-id]",
		Short: "Place a confidential limit order",
		Long: `Place a confidential limit order on an AMM pool.

Every order parameter is supplied as a hex-encoded ciphertext handle produced
by encrypting the value client-side against the coprocessor's public key. The
chain never sees the plaintext price, size, direction, fill policy or expiry.

Example:
  $ veild tx darkpool place-order 1 \
      --direction a1b2... \
      --trigger-price c3d4... \
      --order-size e5f6... \
      --min-fill-size 0718... \
      --partial-fill-allowed 292a... \
      --expiration 3b4c... \
      --from trader-key`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			poolID, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid pool id %s: %w", args[0], err)
			}

			fields := types.EncryptedOrderFields{}
			for _, spec := range []struct {
				flag  string
				width types.CtWidth
				dst   *types.Ciphertext
			}{
				{FlagDirection, types.CtUint8, &fields.Direction},
				{FlagTriggerPrice, types.CtUint128, &fields.TriggerPrice},
				{FlagOrderSize, types.CtUint128, &fields.OrderSize},
				{FlagMinFillSize, types.CtUint128, &fields.MinFillSize},
				{FlagPartialAllowed, types.CtBool, &fields.PartialFillAllowed},
				{FlagExpiration, types.CtUint64, &fields.ExpirationTime},
			} {
				raw, err := cmd.Flags().GetString(spec.flag)
				if err != nil {
					return err
				}
				handle, err := hex.DecodeString(raw)
				if err != nil {
					return fmt.Errorf("invalid %s handle: %w", spec.flag, err)
				}
				*spec.dst = types.Ciphertext{Handle: handle, Width: spec.width}
			}

			msg := &types.MsgPlaceOrder{
				Owner:  clientCtx.GetFromAddress().String(),
				PoolId: poolID,
				Fields: fields,
			}
			if err := msg.ValidateBasic(); err != nil {
				return err
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	cmd.Flags().String(FlagDirection, "", "hex ciphertext handle of the order direction")
	cmd.Flags().String(FlagTriggerPrice, "", "hex ciphertext handle of the trigger price")
	cmd.Flags().String(FlagOrderSize, "", "hex ciphertext handle of the order size")
	cmd.Flags().String(FlagMinFillSize, "", "hex ciphertext handle of the minimum fill size")
	cmd.Flags().String(FlagPartialAllowed, "", "hex ciphertext handle of the partial-fill flag")
	cmd.Flags().String(FlagExpiration, "", "hex ciphertext handle of the expiration time")
	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdCancelOrder returns a CLI command handler for cancelling an order
func CmdCancelOrder() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cancel-order [order-id]",
		Short: "Cancel a resting confidential order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			orderID, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid order id %s: %w", args[0], err)
			}

			msg := &types.MsgCancelOrder{
				Sender:  clientCtx.GetFromAddress().String(),
				OrderId: orderID,
			}
			if err := msg.ValidateBasic(); err != nil {
				return err
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdRequestDecryption returns a CLI command handler for opening a
// decryption ticket
func CmdRequestDecryption() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "request-decryption [order-id] [field]",
		Short: "Open a decryption ticket for one order field",
		Long: `Open a decryption ticket for one encrypted field of an order you hold a
grant on. Decryptable fields: direction, trigger_price, order_size,
remaining_size, min_fill_size, partial_fill_allowed, expiration_time,
vwap_numerator, vwap_denominator.

Example:
  $ veild tx darkpool request-decryption 7 remaining_size --from trader-key`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			orderID, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid order id %s: %w", args[0], err)
			}

			msg := &types.MsgRequestDecryption{
				Requester: clientCtx.GetFromAddress().String(),
				OrderId:   orderID,
				Field:     args[1],
			}
			if err := msg.ValidateBasic(); err != nil {
				return err
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdFulfillDecryption returns a CLI command handler for fulfilling a ticket
func CmdFulfillDecryption() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fulfill-decryption [ticket-id] [plaintext]",
		Short: "Attach the coprocessor-produced plaintext to a pending ticket",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			ticketID, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid ticket id %s: %w", args[0], err)
			}

			plaintext, ok := sdkmath.NewIntFromString(args[1])
			if !ok {
				return fmt.Errorf("invalid plaintext %s: must be an integer", args[1])
			}

			msg := &types.MsgFulfillDecryption{
				Sender:    clientCtx.GetFromAddress().String(),
				TicketId:  ticketID,
				Plaintext: plaintext,
			}
			if err := msg.ValidateBasic(); err != nil {
				return err
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdConsumeDecryption returns a CLI command handler for consuming a ticket
func CmdConsumeDecryption() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "consume-decryption [ticket-id]",
		Short: "Read out and retire a fulfilled decryption ticket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			ticketID, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid ticket id %s: %w", args[0], err)
			}

			msg := &types.MsgConsumeDecryption{
				Sender:   clientCtx.GetFromAddress().String(),
				TicketId: ticketID,
			}
			if err := msg.ValidateBasic(); err != nil {
				return err
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdSweepExpired returns a CLI command handler for sweeping expired orders
func CmdSweepExpired() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep-expired [order-id]...",
		Short: "Retire expired orders (permissionless)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			orderIDs := make([]uint64, 0, len(args))
			for _, arg := range args {
				orderID, err := strconv.ParseUint(arg, 10, 64)
				if err != nil {
					return fmt.Errorf("invalid order id %s: %w", arg, err)
				}
				orderIDs = append(orderIDs, orderID)
			}

			msg := &types.MsgSweepExpired{
				Sender:   clientCtx.GetFromAddress().String(),
				OrderIds: orderIDs,
			}
			if err := msg.ValidateBasic(); err != nil {
				return err
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdRevokeAccess returns a CLI command handler for revoking a grant
func CmdRevokeAccess() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "revoke-access [order-id] [field] [principal]",
		Short: "Revoke a principal's grant on one order field (emergency admin only)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			orderID, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid order id %s: %w", args[0], err)
			}

			if _, err := sdk.AccAddressFromBech32(args[2]); err != nil {
				return fmt.Errorf("invalid principal address %s: %w", args[2], err)
			}

			msg := &types.MsgRevokeAccess{
				Admin:     clientCtx.GetFromAddress().String(),
				OrderId:   orderID,
				Field:     args[1],
				Principal: args[2],
			}
			if err := msg.ValidateBasic(); err != nil {
				return err
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}
