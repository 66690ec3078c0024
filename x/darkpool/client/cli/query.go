package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/veilchain/veil/x/darkpool/types"
)

// GetQueryCmd returns the cli query commands for the darkpool module
func GetQueryCmd() *cobra.Command {
	darkpoolQueryCmd := &cobra.Command{
		Use:                        types.ModuleName,
		Short:                      "Querying commands for the darkpool module",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}

	darkpoolQueryCmd.AddCommand(
		GetCmdQueryParams(),
		GetCmdQueryOrder(),
		GetCmdQueryOrdersByOwner(),
		GetCmdQueryOrdersByPool(),
		GetCmdQueryFills(),
		GetCmdQueryTicket(),
		GetCmdQueryPoolAggregate(),
		GetCmdQueryPaused(),
	)

	return darkpoolQueryCmd
}

// printJSON renders a query response as indented JSON.
func printJSON(clientCtx client.Context, v interface{}) error {
	bz, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return clientCtx.PrintString(string(bz) + "\n")
}

// GetCmdQueryParams returns the command to query module parameters
func GetCmdQueryParams() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "params",
		Short: "Query the current darkpool module parameters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientQueryContext(cmd)
			if err != nil {
				return err
			}

			queryClient := types.NewQueryClient(clientCtx)
			res, err := queryClient.Params(context.Background(), &types.QueryParamsRequest{})
			if err != nil {
				return err
			}

			return printJSON(clientCtx, res)
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// GetCmdQueryOrder returns the command to query one order's public metadata
func GetCmdQueryOrder() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "order [order-id]",
		Short: "Query the public metadata of an order",
		Long: `Query the public metadata of a confidential order: identity, status,
fill count and the opaque ciphertext handles of its encrypted fields.

Example:
  $ veild query darkpool order 7`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientQueryContext(cmd)
			if err != nil {
				return err
			}

			orderID, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid order id %s: %w", args[0], err)
			}

			queryClient := types.NewQueryClient(clientCtx)
			res, err := queryClient.Order(context.Background(), &types.QueryOrderRequest{OrderId: orderID})
			if err != nil {
				return err
			}

			return printJSON(clientCtx, res)
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// GetCmdQueryOrdersByOwner returns the command to query orders by owner
func GetCmdQueryOrdersByOwner() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders-by-owner [owner]",
		Short: "Query all orders placed by an owner",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientQueryContext(cmd)
			if err != nil {
				return err
			}

			if _, err := sdk.AccAddressFromBech32(args[0]); err != nil {
				return fmt.Errorf("invalid owner address %s: %w", args[0], err)
			}

			pageReq, err := client.ReadPageRequest(cmd.Flags())
			if err != nil {
				return err
			}

			queryClient := types.NewQueryClient(clientCtx)
			res, err := queryClient.OrdersByOwner(context.Background(), &types.QueryOrdersByOwnerRequest{
				Owner:      args[0],
				Pagination: pageReq,
			})
			if err != nil {
				return err
			}

			return printJSON(clientCtx, res)
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	flags.AddPaginationFlagsToCmd(cmd, "orders-by-owner")
	return cmd
}

// GetCmdQueryOrdersByPool returns the command to query orders by pool
func GetCmdQueryOrdersByPool() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders-by-pool [pool-id]",
		Short: "Query all orders resting on a pool",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientQueryContext(cmd)
			if err != nil {
				return err
			}

			poolID, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid pool id %s: %w", args[0], err)
			}

			pageReq, err := client.ReadPageRequest(cmd.Flags())
			if err != nil {
				return err
			}

			queryClient := types.NewQueryClient(clientCtx)
			res, err := queryClient.OrdersByPool(context.Background(), &types.QueryOrdersByPoolRequest{
				PoolId:     poolID,
				Pagination: pageReq,
			})
			if err != nil {
				return err
			}

			return printJSON(clientCtx, res)
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	flags.AddPaginationFlagsToCmd(cmd, "orders-by-pool")
	return cmd
}

// GetCmdQueryFills returns the command to query an order's fill ledger
func GetCmdQueryFills() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fills [order-id]",
		Short: "Query the fill history of an order (sizes and prices stay encrypted)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientQueryContext(cmd)
			if err != nil {
				return err
			}

			orderID, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid order id %s: %w", args[0], err)
			}

			queryClient := types.NewQueryClient(clientCtx)
			res, err := queryClient.Fills(context.Background(), &types.QueryFillsRequest{OrderId: orderID})
			if err != nil {
				return err
			}

			return printJSON(clientCtx, res)
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// GetCmdQueryTicket returns the command to query a decryption ticket
func GetCmdQueryTicket() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ticket [ticket-id]",
		Short: "Query a decryption ticket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientQueryContext(cmd)
			if err != nil {
				return err
			}

			ticketID, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid ticket id %s: %w", args[0], err)
			}

			queryClient := types.NewQueryClient(clientCtx)
			res, err := queryClient.Ticket(context.Background(), &types.QueryTicketRequest{TicketId: ticketID})
			if err != nil {
				return err
			}

			return printJSON(clientCtx, res)
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// GetCmdQueryPoolAggregate returns the command to query a pool's encrypted
// open-interest aggregates
func GetCmdQueryPoolAggregate() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pool-aggregate [pool-id]",
		Short: "Query the encrypted open-interest aggregates of a pool",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientQueryContext(cmd)
			if err != nil {
				return err
			}

			poolID, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid pool id %s: %w", args[0], err)
			}

			queryClient := types.NewQueryClient(clientCtx)
			res, err := queryClient.PoolAggregate(context.Background(), &types.QueryPoolAggregateRequest{PoolId: poolID})
			if err != nil {
				return err
			}

			return printJSON(clientCtx, res)
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// GetCmdQueryPaused returns the command to query the pause flag
func GetCmdQueryPaused() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "paused",
		Short: "Query whether the darkpool module is halted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientQueryContext(cmd)
			if err != nil {
				return err
			}

			queryClient := types.NewQueryClient(clientCtx)
			res, err := queryClient.Paused(context.Background(), &types.QueryPausedRequest{})
			if err != nil {
				return err
			}

			return printJSON(clientCtx, res)
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}
