package keeper

import (
	"context"
	"encoding/binary"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/cosmos/cosmos-sdk/types/query"

	"github.com/veilchain/veil/x/darkpool/types"
)

type queryServer struct {
	Keeper
}

const (
	defaultPaginationLimit = 100
	maxPaginationLimit     = 1000
)

// NewQueryServerImpl returns an implementation of the darkpool QueryServer interface
func NewQueryServerImpl(keeper Keeper) types.QueryServer {
	return &queryServer{Keeper: keeper}
}

var _ types.QueryServer = queryServer{}

// Params returns the module parameters
func (qs queryServer) Params(goCtx context.Context, req *types.QueryParamsRequest) (*types.QueryParamsResponse, error) {
	if req == nil {
		return nil, sdkerrors.ErrInvalidRequest
	}

	return &types.QueryParamsResponse{
		Params: qs.Keeper.GetParams(goCtx),
	}, nil
}

// Order returns the public metadata of a single order
func (qs queryServer) Order(goCtx context.Context, req *types.QueryOrderRequest) (*types.QueryOrderResponse, error) {
	if req == nil {
		return nil, sdkerrors.ErrInvalidRequest
	}

	order, err := qs.Keeper.GetOrder(goCtx, req.OrderId)
	if err != nil {
		return nil, fmt.Errorf("Order: get order %d: %w", req.OrderId, err)
	}

	return &types.QueryOrderResponse{
		Order: types.NewOrderMetadata(*order),
	}, nil
}

// OrdersByOwner returns all orders placed by an owner, paginated
func (qs queryServer) OrdersByOwner(goCtx context.Context, req *types.QueryOrdersByOwnerRequest) (*types.QueryOrdersByOwnerResponse, error) {
	if req == nil {
		return nil, sdkerrors.ErrInvalidRequest
	}

	owner, err := sdk.AccAddressFromBech32(req.Owner)
	if err != nil {
		return nil, fmt.Errorf("OrdersByOwner: invalid owner address: %w", err)
	}

	pagination := normalizePagination(req.Pagination)
	qs.chargePaginationGas(goCtx, pagination.Limit, "paginated orders by owner query")

	start := append(OrderByOwnerPrefix, owner.Bytes()...)
	orders, pageRes, err := qs.paginateOrderIndex(goCtx, start, pagination)
	if err != nil {
		return nil, fmt.Errorf("OrdersByOwner: paginate: %w", err)
	}

	return &types.QueryOrdersByOwnerResponse{
		Orders:     orders,
		Pagination: pageRes,
	}, nil
}

// OrdersByPool returns all orders resting on a pool, paginated
func (qs queryServer) OrdersByPool(goCtx context.Context, req *types.QueryOrdersByPoolRequest) (*types.QueryOrdersByPoolResponse, error) {
	if req == nil {
		return nil, sdkerrors.ErrInvalidRequest
	}
	if req.PoolId == 0 {
		return nil, fmt.Errorf("OrdersByPool: pool id must be positive")
	}

	pagination := normalizePagination(req.Pagination)
	qs.chargePaginationGas(goCtx, pagination.Limit, "paginated orders by pool query")

	poolIDBytes := make([]byte, 8)
	binary.BigEndian.PutUint64(poolIDBytes, req.PoolId)
	start := append(OrderByPoolPrefix, poolIDBytes...)

	orders, pageRes, err := qs.paginateOrderIndex(goCtx, start, pagination)
	if err != nil {
		return nil, fmt.Errorf("OrdersByPool: paginate: %w", err)
	}

	return &types.QueryOrdersByPoolResponse{
		Orders:     orders,
		Pagination: pageRes,
	}, nil
}

// Fills returns the fill ledger entries of an order
func (qs queryServer) Fills(goCtx context.Context, req *types.QueryFillsRequest) (*types.QueryFillsResponse, error) {
	if req == nil {
		return nil, sdkerrors.ErrInvalidRequest
	}

	if !qs.Keeper.HasOrder(goCtx, req.OrderId) {
		return nil, types.ErrOrderNotFound.Wrapf("order not found: %d", req.OrderId)
	}

	fills, err := qs.Keeper.GetFills(goCtx, req.OrderId)
	if err != nil {
		return nil, fmt.Errorf("Fills: %w", err)
	}

	return &types.QueryFillsResponse{
		Fills: fills,
	}, nil
}

// Ticket returns a decryption ticket by ID
func (qs queryServer) Ticket(goCtx context.Context, req *types.QueryTicketRequest) (*types.QueryTicketResponse, error) {
	if req == nil {
		return nil, sdkerrors.ErrInvalidRequest
	}

	ticket, err := qs.Keeper.GetTicket(goCtx, req.TicketId)
	if err != nil {
		return nil, fmt.Errorf("Ticket: %w", err)
	}

	return &types.QueryTicketResponse{
		Ticket: *ticket,
	}, nil
}

// PoolAggregate returns the encrypted open-interest aggregates of a pool
func (qs queryServer) PoolAggregate(goCtx context.Context, req *types.QueryPoolAggregateRequest) (*types.QueryPoolAggregateResponse, error) {
	if req == nil {
		return nil, sdkerrors.ErrInvalidRequest
	}
	if req.PoolId == 0 {
		return nil, fmt.Errorf("PoolAggregate: pool id must be positive")
	}

	agg, err := qs.Keeper.GetPoolAggregate(goCtx, req.PoolId)
	if err != nil {
		return nil, fmt.Errorf("PoolAggregate: %w", err)
	}

	return &types.QueryPoolAggregateResponse{
		Aggregate: agg,
	}, nil
}

// Paused reports whether the module is halted
func (qs queryServer) Paused(goCtx context.Context, req *types.QueryPausedRequest) (*types.QueryPausedResponse, error) {
	if req == nil {
		return nil, sdkerrors.ErrInvalidRequest
	}

	return &types.QueryPausedResponse{
		Paused: qs.Keeper.IsPaused(goCtx),
	}, nil
}

// paginateOrderIndex walks an order index prefix with offset/limit paging
// and resolves each surviving entry to its order metadata.
func (qs queryServer) paginateOrderIndex(ctx context.Context, start []byte, pagination *query.PageRequest) ([]types.OrderMetadata, *query.PageResponse, error) {
	store := qs.Keeper.getStore(ctx)
	iterator := store.Iterator(start, prefixEnd(start))
	defer iterator.Close()

	var (
		orders  []types.OrderMetadata
		total   uint64
		skipped uint64
	)
	for ; iterator.Valid(); iterator.Next() {
		total++
		if skipped < pagination.Offset {
			skipped++
			continue
		}
		if uint64(len(orders)) >= pagination.Limit {
			continue
		}

		key := iterator.Key()
		orderID := binary.BigEndian.Uint64(key[len(key)-8:])
		order, err := qs.Keeper.GetOrder(ctx, orderID)
		if err != nil {
			return nil, nil, err
		}
		orders = append(orders, types.NewOrderMetadata(*order))
	}

	return orders, &query.PageResponse{Total: total}, nil
}

// chargePaginationGas charges gas proportional to the requested page size to
// keep unbounded queries unattractive.
func (qs queryServer) chargePaginationGas(ctx context.Context, limit uint64, descriptor string) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.GasMeter().ConsumeGas(limit*100, descriptor)
}

// normalizePagination enforces sane defaults and caps.
func normalizePagination(pagination *query.PageRequest) *query.PageRequest {
	if pagination == nil {
		return &query.PageRequest{Limit: defaultPaginationLimit}
	}
	out := *pagination
	if out.Limit == 0 {
		out.Limit = defaultPaginationLimit
	}
	if out.Limit > maxPaginationLimit {
		out.Limit = maxPaginationLimit
	}
	return &out
}
