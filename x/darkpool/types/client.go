package types

import (
	"context"

	grpc1 "github.com/cosmos/gogoproto/grpc"
	grpc "google.golang.org/grpc"
)

// QueryClient is the client API for the darkpool Query service.
type QueryClient interface {
	Params(ctx context.Context, in *QueryParamsRequest, opts ...grpc.CallOption) (*QueryParamsResponse, error)
	Order(ctx context.Context, in *QueryOrderRequest, opts ...grpc.CallOption) (*QueryOrderResponse, error)
	OrdersByOwner(ctx context.Context, in *QueryOrdersByOwnerRequest, opts ...grpc.CallOption) (*QueryOrdersByOwnerResponse, error)
	OrdersByPool(ctx context.Context, in *QueryOrdersByPoolRequest, opts ...grpc.CallOption) (*QueryOrdersByPoolResponse, error)
	Fills(ctx context.Context, in *QueryFillsRequest, opts ...grpc.CallOption) (*QueryFillsResponse, error)
	Ticket(ctx context.Context, in *QueryTicketRequest, opts ...grpc.CallOption) (*QueryTicketResponse, error)
	PoolAggregate(ctx context.Context, in *QueryPoolAggregateRequest, opts ...grpc.CallOption) (*QueryPoolAggregateResponse, error)
	Paused(ctx context.Context, in *QueryPausedRequest, opts ...grpc.CallOption) (*QueryPausedResponse, error)
}

type queryClient struct {
	cc grpc1.ClientConn
}

func NewQueryClient(cc grpc1.ClientConn) QueryClient {
	return &queryClient{cc}
}

func (c *queryClient) Params(ctx context.Context, in *QueryParamsRequest, opts ...grpc.CallOption) (*QueryParamsResponse, error) {
	out := new(QueryParamsResponse)
	err := c.cc.Invoke(ctx, "/veil.darkpool.v1.Query/Params", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *queryClient) Order(ctx context.Context, in *QueryOrderRequest, opts ...grpc.CallOption) (*QueryOrderResponse, error) {
	out := new(QueryOrderResponse)
	err := c.cc.Invoke(ctx, "/veil.darkpool.v1.Query/Order", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *queryClient) OrdersByOwner(ctx context.Context, in *QueryOrdersByOwnerRequest, opts ...grpc.CallOption) (*QueryOrdersByOwnerResponse, error) {
	out := new(QueryOrdersByOwnerResponse)
	err := c.cc.Invoke(ctx, "/veil.darkpool.v1.Query/OrdersByOwner", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *queryClient) OrdersByPool(ctx context.Context, in *QueryOrdersByPoolRequest, opts ...grpc.CallOption) (*QueryOrdersByPoolResponse, error) {
	out := new(QueryOrdersByPoolResponse)
	err := c.cc.Invoke(ctx, "/veil.darkpool.v1.Query/OrdersByPool", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *queryClient) Fills(ctx context.Context, in *QueryFillsRequest, opts ...grpc.CallOption) (*QueryFillsResponse, error) {
	out := new(QueryFillsResponse)
	err := c.cc.Invoke(ctx, "/veil.darkpool.v1.Query/Fills", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *queryClient) Ticket(ctx context.Context, in *QueryTicketRequest, opts ...grpc.CallOption) (*QueryTicketResponse, error) {
	out := new(QueryTicketResponse)
	err := c.cc.Invoke(ctx, "/veil.darkpool.v1.Query/Ticket", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *queryClient) PoolAggregate(ctx context.Context, in *QueryPoolAggregateRequest, opts ...grpc.CallOption) (*QueryPoolAggregateResponse, error) {
	out := new(QueryPoolAggregateResponse)
	err := c.cc.Invoke(ctx, "/veil.darkpool.v1.Query/PoolAggregate", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *queryClient) Paused(ctx context.Context, in *QueryPausedRequest, opts ...grpc.CallOption) (*QueryPausedResponse, error) {
	out := new(QueryPausedResponse)
	err := c.cc.Invoke(ctx, "/veil.darkpool.v1.Query/Paused", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}
