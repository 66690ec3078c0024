package types

import (
	"context"

	"github.com/cosmos/cosmos-sdk/types/query"
)

// QueryServer is the server API for the darkpool Query service.
// All responses are plaintext-safe: encrypted fields are exposed only as
// opaque ciphertext handles.
type QueryServer interface {
	// Params returns the module parameters.
	Params(context.Context, *QueryParamsRequest) (*QueryParamsResponse, error)
	// Order returns the public metadata of a single order.
	Order(context.Context, *QueryOrderRequest) (*QueryOrderResponse, error)
	// OrdersByOwner returns all orders placed by an owner, paginated.
	OrdersByOwner(context.Context, *QueryOrdersByOwnerRequest) (*QueryOrdersByOwnerResponse, error)
	// OrdersByPool returns all orders resting on a pool, paginated.
	OrdersByPool(context.Context, *QueryOrdersByPoolRequest) (*QueryOrdersByPoolResponse, error)
	// Fills returns the fill ledger entries of an order.
	Fills(context.Context, *QueryFillsRequest) (*QueryFillsResponse, error)
	// Ticket returns a decryption ticket by ID.
	Ticket(context.Context, *QueryTicketRequest) (*QueryTicketResponse, error)
	// PoolAggregate returns the encrypted open-interest aggregates of a pool.
	PoolAggregate(context.Context, *QueryPoolAggregateRequest) (*QueryPoolAggregateResponse, error)
	// Paused reports whether the module is halted.
	Paused(context.Context, *QueryPausedRequest) (*QueryPausedResponse, error)
}

// OrderMetadata is the public view of an order. Encrypted fields appear only
// as ciphertext handles.
type OrderMetadata struct {
	Id              uint64            `json:"id"`
	Owner           string            `json:"owner"`
	PoolId          uint64            `json:"pool_id"`
	Status          OrderStatus       `json:"status"`
	FillCount       uint32            `json:"fill_count"`
	CreatedAt       int64             `json:"created_at"`
	CreatedAtHeight int64             `json:"created_at_height"`
	Handles         map[string][]byte `json:"handles"`
}

// NewOrderMetadata projects an order onto its public metadata. Only the
// owner-decryptable fields are listed; engine-internal ciphertexts stay out.
func NewOrderMetadata(order Order) OrderMetadata {
	handles := make(map[string][]byte, 9)
	for _, field := range []string{
		FieldDirection, FieldTriggerPrice, FieldOrderSize, FieldRemainingSize,
		FieldMinFillSize, FieldPartialFillAllowed, FieldExpirationTime,
		FieldVwapNumerator, FieldVwapDenominator,
	} {
		if ct, ok := order.FieldCiphertext(field); ok {
			handles[field] = ct.Handle
		}
	}
	return OrderMetadata{
		Id:              order.Id,
		Owner:           order.Owner,
		PoolId:          order.PoolId,
		Status:          order.Status,
		FillCount:       order.FillCount,
		CreatedAt:       order.CreatedAt.Unix(),
		CreatedAtHeight: order.CreatedAtHeight,
		Handles:         handles,
	}
}

// QueryParamsRequest is the request for the Params query.
type QueryParamsRequest struct{}

// QueryParamsResponse is the response for the Params query.
type QueryParamsResponse struct {
	Params Params `json:"params"`
}

// QueryOrderRequest is the request for the Order query.
type QueryOrderRequest struct {
	OrderId uint64 `json:"order_id"`
}

// QueryOrderResponse is the response for the Order query.
type QueryOrderResponse struct {
	Order OrderMetadata `json:"order"`
}

// QueryOrdersByOwnerRequest is the request for the OrdersByOwner query.
type QueryOrdersByOwnerRequest struct {
	Owner      string             `json:"owner"`
	Pagination *query.PageRequest `json:"pagination,omitempty"`
}

// QueryOrdersByOwnerResponse is the response for the OrdersByOwner query.
type QueryOrdersByOwnerResponse struct {
	Orders     []OrderMetadata     `json:"orders"`
	Pagination *query.PageResponse `json:"pagination,omitempty"`
}

// QueryOrdersByPoolRequest is the request for the OrdersByPool query.
type QueryOrdersByPoolRequest struct {
	PoolId     uint64             `json:"pool_id"`
	Pagination *query.PageRequest `json:"pagination,omitempty"`
}

// QueryOrdersByPoolResponse is the response for the OrdersByPool query.
type QueryOrdersByPoolResponse struct {
	Orders     []OrderMetadata     `json:"orders"`
	Pagination *query.PageResponse `json:"pagination,omitempty"`
}

// QueryFillsRequest is the request for the Fills query.
type QueryFillsRequest struct {
	OrderId uint64 `json:"order_id"`
}

// QueryFillsResponse is the response for the Fills query. Fill sizes and
// prices are ciphertexts.
type QueryFillsResponse struct {
	Fills []FillRecord `json:"fills"`
}

// QueryTicketRequest is the request for the Ticket query.
type QueryTicketRequest struct {
	TicketId uint64 `json:"ticket_id"`
}

// QueryTicketResponse is the response for the Ticket query.
type QueryTicketResponse struct {
	Ticket DecryptionTicket `json:"ticket"`
}

// QueryPoolAggregateRequest is the request for the PoolAggregate query.
type QueryPoolAggregateRequest struct {
	PoolId uint64 `json:"pool_id"`
}

// QueryPoolAggregateResponse is the response for the PoolAggregate query.
type QueryPoolAggregateResponse struct {
	Aggregate PoolAggregate `json:"aggregate"`
}

// QueryPausedRequest is the request for the Paused query.
type QueryPausedRequest struct{}

// QueryPausedResponse is the response for the Paused query.
type QueryPausedResponse struct {
	Paused bool `json:"paused"`
}
