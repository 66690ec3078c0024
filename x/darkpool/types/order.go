package types

import (
	"fmt"
	"time"
)

// OrderStatus represents the plaintext lifecycle state of an order.
//
// Order Lifecycle:
//
//	Pending → PartiallyFilled → Filled (execution path)
//	Pending|PartiallyFilled → Cancelled (owner/admin cancellation)
//	Pending|PartiallyFilled → Expired (expiration sweep)
//
// Filled, Cancelled and Expired are terminal. The plaintext status only ever
// changes on publicly observable transitions: placement, a cancellation
// message, a positive decrypted fill, or the boolean expiry signal from a
// sweep. Everything the status reveals is already revealed by the event that
// caused the transition, so it leaks nothing beyond the sanctioned
// decryption boundary.
type OrderStatus uint8

const (
	// OrderStatusPending indicates the order has never filled.
	OrderStatusPending OrderStatus = 1

	// OrderStatusPartiallyFilled indicates at least one fill was recorded.
	OrderStatusPartiallyFilled OrderStatus = 2

	// OrderStatusFilled indicates the remaining size reached zero.
	OrderStatusFilled OrderStatus = 3

	// OrderStatusCancelled indicates owner or emergency-admin cancellation.
	OrderStatusCancelled OrderStatus = 4

	// OrderStatusExpired indicates deactivation by the expiration sweep.
	OrderStatusExpired OrderStatus = 5
)

// IsTerminal reports whether the status admits no further transitions.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusFilled || s == OrderStatusCancelled || s == OrderStatusExpired
}

func (s OrderStatus) String() string {
	switch s {
	case OrderStatusPending:
		return "pending"
	case OrderStatusPartiallyFilled:
		return "partially_filled"
	case OrderStatusFilled:
		return "filled"
	case OrderStatusCancelled:
		return "cancelled"
	case OrderStatusExpired:
		return "expired"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(s))
	}
}

// EncryptedOrderFields carries the caller-supplied ciphertexts of a new
// order. Validation is shape-only: handles must be present with the declared
// widths, because values are never visible to the module.
type EncryptedOrderFields struct {
	// Direction is buy/sell as a narrow integer ciphertext
	Direction Ciphertext `json:"direction"`
	// TriggerPrice is the price threshold that makes the order eligible
	TriggerPrice Ciphertext `json:"trigger_price"`
	// OrderSize is the total order size
	OrderSize Ciphertext `json:"order_size"`
	// MinFillSize is the smallest acceptable partial fill
	MinFillSize Ciphertext `json:"min_fill_size"`
	// PartialFillAllowed gates whether partial fills are acceptable at all
	PartialFillAllowed Ciphertext `json:"partial_fill_allowed"`
	// ExpirationTime is the unix time after which the order is dead
	ExpirationTime Ciphertext `json:"expiration_time"`
}

// Validate checks that every required ciphertext is present with the correct
// declared width.
func (f EncryptedOrderFields) Validate() error {
	if err := f.Direction.Validate(CtUint8); err != nil {
		return fmt.Errorf("direction: %w", err)
	}
	if err := f.TriggerPrice.Validate(CtUint128); err != nil {
		return fmt.Errorf("trigger_price: %w", err)
	}
	if err := f.OrderSize.Validate(CtUint128); err != nil {
		return fmt.Errorf("order_size: %w", err)
	}
	if err := f.MinFillSize.Validate(CtUint128); err != nil {
		return fmt.Errorf("min_fill_size: %w", err)
	}
	if err := f.PartialFillAllowed.Validate(CtBool); err != nil {
		return fmt.Errorf("partial_fill_allowed: %w", err)
	}
	if err := f.ExpirationTime.Validate(CtUint64); err != nil {
		return fmt.Errorf("expiration_time: %w", err)
	}
	return nil
}

// Order is a confidential limit order resting in the encrypted order book.
//
// Plaintext attributes are limited to identity and metadata that is safe to
// disclose (the spec treats creation time as public). Price, size, direction,
// fill policy, expiry and activity all live behind ciphertext handles and are
// only ever combined homomorphically.
type Order struct {
	// Id is the unique, monotonically assigned order identifier
	Id uint64 `json:"id"`
	// Owner is the address that placed the order
	Owner string `json:"owner"`
	// PoolId is the AMM pool this order rests on
	PoolId uint64 `json:"pool_id"`
	// Status is the plaintext lifecycle state (see OrderStatus)
	Status OrderStatus `json:"status"`
	// FillCount is the number of fill records appended so far
	FillCount uint32 `json:"fill_count"`
	// CreatedAt is the block time of placement (public by design)
	CreatedAt time.Time `json:"created_at"`
	// CreatedAtHeight is the block height of placement
	CreatedAtHeight int64 `json:"created_at_height"`

	// Encrypted fields. RemainingSize is non-increasing and never exceeds
	// OrderSize; IsActive transitions true→false exactly once.
	Direction          Ciphertext `json:"direction"`
	TriggerPrice       Ciphertext `json:"trigger_price"`
	OrderSize          Ciphertext `json:"order_size"`
	RemainingSize      Ciphertext `json:"remaining_size"`
	MinFillSize        Ciphertext `json:"min_fill_size"`
	PartialFillAllowed Ciphertext `json:"partial_fill_allowed"`
	ExpirationTime     Ciphertext `json:"expiration_time"`
	IsActive           Ciphertext `json:"is_active"`

	// VWAP accumulators, derivable as numerator/denominator only by the
	// owner through the decryption ticket flow.
	VwapNumerator   Ciphertext `json:"vwap_numerator"`
	VwapDenominator Ciphertext `json:"vwap_denominator"`
}

// Decryptable field names accepted by the two-phase decryption flow.
const (
	FieldDirection          = "direction"
	FieldTriggerPrice       = "trigger_price"
	FieldOrderSize          = "order_size"
	FieldRemainingSize      = "remaining_size"
	FieldMinFillSize        = "min_fill_size"
	FieldPartialFillAllowed = "partial_fill_allowed"
	FieldExpirationTime     = "expiration_time"
	FieldVwapNumerator      = "vwap_numerator"
	FieldVwapDenominator    = "vwap_denominator"
)

// FieldCiphertext resolves a decryptable field name to its handle.
// IsActive is deliberately absent: activity is engine-internal and is never
// opened to owners, who learn terminal transitions from events instead.
func (o *Order) FieldCiphertext(field string) (Ciphertext, bool) {
	switch field {
	case FieldDirection:
		return o.Direction, true
	case FieldTriggerPrice:
		return o.TriggerPrice, true
	case FieldOrderSize:
		return o.OrderSize, true
	case FieldRemainingSize:
		return o.RemainingSize, true
	case FieldMinFillSize:
		return o.MinFillSize, true
	case FieldPartialFillAllowed:
		return o.PartialFillAllowed, true
	case FieldExpirationTime:
		return o.ExpirationTime, true
	case FieldVwapNumerator:
		return o.VwapNumerator, true
	case FieldVwapDenominator:
		return o.VwapDenominator, true
	default:
		return Ciphertext{}, false
	}
}

// EncryptedFieldHandles returns every ciphertext stored on the order,
// including engine-internal ones. Used for grant bookkeeping and invariants.
func (o *Order) EncryptedFieldHandles() []Ciphertext {
	return []Ciphertext{
		o.Direction, o.TriggerPrice, o.OrderSize, o.RemainingSize,
		o.MinFillSize, o.PartialFillAllowed, o.ExpirationTime, o.IsActive,
		o.VwapNumerator, o.VwapDenominator,
	}
}

// FillRecord is one immutable entry in an order's fill history.
//
// Appended by the execution engine on every partial or complete execution.
// Size and price stay encrypted; the owner derives VWAP by decrypting the
// order's accumulators, not by walking fill records.
type FillRecord struct {
	// OrderId is the order this fill belongs to
	OrderId uint64 `json:"order_id"`
	// Sequence is the zero-based position in the order's fill history
	Sequence uint32 `json:"sequence"`
	// FillSize is the encrypted executed size
	FillSize Ciphertext `json:"fill_size"`
	// FillPrice is the encrypted execution price
	FillPrice Ciphertext `json:"fill_price"`
	// FilledAt is the block time of execution
	FilledAt time.Time `json:"filled_at"`
	// Height is the block height of execution
	Height int64 `json:"height"`
}
