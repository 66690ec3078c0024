package fhe

import (
	"context"
	"sync"

	sdkmath "cosmossdk.io/math"

	"github.com/veilchain/veil/x/darkpool/types"
)

// SettledFill is one recorded settlement call.
type SettledFill struct {
	OrderID uint64
	Owner   string
	PoolID  uint64
	Amount  sdkmath.Int
}

// SettlementRecorder is a types.SettlementKeeper that records every Settle
// call for assertions. FailNext makes the next call return an error.
type SettlementRecorder struct {
	mu       sync.Mutex
	Fills    []SettledFill
	FailNext error
}

var _ types.SettlementKeeper = (*SettlementRecorder)(nil)

func NewSettlementRecorder() *SettlementRecorder {
	return &SettlementRecorder{}
}

func (s *SettlementRecorder) Settle(_ context.Context, orderID uint64, owner string, poolID uint64, fillAmount sdkmath.Int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailNext != nil {
		err := s.FailNext
		s.FailNext = nil
		return err
	}
	s.Fills = append(s.Fills, SettledFill{OrderID: orderID, Owner: owner, PoolID: poolID, Amount: fillAmount})
	return nil
}

// Total sums recorded fill amounts for an order.
func (s *SettlementRecorder) Total(orderID uint64) sdkmath.Int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := sdkmath.ZeroInt()
	for _, f := range s.Fills {
		if f.OrderID == orderID {
			total = total.Add(f.Amount)
		}
	}
	return total
}
