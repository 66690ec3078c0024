package keeper_test

import (
	"time"

	"github.com/veilchain/veil/x/darkpool/types"
)

// expiredSpec returns an order whose expiry is already in the past at the
// suite's block time.
func (s *DarkpoolTestSuite) expiredSpec() orderSpec {
	spec := defaultBuy()
	spec.expiry = s.ctx.BlockTime().Unix() - 10
	return spec
}

// ============================================================================
// SweepExpired Tests
// ============================================================================

func (s *DarkpoolTestSuite) TestSweepExpired_RetiresExpiredOrder() {
	orderID := s.place(s.expiredSpec())

	swept, err := s.keeper.SweepExpired(s.ctx, []uint64{orderID})
	s.Require().NoError(err)
	s.Require().Equal(uint32(1), swept)

	order := s.orderState(orderID)
	s.Require().Equal(types.OrderStatusExpired, order.Status)
	s.Require().True(s.decrypt(order.IsActive).IsZero())

	agg, err := s.keeper.GetPoolAggregate(s.ctx, 1)
	s.Require().NoError(err)
	s.Require().True(s.decrypt(agg.Buy).IsZero())
}

func (s *DarkpoolTestSuite) TestSweepExpired_LeavesLiveOrder() {
	orderID := s.place(defaultBuy())

	swept, err := s.keeper.SweepExpired(s.ctx, []uint64{orderID})
	s.Require().NoError(err)
	s.Require().Zero(swept)
	s.Require().Equal(types.OrderStatusPending, s.orderState(orderID).Status)
}

func (s *DarkpoolTestSuite) TestSweepExpired_SweepableAtExpiryInstant() {
	spec := defaultBuy()
	spec.expiry = s.ctx.BlockTime().Unix() + 1
	orderID := s.place(spec)

	// One second before expiry the order is live.
	swept, err := s.keeper.SweepExpired(s.ctx, []uint64{orderID})
	s.Require().NoError(err)
	s.Require().Zero(swept)

	// At the exact expiry instant it is sweepable.
	s.ctx = s.ctx.WithBlockTime(s.ctx.BlockTime().Add(time.Second))
	swept, err = s.keeper.SweepExpired(s.ctx, []uint64{orderID})
	s.Require().NoError(err)
	s.Require().Equal(uint32(1), swept)
}

func (s *DarkpoolTestSuite) TestSweepExpired_SkipsUnknownAndTerminal() {
	cancelled := s.place(s.expiredSpec())
	s.Require().NoError(s.keeper.CancelOrder(s.ctx, s.owner, cancelled))

	swept, err := s.keeper.SweepExpired(s.ctx, []uint64{cancelled, 999})
	s.Require().NoError(err)
	s.Require().Zero(swept)
	s.Require().Equal(types.OrderStatusCancelled, s.orderState(cancelled).Status)
}

func (s *DarkpoolTestSuite) TestSweepExpired_Permissionless() {
	// Sweeping takes no sender at all: the keeper API carries no principal
	// and the decrypted signal is a single bit per order.
	first := s.place(s.expiredSpec())
	second := s.place(defaultBuy())

	swept, err := s.keeper.SweepExpired(s.ctx, []uint64{first, second})
	s.Require().NoError(err)
	s.Require().Equal(uint32(1), swept)
}

// ============================================================================
// EndBlocker Maintenance
// ============================================================================

func (s *DarkpoolTestSuite) TestEndBlocker_SweepsActiveBatch() {
	expired := s.place(s.expiredSpec())
	live := s.place(defaultBuy())

	s.Require().NoError(s.keeper.EndBlocker(s.ctx))

	s.Require().Equal(types.OrderStatusExpired, s.orderState(expired).Status)
	s.Require().Equal(types.OrderStatusPending, s.orderState(live).Status)
}

func (s *DarkpoolTestSuite) TestEndBlocker_HonorsSweepBatchSize() {
	params := s.keeper.GetParams(s.ctx)
	params.SweepBatchSize = 1
	s.Require().NoError(s.keeper.SetParams(s.ctx, params))

	first := s.place(s.expiredSpec())
	second := s.place(s.expiredSpec())

	s.Require().NoError(s.keeper.EndBlocker(s.ctx))
	s.Require().Equal(types.OrderStatusExpired, s.orderState(first).Status)
	s.Require().Equal(types.OrderStatusPending, s.orderState(second).Status)

	// The next block picks up the remainder.
	s.Require().NoError(s.keeper.EndBlocker(s.ctx))
	s.Require().Equal(types.OrderStatusExpired, s.orderState(second).Status)
}
