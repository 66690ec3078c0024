package keeper_test

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/veilchain/veil/x/darkpool/keeper"
	"github.com/veilchain/veil/x/darkpool/types"
)

// ============================================================================
// PlaceOrder Tests
// ============================================================================

func (s *DarkpoolTestSuite) TestPlaceOrder_AssignsMonotonicIDs() {
	first := s.place(defaultBuy())
	second := s.place(defaultBuy())

	s.Require().Equal(uint64(1), first)
	s.Require().Equal(uint64(2), second)
}

func (s *DarkpoolTestSuite) TestPlaceOrder_StoresPendingOrder() {
	orderID := s.place(defaultBuy())

	order, err := s.keeper.GetOrder(s.ctx, orderID)
	s.Require().NoError(err)
	s.Require().Equal(s.owner, order.Owner)
	s.Require().Equal(uint64(1), order.PoolId)
	s.Require().Equal(types.OrderStatusPending, order.Status)
	s.Require().Equal(uint32(0), order.FillCount)
	s.Require().Equal(s.ctx.BlockHeight(), order.CreatedAtHeight)

	// Remaining size starts as the full order size.
	s.Require().Equal(int64(100), s.decrypt(order.RemainingSize).Int64())
	s.Require().Equal(int64(1), s.decrypt(order.IsActive).Int64())
	s.Require().True(s.decrypt(order.VwapNumerator).IsZero())
	s.Require().True(s.decrypt(order.VwapDenominator).IsZero())
}

func (s *DarkpoolTestSuite) TestPlaceOrder_RejectsInvalidOwner() {
	_, err := s.keeper.PlaceOrder(s.ctx, "not-bech32", 1, encryptFields(s.cop, defaultBuy()))
	s.Require().ErrorIs(err, types.ErrInvalidInput)
}

func (s *DarkpoolTestSuite) TestPlaceOrder_RejectsZeroPool() {
	_, err := s.keeper.PlaceOrder(s.ctx, s.owner, 0, encryptFields(s.cop, defaultBuy()))
	s.Require().ErrorIs(err, types.ErrInvalidInput)
}

func (s *DarkpoolTestSuite) TestPlaceOrder_RejectsMissingHandles() {
	fields := encryptFields(s.cop, defaultBuy())
	fields.TriggerPrice = types.Ciphertext{}

	_, err := s.keeper.PlaceOrder(s.ctx, s.owner, 1, fields)
	s.Require().ErrorIs(err, types.ErrMalformedOrder)
}

func (s *DarkpoolTestSuite) TestPlaceOrder_RejectsWrongWidth() {
	fields := encryptFields(s.cop, defaultBuy())
	fields.Direction = s.cop.Seed(1, types.CtUint128)

	_, err := s.keeper.PlaceOrder(s.ctx, s.owner, 1, fields)
	s.Require().ErrorIs(err, types.ErrMalformedOrder)
}

func (s *DarkpoolTestSuite) TestPlaceOrder_RejectedWhenPaused() {
	s.keeper.SetPaused(s.ctx, true)

	_, err := s.keeper.PlaceOrder(s.ctx, s.owner, 1, encryptFields(s.cop, defaultBuy()))
	s.Require().ErrorIs(err, types.ErrSystemPaused)
}

func (s *DarkpoolTestSuite) TestPlaceOrder_GrantsOwnerAndEngine() {
	orderID := s.place(defaultBuy())

	order, err := s.keeper.GetOrder(s.ctx, orderID)
	s.Require().NoError(err)

	s.Require().True(s.keeper.HasAccess(s.ctx, order.OrderSize, s.owner))
	s.Require().True(s.keeper.HasAccess(s.ctx, order.TriggerPrice, s.owner))
	s.Require().True(s.keeper.HasAccess(s.ctx, order.VwapNumerator, s.owner))

	// The activity flag is engine-internal.
	s.Require().False(s.keeper.HasAccess(s.ctx, order.IsActive, s.owner))
	s.Require().True(s.keeper.HasAccess(s.ctx, order.IsActive, keeper.EngineAddress))
	s.Require().True(s.keeper.HasAccess(s.ctx, order.OrderSize, keeper.EngineAddress))
}

func (s *DarkpoolTestSuite) TestPlaceOrder_UpdatesPoolAggregates() {
	s.place(defaultBuy())

	sell := defaultBuy()
	sell.direction = types.DirectionSell
	sell.size = 40
	s.place(sell)

	agg, err := s.keeper.GetPoolAggregate(s.ctx, 1)
	s.Require().NoError(err)
	s.Require().Equal(int64(100), s.decrypt(agg.Buy).Int64())
	s.Require().Equal(int64(40), s.decrypt(agg.Sell).Int64())
}

func (s *DarkpoolTestSuite) TestPlaceOrder_IndexedByOwnerAndPool() {
	orderID := s.place(defaultBuy())

	addr, err := sdk.AccAddressFromBech32(s.owner)
	s.Require().NoError(err)

	byOwner, err := s.keeper.GetOrdersByOwner(s.ctx, addr)
	s.Require().NoError(err)
	s.Require().Len(byOwner, 1)
	s.Require().Equal(orderID, byOwner[0].Id)

	byPool, err := s.keeper.GetOrdersByPool(s.ctx, 1)
	s.Require().NoError(err)
	s.Require().Len(byPool, 1)
	s.Require().Equal(orderID, byPool[0].Id)
}

// ============================================================================
// CancelOrder Tests
// ============================================================================

func (s *DarkpoolTestSuite) TestCancelOrder_ByOwner() {
	orderID := s.place(defaultBuy())

	s.Require().NoError(s.keeper.CancelOrder(s.ctx, s.owner, orderID))

	order, err := s.keeper.GetOrder(s.ctx, orderID)
	s.Require().NoError(err)
	s.Require().Equal(types.OrderStatusCancelled, order.Status)
	s.Require().True(s.decrypt(order.IsActive).IsZero())

	// The remaining size leaves the pool aggregates.
	agg, err := s.keeper.GetPoolAggregate(s.ctx, 1)
	s.Require().NoError(err)
	s.Require().True(s.decrypt(agg.Buy).IsZero())
}

func (s *DarkpoolTestSuite) TestCancelOrder_ByEmergencyAdmin() {
	s.setEmergencyAdmin()
	orderID := s.place(defaultBuy())

	s.Require().NoError(s.keeper.CancelOrder(s.ctx, s.admin, orderID))

	order, err := s.keeper.GetOrder(s.ctx, orderID)
	s.Require().NoError(err)
	s.Require().Equal(types.OrderStatusCancelled, order.Status)
}

func (s *DarkpoolTestSuite) TestCancelOrder_StrangerRejected() {
	orderID := s.place(defaultBuy())

	err := s.keeper.CancelOrder(s.ctx, s.stranger, orderID)
	s.Require().ErrorIs(err, types.ErrUnauthorized)
}

func (s *DarkpoolTestSuite) TestCancelOrder_TerminalRejected() {
	orderID := s.place(defaultBuy())
	s.Require().NoError(s.keeper.CancelOrder(s.ctx, s.owner, orderID))

	err := s.keeper.CancelOrder(s.ctx, s.owner, orderID)
	s.Require().ErrorIs(err, types.ErrOrderNotCancellable)
}

func (s *DarkpoolTestSuite) TestCancelOrder_UnknownOrder() {
	err := s.keeper.CancelOrder(s.ctx, s.owner, 42)
	s.Require().ErrorIs(err, types.ErrOrderNotFound)
}

func (s *DarkpoolTestSuite) TestCancelOrder_RemovedFromActiveIteration() {
	orderID := s.place(defaultBuy())
	s.Require().NoError(s.keeper.CancelOrder(s.ctx, s.owner, orderID))

	var seen int
	s.Require().NoError(s.keeper.IterateActiveOrders(s.ctx, 1, func(types.Order) bool {
		seen++
		return false
	}))
	s.Require().Zero(seen)
}

func (s *DarkpoolTestSuite) TestLifecycleEventsCarryTimestamp() {
	filled := s.place(defaultBuy())
	s.priceUpdate(90, 40)

	cancelled := s.place(defaultBuy())
	s.Require().NoError(s.keeper.CancelOrder(s.ctx, s.owner, cancelled))

	expired := s.place(s.expiredSpec())
	_, err := s.keeper.SweepExpired(s.ctx, []uint64{expired})
	s.Require().NoError(err)
	s.Require().Equal(types.OrderStatusPartiallyFilled, s.orderState(filled).Status)

	want := map[string]bool{
		types.EventTypeOrderFilled:    false,
		types.EventTypeOrderCancelled: false,
		types.EventTypeOrderExpired:   false,
	}
	for _, ev := range s.ctx.EventManager().Events() {
		if _, ok := want[ev.Type]; !ok {
			continue
		}
		for _, attr := range ev.Attributes {
			if attr.Key == types.AttributeKeyTimestamp {
				want[ev.Type] = true
			}
		}
	}
	for evType, seen := range want {
		s.Require().True(seen, evType)
	}
}
