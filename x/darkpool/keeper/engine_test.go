package keeper_test

import (
	sdkmath "cosmossdk.io/math"

	"github.com/veilchain/veil/x/darkpool/types"
)

// priceUpdate drives the engine on pool 1.
func (s *DarkpoolTestSuite) priceUpdate(price, liquidity int64) {
	s.Require().NoError(s.keeper.OnPriceUpdate(s.ctx, 1, sdkmath.NewInt(price), sdkmath.NewInt(liquidity)))
}

func (s *DarkpoolTestSuite) orderState(orderID uint64) *types.Order {
	order, err := s.keeper.GetOrder(s.ctx, orderID)
	s.Require().NoError(err)
	return order
}

// ============================================================================
// Trigger Direction
// ============================================================================

func (s *DarkpoolTestSuite) TestEngine_BuyTriggersAtOrBelowTrigger() {
	orderID := s.place(defaultBuy())

	// Above the trigger: nothing happens.
	s.priceUpdate(110, 1_000)
	s.Require().Equal(types.OrderStatusPending, s.orderState(orderID).Status)
	s.Require().Empty(s.settlement.Fills)

	// At the trigger: full fill.
	s.priceUpdate(100, 1_000)
	s.Require().Equal(types.OrderStatusFilled, s.orderState(orderID).Status)
	s.Require().Equal(int64(100), s.settlement.Total(orderID).Int64())
}

func (s *DarkpoolTestSuite) TestEngine_SellTriggersAtOrAboveTrigger() {
	spec := defaultBuy()
	spec.direction = types.DirectionSell
	orderID := s.place(spec)

	s.priceUpdate(90, 1_000)
	s.Require().Equal(types.OrderStatusPending, s.orderState(orderID).Status)

	s.priceUpdate(120, 1_000)
	s.Require().Equal(types.OrderStatusFilled, s.orderState(orderID).Status)
	s.Require().Equal(int64(100), s.settlement.Total(orderID).Int64())
}

// ============================================================================
// Partial Fills and VWAP
// ============================================================================

func (s *DarkpoolTestSuite) TestEngine_PartialFillThenCompletion() {
	orderID := s.place(defaultBuy())

	s.priceUpdate(90, 40)
	order := s.orderState(orderID)
	s.Require().Equal(types.OrderStatusPartiallyFilled, order.Status)
	s.Require().Equal(uint32(1), order.FillCount)
	s.Require().Equal(int64(60), s.decrypt(order.RemainingSize).Int64())
	s.Require().Equal(int64(1), s.decrypt(order.IsActive).Int64())

	// Same price, next block: the remainder executes.
	s.ctx = s.ctx.WithBlockHeight(s.ctx.BlockHeight() + 1)
	s.priceUpdate(80, 1_000)

	order = s.orderState(orderID)
	s.Require().Equal(types.OrderStatusFilled, order.Status)
	s.Require().Equal(uint32(2), order.FillCount)
	s.Require().True(s.decrypt(order.RemainingSize).IsZero())
	s.Require().True(s.decrypt(order.IsActive).IsZero())

	// VWAP accumulators: 40@90 + 60@80 over 100 filled.
	s.Require().Equal(int64(40*90+60*80), s.decrypt(order.VwapNumerator).Int64())
	s.Require().Equal(int64(100), s.decrypt(order.VwapDenominator).Int64())

	s.Require().Equal(int64(100), s.settlement.Total(orderID).Int64())

	fills, err := s.keeper.GetFills(s.ctx, orderID)
	s.Require().NoError(err)
	s.Require().Len(fills, 2)
	s.Require().Equal(uint32(0), fills[0].Sequence)
	s.Require().Equal(uint32(1), fills[1].Sequence)
	s.Require().Equal(int64(40), s.decrypt(fills[0].FillSize).Int64())
	s.Require().Equal(int64(60), s.decrypt(fills[1].FillSize).Int64())
}

func (s *DarkpoolTestSuite) TestEngine_MinFillSizeBlocksDust() {
	spec := defaultBuy()
	spec.minFill = 50
	orderID := s.place(spec)

	// Cap of 30 is below the minimum fill: no execution, no error.
	s.priceUpdate(90, 30)
	s.Require().Equal(types.OrderStatusPending, s.orderState(orderID).Status)
	s.Require().Empty(s.settlement.Fills)

	s.ctx = s.ctx.WithBlockHeight(s.ctx.BlockHeight() + 1)
	s.priceUpdate(90, 50)
	s.Require().Equal(types.OrderStatusPartiallyFilled, s.orderState(orderID).Status)
	s.Require().Equal(int64(50), s.settlement.Total(orderID).Int64())
}

func (s *DarkpoolTestSuite) TestEngine_AllOrNothing() {
	spec := defaultBuy()
	spec.partial = false
	spec.size = 50
	orderID := s.place(spec)

	// Liquidity short of the full remainder: nothing fills.
	s.priceUpdate(90, 30)
	s.Require().Equal(types.OrderStatusPending, s.orderState(orderID).Status)

	s.ctx = s.ctx.WithBlockHeight(s.ctx.BlockHeight() + 1)
	s.priceUpdate(90, 50)

	order := s.orderState(orderID)
	s.Require().Equal(types.OrderStatusFilled, order.Status)
	s.Require().Equal(uint32(1), order.FillCount)
	s.Require().Equal(int64(50), s.settlement.Total(orderID).Int64())
}

// ============================================================================
// Liquidity and Candidate Handling
// ============================================================================

func (s *DarkpoolTestSuite) TestEngine_LiquiditySharedAcrossOrders() {
	first := s.place(defaultBuy())
	spec := defaultBuy()
	spec.size = 80
	second := s.place(spec)

	// 130 of liquidity: the first order takes 100, the second gets 30.
	s.priceUpdate(90, 130)

	s.Require().Equal(types.OrderStatusFilled, s.orderState(first).Status)
	s.Require().Equal(types.OrderStatusPartiallyFilled, s.orderState(second).Status)
	s.Require().Equal(int64(100), s.settlement.Total(first).Int64())
	s.Require().Equal(int64(30), s.settlement.Total(second).Int64())
}

func (s *DarkpoolTestSuite) TestEngine_ZeroLiquidityNoFills() {
	orderID := s.place(defaultBuy())

	s.priceUpdate(90, 0)
	s.Require().Equal(types.OrderStatusPending, s.orderState(orderID).Status)
}

func (s *DarkpoolTestSuite) TestEngine_IdempotentRedelivery() {
	spec := defaultBuy()
	spec.size = 100
	orderID := s.place(spec)

	s.priceUpdate(90, 40)
	s.Require().Equal(uint32(1), s.orderState(orderID).FillCount)

	// Same pool, height and price again: consumed marker short-circuits.
	s.priceUpdate(90, 40)
	s.Require().Equal(uint32(1), s.orderState(orderID).FillCount)
	s.Require().Len(s.settlement.Fills, 1)
}

func (s *DarkpoolTestSuite) TestEngine_CancelledOrderNotEvaluated() {
	orderID := s.place(defaultBuy())
	s.Require().NoError(s.keeper.CancelOrder(s.ctx, s.owner, orderID))

	s.priceUpdate(90, 1_000)
	s.Require().Equal(types.OrderStatusCancelled, s.orderState(orderID).Status)
	s.Require().Empty(s.settlement.Fills)
}

func (s *DarkpoolTestSuite) TestEngine_ExpiredOrderComputesZeroFill() {
	spec := defaultBuy()
	spec.expiry = s.ctx.BlockTime().Unix() - 1
	orderID := s.place(spec)

	s.priceUpdate(90, 1_000)
	s.Require().Equal(types.OrderStatusPending, s.orderState(orderID).Status)
	s.Require().Empty(s.settlement.Fills)
}

func (s *DarkpoolTestSuite) TestEngine_ExpiryInstantComputesZeroFill() {
	spec := defaultBuy()
	spec.expiry = s.ctx.BlockTime().Unix()
	orderID := s.place(spec)

	s.priceUpdate(90, 1_000)
	s.Require().Equal(types.OrderStatusPending, s.orderState(orderID).Status)
	s.Require().Empty(s.settlement.Fills)
}

func (s *DarkpoolTestSuite) TestEngine_FillsUntilExpiryInstant() {
	spec := defaultBuy()
	spec.expiry = s.ctx.BlockTime().Unix() + 1
	orderID := s.place(spec)

	s.priceUpdate(90, 1_000)
	s.Require().Equal(types.OrderStatusFilled, s.orderState(orderID).Status)
}

func (s *DarkpoolTestSuite) TestEngine_OtherPoolUntouched() {
	orderID := s.place(defaultBuy())

	s.Require().NoError(s.keeper.OnPriceUpdate(s.ctx, 2, sdkmath.NewInt(90), sdkmath.NewInt(1_000)))
	s.Require().Equal(types.OrderStatusPending, s.orderState(orderID).Status)
}

// ============================================================================
// Input and Pause Handling
// ============================================================================

func (s *DarkpoolTestSuite) TestEngine_PausedIsNoOp() {
	orderID := s.place(defaultBuy())
	s.keeper.SetPaused(s.ctx, true)

	s.priceUpdate(90, 1_000)
	s.Require().Equal(types.OrderStatusPending, s.orderState(orderID).Status)

	// Unpause and re-deliver: the paused update left no marker behind.
	s.keeper.SetPaused(s.ctx, false)
	s.priceUpdate(90, 1_000)
	s.Require().Equal(types.OrderStatusFilled, s.orderState(orderID).Status)
}

func (s *DarkpoolTestSuite) TestEngine_RejectsBadInputs() {
	err := s.keeper.OnPriceUpdate(s.ctx, 0, sdkmath.NewInt(90), sdkmath.NewInt(10))
	s.Require().ErrorIs(err, types.ErrInvalidInput)

	err = s.keeper.OnPriceUpdate(s.ctx, 1, sdkmath.ZeroInt(), sdkmath.NewInt(10))
	s.Require().ErrorIs(err, types.ErrInvalidInput)

	err = s.keeper.OnPriceUpdate(s.ctx, 1, sdkmath.NewInt(90), sdkmath.NewInt(-1))
	s.Require().ErrorIs(err, types.ErrInvalidInput)
}

func (s *DarkpoolTestSuite) TestEngine_FillShrinksPoolAggregates() {
	orderID := s.place(defaultBuy())

	s.priceUpdate(90, 40)
	s.Require().Equal(types.OrderStatusPartiallyFilled, s.orderState(orderID).Status)

	agg, err := s.keeper.GetPoolAggregate(s.ctx, 1)
	s.Require().NoError(err)
	s.Require().Equal(int64(60), s.decrypt(agg.Buy).Int64())
}
