package keeper_test

import (
	sdkmath "cosmossdk.io/math"

	"github.com/veilchain/veil/x/darkpool/keeper"
	"github.com/veilchain/veil/x/darkpool/types"
)

func (s *DarkpoolTestSuite) requireInvariantsHold() {
	msg, broken := keeper.AllInvariants(*s.keeper)(s.ctx)
	s.Require().False(broken, msg)
}

func (s *DarkpoolTestSuite) TestInvariants_HoldOnEmptyState() {
	s.requireInvariantsHold()
}

func (s *DarkpoolTestSuite) TestInvariants_HoldThroughLifecycle() {
	// Place, partially fill, cancel, expire and open tickets, checking the
	// full suite at every step.
	first := s.place(defaultBuy())
	s.requireInvariantsHold()

	s.priceUpdate(90, 40)
	s.requireInvariantsHold()

	second := s.place(defaultBuy())
	s.Require().NoError(s.keeper.CancelOrder(s.ctx, s.owner, second))
	s.requireInvariantsHold()

	expiring := s.place(s.expiredSpec())
	_, err := s.keeper.SweepExpired(s.ctx, []uint64{expiring})
	s.Require().NoError(err)
	s.requireInvariantsHold()

	ticketID, err := s.keeper.RequestDecryption(s.ctx, s.owner, first, types.FieldVwapDenominator)
	s.Require().NoError(err)
	s.Require().NoError(s.keeper.FulfillDecryption(s.ctx, s.owner, ticketID, sdkmath.NewInt(40)))
	s.requireInvariantsHold()
}

func (s *DarkpoolTestSuite) TestInvariants_DetectOrderPastCounter() {
	orderID := s.place(defaultBuy())

	// Clone the order under an ID the counter never issued.
	order := s.orderState(orderID)
	order.Id = 999
	s.Require().NoError(s.keeper.SetOrder(s.ctx, order))

	msg, broken := keeper.OrderIDsInvariant(*s.keeper)(s.ctx)
	s.Require().True(broken, msg)
}

func (s *DarkpoolTestSuite) TestInvariants_DetectFillCountMismatch() {
	orderID := s.place(defaultBuy())
	s.priceUpdate(90, 40)

	order := s.orderState(orderID)
	order.FillCount = 5
	s.Require().NoError(s.keeper.SetOrder(s.ctx, order))

	msg, broken := keeper.FillSequencesInvariant(*s.keeper)(s.ctx)
	s.Require().True(broken, msg)
}

func (s *DarkpoolTestSuite) TestInvariants_DetectPendingWithFills() {
	orderID := s.place(defaultBuy())
	s.priceUpdate(90, 40)

	order := s.orderState(orderID)
	order.Status = types.OrderStatusPending
	s.Require().NoError(s.keeper.SetOrder(s.ctx, order))

	msg, broken := keeper.FillSequencesInvariant(*s.keeper)(s.ctx)
	s.Require().True(broken, msg)
}
