package keeper_test

import (
	"github.com/veilchain/veil/x/darkpool/types"
)

func (s *DarkpoolTestSuite) TestPause_FlagRoundTrip() {
	s.Require().False(s.keeper.IsPaused(s.ctx))

	s.keeper.SetPaused(s.ctx, true)
	s.Require().True(s.keeper.IsPaused(s.ctx))
	s.Require().ErrorIs(s.keeper.RequireNotPaused(s.ctx), types.ErrSystemPaused)

	s.keeper.SetPaused(s.ctx, false)
	s.Require().False(s.keeper.IsPaused(s.ctx))
	s.Require().NoError(s.keeper.RequireNotPaused(s.ctx))
}

func (s *DarkpoolTestSuite) TestPause_CancelAndTicketsStillWork() {
	orderID := s.place(defaultBuy())
	s.keeper.SetPaused(s.ctx, true)

	// Pause halts placement and execution but not exits or decryption.
	_, err := s.keeper.RequestDecryption(s.ctx, s.owner, orderID, types.FieldOrderSize)
	s.Require().NoError(err)
	s.Require().NoError(s.keeper.CancelOrder(s.ctx, s.owner, orderID))
}

func (s *DarkpoolTestSuite) TestParams_RoundTrip() {
	params := s.keeper.GetParams(s.ctx)
	params.MaxCandidatesPerUpdate = 7
	params.TicketTimeoutBlocks = 42

	s.Require().NoError(s.keeper.SetParams(s.ctx, params))
	s.Require().Equal(params, s.keeper.GetParams(s.ctx))
}

func (s *DarkpoolTestSuite) TestParams_RejectsInvalid() {
	params := s.keeper.GetParams(s.ctx)
	params.SweepBatchSize = 0

	s.Require().Error(s.keeper.SetParams(s.ctx, params))
}

func (s *DarkpoolTestSuite) TestParams_CandidateCapLimitsEvaluation() {
	params := s.keeper.GetParams(s.ctx)
	params.MaxCandidatesPerUpdate = 1
	s.Require().NoError(s.keeper.SetParams(s.ctx, params))

	first := s.place(defaultBuy())
	second := s.place(defaultBuy())

	s.priceUpdate(90, 1_000)
	s.Require().Equal(types.OrderStatusFilled, s.orderState(first).Status)
	s.Require().Equal(types.OrderStatusPending, s.orderState(second).Status)
}
