package keeper_test

import (
	"github.com/veilchain/veil/x/darkpool/keeper"
	"github.com/veilchain/veil/x/darkpool/types"
)

// ============================================================================
// Grant Bookkeeping
// ============================================================================

func (s *DarkpoolTestSuite) TestGrants_ManualGrantAndRevoke() {
	ct := s.cop.Seed(7, types.CtUint128)

	s.Require().False(s.keeper.HasAccess(s.ctx, ct, s.stranger))

	s.keeper.GrantAccess(s.ctx, ct, s.stranger)
	s.Require().True(s.keeper.HasAccess(s.ctx, ct, s.stranger))

	s.keeper.RevokeAccess(s.ctx, ct, s.stranger)
	s.Require().False(s.keeper.HasAccess(s.ctx, ct, s.stranger))
}

func (s *DarkpoolTestSuite) TestGrants_DerivedHandlesStayOpenable() {
	orderID := s.place(defaultBuy())
	s.priceUpdate(90, 40)

	// The fill produced fresh remaining-size and VWAP handles; the owner
	// must hold grants on all of them.
	order := s.orderState(orderID)
	s.Require().True(s.keeper.HasAccess(s.ctx, order.RemainingSize, s.owner))
	s.Require().True(s.keeper.HasAccess(s.ctx, order.VwapNumerator, s.owner))
	s.Require().True(s.keeper.HasAccess(s.ctx, order.VwapDenominator, s.owner))
}

// ============================================================================
// Emergency Revocation
// ============================================================================

func (s *DarkpoolTestSuite) TestRevokeFieldAccess_AdminOnly() {
	orderID := s.place(defaultBuy())

	err := s.keeper.RevokeFieldAccess(s.ctx, s.stranger, orderID, types.FieldTriggerPrice, s.owner)
	s.Require().ErrorIs(err, types.ErrUnauthorized)

	// With no admin configured even the owner cannot revoke.
	err = s.keeper.RevokeFieldAccess(s.ctx, s.owner, orderID, types.FieldTriggerPrice, s.owner)
	s.Require().ErrorIs(err, types.ErrUnauthorized)
}

func (s *DarkpoolTestSuite) TestRevokeFieldAccess_CutsOffDecryption() {
	s.setEmergencyAdmin()
	orderID := s.place(defaultBuy())

	s.Require().NoError(s.keeper.RevokeFieldAccess(s.ctx, s.admin, orderID, types.FieldTriggerPrice, s.owner))

	order := s.orderState(orderID)
	s.Require().False(s.keeper.HasAccess(s.ctx, order.TriggerPrice, s.owner))

	_, err := s.keeper.RequestDecryption(s.ctx, s.owner, orderID, types.FieldTriggerPrice)
	s.Require().ErrorIs(err, types.ErrPermissionDenied)

	// Other fields are untouched.
	_, err = s.keeper.RequestDecryption(s.ctx, s.owner, orderID, types.FieldOrderSize)
	s.Require().NoError(err)
}

func (s *DarkpoolTestSuite) TestRevokeFieldAccess_EngineProtected() {
	s.setEmergencyAdmin()
	orderID := s.place(defaultBuy())

	err := s.keeper.RevokeFieldAccess(s.ctx, s.admin, orderID, types.FieldOrderSize, keeper.EngineAddress)
	s.Require().ErrorIs(err, types.ErrInvalidInput)
}

func (s *DarkpoolTestSuite) TestRevokeFieldAccess_UnknownField() {
	s.setEmergencyAdmin()
	orderID := s.place(defaultBuy())

	err := s.keeper.RevokeFieldAccess(s.ctx, s.admin, orderID, "nope", s.owner)
	s.Require().ErrorIs(err, types.ErrUnknownField)
}

func (s *DarkpoolTestSuite) TestRevokeFieldAccess_EngineKeepsExecuting() {
	s.setEmergencyAdmin()
	orderID := s.place(defaultBuy())

	s.Require().NoError(s.keeper.RevokeFieldAccess(s.ctx, s.admin, orderID, types.FieldOrderSize, s.owner))

	// Revoking an owner grant does not affect engine execution.
	s.priceUpdate(90, 1_000)
	s.Require().Equal(types.OrderStatusFilled, s.orderState(orderID).Status)
}

func (s *DarkpoolTestSuite) TestGrants_AggregateHandlesGrantedToEngine() {
	s.place(defaultBuy())

	agg, err := s.keeper.GetPoolAggregate(s.ctx, 1)
	s.Require().NoError(err)
	s.Require().True(s.keeper.HasAccess(s.ctx, agg.Buy, keeper.EngineAddress))
	s.Require().True(s.keeper.HasAccess(s.ctx, agg.Sell, keeper.EngineAddress))

	// Rewritten handles after a fill keep the engine grant.
	s.priceUpdate(90, 1_000)
	agg, err = s.keeper.GetPoolAggregate(s.ctx, 1)
	s.Require().NoError(err)
	s.Require().True(s.keeper.HasAccess(s.ctx, agg.Buy, keeper.EngineAddress))
	s.Require().True(s.keeper.HasAccess(s.ctx, agg.Sell, keeper.EngineAddress))
}

func (s *DarkpoolTestSuite) TestGetAllGrants_RoundTripsFingerprints() {
	s.place(defaultBuy())

	grants := s.keeper.GetAllGrants(s.ctx)
	s.Require().NotEmpty(grants)
	for _, grant := range grants {
		s.Require().Len(grant.Fingerprint, 64)
		s.Require().NotEmpty(grant.Principal)
	}
}
