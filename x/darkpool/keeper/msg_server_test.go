package keeper_test

import (
	sdkmath "cosmossdk.io/math"

	keepertest "github.com/veilchain/veil/testutil/keeper"
	"github.com/veilchain/veil/x/darkpool/keeper"
	"github.com/veilchain/veil/x/darkpool/types"
)

func (s *DarkpoolTestSuite) msgServer() types.MsgServer {
	return keeper.NewMsgServerImpl(*s.keeper)
}

func (s *DarkpoolTestSuite) TestMsgPlaceOrder() {
	resp, err := s.msgServer().PlaceOrder(s.ctx, &types.MsgPlaceOrder{
		Owner:  s.owner,
		PoolId: 1,
		Fields: encryptFields(s.cop, defaultBuy()),
	})
	s.Require().NoError(err)
	s.Require().Equal(uint64(1), resp.OrderId)
	s.Require().True(s.keeper.HasOrder(s.ctx, resp.OrderId))
}

func (s *DarkpoolTestSuite) TestMsgPlaceOrder_ValidateBasicEnforced() {
	_, err := s.msgServer().PlaceOrder(s.ctx, &types.MsgPlaceOrder{
		Owner:  "bogus",
		PoolId: 1,
		Fields: encryptFields(s.cop, defaultBuy()),
	})
	s.Require().Error(err)
}

func (s *DarkpoolTestSuite) TestMsgCancelOrder() {
	orderID := s.place(defaultBuy())

	_, err := s.msgServer().CancelOrder(s.ctx, &types.MsgCancelOrder{
		Sender:  s.owner,
		OrderId: orderID,
	})
	s.Require().NoError(err)
	s.Require().Equal(types.OrderStatusCancelled, s.orderState(orderID).Status)
}

func (s *DarkpoolTestSuite) TestMsgDecryptionFlow() {
	orderID := s.place(defaultBuy())
	srv := s.msgServer()

	reqResp, err := srv.RequestDecryption(s.ctx, &types.MsgRequestDecryption{
		Requester: s.owner,
		OrderId:   orderID,
		Field:     types.FieldOrderSize,
	})
	s.Require().NoError(err)

	_, err = srv.FulfillDecryption(s.ctx, &types.MsgFulfillDecryption{
		Sender:    s.owner,
		TicketId:  reqResp.TicketId,
		Plaintext: sdkmath.NewInt(100),
	})
	s.Require().NoError(err)

	conResp, err := srv.ConsumeDecryption(s.ctx, &types.MsgConsumeDecryption{
		Sender:   s.owner,
		TicketId: reqResp.TicketId,
	})
	s.Require().NoError(err)
	s.Require().Equal(int64(100), conResp.Plaintext.Int64())
}

func (s *DarkpoolTestSuite) TestMsgSweepExpired() {
	expired := s.place(s.expiredSpec())
	live := s.place(defaultBuy())

	resp, err := s.msgServer().SweepExpired(s.ctx, &types.MsgSweepExpired{
		Sender:   s.stranger,
		OrderIds: []uint64{expired, live},
	})
	s.Require().NoError(err)
	s.Require().Equal(uint32(1), resp.Swept)
}

func (s *DarkpoolTestSuite) TestMsgRevokeAccess() {
	s.setEmergencyAdmin()
	orderID := s.place(defaultBuy())

	_, err := s.msgServer().RevokeAccess(s.ctx, &types.MsgRevokeAccess{
		Admin:     s.admin,
		OrderId:   orderID,
		Field:     types.FieldTriggerPrice,
		Principal: s.owner,
	})
	s.Require().NoError(err)

	order := s.orderState(orderID)
	s.Require().False(s.keeper.HasAccess(s.ctx, order.TriggerPrice, s.owner))
}

func (s *DarkpoolTestSuite) TestMsgPause_AuthorityOnly() {
	srv := s.msgServer()

	_, err := srv.Pause(s.ctx, &types.MsgPause{Authority: s.stranger})
	s.Require().ErrorIs(err, types.ErrUnauthorized)
	s.Require().False(s.keeper.IsPaused(s.ctx))

	_, err = srv.Pause(s.ctx, &types.MsgPause{Authority: keepertest.Authority})
	s.Require().NoError(err)
	s.Require().True(s.keeper.IsPaused(s.ctx))

	_, err = srv.Unpause(s.ctx, &types.MsgUnpause{Authority: keepertest.Authority})
	s.Require().NoError(err)
	s.Require().False(s.keeper.IsPaused(s.ctx))
}

func (s *DarkpoolTestSuite) TestMsgPause_EmergencyAdminAllowed() {
	s.setEmergencyAdmin()

	_, err := s.msgServer().Pause(s.ctx, &types.MsgPause{Authority: s.admin})
	s.Require().NoError(err)
	s.Require().True(s.keeper.IsPaused(s.ctx))
}

func (s *DarkpoolTestSuite) TestMsgUpdateParams() {
	params := types.DefaultParams()
	params.SweepBatchSize = 9

	_, err := s.msgServer().UpdateParams(s.ctx, &types.MsgUpdateParams{
		Authority: s.admin,
		Params:    params,
	})
	s.Require().ErrorIs(err, types.ErrUnauthorized)

	_, err = s.msgServer().UpdateParams(s.ctx, &types.MsgUpdateParams{
		Authority: keepertest.Authority,
		Params:    params,
	})
	s.Require().NoError(err)
	s.Require().Equal(uint32(9), s.keeper.GetParams(s.ctx).SweepBatchSize)
}
