package keeper_test

import (
	sdkmath "cosmossdk.io/math"

	"github.com/veilchain/veil/x/darkpool/types"
)

// ============================================================================
// RequestDecryption Tests
// ============================================================================

func (s *DarkpoolTestSuite) TestRequestDecryption_OwnerOpensTicket() {
	orderID := s.place(defaultBuy())

	ticketID, err := s.keeper.RequestDecryption(s.ctx, s.owner, orderID, types.FieldOrderSize)
	s.Require().NoError(err)

	ticket, err := s.keeper.GetTicket(s.ctx, ticketID)
	s.Require().NoError(err)
	s.Require().Equal(types.TicketStatusRequested, ticket.Status)
	s.Require().Equal(orderID, ticket.OrderId)
	s.Require().Equal(types.FieldOrderSize, ticket.Field)
	s.Require().Equal(s.owner, ticket.Requester)

	params := s.keeper.GetParams(s.ctx)
	s.Require().Equal(s.ctx.BlockHeight()+params.TicketTimeoutBlocks, ticket.ExpiresAt)
}

func (s *DarkpoolTestSuite) TestRequestDecryption_StrangerDenied() {
	orderID := s.place(defaultBuy())

	_, err := s.keeper.RequestDecryption(s.ctx, s.stranger, orderID, types.FieldOrderSize)
	s.Require().ErrorIs(err, types.ErrPermissionDenied)
}

func (s *DarkpoolTestSuite) TestRequestDecryption_UnknownField() {
	orderID := s.place(defaultBuy())

	_, err := s.keeper.RequestDecryption(s.ctx, s.owner, orderID, "is_active")
	s.Require().ErrorIs(err, types.ErrUnknownField)
}

func (s *DarkpoolTestSuite) TestRequestDecryption_UnknownOrder() {
	_, err := s.keeper.RequestDecryption(s.ctx, s.owner, 7, types.FieldOrderSize)
	s.Require().ErrorIs(err, types.ErrOrderNotFound)
}

// ============================================================================
// Fulfill / Consume Tests
// ============================================================================

func (s *DarkpoolTestSuite) TestTicket_FullLifecycle() {
	orderID := s.place(defaultBuy())

	ticketID, err := s.keeper.RequestDecryption(s.ctx, s.owner, orderID, types.FieldOrderSize)
	s.Require().NoError(err)

	s.Require().NoError(s.keeper.FulfillDecryption(s.ctx, s.owner, ticketID, sdkmath.NewInt(100)))

	ticket, err := s.keeper.GetTicket(s.ctx, ticketID)
	s.Require().NoError(err)
	s.Require().Equal(types.TicketStatusFulfilled, ticket.Status)

	plaintext, err := s.keeper.ConsumeDecryption(s.ctx, s.owner, ticketID)
	s.Require().NoError(err)
	s.Require().Equal(int64(100), plaintext.Int64())

	ticket, err = s.keeper.GetTicket(s.ctx, ticketID)
	s.Require().NoError(err)
	s.Require().Equal(types.TicketStatusConsumed, ticket.Status)
}

func (s *DarkpoolTestSuite) TestFulfillDecryption_PlaintextMismatchRejected() {
	orderID := s.place(defaultBuy())
	ticketID, err := s.keeper.RequestDecryption(s.ctx, s.owner, orderID, types.FieldOrderSize)
	s.Require().NoError(err)

	err = s.keeper.FulfillDecryption(s.ctx, s.owner, ticketID, sdkmath.NewInt(999))
	s.Require().ErrorIs(err, types.ErrPlaintextMismatch)

	// The ticket stays requested and can still be fulfilled correctly.
	s.Require().NoError(s.keeper.FulfillDecryption(s.ctx, s.owner, ticketID, sdkmath.NewInt(100)))
}

func (s *DarkpoolTestSuite) TestFulfillDecryption_WrongSender() {
	orderID := s.place(defaultBuy())
	ticketID, err := s.keeper.RequestDecryption(s.ctx, s.owner, orderID, types.FieldOrderSize)
	s.Require().NoError(err)

	err = s.keeper.FulfillDecryption(s.ctx, s.stranger, ticketID, sdkmath.NewInt(100))
	s.Require().ErrorIs(err, types.ErrUnauthorized)
}

func (s *DarkpoolTestSuite) TestFulfillDecryption_ReplayRejected() {
	orderID := s.place(defaultBuy())
	ticketID, err := s.keeper.RequestDecryption(s.ctx, s.owner, orderID, types.FieldOrderSize)
	s.Require().NoError(err)
	s.Require().NoError(s.keeper.FulfillDecryption(s.ctx, s.owner, ticketID, sdkmath.NewInt(100)))

	err = s.keeper.FulfillDecryption(s.ctx, s.owner, ticketID, sdkmath.NewInt(100))
	s.Require().ErrorIs(err, types.ErrInvalidTicketState)
}

func (s *DarkpoolTestSuite) TestConsumeDecryption_RequiresFulfilled() {
	orderID := s.place(defaultBuy())
	ticketID, err := s.keeper.RequestDecryption(s.ctx, s.owner, orderID, types.FieldOrderSize)
	s.Require().NoError(err)

	_, err = s.keeper.ConsumeDecryption(s.ctx, s.owner, ticketID)
	s.Require().ErrorIs(err, types.ErrInvalidTicketState)
}

func (s *DarkpoolTestSuite) TestConsumeDecryption_TerminalNoReplay() {
	orderID := s.place(defaultBuy())
	ticketID, err := s.keeper.RequestDecryption(s.ctx, s.owner, orderID, types.FieldOrderSize)
	s.Require().NoError(err)
	s.Require().NoError(s.keeper.FulfillDecryption(s.ctx, s.owner, ticketID, sdkmath.NewInt(100)))

	_, err = s.keeper.ConsumeDecryption(s.ctx, s.owner, ticketID)
	s.Require().NoError(err)

	_, err = s.keeper.ConsumeDecryption(s.ctx, s.owner, ticketID)
	s.Require().ErrorIs(err, types.ErrInvalidTicketState)
}

// ============================================================================
// Snapshot Semantics and Derived Handles
// ============================================================================

func (s *DarkpoolTestSuite) TestTicket_SnapshotsHandleAtRequestTime() {
	orderID := s.place(defaultBuy())

	ticketID, err := s.keeper.RequestDecryption(s.ctx, s.owner, orderID, types.FieldRemainingSize)
	s.Require().NoError(err)

	// A fill replaces the remaining-size handle, but the ticket verifies
	// against the snapshot taken at request time.
	s.priceUpdate(90, 40)
	s.Require().Equal(int64(60), s.decrypt(s.orderState(orderID).RemainingSize).Int64())

	s.Require().NoError(s.keeper.FulfillDecryption(s.ctx, s.owner, ticketID, sdkmath.NewInt(100)))
}

func (s *DarkpoolTestSuite) TestTicket_OwnerOpensVwapAfterFills() {
	orderID := s.place(defaultBuy())
	s.priceUpdate(90, 40)

	ticketID, err := s.keeper.RequestDecryption(s.ctx, s.owner, orderID, types.FieldVwapNumerator)
	s.Require().NoError(err)
	s.Require().NoError(s.keeper.FulfillDecryption(s.ctx, s.owner, ticketID, sdkmath.NewInt(40*90)))

	plaintext, err := s.keeper.ConsumeDecryption(s.ctx, s.owner, ticketID)
	s.Require().NoError(err)
	s.Require().Equal(int64(3600), plaintext.Int64())
}

// ============================================================================
// Pruning
// ============================================================================

func (s *DarkpoolTestSuite) TestEndBlocker_PrunesTimedOutTickets() {
	orderID := s.place(defaultBuy())
	ticketID, err := s.keeper.RequestDecryption(s.ctx, s.owner, orderID, types.FieldOrderSize)
	s.Require().NoError(err)

	params := s.keeper.GetParams(s.ctx)
	s.ctx = s.ctx.WithBlockHeight(s.ctx.BlockHeight() + params.TicketTimeoutBlocks + 1)
	s.Require().NoError(s.keeper.EndBlocker(s.ctx))

	_, err = s.keeper.GetTicket(s.ctx, ticketID)
	s.Require().ErrorIs(err, types.ErrTicketNotFound)
}

func (s *DarkpoolTestSuite) TestEndBlocker_FulfilledTicketsNotPruned() {
	orderID := s.place(defaultBuy())
	ticketID, err := s.keeper.RequestDecryption(s.ctx, s.owner, orderID, types.FieldOrderSize)
	s.Require().NoError(err)
	s.Require().NoError(s.keeper.FulfillDecryption(s.ctx, s.owner, ticketID, sdkmath.NewInt(100)))

	params := s.keeper.GetParams(s.ctx)
	s.ctx = s.ctx.WithBlockHeight(s.ctx.BlockHeight() + params.TicketTimeoutBlocks + 1)
	s.Require().NoError(s.keeper.EndBlocker(s.ctx))

	ticket, err := s.keeper.GetTicket(s.ctx, ticketID)
	s.Require().NoError(err)
	s.Require().Equal(types.TicketStatusFulfilled, ticket.Status)
}

func (s *DarkpoolTestSuite) TestEndBlocker_TicketsBeforeDeadlineSurvive() {
	orderID := s.place(defaultBuy())
	ticketID, err := s.keeper.RequestDecryption(s.ctx, s.owner, orderID, types.FieldOrderSize)
	s.Require().NoError(err)

	params := s.keeper.GetParams(s.ctx)
	s.ctx = s.ctx.WithBlockHeight(s.ctx.BlockHeight() + params.TicketTimeoutBlocks - 1)
	s.Require().NoError(s.keeper.EndBlocker(s.ctx))

	_, err = s.keeper.GetTicket(s.ctx, ticketID)
	s.Require().NoError(err)
}
