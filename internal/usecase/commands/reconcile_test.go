//go:build unit

package commands_test

import (
	"context"
	"time"

	"parkflow/internal/domain/charge"
	"parkflow/internal/domain/session"
	"parkflow/internal/usecase/commands"
)

func (s *ParkingTestSuite) TestReconcile_IssuesDeferredCharge() {
	entered, err := s.parking.HandleEntry(s.ctx, "B1234XY", "car")
	s.Require().NoError(err)
	s.stub.set(func(q *qrisStub) { q.failCharges = true })
	_, err = s.parking.HandleExit(s.ctx, "B1234XY")
	s.Require().NoError(err)

	// gateway still down: counted as a failure, session untouched
	report, err := s.reconcile.ReconcilePending(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, report.ChargesRetried)
	s.Equal(1, report.Failures)

	s.stub.set(func(q *qrisStub) { q.failCharges = false })
	report, err = s.reconcile.ReconcilePending(s.ctx)
	s.Require().NoError(err)
	s.Equal(commands.ReconcileReport{ChargesRetried: 1}, report)

	current, err := s.sessions.Get(s.ctx, entered.ID())
	s.Require().NoError(err)
	s.NotEmpty(current.ChargeRef())
	s.False(current.Flagged())

	// nothing left to issue
	report, err = s.reconcile.ReconcilePending(s.ctx)
	s.Require().NoError(err)
	s.Zero(report.ChargesRetried)
}

func (s *ParkingTestSuite) TestReconcile_PollsStaleCharges() {
	_, err := s.parking.HandleEntry(s.ctx, "B1234XY", "car")
	s.Require().NoError(err)
	result, err := s.parking.HandleExit(s.ctx, "B1234XY")
	s.Require().NoError(err)
	s.Require().NotNil(result.Charge)

	// too fresh to poll
	report, err := s.reconcile.ReconcilePending(s.ctx)
	s.Require().NoError(err)
	s.Zero(report.ChargesPolled)

	s.clock.Add(3 * time.Minute)
	s.stub.set(func(q *qrisStub) { q.status = "settlement" })
	report, err = s.reconcile.ReconcilePending(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, report.ChargesPolled)
	s.Equal(1, report.Resolved)

	current, err := s.sessions.Get(s.ctx, result.Session.ID())
	s.Require().NoError(err)
	s.Equal(session.StatePaid, current.State())

	stored, err := s.charges.Get(s.ctx, result.Charge.Reference)
	s.Require().NoError(err)
	s.Equal(charge.StatusConfirmed, stored.Status())
}

func (s *ParkingTestSuite) TestReconcile_SkipsPaymentFailures() {
	_, err := s.parking.HandleEntry(s.ctx, "B1234XY", "car")
	s.Require().NoError(err)
	s.stub.set(func(q *qrisStub) { q.rejectNext = true })
	_, err = s.parking.HandleExit(s.ctx, "B1234XY")
	s.Require().NoError(err)

	report, err := s.reconcile.ReconcilePending(s.ctx)
	s.Require().NoError(err)
	s.Zero(report.ChargesRetried)
}

func (s *ParkingTestSuite) TestReconcile_StopsOnCancelledContext() {
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()

	_, err := s.parking.HandleEntry(s.ctx, "B1234XY", "car")
	s.Require().NoError(err)
	s.stub.set(func(q *qrisStub) { q.failCharges = true })
	_, err = s.parking.HandleExit(s.ctx, "B1234XY")
	s.Require().NoError(err)

	_, err = s.reconcile.ReconcilePending(ctx)
	s.ErrorIs(err, context.Canceled)
}
