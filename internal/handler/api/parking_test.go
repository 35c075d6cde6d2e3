//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"parkflow/internal/domain/charge"
	"parkflow/internal/domain/operator"
	"parkflow/internal/domain/session"
	"parkflow/internal/domain/slot"
	"parkflow/internal/handler/api"
	resdto "parkflow/internal/handler/dto/response"
	"parkflow/internal/pkg/errs"
	"parkflow/internal/testutil"
	"parkflow/internal/testutil/httptest"
	commandsmock "parkflow/internal/testutil/mock/commands"
	queriesmock "parkflow/internal/testutil/mock/queries"
	"parkflow/internal/usecase/commands"
	"parkflow/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ParkingHandlerTestSuite struct {
	suite.Suite
	router        *gin.Engine
	mockCtrl      *gomock.Controller
	mockCommands  *commandsmock.MockParkingCommands
	mockReconcile *commandsmock.MockReconcileCommands
	mockQueries   *queriesmock.MockSessionQueries
	handler       *api.ParkingHandler
}

func (s *ParkingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockParkingCommands(s.mockCtrl)
	s.mockReconcile = commandsmock.NewMockReconcileCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockSessionQueries(s.mockCtrl)
	s.handler = api.NewParkingHandler(s.mockCommands, s.mockReconcile, s.mockQueries)

	s.router.POST("/entries", fakeAuth, s.handler.Entry)
	s.router.POST("/exits", fakeAuth, s.handler.Exit)
	s.router.POST("/payments/callback", s.handler.Callback)
	s.router.GET("/payments/:reference", fakeAuth, s.handler.GetCharge)
	s.router.POST("/payments/:reference/poll", fakeAuth, s.handler.Poll)
	s.router.POST("/reconcile", fakeAuth, s.handler.Reconcile)
}

func (s *ParkingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestParkingHandlerSuite(t *testing.T) {
	suite.Run(t, new(ParkingHandlerTestSuite))
}

// ================================================================================
// TestEntry
// ================================================================================

func (s *ParkingHandlerTestSuite) TestEntry() {
	url := "/entries"
	base := map[string]any{"plate": "B 1234 XYZ", "vehicle_class": "car"}

	validation := []struct {
		name   string
		mutate func(m map[string]any)
	}{
		{name: "missing plate", mutate: testutil.Field("plate", nil)},
		{name: "missing vehicle_class", mutate: testutil.Field("vehicle_class", nil)},
		{name: "plate too long", mutate: testutil.Field("plate", strings.Repeat("A", 33))},
	}

	s.Run("success: returns 201 with the opened session", func() {
		sess := newSession("B1234XYZ", "B-01-001")
		s.mockCommands.EXPECT().HandleEntry(gomock.Any(), "B 1234 XYZ", "car").Return(sess, nil).Times(1)
		s.mockQueries.EXPECT().Get(gomock.Any(), sess.ID()).Return(sessionView(sess), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, base, "")

		var res resdto.SessionResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &res)
		s.Equal(sess.ID(), res.ID)
		s.Equal("B-01-001", res.SlotCode)
		s.Equal("active", res.State)
		s.Equal("car", res.Class)
	})

	for _, tc := range validation {
		s.Run("validation: "+tc.name, func() {
			body := testutil.DtoMap(s.T(), base, tc.mutate)
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "")
			httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
		})
	}

	s.Run("conflict: duplicate plate returns 409", func() {
		s.mockCommands.EXPECT().HandleEntry(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errs.Wrap(session.ErrDuplicateActiveSession, "plate B1234XYZ")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, base, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "already has an open session")
	})

	s.Run("conflict: full zone returns 409", func() {
		s.mockCommands.EXPECT().HandleEntry(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errs.Wrap(slot.ErrNoCapacity, "zone B")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, base, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "no free slot")
	})

	s.Run("forbidden: slot override needs admin", func() {
		body := testutil.DtoMap(s.T(), base, testutil.Field("slot_code", "B-01-002"))
		rec := performWithRole(s.T(), s.router, operator.RoleOperator, http.MethodPost, url, body)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "admin")
	})

	s.Run("success: admin places the vehicle on a named slot", func() {
		sess := newSession("B1234XYZ", "B-01-002")
		s.mockCommands.EXPECT().HandleEntryAt(gomock.Any(), "B 1234 XYZ", "car", "B-01-002").Return(sess, nil).Times(1)
		s.mockQueries.EXPECT().Get(gomock.Any(), sess.ID()).Return(sessionView(sess), nil).Times(1)

		body := testutil.DtoMap(s.T(), base, testutil.Field("slot_code", "B-01-002"))
		rec := performWithRole(s.T(), s.router, operator.RoleAdmin, http.MethodPost, url, body)

		var res resdto.SessionResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &res)
		s.Equal("B-01-002", res.SlotCode)
	})

	s.Run("internal: unexpected errors hide details", func() {
		s.mockCommands.EXPECT().HandleEntry(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errors.New("connection reset by peer")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, base, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
		s.NotContains(rec.Body.String(), "connection reset")
	})
}

// ================================================================================
// TestExit
// ================================================================================

func (s *ParkingHandlerTestSuite) TestExit() {
	url := "/exits"
	body := map[string]any{"plate": "B 1234 XYZ"}

	s.Run("success: returns 200 with the charge handle", func() {
		sess := newSession("B1234XYZ", "B-01-001")
		result := &commands.ExitResult{Session: sess, Charge: &charge.Handle{Reference: "PRK-1", Payload: "qr"}}
		s.mockCommands.EXPECT().HandleExit(gomock.Any(), "B 1234 XYZ").Return(result, nil).Times(1)
		s.mockQueries.EXPECT().Get(gomock.Any(), sess.ID()).Return(sessionView(sess), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "")

		var res resdto.ExitResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
		s.Require().NotNil(res.Charge)
		s.Equal("PRK-1", res.Charge.Reference)
		s.Equal("qr", res.Charge.Payload)
		s.Empty(res.ChargeError)
	})

	s.Run("accepted: exit succeeded but the charge was deferred", func() {
		sess := newSession("B1234XYZ", "B-01-001")
		result := &commands.ExitResult{Session: sess, ChargeErr: errs.Wrap(charge.ErrGatewayUnavailable, "status 503")}
		s.mockCommands.EXPECT().HandleExit(gomock.Any(), gomock.Any()).Return(result, nil).Times(1)
		s.mockQueries.EXPECT().Get(gomock.Any(), sess.ID()).Return(sessionView(sess), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "")

		var res resdto.ExitResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusAccepted, &res)
		s.Nil(res.Charge)
		s.Contains(res.ChargeError, "payment gateway unavailable")
		s.Require().NotNil(res.Session)
		s.Equal(sess.ID(), res.Session.ID)
	})

	s.Run("not found: no active session", func() {
		s.mockCommands.EXPECT().HandleExit(gomock.Any(), gomock.Any()).
			Return(nil, session.ErrNoActiveSession).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "no active session")
	})

	s.Run("validation: missing plate", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})
}

// ================================================================================
// TestCallback
// ================================================================================

func (s *ParkingHandlerTestSuite) TestCallback() {
	url := "/payments/callback"
	payload := []byte(`{"order_id":"PRK-1","transaction_status":"settlement"}`)

	s.Run("success: forwards the raw payload", func() {
		sess := newSession("B1234XYZ", "B-01-001")
		s.mockCommands.EXPECT().HandleCallback(gomock.Any(), payload).
			Return(&commands.Settlement{Reference: "PRK-1", Status: charge.StatusConfirmed, Session: sess}, nil).Times(1)
		s.mockQueries.EXPECT().Get(gomock.Any(), sess.ID()).Return(sessionView(sess), nil).Times(1)

		rec := httptest.PerformRawRequest(s.T(), s.router, http.MethodPost, url, payload)

		var res resdto.SettlementResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
		s.Equal("PRK-1", res.Reference)
		s.Equal("confirmed", res.Status)
		s.NotNil(res.Session)
	})

	s.Run("unauthorized: signature mismatch", func() {
		s.mockCommands.EXPECT().HandleCallback(gomock.Any(), gomock.Any()).
			Return(nil, errs.Wrap(charge.ErrInvalidCallback, "signature mismatch")).Times(1)

		rec := httptest.PerformRawRequest(s.T(), s.router, http.MethodPost, url, payload)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "failed verification")
	})

	s.Run("not found: unknown reference", func() {
		s.mockCommands.EXPECT().HandleCallback(gomock.Any(), gomock.Any()).
			Return(nil, charge.ErrChargeNotFound).Times(1)

		rec := httptest.PerformRawRequest(s.T(), s.router, http.MethodPost, url, payload)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "charge not found")
	})
}

// ================================================================================
// TestPoll
// ================================================================================

func (s *ParkingHandlerTestSuite) TestPoll() {
	s.Run("success: returns the gateway status", func() {
		s.mockCommands.EXPECT().PollAndSettle(gomock.Any(), "PRK-1").Return(charge.StatusPending, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/payments/PRK-1/poll", nil, "")

		var res resdto.SettlementResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
		s.Equal("pending", res.Status)
	})

	s.Run("bad gateway: gateway unreachable", func() {
		s.mockCommands.EXPECT().PollAndSettle(gomock.Any(), "PRK-1").
			Return(charge.Status(""), errs.Wrap(charge.ErrGatewayUnavailable, "timeout")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/payments/PRK-1/poll", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadGateway, "unavailable")
	})
}

func (s *ParkingHandlerTestSuite) TestGetCharge() {
	s.Run("success", func() {
		s.mockQueries.EXPECT().Charge(gomock.Any(), "PRK-1").
			Return(&queries.ChargeView{Reference: "PRK-1", Amount: "10000", Currency: "IDR", Status: "pending", Attempts: 1}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/payments/PRK-1", nil, "")

		var res resdto.ChargeResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
		s.Equal("10000", res.Amount)
		s.Equal(1, res.Attempts)
	})

	s.Run("not found", func() {
		s.mockQueries.EXPECT().Charge(gomock.Any(), "PRK-404").Return(nil, charge.ErrChargeNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/payments/PRK-404", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "")
	})
}

func (s *ParkingHandlerTestSuite) TestReconcile() {
	s.mockReconcile.EXPECT().ReconcilePending(gomock.Any()).
		Return(commands.ReconcileReport{ChargesRetried: 2, ChargesPolled: 3, Resolved: 1}, nil).Times(1)

	rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/reconcile", nil, "")

	var res resdto.ReconcileResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
	s.Equal(2, res.ChargesRetried)
	s.Equal(3, res.ChargesPolled)
	s.Equal(1, res.Resolved)
}
