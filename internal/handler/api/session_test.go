//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"parkflow/internal/domain/charge"
	"parkflow/internal/domain/session"
	"parkflow/internal/handler/api"
	resdto "parkflow/internal/handler/dto/response"
	"parkflow/internal/pkg/errs"
	"parkflow/internal/testutil/httptest"
	commandsmock "parkflow/internal/testutil/mock/commands"
	queriesmock "parkflow/internal/testutil/mock/queries"
	"parkflow/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type SessionHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockParkingCommands
	mockQueries  *queriesmock.MockSessionQueries
	handler      *api.SessionHandler
}

func (s *SessionHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockParkingCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockSessionQueries(s.mockCtrl)
	s.handler = api.NewSessionHandler(s.mockCommands, s.mockQueries)

	s.router.GET("/sessions", fakeAuth, s.handler.List)
	s.router.GET("/sessions/active", fakeAuth, s.handler.Active)
	s.router.GET("/sessions/:id", fakeAuth, s.handler.Get)
	s.router.POST("/sessions/:id/charge", fakeAuth, s.handler.RetryCharge)
	s.router.POST("/sessions/:id/cancel", fakeAuth, s.handler.Cancel)
}

func (s *SessionHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestSessionHandlerSuite(t *testing.T) {
	suite.Run(t, new(SessionHandlerTestSuite))
}

func (s *SessionHandlerTestSuite) TestList() {
	s.Run("success: passes filters and returns the next cursor", func() {
		state := "pending_payment"
		items := []*queries.SessionListItem{{ID: uuid.New(), Plate: "B1234XYZ", Class: "car", SlotCode: "B-01-001", State: state}}
		expected := queries.SessionFilters{State: &state, FlaggedOnly: true}
		s.mockQueries.EXPECT().List(gomock.Any(), expected, &queries.Cursor{After: "abc"}, 10).
			Return(items, &queries.Cursor{After: "next"}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/sessions?state=pending_payment&flagged=true&limit=10&after=abc", nil, "")

		var res resdto.SessionListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
		s.Require().Len(res.Items, 1)
		s.Equal("B1234XYZ", res.Items[0].Plate)
		s.Equal("car", res.Items[0].Class)
		s.Equal("next", res.NextCursor)
	})

	s.Run("success: empty page has no cursor", func() {
		s.mockQueries.EXPECT().List(gomock.Any(), queries.SessionFilters{}, gomock.Nil(), 0).
			Return(nil, nil, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/sessions", nil, "")

		var res resdto.SessionListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
		s.Empty(res.Items)
		s.Empty(res.NextCursor)
	})

	s.Run("validation: limit above maximum", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/sessions?limit=500", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid query")
	})

	s.Run("validation: malformed cursor", func() {
		s.mockQueries.EXPECT().List(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, nil, errs.Wrap(queries.ErrInvalidCursor, "decode")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/sessions?after=bogus", nil, "")
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

func (s *SessionHandlerTestSuite) TestGet() {
	s.Run("success", func() {
		sess := newSession("B1234XYZ", "B-01-001")
		view := sessionView(sess)
		view.Charges = []queries.ChargeView{{Reference: "PRK-1", Amount: "10000", Currency: "IDR", Status: "pending"}}
		s.mockQueries.EXPECT().Get(gomock.Any(), sess.ID()).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/sessions/"+sess.ID().String(), nil, "")

		var res resdto.SessionResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
		s.Require().Len(res.Charges, 1)
		s.Equal("PRK-1", res.Charges[0].Reference)
	})

	s.Run("validation: malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/sessions/not-a-uuid", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid session ID")
	})

	s.Run("not found", func() {
		id := uuid.New()
		s.mockQueries.EXPECT().Get(gomock.Any(), id).Return(nil, session.ErrSessionNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/sessions/"+id.String(), nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "session not found")
	})
}

func (s *SessionHandlerTestSuite) TestActive() {
	s.Run("success", func() {
		sess := newSession("B1234XYZ", "B-01-001")
		s.mockQueries.EXPECT().ActiveByPlate(gomock.Any(), "b 1234 xyz").Return(sessionView(sess), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/sessions/active?plate=b+1234+xyz", nil, "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("validation: plate is required", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/sessions/active", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "plate is required")
	})
}

func (s *SessionHandlerTestSuite) TestRetryCharge() {
	id := uuid.New()
	url := "/sessions/" + id.String() + "/charge"

	s.Run("success", func() {
		s.mockCommands.EXPECT().RetryCharge(gomock.Any(), id).
			Return(charge.Handle{Reference: "PRK-2", Payload: "qr"}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "")

		var res resdto.ChargeHandleResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
		s.Equal("PRK-2", res.Reference)
	})

	s.Run("conflict: session still active", func() {
		s.mockCommands.EXPECT().RetryCharge(gomock.Any(), id).
			Return(charge.Handle{}, session.ErrSessionNotPending).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "not awaiting payment")
	})

	s.Run("bad gateway: gateway still down", func() {
		s.mockCommands.EXPECT().RetryCharge(gomock.Any(), id).
			Return(charge.Handle{}, errs.Wrap(charge.ErrGatewayUnavailable, "status 503")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "")
		s.Equal(http.StatusBadGateway, rec.Code)
	})
}

func (s *SessionHandlerTestSuite) TestCancel() {
	sess := newSession("B1234XYZ", "B-01-001")
	url := "/sessions/" + sess.ID().String() + "/cancel"

	s.Run("success", func() {
		view := sessionView(sess)
		view.State = "cancelled"
		s.mockCommands.EXPECT().CancelSession(gomock.Any(), sess.ID(), "towed").Return(sess, nil).Times(1)
		s.mockQueries.EXPECT().Get(gomock.Any(), sess.ID()).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"reason": "towed"}, "")

		var res resdto.SessionResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
		s.Equal("cancelled", res.State)
	})

	s.Run("validation: reason is required", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})

	s.Run("conflict: already paid", func() {
		s.mockCommands.EXPECT().CancelSession(gomock.Any(), sess.ID(), gomock.Any()).
			Return(nil, errs.Wrap(session.ErrInvalidTransition, "paid -> cancelled")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"reason": "towed"}, "")
		s.Equal(http.StatusConflict, rec.Code)
	})
}
