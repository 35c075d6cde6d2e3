//go:build unit

package api_test

import (
	"bytes"
	"encoding/json"
	nethttptest "net/http/httptest"
	"testing"
	"time"

	"parkflow/internal/domain/operator"
	"parkflow/internal/domain/session"
	"parkflow/internal/domain/vehicle"
	"parkflow/internal/handler/middleware"
	"parkflow/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

const roleHeader = "X-Test-Role"

// fakeAuth stands in for token validation; the role comes from a test header.
func fakeAuth(c *gin.Context) {
	role := operator.Role(c.GetHeader(roleHeader))
	if role == "" {
		role = operator.RoleOperator
	}
	middleware.SetIdentity(c, uuid.New(), role)
	c.Next()
}

func newSession(plate, slotCode string) *session.Session {
	s, err := session.NewSession(session.OpenParams{
		Plate:    vehicle.Plate(plate),
		Class:    vehicle.ClassCar,
		SlotCode: slotCode,
	}, time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC))
	if err != nil {
		panic(err)
	}
	return s
}

func sessionView(s *session.Session) *queries.SessionView {
	return &queries.SessionView{
		ID:        s.ID(),
		Plate:     s.Plate().String(),
		Class:     s.Class().String(),
		SlotCode:  s.SlotCode(),
		State:     s.State().String(),
		EntryAt:   s.EntryAt(),
		CreatedAt: s.EntryAt(),
		UpdatedAt: s.EntryAt(),
	}
}

func performWithRole(t *testing.T, router *gin.Engine, role operator.Role, method, path string, body any) *nethttptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := nethttptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(roleHeader, string(role))

	w := nethttptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}
