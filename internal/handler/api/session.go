package api

import (
	"net/http"

	reqdto "parkflow/internal/handler/dto/request"
	resdto "parkflow/internal/handler/dto/response"
	"parkflow/internal/handler/httperr"
	"parkflow/internal/usecase/commands"
	"parkflow/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SessionHandler struct {
	cmds    commands.ParkingCommands
	queries queries.SessionQueries
}

func NewSessionHandler(cmds commands.ParkingCommands, queries queries.SessionQueries) *SessionHandler {
	return &SessionHandler{cmds: cmds, queries: queries}
}

// @Summary List sessions
// @Description Keyset-paginated session list ordered by entry time
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Param state query string false "Session state" Enums(active, pending_payment, paid, cancelled)
// @Param flagged query bool false "Only sessions needing follow-up"
// @Param limit query int false "Page size (max 200)"
// @Param after query string false "Cursor from a previous page"
// @Success 200 {object} resdto.SessionListResponse
// @Failure 400 {object} httperr.Response
// @Router /api/sessions [get]
func (h *SessionHandler) List(c *gin.Context) {
	var q reqdto.ListSessionsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return
	}

	filters, after := q.ToFilters()
	items, next, err := h.queries.List(c.Request.Context(), filters, after, q.Limit)
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	res, err := resdto.FromSessionList(items, next)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to build response", nil)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Get session
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Success 200 {object} resdto.SessionResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/sessions/{id} [get]
func (h *SessionHandler) Get(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	view, err := h.queries.Get(c.Request.Context(), id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	respondView(c, http.StatusOK, view)
}

// @Summary Find the open session for a plate
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Param plate query string true "Licence plate"
// @Success 200 {object} resdto.SessionResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/sessions/active [get]
func (h *SessionHandler) Active(c *gin.Context) {
	plate := c.Query("plate")
	if plate == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "plate is required"}})
		return
	}
	view, err := h.queries.ActiveByPlate(c.Request.Context(), plate)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	respondView(c, http.StatusOK, view)
}

// @Summary Retry the payment charge
// @Description Issue the charge for a pending-payment session again. An existing pending charge is returned unchanged.
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Success 200 {object} resdto.ChargeHandleResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /api/sessions/{id}/charge [post]
func (h *SessionHandler) RetryCharge(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	handle, err := h.cmds.RetryCharge(c.Request.Context(), id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromChargeHandle(&handle))
}

// @Summary Cancel a session
// @Description Administrative cancellation. Releases the slot if the session still holds one.
// @Tags sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Param request body reqdto.CancelSessionRequest true "Cancellation reason"
// @Success 200 {object} resdto.SessionResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/sessions/{id}/cancel [post]
func (h *SessionHandler) Cancel(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var req reqdto.CancelSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	if _, err := h.cmds.CancelSession(c.Request.Context(), id, req.Reason); err != nil {
		httperr.Abort(c, err)
		return
	}
	view, err := h.queries.Get(c.Request.Context(), id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	respondView(c, http.StatusOK, view)
}

func sessionID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid session ID", nil)
		return uuid.Nil, false
	}
	return id, true
}

func respondView(c *gin.Context, status int, view *queries.SessionView) {
	res, err := resdto.FromSessionView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to build response", nil)
		return
	}
	c.JSON(status, res)
}
