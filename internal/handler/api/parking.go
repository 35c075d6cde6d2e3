package api

import (
	"io"
	"net/http"

	"parkflow/internal/domain/operator"
	"parkflow/internal/domain/session"
	reqdto "parkflow/internal/handler/dto/request"
	resdto "parkflow/internal/handler/dto/response"
	"parkflow/internal/handler/httperr"
	"parkflow/internal/handler/middleware"
	"parkflow/internal/usecase/commands"
	"parkflow/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxCallbackBytes = 64 << 10

type ParkingHandler struct {
	cmds      commands.ParkingCommands
	reconcile commands.ReconcileCommands
	sessions  queries.SessionQueries
}

func NewParkingHandler(cmds commands.ParkingCommands, reconcile commands.ReconcileCommands, sessions queries.SessionQueries) *ParkingHandler {
	return &ParkingHandler{cmds: cmds, reconcile: reconcile, sessions: sessions}
}

// @Summary Register vehicle entry
// @Description Allocate a slot for the vehicle and open a parking session. Supplying slot_code requires the admin role.
// @Tags parking
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.EntryRequest true "Entry request"
// @Success 201 {object} resdto.SessionResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/entries [post]
func (h *ParkingHandler) Entry(c *gin.Context) {
	var req reqdto.EntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	ctx := c.Request.Context()
	var (
		s   *session.Session
		err error
	)
	if req.SlotCode != "" {
		if role, ok := middleware.GetRole(c); !ok || !role.AtLeast(operator.RoleAdmin) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": gin.H{"message": "Slot override requires admin role"}})
			return
		}
		s, err = h.cmds.HandleEntryAt(ctx, req.Plate, req.VehicleClass, req.SlotCode)
	} else {
		s, err = h.cmds.HandleEntry(ctx, req.Plate, req.VehicleClass)
	}
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	h.respondSession(c, http.StatusCreated, s.ID())
}

// @Summary Register vehicle exit
// @Description Close the plate's session, vacate its slot, compute the fee and issue a payment charge. Returns 202 when the exit succeeded but the charge could not be issued yet.
// @Tags parking
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.ExitRequest true "Exit request"
// @Success 200 {object} resdto.ExitResponse
// @Success 202 {object} resdto.ExitResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/exits [post]
func (h *ParkingHandler) Exit(c *gin.Context) {
	var req reqdto.ExitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	result, err := h.cmds.HandleExit(c.Request.Context(), req.Plate)
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	view, err := h.sessions.Get(c.Request.Context(), result.Session.ID())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	session, err := resdto.FromSessionView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to build response", nil)
		return
	}

	res := resdto.ExitResponse{Session: session, Charge: resdto.FromChargeHandle(result.Charge)}
	status := http.StatusOK
	if result.ChargeErr != nil {
		res.ChargeError = result.ChargeErr.Error()
		status = http.StatusAccepted
	}
	c.JSON(status, res)
}

// @Summary Payment gateway notification
// @Description Signed status notification from the QRIS gateway. Unverified notifications are rejected and change nothing.
// @Tags payments
// @Accept json
// @Produce json
// @Success 200 {object} resdto.SettlementResponse
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/payments/callback [post]
func (h *ParkingHandler) Callback(c *gin.Context) {
	payload, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxCallbackBytes))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	settlement, err := h.cmds.HandleCallback(c.Request.Context(), payload)
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	res := resdto.SettlementResponse{Reference: settlement.Reference, Status: settlement.Status.String()}
	if view, err := h.sessions.Get(c.Request.Context(), settlement.Session.ID()); err == nil {
		res.Session, _ = resdto.FromSessionView(view)
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Poll charge status
// @Description Query the gateway for the charge status and settle the session when confirmed
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param reference path string true "Charge reference"
// @Success 200 {object} resdto.SettlementResponse
// @Failure 404 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /api/payments/{reference}/poll [post]
func (h *ParkingHandler) Poll(c *gin.Context) {
	ref := c.Param("reference")
	status, err := h.cmds.PollAndSettle(c.Request.Context(), ref)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.SettlementResponse{Reference: ref, Status: status.String()})
}

// @Summary Get charge
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param reference path string true "Charge reference"
// @Success 200 {object} resdto.ChargeResponse
// @Failure 404 {object} httperr.Response
// @Router /api/payments/{reference} [get]
func (h *ParkingHandler) GetCharge(c *gin.Context) {
	view, err := h.sessions.Charge(c.Request.Context(), c.Param("reference"))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	res, err := resdto.FromChargeView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to build response", nil)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Run a reconciliation pass
// @Description Issue deferred charges and poll stale pending charges now instead of waiting for the worker
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.ReconcileResponse
// @Router /api/reconcile [post]
func (h *ParkingHandler) Reconcile(c *gin.Context) {
	report, err := h.reconcile.ReconcilePending(c.Request.Context())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	res, err := resdto.FromReconcileReport(report)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to build response", nil)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *ParkingHandler) respondSession(c *gin.Context, status int, id uuid.UUID) {
	view, err := h.sessions.Get(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load session", nil)
		return
	}
	res, err := resdto.FromSessionView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to build response", nil)
		return
	}
	c.JSON(status, res)
}
