package api

import (
	"net/http"

	reqdto "parkflow/internal/handler/dto/request"
	resdto "parkflow/internal/handler/dto/response"
	"parkflow/internal/handler/httperr"
	"parkflow/internal/usecase/commands"
	"parkflow/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type SlotHandler struct {
	cmds    commands.SlotCommands
	queries queries.SlotQueries
}

func NewSlotHandler(cmds commands.SlotCommands, queries queries.SlotQueries) *SlotHandler {
	return &SlotHandler{cmds: cmds, queries: queries}
}

// @Summary List slots
// @Tags slots
// @Produce json
// @Security BearerAuth
// @Param zone query string false "Zone"
// @Param level query int false "Level"
// @Param state query string false "Slot state" Enums(free, occupied)
// @Success 200 {array} resdto.SlotResponse
// @Failure 400 {object} httperr.Response
// @Router /api/slots [get]
func (h *SlotHandler) List(c *gin.Context) {
	var q reqdto.ListSlotsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return
	}

	views, err := h.queries.List(c.Request.Context(), q.ToFilters())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	res, err := resdto.FromSlotViews(views)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to build response", nil)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Occupancy summary
// @Description Free and occupied slot counts per zone
// @Tags slots
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.OccupancyResponse
// @Router /api/slots/summary [get]
func (h *SlotHandler) Summary(c *gin.Context) {
	view, err := h.queries.Summary(c.Request.Context())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	res, err := resdto.FromOccupancyView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to build response", nil)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Get slot
// @Tags slots
// @Produce json
// @Security BearerAuth
// @Param code path string true "Slot code"
// @Success 200 {object} resdto.SlotResponse
// @Failure 404 {object} httperr.Response
// @Router /api/slots/{code} [get]
func (h *SlotHandler) Get(c *gin.Context) {
	view, err := h.queries.Get(c.Request.Context(), c.Param("code"))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	h.respond(c, http.StatusOK, view)
}

// @Summary Register slot
// @Tags slots
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateSlotRequest true "Slot"
// @Success 201 {object} resdto.SlotResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/slots [post]
func (h *SlotHandler) Create(c *gin.Context) {
	var req reqdto.CreateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	s, err := h.cmds.RegisterSlot(c.Request.Context(), req.Code, req.Zone, *req.Level)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	view, err := h.queries.Get(c.Request.Context(), s.Code())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	h.respond(c, http.StatusCreated, view)
}

// @Summary Remove slot
// @Description Only free slots can be removed
// @Tags slots
// @Security BearerAuth
// @Param code path string true "Slot code"
// @Success 204
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/slots/{code} [delete]
func (h *SlotHandler) Delete(c *gin.Context) {
	if err := h.cmds.RemoveSlot(c.Request.Context(), c.Param("code")); err != nil {
		httperr.Abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *SlotHandler) respond(c *gin.Context, status int, view *queries.SlotView) {
	res, err := resdto.FromSlotView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to build response", nil)
		return
	}
	c.JSON(status, res)
}
