package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"parkflow/internal/domain/operator"
	"parkflow/internal/handler/api"
	"parkflow/internal/handler/middleware"
	"parkflow/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Parking *api.ParkingHandler
	Session *api.SessionHandler
	Slot    *api.SlotHandler
}

func NewHandlers(parking *api.ParkingHandler, session *api.SessionHandler, slot *api.SlotHandler) Handlers {
	return Handlers{Parking: parking, Session: session, Slot: slot}
}

func NewRouter(engine *gin.Engine, cfg config.Config, logger *middleware.Logger, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, h, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *middleware.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	slogger := logger.GetSlogLogger()
	engine.Use(middleware.CustomRecovery(slogger))
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS, slogger))
	engine.Use(logger.LoggingMiddleware())
	engine.Use(middleware.ErrorHandler(slogger))
}

func setupRoutes(engine *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	operatorOnly := authMiddleware.RequireRoleAtLeast(operator.RoleOperator)
	adminOnly := authMiddleware.RequireRoleAtLeast(operator.RoleAdmin)

	apiGroup := engine.Group("/api")
	{
		// gateway notifications are authenticated by signature, not token
		addRoutes(apiGroup, []route{
			{Method: http.MethodPost, Path: "/payments/callback", Handler: h.Parking.Callback},
		})

		authed := apiGroup.Group("")
		authed.Use(authMiddleware.RequireAuth())
		addRoutes(authed, []route{
			{Method: http.MethodPost, Path: "/entries", Handler: h.Parking.Entry, Mw: []gin.HandlerFunc{operatorOnly}},
			{Method: http.MethodPost, Path: "/exits", Handler: h.Parking.Exit, Mw: []gin.HandlerFunc{operatorOnly}},
			{Method: http.MethodGet, Path: "/payments/:reference", Handler: h.Parking.GetCharge},
			{Method: http.MethodPost, Path: "/payments/:reference/poll", Handler: h.Parking.Poll, Mw: []gin.HandlerFunc{operatorOnly}},
			{Method: http.MethodPost, Path: "/reconcile", Handler: h.Parking.Reconcile, Mw: []gin.HandlerFunc{adminOnly}},
		})

		sessions := authed.Group("/sessions")
		{
			addRoutes(sessions, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Session.List},
				{Method: http.MethodGet, Path: "/active", Handler: h.Session.Active},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Session.Get},
				{Method: http.MethodPost, Path: "/:id/charge", Handler: h.Session.RetryCharge, Mw: []gin.HandlerFunc{operatorOnly}},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: h.Session.Cancel, Mw: []gin.HandlerFunc{adminOnly}},
			})
		}

		slots := authed.Group("/slots")
		{
			addRoutes(slots, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Slot.List},
				{Method: http.MethodGet, Path: "/summary", Handler: h.Slot.Summary},
				{Method: http.MethodGet, Path: "/:code", Handler: h.Slot.Get},
				{Method: http.MethodPost, Path: "", Handler: h.Slot.Create, Mw: []gin.HandlerFunc{adminOnly}},
				{Method: http.MethodDelete, Path: "/:code", Handler: h.Slot.Delete, Mw: []gin.HandlerFunc{adminOnly}},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
