package components

import (
	"parkflow/internal/handler"
	"parkflow/internal/handler/api"
	"parkflow/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewParkingHandler,
		api.NewSessionHandler,
		api.NewSlotHandler,
		handler.NewHandlers,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
