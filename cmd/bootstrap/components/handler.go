package components

import (
	"fuel-quota-service/internal/handler"
	"fuel-quota-service/internal/handler/api"
	"fuel-quota-service/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewQuotaHandler,
		api.NewDispenseHandler,
		api.NewTransactionHandler,
		api.NewReportHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
