package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"fuel-quota-service/internal/domain/auth"
	"fuel-quota-service/internal/handler/api"
	"fuel-quota-service/internal/handler/middleware"
	"fuel-quota-service/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	quotaHandler *api.QuotaHandler,
	dispenseHandler *api.DispenseHandler,
	transactionHandler *api.TransactionHandler,
	reportHandler *api.ReportHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, quotaHandler, dispenseHandler, transactionHandler, reportHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	quotaHandler *api.QuotaHandler,
	dispenseHandler *api.DispenseHandler,
	transactionHandler *api.TransactionHandler,
	reportHandler *api.ReportHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	apiGroup.Use(authMiddleware.RequireAuth())
	{
		quota := apiGroup.Group("/quota")
		quota.Use(authMiddleware.RequireCapability(auth.CapViewQuota))
		{
			addRoutes(quota, []route{
				{Method: http.MethodGet, Path: "/by-registration/:registration", Handler: quotaHandler.GetQuotaByRegistration},
				{Method: http.MethodGet, Path: "/:vehicleId", Handler: quotaHandler.GetQuota},
			})
		}

		dispense := apiGroup.Group("")
		dispense.Use(authMiddleware.RequireCapability(auth.CapDispense))
		{
			addRoutes(dispense, []route{
				{Method: http.MethodPost, Path: "/dispense", Handler: dispenseHandler.RecordDispense},
				{Method: http.MethodPatch, Path: "/transactions/:id/delivered", Handler: dispenseHandler.MarkDelivered},
				{Method: http.MethodGet, Path: "/transactions", Handler: transactionHandler.ListTransactions},
				{Method: http.MethodGet, Path: "/transactions/:id", Handler: transactionHandler.GetTransaction},
			})
		}

		reports := apiGroup.Group("/reports")
		reports.Use(authMiddleware.RequireCapability(auth.CapViewReports))
		{
			addRoutes(reports, []route{
				{Method: http.MethodGet, Path: "/consumption", Handler: reportHandler.Consumption},
				{Method: http.MethodGet, Path: "/stations", Handler: reportHandler.StationPerformance},
				{Method: http.MethodGet, Path: "/stations/:id", Handler: reportHandler.StationStats},
				{Method: http.MethodGet, Path: "/top-consumers", Handler: reportHandler.TopConsumers},
				{Method: http.MethodGet, Path: "/trends", Handler: reportHandler.UsageTrends},
				{Method: http.MethodGet, Path: "/utilization", Handler: reportHandler.Utilization},
			})
		}

		quotas := apiGroup.Group("/quotas")
		quotas.Use(authMiddleware.RequireCapability(auth.CapManageQuotas))
		{
			addRoutes(quotas, []route{
				{Method: http.MethodPost, Path: "/:vehicleId/rollover", Handler: quotaHandler.Rollover},
				{Method: http.MethodPost, Path: "/bulk-allocate", Handler: quotaHandler.BulkAllocate},
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
