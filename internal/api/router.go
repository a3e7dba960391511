package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	_ "github.com/brewline/cafe-pos/docs"
	"github.com/brewline/cafe-pos/internal/api/handler"
	"github.com/brewline/cafe-pos/internal/api/middleware"
	"github.com/brewline/cafe-pos/internal/core/ports"
	"github.com/brewline/cafe-pos/internal/core/service"
)

// Services holds everything the HTTP layer delegates to.
type Services struct {
	Tokens    *service.TokenService
	Auth      *service.AuthService
	Users     *service.UserService
	Outlets   *service.OutletService
	Resolver  *service.OutletResolver
	Menu      *service.MenuService
	Orders    *service.OrderService
	Inventory *service.InventoryService
	Sales     *service.SaleService
	Expenses  *service.ExpenseService
	Online    *service.OnlineSaleService
	Loyalty   *service.LoyaltyService
	Offers    *service.OfferService
	Forecasts *service.ForecastService
	Recons    *service.ReconciliationService
	CSRF      *service.CSRFService
	APIKeys   *service.APIKeyService
	Audit     *service.AuditService

	UserRepo   ports.UserRepository
	AuditQueue middleware.AuditQueue
	Health     map[string]handler.Pinger
}

// Options tunes the global middleware.
type Options struct {
	Logger       zerolog.Logger
	RateLimitRPS float64
	// Registry receives the HTTP metrics; nil means the default registry.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(s Services, opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(opts.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(opts.Logger))
	e.Use(httpMetrics(opts.Registry))
	if opts.RateLimitRPS > 0 {
		e.Use(echomiddleware.RateLimiter(echomiddleware.NewRateLimiterMemoryStore(rate.Limit(opts.RateLimitRPS))))
	}

	// --- Ops ---
	health := handler.NewHealthHandler(s.Health)
	e.GET("/health", health.Liveness)
	e.GET("/health/ready", health.Readiness)
	e.GET("/metrics", metricsHandler(opts.Registry))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	gate := middleware.NewGate(s.Tokens, s.UserRepo)
	authed := middleware.Require(gate, middleware.Authenticated)
	admin := middleware.Require(gate, middleware.Admin)
	staff := middleware.Require(gate, middleware.AdminOrManager)
	read := middleware.OutletRead(s.Resolver)
	write := middleware.OutletWrite(s.Resolver)

	api := e.Group("/api")
	if s.AuditQueue != nil {
		api.Use(middleware.Audit(s.AuditQueue))
	}

	// --- Auth ---
	auth := handler.NewAuthHandler(s.Auth)
	api.POST("/auth/register", auth.Register)
	api.POST("/auth/login", auth.Login)
	api.GET("/auth/me", auth.Me, authed)

	// --- Users ---
	users := handler.NewUserHandler(s.Users)
	api.GET("/users", users.List, admin)
	api.PUT("/users/:id/role", users.SetRole, admin)
	api.PUT("/users/:id/outlets", users.SetOutlets, admin)
	api.PUT("/users/:id/active", users.SetActive, admin)

	// --- Outlets ---
	outlets := handler.NewOutletHandler(s.Outlets)
	api.GET("/outlets", outlets.List, authed)
	api.POST("/outlets", outlets.Create, admin)
	api.PUT("/outlets/:id", outlets.Update, admin)
	api.DELETE("/outlets/:id", outlets.Delete, admin)

	// --- Categories & menu ---
	menu := handler.NewMenuHandler(s.Menu)
	api.GET("/categories", menu.ListCategories)
	api.POST("/categories", menu.CreateCategory, staff, write)
	api.PUT("/categories/:id", menu.UpdateCategory, staff, write)
	api.DELETE("/categories/:id", menu.DeleteCategory, staff, write)

	api.GET("/menu", menu.ListItems)
	api.GET("/menu/performance", menu.Performance, staff, read)
	api.GET("/menu/:id", menu.GetItem)
	api.POST("/menu", menu.CreateItem, staff, write)
	api.PUT("/menu/:id", menu.UpdateItem, staff, write)
	api.PATCH("/menu/:id/availability", menu.SetAvailability, staff, write)
	api.DELETE("/menu/:id", menu.DeleteItem, staff, write)

	api.GET("/integrations/menu", menu.IntegrationMenu, middleware.APIKey(s.APIKeys))

	// --- Orders ---
	orders := handler.NewOrderHandler(s.Orders)
	api.POST("/orders", orders.Create, authed, middleware.OutletOrder(s.Resolver))
	api.GET("/orders/my", orders.Mine, authed)
	api.GET("/orders", orders.List, staff, read)
	api.GET("/orders/:id", orders.Get, authed)
	api.PUT("/orders/:id/status", orders.UpdateStatus, staff, read)

	// --- Inventory ---
	inventory := handler.NewInventoryHandler(s.Inventory)
	inv := api.Group("/inventory", staff)
	inv.GET("", inventory.List, read)
	inv.GET("/low-stock", inventory.LowStock, read)
	inv.POST("", inventory.Create, write)
	inv.PUT("/:id", inventory.Update, write)
	inv.DELETE("/:id", inventory.Delete, write)
	inv.POST("/:id/stock-in", inventory.StockIn, write)
	inv.POST("/:id/stock-out", inventory.StockOut, write)
	inv.GET("/:id/transactions", inventory.Transactions, read)

	// --- Sales ---
	sales := handler.NewSaleHandler(s.Sales)
	api.POST("/sales", sales.Create, staff, write)
	api.GET("/sales", sales.List, staff, read)
	api.GET("/sales/daily-income", sales.DailyIncome, staff, read)
	api.POST("/sales/import", sales.Import, staff, write)
	api.GET("/sales/:id", sales.Get, staff, read)
	api.DELETE("/sales/:id", sales.Delete, admin)

	// --- Expenses ---
	expenses := handler.NewExpenseHandler(s.Expenses)
	exp := api.Group("/expenses", staff)
	exp.POST("", expenses.Create, write)
	exp.GET("", expenses.List, read)
	exp.GET("/summary", expenses.Summary, read)
	exp.GET("/template", expenses.Template)
	exp.POST("/import", expenses.Import, write)
	exp.PUT("/:id", expenses.Update, write)
	exp.DELETE("/:id", expenses.Delete, write)

	// --- Loyalty ---
	loyalty := handler.NewLoyaltyHandler(s.Loyalty)
	api.GET("/loyalty/me", loyalty.Me, authed)
	api.POST("/loyalty/redeem", loyalty.Redeem, authed)
	api.GET("/loyalty/:userId", loyalty.Get, staff)
	api.POST("/loyalty/:userId/adjust", loyalty.Adjust, admin)

	// --- Offers ---
	offers := handler.NewOfferHandler(s.Offers)
	api.GET("/offers", offers.ListActive)
	api.GET("/offers/all", offers.ListAll, staff)
	api.POST("/offers/validate", offers.Validate, authed)
	api.POST("/offers", offers.Create, staff, write)
	api.PUT("/offers/:id", offers.Update, staff, write)
	api.DELETE("/offers/:id", offers.Delete, staff, write)

	// --- Online sales ---
	online := handler.NewOnlineSaleHandler(s.Online)
	onl := api.Group("/online-sales", staff)
	onl.POST("", online.Create, write)
	onl.GET("", online.List, read)
	onl.GET("/reconciliation", online.Reconciliation, read)
	onl.POST("/import", online.Import, write)
	onl.PUT("/:id/status", online.SetStatus, write)

	// --- Price forecasts ---
	forecasts := handler.NewForecastHandler(s.Forecasts)
	fc := api.Group("/forecasts", staff)
	fc.POST("", forecasts.Create, write)
	fc.GET("", forecasts.List, read)
	fc.GET("/:id", forecasts.Get, read)
	fc.DELETE("/:id", forecasts.Delete, write)

	// --- Cash reconciliation ---
	recons := handler.NewReconciliationHandler(s.Recons)
	rc := api.Group("/reconciliations", staff)
	rc.POST("", recons.Create, write)
	rc.GET("", recons.List, read)
	rc.POST("/import", recons.Import, write)
	rc.GET("/:id", recons.Get, read)

	// --- Security admin ---
	security := handler.NewSecurityHandler(s.CSRF, s.APIKeys, s.Audit)
	adm := api.Group("/admin", admin)
	adm.POST("/csrf-tokens", security.IssueCSRF)
	adm.POST("/csrf-tokens/validate", security.ValidateCSRF)
	adm.POST("/api-keys", security.CreateAPIKey)
	adm.GET("/api-keys", security.ListAPIKeys)
	adm.POST("/api-keys/rotate", security.RotateAPIKey)
	adm.GET("/api-keys/rotation-due", security.RotationDue)
	adm.POST("/api-keys/revoke", security.RevokeAPIKey)
	adm.GET("/audit-logs", security.AuditLogs)

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= 500 {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Str("remote_ip", v.RemoteIP).
				Msg("request")
			return nil
		},
	})
}

func httpMetrics(reg *prometheus.Registry) echo.MiddlewareFunc {
	cfg := echoprometheus.MiddlewareConfig{Namespace: "cafepos"}
	if reg != nil {
		cfg.Registerer = reg
	}
	return echoprometheus.NewMiddlewareWithConfig(cfg)
}

func metricsHandler(reg *prometheus.Registry) echo.HandlerFunc {
	if reg == nil {
		return echoprometheus.NewHandler()
	}
	return echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: reg})
}
