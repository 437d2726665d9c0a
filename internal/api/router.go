package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/copebusiness/portal/docs"
	"github.com/copebusiness/portal/internal/api/handler"
	"github.com/copebusiness/portal/internal/api/middleware"
	"github.com/copebusiness/portal/internal/core/domain"
	"github.com/copebusiness/portal/internal/core/ports"
)

// Services are the core services the HTTP layer is built on.
type Services struct {
	Sessions   ports.SessionService
	Orders     ports.OrderService
	Wallet     ports.WalletService
	Invoices   ports.InvoiceService
	Reports    ports.ReportService
	Tickets    ports.TicketService
	Dashboards ports.DashboardService
	Catalog    domain.Catalog
}

type RouterOptions struct {
	AllowedOrigins []string
	// Checks back GET /health/ready, keyed by dependency name.
	Checks map[string]handler.Check
}

// NewRouter builds the Echo instance with all routes registered.
func NewRouter(svc Services, opts RouterOptions, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:  opts.AllowedOrigins,
		AllowHeaders:  []string{echo.HeaderAuthorization, echo.HeaderContentType, "Idempotency-Key"},
		ExposeHeaders: []string{echo.HeaderXRequestID},
	}))
	e.Use(echoprometheus.NewMiddleware("portal"))
	e.Use(middleware.Session(svc.Sessions, log))

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(svc.Sessions)
	catalogHandler := handler.NewCatalogHandler(svc.Catalog)
	orderHandler := handler.NewOrderHandler(svc.Orders, svc.Wallet)
	walletHandler := handler.NewWalletHandler(svc.Wallet)
	invoiceHandler := handler.NewInvoiceHandler(svc.Invoices)
	reportHandler := handler.NewReportHandler(svc.Reports)
	ticketHandler := handler.NewTicketHandler(svc.Tickets)
	dashboardHandler := handler.NewDashboardHandler(svc.Dashboards)

	// --- Probes and docs (no auth required) ---
	e.GET("/health", handler.NewHealthHandler().Liveness)
	e.GET("/health/ready", handler.NewReadinessHandler(opts.Checks).Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Auth routes ---
	auth := e.Group("/auth")
	auth.POST("/signup", authHandler.Signup)
	auth.POST("/login", authHandler.Login)
	auth.POST("/confirm", authHandler.Confirm)
	auth.POST("/forgot-password", authHandler.ForgotPassword)
	auth.POST("/reset-password", authHandler.ResetPassword)

	signedIn := auth.Group("", middleware.RequireAuthenticated())
	signedIn.GET("/session", authHandler.Session)
	signedIn.POST("/logout", authHandler.Logout)
	signedIn.PUT("/password", authHandler.ChangePassword)

	// --- Portal API ---
	v1 := e.Group("/v1")
	v1.GET("/services", catalogHandler.List)
	v1.GET("/navigate", authHandler.Navigate)
	v1.PATCH("/profile", authHandler.UpdateProfile, middleware.RequireAuthenticated())

	client := v1.Group("", middleware.RequireRole(domain.RoleClient))
	client.GET("/dashboard", dashboardHandler.Client)
	client.POST("/orders", orderHandler.Purchase)
	client.GET("/orders", orderHandler.List)
	client.GET("/orders/:id", orderHandler.Get)
	client.GET("/wallet", walletHandler.Balance)
	client.POST("/wallet/funds", walletHandler.AddFunds)
	client.GET("/wallet/transactions", walletHandler.Transactions)
	client.GET("/invoices", invoiceHandler.List)
	client.GET("/invoices/:id", invoiceHandler.Get)
	client.GET("/reports", reportHandler.List)
	client.GET("/reports/:id", reportHandler.Get)
	client.GET("/tickets", ticketHandler.List)
	client.POST("/tickets", ticketHandler.Create)
	client.GET("/tickets/:id", ticketHandler.Get)
	client.POST("/tickets/:id/messages", ticketHandler.Reply)

	admin := v1.Group("/admin", middleware.RequireRole(domain.RoleAdmin))
	admin.GET("/dashboard", dashboardHandler.Admin)
	admin.GET("/clients", dashboardHandler.Clients)
	admin.GET("/clients/:id", dashboardHandler.ClientDetail)
	admin.GET("/orders", orderHandler.List)
	admin.PATCH("/orders/:id/progress", orderHandler.UpdateProgress)
	admin.GET("/tickets", ticketHandler.List)
	admin.GET("/tickets/:id", ticketHandler.Get)
	admin.POST("/tickets/:id/messages", ticketHandler.Reply)
	admin.PATCH("/tickets/:id/status", ticketHandler.SetStatus)
	admin.GET("/invoices", invoiceHandler.List)
	admin.POST("/invoices", invoiceHandler.Create)
	admin.GET("/invoices/:id", invoiceHandler.Get)
	admin.POST("/invoices/:id/pay", invoiceHandler.MarkPaid)
	admin.GET("/reports", reportHandler.List)
	admin.POST("/reports", reportHandler.Create)
	admin.GET("/reports/:id", reportHandler.Get)
	admin.POST("/reports/:id/send", reportHandler.Send)

	return e
}
