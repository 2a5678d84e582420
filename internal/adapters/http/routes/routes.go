package routes

import (
	"gymdesk/internal/adapters/http/handlers"
	"gymdesk/internal/adapters/http/middleware"
	"gymdesk/internal/adapters/persistence/repositories"
	"gymdesk/internal/config"
	"gymdesk/internal/core/services"
	"gymdesk/internal/pkg/calendar"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Setup configures all routes for the application and returns the
// reconcile service so main can run the daily sweep alongside the
// server.
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) *services.ReconcileService {
	// Initialize repositories
	memberRepo := repositories.NewMemberRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db)
	attendanceRepo := repositories.NewAttendanceRepository(db)
	promoRepo := repositories.NewPromoRepository(db)
	settingsRepo := repositories.NewSettingsRepository(db)
	staffRepo := repositories.NewStaffUserRepository(db)

	// Initialize services
	clock := calendar.NewClock(cfg.Location)
	notifyService := services.NewNotifyService(cfg.NotifyWebhookURL)
	promoService := services.NewPromoService(promoRepo)
	memberService := services.NewMemberService(db, memberRepo, clock, notifyService)
	billingService := services.NewBillingService(db, memberRepo, settingsRepo, promoService, clock)
	attendanceService := services.NewAttendanceService(attendanceRepo, memberRepo, clock)
	reportService := services.NewReportService(db, paymentRepo, attendanceRepo, clock)
	settingsService := services.NewSettingsService(settingsRepo)
	authService := services.NewAuthService(staffRepo, cfg)
	reconcileService := services.NewReconcileService(memberService, cfg.Location)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService)
	memberHandler := handlers.NewMemberHandler(memberService)
	billingHandler := handlers.NewBillingHandler(billingService)
	attendanceHandler := handlers.NewAttendanceHandler(attendanceService)
	promoHandler := handlers.NewPromoHandler(promoService)
	settingsHandler := handlers.NewSettingsHandler(settingsService)
	reportHandler := handlers.NewReportHandler(reportService)
	adminHandler := handlers.NewAdminHandler(db)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// API v1 group
	apiV1 := app.Group("/api/v1")

	// Auth routes (public, rate limited)
	authRoutes := apiV1.Group("/auth")
	authRoutes.Post("/login", middleware.AuthRateLimiter(), authHandler.Login)
	authRoutes.Post("/register",
		middleware.AuthMiddleware(cfg), middleware.AdminOnly(), authHandler.Register)

	// Member routes
	memberRoutes := apiV1.Group("/members")
	memberRoutes.Use(middleware.AuthMiddleware(cfg))
	setupMemberRoutes(memberRoutes, memberHandler, billingHandler, attendanceHandler, reportHandler)

	// Attendance routes
	attendanceRoutes := apiV1.Group("/attendance")
	attendanceRoutes.Use(middleware.AuthMiddleware(cfg))
	attendanceRoutes.Post("/", attendanceHandler.CheckIn)
	attendanceRoutes.Get("/", attendanceHandler.List)
	attendanceRoutes.Put("/:id/check-out", attendanceHandler.CheckOut)

	// Walk-in routes
	walkInRoutes := apiV1.Group("/walk-ins")
	walkInRoutes.Use(middleware.AuthMiddleware(cfg))
	walkInRoutes.Post("/sessions", billingHandler.RecordWalkInSession)

	// Payment ledger routes
	paymentRoutes := apiV1.Group("/payments")
	paymentRoutes.Use(middleware.AuthMiddleware(cfg))
	paymentRoutes.Get("/", reportHandler.Payments)

	// Report routes
	reportRoutes := apiV1.Group("/reports")
	reportRoutes.Use(middleware.AuthMiddleware(cfg))
	reportRoutes.Get("/income", reportHandler.Income)
	reportRoutes.Get("/dashboard", reportHandler.Dashboard)

	// Promo routes
	promoRoutes := apiV1.Group("/promos")
	promoRoutes.Use(middleware.AuthMiddleware(cfg))
	promoRoutes.Get("/", promoHandler.List)
	promoRoutes.Get("/:id", promoHandler.Get)
	promoRoutes.Post("/", middleware.AdminOnly(), promoHandler.Create)
	promoRoutes.Put("/:id", middleware.AdminOnly(), promoHandler.Update)
	promoRoutes.Delete("/:id", middleware.AdminOnly(), promoHandler.Delete)

	// Settings routes
	settingsRoutes := apiV1.Group("/settings")
	settingsRoutes.Use(middleware.AuthMiddleware(cfg))
	settingsRoutes.Get("/", settingsHandler.Get)
	settingsRoutes.Put("/", middleware.AdminOnly(), settingsHandler.Update)

	// Admin routes (destructive, strictly rate limited)
	adminRoutes := apiV1.Group("/admin")
	adminRoutes.Use(middleware.AuthMiddleware(cfg))
	adminRoutes.Use(middleware.AdminOnly())
	adminRoutes.Use(middleware.StrictRateLimiter())
	adminRoutes.Post("/clear-data", adminHandler.ClearData)
	adminRoutes.Post("/reset-schema", adminHandler.ResetSchema)

	return reconcileService
}

// setupMemberRoutes configures member registry and billing routes
func setupMemberRoutes(
	router fiber.Router,
	memberHandler *handlers.MemberHandler,
	billingHandler *handlers.BillingHandler,
	attendanceHandler *handlers.AttendanceHandler,
	reportHandler *handlers.ReportHandler,
) {
	// Registry
	router.Post("/", memberHandler.Create)
	router.Get("/", memberHandler.List)
	router.Get("/:id", memberHandler.Get)
	router.Put("/:id", memberHandler.Update)
	router.Delete("/:id", billingHandler.Delete)

	// Billing
	router.Post("/:id/fee", billingHandler.PayFee)
	router.Post("/:id/subscription", billingHandler.Subscribe)
	router.Delete("/:id/subscription", billingHandler.CancelSubscription)
	router.Post("/:id/renewal", billingHandler.Renew)
	router.Post("/:id/sessions", billingHandler.RecordSession)
	router.Post("/:id/archive", billingHandler.Archive)

	// Referrals
	router.Post("/:id/referrals/redeem", memberHandler.RedeemReferrals)

	// History
	router.Get("/:id/attendance", attendanceHandler.ListByMember)
	router.Get("/:id/payments", reportHandler.MemberPayments)
}
