// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolpay_dashboard/internals/features/preferences/repository"
	"schoolpay_dashboard/internals/middlewares"
	routeDetails "schoolpay_dashboard/internals/route/details"
	"schoolpay_dashboard/internals/services/api"
	"schoolpay_dashboard/internals/services/session"
)

var startTime time.Time

// Deps is everything the views are built from. DB is nil when preferences
// are kept in memory.
type Deps struct {
	Client  api.Client
	Session *session.Session
	Store   repository.Store
	DB      *gorm.DB
}

func SetupRoutes(app *fiber.App, d Deps) {
	startTime = time.Now()

	log.Println("[INFO] Setting up BaseRoutes...")
	BaseRoutes(app, d)

	app.Use(middlewares.GlobalRateLimiter())
	apiGroup := app.Group("/api")
	requireSession := middlewares.RequireSession(d.Session)

	// ===================== PUBLIC =====================
	log.Println("[INFO] Mounting Auth routes...")
	routeDetails.AuthRoutes(apiGroup, d.Session, requireSession)

	log.Println("[INFO] Mounting Payment routes...")
	routeDetails.PaymentRoutes(apiGroup, d.Client)

	log.Println("[INFO] Mounting Preference routes...")
	routeDetails.PreferenceRoutes(apiGroup, d.Store)

	log.Println("[INFO] Mounting Meta routes...")
	routeDetails.MetaRoutes(apiGroup, d.Client)

	// ===================== PROTECTED =====================
	log.Println("[INFO] Setting up PROTECTED group (session gate)...")
	protected := app.Group("/api", requireSession)

	log.Println("[INFO] Mounting Dashboard routes...")
	routeDetails.DashboardRoutes(protected, d.Client)

	log.Println("[INFO] Mounting Transaction routes...")
	routeDetails.TransactionRoutes(protected, d.Client)
}
