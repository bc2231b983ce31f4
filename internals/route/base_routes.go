package routes

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"schoolpay_dashboard/internals/metrics"
	"schoolpay_dashboard/internals/services/api"
)

func BaseRoutes(app *fiber.App, d Deps) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("School payment dashboard is running")
	})

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))

	app.Get("/health", func(c *fiber.Ctx) error {
		mode := "backend"
		if api.IsDemo(d.Client) {
			mode = "demo"
		}

		storage := "memory"
		serverStatus := "OK"
		httpStatus := fiber.StatusOK
		if d.DB != nil {
			storage = "Connected"
			sqlDB, err := d.DB.DB()
			if err != nil || sqlDB.PingContext(c.UserContext()) != nil {
				storage = "Database connection error"
				serverStatus = "DOWN"
				httpStatus = fiber.StatusServiceUnavailable
			}
		}

		return c.Status(httpStatus).JSON(fiber.Map{
			"status":         serverStatus,
			"mode":           mode,
			"storage":        storage,
			"session_ready":  !d.Session.Loading(),
			"server_time":    time.Now().Format(time.RFC3339),
			"uptime_seconds": int(time.Since(startTime).Seconds()),
			"environment":    os.Getenv("APP_ENV"),
		})
	})
}
