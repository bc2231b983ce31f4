package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"schoolpay_dashboard/internals/configs"
	database "schoolpay_dashboard/internals/databases"
	"schoolpay_dashboard/internals/features/auth/scheduler"
	"schoolpay_dashboard/internals/features/preferences/repository"
	helper "schoolpay_dashboard/internals/helpers"
	middlewares "schoolpay_dashboard/internals/middlewares"
	routes "schoolpay_dashboard/internals/route"
	"schoolpay_dashboard/internals/services/api"
	"schoolpay_dashboard/internals/services/session"
)

func main() {
	configs.LoadEnv()

	// amounts go out as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true

	app := fiber.New(fiber.Config{
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		DisableStartupMessage: true,
		ErrorHandler:          helper.ErrorHandler,
	})

	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())
	middlewares.SetupMiddlewares(app)

	// 🔌 preferences storage: postgres when configured, memory otherwise
	db, store := openStore()

	creds := session.NewCredentials(store)
	if err := creds.Load(context.Background()); err != nil {
		log.Printf("[SESSION] load credential: %v", err)
	}

	client := api.New(api.Config{
		BaseURL:      configs.APIBaseURL,
		DemoEmail:    configs.DemoEmail,
		DemoPassword: configs.DemoPassword,
		DemoSecret:   configs.DemoJWTSecret,
	}, creds)

	sess := session.New(client, creds)
	go sess.Init(context.Background())

	// ⏱ credential sweep
	sweep, err := scheduler.StartCredentialSweep(sess, configs.CredentialSweepSchedule)
	if err != nil {
		log.Printf("[SWEEP] disabled: %v", err)
	}

	routes.SetupRoutes(app, routes.Deps{Client: client, Session: sess, Store: store, DB: db})

	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	port := configs.GetEnv("PORT", "8080")

	go func() {
		log.Printf("✅ Listening on :%s", port)
		if err := app.Listen("0.0.0.0:" + port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	if sweep != nil {
		<-sweep.Stop().Done()
	}
	database.Close(db)
}

func openStore() (*gorm.DB, repository.Store) {
	db, err := database.ConnectDB()
	if errors.Is(err, database.ErrNotConfigured) {
		log.Println("[DB] DB_HOST not set, preferences kept in memory")
		return nil, repository.NewMemoryStore()
	}
	if err != nil {
		log.Printf("[DB] %v, preferences kept in memory", err)
		return nil, repository.NewMemoryStore()
	}
	database.TunePool(db)

	store := repository.NewGormStore(db)
	if err := store.AutoMigrate(); err != nil {
		log.Fatalf("[DB] migrate client_preferences: %v", err)
	}
	return db, store
}
