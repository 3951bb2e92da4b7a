package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/tax-portal/internal/config"
	"github.com/iliyamo/tax-portal/internal/database"
	"github.com/iliyamo/tax-portal/internal/handler"
	"github.com/iliyamo/tax-portal/internal/queue"
	"github.com/iliyamo/tax-portal/internal/reconcile"
	"github.com/iliyamo/tax-portal/internal/repository"
	"github.com/iliyamo/tax-portal/internal/router"
	"github.com/iliyamo/tax-portal/internal/session"
)

func main() {
	// Load .env when present; real deployments set the environment
	// directly and the file is absent.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	// Redis is optional: a nil client disables the remote session tier
	// and the login limiter, and the portal keeps working on the
	// cookie and local tiers alone.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; sessions degrade to cookie/local tiers")
	}

	catalog := reconcile.DefaultCatalog()
	if err := catalog.Validate(); err != nil {
		log.Fatalf("document catalog: %v", err)
	}
	rec := reconcile.New(catalog)

	sessions := session.NewManager(
		session.NewRemoteStore(rdb, cfg.SessionTTL),
		session.NewCookieCodec(cfg.SessionSecret),
		cfg.SessionTTL,
		cfg.SessionRefresh,
		cfg.DataDir,
	)

	staffRepo := repository.NewStaffRepo(db)
	clientRepo := repository.NewClientRepo(db)
	docRepo := repository.NewDocumentRepo(db)
	paymentRepo := repository.NewPaymentRepo(db)
	qnRepo := repository.NewQuestionnaireRepo(db)

	h := router.Handlers{
		Auth:          handler.NewAuthHandler(staffRepo, sessions, cfg.BcryptCost),
		Clients:       handler.NewClientHandler(clientRepo),
		Documents:     handler.NewDocumentHandler(docRepo, clientRepo),
		Checklist:     handler.NewChecklistHandler(docRepo, qnRepo, clientRepo, rec),
		Questionnaire: handler.NewQuestionnaireHandler(qnRepo, clientRepo),
		Payments:      handler.NewPaymentHandler(paymentRepo, clientRepo),
		Export:        handler.NewExportHandler(clientRepo, docRepo, qnRepo, paymentRepo, rec),
	}

	// Background consumer writes notification intents to
	// logs/notifications.log and reconnects on broker restarts.
	go func() {
		if err := queue.StartNotificationConsumer(); err != nil {
			log.Printf("notification consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	router.RegisterRoutes(e, h, sessions, rdb)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
