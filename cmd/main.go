package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/movebid/moving-auction-service/internal/cache"
	"github.com/movebid/moving-auction-service/internal/db"
	"github.com/movebid/moving-auction-service/internal/handlers"
	"github.com/movebid/moving-auction-service/internal/notify"
	"github.com/movebid/moving-auction-service/internal/repository"
	"github.com/movebid/moving-auction-service/internal/router"
	"github.com/movebid/moving-auction-service/internal/router/config"
	"github.com/movebid/moving-auction-service/internal/services"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// summaryCacheTTL matches the 30s countdown polling interval on the caller
// side; writes invalidate eagerly so the TTL is only a backstop.
const summaryCacheTTL = 30 * time.Second

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatal("cannot load config:", err)
	}

	runDBMigration(cfg.MigrationURL, cfg.PostgresConn)

	dbPool, err := db.InitDb(cfg)
	if err != nil {
		log.Fatalf("error initializing database: %v", err)
	}
	defer dbPool.Close()

	logger := log.New(os.Stdout, "INFO: ", log.LstdFlags)

	summaryCache, err := cache.NewBidSummaryCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, summaryCacheTTL)
	if err != nil {
		log.Fatalf("error initializing cache: %v", err)
	}
	defer summaryCache.Close()

	notifier, err := notify.NewNATSNotifier(cfg.NatsURL)
	if err != nil {
		log.Fatalf("error initializing notifier: %v", err)
	}
	defer notifier.Close()

	announcementRepo := repository.NewPostgresAnnouncementRepository(dbPool)
	bidRepo := repository.NewPostgresBidRepository(dbPool)
	competitorRepo := repository.NewPostgresCompetitorRepository(dbPool)

	announcementService := services.NewAnnouncementService(announcementRepo, bidRepo, notifier, summaryCache, logger)
	bidService := services.NewBidService(bidRepo, announcementRepo, notifier, summaryCache, logger)
	pricingService := services.NewPricingService(competitorRepo, logger)

	locale := cfg.DefaultLocale
	if locale == "" {
		locale = "de"
	}

	announcementHandler := handlers.NewAnnouncementHandler(announcementService, logger, 5*time.Second, locale)
	bidHandler := handlers.NewBidHandler(bidService, logger, 5*time.Second, locale)
	pricingHandler := handlers.NewPricingHandler(pricingService, logger, 5*time.Second)

	routes := router.InitRoutes(announcementHandler, bidHandler, pricingHandler)

	log.Printf("server is listening on %s...", cfg.ServerAddress)
	if err := http.ListenAndServe(cfg.ServerAddress, routes); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

func runDBMigration(migrationURL string, dbSource string) {
	migration, err := migrate.New(migrationURL, dbSource)
	if err != nil {
		log.Fatal("cannot create a new migrate instance", err)
	}

	if err = migration.Up(); err != nil && err != migrate.ErrNoChange {
		log.Fatal("failed to run migrate up:", err)
	}
	log.Println("db migrated successfully")
}
