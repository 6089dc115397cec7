package app

import (
	"database/sql"
	"fmt"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"salescrm/internal/config"
	"salescrm/internal/export"
	"salescrm/internal/handlers"
	"salescrm/internal/logger"
	"salescrm/internal/repositories"
	"salescrm/internal/routes"
	"salescrm/internal/services"
)

// Run wires the whole service together: one explicitly constructed store
// handle, repositories and services built on top of it, handlers on top of
// those. Lifecycle of the handle lives here, not in the core.
func Run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Environment)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	// === DB ===
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Warn("closing database", zap.Error(err))
		}
	}()

	// === Repos ===
	txm := repositories.NewTxManager(db)
	leadRepo := repositories.NewLeadRepository(db)
	oppRepo := repositories.NewOpportunityRepository(db)
	historyRepo := repositories.NewStageHistoryRepository(db)
	stageRepo := repositories.NewStageRepository(db)
	sourceRepo := repositories.NewSourceRepository(db)
	userRepo := repositories.NewUserRepository(db)
	activityRepo := repositories.NewActivityRepository(db)

	// === Services ===
	transitionService := services.NewStageTransitionService(txm, historyRepo, oppRepo, stageRepo, log)
	conversionService := services.NewConversionService(txm, leadRepo, oppRepo, userRepo, stageRepo, transitionService, log)
	leadService := services.NewLeadService(txm, leadRepo, log)

	snapshotSource := services.NewCachedSnapshotSource(
		services.NewStoreSnapshotSource(leadRepo, oppRepo, activityRepo, sourceRepo, userRepo, stageRepo),
		cfg.CacheTTL(),
		log,
	)
	reportService := services.NewReportService(snapshotSource, log)

	// === Handlers ===
	leadHandler := handlers.NewLeadHandler(leadService, conversionService)
	opportunityHandler := handlers.NewOpportunityHandler(oppRepo, transitionService)
	dashboardHandler := handlers.NewDashboardHandler(reportService, export.NewSummaryGenerator(), cfg.Dashboard.DefaultWindowDays)
	referenceHandler := handlers.NewReferenceHandler(stageRepo, sourceRepo, userRepo)
	healthHandler := handlers.NewHealthHandler(db)

	// === Gin ===
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	routes.SetupRoutes(router, leadHandler, opportunityHandler, dashboardHandler, referenceHandler, healthHandler)

	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Info("server listening", zap.String("addr", listenAddr))
	return router.Run(listenAddr)
}
