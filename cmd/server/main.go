package main

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"agroadvisor/config"
	"agroadvisor/database"
	"agroadvisor/pkg/agronomy"
	"agroadvisor/pkg/logging"
	"agroadvisor/pkg/reference"
	"agroadvisor/router"

	// Auth
	authCtrlImp "agroadvisor/pkg/auth/controllerImp"

	// Field
	fieldCtrlImp "agroadvisor/pkg/field/controllerImp"
	fieldRepoImp "agroadvisor/pkg/field/repositoryImp"
	fieldSvcImp "agroadvisor/pkg/field/serviceImp"

	// Soil tests
	soilCtrlImp "agroadvisor/pkg/soiltest/controllerImp"
	soilRepoImp "agroadvisor/pkg/soiltest/repositoryImp"
	soilSvcImp "agroadvisor/pkg/soiltest/serviceImp"

	// Schedule
	schedCtrlImp "agroadvisor/pkg/schedule/controllerImp"
	schedRepoImp "agroadvisor/pkg/schedule/repositoryImp"
	schedSvcImp "agroadvisor/pkg/schedule/serviceImp"

	// Advisory
	advCtrlImp "agroadvisor/pkg/advisory/controllerImp"
	advRepoImp "agroadvisor/pkg/advisory/repositoryImp"
	advSvcImp "agroadvisor/pkg/advisory/serviceImp"

	// KB
	kbCtrlImp "agroadvisor/pkg/kb/controllerImp"
	kbRepoImp "agroadvisor/pkg/kb/repositoryImp"
	kbServiceImp "agroadvisor/pkg/kb/serviceImp"

	// Health
	healthCtrlImp "agroadvisor/pkg/health/controllerImp"
)

func main() {
	// 1) Config + logger
	cfg := config.Load()
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync() //nolint:errcheck

	// 2) Reference tables (built-in unless files are configured)
	var ref *agronomy.Reference
	if cfg.BenchmarksCSV != "" || cfg.CropsXLSX != "" {
		ref, err = reference.LoadFromFiles(cfg.BenchmarksCSV, cfg.CropsXLSX)
		if err != nil {
			logger.Fatal("load reference tables", zap.Error(err))
		}
	}
	engine := agronomy.NewEngine(ref)
	logger.Info("reference loaded", zap.String("version", engine.ReferenceVersion()))

	// 3) DB (sqlite) + automigrate
	db, err := database.OpenSQLite(cfg.DBPath)
	if err != nil {
		logger.Fatal("open database", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		logger.Fatal("auto-migrate", zap.Error(err))
	}

	e, err := newServer(cfg, db, engine, logger)
	if err != nil {
		logger.Fatal("wire server", zap.Error(err))
	}

	// 4) Start
	logger.Info("listening", zap.String("port", cfg.Port), zap.Bool("auth", cfg.EnableAuth))
	if err := e.Start(":" + cfg.Port); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

// newServer wires repositories, services and controllers onto a fresh echo
// instance. The database must already be migrated.
func newServer(cfg config.AppConfig, db *gorm.DB, engine *agronomy.Engine, logger *zap.Logger) (*echo.Echo, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, err
	}

	fRepo := fieldRepoImp.New(db)
	stRepo := soilRepoImp.New(db)
	sRepo := schedRepoImp.New(db)
	aRepo := advRepoImp.New(db)

	kbSvc := kbServiceImp.New(kbRepoImp.New(db))
	fSvc := fieldSvcImp.NewFieldService(fRepo, logger, nil)
	aSvc := advSvcImp.NewAdvisoryService(engine, fRepo, aRepo, kbSvc, advSvcImp.Options{
		Location: loc,
		Logger:   logger,
	})

	ctrls := router.Controllers{
		Field:    fieldCtrlImp.New(fSvc),
		SoilTest: soilCtrlImp.New(soilSvcImp.NewSoilTestService(stRepo, fRepo)),
		Advisory: advCtrlImp.New(aSvc),
		Schedule: schedCtrlImp.New(schedSvcImp.NewScheduleService(sRepo, fRepo)),
		Auth:     authCtrlImp.NewAuthController(),
		KB:       kbCtrlImp.New(kbSvc, cfg.KBAllowedDomains, cfg.KBMaxBytes),
		Health:   healthCtrlImp.NewHealthCtrl(db, engine.ReferenceVersion()),
	}
	return router.New(echo.New(), ctrls, router.Options{EnableAuth: cfg.EnableAuth, Logger: logger}), nil
}
