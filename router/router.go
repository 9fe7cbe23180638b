package router

import (
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	advisoryCtrl "agroadvisor/pkg/advisory/controller"
	authCtrl "agroadvisor/pkg/auth/controller"
	fieldCtrl "agroadvisor/pkg/field/controller"
	kbCtrl "agroadvisor/pkg/kb/controller"
	"agroadvisor/pkg/logging"
	"agroadvisor/pkg/middleware"
	schedCtrl "agroadvisor/pkg/schedule/controller"
	soilTestCtrl "agroadvisor/pkg/soiltest/controller"
)

type Controllers struct {
	Field    fieldCtrl.FieldController
	SoilTest soilTestCtrl.SoilTestController
	Advisory advisoryCtrl.AdvisoryController
	Schedule schedCtrl.ScheduleController
	Auth     authCtrl.AuthController
	KB       kbCtrl.KBController
	Health   interface{ Health(echo.Context) error }
}

type Options struct {
	// EnableAuth requires X-Farmer-Id on every API route and hides /devlogin.
	EnableAuth bool
	Logger     *zap.Logger
}

func New(e *echo.Echo, h Controllers, opts Options) *echo.Echo {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	e.HideBanner = true
	e.Use(echoMiddleware.Recover())
	e.Use(logging.RequestLogger(log))

	e.GET("/health", h.Health.Health)

	api := e.Group("")
	if opts.EnableAuth {
		api.Use(middleware.RequireFarmer())
	} else {
		api.Use(middleware.DevLogin())
		api.GET("/devlogin", h.Auth.DevLogin)
	}
	api.GET("/whoami", h.Auth.WhoAmI)

	// stateless
	api.POST("/advisory", h.Advisory.Stateless)

	api.POST("/fields", h.Field.Create)
	api.GET("/fields", h.Field.List)
	api.GET("/fields/:id", h.Field.Get)
	api.PUT("/fields/:id", h.Field.Update)
	api.DELETE("/fields/:id", h.Field.Delete)
	api.POST("/fields/:id/crops", h.Field.AddCrop)
	api.PUT("/fields/:id/soil-health", h.Field.UpdateSoilHealth)
	api.GET("/fields/:id/soil-tests", h.SoilTest.List)

	api.GET("/fields/:id/advisory", h.Advisory.Get)
	api.POST("/fields/:id/advisory/schedule", h.Advisory.Schedule)
	api.GET("/fields/:id/advisories", h.Advisory.History)

	api.GET("/fields/:id/schedule", h.Schedule.List)
	api.PATCH("/schedule/:task_id", h.Schedule.Patch)

	// KB endpoints
	api.POST("/kb/ingest", h.KB.IngestText)
	api.POST("/kb/ingest/url", h.KB.IngestURL)
	api.GET("/kb/search", h.KB.Search)
	api.GET("/kb/docs", h.KB.ListDocs)
	return e
}
