package controllerImp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"agroadvisor/entities"
)

const checkTimeout = 800 * time.Millisecond

var appStart = time.Now()

type HealthCtrl struct {
	db         *gorm.DB
	refVersion string
}

// NewHealthCtrl reports database reachability, the advisory schema and the
// loaded reference table version.
func NewHealthCtrl(db *gorm.DB, refVersion string) *HealthCtrl {
	return &HealthCtrl{db: db, refVersion: refVersion}
}

type checkResult struct {
	OK  bool   `json:"ok"`
	Err string `json:"err,omitempty"`
}

func result(err error) checkResult {
	if err != nil {
		return checkResult{Err: err.Error()}
	}
	return checkResult{OK: true}
}

func (h *HealthCtrl) ping(ctx context.Context) error {
	if h.db == nil {
		return errors.New("no database configured")
	}
	sqlDB, err := h.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// schema fails when a table the advisory flow writes is missing.
func (h *HealthCtrl) schema() error {
	m := h.db.Migrator()
	for _, t := range []struct {
		name  string
		model any
	}{
		{"fields", &entities.Field{}},
		{"advisories", &entities.Advisory{}},
		{"schedule_tasks", &entities.ScheduleTask{}},
	} {
		if !m.HasTable(t.model) {
			return fmt.Errorf("missing table %s", t.name)
		}
	}
	return nil
}

func (h *HealthCtrl) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), checkTimeout)
	defer cancel()

	checks := map[string]checkResult{"database": result(h.ping(ctx))}
	if checks["database"].OK {
		checks["schema"] = result(h.schema())
	}
	var refErr error
	if h.refVersion == "" {
		refErr = errors.New("no reference tables loaded")
	}
	checks["reference"] = result(refErr)

	status := http.StatusOK
	for _, r := range checks {
		if !r.OK {
			status = http.StatusServiceUnavailable
		}
	}
	return c.JSON(status, map[string]any{
		"status":            map[string]bool{"ok": status == http.StatusOK},
		"uptime_sec":        int(time.Since(appStart).Seconds()),
		"reference_version": h.refVersion,
		"checks":            checks,
		"time":              time.Now().UTC().Format(time.RFC3339),
	})
}
