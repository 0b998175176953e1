package controllerImp

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"plataform/entities"
)

var appStart = time.Now()

type HealthCtrl struct {
	db      *gorm.DB
	backend string // "mock" or the backend base URL
}

func NewHealthCtrl(db *gorm.DB, backend string) *HealthCtrl {
	return &HealthCtrl{db: db, backend: backend}
}

type check struct {
	OK  bool   `json:"ok"`
	Err string `json:"err,omitempty"`
}

func (h *HealthCtrl) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 800*time.Millisecond)
	defer cancel()

	checks := map[string]any{}
	allOK := true
	if h.db != nil {
		db := h.pingDB(ctx)
		ref := h.referenceData(ctx)
		checks["database"] = db
		checks["reference_data"] = ref
		allOK = db.OK && ref.OK
	}

	status := http.StatusOK
	if !allOK {
		status = http.StatusServiceUnavailable
	}
	return c.JSON(status, map[string]any{
		"status":     map[string]any{"ok": allOK},
		"backend":    h.backend,
		"uptime_sec": int(time.Since(appStart).Seconds()),
		"checks":     checks,
		"time":       time.Now().Format(time.RFC3339),
	})
}

func (h *HealthCtrl) pingDB(ctx context.Context) check {
	sqlDB, err := h.db.DB()
	if err != nil {
		return check{Err: "db.DB(): " + err.Error()}
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return check{Err: "ping: " + err.Error()}
	}
	return check{OK: true}
}

// referenceData fails when either option list would render empty.
func (h *HealthCtrl) referenceData(ctx context.Context) check {
	var infos, labs int64
	if err := h.db.WithContext(ctx).Model(&entities.PropertyInfo{}).Count(&infos).Error; err != nil {
		return check{Err: err.Error()}
	}
	if err := h.db.WithContext(ctx).Model(&entities.Laboratory{}).Count(&labs).Error; err != nil {
		return check{Err: err.Error()}
	}
	if infos == 0 || labs == 0 {
		return check{Err: "reference tables are empty"}
	}
	return check{OK: true}
}
