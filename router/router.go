package router

import (
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"plataform/pkg/middleware"
)

// MockBackend groups the development-only API controllers.
type MockBackend struct {
	PropertyInfos interface{ Register(*echo.Group) }
	Laboratories  interface{ Register(*echo.Group) }
	Plataforms    interface{ Register(*echo.Group) }
	Latency       time.Duration
}

func New(
	e *echo.Echo,
	viewCtrl interface{ Register(*echo.Echo) },
	healthCtrl interface{ Health(echo.Context) error },
	mock *MockBackend, // nil outside development
) *echo.Echo {
	e.HideBanner = true
	e.Use(echoMiddleware.Recover())
	e.Use(middleware.RequestLog())

	e.GET("/health", healthCtrl.Health)
	viewCtrl.Register(e)

	if mock != nil {
		api := e.Group("/api", middleware.Latency(mock.Latency))
		mock.PropertyInfos.Register(api)
		mock.Laboratories.Register(api)
		mock.Plataforms.Register(api)
	}
	return e
}
