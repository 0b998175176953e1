package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"plataform/config"
	"plataform/database"
	"plataform/router"

	// Backend clients
	"plataform/pkg/backend"

	// Mock backend
	labCtrlImp "plataform/pkg/laboratory/controllerImp"
	labRepoImp "plataform/pkg/laboratory/repositoryImp"
	platCtrlImp "plataform/pkg/plataform/controllerImp"
	platRepoImp "plataform/pkg/plataform/repositoryImp"
	platSvcImp "plataform/pkg/plataform/serviceImp"
	infoCtrlImp "plataform/pkg/propertyinfo/controllerImp"
	infoRepoImp "plataform/pkg/propertyinfo/repositoryImp"

	// Pages
	"plataform/pkg/page"
	"plataform/pkg/view"
	viewCtrlImp "plataform/pkg/view/controllerImp"

	// Health + logging
	healthCtrlImp "plataform/pkg/health/controllerImp"
	"plataform/pkg/logger"
)

func main() {
	// 1) Config + logging
	cfg := config.Load()
	if err := logger.Setup(logger.Options{Level: cfg.LogLevel, Dir: cfg.LogDir, ToConsole: cfg.LogToConsole}); err != nil {
		logger.Fatalf("logger: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatalf("config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 2) Mock backend store (development only)
	var (
		db   *gorm.DB
		mock *router.MockBackend
		api  backend.Client
	)
	if cfg.IsDevelopment() {
		var err error
		db, err = database.Open(cfg)
		if err != nil {
			logger.Fatalf("database: %v", err)
		}
		defer database.Close(db)
		if err := database.Seed(db); err != nil {
			logger.Fatalf("seed: %v", err)
		}

		infos := infoRepoImp.New(db)
		labs := labRepoImp.New(db)
		plats := platSvcImp.NewPlataformService(platRepoImp.New(db), infos, labs)
		mock = &router.MockBackend{
			PropertyInfos: infoCtrlImp.New(infos),
			Laboratories:  labCtrlImp.New(labs),
			Plataforms:    platCtrlImp.New(plats),
			Latency:       cfg.MockLatency,
		}
		if cfg.UseMockBackend() {
			api = backend.NewMock(infos, labs, plats)
		}
	}

	// 3) Backend client (real service unless the in-process mock was chosen)
	backendName := "mock"
	if api == nil {
		api = backend.NewHTTP(cfg.BackendURL, cfg.BackendTimeout)
		backendName = cfg.BackendURL
	}
	logger.Infof("backend: %s", backendName)

	// 4) Pages
	store := page.NewStore(api, page.Options{
		Location:           cfg.Location(),
		AutoHide:           cfg.SnackbarAutoHide,
		SurfaceFetchErrors: cfg.SurfaceFetchErrors,
	}, cfg.PageTTL)
	go store.Run(ctx)

	// 5) Echo + router
	e := echo.New()
	e.Renderer = view.NewRenderer()
	r := router.New(
		e,
		viewCtrlImp.New(store, cfg.LoaderWait),
		healthCtrlImp.NewHealthCtrl(db, backendName),
		mock,
	)

	// 6) Start
	go func() {
		logger.Infof("listening on :%s", cfg.Port)
		if err := r.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server: %v", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := r.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("shutdown: %v", err)
	}
	store.CloseAll()
	logger.Infof("bye")
}
