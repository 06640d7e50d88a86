package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"syscall"
	"time"

	"rentalsite/config"
	"rentalsite/constants"
	"rentalsite/jobs"
	"rentalsite/routes"
	"rentalsite/services"
	"rentalsite/services/logger"
	"rentalsite/services/notification"

	"github.com/oklog/run"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// buildStores chọn repository phòng và settings theo STORE_DRIVER
func buildStores(cfg config.Config, comps config.Components, log logger.Logger) (services.RoomRepository, services.SettingsRepository, error) {
	var (
		rooms    services.RoomRepository
		settings services.SettingsRepository
	)

	switch cfg.StoreDriver {
	case config.StorePostgres:
		rooms = services.NewGormRoomRepository(comps.DB)
		settings = services.NewGormSettingsRepository(comps.DB)
	case config.StoreFile:
		fileRooms, err := services.NewFileRoomRepository(cfg.DataDir, log.With("component", "room_store"))
		if err != nil {
			return nil, nil, err
		}
		fileSettings, err := services.NewFileSettingsRepository(filepath.Join(cfg.DataDir, "settings"))
		if err != nil {
			return nil, nil, err
		}
		rooms, settings = fileRooms, fileSettings
	default:
		return nil, nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}

	if comps.Redis != nil {
		rooms = services.NewCachedRoomRepository(rooms, comps.Redis, constants.RoomListCacheTTL, log.With("component", "room_cache"))
	}
	return rooms, settings, nil
}

func main() {
	config.LoadEnv()
	cfg := config.Load()

	log := logger.NewDefaultLogger(logger.ParseLevel(cfg.LogLevel))

	ctx := context.Background()
	comps, err := config.InitComponents(ctx, cfg, log)
	if err != nil {
		log.Error("failed to initialize components: %v", err)
		os.Exit(1)
	}
	defer comps.Close()

	roomRepo, settingsRepo, err := buildStores(cfg, comps, log)
	if err != nil {
		log.Error("failed to open stores: %v", err)
		os.Exit(1)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := services.NewMetrics(reg)

	router, m, c := config.InitApp(cfg)

	roomService := services.NewRoomService(roomRepo, log.With("component", "rooms")).
		WithNotifier(notification.NewRoomsChangedBroadcaster(notification.NewMelodyService(m), log))
	settingsService := services.NewSettingsService(settingsRepo)
	authService := services.NewAuthService(cfg.AdminUsername, cfg.AdminPasswordHash, cfg.JWTSecret)
	if !authService.Enabled() {
		log.Warn("admin login disabled: set ADMIN_USERNAME, ADMIN_PASSWORD_HASH and JWT_SECRET")
	}
	dispatcher := services.NewDispatcher(notification.NewMelodyOpener(m), cfg.SecondaryDelay, log.With("component", "dispatcher"), metrics)

	var uploader services.ImageUploader
	if comps.Cloudinary != nil {
		uploader = services.NewCloudinaryUploader(comps.Cloudinary)
	}

	config.InitWebSocket(router, m, log)
	routes.SetupRoutes(router, routes.Dependencies{
		Rooms:      roomService,
		Settings:   settingsService,
		Auth:       authService,
		Dispatcher: dispatcher,
		Uploader:   uploader,
		Metrics:    metrics,
		Gatherer:   reg,
		Logger:     log,
	})

	if _, err := jobs.InitCronJobs(c, cfg.ReloadSchedule, roomService, log.With("component", "cron"), func(outcome string) {
		metrics.RoomReloads.WithLabelValues(outcome).Inc()
	}); err != nil {
		log.Error("failed to initialize cron jobs: %v", err)
		os.Exit(1)
	}

	g := &run.Group{}

	httpSrv := &http.Server{Addr: ":" + cfg.Port, Handler: router, ReadHeaderTimeout: 10 * time.Second}
	g.Add(func() error {
		log.Info("server starting on port %s (store=%s)", cfg.Port, cfg.StoreDriver)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}, func(error) {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			log.Error("failed to stop web server: %v", err)
		}
		_ = m.Close()
	})

	cronDone := make(chan struct{})
	g.Add(func() error {
		c.Start()
		log.Info("cron jobs started (%s)", cfg.ReloadSchedule)
		<-cronDone
		return nil
	}, func(error) {
		<-c.Stop().Done()
		close(cronDone)
	})

	g.Add(run.SignalHandler(ctx, syscall.SIGINT, syscall.SIGTERM))

	if err := g.Run(); err != nil {
		var sigErr run.SignalError
		if errors.As(err, &sigErr) {
			log.Info("shutting down: %v", err)
			return
		}
		log.Error("%v", err)
		os.Exit(1)
	}
}
