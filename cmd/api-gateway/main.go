package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/noah-isme/school-dashboard-api/api/swagger"
	"github.com/noah-isme/school-dashboard-api/internal/handler"
	"github.com/noah-isme/school-dashboard-api/internal/listing"
	"github.com/noah-isme/school-dashboard-api/internal/models"
	"github.com/noah-isme/school-dashboard-api/internal/repository"
	"github.com/noah-isme/school-dashboard-api/internal/router"
	"github.com/noah-isme/school-dashboard-api/internal/service"
	"github.com/noah-isme/school-dashboard-api/internal/store"
	"github.com/noah-isme/school-dashboard-api/pkg/cache"
	"github.com/noah-isme/school-dashboard-api/pkg/config"
	"github.com/noah-isme/school-dashboard-api/pkg/jobs"
	"github.com/noah-isme/school-dashboard-api/pkg/logger"
)

// @title School Dashboard API
// @version 1.0.0
// @description Backend for the school dashboard: paged student and teacher views synced with the remote collection store.
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	metrics := service.NewMetricsService()

	client := store.NewClient(cfg.Store, metrics, logr)
	students := store.NewCollection[*models.Student](client, models.EntityStudents)
	teachers := store.NewCollection[*models.Teacher](client, models.EntityTeachers)

	loader := jobs.NewQueue("view-loader", jobs.QueueConfig{
		Workers:    cfg.Views.LoaderWorkers,
		BufferSize: cfg.Views.LoaderBuffer,
		Logger:     logr,
	})
	loader.Start(ctx)

	redisClient, err := cache.NewRedis(ctx, cfg.Redis)
	if err != nil {
		logr.Warn("redis unavailable, preferences kept in memory and record cache off",
			zap.String("addr", cache.Addr(cfg.Redis)), zap.Error(err))
	} else {
		defer func() {
			if err := redisClient.Close(); err != nil {
				logr.Warn("closing redis failed", zap.Error(err))
			}
		}()
	}

	var prefRepo service.PreferenceRepository = repository.NewMemoryPreferenceRepository()
	backend := "memory"
	var recordCache *service.CacheService
	if redisClient != nil {
		prefRepo = repository.NewPreferenceRepository(redisClient, cfg.Preferences.Key, logr)
		backend = "redis"
		recordCache = service.NewCacheService(repository.NewCacheRepository(redisClient, logr), metrics, cfg.Cache.TTL, logr, cfg.Cache.Enabled)
	}

	preferences := service.NewPreferenceService(prefRepo, models.Theme(cfg.Preferences.DefaultTheme), logr)
	if err := preferences.Load(ctx); err != nil {
		logr.Warn("preferences unavailable, using defaults", zap.Error(err))
	}

	studentViews := service.NewViewService[*models.Student](listing.StudentSchema(), students, loader, nil, metrics, cfg.Views, logr).WithCache(recordCache)
	teacherViews := service.NewViewService[*models.Teacher](listing.TeacherSchema(), teachers, loader, nil, metrics, cfg.Views, logr).WithCache(recordCache)
	go studentViews.RunSweeper(ctx, cfg.Views.SweepInterval)
	go teacherViews.RunSweeper(ctx, cfg.Views.SweepInterval)

	exports := service.NewExportService(cfg.Exports.Enabled, logr)

	r := router.New(cfg, router.Dependencies{
		Logger:            logr,
		Metrics:           metrics,
		Preferences:       preferences,
		MetricsHandler:    handler.NewMetricsHandler(metrics, backend),
		PreferenceHandler: handler.NewPreferenceHandler(preferences),
		StudentViews:      handler.NewViewHandler[*models.Student](studentViews, exports, func() *models.Student { return &models.Student{} }),
		TeacherViews:      handler.NewViewHandler[*models.Teacher](teacherViews, exports, func() *models.Teacher { return &models.Teacher{} }),
		StudentDetails:    handler.NewDetailHandler[*models.Student](service.NewDetailService[*models.Student](students, logr).WithCache(recordCache)),
		TeacherDetails:    handler.NewDetailHandler[*models.Teacher](service.NewDetailService[*models.Teacher](teachers, logr).WithCache(recordCache)),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env, "store", cfg.Store.BaseURL, "preferences", backend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}

	studentViews.Close()
	teacherViews.Close()
	loader.Stop()
}
