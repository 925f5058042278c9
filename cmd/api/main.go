package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/therapy-scheduler/internal/audit"
	"github.com/BruksfildServices01/therapy-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/therapy-scheduler/internal/db"
	"github.com/BruksfildServices01/therapy-scheduler/internal/infra/cache"
	infraRepo "github.com/BruksfildServices01/therapy-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/therapy-scheduler/internal/jobs"
	"github.com/BruksfildServices01/therapy-scheduler/internal/logger"
	"github.com/BruksfildServices01/therapy-scheduler/internal/middleware"
	"github.com/BruksfildServices01/therapy-scheduler/internal/report"
	"github.com/BruksfildServices01/therapy-scheduler/internal/routes"
	"github.com/BruksfildServices01/therapy-scheduler/internal/timezone"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat, "therapy-scheduler")
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	db, err := dbpkg.NewDB(cfg, log)
	if err != nil {
		log.Fatal("database init failed", zap.Error(err))
	}

	if err := dbpkg.SeedAdmin(context.Background(), db, cfg, log); err != nil {
		log.Fatal("admin seed failed", zap.Error(err))
	}

	loc := timezone.Location(cfg.Timezone)

	// ======================================================
	// AUDITORIA
	// ======================================================
	dispatcher := audit.NewDispatcher(audit.New(db), log)

	// ======================================================
	// RASCUNHOS DE LOTE (redis ou memória)
	// ======================================================
	var kv cache.KV = cache.NewMemoryKV()
	if cfg.RedisAddr != "" {
		rdb := cache.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn("redis unavailable, drafts kept in memory", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		} else {
			kv = cache.NewRedisKV(rdb)
			defer rdb.Close()
		}
		cancel()
	}

	// ======================================================
	// RELATÓRIOS
	// ======================================================
	logo, err := report.LoadLogo(cfg.ReportLogoPath)
	if err != nil {
		log.Warn("report logo not loaded", zap.String("path", cfg.ReportLogoPath), zap.Error(err))
		logo = nil
	}
	pdf := report.NewPDFRenderer(report.Branding{
		OrgName:  cfg.ReportOrgName,
		Subtitle: cfg.ReportOrgSubtitle,
		Logo:     logo,
	}, loc)

	var archive report.Archive
	if s3 := report.NewS3Archive(report.S3Config{
		Bucket:    cfg.S3Bucket,
		Region:    cfg.S3Region,
		Endpoint:  cfg.S3Endpoint,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
	}); s3 != nil {
		archive = s3
	}

	// ======================================================
	// LIMPEZA DE AVISOS
	// ======================================================
	sweeper := jobs.NewNoticeSweeper(infraRepo.NewNoticeGormRepository(db), log, nil)
	if err := sweeper.Start(cfg.NoticeSweepSpec); err != nil {
		log.Fatal("notice sweeper init failed", zap.Error(err))
	}

	// ======================================================
	// HTTP
	// ======================================================
	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.AccessLog(log),
		middleware.Recovery(log),
		middleware.CORSMiddleware(cfg.CORSOrigins...),
	)

	routes.RegisterRoutes(r, routes.Deps{
		DB:      db,
		Config:  cfg,
		Log:     log,
		Loc:     loc,
		Drafts:  cache.NewDraftStore(kv, cfg.DraftTTL),
		Audit:   dispatcher,
		PDF:     pdf,
		Archive: archive,
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		log.Info("server running", zap.String("addr", cfg.Addr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("shutdown", zap.Error(err))
	}

	sweeper.Stop()
	dispatcher.Close()
	log.Info("server stopped")
}
