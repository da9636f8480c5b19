package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"falcon9/internal/artifact"
	"falcon9/internal/auth"
	"falcon9/internal/config"
	cronrunner "falcon9/internal/cron"
	"falcon9/internal/handler"
	"falcon9/internal/logger"
	"falcon9/internal/prediction"

	_ "falcon9/docs"
)

func main() {
	cfgPath := os.Getenv("F9_CONFIG")
	if cfgPath == "" {
		cfgPath = "config/config.yaml"
	}

	envOnly := false
	if envOnlyRaw := os.Getenv("F9_ENV_ONLY"); envOnlyRaw != "" {
		envOnly = strings.EqualFold(envOnlyRaw, "true") || envOnlyRaw == "1"
	}

	cfg, err := config.Load(cfgPath, envOnly)
	if err != nil {
		panic(err)
	}

	logger, err := logger.New(cfg.Log)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	paths := artifact.DefaultSearchPaths(cfg.Model.Name, cfg.Model.Path, cfg.Model.ProjectRoot)
	slot := &artifact.Slot{}
	retrier := &artifact.Retrier{
		Loader: &artifact.Loader{Candidates: paths.Candidates(), Logger: logger},
		Slot:   slot,
		Logger: logger,
	}
	if loaded, err := retrier.Ensure(ctx); err != nil {
		logger.Warn("model not loaded at startup, predictions unavailable until it is", zap.Error(err))
	} else {
		logger.Info("model loaded",
			zap.String("name", loaded.Pipeline.Name),
			zap.String("version", loaded.Pipeline.Version),
			zap.String("source", loaded.Source.Name),
			zap.String("path", loaded.Source.Path),
		)
	}

	svc := &prediction.Service{Source: slot, Logger: logger}

	if strings.EqualFold(cfg.App.Env, "dev") {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(handler.RequestID())
	engine.Use(handler.AccessLog(logger))
	engine.Use(handler.CORS())
	engine.Use(handler.LimitBody(cfg.Server.MaxBodyBytes))
	if cfg.Auth.Enabled {
		if cfg.Auth.JWTSecret == "" {
			logger.Fatal("auth enabled without jwt secret", zap.Error(auth.ErrNoSecret))
		}
		engine.Use(auth.RequireBearer(auth.JWT{
			Secret:   []byte(cfg.Auth.JWTSecret),
			Issuer:   cfg.Auth.Issuer,
			TokenTTL: cfg.Auth.TokenTTL,
		}, logger))
	}

	healthHandler := &handler.HealthHandler{Service: svc}
	healthHandler.Register(engine)
	predictionHandler := &handler.PredictionHandler{Service: svc, Logger: logger}
	predictionHandler.Register(engine)
	modelHandler := &handler.ModelHandler{Service: svc, Retrier: retrier}
	modelHandler.Register(engine)

	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: engine,
	}

	cronRunner := cronrunner.New(logger, ctx)
	if cfg.Cron.Enabled && slot.Get() == nil {
		var retryID cron.EntryID
		retryID, err = cronRunner.Add("model-retry", cfg.Cron.ModelRetry, func(ctx context.Context) {
			if retrier.Run(ctx) {
				loaded := slot.Get()
				logger.Info("model loaded by retry",
					zap.String("source", loaded.Source.Name),
					zap.String("path", loaded.Source.Path),
				)
			}
			if slot.Get() != nil {
				cronRunner.Remove(retryID)
			}
		})
		if err != nil {
			logger.Warn("cron register model retry failed", zap.Error(err))
		}
	}
	cronRunner.Start()
	defer cronRunner.Stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("http server starting", zap.String("addr", cfg.Server.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutdown requested")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	if err := g.Wait(); err != nil {
		logger.Error("server error", zap.Error(err))
	}
}
