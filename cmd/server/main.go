package main

import (
	"context"
	"errors"
	"flag"
	"golf-coach/internal/config"
	"golf-coach/internal/ghin"
	"golf-coach/internal/handler"
	"golf-coach/internal/logger"
	"golf-coach/internal/service"
	"golf-coach/internal/store"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
)

func main() {
	configFile := flag.String("config", "", "config file path (e.g. etc/config-dev.yaml)")
	flag.Parse()

	cfg := config.Load(*configFile)
	logger.Init(cfg.Log)

	st, err := openStore(cfg)
	if err != nil {
		logger.Error("db connect failed", "err", err)
		os.Exit(1)
	}

	demoUserID := cfg.Server.DemoUserID
	if cfg.Server.Seed {
		u, err := store.Seed(context.Background(), st)
		if err != nil {
			logger.Error("seed failed", "err", err)
			os.Exit(1)
		}
		demoUserID = u.ID
	}

	if !cfg.GHINConfigured() {
		logger.Warn("ghin.disabled", "reason", "GHIN_CLIENT_ID or GHIN_CLIENT_SECRET not set")
	}
	if cfg.OpenAI.APIKey == "" {
		logger.Warn("openai.disabled", "reason", "OPENAI_API_KEY not set; practice plans use the fallback")
	}

	aiSvc := service.NewAIService(cfg.OpenAI.BaseURL, cfg.OpenAI.APIKey, cfg.OpenAI.Model, cfg.OpenAITimeout())
	ghinFactory := service.NewGHINClientFactory(ghin.Config{
		BaseURL:      cfg.GHIN.BaseURL,
		ClientID:     cfg.GHIN.ClientID,
		ClientSecret: cfg.GHIN.ClientSecret,
		HTTPClient:   &http.Client{Timeout: cfg.GHINTimeout()},
	})

	ghinSvc := service.NewGhinService(st, service.NewStateSigner(cfg.GHIN.StateSecret), ghinFactory, cfg.GHINRedirectURI())

	h := handler.Handlers{
		Stats:     handler.NewStatsHandler(service.NewStatsService(st)),
		Rounds:    handler.NewRoundHandler(service.NewRoundService(st), service.NewScreenshotService(aiSvc), cfg.Upload.Dir, cfg.MaxUploadBytes()),
		Activity:  handler.NewActivityHandler(service.NewActivityService(st)),
		Resources: handler.NewResourceHandler(service.NewResourceService(st)),
		Plans:     handler.NewPlanHandler(service.NewPlanService(st, aiSvc)),
		Ghin:      handler.NewGhinHandler(ghinSvc),
	}

	gin.SetMode(gin.ReleaseMode)
	r := handler.NewRouter(handler.RouterConfig{DemoUserID: demoUserID, CORSOrigins: cfg.Server.CORSOrigins}, h)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info("server starting", "addr", cfg.Addr(), "db", cfg.Database.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	logger.Info("server stopping")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "err", err)
	}
}

// openStore returns the in-process store for the memory driver and a
// migrated SQL store otherwise.
func openStore(cfg *config.Config) (store.Store, error) {
	db, err := cfg.OpenGormDB()
	if err != nil {
		return nil, err
	}
	if db == nil {
		return store.NewMemory(), nil
	}
	if err := store.Migrate(db); err != nil {
		return nil, err
	}
	return store.NewGorm(db), nil
}
