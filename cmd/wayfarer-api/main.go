// README: Entry point; loads config, wires collaborators and stores, starts the HTTP server.
package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"wayfarer/internal/app"
	"wayfarer/internal/config"
	httptransport "wayfarer/internal/http"
	"wayfarer/internal/http/handlers"
	"wayfarer/internal/http/middleware"
	"wayfarer/internal/infra"
	"wayfarer/internal/logger"
	"wayfarer/internal/modules/itinerary"
	"wayfarer/internal/modules/quota"
	"wayfarer/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	lg := logger.Must(cfg.Log.Level, cfg.Log.Format)
	defer func() { _ = lg.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, lg); err != nil {
		lg.Fatal("wayfarer-api stopped", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config.Config, lg *zap.Logger) error {
	var verifier infra.TokenVerifier
	switch {
	case cfg.Firebase.DevTokens:
		lg.Warn("accepting dev:<uid> bearer tokens; do not enable in production")
		verifier = infra.DevVerifier{}
	case cfg.Firebase.ProjectID == "":
		return errors.New("WAYFARER_FIREBASE_PROJECT_ID is required")
	default:
		v, err := infra.NewFirebaseVerifier(ctx, cfg.Firebase.ProjectID, cfg.Firebase.CredentialsFile)
		if err != nil {
			return err
		}
		verifier = v
	}

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		return err
	}
	defer dbPool.Close()

	redisClient, err := infra.NewRedis(ctx, cfg.Redis.Addr)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	collab, err := app.BuildCollaborators(ctx, cfg, lg)
	if err != nil {
		return err
	}
	defer collab.Close()

	planner := service.NewTripPlanner(collab.Collaborators, cfg.Planner, lg.Named("planner"))
	plans := itinerary.NewService(itinerary.NewStore(dbPool))
	quotaSvc := quota.NewService(quota.NewStore(dbPool, cfg.Quota.MonthlyPlans))

	gin.SetMode(gin.ReleaseMode)
	router := httptransport.NewRouter(httptransport.RouterDeps{
		Planner:  planner,
		Analyzer: planner,
		Plans:    plans,
		Quota:    quotaSvc,
		Verifier: verifier,
		Redis:    redisClient,
		RateLimit: middleware.RateLimitConfig{
			Requests: cfg.RateLimit.Requests,
			Window:   cfg.RateLimit.Window,
		},
		Plan: handlers.PlanHandlerConfig{
			PlanTimeout: cfg.Planner.PlanTimeout,
			MaxTripDays: cfg.Planner.MaxTripDays,
		},
		Logger: lg.Named("http"),
	})

	return httptransport.NewServer(cfg.HTTP.Addr, router, lg).Run(ctx)
}
