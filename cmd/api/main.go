package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/luu-sac/ceramics-api/internal/category"
	"github.com/luu-sac/ceramics-api/internal/config"
	"github.com/luu-sac/ceramics-api/internal/events"
	"github.com/luu-sac/ceramics-api/internal/httpx"
	"github.com/luu-sac/ceramics-api/internal/order"
	"github.com/luu-sac/ceramics-api/internal/payos"
	"github.com/luu-sac/ceramics-api/internal/postgres"
	"github.com/luu-sac/ceramics-api/internal/product"
	"github.com/luu-sac/ceramics-api/internal/redisx"
	"github.com/luu-sac/ceramics-api/internal/user"

	_ "github.com/luu-sac/ceramics-api/docs"
)

// @title        Luu Sac Ceramics API
// @version      1.0
// @description  Storefront and admin API for the Luu Sac handcrafted ceramics shop.
// @BasePath     /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("postgres connect failed")
	}
	defer db.Close()

	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	var producer *events.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer = events.NewProducer(cfg.KafkaBrokers, cfg.ServiceName, 256)
		producer.Start(context.Background())
	}

	userRepo := user.NewPGRepo(db)
	userSvc := user.NewService(userRepo, user.NewRedisTokenStore(rdb), cfg.JWTSecret)

	categoryRepo := category.NewPGRepo(db)
	productRepo := product.NewPGRepo(db)

	gateway := payos.NewClient(cfg.PayOSBaseURL, cfg.PayOSClientID, cfg.PayOSAPIKey, cfg.PayOSChecksumKey)
	orderSvc := order.NewService(
		order.NewPGRepo(db),
		productRepo,
		gateway,
		producer,
		order.NewRedisStatusCache(rdb),
		cfg.WebURL,
	)

	router := httpx.NewRouter(httpx.Deps{
		Auth:       &httpx.AuthHandler{Svc: userSvc},
		Categories: &httpx.CategoryHandler{Repo: categoryRepo},
		Products:   &httpx.ProductHandler{Repo: productRepo},
		Orders:     &httpx.OrderHandler{Svc: orderSvc},
		Tokens:     userSvc,
		CORSOrigin: cfg.WebURL,
	})

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("api listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
	if producer != nil {
		producer.Close()
		producer.WaitClosed()
	}
}
