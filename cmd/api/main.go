package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"server/internal/adapter/repo"
	"server/internal/http/handlers"
	"server/internal/http/httpapi"
	"server/internal/infra"
	"server/internal/infra/geoip"
	"server/internal/infra/identity"
	"server/internal/providers/payment"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		// No logger yet; a missing store URI is the one fatal startup case.
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	// Store connection happens exactly once, here. A handler never
	// observes a disconnected store.
	ctx := context.Background()
	client, db, err := infra.ConnectMongo(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect store")
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	if cfg.FirebaseProjectID == "" {
		logger.Warn().Msg("identity provider not configured; guarded routes will reject all requests")
	}
	verifier := identity.NewVerifier(cfg.IdentityIssuerBase, cfg.FirebaseProjectID)

	countries, err := geoip.NewResolver(cfg.GeoIPDBPath)
	if err != nil {
		logger.Warn().Err(err).Msg("geoip database unavailable; request logs will omit country")
	}

	bridge := payment.NewStripeBridge(payment.StripeOptions{
		SecretKey: cfg.StripeSecretKey,
		BaseURL:   cfg.StripeBaseURL,
		Currency:  cfg.PaymentCurrency,
	})

	users := repo.NewUserRepository(db)
	app := handlers.NewApp(
		users,
		repo.NewDonationRepository(db),
		repo.NewFundRepository(db),
		repo.NewGeoRepository(db),
		bridge,
		logger,
	)

	router := httpapi.NewRouter(app, httpapi.Options{
		Verifier:        verifier,
		AdminLookup:     users,
		Logger:          logger,
		Countries:       countries,
		CORSOrigins:     cfg.CORSOrigins,
		RateLimitPerMin: cfg.RateLimitPerMin,
	})

	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
