package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"stem-inspires/controllers"
	"stem-inspires/middleware"
	"stem-inspires/payments"
	"stem-inspires/repository"
	"stem-inspires/routes"
	"stem-inspires/utils"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("No .env file found. Proceeding with environment variables.")
	}

	cfg, err := utils.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	logger := utils.NewLogger(cfg.Mode, cfg.LogLevel)

	// Set the JWT secret key
	utils.JwtKey = []byte(cfg.JWTSecret)

	// Connect to MongoDB
	client, err := utils.ConnectDB(cfg.MongoURI)
	if err != nil {
		logger.Fatal().Err(err).Msg("connect to MongoDB")
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(ctx); err != nil {
			logger.Error().Err(err).Msg("disconnect from MongoDB")
		}
	}()
	db := client.Database(cfg.MongoDB)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	err = repository.EnsureIndexes(ctx, db)
	cancel()
	if err != nil {
		logger.Fatal().Err(err).Msg("create indexes")
	}

	// Repositories and file storage
	paymentRepo := repository.NewPaymentRepo(db)
	championRepo := repository.NewChampionRepo(db)
	schoolRepo := repository.NewSchoolRepo(db)
	fllRepo := repository.NewFLLRepo(db)
	bannerRepo := repository.NewBannerRepo(db)
	adminRepo := repository.NewAdminRepo(db)

	images, err := utils.NewImageStore(cfg.PublicDir, utils.ChampionImages, utils.SchoolImages)
	if err != nil {
		logger.Fatal().Err(err).Msg("prepare upload directories")
	}

	// Payment providers; an unset provider answers with a gateway error
	var card payments.CardCheckout
	if cfg.StripeSecretKey != "" {
		card = payments.NewStripeGateway(cfg.StripeSecretKey, cfg.FrontendURL, nil)
	} else {
		logger.Warn().Msg("STRIPE_SECRET_KEY not set, Stripe donations disabled")
	}
	var orders payments.OrderCheckout
	if cfg.PayPalClientID != "" && cfg.PayPalClientSecret != "" {
		gw, err := payments.NewPayPalGateway(cfg.PayPalClientID, cfg.PayPalClientSecret, cfg.PayPal, cfg.FrontendURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("create PayPal client")
		}
		orders = gw
	} else {
		logger.Warn().Msg("PayPal credentials not set, PayPal donations disabled")
	}
	var notifier payments.Notifier
	if mail := utils.NewEmailService(cfg); mail != nil {
		notifier = mail
	}
	donations := payments.NewService(card, orders, paymentRepo, notifier, logger)

	// Initialize controllers
	c := routes.Controllers{
		Payments:  controllers.NewPaymentController(donations, cfg.PublicPaymentListing, logger),
		Admin:     controllers.NewAdminController(adminRepo, logger),
		Champions: controllers.NewChampionController(championRepo, images, logger),
		Schools:   controllers.NewSchoolController(schoolRepo, images, logger),
		FLL:       controllers.NewFLLController(fllRepo, logger),
		Banner:    controllers.NewBannerController(bannerRepo, championRepo, logger),
	}

	// Set up the router
	router := mux.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(logger))
	routes.RegisterRoutes(router, c, adminRepo, images.Root())

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           middleware.CORS(cfg.AllowedOrigins)(router),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		logger.Info().Str("port", cfg.Port).Str("mode", string(cfg.Mode)).Msg("server is running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server stopped")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown")
	}
	logger.Info().Msg("server stopped")
}
