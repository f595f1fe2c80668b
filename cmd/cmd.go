package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"couple-companion-backend/internal/config"
	"couple-companion-backend/internal/database"
	"couple-companion-backend/internal/handlers"
	"couple-companion-backend/internal/middleware"
	"couple-companion-backend/internal/repository"
	"couple-companion-backend/internal/services"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func Run() {
	// Load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Setup logger
	setupLogger(cfg.Log.Level)

	// Connect to database
	db, err := pgxpool.New(context.Background(), cfg.Database.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to ping database")
	}
	log.Info().Msg("Database connection established")

	// Apply pending schema migrations
	if err := database.RunMigrations(cfg.Database.MigrateURL()); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}
	log.Info().Msg("Database schema up to date")

	// Initialize repositories
	profileRepo := repository.NewProfileRepository(db)
	coupleRepo := repository.NewCoupleRepository(db)
	petRepo := repository.NewPetRepository(db)
	outfitRepo := repository.NewOutfitRepository(db)
	walletRepo := repository.NewWalletRepository(db)
	streakRepo := repository.NewStreakRepository(db)
	calendarRepo := repository.NewCalendarRepository(db)
	momentRepo := repository.NewMomentRepository(db)
	nudgeRepo := repository.NewNudgeRepository(db)
	locationRepo := repository.NewLocationRepository(db)

	// Initialize services
	authService := services.NewAuthService(profileRepo, coupleRepo, cfg.JWT.Secret)
	coupleService := services.NewCoupleService(coupleRepo, profileRepo)
	petService := services.NewPetService(petRepo, outfitRepo)
	walletService := services.NewWalletService(walletRepo, outfitRepo)

	streakLocation, err := time.LoadLocation(cfg.Streak.Timezone)
	if err != nil {
		log.Fatal().Err(err).Str("timezone", cfg.Streak.Timezone).Msg("Invalid streak timezone")
	}
	streakService := services.NewStreakService(streakRepo, streakLocation)

	calendarService := services.NewCalendarService(calendarRepo)

	storage, err := services.NewS3Storage(
		context.Background(),
		cfg.AWS.Region,
		cfg.AWS.S3Bucket,
		cfg.AWS.AccessKey,
		cfg.AWS.SecretKey,
		cfg.AWS.Endpoint,
	)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create object storage")
	}
	momentService := services.NewMomentService(momentRepo, storage)

	nudgeService := services.NewNudgeService(nudgeRepo, profileRepo)
	locationService := services.NewLocationService(locationRepo)

	pushService, err := services.NewPushService(
		cfg.APNs.KeyFile,
		cfg.APNs.KeyID,
		cfg.APNs.TeamID,
		cfg.APNs.Topic,
		cfg.APNs.Production,
	)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create push service")
	}
	if !pushService.Enabled() {
		log.Warn().Msg("Push notifications disabled: no APNs key configured")
	}

	wsHub := services.NewWSHub()

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	coupleHandler := handlers.NewCoupleHandler(coupleService, authService, wsHub)
	petHandler := handlers.NewPetHandler(petService, walletService, authService, wsHub)
	shopHandler := handlers.NewShopHandler(walletService, authService, wsHub)
	walletHandler := handlers.NewWalletHandler(walletService, authService, wsHub)
	streakHandler := handlers.NewStreakHandler(streakService, walletService, authService, wsHub)
	calendarHandler := handlers.NewCalendarHandler(calendarService, walletService, authService, wsHub)
	momentHandler := handlers.NewMomentHandler(momentService, walletService, authService, wsHub)
	nudgeHandler := handlers.NewNudgeHandler(nudgeService, walletService, authService, pushService, wsHub)
	locationHandler := handlers.NewLocationHandler(locationService, authService, wsHub)
	wsHandler := handlers.NewWebSocketHandler(wsHub, authService)

	// Setup router
	r := chi.NewRouter()

	// Middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(corsMiddleware)

	// Routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public routes
		r.Post("/auth/signup", authHandler.SignUp)
		r.Post("/auth/signin", authHandler.SignIn)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(authService))

			r.Get("/me", authHandler.GetMe)
			r.Put("/me/push-token", authHandler.UpdatePushToken)

			r.Post("/couples", coupleHandler.CreateCouple)
			r.Post("/couples/join", coupleHandler.JoinCouple)

			r.Get("/pet", petHandler.GetPet)
			r.Post("/pet/feed", petHandler.FeedPet)
			r.Post("/pet/pat", petHandler.PatPet)
			r.Put("/pet/name", petHandler.RenamePet)
			r.Put("/pet/outfit", petHandler.EquipOutfit)

			r.Post("/kisses/earn", walletHandler.Earn)
			r.Get("/wallet", walletHandler.GetWallet)
			r.Get("/wallet/transactions", walletHandler.ListTransactions)

			r.Get("/shop/outfits", shopHandler.ListOutfits)
			r.Get("/shop/owned", shopHandler.ListOwned)
			r.Post("/shop/purchase", shopHandler.Purchase)

			r.Get("/streak", streakHandler.GetStreak)
			r.Post("/streak/checkin", streakHandler.CheckIn)

			r.Get("/calendar/events", calendarHandler.ListEvents)
			r.Post("/calendar/events", calendarHandler.CreateEvent)
			r.Delete("/calendar/events/{event_id}", calendarHandler.DeleteEvent)

			r.Get("/moments", momentHandler.ListMoments)
			r.Post("/moments", momentHandler.UploadMoment)
			r.Delete("/moments/{moment_id}", momentHandler.DeleteMoment)

			r.Get("/nudges", nudgeHandler.ListNudges)
			r.Get("/nudges/presets", nudgeHandler.ListPresets)
			r.Post("/nudges", nudgeHandler.SendNudge)
			r.Post("/nudges/read", nudgeHandler.MarkAllNudgesRead)
			r.Post("/nudges/{nudge_id}/read", nudgeHandler.MarkNudgeRead)

			r.Get("/locations", locationHandler.GetLocations)
			r.Put("/locations/me", locationHandler.UpdateLocation)
			r.Put("/locations/sharing", locationHandler.SetSharing)
		})
	})

	// WebSocket route
	r.Get("/ws", wsHandler.HandleWebSocket)

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("host", cfg.Server.Host).
			Int("port", cfg.Server.Port).
			Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// setupLogger configures zerolog logger
func setupLogger(level string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// corsMiddleware handles CORS
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
