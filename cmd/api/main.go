package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cimillas/aplay-admin/internal/app"
	"github.com/cimillas/aplay-admin/internal/cache"
	"github.com/cimillas/aplay-admin/internal/clock"
	"github.com/cimillas/aplay-admin/internal/config"
	"github.com/cimillas/aplay-admin/internal/media/local"
	"github.com/cimillas/aplay-admin/internal/notify"
	"github.com/cimillas/aplay-admin/internal/storage/postgres"
	transporthttp "github.com/cimillas/aplay-admin/internal/transport/http"
	"github.com/cimillas/aplay-admin/migrations"
	"github.com/jackc/pgx/v5/pgxpool"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "err", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(logger)

	startupCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool, err := pgxpool.New(startupCtx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("connect to db", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := pool.Ping(startupCtx); err != nil {
		logger.Error("db ping", "err", err)
		os.Exit(1)
	}
	if err := migrations.Apply(startupCtx, pool); err != nil {
		logger.Error("apply migrations", "err", err)
		os.Exit(1)
	}

	var invalidator cache.Invalidator = cache.Noop{}
	if cfg.RedisAddr != "" {
		redisInv, err := cache.NewRedisInvalidator(startupCtx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			logger.Error("connect to redis", "err", err)
			os.Exit(1)
		}
		defer redisInv.Close()
		invalidator = redisInv
		logger.Info("cache invalidation enabled", "addr", cfg.RedisAddr)
	}

	var notifier notify.Notifier = notify.NewConsole(logger)
	if cfg.AMQPURL != "" {
		amqpNotifier, err := notify.NewAMQP(cfg.AMQPURL, cfg.AMQPQueue)
		if err != nil {
			logger.Error("connect to amqp", "err", err)
			os.Exit(1)
		}
		defer amqpNotifier.Close()
		notifier = amqpNotifier
		logger.Info("amqp notifications enabled", "queue", cfg.AMQPQueue)
	}

	mediaStore, err := local.New(cfg.MediaPath, cfg.MediaBaseURL)
	if err != nil {
		logger.Error("init media store", "err", err)
		os.Exit(1)
	}

	clk := clock.NewSystem()

	eventRepo := postgres.NewEventRepository(pool)
	eventSvc := app.NewEventService(eventRepo, app.NewZoneReconciler(eventRepo), clk, invalidator, notifier)
	venueSvc := app.NewVenueService(postgres.NewVenueRepository(pool), clk, invalidator)
	bookingSvc := app.NewBookingService(postgres.NewBookingRepository(pool), invalidator, notifier)
	profileSvc := app.NewProfileService(postgres.NewProfileRepository(pool), invalidator)
	feedSvc := app.NewFeedService(postgres.NewFeedRepository(pool), clk, invalidator)
	categorySvc := app.NewCategoryService(postgres.NewCategoryRepository(pool), clk, invalidator)
	subscriptionSvc := app.NewSubscriptionService(postgres.NewSubscriptionRepository(pool), clk, invalidator)
	conciergeSvc := app.NewConciergeService(postgres.NewConciergeRepository(pool), invalidator, notifier)
	loyaltySvc := app.NewLoyaltyService(postgres.NewLoyaltyRepository(pool), clk, invalidator, notifier)
	podcastSvc := app.NewPodcastService(postgres.NewPodcastRepository(pool), clk, invalidator)
	dashboardSvc := app.NewDashboardService(postgres.NewStatsRepository(pool), clk)
	toggleSvc := app.NewToggleService(postgres.NewFlagRepository(pool), invalidator)

	adminMux := http.NewServeMux()
	adminMux.Handle("/admin/events", transporthttp.HandleEvents(eventSvc))
	adminMux.Handle("/admin/events/", transporthttp.HandleEventItem(eventSvc, toggleSvc))
	adminMux.Handle("/admin/venues", transporthttp.HandleVenues(venueSvc))
	adminMux.Handle("/admin/venues/", transporthttp.HandleVenueItem(venueSvc, toggleSvc))
	adminMux.Handle("/admin/bookings", transporthttp.HandleBookings(bookingSvc))
	adminMux.Handle("/admin/bookings/", transporthttp.HandleBookingItem(bookingSvc))
	adminMux.Handle("/admin/profiles", transporthttp.HandleProfiles(profileSvc))
	adminMux.Handle("/admin/profiles/", transporthttp.HandleProfileItem(profileSvc, toggleSvc))
	adminMux.Handle("/admin/feeds", transporthttp.HandleFeeds(feedSvc))
	adminMux.Handle("/admin/feeds/", transporthttp.HandleFeedItem(feedSvc, toggleSvc))
	adminMux.Handle("/admin/categories", transporthttp.HandleCategories(categorySvc))
	adminMux.Handle("/admin/categories/", transporthttp.HandleCategoryItem(categorySvc, toggleSvc))
	adminMux.Handle("/admin/plans", transporthttp.HandlePlans(subscriptionSvc))
	adminMux.Handle("/admin/plans/", transporthttp.HandlePlanItem(subscriptionSvc, toggleSvc))
	adminMux.Handle("/admin/subscriptions", transporthttp.HandleSubscriptions(subscriptionSvc))
	adminMux.Handle("/admin/subscriptions/", transporthttp.HandleSubscriptionItem(subscriptionSvc))
	adminMux.Handle("/admin/concierge", transporthttp.HandleConcierge(conciergeSvc))
	adminMux.Handle("/admin/concierge/", transporthttp.HandleConciergeItem(conciergeSvc))
	adminMux.Handle("/admin/tiers", transporthttp.HandleTiers(loyaltySvc))
	adminMux.Handle("/admin/tiers/", transporthttp.HandleTierItem(loyaltySvc))
	adminMux.Handle("/admin/points", transporthttp.HandlePoints(loyaltySvc))
	adminMux.Handle("/admin/points/", transporthttp.HandlePoints(loyaltySvc))
	adminMux.Handle("/admin/podcasts", transporthttp.HandlePodcasts(podcastSvc))
	adminMux.Handle("/admin/podcasts/", transporthttp.HandlePodcastItem(podcastSvc, toggleSvc))
	adminMux.Handle("/admin/dashboard", transporthttp.HandleDashboard(dashboardSvc))
	adminMux.Handle("/admin/media", transporthttp.HandleMedia(mediaStore))
	adminMux.Handle("/", transporthttp.NotFoundHandler())
	mux := http.NewServeMux()
	mux.HandleFunc("/health", transporthttp.HealthHandler)
	mux.Handle("/admin/", transporthttp.RequireAdmin(cfg.JWTSecret, adminMux))
	mux.Handle("/media/", http.StripPrefix("/media/", http.FileServer(http.Dir(cfg.MediaPath))))
	mux.Handle("/", transporthttp.NotFoundHandler())

	handler := transporthttp.RequestLogger(
		transporthttp.CORS(cfg.CORSOriginList(), mux),
		logger,
	)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	logger.Info("api listening", "port", cfg.Port)

	srvErr := make(chan error, 1)
	go func() {
		srvErr <- server.ListenAndServe()
	}()

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "err", err)
		}
	case <-stopCtx.Done():
		logger.Info("shutdown signal received, stopping server")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server shutdown error", "err", err)
	}
	logger.Info("server stopped")
}
