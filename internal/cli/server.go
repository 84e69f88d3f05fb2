package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"
	"options-quiz-service/internal/app"
	"options-quiz-service/internal/auth"
	"options-quiz-service/internal/config"
	"options-quiz-service/internal/domain"
	"options-quiz-service/internal/infra/finnhub"
	"options-quiz-service/internal/infra/kafka"
	"options-quiz-service/internal/infra/memory"
	"options-quiz-service/internal/infra/payments"
	"options-quiz-service/internal/infra/postgres"
	rediscache "options-quiz-service/internal/infra/redis"
	"options-quiz-service/internal/infra/wikipedia"
	"options-quiz-service/internal/scenario"
	transport "options-quiz-service/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the quiz server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	log := config.NewLogger(cfg)

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg, log); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	verifier, err := auth.NewVerifier(cfg.Auth.JWTSecret, config.TTLDuration(cfg.Auth.TokenTTL, auth.DefaultTokenTTL))
	if err != nil {
		return err
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()
	}
	sessionTTL := config.TTLDuration(cfg.Quiz.SessionTTL, config.TTLDuration(cfg.Redis.TTL, 30*time.Minute))

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()
	}

	market := newFinnhubClient(cfg)
	profileTTL := config.TTLDuration(cfg.Finnhub.ProfileTTL, time.Hour)

	var (
		profiles     app.ProfileRepository
		entCache     app.EntitlementCache
		sessions     app.SessionRepository
		scores       app.ScoreStore
		subscription app.SubscriptionStore
	)
	if redisClient != nil {
		profiles = rediscache.NewProfileRepository(redisClient, market, profileTTL)
		entCache = rediscache.NewEntitlementCache(redisClient, config.TTLDuration(cfg.Entitlement.Retention, rediscache.DefaultEntitlementRetention))
		sessions = rediscache.NewSessionStore(redisClient, sessionTTL)
	} else {
		profiles = memory.NewProfileRepository(market, profileTTL)
		entCache = memory.NewEntitlementCache()
		sessions = memory.NewSessionStore()
	}
	if pool != nil {
		scores = postgres.NewScoreStore(pool)
		subscription = postgres.NewSubscriptionStore(pool)
	} else {
		log.Warn("postgres not configured, scores and subscriptions are kept in memory")
		scores = memory.NewScoreStore()
		subscription = memory.NewSubscriptionStore()
	}

	var publisher app.AttemptPublisher = app.NopPublisher{}
	if len(cfg.Kafka.Brokers) > 0 {
		p := kafka.NewAttemptPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer p.Close()
		publisher = p
	}

	if cfg.Stripe.SecretKey == "" {
		log.Warn("stripe secret key not configured, checkout will fail")
	}

	entitlements := app.NewEntitlementService(subscription, entCache, config.TTLDuration(cfg.Entitlement.Freshness, app.DefaultEntitlementFreshness), log)
	synth := scenario.NewSynthesizer(scenario.Options{
		Offsets:     scenarioOffsets(cfg),
		FutureRange: cfg.Scenario.FutureRange,
		ExpiryDays:  cfg.Scenario.ExpiryDays,
	})
	quizzes := app.NewQuizService(market, synth, entitlements, scores, sessions, app.QuizOptions{
		Publisher:    publisher,
		HistoryLimit: cfg.Quiz.HistoryLimit,
		Logger:       log,
	})
	marketService := app.NewMarketService(market, profiles,
		wikipedia.NewClient(cfg.Wikipedia.BaseURL, config.TTLDuration(cfg.Wikipedia.Timeout, wikipedia.DefaultTimeout)), log)
	checkout := app.NewCheckoutService(payments.NewStripeCheckout(cfg.Stripe.SecretKey), entitlements,
		cfg.Stripe.PriceID, cfg.Server.PublicURL, cfg.Quiz.RedirectSecs, log)

	router := transport.NewRouter(
		transport.NewHandler(quizzes, marketService, entitlements, checkout, log),
		transport.NewWSHandler(quizzes, log),
		verifier,
		log,
	)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.WithField("port", finalPort).Info("starting options quiz service")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("failed to start server")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Info("shutting down server")
	case <-ctx.Done():
		log.Info("context canceled, shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func newFinnhubClient(cfg config.Config) *finnhub.Client {
	hc := finnhub.DefaultHTTPConfig(cfg.Finnhub.APIKey)
	if cfg.Finnhub.BaseURL != "" {
		hc.BaseURL = cfg.Finnhub.BaseURL
	}
	if cfg.Finnhub.RequestsPerSecond > 0 {
		burst := cfg.Finnhub.Burst
		if burst <= 0 {
			burst = finnhub.DefaultBurst
		}
		hc.RateLimiter = rate.NewLimiter(rate.Limit(cfg.Finnhub.RequestsPerSecond), burst)
	}
	hc.RequestTimeout = config.TTLDuration(cfg.Finnhub.Timeout, finnhub.DefaultTimeout)
	return finnhub.NewClient(hc)
}

func scenarioOffsets(cfg config.Config) map[domain.StrategyKind]scenario.Offset {
	out := make(map[domain.StrategyKind]scenario.Offset, len(cfg.Scenario.Offsets))
	for kind, off := range cfg.Scenario.Offsets {
		out[domain.StrategyKind(kind)] = scenario.Offset{Strike: off.Strike, Premium: off.Premium}
	}
	return out
}
