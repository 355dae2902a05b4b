package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rpupo63/portfolio-site-backend/api"
	"github.com/rpupo63/portfolio-site-backend/cache"
	"github.com/rpupo63/portfolio-site-backend/config"
	"github.com/rpupo63/portfolio-site-backend/database"
	"github.com/rpupo63/portfolio-site-backend/models"
	"github.com/rpupo63/portfolio-site-backend/services"
	"github.com/rpupo63/portfolio-site-backend/storage"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	log.Info().Msg("Initializing app...")

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("Error loading .env file")
	}

	c := config.New()
	ctx := context.Background()

	if path := config.GetString(c, "SSM_PARAMETER_PATH", ""); path != "" {
		if err := config.LoadSSM(ctx, c, path); err != nil {
			log.Fatal().Err(err).Msg("Error loading SSM parameters")
		}
	}

	level, err := zerolog.ParseLevel(strings.ToLower(config.GetString(c, "LOG_LEVEL", "info")))
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	db, err := database.Open(databaseDSN(c), database.Options{
		ReplicaDSNs:   config.GetList(c, "DATABASE_REPLICA_URLS"),
		SlowThreshold: config.GetDuration(c, "DB_SLOW_QUERY_THRESHOLD", 10*time.Second),
		MaxOpenConns:  config.GetInt(c, "DB_MAX_OPEN_CONNS", 0),
		MaxIdleConns:  config.GetInt(c, "DB_MAX_IDLE_CONNS", 0),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Error connecting to database")
	}
	currentDB := database.New(db)

	// Test database connection
	if err := currentDB.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("Error testing database connection")
	}

	// If generating models, run generation and exit
	if config.GetBool(c, "GENERATE_MODELS", false) {
		log.Info().Msg("Generating models and query helpers...")
		if err := models.GenerateModels(db); err != nil {
			log.Fatal().Err(err).Msg("Error generating models")
		}
		return
	}

	// If generating column mismatch report, run report and exit
	if config.GetBool(c, "GENERATE_COLUMN_REPORT", false) {
		log.Info().Msg("Generating column mismatch report...")
		if err := models.GenerateColumnMismatchReportStandalone(db); err != nil {
			log.Fatal().Err(err).Msg("Error generating column report")
		}
		return
	}

	if err := currentDB.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("Error migrating database")
	}

	store, err := storage.FromConfig(ctx, c)
	if err != nil {
		log.Fatal().Err(err).Msg("Error configuring blob store")
	}
	if closer, ok := store.(io.Closer); ok {
		defer closer.Close()
	}

	var contentCache cache.Cache = cache.Noop{}
	if addr := config.GetString(c, "REDIS_URL", ""); addr != "" {
		rdb, err := cache.NewRedisClient(ctx, addr)
		if err != nil {
			log.Warn().Err(err).Msg("Redis unavailable, serving without cache")
		} else {
			defer rdb.Close()
			contentCache = cache.NewRedisCache(rdb, config.GetString(c, "CACHE_PREFIX", "portfolio:"))
		}
	}

	// Remove media of projects whose deletion did not finish last time
	if _, err := services.NewProjectRemover(currentDB.ProjectRepo(), store).Sweep(ctx); err != nil {
		log.Error().Err(err).Msg("Startup sweep failed")
	}

	// Both Start and listenToInterrupt may send, only the first is received
	errChannel := make(chan error, 2)

	server, err := api.NewServer(api.Dependencies{
		Database: currentDB,
		Store:    store,
		Cache:    contentCache,
		Notifier: contactNotifier(c),
		Config:   c,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing server")
	}

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	log.Info().Msgf("Closing server: %v", fatalErr)

	server.ShutdownGracefully(30 * time.Second)

	if err := currentDB.Close(); err != nil {
		log.Error().Err(err).Msg("Error closing database")
	}
}

// databaseDSN prefers DATABASE_URL and otherwise builds a DSN from the DB_* keys.
func databaseDSN(c map[string]string) string {
	if url := config.GetString(c, "DATABASE_URL", ""); url != "" {
		return url
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		config.GetString(c, "DB_HOST", "localhost"),
		config.GetString(c, "DB_USER", "postgres"),
		config.GetString(c, "DB_PASSWORD", ""),
		config.GetString(c, "DB_NAME", "portfolio"),
		config.GetString(c, "DB_PORT", "5432"),
		config.GetString(c, "DB_SSLMODE", "require"),
	)
}

func contactNotifier(c map[string]string) *services.ContactNotifier {
	var email services.EmailSender
	if apiKey := config.GetString(c, "RESEND_API_KEY", ""); apiKey != "" {
		email = services.NewResendClient(apiKey, config.GetString(c, "RESEND_FROM_EMAIL", "onboarding@resend.dev"))
	} else {
		log.Warn().Msg("RESEND_API_KEY not set, contact messages cannot be delivered")
	}

	opts := []services.ContactNotifierOption{}
	if to := config.GetString(c, "CONTACT_TO_EMAIL", ""); to != "" {
		opts = append(opts, services.WithRecipient(to))
	}

	sid := config.GetString(c, "TWILIO_ACCOUNT_SID", "")
	token := config.GetString(c, "TWILIO_AUTH_TOKEN", "")
	smsTo := config.GetString(c, "TWILIO_TO_NUMBER", "")
	if sid != "" && token != "" && smsTo != "" {
		sms := services.NewTwilioSMS(sid, token, config.GetString(c, "TWILIO_FROM_NUMBER", ""))
		opts = append(opts, services.WithSMS(sms, smsTo))
	}

	return services.NewContactNotifier(email, opts...)
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
