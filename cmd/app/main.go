package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"farmtrade/cmd"
	httpadapter "farmtrade/internal/adapters/in/http"
	"farmtrade/internal/adapters/out/postgres"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const (
	dbPingAttempts  = 30
	dbPingInterval  = 2 * time.Second
	shutdownTimeout = 10 * time.Second
)

func main() {
	configs := getConfigs()
	logger := newLogger(configs.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sqlDB, err := openDatabase(ctx, configs.DSN(), logger)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer sqlDB.Close()

	gormDB, err := gorm.Open(gorm_postgres.New(gorm_postgres.Config{Conn: sqlDB}), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("gorm: %v", err)
	}
	if err = postgres.Migrate(gormDB); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	app, err := cmd.NewCompositionRoot(ctx, configs, gormDB, logger)
	if err != nil {
		log.Fatalf("composition root: %v", err)
	}

	jobs := app.CreateJobManager()
	if err = jobs.StartAll(); err != nil {
		log.Fatalf("jobs: %v", err)
	}

	e, err := newWebServer(app, logger)
	if err != nil {
		log.Fatalf("http: %v", err)
	}

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Error("http server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err = e.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Warn("http shutdown")
	}
	jobs.StopAll()
	if err = app.Close(shutdownCtx); err != nil {
		logger.WithError(err).Warn("release resources")
	}
}

func getConfigs() cmd.Config {
	// .env is optional; real environment variables win.
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	return cmd.Config{
		HTTPPort:                envOr("HTTP_PORT", "8080"),
		DBHost:                  envOr("DB_HOST", "localhost"),
		DBPort:                  envOr("DB_PORT", "5432"),
		DBUser:                  os.Getenv("DB_USER"),
		DBPassword:              os.Getenv("DB_PASSWORD"),
		DBName:                  os.Getenv("DB_NAME"),
		DBSslMode:               os.Getenv("DB_SSLMODE"),
		KafkaBrokers:            os.Getenv("KAFKA_BROKERS"),
		KafkaNotificationsTopic: os.Getenv("KAFKA_NOTIFICATIONS_TOPIC"),
		ListingCatalogURL:       os.Getenv("LISTING_CATALOG_URL"),
		TransportAverageSpeed:   os.Getenv("TRANSPORT_AVERAGE_SPEED_KMH"),
		PaymentRedriveSchedule:  os.Getenv("PAYMENT_REDRIVE_SCHEDULE"),
		OtelExporterEndpoint:    os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		LogLevel:                envOr("LOG_LEVEL", "info"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func newLogger(level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		logger.WithField("level", level).Warn("unknown log level, using info")
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)
	return logger
}

// openDatabase waits for Postgres to accept connections.
func openDatabase(ctx context.Context, dsn string, logger *logrus.Logger) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	for attempt := 1; ; attempt++ {
		err = db.PingContext(ctx)
		if err == nil {
			logger.Info("database connection established")
			return db, nil
		}
		if attempt == dbPingAttempts {
			break
		}
		logger.WithField("attempt", attempt).Info("waiting for database")

		select {
		case <-ctx.Done():
			_ = db.Close()
			return nil, ctx.Err()
		case <-time.After(dbPingInterval):
		}
	}

	_ = db.Close()
	return nil, fmt.Errorf("database not reachable after %d attempts: %w", dbPingAttempts, err)
}

func newWebServer(app *cmd.CompositionRoot, logger *logrus.Logger) (*echo.Echo, error) {
	doc, err := httpadapter.LoadAPIDoc()
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	httpadapter.NewServer(app.UseCases(), doc, logger).Register(e)
	return e, nil
}
