// @title                       Smart Plant API
// @version                     1.0
// @description                 Sensor ingest, actuator control and notifications for smart plant pots.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "smart_plant/docs"
	"smart_plant/internal/broker"
	"smart_plant/internal/config"
	"smart_plant/internal/handlers"
	"smart_plant/internal/logger"
	"smart_plant/internal/notifier"
	"smart_plant/internal/repository"
	"smart_plant/internal/repository/db"
	"smart_plant/internal/server"
	"smart_plant/internal/service"
	"smart_plant/internal/telemetry"

	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// load configs/config.yml, .env and SMART_PLANT_* overrides
	cfg, err := config.Load()
	if err != nil {
		logger.Get(logger.InfoLevel, logger.ConsoleFormat).Fatalw("error reading config", "err", err)
	}

	// init logger
	log := logger.Get(cfg.Log.Level, cfg.Log.Format)
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	// open DB
	sqlDB, err := db.InitDB(cfg.DB.Path)
	if err != nil {
		log.Fatalw("failed to init sqlite", "path", cfg.DB.Path, "err", err)
	}
	defer closeDB(sqlDB, log)

	// context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tickets := newTicketStore(ctx, cfg, log)
	deps := service.Deps{
		Notifier:  newNotifier(cfg, log),
		Publisher: newPublisher(cfg, log),
		Mirror:    newMirror(ctx, cfg, log),
		Log:       log,
	}
	defer deps.Publisher.Close()
	defer deps.Mirror.Close()

	// wire dependencies
	repos := repository.NewRepository(sqlDB, tickets)
	services := service.NewService(repos, service.OptionsFromConfig(cfg), deps)
	apiHandler := handlers.NewHandler(services, log)

	// start background workers
	go services.Dispatcher.Run(ctx)
	go services.Pruner.Run(ctx, cfg.Control.PruneInterval)

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, cfg, apiHandler, log)

	// graceful shutdown
	waitForShutdown(cancel, srv, log)
}

// newTicketStore prefers Redis so pending purge tickets survive restarts.
func newTicketStore(ctx context.Context, cfg *config.Config, log *logger.Logger) repository.PurgeTicketStore {
	if cfg.Redis.Addr == "" {
		return repository.NewMemoryPurgeStore(cfg.Admin.TicketTTL)
	}
	client, err := db.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.Fatalw("failed to connect to redis", "addr", cfg.Redis.Addr, "err", err)
	}
	log.Infow("purge tickets stored in redis", "addr", cfg.Redis.Addr)
	return repository.NewRedisPurgeStore(client, cfg.Admin.TicketTTL)
}

func newNotifier(cfg *config.Config, log *logger.Logger) notifier.Notifier {
	switch cfg.Notify.Provider {
	case "expo":
		return notifier.NewExpoNotifier(cfg.Notify.ExpoURL, cfg.Notify.ExpoAccessToken, cfg.Notify.Timeout)
	default:
		log.Infow("push notifications are logged only", "provider", cfg.Notify.Provider)
		return notifier.NewLogNotifier(log)
	}
}

func newPublisher(cfg *config.Config, log *logger.Logger) broker.Publisher {
	if cfg.MQTT.Broker == "" {
		return broker.NoopPublisher{}
	}
	pub, err := broker.Connect(broker.Config{
		BrokerURL:   cfg.MQTT.Broker,
		ClientID:    cfg.MQTT.ClientID,
		TopicPrefix: cfg.MQTT.TopicPrefix,
	})
	if err != nil {
		// devices still poll /ActuatorData, so the API runs without the broker
		log.Errorw("mqtt publisher disabled", "broker", cfg.MQTT.Broker, "err", err)
		return broker.NoopPublisher{}
	}
	return pub
}

func newMirror(ctx context.Context, cfg *config.Config, log *logger.Logger) telemetry.Mirror {
	if cfg.Influx.URL == "" {
		return telemetry.NoopMirror{}
	}
	m, err := telemetry.NewInfluxMirror(ctx, telemetry.InfluxConfig{
		URL:    cfg.Influx.URL,
		Token:  cfg.Influx.Token,
		Org:    cfg.Influx.Org,
		Bucket: cfg.Influx.Bucket,
	})
	if err != nil {
		log.Errorw("influx mirror disabled", "url", cfg.Influx.URL, "err", err)
		return telemetry.NoopMirror{}
	}
	return m
}

func closeDB(sqlDB *sql.DB, log *logger.Logger) {
	if err := sqlDB.Close(); err != nil {
		log.Errorw("failed to close sqlite", "err", err)
	}
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, cfg *config.Config, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		log.Infow("http server listening", "port", cfg.Port, "debug", cfg.Debug)
		if err := srv.Run(cfg.Port, handler.InitRoutes(cfg.Server.CORSOrigins)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// stop background goroutines
	cancel()

	// allow in-flight requests to complete
	ctx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}
