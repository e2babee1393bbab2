package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	promclient "github.com/prometheus/client_golang/prometheus"
	redisClient "github.com/redis/go-redis/v9"

	handlers "github.com/sm8ta/station_control_console/internal/adapter/handler/http"
	"github.com/sm8ta/station_control_console/internal/adapter/notify"
	"github.com/sm8ta/station_control_console/internal/adapter/prometheus"
	"github.com/sm8ta/station_control_console/internal/adapter/redis"
	"github.com/sm8ta/station_control_console/internal/adapter/stationapi"
	"github.com/sm8ta/station_control_console/internal/config"
	"github.com/sm8ta/station_control_console/internal/core/ports"
	"github.com/sm8ta/station_control_console/internal/core/services"
)

type App struct {
	log      ports.LoggerPort
	cfg      *config.Container
	registry *services.FormRegistry
	server   *http.Server
	redis    *redisClient.Client
}

// New wires the console. The redis cache is optional at startup: when it is
// unreachable the country list is served straight from the station API.
func New(ctx context.Context, cfg *config.Container, log ports.LoggerPort) (*App, error) {
	const op = "app.New"

	// Cache
	redisConn := redisClient.NewClient(&redisClient.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := redisConn.Ping(ctx).Err(); err != nil {
		log.Warn("Redis is unreachable, country cache degraded", map[string]interface{}{
			"addr":  cfg.Redis.Address,
			"error": err.Error(),
		})
	}
	cache := redis.NewRedisAdapter(redisConn)

	// Observability
	metrics := prometheus.NewPrometheusAdapter(promclient.DefaultRegisterer)

	// Station API
	api, err := stationapi.NewClient(stationapi.Options{
		BaseURL:         cfg.StationAPI.BaseURL,
		Timeout:         cfg.StationAPI.Timeout,
		Retries:         cfg.StationAPI.Retries,
		PerRetryTimeout: cfg.StationAPI.PerRetryTimeout,
		Backoff:         cfg.StationAPI.Backoff,
	}, log)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	countryService := services.NewCountryService(api, cache, log, metrics, cfg.Countries.CacheTTL)

	// Validate
	draftValidator, err := services.NewDraftValidator(validator.New(), time.Now)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	// Notifications
	shared := notify.Fanout{notify.NewLogNotifier(log)}
	if cfg.Notify.WebhookURL != "" {
		shared = append(shared, notify.NewWebhookNotifier(cfg.Notify.WebhookURL, cfg.Notify.WebhookTimeout, log))
	}

	registry := services.NewFormRegistry(services.FormDeps{
		Validator: draftValidator,
		Countries: countryService,
		API:       api,
		Notifier:  shared,
		Logger:    log,
		Metrics:   metrics,
	}, func() ports.Inbox {
		return notify.NewInbox(notify.DefaultInboxSize)
	}, cfg.Session.TTL, time.Now)

	tokenService := handlers.NewJWTTokenService(cfg.Token.Secret, log)
	formHandler := handlers.NewEmployeeFormHandler(registry, log, metrics)
	countryHandler := handlers.NewCountryHandler(countryService, log, metrics)

	router, err := handlers.NewRouter(cfg.HTTP, tokenService, formHandler, countryHandler, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &App{
		log:      log,
		cfg:      cfg,
		registry: registry,
		server: &http.Server{
			Addr:              net.JoinHostPort(cfg.HTTP.URL, cfg.HTTP.Port),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		redis: redisConn,
	}, nil
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	const op = "app.Run"

	go a.registry.Run(ctx)

	errCh := make(chan error, 1)
	go func() {
		a.log.Info("Starting the HTTP server", map[string]interface{}{
			"addr": a.server.Addr,
		})
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("%s: %w", op, err)
		}
		return nil
	case <-ctx.Done():
	}

	a.log.Info("Shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.HTTP.ShutdownTimeout)
	defer cancel()

	err := a.server.Shutdown(shutdownCtx)
	if cerr := a.redis.Close(); cerr != nil {
		a.log.Warn("Failed to close redis", map[string]interface{}{
			"error": cerr.Error(),
		})
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	a.log.Info("Application stopped", nil)
	return nil
}
