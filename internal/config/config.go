package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type (
	Container struct {
		App        *App
		Token      *Token
		HTTP       *HTTP
		Redis      *Redis
		StationAPI *StationAPI
		Countries  *Countries
		Session    *Session
		Notify     *Notify
	}

	App struct {
		Name string
		Env  string
	}

	// Token holds the secret shared with the station-control API.
	Token struct {
		Secret string
	}

	HTTP struct {
		Env             string
		Port            string
		AllowedOrigins  string
		URL             string
		MaxUploadBytes  int64
		ShutdownTimeout time.Duration
	}

	Redis struct {
		Address  string
		Password string
		DB       int
	}

	StationAPI struct {
		BaseURL         string
		Timeout         time.Duration
		Retries         int
		PerRetryTimeout time.Duration
		Backoff         time.Duration
	}

	Countries struct {
		CacheTTL time.Duration
	}

	Session struct {
		TTL time.Duration
	}

	Notify struct {
		WebhookURL     string
		WebhookTimeout time.Duration
	}
)

// New reads the configuration from the environment. Outside production a
// .env file is loaded first when present.
func New() (*Container, error) {
	if env := os.Getenv("APP_ENV"); env != "prod" && env != "production" {
		if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	p := &parser{}

	app := &App{
		Name: getEnv("APP_NAME", "station_control_console"),
		Env:  getEnv("APP_ENV", "local"),
	}

	token := &Token{
		Secret: os.Getenv("TOKEN_SECRET"),
	}

	http := &HTTP{
		Port:            getEnv("HTTP_PORT", "8080"),
		AllowedOrigins:  getEnv("ALLOWED_ORIGINS", "http://localhost:3000"),
		URL:             os.Getenv("HTTP_URL"),
		Env:             app.Env,
		MaxUploadBytes:  int64(p.int("HTTP_MAX_UPLOAD_BYTES", 8<<20)),
		ShutdownTimeout: p.duration("HTTP_SHUTDOWN_TIMEOUT", 10*time.Second),
	}

	redis := &Redis{
		Address:  getEnv("REDIS_ADDRESS", "localhost:6379"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       p.int("REDIS_DB", 0),
	}

	stationAPI := &StationAPI{
		BaseURL:         os.Getenv("STATION_API_URL"),
		Timeout:         p.duration("STATION_API_TIMEOUT", 0),
		Retries:         p.int("STATION_API_RETRIES", 3),
		PerRetryTimeout: p.duration("STATION_API_PER_RETRY_TIMEOUT", 5*time.Second),
		Backoff:         p.duration("STATION_API_BACKOFF", 500*time.Millisecond),
	}

	countries := &Countries{
		CacheTTL: p.duration("COUNTRIES_CACHE_TTL", time.Hour),
	}

	session := &Session{
		TTL: p.duration("FORM_SESSION_TTL", 30*time.Minute),
	}

	notify := &Notify{
		WebhookURL:     os.Getenv("NOTIFY_WEBHOOK_URL"),
		WebhookTimeout: p.duration("NOTIFY_WEBHOOK_TIMEOUT", 10*time.Second),
	}

	if p.err != nil {
		return nil, p.err
	}
	if token.Secret == "" {
		return nil, errors.New("TOKEN_SECRET is required")
	}
	if stationAPI.BaseURL == "" {
		return nil, errors.New("STATION_API_URL is required")
	}

	return &Container{
		App:        app,
		Token:      token,
		HTTP:       http,
		Redis:      redis,
		StationAPI: stationAPI,
		Countries:  countries,
		Session:    session,
		Notify:     notify,
	}, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// parser keeps the first malformed value it meets.
type parser struct {
	err error
}

func (p *parser) int(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		p.fail(key, v, err)
		return def
	}
	return parsed
}

func (p *parser) duration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		p.fail(key, v, err)
		return def
	}
	return parsed
}

func (p *parser) fail(key, value string, err error) {
	if p.err == nil {
		p.err = fmt.Errorf("invalid %s=%q: %w", key, value, err)
	}
}
