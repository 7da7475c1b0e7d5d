package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the backend.
type Config struct {
	App      AppConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Logger   LoggerConfig
	Auth     AuthConfig
	CRM      CRMConfig
	Report   ReportConfig
	Queue    QueueConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
	// LoopbackBaseURL is where local-only publishers reach the API
	// (the worker posts contact updates through it).
	LoopbackBaseURL string
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	MigrationsDir  string
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines token issuance parameters. The secret file lives in a
// module-private persistent directory, never under a volatile runtime tree.
type AuthConfig struct {
	SecretFile             string
	AccessTokenTTLSeconds  int
	RefreshTokenTTLSeconds int
}

// CRMConfig points at the caller-id lookup upstream.
type CRMConfig struct {
	BaseURL   string
	TimeoutMS int
}

// ReportConfig points at the call-history report upstream.
type ReportConfig struct {
	BaseURL   string
	TimeoutMS int
}

// QueueConfig names the worker job tubes.
type QueueConfig struct {
	JobsTube            string
	ReplyTimeoutSeconds int
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	port := getEnv("APP_PORT", "8088")

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "softphone-backend"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  port,
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
			LoopbackBaseURL:       getEnv("LOOPBACK_BASE_URL", "http://127.0.0.1:"+port),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2)),
			RunMigrations:  getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
			MigrationsDir:  getEnv("POSTGRES_MIGRATIONS_DIR", "migrations"),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			SecretFile:             getEnv("AUTH_SECRET_FILE", "/var/lib/softphone-backend/secret.key"),
			AccessTokenTTLSeconds:  getEnvAsInt("AUTH_ACCESS_TOKEN_TTL_SECONDS", 3600),
			RefreshTokenTTLSeconds: getEnvAsInt("AUTH_REFRESH_TOKEN_TTL_SECONDS", 2592000),
		},
		CRM: CRMConfig{
			BaseURL:   getEnv("CRM_BASE_URL", "http://127.0.0.1:8224"),
			TimeoutMS: getEnvAsInt("CRM_TIMEOUT_MS", 1000),
		},
		Report: ReportConfig{
			BaseURL:   getEnv("REPORT_BASE_URL", ""),
			TimeoutMS: getEnvAsInt("REPORT_TIMEOUT_MS", 1000),
		},
		Queue: QueueConfig{
			JobsTube:            getEnv("QUEUE_JOBS_TUBE", "softphone:connector:jobs"),
			ReplyTimeoutSeconds: getEnvAsInt("QUEUE_REPLY_TIMEOUT_SECONDS", 20),
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// AccessTokenTTL returns the access token lifetime.
func (a AuthConfig) AccessTokenTTL() time.Duration {
	return time.Duration(a.AccessTokenTTLSeconds) * time.Second
}

// RefreshTokenTTL returns the refresh token lifetime.
func (a AuthConfig) RefreshTokenTTL() time.Duration {
	return time.Duration(a.RefreshTokenTTLSeconds) * time.Second
}

// CRMTimeout returns the caller-id lookup deadline.
func (c CRMConfig) CRMTimeout() time.Duration {
	return time.Duration(c.TimeoutMS) * time.Millisecond
}

// ReportTimeout returns the report upstream deadline.
func (r ReportConfig) ReportTimeout() time.Duration {
	return time.Duration(r.TimeoutMS) * time.Millisecond
}

// PingTube derives the liveness tube from the jobs tube.
func (q QueueConfig) PingTube() string {
	return q.JobsTube + ":ping"
}

// ReplyTimeout bounds request/reply round trips through the queue.
func (q QueueConfig) ReplyTimeout() time.Duration {
	return time.Duration(q.ReplyTimeoutSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
