package config

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/caarlos0/env/v10"
)

// Quiz round store backends.
const (
	QuizStoreRedis  = "redis"
	QuizStoreMemory = "memory"
)

// App holds core runtime configuration shared across services.
type App struct {
	Name                    string        `env:"APP_NAME" envDefault:"trivia-api"`
	Env                     string        `env:"APP_ENV" envDefault:"development"`
	HTTPAddr                string        `env:"HTTP_ADDR" envDefault:"0.0.0.0:8080"`
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_SECONDS" envDefault:"20s"`

	Postgres Postgres
	Redis    Redis
	Quiz     Quiz
	Cache    Cache
	CORS     CORS
}

// Postgres captures connection info for the SQL database.
type Postgres struct {
	Host     string `env:"PG_HOST,notEmpty"`
	Port     int    `env:"PG_PORT" envDefault:"5432"`
	User     string `env:"PG_USER,notEmpty"`
	Password string `env:"PG_PASSWORD,notEmpty"`
	Database string `env:"PG_DATABASE,notEmpty"`
	SSLMode  string `env:"PG_SSL_MODE" envDefault:"disable"`
}

// Redis holds cache + quiz round configuration.
type Redis struct {
	Addr     string `env:"REDIS_ADDR,notEmpty"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
	PoolSize int    `env:"REDIS_POOL_SIZE" envDefault:"20"`
}

// Quiz governs where rounds live and how long they survive idle.
type Quiz struct {
	Store         string        `env:"QUIZ_STORE" envDefault:"redis"`
	RoundTTL      time.Duration `env:"QUIZ_ROUND_TTL" envDefault:"1h"`
	SweepInterval time.Duration `env:"QUIZ_SWEEP_INTERVAL" envDefault:"5m"`
	KeyPrefix     string        `env:"QUIZ_KEY_PREFIX" envDefault:"trivia:quiz"`
}

// Cache configures the category list cache.
type Cache struct {
	CategoryTTL time.Duration `env:"CATEGORY_CACHE_TTL" envDefault:"5m"`
}

// CORS holds Cross-Origin Resource Sharing configuration.
type CORS struct {
	AllowedOrigins   []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	AllowedMethods   []string `env:"CORS_ALLOWED_METHODS" envSeparator:"," envDefault:"GET,PUT,POST,DELETE,OPTIONS"`
	AllowedHeaders   []string `env:"CORS_ALLOWED_HEADERS" envSeparator:"," envDefault:"Content-Type,Authorization,X-Quiz-Session"`
	AllowCredentials bool     `env:"CORS_ALLOW_CREDENTIALS" envDefault:"true"`
	MaxAge           int      `env:"CORS_MAX_AGE" envDefault:"3600"`
}

// Load parses environment variables into App config.
func Load(ctx context.Context) (*App, error) {
	cfg := &App{}
	if err := env.ParseWithOptions(cfg, env.Options{RequiredIfNoDef: true}); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *App) validate() error {
	switch c.Quiz.Store {
	case QuizStoreRedis, QuizStoreMemory:
	default:
		return fmt.Errorf("parse config: QUIZ_STORE must be %q or %q, got %q", QuizStoreRedis, QuizStoreMemory, c.Quiz.Store)
	}
	if c.Quiz.RoundTTL <= 0 {
		return fmt.Errorf("parse config: QUIZ_ROUND_TTL must be positive")
	}
	return nil
}

// LoadPostgres parses only the PG_* variables, for tools that never touch Redis.
func LoadPostgres() (*Postgres, error) {
	cfg := &Postgres{}
	if err := env.ParseWithOptions(cfg, env.Options{RequiredIfNoDef: true}); err != nil {
		return nil, fmt.Errorf("parse postgres config: %w", err)
	}
	return cfg, nil
}

// PostgresDSN builds the connection URL used by both the API pool and the migrator.
func (c *App) PostgresDSN() string {
	return c.Postgres.DSN()
}

func (p Postgres) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(p.User, p.Password),
		Host:     net.JoinHostPort(p.Host, strconv.Itoa(p.Port)),
		Path:     "/" + p.Database,
		RawQuery: url.Values{"sslmode": []string{p.SSLMode}}.Encode(),
	}
	return u.String()
}
