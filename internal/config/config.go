package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Scheduler SchedulerConfig
	Scrape    ScrapeConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	TaskTTL  time.Duration
}

type JWTConfig struct {
	AccessSecret     string
	RefreshSecret    string
	AccessExpiresIn  time.Duration
	RefreshExpiresIn time.Duration
}

// SchedulerConfig controls the periodic scrape trigger. CronSpec is a
// robfig/cron expression; "@daily" when unset.
type SchedulerConfig struct {
	Enabled     bool
	CronSpec    string
	SearchTerms []string
	Location    string
}

// ScrapeConfig holds defaults applied to scrape-task submissions that
// omit the optional fields.
type ScrapeConfig struct {
	DefaultLocation string
	DefaultResults  int
	DefaultMaxAge   time.Duration
	SiteTimeout     time.Duration
	Workers         int
}

var errMissingRequiredEnv = errors.New("missing required environment variables")

func Load() (Config, error) {
	cfg := Config{}

	var missing []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key, fallback string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			return fallback
		}
		return v
	}
	optInt := func(key string, fallback int) int {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			return fallback
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fallback
		}
		return n
	}
	optSeconds := func(key string, fallback time.Duration) time.Duration {
		n := optInt(key, -1)
		if n <= 0 {
			return fallback
		}
		return time.Duration(n) * time.Second
	}

	cfg.App = AppConfig{
		AppName:     opt("APP_NAME", "job-app-tracker"),
		Environment: opt("APP_ENV", "development"),
		HTTPPort:    opt("HTTP_PORT", "8000"),
	}

	cfg.Database = DatabaseConfig{
		DBHost:     opt("DB_HOST", "localhost"),
		DBPort:     opt("DB_PORT", "5432"),
		DBName:     opt("DB_NAME", "job_tracker"),
		DBUser:     opt("DB_USER", "postgres"),
		DBPassword: strings.TrimSpace(os.Getenv("DB_PASSWORD")),
		DBSSLMode:  opt("DB_SSL_MODE", "disable"),

		ConnectTimeout:        optSeconds("DB_CONNECT_TIMEOUT", 5*time.Second),
		PoolMaxConns:          int32(optInt("DB_POOL_MAX_CONNS", 10)),
		PoolMinConns:          int32(optInt("DB_POOL_MIN_CONNS", 0)),
		PoolMaxConnLifetime:   optSeconds("DB_POOL_MAX_CONN_LIFETIME", time.Hour),
		PoolMaxConnIdleTime:   optSeconds("DB_POOL_MAX_CONN_IDLE_TIME", 30*time.Minute),
		PoolHealthCheckPeriod: optSeconds("DB_POOL_HEALTH_CHECK_PERIOD", time.Minute),
	}

	cfg.Redis = RedisConfig{
		Host:     opt("REDIS_HOST", "localhost"),
		Port:     opt("REDIS_PORT", "6379"),
		Password: strings.TrimSpace(os.Getenv("REDIS_PASSWORD")),
		TaskTTL:  optSeconds("REDIS_TASK_TTL", 24*time.Hour),
	}

	cfg.JWT = JWTConfig{
		AccessSecret:     req("JWT_ACCESS_SECRET"),
		RefreshSecret:    req("JWT_REFRESH_SECRET"),
		AccessExpiresIn:  optSeconds("JWT_ACCESS_EXPIRES_IN", 15*time.Minute),
		RefreshExpiresIn: optSeconds("JWT_REFRESH_EXPIRES_IN", 7*24*time.Hour),
	}

	cfg.Scheduler = SchedulerConfig{
		Enabled:     opt("SCHEDULER_ENABLED", "true") == "true",
		CronSpec:    opt("SCHEDULER_CRON", "@daily"),
		SearchTerms: splitList(opt("SCHEDULER_SEARCH_TERMS", "Software Engineer")),
		Location:    opt("SCHEDULER_LOCATION", ""),
	}

	cfg.Scrape = ScrapeConfig{
		DefaultLocation: opt("SCRAPE_DEFAULT_LOCATION", "Remote"),
		DefaultResults:  optInt("SCRAPE_DEFAULT_RESULTS", 20),
		DefaultMaxAge:   optSeconds("SCRAPE_DEFAULT_MAX_AGE", 72*time.Hour),
		SiteTimeout:     optSeconds("SCRAPE_SITE_TIMEOUT", 30*time.Second),
		Workers:         optInt("SCRAPE_WORKERS", 4),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}

	return cfg, nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
