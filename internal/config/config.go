package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/sethvargo/go-envconfig"
)

const EnvPrefix = "COACHDESK_"

type Config struct {
	Environment string `toml:"-"`
	Host        string `toml:"host"`
	Port        int    `toml:"port" env:"PORT, overwrite"`

	// logging
	LogLevel      string `toml:"log_level" env:"LOG_LEVEL, overwrite"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`

	// metrics
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`

	// database
	DatabaseURL       string            `toml:"database_url" env:"DATABASE_URL, overwrite"`
	DBMaxConns        int32             `toml:"db_max_conns"`
	RunMigrations     bool              `toml:"run_migrations"`
	ConnectionProfile ConnectionProfile `toml:"connection_profile" env:", prefix=DB_"`
	Retry             Retry             `toml:"retry"`

	// http api
	DefaultActorID       string   `toml:"default_actor_id" env:"DEFAULT_ACTOR_ID, overwrite"`
	AllowedOrigins       []string `toml:"allowed_origins"`
	WriteRateLimitPerMin int      `toml:"write_rate_limit_per_min"`

	// caches
	RedisHost           string `toml:"redis_host" env:"REDIS_HOST, overwrite"`
	RedisPort           string `toml:"redis_port" env:"REDIS_PORT, overwrite"`
	ProgramCacheTTLSecs int    `toml:"program_cache_ttl_secs"`
	ProfileCacheSizeMB  int    `toml:"profile_cache_size_mb"`

	Secrets Secrets `toml:"-"`
}

// ConnectionProfile describes the database this instance talks to. It is
// upserted at startup and referenced by every recorded health event.
type ConnectionProfile struct {
	Environment           string `toml:"environment" env:"ENVIRONMENT, overwrite"`
	Host                  string `toml:"host" env:"HOST, overwrite"`
	Port                  int    `toml:"port" env:"PORT, overwrite"`
	Schema                string `toml:"schema" env:"SCHEMA, overwrite"`
	CredentialRef         string `toml:"credential_ref" env:"CREDENTIAL_REF, overwrite"`
	RotationIntervalHours int    `toml:"rotation_interval_hours" env:"ROTATION_INTERVAL_HOURS, overwrite"`
}

type Retry struct {
	Retries      int     `toml:"retries"`
	MinTimeoutMs int     `toml:"min_timeout_ms"`
	MaxTimeoutMs int     `toml:"max_timeout_ms"`
	Factor       float64 `toml:"factor"`
}

func (r Retry) MinTimeout() time.Duration {
	return time.Duration(r.MinTimeoutMs) * time.Millisecond
}

func (r Retry) MaxTimeout() time.Duration {
	return time.Duration(r.MaxTimeoutMs) * time.Millisecond
}

// Secrets are only read from the environment, never from the config file.
type Secrets struct {
	RedisPassword    string `env:"REDIS_PASSWORD"`
	SentryDSN        string `env:"SENTRY_DSN"`
	AdminTokenHash   string `env:"ADMIN_TOKEN_HASH"`
	HoneycombEnabled bool   `env:"HONEYCOMB_ENABLED"`
}

func (c *Config) ProgramCacheTTL() time.Duration {
	return time.Duration(c.ProgramCacheTTLSecs) * time.Second
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	switch strings.ToLower(env) {
	case "dev", "development":
		return t.Development, nil
	case "prod", "production":
		return t.Production, nil
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
}

// Load reads the section of the TOML file matching env and applies the
// COACHDESK_ prefixed environment overrides.
func Load(env, path string) (*Config, error) {
	return LoadWithLookuper(context.Background(), env, path, envconfig.OsLookuper())
}

func LoadWithLookuper(ctx context.Context, env, path string, lookuper envconfig.Lookuper) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode config file %s: %w", path, err)
	}

	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, fmt.Errorf("config section for env %s missing", env)
	}
	cfg.Environment = strings.ToLower(env)

	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   cfg,
		Lookuper: envconfig.PrefixLookuper(EnvPrefix, lookuper),
	}); err != nil {
		return nil, fmt.Errorf("process env overrides: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Retry == (Retry{}) {
		c.Retry = Retry{Retries: 3, MinTimeoutMs: 100, MaxTimeoutMs: 2000, Factor: 2}
	}
	if c.ConnectionProfile.Environment == "" {
		c.ConnectionProfile.Environment = c.Environment
	}
	if c.ProgramCacheTTLSecs == 0 {
		c.ProgramCacheTTLSecs = 60
	}
	if c.ProfileCacheSizeMB == 0 {
		c.ProfileCacheSizeMB = 10
	}
}

func (c *Config) Validate() error {
	var errs []error
	if c.DatabaseURL == "" {
		errs = append(errs, errors.New("database url is required"))
	}
	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d out of range", c.Port))
	}
	if c.Retry.Retries < 0 {
		errs = append(errs, errors.New("retry.retries cannot be negative"))
	}
	if c.Retry.MinTimeoutMs <= 0 || c.Retry.MaxTimeoutMs < c.Retry.MinTimeoutMs {
		errs = append(errs, errors.New("retry timeouts must satisfy 0 < min <= max"))
	}
	if c.Retry.Factor < 1 {
		errs = append(errs, errors.New("retry.factor must be at least 1"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}
