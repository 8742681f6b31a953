package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "steakout"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "STEAKOUT_DB_DSN"
	EnvDBHost = "STEAKOUT_DB_HOST"
	EnvDBUser = "STEAKOUT_DB_USER"
	EnvDBName = "STEAKOUT_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	FeatureFlags FeatureFlagsConfig
	Catalog      CatalogConfig
	Deduction    DeductionConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"STEAKOUT_APP_ENV" required:"true"`
	Port         string `envconfig:"STEAKOUT_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"STEAKOUT_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"STEAKOUT_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"STEAKOUT_DB_DSN"`
	Driver string `envconfig:"STEAKOUT_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"STEAKOUT_DB_HOST"`
	LegacyPort     int    `envconfig:"STEAKOUT_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"STEAKOUT_DB_USER"`
	LegacyPassword string `envconfig:"STEAKOUT_DB_PASSWORD"`
	LegacyName     string `envconfig:"STEAKOUT_DB_NAME"`
	LegacySSLMode  string `envconfig:"STEAKOUT_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"STEAKOUT_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"STEAKOUT_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"STEAKOUT_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"STEAKOUT_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"STEAKOUT_REDIS_URL" required:"true"`
	Address      string        `envconfig:"STEAKOUT_REDIS_ADDR"`
	Password     string        `envconfig:"STEAKOUT_REDIS_PASSWORD"`
	DB           int           `envconfig:"STEAKOUT_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"STEAKOUT_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"STEAKOUT_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"STEAKOUT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"STEAKOUT_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"STEAKOUT_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"STEAKOUT_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"STEAKOUT_AUTO_MIGRATE" default:"false"`
}

// CatalogConfig points at optional JSON overrides for the free-addon
// policy and the deduction rule table. Empty paths mean built-in defaults.
type CatalogConfig struct {
	PolicyPath    string `envconfig:"STEAKOUT_CATALOG_POLICY_PATH"`
	RuleTablePath string `envconfig:"STEAKOUT_DEDUCTION_RULES_PATH"`
}

// DeductionConfig controls where confirmed orders draw stock from.
// Point-of-sale consumption comes out of the trailer unless overridden.
type DeductionConfig struct {
	Location string `envconfig:"STEAKOUT_DEDUCTION_LOCATION" default:"Trailer"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
