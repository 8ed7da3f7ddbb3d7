package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server       ServerConfig       `mapstructure:"server"`
	Database     DatabaseConfig     `mapstructure:"database"`
	Redis        RedisConfig        `mapstructure:"redis"`
	JWT          JWTConfig          `mapstructure:"jwt"`
	AES          AESConfig          `mapstructure:"aes"`
	Log          LogConfig          `mapstructure:"log"`
	Orchestrator OrchestratorConfig `mapstructure:"orchestrator"`
	Fees         FeeDefaultsConfig  `mapstructure:"fees"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release, test
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// JWTConfig configures operator token validation for admin routes.
type JWTConfig struct {
	Secret string `mapstructure:"secret"`
	Issuer string `mapstructure:"issuer"`
}

type AESConfig struct {
	Key string `mapstructure:"key"` // 32-byte hex-encoded key for gateway credential storage
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// OrchestratorConfig tunes the routing engine.
type OrchestratorConfig struct {
	AttemptTimeout     time.Duration `mapstructure:"attempt_timeout"`      // per-gateway call budget
	LockTTL            time.Duration `mapstructure:"lock_ttl"`             // per-sale lock expiry
	DefaultMaxAttempts int           `mapstructure:"default_max_attempts"` // chain cap when no policy exists
}

// FeeDefaultsConfig holds the platform fee schedule applied when a tenant has
// no override for a method.
type FeeDefaultsConfig struct {
	Pix        MethodFeeDefaults `mapstructure:"pix"`
	CreditCard MethodFeeDefaults `mapstructure:"credit_card"`
	Boleto     MethodFeeDefaults `mapstructure:"boleto"`
}

type MethodFeeDefaults struct {
	Percentage      float64 `mapstructure:"percentage"`
	FixedCents      int64   `mapstructure:"fixed_cents"`
	ReleaseDays     int     `mapstructure:"release_days"`
	MaxInstallments int     `mapstructure:"max_installments"` // card only
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: ORC_.
// Nested keys use underscore: ORC_DATABASE_HOST, ORC_JWT_SECRET, etc.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "payment_orchestrator")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 20)
	v.SetDefault("database.min_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.issuer", "payment-orchestrator")
	v.SetDefault("aes.key", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)
	v.SetDefault("orchestrator.attempt_timeout", "30s")
	v.SetDefault("orchestrator.lock_ttl", "5m")
	v.SetDefault("orchestrator.default_max_attempts", 3)
	v.SetDefault("fees.pix.percentage", 1.99)
	v.SetDefault("fees.pix.fixed_cents", 0)
	v.SetDefault("fees.pix.release_days", 0)
	v.SetDefault("fees.credit_card.percentage", 4.99)
	v.SetDefault("fees.credit_card.fixed_cents", 39)
	v.SetDefault("fees.credit_card.release_days", 14)
	v.SetDefault("fees.credit_card.max_installments", 12)
	v.SetDefault("fees.boleto.percentage", 1.49)
	v.SetDefault("fees.boleto.fixed_cents", 199)
	v.SetDefault("fees.boleto.release_days", 2)

	// File config
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: ORC_DATABASE_HOST -> database.host
	v.SetEnvPrefix("ORC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required, env vars can suffice)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}
