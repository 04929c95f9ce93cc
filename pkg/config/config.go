// Package config loads server configuration from YAML
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"learnhub/pkg/logger"
)

// Config holds all server configuration
type Config struct {
	Server       ServerConfig       `yaml:"server"`
	Database     DatabaseConfig     `yaml:"database"`
	Redis        RedisConfig        `yaml:"redis"`
	JWT          JWTConfig          `yaml:"jwt"`
	Logging      logger.Config      `yaml:"logging"`
	Gamification GamificationConfig `yaml:"gamification"`
}

// ServerConfig contains HTTP listener settings
type ServerConfig struct {
	Host               string        `yaml:"host"`
	Port               int           `yaml:"port"`
	ReadTimeout        time.Duration `yaml:"read_timeout"`
	WriteTimeout       time.Duration `yaml:"write_timeout"`
	RateLimitPerSecond float64       `yaml:"rate_limit_per_second"`
	RateLimitBurst     int           `yaml:"rate_limit_burst"`
}

// DatabaseConfig contains PostgreSQL settings
type DatabaseConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	User            string        `yaml:"user"`
	Password        string        `yaml:"password"`
	Database        string        `yaml:"database"`
	SSLMode         string        `yaml:"ssl_mode"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `yaml:"conn_max_idle_time"`
	Timeout         time.Duration `yaml:"timeout"`
}

// RedisConfig contains the leaderboard snapshot cache settings.
// Addr may be empty: the leaderboard then recomputes on every read.
type RedisConfig struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	CacheTTL time.Duration `yaml:"cache_ttl"`
}

// JWTConfig contains token settings
type JWTConfig struct {
	Secret     string        `yaml:"secret"`
	Issuer     string        `yaml:"issuer"`
	Expiration time.Duration `yaml:"expiration"`
}

// GamificationConfig holds tunable progression constants
type GamificationConfig struct {
	// Partial credit multiplier for failed-but-attempted quizzes
	FailedQuizXPRate float64 `yaml:"failed_quiz_xp_rate"`
	// Time-spent estimate constants (see progress aggregator)
	HoursPerProgressPercent float64 `yaml:"hours_per_progress_percent"`
	HoursPerQuizAttempt     float64 `yaml:"hours_per_quiz_attempt"`
	// XP for the daily login event
	DailyLoginXP int `yaml:"daily_login_xp"`
}

// Load reads YAML config from path and applies defaults
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 15 * time.Second
	}
	if c.Server.RateLimitPerSecond == 0 {
		c.Server.RateLimitPerSecond = 50
	}
	if c.Server.RateLimitBurst == 0 {
		c.Server.RateLimitBurst = 100
	}
	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 25
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.Timeout == 0 {
		c.Database.Timeout = 10 * time.Second
	}
	if c.Redis.CacheTTL == 0 {
		c.Redis.CacheTTL = 30 * time.Second
	}
	if c.JWT.Issuer == "" {
		c.JWT.Issuer = "learnhub"
	}
	if c.JWT.Expiration == 0 {
		c.JWT.Expiration = 24 * time.Hour
	}
	if c.Gamification.FailedQuizXPRate == 0 {
		c.Gamification.FailedQuizXPRate = 0.3
	}
	if c.Gamification.HoursPerProgressPercent == 0 {
		c.Gamification.HoursPerProgressPercent = 0.05
	}
	if c.Gamification.HoursPerQuizAttempt == 0 {
		c.Gamification.HoursPerQuizAttempt = 0.25
	}
	if c.Gamification.DailyLoginXP == 0 {
		c.Gamification.DailyLoginXP = 10
	}
}
