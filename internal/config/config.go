package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Motion   MotionConfig   `mapstructure:"motion"`
	Profiles ProfilesConfig `mapstructure:"machine_profiles"`
}

type ServerConfig struct {
	HTTPPort        int           `mapstructure:"http_port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
}

// Auth Configuration
type AuthConfig struct {
	JWTSecretEnv   string         `mapstructure:"jwt_secret_env"`
	AccessTokenTTL time.Duration  `mapstructure:"access_token_ttl"`
	Operators      []OperatorCred `mapstructure:"operators"`
}

// OperatorCred is a config-declared operator account. PasswordHash is
// an argon2id encoded hash string.
type OperatorCred struct {
	Username     string `mapstructure:"username"`
	PasswordHash string `mapstructure:"password_hash"`
	Role         string `mapstructure:"role"`
}

type MotionConfig struct {
	CyclePeriod    time.Duration `mapstructure:"cycle_period"`
	StatusInterval time.Duration `mapstructure:"status_interval"`
	CoordQueueSize int           `mapstructure:"coord_queue_size"`
	FreeQueueSize  int           `mapstructure:"free_queue_size"`
	Kinematics     string        `mapstructure:"kinematics"`
	Debug          int           `mapstructure:"debug"`
}

type ProfilesConfig struct {
	Profile     string   `mapstructure:"profile"`
	SearchPaths []string `mapstructure:"search_paths"`
}

func Load(path string) (*Config, error) {
	viper.SetConfigFile(path)
	viper.SetConfigType("yaml")

	// Defaults setzen
	viper.SetDefault("server.http_port", 8080)
	viper.SetDefault("server.shutdown_timeout", "30s")
	viper.SetDefault("database.enabled", false)
	viper.SetDefault("database.max_connections", 4)
	viper.SetDefault("motion.cycle_period", "1ms")
	viper.SetDefault("motion.status_interval", "100ms")
	viper.SetDefault("motion.coord_queue_size", 32)
	viper.SetDefault("motion.free_queue_size", 8)
	viper.SetDefault("motion.kinematics", "trivial")

	// Auth Defaults
	viper.SetDefault("auth.jwt_secret_env", "JWT_SECRET")
	viper.SetDefault("auth.access_token_ttl", "60m")

	// Environment Variables automatisch binden (Viper Feature)
	viper.AutomaticEnv()
	viper.SetEnvPrefix("MCD") // Environment Variables mit Prefix MCD_

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.User, c.Password, c.Host, c.Port, c.Database)
}

// JWT Secret aus Environment Variable laden
func (a *AuthConfig) GetJWTSecret() string {
	envVar := a.JWTSecretEnv
	if envVar == "" {
		envVar = "JWT_SECRET" // Fallback
	}

	secret := os.Getenv(envVar)
	if secret == "" {
		// Development Fallback (MIT WARNING!)
		return "dev-secret-change-in-production-min-32-chars"
	}
	return secret
}

// Helper um zu prüfen ob Production-Ready
func (a *AuthConfig) IsProductionReady() bool {
	secret := a.GetJWTSecret()
	return secret != "dev-secret-change-in-production-min-32-chars" && len(secret) >= 32
}
