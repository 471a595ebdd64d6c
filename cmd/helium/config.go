package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Sternrassler/helium-api-client/pkg/client"
	"github.com/Sternrassler/helium-api-client/pkg/logging"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const defaultUserAgent = "helium-cli/0.1.0"

// Config is the resolved CLI configuration.
type Config struct {
	BaseURL    string
	UserAgent  string
	RedisAddr  string
	Timeout    time.Duration
	MaxRetries int
	LogLevel   logging.LogLevel
	LogPretty  bool
	Listen     string
}

// newViper returns a viper instance reading HELIUM_* variables.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("HELIUM")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	v.SetDefault("base-url", client.DefaultBaseURL)
	v.SetDefault("user-agent", defaultUserAgent)
	v.SetDefault("timeout", client.DefaultTimeout)
	v.SetDefault("max-retries", 0)
	v.SetDefault("log-level", string(logging.LevelWarn))
	v.SetDefault("listen", ":8080")
	return v
}

// bindFlags registers the global flags and binds them to v.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	flags.String("base-url", client.DefaultBaseURL, "Helium API base URL")
	flags.String("user-agent", defaultUserAgent, "User-Agent sent with every request")
	flags.String("redis-addr", "", "Redis address for the response cache and shared rate limits")
	flags.Duration("timeout", client.DefaultTimeout, "per-request timeout")
	flags.Int("max-retries", 0, "retries for failed GET requests")
	flags.String("log-level", string(logging.LevelWarn), "log level (debug, info, warn, error, disabled)")
	flags.Bool("log-pretty", false, "human-readable log output")

	return v.BindPFlags(flags)
}

// loadConfig resolves and validates the configuration held by v.
func loadConfig(v *viper.Viper) (Config, error) {
	level, err := logging.ParseLevel(v.GetString("log-level"))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		BaseURL:    v.GetString("base-url"),
		UserAgent:  v.GetString("user-agent"),
		RedisAddr:  v.GetString("redis-addr"),
		Timeout:    v.GetDuration("timeout"),
		MaxRetries: v.GetInt("max-retries"),
		LogLevel:   level,
		LogPretty:  v.GetBool("log-pretty"),
		Listen:     v.GetString("listen"),
	}
	if cfg.UserAgent == "" {
		return Config{}, fmt.Errorf("user-agent must not be empty")
	}
	return cfg, nil
}

// clientConfig maps the CLI configuration onto the client's.
func (c Config) clientConfig(rdb *redis.Client) client.Config {
	cfg := client.DefaultConfig(c.UserAgent)
	cfg.BaseURL = c.BaseURL
	cfg.Timeout = c.Timeout
	cfg.MaxRetries = c.MaxRetries
	cfg.Redis = rdb
	return cfg
}

// connectRedis opens and pings Redis when an address is configured.
func connectRedis(ctx context.Context, addr string) (*redis.Client, error) {
	if addr == "" {
		return nil, nil
	}

	rdb := redis.NewClient(&redis.Options{Addr: addr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("connect to redis at %s: %w", addr, err)
	}
	return rdb, nil
}
