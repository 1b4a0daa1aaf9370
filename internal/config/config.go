package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// Config stores courier service settings.
type Config struct {
	Port      int
	DB        DB
	Auth      Auth
	Kafka     Kafka
	Redis     Redis
	RateLimit RateLimit
	Pprof     Pprof
}

// DB stores PostgreSQL connection settings.
type DB struct {
	Host string
	Port string
	User string
	Pass string
	Name string
}

// DSN returns the PostgreSQL connection string.
func (d DB) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		d.User, d.Pass, d.Host, d.Port, d.Name)
}

// Auth stores token signing settings.
type Auth struct {
	Secret   string
	TokenTTL time.Duration
}

// Kafka stores tracking-updates consumer settings. An empty broker list
// disables the consumer.
type Kafka struct {
	Brokers []string
	Topic   string
	GroupID string
}

// Redis stores tracking cache settings. An empty address disables the cache.
type Redis struct {
	Addr     string
	CacheTTL time.Duration
}

// RateLimit stores public-endpoint rate limiter settings.
type RateLimit struct {
	Rate  float64
	Burst int
}

// Pprof stores pprof side server settings. Port 0 disables it.
type Pprof struct {
	Port int
	User string
	Pass string
}

// Load reads configuration in order: .env (if present) → environment → flags.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: .env not loaded: %v", err)
	}

	cfg := &Config{
		Port:      defaultPort,
		DB:        DefaultDB(),
		Auth:      DefaultAuth(),
		Kafka:     DefaultKafka(),
		Redis:     DefaultRedis(),
		RateLimit: DefaultRateLimit(),
		Pprof:     DefaultPprof(),
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	pflag.IntVarP(&cfg.Port, "port", "p", cfg.Port, "port to listen on")
	pflag.Parse()

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port: %d", cfg.Port)
	}
	if cfg.Auth.TokenTTL <= 0 {
		return nil, fmt.Errorf("invalid token ttl: %v", cfg.Auth.TokenTTL)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT: %q", v)
		}
		cfg.Port = p
	}

	envStr("POSTGRES_HOST", &cfg.DB.Host)
	envStr("POSTGRES_USER", &cfg.DB.User)
	envStr("POSTGRES_PASSWORD", &cfg.DB.Pass)
	envStr("POSTGRES_DB", &cfg.DB.Name)
	if v := os.Getenv("POSTGRES_PORT"); v != "" {
		if _, err := strconv.Atoi(v); err != nil {
			return fmt.Errorf("invalid POSTGRES_PORT: %q", v)
		}
		cfg.DB.Port = v
	}

	envStr("AUTH_SECRET", &cfg.Auth.Secret)
	if err := envDuration("AUTH_TOKEN_TTL", &cfg.Auth.TokenTTL); err != nil {
		return err
	}

	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		cfg.Kafka.Brokers = splitCSV(v)
	}
	envStr("KAFKA_TOPIC", &cfg.Kafka.Topic)
	envStr("KAFKA_GROUP_ID", &cfg.Kafka.GroupID)

	envStr("REDIS_ADDR", &cfg.Redis.Addr)
	if err := envDuration("TRACKING_CACHE_TTL", &cfg.Redis.CacheTTL); err != nil {
		return err
	}

	if v := os.Getenv("RATE_LIMIT_RPS"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f <= 0 {
			return fmt.Errorf("invalid RATE_LIMIT_RPS: %q", v)
		}
		cfg.RateLimit.Rate = f
	}
	if v := os.Getenv("RATE_LIMIT_BURST"); v != "" {
		b, err := strconv.Atoi(v)
		if err != nil || b <= 0 {
			return fmt.Errorf("invalid RATE_LIMIT_BURST: %q", v)
		}
		cfg.RateLimit.Burst = b
	}

	if v := os.Getenv("PPROF_PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PPROF_PORT: %q", v)
		}
		cfg.Pprof.Port = p
	}
	envStr("PPROF_USER", &cfg.Pprof.User)
	envStr("PPROF_PASS", &cfg.Pprof.Pass)

	return nil
}

func envStr(key string, dst *string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func envDuration(key string, dst *time.Duration) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %q", key, v)
	}
	*dst = d
	return nil
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
