package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port      string `yaml:"port"`
		PublicURL string `yaml:"publicUrl"`
	} `yaml:"server"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		TTL      string `yaml:"ttl"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	Kafka struct {
		Brokers []string `yaml:"brokers"`
		Topic   string   `yaml:"topic"`
	} `yaml:"kafka"`
	Finnhub struct {
		BaseURL           string  `yaml:"baseUrl"`
		APIKey            string  `yaml:"apiKey"`
		RequestsPerSecond float64 `yaml:"requestsPerSecond"`
		Burst             int     `yaml:"burst"`
		Timeout           string  `yaml:"timeout"`
		ProfileTTL        string  `yaml:"profileTtl"`
	} `yaml:"finnhub"`
	Wikipedia struct {
		BaseURL string `yaml:"baseUrl"`
		Timeout string `yaml:"timeout"`
	} `yaml:"wikipedia"`
	Stripe struct {
		SecretKey string `yaml:"secretKey"`
		PriceID   string `yaml:"priceId"`
	} `yaml:"stripe"`
	Auth struct {
		JWTSecret string `yaml:"jwtSecret"`
		TokenTTL  string `yaml:"tokenTtl"`
	} `yaml:"auth"`
	Entitlement struct {
		Freshness string `yaml:"freshness"`
		Retention string `yaml:"retention"`
	} `yaml:"entitlement"`
	Scenario struct {
		FutureRange float64                   `yaml:"futureRange"`
		ExpiryDays  int                       `yaml:"expiryDays"`
		Offsets     map[string]ScenarioOffset `yaml:"offsets"`
	} `yaml:"scenario"`
	Quiz struct {
		SessionTTL   string `yaml:"sessionTtl"`
		HistoryLimit int    `yaml:"historyLimit"`
		RedirectSecs int    `yaml:"redirectAfterSeconds"`
	} `yaml:"quiz"`
}

// ScenarioOffset scales the current price into a strike and a premium.
type ScenarioOffset struct {
	Strike  float64 `yaml:"strike"`
	Premium float64 `yaml:"premium"`
}

// Load reads YAML config from path and overlays secrets from the environment.
// A .env file in the working directory is loaded first when present. A missing
// config file is not an error; the environment alone can configure the service.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	cfg := Config{}
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return cfg, err
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
	}
	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	overlay(&cfg.Finnhub.APIKey, "FINNHUB_API_KEY")
	overlay(&cfg.Stripe.SecretKey, "STRIPE_SECRET_KEY")
	overlay(&cfg.Stripe.PriceID, "STRIPE_PRICE_ID")
	overlay(&cfg.Auth.JWTSecret, "JWT_SECRET")
	overlay(&cfg.Postgres.URL, "DATABASE_URL")
	overlay(&cfg.Redis.Addr, "REDIS_ADDR")
	overlay(&cfg.Server.PublicURL, "PUBLIC_URL")
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		cfg.Kafka.Brokers = strings.Split(v, ",")
	}
}

func overlay(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

// TTLDuration parses a duration string or returns the fallback if empty.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}

// NewLogger builds the process logger. Output is JSON unless format is "text".
func NewLogger(cfg Config) *logrus.Logger {
	logger := logrus.New()
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	if cfg.Log.Format == "text" {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	return logger
}
