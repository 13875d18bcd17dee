package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Events    EventsConfig    `yaml:"events"`
	Weather   WeatherConfig   `yaml:"weather"`
	Sentiment SentimentConfig `yaml:"sentiment"`
	Cache     CacheConfig     `yaml:"cache"`
	Matching  MatchingConfig  `yaml:"matching"`
	Logging   LoggingConfig   `yaml:"logging"`
}

type ServerConfig struct {
	Port        int    `yaml:"port"`
	MetricsPort int    `yaml:"metrics_port"`
	AdminToken  string `yaml:"admin_token"`
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type EventsConfig struct {
	URL string `yaml:"url"`
}

type WeatherConfig struct {
	URL    string `yaml:"url"`
	APIKey string `yaml:"api_key"`
}

type SentimentConfig struct {
	URL    string `yaml:"url"`
	APIKey string `yaml:"api_key"`
}

type CacheConfig struct {
	RedisAddr     string `yaml:"redis_addr"`
	RedisPassword string `yaml:"redis_password"`
	RedisDB       int    `yaml:"redis_db"`
	TTLSeconds    int    `yaml:"ttl_seconds"`
}

type MatchingConfig struct {
	Limit    int             `yaml:"limit"`
	MinScore float64         `yaml:"min_score"`
	Weights  MatchingWeights `yaml:"weights"`
}

type MatchingWeights struct {
	Distance   float64 `yaml:"distance"`
	Urgency    float64 `yaml:"urgency"`
	Capacity   float64 `yaml:"capacity"`
	Preference float64 `yaml:"preference"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTLSeconds) * time.Second
}

func Load(path string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:        8700,
			MetricsPort: 8701,
		},
		Events: EventsConfig{
			URL: "nats://localhost:4222",
		},
		Weather: WeatherConfig{
			URL: "https://api.openweathermap.org/data/2.5/weather",
		},
		Sentiment: SentimentConfig{
			URL: "https://api-inference.huggingface.co/models/cardiffnlp/twitter-roberta-base-sentiment-latest",
		},
		Cache: CacheConfig{
			TTLSeconds: 600,
		},
		Matching: MatchingConfig{
			Limit:    5,
			MinScore: 0.3,
			Weights: MatchingWeights{
				Distance:   0.40,
				Urgency:    0.30,
				Capacity:   0.20,
				Preference: 0.10,
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("MATCHWISE_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = n
		}
	}
	if v := os.Getenv("MATCHWISE_METRICS_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.MetricsPort = n
		}
	}
	if v := os.Getenv("MATCHWISE_ADMIN_TOKEN"); v != "" {
		cfg.Server.AdminToken = v
	}
	if v := os.Getenv("MATCHWISE_DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("MATCHWISE_EVENTS_URL"); v != "" {
		cfg.Events.URL = v
	}
	if v := os.Getenv("MATCHWISE_WEATHER_URL"); v != "" {
		cfg.Weather.URL = v
	}
	if v := os.Getenv("MATCHWISE_WEATHER_API_KEY"); v != "" {
		cfg.Weather.APIKey = v
	}
	if v := os.Getenv("MATCHWISE_SENTIMENT_URL"); v != "" {
		cfg.Sentiment.URL = v
	}
	if v := os.Getenv("MATCHWISE_SENTIMENT_API_KEY"); v != "" {
		cfg.Sentiment.APIKey = v
	}
	if v := os.Getenv("MATCHWISE_REDIS_ADDR"); v != "" {
		cfg.Cache.RedisAddr = v
	}
	if v := os.Getenv("MATCHWISE_MATCH_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Matching.Limit = n
		}
	}
	if v := os.Getenv("MATCHWISE_MATCH_MIN_SCORE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Matching.MinScore = f
		}
	}
	if v := os.Getenv("MATCHWISE_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}
