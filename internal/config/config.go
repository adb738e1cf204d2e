package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/mcoot/cluegame-go/internal/model"
	redisstorage "github.com/mcoot/cluegame-go/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// Config is the server configuration. Values come from an optional YAML
// file, then environment variables, then the defaults below.
type Config struct {
	LogLevel string  `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTP     HTTP    `yaml:"http"`
	Storage  Storage `yaml:"storage"`
	Data     Data    `yaml:"data"`
	Lobby    Lobby   `yaml:"lobby"`
}

type HTTP struct {
	Host            string        `yaml:"host" env:"HTTP_HOST" env-default:""`
	Port            int           `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read-timeout" env:"HTTP_READ_TIMEOUT" env-default:"15s"`
	WriteTimeout    time.Duration `yaml:"write-timeout" env:"HTTP_WRITE_TIMEOUT" env-default:"15s"`
	IdleTimeout     time.Duration `yaml:"idle-timeout" env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown-timeout" env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"30s"`
}

type Storage struct {
	Type  string `yaml:"type" env:"STORAGE_TYPE" env-default:"memory"`
	Redis Redis  `yaml:"redis"`
}

type Redis struct {
	URL          string        `yaml:"url" env:"REDIS_URL" env-default:"redis://localhost:6379"`
	PoolSize     int           `yaml:"pool-size" env:"REDIS_POOL_SIZE" env-default:"10"`
	MinIdleConns int           `yaml:"min-idle-conns" env:"REDIS_MIN_IDLE_CONNS" env-default:"2"`
	LobbyTTL     time.Duration `yaml:"lobby-ttl" env:"REDIS_LOBBY_TTL" env-default:"24h"`
	HistoryTTL   time.Duration `yaml:"history-ttl" env:"REDIS_HISTORY_TTL" env-default:"720h"`
}

type Data struct {
	BoardPath string `yaml:"board-path" env:"BOARD_PATH" env-default:"data/board.json"`
	CardsPath string `yaml:"cards-path" env:"CARDS_PATH" env-default:"data/cards.json"`
}

type Lobby struct {
	MinPlayers int `yaml:"min-players" env:"LOBBY_MIN_PLAYERS" env-default:"2"`
	MaxPlayers int `yaml:"max-players" env:"LOBBY_MAX_PLAYERS" env-default:"6"`
}

// Load reads the configuration. An empty path reads the environment only.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	var err error
	if path == "" {
		err = cleanenv.ReadEnv(cfg)
	} else {
		err = cleanenv.ReadConfig(path, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("unable to load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// MustLoad is Load for program entry points
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}
	return cfg
}

// Validate rejects settings the server cannot run with
func (c *Config) Validate() error {
	switch c.Storage.Type {
	case StorageTypeMemory, StorageTypeRedis:
	default:
		return fmt.Errorf("invalid storage type %q: must be %q or %q", c.Storage.Type, StorageTypeMemory, StorageTypeRedis)
	}

	if c.HTTP.Port < 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("invalid http port %d", c.HTTP.Port)
	}

	if c.Lobby.MinPlayers < 1 || c.Lobby.MaxPlayers < c.Lobby.MinPlayers {
		return fmt.Errorf("invalid lobby size %d-%d", c.Lobby.MinPlayers, c.Lobby.MaxPlayers)
	}

	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// SlogLevel returns the configured log level
func (c *Config) SlogLevel() slog.Level {
	level, _ := parseLevel(c.LogLevel)
	return level
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", s)
	}
	return level, nil
}

// RedisConfig converts the redis section for the storage layer
func (c *Config) RedisConfig() redisstorage.Config {
	return redisstorage.Config{
		URL:          c.Storage.Redis.URL,
		PoolSize:     c.Storage.Redis.PoolSize,
		MinIdleConns: c.Storage.Redis.MinIdleConns,
		LobbyTTL:     c.Storage.Redis.LobbyTTL,
		HistoryTTL:   c.Storage.Redis.HistoryTTL,
	}
}

// LobbyConfig returns the seating limits
func (c *Config) LobbyConfig() model.LobbyConfig {
	return model.LobbyConfig{
		MinPlayers: c.Lobby.MinPlayers,
		MaxPlayers: c.Lobby.MaxPlayers,
	}
}
