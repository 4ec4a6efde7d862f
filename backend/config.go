package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"gomoku/engine"
)

type Config struct {
	Addr         string        `json:"addr"`
	DatabasePath string        `json:"database_path"`
	LogLevel     string        `json:"log_level"`
	LogJSON      bool          `json:"log_json"`
	AutoPlay     bool          `json:"auto_play"`
	TurnDelayMs  int           `json:"turn_delay_ms"`
	HumanPollMs  int           `json:"human_poll_ms"`
	Engine       engine.Config `json:"engine"`
	Game         GameSettings  `json:"game"`
}

type ConfigStore struct {
	mu     sync.RWMutex
	config Config
}

func DefaultConfig() Config {
	return Config{
		Addr:         ":8080",
		DatabasePath: "data/games.db",
		LogLevel:     "info",
		AutoPlay:     true,
		TurnDelayMs:  50,
		HumanPollMs:  100,
		Engine:       engine.DefaultConfig(),
		Game:         DefaultGameSettings(),
	}
}

// LoadConfig starts from the defaults, overlays the JSON file at path when
// path is not empty, then applies GOMOKU_* environment overrides.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := json.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	cfg.Addr = getenv("GOMOKU_ADDR", cfg.Addr)
	cfg.DatabasePath = getenv("GOMOKU_DB", cfg.DatabasePath)
	cfg.LogLevel = getenv("GOMOKU_LOG_LEVEL", cfg.LogLevel)
	cfg.AutoPlay = getenvBool("GOMOKU_AUTO_PLAY", cfg.AutoPlay)
	cfg.Engine.MaxDepth = getenvInt("GOMOKU_AI_DEPTH", cfg.Engine.MaxDepth)
	cfg.Engine.TimeLimitMs = getenvInt("GOMOKU_AI_TIME_LIMIT_MS", cfg.Engine.TimeLimitMs)
	cfg.Game.BoardSize = getenvInt("GOMOKU_BOARD_SIZE", cfg.Game.BoardSize)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if err := c.Engine.Validate(); err != nil {
		return err
	}
	if c.Game.BoardSize < engine.MinBoardSize || c.Game.BoardSize > engine.MaxBoardSize {
		return fmt.Errorf("%w: %d", engine.ErrInvalidBoardSize, c.Game.BoardSize)
	}
	if c.Addr == "" {
		return fmt.Errorf("addr must not be empty")
	}
	return nil
}

func NewConfigStore(cfg Config) *ConfigStore {
	return &ConfigStore{config: cfg}
}

func (c *ConfigStore) Get() Config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.config
}

func (c *ConfigStore) Update(newConfig Config) {
	c.mu.Lock()
	c.config = newConfig
	c.mu.Unlock()
}

func getenv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getenvBool(key string, fallback bool) bool {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}
