// Package config resolves runtime settings from the config file, the
// environment, an optional .env file and bound command flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

const (
	configName = "config"
	configType = "toml"
	configDir  = ".picquiz"
	itemsFile  = "items.toml"
	envPrefix  = "PQ"
	dotEnvFile = ".env"

	PoolPathKey     = "pool.path"
	RoundSecondsKey = "round.seconds"
	TickIntervalKey = "tick.interval"
	RandomSeedKey   = "random.seed"
	LogLevelKey     = "log.level"
	LogPathKey      = "log.path"

	defaultRoundSeconds = 5
	defaultTickInterval = time.Second
	defaultLogLevel     = "warn"
)

type Config struct {
	PoolPath     string
	RoundSeconds int
	TickInterval time.Duration
	Seed         uint64
	LogLevel     zerolog.Level
	LogPath      string
}

func Load(cfg *viper.Viper) (Config, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	if err := godotenv.Load(dotEnvFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", dotEnvFile, err)
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("resolve home directory: %w", err)
	}

	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(filepath.Join(homeDir, configDir))
	cfg.SetEnvPrefix(envPrefix)
	cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	cfg.AutomaticEnv()

	cfg.SetDefault(PoolPathKey, filepath.Join(homeDir, configDir, itemsFile))
	cfg.SetDefault(RoundSecondsKey, defaultRoundSeconds)
	cfg.SetDefault(TickIntervalKey, defaultTickInterval)
	cfg.SetDefault(RandomSeedKey, 0)
	cfg.SetDefault(LogLevelKey, defaultLogLevel)
	cfg.SetDefault(LogPathKey, "")

	if err := cfg.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	poolPath := cfg.GetString(PoolPathKey)
	if strings.TrimSpace(poolPath) == "" {
		return Config{}, errors.New("pool path is empty")
	}
	poolPath, err = normalizePath(poolPath)
	if err != nil {
		return Config{}, err
	}

	roundSeconds := cfg.GetInt(RoundSecondsKey)
	if roundSeconds <= 0 {
		return Config{}, fmt.Errorf("%s must be positive, got %d", RoundSecondsKey, roundSeconds)
	}

	tickInterval := cfg.GetDuration(TickIntervalKey)
	if tickInterval <= 0 {
		return Config{}, fmt.Errorf("%s must be positive, got %s", TickIntervalKey, tickInterval)
	}

	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(cfg.GetString(LogLevelKey))))
	if err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", LogLevelKey, err)
	}

	logPath := cfg.GetString(LogPathKey)
	if logPath != "" {
		logPath, err = normalizePath(logPath)
		if err != nil {
			return Config{}, err
		}
	}

	return Config{
		PoolPath:     poolPath,
		RoundSeconds: roundSeconds,
		TickInterval: tickInterval,
		Seed:         cfg.GetUint64(RandomSeedKey),
		LogLevel:     level,
		LogPath:      logPath,
	}, nil
}

func normalizePath(path string) (string, error) {
	if rest, ok := strings.CutPrefix(path, "~/"); ok {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		path = filepath.Join(homeDir, rest)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve path %q: %w", path, err)
	}

	return filepath.Clean(absPath), nil
}
