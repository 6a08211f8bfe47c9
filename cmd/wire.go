package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bnema/picquiz/internal/adapters/repo/builtin"
	chainrepo "github.com/bnema/picquiz/internal/adapters/repo/chain"
	tomlrepo "github.com/bnema/picquiz/internal/adapters/repo/toml"
	yamlrepo "github.com/bnema/picquiz/internal/adapters/repo/yaml"
	"github.com/bnema/picquiz/internal/application"
	"github.com/bnema/picquiz/internal/config"
	"github.com/bnema/picquiz/internal/domain"
	"github.com/bnema/picquiz/internal/ports"
	"github.com/bnema/picquiz/internal/random"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

type app struct {
	config *viper.Viper
	clock  clockwork.Clock
}

type session struct {
	cfg    config.Config
	engine *application.Engine
	logger zerolog.Logger
	seed   uint64
	close  func() error
}

func wireApp() (*app, error) {
	return &app{
		config: viper.New(),
		clock:  clockwork.NewRealClock(),
	}, nil
}

func (a *app) loadConfig() (config.Config, error) {
	cfg, err := config.Load(a.config)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// newSession wires a ready-to-start engine. Log lines go to logFallback when
// no log file is configured; a nil fallback discards them.
func (a *app) newSession(ctx context.Context, logFallback io.Writer) (*session, error) {
	cfg, err := a.loadConfig()
	if err != nil {
		return nil, err
	}

	logger, closeLog, err := newLogger(cfg, logFallback)
	if err != nil {
		return nil, err
	}

	items, err := listItems(ctx, cfg.PoolPath)
	if err != nil {
		_ = closeLog()
		return nil, err
	}

	rng, seed, err := random.New(cfg.Seed)
	if err != nil {
		_ = closeLog()
		return nil, fmt.Errorf("seed random source: %w", err)
	}

	engine, err := application.NewEngine(items,
		application.WithSelector(application.NewSelector(rng)),
		application.WithRoundSeconds(cfg.RoundSeconds),
		application.WithClock(a.clock),
		application.WithLogger(logger),
	)
	if err != nil {
		_ = closeLog()
		return nil, fmt.Errorf("build session engine: %w", err)
	}

	logger.Info().
		Str("pool", cfg.PoolPath).
		Int("items", len(items)).
		Uint64("seed", seed).
		Msg("session engine ready")

	return &session{
		cfg:    cfg,
		engine: engine,
		logger: logger,
		seed:   seed,
		close:  closeLog,
	}, nil
}

func itemRepository(poolPath string) (ports.ItemRepository, error) {
	var (
		primary ports.ItemRepository
		err     error
	)

	switch strings.ToLower(filepath.Ext(poolPath)) {
	case ".yaml", ".yml":
		primary, err = yamlrepo.NewRepository(poolPath)
	default:
		primary, err = tomlrepo.NewRepository(poolPath)
	}
	if err != nil {
		return nil, fmt.Errorf("wire item repository: %w", err)
	}

	repo, err := chainrepo.NewRepositoryChecked(primary, builtin.NewRepository())
	if err != nil {
		return nil, fmt.Errorf("wire item repository chain: %w", err)
	}

	return repo, nil
}

func listItems(ctx context.Context, poolPath string) ([]domain.Item, error) {
	repo, err := itemRepository(poolPath)
	if err != nil {
		return nil, err
	}

	items, err := repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load item pool: %w", err)
	}

	return items, nil
}

func newLogger(cfg config.Config, fallback io.Writer) (zerolog.Logger, func() error, error) {
	noop := func() error { return nil }

	if cfg.LogPath != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogPath), 0o700); err != nil {
			return zerolog.Nop(), noop, fmt.Errorf("create log directory: %w", err)
		}

		file, err := os.OpenFile(cfg.LogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return zerolog.Nop(), noop, fmt.Errorf("open log file: %w", err)
		}

		logger := zerolog.New(file).Level(cfg.LogLevel).With().Timestamp().Logger()
		return logger, file.Close, nil
	}

	if fallback == nil {
		return zerolog.Nop(), noop, nil
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: fallback, NoColor: true}).
		Level(cfg.LogLevel).
		With().
		Timestamp().
		Logger()

	return logger, noop, nil
}
