package cmd

import (
	"fmt"

	"github.com/bnema/picquiz/internal/adapters/console"
	"github.com/bnema/picquiz/internal/adapters/tui"
	"github.com/bnema/picquiz/internal/config"
	"github.com/spf13/cobra"
)

func newPlayCmd(app *app) *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a game",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if plain {
				return runPlain(cmd, app)
			}
			return runTUI(cmd, app)
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "Line-oriented play without the full-screen interface")
	cmd.Flags().Uint64("seed", 0, "Random seed for item order (0 picks a fresh one)")
	cmd.Flags().Int("round-seconds", 0, "Seconds allowed per picture")
	_ = app.config.BindPFlag(config.RandomSeedKey, cmd.Flags().Lookup("seed"))
	_ = app.config.BindPFlag(config.RoundSecondsKey, cmd.Flags().Lookup("round-seconds"))

	return cmd
}

func runPlain(cmd *cobra.Command, app *app) error {
	s, err := app.newSession(cmd.Context(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer func() { _ = s.close() }()

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d items, %ds per picture (seed %d)\n", s.engine.PoolSize(), s.cfg.RoundSeconds, s.seed)

	driver := console.New(s.engine, cmd.OutOrStdout(), console.Options{
		TickInterval: s.cfg.TickInterval,
		Clock:        app.clock,
		Logger:       s.logger,
	})

	return driver.Run(cmd.Context(), cmd.InOrStdin())
}

func runTUI(cmd *cobra.Command, app *app) error {
	s, err := app.newSession(cmd.Context(), nil)
	if err != nil {
		return err
	}
	defer func() { _ = s.close() }()

	return tui.Run(cmd.Context(), s.engine, tui.Options{
		TickInterval: s.cfg.TickInterval,
		Title:        "pq",
	}, cmd.InOrStdin(), cmd.OutOrStdout())
}
