package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/bnema/picquiz/internal/config"
	"github.com/spf13/cobra"
)

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "pq",
		Short:         "Picture quiz: guess what is shown before the countdown runs out",
		Long:          "pq (picture quiz) shows one picture at a time from an item pool. Type what it shows before the countdown ends; every correct answer resets the countdown, a wrong answer or an empty countdown ends the game.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.PersistentFlags().String("pool", "", "Path to the item pool file (.toml, .yaml or .yml)")
	_ = app.config.BindPFlag(config.PoolPathKey, rootCmd.PersistentFlags().Lookup("pool"))

	rootCmd.AddCommand(
		newVersionCmd(),
		newPlayCmd(app),
		newItemsCmd(app),
	)

	return rootCmd
}
