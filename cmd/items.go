package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"unicode"

	tomlrepo "github.com/bnema/picquiz/internal/adapters/repo/toml"
	"github.com/bnema/picquiz/internal/domain"
	"github.com/spf13/cobra"
)

var errReadOnlyPool = errors.New("only TOML pool files can be edited")

func newItemsCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "items",
		Short: "Inspect and edit the item pool",
	}

	cmd.AddCommand(
		newItemsListCmd(app),
		newItemsAddCmd(app),
	)

	return cmd
}

func newItemsListCmd(app *app) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the items a game draws from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := app.loadConfig()
			if err != nil {
				return err
			}

			items, err := listItems(cmd.Context(), cfg.PoolPath)
			if err != nil {
				return err
			}
			if err := domain.ValidatePool(items); err != nil {
				return fmt.Errorf("item pool %s: %w", cfg.PoolPath, err)
			}

			if jsonOutput {
				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", "  ")
				return encoder.Encode(items)
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "items: %d\n", len(items))

			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			for _, item := range items {
				_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n",
					sanitizeForTerminal(string(item.ID)),
					sanitizeForTerminal(item.Answer),
					sanitizeForTerminal(item.Image),
				)
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print items as JSON")

	return cmd
}

func newItemsAddCmd(app *app) *cobra.Command {
	var (
		id     string
		answer string
		image  string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add or replace an item in the pool file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := app.loadConfig()
			if err != nil {
				return err
			}

			switch strings.ToLower(filepath.Ext(cfg.PoolPath)) {
			case ".yaml", ".yml":
				return fmt.Errorf("%s: %w", cfg.PoolPath, errReadOnlyPool)
			}

			repo, err := tomlrepo.NewRepository(cfg.PoolPath)
			if err != nil {
				return err
			}

			item := domain.Item{
				ID:     domain.ItemID(strings.TrimSpace(id)),
				Answer: strings.TrimSpace(answer),
				Image:  image,
			}
			if err := repo.Save(cmd.Context(), item); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "saved %s to %s\n", sanitizeForTerminal(string(item.ID)), repo.Path())
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Item id")
	cmd.Flags().StringVar(&answer, "answer", "", "Expected answer")
	cmd.Flags().StringVar(&image, "image", "", "Picture shown to the player (emoji, text art or a path)")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("answer")

	return cmd
}

func sanitizeForTerminal(value string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, value)
}
