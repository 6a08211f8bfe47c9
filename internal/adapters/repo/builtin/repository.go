// Package builtin serves the item pool compiled into the binary. It is the
// fallback when no pool file is configured.
package builtin

import (
	"context"
	_ "embed"
	"fmt"

	tomlrepo "github.com/bnema/picquiz/internal/adapters/repo/toml"
	"github.com/bnema/picquiz/internal/domain"
	"github.com/bnema/picquiz/internal/ports"
)

//go:embed items.toml
var itemsDocument []byte

type Repository struct{}

var _ ports.ItemRepository = Repository{}

func NewRepository() Repository {
	return Repository{}
}

func (Repository) List(ctx context.Context) ([]domain.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	items, err := tomlrepo.Decode(itemsDocument)
	if err != nil {
		return nil, fmt.Errorf("decode builtin items: %w", err)
	}

	return items, nil
}
