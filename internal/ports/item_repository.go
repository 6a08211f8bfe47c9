package ports

import (
	"context"

	"github.com/bnema/picquiz/internal/domain"
)

// ItemRepository supplies the item pool. Implementations return
// domain.ErrPoolNotFound when their backing source does not exist.
type ItemRepository interface {
	List(ctx context.Context) ([]domain.Item, error)
}
