package chain

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/picquiz/internal/domain"
	"github.com/bnema/picquiz/internal/ports"
)

// Repository lists items from primary and falls back when primary has no pool
// at all. Any other primary failure is returned as is so a broken pool file is
// never silently replaced.
type Repository struct {
	primary  ports.ItemRepository
	fallback ports.ItemRepository
}

var _ ports.ItemRepository = (*Repository)(nil)

var (
	errNilPrimaryRepository  = errors.New("primary item repository is nil")
	errNilFallbackRepository = errors.New("fallback item repository is nil")
)

func NewRepository(primary ports.ItemRepository, fallback ports.ItemRepository) *Repository {
	repo, err := NewRepositoryChecked(primary, fallback)
	if err != nil {
		panic(err)
	}

	return repo
}

func NewRepositoryChecked(primary ports.ItemRepository, fallback ports.ItemRepository) (*Repository, error) {
	if primary == nil {
		return nil, errNilPrimaryRepository
	}
	if fallback == nil {
		return nil, errNilFallbackRepository
	}

	return &Repository{primary: primary, fallback: fallback}, nil
}

func (r *Repository) List(ctx context.Context) ([]domain.Item, error) {
	items, err := r.primary.List(ctx)
	if err == nil {
		return items, nil
	}
	if !errors.Is(err, domain.ErrPoolNotFound) {
		return nil, err
	}

	fallbackItems, fallbackErr := r.fallback.List(ctx)
	if fallbackErr == nil {
		return fallbackItems, nil
	}

	return nil, fmt.Errorf("primary pool list failed: %w; fallback pool list failed: %w", err, fallbackErr)
}
