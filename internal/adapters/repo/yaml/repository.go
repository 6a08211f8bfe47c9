package yaml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bnema/picquiz/internal/domain"
	"github.com/bnema/picquiz/internal/ports"
	"gopkg.in/yaml.v3"
)

const currentSchemaVersion = 1

type fileSchema struct {
	Version int          `yaml:"version"`
	Items   []itemSchema `yaml:"items"`
}

type itemSchema struct {
	ID     string `yaml:"id"`
	Answer string `yaml:"answer"`
	Image  string `yaml:"image"`
}

// Repository reads an item pool from a YAML document. It is read-only; pools
// are authored by hand or with the TOML repository.
type Repository struct {
	itemsPath string
}

var _ ports.ItemRepository = (*Repository)(nil)

func NewRepository(itemsPath string) (*Repository, error) {
	if strings.TrimSpace(itemsPath) == "" {
		return nil, errors.New("items path is empty")
	}

	absPath, err := filepath.Abs(itemsPath)
	if err != nil {
		return nil, fmt.Errorf("resolve items path: %w", err)
	}

	return &Repository{itemsPath: filepath.Clean(absPath)}, nil
}

func (r *Repository) List(ctx context.Context) ([]domain.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(r.itemsPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrPoolNotFound, r.itemsPath)
		}
		return nil, fmt.Errorf("read items file: %w", err)
	}

	var file fileSchema
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode items file: %w", err)
	}
	if file.Version > currentSchemaVersion {
		return nil, fmt.Errorf("unsupported items schema version %d (current %d)", file.Version, currentSchemaVersion)
	}

	items := make([]domain.Item, 0, len(file.Items))
	for _, entry := range file.Items {
		items = append(items, domain.Item{
			ID:     domain.ItemID(strings.TrimSpace(entry.ID)),
			Answer: entry.Answer,
			Image:  entry.Image,
		})
	}

	return items, nil
}
