package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bnema/picquiz/internal/domain"
	"github.com/bnema/picquiz/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
)

const (
	itemsFileMode   = 0o600
	itemsDirMode    = 0o700
	tempFilePattern = ".items-*.toml.tmp"
)

type Repository struct {
	itemsPath string
	mu        *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.ItemRepository = (*Repository)(nil)

func NewRepository(itemsPath string) (*Repository, error) {
	if strings.TrimSpace(itemsPath) == "" {
		return nil, errors.New("items path is empty")
	}

	absPath, err := filepath.Abs(itemsPath)
	if err != nil {
		return nil, fmt.Errorf("resolve items path: %w", err)
	}
	absPath = filepath.Clean(absPath)

	return &Repository{itemsPath: absPath, mu: lockForPath(absPath)}, nil
}

func (r *Repository) Path() string {
	return r.itemsPath
}

func (r *Repository) List(ctx context.Context) ([]domain.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return nil, err
	}

	return fromSchema(file), nil
}

// Save inserts item or replaces the entry with the same id. The file is
// created when it does not exist yet.
func (r *Repository) Save(ctx context.Context, item domain.Item) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := item.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil && !errors.Is(err, domain.ErrPoolNotFound) {
		return err
	}
	file.applyDefaults()

	encoded := toSchema(item)
	updated := false
	for i := range file.Items {
		if file.Items[i].ID == encoded.ID {
			file.Items[i] = encoded
			updated = true
			break
		}
	}

	if !updated {
		file.Items = append(file.Items, encoded)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	return r.writeSchema(file)
}

// Decode parses an items document without touching the filesystem.
func Decode(data []byte) ([]domain.Item, error) {
	file, err := decodeSchema(data)
	if err != nil {
		return nil, err
	}

	return fromSchema(file), nil
}

func decodeSchema(data []byte) (fileSchema, error) {
	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, fmt.Errorf("decode items file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func (r *Repository) readSchema() (fileSchema, error) {
	data, err := os.ReadFile(r.itemsPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fileSchema{}, fmt.Errorf("%w: %s", domain.ErrPoolNotFound, r.itemsPath)
		}
		return fileSchema{}, fmt.Errorf("read items file: %w", err)
	}

	return decodeSchema(data)
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}

func (r *Repository) writeSchema(file fileSchema) error {
	file.applyDefaults()

	if err := os.MkdirAll(filepath.Dir(r.itemsPath), itemsDirMode); err != nil {
		return fmt.Errorf("create items directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode items file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(r.itemsPath), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp items file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp items file: %w", err)
	}

	if err := tempFile.Chmod(itemsFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp items file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp items file: %w", err)
	}

	if err := os.Rename(tempName, r.itemsPath); err != nil {
		return fmt.Errorf("replace items file: %w", err)
	}

	cleanup = false

	return nil
}

func toSchema(item domain.Item) itemSchema {
	return itemSchema{
		ID:     string(item.ID),
		Answer: item.Answer,
		Image:  item.Image,
	}
}

func fromSchema(file fileSchema) []domain.Item {
	items := make([]domain.Item, 0, len(file.Items))
	for _, entry := range file.Items {
		items = append(items, domain.Item{
			ID:     domain.ItemID(strings.TrimSpace(entry.ID)),
			Answer: entry.Answer,
			Image:  entry.Image,
		})
	}

	return items
}
