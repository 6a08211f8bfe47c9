package toml

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/bnema/picquiz/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepositoryRoundTrip(t *testing.T) {
	t.Parallel()

	repo, err := NewRepository(filepath.Join(t.TempDir(), "items.toml"))
	require.NoError(t, err)

	cat := domain.Item{ID: "cat", Answer: "Cat", Image: "images/cat.png"}
	dog := domain.Item{ID: "dog", Answer: "Dog", Image: "images/dog.png"}

	require.NoError(t, repo.Save(context.Background(), cat))
	require.NoError(t, repo.Save(context.Background(), dog))

	items, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.Item{cat, dog}, items)
}

func TestRepositorySaveReplacesExistingID(t *testing.T) {
	t.Parallel()

	repo, err := NewRepository(filepath.Join(t.TempDir(), "items.toml"))
	require.NoError(t, err)

	require.NoError(t, repo.Save(context.Background(), domain.Item{ID: "cat", Answer: "cat"}))
	require.NoError(t, repo.Save(context.Background(), domain.Item{ID: "cat", Answer: "kitten", Image: "k.png"}))

	items, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.Item{{ID: "cat", Answer: "kitten", Image: "k.png"}}, items)
}

func TestRepositoryListMissingFile(t *testing.T) {
	t.Parallel()

	repo, err := NewRepository(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)

	_, err = repo.List(context.Background())
	require.ErrorIs(t, err, domain.ErrPoolNotFound)
}

func TestRepositoryRejectsInvalidItem(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "items.toml")
	repo, err := NewRepository(path)
	require.NoError(t, err)

	err = repo.Save(context.Background(), domain.Item{ID: "cat", Answer: "  "})
	require.ErrorIs(t, err, domain.ErrInvalidItem)

	_, statErr := os.Stat(path)
	assert.ErrorIs(t, statErr, os.ErrNotExist)
}

func TestRepositoryRejectsFutureSchemaVersion(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "items.toml")
	require.NoError(t, os.WriteFile(path, []byte("version = 2\n"), 0o600))

	repo, err := NewRepository(path)
	require.NoError(t, err)

	_, err = repo.List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported items schema version 2")
}

func TestRepositoryReadsHandWrittenFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "items.toml")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join([]string{
		"[[items]]",
		"id = \" 1 \"",
		"answer = \"cat\"",
		"image = \"cat.png\"",
		"",
		"[[items]]",
		"id = \"2\"",
		"answer = \"dog\"",
		"",
	}, "\n")), 0o644))

	repo, err := NewRepository(path)
	require.NoError(t, err)

	items, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.Item{
		{ID: "1", Answer: "cat", Image: "cat.png"},
		{ID: "2", Answer: "dog"},
	}, items)
}

func TestRepositoryWritesPrivateFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "items.toml")
	repo, err := NewRepository(path)
	require.NoError(t, err)

	require.NoError(t, repo.Save(context.Background(), domain.Item{ID: "cat", Answer: "cat"}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "version = 1")
}

func TestRepositoryConcurrentSaves(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "items.toml")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			repo, err := NewRepository(path)
			if !assert.NoError(t, err) {
				return
			}
			id := fmt.Sprintf("item-%d", i)
			assert.NoError(t, repo.Save(context.Background(), domain.Item{ID: domain.ItemID(id), Answer: id}))
		}(i)
	}
	wg.Wait()

	repo, err := NewRepository(path)
	require.NoError(t, err)
	items, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, items, 8)
}

func TestRepositoryHonoursCancelledContext(t *testing.T) {
	t.Parallel()

	repo, err := NewRepository(filepath.Join(t.TempDir(), "items.toml"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = repo.List(ctx)
	require.ErrorIs(t, err, context.Canceled)
	require.ErrorIs(t, repo.Save(ctx, domain.Item{ID: "cat", Answer: "cat"}), context.Canceled)
}

func TestDecode(t *testing.T) {
	t.Parallel()

	items, err := Decode([]byte("version = 1\n[[items]]\nid = \"x\"\nanswer = \"y\"\n"))
	require.NoError(t, err)
	assert.Equal(t, []domain.Item{{ID: "x", Answer: "y"}}, items)

	_, err = Decode([]byte("not toml ="))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode items file")
}
