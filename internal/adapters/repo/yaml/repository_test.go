package yaml

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/bnema/picquiz/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepositoryList(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "items.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`version: 1
items:
  - id: cat
    answer: Cat
    image: images/cat.png
  - id: " dog "
    answer: Dog
`), 0o600))

	repo, err := NewRepository(path)
	require.NoError(t, err)

	items, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.Item{
		{ID: "cat", Answer: "Cat", Image: "images/cat.png"},
		{ID: "dog", Answer: "Dog"},
	}, items)
}

func TestRepositoryListErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		contents *string
		wantIs   error
		wantText string
	}{
		{name: "missing file", wantIs: domain.ErrPoolNotFound},
		{name: "malformed", contents: ptr("items: [oops"), wantText: "decode items file"},
		{name: "future version", contents: ptr("version: 3\n"), wantText: "unsupported items schema version 3"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "items.yaml")
			if tc.contents != nil {
				require.NoError(t, os.WriteFile(path, []byte(*tc.contents), 0o600))
			}

			repo, err := NewRepository(path)
			require.NoError(t, err)

			_, err = repo.List(context.Background())
			require.Error(t, err)
			if tc.wantIs != nil {
				assert.ErrorIs(t, err, tc.wantIs)
			}
			if tc.wantText != "" {
				assert.ErrorContains(t, err, tc.wantText)
			}
		})
	}
}

func TestNewRepositoryRequiresPath(t *testing.T) {
	t.Parallel()

	_, err := NewRepository("  ")
	require.Error(t, err)
}

func ptr(s string) *string {
	return &s
}
