package migrations

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFS_GooseAnnotations(t *testing.T) {
	t.Parallel()

	files, err := fs.Glob(FS, "*.sql")
	require.NoError(t, err)
	require.Len(t, files, 3)
	for _, f := range files {
		b, err := fs.ReadFile(FS, f)
		require.NoError(t, err)
		require.Contains(t, string(b), "-- +goose Up", f)
		require.Contains(t, string(b), "-- +goose Down", f)
	}
}

// The catalog index must match the expressions CatalogRepo.Sample filters on.
func TestCatalogIndex_MatchesSampleFilter(t *testing.T) {
	t.Parallel()

	b, err := fs.ReadFile(FS, "00002_catalog.sql")
	require.NoError(t, err)
	sql := strings.Join(strings.Fields(string(b)), " ")
	require.Contains(t, sql, "(lower(gender), lower(base_colour))")
}
