package migrations

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationVersion(t *testing.T) {
	assert.Equal(t, "001", migrationVersion("migrations/001_init.sql"))
	assert.Equal(t, "010", migrationVersion("/abs/010_add_index_on_role.sql"))
	assert.Equal(t, "nounderscore.sql", migrationVersion("nounderscore.sql"))
}

func TestSQLFilesOrdersAndFilters(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"002_b.sql", "001_a.sql", "README.md", "010_c.sql"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("SELECT 1;"), 0o600))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "003_dir.sql"), 0o700))

	files, err := sqlFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "001_a.sql"),
		filepath.Join(dir, "002_b.sql"),
		filepath.Join(dir, "010_c.sql"),
	}, files)
}

func TestSQLFilesMissingDirectory(t *testing.T) {
	_, err := sqlFiles(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}
