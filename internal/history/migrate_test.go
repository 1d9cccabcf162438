package history

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/outlier/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate_SQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	var out bytes.Buffer

	require.NoError(t, Migrate(schema.SQLiteBackend, path, -1, &out))
	assert.Contains(t, out.String(), "Successfully migrated from version 0 to version 3")
	version, err := CurrentVersion(schema.SQLiteBackend, path)
	require.NoError(t, err)
	assert.Equal(t, uint(3), version)

	out.Reset()
	require.NoError(t, Migrate(schema.SQLiteBackend, path, -1, &out))
	assert.Contains(t, out.String(), "already at the latest version")

	out.Reset()
	require.NoError(t, Migrate(schema.SQLiteBackend, path, 1, &out))
	version, err = CurrentVersion(schema.SQLiteBackend, path)
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)

	out.Reset()
	require.NoError(t, Migrate(schema.SQLiteBackend, path, 0, &out))
	assert.Contains(t, out.String(), "rolled back from version 1 to version 0")
	version, err = CurrentVersion(schema.SQLiteBackend, path)
	require.NoError(t, err)
	assert.Zero(t, version)
}

func TestMigrate_StoreCreatedDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	store, err := NewRunStore(schema.SQLiteBackend, path)
	require.NoError(t, err)
	_, err = store.BeginRun(schema.RunMeta{StartTime: time.Now(), Metric: schema.CCNMetric})
	require.NoError(t, err)
	require.NoError(t, store.Close())

	require.NoError(t, Migrate(schema.SQLiteBackend, path, -1, &bytes.Buffer{}))

	reopened, err := NewRunStore(schema.SQLiteBackend, path)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()
	runs, err := reopened.ListRuns()
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestMigrate_NoneBackend(t *testing.T) {
	err := Migrate(schema.NoneBackend, "", -1, &bytes.Buffer{})
	assert.ErrorContains(t, err, "not supported")
}

func TestReadMigration(t *testing.T) {
	for _, backend := range []schema.DatabaseBackend{schema.SQLiteBackend, schema.MySQLBackend, schema.PostgreSQLBackend} {
		for _, name := range tableMigrations {
			stmt, err := readMigration(backend, name)
			require.NoError(t, err, "%s/%s", backend, name)
			assert.Contains(t, stmt, "CREATE TABLE IF NOT EXISTS")
		}
	}
}
