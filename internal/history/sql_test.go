package history

import (
	"testing"
	"time"

	"github.com/huangsam/outlier/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuoteTableName(t *testing.T) {
	assert.Equal(t, "`outlier_runs`", quoteTableName("outlier_runs", schema.MySQLBackend))
	assert.Equal(t, `"outlier_runs"`, quoteTableName("outlier_runs", schema.PostgreSQLBackend))
	assert.Equal(t, `"outlier_runs"`, quoteTableName("outlier_runs", schema.SQLiteBackend))
}

func TestRebind(t *testing.T) {
	q := "UPDATE t SET a = ?, b = ? WHERE id = ?"
	assert.Equal(t, "UPDATE t SET a = $1, b = $2 WHERE id = $3", rebind(q, schema.PostgreSQLBackend))
	assert.Equal(t, q, rebind(q, schema.MySQLBackend))
	assert.Equal(t, q, rebind(q, schema.SQLiteBackend))
}

func TestDriverFor(t *testing.T) {
	name, dsn, err := driverFor(schema.SQLiteBackend, "/tmp/x.db")
	require.NoError(t, err)
	assert.Equal(t, "sqlite", name)
	assert.Equal(t, "/tmp/x.db", dsn)

	_, dsn, err = driverFor(schema.SQLiteBackend, "")
	require.NoError(t, err)
	assert.NotEmpty(t, dsn)

	name, dsn, err = driverFor(schema.MySQLBackend, "user:pw@tcp(localhost:3306)/outlier")
	require.NoError(t, err)
	assert.Equal(t, "mysql", name)
	assert.Contains(t, dsn, "parseTime=true")

	name, dsn, err = driverFor(schema.PostgreSQLBackend, "postgres://u:p@localhost/outlier")
	require.NoError(t, err)
	assert.Equal(t, "pgx", name)
	assert.Equal(t, "postgres://u:p@localhost/outlier", dsn)
}

func TestTimeScanner(t *testing.T) {
	want := time.Date(2025, 5, 6, 7, 8, 9, 10, time.UTC)
	for _, src := range []any{want, want.Format(time.RFC3339Nano), []byte(want.Format(time.RFC3339Nano))} {
		var ts timeScanner
		require.NoError(t, ts.Scan(src))
		require.NotNil(t, ts.ptr())
		assert.True(t, want.Equal(*ts.ptr()))
	}

	var ts timeScanner
	require.NoError(t, ts.Scan(nil))
	assert.Nil(t, ts.ptr())
	assert.Error(t, ts.Scan("yesterday"))
	assert.Error(t, ts.Scan(42))
}

func TestFormatTime(t *testing.T) {
	ts := time.Date(2025, 5, 6, 7, 8, 9, 0, time.FixedZone("X", 3600))
	assert.Equal(t, "2025-05-06T06:08:09Z", formatTime(ts, schema.SQLiteBackend))
	assert.Equal(t, ts.UTC(), formatTime(ts, schema.PostgreSQLBackend))
}
