package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDSN(t *testing.T) {
	assert.Equal(t,
		"quotes.db?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)",
		DSN("quotes.db"))
	assert.Equal(t,
		"file:quotes.db?mode=rwc&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)",
		DSN("file:quotes.db?mode=rwc"))
}

func TestOpen_EnablesForeignKeysOnEveryConnection(t *testing.T) {
	ctx := context.Background()
	database, err := Open(ctx, filepath.Join(t.TempDir(), "open-test.db"))
	require.NoError(t, err)
	defer database.Close()

	database.SetMaxOpenConns(4)
	conns := make([]interface{ Close() error }, 0, 4)
	for i := 0; i < 4; i++ {
		conn, err := database.Conn(ctx)
		require.NoError(t, err)
		conns = append(conns, conn)

		var fk int
		require.NoError(t, conn.QueryRowContext(ctx, `PRAGMA foreign_keys`).Scan(&fk))
		assert.Equal(t, 1, fk, "connection %d", i)
	}
	for _, c := range conns {
		_ = c.Close()
	}
}
