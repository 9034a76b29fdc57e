package main

import (
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_Commands(t *testing.T) {
	root := newRootCmd()

	names := make([]string, 0, len(root.Commands()))
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"serve", "bootstrap"}, names)
	assert.NotNil(t, root.RunE)
}

func TestBootstrapCmd_Idempotent(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	path := filepath.Join(t.TempDir(), "orders.db")
	t.Setenv("SQLITE_PATH", path)
	t.Setenv("KAFKA_ENABLED", "false")

	for range 2 {
		root := newRootCmd()
		root.SetArgs([]string{"bootstrap"})
		require.NoError(t, root.Execute())
	}

	db, err := sqlx.Connect("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	var count int
	require.NoError(t, db.Get(&count, "SELECT COUNT(*) FROM orders"))
	assert.Equal(t, 5, count)
}
