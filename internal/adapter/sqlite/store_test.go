package sqlite_test

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ForeverProglamer/infrastructure-of-web-apps/internal/adapter/sqlite"
	"github.com/ForeverProglamer/infrastructure-of-web-apps/internal/domain"
	"github.com/ForeverProglamer/infrastructure-of-web-apps/internal/storetest"
)

func newStore(t *testing.T) *sqlite.Store {
	t.Helper()

	db, err := sqlite.Open(context.Background(), sqlite.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return sqlite.New(db)
}

func TestStore_Contract(t *testing.T) {
	t.Parallel()

	storetest.Run(t, newStore(t), storetest.Capabilities{
		EnforcesForeignKeys: true,
		EnforcesUniqueness:  true,
		MissingID:           func() domain.ID { return "9223372036854775807" },
	})
}

func TestStore_NameTooLong(t *testing.T) {
	t.Parallel()
	store := newStore(t)

	_, err := store.CreateDictionary(context.Background(), strings.Repeat("x", 31))
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestOpen_File(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "dictionary.db")

	db, err := sqlite.Open(ctx, path)
	require.NoError(t, err)

	id, err := sqlite.New(db).CreateDictionary(ctx, "persisted")
	require.NoError(t, err)
	require.NoError(t, db.Close())

	// Reopening applies the schema again and keeps the data.
	db, err = sqlite.Open(ctx, path)
	require.NoError(t, err)
	defer db.Close()

	d, err := sqlite.New(db).GetDictionary(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "persisted", d.Name)
}

func TestOpen_ForeignKeysEnabled(t *testing.T) {
	t.Parallel()

	db, err := sqlite.Open(context.Background(), sqlite.MemoryPath)
	require.NoError(t, err)
	defer db.Close()

	var fk int
	require.NoError(t, db.QueryRow("PRAGMA foreign_keys").Scan(&fk))
	assert.Equal(t, 1, fk)
}

func TestStore_DeleteWordlist_CascadesInOneStatement(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db, err := sqlite.Open(ctx, sqlite.MemoryPath)
	require.NoError(t, err)
	defer db.Close()
	store := sqlite.New(db)

	dictID, err := store.CreateDictionary(ctx, "Spanish")
	require.NoError(t, err)
	wlID, err := store.CreateWordlist(ctx, "Verbs", dictID)
	require.NoError(t, err)
	_, err = store.CreateWordlistRow(ctx, "hablar", "to speak", wlID)
	require.NoError(t, err)
	_, err = store.CreateWordlistRow(ctx, "comer", "to eat", wlID)
	require.NoError(t, err)

	deleted, err := store.DeleteWordlist(ctx, wlID)
	require.NoError(t, err)
	require.True(t, deleted)

	var rows int
	require.NoError(t, db.QueryRow("SELECT count(*) FROM wordlist_rows").Scan(&rows))
	assert.Zero(t, rows)
}
