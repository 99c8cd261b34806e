//go:build e2e

package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ForeverProglamer/infrastructure-of-web-apps/internal/adapter/mongo"
	mongohelper "github.com/ForeverProglamer/infrastructure-of-web-apps/internal/adapter/mongo/testhelper"
	"github.com/ForeverProglamer/infrastructure-of-web-apps/internal/adapter/postgres"
	pghelper "github.com/ForeverProglamer/infrastructure-of-web-apps/internal/adapter/postgres/testhelper"
	"github.com/ForeverProglamer/infrastructure-of-web-apps/internal/adapter/sqlite"
	"github.com/ForeverProglamer/infrastructure-of-web-apps/internal/app"
	"github.com/ForeverProglamer/infrastructure-of-web-apps/internal/config"
	"github.com/ForeverProglamer/infrastructure-of-web-apps/internal/service/dictionary"
)

// ---------------------------------------------------------------------------
// testServer wraps the full-stack HTTP server for E2E tests.
// ---------------------------------------------------------------------------

type testServer struct {
	URL     string
	Client  *http.Client
	Backend string
}

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// backends returns a constructor per storage backend. Each constructor
// yields a fresh, empty store.
func backends() map[string]func(t *testing.T) dictionary.Store {
	return map[string]func(t *testing.T) dictionary.Store{
		config.BackendPostgres: func(t *testing.T) dictionary.Store {
			pool := pghelper.SetupTestDB(t)
			_, err := pool.Exec(context.Background(),
				`TRUNCATE dicts, wordlists, wordlist_rows RESTART IDENTITY CASCADE`)
			require.NoError(t, err)
			return postgres.New(pool)
		},
		config.BackendSQLite: func(t *testing.T) dictionary.Store {
			db, err := sqlite.Open(context.Background(), sqlite.MemoryPath)
			require.NoError(t, err)
			t.Cleanup(func() { _ = db.Close() })
			return sqlite.New(db)
		},
		config.BackendMongo: func(t *testing.T) dictionary.Store {
			client, dbName := mongohelper.SetupTestClient(t)
			store := mongo.New(client, dbName, true)
			require.NoError(t, store.EnsureIndexes(context.Background()))
			return store
		},
	}
}

// forEachBackend runs fn against a full HTTP stack over every backend.
func forEachBackend(t *testing.T, fn func(t *testing.T, ts *testServer)) {
	t.Helper()
	for name, open := range backends() {
		t.Run(name, func(t *testing.T) {
			fn(t, setupTestServer(t, name, open(t)))
		})
	}
}

func setupTestServer(t *testing.T, backend string, store dictionary.Store) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))
	srv := httptest.NewServer(app.NewHandler(logger, store, backend))
	t.Cleanup(srv.Close)

	return &testServer{URL: srv.URL, Client: srv.Client(), Backend: backend}
}

// ---------------------------------------------------------------------------
// Request helpers.
// ---------------------------------------------------------------------------

func (ts *testServer) do(t *testing.T, method, path string, body any) (int, []byte) {
	t.Helper()

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, ts.URL+path, r)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

// create POSTs body to path and returns the id of the created record.
func (ts *testServer) create(t *testing.T, path string, body any) string {
	t.Helper()

	status, raw := ts.do(t, http.MethodPost, path, body)
	require.Equal(t, http.StatusCreated, status, string(raw))

	var out struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(raw, &out))
	require.NotEmpty(t, out.ID)
	return out.ID
}

// list GETs path and decodes the JSON array response.
func (ts *testServer) list(t *testing.T, path string) []map[string]any {
	t.Helper()

	status, raw := ts.do(t, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, status, string(raw))

	var out []map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func (ts *testServer) remove(t *testing.T, path string) {
	t.Helper()

	status, raw := ts.do(t, http.MethodDelete, path, nil)
	require.Equal(t, http.StatusNoContent, status, string(raw))
}
