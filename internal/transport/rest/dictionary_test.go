package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ForeverProglamer/infrastructure-of-web-apps/internal/cascade"
	"github.com/ForeverProglamer/infrastructure-of-web-apps/internal/domain"
	"github.com/ForeverProglamer/infrastructure-of-web-apps/internal/service/dictionary"
)

type mockDictionaryService struct {
	CreateDictionaryFunc  func(ctx context.Context, in dictionary.CreateDictionaryInput) (domain.ID, error)
	GetDictionaryFunc     func(ctx context.Context, id domain.ID) (*domain.Dictionary, error)
	ListDictionariesFunc  func(ctx context.Context) ([]domain.Dictionary, error)
	DeleteDictionaryFunc  func(ctx context.Context, id domain.ID) (bool, error)
	CreateWordlistFunc    func(ctx context.Context, in dictionary.CreateWordlistInput) (domain.ID, error)
	ListWordlistsFunc     func(ctx context.Context, dictID domain.ID) ([]domain.Wordlist, error)
	DeleteWordlistFunc    func(ctx context.Context, id domain.ID) (bool, error)
	CreateWordlistRowFunc func(ctx context.Context, in dictionary.CreateWordlistRowInput) (domain.ID, error)
	ListRowsFunc          func(ctx context.Context, wordlistID domain.ID) ([]domain.WordlistRow, error)
	DeleteWordlistRowFunc func(ctx context.Context, id domain.ID) (bool, error)
}

func (m *mockDictionaryService) CreateDictionary(ctx context.Context, in dictionary.CreateDictionaryInput) (domain.ID, error) {
	if m.CreateDictionaryFunc != nil {
		return m.CreateDictionaryFunc(ctx, in)
	}
	return "1", nil
}

func (m *mockDictionaryService) GetDictionary(ctx context.Context, id domain.ID) (*domain.Dictionary, error) {
	if m.GetDictionaryFunc != nil {
		return m.GetDictionaryFunc(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *mockDictionaryService) ListDictionaries(ctx context.Context) ([]domain.Dictionary, error) {
	if m.ListDictionariesFunc != nil {
		return m.ListDictionariesFunc(ctx)
	}
	return nil, nil
}

func (m *mockDictionaryService) DeleteDictionary(ctx context.Context, id domain.ID) (bool, error) {
	if m.DeleteDictionaryFunc != nil {
		return m.DeleteDictionaryFunc(ctx, id)
	}
	return false, nil
}

func (m *mockDictionaryService) CreateWordlist(ctx context.Context, in dictionary.CreateWordlistInput) (domain.ID, error) {
	if m.CreateWordlistFunc != nil {
		return m.CreateWordlistFunc(ctx, in)
	}
	return "1", nil
}

func (m *mockDictionaryService) ListWordlists(ctx context.Context, dictID domain.ID) ([]domain.Wordlist, error) {
	if m.ListWordlistsFunc != nil {
		return m.ListWordlistsFunc(ctx, dictID)
	}
	return nil, nil
}

func (m *mockDictionaryService) DeleteWordlist(ctx context.Context, id domain.ID) (bool, error) {
	if m.DeleteWordlistFunc != nil {
		return m.DeleteWordlistFunc(ctx, id)
	}
	return false, nil
}

func (m *mockDictionaryService) CreateWordlistRow(ctx context.Context, in dictionary.CreateWordlistRowInput) (domain.ID, error) {
	if m.CreateWordlistRowFunc != nil {
		return m.CreateWordlistRowFunc(ctx, in)
	}
	return "1", nil
}

func (m *mockDictionaryService) ListRows(ctx context.Context, wordlistID domain.ID) ([]domain.WordlistRow, error) {
	if m.ListRowsFunc != nil {
		return m.ListRowsFunc(ctx, wordlistID)
	}
	return nil, nil
}

func (m *mockDictionaryService) DeleteWordlistRow(ctx context.Context, id domain.ID) (bool, error) {
	if m.DeleteWordlistRowFunc != nil {
		return m.DeleteWordlistRowFunc(ctx, id)
	}
	return false, nil
}

func newTestRouter(svc *mockDictionaryService) http.Handler {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewRouter(
		NewDictionaryHandler(svc, log),
		NewHealthHandler(&storePingerMock{}, "sqlite", "test"),
	)
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// ---------------------------------------------------------------------------
// Dictionaries
// ---------------------------------------------------------------------------

func TestCreateDictionary_201(t *testing.T) {
	t.Parallel()

	svc := &mockDictionaryService{
		CreateDictionaryFunc: func(_ context.Context, in dictionary.CreateDictionaryInput) (domain.ID, error) {
			assert.Equal(t, "Spanish", in.Name)
			return "1", nil
		},
	}

	rec := do(t, newTestRouter(svc), http.MethodPost, "/dict", `{"name":"Spanish"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"id":"1"}`, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

func TestCreateDictionary_BadBody(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{"empty", ""},
		{"malformed", `{"name":`},
		{"unknown field", `{"name":"x","extra":1}`},
		{"two objects", `{"name":"x"}{"name":"y"}`},
		{"wrong type", `{"name":5}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := do(t, newTestRouter(&mockDictionaryService{}), http.MethodPost, "/dict", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestCreateDictionary_ValidationFields(t *testing.T) {
	t.Parallel()

	svc := &mockDictionaryService{
		CreateDictionaryFunc: func(_ context.Context, in dictionary.CreateDictionaryInput) (domain.ID, error) {
			return "", in.Validate()
		},
	}

	rec := do(t, newTestRouter(svc), http.MethodPost, "/dict", `{"name":""}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp errorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Fields, 1)
	assert.Equal(t, "name", resp.Fields[0].Field)
}

func TestCreateDictionary_Duplicate409(t *testing.T) {
	t.Parallel()

	svc := &mockDictionaryService{
		CreateDictionaryFunc: func(context.Context, dictionary.CreateDictionaryInput) (domain.ID, error) {
			return "", domain.ErrAlreadyExists
		},
	}

	rec := do(t, newTestRouter(svc), http.MethodPost, "/dict", `{"name":"Spanish"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestListDictionaries_EmptyArray(t *testing.T) {
	t.Parallel()

	rec := do(t, newTestRouter(&mockDictionaryService{}), http.MethodGet, "/dict", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestGetDictionary(t *testing.T) {
	t.Parallel()

	svc := &mockDictionaryService{
		GetDictionaryFunc: func(_ context.Context, id domain.ID) (*domain.Dictionary, error) {
			if id == "1" {
				return &domain.Dictionary{ID: "1", Name: "Spanish"}, nil
			}
			return nil, domain.ErrNotFound
		},
	}
	h := newTestRouter(svc)

	rec := do(t, h, http.MethodGet, "/dict/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":"1","name":"Spanish"}`, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/dict/2", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteDictionary_204EvenWhenAbsent(t *testing.T) {
	t.Parallel()

	var got []domain.ID
	svc := &mockDictionaryService{
		DeleteDictionaryFunc: func(_ context.Context, id domain.ID) (bool, error) {
			got = append(got, id)
			return id == "1", nil
		},
	}
	h := newTestRouter(svc)

	assert.Equal(t, http.StatusNoContent, do(t, h, http.MethodDelete, "/dict/1", "").Code)
	assert.Equal(t, http.StatusNoContent, do(t, h, http.MethodDelete, "/dict/999", "").Code)
	assert.Equal(t, []domain.ID{"1", "999"}, got)
}

func TestDeleteDictionary_PartialCascade500(t *testing.T) {
	t.Parallel()

	svc := &mockDictionaryService{
		DeleteDictionaryFunc: func(context.Context, domain.ID) (bool, error) {
			return false, &cascade.StepError{Step: cascade.StepDeleteRows, Err: domain.ErrUnavailable}
		},
	}

	rec := do(t, newTestRouter(svc), http.MethodDelete, "/dict/1", "")

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
}

// ---------------------------------------------------------------------------
// Wordlists and rows
// ---------------------------------------------------------------------------

func TestCreateWordlist_AcceptsNumericAndStringIDs(t *testing.T) {
	t.Parallel()

	var got []domain.ID
	svc := &mockDictionaryService{
		CreateWordlistFunc: func(_ context.Context, in dictionary.CreateWordlistInput) (domain.ID, error) {
			got = append(got, in.DictID)
			return "10", nil
		},
	}
	h := newTestRouter(svc)

	rec := do(t, h, http.MethodPost, "/wordlist", `{"name":"Verbs","dict_id":1}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, h, http.MethodPost, "/wordlist", `{"name":"Verbs","dict_id":"65f1c0ffee0000000000beef"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	assert.Equal(t, []domain.ID{"1", "65f1c0ffee0000000000beef"}, got)

	rec = do(t, h, http.MethodPost, "/wordlist", `{"name":"Verbs","dict_id":true}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateWordlist_ParentMissing409(t *testing.T) {
	t.Parallel()

	svc := &mockDictionaryService{
		CreateWordlistFunc: func(context.Context, dictionary.CreateWordlistInput) (domain.ID, error) {
			return "", domain.ErrParentNotFound
		},
	}

	rec := do(t, newTestRouter(svc), http.MethodPost, "/wordlist", `{"name":"Verbs","dict_id":1}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestListWordlists(t *testing.T) {
	t.Parallel()

	svc := &mockDictionaryService{
		ListWordlistsFunc: func(_ context.Context, dictID domain.ID) ([]domain.Wordlist, error) {
			return []domain.Wordlist{{ID: "10", Name: "Verbs", DictID: dictID}}, nil
		},
	}

	rec := do(t, newTestRouter(svc), http.MethodGet, "/wordlist/1", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"id":"10","name":"Verbs","dict_id":"1"}]`, rec.Body.String())
}

func TestCreateWordlistRow(t *testing.T) {
	t.Parallel()

	svc := &mockDictionaryService{
		CreateWordlistRowFunc: func(_ context.Context, in dictionary.CreateWordlistRowInput) (domain.ID, error) {
			assert.Equal(t, dictionary.CreateWordlistRowInput{Phrase: "hablar", Meaning: "to speak", WordlistID: "10"}, in)
			return "100", nil
		},
	}

	rec := do(t, newTestRouter(svc), http.MethodPost, "/wordlist-row",
		`{"phrase":"hablar","meaning":"to speak","wordlist_id":10}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"id":"100"}`, rec.Body.String())
}

func TestListRows(t *testing.T) {
	t.Parallel()

	svc := &mockDictionaryService{
		ListRowsFunc: func(_ context.Context, wl domain.ID) ([]domain.WordlistRow, error) {
			return []domain.WordlistRow{{ID: "100", Phrase: "hablar", Meaning: "to speak", WordlistID: wl}}, nil
		},
	}

	rec := do(t, newTestRouter(svc), http.MethodGet, "/wordlist-row/10", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"id":"100","phrase":"hablar","meaning":"to speak","wordlist_id":"10"}]`, rec.Body.String())
}

func TestDeleteWordlistAndRow_204(t *testing.T) {
	t.Parallel()

	svc := &mockDictionaryService{
		DeleteWordlistFunc:    func(context.Context, domain.ID) (bool, error) { return true, nil },
		DeleteWordlistRowFunc: func(context.Context, domain.ID) (bool, error) { return false, nil },
	}
	h := newTestRouter(svc)

	assert.Equal(t, http.StatusNoContent, do(t, h, http.MethodDelete, "/wordlist/10", "").Code)
	assert.Equal(t, http.StatusNoContent, do(t, h, http.MethodDelete, "/wordlist-row/100", "").Code)
}

func TestBackendUnavailable500(t *testing.T) {
	t.Parallel()

	svc := &mockDictionaryService{
		ListRowsFunc: func(context.Context, domain.ID) ([]domain.WordlistRow, error) {
			return nil, errors.Join(domain.ErrUnavailable, errors.New("dial tcp: refused"))
		},
	}

	rec := do(t, newTestRouter(svc), http.MethodGet, "/wordlist-row/10", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "dial tcp")
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	t.Parallel()

	rec := do(t, newTestRouter(&mockDictionaryService{}), http.MethodPut, "/dict/1", `{}`)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRouter_Probes(t *testing.T) {
	t.Parallel()
	h := newTestRouter(&mockDictionaryService{})

	for _, path := range []string{"/live", "/ready", "/health"} {
		assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, path, "").Code, path)
	}
}
