package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/ForeverProglamer/infrastructure-of-web-apps/internal/domain"
	"github.com/ForeverProglamer/infrastructure-of-web-apps/internal/service/dictionary"
)

// dictionaryService defines the operations DictionaryHandler needs.
type dictionaryService interface {
	CreateDictionary(ctx context.Context, in dictionary.CreateDictionaryInput) (domain.ID, error)
	GetDictionary(ctx context.Context, id domain.ID) (*domain.Dictionary, error)
	ListDictionaries(ctx context.Context) ([]domain.Dictionary, error)
	DeleteDictionary(ctx context.Context, id domain.ID) (bool, error)
	CreateWordlist(ctx context.Context, in dictionary.CreateWordlistInput) (domain.ID, error)
	ListWordlists(ctx context.Context, dictID domain.ID) ([]domain.Wordlist, error)
	DeleteWordlist(ctx context.Context, id domain.ID) (bool, error)
	CreateWordlistRow(ctx context.Context, in dictionary.CreateWordlistRowInput) (domain.ID, error)
	ListRows(ctx context.Context, wordlistID domain.ID) ([]domain.WordlistRow, error)
	DeleteWordlistRow(ctx context.Context, id domain.ID) (bool, error)
}

// DictionaryHandler serves dictionary, wordlist and wordlist row endpoints.
type DictionaryHandler struct {
	svc dictionaryService
	log *slog.Logger
}

// NewDictionaryHandler creates a DictionaryHandler.
func NewDictionaryHandler(svc dictionaryService, logger *slog.Logger) *DictionaryHandler {
	return &DictionaryHandler{svc: svc, log: logger.With("handler", "dictionary")}
}

// idParam is an id in a request body. Relational clients send numbers,
// document clients send hex strings; both are accepted.
type idParam string

func (p *idParam) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*p = idParam(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id must be a string or a number")
	}
	*p = idParam(n.String())
	return nil
}

type createDictionaryRequest struct {
	Name string `json:"name"`
}

type createWordlistRequest struct {
	Name   string  `json:"name"`
	DictID idParam `json:"dict_id"`
}

type createWordlistRowRequest struct {
	Phrase     string  `json:"phrase"`
	Meaning    string  `json:"meaning"`
	WordlistID idParam `json:"wordlist_id"`
}

type dictionaryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type wordlistResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	DictID string `json:"dict_id"`
}

type wordlistRowResponse struct {
	ID         string `json:"id"`
	Phrase     string `json:"phrase"`
	Meaning    string `json:"meaning"`
	WordlistID string `json:"wordlist_id"`
}

// ---------------------------------------------------------------------------
// Dictionaries
// ---------------------------------------------------------------------------

// ListDictionaries handles GET /dict.
func (h *DictionaryHandler) ListDictionaries(w http.ResponseWriter, r *http.Request) {
	dicts, err := h.svc.ListDictionaries(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	resp := make([]dictionaryResponse, 0, len(dicts))
	for _, d := range dicts {
		resp = append(resp, toDictionaryResponse(d))
	}
	writeJSON(w, http.StatusOK, resp)
}

// CreateDictionary handles POST /dict.
func (h *DictionaryHandler) CreateDictionary(w http.ResponseWriter, r *http.Request) {
	var req createDictionaryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	id, err := h.svc.CreateDictionary(r.Context(), dictionary.CreateDictionaryInput{Name: req.Name})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, idResponse{ID: id.String()})
}

// GetDictionary handles GET /dict/{id}.
func (h *DictionaryHandler) GetDictionary(w http.ResponseWriter, r *http.Request) {
	d, err := h.svc.GetDictionary(r.Context(), domain.ID(r.PathValue("id")))
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toDictionaryResponse(*d))
}

// DeleteDictionary handles DELETE /dict/{id}. Unknown ids also get 204.
func (h *DictionaryHandler) DeleteDictionary(w http.ResponseWriter, r *http.Request) {
	h.delete(w, r, h.svc.DeleteDictionary)
}

// ---------------------------------------------------------------------------
// Wordlists
// ---------------------------------------------------------------------------

// ListWordlists handles GET /wordlist/{dict_id}.
func (h *DictionaryHandler) ListWordlists(w http.ResponseWriter, r *http.Request) {
	lists, err := h.svc.ListWordlists(r.Context(), domain.ID(r.PathValue("dict_id")))
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	resp := make([]wordlistResponse, 0, len(lists))
	for _, l := range lists {
		resp = append(resp, wordlistResponse{ID: l.ID.String(), Name: l.Name, DictID: l.DictID.String()})
	}
	writeJSON(w, http.StatusOK, resp)
}

// CreateWordlist handles POST /wordlist.
func (h *DictionaryHandler) CreateWordlist(w http.ResponseWriter, r *http.Request) {
	var req createWordlistRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	id, err := h.svc.CreateWordlist(r.Context(), dictionary.CreateWordlistInput{
		Name:   req.Name,
		DictID: domain.ID(req.DictID),
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, idResponse{ID: id.String()})
}

// DeleteWordlist handles DELETE /wordlist/{id}.
func (h *DictionaryHandler) DeleteWordlist(w http.ResponseWriter, r *http.Request) {
	h.delete(w, r, h.svc.DeleteWordlist)
}

// ---------------------------------------------------------------------------
// Wordlist rows
// ---------------------------------------------------------------------------

// ListRows handles GET /wordlist-row/{wordlist_id}.
func (h *DictionaryHandler) ListRows(w http.ResponseWriter, r *http.Request) {
	rows, err := h.svc.ListRows(r.Context(), domain.ID(r.PathValue("wordlist_id")))
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	resp := make([]wordlistRowResponse, 0, len(rows))
	for _, row := range rows {
		resp = append(resp, wordlistRowResponse{
			ID:         row.ID.String(),
			Phrase:     row.Phrase,
			Meaning:    row.Meaning,
			WordlistID: row.WordlistID.String(),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// CreateWordlistRow handles POST /wordlist-row.
func (h *DictionaryHandler) CreateWordlistRow(w http.ResponseWriter, r *http.Request) {
	var req createWordlistRowRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	id, err := h.svc.CreateWordlistRow(r.Context(), dictionary.CreateWordlistRowInput{
		Phrase:     req.Phrase,
		Meaning:    req.Meaning,
		WordlistID: domain.ID(req.WordlistID),
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, idResponse{ID: id.String()})
}

// DeleteWordlistRow handles DELETE /wordlist-row/{id}.
func (h *DictionaryHandler) DeleteWordlistRow(w http.ResponseWriter, r *http.Request) {
	h.delete(w, r, h.svc.DeleteWordlistRow)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func (h *DictionaryHandler) delete(w http.ResponseWriter, r *http.Request, del func(context.Context, domain.ID) (bool, error)) {
	if _, err := del(r.Context(), domain.ID(r.PathValue("id"))); err != nil {
		h.handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *DictionaryHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		resp := errorResponse{Error: "validation failed"}
		for _, fe := range ve.Errors {
			resp.Fields = append(resp.Fields, fieldError{Field: fe.Field, Message: fe.Message})
		}
		writeJSON(w, http.StatusBadRequest, resp)
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, "validation failed")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrParentNotFound):
		writeError(w, http.StatusConflict, "parent not found")
	case errors.Is(err, domain.ErrAlreadyExists):
		writeError(w, http.StatusConflict, "already exists")
	default:
		h.log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func toDictionaryResponse(d domain.Dictionary) dictionaryResponse {
	return dictionaryResponse{ID: d.ID.String(), Name: d.Name}
}
