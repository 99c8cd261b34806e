package rest

import "net/http"

// NewRouter registers every endpoint on a new ServeMux.
func NewRouter(dict *DictionaryHandler, health *HealthHandler) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /dict", dict.ListDictionaries)
	mux.HandleFunc("POST /dict", dict.CreateDictionary)
	mux.HandleFunc("GET /dict/{id}", dict.GetDictionary)
	mux.HandleFunc("DELETE /dict/{id}", dict.DeleteDictionary)

	mux.HandleFunc("GET /wordlist/{dict_id}", dict.ListWordlists)
	mux.HandleFunc("POST /wordlist", dict.CreateWordlist)
	mux.HandleFunc("DELETE /wordlist/{id}", dict.DeleteWordlist)

	mux.HandleFunc("GET /wordlist-row/{wordlist_id}", dict.ListRows)
	mux.HandleFunc("POST /wordlist-row", dict.CreateWordlistRow)
	mux.HandleFunc("DELETE /wordlist-row/{id}", dict.DeleteWordlistRow)

	mux.HandleFunc("GET /live", health.Live)
	mux.HandleFunc("GET /ready", health.Ready)
	mux.HandleFunc("GET /health", health.Health)

	return mux
}
