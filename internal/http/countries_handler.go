package http

import (
	"net/http"
	"os"
	"path/filepath"
)

// CountriesHandler serves the static countries list shipped alongside the
// other assets. The file is read per request so edits show up without a
// restart.
type CountriesHandler struct {
	staticDir string
}

func NewCountriesHandler(staticDir string) *CountriesHandler {
	return &CountriesHandler{staticDir: staticDir}
}

func (h *CountriesHandler) ListCountries(w http.ResponseWriter, r *http.Request) {
	data, err := os.ReadFile(filepath.Join(h.staticDir, "countries.json"))
	if err != nil {
		if os.IsNotExist(err) {
			respondError(w, http.StatusNotFound, "not_found", "countries list not available")
			return
		}
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load countries")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
