package api

import (
	"errors"
	"net/http"
	"strings"
)

// CountriesHandler exposes the country alias table.
type CountriesHandler struct {
	deps Dependencies
}

// NewCountriesHandler creates a new countries handler.
func NewCountriesHandler(deps Dependencies) *CountriesHandler {
	return &CountriesHandler{deps: deps}
}

type resolveResponse struct {
	Name string `json:"name"`
	ISO3 string `json:"iso3"`
}

// HandleResolve handles GET /api/resolve?name=X.
func (h *CountriesHandler) HandleResolve(w http.ResponseWriter, r *http.Request) {
	const op = "api.resolve"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		writeError(r.Context(), nil, w, WrapKind(op, ErrBadRequest, errors.New("missing name")))
		return
	}
	code, ok := h.deps.Resolve(name)
	if !ok {
		writeError(r.Context(), nil, w, WrapKind(op, ErrNotFound, errors.New("unrecognized country: "+name)))
		return
	}
	writeJSON(w, http.StatusOK, resolveResponse{Name: name, ISO3: code})
}

// HandleList handles GET /api/countries.
func (h *CountriesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Aliases())
}
