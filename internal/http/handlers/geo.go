package handlers

import (
	"net/http"

	"server/internal/domain"
)

// DivisionsList handles GET /v1/divisions.
func (a *App) DivisionsList(w http.ResponseWriter, r *http.Request) {
	divisions, err := a.Geo.ListDivisions(r.Context())
	if err != nil {
		a.fail(w, err)
		return
	}
	if divisions == nil {
		divisions = []domain.Division{}
	}
	a.json(w, http.StatusOK, map[string]any{"items": divisions})
}

// DistrictsList handles GET /v1/districts, optionally filtered by the
// `division` query parameter.
func (a *App) DistrictsList(w http.ResponseWriter, r *http.Request) {
	districts, err := a.Geo.ListDistricts(r.Context(), r.URL.Query().Get("division"))
	if err != nil {
		a.fail(w, err)
		return
	}
	if districts == nil {
		districts = []domain.District{}
	}
	a.json(w, http.StatusOK, map[string]any{"items": districts})
}
