package handlers

import (
	"net/http"

	"cagnotte/internal/middleware"
)

type countriesResponse struct {
	Countries []countryItem `json:"countries"`
	// Suggested is the caller's geo-resolved country code, when known.
	Suggested string `json:"suggested,omitempty"`
}

type countryItem struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Countries serves the immutable country reference table, with the caller's
// resolved country as a registration default hint.
func (a *App) CountriesList(w http.ResponseWriter, r *http.Request) {
	all := a.Countries.All()
	items := make([]countryItem, 0, len(all))
	for _, c := range all {
		items = append(items, countryItem{Code: c.Code, Name: c.Name})
	}

	suggested := ""
	if code := middleware.ResolveCountry(r, a.GeoLookup); code != "" {
		if c, ok := a.Countries.Lookup(code); ok {
			suggested = c.Code
		}
	}

	a.json(w, http.StatusOK, countriesResponse{Countries: items, Suggested: suggested})
}
