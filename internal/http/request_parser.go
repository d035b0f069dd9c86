package http

import (
	"net/http"
	"net/url"

	"salesdash/internal/core"
)

// parseMonth reads the month filter. Anything other than a two-digit month
// yields the zero Month, which matches no rows.
func parseMonth(query url.Values) core.Month {
	m, ok := core.ParseMonth(query.Get("month"))
	if !ok {
		return 0
	}
	return m
}

// requireGET answers 405 for anything but GET. Returns false when the request
// was already handled.
func requireGET(w http.ResponseWriter, r *http.Request) bool {
	if r.Method == http.MethodGet {
		return true
	}
	w.Header().Set("Allow", "GET")
	writeJSON(w, http.StatusMethodNotAllowed, errorBody{Error: "Method Not Allowed"})
	return false
}
