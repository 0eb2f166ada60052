package handlers

import "net/http"

// Health is the liveness probe. It deliberately skips the database so a
// degraded Postgres does not take the process out of rotation.
func (a *App) Health(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]string{"status": "ok", "service": "cagnotte-api"})
}
