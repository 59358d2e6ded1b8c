package handler

import "net/http"

type healthResponse struct {
	OK bool `json:"ok"`
}

// Health reports liveness.
func Health(w http.ResponseWriter, _ *http.Request) {
	WriteJSON(w, http.StatusOK, healthResponse{OK: true})
}
