package controllers

import (
	"encoding/json"
	"net/http"
)

type HealthController struct {
	apiKey func() string
}

func NewHealthController(apiKey func() string) *HealthController {
	return &HealthController{apiKey: apiKey}
}

// HealthCheck always answers 200; "credential" tells operators whether
// /api/search can reach the upstream at all.
func (h *HealthController) HealthCheck(w http.ResponseWriter, r *http.Request) {
	credential := "missing"
	if h.apiKey != nil && h.apiKey() != "" {
		credential = "configured"
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok", "credential": credential})
}
