package rest

import (
	"net/http"
	"time"

	"github.com/heartmarshall/pronounce/internal/adapter/provider/breaker"
)

// breakerStates reports the circuit state of every reference source.
type breakerStates interface {
	States() []breaker.SourceState
}

// HealthHandler serves health check endpoints.
type HealthHandler struct {
	breakers breakerStates
	version  string
}

// NewHealthHandler creates a HealthHandler. breakers may be nil when
// circuit breaking is disabled; upstreams are then always reported ok.
func NewHealthHandler(breakers breakerStates, version string) *HealthHandler {
	return &HealthHandler{breakers: breakers, version: version}
}

// HealthResponse is the JSON response for /health and /ready.
type HealthResponse struct {
	Status     string                `json:"status"`
	Version    string                `json:"version,omitempty"`
	Components map[string]CompStatus `json:"components,omitempty"`
	Timestamp  time.Time             `json:"timestamp"`
}

// CompStatus is the status of an individual component.
type CompStatus struct {
	Status  string `json:"status"`
	Circuit string `json:"circuit,omitempty"`
}

// Live is the liveness probe. Always returns 200.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
	})
}

// Ready is the readiness probe: 503 when every upstream circuit is open,
// because then no lookup can succeed.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	overall, _ := h.evaluate()

	status := http.StatusOK
	if overall == "down" {
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, HealthResponse{
		Status:    overall,
		Timestamp: time.Now(),
	})
}

// Health is the full health check with per-source circuit state and version.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	overall, components := h.evaluate()

	status := http.StatusOK
	if overall == "down" {
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, HealthResponse{
		Status:     overall,
		Version:    h.version,
		Components: components,
		Timestamp:  time.Now(),
	})
}

// evaluate maps circuit states to component statuses. Overall status is
// "ok" when all circuits are closed, "down" when all are open, and
// "degraded" otherwise.
func (h *HealthHandler) evaluate() (string, map[string]CompStatus) {
	if h.breakers == nil {
		return "ok", nil
	}

	states := h.breakers.States()
	components := make(map[string]CompStatus, len(states))
	closed, open := 0, 0

	for _, s := range states {
		cs := CompStatus{Circuit: s.State}
		switch s.State {
		case "closed":
			cs.Status = "ok"
			closed++
		case "open":
			cs.Status = "down"
			open++
		default:
			cs.Status = "degraded"
		}
		components["upstream:"+s.Source] = cs
	}

	switch {
	case len(states) == 0 || closed == len(states):
		return "ok", components
	case open == len(states):
		return "down", components
	default:
		return "degraded", components
	}
}
