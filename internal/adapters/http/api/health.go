package api

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/okian/dss/pkg/metrics"
)

// HealthHandler serves liveness and metrics endpoints.
type HealthHandler struct {
	metrics http.Handler
	now     func() time.Time
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{
		metrics: promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}),
		now:     time.Now,
	}
}

type healthResponse struct {
	OK bool  `json:"ok"`
	TS int64 `json:"ts"`
}

// HandleHealth handles GET /api/health with {"ok":true,"ts":<unix ms>}.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{OK: true, TS: h.now().UnixMilli()})
}

// HandleMetrics handles GET /healthz by exposing the Prometheus registry.
func (h *HealthHandler) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	h.metrics.ServeHTTP(w, r)
}
