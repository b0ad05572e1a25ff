package api

import (
	"net/http"
	"strings"

	"github.com/okian/dss/internal/report"
	"github.com/okian/dss/pkg/logger"
)

// IndicatorsHandler serves comparisons built from upstream indicators.
type IndicatorsHandler struct {
	deps Dependencies
	log  logger.Logger
}

// NewIndicatorsHandler creates a new indicators handler.
func NewIndicatorsHandler(deps Dependencies, log logger.Logger) *IndicatorsHandler {
	return &IndicatorsHandler{deps: deps, log: log}
}

// HandleGetIndicators handles GET /api/indicators?countries=a,b&year=YYYY[&format=csv].
func (h *IndicatorsHandler) HandleGetIndicators(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_indicators"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	q := r.URL.Query()
	var names []string
	for _, v := range q["countries"] {
		names = append(names, strings.Split(v, ",")...)
	}

	payload, err := h.deps.Compare(r.Context(), names, q.Get("year"))
	if err != nil {
		writeError(r.Context(), h.log, w, WrapKind(op, err, nil))
		return
	}

	if strings.EqualFold(q.Get("format"), string(report.FormatCSV)) {
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="comparison.csv"`)
		w.WriteHeader(http.StatusOK)
		if err := report.WriteCSV(w, payload.Result); err != nil {
			h.log.Warn(r.Context(), "writing csv export failed", logger.Error(err))
		}
		return
	}
	writeJSON(w, http.StatusOK, payload)
}
