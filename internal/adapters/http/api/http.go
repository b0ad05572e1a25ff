// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"github.com/okian/dss/internal/adapters/countries"
	"github.com/okian/dss/internal/domain/types"
	"github.com/okian/dss/pkg/logger"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // shared codec

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Compare fetches indicators for named countries and runs the engine.
	Compare(ctx context.Context, countries []string, year string) (*types.Payload, error)
	// CompareUpload runs the engine over an uploaded CSV or JSON file.
	CompareUpload(ctx context.Context, data []byte, filename, mimetype, year string) (*types.Payload, error)

	// Resolve and Aliases expose the country alias table.
	Resolve(name string) (string, bool)
	Aliases() []countries.Alias
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler     *HealthHandler
	statsHandler      *StatsHandler
	indicatorsHandler *IndicatorsHandler
	uploadHandler     *UploadHandler
	countriesHandler  *CountriesHandler
	log               logger.Logger
}

// Option applies a configuration option to the Server.
type Option func(*serverOptions)

type serverOptions struct {
	maxUploadBytes int64
	log            logger.Logger
}

// WithMaxUploadBytes limits POST /api/upload bodies.
func WithMaxUploadBytes(n int64) Option {
	return func(o *serverOptions) {
		if n > 0 {
			o.maxUploadBytes = n
		}
	}
}

// WithLogger sets the logger used for request and error logs.
func WithLogger(l logger.Logger) Option {
	return func(o *serverOptions) {
		if l != nil {
			o.log = l
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...Option) *Server {
	o := serverOptions{maxUploadBytes: 5 << 20}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = logger.Named("api")
	}

	return &Server{
		healthHandler:     NewHealthHandler(),
		statsHandler:      NewStatsHandler(statsProvider),
		indicatorsHandler: NewIndicatorsHandler(deps, o.log),
		uploadHandler:     NewUploadHandler(deps, o.maxUploadBytes, o.log),
		countriesHandler:  NewCountriesHandler(deps),
		log:               o.log,
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	// Operational endpoints
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleMetrics, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))

	// Business API; responses are never cached
	mux.HandleFunc("/api/health", MetricsMiddleware(NoStore(s.healthHandler.HandleHealth), "health"))
	mux.HandleFunc("/api/indicators", MetricsMiddleware(NoStore(s.indicatorsHandler.HandleGetIndicators), "indicators"))
	mux.HandleFunc("/api/upload", MetricsMiddleware(NoStore(s.uploadHandler.HandlePostUpload), "upload"))
	mux.HandleFunc("/api/resolve", MetricsMiddleware(NoStore(s.countriesHandler.HandleResolve), "resolve"))
	mux.HandleFunc("/api/countries", MetricsMiddleware(NoStore(s.countriesHandler.HandleList), "countries"))
}

// Handler wraps h with the request-scoped middleware shared by every route.
func (s *Server) Handler(h http.Handler) http.Handler {
	return RequestIDMiddleware(CORSMiddleware(h))
}

type errorResponse struct {
	Code   string `json:"code"`
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

// writeJSON encodes v before any header is sent, so an unencodable value
// becomes a 500 error body instead of an empty 200.
func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		status = http.StatusInternalServerError
		body, _ = json.Marshal(errorResponse{
			Code:   "internal_error",
			Error:  http.StatusText(http.StatusInternalServerError),
			Detail: "response could not be encoded",
		})
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
}

// writeError renders err as an error body and logs server-side failures.
func writeError(ctx context.Context, log logger.Logger, w http.ResponseWriter, err error) {
	p := classify(err)
	if p.status >= http.StatusInternalServerError && log != nil {
		log.Error(ctx, "request failed", logger.Int("status", p.status), logger.Error(err))
	}
	writeJSON(w, p.status, errorResponse{Code: p.code, Error: p.message, Detail: p.detail})
}
