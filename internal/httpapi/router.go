// Package httpapi binds the HTTP surface to the service layer.
package httpapi

import (
	"context"
	"net/http"

	"demo/minimart/internal/metrics"
	"demo/minimart/internal/model"
	"demo/minimart/internal/response"

	"github.com/rs/zerolog"
)

// Service produces exactly one envelope per call.
type Service interface {
	LookupUser(ctx context.Context, id int64) response.Envelope
	ProxyOrders(ctx context.Context, vars model.Variables) response.Envelope
}

type Pinger interface {
	Ping(ctx context.Context) error
}

type Deps struct {
	Service     Service
	Pinger      Pinger // optional; readiness always succeeds without one
	Metrics     *metrics.Metrics
	Logger      zerolog.Logger
	CORSOrigins []string
}

func NewRouter(d Deps) http.Handler {
	h := &handlers{svc: d.Service, pinger: d.Pinger}

	mux := http.NewServeMux()

	// API
	mux.HandleFunc("GET /{$}", h.lookupUser)
	mux.HandleFunc("GET /users/{id}", h.lookupUser)
	mux.HandleFunc("GET /orders", h.proxyOrders)

	// Ops
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("GET /readyz", h.ready)
	if d.Metrics != nil {
		mux.Handle("GET /metrics", d.Metrics.Handler())
	}

	mux.HandleFunc("/", fallback(mux))

	var handler http.Handler = mux
	handler = CORS(d.CORSOrigins)(handler)
	handler = Recover(handler)
	handler = AccessLog(d.Metrics)(handler)
	handler = RequestID(d.Logger)(handler)
	return handler
}

// fallback answers requests no pattern matched: 405 when the path is served
// for GET, 404 otherwise.
func fallback(mux *http.ServeMux) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			get := r.Clone(r.Context())
			get.Method = http.MethodGet
			if _, pattern := mux.Handler(get); pattern != "" && pattern != "/" {
				w.Header().Set("Allow", "GET, HEAD")
				writeEnvelope(w, r, response.MethodNotAllowed("Method "+r.Method+" not allowed on "+r.URL.Path))
				return
			}
		}
		writeEnvelope(w, r, response.NotFound("Path "+r.URL.Path+" not found"))
	}
}
