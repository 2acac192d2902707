package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"demo/minimart/internal/response"
	"demo/minimart/internal/validate"

	"github.com/rs/zerolog"
)

const readyTimeout = 2 * time.Second

type handlers struct {
	svc    Service
	pinger Pinger
}

// lookupUser serves GET /?id=N and GET /users/{id}.
func (h *handlers) lookupUser(w http.ResponseWriter, r *http.Request) {
	raw := r.PathValue("id")
	if raw == "" {
		raw = r.URL.Query().Get("id")
	}
	id, err := validate.UserID(raw)
	if err != nil {
		writeEnvelope(w, r, response.BadRequest(err.Error()))
		return
	}
	writeEnvelope(w, r, h.svc.LookupUser(r.Context(), id))
}

func (h *handlers) proxyOrders(w http.ResponseWriter, r *http.Request) {
	vars, err := validate.Variables(r.URL.Query())
	if err != nil {
		writeEnvelope(w, r, response.BadRequest(err.Error()))
		return
	}
	writeEnvelope(w, r, h.svc.ProxyOrders(r.Context(), vars))
}

func (h *handlers) ready(w http.ResponseWriter, r *http.Request) {
	if h.pinger != nil {
		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()
		if err := h.pinger.Ping(ctx); err != nil {
			zerolog.Ctx(r.Context()).Warn().Err(err).Msg("readiness: database ping failed")
			writeJSON(w, http.StatusServiceUnavailable, response.ErrorBody{Message: "database unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func writeEnvelope(w http.ResponseWriter, r *http.Request, env response.Envelope) {
	if err := env.Write(w); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("writing response")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
