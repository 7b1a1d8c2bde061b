// Package trigger exposes the operator-facing HTTP endpoint that runs the
// bulk shadow sync on demand. It is not an end-user surface: access is
// gated on a trusted client IP, a trusted origin header, and a shared
// secret, all of which must match before the job is invoked.
package trigger

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mvoronin/authgate/internal/logging"
	"github.com/mvoronin/authgate/internal/shadow"
)

// OriginHeader carries the trusted origin identifier.
const OriginHeader = "X-Service-Origin"

// SyncRunner runs one shadow sync. *shadow.Syncer satisfies it.
type SyncRunner interface {
	Run(ctx context.Context) (*shadow.SyncReport, error)
}

// AccessConfig is the trigger endpoint's access-control configuration.
type AccessConfig struct {
	TrustedIP     string
	TrustedOrigin string
	SharedSecret  string
}

// Handler serves the sync trigger.
type Handler struct {
	access AccessConfig
	sync   SyncRunner
	log    logging.Logger
}

func NewHandler(access AccessConfig, sync SyncRunner, log logging.Logger) *Handler {
	return &Handler{access: access, sync: sync, log: log}
}

// NewRouter mounts the trigger endpoint and the Prometheus scrape handler.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Post("/sysapi/update-signal", h.UpdateSignal)
	r.Handle("/metrics", promhttp.Handler())
	return r
}

// UpdateSignal runs the bulk sync job after every access check passes.
// Any failing check rejects the request before the job is touched.
func (h *Handler) UpdateSignal(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if ip := clientIP(r); ip != h.access.TrustedIP {
		h.log.Warn(ctx, "trigger rejected: untrusted ip", "ip", ip)
		writeJSON(w, http.StatusForbidden, map[string]any{"detail": "forbidden"})
		return
	}

	if origin := r.Header.Get(OriginHeader); origin != h.access.TrustedOrigin {
		h.log.Warn(ctx, "trigger rejected: invalid origin", "origin", origin)
		writeJSON(w, http.StatusForbidden, map[string]any{"detail": "forbidden"})
		return
	}

	var body struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Password != h.access.SharedSecret {
		h.log.Warn(ctx, "trigger rejected: shared secret mismatch")
		writeJSON(w, http.StatusForbidden, map[string]any{"detail": "forbidden"})
		return
	}

	report, err := h.sync.Run(ctx)
	if err != nil {
		h.log.Error(ctx, "sync run failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"detail": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "DONE",
		"run_id":  report.RunID,
		"created": report.Created,
		"deleted": report.Deleted,
	})
}

// clientIP extracts the real client address, honoring the first hop of
// X-Forwarded-For when the service sits behind a proxy.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return strings.TrimSpace(strings.SplitN(xff, ",", 2)[0])
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
