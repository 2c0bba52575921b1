package httpapi

import (
	"context"
	"net/http"
	"time"
)

// GeoLookup never fails: the client behind it falls back to a bundled
// static table.
type GeoLookup interface {
	States(ctx context.Context) []string
	LGAs(ctx context.Context, state string) []string
}

type GeoHandler struct {
	geo     GeoLookup
	timeout time.Duration
}

func NewGeoHandler(geo GeoLookup, timeout time.Duration) *GeoHandler {
	return &GeoHandler{
		geo:     geo,
		timeout: timeout,
	}
}

func (h *GeoHandler) States(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	respondJSON(w, http.StatusOK, h.geo.States(ctx))
}

func (h *GeoHandler) LGAs(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	state := r.URL.Query().Get("state")
	if state == "" {
		respondError(w, http.StatusBadRequest, "invalid_state", "state query parameter is required")
		return
	}

	respondJSON(w, http.StatusOK, h.geo.LGAs(ctx, state))
}
