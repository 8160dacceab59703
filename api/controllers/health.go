package controllers

import (
	"context"
	"net/http"

	"github.com/rendypratama/invoicehub-backend/api/responses"
	pkgerrors "github.com/rendypratama/invoicehub-backend/pkg/errors"
	"github.com/rendypratama/invoicehub-backend/pkg/logger"
)

// Pinger reports whether a backing dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthLive handles GET /health/live.
func HealthLive() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{"status": "ok"})
	}
}

// HealthReady handles GET /health/ready. Each pinger is checked in order;
// nil entries (for optional dependencies) are skipped.
func HealthReady(logg *logger.Logger, pingers map[string]Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		for name, pinger := range pingers {
			if pinger == nil {
				continue
			}
			if err := pinger.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, name+" unavailable"))
				return
			}
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
