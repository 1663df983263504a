package controllers

import (
	"context"
	"net/http"

	"github.com/karwanotmani/bazarpos-backend/api/responses"
	"github.com/karwanotmani/bazarpos-backend/pkg/config"
	pkgerrors "github.com/karwanotmani/bazarpos-backend/pkg/errors"
	"github.com/karwanotmani/bazarpos-backend/pkg/logger"
)

// Pinger is the health surface a store backend may expose.
type Pinger interface {
	Ping(context.Context) error
}

// HealthLive reports process liveness.
func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		responses.WriteSuccess(w, map[string]string{
			"status": "ok",
			"env":    cfg.App.Env,
		})
	}
}

// HealthReady verifies the store backend is reachable. A nil pinger
// (memory or file backend) is always ready.
func HealthReady(cfg *config.Config, logg *logger.Logger, store Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store != nil {
			if err := store.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store unreachable"))
				return
			}
		}
		responses.WriteSuccess(w, map[string]string{
			"status":  "ready",
			"backend": cfg.Store.Backend,
		})
	}
}
