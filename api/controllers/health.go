package controllers

import (
	"net/http"

	"github.com/emprendia/emprendia-backend/api/responses"
	"github.com/emprendia/emprendia-backend/pkg/config"
	"github.com/emprendia/emprendia-backend/pkg/docstore"
	pkgerrors "github.com/emprendia/emprendia-backend/pkg/errors"
	"github.com/emprendia/emprendia-backend/pkg/logger"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Emprendia-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady also checks that the document store is readable.
func HealthReady(cfg *config.Config, store docstore.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Emprendia-Env", cfg.App.Env)
		if store != nil {
			if _, err := store.Load(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "document store unavailable"))
				return
			}
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
