package controllers

import (
	"net/http"
	"strings"

	"github.com/emprendia/emprendia-backend/api/responses"
	"github.com/emprendia/emprendia-backend/internal/tags"
	pkgerrors "github.com/emprendia/emprendia-backend/pkg/errors"
	"github.com/emprendia/emprendia-backend/pkg/logger"
)

// TagsList returns the known categories and, when one is given, the tag
// suggestions for it.
func TagsList(svc tags.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "tags service unavailable"))
			return
		}

		category := strings.TrimSpace(r.URL.Query().Get("category"))
		payload := map[string]any{"categories": tags.Categories()}
		if category != "" {
			suggested, err := svc.Suggested(ctx, category)
			if err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
			payload["suggested"] = suggested
		}
		responses.WriteSuccess(w, payload)
	}
}
