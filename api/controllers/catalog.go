package controllers

import (
	"net/http"
	"strings"

	"github.com/emprendia/emprendia-backend/api/middleware"
	"github.com/emprendia/emprendia-backend/api/responses"
	"github.com/emprendia/emprendia-backend/api/validators"
	"github.com/emprendia/emprendia-backend/internal/analytics"
	"github.com/emprendia/emprendia-backend/internal/catalog"
	"github.com/emprendia/emprendia-backend/internal/featured"
	"github.com/emprendia/emprendia-backend/pkg/enums"
	pkgerrors "github.com/emprendia/emprendia-backend/pkg/errors"
	"github.com/emprendia/emprendia-backend/pkg/logger"
)

// CatalogList serves the public catalog with filters, ranking and
// pagination. Searches with a query are recorded once per session.
func CatalogList(svc catalog.Service, tracker analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		query := r.URL.Query()
		sortMode, err := enums.ParseSortMode(strings.TrimSpace(query.Get("sort")))
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid sort mode"))
			return
		}
		limit, err := validators.ParseQueryInt(r, "limit", 0, 1, 100)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		offset, err := validators.ParseQueryInt(r, "offset", 0, 0, 1<<30)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		priceMin, err := validators.ParseQueryDecimal(r, "price_min")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		priceMax, err := validators.ParseQueryDecimal(r, "price_max")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		params := catalog.ListParams{
			Params: catalog.Params{
				Query:    strings.TrimSpace(query.Get("q")),
				Category: strings.TrimSpace(query.Get("category")),
				City:     strings.TrimSpace(query.Get("city")),
				Tag:      strings.TrimSpace(query.Get("tag")),
				PriceMin: priceMin,
				PriceMax: priceMax,
				Sort:     sortMode,
			},
			Limit:  limit,
			Offset: offset,
		}

		page, err := svc.List(ctx, params)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if tracker != nil && params.Query != "" {
			sessionID := middleware.SessionIDFromContext(ctx)
			if sessionID != "" {
				if _, err := tracker.TrackOnce(ctx, sessionID, analytics.Input{
					Type:   enums.EventTypeSearch,
					UserID: middleware.UserIDFromContext(ctx),
					AnonID: sessionID,
					Query:  params.Query,
				}); err != nil && logg != nil {
					logg.Warn(ctx, "failed to track search event")
				}
			}
		}

		responses.WriteSuccess(w, page)
	}
}

func CatalogFacets(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		facets, err := svc.Facets(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, facets)
	}
}

// CatalogFeatured serves the curated home page selection and counts one
// home view per session.
func CatalogFeatured(svc featured.Service, tracker analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "featured service unavailable"))
			return
		}

		selection, err := svc.Selection(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if tracker != nil {
			sessionID := middleware.SessionIDFromContext(ctx)
			if sessionID != "" {
				if _, err := tracker.TrackOnce(ctx, sessionID, analytics.Input{
					Type:   enums.EventTypeViewHome,
					UserID: middleware.UserIDFromContext(ctx),
					AnonID: sessionID,
				}); err != nil && logg != nil {
					logg.Warn(ctx, "failed to track home view")
				}
			}
		}

		responses.WriteSuccess(w, selection)
	}
}
