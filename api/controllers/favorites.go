package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/emprendia/emprendia-backend/api/middleware"
	"github.com/emprendia/emprendia-backend/api/responses"
	"github.com/emprendia/emprendia-backend/internal/favorites"
	"github.com/emprendia/emprendia-backend/pkg/enums"
	pkgerrors "github.com/emprendia/emprendia-backend/pkg/errors"
	"github.com/emprendia/emprendia-backend/pkg/logger"
)

// favoriteOwner resolves the favorites owner for the request: the logged-in
// user when a token is present, the browsing session otherwise.
func favoriteOwner(r *http.Request) (favorites.OwnerRef, error) {
	ctx := r.Context()
	if userID := middleware.UserIDFromContext(ctx); userID != "" {
		return favorites.OwnerRef{Kind: enums.OwnerKindUser, ID: userID}, nil
	}
	if sessionID := middleware.SessionIDFromContext(ctx); sessionID != "" {
		return favorites.OwnerRef{Kind: enums.OwnerKindVisitor, ID: sessionID}, nil
	}
	return favorites.OwnerRef{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "no session available")
}

// FavoritesList returns the caller's saved products.
func FavoritesList(svc favorites.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "favorites service unavailable"))
			return
		}

		owner, err := favoriteOwner(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		items, err := svc.List(ctx, owner)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

// FavoriteToggle flips a product in or out of the caller's favorites and
// reports the resulting state.
func FavoriteToggle(svc favorites.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "favorites service unavailable"))
			return
		}

		owner, err := favoriteOwner(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		productID := strings.TrimSpace(chi.URLParam(r, "productId"))
		saved, err := svc.Toggle(ctx, owner, productID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"saved": saved})
	}
}

// FavoriteStatus reports whether a single product is saved by the caller.
func FavoriteStatus(svc favorites.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "favorites service unavailable"))
			return
		}

		owner, err := favoriteOwner(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		productID := strings.TrimSpace(chi.URLParam(r, "productId"))
		saved, err := svc.IsFavorite(ctx, owner, productID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"saved": saved})
	}
}
