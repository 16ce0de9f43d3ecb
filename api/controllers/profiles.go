package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/emprendia/emprendia-backend/api/middleware"
	"github.com/emprendia/emprendia-backend/api/responses"
	"github.com/emprendia/emprendia-backend/api/validators"
	"github.com/emprendia/emprendia-backend/internal/analytics"
	"github.com/emprendia/emprendia-backend/internal/profiles"
	"github.com/emprendia/emprendia-backend/pkg/enums"
	pkgerrors "github.com/emprendia/emprendia-backend/pkg/errors"
	"github.com/emprendia/emprendia-backend/pkg/logger"
)

type profileUpdatePayload struct {
	BusinessName *string            `json:"business_name" validate:"omitempty,max=80"`
	ShortDesc    *string            `json:"short_desc" validate:"omitempty,max=180"`
	LongDesc     *string            `json:"long_desc" validate:"omitempty,max=5000"`
	Categories   *[]string          `json:"categories"`
	City         *string            `json:"city" validate:"omitempty,max=60"`
	Availability *string            `json:"availability" validate:"omitempty,max=80"`
	Links        *map[string]string `json:"links"`
	LogoURL      *string            `json:"logo_url"`
	GalleryURLs  *[]string          `json:"gallery_urls" validate:"omitempty,max=8"`
}

func (p profileUpdatePayload) toInput() (profiles.UpdateInput, error) {
	input := profiles.UpdateInput{
		BusinessName: p.BusinessName,
		ShortDesc:    p.ShortDesc,
		LongDesc:     p.LongDesc,
		Categories:   p.Categories,
		City:         p.City,
		Availability: p.Availability,
		LogoURL:      p.LogoURL,
		GalleryURLs:  p.GalleryURLs,
	}
	if p.Links != nil {
		links := make(map[enums.LinkChannel]string, len(*p.Links))
		for raw, value := range *p.Links {
			channel, err := enums.ParseLinkChannel(raw)
			if err != nil {
				return profiles.UpdateInput{}, pkgerrors.New(pkgerrors.CodeValidation, "unknown contact channel")
			}
			links[channel] = value
		}
		input.Links = &links
	}
	return input, nil
}

// PublicProfile serves a storefront page and records one profile view per
// session.
func PublicProfile(svc profiles.Service, tracker analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "profile service unavailable"))
			return
		}

		profileID := strings.TrimSpace(chi.URLParam(r, "profileId"))
		if profileID == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "profile id is required"))
			return
		}

		viewer := profiles.Viewer{
			UserID:  middleware.UserIDFromContext(ctx),
			IsAdmin: middleware.RoleFromContext(ctx) == enums.RoleAdmin.String(),
		}
		view, err := svc.PublicProfile(ctx, profileID, viewer)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if tracker != nil {
			sessionID := middleware.SessionIDFromContext(ctx)
			if sessionID != "" {
				if _, err := tracker.TrackOnce(ctx, sessionID, analytics.Input{
					Type:      enums.EventTypeViewProfile,
					UserID:    viewer.UserID,
					AnonID:    sessionID,
					ProfileID: profileID,
				}); err != nil && logg != nil {
					logg.Warn(ctx, "failed to track profile view")
				}
			}
		}

		responses.WriteSuccess(w, view)
	}
}

// MyProfileGet returns the caller's own storefront, approved or not.
func MyProfileGet(svc profiles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "profile service unavailable"))
			return
		}

		profile, err := svc.MyProfile(ctx, middleware.UserIDFromContext(ctx))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, profile)
	}
}

// MyProfileUpdate applies a partial storefront edit.
func MyProfileUpdate(svc profiles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "profile service unavailable"))
			return
		}

		var payload profileUpdatePayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		profile, err := svc.UpdateMyProfile(ctx, middleware.UserIDFromContext(ctx), input)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, profile)
	}
}
