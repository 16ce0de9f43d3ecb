package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/emprendia/emprendia-backend/api/middleware"
	"github.com/emprendia/emprendia-backend/api/responses"
	"github.com/emprendia/emprendia-backend/api/validators"
	"github.com/emprendia/emprendia-backend/internal/analytics"
	"github.com/emprendia/emprendia-backend/internal/products"
	"github.com/emprendia/emprendia-backend/pkg/enums"
	pkgerrors "github.com/emprendia/emprendia-backend/pkg/errors"
	"github.com/emprendia/emprendia-backend/pkg/logger"
)

type productPayload struct {
	Name          string   `json:"name" validate:"required,max=80"`
	Description   string   `json:"description" validate:"max=2000"`
	PriceKind     string   `json:"price_kind" validate:"required,oneof=FIXED FROM AGREE"`
	Price         *string  `json:"price"`
	Category      string   `json:"category" validate:"max=60"`
	Subcategory   string   `json:"subcategory" validate:"max=60"`
	Tags          []string `json:"tags" validate:"max=5"`
	TagSuggestion string   `json:"tag_suggestion" validate:"max=40"`
	PhotoURLs     []string `json:"photo_urls" validate:"max=6"`
	Publish       bool     `json:"publish"`
}

type productStatusPayload struct {
	Status string `json:"status" validate:"required,oneof=DRAFT PUBLISHED PAUSED"`
}

func (p productPayload) toInput() (products.Input, error) {
	kind, err := enums.ParsePriceKind(p.PriceKind)
	if err != nil {
		return products.Input{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid price kind")
	}
	var price *decimal.Decimal
	if p.Price != nil && strings.TrimSpace(*p.Price) != "" {
		value, err := decimal.NewFromString(strings.TrimSpace(*p.Price))
		if err != nil {
			return products.Input{}, pkgerrors.New(pkgerrors.CodeValidation, "price must be a number")
		}
		price = &value
	}
	return products.Input{
		Name:          p.Name,
		Description:   p.Description,
		PriceKind:     kind,
		Price:         price,
		Category:      p.Category,
		Subcategory:   p.Subcategory,
		Tags:          p.Tags,
		TagSuggestion: p.TagSuggestion,
		PhotoURLs:     p.PhotoURLs,
	}, nil
}

// ProductDetail serves the public product page and records one view per
// session.
func ProductDetail(svc products.Service, tracker analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		productID := strings.TrimSpace(chi.URLParam(r, "productId"))
		if productID == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "product id is required"))
			return
		}

		viewer := products.Viewer{
			UserID:  middleware.UserIDFromContext(ctx),
			IsAdmin: middleware.RoleFromContext(ctx) == enums.RoleAdmin.String(),
		}
		detail, err := svc.PublicDetail(ctx, productID, viewer)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if tracker != nil {
			sessionID := middleware.SessionIDFromContext(ctx)
			if sessionID != "" {
				if _, err := tracker.TrackOnce(ctx, sessionID, analytics.Input{
					Type:      enums.EventTypeViewProduct,
					UserID:    viewer.UserID,
					AnonID:    sessionID,
					ProductID: productID,
					ProfileID: detail.Product.ProfileID,
				}); err != nil && logg != nil {
					logg.Warn(ctx, "failed to track product view")
				}
			}
		}

		responses.WriteSuccess(w, detail)
	}
}

// ProductContactClick records an outbound contact click on a product.
func ProductContactClick(svc products.Service, tracker analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil || tracker == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "analytics unavailable"))
			return
		}

		productID := strings.TrimSpace(chi.URLParam(r, "productId"))
		channel := strings.TrimSpace(r.URL.Query().Get("channel"))
		var eventType enums.EventType
		switch channel {
		case "whatsapp":
			eventType = enums.EventTypeClickWhatsApp
		case "instagram":
			eventType = enums.EventTypeClickInstagram
		case "call", "phone":
			eventType = enums.EventTypeClickCall
		default:
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "channel must be whatsapp, instagram or call"))
			return
		}

		viewer := products.Viewer{
			UserID:  middleware.UserIDFromContext(ctx),
			IsAdmin: middleware.RoleFromContext(ctx) == enums.RoleAdmin.String(),
		}
		detail, err := svc.PublicDetail(ctx, productID, viewer)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		sessionID := middleware.SessionIDFromContext(ctx)
		if err := tracker.Track(ctx, analytics.Input{
			Type:      eventType,
			UserID:    viewer.UserID,
			AnonID:    sessionID,
			ProductID: productID,
			ProfileID: detail.Product.ProfileID,
		}); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"tracked": true})
	}
}

// MyProducts lists the caller's listings in every status.
func MyProducts(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		items, err := svc.Mine(ctx, middleware.UserIDFromContext(ctx))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

func ProductCreate(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		var payload productPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		result, err := svc.Create(ctx, middleware.UserIDFromContext(ctx), input, payload.Publish)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

func ProductUpdate(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		var payload productPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		productID := strings.TrimSpace(chi.URLParam(r, "productId"))
		result, err := svc.Update(ctx, middleware.UserIDFromContext(ctx), productID, input)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// ProductSetStatus flips a listing between draft, paused and published.
func ProductSetStatus(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		var payload productStatusPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		status, err := enums.ParseProductStatus(payload.Status)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid product status"))
			return
		}

		productID := strings.TrimSpace(chi.URLParam(r, "productId"))
		product, err := svc.SetStatus(ctx, middleware.UserIDFromContext(ctx), productID, status)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

func ProductDelete(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		productID := strings.TrimSpace(chi.URLParam(r, "productId"))
		if err := svc.Delete(ctx, middleware.UserIDFromContext(ctx), productID); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"deleted": true})
	}
}
