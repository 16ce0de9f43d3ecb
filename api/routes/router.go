package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/emprendia/emprendia-backend/api/controllers"
	"github.com/emprendia/emprendia-backend/api/middleware"
	"github.com/emprendia/emprendia-backend/internal/admin"
	"github.com/emprendia/emprendia-backend/internal/analytics"
	"github.com/emprendia/emprendia-backend/internal/auth"
	"github.com/emprendia/emprendia-backend/internal/catalog"
	"github.com/emprendia/emprendia-backend/internal/favorites"
	"github.com/emprendia/emprendia-backend/internal/featured"
	"github.com/emprendia/emprendia-backend/internal/presence"
	"github.com/emprendia/emprendia-backend/internal/products"
	"github.com/emprendia/emprendia-backend/internal/profiles"
	"github.com/emprendia/emprendia-backend/internal/tags"
	"github.com/emprendia/emprendia-backend/pkg/auth/session"
	"github.com/emprendia/emprendia-backend/pkg/config"
	"github.com/emprendia/emprendia-backend/pkg/docstore"
	"github.com/emprendia/emprendia-backend/pkg/enums"
	"github.com/emprendia/emprendia-backend/pkg/logger"
	"github.com/emprendia/emprendia-backend/pkg/metrics"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Config   *config.Config
	Logger   *logger.Logger
	Store    docstore.Store
	Sessions *session.Manager
	Presence *presence.Store
	Metrics  *metrics.HTTPMetrics
	Registry *prometheus.Registry

	Auth      auth.Service
	Catalog   catalog.Service
	Products  products.Service
	Profiles  profiles.Service
	Favorites favorites.Service
	Featured  featured.Service
	Tags      tags.Service
	Analytics analytics.Service
	Admin     admin.Service
}

func NewRouter(d Deps) http.Handler {
	cfg := d.Config
	logg := d.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS),
	)
	if d.Metrics != nil {
		r.Use(middleware.Metrics(d.Metrics))
	}
	r.Use(middleware.BrowsingSession(logg))

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, d.Store, logg))
	})

	if d.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/register", controllers.AuthRegister(d.Auth, logg))
		r.Post("/login", controllers.AuthLogin(d.Auth, logg))
		r.Post("/password-reset/request", controllers.AuthResetRequest(d.Auth, logg))
		r.Post("/password-reset/confirm", controllers.AuthResetConfirm(d.Auth, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, d.Sessions, logg))
			r.Post("/logout", controllers.AuthLogout(d.Auth, logg))
			r.Post("/change-password", controllers.AuthChangePassword(d.Auth, logg))
		})
	})

	// Public surface. A bearer token is optional here; when present it
	// personalizes visibility and attributes events to the user.
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.OptionalAuth(cfg.JWT, d.Sessions, logg))

		r.Route("/catalog", func(r chi.Router) {
			r.Get("/", controllers.CatalogList(d.Catalog, d.Analytics, logg))
			r.Get("/facets", controllers.CatalogFacets(d.Catalog, logg))
			r.Get("/featured", controllers.CatalogFeatured(d.Featured, d.Analytics, logg))
		})

		r.Route("/products/{productId}", func(r chi.Router) {
			r.Get("/", controllers.ProductDetail(d.Products, d.Analytics, logg))
			r.Post("/contact-click", controllers.ProductContactClick(d.Products, d.Analytics, logg))
		})

		r.Get("/profiles/{profileId}", controllers.PublicProfile(d.Profiles, d.Analytics, logg))

		r.Route("/favorites", func(r chi.Router) {
			r.Get("/", controllers.FavoritesList(d.Favorites, logg))
			r.Get("/{productId}", controllers.FavoriteStatus(d.Favorites, logg))
			r.Post("/{productId}/toggle", controllers.FavoriteToggle(d.Favorites, logg))
		})

		r.Get("/tags", controllers.TagsList(d.Tags, logg))
		r.Post("/session/heartbeat", controllers.SessionHeartbeat(d.Presence, logg))
	})

	r.Route("/api/v1/me", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, d.Sessions, logg))
		r.Use(middleware.RequireRole(enums.RoleEmprendedor.String(), logg))

		r.Get("/profile", controllers.MyProfileGet(d.Profiles, logg))
		r.Put("/profile", controllers.MyProfileUpdate(d.Profiles, logg))
		r.Get("/stats", controllers.MyStats(d.Analytics, logg))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.MyProducts(d.Products, logg))
			r.Post("/", controllers.ProductCreate(d.Products, logg))
			r.Put("/{productId}", controllers.ProductUpdate(d.Products, logg))
			r.Post("/{productId}/status", controllers.ProductSetStatus(d.Products, logg))
			r.Delete("/{productId}", controllers.ProductDelete(d.Products, logg))
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, d.Sessions, logg))
		r.Use(middleware.RequireRole(enums.RoleAdmin.String(), logg))

		r.Get("/overview", controllers.AdminOverview(d.Admin, logg))
		r.Get("/stats", controllers.AdminStats(d.Analytics, logg))
		r.Get("/export", controllers.AdminExport(d.Admin, logg))

		r.Route("/entrepreneurs", func(r chi.Router) {
			r.Get("/", controllers.AdminEntrepreneurs(d.Admin, logg))
			r.Post("/{userId}/approve", controllers.AdminApprove(d.Admin, logg))
			r.Post("/{userId}/status", controllers.AdminSetUserStatus(d.Admin, logg))
			r.Post("/{userId}/publish-cap", controllers.AdminSetPublishCap(d.Admin, logg))
			r.Post("/{userId}/stats-access", controllers.AdminSetStatsAccess(d.Admin, logg))
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.AdminProducts(d.Admin, logg))
			r.Post("/{productId}/status", controllers.AdminSetProductStatus(d.Admin, logg))
			r.Delete("/{productId}", controllers.AdminDeleteProduct(d.Admin, logg))
		})

		r.Route("/featured", func(r chi.Router) {
			r.Get("/", controllers.AdminFeaturedGet(d.Featured, logg))
			r.Put("/", controllers.AdminFeaturedPut(d.Featured, logg))
		})

		r.Route("/tag-suggestions", func(r chi.Router) {
			r.Get("/", controllers.AdminTagSuggestions(d.Tags, logg))
			r.Delete("/{productId}", controllers.AdminClearTagSuggestion(d.Tags, logg))
		})
	})

	return r
}
