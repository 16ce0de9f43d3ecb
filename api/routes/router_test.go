package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/emprendia/emprendia-backend/internal/admin"
	"github.com/emprendia/emprendia-backend/internal/analytics"
	internalauth "github.com/emprendia/emprendia-backend/internal/auth"
	"github.com/emprendia/emprendia-backend/internal/catalog"
	"github.com/emprendia/emprendia-backend/internal/favorites"
	"github.com/emprendia/emprendia-backend/internal/featured"
	"github.com/emprendia/emprendia-backend/internal/presence"
	"github.com/emprendia/emprendia-backend/internal/products"
	"github.com/emprendia/emprendia-backend/internal/profiles"
	"github.com/emprendia/emprendia-backend/internal/tags"
	pkgAuth "github.com/emprendia/emprendia-backend/pkg/auth"
	"github.com/emprendia/emprendia-backend/pkg/auth/session"
	"github.com/emprendia/emprendia-backend/pkg/config"
	"github.com/emprendia/emprendia-backend/pkg/docstore"
	"github.com/emprendia/emprendia-backend/pkg/docstore/models"
	"github.com/emprendia/emprendia-backend/pkg/enums"
	"github.com/emprendia/emprendia-backend/pkg/logger"
)

type stubStore struct{}

func (stubStore) Load(context.Context) (*docstore.Document, error) {
	return docstore.NewDocument(), nil
}

func (stubStore) Save(context.Context, *docstore.Document) error {
	return nil
}

func (stubStore) Mutate(ctx context.Context, fn func(doc *docstore.Document) error) error {
	return fn(docstore.NewDocument())
}

type stubAuthService struct{}

func (stubAuthService) Register(context.Context, internalauth.RegisterInput) (string, error) {
	return uuid.NewString(), nil
}

func (stubAuthService) Login(context.Context, string, string) (*internalauth.LoginResult, error) {
	return &internalauth.LoginResult{}, nil
}

func (stubAuthService) Logout(context.Context, string) error {
	return nil
}

func (stubAuthService) ChangePassword(context.Context, string, string, string) error {
	return nil
}

func (stubAuthService) RequestPasswordReset(context.Context, string) (string, error) {
	return "", nil
}

func (stubAuthService) ConfirmPasswordReset(context.Context, string, string) error {
	return nil
}

type stubCatalogService struct{}

func (stubCatalogService) List(context.Context, catalog.ListParams) (catalog.Page, error) {
	return catalog.Page{Items: []catalog.Item{}}, nil
}

func (stubCatalogService) Facets(context.Context) (catalog.Facets, error) {
	return catalog.Facets{}, nil
}

type stubProductsService struct{}

func (stubProductsService) Create(context.Context, string, products.Input, bool) (*products.SaveResult, error) {
	panic("unimplemented")
}

func (stubProductsService) Update(context.Context, string, string, products.Input) (*products.SaveResult, error) {
	panic("unimplemented")
}

func (stubProductsService) SetStatus(context.Context, string, string, enums.ProductStatus) (*models.Product, error) {
	panic("unimplemented")
}

func (stubProductsService) Delete(context.Context, string, string) error {
	panic("unimplemented")
}

func (stubProductsService) Mine(context.Context, string) ([]models.Product, error) {
	return []models.Product{}, nil
}

func (stubProductsService) PublicDetail(context.Context, string, products.Viewer) (*products.Detail, error) {
	panic("unimplemented")
}

type stubProfilesService struct{}

func (stubProfilesService) MyProfile(context.Context, string) (*models.Profile, error) {
	return &models.Profile{}, nil
}

func (stubProfilesService) UpdateMyProfile(context.Context, string, profiles.UpdateInput) (*models.Profile, error) {
	panic("unimplemented")
}

func (stubProfilesService) PublicProfile(context.Context, string, profiles.Viewer) (*profiles.PublicView, error) {
	panic("unimplemented")
}

type stubFavoritesService struct{}

func (stubFavoritesService) Toggle(context.Context, favorites.OwnerRef, string) (bool, error) {
	return true, nil
}

func (stubFavoritesService) List(context.Context, favorites.OwnerRef) ([]favorites.Item, error) {
	return []favorites.Item{}, nil
}

func (stubFavoritesService) IsFavorite(context.Context, favorites.OwnerRef, string) (bool, error) {
	return false, nil
}

type stubFeaturedService struct{}

func (stubFeaturedService) Selection(context.Context) (*featured.Selection, error) {
	return &featured.Selection{}, nil
}

func (stubFeaturedService) Update(context.Context, []string, []string) error {
	return nil
}

type stubTagsService struct{}

func (stubTagsService) Suggested(context.Context, string) ([]string, error) {
	return []string{}, nil
}

func (stubTagsService) PendingSuggestions(context.Context) ([]tags.Suggestion, error) {
	return []tags.Suggestion{}, nil
}

func (stubTagsService) ClearSuggestion(context.Context, string) error {
	return nil
}

type stubAnalyticsService struct{}

func (stubAnalyticsService) Track(context.Context, analytics.Input) error {
	return nil
}

func (stubAnalyticsService) TrackOnce(context.Context, string, analytics.Input) (bool, error) {
	return true, nil
}

func (stubAnalyticsService) SiteStats(context.Context) (*analytics.SiteStats, error) {
	return &analytics.SiteStats{}, nil
}

func (stubAnalyticsService) EntrepreneurStats(context.Context, string) (*analytics.OwnerStats, error) {
	return &analytics.OwnerStats{}, nil
}

type stubAdminService struct{}

func (stubAdminService) Overview(context.Context) (*admin.Overview, error) {
	return &admin.Overview{}, nil
}

func (stubAdminService) ListEntrepreneurs(context.Context, admin.ListFilter) ([]admin.EntrepreneurRow, error) {
	return []admin.EntrepreneurRow{}, nil
}

func (stubAdminService) ListProducts(context.Context, admin.ProductFilter) ([]admin.ProductRow, error) {
	return []admin.ProductRow{}, nil
}

func (stubAdminService) Approve(context.Context, string) error {
	return nil
}

func (stubAdminService) SetUserStatus(context.Context, string, enums.UserStatus) error {
	return nil
}

func (stubAdminService) SetPublishCap(context.Context, string, *int) error {
	return nil
}

func (stubAdminService) SetStatsAccess(context.Context, string, bool) error {
	return nil
}

func (stubAdminService) SetProductStatus(context.Context, string, enums.ProductStatus) error {
	return nil
}

func (stubAdminService) DeleteProduct(context.Context, string) error {
	return nil
}

func (stubAdminService) Export(context.Context) (*docstore.Document, error) {
	return docstore.NewDocument(), nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		JWT: config.JWTConfig{Secret: "secret", Issuer: "issuer", ExpirationMinutes: 60},
	}
}

func newTestRouter(t *testing.T, cfg *config.Config) http.Handler {
	t.Helper()
	router, _ := newTestRouterWithSessions(t, cfg)
	return router
}

func buildToken(t *testing.T, cfg *config.Config, sessions *session.Manager, role enums.Role) string {
	t.Helper()
	jti := session.NewSessionID()
	if err := sessions.Begin(jti, uuid.NewString()); err != nil {
		t.Fatalf("begin session: %v", err)
	}
	token, err := pkgAuth.MintAccessToken(cfg.JWT, time.Now(), pkgAuth.AccessTokenPayload{
		UserID: uuid.NewString(),
		Role:   role,
		JTI:    jti,
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func newTestRouterWithSessions(t *testing.T, cfg *config.Config) (http.Handler, *session.Manager) {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})
	sessions, err := session.NewManager(config.SessionConfig{TTL: time.Hour, SweepInterval: time.Minute})
	if err != nil {
		t.Fatalf("session manager: %v", err)
	}
	router := NewRouter(Deps{
		Config:   cfg,
		Logger:   logg,
		Store:    stubStore{},
		Sessions: sessions,
		Presence: presence.New(config.PresenceConfig{TTLSeconds: 90}),

		Auth:      stubAuthService{},
		Catalog:   stubCatalogService{},
		Products:  stubProductsService{},
		Profiles:  stubProfilesService{},
		Favorites: stubFavoritesService{},
		Featured:  stubFeaturedService{},
		Tags:      stubTagsService{},
		Analytics: stubAnalyticsService{},
		Admin:     stubAdminService{},
	})
	return router, sessions
}

func TestCatalogIsPublic(t *testing.T) {
	router := newTestRouter(t, testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for public catalog got %d", resp.Code)
	}
	if resp.Header().Get("X-Session-Id") == "" {
		t.Fatal("expected a browsing session header on public routes")
	}
}

func TestMeGroupRejectsMissingJWT(t *testing.T) {
	router := newTestRouter(t, testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/me/products/", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token got %d", resp.Code)
	}
}

func TestMeGroupAllowsEntrepreneur(t *testing.T) {
	cfg := testConfig()
	router, sessions := newTestRouterWithSessions(t, cfg)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me/products/", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, sessions, enums.RoleEmprendedor))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for entrepreneur got %d", resp.Code)
	}
}

func TestAdminGroupRequiresAdminRole(t *testing.T) {
	cfg := testConfig()
	router, sessions := newTestRouterWithSessions(t, cfg)

	nonAdmin := httptest.NewRequest(http.MethodGet, "/api/admin/v1/overview", nil)
	nonAdmin.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, sessions, enums.RoleEmprendedor))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, nonAdmin)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin got %d", resp.Code)
	}

	asAdmin := httptest.NewRequest(http.MethodGet, "/api/admin/v1/overview", nil)
	asAdmin.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, sessions, enums.RoleAdmin))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, asAdmin)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin got %d", resp.Code)
	}
}

func TestSessionHeartbeatCountsVisitor(t *testing.T) {
	router := newTestRouter(t, testConfig())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/session/heartbeat", nil)
	req.Header.Set("X-Session-Id", "visitor-1")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for heartbeat got %d", resp.Code)
	}
}

func TestHealthEndpoints(t *testing.T) {
	router := newTestRouter(t, testConfig())
	for _, path := range []string{"/health/live", "/health/ready"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("expected 200 for %s got %d", path, resp.Code)
		}
	}
}
