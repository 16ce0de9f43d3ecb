package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/emprendia/emprendia-backend/pkg/config"
	"github.com/emprendia/emprendia-backend/pkg/docstore"
	"github.com/emprendia/emprendia-backend/pkg/docstore/models"
	"github.com/emprendia/emprendia-backend/pkg/enums"
)

type stubStore struct {
	doc *docstore.Document
}

func (s *stubStore) Load(ctx context.Context) (*docstore.Document, error) { return s.doc, nil }
func (s *stubStore) Save(ctx context.Context, doc *docstore.Document) error {
	s.doc = doc
	return nil
}
func (s *stubStore) Mutate(ctx context.Context, fn func(doc *docstore.Document) error) error {
	return fn(s.doc)
}

type stubDeduper struct {
	seen map[string]bool
}

func (d *stubDeduper) MarkSeen(sessionID, key string) (bool, error) {
	if d.seen == nil {
		d.seen = map[string]bool{}
	}
	full := sessionID + "|" + key
	if d.seen[full] {
		return false, nil
	}
	d.seen[full] = true
	return true, nil
}

func testConfig() config.AnalyticsConfig {
	return config.AnalyticsConfig{MaxEvents: 5000, MaxQueryLength: 120, TrendWindowDays: 30}
}

func newTestService(t *testing.T, cfg config.AnalyticsConfig) (*service, *stubStore) {
	t.Helper()
	store := &stubStore{doc: docstore.NewDocument()}
	svc, err := NewService(store, &stubDeduper{}, cfg)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc.(*service), store
}

func TestTrackBoundsEventLog(t *testing.T) {
	cfg := testConfig()
	cfg.MaxEvents = 3
	svc, store := newTestService(t, cfg)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		svc.clock = func() time.Time {
			return time.Date(2026, 3, 1, 10, i, 0, 0, time.UTC)
		}
		if err := svc.Track(ctx, Input{Type: enums.EventTypeViewHome}); err != nil {
			t.Fatalf("track: %v", err)
		}
	}

	if len(store.doc.Events) != 3 {
		t.Fatalf("expected bounded log of 3, got %d", len(store.doc.Events))
	}
	// Oldest entries dropped first.
	if store.doc.Events[0].TS != "2026-03-01T10:02:00Z" {
		t.Fatalf("unexpected oldest event %q", store.doc.Events[0].TS)
	}
}

func TestTrackRejectsUnknownType(t *testing.T) {
	svc, _ := newTestService(t, testConfig())
	if err := svc.Track(context.Background(), Input{Type: enums.EventType("bogus")}); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestTrackOnceDedupesPerSession(t *testing.T) {
	svc, store := newTestService(t, testConfig())
	ctx := context.Background()
	in := Input{Type: enums.EventTypeViewProduct, ProductID: "p1"}

	first, err := svc.TrackOnce(ctx, "sess-1", in)
	if err != nil || !first {
		t.Fatalf("first view should record, got first=%v err=%v", first, err)
	}
	second, err := svc.TrackOnce(ctx, "sess-1", in)
	if err != nil || second {
		t.Fatalf("repeat view should be skipped, got first=%v err=%v", second, err)
	}
	other, err := svc.TrackOnce(ctx, "sess-2", in)
	if err != nil || !other {
		t.Fatalf("other session should record, got first=%v err=%v", other, err)
	}
	if len(store.doc.Events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(store.doc.Events))
	}
}

func TestTrackOnceKeepsDistinctSearches(t *testing.T) {
	svc, store := newTestService(t, testConfig())
	ctx := context.Background()

	first, err := svc.TrackOnce(ctx, "sess-1", Input{Type: enums.EventTypeSearch, Query: "brownies"})
	if err != nil || !first {
		t.Fatalf("first search should record, got first=%v err=%v", first, err)
	}
	other, err := svc.TrackOnce(ctx, "sess-1", Input{Type: enums.EventTypeSearch, Query: "camisetas"})
	if err != nil || !other {
		t.Fatalf("a different query in the same session should record, got first=%v err=%v", other, err)
	}
	// The same query again is a repeat, whitespace variations included.
	repeat, err := svc.TrackOnce(ctx, "sess-1", Input{Type: enums.EventTypeSearch, Query: "  brownies  "})
	if err != nil || repeat {
		t.Fatalf("repeated query should be skipped, got first=%v err=%v", repeat, err)
	}
	if len(store.doc.Events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(store.doc.Events))
	}
}

func TestSearchQueriesAreSanitized(t *testing.T) {
	svc, store := newTestService(t, testConfig())
	err := svc.Track(context.Background(), Input{
		Type:  enums.EventTypeSearch,
		Query: "tortas ana@correo.com 300-123-4567",
	})
	if err != nil {
		t.Fatalf("track: %v", err)
	}
	got := store.doc.Events[0].Meta["q"]
	if got != "tortas <email> <phone>" {
		t.Fatalf("unexpected sanitized query %q", got)
	}
}

func TestSiteStatsTopLists(t *testing.T) {
	svc, store := newTestService(t, testConfig())
	store.doc.Events = []models.Event{
		{TS: "2026-03-01T10:00:00Z", Type: enums.EventTypeViewProduct, ProductID: "p1"},
		{TS: "2026-03-01T10:01:00Z", Type: enums.EventTypeViewProduct, ProductID: "p1"},
		{TS: "2026-03-01T10:02:00Z", Type: enums.EventTypeViewProduct, ProductID: "p2"},
		{TS: "2026-03-01T10:03:00Z", Type: enums.EventTypeSearch, Meta: map[string]string{"q": "tortas"}},
		{TS: "2026-03-01T10:04:00Z", Type: enums.EventTypeViewHome},
	}

	stats, err := svc.SiteStats(context.Background())
	if err != nil {
		t.Fatalf("site stats: %v", err)
	}
	if stats.TotalEvents != 5 {
		t.Fatalf("expected 5 events, got %d", stats.TotalEvents)
	}
	if stats.ByType["view_product"] != 3 || stats.ByType["search"] != 1 {
		t.Fatalf("unexpected by-type counts %+v", stats.ByType)
	}
	if len(stats.TopProducts) != 2 || stats.TopProducts[0].Key != "p1" || stats.TopProducts[0].Count != 2 {
		t.Fatalf("unexpected top products %+v", stats.TopProducts)
	}
	if len(stats.TopSearches) != 1 || stats.TopSearches[0].Key != "tortas" {
		t.Fatalf("unexpected top searches %+v", stats.TopSearches)
	}
}

func TestEntrepreneurStats(t *testing.T) {
	svc, store := newTestService(t, testConfig())
	store.doc.Users = []models.User{
		{ID: "u1", Email: "ana@x.co", Role: enums.RoleEmprendedor, Status: enums.UserStatusActive},
	}
	store.doc.Profiles = []models.Profile{
		{ID: "prof1", OwnerUserID: "u1", BusinessName: "Dulces Ana", IsApproved: true},
	}
	store.doc.Products = []models.Product{
		{ID: "p1", OwnerUserID: "u1", ProfileID: "prof1", Status: enums.ProductStatusPublished},
	}
	store.doc.Events = []models.Event{
		{TS: "2026-03-01T10:00:00Z", Type: enums.EventTypeViewProduct, ProductID: "p1"},
		{TS: "2026-03-01T10:01:00Z", Type: enums.EventTypeViewProduct, ProductID: "other"},
		{TS: "2026-03-01T10:02:00Z", Type: enums.EventTypeViewProfile, ProfileID: "prof1"},
		{TS: "2026-03-01T10:03:00Z", Type: enums.EventTypeClickWhatsApp, ProductID: "p1"},
	}

	stats, err := svc.EntrepreneurStats(context.Background(), "u1")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.ProductViews != 1 || stats.ProfileViews != 1 || stats.ContactClicks != 1 {
		t.Fatalf("unexpected counts %+v", stats)
	}
	if stats.ByProduct["p1"] != 1 {
		t.Fatalf("unexpected per-product counts %+v", stats.ByProduct)
	}
	// Trend is gated behind stats access.
	if stats.Trend != nil {
		t.Fatalf("trend must be withheld without stats access")
	}
}

func TestEntrepreneurTrendRequiresAccess(t *testing.T) {
	svc, store := newTestService(t, testConfig())
	store.doc.Users = []models.User{
		{ID: "u1", Email: "ana@x.co", Role: enums.RoleEmprendedor, Status: enums.UserStatusActive, CanViewStats: true},
	}
	store.doc.Profiles = []models.Profile{
		{ID: "prof1", OwnerUserID: "u1", BusinessName: "Dulces Ana", IsApproved: true},
	}
	store.doc.Products = []models.Product{
		{ID: "p1", OwnerUserID: "u1", ProfileID: "prof1", Status: enums.ProductStatusPublished},
	}
	store.doc.Events = []models.Event{
		{TS: "2026-02-28T10:00:00Z", Type: enums.EventTypeViewProduct, ProductID: "p1"},
		{TS: "2026-02-28T11:00:00Z", Type: enums.EventTypeViewProduct, ProductID: "p1"},
		{TS: "2026-03-01T09:00:00Z", Type: enums.EventTypeViewProduct, ProductID: "p1"},
	}
	svc.clock = func() time.Time {
		return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	}

	stats, err := svc.EntrepreneurStats(context.Background(), "u1")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if len(stats.Trend) != 30 {
		t.Fatalf("expected 30 trend points, got %d", len(stats.Trend))
	}
	last := stats.Trend[len(stats.Trend)-1]
	prev := stats.Trend[len(stats.Trend)-2]
	if last.Date != "2026-03-01" || last.Count != 1 {
		t.Fatalf("unexpected last point %+v", last)
	}
	if prev.Date != "2026-02-28" || prev.Count != 2 {
		t.Fatalf("unexpected previous point %+v", prev)
	}
}

func TestSanitizeQueryCollapsesWhitespace(t *testing.T) {
	got := SanitizeQuery("  tortas   de \t chocolate ", 120)
	if got != "tortas de chocolate" {
		t.Fatalf("unexpected sanitized query %q", got)
	}
}

func TestSanitizeQueryTruncates(t *testing.T) {
	long := ""
	for i := 0; i < 50; i++ {
		long += "más"
	}
	got := SanitizeQuery(long, 120)
	if gotLen := len([]rune(got)); gotLen != 120 {
		t.Fatalf("expected 120 runes, got %d", gotLen)
	}
}
