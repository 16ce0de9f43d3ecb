package profiles

import (
	"context"
	"strings"
	"testing"

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

func strPtr(v string) *string { return &v }

func seededDoc() *docstore.Document {
	doc := docstore.NewDocument()
	doc.Users = []models.User{
		{ID: "u1", Email: "ana@x.co", Role: enums.RoleEmprendedor, Status: enums.UserStatusActive},
		{ID: "u2", Email: "beto@x.co", Role: enums.RoleEmprendedor, Status: enums.UserStatusPending},
	}
	doc.Profiles = []models.Profile{
		{ID: "prof1", OwnerUserID: "u1", BusinessName: "Dulces Ana", City: "Bogotá", IsApproved: true,
			Links: map[enums.LinkChannel]string{enums.LinkChannelWhatsApp: "+573001234567"}},
		{ID: "prof2", OwnerUserID: "u2", BusinessName: "Beto Tech", City: "Medellín", IsApproved: false},
	}
	doc.Products = []models.Product{
		{ID: "p1", OwnerUserID: "u1", ProfileID: "prof1", Name: "Torta", PriceKind: enums.PriceKindAgree, Status: enums.ProductStatusPublished},
		{ID: "p2", OwnerUserID: "u1", ProfileID: "prof1", Name: "Borrador", PriceKind: enums.PriceKindAgree, Status: enums.ProductStatusDraft},
	}
	return doc
}

func newTestService(t *testing.T) (Service, *stubStore) {
	t.Helper()
	store := &stubStore{doc: seededDoc()}
	svc, err := NewService(store)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, store
}

func TestUpdateMyProfilePartialEdit(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	updated, err := svc.UpdateMyProfile(ctx, "u1", UpdateInput{
		ShortDesc: strPtr("  Postres artesanales  "),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.ShortDesc != "Postres artesanales" {
		t.Fatalf("unexpected short desc %q", updated.ShortDesc)
	}
	// Untouched fields keep their values; approval is never reset by edits.
	if updated.BusinessName != "Dulces Ana" || !updated.IsApproved {
		t.Fatalf("unexpected profile %+v", updated)
	}
	if store.doc.Profiles[0].ShortDesc != "Postres artesanales" {
		t.Fatalf("edit not persisted")
	}
}

func TestUpdateMyProfileLimits(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	cases := []UpdateInput{
		{BusinessName: strPtr("")},
		{BusinessName: strPtr(strings.Repeat("a", 81))},
		{ShortDesc: strPtr(strings.Repeat("a", 181))},
		{LongDesc: strPtr(strings.Repeat("a", 5001))},
		{City: strPtr(strings.Repeat("a", 61))},
		{Availability: strPtr(strings.Repeat("a", 81))},
	}
	for i, in := range cases {
		if _, err := svc.UpdateMyProfile(ctx, "u1", in); err == nil {
			t.Fatalf("case %d: expected validation error", i)
		}
	}

	gallery := make([]string, 9)
	if _, err := svc.UpdateMyProfile(ctx, "u1", UpdateInput{GalleryURLs: &gallery}); err == nil {
		t.Fatalf("expected gallery cap rejection")
	}
}

func TestUpdateMyProfileLinks(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	links := map[enums.LinkChannel]string{
		enums.LinkChannelWhatsApp:  "300 123 4567",
		enums.LinkChannelInstagram: "https://instagram.com/dulcesana",
		enums.LinkChannelWebsite:   "",
	}
	updated, err := svc.UpdateMyProfile(ctx, "u1", UpdateInput{Links: &links})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Links[enums.LinkChannelWhatsApp] != "+3001234567" {
		t.Fatalf("phone not normalized: %q", updated.Links[enums.LinkChannelWhatsApp])
	}
	if _, ok := updated.Links[enums.LinkChannelWebsite]; ok {
		t.Fatalf("empty link should drop the channel")
	}

	bad := map[enums.LinkChannel]string{enums.LinkChannelInstagram: "instagram.com/sin-esquema"}
	if _, err := svc.UpdateMyProfile(ctx, "u1", UpdateInput{Links: &bad}); err == nil {
		t.Fatalf("expected URL scheme rejection")
	}
	short := map[enums.LinkChannel]string{enums.LinkChannelPhone: "12345"}
	if _, err := svc.UpdateMyProfile(ctx, "u1", UpdateInput{Links: &short}); err == nil {
		t.Fatalf("expected short phone rejection")
	}
}

func TestPublicProfileVisibility(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	view, err := svc.PublicProfile(ctx, "prof1", Viewer{})
	if err != nil {
		t.Fatalf("public profile: %v", err)
	}
	// Anonymous viewers only see published products.
	if len(view.Products) != 1 || view.Products[0].ID != "p1" {
		t.Fatalf("unexpected products %+v", view.Products)
	}
	if view.ContactHrefs["whatsapp"] != "https://wa.me/573001234567" {
		t.Fatalf("unexpected contact hrefs %v", view.ContactHrefs)
	}

	// Unapproved profiles are hidden from strangers but not from the owner
	// or admins.
	if _, err := svc.PublicProfile(ctx, "prof2", Viewer{}); err == nil {
		t.Fatalf("expected hidden profile")
	}
	if _, err := svc.PublicProfile(ctx, "prof2", Viewer{UserID: "u2"}); err != nil {
		t.Fatalf("owner view: %v", err)
	}
	if _, err := svc.PublicProfile(ctx, "prof2", Viewer{IsAdmin: true}); err != nil {
		t.Fatalf("admin view: %v", err)
	}
}

func TestOwnerSeesDrafts(t *testing.T) {
	svc, _ := newTestService(t)
	view, err := svc.PublicProfile(context.Background(), "prof1", Viewer{UserID: "u1"})
	if err != nil {
		t.Fatalf("owner view: %v", err)
	}
	if len(view.Products) != 2 {
		t.Fatalf("owner should see drafts, got %+v", view.Products)
	}
}
