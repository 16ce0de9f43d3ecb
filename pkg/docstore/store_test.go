package docstore

import (
	"context"
	"testing"
	"time"

	"github.com/emprendia/emprendia-backend/pkg/config"
	"github.com/emprendia/emprendia-backend/pkg/docstore/models"
	"github.com/emprendia/emprendia-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	store, err := NewFileStore(config.StoreConfig{
		DataDir:     t.TempDir(),
		FileName:    "marketplace.json",
		LockTimeout: time.Second,
	})
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return store
}

func TestLoadMissingFileReturnsEmptyDocument(t *testing.T) {
	store := newTestStore(t)

	doc, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if doc == nil || len(doc.Users) != 0 || len(doc.Products) != 0 {
		t.Fatalf("expected empty document, got %+v", doc)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	doc := NewDocument()
	doc.Users = append(doc.Users, models.User{
		ID:     "u1",
		Email:  "Ana@Example.com",
		Role:   enums.RoleEmprendedor,
		Status: enums.UserStatusActive,
	})
	if err := store.Save(ctx, doc); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded.Users) != 1 {
		t.Fatalf("expected one user, got %d", len(loaded.Users))
	}
	if loaded.Users[0].Email != "ana@example.com" {
		t.Fatalf("expected lowercased email, got %q", loaded.Users[0].Email)
	}
}

func TestMutateAppliesUnderOneLockHold(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	err := store.Mutate(ctx, func(doc *Document) error {
		doc.Products = append(doc.Products, models.Product{
			ID:          "p1",
			OwnerUserID: "u1",
			ProfileID:   "prof1",
			Name:        "Torta",
			PriceKind:   enums.PriceKindAgree,
			Status:      enums.ProductStatusPublished,
		})
		return nil
	})
	if err != nil {
		t.Fatalf("mutate: %v", err)
	}

	doc, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if doc.FindProduct("p1") == nil {
		t.Fatalf("expected product persisted by mutate")
	}
}

func TestNormalizeAppliesDefaults(t *testing.T) {
	price := decimal.NewFromInt(1000)
	doc := NewDocument()
	doc.Products = append(doc.Products, models.Product{
		ID:          "p1",
		OwnerUserID: "u1",
		ProfileID:   "prof1",
		Status:      "published",
		PriceKind:   "agree",
		Price:       &price,
	})
	doc.Users = append(doc.Users, models.User{
		ID:     "u1",
		Email:  "  MIXED@Case.Co ",
		Role:   "emprendedor",
		Status: "bogus",
	})

	if err := Normalize(doc); err != nil {
		t.Fatalf("normalize: %v", err)
	}

	p := doc.FindProduct("p1")
	if p.Status != enums.ProductStatusPublished {
		t.Fatalf("expected uppercased status, got %s", p.Status)
	}
	if p.Price != nil {
		t.Fatalf("AGREE product must have nil price")
	}
	u := doc.FindUser("u1")
	if u.Email != "mixed@case.co" {
		t.Fatalf("expected normalized email, got %q", u.Email)
	}
	if u.Status != enums.UserStatusPending {
		t.Fatalf("unknown status should default to PENDING, got %s", u.Status)
	}
}

func TestNormalizeRejectsVisitorFavorites(t *testing.T) {
	doc := NewDocument()
	doc.Favorites = append(doc.Favorites, models.Favorite{
		ID:        "f1",
		OwnerKind: enums.OwnerKindVisitor,
		OwnerID:   "anon",
		ProductID: "p1",
	})

	if err := Normalize(doc); err == nil {
		t.Fatalf("expected complaint about visitor favorite in durable storage")
	}
}
