package favorites

import (
	"context"
	"strings"
	"time"

	"github.com/emprendia/emprendia-backend/internal/catalog"
	"github.com/emprendia/emprendia-backend/pkg/docstore"
	"github.com/emprendia/emprendia-backend/pkg/docstore/models"
	"github.com/emprendia/emprendia-backend/pkg/enums"
	pkgerrors "github.com/emprendia/emprendia-backend/pkg/errors"
	"github.com/google/uuid"
)

// OwnerRef identifies who owns a favorites set: a logged-in user or an
// anonymous visitor session.
type OwnerRef struct {
	Kind enums.OwnerKind
	ID   string
}

// Item is one saved product as shown on the favorites page. Products that
// are no longer publicly visible are filtered out at read time.
type Item struct {
	ProductID    string `json:"product_id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Category     string `json:"category"`
	PriceLabel   string `json:"price_label"`
	ProfileID    string `json:"profile_id"`
	BusinessName string `json:"business_name"`
	City         string `json:"city"`
}

// VisitorStore is the session-scoped favorites surface. Visitor favorites
// never reach the document; they live and die with the session.
type VisitorStore interface {
	ToggleFavorite(sessionID, productID string) (bool, error)
	Favorites(sessionID string) ([]string, error)
	IsFavorite(sessionID, productID string) (bool, error)
}

// Service is the favorites ledger for users and visitors alike.
type Service interface {
	Toggle(ctx context.Context, owner OwnerRef, productID string) (bool, error)
	List(ctx context.Context, owner OwnerRef) ([]Item, error)
	IsFavorite(ctx context.Context, owner OwnerRef, productID string) (bool, error)
}

type service struct {
	store    docstore.Store
	visitors VisitorStore
	clock    func() time.Time
}

// NewService builds the favorites service.
func NewService(store docstore.Store, visitors VisitorStore) (Service, error) {
	if store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "store is required")
	}
	if visitors == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "visitor store is required")
	}
	return &service{store: store, visitors: visitors, clock: time.Now}, nil
}

// Toggle flips the favorite and reports whether the product is saved after
// the call. Unknown products are rejected for both owner kinds.
func (s *service) Toggle(ctx context.Context, owner OwnerRef, productID string) (bool, error) {
	if err := validateOwner(owner); err != nil {
		return false, err
	}
	if strings.TrimSpace(productID) == "" {
		return false, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}

	doc, err := s.store.Load(ctx)
	if err != nil {
		return false, err
	}
	if doc.FindProduct(productID) == nil {
		return false, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}

	if owner.Kind == enums.OwnerKindVisitor {
		return s.visitors.ToggleFavorite(owner.ID, productID)
	}

	saved := false
	err = s.store.Mutate(ctx, func(doc *docstore.Document) error {
		for i, fav := range doc.Favorites {
			if fav.OwnerKind == enums.OwnerKindUser && fav.OwnerID == owner.ID && fav.ProductID == productID {
				doc.Favorites = append(doc.Favorites[:i], doc.Favorites[i+1:]...)
				return nil
			}
		}
		doc.Favorites = append(doc.Favorites, models.Favorite{
			ID:        uuid.NewString(),
			OwnerKind: enums.OwnerKindUser,
			OwnerID:   owner.ID,
			ProductID: productID,
			CreatedAt: docstore.NowISO(s.clock()),
		})
		saved = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return saved, nil
}

// List returns the owner's saved products that are still publicly visible.
func (s *service) List(ctx context.Context, owner OwnerRef) ([]Item, error) {
	if err := validateOwner(owner); err != nil {
		return nil, err
	}

	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	var ids []string
	if owner.Kind == enums.OwnerKindVisitor {
		ids, err = s.visitors.Favorites(owner.ID)
		if err != nil {
			return nil, err
		}
	} else {
		for _, fav := range doc.Favorites {
			if fav.OwnerKind == enums.OwnerKindUser && fav.OwnerID == owner.ID {
				ids = append(ids, fav.ProductID)
			}
		}
	}

	items := make([]Item, 0, len(ids))
	for _, id := range ids {
		product := doc.FindProduct(id)
		if product == nil || product.Status != enums.ProductStatusPublished {
			continue
		}
		profile := doc.FindProfile(product.ProfileID)
		if profile == nil || !profile.IsApproved {
			continue
		}
		items = append(items, Item{
			ProductID:    product.ID,
			Name:         product.Name,
			Description:  product.Description,
			Category:     product.Category,
			PriceLabel:   catalog.FormatPrice(product.PriceKind, product.Price),
			ProfileID:    profile.ID,
			BusinessName: profile.BusinessName,
			City:         profile.City,
		})
	}
	return items, nil
}

// IsFavorite reports whether the product is currently saved by the owner.
func (s *service) IsFavorite(ctx context.Context, owner OwnerRef, productID string) (bool, error) {
	if err := validateOwner(owner); err != nil {
		return false, err
	}
	if owner.Kind == enums.OwnerKindVisitor {
		return s.visitors.IsFavorite(owner.ID, productID)
	}

	doc, err := s.store.Load(ctx)
	if err != nil {
		return false, err
	}
	for _, fav := range doc.Favorites {
		if fav.OwnerKind == enums.OwnerKindUser && fav.OwnerID == owner.ID && fav.ProductID == productID {
			return true, nil
		}
	}
	return false, nil
}

func validateOwner(owner OwnerRef) error {
	if !owner.Kind.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid owner kind")
	}
	if strings.TrimSpace(owner.ID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "owner id is required")
	}
	return nil
}
