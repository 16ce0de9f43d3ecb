package featured

import (
	"context"
	"fmt"

	"github.com/emprendia/emprendia-backend/internal/catalog"
	"github.com/emprendia/emprendia-backend/pkg/config"
	"github.com/emprendia/emprendia-backend/pkg/docstore"
	"github.com/emprendia/emprendia-backend/pkg/docstore/models"
	"github.com/emprendia/emprendia-backend/pkg/enums"
	pkgerrors "github.com/emprendia/emprendia-backend/pkg/errors"
)

// ProfileCard is the public shape of a featured storefront.
type ProfileCard struct {
	ProfileID    string `json:"profile_id"`
	BusinessName string `json:"business_name"`
	City         string `json:"city"`
	ShortDesc    string `json:"short_desc"`
	LogoURL      string `json:"logo_url,omitempty"`
}

// Selection is the curated home page content. Entries pointing at hidden
// products or unapproved profiles are filtered out at read time instead of
// being rewritten in the document.
type Selection struct {
	Products []catalog.Item `json:"products"`
	Profiles []ProfileCard  `json:"profiles"`
}

// Service reads and curates the featured selection.
type Service interface {
	Selection(ctx context.Context) (*Selection, error)
	Update(ctx context.Context, productIDs, profileIDs []string) error
}

type service struct {
	store docstore.Store
	cfg   config.CatalogConfig
}

// NewService builds the featured-content service.
func NewService(store docstore.Store, cfg config.CatalogConfig) (Service, error) {
	if store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "store is required")
	}
	return &service{store: store, cfg: cfg}, nil
}

// Selection returns the curated products and profiles that are still
// publicly visible, preserving the curated order.
func (s *service) Selection(ctx context.Context) (*Selection, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	out := &Selection{Products: []catalog.Item{}, Profiles: []ProfileCard{}}
	for _, id := range doc.Featured.ProductIDs {
		product := doc.FindProduct(id)
		if product == nil || product.Status != enums.ProductStatusPublished {
			continue
		}
		profile := doc.FindProfile(product.ProfileID)
		if !visibleProfile(doc, profile) {
			continue
		}
		out.Products = append(out.Products, catalog.Item{
			ID:           product.ID,
			Name:         product.Name,
			Description:  product.Description,
			Category:     product.Category,
			Tags:         product.Tags,
			PriceKind:    product.PriceKind,
			Price:        product.Price,
			PriceLabel:   catalog.FormatPrice(product.PriceKind, product.Price),
			PhotoURLs:    product.PhotoURLs,
			ProfileID:    profile.ID,
			BusinessName: profile.BusinessName,
			City:         profile.City,
			UpdatedAt:    product.UpdatedAt,
		})
	}
	for _, id := range doc.Featured.ProfileIDs {
		profile := doc.FindProfile(id)
		if !visibleProfile(doc, profile) {
			continue
		}
		out.Profiles = append(out.Profiles, ProfileCard{
			ProfileID:    profile.ID,
			BusinessName: profile.BusinessName,
			City:         profile.City,
			ShortDesc:    profile.ShortDesc,
			LogoURL:      profile.LogoURL,
		})
	}
	return out, nil
}

// Update replaces the curated lists. IDs must exist, duplicates are
// rejected, and each list is capped.
func (s *service) Update(ctx context.Context, productIDs, profileIDs []string) error {
	max := s.maxFeatured()
	if len(productIDs) > max || len(profileIDs) > max {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("featured lists are capped at %d entries", max))
	}
	if err := uniqueIDs(productIDs); err != nil {
		return err
	}
	if err := uniqueIDs(profileIDs); err != nil {
		return err
	}

	return s.store.Mutate(ctx, func(doc *docstore.Document) error {
		for _, id := range productIDs {
			if doc.FindProduct(id) == nil {
				return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("product %s not found", id))
			}
		}
		for _, id := range profileIDs {
			if doc.FindProfile(id) == nil {
				return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("profile %s not found", id))
			}
		}
		doc.Featured = models.Featured{
			ProductIDs: append([]string{}, productIDs...),
			ProfileIDs: append([]string{}, profileIDs...),
		}
		return nil
	})
}

func (s *service) maxFeatured() int {
	if s.cfg.MaxFeatured <= 0 {
		return 12
	}
	return s.cfg.MaxFeatured
}

func visibleProfile(doc *docstore.Document, profile *models.Profile) bool {
	if profile == nil || !profile.IsApproved {
		return false
	}
	owner := doc.FindUser(profile.OwnerUserID)
	return owner != nil && owner.Status == enums.UserStatusActive
}

func uniqueIDs(ids []string) error {
	seen := map[string]bool{}
	for _, id := range ids {
		if id == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "empty id in featured list")
		}
		if seen[id] {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("duplicate id %s in featured list", id))
		}
		seen[id] = true
	}
	return nil
}
