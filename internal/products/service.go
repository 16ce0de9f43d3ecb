package products

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/emprendia/emprendia-backend/internal/catalog"
	"github.com/emprendia/emprendia-backend/internal/limits"
	"github.com/emprendia/emprendia-backend/internal/profiles"
	"github.com/emprendia/emprendia-backend/pkg/config"
	"github.com/emprendia/emprendia-backend/pkg/docstore"
	"github.com/emprendia/emprendia-backend/pkg/docstore/models"
	"github.com/emprendia/emprendia-backend/pkg/enums"
	pkgerrors "github.com/emprendia/emprendia-backend/pkg/errors"
	"github.com/emprendia/emprendia-backend/pkg/textutil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	maxNameLen          = 80
	maxDescriptionLen   = 2000
	maxTags             = 5
	maxTagSuggestionLen = 40
	maxPhotos           = 6
)

// Input carries the editable listing fields.
type Input struct {
	Name          string
	Description   string
	PriceKind     enums.PriceKind
	Price         *decimal.Decimal
	Category      string
	Subcategory   string
	Tags          []string
	TagSuggestion string
	PhotoURLs     []string
}

// SaveResult reports the stored product and whether a requested publish was
// demoted to draft by the publish gate.
type SaveResult struct {
	Product models.Product `json:"product"`
	Demoted bool           `json:"demoted"`
}

// Viewer identifies who is looking at a product.
type Viewer struct {
	UserID  string
	IsAdmin bool
}

// Detail is the public product page.
type Detail struct {
	Product      models.Product    `json:"product"`
	PriceLabel   string            `json:"price_label"`
	BusinessName string            `json:"business_name"`
	City         string            `json:"city"`
	ContactHrefs map[string]string `json:"contact_hrefs"`
}

// Service manages an entrepreneur's listings.
type Service interface {
	Create(ctx context.Context, userID string, in Input, wantPublished bool) (*SaveResult, error)
	Update(ctx context.Context, userID, productID string, in Input) (*SaveResult, error)
	SetStatus(ctx context.Context, userID, productID string, status enums.ProductStatus) (*models.Product, error)
	Delete(ctx context.Context, userID, productID string) error
	Mine(ctx context.Context, userID string) ([]models.Product, error)
	PublicDetail(ctx context.Context, productID string, viewer Viewer) (*Detail, error)
}

type service struct {
	store docstore.Store
	cfg   config.PublishConfig
	clock func() time.Time
}

// NewService builds the products service.
func NewService(store docstore.Store, cfg config.PublishConfig) (Service, error) {
	if store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "store is required")
	}
	return &service{store: store, cfg: cfg, clock: time.Now}, nil
}

// Create stores a new listing. Asking to publish runs the publish gate; a
// denial saves the product as a draft instead of failing the request.
func (s *service) Create(ctx context.Context, userID string, in Input, wantPublished bool) (*SaveResult, error) {
	normalized, err := validateInput(in)
	if err != nil {
		return nil, err
	}

	result := &SaveResult{}
	err = s.store.Mutate(ctx, func(doc *docstore.Document) error {
		profile := doc.FindProfileByOwner(userID)
		if profile == nil {
			return pkgerrors.New(pkgerrors.CodeNotFound, "profile not found")
		}
		user := doc.FindUser(userID)
		if user == nil {
			return pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}

		now := docstore.NowISO(s.clock())
		product := models.Product{
			ID:            uuid.NewString(),
			OwnerUserID:   userID,
			ProfileID:     profile.ID,
			Name:          normalized.Name,
			Description:   normalized.Description,
			PriceKind:     normalized.PriceKind,
			Price:         normalized.Price,
			Category:      normalized.Category,
			Subcategory:   normalized.Subcategory,
			Tags:          normalized.Tags,
			TagSuggestion: normalized.TagSuggestion,
			PhotoURLs:     normalized.PhotoURLs,
			Status:        enums.ProductStatusDraft,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if wantPublished {
			if publishAllowed(s.cfg, doc, *user, *profile, "") {
				product.Status = enums.ProductStatusPublished
			} else {
				result.Demoted = true
			}
		}
		doc.Products = append(doc.Products, product)
		result.Product = product
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Update edits an owned listing. A published product whose owner no longer
// passes the publish gate is demoted to draft at save time.
func (s *service) Update(ctx context.Context, userID, productID string, in Input) (*SaveResult, error) {
	normalized, err := validateInput(in)
	if err != nil {
		return nil, err
	}

	result := &SaveResult{}
	err = s.store.Mutate(ctx, func(doc *docstore.Document) error {
		product := doc.FindProduct(productID)
		if product == nil || product.OwnerUserID != userID {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		user := doc.FindUser(userID)
		profile := doc.FindProfileByOwner(userID)
		if user == nil || profile == nil {
			return pkgerrors.New(pkgerrors.CodeNotFound, "profile not found")
		}

		product.Name = normalized.Name
		product.Description = normalized.Description
		product.PriceKind = normalized.PriceKind
		product.Price = normalized.Price
		product.Category = normalized.Category
		product.Subcategory = normalized.Subcategory
		product.Tags = normalized.Tags
		product.TagSuggestion = normalized.TagSuggestion
		product.PhotoURLs = normalized.PhotoURLs
		if product.Status == enums.ProductStatusPublished && !publishAllowed(s.cfg, doc, *user, *profile, product.ID) {
			product.Status = enums.ProductStatusDraft
			result.Demoted = true
		}
		product.UpdatedAt = docstore.NowISO(s.clock())
		result.Product = *product
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// SetStatus flips a listing between draft, paused and published. Publishing
// requires an approved profile, an active account and a free slot under the
// owner's cap.
func (s *service) SetStatus(ctx context.Context, userID, productID string, status enums.ProductStatus) (*models.Product, error) {
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid product status")
	}

	var updated models.Product
	err := s.store.Mutate(ctx, func(doc *docstore.Document) error {
		product := doc.FindProduct(productID)
		if product == nil || product.OwnerUserID != userID {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		if product.Status == status {
			updated = *product
			return nil
		}
		if status == enums.ProductStatusPublished {
			user := doc.FindUser(userID)
			profile := doc.FindProfileByOwner(userID)
			if user == nil || profile == nil {
				return pkgerrors.New(pkgerrors.CodeNotFound, "profile not found")
			}
			if !profile.IsApproved || user.Status != enums.UserStatusActive {
				return pkgerrors.New(pkgerrors.CodeStateConflict, "account is not approved for publishing")
			}
			if !limits.CanPublishMore(s.cfg, *user, doc.Products, product.ID) {
				return pkgerrors.New(pkgerrors.CodeStateConflict, "published product limit reached")
			}
		}
		product.Status = status
		product.UpdatedAt = docstore.NowISO(s.clock())
		updated = *product
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes an owned listing and any favorites pointing at it.
func (s *service) Delete(ctx context.Context, userID, productID string) error {
	return s.store.Mutate(ctx, func(doc *docstore.Document) error {
		for i, product := range doc.Products {
			if product.ID != productID {
				continue
			}
			if product.OwnerUserID != userID {
				return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
			}
			doc.Products = append(doc.Products[:i], doc.Products[i+1:]...)
			pruneFavorites(doc, productID)
			return nil
		}
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	})
}

// Mine lists the caller's products in every status.
func (s *service) Mine(ctx context.Context, userID string) ([]models.Product, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	out := []models.Product{}
	for _, product := range doc.Products {
		if product.OwnerUserID == userID {
			out = append(out, product)
		}
	}
	return out, nil
}

// PublicDetail returns the product page. Hidden products are only visible
// to their owner and admins.
func (s *service) PublicDetail(ctx context.Context, productID string, viewer Viewer) (*Detail, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	product := doc.FindProduct(productID)
	if product == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	profile := doc.FindProfile(product.ProfileID)
	if profile == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}

	privileged := viewer.IsAdmin || (viewer.UserID != "" && viewer.UserID == product.OwnerUserID)
	owner := doc.FindUser(product.OwnerUserID)
	visible := product.Status == enums.ProductStatusPublished &&
		profile.IsApproved &&
		owner != nil && owner.Status == enums.UserStatusActive
	if !visible && !privileged {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}

	return &Detail{
		Product:      *product,
		PriceLabel:   catalog.FormatPrice(product.PriceKind, product.Price),
		BusinessName: profile.BusinessName,
		City:         profile.City,
		ContactHrefs: profiles.ContactHrefs(profile.Links),
	}, nil
}

func publishAllowed(cfg config.PublishConfig, doc *docstore.Document, user models.User, profile models.Profile, excludeProductID string) bool {
	if !profile.IsApproved || user.Status != enums.UserStatusActive {
		return false
	}
	return limits.CanPublishMore(cfg, user, doc.Products, excludeProductID)
}

func pruneFavorites(doc *docstore.Document, productID string) {
	kept := doc.Favorites[:0]
	for _, fav := range doc.Favorites {
		if fav.ProductID != productID {
			kept = append(kept, fav)
		}
	}
	doc.Favorites = kept
}

func validateInput(in Input) (Input, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return in, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if len([]rune(in.Name)) > maxNameLen {
		return in, lengthError("name", maxNameLen)
	}
	in.Description = strings.TrimSpace(in.Description)
	if len([]rune(in.Description)) > maxDescriptionLen {
		return in, lengthError("description", maxDescriptionLen)
	}
	if !in.PriceKind.IsValid() {
		return in, pkgerrors.New(pkgerrors.CodeValidation, "invalid price kind")
	}
	if in.PriceKind == enums.PriceKindAgree {
		in.Price = nil
	} else {
		if in.Price == nil {
			return in, pkgerrors.New(pkgerrors.CodeValidation, "price is required for this price kind")
		}
		if in.Price.IsNegative() {
			return in, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
		}
	}
	in.Category = strings.TrimSpace(in.Category)
	in.Subcategory = strings.TrimSpace(in.Subcategory)

	tags, err := normalizeTags(in.Tags)
	if err != nil {
		return in, err
	}
	in.Tags = tags

	in.TagSuggestion = strings.TrimSpace(in.TagSuggestion)
	if len([]rune(in.TagSuggestion)) > maxTagSuggestionLen {
		return in, lengthError("tag suggestion", maxTagSuggestionLen)
	}
	if len(in.PhotoURLs) > maxPhotos {
		return in, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("photos are capped at %d", maxPhotos))
	}
	if in.PhotoURLs == nil {
		in.PhotoURLs = []string{}
	}
	return in, nil
}

// normalizeTags trims, deduplicates accent-insensitively and keeps order.
func normalizeTags(tags []string) ([]string, error) {
	out := []string{}
	seen := map[string]bool{}
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		key := textutil.Normalize(tag)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, tag)
	}
	if len(out) > maxTags {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("tags are capped at %d", maxTags))
	}
	return out, nil
}

func lengthError(field string, max int) error {
	return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("%s exceeds %d characters", field, max))
}
