package profiles

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/emprendia/emprendia-backend/internal/catalog"
	"github.com/emprendia/emprendia-backend/pkg/docstore"
	"github.com/emprendia/emprendia-backend/pkg/docstore/models"
	"github.com/emprendia/emprendia-backend/pkg/enums"
	pkgerrors "github.com/emprendia/emprendia-backend/pkg/errors"
)

const (
	maxBusinessNameLen = 80
	maxShortDescLen    = 180
	maxLongDescLen     = 5000
	maxCityLen         = 60
	maxAvailabilityLen = 80
	maxGalleryPhotos   = 8
)

// UpdateInput carries the editable storefront fields. Nil pointers leave
// the current value untouched.
type UpdateInput struct {
	BusinessName *string
	ShortDesc    *string
	LongDesc     *string
	Categories   *[]string
	City         *string
	Availability *string
	Links        *map[enums.LinkChannel]string
	LogoURL      *string
	GalleryURLs  *[]string
}

// Viewer identifies who is looking at a profile, for visibility decisions.
type Viewer struct {
	UserID  string
	IsAdmin bool
}

// PublicView is the storefront page: the profile, its visible products and
// ready-to-use contact links.
type PublicView struct {
	Profile      models.Profile    `json:"profile"`
	Products     []catalog.Item    `json:"products"`
	ContactHrefs map[string]string `json:"contact_hrefs"`
}

// Service manages entrepreneur storefronts.
type Service interface {
	MyProfile(ctx context.Context, userID string) (*models.Profile, error)
	UpdateMyProfile(ctx context.Context, userID string, in UpdateInput) (*models.Profile, error)
	PublicProfile(ctx context.Context, profileID string, viewer Viewer) (*PublicView, error)
}

type service struct {
	store docstore.Store
	clock func() time.Time
}

// NewService builds the profiles service.
func NewService(store docstore.Store) (Service, error) {
	if store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "store is required")
	}
	return &service{store: store, clock: time.Now}, nil
}

// MyProfile returns the caller's own storefront regardless of approval.
func (s *service) MyProfile(ctx context.Context, userID string) (*models.Profile, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	profile := doc.FindProfileByOwner(userID)
	if profile == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "profile not found")
	}
	out := *profile
	return &out, nil
}

// UpdateMyProfile applies partial edits after validating lengths and links.
// Editing does not reset approval.
func (s *service) UpdateMyProfile(ctx context.Context, userID string, in UpdateInput) (*models.Profile, error) {
	if err := validateUpdate(in); err != nil {
		return nil, err
	}

	var updated models.Profile
	err := s.store.Mutate(ctx, func(doc *docstore.Document) error {
		profile := doc.FindProfileByOwner(userID)
		if profile == nil {
			return pkgerrors.New(pkgerrors.CodeNotFound, "profile not found")
		}
		if in.BusinessName != nil {
			profile.BusinessName = strings.TrimSpace(*in.BusinessName)
		}
		if in.ShortDesc != nil {
			profile.ShortDesc = strings.TrimSpace(*in.ShortDesc)
		}
		if in.LongDesc != nil {
			profile.LongDesc = strings.TrimSpace(*in.LongDesc)
		}
		if in.Categories != nil {
			profile.Categories = append([]string{}, *in.Categories...)
		}
		if in.City != nil {
			profile.City = strings.TrimSpace(*in.City)
		}
		if in.Availability != nil {
			profile.Availability = strings.TrimSpace(*in.Availability)
		}
		if in.Links != nil {
			links, err := normalizeLinks(*in.Links)
			if err != nil {
				return err
			}
			profile.Links = links
		}
		if in.LogoURL != nil {
			profile.LogoURL = strings.TrimSpace(*in.LogoURL)
		}
		if in.GalleryURLs != nil {
			profile.GalleryURLs = append([]string{}, *in.GalleryURLs...)
		}
		profile.UpdatedAt = docstore.NowISO(s.clock())
		updated = *profile
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// PublicProfile returns the storefront page. Unapproved profiles are only
// visible to their owner and admins. Product visibility follows the same
// rule the catalog uses.
func (s *service) PublicProfile(ctx context.Context, profileID string, viewer Viewer) (*PublicView, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	profile := doc.FindProfile(profileID)
	if profile == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "profile not found")
	}

	isOwner := viewer.UserID != "" && viewer.UserID == profile.OwnerUserID
	privileged := isOwner || viewer.IsAdmin
	owner := doc.FindUser(profile.OwnerUserID)
	visible := profile.IsApproved && owner != nil && owner.Status == enums.UserStatusActive
	if !visible && !privileged {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "profile not found")
	}

	view := &PublicView{
		Profile:      *profile,
		Products:     []catalog.Item{},
		ContactHrefs: ContactHrefs(profile.Links),
	}
	for _, product := range doc.Products {
		if product.ProfileID != profile.ID {
			continue
		}
		if product.Status != enums.ProductStatusPublished && !privileged {
			continue
		}
		view.Products = append(view.Products, catalog.Item{
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
	return view, nil
}

func validateUpdate(in UpdateInput) error {
	if in.BusinessName != nil {
		name := strings.TrimSpace(*in.BusinessName)
		if name == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "business name is required")
		}
		if len([]rune(name)) > maxBusinessNameLen {
			return lengthError("business name", maxBusinessNameLen)
		}
	}
	if in.ShortDesc != nil && len([]rune(*in.ShortDesc)) > maxShortDescLen {
		return lengthError("short description", maxShortDescLen)
	}
	if in.LongDesc != nil && len([]rune(*in.LongDesc)) > maxLongDescLen {
		return lengthError("long description", maxLongDescLen)
	}
	if in.City != nil && len([]rune(*in.City)) > maxCityLen {
		return lengthError("city", maxCityLen)
	}
	if in.Availability != nil && len([]rune(*in.Availability)) > maxAvailabilityLen {
		return lengthError("availability", maxAvailabilityLen)
	}
	if in.GalleryURLs != nil && len(*in.GalleryURLs) > maxGalleryPhotos {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("gallery is capped at %d photos", maxGalleryPhotos))
	}
	return nil
}

func lengthError(field string, max int) error {
	return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("%s exceeds %d characters", field, max))
}
