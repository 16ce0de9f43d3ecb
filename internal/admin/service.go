package admin

import (
	"context"
	"time"

	"github.com/emprendia/emprendia-backend/internal/limits"
	"github.com/emprendia/emprendia-backend/pkg/config"
	"github.com/emprendia/emprendia-backend/pkg/docstore"
	"github.com/emprendia/emprendia-backend/pkg/enums"
	pkgerrors "github.com/emprendia/emprendia-backend/pkg/errors"
	"github.com/emprendia/emprendia-backend/pkg/textutil"
)

// PresenceCounter reports how many sessions are currently active.
type PresenceCounter interface {
	CountActive() int
}

// Overview is the admin dashboard summary.
type Overview struct {
	UsersByStatus    map[string]int `json:"users_by_status"`
	ProductsByStatus map[string]int `json:"products_by_status"`
	PendingApproval  int            `json:"pending_approval"`
	TotalProfiles    int            `json:"total_profiles"`
	TotalFavorites   int            `json:"total_favorites"`
	TotalEvents      int            `json:"total_events"`
	ActiveSessions   int            `json:"active_sessions"`
}

// EntrepreneurRow is one account in the moderation listing.
type EntrepreneurRow struct {
	UserID            string           `json:"user_id"`
	Email             string           `json:"email"`
	Status            enums.UserStatus `json:"status"`
	BusinessName      string           `json:"business_name"`
	City              string           `json:"city"`
	IsApproved        bool             `json:"is_approved"`
	CanViewStats      bool             `json:"can_view_stats"`
	PublishCap        int              `json:"publish_cap"`
	PublishedProducts int              `json:"published_products"`
	TotalProducts     int              `json:"total_products"`
}

// ListFilter narrows the entrepreneur listing. Query matches email,
// business name and city accent-insensitively.
type ListFilter struct {
	Query        string
	Status       *enums.UserStatus
	OnlyPending  bool
	OnlyApproved bool
}

// ProductRow is one listing in the product moderation view.
type ProductRow struct {
	ProductID    string              `json:"product_id"`
	Name         string              `json:"name"`
	Category     string              `json:"category"`
	Status       enums.ProductStatus `json:"status"`
	OwnerUserID  string              `json:"owner_user_id"`
	BusinessName string              `json:"business_name"`
	UpdatedAt    string              `json:"updated_at"`
}

// ProductFilter narrows the product moderation listing.
type ProductFilter struct {
	Query       string
	Status      *enums.ProductStatus
	OwnerUserID string
}

// Service is the moderation surface. Its status flips bypass the publish
// gate on purpose: an admin decision always wins.
type Service interface {
	Overview(ctx context.Context) (*Overview, error)
	ListEntrepreneurs(ctx context.Context, filter ListFilter) ([]EntrepreneurRow, error)
	ListProducts(ctx context.Context, filter ProductFilter) ([]ProductRow, error)
	Approve(ctx context.Context, userID string) error
	SetUserStatus(ctx context.Context, userID string, status enums.UserStatus) error
	SetPublishCap(ctx context.Context, userID string, cap *int) error
	SetStatsAccess(ctx context.Context, userID string, allowed bool) error
	SetProductStatus(ctx context.Context, productID string, status enums.ProductStatus) error
	DeleteProduct(ctx context.Context, productID string) error
	Export(ctx context.Context) (*docstore.Document, error)
}

type service struct {
	store    docstore.Store
	presence PresenceCounter
	cfg      config.PublishConfig
	clock    func() time.Time
}

// NewService builds the admin service.
func NewService(store docstore.Store, presence PresenceCounter, cfg config.PublishConfig) (Service, error) {
	if store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "store is required")
	}
	if presence == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "presence counter is required")
	}
	return &service{store: store, presence: presence, cfg: cfg, clock: time.Now}, nil
}

func (s *service) Overview(ctx context.Context) (*Overview, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	out := &Overview{
		UsersByStatus:    map[string]int{},
		ProductsByStatus: map[string]int{},
		TotalProfiles:    len(doc.Profiles),
		TotalFavorites:   len(doc.Favorites),
		TotalEvents:      len(doc.Events),
		ActiveSessions:   s.presence.CountActive(),
	}
	for _, user := range doc.Users {
		out.UsersByStatus[user.Status.String()]++
	}
	for _, product := range doc.Products {
		out.ProductsByStatus[product.Status.String()]++
	}
	for _, profile := range doc.Profiles {
		if !profile.IsApproved {
			out.PendingApproval++
		}
	}
	return out, nil
}

func (s *service) ListEntrepreneurs(ctx context.Context, filter ListFilter) ([]EntrepreneurRow, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	query := textutil.Normalize(filter.Query)
	out := []EntrepreneurRow{}
	for _, user := range doc.Users {
		if user.Role != enums.RoleEmprendedor {
			continue
		}
		if filter.Status != nil && user.Status != *filter.Status {
			continue
		}
		profile := doc.FindProfileByOwner(user.ID)
		approved := profile != nil && profile.IsApproved
		if filter.OnlyPending && approved {
			continue
		}
		if filter.OnlyApproved && !approved {
			continue
		}

		row := EntrepreneurRow{
			UserID:       user.ID,
			Email:        user.Email,
			Status:       user.Status,
			IsApproved:   approved,
			CanViewStats: user.CanViewStats,
			PublishCap:   limits.PublishLimit(s.cfg, user),
		}
		if profile != nil {
			row.BusinessName = profile.BusinessName
			row.City = profile.City
		}
		if query != "" && !matchesQuery(query, row) {
			continue
		}
		for _, product := range doc.Products {
			if product.OwnerUserID != user.ID {
				continue
			}
			row.TotalProducts++
			if product.Status == enums.ProductStatusPublished {
				row.PublishedProducts++
			}
		}
		out = append(out, row)
	}
	return out, nil
}

// ListProducts surfaces every listing regardless of status so moderators
// see drafts and paused products too. Query matches name, category and
// business name accent-insensitively.
func (s *service) ListProducts(ctx context.Context, filter ProductFilter) ([]ProductRow, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	query := textutil.Normalize(filter.Query)
	out := []ProductRow{}
	for _, product := range doc.Products {
		if filter.Status != nil && product.Status != *filter.Status {
			continue
		}
		if filter.OwnerUserID != "" && product.OwnerUserID != filter.OwnerUserID {
			continue
		}
		row := ProductRow{
			ProductID:   product.ID,
			Name:        product.Name,
			Category:    product.Category,
			Status:      product.Status,
			OwnerUserID: product.OwnerUserID,
			UpdatedAt:   product.UpdatedAt,
		}
		if profile := doc.FindProfile(product.ProfileID); profile != nil {
			row.BusinessName = profile.BusinessName
		}
		if query != "" {
			haystack := textutil.Normalize(row.Name + " " + row.Category + " " + row.BusinessName)
			if !textutil.MatchesQuery(haystack, query) {
				continue
			}
		}
		out = append(out, row)
	}
	return out, nil
}

// Approve activates the account and makes its storefront public.
func (s *service) Approve(ctx context.Context, userID string) error {
	return s.store.Mutate(ctx, func(doc *docstore.Document) error {
		user := doc.FindUser(userID)
		if user == nil {
			return pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		profile := doc.FindProfileByOwner(userID)
		if profile == nil {
			return pkgerrors.New(pkgerrors.CodeNotFound, "profile not found")
		}
		now := docstore.NowISO(s.clock())
		profile.IsApproved = true
		profile.UpdatedAt = now
		user.Status = enums.UserStatusActive
		user.UpdatedAt = now
		return nil
	})
}

// SetUserStatus flips the account status. Blocking hides the entrepreneur's
// whole catalog at read time without touching product records.
func (s *service) SetUserStatus(ctx context.Context, userID string, status enums.UserStatus) error {
	if !status.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid user status")
	}
	return s.store.Mutate(ctx, func(doc *docstore.Document) error {
		user := doc.FindUser(userID)
		if user == nil {
			return pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		user.Status = status
		user.UpdatedAt = docstore.NowISO(s.clock())
		return nil
	})
}

// SetPublishCap updates the per-account limit. Nil restores the platform
// default; the change is not retroactive, already-published products stay
// up.
func (s *service) SetPublishCap(ctx context.Context, userID string, cap *int) error {
	if cap != nil && *cap < limits.Unlimited {
		return pkgerrors.New(pkgerrors.CodeValidation, "publish cap must be -1, 0 or positive")
	}
	return s.store.Mutate(ctx, func(doc *docstore.Document) error {
		user := doc.FindUser(userID)
		if user == nil {
			return pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		user.MaxPublishedProducts = cap
		user.UpdatedAt = docstore.NowISO(s.clock())
		return nil
	})
}

func (s *service) SetStatsAccess(ctx context.Context, userID string, allowed bool) error {
	return s.store.Mutate(ctx, func(doc *docstore.Document) error {
		user := doc.FindUser(userID)
		if user == nil {
			return pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		user.CanViewStats = allowed
		user.UpdatedAt = docstore.NowISO(s.clock())
		return nil
	})
}

// SetProductStatus is the moderation override. Unlike the owner-facing
// publish flow it skips the publish gate entirely.
func (s *service) SetProductStatus(ctx context.Context, productID string, status enums.ProductStatus) error {
	if !status.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid product status")
	}
	return s.store.Mutate(ctx, func(doc *docstore.Document) error {
		product := doc.FindProduct(productID)
		if product == nil {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		product.Status = status
		product.UpdatedAt = docstore.NowISO(s.clock())
		return nil
	})
}

func (s *service) DeleteProduct(ctx context.Context, productID string) error {
	return s.store.Mutate(ctx, func(doc *docstore.Document) error {
		for i, product := range doc.Products {
			if product.ID != productID {
				continue
			}
			doc.Products = append(doc.Products[:i], doc.Products[i+1:]...)
			kept := doc.Favorites[:0]
			for _, fav := range doc.Favorites {
				if fav.ProductID != productID {
					kept = append(kept, fav)
				}
			}
			doc.Favorites = kept
			return nil
		}
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	})
}

// Export returns the full document for backups.
func (s *service) Export(ctx context.Context) (*docstore.Document, error) {
	return s.store.Load(ctx)
}

func matchesQuery(normalizedQuery string, row EntrepreneurRow) bool {
	haystack := textutil.Normalize(row.Email + " " + row.BusinessName + " " + row.City)
	return textutil.MatchesQuery(haystack, normalizedQuery)
}
