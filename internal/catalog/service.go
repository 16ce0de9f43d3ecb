package catalog

import (
	"context"
	"sort"

	"github.com/emprendia/emprendia-backend/pkg/config"
	"github.com/emprendia/emprendia-backend/pkg/docstore"
	"github.com/emprendia/emprendia-backend/pkg/docstore/models"
	"github.com/emprendia/emprendia-backend/pkg/enums"
	pkgerrors "github.com/emprendia/emprendia-backend/pkg/errors"
	"github.com/shopspring/decimal"
)

// ListParams extends the search parameters with pagination.
type ListParams struct {
	Params
	Limit  int
	Offset int
}

// Item is the public card rendering of a catalog product.
type Item struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Description  string           `json:"description"`
	Category     string           `json:"category"`
	Tags         []string         `json:"tags"`
	PriceKind    enums.PriceKind  `json:"price_kind"`
	Price        *decimal.Decimal `json:"price,omitempty"`
	PriceLabel   string           `json:"price_label"`
	PhotoURLs    []string         `json:"photo_urls"`
	ProfileID    string           `json:"profile_id"`
	BusinessName string           `json:"business_name"`
	City         string           `json:"city"`
	UpdatedAt    string           `json:"updated_at"`
}

// Page is one catalog result window.
type Page struct {
	Items  []Item `json:"items"`
	Total  int    `json:"total"`
	Limit  int    `json:"limit"`
	Offset int    `json:"offset"`
}

// Facets summarizes the filter options derivable from visible products.
type Facets struct {
	Categories []string         `json:"categories"`
	Cities     []string         `json:"cities"`
	Tags       []string         `json:"tags"`
	PriceMin   *decimal.Decimal `json:"price_min,omitempty"`
	PriceMax   *decimal.Decimal `json:"price_max,omitempty"`
}

// Service exposes the public catalog.
type Service interface {
	List(ctx context.Context, params ListParams) (Page, error)
	Facets(ctx context.Context) (Facets, error)
}

type service struct {
	store docstore.Store
	cfg   config.CatalogConfig
}

// NewService builds the catalog service.
func NewService(store docstore.Store, cfg config.CatalogConfig) (Service, error) {
	if store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "store is required")
	}
	return &service{store: store, cfg: cfg}, nil
}

// List loads the document and runs the filter/rank/paginate pipeline.
func (s *service) List(ctx context.Context, params ListParams) (Page, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		return Page{}, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = s.cfg.PageSize
	}
	if limit <= 0 {
		limit = 9
	}

	results := Search(doc.Products, profilesByID(doc), usersByID(doc), params.Params)
	window, total := Paginate(results, params.Offset, limit)

	items := make([]Item, 0, len(window))
	for _, res := range window {
		items = append(items, toItem(res))
	}
	return Page{Items: items, Total: total, Limit: limit, Offset: params.Offset}, nil
}

// Facets derives the filter sidebar values from currently visible listings.
func (s *service) Facets(ctx context.Context) (Facets, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		return Facets{}, err
	}

	visible := Search(doc.Products, profilesByID(doc), usersByID(doc), Params{})

	categories := map[string]struct{}{}
	cities := map[string]struct{}{}
	tags := map[string]struct{}{}
	var min, max *decimal.Decimal
	for _, res := range visible {
		if res.Product.Category != "" {
			categories[res.Product.Category] = struct{}{}
		}
		if res.Profile.City != "" {
			cities[res.Profile.City] = struct{}{}
		}
		for _, tag := range res.Product.Tags {
			if tag != "" {
				tags[tag] = struct{}{}
			}
		}
		if res.Product.Price != nil {
			if min == nil || res.Product.Price.LessThan(*min) {
				v := *res.Product.Price
				min = &v
			}
			if max == nil || res.Product.Price.GreaterThan(*max) {
				v := *res.Product.Price
				max = &v
			}
		}
	}

	return Facets{
		Categories: sortedKeys(categories),
		Cities:     sortedKeys(cities),
		Tags:       sortedKeys(tags),
		PriceMin:   min,
		PriceMax:   max,
	}, nil
}

func toItem(res Result) Item {
	return Item{
		ID:           res.Product.ID,
		Name:         res.Product.Name,
		Description:  res.Product.Description,
		Category:     res.Product.Category,
		Tags:         res.Product.Tags,
		PriceKind:    res.Product.PriceKind,
		Price:        res.Product.Price,
		PriceLabel:   FormatPrice(res.Product.PriceKind, res.Product.Price),
		PhotoURLs:    res.Product.PhotoURLs,
		ProfileID:    res.Profile.ID,
		BusinessName: res.Profile.BusinessName,
		City:         res.Profile.City,
		UpdatedAt:    res.Product.UpdatedAt,
	}
}

func profilesByID(doc *docstore.Document) map[string]models.Profile {
	out := make(map[string]models.Profile, len(doc.Profiles))
	for _, profile := range doc.Profiles {
		out[profile.ID] = profile
	}
	return out
}

func usersByID(doc *docstore.Document) map[string]models.User {
	out := make(map[string]models.User, len(doc.Users))
	for _, user := range doc.Users {
		out[user.ID] = user
	}
	return out
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for key := range set {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}
