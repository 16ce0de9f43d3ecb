package tags

import (
	"context"
	"strings"

	"github.com/emprendia/emprendia-backend/pkg/docstore"
	pkgerrors "github.com/emprendia/emprendia-backend/pkg/errors"
)

// Suggestion is one pending product tag proposal awaiting admin review.
type Suggestion struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	OwnerUserID string `json:"owner_user_id"`
	Suggestion  string `json:"suggestion"`
}

// Service exposes the tag catalog and the admin review queue.
type Service interface {
	Suggested(ctx context.Context, category string) ([]string, error)
	PendingSuggestions(ctx context.Context) ([]Suggestion, error)
	ClearSuggestion(ctx context.Context, productID string) error
}

type service struct {
	store docstore.Store
}

// NewService builds the tags service.
func NewService(store docstore.Store) (Service, error) {
	if store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "store is required")
	}
	return &service{store: store}, nil
}

// Suggested returns curated plus in-use tags for the category.
func (s *service) Suggested(ctx context.Context, category string) ([]string, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	out := SuggestedFor(category)
	seen := map[string]bool{}
	for _, tag := range out {
		seen[strings.ToLower(tag)] = true
	}
	// Tags already in use on products of the same category round out the
	// curated list.
	for _, product := range doc.Products {
		if category != "" && !strings.EqualFold(product.Category, category) {
			continue
		}
		for _, tag := range product.Tags {
			key := strings.ToLower(tag)
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, tag)
		}
	}
	return out, nil
}

// PendingSuggestions lists products whose owners proposed a new tag.
func (s *service) PendingSuggestions(ctx context.Context) ([]Suggestion, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	out := []Suggestion{}
	for _, product := range doc.Products {
		if strings.TrimSpace(product.TagSuggestion) == "" {
			continue
		}
		out = append(out, Suggestion{
			ProductID:   product.ID,
			ProductName: product.Name,
			OwnerUserID: product.OwnerUserID,
			Suggestion:  product.TagSuggestion,
		})
	}
	return out, nil
}

// ClearSuggestion dismisses a pending proposal.
func (s *service) ClearSuggestion(ctx context.Context, productID string) error {
	return s.store.Mutate(ctx, func(doc *docstore.Document) error {
		product := doc.FindProduct(productID)
		if product == nil {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		product.TagSuggestion = ""
		return nil
	})
}
