package models

import (
	"github.com/emprendia/emprendia-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// Product is a catalog listing. Price is nil if and only if the price kind
// is AGREE.
type Product struct {
	ID            string              `json:"id"`
	OwnerUserID   string              `json:"owner_user_id"`
	ProfileID     string              `json:"profile_id"`
	Name          string              `json:"name"`
	Description   string              `json:"description"`
	PriceKind     enums.PriceKind     `json:"price_kind"`
	Price         *decimal.Decimal    `json:"price,omitempty"`
	Category      string              `json:"category"`
	Subcategory   string              `json:"subcategory,omitempty"`
	Tags          []string            `json:"tags"`
	TagSuggestion string              `json:"tag_suggestion,omitempty"`
	PhotoURLs     []string            `json:"photo_urls"`
	Status        enums.ProductStatus `json:"status"`
	CreatedAt     string              `json:"created_at"`
	UpdatedAt     string              `json:"updated_at"`
}
