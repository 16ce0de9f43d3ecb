package catalog

import (
	"sort"
	"strings"

	"github.com/emprendia/emprendia-backend/pkg/docstore/models"
	"github.com/emprendia/emprendia-backend/pkg/enums"
	"github.com/emprendia/emprendia-backend/pkg/textutil"
	"github.com/shopspring/decimal"
)

// Sentinel used so products without a numeric price sort last under
// ascending price order. Descending order uses zero for the same effect.
var priceSentinelMax = decimal.New(1, 15)

const (
	scorePerNameTerm = 5
	scorePerDescTerm = 2
)

// Params holds the catalog query inputs after controller-level parsing.
type Params struct {
	Query    string
	Category string
	City     string
	Tag      string
	PriceMin *decimal.Decimal
	PriceMax *decimal.Decimal
	Sort     enums.SortMode
}

// Result pairs a visible product with its profile and relevance score.
type Result struct {
	Product models.Product
	Profile models.Profile
	Score   int
}

// Search runs the filter pipeline and ranks the survivors. profiles and
// users are keyed by ID; a product whose owner is missing from either map is
// treated as not publicly visible.
func Search(products []models.Product, profiles map[string]models.Profile, users map[string]models.User, params Params) []Result {
	terms := textutil.Terms(params.Query)
	wantCategory := strings.TrimSpace(params.Category)
	wantCity := strings.TrimSpace(params.City)
	wantTag := textutil.Normalize(params.Tag)

	results := make([]Result, 0, len(products))
	for _, product := range products {
		if product.Status != enums.ProductStatusPublished {
			continue
		}
		profile, ok := profiles[product.ProfileID]
		if !ok || !profile.IsApproved {
			continue
		}
		if users != nil {
			owner, ok := users[product.OwnerUserID]
			if !ok || owner.Status != enums.UserStatusActive {
				continue
			}
		}
		if wantCategory != "" && product.Category != wantCategory {
			continue
		}
		if wantCity != "" && profile.City != wantCity {
			continue
		}
		if wantTag != "" && !hasTag(product.Tags, wantTag) {
			continue
		}
		if !priceInRange(product, params.PriceMin, params.PriceMax) {
			continue
		}

		var owner *models.User
		if users != nil {
			if u, ok := users[product.OwnerUserID]; ok {
				owner = &u
			}
		}
		if len(terms) > 0 && !textutil.MatchesQuery(haystack(product, profile, owner), params.Query) {
			continue
		}

		results = append(results, Result{
			Product: product,
			Profile: profile,
			Score:   relevance(product, terms),
		})
	}

	sortResults(results, params.Sort, len(terms) > 0)
	return results
}

func hasTag(tags []string, normalized string) bool {
	for _, tag := range tags {
		if textutil.Normalize(tag) == normalized {
			return true
		}
	}
	return false
}

// Price filters never exclude AGREE products; "to be agreed" passes every
// numeric range.
func priceInRange(product models.Product, min, max *decimal.Decimal) bool {
	if min == nil && max == nil {
		return true
	}
	if product.PriceKind == enums.PriceKindAgree || product.Price == nil {
		return true
	}
	if min != nil && product.Price.LessThan(*min) {
		return false
	}
	if max != nil && product.Price.GreaterThan(*max) {
		return false
	}
	return true
}

func haystack(product models.Product, profile models.Profile, owner *models.User) string {
	parts := []string{
		product.Name,
		product.Description,
		product.Category,
		strings.Join(product.Tags, " "),
		profile.BusinessName,
		profile.City,
	}
	if owner != nil {
		parts = append(parts, owner.Email)
	}
	return strings.Join(parts, " ")
}

func relevance(product models.Product, terms []string) int {
	if len(terms) == 0 {
		return 0
	}
	name := textutil.Normalize(product.Name)
	desc := textutil.Normalize(product.Description)
	score := 0
	for _, term := range terms {
		if strings.Contains(name, term) {
			score += scorePerNameTerm
		}
		if strings.Contains(desc, term) {
			score += scorePerDescTerm
		}
	}
	return score
}

// sortTimestamp prefers updated_at and falls back to created_at. Both are
// canonical ISO strings, so plain string comparison orders correctly.
func sortTimestamp(product models.Product) string {
	if product.UpdatedAt != "" {
		return product.UpdatedAt
	}
	return product.CreatedAt
}

func sortPrice(product models.Product, missing decimal.Decimal) decimal.Decimal {
	if product.Price == nil {
		return missing
	}
	return *product.Price
}

func sortResults(results []Result, mode enums.SortMode, hasQuery bool) {
	switch mode {
	case enums.SortModePriceAsc:
		sort.SliceStable(results, func(i, j int) bool {
			return sortPrice(results[i].Product, priceSentinelMax).
				LessThan(sortPrice(results[j].Product, priceSentinelMax))
		})
	case enums.SortModePriceDesc:
		sort.SliceStable(results, func(i, j int) bool {
			return sortPrice(results[i].Product, decimal.Zero).
				GreaterThan(sortPrice(results[j].Product, decimal.Zero))
		})
	case enums.SortModeRecent:
		sortByRecency(results)
	default:
		// Relevance, which is also the default mode. Without a query
		// there is nothing to score, so recency takes over.
		if !hasQuery {
			sortByRecency(results)
			return
		}
		sort.SliceStable(results, func(i, j int) bool {
			if results[i].Score != results[j].Score {
				return results[i].Score > results[j].Score
			}
			return sortTimestamp(results[i].Product) > sortTimestamp(results[j].Product)
		})
	}
}

func sortByRecency(results []Result) {
	sort.SliceStable(results, func(i, j int) bool {
		return sortTimestamp(results[i].Product) > sortTimestamp(results[j].Product)
	})
}

// Paginate clamps offset/limit to the result bounds and reports the total.
func Paginate(results []Result, offset, limit int) ([]Result, int) {
	total := len(results)
	if offset < 0 {
		offset = 0
	}
	if offset > total {
		offset = total
	}
	end := total
	if limit > 0 && offset+limit < total {
		end = offset + limit
	}
	return results[offset:end], total
}
