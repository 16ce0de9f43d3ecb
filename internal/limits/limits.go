package limits

import (
	"github.com/emprendia/emprendia-backend/pkg/config"
	"github.com/emprendia/emprendia-backend/pkg/docstore/models"
	"github.com/emprendia/emprendia-backend/pkg/enums"
)

// DefaultMaxPublished is the built-in publish cap used when the deployment
// does not configure one.
const DefaultMaxPublished = 5

// Unlimited marks an account with no publish cap.
const Unlimited = -1

// PublishLimit resolves the effective cap for a user: -1 unlimited, 0
// publishing disabled. An explicit per-user override wins; otherwise the
// configured platform default applies, falling back to DefaultMaxPublished
// when the configuration carries no usable value.
func PublishLimit(cfg config.PublishConfig, user models.User) int {
	if user.MaxPublishedProducts != nil {
		return *user.MaxPublishedProducts
	}
	if d := cfg.DefaultMaxProducts; d == Unlimited || d > 0 {
		return d
	}
	return DefaultMaxPublished
}

// CountPublished counts the user's PUBLISHED products, optionally excluding
// one product (the one being edited) from the tally.
func CountPublished(products []models.Product, userID, excludeProductID string) int {
	count := 0
	for _, product := range products {
		if product.OwnerUserID != userID {
			continue
		}
		if product.Status != enums.ProductStatusPublished {
			continue
		}
		if excludeProductID != "" && product.ID == excludeProductID {
			continue
		}
		count++
	}
	return count
}

// CanPublishMore reports whether the user may bring one more product to
// PUBLISHED. The check runs only at transition time; already-published
// products are never demoted by a cap change.
func CanPublishMore(cfg config.PublishConfig, user models.User, products []models.Product, excludeProductID string) bool {
	limit := PublishLimit(cfg, user)
	if limit == Unlimited {
		return true
	}
	if limit <= 0 {
		return false
	}
	return CountPublished(products, user.ID, excludeProductID) < limit
}
