package models

import "github.com/emprendia/emprendia-backend/pkg/enums"

// Profile is the public storefront of an entrepreneur. One per user.
type Profile struct {
	ID           string                       `json:"id"`
	OwnerUserID  string                       `json:"owner_user_id"`
	BusinessName string                       `json:"business_name"`
	ShortDesc    string                       `json:"short_desc"`
	LongDesc     string                       `json:"long_desc"`
	Categories   []string                     `json:"categories"`
	City         string                       `json:"city"`
	Availability string                       `json:"availability"`
	Links        map[enums.LinkChannel]string `json:"links"`
	LogoURL      string                       `json:"logo_url,omitempty"`
	GalleryURLs  []string                     `json:"gallery_urls"`
	IsApproved   bool                         `json:"is_approved"`
	CreatedAt    string                       `json:"created_at"`
	UpdatedAt    string                       `json:"updated_at"`
}
