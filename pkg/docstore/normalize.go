package docstore

import (
	"fmt"
	"strings"

	"github.com/emprendia/emprendia-backend/pkg/enums"
	"go.uber.org/multierr"
)

// Normalize applies storage-boundary defaults in place and returns the
// aggregate of every irrecoverable complaint. Records with fixable issues
// are repaired rather than rejected: statuses are uppercased, emails
// lowercased, AGREE prices cleared, missing slices initialized.
func Normalize(doc *Document) error {
	if doc == nil {
		return fmt.Errorf("document is nil")
	}

	var errs error

	for i := range doc.Users {
		u := &doc.Users[i]
		u.Email = strings.ToLower(strings.TrimSpace(u.Email))
		u.Role = enums.Role(strings.ToUpper(string(u.Role)))
		if !u.Role.IsValid() {
			u.Role = enums.RoleEmprendedor
		}
		u.Status = enums.UserStatus(strings.ToUpper(string(u.Status)))
		if !u.Status.IsValid() {
			u.Status = enums.UserStatusPending
		}
		if u.ID == "" {
			errs = multierr.Append(errs, fmt.Errorf("user %d: missing id", i))
		}
		if u.Email == "" {
			errs = multierr.Append(errs, fmt.Errorf("user %s: missing email", u.ID))
		}
	}

	for i := range doc.Profiles {
		p := &doc.Profiles[i]
		if p.Categories == nil {
			p.Categories = []string{}
		}
		if p.GalleryURLs == nil {
			p.GalleryURLs = []string{}
		}
		if p.Links == nil {
			p.Links = map[enums.LinkChannel]string{}
		}
		if p.ID == "" {
			errs = multierr.Append(errs, fmt.Errorf("profile %d: missing id", i))
		}
		if p.OwnerUserID == "" {
			errs = multierr.Append(errs, fmt.Errorf("profile %s: missing owner", p.ID))
		}
	}

	for i := range doc.Products {
		p := &doc.Products[i]
		p.Status = enums.ProductStatus(strings.ToUpper(string(p.Status)))
		if !p.Status.IsValid() {
			p.Status = enums.ProductStatusDraft
		}
		p.PriceKind = enums.PriceKind(strings.ToUpper(string(p.PriceKind)))
		if !p.PriceKind.IsValid() {
			p.PriceKind = enums.PriceKindAgree
		}
		if p.PriceKind == enums.PriceKindAgree {
			p.Price = nil
		}
		if p.Tags == nil {
			p.Tags = []string{}
		}
		if p.PhotoURLs == nil {
			p.PhotoURLs = []string{}
		}
		if p.ID == "" {
			errs = multierr.Append(errs, fmt.Errorf("product %d: missing id", i))
		}
		if p.OwnerUserID == "" || p.ProfileID == "" {
			errs = multierr.Append(errs, fmt.Errorf("product %s: missing ownership", p.ID))
		}
	}

	for i := range doc.Favorites {
		f := &doc.Favorites[i]
		f.OwnerKind = enums.OwnerKind(strings.ToUpper(string(f.OwnerKind)))
		if f.OwnerKind != enums.OwnerKindUser {
			errs = multierr.Append(errs, fmt.Errorf("favorite %s: persisted owner kind must be USER", f.ID))
		}
	}

	if doc.Featured.ProductIDs == nil {
		doc.Featured.ProductIDs = []string{}
	}
	if doc.Featured.ProfileIDs == nil {
		doc.Featured.ProfileIDs = []string{}
	}

	return errs
}
