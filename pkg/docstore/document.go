package docstore

import (
	"strings"
	"time"

	"github.com/emprendia/emprendia-backend/pkg/docstore/models"
)

// TimeLayout is the canonical timestamp format stored in the document:
// second precision, UTC, trailing Z. Lexicographic order equals
// chronological order, which the catalog sorts rely on.
const TimeLayout = "2006-01-02T15:04:05Z"

// NowISO formats the given instant in the canonical document format.
func NowISO(now time.Time) string {
	return now.UTC().Format(TimeLayout)
}

// Meta carries document bookkeeping fields.
type Meta struct {
	Version   int    `json:"version"`
	SeededAt  string `json:"seeded_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// Document is the whole persisted state of the marketplace.
type Document struct {
	Meta      Meta              `json:"meta"`
	Users     []models.User     `json:"users"`
	Profiles  []models.Profile  `json:"profiles"`
	Products  []models.Product  `json:"products"`
	Favorites []models.Favorite `json:"favorites"`
	Events    []models.Event    `json:"events"`
	Featured  models.Featured   `json:"featured"`
}

// NewDocument returns an empty document with initialized collections.
func NewDocument() *Document {
	return &Document{
		Meta:      Meta{Version: 1},
		Users:     []models.User{},
		Profiles:  []models.Profile{},
		Products:  []models.Product{},
		Favorites: []models.Favorite{},
		Events:    []models.Event{},
		Featured:  models.Featured{ProductIDs: []string{}, ProfileIDs: []string{}},
	}
}

// FindUser returns a pointer into the Users slice, or nil.
func (d *Document) FindUser(id string) *models.User {
	for i := range d.Users {
		if d.Users[i].ID == id {
			return &d.Users[i]
		}
	}
	return nil
}

// FindUserByEmail matches case-insensitively on the stored email.
func (d *Document) FindUserByEmail(email string) *models.User {
	needle := strings.ToLower(strings.TrimSpace(email))
	for i := range d.Users {
		if strings.ToLower(d.Users[i].Email) == needle {
			return &d.Users[i]
		}
	}
	return nil
}

// FindProfile returns a pointer into the Profiles slice, or nil.
func (d *Document) FindProfile(id string) *models.Profile {
	for i := range d.Profiles {
		if d.Profiles[i].ID == id {
			return &d.Profiles[i]
		}
	}
	return nil
}

// FindProfileByOwner returns the 1:1 profile for a user, or nil.
func (d *Document) FindProfileByOwner(userID string) *models.Profile {
	for i := range d.Profiles {
		if d.Profiles[i].OwnerUserID == userID {
			return &d.Profiles[i]
		}
	}
	return nil
}

// FindProduct returns a pointer into the Products slice, or nil.
func (d *Document) FindProduct(id string) *models.Product {
	for i := range d.Products {
		if d.Products[i].ID == id {
			return &d.Products[i]
		}
	}
	return nil
}
