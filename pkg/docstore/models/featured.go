package models

// Featured holds the admin-curated highlight lists shown on the home page.
type Featured struct {
	ProductIDs []string `json:"product_ids"`
	ProfileIDs []string `json:"profile_ids"`
}
