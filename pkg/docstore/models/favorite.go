package models

import "github.com/emprendia/emprendia-backend/pkg/enums"

// Favorite links an owner to a saved product. Only USER favorites are ever
// persisted; visitor favorites live in the session and vanish with it.
type Favorite struct {
	ID        string          `json:"id"`
	OwnerKind enums.OwnerKind `json:"owner_kind"`
	OwnerID   string          `json:"owner_id"`
	ProductID string          `json:"product_id"`
	CreatedAt string          `json:"created_at"`
}
