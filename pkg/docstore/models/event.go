package models

import "github.com/emprendia/emprendia-backend/pkg/enums"

// Event is one analytics fact. The collection is bounded; oldest entries are
// dropped first.
type Event struct {
	TS        string            `json:"ts"`
	Type      enums.EventType   `json:"type"`
	UserID    string            `json:"user_id,omitempty"`
	AnonID    string            `json:"anon_id,omitempty"`
	ProductID string            `json:"product_id,omitempty"`
	ProfileID string            `json:"profile_id,omitempty"`
	Meta      map[string]string `json:"meta,omitempty"`
}
