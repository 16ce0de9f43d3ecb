package models

import "github.com/emprendia/emprendia-backend/pkg/enums"

// User is an account record. MaxPublishedProducts follows the publish-gate
// convention: nil means the platform default, -1 unlimited, 0 none.
type User struct {
	ID                   string           `json:"id"`
	Email                string           `json:"email"`
	PasswordHash         string           `json:"password_hash"`
	Role                 enums.Role       `json:"role"`
	Status               enums.UserStatus `json:"status"`
	MaxPublishedProducts *int             `json:"max_published_products,omitempty"`
	CanViewStats         bool             `json:"can_view_stats"`
	MustChangePassword   bool             `json:"must_change_password"`
	ResetToken           string           `json:"reset_token,omitempty"`
	ResetTokenExpiresAt  string           `json:"reset_token_expires_at,omitempty"`
	CreatedAt            string           `json:"created_at"`
	UpdatedAt            string           `json:"updated_at"`
}
