package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"strings"
	"time"

	"github.com/emprendia/emprendia-backend/pkg/auth"
	"github.com/emprendia/emprendia-backend/pkg/config"
	"github.com/emprendia/emprendia-backend/pkg/docstore"
	"github.com/emprendia/emprendia-backend/pkg/docstore/models"
	"github.com/emprendia/emprendia-backend/pkg/enums"
	pkgerrors "github.com/emprendia/emprendia-backend/pkg/errors"
	"github.com/emprendia/emprendia-backend/pkg/security"
	"github.com/google/uuid"
)

const resetTokenBytes = 5 // 10 hex characters

// SessionStarter tracks live sessions by JWT ID so logout can revoke them.
type SessionStarter interface {
	Begin(sessionID, userID string) error
	Revoke(ctx context.Context, sessionID string) error
}

// RegisterInput is a new entrepreneur signup.
type RegisterInput struct {
	Email        string
	Password     string
	BusinessName string
	City         string
}

// LoginResult is what a successful login hands to the client.
type LoginResult struct {
	Token              string           `json:"token"`
	UserID             string           `json:"user_id"`
	Role               enums.Role       `json:"role"`
	Status             enums.UserStatus `json:"status"`
	MustChangePassword bool             `json:"must_change_password"`
}

// Service handles account lifecycle: signup, login, password management.
type Service interface {
	Register(ctx context.Context, in RegisterInput) (string, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Logout(ctx context.Context, sessionID string) error
	ChangePassword(ctx context.Context, userID, current, next string) error
	RequestPasswordReset(ctx context.Context, email string) (string, error)
	ConfirmPasswordReset(ctx context.Context, token, newPassword string) error
}

type service struct {
	store    docstore.Store
	sessions SessionStarter
	jwtCfg   config.JWTConfig
	pwCfg    config.PasswordConfig
	clock    func() time.Time
}

// NewService builds the auth service.
func NewService(store docstore.Store, sessions SessionStarter, jwtCfg config.JWTConfig, pwCfg config.PasswordConfig) (Service, error) {
	if store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "store is required")
	}
	if sessions == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session starter is required")
	}
	return &service{store: store, sessions: sessions, jwtCfg: jwtCfg, pwCfg: pwCfg, clock: time.Now}, nil
}

// Register creates a pending account with an unapproved storefront. The new
// entrepreneur stays off the public catalog until an admin approves them.
func (s *service) Register(ctx context.Context, in RegisterInput) (string, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || !strings.Contains(email, "@") {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "a valid email is required")
	}
	if len(in.Password) < s.minPasswordLength() {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "password is too short")
	}
	if strings.TrimSpace(in.BusinessName) == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "business name is required")
	}

	hash, err := security.HashPassword(in.Password, s.pwCfg)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hashing password")
	}

	userID := uuid.NewString()
	err = s.store.Mutate(ctx, func(doc *docstore.Document) error {
		if doc.FindUserByEmail(email) != nil {
			return pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
		}
		now := docstore.NowISO(s.clock())
		doc.Users = append(doc.Users, models.User{
			ID:           userID,
			Email:        email,
			PasswordHash: hash,
			Role:         enums.RoleEmprendedor,
			Status:       enums.UserStatusPending,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
		doc.Profiles = append(doc.Profiles, models.Profile{
			ID:           uuid.NewString(),
			OwnerUserID:  userID,
			BusinessName: strings.TrimSpace(in.BusinessName),
			City:         strings.TrimSpace(in.City),
			Links:        map[enums.LinkChannel]string{},
			IsApproved:   false,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
		return nil
	})
	if err != nil {
		return "", err
	}
	return userID, nil
}

// Login checks credentials and mints an access token. Blocked accounts are
// rejected; pending accounts may log in to finish their storefront.
func (s *service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	user := doc.FindUserByEmail(strings.TrimSpace(email))
	if user == nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}
	ok, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil || !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}
	if user.Status == enums.UserStatusBlocked {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "account is blocked")
	}

	jti := uuid.NewString()
	token, err := auth.MintAccessToken(s.jwtCfg, s.clock(), auth.AccessTokenPayload{
		UserID: user.ID,
		Role:   user.Role,
		JTI:    jti,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "minting access token")
	}
	if err := s.sessions.Begin(jti, user.ID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "starting session")
	}

	return &LoginResult{
		Token:              token,
		UserID:             user.ID,
		Role:               user.Role,
		Status:             user.Status,
		MustChangePassword: user.MustChangePassword,
	}, nil
}

// Logout revokes the live session for the token's JWT ID.
func (s *service) Logout(ctx context.Context, sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	return s.sessions.Revoke(ctx, sessionID)
}

// ChangePassword rotates the password after verifying the current one and
// clears any forced-change flag.
func (s *service) ChangePassword(ctx context.Context, userID, current, next string) error {
	if len(next) < s.minPasswordLength() {
		return pkgerrors.New(pkgerrors.CodeValidation, "new password is too short")
	}
	hash, err := security.HashPassword(next, s.pwCfg)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hashing password")
	}

	return s.store.Mutate(ctx, func(doc *docstore.Document) error {
		user := doc.FindUser(userID)
		if user == nil {
			return pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		ok, err := security.VerifyPassword(current, user.PasswordHash)
		if err != nil || !ok {
			return pkgerrors.New(pkgerrors.CodeUnauthorized, "current password is incorrect")
		}
		user.PasswordHash = hash
		user.MustChangePassword = false
		user.UpdatedAt = docstore.NowISO(s.clock())
		return nil
	})
}

// RequestPasswordReset issues a short-lived token for the account. The
// token is returned to the caller; delivery is out of band. Unknown emails
// produce the same error as invalid ones to avoid account enumeration via
// support flows.
func (s *service) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	buf := make([]byte, resetTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generating reset token")
	}
	token := hex.EncodeToString(buf)

	err := s.store.Mutate(ctx, func(doc *docstore.Document) error {
		user := doc.FindUserByEmail(strings.TrimSpace(email))
		if user == nil {
			return pkgerrors.New(pkgerrors.CodeNotFound, "account not found")
		}
		user.ResetToken = token
		user.ResetTokenExpiresAt = docstore.NowISO(s.clock().Add(s.pwCfg.ResetTokenTTL()))
		user.UpdatedAt = docstore.NowISO(s.clock())
		return nil
	})
	if err != nil {
		return "", err
	}
	return token, nil
}

// ConfirmPasswordReset redeems a reset token and sets the new password.
func (s *service) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "reset token is required")
	}
	if len(newPassword) < s.minPasswordLength() {
		return pkgerrors.New(pkgerrors.CodeValidation, "new password is too short")
	}
	hash, err := security.HashPassword(newPassword, s.pwCfg)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hashing password")
	}

	return s.store.Mutate(ctx, func(doc *docstore.Document) error {
		now := docstore.NowISO(s.clock())
		for i := range doc.Users {
			user := &doc.Users[i]
			if user.ResetToken == "" || user.ResetToken != token {
				continue
			}
			if user.ResetTokenExpiresAt <= now {
				return pkgerrors.New(pkgerrors.CodeStateConflict, "reset token expired")
			}
			user.PasswordHash = hash
			user.ResetToken = ""
			user.ResetTokenExpiresAt = ""
			user.MustChangePassword = false
			user.UpdatedAt = now
			return nil
		}
		return pkgerrors.New(pkgerrors.CodeNotFound, "reset token not found")
	})
}

func (s *service) minPasswordLength() int {
	if s.pwCfg.MinLength <= 0 {
		return 8
	}
	return s.pwCfg.MinLength
}
