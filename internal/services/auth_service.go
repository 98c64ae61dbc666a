package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/skyops/aeroops-be/internal/auth"
	"github.com/skyops/aeroops-be/internal/mailer"
	"github.com/skyops/aeroops-be/internal/models"
	"github.com/skyops/aeroops-be/internal/store"
)

const usersTable = "users"

// AuthServiceProvider defines the interface for credential management.
type AuthServiceProvider interface {
	Register(ctx context.Context, username, email, password, fullName string) (models.User, error)
	Authenticate(ctx context.Context, username, password string) (models.User, error)
	RequestPasswordReset(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, token, newPassword string) error
	GetUserByID(ctx context.Context, id string) (models.User, error)
	BootstrapAdmin(ctx context.Context, password string) error
	SweepExpiredTokens(ctx context.Context) (int, error)
}

// AuthService owns user records, password verification and the reset-token
// lifecycle. Uniqueness of username/email and atomicity of the token-clear +
// password-set pair are pushed down to the Record Store, so multiple processes
// can serve requests against the same backend.
//
// Case policy: email is case-insensitive (normalized to lower case before
// storage and lookup); username is case-sensitive.
type AuthService struct {
	store  store.RecordStore
	sender mailer.TokenSender
	events EventServiceProvider
}

// NewAuthService creates a new AuthService. events may be nil.
func NewAuthService(st store.RecordStore, sender mailer.TokenSender, events EventServiceProvider) *AuthService {
	return &AuthService{store: st, sender: sender, events: events}
}

// Register creates a new account with role "user".
func (s *AuthService) Register(ctx context.Context, username, email, password, fullName string) (models.User, error) {
	if len(username) < 3 {
		return models.User{}, fmt.Errorf("%w: username must be at least 3 characters", ErrInvalidInput)
	}
	if len(password) < 6 {
		return models.User{}, fmt.Errorf("%w: password must be at least 6 characters", ErrInvalidInput)
	}
	if !strings.Contains(email, "@") {
		return models.User{}, fmt.Errorf("%w: email must contain @", ErrInvalidInput)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:        uuid.New().String(),
		Username:  username,
		Email:     strings.ToLower(email),
		FullName:  fullName,
		Role:      models.RoleUser,
		CreatedAt: time.Now().UTC(),
	}

	_, err = s.store.Insert(ctx, usersTable, store.Row{
		"id":            user.ID,
		"username":      user.Username,
		"email":         user.Email,
		"password_hash": hash,
		"full_name":     user.FullName,
		"role":          user.Role,
		"created_at":    timestamp(user.CreatedAt),
	})
	if err != nil {
		if ce, ok := store.IsConstraint(err); ok {
			switch ce.Column {
			case "username":
				return models.User{}, fmt.Errorf("%w: username already exists", ErrDuplicateIdentity)
			case "email":
				return models.User{}, fmt.Errorf("%w: email already exists", ErrDuplicateIdentity)
			default:
				return models.User{}, fmt.Errorf("%w: username or email already exists", ErrDuplicateIdentity)
			}
		}
		return models.User{}, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}

	s.logEvent(ctx, "auth.register", "info", fmt.Sprintf("Account '%s' registered.", user.Username), &user.Username)
	return user, nil
}

// Authenticate verifies a username/password pair. The error is the same for
// unknown user and wrong password so callers cannot enumerate accounts.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (models.User, error) {
	row, err := s.store.FindOne(ctx, usersTable, store.Row{"username": username})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Burn a comparison so this path costs the same as a mismatch.
			auth.CheckDummyPassword(password)
			return models.User{}, ErrInvalidCredentials
		}
		return models.User{}, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}

	if auth.CheckPassword(rowString(row, "password_hash"), password) != nil {
		return models.User{}, ErrInvalidCredentials
	}

	now := time.Now().UTC()
	err = s.store.Update(ctx, usersTable, store.Row{"id": rowString(row, "id")}, store.Row{
		"last_login": timestamp(now),
	})
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}

	user := userFromRow(row)
	user.LastLogin = &now
	s.logEvent(ctx, "auth.login", "info", fmt.Sprintf("User '%s' logged in.", user.Username), &user.Username)
	return user, nil
}

// RequestPasswordReset issues a fresh single-use token valid for one hour,
// superseding any prior pending token, and hands it to the delivery sender.
// The returned token is for the sender and the tests; HTTP handlers must not
// echo it to the requester.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	row, err := s.store.FindOne(ctx, usersTable, store.Row{"email": strings.ToLower(email)})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", fmt.Errorf("%w: no account with that email", ErrNotFound)
		}
		return "", fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}

	token, err := auth.NewResetToken()
	if err != nil {
		return "", fmt.Errorf("failed to generate reset token: %w", err)
	}
	expiry := time.Now().UTC().Add(auth.ResetTokenTTL)

	err = s.store.Update(ctx, usersTable, store.Row{"id": rowString(row, "id")}, store.Row{
		"reset_token":        token,
		"reset_token_expiry": timestamp(expiry),
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}

	if s.sender != nil {
		if err := s.sender.SendResetToken(rowString(row, "email"), token); err != nil {
			// The token is stored and valid; delivery failure is not fatal.
			log.Warn().Err(err).Msg("Failed to deliver reset token")
		}
	}

	username := rowString(row, "username")
	s.logEvent(ctx, "auth.reset.request", "info", fmt.Sprintf("Password reset requested for '%s'.", username), &username)
	return token, nil
}

// ResetPassword consumes a reset token and sets a new password. The password
// write and the token clear happen in one atomic store update, so a crash can
// never leave a stale valid token next to a changed password. A token found
// past its expiry is cleared on discovery and can never be replayed.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if len(newPassword) < 6 {
		return fmt.Errorf("%w: password must be at least 6 characters", ErrInvalidInput)
	}

	row, err := s.store.FindOne(ctx, usersTable, store.Row{"reset_token": token})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrInvalidToken
		}
		return fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}

	id := rowString(row, "id")
	expiry := rowTimePtr(row, "reset_token_expiry")
	if expiry == nil || time.Now().UTC().After(*expiry) {
		if err := s.clearResetToken(ctx, id); err != nil {
			return err
		}
		return ErrTokenExpired
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	err = s.store.Update(ctx, usersTable, store.Row{"id": id}, store.Row{
		"password_hash":      hash,
		"reset_token":        nil,
		"reset_token_expiry": nil,
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}

	username := rowString(row, "username")
	s.logEvent(ctx, "auth.reset.success", "info", fmt.Sprintf("Password reset completed for '%s'.", username), &username)
	return nil
}

// GetUserByID retrieves a single user by their ID.
func (s *AuthService) GetUserByID(ctx context.Context, id string) (models.User, error) {
	row, err := s.store.FindOne(ctx, usersTable, store.Row{"id": id})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.User{}, fmt.Errorf("%w: user %s", ErrNotFound, id)
		}
		return models.User{}, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	return userFromRow(row), nil
}

// BootstrapAdmin seeds the first admin account with the configured password.
// A no-op when the password is empty or an admin already exists.
func (s *AuthService) BootstrapAdmin(ctx context.Context, password string) error {
	if password == "" {
		return nil
	}
	_, err := s.store.FindOne(ctx, usersTable, store.Row{"role": models.RoleAdmin})
	if err == nil {
		return nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	_, err = s.store.Insert(ctx, usersTable, store.Row{
		"id":            uuid.New().String(),
		"username":      "admin",
		"email":         "admin@aeroops.local",
		"password_hash": hash,
		"full_name":     "Administrator",
		"role":          models.RoleAdmin,
		"created_at":    timestamp(time.Now().UTC()),
	})
	if err != nil {
		if _, ok := store.IsConstraint(err); ok {
			// Lost a race with another process bootstrapping; fine.
			return nil
		}
		return fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	log.Info().Msg("Seeded bootstrap admin account")
	return nil
}

// SweepExpiredTokens clears reset tokens whose expiry has passed, returning
// how many were cleared. Run periodically by the background jobs.
func (s *AuthService) SweepExpiredTokens(ctx context.Context) (int, error) {
	rows, err := s.store.Find(ctx, usersTable, nil, 0)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}

	now := time.Now().UTC()
	cleared := 0
	for _, row := range rows {
		if rowStringPtr(row, "reset_token") == nil {
			continue
		}
		expiry := rowTimePtr(row, "reset_token_expiry")
		if expiry != nil && now.Before(*expiry) {
			continue
		}
		if err := s.clearResetToken(ctx, rowString(row, "id")); err != nil {
			return cleared, err
		}
		cleared++
	}
	return cleared, nil
}

func (s *AuthService) clearResetToken(ctx context.Context, id string) error {
	err := s.store.Update(ctx, usersTable, store.Row{"id": id}, store.Row{
		"reset_token":        nil,
		"reset_token_expiry": nil,
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	return nil
}

func (s *AuthService) logEvent(ctx context.Context, eventType, level, message string, actor *string) {
	if s.events == nil {
		return
	}
	if err := s.events.CreateEvent(ctx, eventType, level, message, actor); err != nil {
		log.Warn().Err(err).Str("type", eventType).Msg("Failed to record event")
	}
}

// userFromRow maps a store row onto the public user fields.
func userFromRow(row store.Row) models.User {
	return models.User{
		ID:               rowString(row, "id"),
		Username:         rowString(row, "username"),
		Email:            rowString(row, "email"),
		FullName:         rowString(row, "full_name"),
		Role:             rowString(row, "role"),
		LastLogin:        rowTimePtr(row, "last_login"),
		ResetToken:       rowStringPtr(row, "reset_token"),
		ResetTokenExpiry: rowTimePtr(row, "reset_token_expiry"),
		CreatedAt:        rowTime(row, "created_at"),
	}
}
