package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/skyops/aeroops-be/internal/models"
	"github.com/skyops/aeroops-be/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureSender records the last delivered reset token instead of sending it.
type captureSender struct {
	email string
	token string
	calls int
}

func (c *captureSender) SendResetToken(email, token string) error {
	c.email = email
	c.token = token
	c.calls++
	return nil
}

func newAuthFixture(t *testing.T) (*AuthService, *store.Memory, *captureSender) {
	t.Helper()
	st := store.NewMemory()
	sender := &captureSender{}
	return NewAuthService(st, sender, nil), st, sender
}

func TestRegisterAndAuthenticate(t *testing.T) {
	svc, st, _ := newAuthFixture(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "jdoe", "JDoe@Example.com", "secret123", "John Doe")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "jdoe", user.Username)
	assert.Equal(t, "jdoe@example.com", user.Email, "email should be stored lower-cased")
	assert.Equal(t, models.RoleUser, user.Role)

	// The stored credential must be a salted digest, never the password.
	row, err := st.FindOne(ctx, "users", store.Row{"username": "jdoe"})
	require.NoError(t, err)
	hash, _ := row["password_hash"].(string)
	assert.NotEqual(t, "secret123", hash)
	assert.True(t, strings.HasPrefix(hash, "$2"), "expected a bcrypt digest, got %q", hash)

	authed, err := svc.Authenticate(ctx, "jdoe", "secret123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, authed.ID)
	require.NotNil(t, authed.LastLogin)
	assert.WithinDuration(t, time.Now().UTC(), *authed.LastLogin, 5*time.Second)

	_, err = svc.Authenticate(ctx, "jdoe", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterValidation(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		username string
		email    string
		password string
	}{
		{"short username", "jo", "jo@example.com", "secret123"},
		{"short password", "jdoe", "jdoe@example.com", "abc"},
		{"malformed email", "jdoe", "not-an-email", "secret123"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.username, tt.email, tt.password, "")
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestRegisterDuplicateIdentity(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "jdoe", "jdoe@example.com", "secret123", "John Doe")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "jdoe", "other@example.com", "secret123", "")
	require.ErrorIs(t, err, ErrDuplicateIdentity)
	assert.Contains(t, err.Error(), "username")

	_, err = svc.Register(ctx, "jdoe2", "jdoe@example.com", "secret123", "")
	require.ErrorIs(t, err, ErrDuplicateIdentity)
	assert.Contains(t, err.Error(), "email")
}

// Unknown account and wrong password must be indistinguishable to the caller.
func TestAuthenticateDoesNotEnumerateAccounts(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "jdoe", "jdoe@example.com", "secret123", "")
	require.NoError(t, err)

	_, errUnknown := svc.Authenticate(ctx, "nobody", "whatever")
	_, errWrongPw := svc.Authenticate(ctx, "jdoe", "whatever")

	assert.ErrorIs(t, errUnknown, ErrInvalidCredentials)
	assert.ErrorIs(t, errWrongPw, ErrInvalidCredentials)
	assert.Equal(t, errUnknown.Error(), errWrongPw.Error())
}

func TestUsernameIsCaseSensitive(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "jdoe", "jdoe@example.com", "secret123", "")
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, "JDoe", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestPasswordResetFlow(t *testing.T) {
	svc, st, sender := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "jdoe", "jdoe@example.com", "secret123", "John Doe")
	require.NoError(t, err)

	// Lookup is case-insensitive on email.
	token, err := svc.RequestPasswordReset(ctx, "JDOE@example.com")
	require.NoError(t, err)
	assert.Len(t, token, 43, "expected a 256-bit URL-safe token")
	assert.Equal(t, 1, sender.calls)
	assert.Equal(t, "jdoe@example.com", sender.email)
	assert.Equal(t, token, sender.token)

	require.NoError(t, svc.ResetPassword(ctx, token, "newsecret456"))

	// Old password is gone, new one works.
	_, err = svc.Authenticate(ctx, "jdoe", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Authenticate(ctx, "jdoe", "newsecret456")
	assert.NoError(t, err)

	// Token is single-use: cleared from the record, replay rejected.
	row, err := st.FindOne(ctx, "users", store.Row{"username": "jdoe"})
	require.NoError(t, err)
	assert.Nil(t, row["reset_token"])
	assert.Nil(t, row["reset_token_expiry"])
	assert.ErrorIs(t, svc.ResetPassword(ctx, token, "another789"), ErrInvalidToken)
}

func TestRequestPasswordResetUnknownEmail(t *testing.T) {
	svc, _, sender := newAuthFixture(t)

	_, err := svc.RequestPasswordReset(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Zero(t, sender.calls)
}

func TestResetPasswordRejectsShortPassword(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "jdoe", "jdoe@example.com", "secret123", "")
	require.NoError(t, err)
	token, err := svc.RequestPasswordReset(ctx, "jdoe@example.com")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.ResetPassword(ctx, token, "abc"), ErrInvalidInput)

	// The token survives a rejected password and can still be used.
	assert.NoError(t, svc.ResetPassword(ctx, token, "longenough"))
}

func TestResetPasswordExpiredTokenClearedOnDiscovery(t *testing.T) {
	svc, st, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "jdoe", "jdoe@example.com", "secret123", "")
	require.NoError(t, err)
	token, err := svc.RequestPasswordReset(ctx, "jdoe@example.com")
	require.NoError(t, err)

	// Age the token past its expiry.
	past := time.Now().UTC().Add(-time.Minute)
	require.NoError(t, st.Update(ctx, "users", store.Row{"username": "jdoe"}, store.Row{
		"reset_token_expiry": timestamp(past),
	}))

	assert.ErrorIs(t, svc.ResetPassword(ctx, token, "newsecret456"), ErrTokenExpired)

	// Discovery cleared the token, so a replay is now merely unknown.
	row, err := st.FindOne(ctx, "users", store.Row{"username": "jdoe"})
	require.NoError(t, err)
	assert.Nil(t, row["reset_token"])
	assert.ErrorIs(t, svc.ResetPassword(ctx, token, "newsecret456"), ErrInvalidToken)

	// The password never changed.
	_, err = svc.Authenticate(ctx, "jdoe", "secret123")
	assert.NoError(t, err)
}

func TestSecondResetRequestSupersedesFirst(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "jdoe", "jdoe@example.com", "secret123", "")
	require.NoError(t, err)

	first, err := svc.RequestPasswordReset(ctx, "jdoe@example.com")
	require.NoError(t, err)
	second, err := svc.RequestPasswordReset(ctx, "jdoe@example.com")
	require.NoError(t, err)
	require.NotEqual(t, first, second)

	assert.ErrorIs(t, svc.ResetPassword(ctx, first, "newsecret456"), ErrInvalidToken)
	assert.NoError(t, svc.ResetPassword(ctx, second, "newsecret456"))
}

func TestSweepExpiredTokens(t *testing.T) {
	svc, st, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "stale", "stale@example.com", "secret123", "")
	require.NoError(t, err)
	_, err = svc.Register(ctx, "fresh", "fresh@example.com", "secret123", "")
	require.NoError(t, err)

	_, err = svc.RequestPasswordReset(ctx, "stale@example.com")
	require.NoError(t, err)
	freshToken, err := svc.RequestPasswordReset(ctx, "fresh@example.com")
	require.NoError(t, err)

	past := time.Now().UTC().Add(-time.Minute)
	require.NoError(t, st.Update(ctx, "users", store.Row{"username": "stale"}, store.Row{
		"reset_token_expiry": timestamp(past),
	}))

	cleared, err := svc.SweepExpiredTokens(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, cleared)

	// The pending token was untouched by the sweep.
	assert.NoError(t, svc.ResetPassword(ctx, freshToken, "newsecret456"))

	// Nothing left to clear.
	cleared, err = svc.SweepExpiredTokens(ctx)
	require.NoError(t, err)
	assert.Zero(t, cleared)
}

func TestGetUserByID(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "jdoe", "jdoe@example.com", "secret123", "John Doe")
	require.NoError(t, err)

	got, err := svc.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "jdoe", got.Username)
	assert.Equal(t, "John Doe", got.FullName)

	_, err = svc.GetUserByID(ctx, "missing-id")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBootstrapAdmin(t *testing.T) {
	svc, st, _ := newAuthFixture(t)
	ctx := context.Background()

	// No password configured: nothing is seeded.
	require.NoError(t, svc.BootstrapAdmin(ctx, ""))
	_, err := st.FindOne(ctx, "users", store.Row{"role": models.RoleAdmin})
	assert.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, svc.BootstrapAdmin(ctx, "supersecret"))
	admin, err := svc.Authenticate(ctx, "admin", "supersecret")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, admin.Role)

	// Idempotent: a second bootstrap leaves the existing admin alone.
	require.NoError(t, svc.BootstrapAdmin(ctx, "otherpassword"))
	admins, err := st.Find(ctx, "users", store.Row{"role": models.RoleAdmin}, 0)
	require.NoError(t, err)
	assert.Len(t, admins, 1)
}
