package auth

import (
	"testing"

	"github.com/skyops/aeroops-be/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestSessionLifecycle(t *testing.T) {
	s := NewSession()

	_, ok := s.Current()
	assert.False(t, ok, "fresh session must be anonymous")

	s.Establish(models.User{ID: "u1", Username: "jdoe"})
	user, ok := s.Current()
	assert.True(t, ok)
	assert.Equal(t, "jdoe", user.Username)

	s.Terminate()
	_, ok = s.Current()
	assert.False(t, ok)
}

func TestSessionsAreIndependent(t *testing.T) {
	a := NewSession()
	b := NewSession()

	a.Establish(models.User{ID: "u1", Username: "jdoe"})

	_, ok := b.Current()
	assert.False(t, ok, "establishing one session must not touch another")

	b.Establish(models.User{ID: "u2", Username: "asmith"})
	a.Terminate()

	user, ok := b.Current()
	assert.True(t, ok)
	assert.Equal(t, "asmith", user.Username)
}
