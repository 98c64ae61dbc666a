package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryInsertAndFind(t *testing.T) {
	st := NewMemory()
	ctx := context.Background()

	id, err := st.Insert(ctx, "flights", Row{"flight_number": "PK301", "flight_status": "Scheduled"})
	require.NoError(t, err)
	assert.NotEmpty(t, id, "missing id should be generated")

	_, err = st.Insert(ctx, "flights", Row{"id": "f2", "flight_number": "PK302", "flight_status": "Scheduled"})
	require.NoError(t, err)

	row, err := st.FindOne(ctx, "flights", Row{"flight_number": "PK301"})
	require.NoError(t, err)
	assert.Equal(t, id, row["id"])

	_, err = st.FindOne(ctx, "flights", Row{"flight_number": "PK999"})
	assert.ErrorIs(t, err, ErrNotFound)

	rows, err := st.Find(ctx, "flights", Row{"flight_status": "Scheduled"}, 0)
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	rows, err = st.Find(ctx, "flights", nil, 1)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestMemoryUniqueConstraint(t *testing.T) {
	st := NewMemory()
	ctx := context.Background()

	_, err := st.Insert(ctx, "users", Row{"username": "jdoe", "email": "jdoe@example.com"})
	require.NoError(t, err)

	_, err = st.Insert(ctx, "users", Row{"username": "jdoe", "email": "other@example.com"})
	ce, ok := IsConstraint(err)
	require.True(t, ok)
	assert.Equal(t, "users", ce.Table)
	assert.Equal(t, "username", ce.Column)

	_, err = st.Insert(ctx, "users", Row{"username": "jdoe2", "email": "jdoe@example.com"})
	ce, ok = IsConstraint(err)
	require.True(t, ok)
	assert.Equal(t, "email", ce.Column)

	// Non-unique tables accept duplicates freely.
	_, err = st.Insert(ctx, "flights", Row{"flight_number": "PK301"})
	require.NoError(t, err)
	_, err = st.Insert(ctx, "flights", Row{"flight_number": "PK301"})
	assert.NoError(t, err)
}

func TestMemoryUpdateEnforcesUniqueColumns(t *testing.T) {
	st := NewMemory()
	ctx := context.Background()

	_, err := st.Insert(ctx, "users", Row{"id": "u1", "username": "jdoe", "email": "jdoe@example.com"})
	require.NoError(t, err)
	_, err = st.Insert(ctx, "users", Row{"id": "u2", "username": "asmith", "email": "asmith@example.com"})
	require.NoError(t, err)

	err = st.Update(ctx, "users", Row{"id": "u2"}, Row{"email": "jdoe@example.com", "full_name": "Anna"})
	ce, ok := IsConstraint(err)
	require.True(t, ok)
	assert.Equal(t, "email", ce.Column)

	// A rejected update applies nothing.
	row, err := st.FindOne(ctx, "users", Row{"id": "u2"})
	require.NoError(t, err)
	assert.Equal(t, "asmith@example.com", row["email"])
	assert.Nil(t, row["full_name"])

	// Re-writing a row's own unique value is not a collision.
	require.NoError(t, st.Update(ctx, "users", Row{"id": "u2"}, Row{"email": "asmith@example.com"}))
	require.NoError(t, st.Update(ctx, "users", Row{"id": "u2"}, Row{"email": "anna@example.com"}))
}

func TestMemoryUpdateClearsNilColumns(t *testing.T) {
	st := NewMemory()
	ctx := context.Background()

	_, err := st.Insert(ctx, "users", Row{"username": "jdoe", "email": "jdoe@example.com", "reset_token": "tok"})
	require.NoError(t, err)

	err = st.Update(ctx, "users", Row{"username": "jdoe"}, Row{"reset_token": nil, "full_name": "John"})
	require.NoError(t, err)

	row, err := st.FindOne(ctx, "users", Row{"username": "jdoe"})
	require.NoError(t, err)
	assert.Nil(t, row["reset_token"])
	assert.Equal(t, "John", row["full_name"])

	// A cleared column no longer matches its old value.
	_, err = st.FindOne(ctx, "users", Row{"reset_token": "tok"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryDelete(t *testing.T) {
	st := NewMemory()
	ctx := context.Background()

	_, err := st.Insert(ctx, "flights", Row{"id": "f1", "flight_status": "Delayed"})
	require.NoError(t, err)
	_, err = st.Insert(ctx, "flights", Row{"id": "f2", "flight_status": "Arrived"})
	require.NoError(t, err)

	require.NoError(t, st.Delete(ctx, "flights", Row{"id": "f1"}))

	rows, err := st.Find(ctx, "flights", nil, 0)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "f2", rows[0]["id"])
}

func TestMemoryRowsAreCopied(t *testing.T) {
	st := NewMemory()
	ctx := context.Background()

	_, err := st.Insert(ctx, "flights", Row{"id": "f1", "flight_status": "Scheduled"})
	require.NoError(t, err)

	row, err := st.FindOne(ctx, "flights", Row{"id": "f1"})
	require.NoError(t, err)
	row["flight_status"] = "Tampered"

	again, err := st.FindOne(ctx, "flights", Row{"id": "f1"})
	require.NoError(t, err)
	assert.Equal(t, "Scheduled", again["flight_status"])
}
