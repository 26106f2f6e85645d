package server

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/interview-prep/internal/config"
	"github.com/jonathan/interview-prep/internal/db"
	"github.com/jonathan/interview-prep/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublicUser(t *testing.T) {
	t.Run("strips password hash", func(t *testing.T) {
		now := time.Now()
		u := &db.User{
			ID:           uuid.New(),
			Name:         "Ada",
			Email:        "ada@example.com",
			PasswordHash: "secret-hash",
			PasswordSet:  true,
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		got := publicUser(u)
		require.NotNil(t, got)
		assert.Equal(t, u.ID, got.ID)
		assert.Equal(t, u.Name, got.Name)
		assert.Equal(t, u.Email, got.Email)
		assert.True(t, got.PasswordSet)
	})

	t.Run("nil user", func(t *testing.T) {
		assert.Nil(t, publicUser(nil))
	})
}

func TestUserService_LoginRejectsUnsetPassword(t *testing.T) {
	store := newMockStore()
	svc := NewUserService(store, &config.PasswordConfig{BcryptCost: 10})

	// User exists but never completed password setup.
	id, err := store.CreateUser(context.Background(), "Ada", "ada@example.com")
	require.NoError(t, err)
	require.False(t, store.users[id].PasswordSet)

	_, err = svc.Login(context.Background(), &types.LoginRequest{Email: "ada@example.com", Password: "anything"})
	assert.IsType(t, &ErrInvalidCredentials{}, err)
}
