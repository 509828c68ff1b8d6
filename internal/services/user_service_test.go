package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adanyl0v/go-task-manager/internal/models"
)

func TestUserServiceList(t *testing.T) {
	st := newFakeState()
	st.users["u1"] = &models.User{
		ID:       "u1",
		Username: "bob",
		Email:    "bob@example.com",
		Password: "$argon2id$...",
	}
	st.users["u2"] = &models.User{
		ID:       "u2",
		Username: "alice",
		Email:    "alice@example.com",
		Password: "$argon2id$...",
	}

	users := NewUserService(zerolog.Nop(), &fakeUserStore{st: st})

	listed, err := users.List(context.Background())
	require.NoError(t, err)
	require.Len(t, listed, 2)

	assert.Equal(t, "alice", listed[0].Username)
	assert.Equal(t, "bob", listed[1].Username)
	for _, user := range listed {
		assert.Empty(t, user.Password)
	}
}
