package sqlxrepos

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lewisTech25code/lewis/core/user"
	"github.com/lewisTech25code/lewis/internal/testutil"
)

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(testutil.OpenDB(t))

	alice := testutil.CreateUser(t, repo, "alice", "s3cret-Pass", false, user.DefaultBalance)
	admin := testutil.CreateUser(t, repo, "admin", "admin123", true, 0)
	assert.NotZero(t, alice.ID)
	assert.Greater(t, admin.ID, alice.ID)

	t.Run("uniqueness", func(t *testing.T) {
		assert.Equal(t, user.ErrUsernameExists, repo.CheckUsernameUniqueness(ctx, "alice"))
		assert.NoError(t, repo.CheckUsernameUniqueness(ctx, "bob"))

		_, err := repo.CreateUser(ctx, user.User{Username: "alice", PasswordHash: []byte("x"), CreatedAt: alice.CreatedAt})
		assert.Equal(t, user.ErrUsernameExists, err)
	})

	t.Run("get", func(t *testing.T) {
		got, err := repo.GetUserByID(ctx, alice.ID)
		require.NoError(t, err)
		assert.Equal(t, "alice", got.Username)
		assert.Equal(t, user.DefaultBalance, got.Balance)
		assert.False(t, got.IsAdmin)
		assert.NoError(t, got.CheckPassword("s3cret-Pass"))

		got, err = repo.GetUserByUsername(ctx, "admin")
		require.NoError(t, err)
		assert.Equal(t, admin.ID, got.ID)
		assert.True(t, got.IsAdmin)

		_, err = repo.GetUserByID(ctx, 4242)
		assert.Equal(t, user.ErrNotFound, err)
		_, err = repo.GetUserByUsername(ctx, "ghost")
		assert.Equal(t, user.ErrNotFound, err)
	})

	t.Run("query all", func(t *testing.T) {
		users, err := repo.QueryAllUsers(ctx)
		require.NoError(t, err)
		require.Len(t, users, 2)
		assert.Equal(t, alice.ID, users[0].ID)
		assert.Equal(t, admin.ID, users[1].ID)
	})

	t.Run("update balance", func(t *testing.T) {
		got, err := repo.UpdateUserBalance(ctx, alice.ID, 0)
		require.NoError(t, err)
		assert.Zero(t, got.Balance)
		assert.Equal(t, "alice", got.Username)

		_, err = repo.UpdateUserBalance(ctx, 4242, 0)
		assert.Equal(t, user.ErrNotFound, err)
	})

	t.Run("update password", func(t *testing.T) {
		usr := user.User{}
		require.NoError(t, usr.SetPassword("n3w-Secret"))
		require.NoError(t, repo.UpdateUserPassword(ctx, alice.ID, usr.PasswordHash))

		got, err := repo.GetUserByID(ctx, alice.ID)
		require.NoError(t, err)
		assert.NoError(t, got.CheckPassword("n3w-Secret"))

		assert.Equal(t, user.ErrNotFound, repo.UpdateUserPassword(ctx, 4242, usr.PasswordHash))
	})
}

func TestResultRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewResultRepository(testutil.OpenDB(t))

	math := testutil.CreateResult(t, repo, 1, "Math", 85)
	testutil.CreateResult(t, repo, 2, "Math", 30)
	dup := testutil.CreateResult(t, repo, 1, "Math", 60)
	orphan := testutil.CreateResult(t, repo, 999, "Physics", 70)

	got, err := repo.QueryResultsByStudent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, math.ID, got[0].ID)
	assert.Equal(t, 85, got[0].Marks)
	assert.Equal(t, dup.ID, got[1].ID)
	assert.Equal(t, 60, got[1].Marks)

	got, err = repo.QueryResultsByStudent(ctx, 999)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, orphan.ID, got[0].ID)

	got, err = repo.QueryResultsByStudent(ctx, 3)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestIsUniqueViolation(t *testing.T) {
	assert.False(t, isUniqueViolation(nil))
	assert.False(t, isUniqueViolation(assert.AnError))
}
