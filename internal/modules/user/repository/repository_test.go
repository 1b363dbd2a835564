package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Goodnessmbakara/skillsverse/internal/entity"
	"github.com/Goodnessmbakara/skillsverse/internal/modules/user/repository"
	"github.com/Goodnessmbakara/skillsverse/internal/testutil"
	"github.com/Goodnessmbakara/skillsverse/pkg/apperror"
)

func newUser(username string) *entity.User {
	return &entity.User{
		Username:     username,
		PasswordHash: "hash",
		Name:         "Test " + username,
		Type:         entity.AccountCandidate,
	}
}

func TestUserRepository_CreateFillsDefaults(t *testing.T) {
	repo := repository.NewUserRepository(testutil.NewDB(t))
	ctx := context.Background()

	u := newUser("alice")
	require.NoError(t, repo.Create(ctx, u))
	assert.NotZero(t, u.ID)

	got, err := repo.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Reputation)
	assert.NotNil(t, got.Achievements)
	assert.Empty(t, got.Achievements)
	assert.NotNil(t, got.OnchainActivity)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestUserRepository_DuplicateUsername(t *testing.T) {
	repo := repository.NewUserRepository(testutil.NewDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newUser("alice")))
	err := repo.Create(ctx, newUser("alice"))

	assert.ErrorIs(t, err, apperror.ErrConflict)
	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestUserRepository_FindMissing(t *testing.T) {
	repo := repository.NewUserRepository(testutil.NewDB(t))
	ctx := context.Background()

	_, err := repo.FindByID(ctx, 42)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = repo.FindByUsername(ctx, "ghost")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestUserRepository_AddReputation(t *testing.T) {
	repo := repository.NewUserRepository(testutil.NewDB(t))
	ctx := context.Background()

	u := newUser("bob")
	require.NoError(t, repo.Create(ctx, u))

	got, err := repo.AddReputation(ctx, u.ID, 10)
	require.NoError(t, err)
	assert.Equal(t, 10, got.Reputation)

	got, err = repo.AddReputation(ctx, u.ID, -3)
	require.NoError(t, err)
	assert.Equal(t, 7, got.Reputation)

	_, err = repo.AddReputation(ctx, u.ID+100, 10)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestUserRepository_SetAvatar(t *testing.T) {
	repo := repository.NewUserRepository(testutil.NewDB(t))
	ctx := context.Background()

	u := newUser("carol")
	require.NoError(t, repo.Create(ctx, u))

	require.NoError(t, repo.SetAvatar(ctx, u.ID, "https://img.test/a.webp"))
	got, err := repo.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://img.test/a.webp", got.Avatar)

	assert.ErrorIs(t, repo.SetAvatar(ctx, 999, "x"), apperror.ErrNotFound)
}
