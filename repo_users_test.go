package authkit_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abeldan/authkit"
)

func createUser(t *testing.T, store *authkit.BunUserStore, email string, roles ...string) *authkit.User {
	t.Helper()

	user := &authkit.User{Email: email}
	for _, name := range roles {
		user.Roles = append(user.Roles, &authkit.Role{Name: name})
	}

	created, err := store.Create(context.Background(), user, "SuperSecret8")
	require.NoError(t, err)
	return created
}

func TestUserStore_Create(t *testing.T) {
	t.Run("derives the username and assigns the default role", func(t *testing.T) {
		store := newTestStore(t)

		created := createUser(t, store, "peter.parker@test.com")

		assert.NotEqual(t, uuid.Nil, created.ID)
		assert.Equal(t, "peter.parker", created.Username)
		assert.Equal(t, []string{authkit.RoleUser}, created.RoleNames())
		assert.NotEmpty(t, created.PasswordHash)
		assert.NotEqual(t, "SuperSecret8", created.PasswordHash)
	})

	t.Run("keeps explicitly requested roles", func(t *testing.T) {
		store := newTestStore(t)

		created := createUser(t, store, "admin@test.com", authkit.RoleAdmin)

		roles, err := store.ListRoles(context.Background(), created.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{authkit.RoleAdmin}, roles)
	})

	t.Run("reuses an existing role row", func(t *testing.T) {
		store := newTestStore(t)

		first := createUser(t, store, "first@test.com")
		second := createUser(t, store, "second@test.com")

		require.Len(t, first.Roles, 1)
		require.Len(t, second.Roles, 1)
		assert.Equal(t, first.Roles[0].ID, second.Roles[0].ID)
	})

	t.Run("rejects duplicate emails", func(t *testing.T) {
		store := newTestStore(t)
		createUser(t, store, "dup@test.com")

		_, err := store.Create(context.Background(), &authkit.User{Email: "dup@test.com"}, "OtherSecret8")
		assert.ErrorIs(t, err, authkit.ErrDuplicateEmail)
	})

	t.Run("rejects empty passwords", func(t *testing.T) {
		store := newTestStore(t)

		_, err := store.Create(context.Background(), &authkit.User{Email: "empty@test.com"}, "")
		assert.Error(t, err)
	})
}

func TestUserStore_Find(t *testing.T) {
	store := newTestStore(t)
	created := createUser(t, store, "peter.parker@test.com")

	t.Run("by email loads roles", func(t *testing.T) {
		user, err := store.FindByEmail(context.Background(), "peter.parker@test.com")
		require.NoError(t, err)
		assert.Equal(t, created.ID, user.ID)
		assert.Equal(t, []string{authkit.RoleUser}, user.RoleNames())
	})

	t.Run("by id loads roles", func(t *testing.T) {
		user, err := store.FindByID(context.Background(), created.ID.String())
		require.NoError(t, err)
		assert.Equal(t, "peter.parker@test.com", user.Email)
		assert.Equal(t, []string{authkit.RoleUser}, user.RoleNames())
	})

	t.Run("unknown email is not found", func(t *testing.T) {
		_, err := store.FindByEmail(context.Background(), "nobody@test.com")
		assert.ErrorIs(t, err, authkit.ErrIdentityNotFound)
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		_, err := store.FindByID(context.Background(), uuid.NewString())
		assert.ErrorIs(t, err, authkit.ErrIdentityNotFound)
	})

	t.Run("unparseable id is not found rather than a server fault", func(t *testing.T) {
		_, err := store.FindByID(context.Background(), "not-a-uuid")
		assert.ErrorIs(t, err, authkit.ErrIdentityNotFound)
	})
}

func TestUserStore_VerifyPassword(t *testing.T) {
	store := newTestStore(t)
	created := createUser(t, store, "peter.parker@test.com")

	t.Run("accepts the registered password", func(t *testing.T) {
		assert.NoError(t, store.VerifyPassword(context.Background(), created, "SuperSecret8"))
	})

	t.Run("rejects a wrong password", func(t *testing.T) {
		err := store.VerifyPassword(context.Background(), created, "WrongSecret8")
		assert.ErrorIs(t, err, authkit.ErrMismatchedHashAndPassword)
	})

	t.Run("rejects a nil user", func(t *testing.T) {
		err := store.VerifyPassword(context.Background(), nil, "SuperSecret8")
		assert.ErrorIs(t, err, authkit.ErrIdentityNotFound)
	})
}

func TestUserStore_List(t *testing.T) {
	store := newTestStore(t)
	createUser(t, store, "first@test.com")
	createUser(t, store, "second@test.com")

	users, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "first@test.com", users[0].Email)
	assert.Equal(t, "second@test.com", users[1].Email)
}

func TestUserStore_Update(t *testing.T) {
	t.Run("persists profile names only", func(t *testing.T) {
		store := newTestStore(t)
		created := createUser(t, store, "peter.parker@test.com")

		created.FirstName = "Peter"
		created.LastName = "Parker"
		created.Email = "ignored@test.com"

		updated, err := store.Update(context.Background(), created)
		require.NoError(t, err)

		assert.Equal(t, "Peter", updated.FirstName)
		assert.Equal(t, "Parker", updated.LastName)
		assert.Equal(t, "peter.parker@test.com", updated.Email)
		assert.NotNil(t, updated.UpdatedAt)
	})

	t.Run("unknown user is not found", func(t *testing.T) {
		store := newTestStore(t)

		_, err := store.Update(context.Background(), &authkit.User{ID: uuid.New()})
		assert.ErrorIs(t, err, authkit.ErrIdentityNotFound)
	})
}
