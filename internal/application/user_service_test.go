package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/fitbalance-api/internal/domain/entity"
	repo "github.com/oksasatya/fitbalance-api/internal/domain/repository"
	"github.com/oksasatya/fitbalance-api/pkg/helpers"
)

func TestChangeRoleUpdatesLiveSession(t *testing.T) {
	f := newFixture(t)
	f.register(t, "ana@example.com")
	u, _, err := f.auth.Login(f.ctx, "ana@example.com", "password123")
	require.NoError(t, err)

	require.NoError(t, f.user.ChangeRole(f.ctx, "ana@example.com", entity.RoleAdmin))

	stored, err := f.user.GetProfile(f.ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsAdmin())

	sess, err := f.sessions.Get(f.ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "admin", sess.Role)

	require.NoError(t, f.user.ChangeRole(f.ctx, "ana@example.com", entity.RoleUser))
	sess, _ = f.sessions.Get(f.ctx, u.ID)
	assert.Equal(t, "user", sess.Role)
}

func TestChangeRoleUnknownEmail(t *testing.T) {
	f := newFixture(t)
	err := f.user.ChangeRole(f.ctx, "ghost@example.com", entity.RoleAdmin)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestChangeRoleWithoutSessionDoesNotCreateOne(t *testing.T) {
	f := newFixture(t)
	u := f.register(t, "ana@example.com")

	require.NoError(t, f.user.ChangeRole(f.ctx, u.Email, entity.RoleAdmin))
	assert.False(t, f.mr.Exists(helpers.SessionKey(u.ID)))
}

func TestUpdateProfile(t *testing.T) {
	f := newFixture(t)
	ana := f.register(t, "ana@example.com")
	f.register(t, "bob@example.com")

	_, err := f.user.UpdateProfile(f.ctx, ana.ID, UpdateProfileInput{Email: "bob@example.com"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = f.user.UpdateProfile(f.ctx, ana.ID, UpdateProfileInput{Username: "BOB@example.com"})
	assert.ErrorIs(t, err, ErrUsernameTaken)

	got, err := f.user.UpdateProfile(f.ctx, ana.ID, UpdateProfileInput{Username: "ana", Password: "newpassword1"})
	require.NoError(t, err)
	assert.Equal(t, "ana", got.Username)
	assert.Equal(t, "ana@example.com", got.Email)

	_, _, err = f.auth.Login(f.ctx, "ana@example.com", "newpassword1")
	assert.NoError(t, err)

	_, err = f.user.UpdateProfile(f.ctx, "missing", UpdateProfileInput{Username: "x"})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdateProfileEmailCaseOnly(t *testing.T) {
	f := newFixture(t)
	ana := f.register(t, "ana@example.com")

	got, err := f.user.UpdateProfile(f.ctx, ana.ID, UpdateProfileInput{Email: "Ana@Example.com"})
	require.NoError(t, err)
	assert.Equal(t, "Ana@Example.com", got.Email)

	stored, err := f.user.GetProfile(f.ctx, ana.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana@Example.com", stored.Email)
}

// conflictOnUpdate reports a unique violation on every Update, as a database
// would after a concurrent write took the key.
type conflictOnUpdate struct {
	repo.UserRepository
}

func (conflictOnUpdate) Update(context.Context, *entity.User) error { return repo.ErrConflict }

func TestUpdateProfileConflictNamesTheKey(t *testing.T) {
	f := newFixture(t)
	ana := f.register(t, "ana@example.com")
	f.user.Users = conflictOnUpdate{f.users}

	_, err := f.user.UpdateProfile(f.ctx, ana.ID, UpdateProfileInput{Username: "ana2"})
	assert.ErrorIs(t, err, ErrUsernameTaken)
	assert.NotErrorIs(t, err, ErrEmailTaken)
}

func TestDeleteUsers(t *testing.T) {
	f := newFixture(t)
	ana := f.register(t, "ana@example.com")
	f.register(t, "bob@example.com")
	_, _, err := f.auth.Login(f.ctx, "ana@example.com", "password123")
	require.NoError(t, err)

	require.NoError(t, f.user.DeleteByID(f.ctx, ana.ID))
	assert.False(t, f.mr.Exists(helpers.SessionKey(ana.ID)))
	assert.ErrorIs(t, f.user.DeleteByID(f.ctx, ana.ID), ErrUserNotFound)

	users, err := f.user.List(f.ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)

	require.NoError(t, f.user.DeleteAll(f.ctx))
	users, err = f.user.List(f.ctx)
	require.NoError(t, err)
	assert.Empty(t, users)
}
