package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classpad-app/classpad-backend/internal/model"
	"github.com/classpad-app/classpad-backend/internal/repository"
)

func newGroupFixture() (*GroupService, *fakeUserStore, *fakeClassStore) {
	users := newFakeUserStore()
	classes := newFakeClassStore()
	svc := NewGroupService(users, classes, zerolog.Nop())
	return svc, users, classes
}

func TestAddUserToGroup_CreatesGroupOnFirstUse(t *testing.T) {
	svc, users, classes := newGroupFixture()

	users.put(model.User{ID: "user-1", UserFirst: "Grace", ImageSeed: "seed-1"})
	classes.put(model.Class{ID: "class-1"}) // No groups map yet.

	added, err := svc.AddUserToGroup(context.Background(), "class-1", "user-1", "red team")
	require.NoError(t, err)
	assert.True(t, added)

	class, _ := classes.FindByID(context.Background(), "class-1")
	require.Contains(t, class.Groups, "red team")
	require.Len(t, class.Groups["red team"].Members, 1)
	member := class.Groups["red team"].Members[0]
	assert.Equal(t, "user-1", member.UID)
	assert.Equal(t, "Grace", member.Name)
	assert.Equal(t, "seed-1", member.Icon)
	assert.Equal(t, int64(0), class.Groups["red team"].Score)
}

func TestAddUserToGroup_AlreadyMember(t *testing.T) {
	svc, users, classes := newGroupFixture()

	users.put(model.User{ID: "user-1"})
	classes.put(model.Class{ID: "class-1"})

	added, err := svc.AddUserToGroup(context.Background(), "class-1", "user-1", "red")
	require.NoError(t, err)
	require.True(t, added)

	added, err = svc.AddUserToGroup(context.Background(), "class-1", "user-1", "red")
	require.NoError(t, err)
	assert.False(t, added)

	class, _ := classes.FindByID(context.Background(), "class-1")
	assert.Len(t, class.Groups["red"].Members, 1)
}

func TestAddUserToGroup_SameUserTwoGroups(t *testing.T) {
	svc, users, classes := newGroupFixture()

	users.put(model.User{ID: "user-1"})
	classes.put(model.Class{ID: "class-1"})

	for _, group := range []string{"red", "blue"} {
		added, err := svc.AddUserToGroup(context.Background(), "class-1", "user-1", group)
		require.NoError(t, err)
		assert.True(t, added)
	}

	class, _ := classes.FindByID(context.Background(), "class-1")
	assert.Len(t, class.Groups, 2)
}

func TestAddUserToGroup_BadGroupName(t *testing.T) {
	svc, users, classes := newGroupFixture()
	users.put(model.User{ID: "user-1"})
	classes.put(model.Class{ID: "class-1"})

	for _, name := range []string{"", "a.b", "cash$", string(make([]byte, 65))} {
		_, err := svc.AddUserToGroup(context.Background(), "class-1", "user-1", name)
		assert.True(t, errors.Is(err, ErrBadGroupName), "name %q should be rejected", name)
	}
}

func TestAddUserToGroup_MissingUser(t *testing.T) {
	svc, _, classes := newGroupFixture()
	classes.put(model.Class{ID: "class-1"})

	_, err := svc.AddUserToGroup(context.Background(), "class-1", "no-such-user", "red")
	require.Error(t, err)
	assert.True(t, errors.Is(err, repository.ErrNotFound))
}

func TestAddUserToGroup_MissingClass(t *testing.T) {
	svc, users, _ := newGroupFixture()
	users.put(model.User{ID: "user-1"})

	_, err := svc.AddUserToGroup(context.Background(), "no-such-class", "user-1", "red")
	require.Error(t, err)
	assert.True(t, errors.Is(err, repository.ErrNotFound))
}

func TestRemoveUserFromGroup_Success(t *testing.T) {
	svc, _, classes := newGroupFixture()

	classes.put(model.Class{
		ID: "class-1",
		Groups: map[string]model.Group{
			"red": {Members: []model.GroupMember{{UID: "user-1"}, {UID: "user-2"}}},
		},
	})

	err := svc.RemoveUserFromGroup(context.Background(), "class-1", "user-1", "red")
	require.NoError(t, err)

	class, _ := classes.FindByID(context.Background(), "class-1")
	require.Len(t, class.Groups["red"].Members, 1)
	assert.Equal(t, "user-2", class.Groups["red"].Members[0].UID)
}

func TestRemoveUserFromGroup_NonMemberIsNoOp(t *testing.T) {
	svc, _, classes := newGroupFixture()

	classes.put(model.Class{
		ID: "class-1",
		Groups: map[string]model.Group{
			"red": {Members: []model.GroupMember{{UID: "user-2"}}},
		},
	})

	err := svc.RemoveUserFromGroup(context.Background(), "class-1", "user-1", "red")
	require.NoError(t, err)

	class, _ := classes.FindByID(context.Background(), "class-1")
	assert.Len(t, class.Groups["red"].Members, 1)
}

func TestRemoveUserFromGroup_NoGroupsMap(t *testing.T) {
	svc, _, classes := newGroupFixture()
	classes.put(model.Class{ID: "class-1"})

	err := svc.RemoveUserFromGroup(context.Background(), "class-1", "user-1", "red")
	assert.True(t, errors.Is(err, repository.ErrNotFound))
}

func TestRemoveUserFromGroup_BadGroupName(t *testing.T) {
	svc, _, _ := newGroupFixture()

	err := svc.RemoveUserFromGroup(context.Background(), "class-1", "user-1", "bad.name")
	assert.True(t, errors.Is(err, ErrBadGroupName))
}
