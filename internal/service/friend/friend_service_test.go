package friend

import (
	"fmt"
	"testing"

	"pigeon_chat_server/internal/dao/db"
	"pigeon_chat_server/internal/dao/db/repository"
	"pigeon_chat_server/internal/dto/request"
	"pigeon_chat_server/internal/model"
	"pigeon_chat_server/pkg/errorx"

	"github.com/stretchr/testify/require"
	sqlitedriver "gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func bootstrap(t *testing.T) *repository.Repositories {
	t.Helper()
	dsn := fmt.Sprintf("file:friend_%s?mode=memory&cache=shared", t.Name())
	gdb, err := gorm.Open(sqlitedriver.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))
	return repository.NewRepositories(gdb)
}

func seedUser(t *testing.T, repos *repository.Repositories, uuid string) {
	t.Helper()
	require.NoError(t, repos.User.Create(&model.UserInfo{
		Uuid:        uuid,
		Username:    "user_" + uuid,
		RawPassword: "secret123",
	}))
}

func TestAddFriendInsertsBothDirections(t *testing.T) {
	repos := bootstrap(t)
	seedUser(t, repos, "U1")
	seedUser(t, repos, "U2")
	svc := NewFriendService(repos, nil)

	require.NoError(t, svc.AddFriend(request.AddFriendRequest{OwnerId: "U1", FriendId: "U2"}))

	forward, err := repos.Friend.Exists("U1", "U2")
	require.NoError(t, err)
	require.True(t, forward)
	backward, err := repos.Friend.Exists("U2", "U1")
	require.NoError(t, err)
	require.True(t, backward)

	// Both sides see the friendship.
	listOne, err := svc.GetFriendList("U1")
	require.NoError(t, err)
	require.Len(t, listOne, 1)
	require.Equal(t, "U2", listOne[0].Uuid)
	listTwo, err := svc.GetFriendList("U2")
	require.NoError(t, err)
	require.Len(t, listTwo, 1)
	require.Equal(t, "U1", listTwo[0].Uuid)
}

func TestAddFriendRejectsDuplicatesAndSelf(t *testing.T) {
	repos := bootstrap(t)
	seedUser(t, repos, "U1")
	seedUser(t, repos, "U2")
	svc := NewFriendService(repos, nil)

	require.NoError(t, svc.AddFriend(request.AddFriendRequest{OwnerId: "U1", FriendId: "U2"}))

	err := svc.AddFriend(request.AddFriendRequest{OwnerId: "U1", FriendId: "U2"})
	require.Equal(t, errorx.CodeAlreadyFriends, errorx.GetCode(err))

	// The reverse direction already exists too.
	err = svc.AddFriend(request.AddFriendRequest{OwnerId: "U2", FriendId: "U1"})
	require.Equal(t, errorx.CodeAlreadyFriends, errorx.GetCode(err))

	err = svc.AddFriend(request.AddFriendRequest{OwnerId: "U1", FriendId: "U1"})
	require.Equal(t, errorx.CodeInvalidParam, errorx.GetCode(err))

	err = svc.AddFriend(request.AddFriendRequest{OwnerId: "U1", FriendId: "U_missing"})
	require.Equal(t, errorx.CodeUserNotExist, errorx.GetCode(err))
}

func TestDeleteFriendRemovesBothDirections(t *testing.T) {
	repos := bootstrap(t)
	seedUser(t, repos, "U1")
	seedUser(t, repos, "U2")
	svc := NewFriendService(repos, nil)

	require.NoError(t, svc.AddFriend(request.AddFriendRequest{OwnerId: "U1", FriendId: "U2"}))
	require.NoError(t, svc.DeleteFriend(request.DeleteFriendRequest{OwnerId: "U2", FriendId: "U1"}))

	forward, err := repos.Friend.Exists("U1", "U2")
	require.NoError(t, err)
	require.False(t, forward)
	backward, err := repos.Friend.Exists("U2", "U1")
	require.NoError(t, err)
	require.False(t, backward)

	err = svc.DeleteFriend(request.DeleteFriendRequest{OwnerId: "U1", FriendId: "U2"})
	require.Equal(t, errorx.CodeNotFound, errorx.GetCode(err))
}
