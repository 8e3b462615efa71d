package chat

import (
	"fmt"
	"testing"

	"pigeon_chat_server/internal/dao/db"
	"pigeon_chat_server/internal/dao/db/repository"
	myredis "pigeon_chat_server/internal/dao/redis"
	"pigeon_chat_server/internal/dto/request"
	"pigeon_chat_server/internal/model"
	"pigeon_chat_server/pkg/errorx"

	"github.com/stretchr/testify/require"
	sqlitedriver "gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func bootstrap(t *testing.T) (*repository.Repositories, *myredis.MemoryCache) {
	t.Helper()
	dsn := fmt.Sprintf("file:chat_%s?mode=memory&cache=shared", t.Name())
	gdb, err := gorm.Open(sqlitedriver.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))
	return repository.NewRepositories(gdb), myredis.NewMemoryCache()
}

func seedUser(t *testing.T, repos *repository.Repositories, uuid, username string) {
	t.Helper()
	require.NoError(t, repos.User.Create(&model.UserInfo{
		Uuid: uuid, Username: username, RawPassword: "hunter22",
	}))
}

func TestOpenDirectChatIsIdempotent(t *testing.T) {
	repos, cache := bootstrap(t)
	svc := NewChatService(repos, cache)
	seedUser(t, repos, "U1", "alice")
	seedUser(t, repos, "U2", "bob")

	first, err := svc.OpenDirectChat(request.OpenDirectChatRequest{OwnerId: "U1", PeerId: "U2"})
	require.NoError(t, err)
	require.NotEmpty(t, first)

	// Opening from either side returns the same chat.
	again, err := svc.OpenDirectChat(request.OpenDirectChatRequest{OwnerId: "U2", PeerId: "U1"})
	require.NoError(t, err)
	require.Equal(t, first, again)

	_, err = svc.OpenDirectChat(request.OpenDirectChatRequest{OwnerId: "U1", PeerId: "U1"})
	require.Equal(t, errorx.CodeInvalidParam, errorx.GetCode(err))

	_, err = svc.OpenDirectChat(request.OpenDirectChatRequest{OwnerId: "U1", PeerId: "U_missing"})
	require.Equal(t, errorx.CodeUserNotExist, errorx.GetCode(err))
}

func TestGetChatDetailIsMembersOnly(t *testing.T) {
	repos, cache := bootstrap(t)
	svc := NewChatService(repos, cache)
	seedUser(t, repos, "U1", "alice")
	seedUser(t, repos, "U2", "bob")
	seedUser(t, repos, "U3", "carol")

	chatId, err := svc.CreateChat(request.CreateChatRequest{
		OwnerId: "U1", Name: "lunch crew", MemberIds: []string{"U2"},
	})
	require.NoError(t, err)

	detail, err := svc.GetChatDetail("U1", chatId)
	require.NoError(t, err)
	require.Equal(t, "lunch crew", detail.Name)
	require.True(t, detail.IsGroup)
	require.Len(t, detail.Members, 2)

	_, err = svc.GetChatDetail("U3", chatId)
	require.Equal(t, errorx.CodeForbidden, errorx.GetCode(err))
}

func TestLeaveChatRejectsDirectChats(t *testing.T) {
	repos, cache := bootstrap(t)
	svc := NewChatService(repos, cache)
	seedUser(t, repos, "U1", "alice")
	seedUser(t, repos, "U2", "bob")

	direct, err := svc.OpenDirectChat(request.OpenDirectChatRequest{OwnerId: "U1", PeerId: "U2"})
	require.NoError(t, err)
	err = svc.LeaveChat(request.LeaveChatRequest{OwnerId: "U1", ChatId: direct})
	require.Equal(t, errorx.CodeForbidden, errorx.GetCode(err))

	group, err := svc.CreateChat(request.CreateChatRequest{
		OwnerId: "U1", Name: "g", MemberIds: []string{"U2"},
	})
	require.NoError(t, err)
	require.NoError(t, svc.LeaveChat(request.LeaveChatRequest{OwnerId: "U2", ChatId: group}))

	// A second leave finds no membership.
	err = svc.LeaveChat(request.LeaveChatRequest{OwnerId: "U2", ChatId: group})
	require.Equal(t, errorx.CodeNotFound, errorx.GetCode(err))
}
