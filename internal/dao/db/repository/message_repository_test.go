package repository

import (
	"fmt"
	"testing"
	"time"

	"pigeon_chat_server/internal/model"
	"pigeon_chat_server/pkg/enum/message/message_status_enum"
	"pigeon_chat_server/pkg/errorx"

	"github.com/stretchr/testify/require"
	sqlitedriver "gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func bootstrap(t *testing.T) *Repositories {
	t.Helper()
	dsn := fmt.Sprintf("file:repo_%s?mode=memory&cache=shared", t.Name())
	gdb, err := gorm.Open(sqlitedriver.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(
		&model.UserInfo{},
		&model.Chat{},
		&model.ChatMember{},
		&model.Message{},
		&model.Friend{},
		&model.Story{},
	))
	return NewRepositories(gdb)
}

func seedMessage(t *testing.T, repos *Repositories, uuid int64, chat, sender string, createdAt time.Time) {
	t.Helper()
	message := model.Message{
		Uuid:     uuid,
		ChatUuid: chat,
		SendId:   sender,
		SendName: "name_" + sender,
		Content:  fmt.Sprintf("message %d", uuid),
		Status:   message_status_enum.Sent,
	}
	message.CreatedAt = createdAt
	require.NoError(t, repos.Message.Create(&message))
}

func TestFindByChatUuidOrdersByCreatedAt(t *testing.T) {
	repos := bootstrap(t)
	base := time.Now().Add(-time.Hour)

	// Inserted out of order on purpose.
	seedMessage(t, repos, 3, "C1", "U1", base.Add(30*time.Second))
	seedMessage(t, repos, 1, "C1", "U2", base)
	seedMessage(t, repos, 2, "C1", "U1", base.Add(10*time.Second))
	seedMessage(t, repos, 9, "C_other", "U1", base)

	messages, err := repos.Message.FindByChatUuid("C1")
	require.NoError(t, err)
	require.Len(t, messages, 3)
	require.EqualValues(t, 1, messages[0].Uuid)
	require.EqualValues(t, 2, messages[1].Uuid)
	require.EqualValues(t, 3, messages[2].Uuid)
}

func TestAdvanceChatStatusSkipsOwnAndHigher(t *testing.T) {
	repos := bootstrap(t)
	base := time.Now().Add(-time.Hour)

	seedMessage(t, repos, 1, "C1", "U_peer", base)
	seedMessage(t, repos, 2, "C1", "U_reader", base.Add(time.Second))
	seedMessage(t, repos, 3, "C1", "U_peer", base.Add(2*time.Second))
	require.NoError(t, repos.Message.UpdateStatus(3, message_status_enum.Read))

	require.NoError(t, repos.Message.AdvanceChatStatus("C1", "U_reader", message_status_enum.Delivered))

	messages, err := repos.Message.FindByChatUuid("C1")
	require.NoError(t, err)
	byUuid := map[int64]int8{}
	for _, m := range messages {
		byUuid[m.Uuid] = m.Status
	}
	require.Equal(t, int8(message_status_enum.Delivered), byUuid[1], "peer message below target advances")
	require.Equal(t, int8(message_status_enum.Sent), byUuid[2], "reader's own message is untouched")
	require.Equal(t, int8(message_status_enum.Read), byUuid[3], "already-higher status is not lowered")
}

func TestFindDirectBetween(t *testing.T) {
	repos := bootstrap(t)

	direct := model.Chat{Uuid: "C_direct", OwnerId: "U1", IsGroup: false}
	require.NoError(t, repos.Chat.Create(&direct))
	require.NoError(t, repos.ChatMember.CreateBatch([]model.ChatMember{
		{ChatUuid: "C_direct", UserUuid: "U1"},
		{ChatUuid: "C_direct", UserUuid: "U2"},
	}))

	// A group containing the same pair must not match.
	group := model.Chat{Uuid: "C_group", OwnerId: "U1", IsGroup: true}
	require.NoError(t, repos.Chat.Create(&group))
	require.NoError(t, repos.ChatMember.CreateBatch([]model.ChatMember{
		{ChatUuid: "C_group", UserUuid: "U1"},
		{ChatUuid: "C_group", UserUuid: "U2"},
		{ChatUuid: "C_group", UserUuid: "U3"},
	}))

	found, err := repos.Chat.FindDirectBetween("U1", "U2")
	require.NoError(t, err)
	require.Equal(t, "C_direct", found.Uuid)

	found, err = repos.Chat.FindDirectBetween("U2", "U1")
	require.NoError(t, err)
	require.Equal(t, "C_direct", found.Uuid)

	_, err = repos.Chat.FindDirectBetween("U1", "U3")
	require.True(t, errorx.IsNotFound(err))
}

func TestTransactionRollsBackOnError(t *testing.T) {
	repos := bootstrap(t)

	err := repos.Transaction(func(tx *Repositories) error {
		if err := tx.Friend.Create(&model.Friend{OwnerId: "U1", FriendId: "U2"}); err != nil {
			return err
		}
		return errorx.New(errorx.CodeServerBusy, "forced failure")
	})
	require.Error(t, err)

	exists, err := repos.Friend.Exists("U1", "U2")
	require.NoError(t, err)
	require.False(t, exists, "rolled-back insert must not persist")
}
