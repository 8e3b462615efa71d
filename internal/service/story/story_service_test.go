package story

import (
	"fmt"
	"testing"
	"time"

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
	dsn := fmt.Sprintf("file:story_%s?mode=memory&cache=shared", t.Name())
	gdb, err := gorm.Open(sqlitedriver.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))
	return repository.NewRepositories(gdb)
}

func seedUser(t *testing.T, repos *repository.Repositories, uuid string) {
	t.Helper()
	require.NoError(t, repos.User.Create(&model.UserInfo{
		Uuid:        uuid,
		Username:    "author_" + uuid,
		RawPassword: "secret123",
	}))
}

func seedStoryAt(t *testing.T, repos *repository.Repositories, uuid, owner string, createdAt time.Time) {
	t.Helper()
	story := model.Story{UserUuid: owner, MediaUrl: "/static/stories/x.png"}
	story.Uuid = uuid
	story.CreatedAt = createdAt
	require.NoError(t, repos.Story.Create(&story))
}

func TestSweepRemovesExactlyExpiredStories(t *testing.T) {
	repos := bootstrap(t)
	seedUser(t, repos, "U1")
	svc := NewStoryService(repos, 24*time.Hour, time.Hour)

	now := time.Now()
	seedStoryAt(t, repos, "T_old_1", "U1", now.Add(-25*time.Hour))
	seedStoryAt(t, repos, "T_old_2", "U1", now.Add(-24*time.Hour-time.Minute))
	seedStoryAt(t, repos, "T_fresh_1", "U1", now.Add(-23*time.Hour))
	seedStoryAt(t, repos, "T_fresh_2", "U1", now.Add(-time.Minute))

	removed, err := svc.SweepExpired()
	require.NoError(t, err)
	require.EqualValues(t, 2, removed)

	active, err := svc.GetActiveStories()
	require.NoError(t, err)
	require.Len(t, active, 2)
	for _, story := range active {
		require.NotContains(t, story.StoryId, "T_old")
	}

	// A second sweep finds nothing new to remove.
	removed, err = svc.SweepExpired()
	require.NoError(t, err)
	require.EqualValues(t, 0, removed)
}

func TestGetActiveStoriesSweepsFirst(t *testing.T) {
	repos := bootstrap(t)
	seedUser(t, repos, "U1")
	svc := NewStoryService(repos, 24*time.Hour, time.Hour)

	seedStoryAt(t, repos, "T_expired", "U1", time.Now().Add(-30*time.Hour))

	active, err := svc.GetActiveStories()
	require.NoError(t, err)
	require.Empty(t, active)

	// The expired row is actually gone, not just filtered.
	_, err = repos.Story.FindByUuid("T_expired")
	require.True(t, errorx.IsNotFound(err))
}

func TestCreateAndDeleteStory(t *testing.T) {
	repos := bootstrap(t)
	seedUser(t, repos, "U1")
	seedUser(t, repos, "U2")
	svc := NewStoryService(repos, 24*time.Hour, time.Hour)

	storyId, err := svc.CreateStory(request.CreateStoryRequest{
		OwnerId:  "U1",
		MediaUrl: "/static/stories/pic.png",
		Caption:  "hello",
	})
	require.NoError(t, err)
	require.NotEmpty(t, storyId)

	// Only the author may delete.
	err = svc.DeleteStory(request.DeleteStoryRequest{OwnerId: "U2", StoryId: storyId})
	require.Equal(t, errorx.CodeForbidden, errorx.GetCode(err))

	require.NoError(t, svc.DeleteStory(request.DeleteStoryRequest{OwnerId: "U1", StoryId: storyId}))

	active, err := svc.GetActiveStories()
	require.NoError(t, err)
	require.Empty(t, active)
}
