package user

import (
	"fmt"
	"testing"

	"pigeon_chat_server/internal/dao/db"
	"pigeon_chat_server/internal/dao/db/repository"
	myredis "pigeon_chat_server/internal/dao/redis"
	"pigeon_chat_server/internal/dto/request"
	"pigeon_chat_server/pkg/enum/user/user_status_enum"
	"pigeon_chat_server/pkg/errorx"
	myjwt "pigeon_chat_server/pkg/util/jwt"

	"github.com/stretchr/testify/require"
	sqlitedriver "gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func bootstrap(t *testing.T) (*repository.Repositories, *myredis.MemoryCache) {
	t.Helper()
	myjwt.Init("test-secret", 30, 168)
	dsn := fmt.Sprintf("file:user_%s?mode=memory&cache=shared", t.Name())
	gdb, err := gorm.Open(sqlitedriver.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))
	return repository.NewRepositories(gdb), myredis.NewMemoryCache()
}

func TestRegisterAndLogin(t *testing.T) {
	repos, cache := bootstrap(t)
	svc := NewUserService(repos, cache)

	registered, err := svc.Register(request.RegisterRequest{
		Username: "alice",
		Password: "hunter22",
		JobTitle: "engineer",
	})
	require.NoError(t, err)
	require.NotEmpty(t, registered.Uuid)
	require.Equal(t, byte('U'), registered.Uuid[0])
	require.NotEmpty(t, registered.AccessToken)
	require.NotEmpty(t, registered.RefreshToken)

	// The stored password is hashed, never the plaintext.
	stored, err := repos.User.FindByUuid(registered.Uuid)
	require.NoError(t, err)
	require.NotEqual(t, "hunter22", stored.Password)
	require.True(t, stored.CheckPassword("hunter22"))

	loggedIn, err := svc.Login(request.LoginRequest{Username: "alice", Password: "hunter22"})
	require.NoError(t, err)
	require.Equal(t, registered.Uuid, loggedIn.Uuid)

	_, err = svc.Login(request.LoginRequest{Username: "alice", Password: "wrong"})
	require.Equal(t, errorx.CodeInvalidPassword, errorx.GetCode(err))

	_, err = svc.Register(request.RegisterRequest{Username: "alice", Password: "other123"})
	require.Equal(t, errorx.CodeUserExist, errorx.GetCode(err))
}

func TestRefreshTokenIsSupersededByNewLogin(t *testing.T) {
	repos, cache := bootstrap(t)
	svc := NewUserService(repos, cache)

	first, err := svc.Register(request.RegisterRequest{Username: "bob", Password: "hunter22"})
	require.NoError(t, err)

	renewed, err := svc.RefreshToken(request.RefreshTokenRequest{RefreshToken: first.RefreshToken})
	require.NoError(t, err)
	require.NotEmpty(t, renewed.AccessToken)

	// An access token is not accepted as a refresh token.
	_, err = svc.RefreshToken(request.RefreshTokenRequest{RefreshToken: first.AccessToken})
	require.Equal(t, errorx.CodeUnauthorized, errorx.GetCode(err))

	// A second login rotates the recorded token id; the old refresh
	// token stops working.
	_, err = svc.Login(request.LoginRequest{Username: "bob", Password: "hunter22"})
	require.NoError(t, err)
	_, err = svc.RefreshToken(request.RefreshTokenRequest{RefreshToken: first.RefreshToken})
	require.Equal(t, errorx.CodeUnauthorized, errorx.GetCode(err))
}

func TestUpdateStatusOverlaysProfile(t *testing.T) {
	repos, cache := bootstrap(t)
	svc := NewUserService(repos, cache)

	registered, err := svc.Register(request.RegisterRequest{Username: "carol", Password: "hunter22"})
	require.NoError(t, err)

	require.NoError(t, svc.UpdateStatus(request.UpdateStatusRequest{
		OwnerId: registered.Uuid,
		Status:  user_status_enum.Busy,
	}))

	profile, err := svc.GetUserInfo(registered.Uuid)
	require.NoError(t, err)
	require.Equal(t, user_status_enum.Busy, profile.Status)

	err = svc.UpdateStatus(request.UpdateStatusRequest{OwnerId: registered.Uuid, Status: "sleeping"})
	require.Equal(t, errorx.CodeInvalidParam, errorx.GetCode(err))
}

func TestSearchUsersExcludesCaller(t *testing.T) {
	repos, cache := bootstrap(t)
	svc := NewUserService(repos, cache)

	alice, err := svc.Register(request.RegisterRequest{Username: "search_alice", Password: "hunter22"})
	require.NoError(t, err)
	_, err = svc.Register(request.RegisterRequest{Username: "search_bob", Password: "hunter22"})
	require.NoError(t, err)

	results, err := svc.SearchUsers(request.SearchUsersRequest{OwnerId: alice.Uuid, Term: "search_"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, "search_bob", results[0].Username)
}
