// Package user implements account, profile and presence logic.
package user

import (
	"context"
	"time"

	myconfig "pigeon_chat_server/internal/config"
	"pigeon_chat_server/internal/dao/db/repository"
	myredis "pigeon_chat_server/internal/dao/redis"
	"pigeon_chat_server/internal/dto/request"
	"pigeon_chat_server/internal/dto/respond"
	"pigeon_chat_server/internal/model"
	"pigeon_chat_server/pkg/constants"
	"pigeon_chat_server/pkg/enum/user/user_status_enum"
	"pigeon_chat_server/pkg/errorx"
	myjwt "pigeon_chat_server/pkg/util/jwt"
	"pigeon_chat_server/pkg/util/random"

	"go.uber.org/zap"
)

type userService struct {
	repos *repository.Repositories
	cache myredis.AsyncCacheService
}

// NewUserService builds the user service.
func NewUserService(repos *repository.Repositories, cache myredis.AsyncCacheService) *userService {
	return &userService{repos: repos, cache: cache}
}

const refreshTokenKeyPrefix = "refresh_token_"

// presenceKey is the short-lived cache slot the status overlay reads.
func presenceKey(uuid string) string {
	return "presence_" + uuid
}

// Register creates the account and issues a token pair.
func (s *userService) Register(req request.RegisterRequest) (*respond.LoginRespond, error) {
	existing, err := s.repos.User.FindByUsername(req.Username)
	if err != nil && !errorx.IsNotFound(err) {
		return nil, err
	}
	if existing != nil {
		return nil, errorx.New(errorx.CodeUserExist, "username already taken")
	}

	newUser := model.UserInfo{
		Uuid:        "U" + random.GetNowAndLenRandomString(13),
		Username:    req.Username,
		JobTitle:    req.JobTitle,
		Status:      user_status_enum.Offline,
		RawPassword: req.Password,
	}
	if err := s.repos.User.Create(&newUser); err != nil {
		return nil, err
	}
	zap.L().Info("user registered", zap.String("uuid", newUser.Uuid), zap.String("username", newUser.Username))
	return s.issueTokens(&newUser)
}

// Login authenticates and issues a token pair.
func (s *userService) Login(req request.LoginRequest) (*respond.LoginRespond, error) {
	account, err := s.repos.User.FindByUsername(req.Username)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeUserNotExist, "user does not exist")
		}
		return nil, err
	}
	if !account.CheckPassword(req.Password) {
		return nil, errorx.New(errorx.CodeInvalidPassword, "wrong password")
	}
	return s.issueTokens(account)
}

// issueTokens signs the pair and records the refresh token id so a
// newer login invalidates older refresh tokens.
func (s *userService) issueTokens(account *model.UserInfo) (*respond.LoginRespond, error) {
	accessToken, err := myjwt.GenerateAccessToken(account.Uuid)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.CodeServerBusy, "sign access token")
	}
	refreshToken, tokenID, err := myjwt.GenerateRefreshToken(account.Uuid)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.CodeServerBusy, "sign refresh token")
	}

	if s.cache != nil {
		ttl := time.Duration(myconfig.GetConfig().JWTConfig.RefreshTokenExpiry) * time.Hour
		if err := s.cache.Set(context.Background(), refreshTokenKeyPrefix+account.Uuid, tokenID, ttl); err != nil {
			zap.L().Error("record refresh token failed", zap.Error(err))
		}
	}

	return &respond.LoginRespond{
		Uuid:         account.Uuid,
		Username:     account.Username,
		Avatar:       account.Avatar,
		JobTitle:     account.JobTitle,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// RefreshToken validates the refresh token against the recorded token
// id and signs a fresh access token.
func (s *userService) RefreshToken(req request.RefreshTokenRequest) (*respond.RefreshTokenRespond, error) {
	claims, err := myjwt.ParseToken(req.RefreshToken)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.CodeUnauthorized, "invalid refresh token")
	}
	if claims.Subject != "refresh_token" || claims.TokenID == "" {
		return nil, errorx.New(errorx.CodeUnauthorized, "not a refresh token")
	}

	if s.cache != nil {
		recorded, err := s.cache.GetOrError(context.Background(), refreshTokenKeyPrefix+claims.UserID)
		if err != nil || recorded != claims.TokenID {
			return nil, errorx.New(errorx.CodeUnauthorized, "refresh token superseded")
		}
	}

	accessToken, err := myjwt.GenerateAccessToken(claims.UserID)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.CodeServerBusy, "sign access token")
	}
	return &respond.RefreshTokenRespond{AccessToken: accessToken}, nil
}

// GetUserInfo returns the profile with the cached presence value
// overlaid on the column fallback.
func (s *userService) GetUserInfo(uuid string) (*respond.GetUserInfoRespond, error) {
	account, err := s.repos.User.FindByUuid(uuid)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeUserNotExist, "user does not exist")
		}
		return nil, err
	}
	return &respond.GetUserInfoRespond{
		Uuid:      account.Uuid,
		Username:  account.Username,
		Avatar:    account.Avatar,
		Status:    s.overlayStatus(account.Uuid, account.Status),
		JobTitle:  account.JobTitle,
		Signature: account.Signature,
		CreatedAt: account.CreatedAt.Format("2006-01-02 15:04:05"),
	}, nil
}

// overlayStatus prefers the cached presence value over the column.
func (s *userService) overlayStatus(uuid, fallback string) string {
	if s.cache == nil {
		return fallback
	}
	cached, err := s.cache.Get(context.Background(), presenceKey(uuid))
	if err != nil || cached == "" {
		return fallback
	}
	return cached
}

// UpdateUserInfo applies the non-empty profile fields.
func (s *userService) UpdateUserInfo(req request.UpdateUserInfoRequest) error {
	account, err := s.repos.User.FindByUuid(req.Uuid)
	if err != nil {
		if errorx.IsNotFound(err) {
			return errorx.New(errorx.CodeUserNotExist, "user does not exist")
		}
		return err
	}
	if req.Avatar != "" {
		account.Avatar = req.Avatar
	}
	if req.JobTitle != "" {
		account.JobTitle = req.JobTitle
	}
	if req.Signature != "" {
		account.Signature = req.Signature
	}
	if req.Status != "" {
		if !user_status_enum.Valid(req.Status) {
			return errorx.New(errorx.CodeInvalidParam, "unknown status value")
		}
		account.Status = req.Status
		s.cacheStatus(req.Uuid, req.Status)
	}
	return s.repos.User.Update(account)
}

// UpdateStatus is the REST mirror of the update-status socket event.
func (s *userService) UpdateStatus(req request.UpdateStatusRequest) error {
	if !user_status_enum.Valid(req.Status) {
		return errorx.New(errorx.CodeInvalidParam, "unknown status value")
	}
	if err := s.repos.User.UpdateStatus(req.OwnerId, req.Status); err != nil {
		return err
	}
	s.cacheStatus(req.OwnerId, req.Status)
	return nil
}

func (s *userService) cacheStatus(uuid, status string) {
	if s.cache == nil {
		return
	}
	s.cache.SubmitTask(func() {
		if err := s.cache.Set(context.Background(), presenceKey(uuid), status, constants.PRESENCE_TTL); err != nil {
			zap.L().Error("cache presence failed", zap.Error(err))
		}
	})
}

// SearchUsers matches usernames by substring, excluding the caller.
func (s *userService) SearchUsers(req request.SearchUsersRequest) ([]respond.FriendListRespond, error) {
	matches, err := s.repos.User.Search(req.Term, req.OwnerId)
	if err != nil {
		return nil, err
	}
	results := make([]respond.FriendListRespond, 0, len(matches))
	for _, match := range matches {
		results = append(results, respond.FriendListRespond{
			Uuid:     match.Uuid,
			Username: match.Username,
			Avatar:   match.Avatar,
			Status:   s.overlayStatus(match.Uuid, match.Status),
			JobTitle: match.JobTitle,
		})
	}
	return results, nil
}
