// Copyright 2026 Earth Care Network Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/earthcare/network/internal/engine/consts"
	"github.com/earthcare/network/internal/engine/errs"
	"github.com/earthcare/network/internal/engine/model"
	"github.com/earthcare/network/internal/engine/repo"
	"github.com/earthcare/network/pkg/cache"
	httpx "github.com/earthcare/network/pkg/http"
	"github.com/earthcare/network/pkg/http/jwt"
	"github.com/earthcare/network/pkg/id"
	"github.com/earthcare/network/pkg/log"
)

type AuthService struct {
	userRepo repo.IUserRepository
	redis    cache.ICache
	auth     httpx.Auth
}

func NewAuthService(userRepo repo.IUserRepository, redis cache.ICache, auth httpx.Auth) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		redis:    redis,
		auth:     auth,
	}
}

// Register 用户注册
func (s *AuthService) Register(req *model.RegisterReq) (*model.UserResp, error) {
	// 1. 用户名唯一
	exists, err := s.userRepo.CheckUsernameExists(req.Username)
	if err != nil {
		return nil, fmt.Errorf("check username failed: %w", err)
	}
	if exists {
		return nil, errs.ErrConflict
	}

	// 2. 密码散列
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password failed: %w", err)
	}

	user := &model.User{
		UserId:   id.GetUUIDWithoutDashes(),
		Username: req.Username,
		Email:    req.Email,
		Password: string(hash),
		FullName: req.FullName,
	}
	if err := s.userRepo.CreateUser(user); err != nil {
		log.Errorw("create user failed", "username", req.Username, "error", err)
		return nil, fmt.Errorf("create user failed: %w", err)
	}

	log.Infow("user registered", "userId", user.UserId, "username", user.Username)
	return model.ToUserResp(user), nil
}

// Login 用户登录。签发 JWT 并在 redis 写入会话，TTL 与 access token 对齐。
func (s *AuthService) Login(ctx context.Context, req *model.LoginReq) (*model.LoginResp, error) {
	user, err := s.userRepo.GetUserByUsername(req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrUnauthorized
		}
		return nil, fmt.Errorf("load user failed: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, errs.ErrUnauthorized
	}

	aToken, rToken, err := jwt.GenToken(user.UserId, []byte(s.auth.SecretKey), s.auth.AccessExpire, s.auth.RefreshExpire)
	if err != nil {
		log.Errorw("generate token failed", "userId", user.UserId, "error", err)
		return nil, fmt.Errorf("generate token failed: %w", err)
	}

	sessionTTL := s.auth.AccessExpire * time.Minute
	if err := s.redis.Set(ctx, consts.UserSessionKey+user.UserId, user.Username, sessionTTL).Err(); err != nil {
		log.Errorw("store session failed", "userId", user.UserId, "error", err)
		return nil, fmt.Errorf("store session failed: %w", err)
	}

	log.Infow("user logged in", "userId", user.UserId, "username", user.Username)
	return &model.LoginResp{
		UserId:       user.UserId,
		Username:     user.Username,
		AccessToken:  aToken,
		RefreshToken: rToken,
	}, nil
}

// Logout 注销会话
func (s *AuthService) Logout(ctx context.Context, userId string) error {
	if err := s.redis.Del(ctx, consts.UserSessionKey+userId).Err(); err != nil {
		log.Errorw("delete session failed", "userId", userId, "error", err)
		return fmt.Errorf("delete session failed: %w", err)
	}
	return nil
}

// GetUser 获取用户信息
func (s *AuthService) GetUser(userId string) (*model.UserResp, error) {
	user, err := s.userRepo.GetUserById(userId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, fmt.Errorf("load user failed: %w", err)
	}
	return model.ToUserResp(user), nil
}

// IsAdmin 判断用户是否为平台管理员
func (s *AuthService) IsAdmin(userId string) (bool, error) {
	user, err := s.userRepo.GetUserById(userId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, errs.ErrUnauthorized
		}
		return false, fmt.Errorf("load user failed: %w", err)
	}
	return user.IsAdmin == 1, nil
}
