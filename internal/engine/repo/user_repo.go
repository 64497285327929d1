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

package repo

import (
	"github.com/earthcare/network/internal/engine/model"
	"github.com/earthcare/network/pkg/database"
)

type IUserRepository interface {
	CreateUser(u *model.User) error
	GetUserById(userId string) (*model.User, error)
	GetUserByUsername(username string) (*model.User, error)
	CheckUsernameExists(username string) (bool, error)
}

type UserRepo struct {
	db database.DB
}

func NewUserRepo(db database.DB) IUserRepository {
	return &UserRepo{db: db}
}

// CreateUser 创建用户
func (r *UserRepo) CreateUser(u *model.User) error {
	return r.db.DB().Create(u).Error
}

// GetUserById 根据用户ID获取用户
func (r *UserRepo) GetUserById(userId string) (*model.User, error) {
	var u model.User
	err := r.db.DB().Where("user_id = ?", userId).First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetUserByUsername 根据用户名获取用户
func (r *UserRepo) GetUserByUsername(username string) (*model.User, error) {
	var u model.User
	err := r.db.DB().Where("username = ?", username).First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// CheckUsernameExists 检查用户名是否已存在
func (r *UserRepo) CheckUsernameExists(username string) (bool, error) {
	var count int64
	err := r.db.DB().Model(&model.User{}).
		Where("username = ?", username).Count(&count).Error
	return count > 0, err
}
