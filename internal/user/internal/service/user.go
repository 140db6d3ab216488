// Copyright 2023 ecodeclub
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
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
	"strings"

	"github.com/ecodeclub/resale/internal/user/internal/domain"
	"github.com/ecodeclub/resale/internal/user/internal/repository"
	"github.com/gotomicro/ego/core/elog"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("用户名或密码错误")
	ErrPasswordMismatch   = errors.New("两次输入的密码不一致")
	ErrInvalidPassword    = errors.New("密码不能为空")
	ErrUserNotFound       = repository.ErrUserNotFound
)

//go:generate mockgen -source=./user.go -package=usermocks -destination=../../mocks/user.mock.go UserService
type UserService interface {
	// EnsureAdmin 用户名不存在的时候创建管理员
	EnsureAdmin(ctx context.Context, admin domain.User) error
	// MigrateLegacyPasswords 把明文密码替换为 bcrypt 哈希，返回迁移的数量
	MigrateLegacyPasswords(ctx context.Context) (int, error)
	Login(ctx context.Context, username, password string) (domain.User, error)
	Profile(ctx context.Context, uid int64) (domain.User, error)
	UpdateProfile(ctx context.Context, uid int64, fullName string) error
	ChangePassword(ctx context.Context, uid int64, oldPassword, newPassword, confirm string) error
	Export(ctx context.Context) ([]domain.User, error)
	// Replace 空列表不会清空用户，避免恢复之后没有人能登录
	Replace(ctx context.Context, us []domain.User) error
}

type userService struct {
	repo   repository.UserRepository
	logger *elog.Component
}

func NewUserService(repo repository.UserRepository) UserService {
	return &userService{
		repo:   repo,
		logger: elog.DefaultLogger,
	}
}

func (svc *userService) EnsureAdmin(ctx context.Context, admin domain.User) error {
	_, err := svc.repo.FindByUsername(ctx, admin.Username)
	switch {
	case err == nil:
		return nil
	case !errors.Is(err, repository.ErrUserNotFound):
		return err
	}
	hash, err := svc.hash(admin.Password)
	if err != nil {
		return err
	}
	admin.Password = hash
	_, err = svc.repo.Create(ctx, admin)
	if errors.Is(err, repository.ErrUserDuplicate) {
		return nil
	}
	if err == nil {
		svc.logger.Info("创建管理员账号", elog.String("username", admin.Username))
	}
	return err
}

func (svc *userService) MigrateLegacyPasswords(ctx context.Context) (int, error) {
	us, err := svc.repo.ListAll(ctx)
	if err != nil {
		return 0, err
	}
	cnt := 0
	for _, u := range us {
		if isHashed(u.Password) {
			continue
		}
		hash, err1 := svc.hash(u.Password)
		if err1 != nil {
			return cnt, err1
		}
		if err1 = svc.repo.UpdatePassword(ctx, u.ID, hash); err1 != nil {
			return cnt, fmt.Errorf("迁移用户 %s 的密码失败: %w", u.Username, err1)
		}
		cnt++
	}
	return cnt, nil
}

func (svc *userService) Login(ctx context.Context, username, password string) (domain.User, error) {
	u, err := svc.repo.FindByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, repository.ErrUserNotFound) {
		return domain.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return domain.User{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return domain.User{}, ErrInvalidCredentials
	}
	u.Password = ""
	return u, nil
}

func (svc *userService) Profile(ctx context.Context, uid int64) (domain.User, error) {
	return svc.repo.FindById(ctx, uid)
}

func (svc *userService) UpdateProfile(ctx context.Context, uid int64, fullName string) error {
	return svc.repo.UpdateFullName(ctx, uid, strings.TrimSpace(fullName))
}

func (svc *userService) ChangePassword(ctx context.Context, uid int64, oldPassword, newPassword, confirm string) error {
	if newPassword == "" {
		return ErrInvalidPassword
	}
	if newPassword != confirm {
		return ErrPasswordMismatch
	}
	u, err := svc.repo.FindCredential(ctx, uid)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(oldPassword)) != nil {
		return ErrInvalidCredentials
	}
	hash, err := svc.hash(newPassword)
	if err != nil {
		return err
	}
	return svc.repo.UpdatePassword(ctx, uid, hash)
}

func (svc *userService) Export(ctx context.Context) ([]domain.User, error) {
	return svc.repo.ListAll(ctx)
}

func (svc *userService) Replace(ctx context.Context, us []domain.User) error {
	if len(us) == 0 {
		return nil
	}
	return svc.repo.ReplaceAll(ctx, us)
}

func (svc *userService) hash(password string) (string, error) {
	res, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("生成密码哈希失败: %w", err)
	}
	return string(res), nil
}

func isHashed(password string) bool {
	_, err := bcrypt.Cost([]byte(password))
	return err == nil
}
