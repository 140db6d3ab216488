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
	"testing"

	"github.com/ecodeclub/resale/internal/user/internal/domain"
	"github.com/ecodeclub/resale/internal/user/internal/repository"
	repomocks "github.com/ecodeclub/resale/internal/user/internal/repository/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

func mustHash(t *testing.T, password string) string {
	res, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(res)
}

func TestUserService_EnsureAdmin(t *testing.T) {
	testCases := []struct {
		name    string
		mock    func(ctrl *gomock.Controller) repository.UserRepository
		wantErr error
	}{
		{
			name: "已经存在",
			mock: func(ctrl *gomock.Controller) repository.UserRepository {
				repo := repomocks.NewMockUserRepository(ctrl)
				repo.EXPECT().FindByUsername(gomock.Any(), "admin").Return(domain.User{ID: 1, Username: "admin"}, nil)
				return repo
			},
		},
		{
			name: "创建管理员",
			mock: func(ctrl *gomock.Controller) repository.UserRepository {
				repo := repomocks.NewMockUserRepository(ctrl)
				repo.EXPECT().FindByUsername(gomock.Any(), "admin").Return(domain.User{}, repository.ErrUserNotFound)
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).
					DoAndReturn(func(ctx context.Context, u domain.User) (int64, error) {
						assert.Equal(t, "admin", u.Username)
						assert.Equal(t, "Quản trị viên", u.FullName)
						assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("admin123")))
						return 1, nil
					})
				return repo
			},
		},
		{
			name: "并发创建",
			mock: func(ctrl *gomock.Controller) repository.UserRepository {
				repo := repomocks.NewMockUserRepository(ctrl)
				repo.EXPECT().FindByUsername(gomock.Any(), "admin").Return(domain.User{}, repository.ErrUserNotFound)
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(int64(0), repository.ErrUserDuplicate)
				return repo
			},
		},
		{
			name: "查询失败",
			mock: func(ctrl *gomock.Controller) repository.UserRepository {
				repo := repomocks.NewMockUserRepository(ctrl)
				repo.EXPECT().FindByUsername(gomock.Any(), "admin").Return(domain.User{}, errors.New("db down"))
				return repo
			},
			wantErr: errors.New("db down"),
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			svc := NewUserService(tc.mock(ctrl))
			err := svc.EnsureAdmin(context.Background(), domain.User{
				Username: "admin",
				Password: "admin123",
				FullName: "Quản trị viên",
			})
			assert.Equal(t, tc.wantErr, err)
		})
	}
}

func TestUserService_MigrateLegacyPasswords(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := repomocks.NewMockUserRepository(ctrl)
	repo.EXPECT().ListAll(gomock.Any()).Return([]domain.User{
		{ID: 1, Username: "admin", Password: mustHash(t, "admin123")},
		{ID: 2, Username: "staff", Password: "plain-text"},
	}, nil)
	repo.EXPECT().UpdatePassword(gomock.Any(), int64(2), gomock.Any()).
		DoAndReturn(func(ctx context.Context, id int64, password string) error {
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(password), []byte("plain-text")))
			return nil
		})
	cnt, err := NewUserService(repo).MigrateLegacyPasswords(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, cnt)
}

func TestUserService_Login(t *testing.T) {
	hash := mustHash(t, "admin123")
	testCases := []struct {
		name     string
		mock     func(ctrl *gomock.Controller) repository.UserRepository
		password string
		wantUser domain.User
		wantErr  error
	}{
		{
			name: "登录成功",
			mock: func(ctrl *gomock.Controller) repository.UserRepository {
				repo := repomocks.NewMockUserRepository(ctrl)
				repo.EXPECT().FindByUsername(gomock.Any(), "admin").
					Return(domain.User{ID: 1, Username: "admin", Password: hash}, nil)
				return repo
			},
			password: "admin123",
			wantUser: domain.User{ID: 1, Username: "admin"},
		},
		{
			name: "密码错误",
			mock: func(ctrl *gomock.Controller) repository.UserRepository {
				repo := repomocks.NewMockUserRepository(ctrl)
				repo.EXPECT().FindByUsername(gomock.Any(), "admin").
					Return(domain.User{ID: 1, Username: "admin", Password: hash}, nil)
				return repo
			},
			password: "wrong",
			wantErr:  ErrInvalidCredentials,
		},
		{
			name: "明文密码不能直接登录",
			mock: func(ctrl *gomock.Controller) repository.UserRepository {
				repo := repomocks.NewMockUserRepository(ctrl)
				repo.EXPECT().FindByUsername(gomock.Any(), "admin").
					Return(domain.User{ID: 1, Username: "admin", Password: "admin123"}, nil)
				return repo
			},
			password: "admin123",
			wantErr:  ErrInvalidCredentials,
		},
		{
			name: "用户不存在",
			mock: func(ctrl *gomock.Controller) repository.UserRepository {
				repo := repomocks.NewMockUserRepository(ctrl)
				repo.EXPECT().FindByUsername(gomock.Any(), "admin").
					Return(domain.User{}, repository.ErrUserNotFound)
				return repo
			},
			password: "admin123",
			wantErr:  ErrInvalidCredentials,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			u, err := NewUserService(tc.mock(ctrl)).Login(context.Background(), " admin ", tc.password)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.Equal(t, tc.wantUser, u)
		})
	}
}

func TestUserService_ChangePassword(t *testing.T) {
	hash := mustHash(t, "old")
	testCases := []struct {
		name        string
		mock        func(ctrl *gomock.Controller) repository.UserRepository
		oldPassword string
		newPassword string
		confirm     string
		wantErr     error
	}{
		{
			name: "修改成功",
			mock: func(ctrl *gomock.Controller) repository.UserRepository {
				repo := repomocks.NewMockUserRepository(ctrl)
				repo.EXPECT().FindCredential(gomock.Any(), int64(1)).Return(domain.User{ID: 1, Password: hash}, nil)
				repo.EXPECT().UpdatePassword(gomock.Any(), int64(1), gomock.Any()).Return(nil)
				return repo
			},
			oldPassword: "old",
			newPassword: "new",
			confirm:     "new",
		},
		{
			name: "两次密码不一致",
			mock: func(ctrl *gomock.Controller) repository.UserRepository {
				return repomocks.NewMockUserRepository(ctrl)
			},
			oldPassword: "old",
			newPassword: "new",
			confirm:     "new2",
			wantErr:     ErrPasswordMismatch,
		},
		{
			name: "新密码为空",
			mock: func(ctrl *gomock.Controller) repository.UserRepository {
				return repomocks.NewMockUserRepository(ctrl)
			},
			oldPassword: "old",
			wantErr:     ErrInvalidPassword,
		},
		{
			name: "旧密码错误",
			mock: func(ctrl *gomock.Controller) repository.UserRepository {
				repo := repomocks.NewMockUserRepository(ctrl)
				repo.EXPECT().FindCredential(gomock.Any(), int64(1)).Return(domain.User{ID: 1, Password: hash}, nil)
				return repo
			},
			oldPassword: "wrong",
			newPassword: "new",
			confirm:     "new",
			wantErr:     ErrInvalidCredentials,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			err := NewUserService(tc.mock(ctrl)).ChangePassword(context.Background(), 1,
				tc.oldPassword, tc.newPassword, tc.confirm)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestUserService_Replace(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := repomocks.NewMockUserRepository(ctrl)
	svc := NewUserService(repo)
	// 空列表不调用仓储
	assert.NoError(t, svc.Replace(context.Background(), nil))

	us := []domain.User{{ID: 1, Username: "admin", Password: "hash"}}
	repo.EXPECT().ReplaceAll(gomock.Any(), us).Return(nil)
	assert.NoError(t, svc.Replace(context.Background(), us))
}
