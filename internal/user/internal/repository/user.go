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

package repository

import (
	"context"

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/resale/internal/user/internal/domain"
	"github.com/ecodeclub/resale/internal/user/internal/repository/cache"
	"github.com/ecodeclub/resale/internal/user/internal/repository/dao"
	"github.com/gotomicro/ego/core/elog"
)

var (
	ErrUserNotFound  = dao.ErrDataNotFound
	ErrUserDuplicate = dao.ErrUserDuplicate
)

//go:generate mockgen -source=./user.go -package=repomocks -destination=mocks/user.mock.go UserRepository
type UserRepository interface {
	Create(ctx context.Context, u domain.User) (int64, error)
	// FindById 走缓存，不包含密码
	FindById(ctx context.Context, id int64) (domain.User, error)
	// FindCredential 直接查数据库，包含密码
	FindCredential(ctx context.Context, id int64) (domain.User, error)
	FindByUsername(ctx context.Context, username string) (domain.User, error)
	UpdateFullName(ctx context.Context, id int64, fullName string) error
	UpdatePassword(ctx context.Context, id int64, password string) error
	ListAll(ctx context.Context) ([]domain.User, error)
	ReplaceAll(ctx context.Context, us []domain.User) error
}

type CachedUserRepository struct {
	dao    dao.UserDAO
	cache  cache.UserCache
	logger *elog.Component
}

func NewCachedUserRepository(d dao.UserDAO, c cache.UserCache) UserRepository {
	return &CachedUserRepository{
		dao:    d,
		cache:  c,
		logger: elog.DefaultLogger,
	}
}

func (ur *CachedUserRepository) Create(ctx context.Context, u domain.User) (int64, error) {
	return ur.dao.Insert(ctx, ur.toEntity(u))
}

func (ur *CachedUserRepository) FindById(ctx context.Context, id int64) (domain.User, error) {
	du, err := ur.cache.Get(ctx, id)
	if err == nil {
		return du, nil
	}
	u, err := ur.dao.FindById(ctx, id)
	if err != nil {
		return domain.User{}, err
	}
	du = ur.toDomain(u)
	du.Password = ""
	// 忽略掉这里的错误
	_ = ur.cache.Set(ctx, du)
	return du, nil
}

func (ur *CachedUserRepository) FindCredential(ctx context.Context, id int64) (domain.User, error) {
	u, err := ur.dao.FindById(ctx, id)
	return ur.toDomain(u), err
}

func (ur *CachedUserRepository) FindByUsername(ctx context.Context, username string) (domain.User, error) {
	u, err := ur.dao.FindByUsername(ctx, username)
	return ur.toDomain(u), err
}

func (ur *CachedUserRepository) UpdateFullName(ctx context.Context, id int64, fullName string) error {
	if err := ur.dao.UpdateFullName(ctx, id, fullName); err != nil {
		return err
	}
	ur.evict(ctx, id)
	return nil
}

func (ur *CachedUserRepository) UpdatePassword(ctx context.Context, id int64, password string) error {
	return ur.dao.UpdatePassword(ctx, id, password)
}

func (ur *CachedUserRepository) ListAll(ctx context.Context) ([]domain.User, error) {
	us, err := ur.dao.ListAll(ctx)
	return slice.Map(us, func(idx int, src dao.User) domain.User {
		return ur.toDomain(src)
	}), err
}

// ReplaceAll 替换前后的用户缓存都要删除
func (ur *CachedUserRepository) ReplaceAll(ctx context.Context, us []domain.User) error {
	olds, err := ur.dao.ListAll(ctx)
	if err != nil {
		return err
	}
	err = ur.dao.ReplaceAll(ctx, slice.Map(us, func(idx int, src domain.User) dao.User {
		return ur.toEntity(src)
	}))
	if err != nil {
		return err
	}
	ids := make(map[int64]struct{}, len(olds)+len(us))
	for _, u := range olds {
		ids[u.Id] = struct{}{}
	}
	for _, u := range us {
		ids[u.ID] = struct{}{}
	}
	for id := range ids {
		ur.evict(ctx, id)
	}
	return nil
}

func (ur *CachedUserRepository) evict(ctx context.Context, id int64) {
	if err := ur.cache.Delete(ctx, id); err != nil {
		ur.logger.Warn("删除用户缓存失败", elog.FieldErr(err), elog.Int64("uid", id))
	}
}

func (ur *CachedUserRepository) toDomain(u dao.User) domain.User {
	return domain.User{
		ID:       u.Id,
		Username: u.Username,
		Password: u.Password,
		FullName: u.FullName,
		Ctime:    u.Ctime,
		Utime:    u.Utime,
	}
}

func (ur *CachedUserRepository) toEntity(u domain.User) dao.User {
	return dao.User{
		Id:       u.ID,
		Username: u.Username,
		Password: u.Password,
		FullName: u.FullName,
		Ctime:    u.Ctime,
		Utime:    u.Utime,
	}
}
