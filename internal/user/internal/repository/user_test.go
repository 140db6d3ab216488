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
	"errors"
	"testing"

	"github.com/ecodeclub/resale/internal/user/internal/domain"
	"github.com/ecodeclub/resale/internal/user/internal/repository/dao"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryUserDAO struct {
	dao.UserDAO
	rows map[int64]dao.User
}

func (m *memoryUserDAO) FindById(ctx context.Context, id int64) (dao.User, error) {
	u, ok := m.rows[id]
	if !ok {
		return dao.User{}, dao.ErrDataNotFound
	}
	return u, nil
}

func (m *memoryUserDAO) ListAll(ctx context.Context) ([]dao.User, error) {
	res := make([]dao.User, 0, len(m.rows))
	for _, u := range m.rows {
		res = append(res, u)
	}
	return res, nil
}

func (m *memoryUserDAO) ReplaceAll(ctx context.Context, us []dao.User) error {
	m.rows = make(map[int64]dao.User, len(us))
	for _, u := range us {
		m.rows[u.Id] = u
	}
	return nil
}

type memoryUserCache struct {
	items map[int64]domain.User
}

func (m *memoryUserCache) Get(ctx context.Context, id int64) (domain.User, error) {
	u, ok := m.items[id]
	if !ok {
		return domain.User{}, errors.New("key not found")
	}
	return u, nil
}

func (m *memoryUserCache) Set(ctx context.Context, u domain.User) error {
	m.items[u.ID] = u
	return nil
}

func (m *memoryUserCache) Delete(ctx context.Context, id int64) error {
	delete(m.items, id)
	return nil
}

func TestCachedUserRepository_ReplaceAll(t *testing.T) {
	d := &memoryUserDAO{rows: map[int64]dao.User{
		1: {Id: 1, Username: "admin", FullName: "Admin"},
		2: {Id: 2, Username: "staff", FullName: "Staff"},
	}}
	c := &memoryUserCache{items: map[int64]domain.User{}}
	repo := NewCachedUserRepository(d, c)
	ctx := context.Background()

	for _, id := range []int64{1, 2} {
		_, err := repo.FindById(ctx, id)
		require.NoError(t, err)
	}
	require.Len(t, c.items, 2)

	err := repo.ReplaceAll(ctx, []domain.User{{ID: 1, Username: "admin", FullName: "Quản trị"}})
	require.NoError(t, err)

	// 被移除的用户缓存也要删除
	_, err = repo.FindById(ctx, 2)
	assert.ErrorIs(t, err, ErrUserNotFound)
	u, err := repo.FindById(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Quản trị", u.FullName)
}
