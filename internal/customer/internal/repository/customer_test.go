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

	"github.com/ecodeclub/resale/internal/customer/internal/domain"
	"github.com/ecodeclub/resale/internal/customer/internal/repository/cache"
	cachemocks "github.com/ecodeclub/resale/internal/customer/internal/repository/cache/mocks"
	"github.com/ecodeclub/resale/internal/customer/internal/repository/dao"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fakeCustomerDAO struct {
	dao.CustomerDAO
	customer dao.Customer
	err      error
	calls    int
}

func (f *fakeCustomerDAO) FindBySN(ctx context.Context, sn string) (dao.Customer, error) {
	f.calls++
	return f.customer, f.err
}

func (f *fakeCustomerDAO) DeleteBySN(ctx context.Context, sn string) error {
	f.calls++
	return f.err
}

func TestCachedCustomerRepository_FindBySN(t *testing.T) {
	cached := domain.Customer{ID: 1, SN: "KH1", Name: "A", Phone: "0901"}
	testCases := []struct {
		name      string
		cache     func(ctrl *gomock.Controller) cache.CustomerCache
		dao       *fakeCustomerDAO
		want      domain.Customer
		wantErr   error
		wantCalls int
	}{
		{
			name: "命中缓存",
			cache: func(ctrl *gomock.Controller) cache.CustomerCache {
				c := cachemocks.NewMockCustomerCache(ctrl)
				c.EXPECT().Get(gomock.Any(), "KH1").Return(cached, nil)
				return c
			},
			dao:  &fakeCustomerDAO{},
			want: cached,
		},
		{
			name: "未命中缓存回写",
			cache: func(ctrl *gomock.Controller) cache.CustomerCache {
				c := cachemocks.NewMockCustomerCache(ctrl)
				c.EXPECT().Get(gomock.Any(), "KH1").Return(domain.Customer{}, errors.New("key not found"))
				c.EXPECT().Set(gomock.Any(), cached).Return(nil)
				return c
			},
			dao: &fakeCustomerDAO{
				customer: dao.Customer{Id: 1, SN: "KH1", Name: "A", Phone: "0901"},
			},
			want:      cached,
			wantCalls: 1,
		},
		{
			name: "客户不存在",
			cache: func(ctrl *gomock.Controller) cache.CustomerCache {
				c := cachemocks.NewMockCustomerCache(ctrl)
				c.EXPECT().Get(gomock.Any(), "KH1").Return(domain.Customer{}, errors.New("key not found"))
				return c
			},
			dao:       &fakeCustomerDAO{err: dao.ErrRecordNotFound},
			wantErr:   ErrCustomerNotFound,
			wantCalls: 1,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			repo := NewCachedCustomerRepository(tc.dao, tc.cache(ctrl))
			c, err := repo.FindBySN(context.Background(), "KH1")
			assert.ErrorIs(t, err, tc.wantErr)
			assert.Equal(t, tc.want, c)
			assert.Equal(t, tc.wantCalls, tc.dao.calls)
		})
	}
}

func TestCachedCustomerRepository_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	c := cachemocks.NewMockCustomerCache(ctrl)
	// 删除缓存失败只记录日志
	c.EXPECT().Delete(gomock.Any(), "KH1").Return(errors.New("redis down"))
	repo := NewCachedCustomerRepository(&fakeCustomerDAO{}, c)
	assert.NoError(t, repo.Delete(context.Background(), "KH1"))
}

// memoryCustomerDAO 只实现替换需要的方法
type memoryCustomerDAO struct {
	dao.CustomerDAO
	rows map[string]dao.Customer
}

func (m *memoryCustomerDAO) FindBySN(ctx context.Context, sn string) (dao.Customer, error) {
	c, ok := m.rows[sn]
	if !ok {
		return dao.Customer{}, dao.ErrRecordNotFound
	}
	return c, nil
}

func (m *memoryCustomerDAO) ListAll(ctx context.Context) ([]dao.Customer, error) {
	res := make([]dao.Customer, 0, len(m.rows))
	for _, c := range m.rows {
		res = append(res, c)
	}
	return res, nil
}

func (m *memoryCustomerDAO) ReplaceAll(ctx context.Context, cs []dao.Customer) error {
	m.rows = make(map[string]dao.Customer, len(cs))
	for _, c := range cs {
		m.rows[c.SN] = c
	}
	return nil
}

type memoryCustomerCache struct {
	items map[string]domain.Customer
}

func (m *memoryCustomerCache) Get(ctx context.Context, sn string) (domain.Customer, error) {
	c, ok := m.items[sn]
	if !ok {
		return domain.Customer{}, errors.New("key not found")
	}
	return c, nil
}

func (m *memoryCustomerCache) Set(ctx context.Context, c domain.Customer) error {
	m.items[c.SN] = c
	return nil
}

func (m *memoryCustomerCache) Delete(ctx context.Context, sn string) error {
	delete(m.items, sn)
	return nil
}

func TestCachedCustomerRepository_ReplaceAll(t *testing.T) {
	d := &memoryCustomerDAO{rows: map[string]dao.Customer{
		"KH-OLD": {Id: 1, SN: "KH-OLD", Name: "Old", Phone: "0901"},
	}}
	c := &memoryCustomerCache{items: map[string]domain.Customer{}}
	repo := NewCachedCustomerRepository(d, c)
	ctx := context.Background()

	// 先把旧客户读进缓存
	_, err := repo.FindBySN(ctx, "KH-OLD")
	require.NoError(t, err)
	require.Contains(t, c.items, "KH-OLD")

	err = repo.ReplaceAll(ctx, []domain.Customer{{ID: 1, SN: "KH-NEW", Name: "New", Phone: "0902"}})
	require.NoError(t, err)

	// 备份里面没有的客户不能再从缓存里面读到
	_, err = repo.FindBySN(ctx, "KH-OLD")
	assert.ErrorIs(t, err, ErrCustomerNotFound)
	nc, err := repo.FindBySN(ctx, "KH-NEW")
	require.NoError(t, err)
	assert.Equal(t, "New", nc.Name)
}
