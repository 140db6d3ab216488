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
	"github.com/ecodeclub/resale/internal/customer/internal/domain"
	"github.com/ecodeclub/resale/internal/customer/internal/repository/cache"
	"github.com/ecodeclub/resale/internal/customer/internal/repository/dao"
	"github.com/gotomicro/ego/core/elog"
)

var (
	ErrCustomerNotFound = dao.ErrRecordNotFound
	ErrDuplicatePhone   = dao.ErrDuplicatePhone
)

//go:generate mockgen -source=./customer.go -package=repomocks -destination=mocks/customer.mock.go CustomerRepository
type CustomerRepository interface {
	Create(ctx context.Context, c domain.Customer) (int64, error)
	Update(ctx context.Context, c domain.Customer) error
	FindBySN(ctx context.Context, sn string) (domain.Customer, error)
	FindByPhone(ctx context.Context, phone string) (domain.Customer, error)
	List(ctx context.Context, search string, offset, limit int) ([]domain.Customer, error)
	Count(ctx context.Context, search string) (int64, error)
	Delete(ctx context.Context, sn string) error
	ListAll(ctx context.Context) ([]domain.Customer, error)
	ReplaceAll(ctx context.Context, cs []domain.Customer) error
}

// CachedCustomerRepository 详情走缓存，修改和删除的时候删除缓存
type CachedCustomerRepository struct {
	dao    dao.CustomerDAO
	cache  cache.CustomerCache
	logger *elog.Component
}

func NewCachedCustomerRepository(d dao.CustomerDAO, c cache.CustomerCache) CustomerRepository {
	return &CachedCustomerRepository{
		dao:    d,
		cache:  c,
		logger: elog.DefaultLogger,
	}
}

func (r *CachedCustomerRepository) Create(ctx context.Context, c domain.Customer) (int64, error) {
	return r.dao.Insert(ctx, r.toEntity(c))
}

func (r *CachedCustomerRepository) Update(ctx context.Context, c domain.Customer) error {
	err := r.dao.Update(ctx, r.toEntity(c))
	if err != nil {
		return err
	}
	r.evict(ctx, c.SN)
	return nil
}

func (r *CachedCustomerRepository) FindBySN(ctx context.Context, sn string) (domain.Customer, error) {
	c, err := r.cache.Get(ctx, sn)
	if err == nil {
		return c, nil
	}
	ce, err := r.dao.FindBySN(ctx, sn)
	if err != nil {
		return domain.Customer{}, err
	}
	c = r.toDomain(ce)
	// 忽略掉这里的错误
	_ = r.cache.Set(ctx, c)
	return c, nil
}

func (r *CachedCustomerRepository) FindByPhone(ctx context.Context, phone string) (domain.Customer, error) {
	ce, err := r.dao.FindByPhone(ctx, phone)
	return r.toDomain(ce), err
}

func (r *CachedCustomerRepository) List(ctx context.Context, search string, offset, limit int) ([]domain.Customer, error) {
	cs, err := r.dao.List(ctx, search, offset, limit)
	return r.toDomains(cs), err
}

func (r *CachedCustomerRepository) Count(ctx context.Context, search string) (int64, error) {
	return r.dao.Count(ctx, search)
}

func (r *CachedCustomerRepository) Delete(ctx context.Context, sn string) error {
	err := r.dao.DeleteBySN(ctx, sn)
	if err != nil {
		return err
	}
	r.evict(ctx, sn)
	return nil
}

func (r *CachedCustomerRepository) ListAll(ctx context.Context) ([]domain.Customer, error) {
	cs, err := r.dao.ListAll(ctx)
	return r.toDomains(cs), err
}

// ReplaceAll 替换前后的客户缓存都要删除
func (r *CachedCustomerRepository) ReplaceAll(ctx context.Context, cs []domain.Customer) error {
	olds, err := r.dao.ListAll(ctx)
	if err != nil {
		return err
	}
	err = r.dao.ReplaceAll(ctx, slice.Map(cs, func(idx int, src domain.Customer) dao.Customer {
		return r.toEntity(src)
	}))
	if err != nil {
		return err
	}
	sns := make(map[string]struct{}, len(olds)+len(cs))
	for _, c := range olds {
		sns[c.SN] = struct{}{}
	}
	for _, c := range cs {
		sns[c.SN] = struct{}{}
	}
	for sn := range sns {
		r.evict(ctx, sn)
	}
	return nil
}

func (r *CachedCustomerRepository) evict(ctx context.Context, sn string) {
	if err := r.cache.Delete(ctx, sn); err != nil {
		r.logger.Warn("删除客户缓存失败", elog.FieldErr(err), elog.String("sn", sn))
	}
}

func (r *CachedCustomerRepository) toDomains(cs []dao.Customer) []domain.Customer {
	return slice.Map(cs, func(idx int, src dao.Customer) domain.Customer {
		return r.toDomain(src)
	})
}

func (r *CachedCustomerRepository) toEntity(c domain.Customer) dao.Customer {
	return dao.Customer{
		Id:         c.ID,
		SN:         c.SN,
		Name:       c.Name,
		Phone:      c.Phone,
		Email:      c.Email,
		SocialLink: c.SocialLink,
		Ctime:      c.Ctime,
		Utime:      c.Utime,
	}
}

func (r *CachedCustomerRepository) toDomain(c dao.Customer) domain.Customer {
	return domain.Customer{
		ID:         c.Id,
		SN:         c.SN,
		Name:       c.Name,
		Phone:      c.Phone,
		Email:      c.Email,
		SocialLink: c.SocialLink,
		Ctime:      c.Ctime,
		Utime:      c.Utime,
	}
}
