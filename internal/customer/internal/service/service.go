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

	"github.com/ecodeclub/resale/internal/customer/internal/domain"
	"github.com/ecodeclub/resale/internal/customer/internal/repository"
	"github.com/ecodeclub/resale/internal/pkg/sequencenumber"
	"github.com/ecodeclub/resale/internal/pkg/snowflake"
	"golang.org/x/sync/errgroup"
)

var (
	ErrInvalidCustomer  = errors.New("客户姓名和手机号不能为空")
	ErrCustomerNotFound = repository.ErrCustomerNotFound
	ErrDuplicatePhone   = repository.ErrDuplicatePhone
)

//go:generate mockgen -source=./service.go -destination=../../mocks/customer.mock.go -package=customermocks Service
type Service interface {
	// Save SN 为空的时候新建，否则编辑
	Save(ctx context.Context, c domain.Customer) (domain.Customer, error)
	// FindOrCreate 手机号相同的认为是同一个客户，直接复用
	FindOrCreate(ctx context.Context, c domain.Customer) (domain.Customer, error)
	Detail(ctx context.Context, sn string) (domain.Customer, error)
	// List 按照姓名、手机号、邮箱搜索
	List(ctx context.Context, search string, offset, limit int) ([]domain.Customer, int64, error)
	Count(ctx context.Context) (int64, error)
	Delete(ctx context.Context, sn string) error
	Export(ctx context.Context) ([]domain.Customer, error)
	Replace(ctx context.Context, cs []domain.Customer) error
}

type service struct {
	repo        repository.CustomerRepository
	snGenerator *sequencenumber.Generator
}

func NewService(repo repository.CustomerRepository, snGenerator *sequencenumber.Generator) Service {
	return &service{repo: repo, snGenerator: snGenerator}
}

func (s *service) Save(ctx context.Context, c domain.Customer) (domain.Customer, error) {
	c = s.normalize(c)
	if !c.Identified() {
		return domain.Customer{}, ErrInvalidCustomer
	}
	if c.SN != "" {
		return c, s.repo.Update(ctx, c)
	}
	return s.create(ctx, c)
}

func (s *service) FindOrCreate(ctx context.Context, c domain.Customer) (domain.Customer, error) {
	c = s.normalize(c)
	if !c.Identified() {
		return domain.Customer{}, ErrInvalidCustomer
	}
	found, err := s.repo.FindByPhone(ctx, c.Phone)
	switch {
	case err == nil:
		return found, nil
	case !errors.Is(err, ErrCustomerNotFound):
		return domain.Customer{}, err
	}
	res, err := s.create(ctx, c)
	if errors.Is(err, ErrDuplicatePhone) {
		// 并发创建的时候被别人抢先了
		return s.repo.FindByPhone(ctx, c.Phone)
	}
	return res, err
}

func (s *service) create(ctx context.Context, c domain.Customer) (domain.Customer, error) {
	sn, err := s.snGenerator.Generate(snowflake.KindCustomer)
	if err != nil {
		return domain.Customer{}, fmt.Errorf("生成客户编号失败: %w", err)
	}
	c.SN = sn
	c.ID, err = s.repo.Create(ctx, c)
	if err != nil {
		return domain.Customer{}, err
	}
	return c, nil
}

func (s *service) normalize(c domain.Customer) domain.Customer {
	c.Name = strings.TrimSpace(c.Name)
	c.Phone = strings.TrimSpace(c.Phone)
	c.Email = strings.TrimSpace(c.Email)
	c.SocialLink = strings.TrimSpace(c.SocialLink)
	return c
}

func (s *service) Detail(ctx context.Context, sn string) (domain.Customer, error) {
	return s.repo.FindBySN(ctx, sn)
}

func (s *service) List(ctx context.Context, search string, offset, limit int) ([]domain.Customer, int64, error) {
	var (
		eg    errgroup.Group
		cs    []domain.Customer
		total int64
	)
	search = strings.TrimSpace(search)
	eg.Go(func() error {
		var err error
		cs, err = s.repo.List(ctx, search, offset, limit)
		return err
	})
	eg.Go(func() error {
		var err error
		total, err = s.repo.Count(ctx, search)
		return err
	})
	return cs, total, eg.Wait()
}

func (s *service) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx, "")
}

func (s *service) Delete(ctx context.Context, sn string) error {
	return s.repo.Delete(ctx, sn)
}

func (s *service) Export(ctx context.Context) ([]domain.Customer, error) {
	return s.repo.ListAll(ctx)
}

func (s *service) Replace(ctx context.Context, cs []domain.Customer) error {
	return s.repo.ReplaceAll(ctx, cs)
}
