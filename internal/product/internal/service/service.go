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

	"github.com/ecodeclub/resale/internal/pkg/duration"
	"github.com/ecodeclub/resale/internal/pkg/sequencenumber"
	"github.com/ecodeclub/resale/internal/pkg/snowflake"
	"github.com/ecodeclub/resale/internal/product/internal/domain"
	"github.com/ecodeclub/resale/internal/product/internal/repository"
)

var (
	ErrInvalidProduct  = errors.New("商品信息不合法")
	ErrProductNotFound = repository.ErrProductNotFound
	ErrVariantNotFound = errors.New("商品规格不存在")
)

//go:generate mockgen -source=./service.go -destination=../../mocks/product.mock.go -package=productmocks Service
type Service interface {
	// Save 新建或者编辑商品，返回商品编号
	Save(ctx context.Context, p domain.Product) (string, error)
	Detail(ctx context.Context, sn string) (domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
	// FindVariant 下单的时候使用，返回的是当前的价格
	FindVariant(ctx context.Context, productSN, variantSN string) (domain.Product, domain.Variant, error)
	// Delete 删除商品，已经产生的订单保留了自己的快照，不受影响
	Delete(ctx context.Context, sn string) error
	Export(ctx context.Context) ([]domain.Product, error)
	Replace(ctx context.Context, ps []domain.Product) error
}

type service struct {
	repo        repository.ProductRepository
	snGenerator *sequencenumber.Generator
}

func NewService(repo repository.ProductRepository, snGenerator *sequencenumber.Generator) Service {
	return &service{repo: repo, snGenerator: snGenerator}
}

func (s *service) Save(ctx context.Context, p domain.Product) (string, error) {
	if err := s.validate(p); err != nil {
		return "", err
	}
	var err error
	if p.SN == "" {
		p.SN, err = s.snGenerator.Generate(snowflake.KindProduct)
		if err != nil {
			return "", fmt.Errorf("生成商品编号失败: %w", err)
		}
	}
	for i := range p.Variants {
		if p.Variants[i].SN != "" {
			continue
		}
		p.Variants[i].SN, err = s.snGenerator.Generate(snowflake.KindVariant)
		if err != nil {
			return "", fmt.Errorf("生成规格编号失败: %w", err)
		}
	}
	_, err = s.repo.Save(ctx, p)
	return p.SN, err
}

func (s *service) validate(p domain.Product) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: 商品名称为空", ErrInvalidProduct)
	}
	if !p.Orderable() {
		return fmt.Errorf("%w: 至少需要一个规格", ErrInvalidProduct)
	}
	for _, v := range p.Variants {
		if !v.Duration.Valid() {
			return fmt.Errorf("%w: 使用时长 %q 不在可选范围内", ErrInvalidProduct, v.Duration)
		}
		if v.ImportPrice < 0 || v.SellPrice < 0 {
			return fmt.Errorf("%w: 价格不能为负数", ErrInvalidProduct)
		}
	}
	return nil
}

func (s *service) Detail(ctx context.Context, sn string) (domain.Product, error) {
	return s.repo.FindBySN(ctx, sn)
}

func (s *service) List(ctx context.Context) ([]domain.Product, error) {
	return s.repo.List(ctx)
}

func (s *service) FindVariant(ctx context.Context, productSN, variantSN string) (domain.Product, domain.Variant, error) {
	p, err := s.repo.FindBySN(ctx, productSN)
	if err != nil {
		return domain.Product{}, domain.Variant{}, fmt.Errorf("查找商品 %s 失败: %w", productSN, err)
	}
	if variantSN == "" && len(p.Variants) == 1 {
		return p, p.Variants[0], nil
	}
	v, ok := p.Variant(variantSN)
	if !ok {
		return domain.Product{}, domain.Variant{}, fmt.Errorf("%w: %s/%s", ErrVariantNotFound, productSN, variantSN)
	}
	return p, v, nil
}

func (s *service) Delete(ctx context.Context, sn string) error {
	return s.repo.Delete(ctx, sn)
}

func (s *service) Export(ctx context.Context) ([]domain.Product, error) {
	return s.repo.List(ctx)
}

func (s *service) Replace(ctx context.Context, ps []domain.Product) error {
	return s.repo.ReplaceAll(ctx, ps)
}

// Durations 可选的使用时长
func Durations() []duration.Label {
	return duration.Options
}
