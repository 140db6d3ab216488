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
	"github.com/ecodeclub/resale/internal/pkg/duration"
	"github.com/ecodeclub/resale/internal/product/internal/domain"
	"github.com/ecodeclub/resale/internal/product/internal/repository/dao"
)

var ErrProductNotFound = dao.ErrRecordNotFound

//go:generate mockgen -source=./repository.go -package=repomocks -destination=mocks/product.mock.go ProductRepository
type ProductRepository interface {
	Save(ctx context.Context, p domain.Product) (int64, error)
	FindBySN(ctx context.Context, sn string) (domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
	Delete(ctx context.Context, sn string) error
	ReplaceAll(ctx context.Context, ps []domain.Product) error
}

type productRepository struct {
	dao dao.ProductDAO
}

func NewProductRepository(d dao.ProductDAO) ProductRepository {
	return &productRepository{dao: d}
}

func (r *productRepository) Save(ctx context.Context, p domain.Product) (int64, error) {
	return r.dao.Save(ctx, r.toEntity(p), r.toVariantEntities(p.ID, p.Variants))
}

func (r *productRepository) FindBySN(ctx context.Context, sn string) (domain.Product, error) {
	p, err := r.dao.FindBySN(ctx, sn)
	if err != nil {
		return domain.Product{}, err
	}
	vs, err := r.dao.FindVariantsByProductIDs(ctx, []int64{p.Id})
	if err != nil {
		return domain.Product{}, err
	}
	return r.toDomain(p, vs), nil
}

func (r *productRepository) List(ctx context.Context) ([]domain.Product, error) {
	ps, err := r.dao.List(ctx)
	if err != nil {
		return nil, err
	}
	vs, err := r.dao.FindVariantsByProductIDs(ctx, slice.Map(ps, func(idx int, src dao.Product) int64 {
		return src.Id
	}))
	if err != nil {
		return nil, err
	}
	return r.assemble(ps, vs), nil
}

func (r *productRepository) Delete(ctx context.Context, sn string) error {
	return r.dao.DeleteBySN(ctx, sn)
}

// ReplaceAll 商品的自增 ID 按照顺序重新分配
func (r *productRepository) ReplaceAll(ctx context.Context, ps []domain.Product) error {
	entities := make([]dao.Product, 0, len(ps))
	variants := make([]dao.ProductVariant, 0, len(ps))
	for i, p := range ps {
		p.ID = int64(i + 1)
		entities = append(entities, r.toEntity(p))
		variants = append(variants, r.toVariantEntities(p.ID, p.Variants)...)
	}
	return r.dao.ReplaceAll(ctx, entities, variants)
}

func (r *productRepository) assemble(ps []dao.Product, vs []dao.ProductVariant) []domain.Product {
	grouped := make(map[int64][]dao.ProductVariant, len(ps))
	for _, v := range vs {
		grouped[v.ProductId] = append(grouped[v.ProductId], v)
	}
	return slice.Map(ps, func(idx int, src dao.Product) domain.Product {
		return r.toDomain(src, grouped[src.Id])
	})
}

func (r *productRepository) toEntity(p domain.Product) dao.Product {
	return dao.Product{
		Id:     p.ID,
		SN:     p.SN,
		Name:   p.Name,
		Source: p.Source,
		Ctime:  p.Ctime,
		Utime:  p.Utime,
	}
}

func (r *productRepository) toVariantEntities(pid int64, vs []domain.Variant) []dao.ProductVariant {
	return slice.Map(vs, func(idx int, src domain.Variant) dao.ProductVariant {
		return dao.ProductVariant{
			Id:          src.ID,
			SN:          src.SN,
			ProductId:   pid,
			Duration:    src.Duration.String(),
			ImportPrice: src.ImportPrice,
			SellPrice:   src.SellPrice,
		}
	})
}

func (r *productRepository) toDomain(p dao.Product, vs []dao.ProductVariant) domain.Product {
	return domain.Product{
		ID:     p.Id,
		SN:     p.SN,
		Name:   p.Name,
		Source: p.Source,
		Variants: slice.Map(vs, func(idx int, src dao.ProductVariant) domain.Variant {
			return domain.Variant{
				ID:          src.Id,
				SN:          src.SN,
				Duration:    duration.Label(src.Duration),
				ImportPrice: src.ImportPrice,
				SellPrice:   src.SellPrice,
			}
		}),
		Ctime: p.Ctime,
		Utime: p.Utime,
	}
}
