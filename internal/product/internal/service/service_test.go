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

	"github.com/ecodeclub/resale/internal/pkg/duration"
	"github.com/ecodeclub/resale/internal/pkg/sequencenumber"
	"github.com/ecodeclub/resale/internal/pkg/snowflake"
	"github.com/ecodeclub/resale/internal/product/internal/domain"
	"github.com/ecodeclub/resale/internal/product/internal/repository"
	repomocks "github.com/ecodeclub/resale/internal/product/internal/repository/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestSNGenerator() *sequencenumber.Generator {
	seq := int64(0)
	return sequencenumber.NewGeneratorWith(func(kind snowflake.Kind) (snowflake.ID, error) {
		seq++
		return snowflake.ID(seq), nil
	}, func() string {
		return "abcd"
	})
}

func TestService_Save(t *testing.T) {
	testCases := []struct {
		name    string
		mock    func(ctrl *gomock.Controller) repository.ProductRepository
		product domain.Product
		wantSN  string
		wantErr error
	}{
		{
			name: "新建商品生成编号",
			mock: func(ctrl *gomock.Controller) repository.ProductRepository {
				repo := repomocks.NewMockProductRepository(ctrl)
				repo.EXPECT().Save(gomock.Any(), gomock.Any()).
					DoAndReturn(func(ctx context.Context, p domain.Product) (int64, error) {
						assert.Equal(t, "SP1abcd", p.SN)
						require.Len(t, p.Variants, 2)
						assert.Equal(t, "GH2abcd", p.Variants[0].SN)
						// 已有编号的规格保持不变
						assert.Equal(t, "GH-OLD", p.Variants[1].SN)
						return 1, nil
					})
				return repo
			},
			product: domain.Product{
				Name:   "Netflix",
				Source: "shop A",
				Variants: []domain.Variant{
					{Duration: duration.OneMonth, ImportPrice: 25000, SellPrice: 40000},
					{SN: "GH-OLD", Duration: duration.OneYear, ImportPrice: 250000, SellPrice: 400000},
				},
			},
			wantSN: "SP1abcd",
		},
		{
			name: "编辑商品保留编号",
			mock: func(ctrl *gomock.Controller) repository.ProductRepository {
				repo := repomocks.NewMockProductRepository(ctrl)
				repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(int64(3), nil)
				return repo
			},
			product: domain.Product{
				SN:   "SP-EXISTING",
				Name: "Spotify",
				Variants: []domain.Variant{
					{SN: "GH-1", Duration: duration.Lifetime, ImportPrice: 10000, SellPrice: 30000},
				},
			},
			wantSN: "SP-EXISTING",
		},
		{
			name: "没有规格",
			mock: func(ctrl *gomock.Controller) repository.ProductRepository {
				return repomocks.NewMockProductRepository(ctrl)
			},
			product: domain.Product{Name: "Youtube"},
			wantErr: ErrInvalidProduct,
		},
		{
			name: "名称为空",
			mock: func(ctrl *gomock.Controller) repository.ProductRepository {
				return repomocks.NewMockProductRepository(ctrl)
			},
			product: domain.Product{
				Variants: []domain.Variant{{Duration: duration.OneMonth}},
			},
			wantErr: ErrInvalidProduct,
		},
		{
			name: "时长不合法",
			mock: func(ctrl *gomock.Controller) repository.ProductRepository {
				return repomocks.NewMockProductRepository(ctrl)
			},
			product: domain.Product{
				Name:     "Youtube",
				Variants: []domain.Variant{{Duration: "4 tháng"}},
			},
			wantErr: ErrInvalidProduct,
		},
		{
			name: "价格为负数",
			mock: func(ctrl *gomock.Controller) repository.ProductRepository {
				return repomocks.NewMockProductRepository(ctrl)
			},
			product: domain.Product{
				Name:     "Youtube",
				Variants: []domain.Variant{{Duration: duration.OneMonth, SellPrice: -1}},
			},
			wantErr: ErrInvalidProduct,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			svc := NewService(tc.mock(ctrl), newTestSNGenerator())
			sn, err := svc.Save(context.Background(), tc.product)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.Equal(t, tc.wantSN, sn)
		})
	}
}

func TestService_FindVariant(t *testing.T) {
	product := domain.Product{
		SN:   "SP1",
		Name: "Netflix",
		Variants: []domain.Variant{
			{SN: "GH1", Duration: duration.OneMonth, ImportPrice: 25000, SellPrice: 40000},
			{SN: "GH2", Duration: duration.OneYear, ImportPrice: 250000, SellPrice: 400000},
		},
	}
	testCases := []struct {
		name        string
		mock        func(ctrl *gomock.Controller) repository.ProductRepository
		productSN   string
		variantSN   string
		wantVariant domain.Variant
		wantErr     error
	}{
		{
			name: "找到规格",
			mock: func(ctrl *gomock.Controller) repository.ProductRepository {
				repo := repomocks.NewMockProductRepository(ctrl)
				repo.EXPECT().FindBySN(gomock.Any(), "SP1").Return(product, nil)
				return repo
			},
			productSN:   "SP1",
			variantSN:   "GH2",
			wantVariant: product.Variants[1],
		},
		{
			name: "规格不存在",
			mock: func(ctrl *gomock.Controller) repository.ProductRepository {
				repo := repomocks.NewMockProductRepository(ctrl)
				repo.EXPECT().FindBySN(gomock.Any(), "SP1").Return(product, nil)
				return repo
			},
			productSN: "SP1",
			variantSN: "GH3",
			wantErr:   ErrVariantNotFound,
		},
		{
			name: "只有一个规格的时候可以不指定",
			mock: func(ctrl *gomock.Controller) repository.ProductRepository {
				repo := repomocks.NewMockProductRepository(ctrl)
				repo.EXPECT().FindBySN(gomock.Any(), "SP2").Return(domain.Product{
					SN:       "SP2",
					Variants: product.Variants[:1],
				}, nil)
				return repo
			},
			productSN:   "SP2",
			wantVariant: product.Variants[0],
		},
		{
			name: "商品不存在",
			mock: func(ctrl *gomock.Controller) repository.ProductRepository {
				repo := repomocks.NewMockProductRepository(ctrl)
				repo.EXPECT().FindBySN(gomock.Any(), "SP9").Return(domain.Product{}, ErrProductNotFound)
				return repo
			},
			productSN: "SP9",
			variantSN: "GH1",
			wantErr:   ErrProductNotFound,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			svc := NewService(tc.mock(ctrl), newTestSNGenerator())
			_, v, err := svc.FindVariant(context.Background(), tc.productSN, tc.variantSN)
			assert.True(t, errors.Is(err, tc.wantErr))
			assert.Equal(t, tc.wantVariant, v)
		})
	}
}
