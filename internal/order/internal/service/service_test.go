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
	"time"

	"github.com/ecodeclub/resale/internal/customer"
	customermocks "github.com/ecodeclub/resale/internal/customer/mocks"
	"github.com/ecodeclub/resale/internal/order/internal/domain"
	"github.com/ecodeclub/resale/internal/order/internal/event"
	evtmocks "github.com/ecodeclub/resale/internal/order/internal/event/mocks"
	"github.com/ecodeclub/resale/internal/order/internal/repository"
	repomocks "github.com/ecodeclub/resale/internal/order/internal/repository/mocks"
	"github.com/ecodeclub/resale/internal/pkg/duration"
	"github.com/ecodeclub/resale/internal/pkg/sequencenumber"
	"github.com/ecodeclub/resale/internal/pkg/snowflake"
	"github.com/ecodeclub/resale/internal/product"
	productmocks "github.com/ecodeclub/resale/internal/product/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var testNow = time.Date(2024, 5, 15, 12, 0, 0, 0, time.UTC)

func newTestSNGenerator() *sequencenumber.Generator {
	return sequencenumber.NewGeneratorWith(func(kind snowflake.Kind) (snowflake.ID, error) {
		return snowflake.ID(35), nil
	}, func() string {
		return "abcd"
	})
}

type mocks struct {
	repo     *repomocks.MockOrderRepository
	product  *productmocks.MockService
	customer *customermocks.MockService
	producer *evtmocks.MockOrderEventProducer
}

func newMocks(ctrl *gomock.Controller) mocks {
	return mocks{
		repo:     repomocks.NewMockOrderRepository(ctrl),
		product:  productmocks.NewMockService(ctrl),
		customer: customermocks.NewMockService(ctrl),
		producer: evtmocks.NewMockOrderEventProducer(ctrl),
	}
}

func (m mocks) newService() *service {
	return newService(m.repo, m.product, m.customer, newTestSNGenerator(), m.producer,
		func() time.Time { return testNow })
}

var (
	netflix = product.Product{
		SN:   "SP1",
		Name: "Netflix",
		Variants: []product.Variant{
			{SN: "GH1", Duration: duration.OneMonth, ImportPrice: 25000, SellPrice: 40000},
		},
	}
	spotify = product.Product{
		SN:   "SP2",
		Name: "Spotify",
		Variants: []product.Variant{
			{SN: "GH2", Duration: duration.OneYear, ImportPrice: 150000, SellPrice: 300000},
		},
	}
	buyerA = customer.Customer{SN: "KH1", Name: "Nguyễn Văn A", Phone: "0901234567"}
)

func TestService_CreateOrder(t *testing.T) {
	testCases := []struct {
		name      string
		before    func(m mocks)
		cart      domain.Cart
		wantOrder domain.Order
		wantErr   error
	}{
		{
			name: "已有客户多个商品",
			before: func(m mocks) {
				m.customer.EXPECT().Detail(gomock.Any(), "KH1").Return(buyerA, nil)
				m.product.EXPECT().FindVariant(gomock.Any(), "SP1", "GH1").
					Return(netflix, netflix.Variants[0], nil)
				m.product.EXPECT().FindVariant(gomock.Any(), "SP2", "").
					Return(spotify, spotify.Variants[0], nil)
				m.repo.EXPECT().CreateOrder(gomock.Any(), domain.Order{
					SN:            "DHZabcd",
					CustomerSN:    "KH1",
					CustomerName:  "Nguyễn Văn A",
					CustomerPhone: "0901234567",
					Items: []domain.OrderItem{
						{ProductSN: "SP1", VariantSN: "GH1", Name: "Netflix (2 tháng)",
							PriceAtSale: 70000, CostAtSale: 25000, UsageTime: duration.TwoMonths},
						{ProductSN: "SP2", VariantSN: "GH2", Name: "Spotify (1 năm)",
							PriceAtSale: 300000, CostAtSale: 150000, UsageTime: duration.OneYear},
					},
					TotalAmount: 370000,
					Status:      domain.StatusCompleted,
					Notes:       "khách quen",
					Ctime:       testNow.UnixMilli(),
				}).Return(int64(1), nil)
				m.producer.EXPECT().Produce(gomock.Any(), event.OrderEvent{
					SN:         "DHZabcd",
					Type:       event.TypeCreated,
					CustomerSN: "KH1",
					Amount:     370000,
					Ctime:      testNow.UnixMilli(),
				}).Return(nil)
			},
			cart: domain.Cart{
				CustomerSN: "KH1",
				Lines: []domain.CartLine{
					{ProductSN: "SP1", VariantSN: "GH1", PriceOverride: ptr(70000), UsageTime: duration.TwoMonths},
					{ProductSN: "SP2"},
				},
				Notes: " khách quen ",
			},
			wantOrder: domain.Order{
				ID:            1,
				SN:            "DHZabcd",
				CustomerSN:    "KH1",
				CustomerName:  "Nguyễn Văn A",
				CustomerPhone: "0901234567",
				Items: []domain.OrderItem{
					{ProductSN: "SP1", VariantSN: "GH1", Name: "Netflix (2 tháng)",
						PriceAtSale: 70000, CostAtSale: 25000, UsageTime: duration.TwoMonths},
					{ProductSN: "SP2", VariantSN: "GH2", Name: "Spotify (1 năm)",
						PriceAtSale: 300000, CostAtSale: 150000, UsageTime: duration.OneYear},
				},
				TotalAmount: 370000,
				Status:      domain.StatusCompleted,
				Notes:       "khách quen",
				Ctime:       testNow.UnixMilli(),
			},
		},
		{
			name: "新客户并且指定下单日期，事件发送失败不影响下单",
			before: func(m mocks) {
				m.customer.EXPECT().FindOrCreate(gomock.Any(), customer.Customer{
					Name:  "Nguyễn Văn A",
					Phone: "0901234567",
				}).Return(buyerA, nil)
				m.product.EXPECT().FindVariant(gomock.Any(), "SP1", "GH1").
					Return(netflix, netflix.Variants[0], nil)
				m.repo.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).Return(int64(2), nil)
				m.producer.EXPECT().Produce(gomock.Any(), gomock.Any()).Return(errors.New("mq down"))
			},
			cart: domain.Cart{
				NewCustomer: &domain.Buyer{Name: "Nguyễn Văn A", Phone: "0901234567"},
				Lines:       []domain.CartLine{{ProductSN: "SP1", VariantSN: "GH1"}},
				OrderDate:   1700000000000,
			},
			wantOrder: domain.Order{
				ID:            2,
				SN:            "DHZabcd",
				CustomerSN:    "KH1",
				CustomerName:  "Nguyễn Văn A",
				CustomerPhone: "0901234567",
				Items: []domain.OrderItem{
					{ProductSN: "SP1", VariantSN: "GH1", Name: "Netflix (1 tháng)",
						PriceAtSale: 40000, CostAtSale: 25000, UsageTime: duration.OneMonth},
				},
				TotalAmount: 40000,
				Status:      domain.StatusCompleted,
				Ctime:       1700000000000,
			},
		},
		{
			name:    "购物车为空",
			before:  func(m mocks) {},
			cart:    domain.Cart{CustomerSN: "KH1"},
			wantErr: ErrEmptyCart,
		},
		{
			name:    "没有客户信息",
			before:  func(m mocks) {},
			cart:    domain.Cart{Lines: []domain.CartLine{{ProductSN: "SP1"}}},
			wantErr: ErrMissingCustomer,
		},
		{
			name: "客户不存在",
			before: func(m mocks) {
				m.customer.EXPECT().Detail(gomock.Any(), "KH404").
					Return(customer.Customer{}, customer.ErrCustomerNotFound)
			},
			cart:    domain.Cart{CustomerSN: "KH404", Lines: []domain.CartLine{{ProductSN: "SP1"}}},
			wantErr: ErrMissingCustomer,
		},
		{
			name: "新客户缺少手机号",
			before: func(m mocks) {
				m.customer.EXPECT().FindOrCreate(gomock.Any(), gomock.Any()).
					Return(customer.Customer{}, customer.ErrInvalidCustomer)
			},
			cart: domain.Cart{
				NewCustomer: &domain.Buyer{Name: "Nguyễn Văn A"},
				Lines:       []domain.CartLine{{ProductSN: "SP1"}},
			},
			wantErr: ErrMissingCustomer,
		},
		{
			name: "规格不存在",
			before: func(m mocks) {
				m.customer.EXPECT().Detail(gomock.Any(), "KH1").Return(buyerA, nil)
				m.product.EXPECT().FindVariant(gomock.Any(), "SP1", "GH404").
					Return(product.Product{}, product.Variant{}, product.ErrVariantNotFound)
			},
			cart:    domain.Cart{CustomerSN: "KH1", Lines: []domain.CartLine{{ProductSN: "SP1", VariantSN: "GH404"}}},
			wantErr: ErrInvalidCartLine,
		},
		{
			name: "售价为负数",
			before: func(m mocks) {
				m.customer.EXPECT().Detail(gomock.Any(), "KH1").Return(buyerA, nil)
				m.product.EXPECT().FindVariant(gomock.Any(), "SP1", "GH1").
					Return(netflix, netflix.Variants[0], nil)
			},
			cart: domain.Cart{CustomerSN: "KH1", Lines: []domain.CartLine{
				{ProductSN: "SP1", VariantSN: "GH1", PriceOverride: ptr(-1)},
			}},
			wantErr: ErrInvalidCartLine,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			m := newMocks(ctrl)
			tc.before(m)
			o, err := m.newService().CreateOrder(context.Background(), tc.cart)
			assert.ErrorIs(t, err, tc.wantErr)
			if err != nil {
				return
			}
			assert.Equal(t, tc.wantOrder, o)
			assert.Equal(t, domain.SumPrice(o.Items), o.TotalAmount)
		})
	}
}

func TestService_CancelOrder(t *testing.T) {
	completed := domain.Order{
		SN:          "DH1",
		CustomerSN:  "KH1",
		TotalAmount: 40000,
		Status:      domain.StatusCompleted,
		Items:       []domain.OrderItem{{PriceAtSale: 40000, CostAtSale: 25000, UsageTime: duration.OneMonth}},
		Ctime:       testNow.AddDate(0, 0, -10).UnixMilli(),
	}
	testCases := []struct {
		name      string
		before    func(m mocks)
		refund    domain.RefundInfo
		wantOrder domain.Order
		wantErr   error
	}{
		{
			name: "取消成功",
			before: func(m mocks) {
				m.repo.EXPECT().FindBySN(gomock.Any(), "DH1").Return(completed, nil)
				m.repo.EXPECT().Cancel(gomock.Any(), "DH1", domain.RefundInfo{
					RefundToCustomer:   26666,
					RefundFromSupplier: 10000,
					RefundDate:         testNow.UnixMilli(),
					Reason:             "khách đổi ý",
				}).Return(nil)
				m.producer.EXPECT().Produce(gomock.Any(), gomock.Any()).Return(nil)
			},
			refund: domain.RefundInfo{RefundToCustomer: 26666, RefundFromSupplier: 10000, Reason: " khách đổi ý "},
			wantOrder: func() domain.Order {
				o := completed
				o.Status = domain.StatusCancelled
				o.Refund = &domain.RefundInfo{
					RefundToCustomer:   26666,
					RefundFromSupplier: 10000,
					RefundDate:         testNow.UnixMilli(),
					Reason:             "khách đổi ý",
				}
				return o
			}(),
		},
		{
			name: "已经取消的订单",
			before: func(m mocks) {
				o := completed
				o.Status = domain.StatusCancelled
				o.Refund = &domain.RefundInfo{}
				m.repo.EXPECT().FindBySN(gomock.Any(), "DH1").Return(o, nil)
			},
			wantErr: ErrOrderNotCancelable,
		},
		{
			name: "并发取消条件更新失败",
			before: func(m mocks) {
				m.repo.EXPECT().FindBySN(gomock.Any(), "DH1").Return(completed, nil)
				m.repo.EXPECT().Cancel(gomock.Any(), "DH1", gomock.Any()).Return(repository.ErrOrderStatusChanged)
			},
			wantErr: ErrOrderNotCancelable,
		},
		{
			name:    "退款金额为负数",
			before:  func(m mocks) {},
			refund:  domain.RefundInfo{RefundToCustomer: -1},
			wantErr: ErrInvalidRefund,
		},
		{
			name: "订单不存在",
			before: func(m mocks) {
				m.repo.EXPECT().FindBySN(gomock.Any(), "DH1").Return(domain.Order{}, repository.ErrOrderNotFound)
			},
			wantErr: ErrOrderNotFound,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			m := newMocks(ctrl)
			tc.before(m)
			o, err := m.newService().CancelOrder(context.Background(), "DH1", tc.refund)
			assert.ErrorIs(t, err, tc.wantErr)
			if err != nil {
				return
			}
			assert.Equal(t, tc.wantOrder, o)
		})
	}
}

func TestService_DeleteOrder(t *testing.T) {
	order := domain.Order{SN: "DH1", CustomerSN: "KH1", TotalAmount: 40000, Status: domain.StatusCompleted}
	testCases := []struct {
		name    string
		before  func(m mocks)
		wantErr error
	}{
		{
			name: "客户没有其他订单一起删除",
			before: func(m mocks) {
				m.repo.EXPECT().FindBySN(gomock.Any(), "DH1").Return(order, nil)
				m.repo.EXPECT().Delete(gomock.Any(), "DH1").Return(nil)
				m.producer.EXPECT().Produce(gomock.Any(), gomock.Any()).Return(nil)
				m.repo.EXPECT().CountByCustomer(gomock.Any(), "KH1").Return(int64(0), nil)
				m.customer.EXPECT().Delete(gomock.Any(), "KH1").Return(nil)
			},
		},
		{
			name: "客户还有其他订单",
			before: func(m mocks) {
				m.repo.EXPECT().FindBySN(gomock.Any(), "DH1").Return(order, nil)
				m.repo.EXPECT().Delete(gomock.Any(), "DH1").Return(nil)
				m.producer.EXPECT().Produce(gomock.Any(), gomock.Any()).Return(nil)
				m.repo.EXPECT().CountByCustomer(gomock.Any(), "KH1").Return(int64(1), nil)
			},
		},
		{
			name: "删除客户失败不影响删除订单",
			before: func(m mocks) {
				m.repo.EXPECT().FindBySN(gomock.Any(), "DH1").Return(order, nil)
				m.repo.EXPECT().Delete(gomock.Any(), "DH1").Return(nil)
				m.producer.EXPECT().Produce(gomock.Any(), gomock.Any()).Return(nil)
				m.repo.EXPECT().CountByCustomer(gomock.Any(), "KH1").Return(int64(0), nil)
				m.customer.EXPECT().Delete(gomock.Any(), "KH1").Return(errors.New("db down"))
			},
		},
		{
			name: "统计订单失败不影响删除订单",
			before: func(m mocks) {
				m.repo.EXPECT().FindBySN(gomock.Any(), "DH1").Return(order, nil)
				m.repo.EXPECT().Delete(gomock.Any(), "DH1").Return(nil)
				m.producer.EXPECT().Produce(gomock.Any(), gomock.Any()).Return(nil)
				m.repo.EXPECT().CountByCustomer(gomock.Any(), "KH1").Return(int64(0), errors.New("db down"))
			},
		},
		{
			name: "删除订单失败",
			before: func(m mocks) {
				m.repo.EXPECT().FindBySN(gomock.Any(), "DH1").Return(order, nil)
				m.repo.EXPECT().Delete(gomock.Any(), "DH1").Return(errors.New("db down"))
			},
			wantErr: errors.New("db down"),
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			m := newMocks(ctrl)
			tc.before(m)
			err := m.newService().DeleteOrder(context.Background(), "DH1")
			assert.Equal(t, tc.wantErr, err)
		})
	}
}

func TestService_List(t *testing.T) {
	var orders []domain.Order
	for i := 1; i <= 5; i++ {
		orders = append(orders, domain.Order{
			ID:     int64(i),
			SN:     "DH" + string(rune('0'+i)),
			Status: domain.StatusCompleted,
			Items:  []domain.OrderItem{{UsageTime: duration.Lifetime}},
			Ctime:  testNow.Add(time.Duration(i) * time.Hour).UnixMilli(),
		})
	}
	testCases := []struct {
		name      string
		query     domain.Query
		before    func(m mocks)
		wantIDs   []int64
		wantTotal int
		wantErr   error
	}{
		{
			name:  "第一页",
			query: domain.Query{Limit: 2},
			before: func(m mocks) {
				m.repo.EXPECT().ListByCustomer(gomock.Any(), "").Return(orders, nil)
			},
			wantIDs:   []int64{5, 4},
			wantTotal: 5,
		},
		{
			name:  "最后一页",
			query: domain.Query{Status: domain.FilterActive, CustomerSN: "KH1", Offset: 4, Limit: 2},
			before: func(m mocks) {
				m.repo.EXPECT().ListByCustomer(gomock.Any(), "KH1").Return(orders, nil)
			},
			wantIDs:   []int64{1},
			wantTotal: 5,
		},
		{
			name:  "超出范围",
			query: domain.Query{Status: domain.FilterCancelled, Limit: 2},
			before: func(m mocks) {
				m.repo.EXPECT().ListByCustomer(gomock.Any(), "").Return(orders, nil)
			},
			wantIDs:   []int64{},
			wantTotal: 0,
		},
		{
			name:    "非法状态",
			query:   domain.Query{Status: "unknown"},
			before:  func(m mocks) {},
			wantErr: ErrInvalidQuery,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			m := newMocks(ctrl)
			tc.before(m)
			os, total, err := m.newService().List(context.Background(), tc.query)
			assert.ErrorIs(t, err, tc.wantErr)
			if err != nil {
				return
			}
			ids := make([]int64, 0, len(os))
			for _, o := range os {
				ids = append(ids, o.ID)
			}
			assert.Equal(t, tc.wantIDs, ids)
			assert.Equal(t, tc.wantTotal, total)
		})
	}
}

func TestService_Dashboard(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	m := newMocks(ctrl)
	var orders []domain.Order
	for i := 0; i < 7; i++ {
		orders = append(orders, domain.Order{
			ID:          int64(i),
			TotalAmount: 10000,
			Status:      domain.StatusCompleted,
			Items:       []domain.OrderItem{{PriceAtSale: 10000, CostAtSale: 6000}},
			Ctime:       testNow.AddDate(0, 0, -i).UnixMilli(),
		})
	}
	m.repo.EXPECT().ListAll(gomock.Any()).Return(orders, nil)
	m.customer.EXPECT().Count(gomock.Any()).Return(int64(3), nil)

	res, err := m.newService().Dashboard(context.Background(), domain.TimeWindow{Kind: domain.WindowToday})
	require.NoError(t, err)
	assert.Equal(t, domain.Stats{Revenue: 10000, Profit: 4000, OrderCount: 1}, res.Stats)
	assert.Len(t, res.RecentOrders, 5)
	assert.Equal(t, int64(0), res.RecentOrders[0].ID)
	assert.Equal(t, int64(3), res.TotalCustomers)

	_, err = m.newService().Dashboard(context.Background(), domain.TimeWindow{Kind: domain.WindowCustom})
	assert.ErrorIs(t, err, ErrInvalidQuery)
}

func ptr(v int64) *int64 {
	return &v
}
